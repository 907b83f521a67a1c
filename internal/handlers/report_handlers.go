package handlers

import (
	"errors"
	"net/http"

	"hotel_crm_backend/internal/services"
	"hotel_crm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// GetRevenueReport returns the invoice revenue over a date range.
func (h *ReportHandler) GetRevenueReport(c *gin.Context) {
	var req services.ReportRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters: "+err.Error(), err.Error()))
		return
	}

	report, err := h.reportService.RevenueBetween(req)
	if err != nil {
		utils.LogError(err, "GetRevenueReport: Error from reportService.RevenueBetween")
		if errors.Is(err, services.ErrInvalidDateRange) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date range.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build revenue report.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetSalesSummary returns the point-of-sale summary over a date range.
func (h *ReportHandler) GetSalesSummary(c *gin.Context) {
	var req services.ReportRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters: "+err.Error(), err.Error()))
		return
	}

	summary, err := h.reportService.SalesSummary(req)
	if err != nil {
		utils.LogError(err, "GetSalesSummary: Error from reportService.SalesSummary")
		if errors.Is(err, services.ErrInvalidDateRange) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date range.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build sales summary.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, summary)
}
