package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hotel_crm_backend/internal/services"
	"hotel_crm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler holds the invoice service.
type InvoiceHandler struct {
	invoiceService services.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(is services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: is}
}

// GetInvoiceForReservation returns the invoice of a reservation owned by the
// caller, creating it on first request.
func (h *InvoiceHandler) GetInvoiceForReservation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	reservationID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid reservation ID format.", err.Error()))
		return
	}

	invoice, err := h.invoiceService.InvoiceFor(userID, reservationID)
	if err != nil {
		utils.LogError(err, "GetInvoiceForReservation: Error from invoiceService.InvoiceFor")
		if errors.Is(err, services.ErrReservationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Reservation not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch invoice.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// PayInvoice marks an invoice owned by the caller as paid.
func (h *InvoiceHandler) PayInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	invoiceID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid invoice ID format.", err.Error()))
		return
	}

	invoice, err := h.invoiceService.Pay(userID, invoiceID)
	if err != nil {
		utils.LogError(err, "PayInvoice: Error from invoiceService.Pay")
		if errors.Is(err, services.ErrInvoiceNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Invoice not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to pay invoice.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// GetMyInvoices lists the caller's invoices.
func (h *InvoiceHandler) GetMyInvoices(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	invoices, totalCount, err := h.invoiceService.ListMine(userID, page, pageSize)
	if err != nil {
		utils.LogError(err, "GetMyInvoices: Error from invoiceService.ListMine")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch invoices.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  invoices,
		"total": totalCount,
	})
}

// GetInvoiceByID fetches a single invoice; staff only.
func (h *InvoiceHandler) GetInvoiceByID(c *gin.Context) {
	invoiceID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid invoice ID format.", err.Error()))
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByID(invoiceID)
	if err != nil {
		utils.LogError(err, "GetInvoiceByID: Error from invoiceService.GetInvoiceByID")
		if errors.Is(err, services.ErrInvoiceNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Invoice not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch invoice.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, invoice)
}
