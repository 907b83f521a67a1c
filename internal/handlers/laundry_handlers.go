package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hotel_crm_backend/internal/services"
	"hotel_crm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// LaundryHandler holds the laundry service.
type LaundryHandler struct {
	laundryService services.LaundryService
}

// NewLaundryHandler creates a new LaundryHandler.
func NewLaundryHandler(ls services.LaundryService) *LaundryHandler {
	return &LaundryHandler{laundryService: ls}
}

// CreateLaundryRequest raises a laundry request for the caller.
func (h *LaundryHandler) CreateLaundryRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	var input services.LaundryRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.LogError(err, "CreateLaundryRequest: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	request, err := h.laundryService.CreateRequest(userID, input)
	if err != nil {
		utils.LogError(err, "CreateLaundryRequest: Error from laundryService.CreateRequest")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create laundry request.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, request)
}

// GetMyLaundryRequests lists the caller's laundry requests.
func (h *LaundryHandler) GetMyLaundryRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	requests, totalCount, err := h.laundryService.GetMyRequests(userID, page, pageSize)
	if err != nil {
		utils.LogError(err, "GetMyLaundryRequests: Error from laundryService.GetMyRequests")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch laundry requests.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  requests,
		"total": totalCount,
	})
}

// UpdateLaundryRequest updates a laundry request's status and price; staff only.
func (h *LaundryHandler) UpdateLaundryRequest(c *gin.Context) {
	idStr := c.Param("id")
	requestID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid laundry request ID format.", err.Error()))
		return
	}

	var input services.UpdateLaundryRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.LogError(err, "UpdateLaundryRequest: Failed to bind JSON for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	request, err := h.laundryService.UpdateRequest(requestID, input)
	if err != nil {
		utils.LogError(err, "UpdateLaundryRequest: Error from laundryService.UpdateRequest for ID "+idStr)
		if errors.Is(err, services.ErrLaundryRequestNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Laundry request not found.", err.Error()))
		} else if errors.Is(err, services.ErrInvalidLaundryStatus) || errors.Is(err, services.ErrInvalidQuantity) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update laundry request.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, request)
}

// AttachLaundryToReservation links a laundry request to a reservation; staff only.
func (h *LaundryHandler) AttachLaundryToReservation(c *gin.Context) {
	reservationID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid reservation ID format.", err.Error()))
		return
	}

	var input services.AttachLaundryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.LogError(err, "AttachLaundryToReservation: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	link, err := h.laundryService.AttachToReservation(reservationID, input)
	if err != nil {
		utils.LogError(err, "AttachLaundryToReservation: Error from laundryService.AttachToReservation")
		switch {
		case errors.Is(err, services.ErrReservationNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Reservation not found.", err.Error()))
		case errors.Is(err, services.ErrLaundryRequestNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Laundry request not found.", err.Error()))
		case errors.Is(err, services.ErrInvalidQuantity):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to attach laundry request.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, link)
}

// GetReservationLaundry lists the laundry lines attached to a reservation.
func (h *LaundryHandler) GetReservationLaundry(c *gin.Context) {
	reservationID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid reservation ID format.", err.Error()))
		return
	}

	links, err := h.laundryService.GetReservationLaundry(reservationID)
	if err != nil {
		utils.LogError(err, "GetReservationLaundry: Error from laundryService.GetReservationLaundry")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch reservation laundry.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": links})
}
