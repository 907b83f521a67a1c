package handlers

import (
	"errors"
	"net/http"

	"hotel_crm_backend/internal/models"
	"hotel_crm_backend/internal/services"
	"hotel_crm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReservationHandler holds the reservation service.
type ReservationHandler struct {
	reservationService services.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(rs services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: rs}
}

func respondReservationError(c *gin.Context, err error, action string) {
	utils.LogError(err, action+": Error from reservationService")
	switch {
	case errors.Is(err, services.ErrReservationNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Reservation not found.", err.Error()))
	case errors.Is(err, services.ErrRoomForReservationNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Room not found.", err.Error()))
	case errors.Is(err, services.ErrRoomUnavailable):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Room is not available.", err.Error()))
	case errors.Is(err, services.ErrInvalidDateRange):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date range.", err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process reservation.", "Internal error"))
	}
}

// BookRoom handles booking a room for the authenticated user.
func (h *ReservationHandler) BookRoom(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	var req services.BookRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "BookRoom: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	reservation, err := h.reservationService.Book(userID, currentUsername(c), req)
	if err != nil {
		respondReservationError(c, err, "BookRoom")
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// CancelReservation handles cancelling one of the caller's reservations.
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
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

	reservation, err := h.reservationService.Cancel(userID, reservationID)
	if err != nil {
		respondReservationError(c, err, "CancelReservation")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// ModifyReservation handles changing the dates of one of the caller's reservations.
func (h *ReservationHandler) ModifyReservation(c *gin.Context) {
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

	var req services.ModifyReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "ModifyReservation: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	reservation, err := h.reservationService.Modify(userID, reservationID, req)
	if err != nil {
		respondReservationError(c, err, "ModifyReservation")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// PurchaseReservation handles converting one of the caller's reservations into a completed stay.
func (h *ReservationHandler) PurchaseReservation(c *gin.Context) {
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

	reservation, err := h.reservationService.Purchase(userID, reservationID)
	if err != nil {
		respondReservationError(c, err, "PurchaseReservation")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// GetMyReservations lists the caller's active reservations.
func (h *ReservationHandler) GetMyReservations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	reservations, err := h.reservationService.GetMyReservations(userID, currentUsername(c))
	if err != nil {
		utils.LogError(err, "GetMyReservations: Error from reservationService.GetMyReservations")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch reservations.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reservations})
}

// GetReservations lists all reservations with filters; staff only.
func (h *ReservationHandler) GetReservations(c *gin.Context) {
	var filters models.ReservationFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters: "+err.Error(), err.Error()))
		return
	}

	reservations, totalCount, err := h.reservationService.GetReservations(filters)
	if err != nil {
		utils.LogError(err, "GetReservations: Error from reservationService.GetReservations")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch reservations.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  reservations,
		"total": totalCount,
	})
}

// GetReservationByID fetches a single reservation; staff only.
func (h *ReservationHandler) GetReservationByID(c *gin.Context) {
	reservationID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid reservation ID format.", err.Error()))
		return
	}

	reservation, err := h.reservationService.GetReservationByID(reservationID)
	if err != nil {
		respondReservationError(c, err, "GetReservationByID")
		return
	}
	c.JSON(http.StatusOK, reservation)
}
