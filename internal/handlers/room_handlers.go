package handlers

import (
	"errors"
	"net/http"

	"hotel_crm_backend/internal/models"
	"hotel_crm_backend/internal/services"
	"hotel_crm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RoomHandler holds the room service.
type RoomHandler struct {
	roomService services.RoomService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(rs services.RoomService) *RoomHandler {
	return &RoomHandler{roomService: rs}
}

// CreateRoom handles the creation of a new room.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req services.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateRoom: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	room, err := h.roomService.CreateRoom(req)
	if err != nil {
		utils.LogError(err, "CreateRoom: Error from roomService.CreateRoom")
		if errors.Is(err, services.ErrDuplicateRoomNumber) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Room number already exists.", err.Error()))
		} else if errors.Is(err, services.ErrInvalidQuantity) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create room.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, room)
}

// GetRooms handles fetching rooms with filters and pagination.
func (h *RoomHandler) GetRooms(c *gin.Context) {
	var filters models.RoomFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters: "+err.Error(), err.Error()))
		return
	}

	rooms, totalCount, err := h.roomService.GetRooms(filters)
	if err != nil {
		utils.LogError(err, "GetRooms: Error from roomService.GetRooms")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch rooms.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  rooms,
		"total": totalCount,
	})
}

// SearchRooms handles the guest-facing availability search.
func (h *RoomHandler) SearchRooms(c *gin.Context) {
	var req services.RoomSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters: "+err.Error(), err.Error()))
		return
	}

	rooms, err := h.roomService.SearchAvailable(req)
	if err != nil {
		utils.LogError(err, "SearchRooms: Error from roomService.SearchAvailable")
		if errors.Is(err, services.ErrInvalidDateRange) || errors.Is(err, services.ErrCheckInPast) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to search rooms.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rooms})
}

// GetRoomByID handles fetching a single room by ID.
func (h *RoomHandler) GetRoomByID(c *gin.Context) {
	idStr := c.Param("id")
	roomID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid room ID format.", err.Error()))
		return
	}

	room, err := h.roomService.GetRoomByID(roomID)
	if err != nil {
		utils.LogError(err, "GetRoomByID: Error from roomService.GetRoomByID for ID "+idStr)
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Room not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch room.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, room)
}

// UpdateRoom handles updating a room.
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	idStr := c.Param("id")
	roomID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid room ID format.", err.Error()))
		return
	}

	var req services.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateRoom: Failed to bind JSON for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	room, err := h.roomService.UpdateRoom(roomID, req)
	if err != nil {
		utils.LogError(err, "UpdateRoom: Error from roomService.UpdateRoom for ID "+idStr)
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Room not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrDuplicateRoomNumber) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Room number already exists.", err.Error()))
		} else if errors.Is(err, services.ErrInvalidQuantity) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update room.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoom handles deleting a room.
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	idStr := c.Param("id")
	roomID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid room ID format.", err.Error()))
		return
	}

	if err := h.roomService.DeleteRoom(roomID); err != nil {
		utils.LogError(err, "DeleteRoom: Error from roomService.DeleteRoom for ID "+idStr)
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Room not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete room.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}
