package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LaundryStatus defines the closed set of laundry request states.
type LaundryStatus string

const (
	LaundryStatusPending    LaundryStatus = "pending"
	LaundryStatusInProgress LaundryStatus = "in_progress"
	LaundryStatusDone       LaundryStatus = "done"
)

// IsValidLaundryStatus checks if the provided status string is a valid LaundryStatus.
func IsValidLaundryStatus(status string) bool {
	switch LaundryStatus(status) {
	case LaundryStatusPending, LaundryStatusInProgress, LaundryStatusDone:
		return true
	default:
		return false
	}
}

// LaundryRequest represents a laundry service request raised for a room.
// Price may be unset while the request is still being quoted.
type LaundryRequest struct {
	ID          int64               `json:"id" db:"id"`
	UserID      int64               `json:"user_id" db:"user_id"`
	RoomID      *int64              `json:"room_id,omitempty" db:"room_id"`
	Description string              `json:"description" db:"description"`
	Status      LaundryStatus       `json:"status" db:"status"`
	Price       decimal.NullDecimal `json:"price,omitempty" db:"price"`
	RequestedAt time.Time           `json:"requested_at" db:"requested_at"`
	CreatedAt   time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" db:"updated_at"`
	Room        *Room               `json:"room,omitempty"`
}

// ReservationLaundry links a laundry request to a reservation with a
// quantity. Total is quantity times the service price, zero when the
// service has no price yet.
type ReservationLaundry struct {
	ID               int64           `json:"id" db:"id"`
	ReservationID    int64           `json:"reservation_id" db:"reservation_id"`
	LaundryRequestID int64           `json:"laundry_request_id" db:"laundry_request_id"`
	Quantity         int             `json:"quantity" db:"quantity"`
	Total            decimal.Decimal `json:"total" db:"total"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	LaundryRequest   *LaundryRequest `json:"laundry_request,omitempty"`
}
