package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Room represents a hotel room that can be reserved by clients.
type Room struct {
	ID           int64           `json:"id" db:"id"`
	Number       string          `json:"number" db:"number" binding:"required"`
	RoomType     string          `json:"room_type" db:"room_type"`
	Capacity     int             `json:"capacity" db:"capacity" binding:"required,gt=0"`
	NightlyRate  decimal.Decimal `json:"nightly_rate" db:"nightly_rate"`
	Available    bool            `json:"available" db:"available"`
	Description  *string         `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// RoomFilters defines the available filters for querying rooms.
type RoomFilters struct {
	Available *bool   `form:"available"`
	RoomType  *string `form:"room_type"`
	Page      int     `form:"page"`
	PageSize  int     `form:"page_size"`
}

// RoomSearchParams carries the guest-facing availability search criteria.
type RoomSearchParams struct {
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}
