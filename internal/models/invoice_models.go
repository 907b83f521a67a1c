package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a point-in-time snapshot bill for a reservation. It is created
// at most once per reservation; later changes to the room's nightly rate
// never touch an existing invoice.
type Invoice struct {
	ID            int64           `json:"id" db:"id"`
	Number        string          `json:"number" db:"number"`
	ReservationID int64           `json:"reservation_id" db:"reservation_id"`
	UserID        int64           `json:"user_id" db:"user_id"`
	Nights        int             `json:"nights" db:"nights"`
	NightlyRate   decimal.Decimal `json:"nightly_rate" db:"nightly_rate"`
	Total         decimal.Decimal `json:"total" db:"total"`
	Paid          bool            `json:"paid" db:"paid"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
	Reservation   *Reservation    `json:"reservation,omitempty"`
}
