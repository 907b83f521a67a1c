package models

import "time"

// ReservationStatus defines the closed set of reservation states.
type ReservationStatus string

const (
	ReservationStatusReserved  ReservationStatus = "reserved"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusPurchased ReservationStatus = "purchased"
)

// IsValidReservationStatus checks if the provided status string is a valid ReservationStatus.
func IsValidReservationStatus(status string) bool {
	switch ReservationStatus(status) {
	case ReservationStatusReserved,
		ReservationStatusCancelled,
		ReservationStatusPurchased:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition may leave this status.
// Cancelled and purchased reservations stay that way forever.
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationStatusCancelled || s == ReservationStatusPurchased
}

// Reservation represents a booking of one room by one client for a date range.
type Reservation struct {
	ID         int64             `json:"id" db:"id"`
	ClientID   int64             `json:"client_id" db:"client_id"`
	RoomID     int64             `json:"room_id" db:"room_id"`
	EmployeeID *int64            `json:"employee_id,omitempty" db:"employee_id"`
	StartDate  time.Time         `json:"start_date" db:"start_date"`
	EndDate    time.Time         `json:"end_date" db:"end_date"`
	Status     ReservationStatus `json:"status" db:"status"`
	CreatedAt  time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at" db:"updated_at"`
	Client     *Client           `json:"client,omitempty"`
	Room       *Room             `json:"room,omitempty"`
}

// Nights returns the stay length in whole calendar days. Equal dates yield zero.
func (r *Reservation) Nights() int {
	return int(r.EndDate.Sub(r.StartDate).Hours() / 24)
}

// ReservationFilters defines the available filters for querying reservations.
type ReservationFilters struct {
	ClientID *int64     `form:"client_id"`
	RoomID   *int64     `form:"room_id"`
	Status   *string    `form:"status"`
	DateFrom *time.Time `form:"date_from"`
	DateTo   *time.Time `form:"date_to"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}
