package models

import "time"

// Employee represents a member of the hotel staff.
type Employee struct {
	ID          int64     `json:"id" db:"id"`
	UserID      *int64    `json:"user_id,omitempty" db:"user_id"`
	FullName    string    `json:"full_name" db:"full_name" binding:"required"`
	Position    string    `json:"position" db:"position"`
	PhoneNumber *string   `json:"phone_number,omitempty" db:"phone_number"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	User        *User     `json:"user,omitempty"`
}
