package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale represents a point-of-sale transaction composed of one or more line
// items against the product catalog. total = subtotal + tax.
type Sale struct {
	ID         int64           `json:"id" db:"id"`
	Number     string          `json:"number" db:"number"`
	EmployeeID *int64          `json:"employee_id,omitempty" db:"employee_id"`
	Subtotal   decimal.Decimal `json:"subtotal" db:"subtotal"`
	Tax        decimal.Decimal `json:"tax" db:"tax"`
	Total      decimal.Decimal `json:"total" db:"total"`
	SoldAt     time.Time       `json:"sold_at" db:"sold_at"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
	Items      []SaleLineItem  `json:"items,omitempty"`
}

// SaleLineItem is one product line within a sale. The unit price is a
// snapshot of the product price at sale time.
type SaleLineItem struct {
	ID        int64           `json:"id" db:"id"`
	SaleID    int64           `json:"sale_id" db:"sale_id"`
	ProductID int64           `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal" db:"subtotal"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	Product   *Product        `json:"product,omitempty"`
}

// SaleFilters defines the available filters for querying sales.
type SaleFilters struct {
	EmployeeID *int64     `form:"employee_id"`
	DateFrom   *time.Time `form:"date_from"`
	DateTo     *time.Time `form:"date_to"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}
