package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an item in the retail catalog. Stock never goes
// negative; it changes only through recorded sales and purchases.
type Product struct {
	ID        int64           `json:"id" db:"id"`
	Code      string          `json:"code" db:"code" binding:"required"`
	Name      string          `json:"name" db:"name" binding:"required"`
	Category  *string         `json:"category,omitempty" db:"category"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Stock     int             `json:"stock" db:"stock"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// Purchase records a stock replenishment for a product.
type Purchase struct {
	ID         int64           `json:"id" db:"id"`
	ProductID  int64           `json:"product_id" db:"product_id"`
	EmployeeID *int64          `json:"employee_id,omitempty" db:"employee_id"`
	Quantity   int             `json:"quantity" db:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost" db:"unit_cost"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	Product    *Product        `json:"product,omitempty"`
}

// ProductFilters defines the available filters for querying the catalog.
type ProductFilters struct {
	Category   *string `form:"category"`
	SearchTerm *string `form:"q"`
	Page       int     `form:"page"`
	PageSize   int     `form:"page_size"`
}
