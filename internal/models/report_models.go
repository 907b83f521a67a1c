package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueReport is the result of summing invoice totals over a date range.
// Total is zero when no invoice falls inside the range, never null.
type RevenueReport struct {
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Invoices  []Invoice       `json:"invoices"`
	Total     decimal.Decimal `json:"total"`
}

// SalesSummary aggregates point-of-sale activity over a date range.
type SalesSummary struct {
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	SaleCount int             `json:"sale_count"`
	Revenue   decimal.Decimal `json:"revenue"`
}
