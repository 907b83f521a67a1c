package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotel_crm_backend/internal/models"
	"hotel_crm_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Custom Service Errors for Sales ---
var (
	ErrSaleNotFound      = errors.New("sale not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInsufficientStock = errors.New("insufficient stock for product")
	ErrEmptySale         = errors.New("sale must contain at least one item")
)

// --- Sale DTOs ---
type SaleItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

type CreateSaleRequest struct {
	Items   []SaleItemRequest `json:"items" binding:"required"`
	TaxRate string            `json:"tax_rate"` // decimal fraction, e.g. "0.16"
}

// --- SaleService Interface ---
type SaleService interface {
	CreateSale(staffUserID int64, req CreateSaleRequest) (*models.Sale, error)
	GetSaleByID(saleID int64) (*models.Sale, error)
	GetSales(filters models.SaleFilters) ([]models.Sale, int, error)
	DeleteSale(saleID int64) error
}

// --- saleService Implementation ---
type saleService struct {
	saleRepo     repositories.SaleRepository
	productRepo  repositories.ProductRepository
	employeeRepo repositories.EmployeeRepository
	db           *sql.DB
	now          func() time.Time
}

// NewSaleService creates a new instance of SaleService.
func NewSaleService(
	sr repositories.SaleRepository,
	pr repositories.ProductRepository,
	er repositories.EmployeeRepository,
	db *sql.DB,
	now func() time.Time,
) SaleService {
	if now == nil {
		now = time.Now
	}
	return &saleService{saleRepo: sr, productRepo: pr, employeeRepo: er, db: db, now: now}
}

// staffEmployeeID resolves the staff directory entry behind a user account.
// Accounts without an employee record yield a nil attribution, not an error.
func staffEmployeeID(er repositories.EmployeeRepository, userID int64) (*int64, error) {
	employee, err := er.GetEmployeeByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve employee for user %d: %w", userID, err)
	}
	return &employee.ID, nil
}

// CreateSale records a point-of-sale transaction attributed to the staff
// member behind the calling account. Every line item's stock decrement and
// the sale rows are committed together, so a sale either deducts all of its
// stock or none of it. Unit prices are snapshotted from the catalog at sale
// time.
func (s *saleService) CreateSale(staffUserID int64, req CreateSaleRequest) (*models.Sale, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptySale
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: got %d for product %d", ErrInvalidQuantity, item.Quantity, item.ProductID)
		}
	}

	taxRate := decimal.Zero
	if req.TaxRate != "" {
		parsed, err := decimal.NewFromString(req.TaxRate)
		if err != nil || parsed.IsNegative() {
			return nil, fmt.Errorf("%w: invalid tax rate '%s'", ErrInvalidQuantity, req.TaxRate)
		}
		taxRate = parsed
	}

	employeeID, err := staffEmployeeID(s.employeeRepo, staffUserID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	subtotal := decimal.Zero
	lineItems := make([]models.SaleLineItem, 0, len(req.Items))
	for _, item := range req.Items {
		product, err := s.productRepo.GetProductByID(item.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: ID %d", ErrProductNotFound, item.ProductID)
			}
			return nil, fmt.Errorf("failed to get product %d: %w", item.ProductID, err)
		}

		rowsUpdated, err := s.productRepo.DecrementStock(tx, item.ProductID, item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement stock of product %d: %w", item.ProductID, err)
		}
		if rowsUpdated == 0 {
			return nil, fmt.Errorf("%w: '%s' has %d in stock, requested %d",
				ErrInsufficientStock, product.Code, product.Stock, item.Quantity)
		}

		lineSubtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineSubtotal)
		lineItems = append(lineItems, models.SaleLineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			Subtotal:  lineSubtotal,
		})
	}

	tax := subtotal.Mul(taxRate)
	sale := &models.Sale{
		Number:     uuid.NewString(),
		EmployeeID: employeeID,
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      subtotal.Add(tax),
		SoldAt:     s.now(),
	}
	if _, err := s.saleRepo.CreateSale(tx, sale); err != nil {
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}
	for i := range lineItems {
		lineItems[i].SaleID = sale.ID
		if _, err := s.saleRepo.CreateSaleItem(tx, &lineItems[i]); err != nil {
			return nil, fmt.Errorf("failed to create sale line item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sale transaction: %w", err)
	}
	return s.saleRepo.GetSaleByID(sale.ID)
}

func (s *saleService) GetSaleByID(saleID int64) (*models.Sale, error) {
	sale, err := s.saleRepo.GetSaleByID(saleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to get sale by ID: %w", err)
	}
	return sale, nil
}

func (s *saleService) GetSales(filters models.SaleFilters) ([]models.Sale, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 10
	}
	sales, totalCount, err := s.saleRepo.GetSales(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get sales: %w", err)
	}
	return sales, totalCount, nil
}

// DeleteSale voids a sale and returns its line item quantities to stock.
func (s *saleService) DeleteSale(saleID int64) error {
	items, err := s.saleRepo.GetSaleItemsBySaleID(saleID)
	if err != nil {
		return fmt.Errorf("failed to get line items of sale %d: %w", saleID, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		if _, err := s.productRepo.IncrementStock(tx, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("failed to restore stock of product %d: %w", item.ProductID, err)
		}
	}
	if _, err := s.saleRepo.DeleteSaleItemsBySaleID(tx, saleID); err != nil {
		return fmt.Errorf("failed to delete line items of sale %d: %w", saleID, err)
	}
	if err := s.saleRepo.DeleteSale(tx, saleID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSaleNotFound
		}
		return fmt.Errorf("failed to delete sale %d: %w", saleID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sale deletion: %w", err)
	}
	return nil
}
