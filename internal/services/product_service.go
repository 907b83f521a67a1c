package services

import (
	"database/sql"
	"errors"
	"fmt"

	"hotel_crm_backend/internal/models"
	"hotel_crm_backend/internal/repositories"
	"hotel_crm_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// --- Custom Service Errors for Products ---
var (
	ErrDuplicateProductCode = errors.New("product code already exists")
)

// --- Product DTOs ---
type ProductRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Price    string `json:"price" binding:"required"`
	Stock    int    `json:"stock"`
}

type RestockRequest struct {
	Quantity int    `json:"quantity" binding:"required"`
	UnitCost string `json:"unit_cost"`
}

// --- ProductService Interface ---
type ProductService interface {
	CreateProduct(req ProductRequest) (*models.Product, error)
	GetProductByID(id int64) (*models.Product, error)
	GetProductByCode(code string) (*models.Product, error)
	GetProducts(filters models.ProductFilters) ([]models.Product, int, error)
	UpdateProduct(id int64, req ProductRequest) (*models.Product, error)
	DeleteProduct(id int64) error

	Restock(productID, staffUserID int64, req RestockRequest) (*models.Product, error)
	GetPurchases(productID *int64, page, pageSize int) ([]models.Purchase, int, error)
}

// --- productService Implementation ---
type productService struct {
	productRepo  repositories.ProductRepository
	employeeRepo repositories.EmployeeRepository
	db           *sql.DB
}

// NewProductService creates a new instance of ProductService.
func NewProductService(pr repositories.ProductRepository, er repositories.EmployeeRepository, db *sql.DB) ProductService {
	return &productService{productRepo: pr, employeeRepo: er, db: db}
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid price '%s'", ErrInvalidQuantity, raw)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: price must not be negative", ErrInvalidQuantity)
	}
	return price, nil
}

func (s *productService) CreateProduct(req ProductRequest) (*models.Product, error) {
	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", ErrInvalidQuantity)
	}

	product := &models.Product{
		Code:     req.Code,
		Name:     req.Name,
		Category: utils.NewNullString(req.Category),
		Price:    price,
		Stock:    req.Stock,
	}
	if _, err := s.productRepo.CreateProduct(s.db, product); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateProductCode, req.Code)
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *productService) GetProductByID(id int64) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}
	return product, nil
}

func (s *productService) GetProductByCode(code string) (*models.Product, error) {
	product, err := s.productRepo.GetProductByCode(code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by code: %w", err)
	}
	return product, nil
}

func (s *productService) GetProducts(filters models.ProductFilters) ([]models.Product, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 10
	}
	products, totalCount, err := s.productRepo.GetProducts(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get products: %w", err)
	}
	return products, totalCount, nil
}

func (s *productService) UpdateProduct(id int64, req ProductRequest) (*models.Product, error) {
	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:       id,
		Code:     req.Code,
		Name:     req.Name,
		Category: utils.NewNullString(req.Category),
		Price:    price,
	}
	if err := s.productRepo.UpdateProduct(s.db, product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateProductCode, req.Code)
		}
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return s.productRepo.GetProductByID(id)
}

func (s *productService) DeleteProduct(id int64) error {
	if err := s.productRepo.DeleteProduct(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}

// Restock raises a product's stock level and records the purchase that
// brought the goods in, attributed to the calling staff member, inside one
// transaction.
func (s *productService) Restock(productID, staffUserID int64, req RestockRequest) (*models.Product, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, req.Quantity)
	}
	unitCost := decimal.Zero
	if req.UnitCost != "" {
		parsed, err := decimal.NewFromString(req.UnitCost)
		if err != nil || parsed.IsNegative() {
			return nil, fmt.Errorf("%w: invalid unit cost '%s'", ErrInvalidQuantity, req.UnitCost)
		}
		unitCost = parsed
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

	if _, err := s.productRepo.IncrementStock(tx, productID, req.Quantity); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to increment stock of product %d: %w", productID, err)
	}

	purchase := &models.Purchase{
		ProductID:  productID,
		EmployeeID: employeeID,
		Quantity:   req.Quantity,
		UnitCost:   unitCost,
	}
	if _, err := s.productRepo.CreatePurchase(tx, purchase); err != nil {
		return nil, fmt.Errorf("failed to record purchase for product %d: %w", productID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit restock transaction: %w", err)
	}
	return s.productRepo.GetProductByID(productID)
}

func (s *productService) GetPurchases(productID *int64, page, pageSize int) ([]models.Purchase, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	purchases, totalCount, err := s.productRepo.GetPurchases(productID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get purchases: %w", err)
	}
	return purchases, totalCount, nil
}
