package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel_crm_backend/internal/models"

	"github.com/lib/pq"
)

// ProductRepository defines the interface for product catalog and stock operations.
type ProductRepository interface {
	CreateProduct(executor SQLExecutor, product *models.Product) (int64, error)
	GetProductByID(id int64) (*models.Product, error)
	GetProductByCode(code string) (*models.Product, error)
	GetProducts(filters models.ProductFilters) ([]models.Product, int, error)
	UpdateProduct(executor SQLExecutor, product *models.Product) error
	DeleteProduct(executor SQLExecutor, id int64) error

	// DecrementStock subtracts quantity from a product's stock, conditioned
	// on enough stock being present, and reports whether a row matched.
	// A zero count against an existing product means insufficient stock.
	DecrementStock(executor SQLExecutor, productID int64, quantity int) (int64, error)
	// IncrementStock adds quantity to a product's stock and returns the new level.
	IncrementStock(executor SQLExecutor, productID int64, quantity int) (int, error)

	CreatePurchase(executor SQLExecutor, purchase *models.Purchase) (int64, error)
	GetPurchases(productID *int64, page, pageSize int) ([]models.Purchase, int, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const selectProductFields = `id, code, name, category, price, stock, created_at, updated_at`

func scanProduct(row scanner, product *models.Product, extra ...interface{}) error {
	dest := []interface{}{
		&product.ID, &product.Code, &product.Name, &product.Category,
		&product.Price, &product.Stock, &product.CreatedAt, &product.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *productRepository) CreateProduct(executor SQLExecutor, product *models.Product) (int64, error) {
	query := `INSERT INTO products (code, name, category, price, stock, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`
	currentTime := time.Now()
	err := executor.QueryRow(query,
		product.Code, product.Name, product.Category, product.Price, product.Stock,
		currentTime, currentTime,
	).Scan(&product.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: product code '%s' already exists (constraint: %s)", ErrDuplicateKey, product.Code, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating product: %v", ErrDatabaseError, err)
	}
	product.CreatedAt = currentTime
	product.UpdatedAt = currentTime
	return product.ID, nil
}

func (r *productRepository) GetProductByID(id int64) (*models.Product, error) {
	product := &models.Product{}
	query := `SELECT ` + selectProductFields + ` FROM products WHERE id = $1`
	err := scanProduct(r.db.QueryRow(query, id), product)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by ID %d: %v", ErrDatabaseError, id, err)
	}
	return product, nil
}

func (r *productRepository) GetProductByCode(code string) (*models.Product, error) {
	product := &models.Product{}
	query := `SELECT ` + selectProductFields + ` FROM products WHERE code = $1`
	err := scanProduct(r.db.QueryRow(query, code), product)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by code '%s': %v", ErrDatabaseError, code, err)
	}
	return product, nil
}

func (r *productRepository) GetProducts(filters models.ProductFilters) ([]models.Product, int, error) {
	products := []models.Product{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + selectProductFields + `, COUNT(*) OVER() AS total_count FROM products`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *filters.Category)
		argCount++
	}
	if filters.SearchTerm != nil && strings.TrimSpace(*filters.SearchTerm) != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR code ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+strings.TrimSpace(*filters.SearchTerm)+"%")
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY name")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.PageSize)
		argCount++
		if filters.Page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (filters.Page-1)*filters.PageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var product models.Product
		if err := scanProduct(rows, &product, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating product rows: %v", ErrDatabaseError, err)
	}
	return products, totalCount, nil
}

func (r *productRepository) UpdateProduct(executor SQLExecutor, product *models.Product) error {
	query := `UPDATE products SET code = $1, name = $2, category = $3, price = $4, updated_at = $5 WHERE id = $6`
	product.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		product.Code, product.Name, product.Category, product.Price, product.UpdatedAt, product.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: product code '%s' already exists (constraint: %s)", ErrDuplicateKey, product.Code, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating product ID %d: %v", ErrDatabaseError, product.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) DeleteProduct(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) DecrementStock(executor SQLExecutor, productID int64, quantity int) (int64, error) {
	query := `UPDATE products SET stock = stock - $1, updated_at = $2
	          WHERE id = $3 AND stock >= $1`
	result, err := executor.Exec(query, quantity, time.Now(), productID)
	if err != nil {
		return 0, fmt.Errorf("%w: decrementing stock of product ID %d: %v", ErrDatabaseError, productID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected, nil
}

func (r *productRepository) IncrementStock(executor SQLExecutor, productID int64, quantity int) (int, error) {
	var newStock int
	query := `UPDATE products SET stock = stock + $1, updated_at = $2 WHERE id = $3 RETURNING stock`
	err := executor.QueryRow(query, quantity, time.Now(), productID).Scan(&newStock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: incrementing stock of product ID %d: %v", ErrDatabaseError, productID, err)
	}
	return newStock, nil
}

func (r *productRepository) CreatePurchase(executor SQLExecutor, purchase *models.Purchase) (int64, error) {
	query := `INSERT INTO purchases (product_id, employee_id, quantity, unit_cost, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	purchase.CreatedAt = time.Now()
	err := executor.QueryRow(query,
		purchase.ProductID, purchase.EmployeeID, purchase.Quantity, purchase.UnitCost, purchase.CreatedAt,
	).Scan(&purchase.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating purchase: %v", ErrDatabaseError, err)
	}
	return purchase.ID, nil
}

func (r *productRepository) GetPurchases(productID *int64, page, pageSize int) ([]models.Purchase, int, error) {
	purchases := []models.Purchase{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, product_id, employee_id, quantity, unit_cost, created_at, COUNT(*) OVER() AS total_count FROM purchases`)

	var args []interface{}
	argCount := 1
	if productID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE product_id = $%d", argCount))
		args = append(args, *productID)
		argCount++
	}
	queryBuilder.WriteString(" ORDER BY id DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying purchases: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var purchase models.Purchase
		if err := rows.Scan(&purchase.ID, &purchase.ProductID, &purchase.EmployeeID,
			&purchase.Quantity, &purchase.UnitCost, &purchase.CreatedAt, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning purchase: %v", ErrDatabaseError, err)
		}
		purchases = append(purchases, purchase)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating purchase rows: %v", ErrDatabaseError, err)
	}
	return purchases, totalCount, nil
}
