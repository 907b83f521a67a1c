package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel_crm_backend/internal/models"

	"github.com/shopspring/decimal"
)

// SaleRepository defines the interface for sale-related database operations.
type SaleRepository interface {
	CreateSale(executor SQLExecutor, sale *models.Sale) (int64, error)
	CreateSaleItem(executor SQLExecutor, item *models.SaleLineItem) (int64, error)
	GetSaleByID(saleID int64) (*models.Sale, error)
	GetSaleItemsBySaleID(saleID int64) ([]models.SaleLineItem, error)
	GetSales(filters models.SaleFilters) ([]models.Sale, int, error)
	DeleteSale(executor SQLExecutor, saleID int64) error
	DeleteSaleItemsBySaleID(executor SQLExecutor, saleID int64) (int64, error)

	// SummaryBetween aggregates sale count and revenue over a closed date range.
	SummaryBetween(start, end time.Time) (int, decimal.Decimal, error)
}

type saleRepository struct {
	db *sql.DB
}

// NewSaleRepository creates a new instance of SaleRepository.
func NewSaleRepository(db *sql.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) CreateSale(executor SQLExecutor, sale *models.Sale) (int64, error) {
	query := `INSERT INTO sales (number, employee_id, subtotal, tax, total, sold_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	currentTime := time.Now()
	if sale.SoldAt.IsZero() {
		sale.SoldAt = currentTime
	}
	sale.CreatedAt = currentTime
	sale.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		sale.Number, sale.EmployeeID, sale.Subtotal, sale.Tax, sale.Total,
		sale.SoldAt, sale.CreatedAt, sale.UpdatedAt,
	).Scan(&sale.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating sale: %v", ErrDatabaseError, err)
	}
	return sale.ID, nil
}

func (r *saleRepository) CreateSaleItem(executor SQLExecutor, item *models.SaleLineItem) (int64, error) {
	query := `INSERT INTO sale_line_items (sale_id, product_id, quantity, unit_price, subtotal, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	item.CreatedAt = time.Now()
	err := executor.QueryRow(query,
		item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal, item.CreatedAt,
	).Scan(&item.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating sale line item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *saleRepository) GetSaleByID(saleID int64) (*models.Sale, error) {
	sale := &models.Sale{}
	query := `SELECT id, number, employee_id, subtotal, tax, total, sold_at, created_at, updated_at
	          FROM sales WHERE id = $1`
	err := r.db.QueryRow(query, saleID).Scan(
		&sale.ID, &sale.Number, &sale.EmployeeID, &sale.Subtotal, &sale.Tax, &sale.Total,
		&sale.SoldAt, &sale.CreatedAt, &sale.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting sale by ID %d: %v", ErrDatabaseError, saleID, err)
	}

	items, err := r.GetSaleItemsBySaleID(saleID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

func (r *saleRepository) GetSaleItemsBySaleID(saleID int64) ([]models.SaleLineItem, error) {
	items := []models.SaleLineItem{}
	query := `SELECT li.id, li.sale_id, li.product_id, li.quantity, li.unit_price, li.subtotal, li.created_at,
	                 p.id, p.code, p.name, p.category, p.price, p.stock, p.created_at, p.updated_at
	          FROM sale_line_items li
	          JOIN products p ON li.product_id = p.id
	          WHERE li.sale_id = $1
	          ORDER BY li.id`
	rows, err := r.db.Query(query, saleID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying line items of sale %d: %v", ErrDatabaseError, saleID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.SaleLineItem
		var product models.Product
		if err := rows.Scan(
			&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.Subtotal, &item.CreatedAt,
			&product.ID, &product.Code, &product.Name, &product.Category, &product.Price, &product.Stock,
			&product.CreatedAt, &product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning sale line item: %v", ErrDatabaseError, err)
		}
		item.Product = &product
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sale line item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *saleRepository) GetSales(filters models.SaleFilters) ([]models.Sale, int, error) {
	sales := []models.Sale{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, number, employee_id, subtotal, tax, total, sold_at, created_at, updated_at,
	                                 COUNT(*) OVER() AS total_count
	                          FROM sales`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argCount))
		args = append(args, *filters.EmployeeID)
		argCount++
	}
	if filters.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("sold_at >= $%d", argCount))
		args = append(args, *filters.DateFrom)
		argCount++
	}
	if filters.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("sold_at <= $%d", argCount))
		args = append(args, *filters.DateTo)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY sold_at DESC")

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
		return nil, 0, fmt.Errorf("%w: querying sales: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var sale models.Sale
		if err := rows.Scan(
			&sale.ID, &sale.Number, &sale.EmployeeID, &sale.Subtotal, &sale.Tax, &sale.Total,
			&sale.SoldAt, &sale.CreatedAt, &sale.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning sale: %v", ErrDatabaseError, err)
		}
		sales = append(sales, sale)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating sale rows: %v", ErrDatabaseError, err)
	}
	return sales, totalCount, nil
}

func (r *saleRepository) DeleteSale(executor SQLExecutor, saleID int64) error {
	result, err := executor.Exec(`DELETE FROM sales WHERE id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("%w: deleting sale ID %d: %v", ErrDatabaseError, saleID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *saleRepository) DeleteSaleItemsBySaleID(executor SQLExecutor, saleID int64) (int64, error) {
	result, err := executor.Exec(`DELETE FROM sale_line_items WHERE sale_id = $1`, saleID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting line items of sale %d: %v", ErrDatabaseError, saleID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected, nil
}

func (r *saleRepository) SummaryBetween(start, end time.Time) (int, decimal.Decimal, error) {
	var count int
	var revenue decimal.Decimal
	query := `SELECT COUNT(*), COALESCE(SUM(total), 0) FROM sales WHERE sold_at >= $1 AND sold_at <= $2`
	err := r.db.QueryRow(query, start, end).Scan(&count, &revenue)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("%w: summarising sales between %s and %s: %v",
			ErrDatabaseError, start.Format("2006-01-02"), end.Format("2006-01-02"), err)
	}
	return count, revenue, nil
}
