package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotel_crm_backend/internal/models"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// InvoiceRepository defines the interface for invoice-related database operations.
type InvoiceRepository interface {
	CreateInvoice(executor SQLExecutor, invoice *models.Invoice) (int64, error)
	GetInvoiceByID(id int64) (*models.Invoice, error)
	GetInvoiceByReservationID(reservationID int64) (*models.Invoice, error)
	GetInvoicesByUser(userID int64, page, pageSize int) ([]models.Invoice, int, error)

	// MarkPaid sets the paid flag for an invoice owned by the given user and
	// reports whether a row matched.
	MarkPaid(executor SQLExecutor, invoiceID, userID int64) (int64, error)

	// RevenueBetween returns the invoices whose reservation date range falls
	// within the bounds, along with the sum of their totals. The sum is zero
	// when no invoice matches.
	RevenueBetween(start, end time.Time) ([]models.Invoice, decimal.Decimal, error)
}

type invoiceRepository struct {
	db *sql.DB
}

// NewInvoiceRepository creates a new instance of InvoiceRepository.
func NewInvoiceRepository(db *sql.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

const selectInvoiceFields = `id, number, reservation_id, user_id, nights, nightly_rate, total, paid, created_at, updated_at`

func scanInvoice(row scanner, invoice *models.Invoice, extra ...interface{}) error {
	dest := []interface{}{
		&invoice.ID, &invoice.Number, &invoice.ReservationID, &invoice.UserID,
		&invoice.Nights, &invoice.NightlyRate, &invoice.Total, &invoice.Paid,
		&invoice.CreatedAt, &invoice.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *invoiceRepository) CreateInvoice(executor SQLExecutor, invoice *models.Invoice) (int64, error) {
	query := `INSERT INTO invoices (number, reservation_id, user_id, nights, nightly_rate, total, paid, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`
	currentTime := time.Now()
	invoice.CreatedAt = currentTime
	invoice.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		invoice.Number, invoice.ReservationID, invoice.UserID,
		invoice.Nights, invoice.NightlyRate, invoice.Total, invoice.Paid,
		invoice.CreatedAt, invoice.UpdatedAt,
	).Scan(&invoice.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: invoice for reservation %d already exists (constraint: %s)", ErrDuplicateKey, invoice.ReservationID, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating invoice: %v", ErrDatabaseError, err)
	}
	return invoice.ID, nil
}

func (r *invoiceRepository) GetInvoiceByID(id int64) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	query := `SELECT ` + selectInvoiceFields + ` FROM invoices WHERE id = $1`
	err := scanInvoice(r.db.QueryRow(query, id), invoice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting invoice by ID %d: %v", ErrDatabaseError, id, err)
	}
	return invoice, nil
}

func (r *invoiceRepository) GetInvoiceByReservationID(reservationID int64) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	query := `SELECT ` + selectInvoiceFields + ` FROM invoices WHERE reservation_id = $1`
	err := scanInvoice(r.db.QueryRow(query, reservationID), invoice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting invoice by reservation ID %d: %v", ErrDatabaseError, reservationID, err)
	}
	return invoice, nil
}

func (r *invoiceRepository) GetInvoicesByUser(userID int64, page, pageSize int) ([]models.Invoice, int, error) {
	invoices := []models.Invoice{}
	totalCount := 0
	query := `SELECT ` + selectInvoiceFields + `, COUNT(*) OVER() AS total_count
	          FROM invoices
	          WHERE user_id = $1
	          ORDER BY id DESC
	          LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying invoices for user %d: %v", ErrDatabaseError, userID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var invoice models.Invoice
		if err := scanInvoice(rows, &invoice, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning invoice: %v", ErrDatabaseError, err)
		}
		invoices = append(invoices, invoice)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating invoice rows: %v", ErrDatabaseError, err)
	}
	return invoices, totalCount, nil
}

func (r *invoiceRepository) MarkPaid(executor SQLExecutor, invoiceID, userID int64) (int64, error) {
	query := `UPDATE invoices SET paid = TRUE, updated_at = $1 WHERE id = $2 AND user_id = $3`
	result, err := executor.Exec(query, time.Now(), invoiceID, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: marking invoice ID %d paid: %v", ErrDatabaseError, invoiceID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected, nil
}

func (r *invoiceRepository) RevenueBetween(start, end time.Time) ([]models.Invoice, decimal.Decimal, error) {
	invoices := []models.Invoice{}
	query := `SELECT i.id, i.number, i.reservation_id, i.user_id, i.nights, i.nightly_rate, i.total, i.paid, i.created_at, i.updated_at
	          FROM invoices i
	          JOIN reservations rs ON i.reservation_id = rs.id
	          WHERE rs.start_date >= $1 AND rs.end_date <= $2
	          ORDER BY i.id`
	rows, err := r.db.Query(query, start, end)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("%w: querying revenue between %s and %s: %v",
			ErrDatabaseError, start.Format("2006-01-02"), end.Format("2006-01-02"), err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var invoice models.Invoice
		if err := scanInvoice(rows, &invoice); err != nil {
			return nil, decimal.Zero, fmt.Errorf("%w: scanning invoice: %v", ErrDatabaseError, err)
		}
		total = total.Add(invoice.Total)
		invoices = append(invoices, invoice)
	}
	if err = rows.Err(); err != nil {
		return nil, decimal.Zero, fmt.Errorf("%w: iterating invoice rows: %v", ErrDatabaseError, err)
	}
	return invoices, total, nil
}
