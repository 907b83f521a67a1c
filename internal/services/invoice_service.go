package services

import (
	"database/sql"
	"errors"
	"fmt"

	"hotel_crm_backend/internal/models"
	"hotel_crm_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Custom Service Errors for Invoices ---
var (
	ErrInvoiceNotFound = errors.New("invoice not found")
)

// --- InvoiceService Interface ---
type InvoiceService interface {
	InvoiceFor(userID, reservationID int64) (*models.Invoice, error)
	Pay(userID, invoiceID int64) (*models.Invoice, error)
	ListMine(userID int64, page, pageSize int) ([]models.Invoice, int, error)
	GetInvoiceByID(invoiceID int64) (*models.Invoice, error)
}

// --- invoiceService Implementation ---
type invoiceService struct {
	invoiceRepo     repositories.InvoiceRepository
	reservationRepo repositories.ReservationRepository
	clientRepo      repositories.ClientRepository
	db              *sql.DB
}

// NewInvoiceService creates a new instance of InvoiceService.
func NewInvoiceService(
	ir repositories.InvoiceRepository,
	rr repositories.ReservationRepository,
	cr repositories.ClientRepository,
	db *sql.DB,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:     ir,
		reservationRepo: rr,
		clientRepo:      cr,
		db:              db,
	}
}

// InvoiceFor returns the invoice for a reservation owned by the caller,
// creating it on first request. The nights and nightly rate are snapshotted
// at creation time, so repeating the call always returns the same bill even
// if the room's rate changes afterwards.
func (s *invoiceService) InvoiceFor(userID, reservationID int64) (*models.Invoice, error) {
	client, err := s.clientRepo.GetClientByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to resolve client for user %d: %w", userID, err)
	}

	reservation, err := s.reservationRepo.GetOwnedReservation(reservationID, client.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation %d: %w", reservationID, err)
	}

	existing, err := s.invoiceRepo.GetInvoiceByReservationID(reservationID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up invoice for reservation %d: %w", reservationID, err)
	}

	if reservation.Room == nil {
		return nil, fmt.Errorf("failed to build invoice: reservation %d has no room data", reservationID)
	}

	nights := reservation.Nights()
	invoice := &models.Invoice{
		Number:        uuid.NewString(),
		ReservationID: reservationID,
		UserID:        userID,
		Nights:        nights,
		NightlyRate:   reservation.Room.NightlyRate,
		Total:         reservation.Room.NightlyRate.Mul(decimal.NewFromInt(int64(nights))),
		Paid:          false,
	}
	if _, err := s.invoiceRepo.CreateInvoice(s.db, invoice); err != nil {
		// Another request created the invoice between the lookup and the
		// insert. The existing snapshot wins.
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return s.invoiceRepo.GetInvoiceByReservationID(reservationID)
		}
		return nil, fmt.Errorf("failed to create invoice for reservation %d: %w", reservationID, err)
	}
	return invoice, nil
}

// Pay marks an invoice owned by the caller as paid. Paying an already paid
// invoice is a no-op that still succeeds.
func (s *invoiceService) Pay(userID, invoiceID int64) (*models.Invoice, error) {
	rowsUpdated, err := s.invoiceRepo.MarkPaid(s.db, invoiceID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark invoice %d paid: %w", invoiceID, err)
	}
	if rowsUpdated == 0 {
		return nil, ErrInvoiceNotFound
	}
	invoice, err := s.invoiceRepo.GetInvoiceByID(invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %d: %w", invoiceID, err)
	}
	return invoice, nil
}

func (s *invoiceService) ListMine(userID int64, page, pageSize int) ([]models.Invoice, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	invoices, totalCount, err := s.invoiceRepo.GetInvoicesByUser(userID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices for user %d: %w", userID, err)
	}
	return invoices, totalCount, nil
}

func (s *invoiceService) GetInvoiceByID(invoiceID int64) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetInvoiceByID(invoiceID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice by ID: %w", err)
	}
	return invoice, nil
}
