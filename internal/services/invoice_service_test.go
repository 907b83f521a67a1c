package services

import (
	"testing"
	"time"

	"hotel_crm_backend/internal/models"
	"hotel_crm_backend/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoiceRepo struct {
	invoices     map[int64]*models.Invoice
	reservations *fakeReservationRepo
	nextID       int64
}

func newFakeInvoiceRepo(reservations *fakeReservationRepo) *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[int64]*models.Invoice{}, reservations: reservations, nextID: 1}
}

func (f *fakeInvoiceRepo) CreateInvoice(_ repositories.SQLExecutor, invoice *models.Invoice) (int64, error) {
	for _, existing := range f.invoices {
		if existing.ReservationID == invoice.ReservationID {
			return 0, repositories.ErrDuplicateKey
		}
	}
	invoice.ID = f.nextID
	f.nextID++
	f.invoices[invoice.ID] = invoice
	return invoice.ID, nil
}

func (f *fakeInvoiceRepo) GetInvoiceByID(id int64) (*models.Invoice, error) {
	invoice, ok := f.invoices[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return invoice, nil
}

func (f *fakeInvoiceRepo) GetInvoiceByReservationID(reservationID int64) (*models.Invoice, error) {
	for _, invoice := range f.invoices {
		if invoice.ReservationID == reservationID {
			return invoice, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeInvoiceRepo) GetInvoicesByUser(userID int64, _, _ int) ([]models.Invoice, int, error) {
	invoices := []models.Invoice{}
	for _, invoice := range f.invoices {
		if invoice.UserID == userID {
			invoices = append(invoices, *invoice)
		}
	}
	return invoices, len(invoices), nil
}

func (f *fakeInvoiceRepo) MarkPaid(_ repositories.SQLExecutor, invoiceID, userID int64) (int64, error) {
	invoice, ok := f.invoices[invoiceID]
	if !ok || invoice.UserID != userID {
		return 0, nil
	}
	invoice.Paid = true
	return 1, nil
}

func (f *fakeInvoiceRepo) RevenueBetween(start, end time.Time) ([]models.Invoice, decimal.Decimal, error) {
	invoices := []models.Invoice{}
	total := decimal.Zero
	for _, invoice := range f.invoices {
		reservation, ok := f.reservations.reservations[invoice.ReservationID]
		if !ok || reservation.StartDate.Before(start) || reservation.EndDate.After(end) {
			continue
		}
		invoices = append(invoices, *invoice)
		total = total.Add(invoice.Total)
	}
	return invoices, total, nil
}

func newInvoiceFixture(t *testing.T) (InvoiceService, ReservationService, *fakeInvoiceRepo, *fakeRoomRepo) {
	t.Helper()
	rooms := newFakeRoomRepo(&models.Room{
		ID:          101,
		Number:      "R101",
		Capacity:    2,
		NightlyRate: decimal.NewFromInt(100),
		Available:   true,
	})
	reservations := newFakeReservationRepo(rooms)
	clients := newFakeClientRepo()
	invoices := newFakeInvoiceRepo(reservations)
	db := newTestDB()
	reservationSvc := NewReservationService(reservations, rooms, clients, db, fixedNow)
	invoiceSvc := NewInvoiceService(invoices, reservations, clients, db)
	return invoiceSvc, reservationSvc, invoices, rooms
}

func TestInvoiceForSnapshotsRateAndNights(t *testing.T) {
	invoiceSvc, reservationSvc, _, _ := newInvoiceFixture(t)

	booked, err := reservationSvc.Book(7, "alice", BookRoomRequest{
		RoomID:    101,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-04",
	})
	require.NoError(t, err)

	invoice, err := invoiceSvc.InvoiceFor(7, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, invoice.Nights)
	assert.True(t, invoice.NightlyRate.Equal(decimal.NewFromInt(100)))
	assert.True(t, invoice.Total.Equal(decimal.NewFromInt(300)), "total = nights * rate")
	assert.False(t, invoice.Paid)
	assert.NotEmpty(t, invoice.Number)
}

func TestInvoiceForIsIdempotent(t *testing.T) {
	invoiceSvc, reservationSvc, _, rooms := newInvoiceFixture(t)

	booked, err := reservationSvc.Book(7, "alice", BookRoomRequest{
		RoomID: 101, StartDate: "2024-01-01", EndDate: "2024-01-04",
	})
	require.NoError(t, err)

	first, err := invoiceSvc.InvoiceFor(7, booked.ID)
	require.NoError(t, err)

	// Raising the rate afterwards must not change the existing invoice.
	rooms.rooms[101].NightlyRate = decimal.NewFromInt(500)

	second, err := invoiceSvc.InvoiceFor(7, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Number, second.Number)
	assert.True(t, second.Total.Equal(decimal.NewFromInt(300)))
}

func TestInvoiceForUnknownReservation(t *testing.T) {
	invoiceSvc, reservationSvc, _, _ := newInvoiceFixture(t)

	_, err := reservationSvc.Book(7, "alice", BookRoomRequest{
		RoomID: 101, StartDate: "2024-01-01", EndDate: "2024-01-04",
	})
	require.NoError(t, err)

	_, err = invoiceSvc.InvoiceFor(7, 999)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestInvoiceForSomeoneElsesReservation(t *testing.T) {
	invoiceSvc, reservationSvc, _, _ := newInvoiceFixture(t)

	booked, err := reservationSvc.Book(7, "alice", BookRoomRequest{
		RoomID: 101, StartDate: "2024-01-01", EndDate: "2024-01-04",
	})
	require.NoError(t, err)

	// Bob gets a client record of his own, then asks for Alice's invoice.
	_, err = reservationSvc.GetMyReservations(8, "bob")
	require.NoError(t, err)

	_, err = invoiceSvc.InvoiceFor(8, booked.ID)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestPayInvoice(t *testing.T) {
	invoiceSvc, reservationSvc, _, _ := newInvoiceFixture(t)

	booked, err := reservationSvc.Book(7, "alice", BookRoomRequest{
		RoomID: 101, StartDate: "2024-01-01", EndDate: "2024-01-04",
	})
	require.NoError(t, err)

	invoice, err := invoiceSvc.InvoiceFor(7, booked.ID)
	require.NoError(t, err)

	paid, err := invoiceSvc.Pay(7, invoice.ID)
	require.NoError(t, err)
	assert.True(t, paid.Paid)

	// Paying again stays paid and still succeeds.
	again, err := invoiceSvc.Pay(7, invoice.ID)
	require.NoError(t, err)
	assert.True(t, again.Paid)
}

func TestPayInvoiceOwnershipGuard(t *testing.T) {
	invoiceSvc, reservationSvc, _, _ := newInvoiceFixture(t)

	booked, err := reservationSvc.Book(7, "alice", BookRoomRequest{
		RoomID: 101, StartDate: "2024-01-01", EndDate: "2024-01-04",
	})
	require.NoError(t, err)
	invoice, err := invoiceSvc.InvoiceFor(7, booked.ID)
	require.NoError(t, err)

	_, err = invoiceSvc.Pay(8, invoice.ID)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)

	_, err = invoiceSvc.Pay(7, 999)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}
