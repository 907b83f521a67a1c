package services

import (
	"testing"
	"time"

	"hotel_crm_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportFixture(t *testing.T) (ReportService, *fakeInvoiceRepo, *fakeSaleRepo, *fakeReservationRepo) {
	t.Helper()
	reservations := newFakeReservationRepo(nil)
	invoices := newFakeInvoiceRepo(reservations)
	sales := newFakeSaleRepo()
	svc := NewReportService(invoices, sales)
	return svc, invoices, sales, reservations
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRevenueReport(t *testing.T) {
	svc, invoices, _, reservations := newReportFixture(t)
	reservations.reservations[1] = &models.Reservation{ID: 1, StartDate: day(2024, 1, 10), EndDate: day(2024, 1, 13)}
	reservations.reservations[2] = &models.Reservation{ID: 2, StartDate: day(2024, 1, 20), EndDate: day(2024, 1, 22)}
	reservations.reservations[3] = &models.Reservation{ID: 3, StartDate: day(2024, 2, 10), EndDate: day(2024, 2, 12)}
	invoices.invoices[1] = &models.Invoice{ID: 1, ReservationID: 1, UserID: 7, Total: decimal.NewFromInt(300)}
	invoices.invoices[2] = &models.Invoice{ID: 2, ReservationID: 2, UserID: 8, Total: decimal.NewFromInt(150)}
	invoices.invoices[3] = &models.Invoice{ID: 3, ReservationID: 3, UserID: 8, Total: decimal.NewFromInt(999)}

	// The February stay falls outside the window and must not count.
	report, err := svc.RevenueBetween(ReportRangeRequest{StartDate: "2024-01-01", EndDate: "2024-02-01"})
	require.NoError(t, err)
	assert.Len(t, report.Invoices, 2)
	assert.True(t, report.Total.Equal(decimal.NewFromInt(450)))
}

func TestRevenueReportEmptyRange(t *testing.T) {
	svc, _, _, _ := newReportFixture(t)

	report, err := svc.RevenueBetween(ReportRangeRequest{StartDate: "2024-01-01", EndDate: "2024-02-01"})
	require.NoError(t, err)
	assert.Empty(t, report.Invoices)
	assert.True(t, report.Total.IsZero(), "no invoices still yields a zero-total report")
}

func TestRevenueReportInvalidRange(t *testing.T) {
	svc, _, _, _ := newReportFixture(t)

	_, err := svc.RevenueBetween(ReportRangeRequest{StartDate: "2024-02-01", EndDate: "2024-01-01"})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.RevenueBetween(ReportRangeRequest{StartDate: "bad", EndDate: "2024-01-01"})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestSalesSummary(t *testing.T) {
	svc, _, sales, _ := newReportFixture(t)
	sales.sales[1] = &models.Sale{ID: 1, Number: "s-1", Total: decimal.NewFromInt(23)}
	sales.sales[2] = &models.Sale{ID: 2, Number: "s-2", Total: decimal.NewFromInt(77)}

	summary, err := svc.SalesSummary(ReportRangeRequest{StartDate: "2024-01-01", EndDate: "2024-02-01"})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.SaleCount)
	assert.True(t, summary.Revenue.Equal(decimal.NewFromInt(100)))
}

func TestSalesSummaryInvalidRange(t *testing.T) {
	svc, _, _, _ := newReportFixture(t)

	_, err := svc.SalesSummary(ReportRangeRequest{StartDate: "2024-02-01", EndDate: "2024-02-01"})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
