package services

import (
	"fmt"

	"hotel_crm_backend/internal/models"
	"hotel_crm_backend/internal/repositories"
)

// --- Report DTOs ---
type ReportRangeRequest struct {
	StartDate string `form:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string `form:"end_date" binding:"required"`   // YYYY-MM-DD
}

// --- ReportService Interface ---
type ReportService interface {
	RevenueBetween(req ReportRangeRequest) (*models.RevenueReport, error)
	SalesSummary(req ReportRangeRequest) (*models.SalesSummary, error)
}

// --- reportService Implementation ---
type reportService struct {
	invoiceRepo repositories.InvoiceRepository
	saleRepo    repositories.SaleRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(ir repositories.InvoiceRepository, sr repositories.SaleRepository) ReportService {
	return &reportService{invoiceRepo: ir, saleRepo: sr}
}

// RevenueBetween sums the invoices whose reservation dates fall entirely
// inside the range. An empty range is a valid report with a zero total.
func (s *reportService) RevenueBetween(req ReportRangeRequest) (*models.RevenueReport, error) {
	start, end, err := parseReservationDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	invoices, total, err := s.invoiceRepo.RevenueBetween(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to build revenue report: %w", err)
	}
	return &models.RevenueReport{
		StartDate: start,
		EndDate:   end,
		Invoices:  invoices,
		Total:     total,
	}, nil
}

func (s *reportService) SalesSummary(req ReportRangeRequest) (*models.SalesSummary, error) {
	start, end, err := parseReservationDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	count, revenue, err := s.saleRepo.SummaryBetween(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to build sales summary: %w", err)
	}
	return &models.SalesSummary{
		StartDate: start,
		EndDate:   end,
		SaleCount: count,
		Revenue:   revenue,
	}, nil
}
