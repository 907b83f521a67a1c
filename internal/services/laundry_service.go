package services

import (
	"database/sql"
	"errors"
	"fmt"

	"hotel_crm_backend/internal/models"
	"hotel_crm_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// --- Custom Service Errors for Laundry ---
var (
	ErrLaundryRequestNotFound = errors.New("laundry request not found")
	ErrInvalidLaundryStatus   = errors.New("invalid laundry status")
)

// --- Laundry DTOs ---
type LaundryRequestInput struct {
	RoomID      *int64 `json:"room_id"`
	Description string `json:"description" binding:"required"`
}

type UpdateLaundryRequestInput struct {
	Description string  `json:"description" binding:"required"`
	Status      string  `json:"status" binding:"required"`
	Price       *string `json:"price"`
}

type AttachLaundryInput struct {
	LaundryRequestID int64 `json:"laundry_request_id" binding:"required"`
	Quantity         int   `json:"quantity" binding:"required"`
}

// --- LaundryService Interface ---
type LaundryService interface {
	CreateRequest(userID int64, input LaundryRequestInput) (*models.LaundryRequest, error)
	GetRequestByID(id int64) (*models.LaundryRequest, error)
	GetMyRequests(userID int64, page, pageSize int) ([]models.LaundryRequest, int, error)
	UpdateRequest(id int64, input UpdateLaundryRequestInput) (*models.LaundryRequest, error)

	AttachToReservation(reservationID int64, input AttachLaundryInput) (*models.ReservationLaundry, error)
	GetReservationLaundry(reservationID int64) ([]models.ReservationLaundry, error)
}

// --- laundryService Implementation ---
type laundryService struct {
	laundryRepo     repositories.LaundryRepository
	reservationRepo repositories.ReservationRepository
	db              *sql.DB
}

// NewLaundryService creates a new instance of LaundryService.
func NewLaundryService(lr repositories.LaundryRepository, rr repositories.ReservationRepository, db *sql.DB) LaundryService {
	return &laundryService{laundryRepo: lr, reservationRepo: rr, db: db}
}

func (s *laundryService) CreateRequest(userID int64, input LaundryRequestInput) (*models.LaundryRequest, error) {
	request := &models.LaundryRequest{
		UserID:      userID,
		RoomID:      input.RoomID,
		Description: input.Description,
		Status:      models.LaundryStatusPending,
	}
	if _, err := s.laundryRepo.CreateRequest(s.db, request); err != nil {
		return nil, fmt.Errorf("failed to create laundry request: %w", err)
	}
	return request, nil
}

func (s *laundryService) GetRequestByID(id int64) (*models.LaundryRequest, error) {
	request, err := s.laundryRepo.GetRequestByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrLaundryRequestNotFound
		}
		return nil, fmt.Errorf("failed to get laundry request by ID: %w", err)
	}
	return request, nil
}

func (s *laundryService) GetMyRequests(userID int64, page, pageSize int) ([]models.LaundryRequest, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	requests, totalCount, err := s.laundryRepo.GetRequestsByUser(userID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get laundry requests for user %d: %w", userID, err)
	}
	return requests, totalCount, nil
}

func (s *laundryService) UpdateRequest(id int64, input UpdateLaundryRequestInput) (*models.LaundryRequest, error) {
	if !models.IsValidLaundryStatus(input.Status) {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidLaundryStatus, input.Status)
	}

	request, err := s.GetRequestByID(id)
	if err != nil {
		return nil, err
	}

	request.Description = input.Description
	request.Status = models.LaundryStatus(input.Status)
	if input.Price != nil {
		price, err := decimal.NewFromString(*input.Price)
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("%w: invalid price '%s'", ErrInvalidQuantity, *input.Price)
		}
		request.Price = decimal.NewNullDecimal(price)
	}

	if err := s.laundryRepo.UpdateRequest(s.db, request); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrLaundryRequestNotFound
		}
		return nil, fmt.Errorf("failed to update laundry request %d: %w", id, err)
	}
	return request, nil
}

// AttachToReservation links a laundry request to a reservation with a
// quantity. The line total is quantity times the service price, or zero if
// the service has not been priced yet.
func (s *laundryService) AttachToReservation(reservationID int64, input AttachLaundryInput) (*models.ReservationLaundry, error) {
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, input.Quantity)
	}

	if _, err := s.reservationRepo.GetReservationByID(reservationID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation %d: %w", reservationID, err)
	}

	request, err := s.GetRequestByID(input.LaundryRequestID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	if request.Price.Valid {
		total = request.Price.Decimal.Mul(decimal.NewFromInt(int64(input.Quantity)))
	}

	link := &models.ReservationLaundry{
		ReservationID:    reservationID,
		LaundryRequestID: input.LaundryRequestID,
		Quantity:         input.Quantity,
		Total:            total,
	}
	if _, err := s.laundryRepo.AttachToReservation(s.db, link); err != nil {
		return nil, fmt.Errorf("failed to attach laundry request %d to reservation %d: %w",
			input.LaundryRequestID, reservationID, err)
	}
	link.LaundryRequest = request
	return link, nil
}

func (s *laundryService) GetReservationLaundry(reservationID int64) ([]models.ReservationLaundry, error) {
	links, err := s.laundryRepo.GetReservationLaundry(reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get laundry for reservation %d: %w", reservationID, err)
	}
	return links, nil
}
