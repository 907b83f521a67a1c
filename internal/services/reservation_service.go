package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotel_crm_backend/internal/models"
	"hotel_crm_backend/internal/repositories"
)

// --- Custom Service Errors for Reservations ---
var (
	ErrReservationNotFound        = errors.New("reservation not found")
	ErrRoomUnavailable            = errors.New("room is not available")
	ErrInvalidDateRange           = errors.New("invalid date range: check-out must be after check-in")
	ErrRoomForReservationNotFound = errors.New("room specified for reservation not found")
)

// --- Reservation DTOs ---
type BookRoomRequest struct {
	RoomID    int64  `json:"room_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" binding:"required"`   // YYYY-MM-DD
}

type ModifyReservationRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// --- ReservationService Interface ---
type ReservationService interface {
	Book(userID int64, userName string, req BookRoomRequest) (*models.Reservation, error)
	Cancel(userID, reservationID int64) (*models.Reservation, error)
	Modify(userID, reservationID int64, req ModifyReservationRequest) (*models.Reservation, error)
	Purchase(userID, reservationID int64) (*models.Reservation, error)
	GetMyReservations(userID int64, userName string) ([]models.Reservation, error)
	GetReservationByID(reservationID int64) (*models.Reservation, error)
	GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error)
}

// --- reservationService Implementation ---
type reservationService struct {
	reservationRepo repositories.ReservationRepository
	roomRepo        repositories.RoomRepository
	clientRepo      repositories.ClientRepository
	db              *sql.DB
	now             func() time.Time
}

// NewReservationService creates a new instance of ReservationService. The now
// function supplies the current time to every date rule so tests can pin it.
func NewReservationService(
	rr repositories.ReservationRepository,
	roomRepo repositories.RoomRepository,
	cr repositories.ClientRepository,
	db *sql.DB,
	now func() time.Time,
) ReservationService {
	if now == nil {
		now = time.Now
	}
	return &reservationService{
		reservationRepo: rr,
		roomRepo:        roomRepo,
		clientRepo:      cr,
		db:              db,
		now:             now,
	}
}

const reservationDateLayout = "2006-01-02"

func parseReservationDates(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(reservationDateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date: %w: %v", ErrInvalidDateRange, err)
	}
	end, err := time.Parse(reservationDateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date: %w: %v", ErrInvalidDateRange, err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return start, end, nil
}

// Book creates a reservation for the caller's client record. Flipping the
// room's availability and inserting the reservation happen in one
// transaction; the flip is conditioned on the flag still being true, so two
// concurrent requests against the same room cannot both succeed.
func (s *reservationService) Book(userID int64, userName string, req BookRoomRequest) (*models.Reservation, error) {
	start, end, err := parseReservationDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	client, err := s.clientRepo.GetOrCreateByUserID(tx, userID, userName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve client for user %d: %w", userID, err)
	}

	rowsFlipped, err := s.roomRepo.MarkUnavailable(tx, req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve room %d: %w", req.RoomID, err)
	}
	if rowsFlipped == 0 {
		// Either the room does not exist or someone else holds it.
		if _, getErr := s.roomRepo.GetRoomByID(req.RoomID); errors.Is(getErr, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrRoomForReservationNotFound, req.RoomID)
		}
		return nil, ErrRoomUnavailable
	}

	reservation := &models.Reservation{
		ClientID:  client.ID,
		RoomID:    req.RoomID,
		StartDate: start,
		EndDate:   end,
		Status:    models.ReservationStatusReserved,
	}
	if _, err := s.reservationRepo.CreateReservation(tx, reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reservation transaction: %w", err)
	}
	return s.reservationRepo.GetReservationByID(reservation.ID)
}

// Cancel moves a reservation owned by the caller from reserved to cancelled
// and restores the room's availability. A reservation that is not in the
// reserved state is reported as not found, so cancelling twice fails the
// second time.
func (s *reservationService) Cancel(userID, reservationID int64) (*models.Reservation, error) {
	return s.closeReservation(userID, reservationID, models.ReservationStatusCancelled)
}

// Purchase moves a reservation owned by the caller from reserved to
// purchased. Like cancellation it is terminal and frees the room: only a
// reservation in the reserved state keeps a room unavailable.
func (s *reservationService) Purchase(userID, reservationID int64) (*models.Reservation, error) {
	return s.closeReservation(userID, reservationID, models.ReservationStatusPurchased)
}

func (s *reservationService) closeReservation(userID, reservationID int64, to models.ReservationStatus) (*models.Reservation, error) {
	reservation, err := s.getOwnedActive(userID, reservationID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	rowsUpdated, err := s.reservationRepo.UpdateStatus(tx, reservationID, models.ReservationStatusReserved, to)
	if err != nil {
		return nil, fmt.Errorf("failed to update reservation %d status: %w", reservationID, err)
	}
	if rowsUpdated == 0 {
		return nil, ErrReservationNotFound
	}

	if err := s.roomRepo.MarkAvailable(tx, reservation.RoomID); err != nil {
		return nil, fmt.Errorf("failed to release room %d: %w", reservation.RoomID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reservation transaction: %w", err)
	}
	return s.reservationRepo.GetReservationByID(reservationID)
}

// Modify overwrites the dates of an active reservation owned by the caller.
// The new range gets the same validation as booking.
func (s *reservationService) Modify(userID, reservationID int64, req ModifyReservationRequest) (*models.Reservation, error) {
	start, end, err := parseReservationDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.getOwnedActive(userID, reservationID); err != nil {
		return nil, err
	}

	rowsUpdated, err := s.reservationRepo.UpdateDates(s.db, reservationID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to update reservation %d dates: %w", reservationID, err)
	}
	if rowsUpdated == 0 {
		return nil, ErrReservationNotFound
	}
	return s.reservationRepo.GetReservationByID(reservationID)
}

// getOwnedActive fetches a reservation owned by the caller's client record,
// rejecting reservations in a terminal state the same way as missing ones.
func (s *reservationService) getOwnedActive(userID, reservationID int64) (*models.Reservation, error) {
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
	if reservation.Status != models.ReservationStatusReserved {
		return nil, ErrReservationNotFound
	}
	return reservation, nil
}

func (s *reservationService) GetMyReservations(userID int64, userName string) ([]models.Reservation, error) {
	client, err := s.clientRepo.GetOrCreateByUserID(s.db, userID, userName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve client for user %d: %w", userID, err)
	}
	reservations, err := s.reservationRepo.GetActiveByClient(client.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations for client %d: %w", client.ID, err)
	}
	return reservations, nil
}

func (s *reservationService) GetReservationByID(reservationID int64) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation by ID: %w", err)
	}
	return reservation, nil
}

func (s *reservationService) GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 10
	}
	reservations, totalCount, err := s.reservationRepo.GetReservations(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get reservations: %w", err)
	}
	return reservations, totalCount, nil
}
