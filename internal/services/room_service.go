package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotel_crm_backend/internal/models"
	"hotel_crm_backend/internal/repositories"
	"hotel_crm_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// --- Custom Service Errors for Rooms ---
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrDuplicateRoomNumber = errors.New("room number already exists")
	ErrCheckInPast         = errors.New("check-in date must not be in the past")
)

// --- Room DTOs ---
type RoomRequest struct {
	Number      string `json:"number" binding:"required"`
	RoomType    string `json:"room_type"`
	Capacity    int    `json:"capacity" binding:"required,gt=0"`
	NightlyRate string `json:"nightly_rate" binding:"required"`
	Available   *bool  `json:"available"`
	Description string `json:"description"`
}

type RoomSearchRequest struct {
	CheckIn  string `form:"check_in" binding:"required"`
	CheckOut string `form:"check_out" binding:"required"`
	Guests   int    `form:"guests"`
}

// --- RoomService Interface ---
type RoomService interface {
	CreateRoom(req RoomRequest) (*models.Room, error)
	GetRoomByID(id int64) (*models.Room, error)
	GetRooms(filters models.RoomFilters) ([]models.Room, int, error)
	SearchAvailable(req RoomSearchRequest) ([]models.Room, error)
	UpdateRoom(id int64, req RoomRequest) (*models.Room, error)
	DeleteRoom(id int64) error
}

// --- roomService Implementation ---
type roomService struct {
	roomRepo repositories.RoomRepository
	db       *sql.DB
	now      func() time.Time
}

// NewRoomService creates a new instance of RoomService.
func NewRoomService(rr repositories.RoomRepository, db *sql.DB, now func() time.Time) RoomService {
	if now == nil {
		now = time.Now
	}
	return &roomService{roomRepo: rr, db: db, now: now}
}

func parseNightlyRate(raw string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid nightly rate '%s'", ErrInvalidQuantity, raw)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: nightly rate must not be negative", ErrInvalidQuantity)
	}
	return rate, nil
}

func (s *roomService) CreateRoom(req RoomRequest) (*models.Room, error) {
	rate, err := parseNightlyRate(req.NightlyRate)
	if err != nil {
		return nil, err
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	room := &models.Room{
		Number:      req.Number,
		RoomType:    req.RoomType,
		Capacity:    req.Capacity,
		NightlyRate: rate,
		Available:   available,
		Description: utils.NewNullString(req.Description),
	}
	if _, err := s.roomRepo.CreateRoom(s.db, room); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateRoomNumber, req.Number)
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return room, nil
}

func (s *roomService) GetRoomByID(id int64) (*models.Room, error) {
	room, err := s.roomRepo.GetRoomByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room by ID: %w", err)
	}
	return room, nil
}

func (s *roomService) GetRooms(filters models.RoomFilters) ([]models.Room, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 10
	}
	rooms, totalCount, err := s.roomRepo.GetRooms(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get rooms: %w", err)
	}
	return rooms, totalCount, nil
}

// SearchAvailable lists free rooms that fit the requested party. The
// check-in must not lie in the past and the check-out must come after it.
func (s *roomService) SearchAvailable(req RoomSearchRequest) ([]models.Room, error) {
	checkIn, _, err := parseReservationDates(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	// Check-in dates parse as UTC midnight, so today must be built from the
	// clock's calendar date rather than a truncation against the UTC epoch.
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if checkIn.Before(today) {
		return nil, ErrCheckInPast
	}

	guests := req.Guests
	if guests <= 0 {
		guests = 1
	}
	rooms, err := s.roomRepo.SearchAvailable(guests)
	if err != nil {
		return nil, fmt.Errorf("failed to search available rooms: %w", err)
	}
	return rooms, nil
}

func (s *roomService) UpdateRoom(id int64, req RoomRequest) (*models.Room, error) {
	rate, err := parseNightlyRate(req.NightlyRate)
	if err != nil {
		return nil, err
	}

	existing, err := s.GetRoomByID(id)
	if err != nil {
		return nil, err
	}
	available := existing.Available
	if req.Available != nil {
		available = *req.Available
	}

	room := &models.Room{
		ID:          id,
		Number:      req.Number,
		RoomType:    req.RoomType,
		Capacity:    req.Capacity,
		NightlyRate: rate,
		Available:   available,
		Description: utils.NewNullString(req.Description),
	}
	if err := s.roomRepo.UpdateRoom(s.db, room); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateRoomNumber, req.Number)
		}
		return nil, fmt.Errorf("failed to update room %d: %w", id, err)
	}
	return s.roomRepo.GetRoomByID(id)
}

func (s *roomService) DeleteRoom(id int64) error {
	if err := s.roomRepo.DeleteRoom(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("failed to delete room %d: %w", id, err)
	}
	return nil
}
