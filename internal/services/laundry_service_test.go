package services

import (
	"testing"

	"hotel_crm_backend/internal/models"
	"hotel_crm_backend/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLaundryRepo struct {
	requests map[int64]*models.LaundryRequest
	links    map[int64][]models.ReservationLaundry
	nextID   int64
}

func newFakeLaundryRepo() *fakeLaundryRepo {
	return &fakeLaundryRepo{
		requests: map[int64]*models.LaundryRequest{},
		links:    map[int64][]models.ReservationLaundry{},
		nextID:   1,
	}
}

func (f *fakeLaundryRepo) CreateRequest(_ repositories.SQLExecutor, request *models.LaundryRequest) (int64, error) {
	request.ID = f.nextID
	f.nextID++
	f.requests[request.ID] = request
	return request.ID, nil
}

func (f *fakeLaundryRepo) GetRequestByID(id int64) (*models.LaundryRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *request
	return &copied, nil
}

func (f *fakeLaundryRepo) GetRequestsByUser(userID int64, _, _ int) ([]models.LaundryRequest, int, error) {
	requests := []models.LaundryRequest{}
	for _, request := range f.requests {
		if request.UserID == userID {
			requests = append(requests, *request)
		}
	}
	return requests, len(requests), nil
}

func (f *fakeLaundryRepo) UpdateRequest(_ repositories.SQLExecutor, request *models.LaundryRequest) error {
	if _, ok := f.requests[request.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *request
	f.requests[request.ID] = &copied
	return nil
}

func (f *fakeLaundryRepo) AttachToReservation(_ repositories.SQLExecutor, link *models.ReservationLaundry) (int64, error) {
	link.ID = int64(len(f.links[link.ReservationID]) + 1)
	f.links[link.ReservationID] = append(f.links[link.ReservationID], *link)
	return link.ID, nil
}

func (f *fakeLaundryRepo) GetReservationLaundry(reservationID int64) ([]models.ReservationLaundry, error) {
	return f.links[reservationID], nil
}

func newLaundryFixture(t *testing.T) (LaundryService, ReservationService, *fakeLaundryRepo) {
	t.Helper()
	rooms := newFakeRoomRepo(&models.Room{
		ID: 101, Number: "R101", Capacity: 2, NightlyRate: decimal.NewFromInt(100), Available: true,
	})
	reservations := newFakeReservationRepo(rooms)
	clients := newFakeClientRepo()
	db := newTestDB()
	laundry := newFakeLaundryRepo()
	laundrySvc := NewLaundryService(laundry, reservations, db)
	reservationSvc := NewReservationService(reservations, rooms, clients, db, fixedNow)
	return laundrySvc, reservationSvc, laundry
}

func TestCreateLaundryRequestStartsPending(t *testing.T) {
	svc, _, _ := newLaundryFixture(t)

	request, err := svc.CreateRequest(7, LaundryRequestInput{Description: "two shirts"})
	require.NoError(t, err)
	assert.Equal(t, models.LaundryStatusPending, request.Status)
	assert.False(t, request.Price.Valid, "requests start unpriced")
}

func TestUpdateLaundryRequest(t *testing.T) {
	svc, _, _ := newLaundryFixture(t)

	request, err := svc.CreateRequest(7, LaundryRequestInput{Description: "two shirts"})
	require.NoError(t, err)

	price := "15.00"
	updated, err := svc.UpdateRequest(request.ID, UpdateLaundryRequestInput{
		Description: "two shirts",
		Status:      string(models.LaundryStatusInProgress),
		Price:       &price,
	})
	require.NoError(t, err)
	assert.Equal(t, models.LaundryStatusInProgress, updated.Status)
	require.True(t, updated.Price.Valid)
	assert.True(t, updated.Price.Decimal.Equal(decimal.RequireFromString("15.00")))
}

func TestUpdateLaundryRequestInvalidStatus(t *testing.T) {
	svc, _, _ := newLaundryFixture(t)

	request, err := svc.CreateRequest(7, LaundryRequestInput{Description: "two shirts"})
	require.NoError(t, err)

	_, err = svc.UpdateRequest(request.ID, UpdateLaundryRequestInput{Description: "two shirts", Status: "lost"})
	assert.ErrorIs(t, err, ErrInvalidLaundryStatus)
}

func TestAttachLaundryToReservation(t *testing.T) {
	svc, reservationSvc, _ := newLaundryFixture(t)

	booked, err := reservationSvc.Book(7, "alice", BookRoomRequest{
		RoomID: 101, StartDate: "2024-01-01", EndDate: "2024-01-04",
	})
	require.NoError(t, err)

	request, err := svc.CreateRequest(7, LaundryRequestInput{Description: "two shirts"})
	require.NoError(t, err)
	price := "15.00"
	_, err = svc.UpdateRequest(request.ID, UpdateLaundryRequestInput{
		Description: "two shirts",
		Status:      string(models.LaundryStatusInProgress),
		Price:       &price,
	})
	require.NoError(t, err)

	link, err := svc.AttachToReservation(booked.ID, AttachLaundryInput{LaundryRequestID: request.ID, Quantity: 3})
	require.NoError(t, err)
	assert.True(t, link.Total.Equal(decimal.NewFromInt(45)), "total = quantity * price")

	links, err := svc.GetReservationLaundry(booked.ID)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestAttachUnpricedLaundryHasZeroTotal(t *testing.T) {
	svc, reservationSvc, _ := newLaundryFixture(t)

	booked, err := reservationSvc.Book(7, "alice", BookRoomRequest{
		RoomID: 101, StartDate: "2024-01-01", EndDate: "2024-01-04",
	})
	require.NoError(t, err)
	request, err := svc.CreateRequest(7, LaundryRequestInput{Description: "two shirts"})
	require.NoError(t, err)

	link, err := svc.AttachToReservation(booked.ID, AttachLaundryInput{LaundryRequestID: request.ID, Quantity: 3})
	require.NoError(t, err)
	assert.True(t, link.Total.IsZero())
}

func TestAttachLaundryValidation(t *testing.T) {
	svc, reservationSvc, _ := newLaundryFixture(t)

	booked, err := reservationSvc.Book(7, "alice", BookRoomRequest{
		RoomID: 101, StartDate: "2024-01-01", EndDate: "2024-01-04",
	})
	require.NoError(t, err)
	request, err := svc.CreateRequest(7, LaundryRequestInput{Description: "two shirts"})
	require.NoError(t, err)

	_, err = svc.AttachToReservation(booked.ID, AttachLaundryInput{LaundryRequestID: request.ID, Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AttachToReservation(999, AttachLaundryInput{LaundryRequestID: request.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrReservationNotFound)

	_, err = svc.AttachToReservation(booked.ID, AttachLaundryInput{LaundryRequestID: 999, Quantity: 1})
	assert.ErrorIs(t, err, ErrLaundryRequestNotFound)
}
