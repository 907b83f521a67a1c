package services

import (
	"testing"
	"time"

	"hotel_crm_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func newReservationFixture(t *testing.T) (ReservationService, *fakeRoomRepo, *fakeReservationRepo, *fakeClientRepo) {
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
	svc := NewReservationService(reservations, rooms, clients, newTestDB(), fixedNow)
	return svc, rooms, reservations, clients
}

func TestBookRoom(t *testing.T) {
	svc, rooms, _, _ := newReservationFixture(t)

	reservation, err := svc.Book(7, "alice", BookRoomRequest{
		RoomID:    101,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-04",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusReserved, reservation.Status)
	assert.Equal(t, 3, reservation.Nights())

	room, err := rooms.GetRoomByID(101)
	require.NoError(t, err)
	assert.False(t, room.Available, "booked room must stop being available")
}

func TestBookRoomUnavailable(t *testing.T) {
	svc, _, _, _ := newReservationFixture(t)

	_, err := svc.Book(7, "alice", BookRoomRequest{RoomID: 101, StartDate: "2024-01-01", EndDate: "2024-01-04"})
	require.NoError(t, err)

	_, err = svc.Book(8, "bob", BookRoomRequest{RoomID: 101, StartDate: "2024-02-01", EndDate: "2024-02-03"})
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestBookRoomNotFound(t *testing.T) {
	svc, _, _, _ := newReservationFixture(t)

	_, err := svc.Book(7, "alice", BookRoomRequest{RoomID: 999, StartDate: "2024-01-01", EndDate: "2024-01-04"})
	assert.ErrorIs(t, err, ErrRoomForReservationNotFound)
}

func TestBookRoomInvalidRange(t *testing.T) {
	svc, _, _, _ := newReservationFixture(t)

	cases := []struct {
		name  string
		start string
		end   string
	}{
		{"end before start", "2024-01-04", "2024-01-01"},
		{"zero nights", "2024-01-01", "2024-01-01"},
		{"garbage start", "not-a-date", "2024-01-04"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Book(7, "alice", BookRoomRequest{RoomID: 101, StartDate: tc.start, EndDate: tc.end})
			assert.ErrorIs(t, err, ErrInvalidDateRange)
		})
	}
}

func TestCancelReservation(t *testing.T) {
	svc, rooms, _, _ := newReservationFixture(t)

	booked, err := svc.Book(7, "alice", BookRoomRequest{RoomID: 101, StartDate: "2024-01-01", EndDate: "2024-01-04"})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(7, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCancelled, cancelled.Status)

	room, err := rooms.GetRoomByID(101)
	require.NoError(t, err)
	assert.True(t, room.Available, "cancelling must free the room")
}

func TestCancelReservationTwice(t *testing.T) {
	svc, _, _, _ := newReservationFixture(t)

	booked, err := svc.Book(7, "alice", BookRoomRequest{RoomID: 101, StartDate: "2024-01-01", EndDate: "2024-01-04"})
	require.NoError(t, err)

	_, err = svc.Cancel(7, booked.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(7, booked.ID)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancelSomeoneElsesReservation(t *testing.T) {
	svc, _, _, _ := newReservationFixture(t)

	booked, err := svc.Book(7, "alice", BookRoomRequest{RoomID: 101, StartDate: "2024-01-01", EndDate: "2024-01-04"})
	require.NoError(t, err)

	// Bob has no client record yet; his cancel attempt must not leak that
	// the reservation exists.
	_, err = svc.Cancel(8, booked.ID)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestPurchaseReservation(t *testing.T) {
	svc, rooms, _, _ := newReservationFixture(t)

	booked, err := svc.Book(7, "alice", BookRoomRequest{RoomID: 101, StartDate: "2024-01-01", EndDate: "2024-01-04"})
	require.NoError(t, err)

	purchased, err := svc.Purchase(7, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusPurchased, purchased.Status)

	room, err := rooms.GetRoomByID(101)
	require.NoError(t, err)
	assert.True(t, room.Available, "completed stay must free the room")

	_, err = svc.Cancel(7, booked.ID)
	assert.ErrorIs(t, err, ErrReservationNotFound, "purchased is terminal")
}

func TestModifyReservation(t *testing.T) {
	svc, _, _, _ := newReservationFixture(t)

	booked, err := svc.Book(7, "alice", BookRoomRequest{RoomID: 101, StartDate: "2024-01-01", EndDate: "2024-01-04"})
	require.NoError(t, err)

	modified, err := svc.Modify(7, booked.ID, ModifyReservationRequest{StartDate: "2024-01-02", EndDate: "2024-01-06"})
	require.NoError(t, err)
	assert.Equal(t, 4, modified.Nights())
	assert.Equal(t, models.ReservationStatusReserved, modified.Status)
}

func TestModifyReservationInvalidRange(t *testing.T) {
	svc, _, _, _ := newReservationFixture(t)

	booked, err := svc.Book(7, "alice", BookRoomRequest{RoomID: 101, StartDate: "2024-01-01", EndDate: "2024-01-04"})
	require.NoError(t, err)

	_, err = svc.Modify(7, booked.ID, ModifyReservationRequest{StartDate: "2024-01-06", EndDate: "2024-01-02"})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	unchanged, err := svc.GetReservationByID(booked.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, unchanged.Nights(), "rejected modify must not change dates")
}

func TestModifyCancelledReservation(t *testing.T) {
	svc, _, _, _ := newReservationFixture(t)

	booked, err := svc.Book(7, "alice", BookRoomRequest{RoomID: 101, StartDate: "2024-01-01", EndDate: "2024-01-04"})
	require.NoError(t, err)
	_, err = svc.Cancel(7, booked.ID)
	require.NoError(t, err)

	_, err = svc.Modify(7, booked.ID, ModifyReservationRequest{StartDate: "2024-01-02", EndDate: "2024-01-06"})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetMyReservationsOnlyActive(t *testing.T) {
	svc, rooms, _, _ := newReservationFixture(t)
	rooms.rooms[102] = &models.Room{ID: 102, Number: "R102", Capacity: 2, NightlyRate: decimal.NewFromInt(80), Available: true}

	first, err := svc.Book(7, "alice", BookRoomRequest{RoomID: 101, StartDate: "2024-01-01", EndDate: "2024-01-04"})
	require.NoError(t, err)
	_, err = svc.Book(7, "alice", BookRoomRequest{RoomID: 102, StartDate: "2024-02-01", EndDate: "2024-02-03"})
	require.NoError(t, err)

	_, err = svc.Cancel(7, first.ID)
	require.NoError(t, err)

	mine, err := svc.GetMyReservations(7, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(102), mine[0].RoomID)
}
