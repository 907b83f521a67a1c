package services

import (
	"testing"
	"time"

	"hotel_crm_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoomFixture(t *testing.T) (RoomService, *fakeRoomRepo) {
	t.Helper()
	repo := newFakeRoomRepo(
		&models.Room{ID: 1, Number: "101", Capacity: 2, NightlyRate: decimal.NewFromInt(100), Available: true},
		&models.Room{ID: 2, Number: "102", Capacity: 4, NightlyRate: decimal.NewFromInt(180), Available: true},
		&models.Room{ID: 3, Number: "103", Capacity: 4, NightlyRate: decimal.NewFromInt(180), Available: false},
	)
	svc := NewRoomService(repo, newTestDB(), fixedNow)
	return svc, repo
}

func TestSearchAvailableRooms(t *testing.T) {
	svc, _ := newRoomFixture(t)

	rooms, err := svc.SearchAvailable(RoomSearchRequest{
		CheckIn:  "2024-01-10",
		CheckOut: "2024-01-12",
		Guests:   3,
	})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "102", rooms[0].Number, "occupied and undersized rooms are filtered out")
}

func TestSearchAvailableDefaultsToOneGuest(t *testing.T) {
	svc, _ := newRoomFixture(t)

	rooms, err := svc.SearchAvailable(RoomSearchRequest{CheckIn: "2024-01-10", CheckOut: "2024-01-12"})
	require.NoError(t, err)
	assert.Len(t, rooms, 2)
}

func TestSearchAvailablePastCheckIn(t *testing.T) {
	svc, _ := newRoomFixture(t)

	_, err := svc.SearchAvailable(RoomSearchRequest{CheckIn: "2023-12-28", CheckOut: "2023-12-30"})
	assert.ErrorIs(t, err, ErrCheckInPast)
}

func TestSearchAvailableLocalMidnight(t *testing.T) {
	// 20:00 on Dec 31 in UTC-5 is already Jan 1 in UTC. A same-day check-in
	// must still be accepted against the clock's own calendar date.
	evening := func() time.Time {
		return time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC).In(time.FixedZone("UTC-5", -5*3600))
	}
	repo := newFakeRoomRepo(
		&models.Room{ID: 1, Number: "101", Capacity: 2, NightlyRate: decimal.NewFromInt(100), Available: true},
	)
	svc := NewRoomService(repo, newTestDB(), evening)

	rooms, err := svc.SearchAvailable(RoomSearchRequest{CheckIn: "2023-12-31", CheckOut: "2024-01-02"})
	require.NoError(t, err)
	assert.Len(t, rooms, 1)

	_, err = svc.SearchAvailable(RoomSearchRequest{CheckIn: "2023-12-30", CheckOut: "2024-01-02"})
	assert.ErrorIs(t, err, ErrCheckInPast)
}

func TestSearchAvailableInvalidRange(t *testing.T) {
	svc, _ := newRoomFixture(t)

	_, err := svc.SearchAvailable(RoomSearchRequest{CheckIn: "2024-01-12", CheckOut: "2024-01-10"})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.SearchAvailable(RoomSearchRequest{CheckIn: "2024-01-10", CheckOut: "2024-01-10"})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCreateRoomDuplicateNumber(t *testing.T) {
	svc, _ := newRoomFixture(t)

	_, err := svc.CreateRoom(RoomRequest{Number: "101", Capacity: 2, NightlyRate: "120"})
	assert.ErrorIs(t, err, ErrDuplicateRoomNumber)

	created, err := svc.CreateRoom(RoomRequest{Number: "104", Capacity: 2, NightlyRate: "120", Description: "garden view"})
	require.NoError(t, err)
	assert.True(t, created.Available, "new rooms default to available")
	require.NotNil(t, created.Description)
	assert.Equal(t, "garden view", *created.Description)

	// An omitted description stays NULL rather than becoming an empty string.
	bare, err := svc.CreateRoom(RoomRequest{Number: "105", Capacity: 2, NightlyRate: "120"})
	require.NoError(t, err)
	assert.Nil(t, bare.Description)
}

func TestCreateRoomInvalidRate(t *testing.T) {
	svc, _ := newRoomFixture(t)

	_, err := svc.CreateRoom(RoomRequest{Number: "104", Capacity: 2, NightlyRate: "free"})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.CreateRoom(RoomRequest{Number: "104", Capacity: 2, NightlyRate: "-10"})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestUpdateRoomKeepsAvailability(t *testing.T) {
	svc, repo := newRoomFixture(t)
	repo.rooms[1].Available = false

	updated, err := svc.UpdateRoom(1, RoomRequest{Number: "101", Capacity: 3, NightlyRate: "110"})
	require.NoError(t, err)
	assert.False(t, updated.Available, "omitted availability flag leaves the current value")
	assert.Equal(t, 3, updated.Capacity)
}

func TestDeleteRoomNotFound(t *testing.T) {
	svc, _ := newRoomFixture(t)

	assert.ErrorIs(t, svc.DeleteRoom(999), ErrRoomNotFound)
}
