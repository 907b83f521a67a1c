package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel_crm_backend/internal/models"

	"github.com/lib/pq"
)

// RoomRepository defines the interface for room-related database operations.
type RoomRepository interface {
	CreateRoom(executor SQLExecutor, room *models.Room) (int64, error)
	GetRoomByID(id int64) (*models.Room, error)
	GetRooms(filters models.RoomFilters) ([]models.Room, int, error)
	SearchAvailable(minCapacity int) ([]models.Room, error)
	UpdateRoom(executor SQLExecutor, room *models.Room) error
	DeleteRoom(executor SQLExecutor, id int64) error

	// MarkUnavailable flips the availability flag from true to false and
	// reports whether a row was actually flipped. A zero count means the
	// room was already taken (or does not exist), which lets the booking
	// flow reject concurrent requests without a separate lock.
	MarkUnavailable(executor SQLExecutor, roomID int64) (int64, error)
	MarkAvailable(executor SQLExecutor, roomID int64) error
}

type roomRepository struct {
	db *sql.DB
}

// NewRoomRepository creates a new instance of RoomRepository.
func NewRoomRepository(db *sql.DB) RoomRepository {
	return &roomRepository{db: db}
}

const selectRoomFields = `id, number, room_type, capacity, nightly_rate, available, description, created_at, updated_at`

func scanRoom(row scanner, room *models.Room, extra ...interface{}) error {
	dest := []interface{}{
		&room.ID, &room.Number, &room.RoomType, &room.Capacity, &room.NightlyRate,
		&room.Available, &room.Description, &room.CreatedAt, &room.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *roomRepository) CreateRoom(executor SQLExecutor, room *models.Room) (int64, error) {
	query := `INSERT INTO rooms (number, room_type, capacity, nightly_rate, available, description, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	currentTime := time.Now()
	err := executor.QueryRow(query,
		room.Number, room.RoomType, room.Capacity, room.NightlyRate,
		room.Available, room.Description, currentTime, currentTime,
	).Scan(&room.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: room number '%s' already exists (constraint: %s)", ErrDuplicateKey, room.Number, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating room: %v", ErrDatabaseError, err)
	}
	room.CreatedAt = currentTime
	room.UpdatedAt = currentTime
	return room.ID, nil
}

func (r *roomRepository) GetRoomByID(id int64) (*models.Room, error) {
	room := &models.Room{}
	query := `SELECT ` + selectRoomFields + ` FROM rooms WHERE id = $1`
	err := scanRoom(r.db.QueryRow(query, id), room)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting room by ID %d: %v", ErrDatabaseError, id, err)
	}
	return room, nil
}

func (r *roomRepository) GetRooms(filters models.RoomFilters) ([]models.Room, int, error) {
	rooms := []models.Room{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + selectRoomFields + `, COUNT(*) OVER() AS total_count FROM rooms`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.Available != nil {
		conditions = append(conditions, fmt.Sprintf("available = $%d", argCount))
		args = append(args, *filters.Available)
		argCount++
	}
	if filters.RoomType != nil && *filters.RoomType != "" {
		conditions = append(conditions, fmt.Sprintf("room_type = $%d", argCount))
		args = append(args, *filters.RoomType)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY number")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.PageSize)
		argCount++
		if filters.Page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (filters.Page-1)*filters.PageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying rooms: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var room models.Room
		if err := scanRoom(rows, &room, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning room: %v", ErrDatabaseError, err)
		}
		rooms = append(rooms, room)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating room rows: %v", ErrDatabaseError, err)
	}
	return rooms, totalCount, nil
}

func (r *roomRepository) SearchAvailable(minCapacity int) ([]models.Room, error) {
	rooms := []models.Room{}
	query := `SELECT ` + selectRoomFields + ` FROM rooms WHERE available = TRUE AND capacity >= $1 ORDER BY number`
	rows, err := r.db.Query(query, minCapacity)
	if err != nil {
		return nil, fmt.Errorf("%w: searching available rooms: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var room models.Room
		if err := scanRoom(rows, &room); err != nil {
			return nil, fmt.Errorf("%w: scanning room: %v", ErrDatabaseError, err)
		}
		rooms = append(rooms, room)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating room rows: %v", ErrDatabaseError, err)
	}
	return rooms, nil
}

func (r *roomRepository) UpdateRoom(executor SQLExecutor, room *models.Room) error {
	query := `UPDATE rooms SET number = $1, room_type = $2, capacity = $3, nightly_rate = $4,
	                           available = $5, description = $6, updated_at = $7
	          WHERE id = $8`
	room.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		room.Number, room.RoomType, room.Capacity, room.NightlyRate,
		room.Available, room.Description, room.UpdatedAt, room.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: room number '%s' already exists (constraint: %s)", ErrDuplicateKey, room.Number, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating room ID %d: %v", ErrDatabaseError, room.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *roomRepository) DeleteRoom(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting room ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *roomRepository) MarkUnavailable(executor SQLExecutor, roomID int64) (int64, error) {
	query := `UPDATE rooms SET available = FALSE, updated_at = $1 WHERE id = $2 AND available = TRUE`
	result, err := executor.Exec(query, time.Now(), roomID)
	if err != nil {
		return 0, fmt.Errorf("%w: marking room ID %d unavailable: %v", ErrDatabaseError, roomID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected, nil
}

func (r *roomRepository) MarkAvailable(executor SQLExecutor, roomID int64) error {
	query := `UPDATE rooms SET available = TRUE, updated_at = $1 WHERE id = $2`
	result, err := executor.Exec(query, time.Now(), roomID)
	if err != nil {
		return fmt.Errorf("%w: marking room ID %d available: %v", ErrDatabaseError, roomID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
