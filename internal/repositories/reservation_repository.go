package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel_crm_backend/internal/models"
)

// ReservationRepository defines the interface for reservation-related database operations.
type ReservationRepository interface {
	CreateReservation(executor SQLExecutor, reservation *models.Reservation) (int64, error)
	GetReservationByID(id int64) (*models.Reservation, error)
	GetOwnedReservation(id, clientID int64) (*models.Reservation, error)
	GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error)
	GetActiveByClient(clientID int64) ([]models.Reservation, error)

	// UpdateStatus moves a reservation from one status to another and
	// reports whether a row matched. Conditioning on the current status
	// keeps terminal states terminal even under concurrent requests.
	UpdateStatus(executor SQLExecutor, id int64, from, to models.ReservationStatus) (int64, error)
	UpdateDates(executor SQLExecutor, id int64, start, end time.Time) (int64, error)
}

type reservationRepository struct {
	db *sql.DB
}

// NewReservationRepository creates a new instance of ReservationRepository.
func NewReservationRepository(db *sql.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

const selectReservationFields = `
	rs.id, rs.client_id, rs.room_id, rs.employee_id, rs.start_date, rs.end_date, rs.status,
	rs.created_at, rs.updated_at,
	rm.id, rm.number, rm.room_type, rm.capacity, rm.nightly_rate, rm.available, rm.description, rm.created_at, rm.updated_at,
	c.id, c.user_id, c.full_name, c.phone_number, c.address, c.created_at, c.updated_at
`

const reservationJoins = `
	FROM reservations rs
	JOIN rooms rm ON rs.room_id = rm.id
	JOIN clients c ON rs.client_id = c.id
`

// scanReservationRow scans a reservation row together with its joined room
// and client details.
func scanReservationRow(row scanner, extra ...interface{}) (*models.Reservation, error) {
	var reservation models.Reservation
	var room models.Room
	var client models.Client

	dest := []interface{}{
		&reservation.ID, &reservation.ClientID, &reservation.RoomID, &reservation.EmployeeID,
		&reservation.StartDate, &reservation.EndDate, &reservation.Status,
		&reservation.CreatedAt, &reservation.UpdatedAt,
		&room.ID, &room.Number, &room.RoomType, &room.Capacity, &room.NightlyRate,
		&room.Available, &room.Description, &room.CreatedAt, &room.UpdatedAt,
		&client.ID, &client.UserID, &client.FullName, &client.PhoneNumber, &client.Address,
		&client.CreatedAt, &client.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning reservation with details: %v", ErrDatabaseError, err)
	}

	reservation.Room = &room
	reservation.Client = &client
	return &reservation, nil
}

func (r *reservationRepository) CreateReservation(executor SQLExecutor, reservation *models.Reservation) (int64, error) {
	query := `INSERT INTO reservations (client_id, room_id, employee_id, start_date, end_date, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	currentTime := time.Now()
	reservation.CreatedAt = currentTime
	reservation.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		reservation.ClientID, reservation.RoomID, reservation.EmployeeID,
		reservation.StartDate, reservation.EndDate, reservation.Status,
		reservation.CreatedAt, reservation.UpdatedAt,
	).Scan(&reservation.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating reservation: %v", ErrDatabaseError, err)
	}
	return reservation.ID, nil
}

func (r *reservationRepository) GetReservationByID(id int64) (*models.Reservation, error) {
	query := "SELECT " + selectReservationFields + reservationJoins + " WHERE rs.id = $1"
	return scanReservationRow(r.db.QueryRow(query, id))
}

func (r *reservationRepository) GetOwnedReservation(id, clientID int64) (*models.Reservation, error) {
	query := "SELECT " + selectReservationFields + reservationJoins + " WHERE rs.id = $1 AND rs.client_id = $2"
	return scanReservationRow(r.db.QueryRow(query, id, clientID))
}

func (r *reservationRepository) GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error) {
	reservations := []models.Reservation{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectReservationFields + ", COUNT(*) OVER() AS total_count " + reservationJoins)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("rs.client_id = $%d", argCount))
		args = append(args, *filters.ClientID)
		argCount++
	}
	if filters.RoomID != nil {
		conditions = append(conditions, fmt.Sprintf("rs.room_id = $%d", argCount))
		args = append(args, *filters.RoomID)
		argCount++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("rs.status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}
	if filters.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("rs.start_date >= $%d", argCount))
		args = append(args, *filters.DateFrom)
		argCount++
	}
	if filters.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("rs.end_date <= $%d", argCount))
		args = append(args, *filters.DateTo)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY rs.start_date DESC")

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
		return nil, 0, fmt.Errorf("%w: querying reservations: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		reservation, scanErr := scanReservationRow(rows, &totalCount)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		reservations = append(reservations, *reservation)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating reservation rows: %v", ErrDatabaseError, err)
	}
	return reservations, totalCount, nil
}

func (r *reservationRepository) GetActiveByClient(clientID int64) ([]models.Reservation, error) {
	reservations := []models.Reservation{}
	query := "SELECT " + selectReservationFields + reservationJoins +
		" WHERE rs.client_id = $1 AND rs.status = $2 ORDER BY rs.start_date"
	rows, err := r.db.Query(query, clientID, models.ReservationStatusReserved)
	if err != nil {
		return nil, fmt.Errorf("%w: querying active reservations for client %d: %v", ErrDatabaseError, clientID, err)
	}
	defer rows.Close()

	for rows.Next() {
		reservation, scanErr := scanReservationRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		reservations = append(reservations, *reservation)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating reservation rows: %v", ErrDatabaseError, err)
	}
	return reservations, nil
}

func (r *reservationRepository) UpdateStatus(executor SQLExecutor, id int64, from, to models.ReservationStatus) (int64, error) {
	query := `UPDATE reservations SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`
	result, err := executor.Exec(query, to, time.Now(), id, from)
	if err != nil {
		return 0, fmt.Errorf("%w: updating status of reservation ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected, nil
}

func (r *reservationRepository) UpdateDates(executor SQLExecutor, id int64, start, end time.Time) (int64, error) {
	query := `UPDATE reservations SET start_date = $1, end_date = $2, updated_at = $3
	          WHERE id = $4 AND status = $5`
	result, err := executor.Exec(query, start, end, time.Now(), id, models.ReservationStatusReserved)
	if err != nil {
		return 0, fmt.Errorf("%w: updating dates of reservation ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected, nil
}
