package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotel_crm_backend/internal/models"
)

// LaundryRepository defines the interface for laundry service database operations.
type LaundryRepository interface {
	CreateRequest(executor SQLExecutor, request *models.LaundryRequest) (int64, error)
	GetRequestByID(id int64) (*models.LaundryRequest, error)
	GetRequestsByUser(userID int64, page, pageSize int) ([]models.LaundryRequest, int, error)
	UpdateRequest(executor SQLExecutor, request *models.LaundryRequest) error

	AttachToReservation(executor SQLExecutor, link *models.ReservationLaundry) (int64, error)
	GetReservationLaundry(reservationID int64) ([]models.ReservationLaundry, error)
}

type laundryRepository struct {
	db *sql.DB
}

// NewLaundryRepository creates a new instance of LaundryRepository.
func NewLaundryRepository(db *sql.DB) LaundryRepository {
	return &laundryRepository{db: db}
}

const selectLaundryFields = `id, user_id, room_id, description, status, price, requested_at, created_at, updated_at`

func scanLaundryRequest(row scanner, request *models.LaundryRequest, extra ...interface{}) error {
	dest := []interface{}{
		&request.ID, &request.UserID, &request.RoomID, &request.Description, &request.Status,
		&request.Price, &request.RequestedAt, &request.CreatedAt, &request.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *laundryRepository) CreateRequest(executor SQLExecutor, request *models.LaundryRequest) (int64, error) {
	query := `INSERT INTO laundry_requests (user_id, room_id, description, status, price, requested_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	currentTime := time.Now()
	if request.RequestedAt.IsZero() {
		request.RequestedAt = currentTime
	}
	request.CreatedAt = currentTime
	request.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		request.UserID, request.RoomID, request.Description, request.Status, request.Price,
		request.RequestedAt, request.CreatedAt, request.UpdatedAt,
	).Scan(&request.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating laundry request: %v", ErrDatabaseError, err)
	}
	return request.ID, nil
}

func (r *laundryRepository) GetRequestByID(id int64) (*models.LaundryRequest, error) {
	request := &models.LaundryRequest{}
	query := `SELECT ` + selectLaundryFields + ` FROM laundry_requests WHERE id = $1`
	err := scanLaundryRequest(r.db.QueryRow(query, id), request)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting laundry request by ID %d: %v", ErrDatabaseError, id, err)
	}
	return request, nil
}

func (r *laundryRepository) GetRequestsByUser(userID int64, page, pageSize int) ([]models.LaundryRequest, int, error) {
	requests := []models.LaundryRequest{}
	totalCount := 0
	query := `SELECT ` + selectLaundryFields + `, COUNT(*) OVER() AS total_count
	          FROM laundry_requests
	          WHERE user_id = $1
	          ORDER BY requested_at DESC
	          LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying laundry requests for user %d: %v", ErrDatabaseError, userID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var request models.LaundryRequest
		if err := scanLaundryRequest(rows, &request, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning laundry request: %v", ErrDatabaseError, err)
		}
		requests = append(requests, request)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating laundry request rows: %v", ErrDatabaseError, err)
	}
	return requests, totalCount, nil
}

func (r *laundryRepository) UpdateRequest(executor SQLExecutor, request *models.LaundryRequest) error {
	query := `UPDATE laundry_requests SET description = $1, status = $2, price = $3, updated_at = $4 WHERE id = $5`
	request.UpdatedAt = time.Now()
	result, err := executor.Exec(query, request.Description, request.Status, request.Price, request.UpdatedAt, request.ID)
	if err != nil {
		return fmt.Errorf("%w: updating laundry request ID %d: %v", ErrDatabaseError, request.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *laundryRepository) AttachToReservation(executor SQLExecutor, link *models.ReservationLaundry) (int64, error) {
	query := `INSERT INTO reservation_laundry (reservation_id, laundry_request_id, quantity, total, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	link.CreatedAt = time.Now()
	err := executor.QueryRow(query,
		link.ReservationID, link.LaundryRequestID, link.Quantity, link.Total, link.CreatedAt,
	).Scan(&link.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: attaching laundry request %d to reservation %d: %v",
			ErrDatabaseError, link.LaundryRequestID, link.ReservationID, err)
	}
	return link.ID, nil
}

func (r *laundryRepository) GetReservationLaundry(reservationID int64) ([]models.ReservationLaundry, error) {
	links := []models.ReservationLaundry{}
	query := `SELECT rl.id, rl.reservation_id, rl.laundry_request_id, rl.quantity, rl.total, rl.created_at,
	                 lr.id, lr.user_id, lr.room_id, lr.description, lr.status, lr.price, lr.requested_at, lr.created_at, lr.updated_at
	          FROM reservation_laundry rl
	          JOIN laundry_requests lr ON rl.laundry_request_id = lr.id
	          WHERE rl.reservation_id = $1
	          ORDER BY rl.id`
	rows, err := r.db.Query(query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying laundry for reservation %d: %v", ErrDatabaseError, reservationID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var link models.ReservationLaundry
		var request models.LaundryRequest
		if err := rows.Scan(
			&link.ID, &link.ReservationID, &link.LaundryRequestID, &link.Quantity, &link.Total, &link.CreatedAt,
			&request.ID, &request.UserID, &request.RoomID, &request.Description, &request.Status,
			&request.Price, &request.RequestedAt, &request.CreatedAt, &request.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning reservation laundry: %v", ErrDatabaseError, err)
		}
		link.LaundryRequest = &request
		links = append(links, link)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating reservation laundry rows: %v", ErrDatabaseError, err)
	}
	return links, nil
}
