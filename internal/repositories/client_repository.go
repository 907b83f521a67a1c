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

// ClientRepository defines the interface for client-related database operations.
type ClientRepository interface {
	// GetOrCreateByUserID returns the client row owned by the given user,
	// creating it first if it does not exist yet. Every call site that needs
	// the caller's client record goes through here so there is exactly one
	// creation policy.
	GetOrCreateByUserID(executor SQLExecutor, userID int64, fullName string) (*models.Client, error)
	GetClientByID(id int64) (*models.Client, error)
	GetClientByUserID(userID int64) (*models.Client, error)
	GetClients(page, pageSize int, searchTerm *string) ([]models.Client, int, error)
	UpdateClient(executor SQLExecutor, client *models.Client) error
	DeleteClient(executor SQLExecutor, id int64) error
}

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

const selectClientFields = `id, user_id, full_name, phone_number, address, created_at, updated_at`

func scanClient(row scanner, client *models.Client, extra ...interface{}) error {
	dest := []interface{}{
		&client.ID, &client.UserID, &client.FullName, &client.PhoneNumber, &client.Address,
		&client.CreatedAt, &client.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *clientRepository) GetOrCreateByUserID(executor SQLExecutor, userID int64, fullName string) (*models.Client, error) {
	client, err := r.getByUserID(executor, userID)
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	insert := `INSERT INTO clients (user_id, full_name, created_at, updated_at)
	           VALUES ($1, $2, $3, $4)
	           ON CONFLICT (user_id) DO NOTHING
	           RETURNING ` + selectClientFields
	currentTime := time.Now()
	client = &models.Client{}
	err = scanClient(executor.QueryRow(insert, userID, fullName, currentTime, currentTime), client)
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: creating client for user %d: %v", ErrDatabaseError, userID, err)
	}
	// Lost the insert race; the row exists now.
	return r.getByUserID(executor, userID)
}

func (r *clientRepository) getByUserID(executor SQLExecutor, userID int64) (*models.Client, error) {
	client := &models.Client{}
	query := `SELECT ` + selectClientFields + ` FROM clients WHERE user_id = $1`
	err := scanClient(executor.QueryRow(query, userID), client)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by user ID %d: %v", ErrDatabaseError, userID, err)
	}
	return client, nil
}

func (r *clientRepository) GetClientByUserID(userID int64) (*models.Client, error) {
	return r.getByUserID(r.db, userID)
}

func (r *clientRepository) GetClientByID(id int64) (*models.Client, error) {
	client := &models.Client{}
	query := `SELECT ` + selectClientFields + ` FROM clients WHERE id = $1`
	err := scanClient(r.db.QueryRow(query, id), client)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by ID %d: %v", ErrDatabaseError, id, err)
	}
	return client, nil
}

func (r *clientRepository) GetClients(page, pageSize int, searchTerm *string) ([]models.Client, int, error) {
	clients := []models.Client{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + selectClientFields + `, COUNT(*) OVER() AS total_count FROM clients`)

	var args []interface{}
	argCount := 1
	if searchTerm != nil && strings.TrimSpace(*searchTerm) != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE full_name ILIKE $%d OR phone_number ILIKE $%d", argCount, argCount))
		args = append(args, "%"+strings.TrimSpace(*searchTerm)+"%")
		argCount++
	}
	queryBuilder.WriteString(" ORDER BY full_name")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var client models.Client
		if err := scanClient(rows, &client, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
		}
		clients = append(clients, client)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}
	return clients, totalCount, nil
}

func (r *clientRepository) UpdateClient(executor SQLExecutor, client *models.Client) error {
	query := `UPDATE clients SET full_name = $1, phone_number = $2, address = $3, updated_at = $4 WHERE id = $5`
	client.UpdatedAt = time.Now()
	result, err := executor.Exec(query, client.FullName, client.PhoneNumber, client.Address, client.UpdatedAt, client.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating client ID %d: %v", ErrDatabaseError, client.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *clientRepository) DeleteClient(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting client ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
