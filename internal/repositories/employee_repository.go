package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotel_crm_backend/internal/models"
)

// EmployeeRepository defines the interface for staff directory operations.
type EmployeeRepository interface {
	CreateEmployee(executor SQLExecutor, employee *models.Employee) (int64, error)
	GetEmployeeByID(id int64) (*models.Employee, error)
	GetEmployeeByUserID(userID int64) (*models.Employee, error)
	GetEmployees(page, pageSize int) ([]models.Employee, int, error)
	UpdateEmployee(executor SQLExecutor, employee *models.Employee) error
	DeleteEmployee(executor SQLExecutor, id int64) error
}

type employeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new instance of EmployeeRepository.
func NewEmployeeRepository(db *sql.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

const selectEmployeeFields = `id, user_id, full_name, position, phone_number, created_at, updated_at`

func scanEmployee(row scanner, employee *models.Employee, extra ...interface{}) error {
	dest := []interface{}{
		&employee.ID, &employee.UserID, &employee.FullName, &employee.Position,
		&employee.PhoneNumber, &employee.CreatedAt, &employee.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *employeeRepository) CreateEmployee(executor SQLExecutor, employee *models.Employee) (int64, error) {
	query := `INSERT INTO employees (user_id, full_name, position, phone_number, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	currentTime := time.Now()
	err := executor.QueryRow(query,
		employee.UserID, employee.FullName, employee.Position, employee.PhoneNumber,
		currentTime, currentTime,
	).Scan(&employee.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating employee: %v", ErrDatabaseError, err)
	}
	return employee.ID, nil
}

func (r *employeeRepository) GetEmployeeByID(id int64) (*models.Employee, error) {
	employee := &models.Employee{}
	query := `SELECT ` + selectEmployeeFields + ` FROM employees WHERE id = $1`
	err := scanEmployee(r.db.QueryRow(query, id), employee)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting employee by ID %d: %v", ErrDatabaseError, id, err)
	}
	return employee, nil
}

func (r *employeeRepository) GetEmployeeByUserID(userID int64) (*models.Employee, error) {
	employee := &models.Employee{}
	query := `SELECT ` + selectEmployeeFields + ` FROM employees WHERE user_id = $1`
	err := scanEmployee(r.db.QueryRow(query, userID), employee)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting employee by user ID %d: %v", ErrDatabaseError, userID, err)
	}
	return employee, nil
}

func (r *employeeRepository) GetEmployees(page, pageSize int) ([]models.Employee, int, error) {
	employees := []models.Employee{}
	totalCount := 0
	query := `SELECT ` + selectEmployeeFields + `, COUNT(*) OVER() AS total_count
	          FROM employees
	          ORDER BY full_name
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying employees: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var employee models.Employee
		if err := scanEmployee(rows, &employee, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning employee: %v", ErrDatabaseError, err)
		}
		employees = append(employees, employee)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating employee rows: %v", ErrDatabaseError, err)
	}
	return employees, totalCount, nil
}

func (r *employeeRepository) UpdateEmployee(executor SQLExecutor, employee *models.Employee) error {
	query := `UPDATE employees SET full_name = $1, position = $2, phone_number = $3, updated_at = $4 WHERE id = $5`
	employee.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		employee.FullName, employee.Position, employee.PhoneNumber, employee.UpdatedAt, employee.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating employee ID %d: %v", ErrDatabaseError, employee.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *employeeRepository) DeleteEmployee(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting employee ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
