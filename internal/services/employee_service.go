package services

import (
	"database/sql"
	"errors"
	"fmt"

	"hotel_crm_backend/internal/models"
	"hotel_crm_backend/internal/repositories"
)

// --- Custom Service Errors for Employees ---
var (
	ErrEmployeeNotFound = errors.New("employee not found")
)

// --- Employee DTOs ---
type EmployeeRequest struct {
	UserID      *int64  `json:"user_id"`
	FullName    string  `json:"full_name" binding:"required"`
	Position    string  `json:"position"`
	PhoneNumber *string `json:"phone_number"`
}

// --- EmployeeService Interface ---
type EmployeeService interface {
	CreateEmployee(req EmployeeRequest) (*models.Employee, error)
	GetEmployeeByID(id int64) (*models.Employee, error)
	GetEmployees(page, pageSize int) ([]models.Employee, int, error)
	UpdateEmployee(id int64, req EmployeeRequest) (*models.Employee, error)
	DeleteEmployee(id int64) error
}

// --- employeeService Implementation ---
type employeeService struct {
	employeeRepo repositories.EmployeeRepository
	db           *sql.DB
}

// NewEmployeeService creates a new instance of EmployeeService.
func NewEmployeeService(er repositories.EmployeeRepository, db *sql.DB) EmployeeService {
	return &employeeService{employeeRepo: er, db: db}
}

func (s *employeeService) CreateEmployee(req EmployeeRequest) (*models.Employee, error) {
	employee := &models.Employee{
		UserID:      req.UserID,
		FullName:    req.FullName,
		Position:    req.Position,
		PhoneNumber: req.PhoneNumber,
	}
	if _, err := s.employeeRepo.CreateEmployee(s.db, employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return employee, nil
}

func (s *employeeService) GetEmployeeByID(id int64) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetEmployeeByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee by ID: %w", err)
	}
	return employee, nil
}

func (s *employeeService) GetEmployees(page, pageSize int) ([]models.Employee, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	employees, totalCount, err := s.employeeRepo.GetEmployees(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get employees: %w", err)
	}
	return employees, totalCount, nil
}

func (s *employeeService) UpdateEmployee(id int64, req EmployeeRequest) (*models.Employee, error) {
	employee := &models.Employee{
		ID:          id,
		FullName:    req.FullName,
		Position:    req.Position,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.employeeRepo.UpdateEmployee(s.db, employee); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to update employee %d: %w", id, err)
	}
	return s.employeeRepo.GetEmployeeByID(id)
}

func (s *employeeService) DeleteEmployee(id int64) error {
	if err := s.employeeRepo.DeleteEmployee(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee %d: %w", id, err)
	}
	return nil
}
