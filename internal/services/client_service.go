package services

import (
	"database/sql"
	"errors"
	"fmt"

	"hotel_crm_backend/internal/models"
	"hotel_crm_backend/internal/repositories"
)

// --- Custom Service Errors for Clients ---
var (
	ErrClientNotFound = errors.New("client not found")
)

// --- Client DTOs ---
type UpdateClientRequest struct {
	FullName    string  `json:"full_name" binding:"required"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
}

// --- ClientService Interface ---
type ClientService interface {
	GetMyProfile(userID int64, userName string) (*models.Client, error)
	UpdateMyProfile(userID int64, userName string, req UpdateClientRequest) (*models.Client, error)
	GetClientByID(id int64) (*models.Client, error)
	GetClients(page, pageSize int, searchTerm *string) ([]models.Client, int, error)
	DeleteClient(id int64) error
}

// --- clientService Implementation ---
type clientService struct {
	clientRepo repositories.ClientRepository
	db         *sql.DB
}

// NewClientService creates a new instance of ClientService.
func NewClientService(cr repositories.ClientRepository, db *sql.DB) ClientService {
	return &clientService{clientRepo: cr, db: db}
}

func (s *clientService) GetMyProfile(userID int64, userName string) (*models.Client, error) {
	client, err := s.clientRepo.GetOrCreateByUserID(s.db, userID, userName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve client for user %d: %w", userID, err)
	}
	return client, nil
}

func (s *clientService) UpdateMyProfile(userID int64, userName string, req UpdateClientRequest) (*models.Client, error) {
	client, err := s.clientRepo.GetOrCreateByUserID(s.db, userID, userName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve client for user %d: %w", userID, err)
	}

	client.FullName = req.FullName
	client.PhoneNumber = req.PhoneNumber
	client.Address = req.Address
	if err := s.clientRepo.UpdateClient(s.db, client); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to update client %d: %w", client.ID, err)
	}
	return client, nil
}

func (s *clientService) GetClientByID(id int64) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	return client, nil
}

func (s *clientService) GetClients(page, pageSize int, searchTerm *string) ([]models.Client, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	clients, totalCount, err := s.clientRepo.GetClients(page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get clients: %w", err)
	}
	return clients, totalCount, nil
}

func (s *clientService) DeleteClient(id int64) error {
	if err := s.clientRepo.DeleteClient(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to delete client %d: %w", id, err)
	}
	return nil
}
