package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"time"

	"hotel_crm_backend/internal/models"
	"hotel_crm_backend/internal/repositories"
)

// The fakes below stand in for the Postgres repositories. Service tests only
// exercise business rules; SQL behaviour is the repositories' concern.

// noopDriver gives the services a working *sql.DB whose transactions commit
// and roll back without touching a real database.
type noopDriver struct{}

type noopConn struct{}

type noopTx struct{}

func (noopDriver) Open(string) (driver.Conn, error) { return noopConn{}, nil }

func (noopConn) Prepare(string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (noopConn) Close() error                        { return nil }
func (noopConn) Begin() (driver.Tx, error)           { return noopTx{}, nil }

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }

func newTestDB() *sql.DB {
	return sql.OpenDB(noopConnector{})
}

func int64Ptr(v int64) *int64 { return &v }

type noopConnector struct{}

func (noopConnector) Connect(context.Context) (driver.Conn, error) { return noopConn{}, nil }
func (noopConnector) Driver() driver.Driver                        { return noopDriver{} }

// --- fake room repository ---

type fakeRoomRepo struct {
	rooms map[int64]*models.Room
}

func newFakeRoomRepo(rooms ...*models.Room) *fakeRoomRepo {
	repo := &fakeRoomRepo{rooms: map[int64]*models.Room{}}
	for _, room := range rooms {
		repo.rooms[room.ID] = room
	}
	return repo
}

func (f *fakeRoomRepo) CreateRoom(_ repositories.SQLExecutor, room *models.Room) (int64, error) {
	for _, existing := range f.rooms {
		if existing.Number == room.Number {
			return 0, repositories.ErrDuplicateKey
		}
	}
	room.ID = int64(len(f.rooms) + 1)
	f.rooms[room.ID] = room
	return room.ID, nil
}

func (f *fakeRoomRepo) GetRoomByID(id int64) (*models.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *room
	return &copied, nil
}

func (f *fakeRoomRepo) GetRooms(models.RoomFilters) ([]models.Room, int, error) {
	rooms := make([]models.Room, 0, len(f.rooms))
	for _, room := range f.rooms {
		rooms = append(rooms, *room)
	}
	return rooms, len(rooms), nil
}

func (f *fakeRoomRepo) SearchAvailable(minCapacity int) ([]models.Room, error) {
	rooms := []models.Room{}
	for _, room := range f.rooms {
		if room.Available && room.Capacity >= minCapacity {
			rooms = append(rooms, *room)
		}
	}
	return rooms, nil
}

func (f *fakeRoomRepo) UpdateRoom(_ repositories.SQLExecutor, room *models.Room) error {
	if _, ok := f.rooms[room.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeRoomRepo) DeleteRoom(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.rooms[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.rooms, id)
	return nil
}

func (f *fakeRoomRepo) MarkUnavailable(_ repositories.SQLExecutor, roomID int64) (int64, error) {
	room, ok := f.rooms[roomID]
	if !ok || !room.Available {
		return 0, nil
	}
	room.Available = false
	return 1, nil
}

func (f *fakeRoomRepo) MarkAvailable(_ repositories.SQLExecutor, roomID int64) error {
	room, ok := f.rooms[roomID]
	if !ok {
		return repositories.ErrNotFound
	}
	room.Available = true
	return nil
}

// --- fake client repository ---

type fakeClientRepo struct {
	clients map[int64]*models.Client // keyed by client ID
	nextID  int64
}

func newFakeClientRepo(clients ...*models.Client) *fakeClientRepo {
	repo := &fakeClientRepo{clients: map[int64]*models.Client{}, nextID: 1}
	for _, client := range clients {
		repo.clients[client.ID] = client
		if client.ID >= repo.nextID {
			repo.nextID = client.ID + 1
		}
	}
	return repo
}

func (f *fakeClientRepo) GetOrCreateByUserID(_ repositories.SQLExecutor, userID int64, fullName string) (*models.Client, error) {
	for _, client := range f.clients {
		if client.UserID == userID {
			return client, nil
		}
	}
	client := &models.Client{ID: f.nextID, UserID: userID, FullName: fullName}
	f.clients[client.ID] = client
	f.nextID++
	return client, nil
}

func (f *fakeClientRepo) GetClientByID(id int64) (*models.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return client, nil
}

func (f *fakeClientRepo) GetClientByUserID(userID int64) (*models.Client, error) {
	for _, client := range f.clients {
		if client.UserID == userID {
			return client, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeClientRepo) GetClients(int, int, *string) ([]models.Client, int, error) {
	clients := make([]models.Client, 0, len(f.clients))
	for _, client := range f.clients {
		clients = append(clients, *client)
	}
	return clients, len(clients), nil
}

func (f *fakeClientRepo) UpdateClient(_ repositories.SQLExecutor, client *models.Client) error {
	if _, ok := f.clients[client.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.clients[client.ID] = client
	return nil
}

func (f *fakeClientRepo) DeleteClient(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.clients[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.clients, id)
	return nil
}

// --- fake employee repository ---

type fakeEmployeeRepo struct {
	employees map[int64]*models.Employee
	nextID    int64
}

func newFakeEmployeeRepo(employees ...*models.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{employees: map[int64]*models.Employee{}, nextID: 1}
	for _, employee := range employees {
		repo.employees[employee.ID] = employee
		if employee.ID >= repo.nextID {
			repo.nextID = employee.ID + 1
		}
	}
	return repo
}

func (f *fakeEmployeeRepo) CreateEmployee(_ repositories.SQLExecutor, employee *models.Employee) (int64, error) {
	employee.ID = f.nextID
	f.nextID++
	f.employees[employee.ID] = employee
	return employee.ID, nil
}

func (f *fakeEmployeeRepo) GetEmployeeByID(id int64) (*models.Employee, error) {
	employee, ok := f.employees[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *employee
	return &copied, nil
}

func (f *fakeEmployeeRepo) GetEmployeeByUserID(userID int64) (*models.Employee, error) {
	for _, employee := range f.employees {
		if employee.UserID != nil && *employee.UserID == userID {
			copied := *employee
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeEmployeeRepo) GetEmployees(int, int) ([]models.Employee, int, error) {
	employees := make([]models.Employee, 0, len(f.employees))
	for _, employee := range f.employees {
		employees = append(employees, *employee)
	}
	return employees, len(employees), nil
}

func (f *fakeEmployeeRepo) UpdateEmployee(_ repositories.SQLExecutor, employee *models.Employee) error {
	if _, ok := f.employees[employee.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.employees[employee.ID] = employee
	return nil
}

func (f *fakeEmployeeRepo) DeleteEmployee(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.employees[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.employees, id)
	return nil
}

// --- fake reservation repository ---

type fakeReservationRepo struct {
	reservations map[int64]*models.Reservation
	rooms        *fakeRoomRepo
	nextID       int64
}

func newFakeReservationRepo(rooms *fakeRoomRepo) *fakeReservationRepo {
	return &fakeReservationRepo{reservations: map[int64]*models.Reservation{}, rooms: rooms, nextID: 1}
}

func (f *fakeReservationRepo) CreateReservation(_ repositories.SQLExecutor, reservation *models.Reservation) (int64, error) {
	reservation.ID = f.nextID
	f.nextID++
	f.reservations[reservation.ID] = reservation
	return reservation.ID, nil
}

func (f *fakeReservationRepo) withRoom(reservation *models.Reservation) *models.Reservation {
	copied := *reservation
	if f.rooms != nil {
		if room, err := f.rooms.GetRoomByID(copied.RoomID); err == nil {
			copied.Room = room
		}
	}
	return &copied
}

func (f *fakeReservationRepo) GetReservationByID(id int64) (*models.Reservation, error) {
	reservation, ok := f.reservations[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return f.withRoom(reservation), nil
}

func (f *fakeReservationRepo) GetOwnedReservation(id, clientID int64) (*models.Reservation, error) {
	reservation, ok := f.reservations[id]
	if !ok || reservation.ClientID != clientID {
		return nil, repositories.ErrNotFound
	}
	return f.withRoom(reservation), nil
}

func (f *fakeReservationRepo) GetReservations(models.ReservationFilters) ([]models.Reservation, int, error) {
	reservations := make([]models.Reservation, 0, len(f.reservations))
	for _, reservation := range f.reservations {
		reservations = append(reservations, *f.withRoom(reservation))
	}
	return reservations, len(reservations), nil
}

func (f *fakeReservationRepo) GetActiveByClient(clientID int64) ([]models.Reservation, error) {
	reservations := []models.Reservation{}
	for _, reservation := range f.reservations {
		if reservation.ClientID == clientID && reservation.Status == models.ReservationStatusReserved {
			reservations = append(reservations, *f.withRoom(reservation))
		}
	}
	return reservations, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ repositories.SQLExecutor, id int64, from, to models.ReservationStatus) (int64, error) {
	reservation, ok := f.reservations[id]
	if !ok || reservation.Status != from {
		return 0, nil
	}
	reservation.Status = to
	return 1, nil
}

func (f *fakeReservationRepo) UpdateDates(_ repositories.SQLExecutor, id int64, start, end time.Time) (int64, error) {
	reservation, ok := f.reservations[id]
	if !ok || reservation.Status != models.ReservationStatusReserved {
		return 0, nil
	}
	reservation.StartDate = start
	reservation.EndDate = end
	return 1, nil
}
