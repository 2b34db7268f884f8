package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"tripdesk/internal/domain"
	"tripdesk/internal/models"
)

// MemoryStore is an in-memory document store. It backs the service tests
// and local development without a database file.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[string]models.User
	companies    map[string]models.Company
	hotels       map[string]models.Hotel
	reservations map[string]models.Reservation
	resOrder     []string
	hotelOrder   []string
	userOrder    []string
	companyOrder []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]models.User),
		companies:    make(map[string]models.Company),
		hotels:       make(map[string]models.Hotel),
		reservations: make(map[string]models.Reservation),
	}
}

func (m *MemoryStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
	}
	return &user, nil
}

func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, email)
}

func (m *MemoryStore) ListUsers(ctx context.Context, companyID string) ([]*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := make([]*models.User, 0, len(m.userOrder))
	for _, id := range m.userOrder {
		user := m.users[id]
		if companyID != "" && user.CompanyID != companyID {
			continue
		}
		u := user
		users = append(users, &u)
	}
	return users, nil
}

func (m *MemoryStore) InsertUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		m.userOrder = append(m.userOrder, user.ID)
	}
	m.users[user.ID] = *user
	return nil
}

func (m *MemoryStore) UpdateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, user.ID)
	}
	m.users[user.ID] = *user
	return nil
}

func (m *MemoryStore) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	company, ok := m.companies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCompanyNotFound, id)
	}
	return &company, nil
}

func (m *MemoryStore) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	companies := make([]*models.Company, 0, len(m.companyOrder))
	for _, id := range m.companyOrder {
		company := m.companies[id]
		companies = append(companies, &company)
	}
	return companies, nil
}

func (m *MemoryStore) InsertCompany(ctx context.Context, company *models.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.companies[company.ID]; !ok {
		m.companyOrder = append(m.companyOrder, company.ID)
	}
	m.companies[company.ID] = *company
	return nil
}

func (m *MemoryStore) UpdateCompany(ctx context.Context, company *models.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.companies[company.ID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrCompanyNotFound, company.ID)
	}
	m.companies[company.ID] = *company
	return nil
}

func (m *MemoryStore) GetHotel(ctx context.Context, id string) (*models.Hotel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	hotel, ok := m.hotels[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrHotelNotFound, id)
	}
	return &hotel, nil
}

func (m *MemoryStore) SearchHotels(ctx context.Context, query models.HotelSearchQuery) ([]*models.Hotel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	hotels := make([]*models.Hotel, 0, len(m.hotelOrder))
	for _, id := range m.hotelOrder {
		hotel := m.hotels[id]
		if query.OnlyActive && !hotel.IsActive {
			continue
		}
		if query.City != "" && !strings.Contains(strings.ToLower(hotel.City), strings.ToLower(query.City)) {
			continue
		}
		if query.MinStars > 0 && hotel.Stars < query.MinStars {
			continue
		}
		if query.MaxStars > 0 && hotel.Stars > query.MaxStars {
			continue
		}
		h := hotel
		hotels = append(hotels, &h)
	}
	return hotels, nil
}

func (m *MemoryStore) InsertHotel(ctx context.Context, hotel *models.Hotel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hotels[hotel.ID]; !ok {
		m.hotelOrder = append(m.hotelOrder, hotel.ID)
	}
	m.hotels[hotel.ID] = *hotel
	return nil
}

func (m *MemoryStore) CountHotels(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hotels), nil
}

func (m *MemoryStore) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	reservation, ok := m.reservations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrReservationNotFound, id)
	}
	return &reservation, nil
}

func (m *MemoryStore) ListReservations(ctx context.Context, filter models.ReservationFilter) ([]*models.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	reservations := make([]*models.Reservation, 0, len(m.resOrder))
	for _, id := range m.resOrder {
		reservation := m.reservations[id]
		if filter.UserID != "" && reservation.UserID != filter.UserID {
			continue
		}
		if filter.CompanyID != "" && reservation.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Status != "" && reservation.Status != filter.Status {
			continue
		}
		r := reservation
		reservations = append(reservations, &r)
	}
	return reservations, nil
}

func (m *MemoryStore) InsertReservation(ctx context.Context, reservation *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reservations[reservation.ID]; !ok {
		m.resOrder = append(m.resOrder, reservation.ID)
	}
	m.reservations[reservation.ID] = *reservation
	return nil
}

func (m *MemoryStore) UpdateReservation(ctx context.Context, reservation *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reservations[reservation.ID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrReservationNotFound, reservation.ID)
	}
	m.reservations[reservation.ID] = *reservation
	return nil
}
