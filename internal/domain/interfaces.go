package domain

import (
	"context"

	"tripdesk/internal/models"
)

type UserStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, companyID string) ([]*models.User, error)
	InsertUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
}

type CompanyStore interface {
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]*models.Company, error)
	InsertCompany(ctx context.Context, company *models.Company) error
	UpdateCompany(ctx context.Context, company *models.Company) error
}

type HotelStore interface {
	GetHotel(ctx context.Context, id string) (*models.Hotel, error)
	SearchHotels(ctx context.Context, query models.HotelSearchQuery) ([]*models.Hotel, error)
	InsertHotel(ctx context.Context, hotel *models.Hotel) error
	CountHotels(ctx context.Context) (int, error)
}

type ReservationStore interface {
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	ListReservations(ctx context.Context, filter models.ReservationFilter) ([]*models.Reservation, error)
	InsertReservation(ctx context.Context, reservation *models.Reservation) error
	UpdateReservation(ctx context.Context, reservation *models.Reservation) error
}

// Store is the full document store the workflow engine runs against.
type Store interface {
	UserStore
	CompanyStore
	HotelStore
	ReservationStore
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// StatsCache holds computed dashboard stats for a short TTL. Entries are
// not invalidated explicitly; staleness is bounded by the TTL.
type StatsCache interface {
	GetStats(ctx context.Context, key string) (*models.DashboardStats, error)
	SetStats(ctx context.Context, key string, stats *models.DashboardStats) error
}
