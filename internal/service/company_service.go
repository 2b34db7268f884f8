package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tripdesk/internal/domain"
	"tripdesk/internal/models"
)

// CompanyService manages companies and the fee/approval policies they
// carry. Companies are soft-deactivated, never removed.
type CompanyService struct {
	store  domain.CompanyStore
	logger *zerolog.Logger
}

func NewCompanyService(store domain.CompanyStore, logger *zerolog.Logger) *CompanyService {
	return &CompanyService{store: store, logger: logger}
}

type CompanyInput struct {
	Name         string                 `json:"name"`
	TaxNumber    string                 `json:"tax_number"`
	Address      string                 `json:"address"`
	Phone        string                 `json:"phone"`
	Email        string                 `json:"email"`
	ServiceFees  models.ServiceFeeTable `json:"service_fees"`
	BookingRules *models.BookingRules   `json:"booking_rules"`
}

func (s *CompanyService) Create(ctx context.Context, in CompanyInput) (*models.Company, error) {
	now := time.Now().UTC()

	company := &models.Company{
		ID:           uuid.NewString(),
		Name:         in.Name,
		TaxNumber:    in.TaxNumber,
		Address:      in.Address,
		Phone:        in.Phone,
		Email:        in.Email,
		ServiceFees:  in.ServiceFees,
		BookingRules: models.DefaultBookingRules(),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if company.ServiceFees == nil {
		company.ServiceFees = models.DefaultServiceFees()
	}
	if in.BookingRules != nil {
		company.BookingRules = *in.BookingRules
	}

	if err := s.store.InsertCompany(ctx, company); err != nil {
		return nil, err
	}

	s.logger.Info().Str("company_id", company.ID).Str("name", company.Name).Msg("company created")
	return company, nil
}

// Update replaces the company's profile and policies. Fee and approval
// changes take effect for future reservations only; existing reservations
// keep their computed financials.
func (s *CompanyService) Update(ctx context.Context, id string, in CompanyInput) (*models.Company, error) {
	company, err := s.store.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	company.Name = in.Name
	company.TaxNumber = in.TaxNumber
	company.Address = in.Address
	company.Phone = in.Phone
	company.Email = in.Email
	if in.ServiceFees != nil {
		company.ServiceFees = in.ServiceFees
	}
	if in.BookingRules != nil {
		company.BookingRules = *in.BookingRules
	}
	company.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateCompany(ctx, company); err != nil {
		return nil, err
	}

	s.logger.Info().Str("company_id", company.ID).Msg("company updated")
	return company, nil
}

func (s *CompanyService) Get(ctx context.Context, id string) (*models.Company, error) {
	return s.store.GetCompany(ctx, id)
}

func (s *CompanyService) List(ctx context.Context) ([]*models.Company, error) {
	return s.store.ListCompanies(ctx)
}
