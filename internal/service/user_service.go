package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tripdesk/internal/domain"
	"tripdesk/internal/models"
)

type UserService struct {
	store  domain.UserStore
	logger *zerolog.Logger
}

func NewUserService(store domain.UserStore, logger *zerolog.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

type RegisterInput struct {
	Email      string      `json:"email"`
	FullName   string      `json:"full_name"`
	Phone      string      `json:"phone"`
	Role       models.Role `json:"role"`
	CompanyID  string      `json:"company_id"`
	Department string      `json:"department"`
}

// Register creates a user with a pre-hashed password. Password hashing
// lives in the auth package; this service never sees plaintext.
func (s *UserService) Register(ctx context.Context, in RegisterInput, passwordHash string) (*models.User, error) {
	existing, err := s.store.GetUserByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmailTaken, in.Email)
	}

	role := in.Role
	if role == "" {
		role = models.RoleEmployee
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		FullName:     in.FullName,
		Phone:        in.Phone,
		Role:         role,
		CompanyID:    in.CompanyID,
		Department:   in.Department,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.store.GetUserByEmail(ctx, email)
}

// List returns users visible to the caller: managers see their company,
// admins see everyone.
func (s *UserService) List(ctx context.Context, actor models.Identity) ([]*models.User, error) {
	if !actor.Role.CanModerate() {
		return nil, fmt.Errorf("%w: manager or admin access required", ErrAccessDenied)
	}

	companyID := ""
	if actor.Role == models.RoleManager {
		companyID = actor.CompanyID
	}
	return s.store.ListUsers(ctx, companyID)
}
