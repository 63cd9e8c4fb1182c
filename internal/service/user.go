package service

import (
	"context"
	"fmt"
	"strings"

	"academy-ledger/internal/config"
	"academy-ledger/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users  UserStore
	now    clock
	logger zerolog.Logger
}

func NewUserService(users UserStore, cfg *config.Config, logger zerolog.Logger) *UserService {
	return &UserService{users: users, now: newClock(cfg), logger: logger}
}

type CreateUserInput struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Email    string          `json:"email" validate:"required,email"`
	Role     domain.UserRole `json:"role" validate:"required,enum"`
	Password string          `json:"password" validate:"omitempty,min=8,max=72"`
}

func (s *UserService) List(ctx context.Context, role *domain.UserRole) ([]domain.User, error) {
	return s.users.List(ctx, role)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.Get(ctx, id)
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:      in.Name,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Role:      in.Role,
		CreatedAt: s.now().UTC(),
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}
