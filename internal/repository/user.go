package repository

import (
	"context"
	"fmt"

	"academy-ledger/internal/db"
	"academy-ledger/internal/domain"

	"github.com/rs/zerolog"
)

type UserRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewUserRepository(queries *db.Queries, logger zerolog.Logger) *UserRepository {
	return &UserRepository{queries: queries, logger: logger}
}

func (r *UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := r.queries.GetUser(ctx, id)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, role *domain.UserRole) ([]domain.User, error) {
	users, err := r.queries.ListUsers(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := ensureID(&user.ID); err != nil {
		return nil, err
	}

	if err := r.queries.CreateUser(ctx, *user); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewValidationError("email", "is already registered")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return r.Get(ctx, user.ID)
}
