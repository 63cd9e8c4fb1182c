package db

import (
	"context"

	"academy-ledger/internal/domain"
)

const userColumns = `id, name, email, role, password_hash, created_at`

func scanUser(row scanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

const getUser = `SELECT ` + userColumns + ` FROM users WHERE id = ?`

func (q *Queries) GetUser(ctx context.Context, id string) (domain.User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUser, id))
}

const listUsers = `SELECT ` + userColumns + `
FROM users
WHERE (?1 IS NULL OR role = ?1)
ORDER BY name`

func (q *Queries) ListUsers(ctx context.Context, role *domain.UserRole) ([]domain.User, error) {
	rows, err := q.db.QueryContext(ctx, listUsers, role)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanUser)
}

const createUser = `INSERT INTO users (id, name, email, role, password_hash, created_at) VALUES (?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateUser(ctx context.Context, u domain.User) error {
	_, err := q.db.ExecContext(ctx, createUser, u.ID, u.Name, u.Email, u.Role, u.PasswordHash, u.CreatedAt)
	return err
}
