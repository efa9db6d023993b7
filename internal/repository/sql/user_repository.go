package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vuhoang-dev/store-backend/internal/model"
	"github.com/vuhoang-dev/store-backend/internal/repository"
)

// UserRepository implements repository.UserRepository over PostgreSQL.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user into the database.
func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	user.InitMeta()

	query := `INSERT INTO users (id, username, email, password, name, role, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, user.ID, user.Username, user.Email, user.Password,
		user.Name, user.Role, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if uniqueErr := asUniqueConstraintError(err); uniqueErr != nil {
			return nil, uniqueErr
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

// FindByUsername retrieves a single user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, `WHERE username = $1`, username)
}

// FindByEmail retrieves a single user by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg interface{}) (*model.User, error) {
	query := `SELECT id, username, email, password, name, role, created_at, updated_at FROM users ` + where

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	var user model.User
	err = stmt.QueryRowContext(ctx, arg).Scan(&user.ID, &user.Username, &user.Email,
		&user.Password, &user.Name, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}
