package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vuhoang-dev/store-backend/internal/model"
)

var (
	// ErrNotFound indicates the requested record does not exist in the store.
	ErrNotFound = errors.New("record not found")
)

// ProductRepository defines the data-access operations used by the product service.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) (*model.Product, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	// FindPage returns one page of products ordered by creation time descending
	// together with the total number of products.
	FindPage(ctx context.Context, req PageRequest) ([]*model.Product, int64, error)
	// WithinTransaction runs fn against a repository bound to a single
	// transaction: commit when fn returns nil, rollback otherwise.
	WithinTransaction(ctx context.Context, fn func(repo ProductRepository) error) error
}

// CategoryRepository resolves category references. Categories are never
// created through this service.
type CategoryRepository interface {
	FindAllByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
}

// SizeRepository lists the available product sizes.
type SizeRepository interface {
	FindAll(ctx context.Context) ([]model.Size, error)
}

// OrderRepository defines the data-access operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
}

// UserRepository defines the data-access operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// UniqueConstraintError represents a database unique constraint violation error.
type UniqueConstraintError struct {
	Detail string
}

func (u *UniqueConstraintError) Error() string {
	return "resource must be unique: " + u.Detail
}
