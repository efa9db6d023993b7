package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vuhoang-dev/store-backend/internal/model"
	"github.com/vuhoang-dev/store-backend/internal/repository"
)

// SizeRepository implements repository.SizeRepository over PostgreSQL.
type SizeRepository struct {
	db *sql.DB
}

// NewSizeRepository creates a new SizeRepository instance.
func NewSizeRepository(db *sql.DB) repository.SizeRepository {
	return &SizeRepository{db: db}
}

// FindAll retrieves all sizes ordered by name.
func (r *SizeRepository) FindAll(ctx context.Context) ([]model.Size, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM sizes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sizes: %w", err)
	}
	defer rows.Close()

	var sizes []model.Size
	for rows.Next() {
		var size model.Size
		if err := rows.Scan(&size.ID, &size.Name); err != nil {
			return nil, fmt.Errorf("failed to scan size: %w", err)
		}
		sizes = append(sizes, size)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return sizes, nil
}
