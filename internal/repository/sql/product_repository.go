package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/vuhoang-dev/store-backend/internal/model"
	"github.com/vuhoang-dev/store-backend/internal/repository"
)

// ProductRepository implements repository.ProductRepository over PostgreSQL.
type ProductRepository struct {
	db  *sql.DB
	txn *sql.Tx
}

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &ProductRepository{db: db}
}

// getExecutor returns the active executor (transaction if exists, otherwise db)
func (r *ProductRepository) getExecutor() dbExecutor {
	if r.txn != nil {
		return r.txn
	}
	return r.db
}

// WithinTransaction executes a function within a database transaction
func (r *ProductRepository) WithinTransaction(ctx context.Context, fn func(repo repository.ProductRepository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txRepo := &ProductRepository{
		db:  r.db,
		txn: tx,
	}

	if err := fn(txRepo); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("failed to rollback transaction: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Create inserts a new product and its category links into the database.
func (r *ProductRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if product.ID == uuid.Nil {
		product.InitMeta()
	}

	query := `INSERT INTO products (id, title, slug, description, price, is_on_sale, sale_price, start_sale, end_sale, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, product.ID, product.Title, product.Slug, product.Description,
		product.Price, product.IsOnSale, nullDecimal(product.SalePrice),
		nullTime(product.StartSale), nullTime(product.EndSale), product.CreatedAt, product.UpdatedAt)
	if err != nil {
		if uniqueErr := asUniqueConstraintError(err); uniqueErr != nil {
			return nil, uniqueErr
		}
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	if err := r.replaceCategoryLinks(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Update rewrites a product row and replaces its category links.
func (r *ProductRepository) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	query := `UPDATE products SET title = $2, slug = $3, description = $4, price = $5,
	          is_on_sale = $6, sale_price = $7, start_sale = $8, end_sale = $9, updated_at = $10
	          WHERE id = $1`

	product.UpdatedAt = time.Now()

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, product.ID, product.Title, product.Slug, product.Description,
		product.Price, product.IsOnSale, nullDecimal(product.SalePrice),
		nullTime(product.StartSale), nullTime(product.EndSale), product.UpdatedAt)
	if err != nil {
		if uniqueErr := asUniqueConstraintError(err); uniqueErr != nil {
			return nil, uniqueErr
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, repository.ErrNotFound
	}

	if err := r.replaceCategoryLinks(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// replaceCategoryLinks rewrites the product_categories rows for a product.
func (r *ProductRepository) replaceCategoryLinks(ctx context.Context, product *model.Product) error {
	executor := r.getExecutor()

	if _, err := executor.ExecContext(ctx, `DELETE FROM product_categories WHERE product_id = $1`, product.ID); err != nil {
		return fmt.Errorf("failed to clear category links: %w", err)
	}

	for _, category := range product.Categories {
		_, err := executor.ExecContext(ctx,
			`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2)`,
			product.ID, category.ID)
		if err != nil {
			return fmt.Errorf("failed to insert category link: %w", err)
		}
	}

	return nil
}

// FindPage retrieves one page of products ordered by creation time descending,
// together with the total number of products.
func (r *ProductRepository) FindPage(ctx context.Context, req repository.PageRequest) ([]*model.Product, int64, error) {
	executor := r.getExecutor()

	var total int64
	if err := executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := `SELECT id, title, slug, description, price, is_on_sale, sale_price, start_sale, end_sale, created_at, updated_at
	          FROM products ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`

	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, req.Size, req.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	for _, product := range products {
		if err := r.loadCategories(ctx, product); err != nil {
			return nil, 0, err
		}
	}

	return products, total, nil
}

// FindByID retrieves a single product with its categories by ID.
func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindBySlug retrieves a single product with its categories by slug.
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return r.findOne(ctx, `WHERE slug = $1`, slug)
}

func (r *ProductRepository) findOne(ctx context.Context, where string, arg interface{}) (*model.Product, error) {
	query := `SELECT id, title, slug, description, price, is_on_sale, sale_price, start_sale, end_sale, created_at, updated_at
	          FROM products ` + where

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	product, err := scanProduct(stmt.QueryRowContext(ctx, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	if err := r.loadCategories(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// ExistsBySlug reports whether a product with the given slug exists.
func (r *ProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1)`, slug)
}

// ExistsByID reports whether a product with the given ID exists.
func (r *ProductRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id)
}

func (r *ProductRepository) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	executor := r.getExecutor()
	var exists bool
	if err := executor.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to query existence: %w", err)
	}
	return exists, nil
}

// DeleteByID deletes a product and its category links by ID.
func (r *ProductRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	executor := r.getExecutor()

	if _, err := executor.ExecContext(ctx, `DELETE FROM product_categories WHERE product_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete category links: %w", err)
	}

	result, err := executor.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// loadCategories fills in the categories of a product from the join table.
func (r *ProductRepository) loadCategories(ctx context.Context, product *model.Product) error {
	query := `SELECT c.id, c.name, c.created_at FROM categories c
	          JOIN product_categories pc ON pc.category_id = c.id
	          WHERE pc.product_id = $1 ORDER BY c.name`

	executor := r.getExecutor()
	rows, err := executor.QueryContext(ctx, query, product.ID)
	if err != nil {
		return fmt.Errorf("failed to query product categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var category model.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}

	product.Categories = categories
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*model.Product, error) {
	var product model.Product
	var salePrice decimal.NullDecimal
	var startSale, endSale sql.NullTime

	err := row.Scan(&product.ID, &product.Title, &product.Slug, &product.Description,
		&product.Price, &product.IsOnSale, &salePrice, &startSale, &endSale,
		&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	if salePrice.Valid {
		product.SalePrice = &salePrice.Decimal
	}
	if startSale.Valid {
		product.StartSale = &startSale.Time
	}
	if endSale.Valid {
		product.EndSale = &endSale.Time
	}

	return &product, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// asUniqueConstraintError maps a PostgreSQL unique violation to the
// repository error type, or returns nil for other errors.
func asUniqueConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationErrCode {
		return &repository.UniqueConstraintError{Detail: pgErr.Detail}
	}
	return nil
}
