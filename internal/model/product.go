package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalog product with its pricing and sale window.
type Product struct {
	ID          uuid.UUID
	Title       string
	Slug        string
	Description string
	Price       decimal.Decimal
	IsOnSale    bool
	SalePrice   *decimal.Decimal
	StartSale   *time.Time
	EndSale     *time.Time
	Categories  []Category
	UpdatedAt   time.Time
	CreatedAt   time.Time
}

// InitMeta initializes the product metadata including ID and timestamps.
func (p *Product) InitMeta() {
	p.ID = uuid.New()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
}

// CategoryIDs returns the identifiers of the categories the product belongs to.
func (p *Product) CategoryIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
