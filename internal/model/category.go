package model

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a product category. Categories are managed elsewhere;
// the product service only references them.
type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// InitMeta initializes the category metadata including ID and timestamp.
func (c *Category) InitMeta() {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
}
