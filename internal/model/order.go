package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusPending indicates the order has been placed but not confirmed.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusConfirmed indicates the customer confirmed the order.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusCancelled indicates the order was cancelled.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order represents a customer order with its line items and contact info.
type Order struct {
	ID           uuid.UUID
	CustomerName string
	Email        string
	Phone        string
	Address      string
	Total        decimal.Decimal
	Status       OrderStatus
	Items        []OrderItem
	CreatedAt    time.Time
}

// OrderItem represents a single line of an order.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
}

// InitMeta initializes the order metadata including IDs and timestamp.
func (o *Order) InitMeta() {
	o.ID = uuid.New()
	o.CreatedAt = time.Now()
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	for i := range o.Items {
		o.Items[i].ID = uuid.New()
		o.Items[i].OrderID = o.ID
	}
}
