package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vuhoang-dev/store-backend/internal/apperror"
	"github.com/vuhoang-dev/store-backend/internal/metrics"
	"github.com/vuhoang-dev/store-backend/internal/model"
	"github.com/vuhoang-dev/store-backend/internal/repository"
	"github.com/vuhoang-dev/store-backend/internal/sqs"
)

const (
	MsgOrderNotFound     = "Không tìm thấy đơn hàng"
	MsgInvalidQuantity   = "Số lượng sản phẩm không hợp lệ"
	MsgEmptyOrder        = "Đơn hàng phải có ít nhất một sản phẩm"
	MsgOrderEmailSubject = "Xác nhận đơn hàng"
)

// OrderEmailPublisher publishes messages on the order-email channel.
type OrderEmailPublisher interface {
	PublishOrderEmail(ctx context.Context, msg sqs.OrderEmailMessage) error
}

// CreateOrderRequest carries the input for placing an order.
type CreateOrderRequest struct {
	CustomerName string
	Email        string
	Phone        string
	Address      string
	Items        []OrderItemRequest
}

// OrderItemRequest is one requested line item.
type OrderItemRequest struct {
	ProductID uuid.UUID
	Quantity  int
}

// OrderService places orders and enqueues their confirmation emails.
type OrderService struct {
	orders         repository.OrderRepository
	products       repository.ProductRepository
	publisher      OrderEmailPublisher
	confirmBaseURL string
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, publisher OrderEmailPublisher, confirmBaseURL string) *OrderService {
	return &OrderService{
		orders:         orders,
		products:       products,
		publisher:      publisher,
		confirmBaseURL: confirmBaseURL,
	}
}

// Create resolves the requested products, persists the order and enqueues
// an order confirmation email.
func (os *OrderService) Create(ctx context.Context, request CreateOrderRequest) (*model.Order, error) {
	if len(request.Items) == 0 {
		return nil, apperror.BadRequest(MsgEmptyOrder)
	}

	total := decimal.Zero
	items := make([]model.OrderItem, 0, len(request.Items))
	for _, item := range request.Items {
		if item.Quantity <= 0 {
			return nil, apperror.BadRequest(MsgInvalidQuantity)
		}

		product, err := os.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperror.NotFound(MsgProductNotFound)
			}
			return nil, err
		}

		unitPrice := product.Price
		if product.IsOnSale && product.SalePrice != nil {
			unitPrice = *product.SalePrice
		}

		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
		})
		total = total.Add(unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	order := &model.Order{
		CustomerName: request.CustomerName,
		Email:        request.Email,
		Phone:        request.Phone,
		Address:      request.Address,
		Total:        total,
		Items:        items,
	}

	created, err := os.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()

	msg := sqs.OrderEmailMessage{
		OrderID:     created.ID.String(),
		To:          created.Email,
		Subject:     MsgOrderEmailSubject,
		ConfirmLink: fmt.Sprintf("%s/orders/%s/confirm", os.confirmBaseURL, created.ID),
	}
	if err := os.publisher.PublishOrderEmail(ctx, msg); err != nil {
		// Log error but don't fail the request
		slog.Error("Failed to enqueue order email", slog.Any("err", err), slog.String("order_id", created.ID.String()))
	}

	return created, nil
}

// GetByID returns the order with the given identifier.
func (os *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := os.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(MsgOrderNotFound)
		}
		return nil, err
	}
	return order, nil
}
