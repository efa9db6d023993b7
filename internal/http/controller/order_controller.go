package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vuhoang-dev/store-backend/internal/model"
	"github.com/vuhoang-dev/store-backend/internal/service"
)

// OrderController handles HTTP requests for order operations.
type OrderController struct {
	orderService *service.OrderService
}

// NewOrderController creates a new OrderController with the given order service.
func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

// CreateOrderRequest represents the request body for placing an order.
type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name" binding:"required"`
	Email        string             `json:"email" binding:"required,email"`
	Phone        string             `json:"phone"`
	Address      string             `json:"address"`
	Items        []OrderItemRequest `json:"items" binding:"required"`
}

// OrderItemRequest represents one requested line item.
type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// OrderItemResponse represents one order line in responses.
type OrderItemResponse struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// OrderResponse represents the response body for an order.
type OrderResponse struct {
	ID           string              `json:"id"`
	CustomerName string              `json:"customer_name"`
	Email        string              `json:"email"`
	Phone        string              `json:"phone"`
	Address      string              `json:"address"`
	Total        string              `json:"total"`
	Status       string              `json:"status"`
	Items        []OrderItemResponse `json:"items"`
	CreatedAt    string              `json:"created_at"`
}

// CreateOrder handles the HTTP POST request for placing an order.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]service.OrderItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}
		items = append(items, service.OrderItemRequest{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	order, err := oc.orderService.Create(c.Request.Context(), service.CreateOrderRequest{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Items:        items,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// GetOrder handles the HTTP GET request for fetching an order by ID.
func (oc *OrderController) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	order, err := oc.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

func toOrderResponse(order *model.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID.String(),
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
		})
	}

	return OrderResponse{
		ID:           order.ID.String(),
		CustomerName: order.CustomerName,
		Email:        order.Email,
		Phone:        order.Phone,
		Address:      order.Address,
		Total:        order.Total.StringFixed(2),
		Status:       string(order.Status),
		Items:        items,
		CreatedAt:    order.CreatedAt.Format(time.RFC3339),
	}
}
