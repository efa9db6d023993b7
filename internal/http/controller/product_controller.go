package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vuhoang-dev/store-backend/internal/apperror"
	"github.com/vuhoang-dev/store-backend/internal/model"
	"github.com/vuhoang-dev/store-backend/internal/service"
)

const dateLayout = "2006-01-02"

// ProductController handles HTTP requests for product operations.
type ProductController struct {
	productService *service.ProductService
}

// NewProductController creates a new ProductController with the given product service.
func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// CreateProductRequest represents the request body for creating a product.
type CreateProductRequest struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price" binding:"required"`
	IsOnSale    bool             `json:"is_on_sale"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	StartSale   *string          `json:"start_sale"`
	EndSale     *string          `json:"end_sale"`
	CategoryIDs []string         `json:"category_ids"`
}

// UpdateProductRequest represents the request body for a partial product update.
type UpdateProductRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	IsOnSale    bool             `json:"is_on_sale"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	StartSale   *string          `json:"start_sale"`
	EndSale     *string          `json:"end_sale"`
	CategoryIDs []string         `json:"category_ids"`
}

// CategoryResponse represents a category in responses.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductResponse represents the response body for a product.
type ProductResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Slug        string             `json:"slug"`
	Description string             `json:"description"`
	Price       string             `json:"price"`
	IsOnSale    bool               `json:"is_on_sale"`
	SalePrice   *string            `json:"sale_price,omitempty"`
	StartSale   *string            `json:"start_sale,omitempty"`
	EndSale     *string            `json:"end_sale,omitempty"`
	Categories  []CategoryResponse `json:"categories"`
	CreatedAt   string             `json:"created_at"`
	UpdatedAt   string             `json:"updated_at"`
}

// PagedProductsResponse represents one page of products with totals.
type PagedProductsResponse struct {
	Products   []ProductResponse `json:"products"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"total_pages"`
	Last       bool              `json:"last"`
}

// ListProducts handles the HTTP GET request for listing products with pagination.
func (pc *ProductController) ListProducts(c *gin.Context) {
	var req struct {
		Page int `form:"page"`
		Size int `form:"size,default=10"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := pc.productService.List(c.Request.Context(), req.Page, req.Size)
	if err != nil {
		respondError(c, err)
		return
	}

	products := make([]ProductResponse, 0, len(page.Items))
	for _, product := range page.Items {
		products = append(products, toProductResponse(product))
	}

	c.JSON(http.StatusOK, PagedProductsResponse{
		Products:   products,
		Page:       page.Page,
		Size:       page.Size,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Last:       page.Last,
	})
}

// CreateProduct handles the HTTP POST request for creating a new product.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	serviceReq, err := toCreateServiceRequest(req)
	if err != nil {
		respondError(c, err)
		return
	}

	created, err := pc.productService.Create(c.Request.Context(), serviceReq)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(created))
}

// GetProductBySlug handles the HTTP GET request for fetching a product by slug.
func (pc *ProductController) GetProductBySlug(c *gin.Context) {
	product, err := pc.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

// UpdateProduct handles the HTTP PUT request for updating a product.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	serviceReq, err := toUpdateServiceRequest(req)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := pc.productService.Update(c.Request.Context(), id, serviceReq)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(updated))
}

// DeleteProduct handles the HTTP DELETE request for deleting a product by ID.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	if err := pc.productService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted successfully"})
}

func toCreateServiceRequest(req CreateProductRequest) (service.CreateProductRequest, error) {
	categoryIDs, err := parseUUIDs(req.CategoryIDs)
	if err != nil {
		return service.CreateProductRequest{}, err
	}
	startSale, err := parseDate(req.StartSale)
	if err != nil {
		return service.CreateProductRequest{}, err
	}
	endSale, err := parseDate(req.EndSale)
	if err != nil {
		return service.CreateProductRequest{}, err
	}

	return service.CreateProductRequest{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		IsOnSale:    req.IsOnSale,
		SalePrice:   req.SalePrice,
		StartSale:   startSale,
		EndSale:     endSale,
		CategoryIDs: categoryIDs,
	}, nil
}

func toUpdateServiceRequest(req UpdateProductRequest) (service.UpdateProductRequest, error) {
	categoryIDs, err := parseUUIDs(req.CategoryIDs)
	if err != nil {
		return service.UpdateProductRequest{}, err
	}
	startSale, err := parseDate(req.StartSale)
	if err != nil {
		return service.UpdateProductRequest{}, err
	}
	endSale, err := parseDate(req.EndSale)
	if err != nil {
		return service.UpdateProductRequest{}, err
	}

	return service.UpdateProductRequest{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		IsOnSale:    req.IsOnSale,
		SalePrice:   req.SalePrice,
		StartSale:   startSale,
		EndSale:     endSale,
		CategoryIDs: categoryIDs,
	}, nil
}

func parseUUIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, apperror.BadRequest(service.MsgInvalidCategoryIDs)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, apperror.BadRequest("ngày không hợp lệ: " + *value)
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func toProductResponse(product *model.Product) ProductResponse {
	resp := ProductResponse{
		ID:          product.ID.String(),
		Title:       product.Title,
		Slug:        product.Slug,
		Description: product.Description,
		Price:       product.Price.StringFixed(2),
		IsOnSale:    product.IsOnSale,
		StartSale:   formatDate(product.StartSale),
		EndSale:     formatDate(product.EndSale),
		Categories:  make([]CategoryResponse, 0, len(product.Categories)),
		CreatedAt:   product.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   product.UpdatedAt.Format(time.RFC3339),
	}
	if product.SalePrice != nil {
		salePrice := product.SalePrice.StringFixed(2)
		resp.SalePrice = &salePrice
	}
	for _, category := range product.Categories {
		resp.Categories = append(resp.Categories, CategoryResponse{
			ID:   category.ID.String(),
			Name: category.Name,
		})
	}
	return resp
}
