package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vuhoang-dev/store-backend/internal/repository"
)

// CatalogController handles HTTP requests for categories and sizes.
type CatalogController struct {
	categories repository.CategoryRepository
	sizes      repository.SizeRepository
}

// NewCatalogController creates a new CatalogController.
func NewCatalogController(categories repository.CategoryRepository, sizes repository.SizeRepository) *CatalogController {
	return &CatalogController{
		categories: categories,
		sizes:      sizes,
	}
}

// SizeResponse represents a size in responses.
type SizeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListCategories handles the HTTP GET request for listing all categories.
func (cc *CatalogController) ListCategories(c *gin.Context) {
	categories, err := cc.categories.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, CategoryResponse{
			ID:   category.ID.String(),
			Name: category.Name,
		})
	}

	c.JSON(http.StatusOK, gin.H{"categories": responses})
}

// ListSizes handles the HTTP GET request for listing all sizes.
func (cc *CatalogController) ListSizes(c *gin.Context) {
	sizes, err := cc.sizes.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]SizeResponse, 0, len(sizes))
	for _, size := range sizes {
		responses = append(responses, SizeResponse{
			ID:   size.ID.String(),
			Name: size.Name,
		})
	}

	c.JSON(http.StatusOK, gin.H{"sizes": responses})
}
