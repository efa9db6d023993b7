package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	httpAPI "github.com/vuhoang-dev/store-backend/internal/http"
	"github.com/vuhoang-dev/store-backend/internal/http/controller"
	reposql "github.com/vuhoang-dev/store-backend/internal/repository/sql"
	"github.com/vuhoang-dev/store-backend/internal/service"
	"github.com/vuhoang-dev/store-backend/internal/sqs"
)

type noopOrderPublisher struct{}

func (noopOrderPublisher) PublishOrderEmail(_ context.Context, _ sqs.OrderEmailMessage) error {
	return nil
}

type noopAuthPublisher struct{}

func (noopAuthPublisher) PublishAuthEmail(_ context.Context, _ sqs.AuthEmailMessage) error {
	return nil
}

type apiFixture struct {
	router *gin.Engine
}

func setupAPI(testDB *TestDB) *apiFixture {
	productRepo := reposql.NewProductRepository(testDB.DB)
	categoryRepo := reposql.NewCategoryRepository(testDB.DB)
	sizeRepo := reposql.NewSizeRepository(testDB.DB)
	orderRepo := reposql.NewOrderRepository(testDB.DB)
	userRepo := reposql.NewUserRepository(testDB.DB)

	productService := service.NewProductService(productRepo, categoryRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, noopOrderPublisher{}, "http://localhost:8080")
	userService := service.NewUserService(userRepo, noopAuthPublisher{})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	httpAPI.InitRouter(router, controller.New(),
		controller.NewProductController(productService),
		controller.NewCatalogController(categoryRepo, sizeRepo),
		controller.NewUserController(userService),
		controller.NewOrderController(orderService))

	return &apiFixture{router: router}
}

func (f *apiFixture) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestProductAPI_Integration(t *testing.T) {
	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	api := setupAPI(testDB)

	t.Run("create product successfully", func(t *testing.T) {
		testDB.TruncateTables(t)
		category := seedCategory(t, testDB, "Áo")

		w := api.do(http.MethodPost, "/products", map[string]interface{}{
			"title":        "Áo thun basic",
			"description":  "Cotton 100%",
			"price":        "99.99",
			"category_ids": []string{category.ID.String()},
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.NotEmpty(t, response["id"])
		assert.Equal(t, "Áo thun basic", response["title"])
		assert.Equal(t, "ao-thun-basic", response["slug"])
		assert.Equal(t, "99.99", response["price"])
		assert.NotEmpty(t, response["created_at"])

		// Verify product was saved in database
		productID, err := uuid.Parse(response["id"].(string))
		require.NoError(t, err)
		productRepo := reposql.NewProductRepository(testDB.DB)
		found, err := productRepo.FindByID(context.Background(), productID)
		require.NoError(t, err)
		assert.Equal(t, "ao-thun-basic", found.Slug)
	})

	t.Run("duplicate title returns 409 with the contract message", func(t *testing.T) {
		testDB.TruncateTables(t)

		first := api.do(http.MethodPost, "/products", map[string]interface{}{
			"title": "Áo thun basic",
			"price": "99.99",
		})
		require.Equal(t, http.StatusCreated, first.Code)

		second := api.do(http.MethodPost, "/products", map[string]interface{}{
			"title": "Áo thun basic",
			"price": "79.99",
		})

		assert.Equal(t, http.StatusConflict, second.Code)
		assert.Contains(t, second.Body.String(), "Sản phẩm đã tồn tại")
	})

	t.Run("invalid sale pricing returns 400 with the contract message", func(t *testing.T) {
		testDB.TruncateTables(t)

		w := api.do(http.MethodPost, "/products", map[string]interface{}{
			"title":      "Áo khoác",
			"price":      "100",
			"is_on_sale": true,
			"sale_price": "150",
			"end_sale":   "2099-01-01",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Giá khuyến mãi phải nhỏ hơn giá gốc")
	})

	t.Run("get by slug and list pagination", func(t *testing.T) {
		testDB.TruncateTables(t)

		for i := 1; i <= 3; i++ {
			w := api.do(http.MethodPost, "/products", map[string]interface{}{
				"title": fmt.Sprintf("Sản phẩm %d", i),
				"price": "10",
			})
			require.Equal(t, http.StatusCreated, w.Code)
		}

		bySlug := api.do(http.MethodGet, "/products/san-pham-2", nil)
		assert.Equal(t, http.StatusOK, bySlug.Code)

		missing := api.do(http.MethodGet, "/products/khong-ton-tai", nil)
		assert.Equal(t, http.StatusNotFound, missing.Code)

		list := api.do(http.MethodGet, "/products?page=0&size=2", nil)
		assert.Equal(t, http.StatusOK, list.Code)

		var page map[string]interface{}
		require.NoError(t, json.Unmarshal(list.Body.Bytes(), &page))
		assert.Equal(t, float64(3), page["total"])
		assert.Equal(t, float64(2), page["total_pages"])
		assert.Equal(t, false, page["last"])
		assert.Len(t, page["products"], 2)
	})

	t.Run("update and delete lifecycle", func(t *testing.T) {
		testDB.TruncateTables(t)

		created := api.do(http.MethodPost, "/products", map[string]interface{}{
			"title": "Áo thun basic",
			"price": "99.99",
		})
		require.Equal(t, http.StatusCreated, created.Code)

		var product map[string]interface{}
		require.NoError(t, json.Unmarshal(created.Body.Bytes(), &product))
		id := product["id"].(string)

		updated := api.do(http.MethodPut, "/products/"+id, map[string]interface{}{
			"description": "Bản cập nhật",
		})
		assert.Equal(t, http.StatusOK, updated.Code)
		assert.Contains(t, updated.Body.String(), "Bản cập nhật")

		deleted := api.do(http.MethodDelete, "/products/"+id, nil)
		assert.Equal(t, http.StatusOK, deleted.Code)

		gone := api.do(http.MethodGet, "/products/ao-thun-basic", nil)
		assert.Equal(t, http.StatusNotFound, gone.Code)
	})
}
