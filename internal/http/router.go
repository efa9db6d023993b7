package http

import (
	"github.com/gin-gonic/gin"
	"github.com/vuhoang-dev/store-backend/internal/http/controller"
	"github.com/vuhoang-dev/store-backend/internal/http/middleware"
)

// InitRouter wires all endpoints into the gin engine.
func InitRouter(server *gin.Engine, ctr *controller.Controller, productCtr *controller.ProductController,
	catalogCtr *controller.CatalogController, userCtr *controller.UserController, orderCtr *controller.OrderController) *gin.Engine {
	// Apply recovery middleware globally to prevent panics from crashing the server
	server.Use(middleware.Recovery())

	server.GET("/ping", ctr.Ping)

	products := server.Group("/products")
	{
		products.GET("", productCtr.ListProducts)
		products.POST("", productCtr.CreateProduct)
		products.GET("/:slug", productCtr.GetProductBySlug)
		products.PUT("/:id", productCtr.UpdateProduct)
		products.DELETE("/:id", productCtr.DeleteProduct)
	}

	server.GET("/categories", catalogCtr.ListCategories)
	server.GET("/sizes", catalogCtr.ListSizes)

	users := server.Group("/users")
	{
		users.POST("/signup", userCtr.Signup)
		users.POST("/forgot-password", userCtr.ForgotPassword)
		users.GET("/:username", userCtr.GetUser)
	}

	orders := server.Group("/orders")
	{
		orders.POST("", orderCtr.CreateOrder)
		orders.GET("/:id", orderCtr.GetOrder)
	}

	return server
}
