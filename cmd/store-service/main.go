package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/vuhoang-dev/store-backend/internal/config"
	httpAPI "github.com/vuhoang-dev/store-backend/internal/http"
	"github.com/vuhoang-dev/store-backend/internal/http/controller"
	"github.com/vuhoang-dev/store-backend/internal/logger"
	"github.com/vuhoang-dev/store-backend/internal/metrics"
	"github.com/vuhoang-dev/store-backend/internal/repository/sql"
	"github.com/vuhoang-dev/store-backend/internal/service"
	sqspkg "github.com/vuhoang-dev/store-backend/internal/sqs"
)

func main() {
	logger.InitJSONLogger()

	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	ctx := context.Background()
	db, err := sql.StartDB(ctx, conf.Database)
	handleErr("starting database", err)

	// Create repositories
	productRepository := sql.NewProductRepository(db)
	categoryRepository := sql.NewCategoryRepository(db)
	sizeRepository := sql.NewSizeRepository(db)
	orderRepository := sql.NewOrderRepository(db)
	userRepository := sql.NewUserRepository(db)

	sqsClient, err := sqspkg.NewClient(ctx, conf.AWS.Region, conf.AWS.Endpoint)
	handleErr("creating SQS client", err)

	authPublisher := sqspkg.NewPublisher(sqsClient, conf.AWS.AuthQueueURL)
	orderPublisher := sqspkg.NewPublisher(sqsClient, conf.AWS.OrderQueueURL)

	// Create services
	productService := service.NewProductService(productRepository, categoryRepository)
	userService := service.NewUserService(userRepository, authPublisher)
	orderService := service.NewOrderService(orderRepository, productRepository, orderPublisher, conf.OrderConfirmBaseURL)

	// Start HTTP server
	ctr := controller.New()
	productCtr := controller.NewProductController(productService)
	catalogCtr := controller.NewCatalogController(categoryRepository, sizeRepository)
	userCtr := controller.NewUserController(userService)
	orderCtr := controller.NewOrderController(orderService)

	if !conf.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	httpServer := gin.Default()
	httpServer = httpAPI.InitRouter(httpServer, ctr, productCtr, catalogCtr, userCtr, orderCtr)

	go func() {
		err = httpServer.Run(":" + conf.HTTPServer.Port)
		if err != nil {
			handleErr("listening to HTTP requests", err)
		}
	}()

	metrics.StartMetricsServer(conf)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down gracefully...")
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
