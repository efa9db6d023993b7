package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/vuhoang-dev/store-backend/internal/config"
	"github.com/vuhoang-dev/store-backend/internal/logger"
	"github.com/vuhoang-dev/store-backend/internal/mail"
	"github.com/vuhoang-dev/store-backend/internal/metrics"
	"github.com/vuhoang-dev/store-backend/internal/repository/sql"
	"github.com/vuhoang-dev/store-backend/internal/service"
	sqspkg "github.com/vuhoang-dev/store-backend/internal/sqs"
)

func main() {
	logger.InitJSONLogger()

	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sql.StartDB(ctx, conf.Database)
	handleErr("starting database", err)

	orderRepository := sql.NewOrderRepository(db)
	emailSender := mail.NewSMTPSender(conf.SMTP)
	notificationService := service.NewNotificationService(orderRepository, emailSender)

	sqsClient, err := sqspkg.NewClient(ctx, conf.AWS.Region, conf.AWS.Endpoint)
	handleErr("creating SQS client", err)

	// One consumer per logical channel.
	authConsumer := sqspkg.NewConsumer(sqsClient, conf.AWS.AuthQueueURL, notificationService.HandleAuthEmail)
	orderConsumer := sqspkg.NewConsumer(sqsClient, conf.AWS.OrderQueueURL, notificationService.HandleOrderEmail)

	go func() {
		if err := authConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Auth consumer error: %v", err)
		}
	}()
	go func() {
		if err := orderConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Order consumer error: %v", err)
		}
	}()

	metrics.StartMetricsServer(conf)

	log.Println("Notification service started. Listening for messages...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down gracefully...")
	cancel()
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
