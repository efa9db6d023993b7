package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProductsCreated is a Prometheus counter for tracking the total number of products created.
	ProductsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "The total number of products created",
	})

	// ProductsUpdated is a Prometheus counter for tracking the total number of products updated.
	ProductsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_updated_total",
		Help: "The total number of products updated",
	})

	// ProductsDeleted is a Prometheus counter for tracking the total number of products deleted.
	ProductsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_deleted_total",
		Help: "The total number of products deleted",
	})

	// OrdersCreated is a Prometheus counter for tracking the total number of orders placed.
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "The total number of orders placed",
	})

	// EmailsSent is a Prometheus counter for tracking the total number of emails sent, labeled by kind.
	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emails_sent_total",
		Help: "The total number of emails sent",
	}, []string{"kind"})

	// EmailsDropped is a Prometheus counter for order-email messages dropped
	// because the referenced order no longer exists.
	EmailsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emails_dropped_total",
		Help: "The total number of email messages dropped due to missing orders",
	})
)
