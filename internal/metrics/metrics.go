package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	OrderTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_transitions_total",
			Help: "Order status changes by source and target status",
		},
		[]string{"from", "to"},
	)

	InvoicesGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "invoices_generated_total",
			Help: "Invoices generated or regenerated",
		},
	)

	PaymentsVerifiedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoice_payments_verified_total",
			Help: "Payment verification attempts by result",
		},
		[]string{"result"},
	)

	SMSMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sms_messages_total",
			Help: "SMS dispatch attempts by status",
		},
		[]string{"status"},
	)

	GenerativeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generative_requests_total",
			Help: "Generative drafting calls by flow and result",
		},
		[]string{"flow", "result"},
	)

	WebsocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "order_feed_clients",
			Help: "Connected live order feed clients",
		},
	)
)
