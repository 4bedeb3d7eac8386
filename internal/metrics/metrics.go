package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runway_webhook_events_total",
			Help: "Webhook deliveries by event type and outcome",
		},
		[]string{"type", "outcome"},
	)

	CheckoutSessions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runway_checkout_sessions_total",
			Help: "Checkout session creation attempts",
		},
		[]string{"status"},
	)

	TicketsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runway_tickets_issued_total",
			Help: "Completed checkouts persisted, split into new and duplicate deliveries",
		},
		[]string{"result"},
	)

	TicketTypesOversold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "runway_ticket_types_oversold_total",
			Help: "Paid checkouts that pushed a ticket type past its total quantity",
		},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runway_notifications_total",
			Help: "Ticket-issued notifications handled by the worker",
		},
		[]string{"status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "runway_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Webhook outcomes
const (
	OutcomeProcessed = "processed"
	OutcomeIgnored   = "ignored"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// Middleware 記錄每個 route 的延遲；未匹配的路徑歸到 "unmatched"
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
