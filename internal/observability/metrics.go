package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics stores Prometheus collectors for the API and the
// notification path.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal       *prometheus.CounterVec
	httpRequestDuration     *prometheus.HistogramVec
	submissionsTotal        *prometheus.CounterVec
	notificationsTotal      *prometheus.CounterVec
	notificationSendSeconds *prometheus.HistogramVec
	rateLimitRejectedTotal  prometheus.Counter
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "portfolio_api",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests processed by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "portfolio_api",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds by method and path.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		submissionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "portfolio_api",
				Name:      "contact_submissions_total",
				Help:      "Contact form submissions by terminal result (accepted, rejected, store_error).",
			},
			[]string{"result"},
		),
		notificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "portfolio_api",
				Name:      "notifications_total",
				Help:      "Notification attempts by mail backend and outcome (delivered, skipped, failed).",
			},
			[]string{"backend", "outcome"},
		),
		notificationSendSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "portfolio_api",
				Name:      "notification_send_duration_seconds",
				Help:      "Mail transport send duration in seconds by backend.",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
			},
			[]string{"backend"},
		),
		rateLimitRejectedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "portfolio_api",
				Name:      "rate_limit_rejected_total",
				Help:      "Contact form requests rejected by the per-IP rate limiter.",
			},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.submissionsTotal,
		m.notificationsTotal,
		m.notificationSendSeconds,
		m.rateLimitRejectedTotal,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil || m.registry == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) HTTPMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := routePath(c)
		// Avoid self-scrape noise for request counters.
		if path == "/metrics" {
			return err
		}

		m.recordHTTPRequest(c.Method(), path, statusFromResult(c, err), time.Since(start))
		return err
	}
}

func (m *Metrics) IncSubmission(result string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(normalizeLabel(result)).Inc()
}

func (m *Metrics) IncNotification(backend string, outcome string) {
	if m == nil {
		return
	}
	m.notificationsTotal.WithLabelValues(normalizeLabel(backend), normalizeLabel(outcome)).Inc()
}

func (m *Metrics) ObserveNotificationSendDuration(backend string, duration time.Duration) {
	if m == nil {
		return
	}
	seconds := duration.Seconds()
	if seconds < 0 {
		seconds = 0
	}
	m.notificationSendSeconds.WithLabelValues(normalizeLabel(backend)).Observe(seconds)
}

func (m *Metrics) IncRateLimitRejected() {
	if m == nil {
		return
	}
	m.rateLimitRejectedTotal.Inc()
}

func (m *Metrics) recordHTTPRequest(method string, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}

	methodLabel := strings.ToUpper(strings.TrimSpace(method))
	if methodLabel == "" {
		methodLabel = "UNKNOWN"
	}
	pathLabel := strings.TrimSpace(path)
	if pathLabel == "" {
		pathLabel = "unmatched"
	}

	m.httpRequestsTotal.WithLabelValues(methodLabel, pathLabel, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(methodLabel, pathLabel).Observe(duration.Seconds())
}

func routePath(c *fiber.Ctx) string {
	if c == nil {
		return "unmatched"
	}

	if route := c.Route(); route != nil {
		if path := strings.TrimSpace(route.Path); path != "" {
			return path
		}
	}
	return "unmatched"
}

func statusFromResult(c *fiber.Ctx, err error) int {
	if err != nil {
		if fiberErr, ok := err.(*fiber.Error); ok {
			return fiberErr.Code
		}
		return fiber.StatusInternalServerError
	}

	if c == nil {
		return fiber.StatusOK
	}

	status := c.Response().StatusCode()
	if status == 0 {
		return fiber.StatusOK
	}
	return status
}

func normalizeLabel(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return "unknown"
	}
	return normalized
}
