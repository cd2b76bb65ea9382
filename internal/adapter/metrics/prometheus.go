package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"command-logger/internal/domain/ports"
)

const namespace = "command_logger"

// Collector owns a private registry with the HTTP and delivery metrics of the service.
type Collector struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	deliveryAttempts    *prometheus.CounterVec
	rateLimited         prometheus.Counter
}

var _ ports.Metrics = (*Collector)(nil)

// NewCollector creates a Collector and registers all metrics, plus Go runtime and process collectors.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of inbound HTTP requests.",
			},
			[]string{"path", "method", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Inbound HTTP request latency in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		deliveryAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "discord",
				Name:      "delivery_attempts_total",
				Help:      "Outbound Discord API calls by response status (0 = transport error).",
			},
			[]string{"status"},
		),
		rateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "discord",
				Name:      "rate_limited_total",
				Help:      "Number of 429 responses that triggered a retry.",
			},
		),
	}

	c.registry.MustRegister(
		c.httpRequests,
		c.httpRequestDuration,
		c.deliveryAttempts,
		c.rateLimited,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// DeliveryAttempted records one outbound call.
func (c *Collector) DeliveryAttempted(statusCode int) {
	c.deliveryAttempts.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// DeliveryRateLimited records a rate-limit retry.
func (c *Collector) DeliveryRateLimited() {
	c.rateLimited.Inc()
}

// ObserveRequest records a served inbound request.
func (c *Collector) ObserveRequest(path, method string, status int, elapsed time.Duration) {
	c.httpRequests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	c.httpRequestDuration.WithLabelValues(path, method).Observe(elapsed.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
