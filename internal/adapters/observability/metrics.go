package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "pmsbridge", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pmsbridge", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	VendorRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "pmsbridge", Name: "vendor_requests_total", Help: "Outbound PMS vendor requests."},
		[]string{"vendor", "endpoint", "status"},
	)
	VendorLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pmsbridge", Name: "vendor_request_duration_seconds",
			Help:    "Outbound PMS vendor request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"vendor", "endpoint"},
	)
	WebhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "pmsbridge", Name: "webhook_events_total", Help: "Received webhook events."},
		[]string{"vendor", "type", "outcome"}, // outcome: ok|rejected|invalid|error|dropped
	)
)

// Serve starts a standalone metrics listener when METRICS_ADDR is set.
func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, VendorRequests, VendorLatency, WebhookEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveVendor records one outbound call to a PMS vendor API.
func ObserveVendor(vendor, endpoint string, status int, dur time.Duration) {
	VendorRequests.WithLabelValues(vendor, endpoint, strconv.Itoa(status)).Inc()
	VendorLatency.WithLabelValues(vendor, endpoint).Observe(dur.Seconds())
}

func ObserveWebhook(vendor, eventType, outcome string) {
	WebhookEvents.WithLabelValues(vendor, eventType, outcome).Inc()
}
