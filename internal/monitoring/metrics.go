package monitoring

import (
	"net/http"
	"net/http/pprof"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aashari/go-ai-proxy-server/internal/logger"
)

const namespace = "ai_proxy"

// Vendor call outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeNoAnswer = "no_answer"
)

// unmatchedRoute labels requests the mux did not route, keeping label cardinality bounded
const unmatchedRoute = "unmatched"

// Metrics holds the Prometheus collectors of the relay.
//
// Metrics:
//   - ai_proxy_http_requests_total: requests by method, route and status code
//   - ai_proxy_http_request_duration_seconds: request latency by method and route
//   - ai_proxy_vendor_requests_total: upstream calls by route, vendor and outcome
//   - ai_proxy_vendor_latency_seconds: upstream call latency by vendor and model
type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	vendorRequests *prometheus.CounterVec
	vendorLatency  *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them, together with the Go
// runtime and process collectors, on registry. A nil registry gets a fresh one.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Vendor latencies range from sub-second chat answers to long image generations
	latencyBuckets := []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120}

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   latencyBuckets,
			},
			[]string{"method", "route"},
		),
		vendorRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "vendor_requests_total",
				Help:      "Total number of upstream vendor calls by route, vendor and outcome",
			},
			[]string{"route", "vendor", "outcome"},
		),
		vendorLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "vendor_latency_seconds",
				Help:      "Upstream vendor call latency in seconds",
				Buckets:   latencyBuckets,
			},
			[]string{"vendor", "model"},
		),
	}

	registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.vendorRequests,
		m.vendorLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// VendorRequests returns the upstream call counter
func (m *Metrics) VendorRequests() *prometheus.CounterVec {
	return m.vendorRequests
}

// RecordVendorCall records one upstream call
func (m *Metrics) RecordVendorCall(route, vendor, model, outcome string, duration time.Duration) {
	m.vendorRequests.WithLabelValues(route, vendor, outcome).Inc()
	m.vendorLatency.WithLabelValues(vendor, model).Observe(duration.Seconds())
}

// Handler exposes the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

// Middleware records request count and latency. It must wrap the ServeMux
// directly so that the matched route pattern is visible once the mux returns.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWriterWrapper{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapper, r)

		route := r.Pattern
		if route == "" {
			route = unmatchedRoute
		}

		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(wrapper.statusCode)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// responseWriterWrapper wraps http.ResponseWriter to capture status code
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.statusCode = statusCode
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriterWrapper) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *responseWriterWrapper) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// SetupPprofRoutes adds pprof endpoints to the router
func SetupPprofRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	logger.Info("Profiling endpoints enabled", "component", logger.ComponentNames.Monitoring, "path", "/debug/pprof/")
}
