// Package metrics owns the Prometheus registry of the service and the HTTP
// instrumentation that feeds it.
package metrics

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applog "github.com/sinko/hello-service/internal/platform/logging"
)

// unmatchedRoute labels requests that did not match any registered route, so
// arbitrary paths cannot blow up label cardinality.
const unmatchedRoute = "unmatched"

// otherMethod labels requests whose method is not a standard HTTP method;
// net/http accepts any token as a method.
const otherMethod = "other"

const exemplarLabel = "trace_id"

func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodOptions, http.MethodConnect, http.MethodTrace:
		return method
	}
	return otherMethod
}

// Metrics bundles a private registry with the HTTP server collectors.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates a registry with Go runtime and process collectors plus the
// http_server_* request metrics, labelled with the given service name.
func New(service string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	constLabels := prometheus.Labels{"service": service}
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_server_requests_total",
				Help:        "Total number of HTTP requests handled.",
				ConstLabels: constLabels,
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_server_request_duration_seconds",
				Help:        "HTTP request latency in seconds.",
				ConstLabels: constLabels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// Middleware records one counter increment and one latency observation per request.
// The route label is chi's route pattern, resolved after the handler ran.
// Latencies carry the request's trace ID as an exemplar when RequestLogger ran first.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			method := methodLabel(r.Method)
			m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			observe(r, m.duration.WithLabelValues(method, route), time.Since(start).Seconds())
		})
	}
}

func observe(r *http.Request, obs prometheus.Observer, seconds float64) {
	id := applog.TraceIDFromContext(r.Context())
	eo, ok := obs.(prometheus.ExemplarObserver)
	if id == "" || !ok || utf8.RuneCountInString(exemplarLabel)+utf8.RuneCountInString(id) > prometheus.ExemplarMaxRunes {
		obs.Observe(seconds)
		return
	}
	eo.ObserveWithExemplar(seconds, prometheus.Labels{exemplarLabel: id})
}

// Handler serves the registry in the Prometheus text format, or OpenMetrics
// (with exemplars) when the scraper negotiates it.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry:          m.registry,
		EnableOpenMetrics: true,
	})
}

// Names returns the sorted names of every metric family currently in the registry.
func (m *Metrics) Names() ([]string, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	slices.Sort(names)
	return names, nil
}
