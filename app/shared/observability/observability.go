package observability

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Observability bundles the logger, tracer and metrics handed to every module.
type Observability struct {
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics Metrics
}

// NoOpLogger discards all records; used by tests.
var NoOpLogger = slog.New(slog.DiscardHandler)

// New builds the default production observability stack: JSON slog on stderr,
// the global otel tracer, and prometheus-backed metrics.
func New(serviceName, environment string) *Observability {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With(
		slog.String("service", serviceName),
		slog.String("environment", environment),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	return &Observability{
		Logger:  logger,
		Tracer:  otel.Tracer(serviceName),
		Metrics: NewPrometheusMetrics(registry, serviceName),
	}
}

// MetricsHandler returns the HTTP handler serving the prometheus registry of
// the given metrics, or nil when metrics are no-op.
func MetricsHandler(m Metrics) http.Handler {
	pm, ok := m.(*PrometheusMetrics)
	if !ok {
		return nil
	}
	return promhttp.HandlerFor(pm.registry, promhttp.HandlerOpts{})
}
