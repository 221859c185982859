// Package middleware provides the HTTP middleware of the vtree server.
//
// This package includes:
//   - Prometheus request metrics, plus counters for live websocket sessions
//   - OpenTelemetry request tracing
//   - Structured request logging with log/slog
//
// All three are plain func(http.Handler) http.Handler and read the matched
// route pattern from chi, so labels and span names stay low-cardinality:
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//
//	r := chi.NewRouter()
//	r.Use(m.Handler)
//	r.Use(middleware.OpenTelemetry(middleware.WithTracerName("vtree")))
//	r.Use(middleware.Logger(logger))
//
// # Prometheus Metrics
//
// Metrics collected (namespace "vtree", subsystem "http" by default):
//   - requests_total: requests by route and status code
//   - request_duration_seconds: request latency by route
//   - live_connections: open live websocket connections
//   - live_documents_total: documents received on live connections by result
//   - websocket_errors_total: websocket failures by type
//
// # OpenTelemetry
//
// The tracer comes from the global provider unless WithTracerProvider is
// given. Configure the provider in main() before starting the server.
package middleware
