package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vtree/pkg/document"
)

// ServerConfig holds the server configuration.
type ServerConfig struct {
	// Address is the listen address. Default: "localhost:7070".
	Address string

	// MaxDocumentBytes limits request bodies and websocket messages.
	// Default: 1MB.
	MaxDocumentBytes int64

	// Registry resolves component names in documents.
	// Default: document.DefaultRegistry().
	Registry *document.Registry

	// Metrics is the registry the server's collectors are registered with and
	// /metrics serves. Default: a new registry with Go and process collectors.
	Metrics *prometheus.Registry

	// Namespace is the Prometheus namespace of the server's collectors.
	// Default: "vtree".
	Namespace string

	// DisableMetricsEndpoint leaves /metrics unrouted. Collectors are still
	// registered with Metrics.
	DisableMetricsEndpoint bool

	// TracerName names the tracer for request and reconciler spans.
	// Default: "vtree".
	TracerName string

	// TracerProvider supplies the tracer. Default: the global provider.
	TracerProvider trace.TracerProvider

	// Logger receives request and session logs. Default: slog.Default().
	Logger *slog.Logger

	// WebSocket

	// ReadBufferSize and WriteBufferSize size the websocket buffers.
	// Default: 4KB each.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin validates the websocket Origin header.
	// Default: nil, which lets gorilla/websocket accept same-host origins only.
	CheckOrigin func(r *http.Request) bool

	// LiveIdleTimeout closes a live connection that sends nothing for this
	// long. Default: 10 minutes.
	LiveIdleTimeout time.Duration

	// Timeouts

	ReadHeaderTimeout time.Duration // Default: 5 seconds
	WriteTimeout      time.Duration // Default: 30 seconds
	IdleTimeout       time.Duration // Default: 2 minutes
	ShutdownTimeout   time.Duration // Default: 10 seconds
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           "localhost:7070",
		MaxDocumentBytes:  document.DefaultMaxBytes,
		Namespace:         "vtree",
		TracerName:        "vtree",
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		LiveIdleTimeout:   10 * time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
		ShutdownTimeout:   10 * time.Second,
	}
}

// withDefaults returns a copy of c with unset fields filled in.
func (c *ServerConfig) withDefaults() *ServerConfig {
	defaults := DefaultServerConfig()
	if c == nil {
		return defaults
	}
	out := *c
	if out.Address == "" {
		out.Address = defaults.Address
	}
	if out.MaxDocumentBytes <= 0 {
		out.MaxDocumentBytes = defaults.MaxDocumentBytes
	}
	if out.Namespace == "" {
		out.Namespace = defaults.Namespace
	}
	if out.TracerName == "" {
		out.TracerName = defaults.TracerName
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = defaults.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = defaults.WriteBufferSize
	}
	if out.LiveIdleTimeout == 0 {
		out.LiveIdleTimeout = defaults.LiveIdleTimeout
	}
	if out.ReadHeaderTimeout == 0 {
		out.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = defaults.WriteTimeout
	}
	if out.IdleTimeout == 0 {
		out.IdleTimeout = defaults.IdleTimeout
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = defaults.ShutdownTimeout
	}
	return &out
}
