package httpserver

import (
	"log/slog"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// Options configures runtime-specific server wiring.
type Options struct {
	// Registry backs /metrics. Nil serves the default Prometheus registry.
	Registry *prom.Registry
	Logger   *slog.Logger
	// Sources names the content sources in chain order, for /health/detailed.
	Sources []string
	// ShutdownTimeout bounds graceful shutdown; zero means 10s.
	ShutdownTimeout time.Duration
}
