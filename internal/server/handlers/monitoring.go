package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/postserve/internal/foundation/errors"
	"git.home.luguber.info/inful/postserve/internal/server/responses"
	"git.home.luguber.info/inful/postserve/internal/version"
)

// MonitoringHandlers serves liveness endpoints.
type MonitoringHandlers struct {
	startTime    time.Time
	sources      []string
	errorAdapter *errors.HTTPErrorAdapter
}

// NewMonitoringHandlers creates monitoring handlers reporting the given
// source names.
func NewMonitoringHandlers(sources []string, adapter *errors.HTTPErrorAdapter) *MonitoringHandlers {
	if adapter == nil {
		adapter = errors.NewHTTPErrorAdapter(slog.Default())
	}
	return &MonitoringHandlers{
		startTime:    time.Now(),
		sources:      sources,
		errorAdapter: adapter,
	}
}

// HandleHealth answers OK as plain text.
func (h *MonitoringHandlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

// HandleHealthDetailed reports version, uptime and the source chain as JSON.
func (h *MonitoringHandlers) HandleHealthDetailed(w http.ResponseWriter, r *http.Request) {
	health := &responses.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Uptime:    time.Since(h.startTime).Seconds(),
		Sources:   h.sources,
	}
	if err := writeJSON(w, r, http.StatusOK, health); err != nil {
		internalErr := errors.WrapError(err, errors.CategoryInternal, "failed to write health response").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
	}
}
