package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"git.home.luguber.info/inful/postserve/internal/feed"
	"git.home.luguber.info/inful/postserve/internal/foundation/errors"
	"git.home.luguber.info/inful/postserve/internal/pipeline"
)

// FeedBuilder produces the feed document.
type FeedBuilder interface {
	Build(ctx context.Context) (*feed.Document, error)
}

// FeedHandlers serves the RSS feed.
type FeedHandlers struct {
	builder      FeedBuilder
	errorAdapter *errors.HTTPErrorAdapter
}

func NewFeedHandlers(builder FeedBuilder, adapter *errors.HTTPErrorAdapter) *FeedHandlers {
	if adapter == nil {
		adapter = errors.NewHTTPErrorAdapter(slog.Default())
	}
	return &FeedHandlers{builder: builder, errorAdapter: adapter}
}

// HandleRSS writes the feed as RSS 2.0.
func (h *FeedHandlers) HandleRSS(w http.ResponseWriter, r *http.Request) {
	doc, err := h.builder.Build(r.Context())
	if err != nil {
		// The cause is logged by the adapter but never shown to the client.
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryPrecondition, pipeline.FailureMessage).Build())
		return
	}

	var buf bytes.Buffer
	if err := doc.WriteRSS(&buf); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to encode feed").Build())
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
