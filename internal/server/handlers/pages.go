package handlers

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"git.home.luguber.info/inful/postserve/internal/logfields"
	"git.home.luguber.info/inful/postserve/internal/observability"
	"git.home.luguber.info/inful/postserve/internal/pipeline"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// Renderer produces the view for a requested slug.
type Renderer interface {
	Render(ctx context.Context, slug string) (*pipeline.View, error)
}

// Site is the blog-wide data shown on every page.
type Site struct {
	Title       string
	Description string
	Language    string
}

type pageData struct {
	Site    Site
	View    *pipeline.View
	Content template.HTML
	Error   *pipeline.ErrorView
}

// PageHandlers serves rendered post pages.
type PageHandlers struct {
	site     Site
	renderer Renderer
	logger   *slog.Logger
}

// NewPageHandlers creates page handlers for site backed by renderer.
func NewPageHandlers(site Site, renderer Renderer, logger *slog.Logger) *PageHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &PageHandlers{site: site, renderer: renderer, logger: logger}
}

// HandlePost renders the post named by the {slug} path value; an empty slug
// gets the default post. Failures render the error page.
func (h *PageHandlers) HandlePost(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	ctx := observability.WithSlug(r.Context(), slug)

	view, err := h.renderer.Render(ctx, slug)
	if err != nil {
		failure := pipeline.FailureView(err)
		h.logger.ErrorContext(ctx, "Post could not be served", logfields.Error(err))
		h.write(w, failure.Status, pageData{Site: h.site, Error: &failure})
		return
	}

	etag := `"` + view.Fingerprint + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	h.write(w, http.StatusOK, pageData{
		Site: h.site,
		View: view,
		// ContentHTML comes from the markdown renderer, which omits raw HTML
		// unless unsafe_html is configured.
		Content: template.HTML(view.ContentHTML), //nolint:gosec // rendered markdown
	})
}

func (h *PageHandlers) write(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("Page template failed", logfields.Error(err))
		http.Error(w, pipeline.FailureMessage, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
