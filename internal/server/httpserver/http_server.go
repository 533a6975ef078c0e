// Package httpserver wires the postserve routes into an http.Server.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"time"

	"git.home.luguber.info/inful/postserve/internal/config"
	derrors "git.home.luguber.info/inful/postserve/internal/foundation/errors"
	"git.home.luguber.info/inful/postserve/internal/logfields"
	"git.home.luguber.info/inful/postserve/internal/metrics"
	"git.home.luguber.info/inful/postserve/internal/post"
	handlers "git.home.luguber.info/inful/postserve/internal/server/handlers"
	smw "git.home.luguber.info/inful/postserve/internal/server/middleware"
)

const defaultShutdownTimeout = 10 * time.Second

// fixedRoutes are the single-segment paths registered ahead of /{slug}. A post
// whose slug equals one of them is only reachable through the resolver's
// fallbacks, never by its own URL.
var fixedRoutes = []string{"health", "rss", "static"}

// Server serves post pages, the feed, health, static files and metrics.
type Server struct {
	cfg    *config.Config
	opts   Options
	logger *slog.Logger
	http   *http.Server

	pageHandlers       *handlers.PageHandlers
	feedHandlers       *handlers.FeedHandlers
	monitoringHandlers *handlers.MonitoringHandlers

	// middleware chain
	mchain func(http.Handler) http.Handler
}

// New constructs the server wiring.
func New(cfg *config.Config, renderer handlers.Renderer, feeds handlers.FeedBuilder, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	errorAdapter := derrors.NewHTTPErrorAdapter(logger)
	site := handlers.Site{
		Title:       cfg.Site.Title,
		Description: cfg.Site.Description,
		Language:    cfg.Site.Language,
	}

	s := &Server{
		cfg:                cfg,
		opts:               opts,
		logger:             logger,
		pageHandlers:       handlers.NewPageHandlers(site, renderer, logger),
		feedHandlers:       handlers.NewFeedHandlers(feeds, errorAdapter),
		monitoringHandlers: handlers.NewMonitoringHandlers(opts.Sources, errorAdapter),
		mchain:             smw.Chain(logger, errorAdapter),
	}
	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.monitoringHandlers.HandleHealth)
	mux.HandleFunc("GET /health/detailed", s.monitoringHandlers.HandleHealthDetailed)
	mux.HandleFunc("GET /rss", s.feedHandlers.HandleRSS)

	static := http.FileServer(http.Dir(s.cfg.Server.StaticDir))
	mux.Handle("GET /static/", http.StripPrefix("/static/", static))
	mux.Handle("GET /favicon.ico", static)

	if s.cfg.Server.Metrics {
		mux.Handle("GET /metrics", metrics.HTTPHandler(s.opts.Registry))
	}

	mux.HandleFunc("GET /{$}", s.pageHandlers.HandlePost)
	mux.HandleFunc("GET /{slug}", s.pageHandlers.HandlePost)

	return s.mchain(mux)
}

// ShadowedSlugs returns the slugs in posts that a fixed route answers instead
// of the post page, logging a warning for each.
func (s *Server) ShadowedSlugs(ctx context.Context, posts []post.Post) []string {
	routes := fixedRoutes
	if s.cfg.Server.Metrics {
		routes = append(slices.Clone(routes), "metrics")
	}
	var shadowed []string
	for _, p := range posts {
		if !slices.Contains(routes, p.Slug) {
			continue
		}
		shadowed = append(shadowed, p.Slug)
		s.logger.WarnContext(ctx, "Post slug is shadowed by a fixed route",
			logfields.Slug(p.Slug),
			slog.String("title", p.Title))
	}
	return shadowed
}

// Start binds the configured address and serves until ctx is canceled, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("http startup failed: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on a pre-bound listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(ln)
	}()
	s.logger.Info("HTTP server started", slog.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}
