package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/postserve/internal/config"
	"git.home.luguber.info/inful/postserve/internal/server/httpserver"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides server.addr)"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunServe(ctx, cfg)
}

// RunServe serves until ctx is canceled.
func RunServe(ctx context.Context, cfg *config.Config) error {
	logger := slog.Default()
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	srv := httpserver.New(cfg, a.pipeline, a.feed, httpserver.Options{
		Registry: a.registry,
		Logger:   logger,
		Sources:  a.sourceNames(),
	})
	if posts, err := a.pipeline.Posts(ctx); err == nil {
		srv.ShadowedSlugs(ctx, posts)
	}
	logger.Info("Starting postserve",
		slog.String("addr", cfg.Server.Addr),
		slog.Any("sources", a.sourceNames()))
	return srv.Start(ctx)
}
