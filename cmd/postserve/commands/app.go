package commands

import (
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/postserve/internal/config"
	"git.home.luguber.info/inful/postserve/internal/feed"
	"git.home.luguber.info/inful/postserve/internal/manifest"
	"git.home.luguber.info/inful/postserve/internal/markdown"
	"git.home.luguber.info/inful/postserve/internal/metrics"
	"git.home.luguber.info/inful/postserve/internal/pipeline"
	"git.home.luguber.info/inful/postserve/internal/post"
	"git.home.luguber.info/inful/postserve/internal/source"
)

// app is the wiring shared by every command that reads posts.
type app struct {
	cfg      *config.Config
	registry *prom.Registry
	pipeline *pipeline.Pipeline
	feed     *feed.Builder
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tag, err := cfg.LanguageTag()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Server.Metrics {
		a.registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(a.registry)
	}

	a.pipeline = pipeline.New(pipeline.Config{
		Sources: source.Config{
			RemoteBaseURL: cfg.Remote.BaseURL,
			LocalDir:      cfg.Local.Directory,
			Manifest:      manifest.Options{RequireUpdated: cfg.Manifest.RequireUpdated},
		},
		Resolve: post.ResolveOptions{
			MatchContentRef: cfg.Resolver.MatchContentRef,
			Extension:       cfg.Resolver.Extension,
		},
		Markdown: markdown.Options{
			Unsafe:        cfg.Markdown.UnsafeHTML,
			AutoHeadingID: cfg.Markdown.HeadingIDs,
		},
	}, pipeline.WithLogger(logger), pipeline.WithRecorder(recorder))

	a.feed = feed.NewBuilder(feed.Site{
		Title:       cfg.Site.Title,
		BaseURL:     cfg.Site.BaseURL,
		Description: cfg.Site.Description,
		Language:    tag,
	}, a.pipeline)
	return a, nil
}

func (a *app) sourceNames() []string {
	srcs := a.pipeline.Sources()
	names := make([]string, 0, len(srcs))
	for _, s := range srcs {
		names = append(names, s.Name())
	}
	return names
}
