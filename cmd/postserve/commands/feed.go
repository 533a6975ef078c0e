package commands

import (
	"context"
	"io"
	"log/slog"

	"git.home.luguber.info/inful/postserve/internal/config"
	"git.home.luguber.info/inful/postserve/internal/logfields"
)

// FeedCmd implements the 'feed' command.
type FeedCmd struct{}

func (f *FeedCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	return RunFeed(context.Background(), cfg, g.stdout())
}

// RunFeed writes the RSS document to w.
func RunFeed(ctx context.Context, cfg *config.Config, w io.Writer) error {
	a, err := newApp(cfg, slog.Default())
	if err != nil {
		return err
	}
	doc, err := a.feed.Build(ctx)
	if err != nil {
		return err
	}
	slog.Debug("Built feed", logfields.Posts(len(doc.Items)))
	return doc.WriteRSS(w)
}
