package commands

import (
	"context"
	"io"
	"log/slog"

	"git.home.luguber.info/inful/postserve/internal/config"
	"git.home.luguber.info/inful/postserve/internal/logfields"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Slug string `arg:"" optional:"" help:"Post slug; empty renders the default post"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	return RunRender(context.Background(), cfg, r.Slug, g.stdout())
}

// RunRender writes the HTML body of the resolved post to w.
func RunRender(ctx context.Context, cfg *config.Config, slug string, w io.Writer) error {
	a, err := newApp(cfg, slog.Default())
	if err != nil {
		return err
	}
	view, err := a.pipeline.Render(ctx, slug)
	if err != nil {
		return err
	}
	slog.Debug("Rendered post",
		logfields.Slug(view.CurrentPost.Slug),
		logfields.Source(view.Source))
	_, err = io.WriteString(w, view.ContentHTML)
	return err
}
