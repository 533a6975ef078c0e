// Package pipeline renders a requested post by walking the content source
// chain: the first source whose manifest, resolution and body all succeed
// wins, and every failure moves on to the next source.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/postserve/internal/foundation"
	derrors "git.home.luguber.info/inful/postserve/internal/foundation/errors"
	"git.home.luguber.info/inful/postserve/internal/frontmatter"
	"git.home.luguber.info/inful/postserve/internal/logfields"
	"git.home.luguber.info/inful/postserve/internal/manifest"
	"git.home.luguber.info/inful/postserve/internal/markdown"
	"git.home.luguber.info/inful/postserve/internal/metrics"
	"git.home.luguber.info/inful/postserve/internal/observability"
	"git.home.luguber.info/inful/postserve/internal/post"
	"git.home.luguber.info/inful/postserve/internal/source"
)

// DateLayout is the display format of View.DateUpdated.
const DateLayout = "2 January 2006"

// Config holds what the pipeline needs to build and use its source chain.
type Config struct {
	Sources  source.Config
	Resolve  post.ResolveOptions
	Markdown markdown.Options
}

// Pipeline turns a requested slug into a rendered view.
type Pipeline struct {
	cfg      Config
	sources  []source.Source
	renderer *markdown.Renderer
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithSources replaces the chain built from Config.Sources.
func WithSources(srcs ...source.Source) Option {
	return func(p *Pipeline) {
		p.sources = append([]source.Source{}, srcs...)
	}
}

// New builds a pipeline. The source chain is fixed at construction.
func New(cfg Config, opts ...Option) *Pipeline {
	if cfg.Resolve.Extension == "" && cfg.Resolve.MatchContentRef {
		cfg.Resolve.Extension = post.DefaultExtension
	}
	p := &Pipeline{
		cfg:      cfg,
		renderer: markdown.New(cfg.Markdown),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.sources == nil {
		p.sources = source.Chain(cfg.Sources)
	}
	return p
}

// Sources returns the chain in the order it is tried.
func (p *Pipeline) Sources() []source.Source {
	return p.sources
}

// Render resolves requested against each source in turn and renders the
// first success. When every source fails the last error is returned.
func (p *Pipeline) Render(ctx context.Context, requested string) (*View, error) {
	start := time.Now()
	defer func() {
		p.recorder.ObserveOperationDuration(metrics.OperationRender, time.Since(start))
	}()

	return firstSuccess(ctx, p.sources, func(src source.Source) (*View, error) {
		return p.renderFrom(ctx, src, requested)
	}, p.observer(ctx, metrics.OperationRender, requested)).ToTuple()
}

// Posts loads the full post collection from the first source whose manifest
// loads, without resolving or reading any body.
func (p *Pipeline) Posts(ctx context.Context) ([]post.Post, error) {
	start := time.Now()
	defer func() {
		p.recorder.ObserveOperationDuration(metrics.OperationFeed, time.Since(start))
	}()

	return firstSuccess(ctx, p.sources, func(src source.Source) ([]post.Post, error) {
		regs, err := src.Manifest(ctx)
		if err != nil {
			return nil, err
		}
		return manifest.ToPosts(regs), nil
	}, p.observer(ctx, metrics.OperationFeed, "")).ToTuple()
}

func (p *Pipeline) renderFrom(ctx context.Context, src source.Source, requested string) (*View, error) {
	regs, err := src.Manifest(ctx)
	if err != nil {
		return nil, err
	}
	posts := manifest.ToPosts(regs)

	current, err := post.Resolve(posts, requested, p.cfg.Resolve)
	if err != nil {
		return nil, err
	}

	body, err := src.ReadContent(ctx, current.ContentRef)
	if err != nil {
		return nil, err
	}

	doc := frontmatter.Strip([]byte(body))
	html, err := p.renderer.Render(doc.Body)
	if err != nil {
		return nil, derrors.FormatError("render markdown").
			WithCause(err).
			WithContext("ref", current.ContentRef).
			Build()
	}

	view := &View{
		CurrentPost: current,
		ContentHTML: html,
		SeeAlso:     post.SeeAlso(posts, current),
		DateUpdated: FormatDate(current.Updated),
		Description: doc.String("description"),
		Source:      src.Name(),
	}
	view.Fingerprint = fingerprint(view, doc)
	return view, nil
}

// FormatDate renders t in DateLayout; the zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// fingerprint hashes the body together with everything else shown on the
// page, so the ETag changes when the manifest does.
func fingerprint(v *View, doc frontmatter.Document) string {
	var meta strings.Builder
	meta.Write(doc.Frontmatter)
	meta.WriteString(v.CurrentPost.Title + "\n" + v.DateUpdated + "\n")
	for _, link := range v.SeeAlso {
		meta.WriteString(link.Slug + "\t" + link.Title + "\n")
	}
	return mdfp.CalculateFingerprintFromParts(meta.String(), string(doc.Body))
}

// firstSuccess runs fn against each source in order and returns the first
// success. A failure ends the chain early when ctx is done or the error is not
// one another source can repair. observe is called after every attempt with
// its zero-based index and whether the chain ends there.
func firstSuccess[T any](ctx context.Context, srcs []source.Source, fn func(source.Source) (T, error), observe func(i int, src source.Source, err error, last bool)) foundation.Result[T, error] {
	if len(srcs) == 0 {
		return foundation.Err[T, error](derrors.InternalError("no content sources configured").Build())
	}
	next := func(err error) bool {
		return ctx.Err() == nil && derrors.CanFallback(err)
	}
	attempts := make([]func() foundation.Result[T, error], 0, len(srcs))
	for i, src := range srcs {
		attempts = append(attempts, func() foundation.Result[T, error] {
			value, err := fn(src)
			if observe != nil {
				observe(i, src, err, i == len(srcs)-1 || (err != nil && !next(err)))
			}
			return foundation.FromTuple(value, err)
		})
	}
	return foundation.FirstOk(next, attempts...)
}

func (p *Pipeline) observer(ctx context.Context, operation, requested string) func(int, source.Source, error, bool) {
	return func(i int, src source.Source, err error, last bool) {
		p.recorder.IncSourceAttempt(src.Name(), operation, resultLabel(err))
		if err == nil {
			return
		}
		attrs := []any{
			logfields.Source(src.Name()),
			logfields.Operation(operation),
			logfields.Attempt(i + 1),
			logfields.Error(err),
		}
		if operation == metrics.OperationRender && observability.GetContext(ctx).Slug == "" {
			attrs = append(attrs, logfields.Slug(requested))
		}
		if last {
			p.logger.WarnContext(ctx, "Content source failed, no fallback left", attrs...)
			return
		}
		p.recorder.IncFallback(operation)
		p.logger.WarnContext(ctx, "Content source failed, falling back", attrs...)
	}
}

func resultLabel(err error) metrics.ResultLabel {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.ResultCanceled
	default:
		return metrics.ResultFailure
	}
}
