// Package markdown renders post bodies to HTML with goldmark.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Options controls which goldmark extensions are enabled on top of tables.
type Options struct {
	// Unsafe passes raw HTML in post bodies through to the output.
	Unsafe bool
	// AutoHeadingID adds id attributes to headings.
	AutoHeadingID bool
}

// Renderer converts markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New builds a renderer with the table, strikethrough and linkify extensions.
func New(opts Options) *Renderer {
	parserOpts := []parser.Option{}
	if opts.AutoHeadingID {
		parserOpts = append(parserOpts, parser.WithAutoHeadingID())
	}
	htmlOpts := []renderer.Option{}
	if opts.Unsafe {
		htmlOpts = append(htmlOpts, html.WithUnsafe())
	}

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
				extension.Linkify,
			),
			goldmark.WithParserOptions(parserOpts...),
			goldmark.WithRendererOptions(htmlOpts...),
		),
	}
}

// Render converts a markdown body (frontmatter already removed) to HTML.
func (r *Renderer) Render(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
