package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Basic(t *testing.T) {
	html, err := New(Options{}).Render([]byte("# Hello\n\nSome *text*.\n"))
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Hello</h1>")
	assert.Contains(t, html, "<em>text</em>")
}

func TestRender_Table(t *testing.T) {
	src := "| a | b |\n|---|---|\n| 1 | 2 |\n"
	html, err := New(Options{}).Render([]byte(src))
	require.NoError(t, err)
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<th>a</th>")
	assert.Contains(t, html, "<td>2</td>")
}

func TestRender_Strikethrough(t *testing.T) {
	html, err := New(Options{}).Render([]byte("~~gone~~"))
	require.NoError(t, err)
	assert.Contains(t, html, "<del>gone</del>")
}

func TestRender_RawHTMLOmittedUnlessUnsafe(t *testing.T) {
	src := []byte("<div class=\"note\">hi</div>\n")

	safe, err := New(Options{}).Render(src)
	require.NoError(t, err)
	assert.NotContains(t, safe, "<div")

	unsafe, err := New(Options{Unsafe: true}).Render(src)
	require.NoError(t, err)
	assert.Contains(t, unsafe, "<div class=\"note\">hi</div>")
}

func TestRender_AutoHeadingID(t *testing.T) {
	html, err := New(Options{AutoHeadingID: true}).Render([]byte("## Getting started\n"))
	require.NoError(t, err)
	assert.Contains(t, html, `id="getting-started"`)
}

func TestRender_Empty(t *testing.T) {
	html, err := New(Options{}).Render(nil)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(html))
}
