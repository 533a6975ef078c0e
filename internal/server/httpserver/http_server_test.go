package httpserver

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/postserve/internal/config"
	"git.home.luguber.info/inful/postserve/internal/feed"
	"git.home.luguber.info/inful/postserve/internal/metrics"
	"git.home.luguber.info/inful/postserve/internal/pipeline"
	"git.home.luguber.info/inful/postserve/internal/post"
	"git.home.luguber.info/inful/postserve/internal/source"
)

type fixture struct {
	cfg      *config.Config
	registry *prom.Registry
	server   *Server
}

func newFixture(t *testing.T, remoteURL string) *fixture {
	t.Helper()
	content := t.TempDir()
	static := t.TempDir()
	write := func(dir, name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	write(content, "manifest.json", `[
		{"title": "First post", "markdown": "first.md", "updated": "2023-01-05"},
		{"title": "Secret", "markdown": "secret.md", "hidden": true},
		{"title": "Second post", "markdown": "second.md", "updated": "2024-03-10"}
	]`)
	write(content, "first.md", "# First\n")
	write(content, "secret.md", "# Secret\n")
	write(content, "second.md", "---\ndescription: The second one\n---\n# Second\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	write(static, "style.css", "body{}")
	write(static, "favicon.ico", "icon")

	cfg := config.Default()
	cfg.Site.Title = "Notes"
	cfg.Site.BaseURL = "https://blog.example.com"
	cfg.Local.Directory = content
	cfg.Remote.BaseURL = remoteURL
	cfg.Server.StaticDir = static

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prom.NewRegistry()
	p := pipeline.New(pipeline.Config{
		Sources: source.Config{LocalDir: cfg.Local.Directory, RemoteBaseURL: cfg.Remote.BaseURL},
		Resolve: post.DefaultResolveOptions(),
	}, pipeline.WithLogger(logger), pipeline.WithRecorder(metrics.NewPrometheusRecorder(reg)))
	fb := feed.NewBuilder(feed.Site{Title: cfg.Site.Title, BaseURL: cfg.Site.BaseURL, Language: language.English}, p)

	return &fixture{
		cfg:      cfg,
		registry: reg,
		server:   New(cfg, p, fb, Options{Registry: reg, Logger: logger, Sources: []string{"local"}}),
	}
}

func (f *fixture) get(t *testing.T, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

// seeAlsoLinks returns the hrefs inside the see-also navigation.
func seeAlsoLinks(t *testing.T, body string) []string {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)

	var hrefs []string
	var walk func(n *html.Node, inNav bool)
	walk = func(n *html.Node, inNav bool) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if n.Data == "nav" && a.Key == "class" && a.Val == "see-also" {
					inNav = true
				}
				if inNav && n.Data == "a" && a.Key == "href" {
					hrefs = append(hrefs, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inNav)
		}
	}
	walk(doc, false)
	return hrefs
}

func TestRoutes_DefaultPost(t *testing.T) {
	f := newFixture(t, "")
	rec := f.get(t, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Second post</h1>")
	assert.Contains(t, body, "<table>")
	assert.Contains(t, body, "Updated 10 March 2024")
	assert.Contains(t, body, `content="The second one"`)
	assert.Equal(t, []string{"/first-post"}, seeAlsoLinks(t, body))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRoutes_PostBySlugAndContentRef(t *testing.T) {
	f := newFixture(t, "")

	rec := f.get(t, "/first-post", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>First</h1>")

	rec = f.get(t, "/first", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>First</h1>")

	rec = f.get(t, "/secret", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Secret</h1>")
	assert.Equal(t, []string{"/second-post", "/first-post"}, seeAlsoLinks(t, rec.Body.String()))

	rec = f.get(t, "/no-such-post", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Second post</h1>")
}

func TestRoutes_ETag(t *testing.T) {
	f := newFixture(t, "")
	first := f.get(t, "/first-post", nil)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	rec := f.get(t, "/first-post", http.Header{"If-None-Match": {etag}})
	assert.Equal(t, http.StatusNotModified, rec.Code)

	other := f.get(t, "/", nil)
	assert.NotEqual(t, etag, other.Header().Get("ETag"))
}

func TestRoutes_RemoteFallback(t *testing.T) {
	remote := httptest.NewServer(http.NotFoundHandler())
	defer remote.Close()
	f := newFixture(t, remote.URL)

	rec := f.get(t, "/first-post", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>First</h1>")

	metricsRec := f.get(t, "/metrics", nil)
	require.Equal(t, http.StatusOK, metricsRec.Code)
	assert.Contains(t, metricsRec.Body.String(), `postserve_source_fallbacks_total{operation="render"} 1`)
}

func TestRoutes_ErrorPage(t *testing.T) {
	f := newFixture(t, "")
	require.NoError(t, os.Remove(filepath.Join(f.cfg.Local.Directory, "manifest.json")))

	rec := f.get(t, "/first-post", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), pipeline.FailureMessage)

	rec = f.get(t, "/rss", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRoutes_RSS(t *testing.T) {
	f := newFixture(t, "")
	rec := f.get(t, "/rss", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/rss+xml; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<link>https://blog.example.com/second-post</link>")
	assert.Contains(t, body, "<link>https://blog.example.com/secret</link>")
	assert.Contains(t, body, "<language>en</language>")
}

func TestRoutes_HealthStaticFavicon(t *testing.T) {
	f := newFixture(t, "")

	rec := f.get(t, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = f.get(t, "/static/style.css", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())

	rec = f.get(t, "/favicon.ico", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "icon", rec.Body.String())
}

func TestRoutes_MetricsDisabled(t *testing.T) {
	f := newFixture(t, "")
	f.cfg.Server.Metrics = false

	rec := f.get(t, "/metrics", nil)
	// Falls through to the post route: "metrics" is an unknown slug.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "postserve_source_attempts_total")
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	f := newFixture(t, "")
	req := httptest.NewRequest(http.MethodPost, "/first-post", bytes.NewReader(nil))
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServe_GracefulShutdown(t *testing.T) {
	f := newFixture(t, "")
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.server.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestStart_BindFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	f := newFixture(t, "")
	f.cfg.Server.Addr = ln.Addr().String()
	err = f.server.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http startup failed")
}

func TestShadowedSlugs(t *testing.T) {
	f := newFixture(t, "")
	var logs bytes.Buffer
	srv := New(f.cfg, nil, nil, Options{Logger: slog.New(slog.NewTextHandler(&logs, nil))})

	posts := []post.Post{
		{Slug: "rss", Title: "RSS"},
		{Slug: "about", Title: "About"},
		{Slug: "metrics", Title: "Metrics"},
		{Slug: "static", Title: "Static"},
	}
	assert.Equal(t, []string{"rss", "metrics", "static"}, srv.ShadowedSlugs(context.Background(), posts))
	assert.Contains(t, logs.String(), "slug=rss")
	assert.NotContains(t, logs.String(), "slug=about")

	f.cfg.Server.Metrics = false
	srv = New(f.cfg, nil, nil, Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	assert.Equal(t, []string{"rss", "static"}, srv.ShadowedSlugs(context.Background(), posts))

	rec := f.get(t, "/rss", nil)
	assert.Equal(t, "application/rss+xml; charset=utf-8", rec.Header().Get("Content-Type"))
}
