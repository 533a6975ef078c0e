package source

import (
	"log/slog"
	"net/http"
	"strings"

	"git.home.luguber.info/inful/postserve/internal/logfields"
	"git.home.luguber.info/inful/postserve/internal/manifest"
)

// Config selects and configures the sources of a chain.
type Config struct {
	// RemoteBaseURL is empty when no remote endpoint is configured.
	RemoteBaseURL string
	LocalDir      string
	Manifest      manifest.Options
	HTTPClient    *http.Client
}

// RemoteConfigured reports whether a remote endpoint is set.
func (c Config) RemoteConfigured() bool {
	return strings.TrimSpace(c.RemoteBaseURL) != ""
}

// Chain returns the sources to try in order: remote then local when a remote
// endpoint is configured, local alone otherwise. An unusable remote URL is
// logged and skipped so that local content is still served.
func Chain(cfg Config) []Source {
	local := NewLocal(cfg.LocalDir, cfg.Manifest)
	if !cfg.RemoteConfigured() {
		return []Source{local}
	}
	remote, err := NewRemote(cfg.RemoteBaseURL, cfg.HTTPClient, cfg.Manifest)
	if err != nil {
		slog.Warn("Remote source disabled", logfields.URL(cfg.RemoteBaseURL), logfields.Error(err))
		return []Source{local}
	}
	return []Source{remote, local}
}
