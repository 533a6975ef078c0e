// Package source provides the two interchangeable places posts are read from:
// a local content directory and a remote HTTP base URL.
package source

import (
	"context"

	"git.home.luguber.info/inful/postserve/internal/manifest"
)

// Source reads a manifest and post bodies. Implementations are stateless and
// never cache.
type Source interface {
	// Name identifies the source in logs and metrics.
	Name() string
	Manifest(ctx context.Context) ([]manifest.Registration, error)
	ReadContent(ctx context.Context, ref string) (string, error)
}

// Names used for the two source variants.
const (
	NameLocal  = "local"
	NameRemote = "remote"
)
