package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/postserve/internal/foundation/errors"
	"git.home.luguber.info/inful/postserve/internal/manifest"
)

// Local reads the manifest and bodies from a directory on disk.
type Local struct {
	dir  string
	opts manifest.Options
}

// NewLocal returns a source rooted at dir.
func NewLocal(dir string, opts manifest.Options) *Local {
	return &Local{dir: dir, opts: opts}
}

func (l *Local) Name() string { return NameLocal }

// Dir returns the content root.
func (l *Local) Dir() string { return l.dir }

// Manifest reads and decodes dir/manifest.json.
func (l *Local) Manifest(ctx context.Context) ([]manifest.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(l.dir, manifest.FileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, derrors.IOError("read manifest").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return manifest.Decode(raw, l.opts)
}

// ReadContent reads dir/ref. References that would leave dir are rejected.
func (l *Local) ReadContent(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := l.resolve(ref)
	if err != nil {
		return "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", derrors.IOError("read post content").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return string(raw), nil
}

func (l *Local) resolve(ref string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(ref))
	if ref == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", derrors.IOError("content reference outside content directory").
			WithContext("ref", ref).
			Build()
	}
	return filepath.Join(l.dir, clean), nil
}
