package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	derrors "git.home.luguber.info/inful/postserve/internal/foundation/errors"
	"git.home.luguber.info/inful/postserve/internal/manifest"
)

const maxRemoteResponseBytes = 5 * 1024 * 1024

// NewHTTPClient creates an HTTP client with safe defaults for remote content.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) == 0 {
				return nil
			}
			if req.URL.Host != via[0].URL.Host {
				return errors.New("redirect to different host blocked")
			}
			if len(via) >= 5 {
				return errors.New("too many redirects")
			}
			return nil
		},
	}
}

// Remote fetches the manifest and bodies over HTTP from a base URL.
type Remote struct {
	base   *url.URL
	client *http.Client
	opts   manifest.Options
}

// NewRemote returns a source for baseURL. A nil client gets NewHTTPClient.
func NewRemote(baseURL string, client *http.Client, opts manifest.Options) (*Remote, error) {
	base, err := ValidateBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = NewHTTPClient()
	}
	return &Remote{base: base, client: client, opts: opts}, nil
}

// ValidateBaseURL accepts absolute http and https URLs.
func ValidateBaseURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, derrors.ValidationError("invalid remote base URL").WithCause(err).WithContext("url", raw).Build()
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, derrors.ValidationError("unsupported remote URL scheme").WithContext("url", raw).Build()
	}
	if parsed.Host == "" {
		return nil, derrors.ValidationError("remote base URL has no host").WithContext("url", raw).Build()
	}
	return parsed, nil
}

func (r *Remote) Name() string { return NameRemote }

// BaseURL returns the configured base URL.
func (r *Remote) BaseURL() string { return r.base.String() }

// Manifest fetches {base}/manifest.json. A payload that does not decode is a
// decode error wrapping the manifest format error.
func (r *Remote) Manifest(ctx context.Context) ([]manifest.Registration, error) {
	target := r.join(manifest.FileName)
	body, err := r.fetch(ctx, target)
	if err != nil {
		return nil, err
	}
	regs, err := manifest.Decode(body, r.opts)
	if err != nil {
		return nil, derrors.DecodeError("remote manifest does not conform").
			WithCause(err).
			WithContext("url", target).
			Build()
	}
	return regs, nil
}

// ReadContent fetches {base}/{ref} as text.
func (r *Remote) ReadContent(ctx context.Context, ref string) (string, error) {
	body, err := r.fetch(ctx, r.join(ref))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// join resolves ref under the base path. ref is a path, so characters such
// as '#' and '?' are escaped rather than read as fragment or query.
func (r *Remote) join(ref string) string {
	return r.base.JoinPath(ref).String()
}

func (r *Remote) fetch(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, derrors.NetworkError("build request").WithCause(err).WithContext("url", target).Build()
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, derrors.NetworkError("remote unreachable").WithCause(err).WithContext("url", target).Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, derrors.NetworkError(fmt.Sprintf("remote answered HTTP %d", resp.StatusCode)).
			WithContext("url", target).
			WithContext("status", resp.StatusCode).
			Build()
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteResponseBytes+1))
	if err != nil {
		return nil, derrors.NetworkError("read response").WithCause(err).WithContext("url", target).Build()
	}
	if len(data) > maxRemoteResponseBytes {
		return nil, derrors.DecodeError("response too large").WithContext("url", target).Build()
	}
	return data, nil
}
