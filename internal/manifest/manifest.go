// Package manifest decodes the post manifest: a JSON list of registrations
// describing each post's title, body reference, visibility and freshness.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	derrors "git.home.luguber.info/inful/postserve/internal/foundation/errors"
	"git.home.luguber.info/inful/postserve/internal/post"
	"git.home.luguber.info/inful/postserve/internal/slug"
)

// FileName is the manifest's name relative to a content root.
const FileName = "manifest.json"

// Registration is one manifest entry before it becomes a post.
type Registration struct {
	Title    string
	Markdown string
	Hidden   bool
	Updated  time.Time
}

// Options controls how strictly a manifest is decoded.
type Options struct {
	// RequireUpdated rejects entries without an "updated" timestamp.
	RequireUpdated bool
}

// rawRegistration detects absent fields, which the public type cannot express.
type rawRegistration struct {
	Title    *string `json:"title"`
	Markdown *string `json:"markdown"`
	Hidden   *bool   `json:"hidden"`
	Updated  *string `json:"updated"`
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Decode parses a manifest payload. Anything other than a JSON array of
// registration objects is a format error, as is an entry without title or
// markdown. A missing "hidden" means false.
func Decode(raw []byte, opts Options) ([]Registration, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, derrors.FormatError("manifest is not a list of registrations").Build()
	}

	var entries []rawRegistration
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, derrors.FormatError("manifest could not be parsed").WithCause(err).Build()
	}

	regs := make([]Registration, 0, len(entries))
	for i, e := range entries {
		reg, err := e.toRegistration(opts)
		if err != nil {
			return nil, derrors.FormatError("invalid manifest entry").
				WithCause(err).
				WithContext("index", i).
				Build()
		}
		regs = append(regs, reg)
	}
	return regs, nil
}

func (e rawRegistration) toRegistration(opts Options) (Registration, error) {
	if e.Title == nil {
		return Registration{}, fmt.Errorf("missing field %q", "title")
	}
	if e.Markdown == nil {
		return Registration{}, fmt.Errorf("missing field %q", "markdown")
	}
	reg := Registration{Title: *e.Title, Markdown: *e.Markdown}
	if e.Hidden != nil {
		reg.Hidden = *e.Hidden
	}
	if e.Updated == nil {
		if opts.RequireUpdated {
			return Registration{}, fmt.Errorf("missing field %q", "updated")
		}
		return reg, nil
	}
	ts, err := parseTimestamp(*e.Updated)
	if err != nil {
		return Registration{}, err
	}
	reg.Updated = ts
	return reg, nil
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q, use RFC 3339 or YYYY-MM-DD", value)
}

// ToPosts derives posts from registrations. The result is in reverse
// registration order, so the most recently registered post comes first.
func ToPosts(regs []Registration) []post.Post {
	posts := make([]post.Post, 0, len(regs))
	for _, r := range regs {
		posts = append(posts, post.Post{
			Slug:       slug.Make(r.Title),
			Title:      r.Title,
			ContentRef: r.Markdown,
			Hidden:     r.Hidden,
			Updated:    r.Updated,
		})
	}
	slices.Reverse(posts)
	return posts
}

// Load decodes raw and derives the post collection in one step.
func Load(raw []byte, opts Options) ([]post.Post, error) {
	regs, err := Decode(raw, opts)
	if err != nil {
		return nil, err
	}
	return ToPosts(regs), nil
}
