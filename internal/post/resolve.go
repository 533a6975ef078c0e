package post

import (
	derrors "git.home.luguber.info/inful/postserve/internal/foundation/errors"
)

// DefaultExtension is the file extension of post bodies in both sources.
const DefaultExtension = ".md"

// ResolveOptions tunes the fallback steps of Resolve.
type ResolveOptions struct {
	// MatchContentRef enables matching requested+Extension against the
	// content reference, for links that still use file names.
	MatchContentRef bool
	Extension       string
}

// DefaultResolveOptions enables content reference matching with ".md".
func DefaultResolveOptions() ResolveOptions {
	return ResolveOptions{MatchContentRef: true, Extension: DefaultExtension}
}

// Resolve picks the post to serve for a requested slug. An empty slug always
// gets the default post:
//  1. the first post whose slug equals requested;
//  2. if enabled, the first post whose content reference equals requested plus the extension;
//  3. the first post that is not hidden.
//
// An empty collection, or one where nothing matches and every post is hidden,
// is a precondition failure.
func Resolve(posts []Post, requested string, opts ResolveOptions) (Post, error) {
	if len(posts) == 0 {
		return Post{}, derrors.PreconditionError("no posts to resolve against").
			WithContext("slug", requested).
			Build()
	}

	if requested == "" {
		return defaultPost(posts, requested)
	}

	for _, p := range posts {
		if p.Slug == requested {
			return p, nil
		}
	}

	if opts.MatchContentRef {
		ext := opts.Extension
		if ext == "" {
			ext = DefaultExtension
		}
		ref := requested + ext
		for _, p := range posts {
			if p.ContentRef == ref {
				return p, nil
			}
		}
	}

	return defaultPost(posts, requested)
}

// defaultPost is the first post that is not hidden.
func defaultPost(posts []Post, requested string) (Post, error) {
	for _, p := range posts {
		if !p.Hidden {
			return p, nil
		}
	}
	return Post{}, derrors.PreconditionError("every post is hidden, no default to serve").
		WithContext("slug", requested).
		WithContext("posts", len(posts)).
		Build()
}
