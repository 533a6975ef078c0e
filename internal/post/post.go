// Package post holds the post model derived from manifest registrations and
// the rules for picking which post a request gets.
package post

import "time"

// Post is a manifest registration with its slug computed.
type Post struct {
	Slug       string
	Title      string
	ContentRef string
	Hidden     bool
	Updated    time.Time
}

// Link is a (title, slug) pair used for see-also lists.
type Link struct {
	Title string
	Slug  string
}

// SeeAlso lists every visible post other than current, in collection order.
// Posts are compared by title, so a post sharing the current title is
// excluded too.
func SeeAlso(posts []Post, current Post) []Link {
	links := make([]Link, 0, len(posts))
	for _, p := range posts {
		if p.Hidden || p.Title == current.Title {
			continue
		}
		links = append(links, Link{Title: p.Title, Slug: p.Slug})
	}
	return links
}
