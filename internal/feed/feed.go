// Package feed builds the RSS document listing every post of the first
// source whose manifest loads.
package feed

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/postserve/internal/post"
)

// Site describes the channel.
type Site struct {
	Title       string
	BaseURL     string
	Description string
	Language    language.Tag
}

// PostLister yields the post collection, newest first.
type PostLister interface {
	Posts(ctx context.Context) ([]post.Post, error)
}

// Item is one feed entry.
type Item struct {
	Title     string
	Link      string
	Published time.Time
}

// Document is the feed before serialization.
type Document struct {
	Title       string
	Link        string
	Description string
	// Language is a BCP 47 tag, empty when undetermined.
	Language string
	Items    []Item
	// Published is the date of the first item, zero for an empty feed.
	Published time.Time
}

// Builder assembles feed documents.
type Builder struct {
	site  Site
	posts PostLister
}

// NewBuilder returns a builder for site reading posts from lister.
func NewBuilder(site Site, lister PostLister) *Builder {
	return &Builder{site: site, posts: lister}
}

// Build loads the posts and maps every one of them, hidden included, to an
// item. It fails only when no source yields a manifest.
func (b *Builder) Build(ctx context.Context) (*Document, error) {
	posts, err := b.posts.Posts(ctx)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Title:       b.site.Title,
		Link:        strings.TrimSuffix(b.site.BaseURL, "/"),
		Description: b.site.Description,
		Items:       make([]Item, 0, len(posts)),
	}
	if b.site.Language != language.Und {
		doc.Language = b.site.Language.String()
	}
	for _, p := range posts {
		doc.Items = append(doc.Items, Item{
			Title:     p.Title,
			Link:      doc.Link + "/" + p.Slug,
			Published: p.Updated,
		})
	}
	if len(doc.Items) > 0 {
		doc.Published = doc.Items[0].Published
	}
	return doc, nil
}

// Feed converts the document to a gorilla/feeds feed.
func (d *Document) Feed() *feeds.Feed {
	f := &feeds.Feed{
		Title:       d.Title,
		Link:        &feeds.Link{Href: d.Link},
		Description: d.Description,
		Created:     d.Published,
		Items:       make([]*feeds.Item, 0, len(d.Items)),
	}
	for _, it := range d.Items {
		f.Items = append(f.Items, &feeds.Item{
			Title:   it.Title,
			Link:    &feeds.Link{Href: it.Link},
			Id:      it.Link,
			Created: it.Published,
		})
	}
	return f
}

func (d *Document) rss() *feeds.RssFeed {
	channel := (&feeds.Rss{Feed: d.Feed()}).RssFeed()
	channel.Language = d.Language
	return channel
}

// RSS serializes the document as RSS 2.0.
func (d *Document) RSS() (string, error) {
	return feeds.ToXML(d.rss())
}

// WriteRSS writes the RSS 2.0 serialization to w.
func (d *Document) WriteRSS(w io.Writer) error {
	return feeds.WriteXML(d.rss(), w)
}
