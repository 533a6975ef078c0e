package post

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeeAlso(t *testing.T) {
	posts := []Post{
		{Slug: "newest", Title: "Newest"},
		{Slug: "draft", Title: "Draft", Hidden: true},
		{Slug: "middle", Title: "Middle"},
		{Slug: "oldest", Title: "Oldest"},
	}

	got := SeeAlso(posts, posts[2])
	assert.Equal(t, []Link{
		{Title: "Newest", Slug: "newest"},
		{Title: "Oldest", Slug: "oldest"},
	}, got)
}

func TestSeeAlso_HiddenCurrentPost(t *testing.T) {
	posts := []Post{
		{Slug: "draft", Title: "Draft", Hidden: true},
		{Slug: "public", Title: "Public"},
	}

	got := SeeAlso(posts, posts[0])
	assert.Equal(t, []Link{{Title: "Public", Slug: "public"}}, got)
}

func TestSeeAlso_NeverContainsCurrentOrHidden(t *testing.T) {
	posts := []Post{
		{Slug: "a", Title: "A"},
		{Slug: "b", Title: "B", Hidden: true},
		{Slug: "c", Title: "C"},
	}
	for _, current := range posts {
		for _, link := range SeeAlso(posts, current) {
			assert.NotEqual(t, current.Title, link.Title)
			assert.NotEqual(t, "B", link.Title)
		}
	}
}

func TestSeeAlso_SingleVisiblePost(t *testing.T) {
	posts := []Post{{Slug: "only", Title: "Only"}}
	assert.Empty(t, SeeAlso(posts, posts[0]))
}
