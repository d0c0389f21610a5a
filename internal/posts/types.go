// Package posts discovers, parses, indexes and navigates blog posts.
package posts

import (
	"errors"
	"time"
)

var (
	// ErrDuplicateSlug is returned by Build when two files resolve to the same slug.
	ErrDuplicateSlug = errors.New("duplicate post slug")

	// ErrNotFound is returned when a slug or position addresses no post.
	ErrNotFound = errors.New("post not found")
)

// Post represents a single blog post with metadata extracted from its file.
type Post struct {
	// Slug is the URL-safe identifier (e.g., "hello-world")
	Slug string `json:"slug"`

	// Filename is the base name of the source file (e.g., "2024-01-02-hello-world.md")
	Filename string `json:"filename"`

	// Title is taken from the first "#" line of the file
	Title string `json:"title"`

	// Subtitle is the text between the title and the "---" separator
	Subtitle string `json:"subtitle,omitempty"`

	// Body is the markdown content rendered for the post
	Body string `json:"-"`

	// PublishedAt is the date from the filename, or the load time if the name carries none
	PublishedAt time.Time `json:"published_at"`
}

// HumanDate formats the publication date for display (e.g., "January 02, 2024").
func (p Post) HumanDate() string {
	return p.PublishedAt.Format("January 02, 2006")
}

// Index is the ordered, immutable collection of all posts.
// It is safe for concurrent readers once returned by Build.
type Index struct {
	posts  []Post
	bySlug map[string]int
}

// Len returns the number of posts in the index.
func (idx *Index) Len() int {
	return len(idx.posts)
}

// All returns a copy of the posts, newest first.
func (idx *Index) All() []Post {
	return append([]Post(nil), idx.posts...)
}

// Neighbor identifies an adjacent post by both addressing schemes.
type Neighbor struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

// Navigation is the per-request view of a resolved post and its neighbors.
type Navigation struct {
	Post     Post      `json:"post"`
	Position int       `json:"position"`
	Previous *Neighbor `json:"previous,omitempty"`
	Next     *Neighbor `json:"next,omitempty"`
}
