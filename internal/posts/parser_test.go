package posts

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

var loadTime = time.Date(2030, time.June, 1, 12, 0, 0, 0, time.UTC)

func TestParsePostFilenameMetadata(t *testing.T) {
	t.Parallel()

	post := ParsePost(File{Name: "2024-01-02-hello-world.md", Content: "# Hello\n---\nbody"}, loadTime)

	require.Equal(t, "hello-world", post.Slug)
	require.Equal(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), post.PublishedAt)
	require.Equal(t, "2024-01-02-hello-world.md", post.Filename)
}

func TestParsePostDateFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
	}{
		{name: "short name", file: "notes.md"},
		{name: "malformed date", file: "2024-13-45-bad-date.md"},
		{name: "no date", file: "a-long-filename-without-date.md"},
		{name: "non-ascii prefix", file: "日本語ファイル名前です長い.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			post := ParsePost(File{Name: tt.file}, loadTime)
			require.Equal(t, loadTime, post.PublishedAt)
		})
	}
}

func TestParsePostDateAfterNonASCIIName(t *testing.T) {
	t.Parallel()

	post := ParsePost(File{Name: "2024-05-06-ça-va.md"}, loadTime)
	require.Equal(t, time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC), post.PublishedAt)
	require.Equal(t, "ça-va", post.Slug)
}

func TestParsePostSlugFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file string
		want string
	}{
		{file: "About Me.md", want: "about-me"},
		{file: "Hi, There!.md", want: "hi-there"},
		{file: "2024-01-02.md", want: "20240102"},
		{file: "2024-01-02-.md", want: "20240102"},
		{file: "2024-01-02-x.md", want: "x"},
		{file: "not-a-date-but-long.md", want: "but-long"},
		{file: "日本語ファイル.md", want: "日本語ファイル"},
		{file: "Ünï Cödé.md", want: "ünï-cödé"},
		{file: "2024-01-02-日本語.md", want: "日本語"},
		{file: "日本語ファイル名前です長い.md", want: "長い"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()
			slug := ParsePost(File{Name: tt.file}, loadTime).Slug
			require.Equal(t, tt.want, slug)
			require.True(t, utf8.ValidString(slug))
		})
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	require.Equal(t, "my-first-post", Slugify("My First Post"))
	require.Equal(t, "whats-new-in-2024", Slugify("What's New in 2024?"))
	require.Equal(t, "café", Slugify("Café"))
	require.Empty(t, Slugify("!!!"))
}

func TestParseHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		content      string
		wantTitle    string
		wantSubtitle string
		wantBody     string
	}{
		{
			name:         "title subtitle and body",
			content:      "# My Post\nA short\n\nsubtitle\n---\n\nBody text.\n",
			wantTitle:    "My Post",
			wantSubtitle: "A short subtitle",
			wantBody:     "\nBody text.\n",
		},
		{
			name:      "no separator keeps whole text",
			content:   "## Heading\nSome text\n",
			wantTitle: "Heading",
			wantBody:  "## Heading\nSome text\n",
		},
		{
			name:      "no title",
			content:   "Plain text only\n",
			wantTitle: "Untitled",
			wantBody:  "Plain text only\n",
		},
		{
			name:         "indented title and crlf separator",
			content:      "  #   Spaced  \r\nSub\r\n---\r\nBody",
			wantTitle:    "Spaced",
			wantSubtitle: "Sub",
			wantBody:     "Body",
		},
		{
			name:      "separator without title",
			content:   "Intro line\n---\nBody",
			wantTitle: "Untitled",
			wantBody:  "Intro line\n---\nBody",
		},
		{
			name:      "empty heading",
			content:   "#\n---\nBody",
			wantTitle: "Untitled",
			wantBody:  "Body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			title, subtitle, body := parseHeader(tt.content)
			require.Equal(t, tt.wantTitle, title)
			require.Equal(t, tt.wantSubtitle, subtitle)
			require.Equal(t, tt.wantBody, body)
		})
	}
}
