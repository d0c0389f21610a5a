package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/focus-blog/focus/internal/logging"
	"github.com/focus-blog/focus/internal/posts"
)

var createdAt = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

func TestFilename(t *testing.T) {
	t.Parallel()

	name, err := Filename("My First Post!", createdAt)
	require.NoError(t, err)
	require.Equal(t, "2025-03-14-my-first-post.md", name)

	_, err = Filename("?!", createdAt)
	require.ErrorIs(t, err, ErrEmptyTitle)
}

func TestCreateWritesTemplate(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "posts")

	path, err := Create(dir, "  Hello World  ", createdAt)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "2025-03-14-hello-world.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "# Hello World\nWrite your subtitle here\n---\n\nWrite your post content here.\n", string(data))
}

func TestCreateRefusesToOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := Create(dir, "Same", createdAt)
	require.NoError(t, err)

	_, err = Create(dir, "Same", createdAt)
	require.ErrorIs(t, err, ErrPostExists)
}

func TestCreatedPostIsIndexed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := Create(dir, "Fresh Idea", createdAt)
	require.NoError(t, err)

	logger := logging.Discard()
	index, err := posts.Build(context.Background(), posts.NewLoader(os.DirFS(dir), ".", logger), posts.WithLogger(logger))
	require.NoError(t, err)

	nav, ok := posts.NewFinder(index).BySlug("fresh-idea")
	require.True(t, ok)
	require.Equal(t, "Fresh Idea", nav.Post.Title)
	require.Equal(t, "Write your subtitle here", nav.Post.Subtitle)
	require.Equal(t, time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC), nav.Post.PublishedAt)
}
