// Package scaffold creates new post files following the posts naming convention.
package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/focus-blog/focus/internal/posts"
)

const dirPermissions = 0o755

var (
	// ErrPostExists is returned when the target file is already present.
	ErrPostExists = errors.New("post already exists")

	// ErrEmptyTitle is returned when the title produces no usable slug.
	ErrEmptyTitle = errors.New("title must contain at least one letter or digit")
)

// Filename returns "YYYY-MM-DD-<slug>.md" for a title created on date.
func Filename(title string, date time.Time) (string, error) {
	slug := posts.Slugify(title)
	if strings.Trim(slug, "-") == "" {
		return "", ErrEmptyTitle
	}
	return date.Format("2006-01-02") + "-" + slug + ".md", nil
}

// Template returns the initial content of a new post.
func Template(title string) string {
	return "# " + title + "\n" +
		"Write your subtitle here\n" +
		"---\n" +
		"\n" +
		"Write your post content here.\n"
}

// Create writes a new post for title into dir and returns its path.
// It fails with ErrPostExists rather than overwriting an existing file.
func Create(dir, title string, now time.Time) (string, error) {
	title = strings.TrimSpace(title)

	name, err := Filename(title, now)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("failed to create posts directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%w: %s", ErrPostExists, path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to check %s: %w", path, err)
	}

	if err := atomic.WriteFile(path, strings.NewReader(Template(title))); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}
