package posts

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Source provides the content files an index is built from.
type Source interface {
	Load(ctx context.Context) ([]File, error)
}

// BuildOption customizes Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	now    func() time.Time
	logger *logrus.Entry
}

// WithClock sets the clock used for posts whose filename has no valid date.
func WithClock(now func() time.Time) BuildOption {
	return func(c *buildConfig) { c.now = now }
}

// WithLogger sets the logger used while indexing.
func WithLogger(logger *logrus.Entry) BuildOption {
	return func(c *buildConfig) { c.logger = logger }
}

// Build loads every file from src, parses it and returns the sorted index.
func Build(ctx context.Context, src Source, opts ...BuildOption) (*Index, error) {
	cfg := buildConfig{
		now:    time.Now,
		logger: logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	files, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	// Undated posts share one load time
	now := cfg.now().UTC()

	posts := make([]Post, 0, len(files))
	for _, file := range files {
		posts = append(posts, ParsePost(file, now))
	}

	index, err := NewIndex(posts)
	if err != nil {
		return nil, err
	}

	cfg.logger.WithField("post_count", index.Len()).Info("Indexed posts")
	return index, nil
}

// NewIndex sorts posts newest first and builds the slug lookup.
// Posts with equal dates keep the order they were given in.
// It fails with ErrDuplicateSlug when two posts share a slug.
func NewIndex(posts []Post) (*Index, error) {
	sorted := append([]Post(nil), posts...)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
	})

	bySlug := make(map[string]int, len(sorted))
	for i, post := range sorted {
		if prev, exists := bySlug[post.Slug]; exists {
			return nil, fmt.Errorf("%w: %q used by %s and %s",
				ErrDuplicateSlug, post.Slug, sorted[prev].Filename, post.Filename)
		}
		bySlug[post.Slug] = i
	}

	return &Index{posts: sorted, bySlug: bySlug}, nil
}

// Lazy builds an index on first use. Concurrent callers share a single
// build and observe the same result, including its error.
type Lazy struct {
	get func() (*Index, error)
}

// NewLazy wraps build so that it runs at most once.
func NewLazy(build func() (*Index, error)) *Lazy {
	return &Lazy{get: sync.OnceValues(build)}
}

// Index returns the built index, building it if needed.
func (l *Lazy) Index() (*Index, error) {
	return l.get()
}
