package posts

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type staticSource []File

func (s staticSource) Load(context.Context) ([]File, error) {
	return s, nil
}

type failingSource struct{ err error }

func (s failingSource) Load(context.Context) ([]File, error) {
	return nil, s.err
}

func quietLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func buildTestIndex(t *testing.T, files ...File) *Index {
	t.Helper()

	index, err := Build(context.Background(), staticSource(files),
		WithClock(func() time.Time { return loadTime }),
		WithLogger(quietLogger()))
	require.NoError(t, err)
	return index
}

func slugs(index *Index) []string {
	out := make([]string, 0, index.Len())
	for _, post := range index.All() {
		out = append(out, post.Slug)
	}
	return out
}

func TestBuildSortsNewestFirst(t *testing.T) {
	t.Parallel()

	index := buildTestIndex(t,
		File{Name: "2024-01-01-a.md", Content: "# A\n---\nfirst"},
		File{Name: "2024-01-03-b.md", Content: "# B\n---\nthird"},
		File{Name: "2024-01-02-c.md", Content: "# C\n---\nsecond"},
	)

	if diff := cmp.Diff([]string{"b", "c", "a"}, slugs(index)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}

	titles := make([]string, 0, index.Len())
	for _, post := range index.All() {
		titles = append(titles, post.Title)
	}
	require.Equal(t, []string{"B", "C", "A"}, titles)
}

func TestBuildTieBreakKeepsDiscoveryOrder(t *testing.T) {
	t.Parallel()

	index := buildTestIndex(t,
		File{Name: "2024-05-05-first.md"},
		File{Name: "2024-05-05-second.md"},
		File{Name: "2024-06-01-newer.md"},
		File{Name: "2024-05-05-third.md"},
	)

	require.Equal(t, []string{"newer", "first", "second", "third"}, slugs(index))
}

func TestBuildUndatedPostsSortNewest(t *testing.T) {
	t.Parallel()

	index := buildTestIndex(t,
		File{Name: "2024-01-01-dated.md"},
		File{Name: "scratch.md"},
	)

	require.Equal(t, []string{"scratch", "dated"}, slugs(index))
	require.Equal(t, loadTime, index.All()[0].PublishedAt)
}

func TestBuildOrderInvariant(t *testing.T) {
	t.Parallel()

	index := buildTestIndex(t,
		File{Name: "2023-12-31-x.md"},
		File{Name: "2021-02-03-y.md"},
		File{Name: "2024-07-04-z.md"},
		File{Name: "2022-10-10-w.md"},
		File{Name: "2024-07-04-v.md"},
	)

	all := index.All()
	for a := range all {
		for b := range all {
			if all[a].PublishedAt.After(all[b].PublishedAt) {
				require.Less(t, a, b, "%s should precede %s", all[a].Slug, all[b].Slug)
			}
		}
	}
}

func TestBuildDuplicateSlugFails(t *testing.T) {
	t.Parallel()

	_, err := Build(context.Background(), staticSource{
		{Name: "2024-01-01-same.md"},
		{Name: "2024-02-02-same.md"},
	}, WithLogger(quietLogger()))

	require.ErrorIs(t, err, ErrDuplicateSlug)
	require.Contains(t, err.Error(), "2024-01-01-same.md")
	require.Contains(t, err.Error(), "2024-02-02-same.md")
}

func TestBuildSourceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := Build(context.Background(), failingSource{err: boom}, WithLogger(quietLogger()))
	require.ErrorIs(t, err, boom)
}

func TestBuildFromLoader(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"content/2024-01-02-hello-world.md": {Data: []byte("# Hello World\nFirst post\n---\nHi!\n")},
		"content/cover.jpg":                 {Data: []byte{0xff, 0xd8}},
	}

	index, err := Build(context.Background(), NewLoader(fsys, "content", quietLogger()), WithLogger(quietLogger()))
	require.NoError(t, err)
	require.Equal(t, 1, index.Len())

	post := index.All()[0]
	require.Equal(t, "hello-world", post.Slug)
	require.Equal(t, "Hello World", post.Title)
	require.Equal(t, "First post", post.Subtitle)
	require.Equal(t, "Hi!\n", post.Body)
	require.Equal(t, "January 02, 2024", post.HumanDate())
}

func TestIndexAllReturnsCopy(t *testing.T) {
	t.Parallel()

	index := buildTestIndex(t, File{Name: "2024-01-01-a.md"})
	all := index.All()
	all[0].Slug = "mutated"

	require.Equal(t, "a", index.All()[0].Slug)
}

func TestLazyBuildsOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	lazy := NewLazy(func() (*Index, error) {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		return NewIndex([]Post{{Slug: "only"}})
	})

	const workers = 16
	results := make([]*Index, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = lazy.Index()
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
	for i, index := range results {
		require.NoError(t, errs[i])
		require.Same(t, results[0], index)
	}
}

func TestLazyCachesError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	lazy := NewLazy(func() (*Index, error) {
		calls.Add(1)
		return nil, ErrDuplicateSlug
	})

	_, err := lazy.Index()
	require.ErrorIs(t, err, ErrDuplicateSlug)
	_, err = lazy.Index()
	require.ErrorIs(t, err, ErrDuplicateSlug)
	require.Equal(t, int32(1), calls.Load())
}
