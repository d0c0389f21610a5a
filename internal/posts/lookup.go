package posts

// Finder provides navigation operations on a post index.
type Finder struct {
	index *Index
}

// NewFinder creates a new post finder from an index.
func NewFinder(index *Index) *Finder {
	return &Finder{index: index}
}

// Len returns the number of indexed posts.
func (f *Finder) Len() int {
	return f.index.Len()
}

// All returns every post, newest first.
func (f *Finder) All() []Post {
	return f.index.All()
}

// ByPosition resolves the post at a zero-based position.
// Returns false if the position is outside [0, Len()).
func (f *Finder) ByPosition(position int) (Navigation, bool) {
	if position < 0 || position >= len(f.index.posts) {
		return Navigation{}, false
	}
	return f.navigation(position), true
}

// BySlug resolves the post with the given slug.
func (f *Finder) BySlug(slug string) (Navigation, bool) {
	position, ok := f.index.bySlug[slug]
	if !ok {
		return Navigation{}, false
	}
	return f.navigation(position), true
}

// Adjacent returns the newer (previous) and older (next) neighbors of a position.
// Either is nil at the edges of the index.
func (f *Finder) Adjacent(position int) (previous, next *Neighbor) {
	if position > 0 && position-1 < len(f.index.posts) {
		previous = f.neighbor(position - 1)
	}
	if position >= 0 && position+1 < len(f.index.posts) {
		next = f.neighbor(position + 1)
	}
	return previous, next
}

func (f *Finder) navigation(position int) Navigation {
	previous, next := f.Adjacent(position)
	return Navigation{
		Post:     f.index.posts[position],
		Position: position,
		Previous: previous,
		Next:     next,
	}
}

func (f *Finder) neighbor(position int) *Neighbor {
	post := f.index.posts[position]
	return &Neighbor{Slug: post.Slug, Title: post.Title, Position: position}
}
