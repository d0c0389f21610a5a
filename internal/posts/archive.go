package posts

import "time"

// YearGroup holds the posts published in one calendar year.
type YearGroup struct {
	Year  int          `json:"year"`
	Count int          `json:"count"`
	Posts []ArchiveDTO `json:"posts"`
}

// ArchiveDTO is a lean representation of a post without its body.
type ArchiveDTO struct {
	Position    int    `json:"position"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	PublishedAt string `json:"published_at"`
}

// BuildArchive groups posts by publication year, newest year first.
// Posts keep their index order inside each group, and positions refer to the index.
func BuildArchive(posts []Post) []YearGroup {
	var groups []YearGroup

	for i, post := range posts {
		year := post.PublishedAt.Year()
		if len(groups) == 0 || groups[len(groups)-1].Year != year {
			groups = append(groups, YearGroup{Year: year})
		}

		group := &groups[len(groups)-1]
		group.Posts = append(group.Posts, ArchiveDTO{
			Position:    i,
			Slug:        post.Slug,
			Title:       post.Title,
			Subtitle:    post.Subtitle,
			PublishedAt: post.PublishedAt.Format(time.DateOnly),
		})
		group.Count++
	}

	if groups == nil {
		return []YearGroup{}
	}
	return groups
}

// FilterArchive returns the group for year, or nil when no post was published that year.
func FilterArchive(groups []YearGroup, year int) []YearGroup {
	for _, group := range groups {
		if group.Year == year {
			return []YearGroup{group}
		}
	}
	return nil
}
