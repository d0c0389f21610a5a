package render

import (
	"html/template"
	"sync"
)

// About renders a fixed long-form document once and serves the cached result.
type About struct {
	get func() (template.HTML, error)
}

// NewAbout prepares the about fragment for source. Conversion happens on the
// first call to Fragment and is shared by all later callers.
func NewAbout(r *Renderer, source []byte) *About {
	return &About{
		get: sync.OnceValues(func() (template.HTML, error) {
			body, err := r.converter.Convert(string(source))
			if err != nil {
				return "", err
			}
			return r.execute("about", body)
		}),
	}
}

// Fragment returns the rendered about document.
func (a *About) Fragment() (template.HTML, error) {
	return a.get()
}
