package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strconv"

	"github.com/focus-blog/focus/internal/posts"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Mode selects how navigation controls address neighboring posts.
type Mode int

const (
	// ByPosition links neighbors as /posts/{position}.
	ByPosition Mode = iota
	// BySlug links neighbors as /post/{slug} and pushes the URL to browser history.
	BySlug
)

// DefaultSiteTitle is used by Page when no title is configured.
const DefaultSiteTitle = "Focus"

type postView struct {
	Date     string
	Title    string
	Subtitle string
	Body     template.HTML
	Previous *navLink
	Next     *navLink
}

type navLink struct {
	URL     string
	PushURL bool
}

type pageView struct {
	SiteTitle string
	Content   template.HTML
}

// Renderer assembles post fragments and full pages.
type Renderer struct {
	converter Converter
	templates *template.Template
	siteTitle string
}

// NewRenderer creates a renderer using converter for post bodies.
func NewRenderer(converter Converter, siteTitle string) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	if siteTitle == "" {
		siteTitle = DefaultSiteTitle
	}

	return &Renderer{converter: converter, templates: tmpl, siteTitle: siteTitle}, nil
}

// Post renders the fragment for a resolved post: header, divider, body and
// navigation controls for the neighbors that exist.
// If the body cannot be converted, Post returns an error fragment together with the error.
func (r *Renderer) Post(nav posts.Navigation, mode Mode) (template.HTML, error) {
	body, err := r.converter.Convert(nav.Post.Body)
	if err != nil {
		return r.errorFragment(), fmt.Errorf("failed to render post %s: %w", nav.Post.Slug, err)
	}

	view := postView{
		Date:     nav.Post.HumanDate(),
		Title:    nav.Post.Title,
		Subtitle: nav.Post.Subtitle,
		Body:     body,
		Previous: link(nav.Previous, mode),
		Next:     link(nav.Next, mode),
	}

	out, err := r.execute("post", view)
	if err != nil {
		return r.errorFragment(), err
	}
	return out, nil
}

// Empty renders the placeholder shown when there are no posts.
func (r *Renderer) Empty() (template.HTML, error) {
	return r.execute("empty", nil)
}

// Page wraps a fragment in the full site layout.
func (r *Renderer) Page(content template.HTML) (template.HTML, error) {
	return r.execute("layout", pageView{SiteTitle: r.siteTitle, Content: content})
}

func (r *Renderer) errorFragment() template.HTML {
	out, err := r.execute("error", nil)
	if err != nil {
		return `<div id="post">This post could not be rendered.</div>`
	}
	return out
}

func (r *Renderer) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	//nolint:gosec // Produced by html/template.
	return template.HTML(buf.String()), nil
}

func link(neighbor *posts.Neighbor, mode Mode) *navLink {
	if neighbor == nil {
		return nil
	}
	if mode == BySlug {
		return &navLink{URL: "/post/" + url.PathEscape(neighbor.Slug), PushURL: true}
	}
	return &navLink{URL: "/posts/" + strconv.Itoa(neighbor.Position)}
}
