// Package render converts post markdown to sanitized HTML and assembles page fragments.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter turns markdown into HTML that is safe to embed in a page.
type Converter interface {
	Convert(markdown string) (template.HTML, error)
}

// MarkdownConverter renders GitHub-flavored markdown with raw HTML passthrough,
// then strips disallowed elements and URL schemes (javascript:, vbscript:, data:).
// It is stateless and safe for concurrent use.
type MarkdownConverter struct {
	engine goldmark.Markdown
	policy *bluemonday.Policy
}

// NewMarkdownConverter creates a converter with GFM extensions enabled.
func NewMarkdownConverter() *MarkdownConverter {
	engine := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	return &MarkdownConverter{engine: engine, policy: newPolicy()}
}

// newPolicy allows user-generated-content markup over http, https and mailto
// URLs, plus the class attributes and task list checkboxes GFM emits.
func newPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Globally()
	policy.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
	policy.AllowAttrs("checked", "disabled").OnElements("input")
	return policy
}

// Convert renders markdown to sanitized HTML.
func (c *MarkdownConverter) Convert(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := c.engine.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("markdown conversion failed: %w", err)
	}

	//nolint:gosec // Output of the sanitizer policy.
	return template.HTML(c.policy.SanitizeBytes(buf.Bytes())), nil
}
