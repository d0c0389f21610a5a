package posts

import (
	"strings"
	"time"
	"unicode"
)

const (
	dateLayout     = "2006-01-02"
	datePrefixLen  = len(dateLayout)
	slugPrefixLen  = datePrefixLen + 1
	untitled       = "Untitled"
	titleSeparator = "---"
)

// ParsePost creates a Post from a content file.
// The date and slug come from the filename; title, subtitle and body come
// from the content. now is used when the filename carries no valid date.
func ParsePost(file File, now time.Time) Post {
	stem := strings.TrimSuffix(file.Name, ".md")
	title, subtitle, body := parseHeader(file.Content)

	return Post{
		Slug:        slugFromStem(stem),
		Filename:    file.Name,
		Title:       title,
		Subtitle:    subtitle,
		Body:        body,
		PublishedAt: dateFromStem(stem, now),
	}
}

// dateFromStem parses the first ten characters as YYYY-MM-DD at midnight UTC.
// Example: "2024-01-02-hello-world" -> 2024-01-02T00:00:00Z
func dateFromStem(stem string, now time.Time) time.Time {
	prefix, _, ok := splitAtRune(stem, datePrefixLen)
	if !ok {
		return now
	}

	date, err := time.ParseInLocation(dateLayout, prefix, time.UTC)
	if err != nil {
		return now
	}
	return date
}

// slugFromStem drops the first eleven characters ("YYYY-MM-DD-"), or
// slugifies names that are not longer than that.
// Examples:
//   - "2024-01-02-hello-world" -> "hello-world"
//   - "About Me" -> "about-me"
func slugFromStem(stem string) string {
	if _, rest, ok := splitAtRune(stem, slugPrefixLen); ok && rest != "" {
		return rest
	}
	return Slugify(stem)
}

// splitAtRune splits s after its first n characters.
// ok is false when s has fewer than n characters.
func splitAtRune(s string, n int) (head, tail string, ok bool) {
	count := 0
	for i := range s {
		if count == n {
			return s[:i], s[i:], true
		}
		count++
	}
	if count == n {
		return s, "", true
	}
	return "", "", false
}

// Slugify lower-cases s, keeps letters and digits, maps whitespace to
// hyphens and drops every other character.
func Slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('-')
		}
	}
	return b.String()
}

// parseHeader splits a post into title, subtitle and body.
//
//	# Title
//	Subtitle lines
//	---
//	Body
//
// Without a "#" line or a "---" line the whole content is the body and
// there is no subtitle.
func parseHeader(content string) (title, subtitle, body string) {
	lines := strings.Split(content, "\n")

	titleLine := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			titleLine = i
			break
		}
	}

	// Without a title there is no subtitle either
	if titleLine < 0 {
		return untitled, "", content
	}

	title = untitled
	if text := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(lines[titleLine]), "#")); text != "" {
		title = text
	}

	var subtitleParts []string
	for i := titleLine + 1; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		if line == titleSeparator {
			return title, strings.Join(subtitleParts, " "), strings.Join(lines[i+1:], "\n")
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			subtitleParts = append(subtitleParts, trimmed)
		}
	}

	return title, "", content
}
