package forms

import (
	"regexp"
	"strings"
)

// Service rich-text fields (features, technologies, benefits, customers)
// are persisted either as an HTML blob or as a string array that renders as
// an unordered list. Both directions of that conversion live here.

var liPattern = regexp.MustCompile(`(?s)<li[^>]*>(.*?)</li>`)

// ArrayToHTMLList renders non-blank items as a <ul> list. An all-blank
// input renders to the empty string, not an empty list element.
func ArrayToHTMLList(items []string) string {
	filled := filledRows(items)
	if len(filled) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<ul>")
	for _, it := range filled {
		b.WriteString("<li>")
		b.WriteString(strings.TrimSpace(it))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// HTMLListToArray extracts list items back into editable rows. A blob
// without <li> tags comes back as a single row; blank input yields one
// empty slot for the form to bind to.
func HTMLListToArray(html string) []string {
	s := strings.TrimSpace(html)
	if s == "" {
		return []string{""}
	}
	matches := liPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return []string{s}
	}
	rows := make([]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, strings.TrimSpace(m[1]))
	}
	return rows
}

// ParseRichText normalizes a persisted rich-text field to its HTML form.
// Arrays (either persisted shape or form submissions) become a <ul> list;
// strings pass through untouched, which makes the function idempotent.
func ParseRichText(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		if items, ok := asSlice(raw); ok {
			rows := make([]string, 0, len(items))
			for _, it := range items {
				rows = append(rows, asString(it))
			}
			return ArrayToHTMLList(rows)
		}
		return ""
	}
}
