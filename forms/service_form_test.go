package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArrayToHTMLList(t *testing.T) {
	assert.Equal(t, "<ul><li>Cắt laser</li><li>Chấn gấp</li></ul>",
		ArrayToHTMLList([]string{"Cắt laser", " Chấn gấp "}))
	assert.Equal(t, "", ArrayToHTMLList(nil))
	assert.Equal(t, "", ArrayToHTMLList([]string{"", "   "}))
}

func TestHTMLListToArray(t *testing.T) {
	assert.Equal(t, []string{"Cắt laser", "Chấn gấp"},
		HTMLListToArray(`<ul><li>Cắt laser</li><li> Chấn gấp </li></ul>`))

	// attributes and newlines inside items survive extraction
	assert.Equal(t, []string{"one", "two\nlines"},
		HTMLListToArray("<ul><li class=\"x\">one</li><li>two\nlines</li></ul>"))

	// a blob without list items comes back as a single row
	assert.Equal(t, []string{"<p>free text</p>"}, HTMLListToArray("<p>free text</p>"))

	// blank input yields one empty slot for the form to bind to
	assert.Equal(t, []string{""}, HTMLListToArray("   "))
}

func TestRichTextRoundTrip(t *testing.T) {
	rows := []string{"TIG welding", "Powder coating"}
	assert.Equal(t, rows, HTMLListToArray(ArrayToHTMLList(rows)))
}

func TestParseRichText(t *testing.T) {
	// strings pass through untouched, so the call is idempotent
	html := "<ul><li>a</li></ul>"
	assert.Equal(t, html, ParseRichText(html))
	assert.Equal(t, html, ParseRichText(ParseRichText(html)))

	assert.Equal(t, "", ParseRichText(nil))
	assert.Equal(t, "<ul><li>a</li><li>b</li></ul>", ParseRichText([]any{"a", "b"}))
	assert.Equal(t, "<ul><li>a</li></ul>", ParseRichText([]string{"a", ""}))
	assert.Equal(t, "", ParseRichText(42))
}
