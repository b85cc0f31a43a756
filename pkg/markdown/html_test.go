package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdview/pkg/markdown"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no html", "plain", "plain"},
		{"comment", "a<!-- hidden -->b", "ab"},
		{"tags", "<b>bold</b> and <br/>", "bold and "},
		{"attributes", `<a href="x">link</a>`, "link"},
		{"code span kept", "use `<div>` here <span>x</span>", "use `<div>` here x"},
		{"comparison kept", "a < b and c > d", "a < b and c > d"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, markdown.StripHTML(testCase.input))
		})
	}
}

func TestIsHTMLOnly(t *testing.T) {
	t.Parallel()

	assert.True(t, markdown.IsHTMLOnly("<div align=\"center\">"))
	assert.True(t, markdown.IsHTMLOnly("  </details>  "))
	assert.True(t, markdown.IsHTMLOnly("<!-- note -->"))
	assert.False(t, markdown.IsHTMLOnly("<b>text</b>"))
	assert.False(t, markdown.IsHTMLOnly(""))
	assert.False(t, markdown.IsHTMLOnly("plain"))
}

func TestIsHTMLDocument(t *testing.T) {
	t.Parallel()

	assert.True(t, markdown.IsHTMLDocument("<!DOCTYPE html>\n<html></html>"))
	assert.True(t, markdown.IsHTMLDocument("\n  <html lang=\"en\">"))
	assert.False(t, markdown.IsHTMLDocument("# Title\n\n<html>"))
	assert.False(t, markdown.IsHTMLDocument("<htmlish>"))
}
