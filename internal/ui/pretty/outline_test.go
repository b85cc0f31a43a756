package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdview/internal/ui/pretty"
	"github.com/yaklabco/mdview/pkg/mdast"
)

func TestDescribeBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		block    mdast.Block
		expected string
	}{
		{
			name:     "heading",
			block:    mdast.Heading{Level: 2, Content: mdast.InlineContent{mdast.Text("Install "), mdast.Code("mdview")}},
			expected: "h2 Install mdview",
		},
		{
			name:     "paragraph collapses whitespace",
			block:    mdast.Paragraph{Content: mdast.InlineContent{mdast.Text("one\n  two"), mdast.Bold(" three")}},
			expected: "one two three",
		},
		{
			name:     "long paragraph is truncated",
			block:    mdast.Paragraph{Content: mdast.InlineContent{mdast.Text(strings.Repeat("word ", 20))}},
			expected: strings.TrimSpace(strings.Repeat("word ", 12))[:59] + "…",
		},
		{
			name:     "tagged code",
			block:    mdast.CodeBlock{Language: "go", Code: "a\nb\nc"},
			expected: "[go] 3 lines",
		},
		{
			name:     "untagged code",
			block:    mdast.CodeBlock{Code: "x"},
			expected: "[-] 1 line",
		},
		{
			name:     "mermaid",
			block:    mdast.MermaidDiagram{Code: "graph TD\nA-->B\n"},
			expected: "2 lines",
		},
		{
			name:     "task list",
			block:    mdast.TaskList{Items: []mdast.TaskItem{{Checked: true}, {}, {Checked: true}}},
			expected: "3 items, 2 done",
		},
		{
			name:     "ordered list",
			block:    mdast.OrderedList{Items: []mdast.InlineContent{{mdast.Text("a")}}},
			expected: "1 item",
		},
		{
			name: "table",
			block: mdast.Table{
				Headers:    []mdast.InlineContent{{mdast.Text("A")}, {mdast.Text("B")}},
				Alignments: []mdast.TableAlignment{mdast.AlignLeft, mdast.AlignRight},
				Rows:       [][]mdast.InlineContent{{{mdast.Text("1")}, {mdast.Text("2")}}},
			},
			expected: "2 columns × 1 row",
		},
		{
			name:     "rule",
			block:    mdast.HorizontalRule{Ordinal: 3},
			expected: "#3",
		},
		{
			name:     "image with alt",
			block:    mdast.Image{Alt: "logo", URL: "logo.png"},
			expected: "logo (logo.png)",
		},
		{
			name:     "image without alt",
			block:    mdast.Image{URL: "logo.png"},
			expected: "logo.png",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, pretty.DescribeBlock(testCase.block))
		})
	}
}

func TestFormatBlockLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	line := styles.FormatBlockLine(7, mdast.CodeBlock{Language: "python", Code: "print(1)"})
	assert.Equal(t, "    7  code             [python] 1 line\n", line)

	line = styles.FormatBlockLine(12, mdast.Heading{Level: 1, Content: mdast.InlineContent{mdast.Text("Title")}})
	assert.Equal(t, "   12  heading          h1 Title\n", line)
}

func TestFormatFileHeaderAndError(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "README.md (4 blocks)\n", styles.FormatFileHeader("README.md", 4, false))
	assert.Equal(t, "a.md (1 block, cached)\n", styles.FormatFileHeader("a.md", 1, true))
	assert.Equal(t, "b.md: error: boom\n", styles.FormatFileError("b.md", errors.New("boom")))
}

func TestFormatTOCEntry(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "- Title\n", styles.FormatTOCEntry(mdast.TOCEntry{Level: 1, Text: "Title"}))
	assert.Equal(t, "    - Deep\n", styles.FormatTOCEntry(mdast.TOCEntry{Level: 3, Text: "Deep"}))
}
