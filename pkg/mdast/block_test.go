package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdview/pkg/mdast"
)

func TestBlock_Kind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		block mdast.Block
		kind  mdast.BlockKind
		name  string
	}{
		{mdast.Heading{Level: 1}, mdast.BlockHeading, "heading"},
		{mdast.Paragraph{}, mdast.BlockParagraph, "paragraph"},
		{mdast.CodeBlock{}, mdast.BlockCode, "code"},
		{mdast.MermaidDiagram{}, mdast.BlockMermaid, "mermaid"},
		{mdast.Blockquote{}, mdast.BlockQuote, "blockquote"},
		{mdast.UnorderedList{}, mdast.BlockUnorderedList, "unordered_list"},
		{mdast.OrderedList{}, mdast.BlockOrderedList, "ordered_list"},
		{mdast.TaskList{}, mdast.BlockTaskList, "task_list"},
		{mdast.HorizontalRule{}, mdast.BlockHorizontalRule, "horizontal_rule"},
		{mdast.Table{}, mdast.BlockTable, "table"},
		{mdast.Image{}, mdast.BlockImage, "image"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.kind, testCase.block.Kind())
			assert.Equal(t, testCase.name, testCase.block.Kind().String())
		})
	}
}

func TestTableAlignment_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "left", mdast.AlignLeft.String())
	assert.Equal(t, "center", mdast.AlignCenter.String())
	assert.Equal(t, "right", mdast.AlignRight.String())
}

func TestTableOfContents(t *testing.T) {
	t.Parallel()

	blocks := []mdast.Block{
		mdast.Heading{Level: 1, Content: mdast.InlineContent{mdast.Text("Intro")}},
		mdast.Paragraph{Content: mdast.InlineContent{mdast.Text("body")}},
		mdast.Heading{Level: 2, Content: mdast.InlineContent{
			mdast.Text("Using "), mdast.Code("mdview"), mdast.Text(" with "), mdast.Link("Go", "https://go.dev"),
		}},
		mdast.HorizontalRule{},
		mdast.Heading{Level: 3, Content: mdast.InlineContent{mdast.Bold("Notes")}},
	}

	toc := mdast.TableOfContents(blocks)
	require.Len(t, toc, 3)
	assert.Equal(t, mdast.TOCEntry{Level: 1, Text: "Intro"}, toc[0])
	assert.Equal(t, mdast.TOCEntry{Level: 2, Text: "Using mdview with Go"}, toc[1])
	assert.Equal(t, mdast.TOCEntry{Level: 3, Text: "Notes"}, toc[2])
}

func TestTableOfContents_NoHeadings(t *testing.T) {
	t.Parallel()

	toc := mdast.TableOfContents([]mdast.Block{mdast.Paragraph{}})
	assert.Empty(t, toc)
}

func TestCountKinds(t *testing.T) {
	t.Parallel()

	counts := mdast.CountKinds([]mdast.Block{
		mdast.Paragraph{}, mdast.Paragraph{}, mdast.HorizontalRule{Ordinal: 0}, mdast.HorizontalRule{Ordinal: 1},
		mdast.Table{},
	})

	assert.Equal(t, 2, counts[mdast.BlockParagraph])
	assert.Equal(t, 2, counts[mdast.BlockHorizontalRule])
	assert.Equal(t, 1, counts[mdast.BlockTable])
	assert.Zero(t, counts[mdast.BlockHeading])
}
