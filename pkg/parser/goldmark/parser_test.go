package goldmark_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdview/pkg/mdast"
	"github.com/yaklabco/mdview/pkg/parser/goldmark"
)

func TestNew_Flavor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		flavor   string
		expected string
	}{
		{goldmark.FlavorCommonMark, goldmark.FlavorCommonMark},
		{goldmark.FlavorGFM, goldmark.FlavorGFM},
		{"", goldmark.FlavorGFM},
		{"unknown", goldmark.FlavorGFM},
	}

	for _, testCase := range tests {
		t.Run(testCase.flavor, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, goldmark.New(testCase.flavor).Flavor())
		})
	}
}

func TestParser_Outline(t *testing.T) {
	t.Parallel()

	content := []byte("# Title\n\nText with `code`.\n\n## Sub `x`\n\n```go\nfunc f() {}\n```\n\n" +
		"```mermaid\ngraph TD\n```\n\n> quote\n\n- a\n- b\n\n1. one\n\n- [ ] task\n\n---\n\n" +
		"| h |\n|---|\n| c |\n\n![alt](img.png)\n")

	outline, err := goldmark.New(goldmark.FlavorGFM).Outline(context.Background(), content)
	require.NoError(t, err)

	assert.Equal(t, []mdast.BlockKind{
		mdast.BlockHeading,
		mdast.BlockParagraph,
		mdast.BlockHeading,
		mdast.BlockCode,
		mdast.BlockMermaid,
		mdast.BlockQuote,
		mdast.BlockUnorderedList,
		mdast.BlockOrderedList,
		mdast.BlockTaskList,
		mdast.BlockHorizontalRule,
		mdast.BlockTable,
		mdast.BlockImage,
	}, outline.Kinds)

	assert.Equal(t, []mdast.TOCEntry{
		{Level: 1, Text: "Title"},
		{Level: 2, Text: "Sub x"},
	}, outline.Headings)
	assert.Equal(t, 2, outline.Count(mdast.BlockHeading))
	assert.Zero(t, outline.Count(mdast.BlockTable+100))
}

func TestParser_Outline_CommonMarkHasNoTables(t *testing.T) {
	t.Parallel()

	outline, err := goldmark.New(goldmark.FlavorCommonMark).Outline(context.Background(),
		[]byte("| h |\n|---|\n| c |\n"))
	require.NoError(t, err)
	assert.Zero(t, outline.Count(mdast.BlockTable))
}

func TestParser_Outline_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := goldmark.New(goldmark.FlavorGFM).Outline(ctx, []byte("# x"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestCompare(t *testing.T) {
	t.Parallel()

	reference := goldmark.Outline{Kinds: []mdast.BlockKind{
		mdast.BlockHeading, mdast.BlockParagraph, mdast.BlockCode, mdast.BlockCode,
	}}

	blocks := []mdast.Block{
		mdast.Heading{Level: 1},
		mdast.Paragraph{},
		mdast.Paragraph{},
		mdast.CodeBlock{},
		mdast.HorizontalRule{},
	}

	mismatches := goldmark.Compare(reference, blocks)
	require.Len(t, mismatches, 2)
	assert.Equal(t, goldmark.Mismatch{Kind: mdast.BlockCode, Reference: 2, Parsed: 1}, mismatches[0])
	assert.Equal(t, goldmark.Mismatch{Kind: mdast.BlockHorizontalRule, Reference: 0, Parsed: 1}, mismatches[1])
	assert.Equal(t, "code: goldmark found 2, mdview found 1", mismatches[0].String())
}
