package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdview/pkg/markdown"
	"github.com/yaklabco/mdview/pkg/mdast"
)

func cells(texts ...string) []mdast.InlineContent {
	row := make([]mdast.InlineContent, len(texts))
	for i, text := range texts {
		row[i] = markdown.ParseInline(text)
	}
	return row
}

func TestParseTable(t *testing.T) {
	t.Parallel()

	lines := []string{
		"| A | B |",
		"|---|---:|",
		"| 1 | 2 |",
		"after",
	}

	table, end, ok := markdown.ParseTable(lines, 0)
	require.True(t, ok)
	assert.Equal(t, 3, end)
	assert.Equal(t, cells("A", "B"), table.Headers)
	assert.Equal(t, []mdast.TableAlignment{mdast.AlignLeft, mdast.AlignRight}, table.Alignments)
	assert.Equal(t, [][]mdast.InlineContent{cells("1", "2")}, table.Rows)
}

func TestParseTable_Alignments(t *testing.T) {
	t.Parallel()

	lines := []string{
		"| a | b | c | d |",
		"| :--- | :---: | ---: | --- |",
	}

	table, _, ok := markdown.ParseTable(lines, 0)
	require.True(t, ok)
	assert.Equal(t, []mdast.TableAlignment{
		mdast.AlignLeft, mdast.AlignCenter, mdast.AlignRight, mdast.AlignLeft,
	}, table.Alignments)
	assert.Empty(t, table.Rows)
}

func TestParseTable_AlignmentsPaddedToHeader(t *testing.T) {
	t.Parallel()

	table, _, ok := markdown.ParseTable([]string{"| a | b | c |", "|:-:|"}, 0)
	require.True(t, ok)
	assert.Equal(t, []mdast.TableAlignment{mdast.AlignCenter, mdast.AlignLeft, mdast.AlignLeft}, table.Alignments)

	table, _, ok = markdown.ParseTable([]string{"| a |", "|---|--:|:-:|"}, 0)
	require.True(t, ok)
	assert.Len(t, table.Alignments, 1)
}

func TestParseTable_RowsNormalized(t *testing.T) {
	t.Parallel()

	lines := []string{
		"| h1 | h2 | h3 |",
		"|----|----|----|",
		"| only |",
		"| a | b | c | d | e |",
		"|----|----|----|",
		"| x | y | z |",
	}

	table, end, ok := markdown.ParseTable(lines, 0)
	require.True(t, ok)
	assert.Equal(t, len(lines), end)
	require.Len(t, table.Rows, 3, "the repeated separator row is skipped")

	for i, row := range table.Rows {
		assert.Len(t, row, table.Columns(), "row %d", i)
	}
	assert.Equal(t, cells("only", "", ""), table.Rows[0])
	assert.Equal(t, cells("a", "b", "c"), table.Rows[1])
	assert.Equal(t, cells("x", "y", "z"), table.Rows[2])
}

func TestParseTable_CellSplitting(t *testing.T) {
	t.Parallel()

	lines := []string{
		"| expr | note |",
		"|---|---|",
		"| `a | b` | escaped \\| pipe |",
		"| **bold** | [link](u) |",
	}

	table, _, ok := markdown.ParseTable(lines, 0)
	require.True(t, ok)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, mdast.InlineContent{mdast.Code("a | b")}, table.Rows[0][0])
	assert.Equal(t, mdast.InlineContent{mdast.Text("escaped | pipe")}, table.Rows[0][1])
	assert.Equal(t, mdast.InlineContent{mdast.Bold("bold")}, table.Rows[1][0])
	assert.Equal(t, mdast.InlineContent{mdast.Link("link", "u")}, table.Rows[1][1])
}

func TestParseTable_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
	}{
		{"no separator", []string{"| a | b |", "| 1 | 2 |"}},
		{"last line", []string{"| a | b |"}},
		{"separator without dash", []string{"| a |", "| :: |"}},
		{"separator with text", []string{"| a |", "| -x- |"}},
		{"header without pipe", []string{"a | b", "|---|---|"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, end, ok := markdown.ParseTable(testCase.lines, 0)
			assert.False(t, ok)
			assert.Zero(t, end)
		})
	}
}

func TestIsTableSeparator(t *testing.T) {
	t.Parallel()

	assert.True(t, markdown.IsTableSeparator("|---|---|"))
	assert.True(t, markdown.IsTableSeparator("| :--- | ---: |"))
	assert.True(t, markdown.IsTableSeparator("--- | ---"))
	assert.False(t, markdown.IsTableSeparator("| a | b |"))
	assert.False(t, markdown.IsTableSeparator("|   |"))
	assert.False(t, markdown.IsTableSeparator(""))
}
