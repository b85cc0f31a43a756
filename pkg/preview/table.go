package preview

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/mdview/pkg/mdast"
)

// minColumnWidth is the narrowest a column is shrunk to when a table does
// not fit the render width.
const minColumnWidth = 3

func (r *Renderer) renderTable(table mdast.Table) string {
	columns := table.Columns()
	if columns == 0 {
		return ""
	}

	header := make([]inlineText, columns)
	for i, cell := range table.Headers {
		header[i] = r.inline(cell)
	}
	rows := make([][]inlineText, len(table.Rows))
	for i, row := range table.Rows {
		rows[i] = make([]inlineText, columns)
		for j := 0; j < columns && j < len(row); j++ {
			rows[i][j] = r.inline(row[j])
		}
	}

	widths := columnWidths(header, rows)
	fitColumns(widths, r.width-(3*columns+1))

	border := func(left, mid, right string) string {
		parts := make([]string, columns)
		for i, width := range widths {
			parts[i] = strings.Repeat("─", width+2)
		}
		return r.styles.tableBorder.Render(left + strings.Join(parts, mid) + right)
	}

	lines := []string{
		border("┌", "┬", "┐"),
		r.tableRow(header, widths, table.Alignments, true),
		border("├", "┼", "┤"),
	}
	for _, row := range rows {
		lines = append(lines, r.tableRow(row, widths, table.Alignments, false))
	}
	lines = append(lines, border("└", "┴", "┘"))
	return strings.Join(lines, "\n")
}

func (r *Renderer) tableRow(cells []inlineText, widths []int, alignments []mdast.TableAlignment, header bool) string {
	bar := r.styles.tableBorder.Render("│")
	var b strings.Builder
	b.WriteString(bar)
	for i, cell := range cells {
		alignment := mdast.AlignLeft
		if i < len(alignments) {
			alignment = alignments[i]
		}

		plain, text := cell.plain, cell.styled
		if displayWidth(plain) > widths[i] {
			plain = runewidth.Truncate(plain, widths[i], "…")
			text = plain
		}
		if header {
			text = r.styles.tableHeader.Render(plain)
		}
		width := displayWidth(plain)

		b.WriteByte(' ')
		b.WriteString(align(text, widths[i]-width, alignment))
		b.WriteByte(' ')
		b.WriteString(bar)
	}
	return b.String()
}

// align pads text with free columns of spaces according to alignment.
func align(text string, free int, alignment mdast.TableAlignment) string {
	if free <= 0 {
		return text
	}
	switch alignment {
	case mdast.AlignRight:
		return strings.Repeat(" ", free) + text
	case mdast.AlignCenter:
		left := free / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", free-left)
	default:
		return text + strings.Repeat(" ", free)
	}
}

func columnWidths(header []inlineText, rows [][]inlineText) []int {
	widths := make([]int, len(header))
	for i, cell := range header {
		widths[i] = max(displayWidth(cell.plain), minColumnWidth)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], displayWidth(cell.plain))
		}
	}
	return widths
}

// fitColumns narrows the widest columns one column at a time until their
// sum fits available or every column is at minColumnWidth.
func fitColumns(widths []int, available int) {
	total := 0
	for _, width := range widths {
		total += width
	}
	for total > available {
		widest := 0
		for i, width := range widths {
			if width > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColumnWidth {
			return
		}
		widths[widest]--
		total--
	}
}
