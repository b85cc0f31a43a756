package markdown

import (
	"strings"

	"github.com/yaklabco/mdview/pkg/mdast"
)

// ParseTable parses a pipe table whose header row is lines[start] and whose
// alignment separator is lines[start+1]. It consumes the contiguous '|' rows
// that follow and returns the first unconsumed index.
//
// Rows are padded with empty cells or truncated so that every row has as many
// cells as the header. Separator rows inside the body are skipped.
// The returned table's Ordinal is left for the caller to assign.
func ParseTable(lines []string, start int) (mdast.Table, int, bool) {
	if !IsTableStart(lines, start) {
		return mdast.Table{}, start, false
	}

	headerCells := splitTableRow(strings.TrimSpace(lines[start]))
	columns := len(headerCells)

	table := mdast.Table{
		Headers:    parseCells(headerCells, columns),
		Alignments: parseTableAlignment(splitTableRow(strings.TrimSpace(lines[start+1])), columns),
	}

	idx := start + 2
	for idx < len(lines) {
		line := strings.TrimSpace(lines[idx])
		if !isTableRow(line) {
			break
		}
		idx++
		if IsTableSeparator(line) {
			continue
		}
		table.Rows = append(table.Rows, parseCells(splitTableRow(line), columns))
	}

	return table, idx, true
}

// IsTableStart reports whether lines[index] is a '|' row followed by a valid
// alignment separator.
func IsTableStart(lines []string, index int) bool {
	if index < 0 || index+1 >= len(lines) {
		return false
	}
	return isTableRow(strings.TrimSpace(lines[index])) &&
		IsTableSeparator(strings.TrimSpace(lines[index+1]))
}

// IsTableSeparator reports whether line is an alignment separator row such as
// "|---|:-:|--:|". Only pipes, dashes, colons and whitespace may appear and at
// least one dash is required.
func IsTableSeparator(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.Contains(trimmed, "-") {
		return false
	}
	for _, r := range trimmed {
		switch r {
		case '|', '-', ':', ' ', '\t':
		default:
			return false
		}
	}
	return true
}

func isTableRow(trimmed string) bool {
	return strings.HasPrefix(trimmed, "|")
}

func parseCells(cells []string, columns int) []mdast.InlineContent {
	row := make([]mdast.InlineContent, columns)
	for i := 0; i < columns && i < len(cells); i++ {
		row[i] = ParseInline(cells[i])
	}
	return row
}

func parseTableAlignment(parts []string, columns int) []mdast.TableAlignment {
	align := make([]mdast.TableAlignment, columns)
	for i := 0; i < columns && i < len(parts); i++ {
		part := strings.TrimSpace(parts[i])
		left := strings.HasPrefix(part, ":")
		right := len(part) > 1 && strings.HasSuffix(part, ":")
		switch {
		case left && right:
			align[i] = mdast.AlignCenter
		case right:
			align[i] = mdast.AlignRight
		default:
			align[i] = mdast.AlignLeft
		}
	}
	return align
}

// splitTableRow splits a trimmed row into trimmed cells, dropping one
// leading and one trailing border pipe.
func splitTableRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	if strings.HasSuffix(line, "|") && !strings.HasSuffix(line, `\|`) {
		line = strings.TrimSuffix(line, "|")
	}
	parts := splitPipes(line)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// splitPipes splits on '|' outside code spans. An escaped "\|" becomes a
// literal pipe; other backslashes are kept for the inline resolver. A
// backtick run with no matching closer does not open a span.
func splitPipes(line string) []string {
	var parts []string
	var buf strings.Builder
	backticks := 0
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '\\' && i+1 < len(line) && line[i+1] == '|':
			buf.WriteByte('|')
			i++
			continue
		case ch == '`':
			run := countRepeat(line[i:], '`')
			switch {
			case backticks == 0 && strings.Contains(line[i+run:], line[i:i+run]):
				backticks = run
			case run == backticks:
				backticks = 0
			}
			buf.WriteString(line[i : i+run])
			i += run - 1
			continue
		case ch == '|' && backticks == 0:
			parts = append(parts, buf.String())
			buf.Reset()
			continue
		}
		buf.WriteByte(ch)
	}
	parts = append(parts, buf.String())
	return parts
}

func countRepeat(s string, ch byte) int {
	n := 0
	for n < len(s) && s[n] == ch {
		n++
	}
	return n
}
