package pretty

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/mdview/pkg/mdast"
	"github.com/yaklabco/mdview/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	numberWidth      = 6
	statusWidth      = 6
	minFileWidth     = 12
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow is one file in the statistics table.
type TableRow struct {
	File     string
	Blocks   int
	Headings int
	Code     int
	Tables   int
	Status   string
	Failed   bool
}

// TableFormatter formats per-file parse statistics as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// Rows converts runner outcomes into table rows. Paths are shown relative
// to workDir when possible.
func Rows(result *runner.Result, workDir string) []TableRow {
	if result == nil {
		return nil
	}

	rows := make([]TableRow, 0, len(result.Files))
	for _, file := range result.Files {
		row := TableRow{File: DisplayPath(file.Path, workDir)}
		switch {
		case file.Error != nil:
			row.Status = "error"
			row.Failed = true
		case file.Cached:
			row.Status = "cached"
		default:
			row.Status = "parsed"
		}

		counts := mdast.CountKinds(file.Blocks)
		row.Blocks = len(file.Blocks)
		row.Headings = counts[mdast.BlockHeading]
		row.Code = counts[mdast.BlockCode] + counts[mdast.BlockMermaid]
		row.Tables = counts[mdast.BlockTable]
		rows = append(rows, row)
	}
	return rows
}

// FormatTable formats rows with a header, separators and a totals line.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	fileWidth := t.fileColumnWidth(rows)
	totalWidth := fileWidth + 4*numberWidth + statusWidth + tablePadding*6

	var builder strings.Builder

	header := " " + runewidth.FillRight("FILE", fileWidth) + "  " +
		padLeft("BLOCKS", numberWidth) + "  " +
		padLeft("HEAD", numberWidth) + "  " +
		padLeft("CODE", numberWidth) + "  " +
		padLeft("TABLES", numberWidth) + "  " +
		runewidth.FillRight("STATUS", statusWidth)
	builder.WriteString(t.styles.TableHeader.Render(header) + "\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, totalWidth)) + "\n")

	var total TableRow
	for _, row := range rows {
		builder.WriteString(t.formatRow(row, fileWidth) + "\n")
		total.Blocks += row.Blocks
		total.Headings += row.Headings
		total.Code += row.Code
		total.Tables += row.Tables
	}

	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, totalWidth)) + "\n")
	total.File = plural(len(rows), "file")
	builder.WriteString(t.styles.Bold.Render(t.cells(total, fileWidth)) + "\n")

	return builder.String()
}

func (t *TableFormatter) formatRow(row TableRow, fileWidth int) string {
	content := t.cells(row, fileWidth)
	status := runewidth.FillRight(row.Status, statusWidth)

	switch {
	case row.Failed:
		return t.styles.TableErrorRow.Render(content + "  " + status)
	case row.Status == "cached":
		return content + "  " + t.styles.TableCached.Render(status)
	default:
		return content + "  " + status
	}
}

func (t *TableFormatter) cells(row TableRow, fileWidth int) string {
	file := row.File
	if runewidth.StringWidth(file) > fileWidth {
		file = runewidth.TruncateLeft(file, runewidth.StringWidth(file)-fileWidth+1, ellipsis)
	}
	return " " + runewidth.FillRight(file, fileWidth) + "  " +
		padLeft(strconv.Itoa(row.Blocks), numberWidth) + "  " +
		padLeft(strconv.Itoa(row.Headings), numberWidth) + "  " +
		padLeft(strconv.Itoa(row.Code), numberWidth) + "  " +
		padLeft(strconv.Itoa(row.Tables), numberWidth)
}

// fileColumnWidth fits the widest path, shrinking it to the terminal width.
func (t *TableFormatter) fileColumnWidth(rows []TableRow) int {
	width := minFileWidth
	for _, row := range rows {
		width = max(width, runewidth.StringWidth(row.File))
	}
	available := t.termWidth - (4*numberWidth + statusWidth + tablePadding*6)
	return max(minFileWidth, min(width, available))
}

func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

// DisplayPath returns path relative to workDir, or path unchanged when it
// lies outside workDir or workDir is empty.
func DisplayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
