package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/mdview/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Parsed 3 files, 12 blocks (1 cached), 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesProcessed == 0 && stats.FilesErrored == 0 {
		return s.Dim.Render("No files parsed") + "\n"
	}

	parts := []string{
		s.Success.Render("Parsed "+plural(stats.FilesProcessed, "file")) + ", " + plural(stats.BlocksTotal, "block"),
	}
	if stats.CacheHits > 0 {
		parts[0] += s.Dim.Render(fmt.Sprintf(" (%d cached)", stats.CacheHits))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block with per-kind
// block counts in a stable order.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files parsed:      " + s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")
	if stats.CacheHits > 0 {
		builder.WriteString("  From cache:        " + s.SummaryValue.Render(strconv.Itoa(stats.CacheHits)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " + s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Total blocks:      " + s.SummaryValue.Render(strconv.Itoa(stats.BlocksTotal)) + "\n")

	kinds := make([]string, 0, len(stats.BlocksByKind))
	for kind := range stats.BlocksByKind {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	for _, kind := range kinds {
		label := fmt.Sprintf("    %-16s ", kind+":")
		builder.WriteString(label + s.SummaryValue.Render(strconv.Itoa(stats.BlocksByKind[kind])) + "\n")
	}

	builder.WriteString("\n")
	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Some files could not be read"))
	} else {
		builder.WriteString(s.Success.Render("All files parsed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
