package reporter

import (
	"bufio"
	"context"
	"fmt"

	"golang.org/x/term"

	"github.com/yaklabco/mdview/internal/ui/pretty"
	"github.com/yaklabco/mdview/pkg/runner"
)

// SummaryReporter prints a per-file table of block counts.
type SummaryReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	width := opts.TermWidth
	if width <= 0 {
		width = terminalWidth(opts)
	}

	return &SummaryReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, width),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to parse."))
		return 0, nil
	}

	fmt.Fprint(r.bw, r.formatter.FormatTable(pretty.Rows(result, r.opts.WorkingDir)))
	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	}

	return len(result.Files), nil
}

// terminalWidth returns the width of the terminal behind the writer, or 0
// when the writer is not a terminal.
func terminalWidth(opts Options) int {
	type fder interface{ Fd() uintptr }
	f, ok := opts.Writer.(fder)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
	if err != nil {
		return 0
	}
	return width
}
