package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdview/internal/ui/pretty"
	"github.com/yaklabco/mdview/pkg/runner"
)

// TextReporter prints one outline line per block, grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to parse."))
		}
		return 0, nil
	}

	for i, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return i, fmt.Errorf("report cancelled: %w", err)
		}
		if i > 0 {
			fmt.Fprintln(r.bw)
		}

		path := pretty.DisplayPath(file.Path, r.opts.WorkingDir)
		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error))
			continue
		}

		fmt.Fprint(r.bw, r.styles.FormatFileHeader(path, len(file.Blocks), file.Cached))
		for idx, block := range file.Blocks {
			fmt.Fprint(r.bw, r.styles.FormatBlockLine(idx+1, block))
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return len(result.Files), nil
}
