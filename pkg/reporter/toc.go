package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdview/internal/ui/pretty"
	"github.com/yaklabco/mdview/pkg/mdast"
	"github.com/yaklabco/mdview/pkg/runner"
)

// TOCReporter prints the heading outline of each file.
type TOCReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTOCReporter creates a new table-of-contents reporter.
func NewTOCReporter(opts Options) *TOCReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TOCReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. A single file is printed without a path
// header.
func (r *TOCReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		return 0, nil
	}

	single := len(result.Files) == 1
	for i, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return i, fmt.Errorf("report cancelled: %w", err)
		}

		path := pretty.DisplayPath(file.Path, r.opts.WorkingDir)
		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error))
			continue
		}

		if !single {
			if i > 0 {
				fmt.Fprintln(r.bw)
			}
			fmt.Fprintln(r.bw, r.styles.FilePath.Render(path))
		}
		r.writeEntries(mdast.TableOfContents(file.Blocks))
	}

	return len(result.Files), nil
}

func (r *TOCReporter) writeEntries(entries []mdast.TOCEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("(no headings)"))
		return
	}
	for _, entry := range entries {
		fmt.Fprint(r.bw, r.styles.FormatTOCEntry(entry))
	}
}

// WriteTOC writes the outline of blocks to the reporter's writer. It is used
// by commands that parse a single document without a runner.
func (r *TOCReporter) WriteTOC(blocks []mdast.Block) error {
	r.writeEntries(mdast.TableOfContents(blocks))
	if err := r.bw.Flush(); err != nil {
		return fmt.Errorf("write toc: %w", err)
	}
	return nil
}
