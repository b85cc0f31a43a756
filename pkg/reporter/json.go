package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdview/internal/ui/pretty"
	"github.com/yaklabco/mdview/pkg/mdast"
	"github.com/yaklabco/mdview/pkg/runner"
)

// jsonVersion is bumped when the output shape changes incompatibly.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string      `json:"version"`
	Files   []JSONFile  `json:"files"`
	Summary JSONSummary `json:"summary"`
}

// JSONFile represents a single file's parse.
type JSONFile struct {
	Path   string      `json:"path"`
	Digest string      `json:"digest,omitempty"`
	Cached bool        `json:"cached,omitempty"`
	Blocks []JSONBlock `json:"blocks"`
	Error  string      `json:"error,omitempty"`
}

// JSONSegment is one inline segment.
type JSONSegment struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

// JSONTask is one task list entry.
type JSONTask struct {
	Checked bool          `json:"checked"`
	Content []JSONSegment `json:"content"`
}

// JSONBlock is one block. Only the fields of its kind are populated.
type JSONBlock struct {
	Kind       string            `json:"kind"`
	Level      int               `json:"level,omitempty"`
	Content    []JSONSegment     `json:"content,omitempty"`
	Language   string            `json:"language,omitempty"`
	Code       *string           `json:"code,omitempty"`
	Items      [][]JSONSegment   `json:"items,omitempty"`
	Tasks      []JSONTask        `json:"tasks,omitempty"`
	Headers    [][]JSONSegment   `json:"headers,omitempty"`
	Alignments []string          `json:"alignments,omitempty"`
	Rows       [][][]JSONSegment `json:"rows,omitempty"`
	Alt        string            `json:"alt,omitempty"`
	URL        string            `json:"url,omitempty"`
	Ordinal    int               `json:"ordinal,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesParsed  int            `json:"filesParsed"`
	FilesErrored int            `json:"filesErrored"`
	CacheHits    int            `json:"cacheHits"`
	Blocks       int            `json:"blocks"`
	ByKind       map[string]int `json:"byKind"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return len(output.Files), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFile, 0),
		Summary: JSONSummary{ByKind: make(map[string]int)},
	}
	if result == nil {
		return output
	}

	for _, file := range result.Files {
		entry := JSONFile{
			Path:   pretty.DisplayPath(file.Path, r.opts.WorkingDir),
			Digest: file.Digest,
			Cached: file.Cached,
			Blocks: EncodeBlocks(file.Blocks),
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
		}
		output.Files = append(output.Files, entry)
	}

	output.Summary.FilesParsed = result.Stats.FilesProcessed
	output.Summary.FilesErrored = result.Stats.FilesErrored
	output.Summary.CacheHits = result.Stats.CacheHits
	output.Summary.Blocks = result.Stats.BlocksTotal
	for kind, n := range result.Stats.BlocksByKind {
		output.Summary.ByKind[kind] = n
	}

	return output
}

// EncodeBlocks converts a parsed document into its JSON form. The result is
// never nil so an empty document encodes as [].
func EncodeBlocks(blocks []mdast.Block) []JSONBlock {
	out := make([]JSONBlock, 0, len(blocks))
	for _, block := range blocks {
		out = append(out, encodeBlock(block))
	}
	return out
}

func encodeBlock(block mdast.Block) JSONBlock {
	out := JSONBlock{Kind: block.Kind().String()}

	switch b := block.(type) {
	case mdast.Heading:
		out.Level = b.Level
		out.Content = encodeInline(b.Content)
	case mdast.Paragraph:
		out.Content = encodeInline(b.Content)
	case mdast.Blockquote:
		out.Content = encodeInline(b.Content)
	case mdast.CodeBlock:
		out.Language = b.Language
		out.Code = &b.Code
	case mdast.MermaidDiagram:
		out.Code = &b.Code
	case mdast.UnorderedList:
		out.Items = encodeItems(b.Items)
	case mdast.OrderedList:
		out.Items = encodeItems(b.Items)
	case mdast.TaskList:
		out.Tasks = make([]JSONTask, 0, len(b.Items))
		for _, item := range b.Items {
			out.Tasks = append(out.Tasks, JSONTask{Checked: item.Checked, Content: encodeInline(item.Content)})
		}
	case mdast.HorizontalRule:
		out.Ordinal = b.Ordinal
	case mdast.Table:
		out.Headers = encodeItems(b.Headers)
		for _, align := range b.Alignments {
			out.Alignments = append(out.Alignments, align.String())
		}
		for _, row := range b.Rows {
			out.Rows = append(out.Rows, encodeItems(row))
		}
		out.Ordinal = b.Ordinal
	case mdast.Image:
		out.Alt = b.Alt
		out.URL = b.URL
		out.Ordinal = b.Ordinal
	}

	return out
}

func encodeItems(items []mdast.InlineContent) [][]JSONSegment {
	out := make([][]JSONSegment, 0, len(items))
	for _, item := range items {
		out = append(out, encodeInline(item))
	}
	return out
}

func encodeInline(content mdast.InlineContent) []JSONSegment {
	out := make([]JSONSegment, 0, len(content))
	for _, seg := range content {
		out = append(out, JSONSegment{Kind: seg.Kind.String(), Text: seg.Text, URL: seg.URL})
	}
	return out
}
