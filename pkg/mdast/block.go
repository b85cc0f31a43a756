// Package mdast defines the document model produced by the Markdown parser:
// an ordered sequence of immutable blocks whose text content is already
// resolved into inline segments.
package mdast

// BlockKind classifies a Block.
type BlockKind uint8

// Block kinds, one per variant of the closed Block union.
const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockCode
	BlockMermaid
	BlockQuote
	BlockUnorderedList
	BlockOrderedList
	BlockTaskList
	BlockHorizontalRule
	BlockTable
	BlockImage
)

// String returns the lowercase name of the kind, as used in JSON output.
func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockParagraph:
		return "paragraph"
	case BlockCode:
		return "code"
	case BlockMermaid:
		return "mermaid"
	case BlockQuote:
		return "blockquote"
	case BlockUnorderedList:
		return "unordered_list"
	case BlockOrderedList:
		return "ordered_list"
	case BlockTaskList:
		return "task_list"
	case BlockHorizontalRule:
		return "horizontal_rule"
	case BlockTable:
		return "table"
	case BlockImage:
		return "image"
	default:
		return "unknown"
	}
}

// Block is one structural unit of a parsed document.
// The set of implementations is closed; switch on the concrete type or on Kind.
type Block interface {
	Kind() BlockKind
	block()
}

// Heading is an ATX heading. Level is between 1 and 6.
type Heading struct {
	Level   int
	Content InlineContent
}

// Paragraph is a run of text lines joined into one inline-resolved block.
type Paragraph struct {
	Content InlineContent
}

// CodeBlock is a fenced code block. Language is empty when the fence has no tag.
type CodeBlock struct {
	Language string
	Code     string
}

// MermaidDiagram is a fenced block tagged "mermaid". It carries the same raw
// text a CodeBlock would, but hosts render it as a diagram.
type MermaidDiagram struct {
	Code string
}

// Blockquote is a run of contiguous '>' lines resolved as one inline block.
type Blockquote struct {
	Content InlineContent
}

// UnorderedList is a contiguous run of '-', '*' or '+' items.
type UnorderedList struct {
	Items []InlineContent
}

// OrderedList is a contiguous run of numbered items. Items are kept in source
// order; the printed numerals are not preserved.
type OrderedList struct {
	Items []InlineContent
}

// TaskItem is one "- [ ]" or "- [x]" entry.
type TaskItem struct {
	Checked bool
	Content InlineContent
}

// TaskList is a contiguous run of task items.
type TaskList struct {
	Items []TaskItem
}

// HorizontalRule is a thematic break. Ordinal distinguishes otherwise
// identical rules within one parse.
type HorizontalRule struct {
	Ordinal int
}

// TableAlignment is the per-column alignment taken from the separator row.
type TableAlignment uint8

// Column alignments.
const (
	AlignLeft TableAlignment = iota
	AlignCenter
	AlignRight
)

// String returns "left", "center" or "right".
func (a TableAlignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Table is a pipe table. Every row has exactly len(Headers) cells and
// Alignments has exactly len(Headers) entries.
type Table struct {
	Headers    []InlineContent
	Alignments []TableAlignment
	Rows       [][]InlineContent
	Ordinal    int
}

// Columns returns the number of columns.
func (t Table) Columns() int {
	return len(t.Headers)
}

// Image is a standalone image line, written either as ![alt](url) or as an
// HTML <img> tag.
type Image struct {
	Alt     string
	URL     string
	Ordinal int
}

// Kind implementations.

func (Heading) Kind() BlockKind        { return BlockHeading }
func (Paragraph) Kind() BlockKind      { return BlockParagraph }
func (CodeBlock) Kind() BlockKind      { return BlockCode }
func (MermaidDiagram) Kind() BlockKind { return BlockMermaid }
func (Blockquote) Kind() BlockKind     { return BlockQuote }
func (UnorderedList) Kind() BlockKind  { return BlockUnorderedList }
func (OrderedList) Kind() BlockKind    { return BlockOrderedList }
func (TaskList) Kind() BlockKind       { return BlockTaskList }
func (HorizontalRule) Kind() BlockKind { return BlockHorizontalRule }
func (Table) Kind() BlockKind          { return BlockTable }
func (Image) Kind() BlockKind          { return BlockImage }

func (Heading) block()        {}
func (Paragraph) block()      {}
func (CodeBlock) block()      {}
func (MermaidDiagram) block() {}
func (Blockquote) block()     {}
func (UnorderedList) block()  {}
func (OrderedList) block()    {}
func (TaskList) block()       {}
func (HorizontalRule) block() {}
func (Table) block()          {}
func (Image) block()          {}
