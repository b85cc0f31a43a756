package goldmark

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdview/pkg/mdast"
)

// Outline is the top-level block structure of a document as goldmark sees it.
type Outline struct {
	// Kinds lists top-level blocks in document order. HTML blocks and link
	// reference definitions have no counterpart and are omitted.
	Kinds []mdast.BlockKind

	// Headings lists every top-level heading.
	Headings []mdast.TOCEntry
}

// Count returns how many top-level blocks of kind the outline holds.
func (o Outline) Count(kind mdast.BlockKind) int {
	n := 0
	for _, k := range o.Kinds {
		if k == kind {
			n++
		}
	}
	return n
}

// outliner maps goldmark's AST onto mdast block kinds.
type outliner struct {
	source []byte
}

func newOutliner(source []byte) *outliner {
	return &outliner{source: source}
}

func (o *outliner) outline(doc ast.Node) Outline {
	var out Outline
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		kind, ok := o.blockKind(child)
		if !ok {
			continue
		}
		out.Kinds = append(out.Kinds, kind)
		if heading, isHeading := child.(*ast.Heading); isHeading {
			out.Headings = append(out.Headings, mdast.TOCEntry{
				Level: heading.Level,
				Text:  o.plainText(heading),
			})
		}
	}
	return out
}

func (o *outliner) blockKind(node ast.Node) (mdast.BlockKind, bool) {
	switch n := node.(type) {
	case *ast.Heading:
		return mdast.BlockHeading, true
	case *ast.Paragraph:
		if o.isImageOnly(n) {
			return mdast.BlockImage, true
		}
		return mdast.BlockParagraph, true
	case *ast.TextBlock:
		return mdast.BlockParagraph, true
	case *ast.FencedCodeBlock:
		if strings.EqualFold(string(n.Language(o.source)), "mermaid") {
			return mdast.BlockMermaid, true
		}
		return mdast.BlockCode, true
	case *ast.CodeBlock:
		// Indented code has no dedicated block; its lines read as text.
		return mdast.BlockParagraph, true
	case *ast.Blockquote:
		return mdast.BlockQuote, true
	case *ast.List:
		return o.listKind(n), true
	case *ast.ThematicBreak:
		return mdast.BlockHorizontalRule, true
	case *east.Table:
		return mdast.BlockTable, true
	default:
		return 0, false
	}
}

func (o *outliner) listKind(list *ast.List) mdast.BlockKind {
	if list.IsOrdered() {
		return mdast.BlockOrderedList
	}
	if item := list.FirstChild(); item != nil {
		if block := item.FirstChild(); block != nil {
			if _, ok := block.FirstChild().(*east.TaskCheckBox); ok {
				return mdast.BlockTaskList
			}
		}
	}
	return mdast.BlockUnorderedList
}

// isImageOnly reports whether a paragraph holds nothing but one image.
func (o *outliner) isImageOnly(paragraph *ast.Paragraph) bool {
	if paragraph.ChildCount() != 1 {
		return false
	}
	_, ok := paragraph.FirstChild().(*ast.Image)
	return ok
}

// plainText concatenates the literal text beneath node.
func (o *outliner) plainText(node ast.Node) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(o.source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.CodeSpan:
			for c := t.FirstChild(); c != nil; c = c.NextSibling() {
				if seg, ok := c.(*ast.Text); ok {
					buf.Write(seg.Segment.Value(o.source))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}
