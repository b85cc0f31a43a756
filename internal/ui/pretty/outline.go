package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/mdview/pkg/mdast"
)

const (
	excerptWidth = 60
	kindWidth    = 16
	ellipsis     = "…"
)

// DescribeBlock returns a short plain-text summary of block, such as
// "h2 Install" or "[go] 4 lines".
func DescribeBlock(block mdast.Block) string {
	switch b := block.(type) {
	case mdast.Heading:
		return fmt.Sprintf("h%d %s", b.Level, excerpt(b.Content.PlainText()))
	case mdast.Paragraph:
		return excerpt(b.Content.PlainText())
	case mdast.Blockquote:
		return excerpt(b.Content.PlainText())
	case mdast.CodeBlock:
		lang := b.Language
		if lang == "" {
			lang = "-"
		}
		return fmt.Sprintf("[%s] %s", lang, plural(len(mdast.SplitLines(b.Code)), "line"))
	case mdast.MermaidDiagram:
		return plural(len(mdast.SplitLines(b.Code)), "line")
	case mdast.UnorderedList:
		return plural(len(b.Items), "item")
	case mdast.OrderedList:
		return plural(len(b.Items), "item")
	case mdast.TaskList:
		done := 0
		for _, item := range b.Items {
			if item.Checked {
				done++
			}
		}
		return fmt.Sprintf("%s, %d done", plural(len(b.Items), "item"), done)
	case mdast.HorizontalRule:
		return "#" + strconv.Itoa(b.Ordinal)
	case mdast.Table:
		return fmt.Sprintf("%s × %s", plural(b.Columns(), "column"), plural(len(b.Rows), "row"))
	case mdast.Image:
		if b.Alt == "" {
			return b.URL
		}
		return fmt.Sprintf("%s (%s)", excerpt(b.Alt), b.URL)
	default:
		return ""
	}
}

// FormatBlockLine formats one outline line: a 1-based index, the block kind
// and its description.
func (s *Styles) FormatBlockLine(index int, block mdast.Block) string {
	kind := block.Kind().String()
	detail := DescribeBlock(block)

	switch b := block.(type) {
	case mdast.Heading:
		detail = s.Heading.Render(detail)
	case mdast.CodeBlock:
		if b.Language != "" {
			tag := "[" + b.Language + "]"
			detail = s.Language.Render(tag) + s.Detail.Render(strings.TrimPrefix(detail, tag))
		} else {
			detail = s.Detail.Render(detail)
		}
	default:
		detail = s.Detail.Render(detail)
	}

	return fmt.Sprintf("  %s  %s %s\n",
		s.Index.Render(fmt.Sprintf("%3d", index)),
		s.Kind.Render(runewidth.FillRight(kind, kindWidth)),
		detail,
	)
}

// FormatFileHeader formats the header line printed above a file's output.
func (s *Styles) FormatFileHeader(path string, blocks int, cached bool) string {
	meta := plural(blocks, "block")
	if cached {
		meta += ", cached"
	}
	return s.FilePath.Render(path) + " " + s.Dim.Render("("+meta+")") + "\n"
}

// FormatFileError formats a file that could not be processed.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n", s.FilePath.Render(path), s.Error.Render(fmt.Sprintf("error: %v", err)))
}

// FormatTOCEntry formats a heading as an indented bullet, two spaces per
// level below the top.
func (s *Styles) FormatTOCEntry(entry mdast.TOCEntry) string {
	indent := strings.Repeat("  ", max(entry.Level-1, 0))
	text := entry.Text
	if entry.Level == 1 {
		text = s.Heading.Render(text)
	}
	return indent + "- " + text + "\n"
}

func excerpt(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if runewidth.StringWidth(text) <= excerptWidth {
		return text
	}
	return runewidth.Truncate(text, excerptWidth, ellipsis)
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
