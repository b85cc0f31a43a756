package mdast

import "strings"

// SegmentKind classifies an InlineSegment.
type SegmentKind uint8

// Inline segment kinds.
const (
	SegmentText SegmentKind = iota
	SegmentBold
	SegmentItalic
	SegmentBoldItalic
	SegmentCode
	SegmentLink
	SegmentStrikethrough
)

// String returns the lowercase name of the kind.
func (k SegmentKind) String() string {
	switch k {
	case SegmentText:
		return "text"
	case SegmentBold:
		return "bold"
	case SegmentItalic:
		return "italic"
	case SegmentBoldItalic:
		return "bold_italic"
	case SegmentCode:
		return "code"
	case SegmentLink:
		return "link"
	case SegmentStrikethrough:
		return "strikethrough"
	default:
		return "unknown"
	}
}

// InlineSegment is one resolved span of inline text. Text holds the content
// with its markers removed; URL is only set for links.
type InlineSegment struct {
	Kind SegmentKind
	Text string
	URL  string
}

// InlineContent is the ordered sequence of segments making up a block's text.
type InlineContent []InlineSegment

// Text returns a plain text segment.
func Text(s string) InlineSegment { return InlineSegment{Kind: SegmentText, Text: s} }

// Bold returns a bold segment.
func Bold(s string) InlineSegment { return InlineSegment{Kind: SegmentBold, Text: s} }

// Italic returns an italic segment.
func Italic(s string) InlineSegment { return InlineSegment{Kind: SegmentItalic, Text: s} }

// BoldItalic returns a bold-italic segment.
func BoldItalic(s string) InlineSegment { return InlineSegment{Kind: SegmentBoldItalic, Text: s} }

// Code returns an inline code segment.
func Code(s string) InlineSegment { return InlineSegment{Kind: SegmentCode, Text: s} }

// Link returns a link segment.
func Link(text, url string) InlineSegment {
	return InlineSegment{Kind: SegmentLink, Text: text, URL: url}
}

// Strikethrough returns a strikethrough segment.
func Strikethrough(s string) InlineSegment { return InlineSegment{Kind: SegmentStrikethrough, Text: s} }

// PlainText concatenates the text of every segment, markers stripped.
func (c InlineContent) PlainText() string {
	switch len(c) {
	case 0:
		return ""
	case 1:
		return c[0].Text
	}
	var sb strings.Builder
	for _, seg := range c {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// IsEmpty reports whether the content has no visible text.
func (c InlineContent) IsEmpty() bool {
	for _, seg := range c {
		if seg.Text != "" {
			return false
		}
	}
	return true
}

// MergeText returns content with adjacent Text segments joined and empty Text
// segments dropped. The input slice is not modified.
func MergeText(content InlineContent) InlineContent {
	merged := make(InlineContent, 0, len(content))
	for _, seg := range content {
		if seg.Kind == SegmentText {
			if seg.Text == "" {
				continue
			}
			if n := len(merged); n > 0 && merged[n-1].Kind == SegmentText {
				merged[n-1].Text += seg.Text
				continue
			}
		}
		merged = append(merged, seg)
	}
	return merged
}
