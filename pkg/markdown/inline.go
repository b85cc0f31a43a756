package markdown

import (
	"regexp"
	"strings"
	"sync"

	"github.com/yaklabco/mdview/pkg/mdast"
)

// inlineNestingLimit bounds the recursion used to flatten marker text nested
// inside link, bold and strikethrough spans.
const inlineNestingLimit = 8

// inlineMatch is one candidate span found by an inline pattern.
type inlineMatch struct {
	start, end int
	text       string
	url        string
}

// inlinePattern finds the first occurrence of one marker kind at or after from.
type inlinePattern struct {
	kind mdast.SegmentKind
	find func(text string, from int) (inlineMatch, bool)
}

// inlinePatterns lists the markers in tie-break priority order: when two
// patterns start at the same offset, the one listed first wins.
//
//nolint:gochecknoglobals // Read-only pattern table.
var inlinePatterns = sync.OnceValue(func() []inlinePattern {
	boldItalic := regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	bold := regexp.MustCompile(`\*\*(.+?)\*\*`)
	italic := regexp.MustCompile(`\*([^*\s](?:[^*\n]*[^*\s])?)\*`)
	code := regexp.MustCompile("`([^`\n]+)`")
	link := regexp.MustCompile(`!?\[([^\]\n]*)\]\(\s*<?([^)\s>]*)>?(?:\s+"[^"\n]*")?\s*\)`)
	strike := regexp.MustCompile(`~~(.+?)~~`)

	return []inlinePattern{
		{kind: mdast.SegmentBoldItalic, find: regexpFinder(boldItalic)},
		{kind: mdast.SegmentBold, find: regexpFinder(bold)},
		{kind: mdast.SegmentItalic, find: italicFinder(italic)},
		{kind: mdast.SegmentCode, find: regexpFinder(code)},
		{kind: mdast.SegmentLink, find: regexpFinder(link)},
		{kind: mdast.SegmentStrikethrough, find: regexpFinder(strike)},
	}
})

func regexpFinder(re *regexp.Regexp) func(string, int) (inlineMatch, bool) {
	return func(text string, from int) (inlineMatch, bool) {
		loc := re.FindStringSubmatchIndex(text[from:])
		if loc == nil {
			return inlineMatch{}, false
		}
		return newInlineMatch(text, from, loc), true
	}
}

// italicFinder rejects single-asterisk candidates that touch another
// asterisk, so "**bold**" never yields an italic. RE2 has no lookaround, so
// the check is done here and the scan resumes one byte after a rejection.
func italicFinder(re *regexp.Regexp) func(string, int) (inlineMatch, bool) {
	return func(text string, from int) (inlineMatch, bool) {
		for from < len(text) {
			loc := re.FindStringSubmatchIndex(text[from:])
			if loc == nil {
				return inlineMatch{}, false
			}
			match := newInlineMatch(text, from, loc)
			if (match.start > 0 && text[match.start-1] == '*') ||
				(match.end < len(text) && text[match.end] == '*') {
				from = match.start + 1
				continue
			}
			return match, true
		}
		return inlineMatch{}, false
	}
}

func newInlineMatch(text string, offset int, loc []int) inlineMatch {
	match := inlineMatch{start: offset + loc[0], end: offset + loc[1]}
	if len(loc) >= 4 && loc[2] >= 0 {
		match.text = text[offset+loc[2] : offset+loc[3]]
	}
	if len(loc) >= 6 && loc[4] >= 0 {
		match.url = text[offset+loc[4] : offset+loc[5]]
	}
	return match
}

// ParseInline resolves inline markers in text into a flat segment sequence.
// At each step the earliest-starting match among all patterns wins, ties
// going to the pattern with higher priority. Unmatched text becomes Text
// segments and adjacent Text segments are merged.
func ParseInline(text string) mdast.InlineContent {
	return parseInlineDepth(text, 0)
}

func parseInlineDepth(text string, depth int) mdast.InlineContent {
	if text == "" {
		return nil
	}
	if depth >= inlineNestingLimit {
		return mdast.InlineContent{mdast.Text(text)}
	}

	patterns := inlinePatterns()

	// next caches each pattern's upcoming match; a cached match is reused
	// until the cursor moves past its start.
	next := make([]inlineMatch, len(patterns))
	found := make([]bool, len(patterns))
	exhausted := make([]bool, len(patterns))

	var segments mdast.InlineContent
	pos := 0
	for pos < len(text) {
		best := -1
		for i, pattern := range patterns {
			if exhausted[i] {
				continue
			}
			if !found[i] || next[i].start < pos {
				match, ok := pattern.find(text, pos)
				if !ok {
					exhausted[i] = true
					continue
				}
				next[i], found[i] = match, true
			}
			if best < 0 || next[i].start < next[best].start {
				best = i
			}
		}
		if best < 0 {
			break
		}

		match := next[best]
		segments = append(segments, mdast.Text(text[pos:match.start]))
		segments = append(segments, buildSegment(patterns[best].kind, match, depth))
		pos = match.end
	}
	segments = append(segments, mdast.Text(text[pos:]))

	return mdast.MergeText(segments)
}

func buildSegment(kind mdast.SegmentKind, match inlineMatch, depth int) mdast.InlineSegment {
	switch kind {
	case mdast.SegmentCode:
		return mdast.Code(match.text)
	case mdast.SegmentLink:
		return mdast.Link(flatten(match.text, depth), SanitizeURL(match.url))
	default:
		return mdast.InlineSegment{Kind: kind, Text: flatten(match.text, depth)}
	}
}

// flatten resolves markers nested inside a span and keeps only their text.
func flatten(text string, depth int) string {
	if !strings.ContainsAny(text, "*`[~") {
		return text
	}
	return parseInlineDepth(text, depth+1).PlainText()
}

// unsafeSchemes are link schemes that are never handed to the host.
//
//nolint:gochecknoglobals // Read-only lookup table.
var unsafeSchemes = []string{"javascript:", "vbscript:", "data:", "file:"}

// SanitizeURL returns url, or "" when it uses a scheme a preview must not
// follow.
func SanitizeURL(url string) string {
	lower := strings.ToLower(strings.TrimSpace(url))
	for _, scheme := range unsafeSchemes {
		if strings.HasPrefix(lower, scheme) {
			return ""
		}
	}
	return url
}
