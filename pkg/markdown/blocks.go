package markdown

import (
	"regexp"
	"strings"
	"sync"
)

type blockRegexps struct {
	heading       *regexp.Regexp
	closingHashes *regexp.Regexp
	fence         *regexp.Regexp
	rule          *regexp.Regexp
	task          *regexp.Regexp
	unordered     *regexp.Regexp
	ordered       *regexp.Regexp
	image         *regexp.Regexp
	imgTag        *regexp.Regexp
	imgSrc        *regexp.Regexp
	imgAlt        *regexp.Regexp
}

//nolint:gochecknoglobals // Compiled once, read-only afterwards.
var blockPatterns = sync.OnceValue(func() *blockRegexps {
	return &blockRegexps{
		heading:       regexp.MustCompile(`^(#{1,6})(?:[ \t]+(.*))?$`),
		closingHashes: regexp.MustCompile(`(?:^|[ \t]+)#+[ \t]*$`),
		fence:         regexp.MustCompile("^(`{3,}|~{3,})[ \\t]*(.*)$"),
		rule:          regexp.MustCompile(`^(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`),
		task:          regexp.MustCompile(`^[-*+][ \t]+\[([ xX])\](?:[ \t]+(.*))?$`),
		unordered:     regexp.MustCompile(`^[-*+][ \t]+(.*)$`),
		ordered:       regexp.MustCompile(`^\d{1,9}[.)][ \t]+(.*)$`),
		image:         regexp.MustCompile(`^!\[([^\]]*)\]\(\s*<?([^)\s>]*)>?(?:\s+"[^"]*")?\s*\)$`),
		imgTag:        regexp.MustCompile(`(?i)<img\b[^>]*>`),
		imgSrc:        regexp.MustCompile(`(?i)\bsrc\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+))`),
		imgAlt:        regexp.MustCompile(`(?i)\balt\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+))`),
	}
})

// fenceOpen describes an opening code fence.
type fenceOpen struct {
	marker   byte
	length   int
	indent   int
	language string
}

func matchFence(line string) (fenceOpen, bool) {
	indent := indentWidth(line)
	if indent > 3 {
		return fenceOpen{}, false
	}
	m := blockPatterns().fence.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return fenceOpen{}, false
	}
	info := strings.TrimSpace(m[2])
	if m[1][0] == '`' && strings.Contains(info, "`") {
		return fenceOpen{}, false
	}
	language := ""
	if fields := strings.Fields(info); len(fields) > 0 {
		language = strings.Trim(fields[0], "{}.")
	}
	return fenceOpen{marker: m[1][0], length: len(m[1]), indent: indent, language: language}, true
}

// closes reports whether line closes the fence: the same marker character
// repeated at least as many times, and nothing else.
func (f fenceOpen) closes(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < f.length {
		return false
	}
	return countRepeat(trimmed, f.marker) == len(trimmed)
}

// stripIndent removes up to n leading spaces.
func stripIndent(line string, n int) string {
	i := 0
	for i < n && i < len(line) && line[i] == ' ' {
		i++
	}
	return line[i:]
}

func matchHeading(trimmed string) (int, string, bool) {
	m := blockPatterns().heading.FindStringSubmatch(trimmed)
	if m == nil {
		return 0, "", false
	}
	text := strings.TrimSpace(m[2])
	text = strings.TrimSpace(blockPatterns().closingHashes.ReplaceAllString(text, ""))
	return len(m[1]), text, true
}

func isRule(trimmed string) bool {
	return blockPatterns().rule.MatchString(trimmed)
}

func isBlockquote(trimmed string) bool {
	return strings.HasPrefix(trimmed, ">")
}

// quoteText removes the '>' marker and one optional following space.
func quoteText(trimmed string) string {
	text := strings.TrimPrefix(trimmed, ">")
	if strings.HasPrefix(text, " ") || strings.HasPrefix(text, "\t") {
		text = text[1:]
	}
	return text
}

func matchTask(trimmed string) (bool, string, bool) {
	m := blockPatterns().task.FindStringSubmatch(trimmed)
	if m == nil {
		return false, "", false
	}
	return m[1] != " ", strings.TrimSpace(m[2]), true
}

func matchUnordered(trimmed string) (string, bool) {
	m := blockPatterns().unordered.FindStringSubmatch(trimmed)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func matchOrdered(trimmed string) (string, bool) {
	m := blockPatterns().ordered.FindStringSubmatch(trimmed)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// matchImage recognizes a line holding only an image, written either in
// Markdown form or as an HTML <img> tag, possibly wrapped in other tags.
func matchImage(trimmed string) (string, string, bool) {
	patterns := blockPatterns()
	if m := patterns.image.FindStringSubmatch(trimmed); m != nil {
		return m[1], SanitizeURL(m[2]), true
	}

	tag := patterns.imgTag.FindString(trimmed)
	if tag == "" || !IsHTMLOnly(trimmed) {
		return "", "", false
	}
	src := attrValue(patterns.imgSrc, tag)
	if src == "" {
		return "", "", false
	}
	return attrValue(patterns.imgAlt, tag), SanitizeURL(src), true
}

func attrValue(re *regexp.Regexp, tag string) string {
	m := re.FindStringSubmatch(tag)
	if m == nil {
		return ""
	}
	for _, group := range m[1:] {
		if group != "" {
			return group
		}
	}
	return ""
}

// indentWidth counts leading indentation, expanding tabs to four columns.
func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4 - width%4
		default:
			return width
		}
	}
	return width
}
