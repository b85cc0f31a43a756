package markdown

import (
	"regexp"
	"strings"
	"sync"
)

type htmlRegexps struct {
	comment  *regexp.Regexp
	tag      *regexp.Regexp
	codeSpan *regexp.Regexp
	document *regexp.Regexp
}

var htmlPatterns = sync.OnceValue(func() *htmlRegexps {
	return &htmlRegexps{
		comment:  regexp.MustCompile(`(?s)<!--.*?-->`),
		tag:      regexp.MustCompile(`</?[A-Za-z][A-Za-z0-9-]*(?:\s[^<>]*)?/?>`),
		codeSpan: regexp.MustCompile("`[^`]*`"),
		document: regexp.MustCompile(`(?i)^\s*(?:<!doctype\s+html|<html[\s>])`),
	}
})

// StripHTML removes HTML comments and bare tags from s. Text inside inline
// code spans is left alone so `<div>` survives as code.
func StripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	patterns := htmlPatterns()
	spans := patterns.codeSpan.FindAllStringIndex(s, -1)
	if len(spans) == 0 {
		return stripHTMLFragment(s)
	}

	var sb strings.Builder
	prev := 0
	for _, span := range spans {
		sb.WriteString(stripHTMLFragment(s[prev:span[0]]))
		sb.WriteString(s[span[0]:span[1]])
		prev = span[1]
	}
	sb.WriteString(stripHTMLFragment(s[prev:]))
	return sb.String()
}

func stripHTMLFragment(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	patterns := htmlPatterns()
	s = patterns.comment.ReplaceAllString(s, "")
	return patterns.tag.ReplaceAllString(s, "")
}

// IsHTMLOnly reports whether line has content but nothing but whitespace is
// left once HTML is stripped.
func IsHTMLOnly(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	return strings.TrimSpace(StripHTML(trimmed)) == ""
}

// IsHTMLDocument reports whether text is a complete HTML document rather
// than Markdown.
func IsHTMLDocument(text string) bool {
	return htmlPatterns().document.MatchString(text)
}

// opensComment reports whether a trimmed line starts an HTML comment that is
// not closed on the same line.
func opensComment(trimmed string) bool {
	if !strings.HasPrefix(trimmed, "<!--") {
		return false
	}
	return !strings.Contains(trimmed[len("<!--"):], "-->")
}
