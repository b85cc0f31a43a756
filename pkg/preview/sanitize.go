package preview

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// tabWidth matches the column width the parser uses for list indentation.
const tabWidth = 4

//nolint:gochecknoglobals // Read-only lookup table.
var formattingRuneLabels = map[rune]string{
	0x061C: "⟪ALM⟫",
	0x200B: "⟪ZWSP⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0xFEFF: "⟪BOM⟫",
}

// sanitizeLine makes document text safe to print on a terminal: control
// characters cannot start escape sequences and bidi overrides are shown
// instead of applied. Newlines become spaces.
func sanitizeLine(text string) string {
	if !needsSanitizing(text, false) {
		return text
	}
	return sanitize(text, false)
}

// sanitizeBlock is sanitizeLine for multi-line code, which keeps its
// newlines and expands tabs.
func sanitizeBlock(text string) string {
	text = expandTabs(text)
	if !needsSanitizing(text, true) {
		return text
	}
	return sanitize(text, true)
}

func needsSanitizing(text string, keepNewlines bool) bool {
	for _, r := range text {
		if requiresSanitization(r, keepNewlines) {
			return true
		}
	}
	return false
}

func requiresSanitization(r rune, keepNewlines bool) bool {
	switch {
	case r == '\t':
		return false
	case r == '\n':
		return !keepNewlines
	case r == '\r':
		return true
	}
	if _, ok := formattingRuneLabels[r]; ok {
		return true
	}
	return r < 0x20 || r == 0x7f
}

func sanitize(text string, keepNewlines bool) string {
	var b strings.Builder
	for _, r := range text {
		label, isFormatting := formattingRuneLabels[r]
		switch {
		case isFormatting:
			b.WriteString(label)
		case r == '\n' && keepNewlines:
			b.WriteByte('\n')
		case r == '\r' && keepNewlines:
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// expandTabs replaces tabs with spaces respecting terminal column width.
func expandTabs(text string) string {
	if !strings.ContainsRune(text, '\t') {
		return text
	}

	var b strings.Builder
	column := 0
	for _, r := range text {
		switch r {
		case '\t':
			spaces := tabWidth - column%tabWidth
			b.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		case '\n':
			column = 0
		default:
			column += max(runewidth.RuneWidth(r), 1)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// displayWidth reports the printable width of text accounting for wide runes.
func displayWidth(text string) int {
	return runewidth.StringWidth(text)
}
