package markdown_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/mdview/pkg/markdown"
	"github.com/yaklabco/mdview/pkg/mdast"
)

func FuzzParse(f *testing.F) {
	// Add seed corpus.
	f.Add("")
	f.Add("# Title\n\nSome **bold** and *italic* text.")
	f.Add("```python\nprint(1)\n")
	f.Add("| A | B |\n|---|---:|\n| 1 | 2 | 3 |\n| x |")
	f.Add("- [ ] todo\n- [x] done\n- plain\n  more")
	f.Add("<!--\nopen comment\n")
	f.Add("> ***a*** ~~b~~ [c](d) `e`")
	f.Add("|\n|-|\n|")

	f.Fuzz(func(t *testing.T, input string) {
		blocks := markdown.Parse(input)

		again := markdown.Parse(input)
		if len(again) != len(blocks) {
			t.Fatalf("Parse not deterministic: %d blocks then %d", len(blocks), len(again))
		}

		for idx, block := range blocks {
			table, ok := block.(mdast.Table)
			if !ok {
				continue
			}
			if len(table.Alignments) != table.Columns() {
				t.Errorf("block %d: %d alignments for %d columns", idx, len(table.Alignments), table.Columns())
			}
			for rowIdx, row := range table.Rows {
				if len(row) != table.Columns() {
					t.Errorf("block %d row %d: %d cells for %d columns", idx, rowIdx, len(row), table.Columns())
				}
			}
		}
	})
}

func FuzzParseInline(f *testing.F) {
	// Add seed corpus.
	f.Add("")
	f.Add("plain")
	f.Add("*a* **b** ***c*** `d` [e](f) ~~g~~")
	f.Add("**unclosed *mixed* ~~")
	f.Add("![alt](u) [x](javascript:y)")

	f.Fuzz(func(t *testing.T, input string) {
		content := markdown.ParseInline(input)

		for idx := 1; idx < len(content); idx++ {
			if content[idx].Kind == mdast.SegmentText && content[idx-1].Kind == mdast.SegmentText {
				t.Fatalf("adjacent text segments at %d in %q", idx, input)
			}
		}

		// Resolution only removes markers; it never invents text.
		if len(content.PlainText()) > len(input) {
			t.Errorf("plain text longer than input: %q -> %q", input, content.PlainText())
		}
	})
}

func FuzzParseInline_BalancedMarkers(f *testing.F) {
	f.Add("word")
	f.Add("two words")

	f.Fuzz(func(t *testing.T, word string) {
		if word == "" || strings.ContainsAny(word, "*`[]()~\\\n") ||
			strings.TrimSpace(word) != word {
			return
		}

		for _, wrapped := range []string{
			"**" + word + "**",
			"*" + word + "*",
			"***" + word + "***",
			"`" + word + "`",
			"~~" + word + "~~",
		} {
			if got := markdown.ParseInline(wrapped).PlainText(); got != word {
				t.Errorf("ParseInline(%q).PlainText() = %q, want %q", wrapped, got, word)
			}
		}
	})
}
