package mdast

// TOCEntry is one table-of-contents line.
type TOCEntry struct {
	Level int
	Text  string
}

// TableOfContents projects the heading blocks of a parsed document.
// It does not reparse anything.
func TableOfContents(blocks []Block) []TOCEntry {
	var entries []TOCEntry
	for _, b := range blocks {
		heading, ok := b.(Heading)
		if !ok {
			continue
		}
		entries = append(entries, TOCEntry{
			Level: heading.Level,
			Text:  heading.Content.PlainText(),
		})
	}
	return entries
}

// CountKinds tallies blocks by kind.
func CountKinds(blocks []Block) map[BlockKind]int {
	counts := make(map[BlockKind]int)
	for _, b := range blocks {
		counts[b.Kind()]++
	}
	return counts
}
