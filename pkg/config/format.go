package config

// OutputFormat specifies how the parse command prints documents.
type OutputFormat string

const (
	// FormatJSON prints the block sequence as JSON.
	FormatJSON OutputFormat = "json"
	// FormatTOC prints the heading outline.
	FormatTOC OutputFormat = "toc"
	// FormatText prints one line per block.
	FormatText OutputFormat = "text"
	// FormatSummary prints a per-file table of block counts.
	FormatSummary OutputFormat = "summary"
)

// OutputFormats lists the supported formats in display order.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatJSON, FormatTOC, FormatText, FormatSummary}
}

// IsValid returns true if the format is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatJSON, FormatTOC, FormatText, FormatSummary:
		return true
	default:
		return false
	}
}
