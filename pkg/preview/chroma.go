package preview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// ThemeFromChroma derives a theme from a chroma style's palette. Only the
// colors are taken; tokenizing stays with the highlight package.
func ThemeFromChroma(styleName string) (Theme, error) {
	key := strings.ToLower(strings.TrimSpace(styleName))
	style, ok := chromastyles.Registry[key]
	if !ok {
		return Theme{}, fmt.Errorf("%w %q: no such chroma style", ErrUnknownTheme, chromaPrefix+styleName)
	}

	base := style.Get(chroma.Background)
	foreground := colourOr(base.Colour, colourOr(style.Get(chroma.Text).Colour, "#d4d4d4"))

	theme := Theme{
		Name:        chromaPrefix + key,
		Description: "Derived from the chroma " + key + " style",
		Background:  colourOr(base.Background, ""),
		Foreground:  foreground,
		Accent:      firstColour(style, foreground, chroma.GenericHeading, chroma.NameTag, chroma.Keyword),
		Keyword:     firstColour(style, foreground, chroma.Keyword),
		String:      firstColour(style, foreground, chroma.LiteralString),
		Comment:     firstColour(style, foreground, chroma.Comment),
		Number:      firstColour(style, foreground, chroma.LiteralNumber),
		Type:        firstColour(style, foreground, chroma.KeywordType, chroma.NameClass),
		Function:    firstColour(style, foreground, chroma.NameFunction, chroma.NameBuiltin),
	}
	return withTypography(theme), nil
}

// ChromaStyleNames lists the chroma styles usable with "chroma:<style>".
func ChromaStyleNames() []string {
	names := make([]string, 0, len(chromastyles.Registry))
	for name := range chromastyles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// firstColour returns the first token type's foreground that the style sets.
func firstColour(style *chroma.Style, fallback lipgloss.Color, types ...chroma.TokenType) lipgloss.Color {
	for _, tokenType := range types {
		if entry := style.Get(tokenType); entry.Colour.IsSet() {
			return lipgloss.Color(entry.Colour.String())
		}
	}
	return fallback
}

func colourOr(colour chroma.Colour, fallback lipgloss.Color) lipgloss.Color {
	if colour.IsSet() {
		return lipgloss.Color(colour.String())
	}
	return fallback
}
