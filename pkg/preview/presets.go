package preview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// chromaPrefix selects a chroma style instead of a preset, as in
// "chroma:monokai".
const chromaPrefix = "chroma:"

// ErrUnknownTheme is returned when a theme name matches no preset and no
// chroma style.
var ErrUnknownTheme = errors.New("unknown theme")

// PresetThemeNames defines the display order of the presets.
//
//nolint:gochecknoglobals // Read-only display order.
var PresetThemeNames = []string{
	"dark",
	"light",
	"gruvbox",
	"dracula",
	"nord",
	"solarized",
	"monokai",
}

//nolint:gochecknoglobals // Read-only preset table.
var presetThemes = map[string]Theme{
	"dark": {
		Description: "Neutral dark palette (default)",
		Background:  "#1e1e1e", Foreground: "#d4d4d4", Accent: "#569cd6",
		Keyword: "#c586c0", String: "#ce9178", Comment: "#6a9955",
		Number: "#b5cea8", Type: "#4ec9b0", Function: "#dcdcaa",
	},
	"light": {
		Description: "Neutral light palette",
		Background:  "#ffffff", Foreground: "#24292f", Accent: "#0969da",
		Keyword: "#cf222e", String: "#0a3069", Comment: "#6e7781",
		Number: "#0550ae", Type: "#953800", Function: "#8250df",
	},
	"gruvbox": {
		Description: "Retro groove color scheme",
		Background:  "#282828", Foreground: "#ebdbb2", Accent: "#83a598",
		Keyword: "#fb4934", String: "#b8bb26", Comment: "#928374",
		Number: "#d3869b", Type: "#fabd2f", Function: "#8ec07c",
	},
	"dracula": {
		Description: "Popular dark theme with purple accents",
		Background:  "#282a36", Foreground: "#f8f8f2", Accent: "#bd93f9",
		Keyword: "#ff79c6", String: "#f1fa8c", Comment: "#6272a4",
		Number: "#bd93f9", Type: "#8be9fd", Function: "#50fa7b",
	},
	"nord": {
		Description: "Arctic, north-bluish color palette",
		Background:  "#2e3440", Foreground: "#eceff4", Accent: "#88c0d0",
		Keyword: "#81a1c1", String: "#a3be8c", Comment: "#616e88",
		Number: "#b48ead", Type: "#8fbcbb", Function: "#88c0d0",
	},
	"solarized": {
		Description: "Precision colors for machines and people",
		Background:  "#002b36", Foreground: "#839496", Accent: "#268bd2",
		Keyword: "#859900", String: "#2aa198", Comment: "#586e75",
		Number: "#d33682", Type: "#b58900", Function: "#268bd2",
	},
	"monokai": {
		Description: "Vibrant colors inspired by Sublime Text",
		Background:  "#272822", Foreground: "#f8f8f2", Accent: "#66d9ef",
		Keyword: "#f92672", String: "#e6db74", Comment: "#75715e",
		Number: "#ae81ff", Type: "#66d9ef", Function: "#a6e22e",
	},
}

// Preset returns the named preset theme.
func Preset(name string) (Theme, bool) {
	theme, ok := presetThemes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, false
	}
	theme.Name = strings.ToLower(strings.TrimSpace(name))
	return withTypography(theme), true
}

// DefaultTheme returns the "dark" preset.
func DefaultTheme() Theme {
	theme, _ := Preset("dark")
	return theme
}

// LookupTheme resolves a preset name or a "chroma:<style>" reference.
func LookupTheme(name string) (Theme, error) {
	if style, ok := strings.CutPrefix(strings.TrimSpace(name), chromaPrefix); ok {
		return ThemeFromChroma(style)
	}
	if theme, ok := Preset(name); ok {
		return theme, nil
	}
	return Theme{}, fmt.Errorf("%w %q; choose one of %s or %s<style>",
		ErrUnknownTheme, name, strings.Join(PresetThemeNames, ", "), chromaPrefix)
}

// MatchPresetTheme returns the name of the preset whose colors equal t's,
// or "" when none does.
func MatchPresetTheme(t Theme) string {
	for _, name := range PresetThemeNames {
		preset, _ := Preset(name)
		if sameColors(preset, t) {
			return name
		}
	}
	return ""
}

func sameColors(a, b Theme) bool {
	colors := func(t Theme) [9]lipgloss.Color {
		return [9]lipgloss.Color{
			t.Background, t.Foreground, t.Accent,
			t.Keyword, t.String, t.Comment, t.Number, t.Type, t.Function,
		}
	}
	return colors(a) == colors(b)
}

func withTypography(t Theme) Theme {
	if t.BodyFontSize == 0 {
		t.BodyFontSize = DefaultBodyFontSize
	}
	if t.CodeFontSize == 0 {
		t.CodeFontSize = DefaultCodeFontSize
	}
	if t.LineHeight == 0 {
		t.LineHeight = DefaultLineHeight
	}
	return t
}
