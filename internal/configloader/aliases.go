package configloader

import "strings"

// themeAliases maps alternative theme names to preset names so that
// configurations written with common editor theme names still resolve.
//
//nolint:gochecknoglobals // Read-only lookup table.
var themeAliases = map[string]string{
	"default":         "dark",
	"dark-plus":       "dark",
	"vscode-dark":     "dark",
	"github":          "light",
	"github-light":    "light",
	"vscode-light":    "light",
	"gruvbox-dark":    "gruvbox",
	"dracula-pro":     "dracula",
	"nord-dark":       "nord",
	"solarized-dark":  "solarized",
	"solarized_dark":  "solarized",
	"monokai-classic": "monokai",
	"sublime":         "monokai",
}

// ResolveThemeAlias converts a theme alias to its preset name.
// Names that are not aliases, including chroma references, are returned
// trimmed and otherwise unchanged.
func ResolveThemeAlias(name string) string {
	trimmed := strings.TrimSpace(name)
	if preset, ok := themeAliases[strings.ToLower(trimmed)]; ok {
		return preset
	}
	return trimmed
}

// IsThemeAlias returns true if the name is a known theme alias.
func IsThemeAlias(name string) bool {
	_, ok := themeAliases[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// ThemeAliases returns a copy of the alias table.
func ThemeAliases() map[string]string {
	result := make(map[string]string, len(themeAliases))
	for alias, preset := range themeAliases {
		result[alias] = preset
	}
	return result
}
