package preview

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdview/pkg/highlight"
)

// Typography defaults shared by every preset.
const (
	DefaultBodyFontSize = 14.0
	DefaultCodeFontSize = 13.0
	DefaultLineHeight   = 1.5
)

// ErrInvalidColor is returned for color strings that are neither hex nor an
// ANSI palette index.
var ErrInvalidColor = errors.New("invalid color")

// ErrUnknownThemeKey is returned for overrides naming no theme color.
var ErrUnknownThemeKey = errors.New("unknown theme key")

//nolint:gochecknoglobals // Compiled once, read-only afterwards.
var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Theme is the palette and typography a host paints a document with.
// The parser and highlighter only tag text with roles; RoleColor maps a
// role to its color.
type Theme struct {
	Name        string
	Description string

	Background lipgloss.Color
	Foreground lipgloss.Color
	Accent     lipgloss.Color

	Keyword  lipgloss.Color
	String   lipgloss.Color
	Comment  lipgloss.Color
	Number   lipgloss.Color
	Type     lipgloss.Color
	Function lipgloss.Color

	BodyFontSize float64
	CodeFontSize float64
	LineHeight   float64
}

// RoleColor returns the color used for a highlight role. Plain text uses
// the foreground and keys use the accent.
func (t Theme) RoleColor(role highlight.Role) lipgloss.Color {
	switch role {
	case highlight.RoleComment:
		return t.Comment
	case highlight.RoleString:
		return t.String
	case highlight.RoleNumber:
		return t.Number
	case highlight.RoleKeyword:
		return t.Keyword
	case highlight.RoleType:
		return t.Type
	case highlight.RoleFunction:
		return t.Function
	case highlight.RoleKey:
		return t.Accent
	default:
		return t.Foreground
	}
}

// ThemeKeys lists the keys accepted by WithOverrides.
func ThemeKeys() []string {
	return []string{
		"background", "foreground", "accent",
		"keyword", "string", "comment", "number", "type", "function",
	}
}

// WithOverrides returns a copy of t with individual colors replaced. Keys
// are matched case-insensitively against ThemeKeys.
func (t Theme) WithOverrides(overrides map[string]string) (Theme, error) {
	var errs []error
	for key, value := range overrides {
		color, err := ParseColor(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("theme override %q: %w", key, err))
			continue
		}
		slot := t.colorSlot(strings.ToLower(strings.TrimSpace(key)))
		if slot == nil {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownThemeKey, key))
			continue
		}
		*slot = color
	}
	if len(errs) > 0 {
		return Theme{}, errors.Join(errs...)
	}
	return t, nil
}

func (t *Theme) colorSlot(key string) *lipgloss.Color {
	switch key {
	case "background":
		return &t.Background
	case "foreground":
		return &t.Foreground
	case "accent":
		return &t.Accent
	case "keyword":
		return &t.Keyword
	case "string":
		return &t.String
	case "comment":
		return &t.Comment
	case "number":
		return &t.Number
	case "type":
		return &t.Type
	case "function":
		return &t.Function
	default:
		return nil
	}
}

// ParseColor accepts "#rgb", "#rrggbb" or an ANSI palette index 0-255.
func ParseColor(value string) (lipgloss.Color, error) {
	value = strings.TrimSpace(value)
	if hexColor.MatchString(value) {
		return lipgloss.Color(strings.ToLower(value)), nil
	}
	if index, err := strconv.Atoi(value); err == nil && index >= 0 && index <= 255 {
		return lipgloss.Color(value), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidColor, value)
}
