package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every setting, including the available themes.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Themes lists the theme names to document in a full template.
	Themes []string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate(opts), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Preview theme: a preset name or chroma:<style>
theme: ` + DefaultTheme + `

# Render width in columns (0 = terminal width)
# width: 0

# Guess the language of code blocks without a tag
# detect_languages: true

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`)

	return buf.Bytes()
}

// generateFullTemplate creates a template with every setting documented.
func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`
#
# This template lists every setting with its default value.
# Uncomment and modify settings as needed.

# Markdown flavor used by parse --check: commonmark or gfm
flavor: gfm

# Preview theme: a preset name or chroma:<style>
theme: ` + DefaultTheme + `
`)

	if len(opts.Themes) > 0 {
		fmt.Fprintf(&buf, "# %s\n",
			wrapComment("Available presets: "+strings.Join(opts.Themes, ", "), commentWrapWidth))
	}

	fmt.Fprintf(&buf, `
# Individual color overrides keyed by role or by background, foreground, accent
# theme_overrides:
#   keyword: "#c678dd"
#   comment: "#5c6370"

# Render width in columns (0 = terminal width)
width: 0

# Guess the language of code blocks without a tag
detect_languages: true

# Quiet period before watch re-renders a changed file
debounce: %s

# File patterns to ignore (glob patterns)
ignore:
  - "vendor/**"
  - "node_modules/**"
  - ".git/**"
`, DefaultDebounce)

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	cfg := map[string]any{
		"flavor":           string(FlavorGFM),
		"theme":            DefaultTheme,
		"theme_overrides":  map[string]string{},
		"width":            0,
		"detect_languages": true,
		"debounce":         DefaultDebounce.String(),
		"ignore":           []string{"vendor/**", "node_modules/**", ".git/**"},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdview configuration
# See: https://github.com/yaklabco/mdview`
}
