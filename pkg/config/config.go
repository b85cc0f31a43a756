// Package config defines core configuration types for mdview.
// These types are pure data structures with no dependency on the loader.
package config

import "time"

// DefaultTheme is the preview theme used when none is configured.
const DefaultTheme = "dark"

// DefaultDebounce is how long watch waits for file events to settle.
const DefaultDebounce = 150 * time.Millisecond

// Flavor specifies the Markdown flavor used by the reference parser in
// parse --check.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Config is the root configuration structure for mdview.
type Config struct {
	// Flavor selects the reference parser flavor for cross-checks.
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor"`

	// Theme is a preset name or "chroma:<style>".
	Theme string `mapstructure:"theme" yaml:"theme"`

	// ThemeOverrides replaces individual theme colors, keyed by role
	// ("keyword", "string", ...) or by "background", "foreground", "accent".
	ThemeOverrides map[string]string `mapstructure:"theme_overrides" yaml:"theme_overrides"`

	// Width is the render width in columns. 0 means the terminal width.
	Width int `mapstructure:"width" yaml:"width"`

	// DetectLanguages guesses the language of untagged code blocks.
	// Nil means enabled.
	DetectLanguages *bool `mapstructure:"detect_languages" yaml:"detect_languages"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// Debounce is the quiet period watch waits for before re-rendering.
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format of the parse command.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:         FlavorGFM,
		Theme:          DefaultTheme,
		ThemeOverrides: make(map[string]string),
		Debounce:       DefaultDebounce,
		Format:         FormatJSON,
		Jobs:           0, // 0 means use GOMAXPROCS
	}
}

// LanguageDetection reports whether untagged code blocks should have their
// language guessed.
func (c *Config) LanguageDetection() bool {
	return c.DetectLanguages == nil || *c.DetectLanguages
}
