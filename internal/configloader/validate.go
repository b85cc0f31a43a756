package configloader

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yaklabco/mdview/pkg/config"
	"github.com/yaklabco/mdview/pkg/preview"
	"github.com/yaklabco/mdview/pkg/runner"
)

// maxDebounce is the longest debounce accepted without a warning.
const maxDebounce = 5 * time.Second

// minRenderWidth mirrors the narrowest width the renderer lays out.
const minRenderWidth = 20

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "theme_overrides.keyword").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., a width the renderer will clamp).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFlavors lists valid flavor values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.Flavor != "" && !knownFlavors[cfg.Flavor] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "flavor",
			Value:   cfg.Flavor,
			Message: fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor),
		})
	}

	if cfg.Theme != "" {
		if _, err := preview.LookupTheme(cfg.Theme); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "theme",
				Value:   cfg.Theme,
				Message: err.Error(),
			})
		}
	}

	validateThemeOverrides(cfg, result)

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: json, toc, text, summary", cfg.Format),
		})
	}

	switch {
	case cfg.Width < 0:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "width",
			Value:   cfg.Width,
			Message: "width must be >= 0 (0 means terminal width)",
		})
	case cfg.Width > 0 && cfg.Width < minRenderWidth:
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "width",
			Value:   cfg.Width,
			Message: fmt.Sprintf("width %d is below %d and will be widened", cfg.Width, minRenderWidth),
		})
	}

	switch {
	case cfg.Debounce < 0:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "debounce",
			Value:   cfg.Debounce,
			Message: "debounce must not be negative",
		})
	case cfg.Debounce > maxDebounce:
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "debounce",
			Value:   cfg.Debounce,
			Message: fmt.Sprintf("debounce %s is unusually long; watch will feel unresponsive", cfg.Debounce),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	validateIgnorePatterns(cfg, result)

	return result
}

// validateThemeOverrides checks every override key and color. Keys are
// visited in sorted order so the first reported error is stable.
func validateThemeOverrides(cfg *config.Config, result *ValidationResult) {
	keys := make([]string, 0, len(cfg.ThemeOverrides))
	for key := range cfg.ThemeOverrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := cfg.ThemeOverrides[key]
		if _, err := preview.DefaultTheme().WithOverrides(map[string]string{key: value}); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "theme_overrides." + key,
				Value:   value,
				Message: err.Error(),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns compile with the same
// glob syntax discovery uses.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if err := runner.ValidatePattern(pattern); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return knownFlavors[f]
}
