// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, and validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/mdview/pkg/config"
	"github.com/yaklabco/mdview/pkg/preview"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Theme is the configured theme with its overrides applied.
	Theme preview.Theme

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (MDVIEW_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.mdview.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/mdview/config.yaml)
//  6. System config (/etc/mdview/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	cfg := config.NewConfig()

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	result := &LoadResult{Paths: paths}

	if opts.ExplicitPath != "" {
		result.Paths.Explicit = opts.ExplicitPath
	}

	sources := []struct {
		label  string
		path   string
		ignore bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", opts.ExplicitPath, false},
	}
	for _, source := range sources {
		if source.ignore || source.path == "" {
			continue
		}
		fileCfg, err := loadConfigFile(source.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", source.label, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, source.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	normalizeTheme(cfg, result)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	theme, err := ResolveTheme(cfg)
	if err != nil {
		return nil, err
	}

	result.Config = cfg
	result.Theme = theme
	return result, nil
}

// ResolveTheme looks up the configured theme and applies its overrides.
func ResolveTheme(cfg *config.Config) (preview.Theme, error) {
	name := config.DefaultTheme
	if cfg != nil && cfg.Theme != "" {
		name = ResolveThemeAlias(cfg.Theme)
	}

	theme, err := preview.LookupTheme(name)
	if err != nil {
		return preview.Theme{}, fmt.Errorf("resolve theme: %w", err)
	}
	if cfg == nil || len(cfg.ThemeOverrides) == 0 {
		return theme, nil
	}

	theme, err = theme.WithOverrides(cfg.ThemeOverrides)
	if err != nil {
		return preview.Theme{}, fmt.Errorf("apply theme overrides: %w", err)
	}
	return theme, nil
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// normalizeTheme replaces a theme alias with its preset name so that later
// lookups and the reported configuration use the canonical name.
func normalizeTheme(cfg *config.Config, result *LoadResult) {
	if !IsThemeAlias(cfg.Theme) {
		return
	}
	canonical := ResolveThemeAlias(cfg.Theme)
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("theme %q is an alias; using %q", cfg.Theme, canonical))
	cfg.Theme = canonical
}
