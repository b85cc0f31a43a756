package configloader

import (
	"maps"

	"github.com/yaklabco/mdview/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override overwrites base if override is non-nil
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Theme != "" {
		result.Theme = override.Theme
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Debounce != 0 {
		result.Debounce = override.Debounce
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// detect_languages is a pointer so that a file can turn it off.
	if override.DetectLanguages != nil {
		detect := *override.DetectLanguages
		result.DetectLanguages = &detect
	}

	result.ThemeOverrides = mergeOverrides(base.ThemeOverrides, override.ThemeOverrides)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// mergeOverrides deep merges theme color overrides. The result is always a
// fresh map so later merges never write into a source config.
func mergeOverrides(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}
	result := make(map[string]string, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
