package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdview/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		t.Parallel()

		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
		assert.Nil(t, clone.Ignore)
		assert.Nil(t, clone.DetectLanguages)
	})

	t.Run("deep copies theme overrides", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{ThemeOverrides: map[string]string{"keyword": "#ff0000"}}
		clone := original.Clone()

		clone.ThemeOverrides["keyword"] = "#00ff00"
		assert.Equal(t, "#ff0000", original.ThemeOverrides["keyword"])
	})

	t.Run("deep copies Ignore slice", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{Ignore: []string{"*.md", "vendor/**"}}
		clone := original.Clone()
		assert.Equal(t, original.Ignore, clone.Ignore)

		clone.Ignore[0] = "changed"
		assert.Equal(t, "*.md", original.Ignore[0])
	})

	t.Run("deep copies detect_languages", func(t *testing.T) {
		t.Parallel()

		detect := false
		original := &config.Config{DetectLanguages: &detect}
		clone := original.Clone()
		require.NotNil(t, clone.DetectLanguages)
		assert.NotSame(t, original.DetectLanguages, clone.DetectLanguages)

		*clone.DetectLanguages = true
		assert.False(t, *original.DetectLanguages)
	})

	t.Run("preserves all fields", func(t *testing.T) {
		t.Parallel()

		detect := true
		original := &config.Config{
			Flavor:          config.FlavorCommonMark,
			Theme:           "nord",
			ThemeOverrides:  map[string]string{"accent": "#88c0d0"},
			Width:           100,
			DetectLanguages: &detect,
			Ignore:          []string{"*.bak"},
			Debounce:        time.Second,
			Format:          config.FormatTOC,
			Jobs:            4,
		}

		assert.Equal(t, original, original.Clone())
	})
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.FlavorGFM, cfg.Flavor)
	assert.Equal(t, config.DefaultTheme, cfg.Theme)
	assert.Equal(t, config.DefaultDebounce, cfg.Debounce)
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.NotNil(t, cfg.ThemeOverrides)
	assert.True(t, cfg.LanguageDetection())
}

func TestConfig_LanguageDetection(t *testing.T) {
	t.Parallel()

	enabled, disabled := true, false
	assert.True(t, (&config.Config{}).LanguageDetection())
	assert.True(t, (&config.Config{DetectLanguages: &enabled}).LanguageDetection())
	assert.False(t, (&config.Config{DetectLanguages: &disabled}).LanguageDetection())
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("basic config serializes", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{
			Theme:    "light",
			Width:    72,
			Debounce: 200 * time.Millisecond,
			Jobs:     8,
		}

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "theme: light")
		assert.Contains(t, string(data), "width: 72")
		assert.Contains(t, string(data), "debounce: 200ms")
		assert.NotContains(t, string(data), "jobs")
	})

	t.Run("header is prepended", func(t *testing.T) {
		t.Parallel()

		data, err := (&config.Config{Theme: "dark"}).ToYAMLWithHeader("# mdview")
		require.NoError(t, err)
		assert.Regexp(t, `^# mdview\n\n`, string(data))
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("parses valid YAML", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
theme: solarized-dark
width: 90
detect_languages: false
debounce: 300ms
theme_overrides:
  keyword: "#cc0000"
ignore:
  - "vendor/**"
`)
		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, "solarized-dark", cfg.Theme)
		assert.Equal(t, 90, cfg.Width)
		assert.False(t, cfg.LanguageDetection())
		assert.Equal(t, 300*time.Millisecond, cfg.Debounce)
		assert.Equal(t, "#cc0000", cfg.ThemeOverrides["keyword"])
		assert.Equal(t, []string{"vendor/**"}, cfg.Ignore)
	})

	t.Run("initializes empty overrides map", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte(`theme: dark`))
		require.NoError(t, err)
		assert.NotNil(t, cfg.ThemeOverrides)
		assert.Nil(t, cfg.DetectLanguages)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("theme: [unterminated"))
		require.Error(t, err)
	})

	t.Run("round trips", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		original.Width = 64
		data, err := original.ToYAML()
		require.NoError(t, err)

		parsed, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, original.Theme, parsed.Theme)
		assert.Equal(t, original.Width, parsed.Width)
		assert.Equal(t, original.Debounce, parsed.Debounce)
	})
}
