package config_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdview/pkg/config"
)

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     config.TemplateOptions
		contains []string
	}{
		{
			name:     "minimal",
			opts:     config.TemplateOptions{},
			contains: []string{"# mdview configuration", "theme: dark", "# width: 0"},
		},
		{
			name: "full lists themes",
			opts: config.TemplateOptions{Full: true, Themes: []string{"dark", "light", "nord"}},
			contains: []string{
				"flavor: gfm",
				"# Available presets: dark, light, nord",
				"debounce: 150ms",
				"detect_languages: true",
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			data, err := config.GenerateTemplate(testCase.opts)
			require.NoError(t, err)
			for _, want := range testCase.contains {
				assert.Contains(t, string(data), want)
			}
		})
	}
}

func TestGenerateTemplate_LoadsBack(t *testing.T) {
	t.Parallel()

	for _, full := range []bool{false, true} {
		data, err := config.GenerateTemplate(config.TemplateOptions{Full: full, Themes: []string{"dark"}})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultTheme, cfg.Theme)
		if full {
			assert.Equal(t, config.DefaultDebounce, cfg.Debounce)
			assert.True(t, cfg.LanguageDetection())
		}
	}
}

func TestGenerateTemplate_JSON(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, config.DefaultTheme, parsed["theme"])
	assert.Equal(t, "150ms", parsed["debounce"])
}

func TestGenerateTemplate_WrapsLongThemeList(t *testing.T) {
	t.Parallel()

	themes := strings.Fields(strings.Repeat("solarized-dark ", 12))
	data, err := config.GenerateTemplate(config.TemplateOptions{Full: true, Themes: themes})
	require.NoError(t, err)

	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, "solarized") {
			assert.LessOrEqual(t, len(line), 72)
		}
	}
}
