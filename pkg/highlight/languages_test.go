package highlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdview/pkg/highlight"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"go", "go"},
		{"GoLang", "go"},
		{" py ", "python"},
		{"JS", "javascript"},
		{"tsx", "typescript"},
		{"c++", "cpp"},
		{"C#", "csharp"},
		{"objective-c", "objc"},
		{"sh", "shell"},
		{"zsh", "shell"},
		{"PostgreSQL", "sql"},
		{"yml", "yaml"},
		{"xml", "html"},
		{"Dockerfile", "dockerfile"},
		{"kt", "kotlin"},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			lang, ok := highlight.Resolve(testCase.input)
			require.True(t, ok)
			assert.Equal(t, testCase.expected, lang.Name)
		})
	}
}

func TestResolve_Unknown(t *testing.T) {
	t.Parallel()

	_, ok := highlight.Resolve("cobol")
	assert.False(t, ok)

	_, ok = highlight.Resolve("")
	assert.False(t, ok)
}

func TestLanguages(t *testing.T) {
	t.Parallel()

	names := highlight.Languages()
	assert.GreaterOrEqual(t, len(names), 25)
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "swift")
	assert.Contains(t, names, "toml")

	for _, name := range names {
		lang, ok := highlight.Resolve(name)
		require.True(t, ok, name)
		assert.Equal(t, name, lang.Name)
	}
}

func TestRole_String(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, len(highlight.Roles()))
	for _, role := range highlight.Roles() {
		names = append(names, role.String())
	}
	assert.Equal(t, []string{"plain", "comment", "string", "number", "keyword", "type", "function", "key"}, names)
}
