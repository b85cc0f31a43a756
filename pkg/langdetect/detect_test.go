package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdview/pkg/highlight"
	"github.com/yaklabco/mdview/pkg/langdetect"
	"github.com/yaklabco/mdview/pkg/mdast"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "shebang bash",
			content:  "#!/bin/bash\necho hello",
			expected: "shell",
		},
		{
			name:     "shebang sh",
			content:  "#!/bin/sh\necho hello",
			expected: "shell",
		},
		{
			name:     "shebang python",
			content:  "#!/usr/bin/env python3\nprint('hello')",
			expected: "python",
		},
		{
			name:     "go code",
			content:  "package main\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}",
			expected: "go",
		},
		{
			name:     "python code",
			content:  "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()",
			expected: "python",
		},
		{
			name:     "javascript code",
			content:  "const x = () => { return 42; };\nconsole.log(x());",
			expected: "javascript",
		},
		{
			name:     "json object",
			content:  `{"key": "value", "number": 123}`,
			expected: "json",
		},
		{
			name:     "yaml content",
			content:  "key: value\nother: 123\nlist:\n  - item1\n  - item2",
			expected: "yaml",
		},
		{
			name:     "toml content",
			content:  "[package]\nname = \"mdview\"\nversion = \"0.1.0\"",
			expected: "toml",
		},
		{
			name:     "rust code",
			content:  "fn main() {\n    println!(\"Hello, world!\");\n}",
			expected: "rust",
		},
		{
			name:     "swift code",
			content:  "import Foundation\n\nfunc greet(name: String) -> String {\n    return name\n}",
			expected: "swift",
		},
		{
			name:     "plain text is not guessed",
			content:  "just some text without any code patterns",
			expected: "",
		},
		{
			name:     "empty content",
			content:  "",
			expected: "",
		},
		{
			name:     "whitespace only",
			content:  " \n\t\n",
			expected: "",
		},
		{
			name:     "sql query",
			content:  "SELECT * FROM users WHERE id = 1;",
			expected: "sql",
		},
		{
			name:     "html content",
			content:  "<!DOCTYPE html>\n<html>\n<head><title>Test</title></head>\n<body></body>\n</html>",
			expected: "html",
		},
		{
			name:     "dockerfile",
			content:  "FROM golang:1.21\nWORKDIR /app\nCOPY . .\nRUN go build",
			expected: "dockerfile",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, langdetect.Detect([]byte(testCase.content)))
		})
	}
}

func TestDetect_ShebangTakesPrecedence(t *testing.T) {
	t.Parallel()

	// Content looks like Python but has bash shebang.
	content := []byte("#!/bin/bash\ndef foo():\n    pass")
	assert.Equal(t, "shell", langdetect.Detect(content), "shebang should take precedence")
}

func TestDetect_ResultsResolve(t *testing.T) {
	t.Parallel()

	samples := []string{
		"#!/usr/bin/env ruby\nputs 1",
		"#!/usr/bin/env node\nconsole.log(1)",
		"package main",
		"SELECT 1",
	}

	for _, sample := range samples {
		lang := langdetect.Detect([]byte(sample))
		if lang == "" {
			continue
		}
		_, ok := highlight.Resolve(lang)
		assert.True(t, ok, "%q detected as unknown language %q", sample, lang)
	}
}

func TestAnnotate(t *testing.T) {
	t.Parallel()

	blocks := []mdast.Block{
		mdast.CodeBlock{Code: "package main\n\nfunc main() {}"},
		mdast.CodeBlock{Language: "text", Code: "package main"},
		mdast.CodeBlock{Code: "just some text without any code patterns"},
		mdast.Paragraph{},
	}

	got := langdetect.Annotate(blocks)

	assert.Equal(t, mdast.CodeBlock{Language: "go", Code: "package main\n\nfunc main() {}"}, got[0])
	assert.Equal(t, blocks[1], got[1], "tagged blocks are kept")
	assert.Equal(t, blocks[2], got[2])
	assert.Equal(t, blocks[3], got[3])
	assert.Empty(t, blocks[0].(mdast.CodeBlock).Language, "input is not modified")
}
