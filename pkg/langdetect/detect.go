// Package langdetect guesses the language of fenced code that carries no
// language tag. Guesses are limited to languages the highlighter supports,
// so a detected name always resolves with highlight.Resolve.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/mdview/pkg/highlight"
	"github.com/yaklabco/mdview/pkg/mdast"
)

// Language names returned by the pattern detectors.
const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langShell      = "shell"
	langTOML       = "toml"
	langSwift      = "swift"
)

// classifierCandidates are the go-enry names offered to the classifier.
//
//nolint:gochecknoglobals // Read-only candidate list.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript", "Ruby", "Rust", "Java", "Kotlin", "Swift",
	"C", "C++", "C#", "Objective-C", "PHP", "SQL", "JSON", "YAML", "TOML", "HTML", "CSS", "Scala",
	"Dart", "Lua", "Perl", "R", "Dockerfile",
}

// Detect returns the highlighter language name for content, or "" when no
// language can be identified with confidence.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return ""
	}

	// Strategy 1: Check shebang first (most reliable).
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	// Strategy 2: Check for language-specific patterns before using classifier.
	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	// Strategy 3: Only use the classifier result when it is unambiguous.
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return ""
}

// Annotate returns blocks with a detected language filled in for every
// untagged code block. Blocks whose language cannot be detected, and all
// other blocks, are returned unchanged. The input slice is not modified.
func Annotate(blocks []mdast.Block) []mdast.Block {
	out := make([]mdast.Block, len(blocks))
	for i, block := range blocks {
		code, ok := block.(mdast.CodeBlock)
		if ok && code.Language == "" {
			code.Language = Detect([]byte(code.Code))
			block = code
		}
		out[i] = block
	}
	return out
}

// detectByPattern checks for language-specific patterns that are highly indicative.
func detectByPattern(content []byte) string {
	contentStr := string(content)
	trimmed := bytes.TrimSpace(content)

	detectors := []func() string{
		func() string { return detectGo(trimmed) },
		func() string { return detectSwift(contentStr) },
		func() string { return detectPython(contentStr) },
		func() string { return detectHTML(trimmed) },
		func() string { return detectTOML(content) },
		func() string { return detectJSON(trimmed) },
		func() string { return detectDockerfile(content, trimmed) },
		func() string { return detectSQL(contentStr) },
		func() string { return detectRust(contentStr) },
		func() string { return detectJavaScript(contentStr) },
		func() string { return detectYAML(content) },
	}
	for _, detect := range detectors {
		if lang := detect(); lang != "" {
			return lang
		}
	}
	return ""
}

// detectGo checks for Go language patterns.
func detectGo(trimmed []byte) string {
	if bytes.HasPrefix(trimmed, []byte("package ")) {
		return langGo
	}
	return ""
}

// detectPython checks for Python language patterns.
func detectPython(contentStr string) string {
	// def/class definitions with colon.
	if strings.Contains(contentStr, "def ") && strings.Contains(contentStr, "):") {
		return langPython
	}
	// Python import statements (not Go which uses "import (").
	if strings.Contains(contentStr, "import ") && !strings.Contains(contentStr, "import (") {
		if strings.Contains(contentStr, "from ") || strings.HasPrefix(strings.TrimSpace(contentStr), "import ") {
			return langPython
		}
	}
	// Python dunder variables.
	if strings.Contains(contentStr, "__name__") || strings.Contains(contentStr, "__main__") {
		return langPython
	}
	return ""
}

// detectHTML checks for HTML language patterns.
func detectHTML(trimmed []byte) string {
	lowerTrimmed := bytes.ToLower(trimmed)
	if bytes.Contains(lowerTrimmed, []byte("<!doctype html")) ||
		bytes.Contains(lowerTrimmed, []byte("<html")) ||
		bytes.Contains(lowerTrimmed, []byte("<head>")) ||
		bytes.Contains(lowerTrimmed, []byte("<body>")) {
		return langHTML
	}
	return ""
}

// detectJSON checks for JSON patterns.
func detectJSON(trimmed []byte) string {
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) {
		return langJSON
	}
	return ""
}

// detectDockerfile checks for Dockerfile patterns.
func detectDockerfile(content, trimmed []byte) string {
	if bytes.HasPrefix(trimmed, []byte("FROM ")) ||
		(bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN "))) ||
		(bytes.Contains(content, []byte("WORKDIR ")) && bytes.Contains(content, []byte("COPY "))) {
		return langDockerfile
	}
	return ""
}

// detectSQL checks for SQL patterns.
func detectSQL(contentStr string) string {
	trimmedUpper := strings.ToUpper(strings.TrimSpace(contentStr))
	for _, prefix := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE ", "WITH "} {
		if strings.HasPrefix(trimmedUpper, prefix) {
			return langSQL
		}
	}
	return ""
}

// detectRust checks for Rust language patterns.
func detectRust(contentStr string) string {
	if strings.Contains(contentStr, "fn main()") ||
		strings.Contains(contentStr, "println!") ||
		strings.Contains(contentStr, "let mut ") {
		return langRust
	}
	return ""
}

// detectSwift checks for Swift patterns that JavaScript never uses.
func detectSwift(contentStr string) string {
	if strings.Contains(contentStr, "import SwiftUI") ||
		strings.Contains(contentStr, "import Foundation") ||
		(strings.Contains(contentStr, "func ") && strings.Contains(contentStr, ") -> ")) {
		return langSwift
	}
	return ""
}

// detectJavaScript checks for JavaScript patterns.
func detectJavaScript(contentStr string) string {
	if strings.Contains(contentStr, "=>") ||
		strings.Contains(contentStr, "const ") ||
		strings.Contains(contentStr, "let ") ||
		strings.Contains(contentStr, "console.log") {
		return langJavaScript
	}
	return ""
}

// detectTOML checks for a [table] header followed by key = value lines.
func detectTOML(content []byte) string {
	hasTable, assignments := false, 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		switch {
		case len(line) == 0 || line[0] == '#':
		case line[0] == '[' && line[len(line)-1] == ']':
			hasTable = true
		case bytes.Contains(line, []byte(" = ")):
			assignments++
		}
	}
	if hasTable && assignments > 0 {
		return langTOML
	}
	return ""
}

// detectYAML checks for YAML patterns by counting key: value pairs.
func detectYAML(content []byte) string {
	lines := bytes.Split(content, []byte("\n"))
	yamlKeyCount := 0

	for _, line := range lines {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		// Simple key: value (identifier followed by colon and space).
		// Exclude lines that look like code (contain parentheses, brackets).
		if bytes.Contains(line, []byte(": ")) {
			if !bytes.Contains(line, []byte("(")) &&
				!bytes.Contains(line, []byte("{")) &&
				!bytes.HasPrefix(line, []byte(`"`)) {
				yamlKeyCount++
			}
		}
		// YAML list item at root level.
		if bytes.HasPrefix(line, []byte("- ")) {
			yamlKeyCount++
		}
	}

	if yamlKeyCount >= 2 {
		return langYAML
	}
	return ""
}

// normalize maps a go-enry language name onto the highlighter's canonical
// name, or "" when the highlighter does not know it.
func normalize(lang string) string {
	if lang == "Shell" {
		return langShell
	}
	resolved, ok := highlight.Resolve(lang)
	if !ok {
		return ""
	}
	return resolved.Name
}
