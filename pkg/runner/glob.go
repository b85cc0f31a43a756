package runner

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// matcher tests slash-separated relative paths against a set of globs.
// "*" stops at a separator and "**" crosses any number of them.
type matcher struct {
	globs []glob.Glob
}

// compilePatterns validates patterns and compiles them into a matcher.
func compilePatterns(patterns []string) (*matcher, error) {
	m := &matcher{}
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		for _, variant := range patternVariants(pattern) {
			g, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("compile glob %q: %w", pattern, err)
			}
			m.globs = append(m.globs, g)
		}
	}
	return m, nil
}

// ValidatePattern reports whether pattern is a usable ignore or include glob.
func ValidatePattern(pattern string) error {
	_, err := compilePatterns([]string{pattern})
	return err
}

// patternVariants expands a pattern so that "**/x" also matches a top-level
// "x" and "dir/**" also matches "dir" itself.
func patternVariants(pattern string) []string {
	variants := []string{pattern}
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok && rest != "" {
		variants = append(variants, rest)
	}
	if dir, ok := strings.CutSuffix(pattern, "/**"); ok && dir != "" {
		variants = append(variants, dir)
	}
	return variants
}

func (m *matcher) empty() bool {
	return m == nil || len(m.globs) == 0
}

// match reports whether relPath or its base name matches any glob.
func (m *matcher) match(relPath string) bool {
	if m.empty() {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	base := path.Base(relPath)
	for _, g := range m.globs {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}
	return false
}
