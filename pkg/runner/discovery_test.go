package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/mdview/pkg/config"
	"github.com/yaklabco/mdview/pkg/runner"
)

// writeTree creates each relative path under dir with content taken from
// the map, creating parent directories as needed.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

// relPaths converts discovered absolute paths back to slash-separated
// paths relative to dir.
func relPaths(t *testing.T, dir string, files []string) []string {
	t.Helper()

	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			t.Fatalf("filepath.Rel error: %v", err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func equalPaths(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"readme.md":                  "# Readme",
		"CHANGES.MD":                 "# Changes",
		"docs/guide.md":              "# Guide",
		"docs/api.markdown":          "# API",
		"docs/drafts/wip.md":         "# WIP",
		"vendor/pkg/doc.md":          "# Vendored",
		"node_modules/lib/readme.md": "# Module",
		"src/main.go":                "package main",
		"notes.txt":                  "notes",
		".hidden.md":                 "# Hidden",
		".git/config.md":             "# Git",
		"docs/.secret.md":            "# Secret",
	}

	tests := []struct {
		name     string
		opts     runner.Options
		expected []string
	}{
		{
			name: "directory walk skips hidden entries and other extensions",
			opts: runner.Options{Paths: []string{"."}},
			expected: []string{
				"CHANGES.MD", "docs/api.markdown", "docs/drafts/wip.md", "docs/guide.md",
				"node_modules/lib/readme.md", "readme.md", "vendor/pkg/doc.md",
			},
		},
		{
			name: "empty paths default to the working directory",
			opts: runner.Options{},
			expected: []string{
				"CHANGES.MD", "docs/api.markdown", "docs/drafts/wip.md", "docs/guide.md",
				"node_modules/lib/readme.md", "readme.md", "vendor/pkg/doc.md",
			},
		},
		{
			name: "exclude directory globs",
			opts: runner.Options{
				Paths:        []string{"."},
				ExcludeGlobs: []string{"vendor/**", "node_modules/**"},
			},
			expected: []string{"CHANGES.MD", "docs/api.markdown", "docs/drafts/wip.md", "docs/guide.md", "readme.md"},
		},
		{
			name: "double star prefix matches at any depth",
			opts: runner.Options{
				Paths:        []string{"docs"},
				ExcludeGlobs: []string{"**/drafts"},
			},
			expected: []string{"docs/api.markdown", "docs/guide.md"},
		},
		{
			name: "file name globs match the base name",
			opts: runner.Options{
				Paths:        []string{"docs"},
				ExcludeGlobs: []string{"*.markdown"},
			},
			expected: []string{"docs/drafts/wip.md", "docs/guide.md"},
		},
		{
			name: "configured ignore patterns are merged into excludes",
			opts: runner.Options{
				Paths:        []string{"."},
				ExcludeGlobs: []string{"vendor/**"},
				Config:       &config.Config{Ignore: []string{"node_modules/**", "docs/**"}},
			},
			expected: []string{"CHANGES.MD", "readme.md"},
		},
		{
			name: "include globs restrict discovery",
			opts: runner.Options{
				Paths:        []string{"."},
				IncludeGlobs: []string{"docs/*"},
			},
			expected: []string{"docs/api.markdown", "docs/guide.md"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{
				Paths:      []string{"docs"},
				Extensions: []string{".markdown"},
			},
			expected: []string{"docs/api.markdown"},
		},
		{
			name:     "explicit files are kept even when hidden",
			opts:     runner.Options{Paths: []string{"docs/.secret.md", "readme.md"}},
			expected: []string{"docs/.secret.md", "readme.md"},
		},
		{
			name:     "overlapping paths are de-duplicated",
			opts:     runner.Options{Paths: []string{"docs", "docs/guide.md", "./docs"}},
			expected: []string{"docs/api.markdown", "docs/drafts/wip.md", "docs/guide.md"},
		},
		{
			name:     "explicit file with another extension is ignored",
			opts:     runner.Options{Paths: []string{"notes.txt"}},
			expected: []string{},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, tree)

			opts := testCase.opts
			opts.WorkingDir = dir

			discovered, err := runner.Discover(context.Background(), opts)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}

			got := relPaths(t, dir, discovered)
			if !equalPaths(got, testCase.expected) {
				t.Errorf("Discover() = %v, want %v", got, testCase.expected)
			}
		})
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts runner.Options
	}{
		{"missing path", runner.Options{Paths: []string{"nonexistent"}}},
		{"malformed exclude glob", runner.Options{ExcludeGlobs: []string{"docs/[a-"}}},
		{"malformed include glob", runner.Options{IncludeGlobs: []string{"notes[ab"}}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			opts := testCase.opts
			opts.WorkingDir = t.TempDir()
			if _, err := runner.Discover(context.Background(), opts); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": "a", "b.md": "b"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{Paths: []string{"."}, WorkingDir: dir})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if !strings.Contains(err.Error(), "cancel") {
		t.Errorf("error %q does not mention cancellation", err)
	}
}

func TestDiscover_FileSymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"real.md": "content"})

	if err := os.Symlink(filepath.Join(dir, "real.md"), filepath.Join(dir, "link.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink(filepath.Join(dir, "missing.md"), filepath.Join(dir, "broken.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	discovered, err := runner.Discover(context.Background(), runner.Options{Paths: []string{"."}, WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	got := relPaths(t, dir, discovered)
	if want := []string{"link.md", "real.md"}; !equalPaths(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"real/doc.md": "content"})

	externalDir := t.TempDir()
	writeTree(t, externalDir, map[string]string{"external.md": "external"})

	if err := os.Symlink(externalDir, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	// A link back to the root must not cause an endless walk.
	if err := os.Symlink(dir, filepath.Join(dir, "loop")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	opts := runner.Options{Paths: []string{"."}, WorkingDir: dir}

	discovered, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(discovered) != 1 || !strings.HasSuffix(discovered[0], "doc.md") {
		t.Errorf("expected only real/doc.md without FollowSymlinks, got %v", discovered)
	}

	opts.FollowSymlinks = true
	discovered, err = runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	foundReal, foundExternal := false, false
	for _, f := range discovered {
		foundReal = foundReal || strings.HasSuffix(f, "doc.md")
		foundExternal = foundExternal || strings.HasSuffix(f, "external.md")
	}
	if len(discovered) != 2 || !foundReal || !foundExternal {
		t.Errorf("expected doc.md and external.md with FollowSymlinks, got %v", discovered)
	}
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	exts := runner.DefaultExtensions()
	if !equalPaths(exts, []string{".md", ".markdown"}) {
		t.Errorf("DefaultExtensions() = %v", exts)
	}
}

func TestValidatePattern(t *testing.T) {
	t.Parallel()

	for _, pattern := range []string{"*.md", "docs/**", "**/vendor", "{a,b}/*.md", "  "} {
		if err := runner.ValidatePattern(pattern); err != nil {
			t.Errorf("ValidatePattern(%q) = %v, want nil", pattern, err)
		}
	}
	for _, pattern := range []string{"[a-", "docs/[ab"} {
		if err := runner.ValidatePattern(pattern); err == nil {
			t.Errorf("ValidatePattern(%q) = nil, want error", pattern)
		}
	}
}
