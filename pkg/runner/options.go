// Package runner discovers Markdown files and parses them concurrently.
package runner

import "github.com/yaklabco/mdview/pkg/config"

// Options controls a multi-file parse run.
type Options struct {
	// Paths are the user-specified files or directories to parse.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to match glob patterns. If empty, the process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths when non-empty.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files or directories. The loader merges
	// the configured ignore list into these.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs caps the number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run. A nil Config
	// behaves like config.NewConfig().
	Config *config.Config
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveConfig() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}

// excludes returns ExcludeGlobs followed by the configured ignore patterns.
func (o Options) excludes() []string {
	patterns := append([]string(nil), o.ExcludeGlobs...)
	if o.Config != nil {
		patterns = append(patterns, o.Config.Ignore...)
	}
	return patterns
}
