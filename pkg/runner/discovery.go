package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrNoFiles is returned when discovery finds no Markdown files to parse.
var ErrNoFiles = errors.New("no markdown files found")

// walker carries the state shared by one discovery pass.
type walker struct {
	ctx        context.Context //nolint:containedctx // Scoped to a single Discover call.
	workDir    string
	extensions []string
	include    *matcher
	exclude    *matcher
	follow     bool
	visited    map[string]struct{}
}

// Discover finds Markdown files matching opts. It returns a sorted,
// de-duplicated list of absolute file paths. Explicitly named files are kept
// even when they are hidden; directory walks skip hidden entries.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	include, err := compilePatterns(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	exclude, err := compilePatterns(opts.excludes())
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}

	w := &walker{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		include:    include,
		exclude:    exclude,
		follow:     opts.FollowSymlinks,
		visited:    make(map[string]struct{}),
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if w.matchesFile(absPath) {
				add(absPath)
			}
			continue
		}

		discovered, err := w.walk(absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walk recursively collects matching files below root.
func (w *walker) walk(root string) ([]string, error) {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if _, done := w.visited[real]; done {
			return nil, nil
		}
		w.visited[real] = struct{}{}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && (strings.HasPrefix(entry.Name(), ".") || w.exclude.match(w.rel(path))) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			sub, handled := w.followLink(path)
			if handled {
				files = append(files, sub...)
				return nil
			}
		}

		if w.matchesFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}
	return files, nil
}

// followLink resolves a symlink found during a walk. It reports handled for
// broken links and directory links, which the caller must not treat as
// files. The files below a directory link are returned only when symlinks
// are followed.
func (w *walker) followLink(path string) ([]string, bool) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, true
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil, true
	}
	if !info.IsDir() {
		return nil, false
	}
	if !w.follow || w.exclude.match(w.rel(path)) {
		return nil, true
	}
	// Walk the target rather than the link; WalkDir does not descend into
	// a symlinked root on its own.
	files, err := w.walk(target)
	if err != nil {
		return nil, true
	}
	return files, true
}

func (w *walker) rel(path string) string {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// matchesFile applies the extension, exclude and include filters.
func (w *walker) matchesFile(path string) bool {
	if !hasMatchingExtension(path, w.extensions) {
		return false
	}
	relPath := w.rel(path)
	if w.exclude.match(relPath) {
		return false
	}
	if !w.include.empty() && !w.include.match(relPath) {
		return false
	}
	return true
}

func hasMatchingExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
