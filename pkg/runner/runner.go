package runner

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/yaklabco/mdview/pkg/config"
	"github.com/yaklabco/mdview/pkg/langdetect"
	"github.com/yaklabco/mdview/pkg/markdown"
	"github.com/yaklabco/mdview/pkg/mdast"
)

// Runner parses Markdown files with a bounded worker pool.
type Runner struct {
	// Cache skips reparsing files whose content digest is unchanged.
	// Nil disables caching.
	Cache *Cache
}

// New creates a Runner backed by cache, which may be nil.
func New(cache *Cache) *Runner {
	return &Runner{Cache: cache}
}

// Run discovers files under opts.Paths and parses them concurrently.
// Outcomes are ordered by path regardless of completion order. When nothing
// is discovered the empty result is returned together with ErrNoFiles.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, ErrNoFiles
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	cfg := opts.effectiveConfig()

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, cfg)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, cfg *config.Config) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.ParseFile(path, cfg)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ParseFile reads and parses a single file. Read failures are reported in
// the outcome's Error field.
func (r *Runner) ParseFile(path string, cfg *config.Config) FileOutcome {
	content, err := os.ReadFile(path)
	if err != nil {
		if r.Cache != nil {
			r.Cache.Forget(cacheKey(path, false))
			r.Cache.Forget(cacheKey(path, true))
		}
		return FileOutcome{Path: path, Error: fmt.Errorf("read %s: %w", path, err)}
	}
	return r.ParseContent(path, content, cfg)
}

// ParseContent parses content recorded under path, consulting the cache.
func (r *Runner) ParseContent(path string, content []byte, cfg *config.Config) FileOutcome {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	digest := Digest(content)
	outcome := FileOutcome{Path: path, Digest: digest}

	key := cacheKey(path, cfg.LanguageDetection())

	if r.Cache != nil {
		if blocks, ok := r.Cache.Lookup(key, digest); ok {
			outcome.Blocks = blocks
			outcome.Cached = true
			return outcome
		}
	}

	outcome.Blocks = parse(string(content), cfg)
	if r.Cache != nil {
		r.Cache.Store(key, digest, outcome.Blocks)
	}
	return outcome
}

// cacheKey folds the language detection setting into the path, since the
// digest covers only the content.
func cacheKey(path string, detect bool) string {
	if detect {
		return path + "\x00detect"
	}
	return path
}

func parse(text string, cfg *config.Config) []mdast.Block {
	blocks := markdown.Parse(text)
	if cfg.LanguageDetection() {
		blocks = langdetect.Annotate(blocks)
	}
	return blocks
}
