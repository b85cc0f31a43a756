package runner

import (
	"github.com/yaklabco/mdview/pkg/mdast"
)

// FileOutcome is the parse of one discovered file.
type FileOutcome struct {
	// Path is the absolute file path that was processed.
	Path string

	// Digest is the BLAKE3 digest of the content that was parsed.
	Digest string

	// Blocks is the parsed document. Nil when Error is set.
	Blocks []mdast.Block

	// Cached reports whether Blocks came from the digest cache.
	Cached bool

	// Error is set if the file could not be read.
	Error error
}

// Headings returns the table of contents of the outcome's document.
func (o FileOutcome) Headings() []mdast.TOCEntry {
	return mdast.TableOfContents(o.Blocks)
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files parsed or served from the cache.
	FilesProcessed int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// CacheHits is the number of files whose blocks came from the cache.
	CacheHits int

	// BlocksTotal is the number of blocks across all files.
	BlocksTotal int

	// BlocksByKind maps block kind names to counts.
	BlocksByKind map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed to be read.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{
		BlocksByKind: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Cached {
		r.Stats.CacheHits++
	}
	r.Stats.BlocksTotal += len(outcome.Blocks)
	for kind, n := range mdast.CountKinds(outcome.Blocks) {
		r.Stats.BlocksByKind[kind.String()] += n
	}
}
