// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldConfig   = "config"
	FieldTheme    = "theme"
	FieldWidth    = "width"
	FieldJobs     = "jobs"
	FieldFormat   = "format"
	FieldDebounce = "debounce"

	// Document fields.
	FieldBlocks   = "blocks"
	FieldHeadings = "headings"
	FieldLanguage = "language"
	FieldRuns     = "runs"
	FieldDigest   = "digest"
	FieldCached   = "cached"
	FieldEvent    = "event"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesFailed     = "files_failed"
	FieldCacheHits       = "cache_hits"
	FieldMismatches      = "mismatches"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
