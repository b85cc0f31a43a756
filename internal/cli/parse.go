package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdview/internal/logging"
	"github.com/yaklabco/mdview/pkg/config"
	"github.com/yaklabco/mdview/pkg/fsutil"
	goldmarkparser "github.com/yaklabco/mdview/pkg/parser/goldmark"
	"github.com/yaklabco/mdview/pkg/reporter"
	"github.com/yaklabco/mdview/pkg/runner"
)

var (
	// ErrParseFailures is returned when one or more files could not be parsed.
	ErrParseFailures = errors.New("some files could not be parsed")

	// ErrCheckMismatch is returned when --check finds block counts that
	// differ from the goldmark reference parser.
	ErrCheckMismatch = errors.New("block structure differs from reference parser")
)

type parseFlags struct {
	format   string
	flavor   string
	ignore   []string
	compact  bool
	noDetect bool
	check    bool
}

func newParseCommand() *cobra.Command {
	var cfg config.Config
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Parse Markdown files into blocks",
		Long:  parseLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, &cfg, flags)
		},
	}

	addParseFlags(cmd, &cfg, flags)

	return cmd
}

const parseLongDescription = `Parse Markdown files and print their block structure.

By default, parses all .md and .markdown files in the current directory
and subdirectories. Specify paths to parse specific files or directories.

Examples:
  mdview parse                      # Parse current directory as JSON
  mdview parse docs/                # Parse the docs directory
  mdview parse README.md            # Parse a single file
  mdview parse --format toc         # Print the heading outline of each file
  mdview parse --format summary     # Print a per-file table with totals
  mdview parse --check              # Cross-check block counts with goldmark`

func addParseFlags(cmd *cobra.Command, cfg *config.Config, flags *parseFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "json", "output format: json, toc, text, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.noDetect, "no-detect", false, "do not guess the language of untagged code blocks")
	cmd.Flags().BoolVar(&flags.check, "check", false, "cross-check block counts against the goldmark parser")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "gfm", "reference parser flavor for --check: commonmark, gfm")
}

func runParse(cmd *cobra.Command, args []string, cfg *config.Config, flags *parseFlags) error {
	logger := logging.Default()

	// Only set values that were explicitly provided via CLI flags.
	if cmd.Flags().Changed("format") {
		format, err := reporter.ParseFormat(flags.format)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		cfg.Format = config.OutputFormat(format)
	}
	cfg.Ignore = flags.ignore
	if cmd.Flags().Changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}
	if flags.noDetect {
		detect := false
		cfg.DetectLanguages = &detect
	}

	env, err := loadEnv(cmd, cfg)
	if err != nil {
		return err
	}
	finalCfg := env.loaded.Config

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	runOpts := runner.Options{
		Paths:      args,
		WorkingDir: env.workDir,
		Extensions: runner.DefaultExtensions(),
		Jobs:       finalCfg.Jobs,
		Config:     finalCfg,
	}

	logger.Debug("starting parse run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(nil).Run(env.ctx, runOpts)
	if err != nil {
		return fmt.Errorf("parse run failed: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowSummary: format == reporter.FormatText,
		Compact:     flags.compact,
		WorkingDir:  env.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(env.ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	logger.Debug("parse run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldCacheHits, result.Stats.CacheHits,
	)

	if flags.check {
		if err := crossCheck(env.ctx, result, finalCfg.Flavor); err != nil {
			return err
		}
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrParseFailures
	}
	return nil
}

// crossCheck reparses every successfully parsed file with goldmark and logs
// each block kind whose count disagrees.
func crossCheck(ctx context.Context, result *runner.Result, flavor config.Flavor) error {
	logger := logging.Default()
	reference := goldmarkparser.New(string(flavor))

	mismatches := 0
	for _, file := range result.Files {
		if file.Error != nil {
			continue
		}

		content, _, err := fsutil.ReadFile(ctx, file.Path)
		if err != nil {
			return fmt.Errorf("check %s: %w", file.Path, err)
		}
		outline, err := reference.Outline(ctx, content)
		if err != nil {
			return fmt.Errorf("check %s: %w", file.Path, err)
		}

		for _, mismatch := range goldmarkparser.Compare(outline, file.Blocks) {
			logger.Warn("block count mismatch",
				logging.FieldPath, file.Path,
				"detail", mismatch.String(),
			)
			mismatches++
		}
	}

	logger.Debug("cross-check complete",
		logging.FieldFiles, len(result.Files),
		logging.FieldMismatches, mismatches,
	)
	if mismatches > 0 {
		return fmt.Errorf("%w: %d mismatches", ErrCheckMismatch, mismatches)
	}
	return nil
}
