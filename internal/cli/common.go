package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdview/internal/configloader"
	"github.com/yaklabco/mdview/internal/logging"
	"github.com/yaklabco/mdview/internal/ui/pretty"
	"github.com/yaklabco/mdview/pkg/config"
)

var (
	// ErrConfig marks failures to load or validate configuration.
	ErrConfig = errors.New("failed to load configuration")

	// ErrInvalidUsage marks bad flag values and argument combinations.
	ErrInvalidUsage = errors.New("invalid usage")
)

// commandEnv is the resolved state shared by every command that reads
// configuration.
type commandEnv struct {
	ctx     context.Context
	workDir string
	loaded  *configloader.LoadResult
}

// loadEnv loads configuration for cmd, with cliCfg holding the values set
// by command-line flags.
func loadEnv(cmd *cobra.Command, cliCfg *config.Config) (*commandEnv, error) {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		configPath = ""
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if len(loaded.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loaded.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldTheme, loaded.Config.Theme,
		logging.FieldWidth, loaded.Config.Width,
		logging.FieldJobs, loaded.Config.Jobs,
	)

	return &commandEnv{ctx: ctx, workDir: workDir, loaded: loaded}, nil
}

// colorMode returns the value of the persistent --color flag.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}

// colorEnabled reports whether output to w should be styled.
func colorEnabled(cmd *cobra.Command, w io.Writer) bool {
	return pretty.IsColorEnabled(colorMode(cmd), w)
}
