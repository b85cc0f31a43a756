package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdview/internal/logging"
	"github.com/yaklabco/mdview/pkg/config"
	"github.com/yaklabco/mdview/pkg/preview"
	"github.com/yaklabco/mdview/pkg/runner"
)

// ErrReported wraps errors that a command has already shown to the user, so
// the entry point sets the exit code without logging them again.
var ErrReported = errors.New("error already reported")

type renderFlags struct {
	theme string
	width int
}

func newRenderCommand() *cobra.Command {
	var cfg config.Config
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a Markdown file in the terminal",
		Long: `Render a Markdown file with styled headings, highlighted code, tables
and task lists.

The width defaults to the terminal width, or 80 columns when output is not a
terminal. A file that cannot be read is rendered as an error message.

Examples:
  mdview render README.md
  mdview render --theme nord --width 100 docs/guide.md
  mdview render --theme chroma:monokai README.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyRenderFlags(cmd, &cfg, flags)
			return runRender(cmd, args[0], &cfg)
		},
	}

	addRenderFlags(cmd, flags)

	return cmd
}

func addRenderFlags(cmd *cobra.Command, flags *renderFlags) {
	cmd.Flags().StringVar(&flags.theme, "theme", "", "theme preset or chroma:<style>")
	cmd.Flags().IntVar(&flags.width, "width", 0, "render width in columns (0 = terminal width)")
}

func applyRenderFlags(cmd *cobra.Command, cfg *config.Config, flags *renderFlags) {
	if cmd.Flags().Changed("theme") {
		cfg.Theme = flags.theme
	}
	if cmd.Flags().Changed("width") {
		cfg.Width = flags.width
	}
}

func runRender(cmd *cobra.Command, path string, cfg *config.Config) error {
	env, err := loadEnv(cmd, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderer := newDocumentRenderer(cmd, env, out)

	outcome := runner.New(nil).ParseFile(path, env.loaded.Config)
	if err := writeDocument(out, renderer, outcome); err != nil {
		return err
	}
	if outcome.Error != nil {
		return fmt.Errorf("%w: %w", ErrReported, outcome.Error)
	}
	return nil
}

func newDocumentRenderer(cmd *cobra.Command, env *commandEnv, out io.Writer) *preview.Renderer {
	width := renderWidth(env.loaded.Config.Width, out)
	logging.Default().Debug("renderer ready",
		logging.FieldTheme, env.loaded.Config.Theme,
		logging.FieldWidth, width,
	)
	return preview.NewRenderer(preview.Options{
		Theme: env.loaded.Theme,
		Width: width,
		Color: colorEnabled(cmd, out),
	})
}

// writeDocument renders the blocks of outcome, or an error document when
// the file could not be read.
func writeDocument(w io.Writer, renderer *preview.Renderer, outcome runner.FileOutcome) error {
	blocks := outcome.Blocks
	if outcome.Error != nil {
		blocks = preview.ErrorDocument(outcome.Error)
	}

	rendered := renderer.Render(blocks)
	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}
	if _, err := io.WriteString(w, rendered); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// renderWidth returns the configured width, else the width of the terminal
// behind w, else the renderer default.
func renderWidth(configured int, w io.Writer) int {
	if configured > 0 {
		return configured
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return preview.DefaultWidth
}
