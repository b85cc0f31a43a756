package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdview/internal/logging"
	"github.com/yaklabco/mdview/pkg/config"
	"github.com/yaklabco/mdview/pkg/fsutil"
	"github.com/yaklabco/mdview/pkg/highlight"
	"github.com/yaklabco/mdview/pkg/langdetect"
	"github.com/yaklabco/mdview/pkg/preview"
)

// ErrUnknownLanguage is returned when --lang names no supported language.
var ErrUnknownLanguage = errors.New("unknown language")

type highlightFlags struct {
	lang   string
	theme  string
	asJSON bool
	list   bool
}

// highlightJSON is the --json output of the highlight command.
type highlightJSON struct {
	Language string    `json:"language"`
	Runs     []runJSON `json:"runs"`
}

type runJSON struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Role   string `json:"role"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
	Text   string `json:"text"`
}

func newHighlightCommand() *cobra.Command {
	var cfg config.Config
	flags := &highlightFlags{}

	cmd := &cobra.Command{
		Use:   "highlight [file]",
		Short: "Syntax-highlight source code",
		Long: `Tokenize source code and print it colored with the configured theme.

Reads standard input when no file is given. The language comes from --lang,
then from the file extension, then from content detection.

Examples:
  mdview highlight main.go
  cat script.py | mdview highlight --lang python
  mdview highlight --json --lang sql query.sql
  mdview highlight --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.list {
				return writeLanguages(cmd.OutOrStdout())
			}
			if cmd.Flags().Changed("theme") {
				cfg.Theme = flags.theme
			}
			return runHighlight(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.lang, "lang", "l", "", "language of the code (name or alias)")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "theme preset or chroma:<style>")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "print the run sequence as JSON")
	cmd.Flags().BoolVar(&flags.list, "list", false, "list supported languages and aliases")

	return cmd
}

func runHighlight(cmd *cobra.Command, args []string, cfg *config.Config, flags *highlightFlags) error {
	logger := logging.Default()

	env, err := loadEnv(cmd, cfg)
	if err != nil {
		return err
	}

	var path string
	var content []byte
	if len(args) == 1 {
		path = args[0]
		content, _, err = fsutil.ReadFile(env.ctx, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
	} else {
		content, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	language, err := chooseLanguage(flags.lang, path, content, env.loaded.Config.LanguageDetection())
	if err != nil {
		return err
	}
	logger.Debug("highlighting", logging.FieldInput, path, logging.FieldLanguage, language)

	code := string(content)
	if flags.asJSON {
		return writeRunsJSON(cmd.OutOrStdout(), code, language)
	}

	out := cmd.OutOrStdout()
	renderer := preview.NewRenderer(preview.Options{
		Theme: env.loaded.Theme,
		Width: renderWidth(env.loaded.Config.Width, out),
		Color: colorEnabled(cmd, out),
	})
	_, err = io.WriteString(out, renderer.RenderCode(strings.TrimSuffix(code, "\n"), language))
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// chooseLanguage resolves the language to highlight with. An explicit name
// must be supported; otherwise the file extension and then the content are
// consulted, and "" means plain text.
func chooseLanguage(explicit, path string, content []byte, detect bool) (string, error) {
	if explicit != "" {
		lang, ok := highlight.Resolve(explicit)
		if !ok {
			return "", fmt.Errorf("%w %q; run 'mdview highlight --list' for the supported names",
				ErrUnknownLanguage, explicit)
		}
		return lang.Name, nil
	}

	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		if lang, ok := highlight.Resolve(ext); ok {
			return lang.Name, nil
		}
	}
	if base := filepath.Base(path); path != "" {
		if lang, ok := highlight.Resolve(base); ok {
			return lang.Name, nil
		}
	}

	if detect {
		return langdetect.Detect(content), nil
	}
	return "", nil
}

func writeRunsJSON(w io.Writer, code, language string) error {
	output := highlightJSON{Language: language, Runs: []runJSON{}}
	for _, run := range highlight.Highlight(code, language) {
		output.Runs = append(output.Runs, runJSON{
			Start:  run.Range.StartOffset,
			End:    run.Range.EndOffset,
			Role:   run.Role.String(),
			Bold:   run.Emphasis.Has(highlight.EmphasisBold),
			Italic: run.Emphasis.Has(highlight.EmphasisItalic),
			Text:   run.Text(code),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode runs: %w", err)
	}
	return nil
}

func writeLanguages(w io.Writer) error {
	for _, name := range highlight.Languages() {
		lang, _ := highlight.Resolve(name)
		line := name
		if len(lang.Aliases) > 0 {
			line += " (" + strings.Join(lang.Aliases, ", ") + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write languages: %w", err)
		}
	}
	return nil
}
