package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdview/internal/logging"
	"github.com/yaklabco/mdview/pkg/reporter"
	"github.com/yaklabco/mdview/pkg/runner"
)

func newTOCCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toc <file>",
		Short: "Print the table of contents of a Markdown file",
		Long: `Print the headings of a Markdown file as an indented outline.

Examples:
  mdview toc README.md
  mdview toc --color never docs/guide.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTOC(cmd, args[0])
		},
	}

	return cmd
}

func runTOC(cmd *cobra.Command, path string) error {
	env, err := loadEnv(cmd, nil)
	if err != nil {
		return err
	}

	outcome := runner.New(nil).ParseFile(path, env.loaded.Config)
	if outcome.Error != nil {
		return outcome.Error
	}

	logging.Default().Debug("parsed document",
		logging.FieldPath, path,
		logging.FieldBlocks, len(outcome.Blocks),
		logging.FieldHeadings, len(outcome.Headings()),
	)

	rep := reporter.NewTOCReporter(reporter.Options{
		Writer: cmd.OutOrStdout(),
		Format: reporter.FormatTOC,
		Color:  colorMode(cmd),
	})
	return rep.WriteTOC(outcome.Blocks)
}
