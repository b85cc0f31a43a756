package cli

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdview/internal/ui/pretty"
)

// flagLine splits a pflag usage line into indent, flag names with their
// value type, and description.
//
//nolint:gochecknoglobals // Compiled once, read-only afterwards.
var flagLine = regexp.MustCompile(`^(\s*)(\S.*?)\s{2,}(\S.*)$`)

// HelpFormatter provides styled help output for Cobra commands. Its styles
// come from the same palette the reporters use.
type HelpFormatter struct {
	command lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))
	return &HelpFormatter{
		command: styles.FilePath,
		heading: styles.SummaryTitle,
		name:    styles.Success.UnsetBold(),
		flag:    styles.Kind,
		dim:     styles.Dim,
	}
}

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ command .CommandPath }}

{{end}}{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}`

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ name (pad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags.FlagUsages }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags.FlagUsages }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":   h.command.Render,
		"heading":   h.heading.Render,
		"name":      h.name.Render,
		"flags":     h.styleFlags,
		"pad":       runewidth.FillRight,
		"trimRight": trimTrailingWhitespace,
	}
}

// styleFlags colors the flag names of a pflag usage block and dims their
// value types.
func (h *HelpFormatter) styleFlags(usages string) string {
	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		m := flagLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		tokens := strings.Fields(m[2])
		for j, token := range tokens {
			if strings.HasPrefix(token, "-") {
				comma := ""
				if trimmed, ok := strings.CutSuffix(token, ","); ok {
					token, comma = trimmed, ","
				}
				tokens[j] = h.flag.Render(token) + comma
			} else {
				tokens[j] = h.dim.Render(token)
			}
		}
		lines[i] = m[1] + strings.Join(tokens, " ") + "   " + m[3]
	}
	return strings.Join(lines, "\n")
}

// ApplyToCommand applies styled help templates to a Cobra command and all subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate + usageTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := usage.Execute(command.OutOrStderr(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// trimTrailingWhitespace removes trailing whitespace from every line.
func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
