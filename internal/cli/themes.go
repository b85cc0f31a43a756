package cli

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdview/internal/configloader"
	"github.com/yaklabco/mdview/pkg/preview"
)

// themeNameWidth pads preset names so descriptions line up.
const themeNameWidth = 12

func newThemesCommand() *cobra.Command {
	var chroma bool

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List the available themes",
		Long: `List the theme presets with a color swatch, the aliases that resolve to
them, and optionally every chroma style usable as chroma:<style>.

Examples:
  mdview themes
  mdview themes --chroma`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			return writeThemes(out, colorEnabled(cmd, out), chroma)
		},
	}

	cmd.Flags().BoolVar(&chroma, "chroma", false, "also list chroma styles")

	return cmd
}

func writeThemes(w io.Writer, color bool, withChroma bool) error {
	bw := bufio.NewWriter(w)

	lr := lipgloss.NewRenderer(w)
	if color {
		lr.SetColorProfile(termenv.TrueColor)
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}
	heading := lr.NewStyle().Bold(true)

	fmt.Fprintln(bw, heading.Render("Presets"))
	for _, name := range preview.PresetThemeNames {
		theme, _ := preview.Preset(name)
		fmt.Fprintf(bw, "  %s %s  %s\n",
			runewidth.FillRight(name, themeNameWidth), swatch(lr, theme, color), theme.Description)
	}

	aliases := configloader.ThemeAliases()
	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}
	slices.Sort(names)

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, heading.Render("Aliases"))
	for _, alias := range names {
		fmt.Fprintf(bw, "  %s -> %s\n", runewidth.FillRight(alias, themeNameWidth+4), aliases[alias])
	}

	if withChroma {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, heading.Render("Chroma styles (use as chroma:<style>)"))
		for _, name := range preview.ChromaStyleNames() {
			fmt.Fprintf(bw, "  %s\n", name)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write themes: %w", err)
	}
	return nil
}

// swatch paints one block per syntax color of theme. Without color it
// returns an empty string of the same width.
func swatch(lr *lipgloss.Renderer, theme preview.Theme, color bool) string {
	colors := []lipgloss.Color{
		theme.Keyword, theme.String, theme.Comment,
		theme.Number, theme.Type, theme.Function,
	}
	if !color {
		return strings.Repeat(" ", len(colors)*2)
	}
	var b strings.Builder
	for _, c := range colors {
		b.WriteString(lr.NewStyle().Foreground(c).Render("██"))
	}
	return b.String()
}
