// Package preview paints parsed Markdown documents and highlighted code on
// a terminal using a color and typography theme.
package preview

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"github.com/yaklabco/mdview/pkg/highlight"
	"github.com/yaklabco/mdview/pkg/mdast"
)

// DefaultWidth is the render width used when none is given.
const DefaultWidth = 80

// minWidth keeps list and quote prefixes from consuming the whole line.
const minWidth = 20

// Options configures a Renderer.
type Options struct {
	// Theme supplies colors and line spacing. The zero value uses DefaultTheme.
	Theme Theme

	// Width is the wrap width in columns. 0 uses DefaultWidth.
	Width int

	// Color enables ANSI styling. When false the output is plain text.
	Color bool
}

// Renderer paints parsed documents for a terminal.
type Renderer struct {
	theme  Theme
	width  int
	styles styles
}

type styles struct {
	text        lipgloss.Style
	heading     lipgloss.Style
	heading1    lipgloss.Style
	bold        lipgloss.Style
	italic      lipgloss.Style
	boldItalic  lipgloss.Style
	code        lipgloss.Style
	link        lipgloss.Style
	url         lipgloss.Style
	strike      lipgloss.Style
	quoteBar    lipgloss.Style
	bullet      lipgloss.Style
	checked     lipgloss.Style
	rule        lipgloss.Style
	codeBar     lipgloss.Style
	codeLabel   lipgloss.Style
	tableBorder lipgloss.Style
	tableHeader lipgloss.Style
	image       lipgloss.Style
	roles       map[highlight.Role]lipgloss.Style
}

// NewRenderer creates a Renderer.
func NewRenderer(opts Options) *Renderer {
	theme := opts.Theme
	if theme.Foreground == "" {
		theme = DefaultTheme()
	}
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}

	lr := lipgloss.NewRenderer(io.Discard)
	if opts.Color {
		lr.SetColorProfile(termenv.TrueColor)
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		theme:  theme,
		width:  max(width, minWidth),
		styles: newStyles(lr, theme),
	}
}

func newStyles(lr *lipgloss.Renderer, theme Theme) styles {
	s := styles{
		text:        lr.NewStyle().Foreground(theme.Foreground),
		heading:     lr.NewStyle().Foreground(theme.Accent).Bold(true),
		heading1:    lr.NewStyle().Foreground(theme.Accent).Bold(true).Underline(true),
		bold:        lr.NewStyle().Foreground(theme.Foreground).Bold(true),
		italic:      lr.NewStyle().Foreground(theme.Foreground).Italic(true),
		boldItalic:  lr.NewStyle().Foreground(theme.Foreground).Bold(true).Italic(true),
		code:        lr.NewStyle().Foreground(theme.String),
		link:        lr.NewStyle().Foreground(theme.Accent).Underline(true),
		url:         lr.NewStyle().Foreground(theme.Comment),
		strike:      lr.NewStyle().Foreground(theme.Foreground).Strikethrough(true),
		quoteBar:    lr.NewStyle().Foreground(theme.Accent),
		bullet:      lr.NewStyle().Foreground(theme.Accent),
		checked:     lr.NewStyle().Foreground(theme.Function),
		rule:        lr.NewStyle().Foreground(theme.Comment),
		codeBar:     lr.NewStyle().Foreground(theme.Comment),
		codeLabel:   lr.NewStyle().Foreground(theme.Comment).Italic(true),
		tableBorder: lr.NewStyle().Foreground(theme.Comment),
		tableHeader: lr.NewStyle().Foreground(theme.Accent).Bold(true),
		image:       lr.NewStyle().Foreground(theme.Type).Italic(true),
		roles:       make(map[highlight.Role]lipgloss.Style),
	}
	if theme.Background != "" {
		s.code = s.code.Background(theme.Background)
	}
	for _, role := range highlight.Roles() {
		s.roles[role] = lr.NewStyle().Foreground(theme.RoleColor(role))
	}
	return s
}

// Theme returns the theme the renderer paints with.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// Render paints blocks in order, separated by blank lines.
func (r *Renderer) Render(blocks []mdast.Block) string {
	if len(blocks) == 0 {
		return ""
	}

	gap := strings.Repeat("\n", r.blockSpacing()+1)
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		parts = append(parts, r.renderBlock(block))
	}
	return strings.Join(parts, gap) + "\n"
}

// blockSpacing is the number of blank lines between blocks, derived from
// the theme's line height.
func (r *Renderer) blockSpacing() int {
	return max(int(r.theme.LineHeight), 1)
}

func (r *Renderer) renderBlock(block mdast.Block) string {
	switch b := block.(type) {
	case mdast.Heading:
		return r.renderHeading(b)
	case mdast.Paragraph:
		return r.wrap(r.inline(b.Content).styled, r.width)
	case mdast.CodeBlock:
		return r.renderCode(b.Code, b.Language, b.Language)
	case mdast.MermaidDiagram:
		return r.renderCode(b.Code, "", "mermaid")
	case mdast.Blockquote:
		return r.prefixLines(r.wrap(r.inline(b.Content).styled, r.width-2), r.styles.quoteBar.Render("│")+" ", "")
	case mdast.UnorderedList:
		items := make([]string, len(b.Items))
		for i, item := range b.Items {
			items[i] = r.listItem(r.styles.bullet.Render("•")+" ", 2, item)
		}
		return strings.Join(items, "\n")
	case mdast.OrderedList:
		items := make([]string, len(b.Items))
		for i, item := range b.Items {
			marker := strconv.Itoa(i+1) + ". "
			items[i] = r.listItem(r.styles.bullet.Render(marker), len(marker), item)
		}
		return strings.Join(items, "\n")
	case mdast.TaskList:
		items := make([]string, len(b.Items))
		for i, item := range b.Items {
			box := r.styles.bullet.Render("[ ]")
			if item.Checked {
				box = r.styles.checked.Render("[x]")
			}
			items[i] = r.listItem(box+" ", 4, item.Content)
		}
		return strings.Join(items, "\n")
	case mdast.HorizontalRule:
		return r.styles.rule.Render(strings.Repeat("─", r.width))
	case mdast.Table:
		return r.renderTable(b)
	case mdast.Image:
		return r.renderImage(b)
	default:
		return ""
	}
}

func (r *Renderer) renderHeading(h mdast.Heading) string {
	style := r.styles.heading
	if h.Level == 1 {
		style = r.styles.heading1
	}
	marker := strings.Repeat("#", h.Level) + " "
	text := sanitizeLine(h.Content.PlainText())
	return r.wrap(style.Render(marker+text), r.width)
}

func (r *Renderer) renderImage(img mdast.Image) string {
	label := "image"
	if img.Alt != "" {
		label += ": " + sanitizeLine(img.Alt)
	}
	out := r.styles.image.Render("[" + label + "]")
	if img.URL != "" {
		out += " " + r.styles.url.Render(sanitizeLine(img.URL))
	}
	return out
}

// RenderCode paints code highlighted for language, framed the way code
// blocks are framed in documents.
func (r *Renderer) RenderCode(code, language string) string {
	return r.renderCode(code, language, language) + "\n"
}

func (r *Renderer) renderCode(code, language, label string) string {
	var lines []string
	if label != "" {
		lines = append(lines, r.styles.codeLabel.Render(sanitizeLine(label)))
	}

	code = expandTabs(code)
	var runs []highlight.Run
	if language != "" {
		runs = highlight.Highlight(code, language)
	} else if code != "" {
		runs = []highlight.Run{{Range: mdast.SourceRange{EndOffset: len(code)}}}
	}

	if len(runs) == 0 {
		return strings.Join(lines, "\n")
	}
	bar := r.styles.codeBar.Render("│") + " "
	return strings.Join(append(lines, r.prefixLines(r.paintRuns(code, runs), bar, bar)), "\n")
}

// paintRuns styles every run, styling each line of a multi-line run
// separately so that prefixes added afterwards stay unstyled.
func (r *Renderer) paintRuns(code string, runs []highlight.Run) string {
	var b strings.Builder
	for _, run := range runs {
		style := r.styles.roles[run.Role]
		if run.Emphasis.Has(highlight.EmphasisBold) {
			style = style.Bold(true)
		}
		if run.Emphasis.Has(highlight.EmphasisItalic) {
			style = style.Italic(true)
		}
		for i, line := range strings.Split(sanitizeBlock(run.Text(code)), "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line != "" {
				b.WriteString(style.Render(line))
			}
		}
	}
	return b.String()
}

func (r *Renderer) listItem(marker string, markerWidth int, content mdast.InlineContent) string {
	body := r.wrap(r.inline(content).styled, r.width-markerWidth)
	return r.prefixLines(body, marker, strings.Repeat(" ", markerWidth))
}

// prefixLines puts first before the first line of text and rest before
// every other line. An empty rest repeats first.
func (r *Renderer) prefixLines(text, first, rest string) string {
	if rest == "" {
		rest = first
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i == 0 {
			lines[i] = first + line
		} else {
			lines[i] = rest + line
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) wrap(text string, width int) string {
	return wordwrap.String(text, max(width, 1))
}

// inlineText is rendered inline content together with its unstyled form,
// whose display width table layout needs.
type inlineText struct {
	styled string
	plain  string
}

func (r *Renderer) inline(content mdast.InlineContent) inlineText {
	var styled, plain strings.Builder
	for _, segment := range content {
		text := sanitizeLine(segment.Text)
		style := r.styles.text
		switch segment.Kind {
		case mdast.SegmentBold:
			style = r.styles.bold
		case mdast.SegmentItalic:
			style = r.styles.italic
		case mdast.SegmentBoldItalic:
			style = r.styles.boldItalic
		case mdast.SegmentCode:
			style = r.styles.code
		case mdast.SegmentStrikethrough:
			style = r.styles.strike
		case mdast.SegmentLink:
			style = r.styles.link
		case mdast.SegmentText:
		}
		if text != "" {
			styled.WriteString(style.Render(text))
			plain.WriteString(text)
		}
		if segment.Kind == mdast.SegmentLink && segment.URL != "" && segment.URL != segment.Text {
			url := " (" + sanitizeLine(segment.URL) + ")"
			styled.WriteString(r.styles.url.Render(url))
			plain.WriteString(url)
		}
	}
	return inlineText{styled: styled.String(), plain: plain.String()}
}
