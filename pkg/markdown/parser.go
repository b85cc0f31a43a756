// Package markdown turns Markdown source into the block and inline model of
// package mdast.
//
// Parsing happens in two passes. The block pass walks the document line by
// line with bounded lookahead and decides what each run of lines is. The
// inline pass resolves emphasis, code spans, links and strikethrough inside
// the text of each block. Every function in this package is total: malformed
// input degrades to paragraphs and never produces an error.
//
// All functions are safe for concurrent use. The regular expressions they
// rely on are compiled on first use and never modified.
package markdown

import (
	"strings"

	"github.com/yaklabco/mdview/pkg/mdast"
)

// listContinuationIndent is the indentation at which a non-block line is
// folded into the preceding list item.
const listContinuationIndent = 2

// Parse converts Markdown text into an ordered block sequence.
//
// A document that is really an HTML page is returned as a single html
// CodeBlock so that hosts still have something to show.
func Parse(text string) []mdast.Block {
	if IsHTMLDocument(text) {
		return []mdast.Block{mdast.CodeBlock{Language: "html", Code: text}}
	}

	p := &blockParser{lines: mdast.SplitLines(text)}
	p.run()
	return p.blocks
}

// blockParser holds the state of one Parse call.
type blockParser struct {
	lines  []string
	pos    int
	blocks []mdast.Block

	rules  int
	tables int
	images int
}

func (p *blockParser) emit(b mdast.Block) {
	p.blocks = append(p.blocks, b)
}

func (p *blockParser) run() {
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			p.pos++
			continue
		}
		if opensComment(trimmed) {
			p.skipComment()
			continue
		}
		if fence, ok := matchFence(line); ok {
			p.parseFence(fence)
			continue
		}
		if level, text, ok := matchHeading(trimmed); ok {
			p.emit(mdast.Heading{Level: level, Content: resolve(text)})
			p.pos++
			continue
		}
		if isBlockquote(trimmed) {
			p.parseBlockquote()
			continue
		}
		if isRule(trimmed) {
			p.emit(mdast.HorizontalRule{Ordinal: p.rules})
			p.rules++
			p.pos++
			continue
		}
		if isTableRow(trimmed) {
			p.parseTableOrLine()
			continue
		}
		if alt, url, ok := matchImage(trimmed); ok {
			p.emit(mdast.Image{Alt: alt, URL: url, Ordinal: p.images})
			p.images++
			p.pos++
			continue
		}
		if _, _, ok := matchTask(trimmed); ok {
			p.parseTaskList()
			continue
		}
		if _, ok := matchUnordered(trimmed); ok {
			p.parseUnorderedList()
			continue
		}
		if _, ok := matchOrdered(trimmed); ok {
			p.parseOrderedList()
			continue
		}
		p.parseParagraph()
	}
}

// startsBlock reports whether the line at idx begins a block other than a
// paragraph. Paragraphs and list continuations stop at such lines.
func (p *blockParser) startsBlock(idx int) bool {
	line := p.lines[idx]
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if opensComment(trimmed) || isBlockquote(trimmed) || isRule(trimmed) || isTableRow(trimmed) {
		return true
	}
	if _, ok := matchFence(line); ok {
		return true
	}
	if _, _, ok := matchHeading(trimmed); ok {
		return true
	}
	if _, _, ok := matchImage(trimmed); ok {
		return true
	}
	if _, _, ok := matchTask(trimmed); ok {
		return true
	}
	if _, ok := matchUnordered(trimmed); ok {
		return true
	}
	_, ok := matchOrdered(trimmed)
	return ok
}

// skipComment drops lines up to and including the one that closes an HTML
// comment. An unclosed comment swallows the rest of the document.
func (p *blockParser) skipComment() {
	first := strings.TrimSpace(p.lines[p.pos])
	p.pos++
	if strings.Contains(first[len("<!--"):], "-->") {
		return
	}
	for p.pos < len(p.lines) {
		closed := strings.Contains(p.lines[p.pos], "-->")
		p.pos++
		if closed {
			return
		}
	}
}

func (p *blockParser) parseFence(fence fenceOpen) {
	p.pos++
	var code []string
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		p.pos++
		if fence.closes(line) {
			break
		}
		code = append(code, stripIndent(line, fence.indent))
	}

	body := strings.Join(code, "\n")
	if strings.EqualFold(fence.language, "mermaid") {
		p.emit(mdast.MermaidDiagram{Code: body})
		return
	}
	p.emit(mdast.CodeBlock{Language: fence.language, Code: body})
}

func (p *blockParser) parseBlockquote() {
	var parts []string
	for p.pos < len(p.lines) {
		trimmed := strings.TrimSpace(p.lines[p.pos])
		if !isBlockquote(trimmed) {
			break
		}
		if text := strings.TrimSpace(quoteText(trimmed)); text != "" {
			parts = append(parts, text)
		}
		p.pos++
	}
	p.emit(mdast.Blockquote{Content: resolve(strings.Join(parts, " "))})
}

// parseTableOrLine parses a table at the current line. A '|' line without a
// separator below it becomes a paragraph of its own and the following lines
// are examined afresh.
func (p *blockParser) parseTableOrLine() {
	table, end, ok := ParseTable(p.lines, p.pos)
	if !ok {
		if content := resolve(StripHTML(strings.TrimSpace(p.lines[p.pos]))); !content.IsEmpty() {
			p.emit(mdast.Paragraph{Content: content})
		}
		p.pos++
		return
	}
	table.Ordinal = p.tables
	p.tables++
	p.emit(table)
	p.pos = end
}

func (p *blockParser) parseTaskList() {
	var items []mdast.TaskItem
	for p.pos < len(p.lines) {
		checked, text, ok := matchTask(strings.TrimSpace(p.lines[p.pos]))
		if !ok {
			break
		}
		p.pos++
		text = p.appendContinuation(text)
		items = append(items, mdast.TaskItem{Checked: checked, Content: resolve(text)})
	}
	p.emit(mdast.TaskList{Items: items})
}

func (p *blockParser) parseUnorderedList() {
	var items []mdast.InlineContent
	for p.pos < len(p.lines) {
		trimmed := strings.TrimSpace(p.lines[p.pos])
		if _, _, isTask := matchTask(trimmed); isTask {
			break
		}
		text, ok := matchUnordered(trimmed)
		if !ok {
			break
		}
		p.pos++
		items = append(items, resolve(p.appendContinuation(text)))
	}
	p.emit(mdast.UnorderedList{Items: items})
}

func (p *blockParser) parseOrderedList() {
	var items []mdast.InlineContent
	for p.pos < len(p.lines) {
		text, ok := matchOrdered(strings.TrimSpace(p.lines[p.pos]))
		if !ok {
			break
		}
		p.pos++
		items = append(items, resolve(p.appendContinuation(text)))
	}
	p.emit(mdast.OrderedList{Items: items})
}

// appendContinuation folds indented non-block lines that follow a list item
// into the item's text.
func (p *blockParser) appendContinuation(text string) string {
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if strings.TrimSpace(line) == "" || indentWidth(line) < listContinuationIndent || p.startsBlock(p.pos) {
			break
		}
		text = joinText(text, strings.TrimSpace(line))
		p.pos++
	}
	return text
}

func (p *blockParser) parseParagraph() {
	var parts []string
	for first := true; p.pos < len(p.lines); first = false {
		line := p.lines[p.pos]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || (!first && p.startsBlock(p.pos)) {
			break
		}
		p.pos++
		if IsHTMLOnly(trimmed) {
			continue
		}
		if text := strings.TrimSpace(StripHTML(trimmed)); text != "" {
			parts = append(parts, text)
		}
	}

	if content := resolve(strings.Join(parts, " ")); !content.IsEmpty() {
		p.emit(mdast.Paragraph{Content: content})
	}
}

// resolve strips stray HTML from block text and resolves its inline markers.
func resolve(text string) mdast.InlineContent {
	return ParseInline(strings.TrimSpace(StripHTML(text)))
}

func joinText(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
