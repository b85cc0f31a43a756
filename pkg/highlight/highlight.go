// Package highlight splits source code into colorable runs for roughly
// twenty-five languages.
//
// Tokenizing is approximate and regex based. Passes run in a fixed order
// (comments, strings, numbers, keywords, types, call sites) and each pass may
// only claim bytes no earlier pass has claimed. Whatever is left unclaimed is
// plain text, so the returned runs always partition the input exactly.
package highlight

import (
	"regexp"
	"strings"
	"sync"
)

// never matches nothing; it stands in for an empty alternation.
const never = `[^\s\S]`

// compiledLanguage holds the regular expressions of one language.
type compiledLanguage struct {
	lang     *Language
	lexer    *regexp.Regexp // group 1: string literal, group 2: comment
	keys     *regexp.Regexp // group 1: key
	extras   []compiledExtra
	keywords map[string]struct{}
	word     *regexp.Regexp
}

type compiledExtra struct {
	re    *regexp.Regexp
	group int
	role  Role
	early bool
}

type sharedRegexps struct {
	number   *regexp.Regexp
	typeName *regexp.Regexp
	call     *regexp.Regexp
}

//nolint:gochecknoglobals // Compiled once, read-only afterwards.
var shared = sync.OnceValue(func() *sharedRegexps {
	return &sharedRegexps{
		number: regexp.MustCompile(
			`\b(?:0[xX][0-9a-fA-F_]+|0[bB][01_]+|0[oO][0-7_]+|\d[\d_]*(?:\.\d+)?(?:[eE][+-]?\d+)?)\b`),
		typeName: regexp.MustCompile(`\b[A-Z][A-Za-z0-9_]*\b`),
		call:     regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\s*\(`),
	}
})

//nolint:gochecknoglobals // Compiled once, read-only afterwards.
var compiled = sync.OnceValue(func() map[string]*compiledLanguage {
	out := make(map[string]*compiledLanguage, len(languages))
	for i := range languages {
		out[languages[i].Name] = compileLanguage(&languages[i])
	}
	return out
})

func compileLanguage(lang *Language) *compiledLanguage {
	c := &compiledLanguage{
		lang:  lang,
		lexer: regexp.MustCompile("(" + stringPattern(lang.strs) + ")|(" + commentPattern(lang.comments) + ")"),
	}

	switch lang.keys {
	case keysJSON:
		c.keys = regexp.MustCompile(`("(?:[^"\\\n]|\\.)*")\s*:`)
	case keysYAML:
		c.keys = regexp.MustCompile(
			`(?m)^[ \t]*(?:-[ \t]+)?("(?:[^"\\\n]|\\.)*"|'[^'\n]*'|[A-Za-z0-9_][A-Za-z0-9_ ./-]*?)[ \t]*:(?:[ \t]|$)`)
	case keysNone:
	}

	for _, extra := range lang.extras {
		c.extras = append(c.extras, compiledExtra{
			re:    regexp.MustCompile(extra.pattern),
			group: extra.group,
			role:  extra.role,
			early: extra.early,
		})
	}

	if len(lang.keywords) > 0 {
		c.keywords = make(map[string]struct{}, len(lang.keywords))
		for _, kw := range lang.keywords {
			if lang.caseInsensitive {
				kw = strings.ToLower(kw)
			}
			c.keywords[kw] = struct{}{}
		}
		if lang.hyphenWords {
			c.word = regexp.MustCompile(`[@#]?[A-Za-z_][A-Za-z0-9_-]*`)
		} else {
			c.word = regexp.MustCompile(`[@#]?[A-Za-z_][A-Za-z0-9_]*`)
		}
	}

	return c
}

func stringPattern(style stringStyle) string {
	var alts []string
	if style&stringTriple != 0 {
		alts = append(alts, `"""[\s\S]*?"""`, `'''[\s\S]*?'''`)
	}
	if style&stringBacktick != 0 {
		alts = append(alts, "`[^`]*`")
	}
	if style&stringDouble != 0 {
		alts = append(alts, `"(?:[^"\\\n]|\\.)*"`)
	}
	if style&stringSingle != 0 {
		alts = append(alts, `'(?:[^'\\\n]|\\.)*'`)
	}
	if style&stringChar != 0 {
		alts = append(alts, `'(?:[^'\\\n]|\\[^'\n]{1,10})'`)
	}
	if len(alts) == 0 {
		return never
	}
	return strings.Join(alts, "|")
}

// commentPattern builds the comment alternatives. Unclosed block comments
// run to the end of the code.
func commentPattern(style commentStyle) string {
	var alts []string
	if style&commentLuaBlock != 0 {
		alts = append(alts, `--\[\[[\s\S]*?(?:\]\]|$)`)
	}
	if style&commentHTML != 0 {
		alts = append(alts, `<!--[\s\S]*?(?:-->|$)`)
	}
	if style&commentBlock != 0 {
		alts = append(alts, `/\*[\s\S]*?(?:\*/|$)`)
	}
	if style&commentSlash != 0 {
		alts = append(alts, `//[^\n]*`)
	}
	if style&commentHash != 0 {
		alts = append(alts, `#[^\n]*`)
	}
	if style&commentDash != 0 {
		alts = append(alts, `--[^\n]*`)
	}
	if len(alts) == 0 {
		return never
	}
	return strings.Join(alts, "|")
}

// Highlight tokenizes code written in language. Unknown or empty language
// names yield a single plain run; empty code yields no runs.
func Highlight(code, language string) []Run {
	lang, _ := Resolve(language)
	return lang.Highlight(code)
}

// Highlight tokenizes code with the rules of l.
func (l Language) Highlight(code string) []Run {
	if code == "" {
		return nil
	}
	c, ok := compiled()[l.Name]
	if !ok {
		return []Run{newRun(0, len(code), RolePlain)}
	}
	return c.highlight(code)
}

func (c *compiledLanguage) highlight(code string) []Run {
	var claimed claimedSet

	comments, literals := c.scanComments(code)
	claimed.claimAll(comments)

	if c.keys != nil {
		claimGroup(code, c.keys, 1, RoleKey, &claimed)
	}

	claimed.claimAll(literals)

	c.claimExtras(code, true, &claimed)

	patterns := shared()
	claimGroup(code, patterns.number, 0, RoleNumber, &claimed)

	if c.lang.keys == keysNone {
		c.claimKeywords(code, &claimed)
	}
	c.claimExtras(code, false, &claimed)

	if c.lang.keys == keysNone && c.lang.heuristics {
		claimGroup(code, patterns.typeName, 0, RoleType, &claimed)
		claimGroup(code, patterns.call, 1, RoleFunction, &claimed)
	}

	return claimed.runs(len(code))
}

// scanComments scans strings and comments together from left to right so
// that comment markers inside literals are never taken for comments. Both
// results are ordered by offset.
func (c *compiledLanguage) scanComments(code string) (comments, literals []span) {
	hashWord := c.lang.comments&commentHashWord != 0

	for pos := 0; pos < len(code); {
		m := c.lexer.FindStringSubmatchIndex(code[pos:])
		if m == nil {
			break
		}
		start, end := pos+m[0], pos+m[1]
		switch {
		case m[4] >= 0:
			if hashWord && code[start] == '#' && !atWordStart(code, start) {
				pos = start + 1
				continue
			}
			comments = append(comments, span{start: start, end: end, role: RoleComment})
		case m[2] >= 0:
			literals = append(literals, span{start: start, end: end, role: RoleString})
		}
		pos = max(end, start+1)
	}
	return comments, literals
}

func (c *compiledLanguage) claimKeywords(code string, claimed *claimedSet) {
	if c.word == nil {
		return
	}
	var candidates []span
	for _, loc := range c.word.FindAllStringIndex(code, -1) {
		word := code[loc[0]:loc[1]]
		if c.lang.caseInsensitive {
			word = strings.ToLower(word)
		}
		if _, ok := c.keywords[word]; ok {
			candidates = append(candidates, span{start: loc[0], end: loc[1], role: RoleKeyword})
		}
	}
	claimed.claimAll(candidates)
}

func (c *compiledLanguage) claimExtras(code string, early bool, claimed *claimedSet) {
	for _, extra := range c.extras {
		if extra.early == early {
			claimGroup(code, extra.re, extra.group, extra.role, claimed)
		}
	}
}

// claimGroup claims capture group of every match of re for role.
func claimGroup(code string, re *regexp.Regexp, group int, role Role, claimed *claimedSet) {
	matches := re.FindAllStringSubmatchIndex(code, -1)
	candidates := make([]span, 0, len(matches))
	for _, m := range matches {
		start, end := m[2*group], m[2*group+1]
		if start < 0 {
			continue
		}
		candidates = append(candidates, span{start: start, end: end, role: role})
	}
	claimed.claimAll(candidates)
}

// atWordStart reports whether offset begins the code, a line, or follows
// whitespace or a semicolon.
func atWordStart(code string, offset int) bool {
	if offset == 0 {
		return true
	}
	switch code[offset-1] {
	case ' ', '\t', '\n', '\r', ';':
		return true
	default:
		return false
	}
}
