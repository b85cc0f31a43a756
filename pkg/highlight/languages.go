package highlight

import (
	"slices"
	"strings"
	"sync"
)

// commentStyle is a set of comment syntaxes.
type commentStyle uint8

const (
	commentSlash    commentStyle = 1 << iota // "// ..." line comments
	commentBlock                             // "/* ... */" block comments
	commentHash                              // "# ..." line comments
	commentDash                              // "-- ..." line comments
	commentLuaBlock                          // "--[[ ... ]]" block comments
	commentHTML                              // "<!-- ... -->" comments
	commentHashWord                          // '#' only opens a comment at a word boundary
)

// stringStyle is a set of string literal syntaxes.
type stringStyle uint8

const (
	stringDouble   stringStyle = 1 << iota // "..."
	stringSingle                           // '...'
	stringChar                             // 'c' character literals
	stringBacktick                         // `...`, may span lines
	stringTriple                           // """...""" and '''...''', may span lines
)

// keyStyle selects the key pass used by data languages in place of the
// keyword, type and call-site passes.
type keyStyle uint8

const (
	keysNone keyStyle = iota
	keysJSON
	keysYAML
)

// Language describes how code in one language is tokenized.
type Language struct {
	// Name is the canonical language name.
	Name string

	// Aliases are the other fence tags that resolve to this language.
	Aliases []string

	comments        commentStyle
	strs            stringStyle
	keywords        []string
	caseInsensitive bool
	keys            keyStyle
	heuristics      bool
	hyphenWords     bool
	extras          []extraPattern
}

// extraPattern is a language-specific pattern run right after the keyword
// pass, or before the number pass when early is set. When group is non-zero
// only that capture group is claimed.
type extraPattern struct {
	pattern string
	group   int
	role    Role
	early   bool
}

const (
	slashComments = commentSlash | commentBlock
	cStrings      = stringDouble | stringChar
	jsStrings     = stringDouble | stringSingle | stringBacktick
)

//nolint:gochecknoglobals,lll // Read-only language table.
var languages = []Language{
	{
		Name: "swift", comments: slashComments, strs: stringDouble | stringTriple, heuristics: true,
		keywords: []string{
			"associatedtype", "class", "deinit", "enum", "extension", "fileprivate", "func", "import", "init",
			"inout", "internal", "let", "open", "operator", "private", "protocol", "public", "static", "struct",
			"subscript", "typealias", "var", "break", "case", "continue", "default", "defer", "do", "else",
			"fallthrough", "for", "guard", "if", "in", "repeat", "return", "switch", "where", "while", "as",
			"catch", "false", "is", "nil", "rethrows", "super", "self", "Self", "throw", "throws", "true", "try",
			"async", "await", "actor", "some", "any", "override", "mutating", "weak", "lazy", "final",
		},
	},
	{
		Name: "python", Aliases: []string{"py", "python3", "py3"},
		comments: commentHash, strs: stringDouble | stringSingle | stringTriple, heuristics: true,
		keywords: []string{
			"False", "None", "True", "and", "as", "assert", "async", "await", "break", "class", "continue",
			"def", "del", "elif", "else", "except", "finally", "for", "from", "global", "if", "import", "in",
			"is", "lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try", "while", "with", "yield",
			"match", "case", "self",
		},
	},
	{
		Name: "javascript", Aliases: []string{"js", "jsx", "mjs", "cjs", "node"},
		comments: slashComments, strs: jsStrings, heuristics: true,
		keywords: jsKeywords,
	},
	{
		Name: "typescript", Aliases: []string{"ts", "tsx", "mts", "cts"},
		comments: slashComments, strs: jsStrings, heuristics: true,
		keywords: append(slices.Clone(jsKeywords),
			"abstract", "any", "as", "asserts", "boolean", "declare", "enum", "implements", "interface",
			"keyof", "namespace", "never", "number", "private", "protected", "public", "readonly", "string",
			"type", "unknown", "satisfies", "infer", "is",
		),
	},
	{
		Name: "java", comments: slashComments, strs: cStrings | stringTriple, heuristics: true,
		keywords: []string{
			"abstract", "assert", "boolean", "break", "byte", "case", "catch", "char", "class", "const",
			"continue", "default", "do", "double", "else", "enum", "extends", "final", "finally", "float",
			"for", "goto", "if", "implements", "import", "instanceof", "int", "interface", "long", "native",
			"new", "package", "private", "protected", "public", "return", "short", "static", "strictfp",
			"super", "switch", "synchronized", "this", "throw", "throws", "transient", "try", "void",
			"volatile", "while", "var", "record", "yield", "sealed", "permits", "true", "false", "null",
		},
	},
	{
		Name: "kotlin", Aliases: []string{"kt", "kts"},
		comments: slashComments, strs: cStrings | stringTriple, heuristics: true,
		keywords: []string{
			"as", "break", "class", "continue", "do", "else", "false", "for", "fun", "if", "in", "interface",
			"is", "null", "object", "package", "return", "super", "this", "throw", "true", "try", "typealias",
			"val", "var", "when", "while", "by", "catch", "constructor", "finally", "get", "import", "init",
			"set", "where", "abstract", "companion", "data", "enum", "final", "inline", "internal", "lateinit",
			"open", "override", "private", "protected", "public", "sealed", "suspend", "vararg",
		},
	},
	{
		Name: "go", Aliases: []string{"golang"},
		comments: slashComments, strs: cStrings | stringBacktick, heuristics: true,
		keywords: []string{
			"break", "case", "chan", "const", "continue", "default", "defer", "else", "fallthrough", "for",
			"func", "go", "goto", "if", "import", "interface", "map", "package", "range", "return", "select",
			"struct", "switch", "type", "var", "nil", "true", "false", "iota",
		},
	},
	{
		Name: "rust", Aliases: []string{"rs"},
		comments: slashComments, strs: cStrings, heuristics: true,
		keywords: []string{
			"as", "async", "await", "break", "const", "continue", "crate", "dyn", "else", "enum", "extern",
			"false", "fn", "for", "if", "impl", "in", "let", "loop", "match", "mod", "move", "mut", "pub",
			"ref", "return", "self", "Self", "static", "struct", "super", "trait", "true", "type", "unsafe",
			"use", "where", "while",
		},
	},
	{
		Name: "c", Aliases: []string{"h"},
		comments: slashComments, strs: cStrings, heuristics: true,
		keywords: cKeywords,
	},
	{
		Name: "cpp", Aliases: []string{"c++", "cc", "cxx", "hpp", "hxx"},
		comments: slashComments, strs: cStrings, heuristics: true,
		keywords: append(slices.Clone(cKeywords),
			"bool", "catch", "class", "constexpr", "delete", "explicit", "false", "friend", "namespace", "new",
			"noexcept", "nullptr", "operator", "private", "protected", "public", "template", "this", "throw",
			"true", "try", "typename", "using", "virtual", "override", "final", "auto",
		),
	},
	{
		Name: "csharp", Aliases: []string{"c#", "cs"},
		comments: slashComments, strs: cStrings, heuristics: true,
		keywords: []string{
			"abstract", "as", "base", "bool", "break", "byte", "case", "catch", "char", "checked", "class",
			"const", "continue", "decimal", "default", "delegate", "do", "double", "else", "enum", "event",
			"explicit", "extern", "false", "finally", "fixed", "float", "for", "foreach", "goto", "if",
			"implicit", "in", "int", "interface", "internal", "is", "lock", "long", "namespace", "new", "null",
			"object", "operator", "out", "override", "params", "private", "protected", "public", "readonly",
			"ref", "return", "sealed", "short", "sizeof", "static", "string", "struct", "switch", "this",
			"throw", "true", "try", "typeof", "uint", "ulong", "using", "var", "virtual", "void", "while",
			"async", "await", "record", "get", "set",
		},
	},
	{
		Name: "objc", Aliases: []string{"objective-c", "objectivec", "m", "mm"},
		comments: slashComments, strs: cStrings, heuristics: true,
		keywords: append(slices.Clone(cKeywords),
			"@interface", "@implementation", "@end", "@property", "@protocol", "@class", "@selector",
			"@synthesize", "id", "self", "super", "nil", "YES", "NO", "BOOL", "instancetype", "nonatomic",
			"strong", "weak", "readonly", "copy",
		),
	},
	{
		Name: "ruby", Aliases: []string{"rb"},
		comments: commentHash, strs: stringDouble | stringSingle, heuristics: true,
		keywords: []string{
			"BEGIN", "END", "alias", "and", "begin", "break", "case", "class", "def", "defined", "do", "else",
			"elsif", "end", "ensure", "false", "for", "if", "in", "module", "next", "nil", "not", "or", "redo",
			"rescue", "retry", "return", "self", "super", "then", "true", "undef", "unless", "until", "when",
			"while", "yield", "require", "attr_accessor", "attr_reader",
		},
	},
	{
		Name: "php", comments: slashComments | commentHash, strs: stringDouble | stringSingle, heuristics: true,
		keywords: []string{
			"abstract", "and", "array", "as", "break", "callable", "case", "catch", "class", "clone", "const",
			"continue", "declare", "default", "do", "echo", "else", "elseif", "empty", "enddeclare", "endfor",
			"endforeach", "endif", "endswitch", "endwhile", "extends", "final", "finally", "fn", "for",
			"foreach", "function", "global", "if", "implements", "include", "instanceof", "interface", "isset",
			"list", "match", "namespace", "new", "or", "print", "private", "protected", "public", "require",
			"require_once", "return", "static", "switch", "throw", "trait", "try", "unset", "use", "var",
			"while", "yield", "true", "false", "null",
		},
	},
	{
		Name: "shell", Aliases: []string{"sh", "bash", "zsh", "ksh", "console", "shellscript"},
		comments: commentHash | commentHashWord, strs: stringDouble | stringSingle | stringBacktick,
		keywords: []string{
			"if", "then", "else", "elif", "fi", "case", "esac", "for", "while", "until", "do", "done", "in",
			"function", "select", "return", "exit", "export", "local", "readonly", "declare", "source",
			"alias", "unset", "shift", "echo", "cd", "set",
		},
		extras: []extraPattern{{pattern: `\$\{?[A-Za-z_][A-Za-z0-9_]*\}?`, role: RoleType}},
	},
	{
		Name: "sql", Aliases: []string{"mysql", "postgres", "postgresql", "psql", "sqlite", "plsql"},
		comments: commentDash | commentHash | commentBlock, strs: stringDouble | stringSingle,
		caseInsensitive: true, heuristics: false,
		keywords: []string{
			"select", "from", "where", "insert", "into", "values", "update", "set", "delete", "create", "table",
			"drop", "alter", "add", "index", "view", "join", "inner", "left", "right", "outer", "full", "on",
			"and", "or", "not", "null", "is", "in", "as", "distinct", "group", "by", "order", "having", "limit",
			"offset", "union", "all", "exists", "between", "like", "case", "when", "then", "else", "end",
			"primary", "key", "foreign", "references", "default", "unique", "constraint", "asc", "desc",
			"begin", "commit", "rollback", "transaction", "with", "returning", "integer", "int", "text",
			"varchar", "boolean", "true", "false",
		},
		extras: []extraPattern{{pattern: `\b([A-Za-z_][A-Za-z0-9_]*)\s*\(`, group: 1, role: RoleFunction}},
	},
	{
		Name: "json", Aliases: []string{"jsonc", "json5", "geojson"},
		strs: stringDouble, keys: keysJSON,
		extras: []extraPattern{{pattern: `\b(?:true|false|null)\b`, role: RoleKeyword}},
	},
	{
		Name: "yaml", Aliases: []string{"yml"},
		comments: commentHash | commentHashWord, strs: stringDouble | stringSingle, keys: keysYAML,
		extras: []extraPattern{{pattern: `\b(?:true|false|null|yes|no|on|off)\b`, role: RoleKeyword}},
	},
	{
		Name: "html", Aliases: []string{"htm", "xhtml", "xml", "svg", "vue"},
		comments: commentHTML, strs: stringDouble | stringSingle,
		extras: []extraPattern{
			{pattern: `</?([A-Za-z][A-Za-z0-9:-]*)`, group: 1, role: RoleKeyword},
			{pattern: `\s([A-Za-z_:][A-Za-z0-9_:.-]*)=`, group: 1, role: RoleType},
		},
	},
	{
		Name: "css", Aliases: []string{"scss", "less", "sass"},
		comments: commentBlock, strs: stringDouble | stringSingle, hyphenWords: true,
		keywords: []string{"important", "media", "import", "keyframes", "font-face", "supports", "inherit", "initial", "none", "auto"},
		extras: []extraPattern{
			{pattern: `#[0-9a-fA-F]{3,8}\b`, role: RoleNumber, early: true},
			{pattern: `([A-Za-z-]+)\s*:`, group: 1, role: RoleKey},
			{pattern: `\b([A-Za-z-]+)\(`, group: 1, role: RoleFunction},
		},
	},
	{
		Name: "scala", Aliases: []string{"sc"},
		comments: slashComments, strs: cStrings | stringTriple, heuristics: true,
		keywords: []string{
			"abstract", "case", "catch", "class", "def", "do", "else", "extends", "false", "final", "finally",
			"for", "forSome", "if", "implicit", "import", "lazy", "match", "new", "null", "object", "override",
			"package", "private", "protected", "return", "sealed", "super", "this", "throw", "trait", "try",
			"true", "type", "val", "var", "while", "with", "yield", "given", "using", "enum", "then",
		},
	},
	{
		Name: "dart", comments: slashComments, strs: stringDouble | stringSingle | stringTriple, heuristics: true,
		keywords: []string{
			"abstract", "as", "assert", "async", "await", "break", "case", "catch", "class", "const",
			"continue", "default", "do", "dynamic", "else", "enum", "export", "extends", "extension",
			"external", "factory", "false", "final", "finally", "for", "get", "if", "implements", "import",
			"in", "is", "late", "library", "mixin", "new", "null", "on", "operator", "part", "required",
			"rethrow", "return", "set", "static", "super", "switch", "this", "throw", "true", "try", "typedef",
			"var", "void", "while", "with", "yield",
		},
	},
	{
		Name: "lua", comments: commentDash | commentLuaBlock, strs: stringDouble | stringSingle, heuristics: true,
		keywords: []string{
			"and", "break", "do", "else", "elseif", "end", "false", "for", "function", "goto", "if", "in",
			"local", "nil", "not", "or", "repeat", "return", "then", "true", "until", "while",
		},
	},
	{
		Name: "perl", Aliases: []string{"pl", "pm"},
		comments: commentHash | commentHashWord, strs: stringDouble | stringSingle, heuristics: true,
		keywords: []string{
			"my", "our", "local", "sub", "if", "elsif", "else", "unless", "while", "until", "for", "foreach",
			"last", "next", "redo", "return", "use", "require", "package", "and", "or", "not", "eq", "ne",
			"lt", "gt", "le", "ge", "print", "defined", "undef",
		},
	},
	{
		Name: "r", comments: commentHash, strs: stringDouble | stringSingle, heuristics: true,
		keywords: []string{
			"if", "else", "repeat", "while", "function", "for", "in", "next", "break", "TRUE", "FALSE", "NULL",
			"Inf", "NaN", "NA", "library", "return",
		},
	},
	{
		Name: "toml", comments: commentHash, strs: stringDouble | stringSingle | stringTriple,
		keywords: []string{"true", "false"},
		extras: []extraPattern{
			{pattern: `(?m)^[ \t]*\[\[?([^\]\n]+)\]\]?`, group: 1, role: RoleType},
			{pattern: `(?m)^[ \t]*([A-Za-z0-9_.-]+)[ \t]*=`, group: 1, role: RoleKey},
		},
	},
	{
		Name: "dockerfile", Aliases: []string{"docker", "containerfile"},
		comments: commentHash | commentHashWord, strs: stringDouble | stringSingle,
		keywords: []string{
			"FROM", "RUN", "CMD", "LABEL", "EXPOSE", "ENV", "ADD", "COPY", "ENTRYPOINT", "VOLUME", "USER",
			"WORKDIR", "ARG", "ONBUILD", "STOPSIGNAL", "HEALTHCHECK", "SHELL", "AS", "MAINTAINER",
		},
		extras: []extraPattern{{pattern: `\$\{?[A-Za-z_][A-Za-z0-9_]*\}?`, role: RoleType}},
	},
}

//nolint:gochecknoglobals // Shared keyword lists.
var (
	jsKeywords = []string{
		"async", "await", "break", "case", "catch", "class", "const", "continue", "debugger", "default",
		"delete", "do", "else", "export", "extends", "false", "finally", "for", "from", "function", "if",
		"import", "in", "instanceof", "let", "new", "null", "of", "return", "static", "super", "switch",
		"this", "throw", "true", "try", "typeof", "undefined", "var", "void", "while", "with", "yield",
	}
	cKeywords = []string{
		"auto", "break", "case", "char", "const", "continue", "default", "do", "double", "else", "enum",
		"extern", "float", "for", "goto", "if", "inline", "int", "long", "register", "restrict", "return",
		"short", "signed", "sizeof", "static", "struct", "switch", "typedef", "union", "unsigned", "void",
		"volatile", "while", "NULL", "#include", "#define", "#ifdef", "#ifndef", "#endif", "#if", "#else",
		"#pragma",
	}
)

// aliasIndex maps every lowercase name and alias to its language.
//
//nolint:gochecknoglobals // Built once, read-only afterwards.
var aliasIndex = sync.OnceValue(func() map[string]*Language {
	index := make(map[string]*Language, len(languages)*3)
	for i := range languages {
		lang := &languages[i]
		index[lang.Name] = lang
		for _, alias := range lang.Aliases {
			index[strings.ToLower(alias)] = lang
		}
	}
	return index
})

// Resolve looks up a language by name or alias, ignoring case and
// surrounding whitespace.
func Resolve(name string) (Language, bool) {
	lang, ok := aliasIndex()[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Language{}, false
	}
	return *lang, true
}

// Languages returns the canonical names of every supported language, sorted.
func Languages() []string {
	names := make([]string, len(languages))
	for i, lang := range languages {
		names[i] = lang.Name
	}
	slices.Sort(names)
	return names
}
