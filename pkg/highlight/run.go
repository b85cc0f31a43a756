package highlight

import "github.com/yaklabco/mdview/pkg/mdast"

// Role is the semantic class of a run. Hosts map roles to colors.
type Role uint8

// Roles assigned by the tokenizer passes.
const (
	RolePlain Role = iota
	RoleComment
	RoleString
	RoleNumber
	RoleKeyword
	RoleType
	RoleFunction
	RoleKey
)

// String returns the lowercase role name.
func (r Role) String() string {
	switch r {
	case RoleComment:
		return "comment"
	case RoleString:
		return "string"
	case RoleNumber:
		return "number"
	case RoleKeyword:
		return "keyword"
	case RoleType:
		return "type"
	case RoleFunction:
		return "function"
	case RoleKey:
		return "key"
	default:
		return "plain"
	}
}

// Roles lists every role in declaration order.
func Roles() []Role {
	return []Role{
		RolePlain, RoleComment, RoleString, RoleNumber,
		RoleKeyword, RoleType, RoleFunction, RoleKey,
	}
}

// Emphasis is a set of typographic flags applied on top of a role's color.
type Emphasis uint8

// Emphasis flags.
const (
	EmphasisBold Emphasis = 1 << iota
	EmphasisItalic
)

// Has reports whether all flags in flag are set.
func (e Emphasis) Has(flag Emphasis) bool {
	return e&flag == flag
}

// emphasisFor returns the fixed emphasis of a role: keywords are bold and
// comments italic.
func emphasisFor(role Role) Emphasis {
	switch role {
	case RoleKeyword:
		return EmphasisBold
	case RoleComment:
		return EmphasisItalic
	default:
		return 0
	}
}

// Run is a formatted slice of the highlighted code.
type Run struct {
	Range    mdast.SourceRange
	Role     Role
	Emphasis Emphasis
}

func newRun(start, end int, role Role) Run {
	return Run{
		Range:    mdast.SourceRange{StartOffset: start, EndOffset: end},
		Role:     role,
		Emphasis: emphasisFor(role),
	}
}

// Text returns the part of code the run covers.
func (r Run) Text(code string) string {
	return r.Range.Slice(code)
}
