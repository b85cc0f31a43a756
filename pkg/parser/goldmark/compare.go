package goldmark

import (
	"fmt"

	"github.com/yaklabco/mdview/pkg/mdast"
)

// ComparableKinds are the block kinds whose counts are expected to agree
// between goldmark and the mdview parser on well-formed input. Paragraphs,
// lists and quotes are left out: the two grammars treat lazy continuation
// and nesting differently.
//
//nolint:gochecknoglobals // Read-only kind list.
var ComparableKinds = []mdast.BlockKind{
	mdast.BlockHeading,
	mdast.BlockCode,
	mdast.BlockMermaid,
	mdast.BlockTable,
	mdast.BlockHorizontalRule,
}

// Mismatch records a block kind whose count differs from the reference.
type Mismatch struct {
	Kind      mdast.BlockKind
	Reference int
	Parsed    int
}

// String returns a human-readable description of the mismatch.
func (m Mismatch) String() string {
	return fmt.Sprintf("%s: goldmark found %d, mdview found %d", m.Kind, m.Reference, m.Parsed)
}

// Compare reports every comparable kind whose top-level count in blocks
// differs from the reference outline.
func Compare(reference Outline, blocks []mdast.Block) []Mismatch {
	counts := mdast.CountKinds(blocks)

	var mismatches []Mismatch
	for _, kind := range ComparableKinds {
		if want, got := reference.Count(kind), counts[kind]; want != got {
			mismatches = append(mismatches, Mismatch{Kind: kind, Reference: want, Parsed: got})
		}
	}
	return mismatches
}
