package highlight

import (
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spanStarts(set *claimedSet) []int {
	starts := make([]int, len(set.spans))
	for i, s := range set.spans {
		starts[i] = s.start
	}
	return starts
}

func TestClaimedSet_ClaimAll(t *testing.T) {
	t.Parallel()

	var set claimedSet

	require.Equal(t, 2, set.claimAll([]span{
		{start: 0, end: 5, role: RoleComment},
		{start: 10, end: 20, role: RoleString},
	}))

	tests := []struct {
		name      string
		candidate span
		accepted  bool
	}{
		{"touching ranges do not overlap", span{start: 20, end: 25, role: RoleNumber}, true},
		{"gap filled exactly", span{start: 5, end: 10, role: RoleKeyword}, true},
		{"overlap refused", span{start: 15, end: 30, role: RoleType}, false},
		{"contained range refused", span{start: 3, end: 4, role: RoleType}, false},
		{"empty range refused", span{start: 27, end: 27, role: RoleType}, false},
		{"covering range refused", span{start: 0, end: 40, role: RoleType}, false},
	}

	// Each claim depends on the ones before it, so the cases run in order.
	for _, testCase := range tests {
		got := set.claimAll([]span{testCase.candidate})
		assert.Equal(t, testCase.accepted, got == 1, testCase.name)
	}

	assert.Equal(t, []int{0, 5, 10, 20}, spanStarts(&set), "spans stay sorted")
}

func TestClaimedSet_ClaimAllWithinPass(t *testing.T) {
	t.Parallel()

	var set claimedSet
	set.claimAll([]span{{start: 4, end: 6, role: RoleComment}})

	got := set.claimAll([]span{
		{start: 0, end: 3, role: RoleString},
		{start: 2, end: 4, role: RoleString}, // overlaps the previous candidate
		{start: 5, end: 8, role: RoleString}, // overlaps the existing claim
		{start: 6, end: 9, role: RoleString},
		{start: 12, end: 14, role: RoleString},
	})
	assert.Equal(t, 3, got)
	assert.Equal(t, []int{0, 4, 6, 12}, spanStarts(&set))

	roles := make([]Role, len(set.spans))
	for i, s := range set.spans {
		roles[i] = s.role
	}
	assert.Equal(t, []Role{RoleString, RoleComment, RoleString, RoleString}, roles)
}

func TestClaimedSet_ClaimAllEmpty(t *testing.T) {
	t.Parallel()

	var set claimedSet
	assert.Zero(t, set.claimAll(nil))
	assert.Empty(t, set.spans)
}

// interleavedClaim fills 2n slots in two passes, the second landing between
// every span of the first, and returns the fastest of three timings.
func interleavedClaim(t *testing.T, n int) time.Duration {
	t.Helper()

	best := time.Duration(math.MaxInt64)
	for range 3 {
		odd := make([]span, n)
		even := make([]span, n)
		for k := range n {
			odd[k] = span{start: 2*k + 1, end: 2*k + 2, role: RoleString}
			even[k] = span{start: 2 * k, end: 2*k + 1, role: RoleNumber}
		}

		var set claimedSet
		start := time.Now()
		set.claimAll(odd)
		set.claimAll(even)
		best = min(best, time.Since(start))

		require.Len(t, set.spans, 2*n)
	}
	return best
}

func TestClaimedSet_InterleavedPassesScaleLinearly(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}

	small := interleavedClaim(t, 100_000)
	large := interleavedClaim(t, 400_000)

	// Four times the spans; a quadratic set would take sixteen times longer.
	limit := 12 * max(small, time.Millisecond)
	assert.Less(t, large, limit, "small=%s large=%s", small, large)
}

func TestHighlight_LargeBlock(t *testing.T) {
	t.Parallel()

	const lines = 20_000
	code := strings.Repeat("foo(1, \"s\") // c\n", lines)

	runs := Highlight(code, "go")

	pos := 0
	counts := map[Role]int{}
	for _, run := range runs {
		require.Equal(t, pos, run.Range.StartOffset)
		pos = run.Range.EndOffset
		counts[run.Role]++
	}
	assert.Equal(t, len(code), pos)
	assert.Equal(t, lines, counts[RoleComment])
	assert.Equal(t, lines, counts[RoleString])
	assert.Equal(t, lines, counts[RoleNumber])
	assert.Equal(t, lines, counts[RoleFunction])
}

func BenchmarkHighlight_LargeBlock(b *testing.B) {
	for _, lines := range []int{5_000, 10_000, 20_000} {
		code := strings.Repeat("foo(1, \"s\") // c\n", lines)
		b.Run(strconv.Itoa(lines), func(b *testing.B) {
			b.SetBytes(int64(len(code)))
			for range b.N {
				Highlight(code, "go")
			}
		})
	}
}

func TestClaimedSet_Runs(t *testing.T) {
	t.Parallel()

	var set claimedSet
	set.claimAll([]span{
		{start: 2, end: 4, role: RoleKeyword},
		{start: 6, end: 8, role: RoleComment},
	})

	runs := set.runs(10)
	require.Len(t, runs, 5)

	roles := make([]Role, len(runs))
	for i, run := range runs {
		roles[i] = run.Role
	}
	assert.Equal(t, []Role{RolePlain, RoleKeyword, RolePlain, RoleComment, RolePlain}, roles)
	assert.Equal(t, 10, runs[4].Range.EndOffset)
	assert.Equal(t, EmphasisBold, runs[1].Emphasis)
	assert.Equal(t, EmphasisItalic, runs[3].Emphasis)
}

func TestClaimedSet_RunsEmpty(t *testing.T) {
	t.Parallel()

	var set claimedSet
	runs := set.runs(3)
	require.Len(t, runs, 1)
	assert.Equal(t, RolePlain, runs[0].Role)
}
