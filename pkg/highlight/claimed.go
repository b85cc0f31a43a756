package highlight

// span is a claimed byte range of the code and the role it was claimed for.
type span struct {
	start, end int
	role       Role
}

// claimedSet is a sorted set of non-overlapping spans. Each pass hands over
// its candidates in one batch and a candidate that touches an existing claim
// is refused, so earlier passes always win.
type claimedSet struct {
	spans []span
}

// claimAll records the candidates of one pass and returns how many were
// accepted. Candidates must be ordered by start; empty ones, ones that
// overlap an existing claim, and ones that overlap an earlier accepted
// candidate are dropped. The cost is linear in the size of both sets.
// candidates is reused as scratch space.
func (c *claimedSet) claimAll(candidates []span) int {
	accepted := candidates[:0]
	idx := 0
	for _, cand := range candidates {
		if cand.start >= cand.end {
			continue
		}
		if n := len(accepted); n > 0 && cand.start < accepted[n-1].end {
			continue
		}
		for idx < len(c.spans) && c.spans[idx].end <= cand.start {
			idx++
		}
		if idx < len(c.spans) && c.spans[idx].start < cand.end {
			continue
		}
		accepted = append(accepted, cand)
	}
	if len(accepted) == 0 {
		return 0
	}

	merged := make([]span, 0, len(c.spans)+len(accepted))
	i, j := 0, 0
	for i < len(c.spans) && j < len(accepted) {
		if c.spans[i].start < accepted[j].start {
			merged = append(merged, c.spans[i])
			i++
		} else {
			merged = append(merged, accepted[j])
			j++
		}
	}
	merged = append(merged, c.spans[i:]...)
	merged = append(merged, accepted[j:]...)
	c.spans = merged
	return len(accepted)
}

// runs converts the claims into a run sequence covering [0, length), filling
// every unclaimed gap with a plain run.
func (c *claimedSet) runs(length int) []Run {
	runs := make([]Run, 0, 2*len(c.spans)+1)
	pos := 0
	for _, s := range c.spans {
		if s.start > pos {
			runs = append(runs, newRun(pos, s.start, RolePlain))
		}
		runs = append(runs, newRun(s.start, s.end, s.role))
		pos = s.end
	}
	if pos < length {
		runs = append(runs, newRun(pos, length, RolePlain))
	}
	return runs
}
