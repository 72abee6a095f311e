package domain

// Tally accumulates attempt judgments and resolves them into a single
// majority label. It tracks one representative reason per label using a
// last-write-wins policy: when two attempts agree on a label, the later
// Add overwrites the earlier reason. Callers that need determinism must
// fold judgments in attempt order, which keeps the policy stable across
// runs with identical inputs.
//
// Tally is not safe for concurrent use; collect attempt results first,
// then fold them on a single goroutine.
type Tally struct {
	counts  map[Label]int
	reasons map[Label]string
	total   int
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{
		counts:  make(map[Label]int, len(TieBreakOrder)),
		reasons: make(map[Label]string, len(TieBreakOrder)),
	}
}

// Add records one judgment. The label is re-coerced through ParseLabel
// so an out-of-set value can never enter the count, whatever produced
// the judgment.
func (t *Tally) Add(j Judgment) {
	label := ParseLabel(string(j.Label))
	t.counts[label]++
	t.reasons[label] = j.Reason
	t.total++
}

// Total returns the number of judgments recorded.
func (t *Tally) Total() int { return t.total }

// Count returns the number of votes for the given label.
func (t *Tally) Count(l Label) int { return t.counts[l] }

// Reason returns the representative reason recorded for the given
// label, or the empty string if the label received no votes.
func (t *Tally) Reason(l Label) string { return t.reasons[l] }

// Majority returns the label with the most votes and its vote count.
// Ties are broken by TieBreakOrder, not by map iteration order, so the
// result is deterministic. An empty tally resolves to
// LabelUnverifiable with zero votes.
func (t *Tally) Majority() (Label, int) {
	winner := LabelUnverifiable
	best := -1
	for _, l := range TieBreakOrder {
		if c := t.counts[l]; c > best {
			winner, best = l, c
		}
	}
	if best <= 0 {
		return LabelUnverifiable, 0
	}
	return winner, best
}
