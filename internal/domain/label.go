// Package domain contains the core types for claim verification:
// labels, judgments, verdicts, and the vote tally that combines them.
package domain

import "strings"

// Label is the three-way classification a judge assigns to a claim.
// Every Judgment and Verdict carries exactly one of the three values;
// anything else observed from a model is coerced before it is counted.
type Label string

const (
	// LabelVerified means the evidence clearly and directly supports
	// the complete claim.
	LabelVerified Label = "VERIFIED"

	// LabelHallucinated means the evidence contradicts the claim or
	// shows it to be factually wrong.
	LabelHallucinated Label = "HALLUCINATED"

	// LabelUnverifiable means the evidence is insufficient to confirm
	// or deny the claim. It is also the coercion target for malformed
	// or failed judgments.
	LabelUnverifiable Label = "UNVERIFIABLE"
)

// TieBreakOrder is the fixed total order applied when attempt votes
// split evenly. The order is part of the public contract: given
// identical inputs, the same label wins on every run.
var TieBreakOrder = [...]Label{LabelVerified, LabelHallucinated, LabelUnverifiable}

// Valid reports whether l is one of the three recognized labels.
func (l Label) Valid() bool {
	switch l {
	case LabelVerified, LabelHallucinated, LabelUnverifiable:
		return true
	}
	return false
}

// String returns the wire representation of the label.
func (l Label) String() string { return string(l) }

// ParseLabel normalizes a raw status string from a model response.
// The input is trimmed and upper-cased; any value outside the
// three-label set collapses to LabelUnverifiable rather than erroring,
// so a misbehaving model can never produce an out-of-set vote.
func ParseLabel(raw string) Label {
	l := Label(strings.ToUpper(strings.TrimSpace(raw)))
	if !l.Valid() {
		return LabelUnverifiable
	}
	return l
}
