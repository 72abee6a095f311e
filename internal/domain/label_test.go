package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Label
	}{
		{name: "exact verified", raw: "VERIFIED", expected: LabelVerified},
		{name: "exact hallucinated", raw: "HALLUCINATED", expected: LabelHallucinated},
		{name: "exact unverifiable", raw: "UNVERIFIABLE", expected: LabelUnverifiable},
		{name: "lowercase is upper-cased", raw: "verified", expected: LabelVerified},
		{name: "mixed case is upper-cased", raw: "Hallucinated", expected: LabelHallucinated},
		{name: "surrounding whitespace trimmed", raw: "  VERIFIED\n", expected: LabelVerified},
		{name: "unrecognized value coerced", raw: "MAYBE", expected: LabelUnverifiable},
		{name: "empty value coerced", raw: "", expected: LabelUnverifiable},
		{name: "partial match coerced", raw: "VERIFIED_TRUE", expected: LabelUnverifiable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLabel(tt.raw))
		})
	}
}

func TestLabelValid(t *testing.T) {
	assert.True(t, LabelVerified.Valid())
	assert.True(t, LabelHallucinated.Valid())
	assert.True(t, LabelUnverifiable.Valid())
	assert.False(t, Label("MAYBE").Valid())
	assert.False(t, Label("verified").Valid())
	assert.False(t, Label("").Valid())
}
