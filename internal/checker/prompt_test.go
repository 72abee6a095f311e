package checker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factweave/claimcheck/internal/domain"
)

func TestBuildPrompt(t *testing.T) {
	evidence := []domain.EvidenceSnippet{
		{Title: "Penicillin - Wikipedia", URL: "https://en.wikipedia.org/wiki/Penicillin", Snippet: "Alexander Fleming discovered penicillin in 1928."},
		{Title: "Fleming biography", URL: "https://example.com/fleming", Snippet: "Fleming was a Scottish physician."},
	}

	prompt, err := BuildPrompt("Einstein discovered penicillin", evidence)
	require.NoError(t, err)

	assert.Contains(t, prompt, "CLAIM TO VERIFY:\nEinstein discovered penicillin")
	assert.Contains(t, prompt, "- Penicillin - Wikipedia: Alexander Fleming discovered penicillin in 1928.")
	assert.Contains(t, prompt, "- Fleming biography: Fleming was a Scottish physician.")

	// The judge never sees source URLs; attribution is reattached by
	// the caller after the verdict.
	assert.NotContains(t, prompt, "https://")
}

func TestBuildPrompt_PreservesEvidenceOrder(t *testing.T) {
	evidence := []domain.EvidenceSnippet{
		{Title: "first", Snippet: "1"},
		{Title: "second", Snippet: "2"},
		{Title: "third", Snippet: "3"},
	}

	prompt, err := BuildPrompt("claim", evidence)
	require.NoError(t, err)

	a := strings.Index(prompt, "- first: 1")
	b := strings.Index(prompt, "- second: 2")
	c := strings.Index(prompt, "- third: 3")
	require.NotEqual(t, -1, a)
	assert.Less(t, a, b)
	assert.Less(t, b, c)
}

func TestBuildPrompt_CarriesDecisionRules(t *testing.T) {
	prompt, err := BuildPrompt("claim", []domain.EvidenceSnippet{{Title: "t", Snippet: "s"}})
	require.NoError(t, err)

	// The entity-existence rule is the safety-critical part of the
	// prompt contract.
	assert.Contains(t, prompt, "CRITICAL: Verify the COMPLETE STATEMENT, not just that entities exist!")
	assert.Contains(t, prompt, `"Einstein discovered penicillin" is HALLUCINATED even though Einstein existed`)

	assert.Contains(t, prompt, "1. VERIFIED")
	assert.Contains(t, prompt, "2. HALLUCINATED")
	assert.Contains(t, prompt, "3. UNVERIFIABLE")
	assert.Contains(t, prompt, `{"status": "VERIFIED|HALLUCINATED|UNVERIFIABLE", "reason": "Brief explanation under 150 characters"}`)
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	evidence := []domain.EvidenceSnippet{{Title: "t", Snippet: "s"}}

	first, err := BuildPrompt("claim", evidence)
	require.NoError(t, err)
	for range 10 {
		next, err := BuildPrompt("claim", evidence)
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
}

func TestBuildPrompt_NormalizesUnicode(t *testing.T) {
	// Decomposed e + combining acute must render identically to the
	// precomposed form.
	decomposed := "café"
	precomposed := "café"

	a, err := BuildPrompt(decomposed, []domain.EvidenceSnippet{{Title: "t", Snippet: decomposed}})
	require.NoError(t, err)
	b, err := BuildPrompt(precomposed, []domain.EvidenceSnippet{{Title: "t", Snippet: precomposed}})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestBuildPrompt_EmptyClaim(t *testing.T) {
	// The builder validates nothing; an empty claim still renders.
	prompt, err := BuildPrompt("", []domain.EvidenceSnippet{{Title: "t", Snippet: "s"}})
	require.NoError(t, err)
	assert.Contains(t, prompt, "CLAIM TO VERIFY:")
}
