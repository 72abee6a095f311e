package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxReasonLen bounds the user-visible reason string on judgments and
// verdicts. Anything beyond the cap is diagnostic detail that belongs
// in logs, not in the response.
const MaxReasonLen = 150

// EvidenceSnippet is one search-result-derived fact fragment.
// Snippets arrive in retrieval order and that order is preserved when
// they are rendered into a judge prompt. The URL is never shown to the
// judge; it exists so the caller can attach source attribution to the
// final verdict.
type EvidenceSnippet struct {
	// Title is the headline of the source document.
	Title string `json:"title"`

	// URL locates the source document.
	URL string `json:"url"`

	// Snippet is the text excerpt the judge reasons over.
	Snippet string `json:"snippet"`
}

// Judgment is the outcome of a single independent attempt: one label
// plus a short explanation. Judgments live only for the duration of a
// check and are never persisted.
type Judgment struct {
	// Label is the attempt's classification of the claim.
	Label Label `json:"status"`

	// Reason explains the classification in at most MaxReasonLen runes.
	Reason string `json:"reason"`
}

// Verdict is the aggregated result returned for a claim. It is created
// fresh per check and carries no state beyond its fields.
type Verdict struct {
	// ID uniquely identifies this verdict.
	ID string `json:"id"`

	// Label is the majority classification across all attempts.
	Label Label `json:"status"`

	// Reason summarizes how the attempts voted, within MaxReasonLen runes.
	Reason string `json:"reason"`

	// Sources lists the URLs of the evidence the verdict was checked
	// against. Omitted when the evidence set was empty.
	Sources []string `json:"sources,omitempty"`

	// Timestamp records when the verdict was produced.
	Timestamp time.Time `json:"timestamp"`
}

// NewVerdict builds a Verdict with a fresh ID, the reason truncated to
// MaxReasonLen, and source URLs reattached from the evidence set.
func NewVerdict(label Label, reason string, evidence []EvidenceSnippet) Verdict {
	var sources []string
	for _, e := range evidence {
		if e.URL != "" {
			sources = append(sources, e.URL)
		}
	}
	return Verdict{
		ID:        uuid.NewString(),
		Label:     label,
		Reason:    Truncate(reason, MaxReasonLen),
		Sources:   sources,
		Timestamp: time.Now().UTC(),
	}
}

// Truncate limits s to at most n runes. It counts runes rather than
// bytes so truncated reasons remain valid UTF-8.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
