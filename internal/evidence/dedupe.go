// Package evidence provides preprocessing helpers for retrieved search
// results before they are handed to the checker. These helpers belong
// to the retrieval side of the boundary: the checker itself never
// mutates the evidence it is given.
package evidence

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/factweave/claimcheck/internal/domain"
)

// DefaultSimilarityThreshold treats snippets as duplicates when their
// normalized edit similarity reaches this value. Search engines often
// return the same excerpt under slightly different titles.
const DefaultSimilarityThreshold = 0.9

// foldCaser is a package-level Unicode case folder, shared because
// caser construction is comparatively expensive.
var foldCaser = cases.Fold()

// Dedupe removes near-duplicate snippets, keeping the first occurrence
// of each group so retrieval order is preserved. Similarity is computed
// on case-folded snippet text with Levenshtein distance normalized by
// the longer rune count. A threshold outside (0, 1] falls back to
// DefaultSimilarityThreshold. The input slice is not modified.
func Dedupe(snippets []domain.EvidenceSnippet, threshold float64) []domain.EvidenceSnippet {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultSimilarityThreshold
	}
	if len(snippets) < 2 {
		return snippets
	}

	kept := make([]domain.EvidenceSnippet, 0, len(snippets))
	keptFolded := make([]string, 0, len(snippets))

	for _, s := range snippets {
		folded := foldCaser.String(s.Snippet)

		duplicate := false
		for _, prev := range keptFolded {
			if similarity(folded, prev) >= threshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, s)
			keptFolded = append(keptFolded, folded)
		}
	}

	return kept
}

// similarity returns a score in [0, 1] where 1.0 means identical.
// Levenshtein distance operates on runes, so the normalizing length is
// a rune count as well.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}

	score := 1.0 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
	if score < 0 {
		score = 0
	}
	return score
}
