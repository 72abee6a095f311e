// Package checker implements multi-attempt claim verification: a fixed
// panel of independent LLM judgments combined into one verdict by
// majority vote.
package checker

import (
	"bytes"
	"fmt"
	"text/template"

	"golang.org/x/text/unicode/norm"

	"github.com/factweave/claimcheck/internal/domain"
)

// verificationPromptTemplate instructs the judge to classify the ENTIRE
// claim, not merely confirm that the entities in it exist. The worked
// examples encode the most safety-critical rule: a claim whose entities
// are real but whose asserted relation is false must be HALLUCINATED.
const verificationPromptTemplate = `You are a rigorous fact-checking assistant. Analyze whether the ENTIRE claim is supported by search results.

CLAIM TO VERIFY:
{{.Claim}}

SEARCH RESULTS:
{{- range .Evidence}}
- {{.Title}}: {{.Snippet}}
{{- end}}

VERIFICATION RULES:
1. VERIFIED - The search results CLEARLY and DIRECTLY support the COMPLETE claim
   - All parts of the claim must be confirmed (subject, action, object, time, place, etc.)
   - Example: "Einstein discovered penicillin" requires proof Einstein discovered it (not just that Einstein existed)

2. HALLUCINATED - The search results CONTRADICT the claim OR show it's factually wrong
   - Any part of the claim that is proven false makes the whole claim HALLUCINATED
   - Example: If claim says "X did Y" but sources say "Z did Y", mark as HALLUCINATED

3. UNVERIFIABLE - Not enough evidence in search results to confirm or deny
   - Sources don't mention the specific claim at all
   - Sources are ambiguous or inconclusive

CRITICAL: Verify the COMPLETE STATEMENT, not just that entities exist!
- "Einstein discovered penicillin" is HALLUCINATED even though Einstein existed
- "Musk founded Google" is HALLUCINATED even though both Musk and Google exist`

// responseFormatInstruction is appended outside the template so its JSON
// braces never collide with template syntax.
const responseFormatInstruction = "\n\nRespond with ONLY a JSON object in this exact format:\n" +
	`{"status": "VERIFIED|HALLUCINATED|UNVERIFIABLE", "reason": "Brief explanation under 150 characters"}` + `

IMPORTANT:
- status MUST be exactly one of: VERIFIED, HALLUCINATED, UNVERIFIABLE
- reason MUST be under 150 characters explaining why
- Return ONLY valid JSON, no other text`

var promptTemplate = template.Must(
	template.New("verificationPrompt").Parse(verificationPromptTemplate))

// promptEvidence is one evidence line as rendered into the prompt.
// The source URL is deliberately absent: attribution is reattached to
// the verdict by the caller, never shown to the judge.
type promptEvidence struct {
	Title   string
	Snippet string
}

// BuildPrompt renders the deterministic judge prompt for a claim and
// its evidence. Evidence lines appear in insertion order. Claim and
// snippet text are NFC-normalized so byte-level encoding differences in
// retrieved text cannot produce distinct prompts for identical content.
//
// The builder performs no validation; short-circuiting on empty
// evidence is the aggregator's job.
func BuildPrompt(claim string, evidence []domain.EvidenceSnippet) (string, error) {
	lines := make([]promptEvidence, len(evidence))
	for i, e := range evidence {
		lines[i] = promptEvidence{
			Title:   norm.NFC.String(e.Title),
			Snippet: norm.NFC.String(e.Snippet),
		}
	}

	data := struct {
		Claim    string
		Evidence []promptEvidence
	}{
		Claim:    norm.NFC.String(claim),
		Evidence: lines,
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute prompt template: %w", err)
	}

	return buf.String() + responseFormatInstruction, nil
}
