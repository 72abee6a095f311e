package checker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/factweave/claimcheck/internal/domain"
)

const (
	// defaultReason substitutes for a missing reason field in an
	// otherwise valid judge response.
	defaultReason = "Unable to determine"

	// maxErrorLen bounds the provider error text embedded in a
	// synthetic judgment reason. Full detail goes to the log.
	maxErrorLen = 100
)

// judgeResponse is the JSON object a judge is instructed to return.
type judgeResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// judge runs one attempt against one model at one temperature. It is a
// total function: every provider or parse failure is logged and
// converted into an UNVERIFIABLE judgment, so an attempt can never fail
// its caller. There are no retries at this layer; a failed call simply
// contributes an UNVERIFIABLE vote.
func (c *Checker) judge(
	ctx context.Context,
	claim string,
	evidence []domain.EvidenceSnippet,
	attempt AttemptConfig,
) domain.Judgment {
	prompt, err := BuildPrompt(claim, evidence)
	if err != nil {
		c.logger.Warn("prompt construction failed",
			"model", attempt.Model,
			"temperature", attempt.Temperature,
			"error", err)
		return modelErrorJudgment(err)
	}

	options := map[string]any{
		"model":       attempt.Model,
		"temperature": attempt.Temperature,
		"max_tokens":  c.config.MaxTokens,
	}

	response, err := c.llmClient.Complete(ctx, prompt, options)
	if err != nil {
		c.logger.Warn("judge attempt failed",
			"model", attempt.Model,
			"temperature", attempt.Temperature,
			"error", err)
		c.metrics.RecordCounter("claimcheck_attempt_failures_total", 1,
			map[string]string{"model": attempt.Model, "cause": "provider"})
		return modelErrorJudgment(err)
	}

	judgment, err := parseJudgment(response)
	if err != nil {
		c.logger.Warn("judge attempt returned unparseable response",
			"model", attempt.Model,
			"temperature", attempt.Temperature,
			"response_len", len(response),
			"error", err)
		c.metrics.RecordCounter("claimcheck_attempt_failures_total", 1,
			map[string]string{"model": attempt.Model, "cause": "parse"})
		return modelErrorJudgment(err)
	}

	return judgment
}

// parseJudgment extracts a judgment from a raw model response. It first
// looks for a brace-delimited JSON object substring, tolerating the
// commentary and code fences models emit despite instructions; if none
// is found, the raw response is parsed as JSON directly. The status is
// coerced onto the three-label set and the reason truncated to its cap,
// substituting a fixed default when absent.
func parseJudgment(response string) (domain.Judgment, error) {
	payload := extractJSON(response)
	if payload == "" {
		payload = response
	}

	var parsed judgeResponse
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return domain.Judgment{}, err
	}

	reason := parsed.Reason
	if reason == "" {
		reason = defaultReason
	}

	return domain.Judgment{
		Label:  domain.ParseLabel(parsed.Status),
		Reason: domain.Truncate(reason, domain.MaxReasonLen),
	}, nil
}

// modelErrorJudgment converts an attempt-level failure into the
// synthetic UNVERIFIABLE vote the aggregator counts like any other.
func modelErrorJudgment(err error) domain.Judgment {
	return domain.Judgment{
		Label:  domain.LabelUnverifiable,
		Reason: "Model error: " + domain.Truncate(err.Error(), maxErrorLen),
	}
}

// extractJSON returns the first JSON object embedded in a response,
// handling markdown code fences and text surrounding the object.
// Returns the empty string when no object is found.
func extractJSON(response string) string {
	response = strings.TrimSpace(response)

	if strings.Contains(response, "```json") {
		start := strings.Index(response, "```json") + len("```json")
		if end := strings.Index(response[start:], "```"); end != -1 {
			return strings.TrimSpace(response[start : start+end])
		}
	}

	if strings.Contains(response, "```") {
		start := strings.Index(response, "```") + 3
		// Skip a language identifier on the fence line, if any.
		if nl := strings.Index(response[start:], "\n"); nl != -1 {
			candidate := response[start+nl+1:]
			if end := strings.Index(candidate, "```"); end != -1 {
				candidate = strings.TrimSpace(candidate[:end])
				if strings.HasPrefix(candidate, "{") {
					return candidate
				}
			}
		}
	}

	start := strings.Index(response, "{")
	if start == -1 {
		return ""
	}

	// Walk to the matching closing brace, ignoring braces inside
	// strings and escape sequences.
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(response); i++ {
		ch := response[i]

		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch ch {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return response[start : i+1]
			}
		}
	}

	return ""
}
