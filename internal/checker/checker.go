package checker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/factweave/claimcheck/internal/domain"
	"github.com/factweave/claimcheck/internal/ports"
)

// noEvidenceReason is the verdict reason when the caller supplies no
// evidence; no model calls are made in that case.
const noEvidenceReason = "No search results found to verify this claim"

// Checker verifies claims against evidence by fanning one request out
// to a fixed panel of judgment attempts and combining their votes.
// It is stateless across calls and safe for concurrent use: the config
// and client are read-only after construction, and every check builds
// its verdict from scratch.
type Checker struct {
	config    Config
	llmClient ports.LLMClient
	logger    *slog.Logger
	metrics   ports.MetricsCollector
	tracer    trace.Tracer
}

// NewChecker creates a Checker with the given panel configuration.
// The LLM client is shared across all in-flight attempts and must be
// safe for concurrent use. A nil logger falls back to slog.Default and
// a nil metrics collector to a no-op.
func NewChecker(
	llmClient ports.LLMClient,
	config Config,
	logger *slog.Logger,
	metrics ports.MetricsCollector,
) (*Checker, error) {
	if llmClient == nil {
		return nil, fmt.Errorf("LLM client cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &Checker{
		config:    config,
		llmClient: llmClient,
		logger:    logger,
		metrics:   metrics,
		tracer:    otel.Tracer("checker"),
	}, nil
}

// Check verifies a claim against the evidence snippets and returns a
// verdict. It never returns an error: attempt-level failures become
// UNVERIFIABLE votes and join-level failures become an UNVERIFIABLE
// verdict, so the caller always receives a well-formed result.
//
// With empty evidence the panel is skipped entirely and the verdict is
// UNVERIFIABLE. Otherwise all attempts run concurrently and Check waits
// for every one of them; there is no early cancellation and no verdict
// from partial results.
func (c *Checker) Check(ctx context.Context, claim string, evidence []domain.EvidenceSnippet) domain.Verdict {
	ctx, span := c.tracer.Start(ctx, "Checker.Check",
		trace.WithAttributes(
			attribute.Int("check.evidence_count", len(evidence)),
			attribute.Int("check.claim_length", len(claim)),
		),
	)
	defer span.End()

	start := time.Now()

	if len(evidence) == 0 {
		verdict := domain.NewVerdict(domain.LabelUnverifiable, noEvidenceReason, nil)
		c.finish(span, verdict, start)
		return verdict
	}

	// Each goroutine writes its own slot, so the barrier is the only
	// synchronization the fan-out needs.
	judgments := make([]domain.Judgment, len(c.config.Attempts))
	g, gctx := errgroup.WithContext(ctx)
	for i, attempt := range c.config.Attempts {
		g.Go(func() error {
			judgments[i] = c.judge(gctx, claim, evidence, attempt)
			return nil
		})
	}

	// Attempts are total functions, so Wait only fails on an
	// infrastructure-level fault in the fan-out itself.
	if err := g.Wait(); err != nil {
		c.logger.Error("verification fan-out failed", "error", err)
		span.RecordError(err)
		verdict := domain.NewVerdict(domain.LabelUnverifiable,
			"Error during verification: "+domain.Truncate(err.Error(), maxErrorLen), evidence)
		c.finish(span, verdict, start)
		return verdict
	}

	// Fold in attempt order so the last-write-wins reason policy is
	// deterministic regardless of completion order.
	tally := domain.NewTally()
	for _, j := range judgments {
		tally.Add(j)
	}

	label, votes := tally.Majority()
	verdict := domain.NewVerdict(label, composeReason(tally, label, votes), evidence)

	c.logger.Debug("claim checked",
		"status", verdict.Label,
		"votes", votes,
		"attempts", tally.Total(),
		"latency_ms", time.Since(start).Milliseconds())
	span.SetAttributes(attribute.Int("check.majority_votes", votes))
	c.finish(span, verdict, start)

	return verdict
}

// composeReason renders the voting summary for the winning label.
func composeReason(tally *domain.Tally, label domain.Label, votes int) string {
	reason := tally.Reason(label)
	total := tally.Total()

	switch {
	case votes == total:
		return fmt.Sprintf("All %d runs agree: %s", total, reason)
	case votes > 1:
		return fmt.Sprintf("%d/%d runs agree: %s", votes, total, reason)
	default:
		return fmt.Sprintf("Runs disagree (1/%d each). Using %s: %s", total, label, reason)
	}
}

// finish records the common span attributes and metrics for a verdict.
func (c *Checker) finish(span trace.Span, verdict domain.Verdict, start time.Time) {
	latency := time.Since(start)
	span.SetAttributes(
		attribute.String("check.status", verdict.Label.String()),
		attribute.Int64("check.latency_ms", latency.Milliseconds()),
	)
	c.metrics.RecordLatency("check", latency, nil)
	c.metrics.RecordCounter("claimcheck_verdicts_total", 1,
		map[string]string{"status": verdict.Label.String()})
}

// noopMetrics discards all measurements.
type noopMetrics struct{}

func (noopMetrics) RecordLatency(string, time.Duration, map[string]string) {}
func (noopMetrics) RecordCounter(string, float64, map[string]string)       {}
func (noopMetrics) RecordHistogram(string, float64, map[string]string)     {}
