// Command claimcheck verifies a factual claim against web-search
// evidence and prints the verdict as JSON.
//
// Evidence is supplied as a JSON array of {title, url, snippet} objects,
// either from a file or stdin. The provider API key is read from the
// environment (GROQ_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, or
// GEMINI_API_KEY depending on -provider), with a .env file loaded first
// if present.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/factweave/claimcheck/infrastructure/llm"
	"github.com/factweave/claimcheck/infrastructure/metrics"
	"github.com/factweave/claimcheck/internal/checker"
	"github.com/factweave/claimcheck/internal/domain"
	"github.com/factweave/claimcheck/internal/evidence"
)

var apiKeyEnvVars = map[string]string{
	"groq":      "GROQ_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"google":    "GEMINI_API_KEY",
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "claimcheck: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		claim        = flag.String("claim", "", "Claim to verify (required)")
		evidencePath = flag.String("evidence", "-", "Path to evidence JSON array, or - for stdin")
		configPath   = flag.String("config", "", "Optional checker config YAML")
		provider     = flag.String("provider", "groq", "LLM provider: groq, openai, anthropic, or google")
		model        = flag.String("model", "", "Override the default model for all attempts")
		timeout      = flag.Duration("timeout", 30*time.Second, "Per-request LLM timeout")
		rps          = flag.Float64("rps", 0, "Max LLM requests per second, 0 for unlimited")
		dedupe       = flag.Bool("dedupe", false, "Drop near-duplicate evidence snippets before checking")
		metricsAddr  = flag.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
		verbose      = flag.Bool("v", false, "Debug logging")
	)
	flag.Parse()

	if *claim == "" {
		flag.Usage()
		return fmt.Errorf("-claim is required")
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	// Missing .env is fine; keys may come from the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not load .env file", "error", err)
	}

	envVar, ok := apiKeyEnvVars[*provider]
	if !ok {
		return fmt.Errorf("unknown provider %q", *provider)
	}
	apiKey := os.Getenv(envVar)
	if apiKey == "" {
		return fmt.Errorf("%s is not set", envVar)
	}

	config := checker.DefaultConfig()
	if *configPath != "" {
		loaded, err := checker.LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		config = loaded
	}
	if *model != "" {
		for i := range config.Attempts {
			config.Attempts[i].Model = *model
		}
	}

	collector := metrics.NewPrometheusMetrics(nil)
	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, logger)
	}

	middleware := []llm.Middleware{
		llm.MetricsMiddleware(*provider, collector),
		llm.TimeoutMiddleware(*timeout),
	}
	if *rps > 0 {
		burst := int(*rps)
		if burst < 1 {
			burst = 1
		}
		middleware = append(middleware, llm.RateLimitMiddleware(rate.Limit(*rps), burst))
	}

	client, err := llm.NewClient(*provider, llm.ClientConfig{
		APIKey:     apiKey,
		Model:      config.Attempts[0].Model,
		Middleware: middleware,
	})
	if err != nil {
		return fmt.Errorf("creating LLM client: %w", err)
	}

	snippets, err := loadEvidence(*evidencePath)
	if err != nil {
		return fmt.Errorf("loading evidence: %w", err)
	}
	if *dedupe {
		before := len(snippets)
		snippets = evidence.Dedupe(snippets, evidence.DefaultSimilarityThreshold)
		if dropped := before - len(snippets); dropped > 0 {
			logger.Debug("dropped near-duplicate snippets", "dropped", dropped)
		}
	}

	chk, err := checker.NewChecker(client, config, logger, collector)
	if err != nil {
		return fmt.Errorf("creating checker: %w", err)
	}

	verdict := chk.Check(context.Background(), *claim, snippets)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(verdict)
}

// loadEvidence reads a JSON array of evidence snippets from a file or
// stdin. An empty input is valid and yields an UNVERIFIABLE verdict
// without any model calls.
func loadEvidence(path string) ([]domain.EvidenceSnippet, error) {
	var reader io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		reader = f
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var snippets []domain.EvidenceSnippet
	if err := json.Unmarshal(data, &snippets); err != nil {
		return nil, fmt.Errorf("evidence must be a JSON array of {title, url, snippet}: %w", err)
	}
	return snippets, nil
}

func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", "error", err)
	}
}
