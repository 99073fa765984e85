package config

import (
	"io"
	"log/slog"
	"strings"

	"github.com/katalvlaran/roadgrade/assignment"
	"github.com/katalvlaran/roadgrade/engine"
	"github.com/katalvlaran/roadgrade/kshortest"
	"github.com/katalvlaran/roadgrade/nearest"
	"github.com/katalvlaran/roadgrade/verify"
)

// Logger builds the configured slog handler on w. c must be valid.
func (c Config) Logger(w io.Writer) *slog.Logger {
	lvl, _ := c.Logging.level()
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(c.Logging.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// Searcher returns a KNN searcher with the configured default metric.
func (c Config) Searcher() *nearest.Searcher {
	return nearest.New(nearest.WithDefaultMetric(c.Nearest.DefaultMetric))
}

// EngineOptions maps the solver settings.
func (c Config) EngineOptions(log *slog.Logger) []engine.Option {
	return []engine.Option{
		engine.WithLogger(log),
		engine.WithSearcher(c.Searcher()),
		engine.WithDiverseOptions(
			kshortest.WithUsagePenalty(c.KShortest.UsagePenalty),
			kshortest.WithRejectedBump(c.KShortest.RejectedUsageBump),
			kshortest.WithMaxAttemptsFactor(c.KShortest.MaxAttemptsFactor),
		),
		engine.WithScheduleOptions(assignment.WithMaxIterations(c.Assignment.TwoOptMaxIterations)),
	}
}

// VerifyOptions maps the verifier settings.
func (c Config) VerifyOptions(log *slog.Logger) []verify.Option {
	return []verify.Option{
		verify.WithLogger(log),
		verify.WithTolerances(c.Tolerances.SelfConsistency, c.Tolerances.Expected),
		verify.WithSearcher(c.Searcher()),
	}
}
