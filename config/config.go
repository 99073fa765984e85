// Package config loads roadgrade settings from YAML and turns them into
// component options.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/roadgrade/assignment"
	"github.com/katalvlaran/roadgrade/kshortest"
	"github.com/katalvlaran/roadgrade/nearest"
	"github.com/katalvlaran/roadgrade/timecost"
	"github.com/katalvlaran/roadgrade/verify"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the root document.
type Config struct {
	Tolerances Tolerances `yaml:"tolerances"`
	TimeCost   TimeCost   `yaml:"timecost"`
	Nearest    Nearest    `yaml:"nearest"`
	KShortest  KShortest  `yaml:"kshortest"`
	Assignment Assignment `yaml:"assignment"`
	Grading    Grading    `yaml:"grading"`
	Logging    Logging    `yaml:"logging"`
	Metrics    Metrics    `yaml:"metrics"`
}

// Tolerances bound the verifier's float comparisons.
type Tolerances struct {
	SelfConsistency float64 `yaml:"self_consistency"`
	Expected        float64 `yaml:"expected"`
}

// TimeCost mirrors the cost model constant. Only timecost.SlotSeconds is accepted.
type TimeCost struct {
	SlotSeconds float64 `yaml:"slot_seconds"`
}

// Nearest holds the KNN settings.
type Nearest struct {
	DefaultMetric string `yaml:"default_metric"`
}

// KShortest tunes the diverse-path heuristic.
type KShortest struct {
	UsagePenalty      float64 `yaml:"usage_penalty"`
	RejectedUsageBump int     `yaml:"rejected_usage_bump"`
	MaxAttemptsFactor int     `yaml:"max_attempts_factor"`
}

// Assignment bounds the delivery scheduler.
type Assignment struct {
	TwoOptMaxIterations int `yaml:"two_opt_max_iterations"`
}

// Grading bounds batch grading.
type Grading struct {
	Concurrency int `yaml:"concurrency"`
}

// Logging selects the slog handler: level is debug, info, warn or error;
// format is text or json.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Metrics names the Prometheus namespace.
type Metrics struct {
	Namespace string `yaml:"namespace"`
}

// Default returns the built-in settings.
func Default() Config {
	ks := kshortest.DefaultOptions()

	return Config{
		Tolerances: Tolerances{
			SelfConsistency: verify.DefaultSelfTolerance,
			Expected:        verify.DefaultExpectedTolerance,
		},
		TimeCost:   TimeCost{SlotSeconds: timecost.SlotSeconds},
		Nearest:    Nearest{DefaultMetric: nearest.MetricEuclidean},
		KShortest:  KShortest{UsagePenalty: ks.UsagePenalty, RejectedUsageBump: ks.RejectedBump, MaxAttemptsFactor: ks.MaxAttemptsFactor},
		Assignment: Assignment{TwoOptMaxIterations: assignment.DefaultMaxIterations},
		Grading:    Grading{Concurrency: 4},
		Logging:    Logging{Level: "info", Format: "text"},
		Metrics:    Metrics{Namespace: "roadgrade"},
	}
}

// Load reads path over Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	switch {
	case c.Tolerances.SelfConsistency <= 0 || c.Tolerances.Expected <= 0:
		return fmt.Errorf("%w: tolerances must be positive", ErrInvalid)
	case c.TimeCost.SlotSeconds != timecost.SlotSeconds:
		return fmt.Errorf("%w: timecost.slot_seconds is fixed at %v", ErrInvalid, timecost.SlotSeconds)
	case !nearest.New().Has(c.Nearest.DefaultMetric):
		return fmt.Errorf("%w: unknown metric %q", ErrInvalid, c.Nearest.DefaultMetric)
	case c.KShortest.UsagePenalty < 0:
		return fmt.Errorf("%w: kshortest.usage_penalty must be non-negative", ErrInvalid)
	case c.KShortest.RejectedUsageBump < 0 || c.KShortest.MaxAttemptsFactor < 1:
		return fmt.Errorf("%w: kshortest bump and attempts factor out of range", ErrInvalid)
	case c.Assignment.TwoOptMaxIterations < 0:
		return fmt.Errorf("%w: assignment.two_opt_max_iterations must be non-negative", ErrInvalid)
	case c.Grading.Concurrency < 1:
		return fmt.Errorf("%w: grading.concurrency must be at least 1", ErrInvalid)
	case c.Metrics.Namespace == "":
		return fmt.Errorf("%w: metrics.namespace is empty", ErrInvalid)
	}
	if _, err := c.Logging.level(); err != nil {
		return err
	}
	if f := strings.ToLower(c.Logging.Format); f != "text" && f != "json" {
		return fmt.Errorf("%w: logging.format %q", ErrInvalid, c.Logging.Format)
	}

	return nil
}

func (l Logging) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: logging.level %q", ErrInvalid, l.Level)
	}

	return lvl, nil
}
