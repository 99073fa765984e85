package kshortest

import (
	"errors"

	"github.com/katalvlaran/roadgrade/core"
)

// ErrBadK indicates a negative path count.
var ErrBadK = errors.New("kshortest: k must be non-negative")

// Path is one enumerated route: node ids, the directional records between
// them, and the cost re-derived over those records.
type Path struct {
	Nodes []int64
	Refs  []core.EdgeRef
	Cost  float64
}

// Options configures Diverse.
//
// UsagePenalty      – each use of a road multiplies its length by (1 + UsagePenalty·uses).
// RejectedBump      – extra uses charged to every road of a rejected candidate.
// MaxAttemptsFactor – searches are capped at k·MaxAttemptsFactor.
type Options struct {
	UsagePenalty      float64
	RejectedBump      int
	MaxAttemptsFactor int
}

// Option represents a functional option for Diverse.
type Option func(*Options)

// WithUsagePenalty sets the per-use multiplicative penalty.
func WithUsagePenalty(p float64) Option {
	return func(o *Options) {
		o.UsagePenalty = p
	}
}

// WithRejectedBump sets the usage charged to roads of rejected candidates.
func WithRejectedBump(n int) Option {
	return func(o *Options) {
		o.RejectedBump = n
	}
}

// WithMaxAttemptsFactor caps the number of penalised searches.
func WithMaxAttemptsFactor(n int) Option {
	return func(o *Options) {
		o.MaxAttemptsFactor = n
	}
}

// DefaultOptions returns penalty 0.3, bump 2 and 4·k attempts.
func DefaultOptions() Options {
	return Options{
		UsagePenalty:      0.3,
		RejectedBump:      2,
		MaxAttemptsFactor: 4,
	}
}
