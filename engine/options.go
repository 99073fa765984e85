package engine

import (
	"log/slog"
	"time"

	"github.com/katalvlaran/roadgrade/assignment"
	"github.com/katalvlaran/roadgrade/kshortest"
	"github.com/katalvlaran/roadgrade/nearest"
)

// Options configures a Solver.
type Options struct {
	Logger   *slog.Logger
	Searcher *nearest.Searcher
	Diverse  []kshortest.Option
	Schedule []assignment.Option
	// Now is the clock used for processing_time.
	Now func() time.Time
}

// Option mutates Options.
type Option func(*Options)

// WithLogger sets the logger; nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithSearcher replaces the KNN metric registry.
func WithSearcher(s *nearest.Searcher) Option {
	return func(o *Options) {
		if s != nil {
			o.Searcher = s
		}
	}
}

// WithDiverseOptions forwards options to kshortest.Diverse.
func WithDiverseOptions(opts ...kshortest.Option) Option {
	return func(o *Options) {
		o.Diverse = append(o.Diverse, opts...)
	}
}

// WithScheduleOptions forwards options to assignment.Schedule.
func WithScheduleOptions(opts ...assignment.Option) Option {
	return func(o *Options) {
		o.Schedule = append(o.Schedule, opts...)
	}
}

// WithClock overrides the processing-time clock.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Now = now
		}
	}
}

// DefaultOptions returns the default logger, registry and clock.
func DefaultOptions() Options {
	return Options{
		Logger:   slog.Default(),
		Searcher: nearest.New(),
		Now:      time.Now,
	}
}
