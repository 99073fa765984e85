// Package grader replays answer streams through a verifier and reports the
// outcome of every query.
package grader

import (
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/katalvlaran/roadgrade/core"
	"github.com/katalvlaran/roadgrade/query"
	"github.com/katalvlaran/roadgrade/verify"
)

// Outcome is the graded result of one query.
type Outcome struct {
	Index          int             `json:"index"`
	ID             json.RawMessage `json:"id,omitempty"`
	Type           query.Type      `json:"type"`
	Pass           bool            `json:"pass"`
	Reason         string          `json:"reason,omitempty"`
	Kind           verify.Kind     `json:"kind"`
	Score          *float64        `json:"score,omitempty"`
	Better         bool            `json:"better,omitempty"`
	ProcessingTime *float64        `json:"processing_time,omitempty"`
}

// Report summarises one session.
//
// ProcessingTime is the sum of the answers' processing_time in milliseconds,
// or -1 when any answer lacks it. Fatal is set when the session aborted on
// malformed graph data; Outcomes then holds the queries graded before it.
type Report struct {
	SessionID      uuid.UUID `json:"session_id"`
	Name           string    `json:"name,omitempty"`
	Correct        int       `json:"correct"`
	Total          int       `json:"total"`
	ProcessingTime float64   `json:"processing_time"`
	Fatal          string    `json:"fatal,omitempty"`
	Outcomes       []Outcome `json:"outcomes"`
}

// Session grades one answer stream against one graph. Sessions own their
// verifier replica and share nothing.
type Session struct {
	id      uuid.UUID
	name    string
	v       *verify.Verifier
	metrics *Metrics
	log     *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	name    string
	metrics *Metrics
	log     *slog.Logger
	verify  []verify.Option
}

// WithName labels the session in logs and reports.
func WithName(name string) SessionOption {
	return func(c *sessionConfig) { c.name = name }
}

// WithMetrics records verdicts on m.
func WithMetrics(m *Metrics) SessionOption {
	return func(c *sessionConfig) { c.metrics = m }
}

// WithLogger sets the session and verifier logger.
func WithLogger(l *slog.Logger) SessionOption {
	return func(c *sessionConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// WithVerifyOptions forwards options to the verifier.
func WithVerifyOptions(opts ...verify.Option) SessionOption {
	return func(c *sessionConfig) { c.verify = append(c.verify, opts...) }
}

// NewSession builds a session with a fresh replica of desc.
func NewSession(desc core.Description, opts ...SessionOption) (*Session, error) {
	cfg := sessionConfig{log: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	id := uuid.New()
	log := cfg.log.With("session", id.String())
	if cfg.name != "" {
		log = log.With("case", cfg.name)
	}

	vopts := append([]verify.Option{verify.WithLogger(log)}, cfg.verify...)
	v, err := verify.New(desc, vopts...)
	if err != nil {
		return nil, err
	}

	return &Session{id: id, name: cfg.name, v: v, metrics: cfg.metrics, log: log}, nil
}

// ID returns the session id.
func (s *Session) ID() uuid.UUID { return s.id }

// Run grades answers against queries in stream order. expected may be nil,
// in which case every reference value is recomputed by the verifier.
//
// Streams of unequal length are truncated to the shortest. A fatal
// precondition stops the replay; the partial report is returned with the
// error.
func (s *Session) Run(queries query.Stream, answers query.AnswerStream, expected *query.AnswerStream) (Report, error) {
	n := min(len(queries.Events), len(answers.Results))
	if expected != nil {
		n = min(n, len(expected.Results))
	}
	if n < len(queries.Events) {
		s.log.Warn("streams truncated", "events", len(queries.Events), "answers", len(answers.Results), "graded", n)
	}

	rep := Report{SessionID: s.id, Name: s.name, Total: n, Outcomes: make([]Outcome, 0, n)}
	for i := 0; i < n; i++ {
		ev, got := queries.Events[i], answers.Results[i]
		var want query.Answer
		if expected != nil {
			want = expected.Results[i]
		}

		verdict, err := s.v.Check(ev, got, want)
		if err != nil {
			rep.Fatal = err.Error()
			s.metrics.ObserveSession(true)
			s.log.Error("session aborted", "index", i, "error", err)

			return rep, err
		}

		out := Outcome{
			Index:          i,
			ID:             ev.QueryID(),
			Type:           ev.Kind(),
			Pass:           verdict.Pass,
			Reason:         verdict.Reason,
			Kind:           verdict.Kind,
			Better:         verdict.Better,
			ProcessingTime: got.ProcessingTime,
		}
		if verdict.HasScore {
			score := verdict.Score
			out.Score = &score
		}
		if out.Pass {
			rep.Correct++
		}
		rep.Outcomes = append(rep.Outcomes, out)

		s.metrics.ObserveVerdict(ev.Kind(), verdict)
		if got.ProcessingTime != nil {
			s.metrics.ObserveProcessing(ev.Kind(), *got.ProcessingTime)
		}
	}
	rep.ProcessingTime = totalProcessing(answers.Results)

	s.metrics.ObserveSession(false)
	s.log.Info("session graded", "correct", rep.Correct, "total", rep.Total)

	return rep, nil
}

// totalProcessing sums processing_time over all answers, -1 if any is missing.
func totalProcessing(results []query.Answer) float64 {
	total := 0.0
	for _, r := range results {
		if r.ProcessingTime == nil {
			return -1
		}
		total += *r.ProcessingTime
	}

	return total
}
