// Package engine answers query streams against its own road graph.
//
// A Solver owns one core.Graph built from a description and replays events in
// order: mutations change the graph seen by every later event. Per-event
// problems (unknown type or mode, bad k, unknown assignment nodes) are
// reported in Answer.Error. Only malformed foundational data, an edge
// lacking the weight its objective needs, aborts with an error.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/roadgrade/assignment"
	"github.com/katalvlaran/roadgrade/core"
	"github.com/katalvlaran/roadgrade/dijkstra"
	"github.com/katalvlaran/roadgrade/kshortest"
	"github.com/katalvlaran/roadgrade/query"
	"github.com/katalvlaran/roadgrade/timecost"
)

// IsFatal reports whether err signals malformed graph data that must abort
// the whole session.
func IsFatal(err error) bool {
	return errors.Is(err, timecost.ErrMissingWeight) || errors.Is(err, timecost.ErrUnreachableSlot)
}

// Solver replays events against a private graph. It is not safe for
// concurrent use.
type Solver struct {
	desc    core.Description
	g       *core.Graph
	net     *assignment.Network
	options Options
	log     *slog.Logger
}

// New builds a Solver over desc.
func New(desc core.Description, opts ...Option) (*Solver, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	g, err := core.NewGraph(desc)
	if err != nil {
		return nil, err
	}

	return &Solver{desc: desc, g: g, options: cfg, log: cfg.Logger}, nil
}

// Graph exposes the solver's current graph.
func (s *Solver) Graph() *core.Graph { return s.g }

// SolveAll answers every event of st in order. Meta is copied through.
// It stops at the first fatal error.
func (s *Solver) SolveAll(st query.Stream) (query.AnswerStream, error) {
	out := query.AnswerStream{Meta: st.Meta, Results: make([]query.Answer, 0, len(st.Events))}
	for i, ev := range st.Events {
		ans, err := s.Solve(ev)
		if err != nil {
			return out, fmt.Errorf("event %d (%s): %w", i, ev.Kind(), err)
		}
		out.Results = append(out.Results, ans)
	}

	return out, nil
}

// Solve answers one event and stamps its id and processing time.
func (s *Solver) Solve(ev query.Event) (query.Answer, error) {
	start := s.options.Now()
	ans, err := s.dispatch(ev)
	if err != nil {
		if IsFatal(err) {
			return query.Answer{}, err
		}
		ans = query.Answer{Error: err.Error()}
	}
	ans.ID = ev.QueryID()
	ans.ProcessingTime = query.Float(float64(s.options.Now().Sub(start).Microseconds()) / 1000)

	s.log.Debug("solved", "query_id", string(ans.ID), "type", ev.Kind(), "error", ans.Error)

	return ans, nil
}

func (s *Solver) dispatch(ev query.Event) (query.Answer, error) {
	switch e := ev.(type) {
	case query.RemoveEdge:
		return query.Answer{Done: query.Bool(s.g.Disable(e.EdgeID))}, nil
	case query.ModifyEdge:
		return query.Answer{Done: query.Bool(s.g.Patch(e.EdgeID, e.Patch))}, nil
	case query.ShortestPath:
		return s.shortestPath(e)
	case query.KShortestPaths:
		return s.kShortest(e)
	case query.KShortestPathsHeuristic:
		return s.diverse(e)
	case query.ApproxShortestPath:
		return s.approx(e)
	case query.KNN:
		nodes, err := s.options.Searcher.Search(s.g, e.Query())
		if err != nil {
			return query.Answer{}, err
		}
		if nodes == nil {
			nodes = []int64{}
		}

		return query.Answer{Nodes: nodes}, nil
	case query.Assignment:
		return s.assign(e)
	}

	return query.Answer{}, fmt.Errorf("unknown query type: %s", ev.Kind())
}

func (s *Solver) shortestPath(e query.ShortestPath) (query.Answer, error) {
	mode, err := timecost.ParseMode(e.Mode)
	if err != nil {
		return query.Answer{}, err
	}
	res, err := dijkstra.ShortestPath(s.g, e.Source, e.Target,
		dijkstra.WithMode(mode),
		dijkstra.WithForbiddenNodes(e.Constraints.ForbiddenNodes...),
		dijkstra.WithForbiddenRoadTypes(e.Constraints.ForbiddenRoadTypes...),
	)
	if err != nil {
		return query.Answer{}, err
	}
	ans := query.Answer{Possible: query.Bool(res.Found)}
	if res.Found {
		ans.Path = res.Path
		ans.Cost = query.Float(res.Cost)
	}

	return ans, nil
}

func (s *Solver) kShortest(e query.KShortestPaths) (query.Answer, error) {
	mode, err := timecost.ParseMode(e.Mode)
	if err != nil {
		return query.Answer{}, err
	}
	paths, err := kshortest.Yen(s.g, e.Source, e.Target, e.K, mode)
	if err != nil {
		return query.Answer{}, err
	}

	return query.Answer{Possible: query.Bool(len(paths) > 0), Paths: wirePaths(paths)}, nil
}

func (s *Solver) diverse(e query.KShortestPathsHeuristic) (query.Answer, error) {
	paths, err := kshortest.Diverse(s.g, e.Source, e.Target, e.K, e.OverlapThreshold, s.options.Diverse...)
	if err != nil {
		return query.Answer{}, err
	}

	return query.Answer{Paths: wirePaths(paths)}, nil
}

func wirePaths(paths []kshortest.Path) []query.PathLength {
	out := make([]query.PathLength, len(paths))
	for i, p := range paths {
		out[i] = query.PathLength{Path: p.Nodes, Length: query.Float(p.Cost)}
	}

	return out
}

func (s *Solver) approx(e query.ApproxShortestPath) (query.Answer, error) {
	out := make([]query.Distance, 0, len(e.Queries))
	for _, q := range e.Queries {
		res, err := dijkstra.Approximate(s.g, q.Source, q.Target, e.AcceptableErrorPct)
		if err != nil {
			return query.Answer{}, err
		}
		d := query.Distance{Source: q.Source, Target: q.Target}
		if res.Found && !math.IsInf(res.Cost, 1) {
			d.Approx = query.Float(res.Cost)
		}
		out = append(out, d)
	}

	return query.Answer{Distances: out}, nil
}

func (s *Solver) assign(e query.Assignment) (query.Answer, error) {
	orders, res := assignment.ParseOrders(e.Orders)
	if !res.OK {
		return query.Answer{}, errors.New(res.Reason)
	}
	if s.net == nil {
		net, err := assignment.NewNetwork(s.desc)
		if err != nil {
			return query.Answer{}, err
		}
		s.net = net
	}

	plan, err := assignment.Schedule(s.net, orders, e.Fleet, s.options.Schedule...)
	if err != nil {
		return query.Answer{}, err
	}
	check := assignment.Validate(s.net, orders, plan)
	if !check.OK {
		return query.Answer{}, fmt.Errorf("schedule rejected by validator: %s", check.Reason)
	}

	return query.Answer{Assignments: plan, Metrics: &query.Metrics{TotalDeliveryTime: check.PenaltyTime}}, nil
}
