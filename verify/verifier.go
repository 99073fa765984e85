package verify

import (
	"errors"
	"log/slog"
	"math"

	"golang.org/x/exp/slices"

	"github.com/katalvlaran/roadgrade/assignment"
	"github.com/katalvlaran/roadgrade/core"
	"github.com/katalvlaran/roadgrade/dijkstra"
	"github.com/katalvlaran/roadgrade/nearest"
	"github.com/katalvlaran/roadgrade/query"
	"github.com/katalvlaran/roadgrade/timecost"
)

// Default tolerances.
const (
	DefaultSelfTolerance     = 1e-2
	DefaultExpectedTolerance = 1e-1
)

// Options configures a Verifier.
type Options struct {
	Logger *slog.Logger
	// SelfTolerance bounds |recomputed − reported|.
	SelfTolerance float64
	// ExpectedTolerance bounds how much worse than expected a total may be.
	ExpectedTolerance float64
	// Searcher recomputes KNN answers when the expected answer has no sets.
	Searcher *nearest.Searcher
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

// WithTolerances overrides the self-consistency and expected tolerances.
func WithTolerances(self, expected float64) Option {
	return func(o *Options) {
		o.SelfTolerance, o.ExpectedTolerance = self, expected
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

// DefaultOptions returns 1e-2 / 1e-1 tolerances and the default logger.
func DefaultOptions() Options {
	return Options{
		Logger:            slog.Default(),
		SelfTolerance:     DefaultSelfTolerance,
		ExpectedTolerance: DefaultExpectedTolerance,
		Searcher:          nearest.New(),
	}
}

// Verifier checks answers against its own graph replica. Mutation events are
// applied to the replica as they are checked, so events must be checked in
// stream order. It is not safe for concurrent use.
type Verifier struct {
	desc    core.Description
	g       *core.Graph
	net     *assignment.Network
	options Options
	log     *slog.Logger
}

// New builds a Verifier with a fresh replica of desc.
func New(desc core.Description, opts ...Option) (*Verifier, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	g, err := core.NewGraph(desc)
	if err != nil {
		return nil, err
	}

	return &Verifier{desc: desc, g: g, options: cfg, log: cfg.Logger}, nil
}

// Graph exposes the replica.
func (v *Verifier) Graph() *core.Graph { return v.g }

// Check verifies got, the subject's answer to ev, using want as the expected
// answer. Fields missing from want are recomputed on the replica.
//
// Per-answer failures are Verdicts; the error is reserved for malformed
// graph data (see timecost.ErrMissingWeight).
func (v *Verifier) Check(ev query.Event, got, want query.Answer) (Verdict, error) {
	var (
		verdict Verdict
		err     error
	)
	switch e := ev.(type) {
	case query.RemoveEdge:
		verdict = v.mutation(v.g.Disable(e.EdgeID), got)
	case query.ModifyEdge:
		verdict = v.mutation(v.g.Patch(e.EdgeID, e.Patch), got)
	case query.ShortestPath:
		verdict, err = v.shortestPath(e, got, want)
	case query.KShortestPaths:
		verdict, err = v.kShortest(e, got, want)
	case query.KShortestPathsHeuristic:
		verdict, err = v.diverse(e, got)
	case query.ApproxShortestPath:
		verdict, err = v.approx(e, got, want)
	case query.KNN:
		verdict, err = v.knn(e, got, want)
	case query.Assignment:
		verdict, err = v.assignment(e, got)
	default:
		verdict = failf(KindStructural, "unknown query type: %s", ev.Kind())
	}
	if err != nil {
		return Verdict{}, err
	}

	v.log.Debug("verdict",
		"query_id", string(ev.QueryID()),
		"type", ev.Kind(),
		"pass", verdict.Pass,
		"kind", verdict.Kind,
		"reason", verdict.Reason,
	)

	return verdict, nil
}

// mutation compares the replica's outcome to the reported done flag.
func (v *Verifier) mutation(observed bool, got query.Answer) Verdict {
	if got.Done == nil {
		return failf(KindData, "missing 'done' field")
	}
	if *got.Done != observed {
		return failf(KindMismatch, "done: computed %v, reported %v", observed, *got.Done)
	}

	return pass("mutation outcome matches")
}

// pathRules are the structural constraints a reported path must satisfy.
type pathRules struct {
	source, target int64
	nodes          map[int64]bool
	types          map[string]bool
	loopless       bool
}

// walk checks path against rules and returns its recomputed cost. A failing
// Verdict is returned with ok=false.
func (v *Verifier) walk(path []int64, mode timecost.Mode, r pathRules) (cost float64, verdict Verdict, ok bool, err error) {
	switch {
	case len(path) == 0:
		return 0, failf(KindStructural, "empty path"), false, nil
	case path[0] != r.source || path[len(path)-1] != r.target:
		return 0, failf(KindStructural, "path endpoints %d→%d, want %d→%d", path[0], path[len(path)-1], r.source, r.target), false, nil
	case len(path) == 1 && r.source != r.target:
		return 0, failf(KindStructural, "single-node path"), false, nil
	}
	seen := make(map[int64]bool, len(path))
	for _, id := range path {
		if r.nodes[id] {
			return 0, failf(KindStructural, "forbidden node %d", id), false, nil
		}
		if r.loopless && seen[id] {
			return 0, failf(KindStructural, "node %d repeated", id), false, nil
		}
		seen[id] = true
	}

	cost, _, err = timecost.Walk(v.g, path, mode, func(e *core.Edge) bool { return !r.types[e.RoadType] })
	if errors.Is(err, timecost.ErrNoArc) {
		return 0, failf(KindStructural, "%v", err), false, nil
	}
	if err != nil {
		return 0, Verdict{}, false, err
	}

	return cost, Verdict{}, true, nil
}

func set[T comparable](items []T) map[T]bool {
	m := make(map[T]bool, len(items))
	for _, it := range items {
		m[it] = true
	}

	return m
}

func (v *Verifier) shortestPath(e query.ShortestPath, got, want query.Answer) (Verdict, error) {
	mode, err := timecost.ParseMode(e.Mode)
	if err != nil {
		return failf(KindData, "%v", err), nil
	}
	if got.Possible == nil {
		return failf(KindData, "missing 'possible' field"), nil
	}
	expected, found, err := v.expectedTotal(e, mode, want)
	if err != nil {
		return Verdict{}, err
	}
	if !*got.Possible {
		if found {
			return failf(KindMismatch, "expected possible path, but got impossible"), nil
		}

		return pass("both report no path"), nil
	}

	// 1) Structure and recomputed total.
	total, bad, ok, err := v.walk(got.Path, mode, pathRules{
		source: e.Source,
		target: e.Target,
		nodes:  set(e.Constraints.ForbiddenNodes),
		types:  set(e.Constraints.ForbiddenRoadTypes),
	})
	if err != nil || !ok {
		return bad, err
	}

	// 2) Self-consistency.
	reported, ok := got.Reported(mode)
	if !ok {
		return failf(KindData, "missing '%s' field", query.CostKey), nil
	}
	if math.Abs(total-reported) > v.options.SelfTolerance {
		return failf(KindMismatch, "reported value is incorrect, computed: %v, reported: %v", total, reported), nil
	}

	// 3) Against the expected total.
	if !found {
		return failf(KindMismatch, "path reported but none exists, computed: %v", total), nil
	}
	if expected-total > v.options.ExpectedTolerance {
		v.log.Info("answer better than expected",
			"query_id", string(e.QueryID()), "computed", total, "expected", expected)
		verdict := pass("path is better than expected")
		verdict.Better = true

		return verdict, nil
	}
	if total-expected > v.options.ExpectedTolerance {
		return failf(KindMismatch, "expected value is incorrect, computed: %v, expected: %v", total, expected), nil
	}

	return pass("shortest path and reported total are correct"), nil
}

// expectedTotal returns the expected shortest total and whether a path exists.
// Both come from want when it states them and are recomputed otherwise.
func (v *Verifier) expectedTotal(e query.ShortestPath, mode timecost.Mode, want query.Answer) (float64, bool, error) {
	if want.Possible != nil && !*want.Possible {
		return 0, false, nil
	}
	if total, ok := want.Reported(mode); ok {
		return total, true, nil
	}
	res, err := dijkstra.ShortestPath(v.g, e.Source, e.Target,
		dijkstra.WithMode(mode),
		dijkstra.WithForbiddenNodes(e.Constraints.ForbiddenNodes...),
		dijkstra.WithForbiddenRoadTypes(e.Constraints.ForbiddenRoadTypes...),
	)
	if err != nil {
		return 0, false, err
	}

	return res.Cost, !math.IsInf(res.Cost, 1), nil
}

func (v *Verifier) knn(e query.KNN, got, want query.Answer) (Verdict, error) {
	var accept [][]int64
	if e.Metric == nearest.MetricShortestPath {
		if want.Nodes != nil {
			accept = append(accept, want.Nodes)
		}
	} else {
		for _, s := range [][]int64{want.Euclidian, want.Haversine, want.Nodes} {
			if s != nil {
				accept = append(accept, s)
			}
		}
	}
	if len(accept) == 0 {
		own, err := v.options.Searcher.Search(v.g, e.Query())
		if err != nil {
			if errors.Is(err, nearest.ErrUnknownMetric) || errors.Is(err, nearest.ErrBadK) {
				return failf(KindData, "%v", err), nil
			}

			return Verdict{}, err
		}
		accept = append(accept, own)
	}

	gotSorted := slices.Clone(got.Nodes)
	slices.Sort(gotSorted)
	for _, s := range accept {
		exp := slices.Clone(s)
		slices.Sort(exp)
		if slices.Equal(gotSorted, exp) {
			return pass("knn node set matches"), nil
		}
	}

	return failf(KindMismatch, "incorrect knn nodes: got %v, want one of %v", got.Nodes, accept), nil
}

func (v *Verifier) assignment(e query.Assignment, got query.Answer) (Verdict, error) {
	orders, res := assignment.ParseOrders(e.Orders)
	if !res.OK {
		return failf(KindData, "%s", res.Reason), nil
	}
	if v.net == nil {
		net, err := assignment.NewNetwork(v.desc)
		if err != nil {
			return Verdict{}, err
		}
		v.net = net
	}

	res = assignment.Validate(v.net, orders, got.Assignments)
	if !res.OK {
		k := KindStructural
		if res.DataError {
			k = KindData
		}

		return failf(k, "%s", res.Reason), nil
	}

	return scored(pass("assignments are valid"), res.PenaltyTime), nil
}
