package verify

import (
	"fmt"
	"math"

	"golang.org/x/exp/slices"

	"github.com/katalvlaran/roadgrade/dijkstra"
	"github.com/katalvlaran/roadgrade/kshortest"
	"github.com/katalvlaran/roadgrade/query"
	"github.com/katalvlaran/roadgrade/timecost"
)

// checkPaths validates every reported path and returns their recomputed
// lengths. A failing Verdict is returned with ok=false.
func (v *Verifier) checkPaths(paths []query.PathLength, source, target int64, mode timecost.Mode) ([]float64, Verdict, bool, error) {
	rules := pathRules{source: source, target: target, loopless: true}
	lengths := make([]float64, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for i, p := range paths {
		if p.Length == nil {
			return nil, failf(KindData, "path %d: missing 'length'", i), false, nil
		}
		total, bad, ok, err := v.walk(p.Path, mode, rules)
		if err != nil {
			return nil, Verdict{}, false, err
		}
		if !ok {
			bad.Reason = fmt.Sprintf("path %d: %s", i, bad.Reason)
			return nil, bad, false, nil
		}
		if math.Abs(total-*p.Length) > v.options.SelfTolerance {
			return nil, failf(KindMismatch, "path %d: reported length %v, computed %v", i, *p.Length, total), false, nil
		}
		key := fmt.Sprint(p.Path)
		if seen[key] {
			return nil, failf(KindStructural, "path %d repeats an earlier path", i), false, nil
		}
		seen[key] = true
		lengths = append(lengths, total)
	}

	return lengths, Verdict{}, true, nil
}

func (v *Verifier) kShortest(e query.KShortestPaths, got, want query.Answer) (Verdict, error) {
	mode, err := timecost.ParseMode(e.Mode)
	if err != nil {
		return failf(KindData, "%v", err), nil
	}
	lengths, bad, ok, err := v.checkPaths(got.Paths, e.Source, e.Target, mode)
	if err != nil || !ok {
		return bad, err
	}

	// Expected lengths, recomputed when the expected answer has none.
	var expected []float64
	if want.Paths != nil {
		for _, p := range want.Paths {
			if p.Length != nil {
				expected = append(expected, *p.Length)
			}
		}
	} else {
		own, err := kshortest.Yen(v.g, e.Source, e.Target, e.K, mode)
		if err != nil {
			return Verdict{}, err
		}
		for _, p := range own {
			expected = append(expected, p.Cost)
		}
	}

	if len(lengths) != len(expected) {
		return failf(KindMismatch, "got %d paths, expected %d", len(lengths), len(expected)), nil
	}
	slices.Sort(lengths)
	slices.Sort(expected)
	for i := range lengths {
		if lengths[i]-expected[i] > v.options.ExpectedTolerance {
			return failf(KindMismatch, "path rank %d: length %v, expected %v", i, lengths[i], expected[i]), nil
		}
	}

	return pass("k shortest paths are correct"), nil
}

func (v *Verifier) diverse(e query.KShortestPathsHeuristic, got query.Answer) (Verdict, error) {
	if len(got.Paths) != e.K {
		return failf(KindMismatch, "got %d paths, want exactly %d", len(got.Paths), e.K), nil
	}
	lengths, bad, ok, err := v.checkPaths(got.Paths, e.Source, e.Target, timecost.ModeDistance)
	if err != nil || !ok {
		return bad, err
	}

	sd, err := dijkstra.ShortestPath(v.g, e.Source, e.Target)
	if err != nil {
		return Verdict{}, err
	}
	nodes := make([][]int64, len(got.Paths))
	for i, p := range got.Paths {
		nodes[i] = p.Path
	}
	penalty := kshortest.Penalty(nodes, lengths, sd.Cost, e.OverlapThreshold)

	return scored(pass("diverse paths are valid"), penalty), nil
}

func (v *Verifier) approx(e query.ApproxShortestPath, got, want query.Answer) (Verdict, error) {
	if len(e.Queries) == 0 {
		return scored(pass("no queries"), 1), nil
	}
	correct := 0
	for i, q := range e.Queries {
		if i >= len(got.Distances) {
			break
		}
		d := got.Distances[i]
		if d.Approx == nil || d.Source != q.Source || d.Target != q.Target {
			continue
		}

		var sd float64
		if i < len(want.Distances) && want.Distances[i].Shortest != nil {
			sd = *want.Distances[i].Shortest
		} else {
			res, err := dijkstra.ShortestPath(v.g, q.Source, q.Target)
			if err != nil {
				return Verdict{}, err
			}
			sd = res.Cost
		}
		if withinPct(sd, *d.Approx, e.AcceptableErrorPct) {
			correct++
		}
	}

	score := float64(correct) / float64(len(e.Queries))
	if correct < len(e.Queries) {
		return scored(failf(KindMismatch, "%d of %d distances within %v%%", correct, len(e.Queries), e.AcceptableErrorPct), score), nil
	}

	return scored(pass("all distances within budget"), score), nil
}

// withinPct reports whether ad is within pct percent of sd.
func withinPct(sd, ad, pct float64) bool {
	if math.IsInf(sd, 1) || sd == 0 {
		return ad == sd
	}

	return math.Abs(sd-ad)/sd*100 <= pct
}
