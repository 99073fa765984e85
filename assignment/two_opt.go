package assignment

import "golang.org/x/exp/slices"

// improveEps is the minimum gain for a 2-opt move to be accepted.
const improveEps = 1e-9

// twoOpt runs deterministic first-improvement 2-opt on an open stop sequence.
//
// The depot at stops[0] is fixed. A move reverses stops[i..k] for
// 1 ≤ i < k ≤ len−1 and is accepted only if precedence stays valid and the
// total delivery time drops by more than improveEps. Scanning restarts after
// every accepted move; at most maxIters moves are made.
//
// Complexity: O(maxIters·n³) with memoised leg costs.
func twoOpt(l *legs, stops []stop, maxIters int) []stop {
	n := len(stops)
	if n < 3 {
		return stops
	}
	best := deliveryTime(l, stops)
	cand := make([]stop, n)

	for iter := 0; iter < maxIters; iter++ {
		improved := false
	scan:
		for i := 1; i < n-1; i++ {
			for k := i + 1; k < n; k++ {
				copy(cand, stops)
				slices.Reverse(cand[i : k+1])
				if !precedenceOK(cand) {
					continue
				}
				if c := deliveryTime(l, cand); c < best-improveEps {
					stops, cand = cand, stops
					best = c
					improved = true
					break scan
				}
			}
		}
		if !improved {
			break
		}
	}

	return stops
}
