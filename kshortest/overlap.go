package kshortest

// hop is a directed consecutive node pair.
type hop struct{ u, v int64 }

func hops(nodes []int64) map[hop]struct{} {
	out := make(map[hop]struct{}, len(nodes))
	for i := 0; i+1 < len(nodes); i++ {
		out[hop{nodes[i], nodes[i+1]}] = struct{}{}
	}

	return out
}

func common(a, b map[hop]struct{}) int {
	n := 0
	for h := range a {
		if _, ok := b[h]; ok {
			n++
		}
	}

	return n
}

// Overlap returns the percentage of shared directed hops between two paths,
// relative to the smaller hop set. Paths with fewer than two nodes overlap 0%.
func Overlap(a, b []int64) float64 {
	ha, hb := hops(a), hops(b)
	smaller := len(ha)
	if len(hb) < smaller {
		smaller = len(hb)
	}
	if smaller == 0 {
		return 0
	}

	return 100 * float64(common(ha, hb)) / float64(smaller)
}

// Penalty scores a diverse path set against the shortest distance sd:
//
//	Σ_i overlapCount_i · ((length_i − sd)/sd + 0.1)
//
// where overlapCount_i counts paths j (i included) sharing more than threshold
// percent of path i's hops. Lower is better. A non-positive sd scores 0.
func Penalty(paths [][]int64, lengths []float64, sd, threshold float64) float64 {
	if sd <= 0 {
		return 0
	}
	sets := make([]map[hop]struct{}, len(paths))
	for i, p := range paths {
		sets[i] = hops(p)
	}

	total := 0.0
	for i := range sets {
		if len(sets[i]) == 0 {
			continue
		}
		count := 0
		for j := range sets {
			perc := 100 * float64(common(sets[i], sets[j])) / float64(len(sets[i]))
			if perc > threshold {
				count++
			}
		}
		total += float64(count) * ((lengths[i]-sd)/sd + 0.1)
	}

	return total
}
