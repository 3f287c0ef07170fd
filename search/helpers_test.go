package search_test

import (
	"math"

	"github.com/katalvlaran/valves/builder"
	"github.com/katalvlaran/valves/search"
	"github.com/katalvlaran/valves/valve"
)

// sample returns the canonical ten-valve network.
func sample() *valve.Graph {
	return builder.MustBuild("AA", nil, builder.Sample())
}

// allPairs is a Floyd–Warshall table over the raw, unreduced graph.
func allPairs(g *valve.Graph) map[string]map[string]int64 {
	keys := g.Keys()
	d := make(map[string]map[string]int64, len(keys))
	for _, a := range keys {
		d[a] = make(map[string]int64, len(keys))
		for _, b := range keys {
			if a == b {
				d[a][b] = 0
			} else if w, ok := g.Cost(a, b); ok {
				d[a][b] = w
			} else {
				d[a][b] = math.MaxInt64
			}
		}
	}
	for _, k := range keys {
		for _, i := range keys {
			if d[i][k] == math.MaxInt64 {
				continue
			}
			for _, j := range keys {
				if d[k][j] == math.MaxInt64 {
					continue
				}
				if c := d[i][k] + d[k][j]; c < d[i][j] {
					d[i][j] = c
				}
			}
		}
	}

	return d
}

// bruteForce enumerates every opening order of every subset of positive-flow
// valves, recursively and without pruning, and returns the best single-agent
// and best two-agent totals. Two agents are independent apart from the
// shared opened set, so the pair optimum is the best sum over disjoint
// subsets of the single-agent optimum for each subset.
func bruteForce(g *valve.Graph, singleBudget, dualBudget int64) (single, dual int64) {
	d := allPairs(g)
	var useful []string
	for _, k := range g.Keys() {
		if k != g.Start() && g.Flow(k) > 0 {
			useful = append(useful, k)
		}
	}

	bestBySet := func(budget int64) []int64 {
		best := make([]int64, 1<<len(useful))
		for i := range best {
			best[i] = -1
		}
		var walk func(pos string, left int64, mask int, released int64)
		walk = func(pos string, left int64, mask int, released int64) {
			if released > best[mask] {
				best[mask] = released
			}
			for i, v := range useful {
				if mask&(1<<i) != 0 || d[pos][v] == math.MaxInt64 {
					continue
				}
				cost := d[pos][v] + 1
				if cost >= left {
					continue
				}
				walk(v, left-cost, mask|1<<i, released+g.Flow(v)*(left-cost))
			}
		}
		walk(g.Start(), budget, 0, 0)

		return best
	}

	for _, r := range bestBySet(singleBudget) {
		if r > single {
			single = r
		}
	}

	pair := bestBySet(dualBudget)
	for a := range pair {
		if pair[a] < 0 {
			continue
		}
		for b := range pair {
			if a&b != 0 || pair[b] < 0 {
				continue
			}
			if s := pair[a] + pair[b]; s > dual {
				dual = s
			}
		}
	}

	return single, dual
}

// disjoint reports whether no valve appears in more than one opening overall.
func disjoint(paths [][]search.Opening) bool {
	seen := map[string]bool{}
	for _, p := range paths {
		for _, o := range p {
			if seen[o.Valve] {
				return false
			}
			seen[o.Valve] = true
		}
	}

	return true
}
