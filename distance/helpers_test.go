package distance_test

import (
	"github.com/katalvlaran/valves/distance"
	"github.com/katalvlaran/valves/valve"
)

// floydWarshall is an independent O(n³) all-pairs reference computed on the
// raw graph. Loop order is fixed (k → i → j); Inf means "no route".
func floydWarshall(g *valve.Graph) map[string]map[string]int64 {
	keys := g.Keys()
	n := len(keys)
	d := make([][]int64, n)
	for i, a := range keys {
		d[i] = make([]int64, n)
		for j, b := range keys {
			switch {
			case i == j:
				d[i][j] = 0
			default:
				if w, ok := g.Cost(a, b); ok {
					d[i][j] = w
				} else {
					d[i][j] = distance.Inf
				}
			}
		}
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if d[i][k] == distance.Inf {
				continue
			}
			for j := 0; j < n; j++ {
				if d[k][j] == distance.Inf {
					continue
				}
				if c := d[i][k] + d[k][j]; c < d[i][j] {
					d[i][j] = c
				}
			}
		}
	}

	out := make(map[string]map[string]int64, n)
	for i, a := range keys {
		out[a] = make(map[string]int64, n)
		for j, b := range keys {
			out[a][b] = d[i][j]
		}
	}

	return out
}
