package builder

import (
	"fmt"

	"github.com/katalvlaran/valves/valve"
)

// Random adds a random network of n valves (the start valve
// included). The start valve is created with zero flow if it is missing.
//
// Topology: a random spanning tree guarantees connectivity, then every other
// pair gets an extra two-way tunnel with probability p. Costs are drawn from
// [1, maxCost]; flows from [1, maxFlow], except that zeroPct percent of the
// non-start valves get zero flow so the reducer has work to do. With
// WithOneWayPercent, that share of tunnels runs one way only; the network is
// then connected as an undirected graph but not necessarily strongly.
//
// Errors:
//   - ErrTooFewValves if n < 1.
//   - ErrInvalidProbability if p ∉ [0,1].
//
// Complexity: O(n²).
func Random(n int, p float64) Constructor {
	return func(g *valve.Graph, cfg builderConfig) error {
		if n < 1 {
			return ErrTooFewValves
		}
		if p < 0 || p > 1 {
			return ErrInvalidProbability
		}

		keys := make([]string, n)
		keys[0] = g.Start()
		for i := 1; i < n; i++ {
			keys[i] = fmt.Sprintf("R%02d", i)
		}

		if !g.HasValve(keys[0]) {
			if err := g.AddValve(keys[0], 0); err != nil {
				return err
			}
		}
		for _, k := range keys[1:] {
			var flow int64
			if cfg.maxFlow > 0 && cfg.rng.Intn(100) >= cfg.zeroPct {
				flow = 1 + cfg.rng.Int63n(cfg.maxFlow)
			}
			if err := g.AddValve(k, flow); err != nil {
				return err
			}
		}

		cost := func() int64 { return 1 + cfg.rng.Int63n(cfg.maxCost) }
		link := func(a, b string) error {
			c := cost()
			if cfg.oneWay > 0 && cfg.rng.Intn(100) < cfg.oneWay {
				if cfg.rng.Intn(2) == 1 {
					a, b = b, a
				}

				return g.AddTunnel(a, b, c)
			}
			if err := g.AddTunnel(a, b, c); err != nil {
				return err
			}

			return g.AddTunnel(b, a, c)
		}

		// Spanning tree: attach each valve to a random earlier one.
		for i := 1; i < n; i++ {
			if err := link(keys[i], keys[cfg.rng.Intn(i)]); err != nil {
				return err
			}
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if _, ok := g.Cost(keys[i], keys[j]); ok {
					continue
				}
				if _, ok := g.Cost(keys[j], keys[i]); ok {
					continue
				}
				if cfg.rng.Float64() < p {
					if err := link(keys[i], keys[j]); err != nil {
						return err
					}
				}
			}
		}

		return nil
	}
}
