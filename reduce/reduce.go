// Package reduce shrinks a valve network to the valves that matter for the
// search: the start valve plus every valve with a positive flow rate.
//
// Each zero-flow, non-start valve v is eliminated in turn. For every tunnel
// src→v and every tunnel v→dst with src ≠ dst, a direct tunnel src→dst is
// proposed with cost(src→v) + cost(v→dst); an existing cheaper tunnel wins.
// Then v and all tunnels touching it are deleted. Elimination preserves the
// shortest travel time between every pair of surviving valves, whatever the
// order, so the result is independent of it; keys are still processed in
// sorted order to keep runs reproducible.
//
// Complexity:
//   - Time:  O(Z · d_in · d_out + Z · V) for Z eliminated valves.
//   - Space: O(V + E) for the working clone.
package reduce

import (
	"fmt"

	"github.com/katalvlaran/valves/valve"
)

// Stats summarizes one Reduce call.
type Stats struct {
	Before     int // valves in the input graph
	After      int // valves in the reduced graph
	Eliminated int // zero-flow valves removed
	Rewired    int // tunnels inserted or shortened while bypassing them
}

// Reduce returns a reduced copy of g; g itself is not modified.
//
// Errors:
//   - valve.ErrNilGraph if g is nil.
//   - valve.ErrStartNotFound if the start key names no valve.
func Reduce(g *valve.Graph) (*valve.Graph, Stats, error) {
	if err := g.Validate(); err != nil {
		return nil, Stats{}, fmt.Errorf("reduce: %w", err)
	}

	out := g.Clone()
	st := Stats{Before: g.Len()}

	for _, key := range out.Keys() {
		if key == out.Start() || out.Flow(key) > 0 {
			continue
		}
		n, err := bypass(out, key)
		if err != nil {
			return nil, Stats{}, fmt.Errorf("reduce: bypass %s: %w", key, err)
		}
		st.Rewired += n
		st.Eliminated++
	}
	st.After = out.Len()

	return out, st, nil
}

// Reducible reports whether g still holds a valve Reduce would eliminate.
func Reducible(g *valve.Graph) bool {
	for _, key := range g.Keys() {
		if key != g.Start() && g.Flow(key) == 0 {
			return true
		}
	}

	return false
}

// bypass rewires every src→key→dst route into src→dst and removes key.
// It returns the number of tunnels that were added or shortened.
func bypass(g *valve.Graph, key string) (int, error) {
	out, err := g.Tunnels(key)
	if err != nil {
		return 0, err
	}

	rewired := 0
	for _, src := range g.Keys() {
		in, ok := g.Cost(src, key)
		if !ok {
			continue
		}
		for dst, w := range out {
			if dst == src {
				continue
			}
			proposed := in + w
			if old, exists := g.Cost(src, dst); exists && old <= proposed {
				continue
			}
			if err = g.AddTunnel(src, dst, proposed); err != nil {
				return rewired, err
			}
			rewired++
		}
	}

	return rewired, g.RemoveValve(key)
}
