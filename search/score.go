package search

import (
	"fmt"

	"github.com/katalvlaran/valves/distance"
	"github.com/katalvlaran/valves/valve"
)

// Release is the total a valve contributes when opened with remaining ticks
// left: flow × remaining, or 0 when either is not positive.
func Release(flow, remaining int64) int64 {
	if flow <= 0 || remaining <= 0 {
		return 0
	}

	return flow * remaining
}

// Score sums the release of every opening in every path, looking flows up in g.
func Score(g *valve.Graph, paths ...[]Opening) int64 {
	var total int64
	for _, p := range paths {
		for _, o := range p {
			total += Release(g.Flow(o.Valve), o.Remaining)
		}
	}

	return total
}

// Replay walks one agent from the start of g through keys in order, opening
// each, and returns the openings with the release they produce.
//
// Errors:
//   - ErrNilTable if tbl is nil.
//   - valve.ErrStartNotFound if the start is not covered by tbl.
//   - ErrUnknownValve if a key is not covered by tbl.
//   - ErrIllegalMove if a valve is the start, already open, unreachable, or
//     cannot be opened before the budget runs out.
func Replay(g *valve.Graph, tbl *distance.Table, budget int64, keys []string) ([]Opening, int64, error) {
	if tbl == nil {
		return nil, 0, ErrNilTable
	}
	pos, ok := tbl.Index(g.Start())
	if !ok {
		return nil, 0, fmt.Errorf("search: %w: %q", valve.ErrStartNotFound, g.Start())
	}

	opened := map[string]bool{g.Start(): true}
	left := budget
	var total int64
	out := make([]Opening, 0, len(keys))
	for _, k := range keys {
		v, ok := tbl.Index(k)
		if !ok {
			return nil, 0, fmt.Errorf("%w: %q", ErrUnknownValve, k)
		}
		if opened[k] {
			return nil, 0, fmt.Errorf("%w: %s already open", ErrIllegalMove, k)
		}
		d := tbl.At(pos, v)
		if d == distance.Inf {
			return nil, 0, fmt.Errorf("%w: %s unreachable from %s", ErrIllegalMove, k, tbl.Key(pos))
		}
		if d+1 >= left {
			return nil, 0, fmt.Errorf("%w: %s needs %d ticks, %d left", ErrIllegalMove, k, d+1, left)
		}
		left -= d + 1
		opened[k] = true
		pos = v
		total += Release(g.Flow(k), left)
		out = append(out, Opening{Valve: k, Remaining: left})
	}

	return out, total, nil
}
