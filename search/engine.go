package search

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/valves/distance"
)

// engine holds everything one search needs. Graph data is read-only and
// shared by forks; stats, steps and ctx belong to a single goroutine.
type engine struct {
	// Configuration / policy
	agents   int
	useBound bool
	limit    int // maximum state depth; 0 = unlimited

	// Graph data
	tbl        *distance.Table
	flow       []int64 // per table row
	candidates []int   // rows with positive flow, excluding the start

	// Shared incumbent
	inc *incumbent

	// Per-goroutine bookkeeping
	ctx   context.Context
	steps int // sparse cancellation checks counter
	stats Stats
}

// incumbent is the Best-So-Far cell. release mirrors best.released so the
// bound check can read it without the lock; updates are serialized.
type incumbent struct {
	mu           sync.Mutex
	release      atomic.Int64
	best         *state
	improvements int64
	onImprove    func(int64)
}

func newIncumbent(s *state, hook func(int64)) *incumbent {
	in := &incumbent{best: s, onImprove: hook}
	in.release.Store(s.released)

	return in
}

func (in *incumbent) value() int64 { return in.release.Load() }

// offer replaces the incumbent when s releases strictly more.
func (in *incumbent) offer(s *state) bool {
	if s.released <= in.release.Load() {
		return false
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	if s.released <= in.best.released {
		return false
	}
	in.best = s
	in.release.Store(s.released)
	in.improvements++
	if in.onImprove != nil {
		in.onImprove(s.released)
	}

	return true
}

// fork returns an engine for another goroutine sharing graph data and incumbent.
func (e *engine) fork(ctx context.Context) *engine {
	return &engine{
		agents:     e.agents,
		useBound:   e.useBound,
		limit:      e.limit,
		tbl:        e.tbl,
		flow:       e.flow,
		candidates: e.candidates,
		inc:        e.inc,
		ctx:        ctx,
	}
}

// tick performs a sparse cancellation check (every 4096 states).
func (e *engine) tick() error {
	e.steps++
	if e.steps&4095 != 0 {
		return nil
	}
	if err := e.ctx.Err(); err != nil {
		return fmt.Errorf("search: %w", err)
	}

	return nil
}

// root builds the initial state: every agent at start with the full budget.
func (e *engine) root(start int, budget int64) *state {
	s := &state{visited: newVisitSet(e.tbl.Len()).with(start)}
	for a := 0; a < e.agents; a++ {
		s.agents[a] = agent{pos: start, left: budget}
	}

	return s
}

// moves appends every legal opening of agent a from s to out. A move is legal
// when the valve is closed, reachable, and travel plus one tick of opening
// leaves time on the clock.
func (e *engine) moves(s *state, a int, out []*state) []*state {
	ag := s.agents[a]
	for _, v := range e.candidates {
		if s.visited.has(v) {
			continue
		}
		d := e.tbl.At(ag.pos, v)
		if d == distance.Inf {
			continue
		}
		cost := d + 1
		if cost >= ag.left {
			continue
		}
		out = append(out, s.advance(a, v, ag.left-cost, e.flow[v]))
	}

	return out
}

// expand returns all successors of s, best immediate gain first. Each agent
// contributes its own family; an agent with no legal move is parked and
// contributes nothing. Interchangeable agents (same valve, same time, which
// only happens at the root) expand agent 0 alone.
func (e *engine) expand(s *state) []*state {
	var out []*state
	for a := 0; a < e.agents; a++ {
		if a > 0 && s.agents[a] == s.agents[0] {
			break
		}
		out = e.moves(s, a, out)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].released > out[j].released
	})

	return out
}

// bound is an optimistic estimate of the best total reachable from s: every
// closed valve opened by whichever agent could reach it soonest, ignoring
// that agents spend time on other valves first.
func (e *engine) bound(s *state) int64 {
	total := s.released
	for _, v := range e.candidates {
		if s.visited.has(v) {
			continue
		}
		var best int64
		for a := 0; a < e.agents; a++ {
			ag := s.agents[a]
			d := e.tbl.At(ag.pos, v)
			if d == distance.Inf {
				continue
			}
			if r := ag.left - d - 1; r > best {
				best = r
			}
		}
		total += e.flow[v] * best
	}

	return total
}

// run drains an explicit LIFO frontier seeded with seed (first element is
// explored first) and offers every terminal state to the incumbent.
func (e *engine) run(seed []*state) error {
	stack := make([]*state, 0, 64)
	for i := len(seed) - 1; i >= 0; i-- {
		stack = append(stack, seed[i])
	}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := e.tick(); err != nil {
			return err
		}
		e.stats.Nodes++

		if e.useBound && e.bound(s) <= e.inc.value() {
			e.stats.Pruned++
			continue
		}
		if e.limit > 0 && s.depth >= e.limit {
			e.inc.offer(s)
			continue
		}

		children := e.expand(s)
		if len(children) == 0 {
			e.stats.Terminals++
			e.inc.offer(s)
			continue
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	return nil
}

// paths rebuilds the per-agent opening sequences of s.
func (e *engine) paths(s *state) [][]Opening {
	out := make([][]Opening, e.agents)
	for a := range out {
		out[a] = []Opening{}
	}
	for st := s.trail; st != nil; st = st.prev {
		out[st.agent] = append(out[st.agent], Opening{
			Valve:     e.tbl.Key(st.valve),
			Remaining: st.remaining,
		})
	}
	for _, p := range out {
		for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
			p[i], p[j] = p[j], p[i]
		}
	}

	return out
}
