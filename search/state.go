package search

// visitSet is a bitset of opened valves indexed by distance-table row.
// It is never mutated after a state is pushed: with returns a copy.
type visitSet []uint64

func newVisitSet(n int) visitSet { return make(visitSet, (n+63)/64) }

func (v visitSet) has(i int) bool { return v[i>>6]&(1<<(uint(i)&63)) != 0 }

func (v visitSet) with(i int) visitSet {
	c := make(visitSet, len(v))
	copy(c, v)
	c[i>>6] |= 1 << (uint(i) & 63)

	return c
}

// agent is the per-agent part of a state.
type agent struct {
	pos  int   // table row of the current valve
	left int64 // ticks remaining
}

// step is one opening in a persistent, parent-linked trail. Children share
// their parent's trail, so branching costs one allocation per opening.
type step struct {
	agent     int
	valve     int
	remaining int64
	prev      *step
}

// state is one node of the search tree. States are immutable once built.
type state struct {
	agents   [MaxAgents]agent
	visited  visitSet
	released int64
	trail    *step
	depth    int // openings since the root
}

// advance returns the child state where agent a opens valve v with rem ticks left.
func (s *state) advance(a, v int, rem, flow int64) *state {
	c := &state{
		agents:   s.agents,
		visited:  s.visited.with(v),
		released: s.released + Release(flow, rem),
		trail:    &step{agent: a, valve: v, remaining: rem, prev: s.trail},
		depth:    s.depth + 1,
	}
	c.agents[a] = agent{pos: v, left: rem}

	return c
}

// since returns the openings made after ancestor, oldest first.
// ancestor must lie on s's trail.
func (s *state) since(ancestor *state) []*step {
	var out []*step
	for st := s.trail; st != ancestor.trail; st = st.prev {
		out = append(out, st)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out
}
