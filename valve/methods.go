package valve

import (
	"fmt"
	"sort"
)

// AddValve inserts a valve with the given key and flow rate and no tunnels.
//
// Errors:
//   - ErrEmptyKey if key == "".
//   - ErrNegativeFlow if flow < 0.
//   - ErrDuplicateValve if key already exists.
//
// Complexity: O(1)
func (g *Graph) AddValve(key string, flow int64) error {
	if key == "" {
		return ErrEmptyKey
	}
	if flow < 0 {
		return fmt.Errorf("%w: %s flow=%d", ErrNegativeFlow, key, flow)
	}
	if _, ok := g.valves[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateValve, key)
	}
	g.valves[key] = &Valve{Key: key, Flow: flow, Tunnels: make(map[string]int64)}

	return nil
}

// AddTunnel records a one-way tunnel from → to with the given travel time.
// If the tunnel already exists, the smaller of the two costs is kept, so
// repeated insertion never makes a route longer.
//
// Errors:
//   - ErrValveNotFound if either endpoint is missing.
//   - ErrSelfTunnel if from == to.
//   - ErrBadCost if cost <= 0.
//
// Complexity: O(1)
func (g *Graph) AddTunnel(from, to string, cost int64) error {
	src, ok := g.valves[from]
	if !ok {
		return fmt.Errorf("%w: %s", ErrValveNotFound, from)
	}
	if _, ok = g.valves[to]; !ok {
		return fmt.Errorf("%w: %s", ErrValveNotFound, to)
	}
	if from == to {
		return fmt.Errorf("%w: %s", ErrSelfTunnel, from)
	}
	if cost <= 0 {
		return fmt.Errorf("%w: %s→%s cost=%d", ErrBadCost, from, to, cost)
	}
	if old, exists := src.Tunnels[to]; exists && old <= cost {
		return nil
	}
	src.Tunnels[to] = cost

	return nil
}

// RemoveValve deletes the valve and every tunnel that references it,
// in either direction.
//
// Errors:
//   - ErrValveNotFound if key is missing.
//
// Complexity: O(V)
func (g *Graph) RemoveValve(key string) error {
	if _, ok := g.valves[key]; !ok {
		return fmt.Errorf("%w: %s", ErrValveNotFound, key)
	}
	delete(g.valves, key)
	for _, v := range g.valves {
		delete(v.Tunnels, key)
	}

	return nil
}

// Start returns the start key the graph was created with.
func (g *Graph) Start() string { return g.start }

// HasValve reports whether a valve with this key exists.
func (g *Graph) HasValve(key string) bool {
	_, ok := g.valves[key]

	return ok
}

// Valve returns a deep copy of the valve stored under key.
func (g *Graph) Valve(key string) (Valve, bool) {
	v, ok := g.valves[key]
	if !ok {
		return Valve{}, false
	}

	return *v.clone(), true
}

// Flow returns the flow rate of key, or 0 when the valve is missing.
func (g *Graph) Flow(key string) int64 {
	if v, ok := g.valves[key]; ok {
		return v.Flow
	}

	return 0
}

// Tunnels returns a copy of the outgoing tunnels of key.
//
// Errors:
//   - ErrValveNotFound if key is missing.
func (g *Graph) Tunnels(key string) (map[string]int64, error) {
	v, ok := g.valves[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrValveNotFound, key)
	}
	out := make(map[string]int64, len(v.Tunnels))
	for k, w := range v.Tunnels {
		out[k] = w
	}

	return out, nil
}

// Cost returns the direct travel time from → to, if such a tunnel exists.
func (g *Graph) Cost(from, to string) (int64, bool) {
	v, ok := g.valves[from]
	if !ok {
		return 0, false
	}
	w, ok := v.Tunnels[to]

	return w, ok
}

// Keys returns all valve keys sorted ascending, giving every algorithm
// in the module a deterministic iteration order.
// Complexity: O(V log V)
func (g *Graph) Keys() []string {
	keys := make([]string, 0, len(g.valves))
	for k := range g.valves {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Len returns the number of valves.
func (g *Graph) Len() int { return len(g.valves) }

// TunnelCount returns the number of one-way tunnels.
func (g *Graph) TunnelCount() int {
	n := 0
	for _, v := range g.valves {
		n += len(v.Tunnels)
	}

	return n
}

// TotalFlow returns the sum of all flow rates.
func (g *Graph) TotalFlow() int64 {
	var sum int64
	for _, v := range g.valves {
		sum += v.Flow
	}

	return sum
}

// MaxRelease is the theoretical ceiling for a single agent: every valve
// open for the whole budget. No search result can exceed agents × MaxRelease.
func (g *Graph) MaxRelease(budget int64) int64 {
	if budget <= 0 {
		return 0
	}

	return g.TotalFlow() * budget
}

// Validate checks the structural invariant every stage relies on: the
// start key names an existing valve.
func (g *Graph) Validate() error {
	if g == nil {
		return ErrNilGraph
	}
	if !g.HasValve(g.start) {
		return fmt.Errorf("%w: %q", ErrStartNotFound, g.start)
	}

	return nil
}

// Clone returns a deep copy of the graph: valves, tunnels and start key.
// Complexity: O(V+E)
func (g *Graph) Clone() *Graph {
	c := &Graph{
		start:  g.start,
		valves: make(map[string]*Valve, len(g.valves)),
	}
	for k, v := range g.valves {
		c.valves[k] = v.clone()
	}

	return c
}

// WithStart returns a deep copy of the graph that starts at key instead.
func (g *Graph) WithStart(key string) *Graph {
	c := g.Clone()
	c.start = key

	return c
}
