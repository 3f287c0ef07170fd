// Package valve defines the Valve and Graph types that every other package
// in this module operates on.
//
// A Graph is a flat arena: valve key → *Valve, plus one distinguished start
// key. Tunnels are stored on the source valve as a map of neighbor key to
// travel time in whole ticks, so there are no back-pointers and no cyclic
// ownership between valves.
//
// Errors:
//
//	ErrNilGraph        - graph pointer is nil.
//	ErrEmptyKey        - valve key is the empty string.
//	ErrNegativeFlow    - flow rate below zero.
//	ErrDuplicateValve  - valve key already present.
//	ErrValveNotFound   - requested valve does not exist.
//	ErrBadCost         - tunnel travel time is zero or negative.
//	ErrSelfTunnel      - tunnel from a valve to itself.
//	ErrStartNotFound   - the declared start key has no valve (structural error).
package valve

import "errors"

// Sentinel errors for valve graph operations.
var (
	// ErrNilGraph indicates that a nil *Graph was passed where a graph is required.
	ErrNilGraph = errors.New("valve: graph is nil")

	// ErrEmptyKey indicates that a valve key is the empty string.
	ErrEmptyKey = errors.New("valve: key is empty")

	// ErrNegativeFlow indicates a flow rate below zero.
	ErrNegativeFlow = errors.New("valve: negative flow rate")

	// ErrDuplicateValve indicates that a valve with the same key already exists.
	ErrDuplicateValve = errors.New("valve: duplicate valve")

	// ErrValveNotFound indicates an operation referenced a non-existent valve.
	ErrValveNotFound = errors.New("valve: valve not found")

	// ErrBadCost indicates a tunnel travel time that is not a positive number of ticks.
	ErrBadCost = errors.New("valve: tunnel cost must be positive")

	// ErrSelfTunnel indicates a tunnel whose both ends are the same valve.
	ErrSelfTunnel = errors.New("valve: tunnel to itself")

	// ErrStartNotFound indicates that no valve matches the declared start key.
	// It is fatal for every downstream stage.
	ErrStartNotFound = errors.New("valve: start valve not found")
)

// Valve is a node of the network.
//
// Key uniquely identifies the valve within its Graph. Flow is the per-tick
// release contributed once the valve is open. Tunnels maps a neighbor key to
// the direct travel time from this valve to that neighbor.
type Valve struct {
	// Key is the unique identifier of this valve.
	Key string

	// Flow is the non-negative release rate per tick once opened.
	Flow int64

	// Tunnels maps neighbor key → travel time in ticks (always > 0).
	Tunnels map[string]int64
}

// clone returns a deep copy of v, including its tunnel map.
func (v *Valve) clone() *Valve {
	c := &Valve{
		Key:     v.Key,
		Flow:    v.Flow,
		Tunnels: make(map[string]int64, len(v.Tunnels)),
	}
	for k, w := range v.Tunnels {
		c.Tunnels[k] = w
	}

	return c
}

// Graph is the valve network: an arena of valves keyed by Key and a start key.
//
// A Graph is mutated only while it is being built or reduced. Once handed to
// the distance estimator and the search engine it is treated as read-only,
// which makes concurrent reads safe without locking.
type Graph struct {
	start  string
	valves map[string]*Valve
}

// NewGraph creates an empty Graph whose search will begin at start.
// The start valve itself must be added with AddValve before the graph is used;
// Validate reports ErrStartNotFound otherwise.
// Complexity: O(1)
func NewGraph(start string) *Graph {
	return &Graph{
		start:  start,
		valves: make(map[string]*Valve),
	}
}
