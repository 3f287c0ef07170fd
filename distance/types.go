// Package distance computes shortest travel times between valves.
//
// FromSource runs Dijkstra's algorithm from one valve; Estimate runs it from
// every valve and packs the results into a dense Table. Travel costs are
// positive integers, so a min-heap with lazy decrease-key yields exact
// distances. Pairs with no route are reported as Inf and are treated by the
// search engine as permanently unopenable.
//
// Complexity:
//
//   - FromSource: O((V + E) log V) time, O(V + E) space.
//   - Estimate:   O(V · (V + E) log V) time, O(V²) space for the table.
package distance

import (
	"errors"
	"math"
)

// Inf marks a pair of valves with no route between them.
const Inf int64 = math.MaxInt64

// Sentinel errors returned by the estimator.
var (
	// ErrNilGraph indicates that a nil graph was passed.
	ErrNilGraph = errors.New("distance: graph is nil")

	// ErrSourceNotFound indicates that the source valve does not exist.
	ErrSourceNotFound = errors.New("distance: source valve not found")

	// ErrNegativeCost indicates a tunnel with a negative travel time.
	ErrNegativeCost = errors.New("distance: negative tunnel cost")
)

// Table is a dense all-pairs distance table over a fixed set of valve keys.
// Row i, column j holds the shortest travel time from Keys()[i] to Keys()[j],
// or Inf when j is unreachable from i. A Table is immutable once built and
// safe for concurrent readers.
type Table struct {
	keys  []string
	index map[string]int
	dist  []int64 // row-major n×n
}

// Len returns the number of valves covered by the table.
func (t *Table) Len() int { return len(t.keys) }

// Keys returns the valve keys in table order (sorted ascending).
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)

	return out
}

// Key returns the valve key of row i.
func (t *Table) Key(i int) string { return t.keys[i] }

// Index returns the row of key, if the key is covered.
func (t *Table) Index(key string) (int, bool) {
	i, ok := t.index[key]

	return i, ok
}

// At returns the distance between rows i and j. Inf means unreachable.
func (t *Table) At(i, j int) int64 { return t.dist[i*len(t.keys)+j] }

// Dist returns the distance between two keys and whether the pair is both
// covered by the table and reachable.
func (t *Table) Dist(from, to string) (int64, bool) {
	i, ok := t.index[from]
	if !ok {
		return Inf, false
	}
	j, ok := t.index[to]
	if !ok {
		return Inf, false
	}
	d := t.At(i, j)

	return d, d != Inf
}

// Row returns the distances from key to every covered valve, keyed by valve.
func (t *Table) Row(key string) (map[string]int64, bool) {
	i, ok := t.index[key]
	if !ok {
		return nil, false
	}
	out := make(map[string]int64, len(t.keys))
	for j, k := range t.keys {
		out[k] = t.At(i, j)
	}

	return out, true
}
