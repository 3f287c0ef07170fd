package distance

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/valves/valve"
)

// FromSource computes the shortest travel time from src to every valve in g.
//
// Returns a map from valve key to distance; unreachable valves map to Inf and
// dist[src] == 0.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. g must contain src (ErrSourceNotFound).
//  3. No tunnel may have a negative cost (ErrNegativeCost).
func FromSource(g *valve.Graph, src string) (map[string]int64, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if !g.HasValve(src) {
		return nil, fmt.Errorf("%w: %q", ErrSourceNotFound, src)
	}

	r := &runner{
		g:       g,
		source:  src,
		dist:    make(map[string]int64, g.Len()),
		visited: make(map[string]bool, g.Len()),
		pq:      make(nodePQ, 0, g.Len()),
	}
	r.init()
	if err := r.process(); err != nil {
		return nil, err
	}

	return r.dist, nil
}

// Estimate runs FromSource once per valve and packs the results into a Table.
// Every valve, the start valve included, gets a complete row.
func Estimate(g *valve.Graph) (*Table, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	keys := g.Keys()
	n := len(keys)
	t := &Table{
		keys:  keys,
		index: make(map[string]int, n),
		dist:  make([]int64, n*n),
	}
	for i, k := range keys {
		t.index[k] = i
	}

	for i, src := range keys {
		row, err := FromSource(g, src)
		if err != nil {
			return nil, fmt.Errorf("distance: estimate from %s: %w", src, err)
		}
		for j, dst := range keys {
			t.dist[i*n+j] = row[dst]
		}
	}

	return t, nil
}

// runner holds the mutable state for a single-source execution.
type runner struct {
	g       *valve.Graph
	source  string
	dist    map[string]int64 // best known distance from source
	visited map[string]bool  // finalized valves
	pq      nodePQ
}

// init sets every distance to Inf except the source, and seeds the heap.
func (r *runner) init() {
	for _, k := range r.g.Keys() {
		r.dist[k] = Inf
		r.visited[k] = false
	}
	r.dist[r.source] = 0

	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: r.source, dist: 0})
}

// process repeatedly finalizes the closest unfinalized valve and relaxes its
// tunnels until the heap runs dry, i.e. no unfinalized valve is reachable.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		if r.visited[item.id] {
			continue // stale entry
		}
		r.visited[item.id] = true

		if err := r.relax(item.id); err != nil {
			return err
		}
	}

	return nil
}

// relax improves the distance of every tunnel target of u through u.
func (r *runner) relax(u string) error {
	tunnels, err := r.g.Tunnels(u)
	if err != nil {
		return fmt.Errorf("distance: tunnels of %q: %w", u, err)
	}

	for v, w := range tunnels {
		if w < 0 {
			return fmt.Errorf("%w: %s→%s cost=%d", ErrNegativeCost, u, v, w)
		}
		if r.visited[v] {
			continue
		}
		nd := r.dist[u] + w
		if nd >= r.dist[v] {
			continue
		}
		r.dist[v] = nd
		heap.Push(&r.pq, &nodeItem{id: v, dist: nd})
	}

	return nil
}

// nodeItem is a heap entry: a valve and a tentative distance.
type nodeItem struct {
	id   string
	dist int64
}

// nodePQ is a min-heap of *nodeItem ordered by dist, ties broken by key so
// the finalization order is deterministic.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist == pq[j].dist {
		return pq[i].id < pq[j].id
	}

	return pq[i].dist < pq[j].dist
}
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
