package search

import "golang.org/x/sync/errgroup"

// explore searches the subtree of root, sequentially or, when workers > 1,
// by dealing root's children round-robin to that many goroutines. Workers
// keep private frontiers and counters; they share only the incumbent, whose
// compare-and-update is serialized.
func (e *engine) explore(root *state, workers int) error {
	if workers <= 1 {
		return e.run([]*state{root})
	}

	e.stats.Nodes++
	if e.useBound && e.bound(root) <= e.inc.value() {
		e.stats.Pruned++
		return nil
	}
	if e.limit > 0 && root.depth >= e.limit {
		e.inc.offer(root)
		return nil
	}
	children := e.expand(root)
	if len(children) == 0 {
		e.stats.Terminals++
		e.inc.offer(root)
		return nil
	}

	if workers > len(children) {
		workers = len(children)
	}
	buckets := make([][]*state, workers)
	for i, c := range children {
		buckets[i%workers] = append(buckets[i%workers], c)
	}

	g, ctx := errgroup.WithContext(e.ctx)
	forks := make([]*engine, workers)
	for w := range buckets {
		f := e.fork(ctx)
		forks[w] = f
		seed := buckets[w]
		g.Go(func() error { return f.run(seed) })
	}
	err := g.Wait()
	for _, f := range forks {
		e.stats.add(f.stats)
	}

	return err
}
