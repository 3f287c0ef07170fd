package search

// lookahead runs the rolling-window heuristic from root.
//
// Each round searches at most window openings past the current anchor and
// keeps the best windowed state. The first opening of each agent along that
// state's trail is committed: applied to the anchor, which becomes the next
// anchor with its released total carried forward and its clocks shortened.
// Rounds stop when a window finds nothing better than its anchor.
//
// Every round commits at least one opening, so there are at most as many
// rounds as openable valves. The result is a lower bound on the optimum; with
// a window at least as large as the number of openable valves it is exact.
func (e *engine) lookahead(root *state, window, workers int, report func(int64)) (*state, error) {
	anchor := root
	for {
		e.stats.Rounds++
		e.inc = newIncumbent(anchor, nil)
		e.limit = anchor.depth + window

		if err := e.explore(anchor, workers); err != nil {
			return nil, err
		}
		e.stats.Improvements += e.inc.improvements

		best := e.inc.best
		if best == anchor {
			return anchor, nil
		}
		anchor = e.commit(anchor, best)
		if report != nil {
			report(anchor.released)
		}
	}
}

// commit applies to anchor the first opening of each agent on best's trail.
func (e *engine) commit(anchor, best *state) *state {
	var seen [MaxAgents]bool
	next := anchor
	for _, st := range best.since(anchor) {
		if seen[st.agent] {
			continue
		}
		seen[st.agent] = true
		next = next.advance(st.agent, st.valve, st.remaining, e.flow[st.valve])
	}

	return next
}
