// Package search finds the largest total release one agent, or two
// cooperating agents, can achieve by walking a valve network and opening
// valves within a fixed time budget.
//
// Model:
//
//   - Every agent starts at the start valve with the same budget.
//   - Moving to valve v costs its shortest travel time; opening it costs one
//     more tick. A move is legal only if it leaves time on the clock.
//   - An opened valve releases Flow × (ticks left after opening).
//   - Two agents share one set of opened valves and one running total, but
//     each keeps its own position and clock.
//
// Algorithm:
//
//   - Depth-first branch-and-bound over immutable states driven by an
//     explicit LIFO frontier (no recursion; depth is bounded by the budget).
//   - For two agents, both agents' moves are pushed at every state as
//     separate branches; the shared opened set keeps them from colliding.
//     An agent with no legal move is parked; a state where both are parked
//     is terminal and is compared against the best total so far.
//   - SimpleBound prunes a state only when an optimistic estimate of its
//     best completion cannot beat the incumbent, so pruning never changes
//     the answer. NoBound turns pruning off.
//   - Successors are tried by descending immediate gain to tighten the
//     incumbent early.
//
// Options:
//
//   - WithWorkers(n) deals the root's branches to n goroutines that share
//     only the incumbent. The best total is identical to the sequential run;
//     among equally good paths, which one is returned may differ.
//   - WithLookahead(w) trades exactness for speed: a rolling window of w
//     openings, committing each agent's first move of the best windowed path
//     before re-anchoring. Validate it against the exhaustive search before
//     trusting it on a new network.
//
// Complexity:
//
//   - Worst case exponential in the number of valves with positive flow.
//   - Per state: O(V) to expand and O(V · agents) to bound.
//   - Memory: O(depth · V) frontier; states share their opening trails.
//
// Example usage:
//
//	res, err := search.Solve(ctx, g, search.WithAgents(2), search.WithBudget(26))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Release)
package search
