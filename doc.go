// Package valves is a toolkit for scheduling valve openings in a network of
// tunnels so that the most pressure is released before time runs out,
// alone or with a partner.
//
// 🚀 What is in the box?
//
//	• valve/    — the network: valves with flow rates, one-way tunnels with travel times
//	• builder/  — deterministic fixtures: the sample network, hand-written and random networks
//	• parse/    — "Valve AA has flow rate=0; tunnels lead to valves DD, II, BB" text input
//	• reduce/   — drops zero-flow valves, rewiring their neighbours with combined costs
//	• distance/ — all-pairs travel times via repeated Dijkstra
//	• search/   — branch-and-bound for one or two agents, parallel and windowed modes
//	• cmd/valves — the command-line front end
//
// Pipeline:
//
//	text ──parse──▶ Graph ──reduce──▶ Graph' ──distance──▶ Table ──search──▶ Result
//
// Quick example (the canonical ten-valve sample):
//
//	g := builder.MustBuild("AA", nil, builder.Sample())
//	res, _ := search.Solve(ctx, g)                                        // 1651
//	res, _ = search.Solve(ctx, g, search.WithAgents(2), search.WithBudget(26)) // 1707
//
//	go install github.com/katalvlaran/valves/cmd/valves@latest
package valves
