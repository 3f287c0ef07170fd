// Package parse reads valve networks from their line-oriented text form:
//
//	Valve AA has flow rate=0; tunnels lead to valves DD, II, BB
//	Valve HH has flow rate=22; tunnel leads to valve GG
//
// Every line declares one valve, its flow rate and its outgoing tunnels.
// Tunnels are one-way and cost one tick each; the two directions of a
// corridor appear on the two valves' lines. Blank lines are ignored.
//
// Errors carry the 1-based line number and wrap a sentinel
// (ErrMalformedLine, ErrUnknownTarget or a valve error) for errors.Is.
package parse
