package builder

import (
	"fmt"

	"github.com/katalvlaran/valves/valve"
)

// Spec describes one valve the way a puzzle line does: key, flow rate and
// the keys its tunnels lead to. Every listed tunnel costs one tick.
type Spec struct {
	Key  string
	Flow int64
	To   []string
}

// SampleLines is the canonical ten-valve sample network in its textual form.
var SampleLines = []string{
	"Valve AA has flow rate=0; tunnels lead to valves DD, II, BB",
	"Valve BB has flow rate=13; tunnels lead to valves CC, AA",
	"Valve CC has flow rate=2; tunnels lead to valves DD, BB",
	"Valve DD has flow rate=20; tunnels lead to valves CC, AA, EE",
	"Valve EE has flow rate=3; tunnels lead to valves FF, DD",
	"Valve FF has flow rate=0; tunnels lead to valves EE, GG",
	"Valve GG has flow rate=0; tunnels lead to valves FF, HH",
	"Valve HH has flow rate=22; tunnel leads to valve GG",
	"Valve II has flow rate=0; tunnels lead to valves AA, JJ",
	"Valve JJ has flow rate=21; tunnel leads to valve II",
}

// sampleSpecs mirrors SampleLines.
var sampleSpecs = []Spec{
	{Key: "AA", Flow: 0, To: []string{"DD", "II", "BB"}},
	{Key: "BB", Flow: 13, To: []string{"CC", "AA"}},
	{Key: "CC", Flow: 2, To: []string{"DD", "BB"}},
	{Key: "DD", Flow: 20, To: []string{"CC", "AA", "EE"}},
	{Key: "EE", Flow: 3, To: []string{"FF", "DD"}},
	{Key: "FF", Flow: 0, To: []string{"EE", "GG"}},
	{Key: "GG", Flow: 0, To: []string{"FF", "HH"}},
	{Key: "HH", Flow: 22, To: []string{"GG"}},
	{Key: "II", Flow: 0, To: []string{"AA", "JJ"}},
	{Key: "JJ", Flow: 21, To: []string{"II"}},
}

// Sample adds the canonical sample network (start AA).
// Best single-agent release over 30 ticks is 1651; two agents over 26 ticks reach 1707.
func Sample() Constructor {
	return Valves(sampleSpecs...)
}

// Valves adds every spec as a valve, then wires the listed tunnels with cost 1.
// Valves are inserted before tunnels so forward references are allowed.
func Valves(specs ...Spec) Constructor {
	return func(g *valve.Graph, _ builderConfig) error {
		for _, s := range specs {
			if err := g.AddValve(s.Key, s.Flow); err != nil {
				return err
			}
		}
		for _, s := range specs {
			for _, to := range s.To {
				if err := g.AddTunnel(s.Key, to, 1); err != nil {
					return fmt.Errorf("valve %s: %w", s.Key, err)
				}
			}
		}

		return nil
	}
}

// Tunnel adds a two-way tunnel of the given cost between existing valves.
func Tunnel(a, b string, cost int64) Constructor {
	return func(g *valve.Graph, _ builderConfig) error {
		if err := g.AddTunnel(a, b, cost); err != nil {
			return err
		}

		return g.AddTunnel(b, a, cost)
	}
}
