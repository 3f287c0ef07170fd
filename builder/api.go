// Package builder assembles valve networks from small deterministic
// constructors: the canonical sample network, hand-written valve lists and
// seeded random networks used by tests, benchmarks and examples.
//
// Design contract:
//   - One orchestrator: Build(start, opts, cons...). Creates the graph,
//     resolves the configuration, runs the constructors in order.
//   - Constructors validate early and return sentinel errors; they never panic.
//   - Option constructors panic on meaningless inputs (programmer error).
//   - Determinism: same inputs, options, seed and constructor order ⇒ identical graphs.
package builder

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/valves/valve"
)

// Sentinel errors for builder constructors.
var (
	// ErrTooFewValves indicates a random network request with fewer than one valve.
	ErrTooFewValves = errors.New("builder: need at least one valve")

	// ErrInvalidProbability indicates an extra-tunnel probability outside [0,1].
	ErrInvalidProbability = errors.New("builder: probability must be in [0,1]")

	// ErrConstructFailed indicates a nil constructor was supplied.
	ErrConstructFailed = errors.New("builder: construction failed")
)

// Constructor applies a deterministic mutation to g using the resolved config.
type Constructor func(g *valve.Graph, cfg builderConfig) error

// Build creates a valve.Graph starting at start, resolves the options and
// applies all constructors in order. The first constructor error is wrapped
// with "Build: %w" and returned; the partial graph is discarded.
func Build(start string, opts []Option, cons ...Constructor) (*valve.Graph, error) {
	g := valve.NewGraph(start)
	cfg := newBuilderConfig(opts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}

	return g, nil
}

// MustBuild is Build for fixtures known to be valid; it panics on error.
func MustBuild(start string, opts []Option, cons ...Constructor) *valve.Graph {
	g, err := Build(start, opts, cons...)
	if err != nil {
		panic(err)
	}

	return g
}
