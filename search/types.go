package search

import (
	"errors"

	"go.uber.org/zap"
)

// Budgets used by the canonical scenarios.
const (
	// DefaultBudget is the single-agent time budget in ticks.
	DefaultBudget int64 = 30

	// DualBudget is the per-agent budget of the cooperative scenario.
	DualBudget int64 = 26

	// MaxAgents is the largest supported agent count.
	MaxAgents = 2
)

// Sentinel errors returned by the search engine.
var (
	// ErrBadBudget indicates a negative time budget.
	ErrBadBudget = errors.New("search: budget must be non-negative")

	// ErrBadAgents indicates an agent count other than 1 or 2.
	ErrBadAgents = errors.New("search: agents must be 1 or 2")

	// ErrBadLookahead indicates a negative look-ahead window.
	ErrBadLookahead = errors.New("search: lookahead must be non-negative")

	// ErrBadWorkers indicates a negative worker count.
	ErrBadWorkers = errors.New("search: workers must be non-negative")

	// ErrNilTable indicates that Search was called without a distance table.
	ErrNilTable = errors.New("search: distance table is nil")

	// ErrUnknownValve indicates a replayed key that the distance table does not cover.
	ErrUnknownValve = errors.New("search: unknown valve")

	// ErrIllegalMove indicates a replayed opening that cannot happen in time,
	// targets an unreachable valve, or repeats an opened one.
	ErrIllegalMove = errors.New("search: illegal move")
)

// Bound selects the pruning policy of the branch-and-bound search.
type Bound int

const (
	// SimpleBound prunes a state when released plus an optimistic estimate of
	// every still-closed valve cannot beat the best total found so far.
	// The estimate never undershoots, so no better branch is discarded.
	SimpleBound Bound = iota

	// NoBound disables pruning: plain exhaustive depth-first search.
	NoBound
)

// String implements fmt.Stringer.
func (b Bound) String() string {
	switch b {
	case SimpleBound:
		return "simple"
	case NoBound:
		return "none"
	default:
		return "unknown"
	}
}

// Options configures Solve and Search.
//
// Budget     – time budget per agent, in ticks (≥ 0).
// Agents     – 1 (single agent) or 2 (cooperative pair sharing the opened set).
// Start      – start valve key; empty means the graph's own start key.
// Lookahead  – 0 runs the exhaustive search. A positive value enables the
// rolling-window heuristic: look this many openings ahead, commit the first
// move of each agent on the best windowed path, re-anchor. Faster on dense
// networks, not guaranteed optimal.
// Bound      – pruning policy (SimpleBound by default).
// Workers    – number of goroutines sharing the root branches; ≤ 1 is sequential.
// Logger     – structured logger; zap.NewNop() when nil.
// OnImprove  – called with every new best total, in increasing order.
type Options struct {
	Budget    int64
	Agents    int
	Start     string
	Lookahead int
	Bound     Bound
	Workers   int
	Logger    *zap.Logger
	OnImprove func(release int64)
}

// Option represents a functional option for configuring the search.
type Option func(*Options)

// DefaultOptions returns the single-agent, 30-tick, exhaustive configuration.
func DefaultOptions() Options {
	return Options{
		Budget:  DefaultBudget,
		Agents:  1,
		Bound:   SimpleBound,
		Workers: 1,
		Logger:  zap.NewNop(),
	}
}

// WithBudget sets the per-agent time budget in ticks.
func WithBudget(ticks int64) Option {
	return func(o *Options) { o.Budget = ticks }
}

// WithAgents sets the number of cooperating agents (1 or 2).
func WithAgents(n int) Option {
	return func(o *Options) { o.Agents = n }
}

// WithStart overrides the start valve key.
func WithStart(key string) Option {
	return func(o *Options) { o.Start = key }
}

// WithLookahead enables the rolling-window heuristic with the given window;
// 0 restores the exhaustive search.
func WithLookahead(window int) Option {
	return func(o *Options) { o.Lookahead = window }
}

// WithBound selects the pruning policy.
func WithBound(b Bound) Option {
	return func(o *Options) { o.Bound = b }
}

// WithWorkers spreads the root branches over n goroutines.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithLogger attaches a structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithOnImprove registers a hook observing every improvement of the best total.
func WithOnImprove(fn func(release int64)) Option {
	return func(o *Options) { o.OnImprove = fn }
}

// resolve applies opts over DefaultOptions and validates the result.
func resolve(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Workers == 0 {
		o.Workers = 1
	}

	switch {
	case o.Budget < 0:
		return o, ErrBadBudget
	case o.Agents < 1 || o.Agents > MaxAgents:
		return o, ErrBadAgents
	case o.Lookahead < 0:
		return o, ErrBadLookahead
	case o.Workers < 0:
		return o, ErrBadWorkers
	}

	return o, nil
}

// Opening is one valve-opening event of an agent: the valve and the time the
// agent has left once the valve is open. Its release is Flow × Remaining.
type Opening struct {
	Valve     string
	Remaining int64
}

// Stats reports how much work a search did.
type Stats struct {
	Nodes        int64 // states popped from the frontier
	Pruned       int64 // states discarded by the bound
	Terminals    int64 // states where no agent could move
	Improvements int64 // times the best total increased
	Rounds       int   // re-anchoring rounds of the look-ahead heuristic
}

func (s *Stats) add(o Stats) {
	s.Nodes += o.Nodes
	s.Pruned += o.Pruned
	s.Terminals += o.Terminals
}

// Result is the outcome of a search.
//
// Release is the best total found. Paths holds one opening sequence per
// agent, in the order the agent opened its valves.
type Result struct {
	Release int64
	Paths   [][]Opening
	Stats   Stats
}
