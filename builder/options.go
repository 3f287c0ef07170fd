package builder

import "math/rand"

// defaultSeed is used when no seed is supplied, keeping Random reproducible.
const defaultSeed int64 = 1

// Option customizes the builder configuration before construction begins.
type Option func(*builderConfig)

// builderConfig is the resolved, immutable-by-convention configuration.
type builderConfig struct {
	rng     *rand.Rand
	maxFlow int64 // flows drawn from [0, maxFlow]
	maxCost int64 // tunnel costs drawn from [1, maxCost]
	zeroPct int   // percentage of non-start valves forced to zero flow
	oneWay  int   // percentage of random tunnels laid in one direction only
}

// newBuilderConfig applies opts over the defaults.
func newBuilderConfig(opts ...Option) builderConfig {
	cfg := builderConfig{
		maxFlow: 25,
		maxCost: 1,
		zeroPct: 40,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(defaultSeed))
	}

	return cfg
}

// WithSeed makes stochastic constructors reproducible with the given seed.
func WithSeed(seed int64) Option {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithMaxFlow bounds random flow rates to [0, max]. Panics if max < 0.
func WithMaxFlow(max int64) Option {
	if max < 0 {
		panic("builder: WithMaxFlow(<0)")
	}

	return func(c *builderConfig) { c.maxFlow = max }
}

// WithMaxCost bounds random tunnel costs to [1, max]. Panics if max < 1.
func WithMaxCost(max int64) Option {
	if max < 1 {
		panic("builder: WithMaxCost(<1)")
	}

	return func(c *builderConfig) { c.maxCost = max }
}

// WithZeroPercent sets how many non-start valves (in percent) get zero flow.
// Panics outside [0,100].
func WithZeroPercent(pct int) Option {
	if pct < 0 || pct > 100 {
		panic("builder: WithZeroPercent out of range")
	}

	return func(c *builderConfig) { c.zeroPct = pct }
}

// WithOneWayPercent sets how many random tunnels (in percent) run in one
// direction only, in a random direction. Panics outside [0,100].
func WithOneWayPercent(pct int) Option {
	if pct < 0 || pct > 100 {
		panic("builder: WithOneWayPercent out of range")
	}

	return func(c *builderConfig) { c.oneWay = pct }
}
