// Package config holds the valves CLI configuration: a YAML file, optional
// .env file and VALVES_* environment overrides, applied in that order over
// the defaults. Command-line flags are applied last by the CLI itself.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/valves/search"
)

// Environment variables that override the file.
const (
	EnvInput     = "VALVES_INPUT"
	EnvStart     = "VALVES_START"
	EnvBudget    = "VALVES_BUDGET"
	EnvAgents    = "VALVES_AGENTS"
	EnvLookahead = "VALVES_LOOKAHEAD"
	EnvWorkers   = "VALVES_WORKERS"
	EnvBound     = "VALVES_BOUND"
	EnvVerbose   = "VALVES_VERBOSE"
)

// ErrBadValue indicates a configuration value that cannot be used.
var ErrBadValue = errors.New("config: bad value")

// Config is the resolved CLI configuration.
type Config struct {
	// Input is the path of the valve descriptions; empty or "-" reads stdin.
	Input string `yaml:"input"`
	// Start is the start valve key.
	Start string `yaml:"start"`
	// Budget is the tick budget; 0 picks 30 for one agent and 26 for two.
	Budget int64 `yaml:"budget"`
	// Agents is 1 or 2.
	Agents int `yaml:"agents"`
	// Lookahead > 0 selects the rolling-window heuristic.
	Lookahead int `yaml:"lookahead"`
	// Workers is the number of search goroutines.
	Workers int `yaml:"workers"`
	// Bound is "simple" or "none".
	Bound string `yaml:"bound"`
	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the single-agent exhaustive configuration.
func DefaultConfig() *Config {
	return &Config{
		Start:   "AA",
		Agents:  1,
		Workers: 1,
		Bound:   search.SimpleBound.String(),
	}
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. A missing file yields the defaults plus overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

// LoadEnv loads .env files into the process environment without overriding
// variables already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	return nil
}

// applyEnvOverrides applies VALVES_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvInput); v != "" {
		c.Input = v
	}
	if v := os.Getenv(EnvStart); v != "" {
		c.Start = v
	}
	if v := os.Getenv(EnvBound); v != "" {
		c.Bound = strings.ToLower(v)
	}
	if v := os.Getenv(EnvBudget); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrBadValue, EnvBudget, v)
		}
		c.Budget = n
	}
	for name, dst := range map[string]*int{
		EnvAgents:    &c.Agents,
		EnvLookahead: &c.Lookahead,
		EnvWorkers:   &c.Workers,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrBadValue, name, v)
		}
		*dst = n
	}
	if v := os.Getenv(EnvVerbose); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrBadValue, EnvVerbose, v)
		}
		c.Verbose = b
	}

	return nil
}

// Validate checks the values the search options do not check themselves.
func (c *Config) Validate() error {
	if _, err := c.BoundPolicy(); err != nil {
		return err
	}
	if c.Start == "" {
		return fmt.Errorf("%w: empty start", ErrBadValue)
	}

	return nil
}

// BoundPolicy maps Bound to a search.Bound.
func (c *Config) BoundPolicy() (search.Bound, error) {
	switch strings.ToLower(c.Bound) {
	case "", search.SimpleBound.String():
		return search.SimpleBound, nil
	case search.NoBound.String():
		return search.NoBound, nil
	default:
		return 0, fmt.Errorf("%w: bound %q", ErrBadValue, c.Bound)
	}
}

// EffectiveBudget is Budget, or the conventional budget for the agent count when zero.
func (c *Config) EffectiveBudget() int64 {
	if c.Budget != 0 {
		return c.Budget
	}
	if c.Agents == 2 {
		return search.DualBudget
	}

	return search.DefaultBudget
}

// Options converts the configuration into search options.
func (c *Config) Options() ([]search.Option, error) {
	b, err := c.BoundPolicy()
	if err != nil {
		return nil, err
	}

	return []search.Option{
		search.WithStart(c.Start),
		search.WithBudget(c.EffectiveBudget()),
		search.WithAgents(c.Agents),
		search.WithLookahead(c.Lookahead),
		search.WithWorkers(c.Workers),
		search.WithBound(b),
	}, nil
}
