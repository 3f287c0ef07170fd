package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/valves/internal/config"
	"github.com/katalvlaran/valves/internal/telemetry"
	"github.com/katalvlaran/valves/parse"
	"github.com/katalvlaran/valves/search"
	"github.com/katalvlaran/valves/valve"
)

// cli carries the flag values and the logger of one invocation.
type cli struct {
	configPath string
	envFiles   []string
	input      string
	start      string
	budget     int64
	agents     int
	lookahead  int
	workers    int
	bound      string
	paths      bool
	verbose    bool
	timeout    time.Duration

	cfg    *config.Config
	logger *zap.Logger

	// buildLogger turns the resolved verbosity into the invocation logger.
	buildLogger func(verbose bool) (*zap.Logger, error)
}

func newRootCmd() *cobra.Command {
	return newCommand(&cli{buildLogger: productionLogger})
}

// productionLogger is the JSON logger on stderr, at debug level when verbose.
func productionLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return zc.Build()
}

func newCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "valves",
		Short: "Find the best pressure release in a valve network",
		Long: `valves reads valve descriptions, one per line:

  Valve AA has flow rate=0; tunnels lead to valves DD, II, BB

and searches for the opening schedule that releases the most pressure
within the time budget, for one agent or two agents working together.

Settings come from the YAML file given by --config, then VALVES_*
environment variables (optionally loaded from .env), then flags.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE:              c.run,
	}

	f := cmd.Flags()
	f.StringVarP(&c.configPath, "config", "c", "", "YAML configuration file")
	f.StringSliceVar(&c.envFiles, "env-file", []string{".env"}, ".env files to load")
	f.StringVarP(&c.input, "input", "i", "", "valve descriptions file (default stdin)")
	f.StringVarP(&c.start, "start", "s", "", "start valve key")
	f.Int64VarP(&c.budget, "budget", "b", 0, "time budget in ticks (default 30, or 26 with two agents)")
	f.IntVarP(&c.agents, "agents", "a", 1, "number of agents (1 or 2)")
	f.IntVar(&c.lookahead, "lookahead", 0, "rolling window size; 0 searches exhaustively")
	f.IntVarP(&c.workers, "workers", "w", 1, "search goroutines")
	f.StringVar(&c.bound, "bound", search.SimpleBound.String(), "pruning bound: simple or none")
	f.BoolVarP(&c.paths, "paths", "p", false, "print each agent's openings")
	f.BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")
	f.DurationVar(&c.timeout, "timeout", 0, "abort the search after this long (0 = no limit)")

	return cmd
}

// setup resolves the configuration and builds the logger.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(c.envFiles...); err != nil {
		return err
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("input") {
		cfg.Input = c.input
	}
	if f.Changed("start") {
		cfg.Start = c.start
	}
	if f.Changed("budget") {
		cfg.Budget = c.budget
	}
	if f.Changed("agents") {
		cfg.Agents = c.agents
	}
	if f.Changed("lookahead") {
		cfg.Lookahead = c.lookahead
	}
	if f.Changed("workers") {
		cfg.Workers = c.workers
	}
	if f.Changed("bound") {
		cfg.Bound = c.bound
	}
	if f.Changed("verbose") {
		cfg.Verbose = c.verbose
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	c.logger, err = c.buildLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// run syncs the logger on every exit; cobra skips post-run hooks when RunE fails.
func (c *cli) run(cmd *cobra.Command, _ []string) error {
	defer func() { _ = c.logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	tp, err := telemetry.Setup(ctx)
	if err != nil {
		c.logger.Warn("tracing disabled", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			c.logger.Warn("trace shutdown failed", zap.Error(err))
		}
	}()

	g, err := c.readGraph(cmd.InOrStdin())
	if err != nil {
		return err
	}
	c.logger.Debug("network loaded",
		zap.Int("valves", g.Len()),
		zap.Int("tunnels", g.TunnelCount()),
		zap.Int64("total_flow", g.TotalFlow()))

	opts, err := c.cfg.Options()
	if err != nil {
		return err
	}
	opts = append(opts, search.WithLogger(c.logger))

	res, err := search.Solve(ctx, g, opts...)
	if err != nil {
		return err
	}

	return c.report(cmd.OutOrStdout(), res)
}

func (c *cli) readGraph(stdin io.Reader) (*valve.Graph, error) {
	if c.cfg.Input == "" || c.cfg.Input == "-" {
		return parse.Parse(stdin, c.cfg.Start)
	}

	return parse.ParseFile(c.cfg.Input, c.cfg.Start)
}

func (c *cli) report(w io.Writer, res search.Result) error {
	if _, err := fmt.Fprintln(w, res.Release); err != nil {
		return err
	}
	if !c.paths {
		return nil
	}
	for i, p := range res.Paths {
		steps := make([]string, len(p))
		for j, o := range p {
			steps[j] = fmt.Sprintf("%s@%d", o.Valve, o.Remaining)
		}
		if _, err := fmt.Fprintf(w, "agent %d: %s\n", i+1, strings.Join(steps, " ")); err != nil {
			return err
		}
	}

	return nil
}
