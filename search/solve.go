package search

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/valves/distance"
	"github.com/katalvlaran/valves/reduce"
	"github.com/katalvlaran/valves/valve"
)

// instrumentation is the tracer name used for all spans of this package.
const instrumentation = "github.com/katalvlaran/valves/search"

// tracer resolves the tracer lazily so a provider installed after import is honored.
func tracer() trace.Tracer { return otel.Tracer(instrumentation) }

// Solve runs the whole pipeline on g: reduce, estimate all-pairs distances,
// then search for the best total release under opts.
//
// g is not modified. A non-empty WithStart overrides g's start key.
//
// Errors:
//   - valve.ErrNilGraph / valve.ErrStartNotFound for structural problems.
//   - ErrBadBudget, ErrBadAgents, ErrBadLookahead, ErrBadWorkers for bad options.
//   - ctx.Err() (wrapped) if ctx is cancelled mid-search.
func Solve(ctx context.Context, g *valve.Graph, opts ...Option) (Result, error) {
	o, err := resolve(opts)
	if err != nil {
		return Result{}, err
	}
	if g == nil {
		return Result{}, valve.ErrNilGraph
	}
	if o.Start != "" && o.Start != g.Start() {
		g = g.WithStart(o.Start)
	}

	ctx, span := tracer().Start(ctx, "valves.Solve", trace.WithAttributes(
		attribute.Int64("valves.budget", o.Budget),
		attribute.Int("valves.agents", o.Agents),
		attribute.Int("valves.lookahead", o.Lookahead),
		attribute.Int("valves.count", g.Len()),
	))
	defer span.End()

	_, rspan := tracer().Start(ctx, "valves.Reduce")
	reduced, rst, err := reduce.Reduce(g)
	rspan.End()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reduce failed")
		return Result{}, err
	}
	o.Logger.Debug("graph reduced",
		zap.Int("before", rst.Before),
		zap.Int("after", rst.After),
		zap.Int("eliminated", rst.Eliminated),
		zap.Int("rewired", rst.Rewired))

	_, espan := tracer().Start(ctx, "valves.Estimate")
	tbl, err := distance.Estimate(reduced)
	espan.End()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "estimate failed")
		return Result{}, err
	}

	res, err := search(ctx, reduced, tbl, o)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return Result{}, err
	}
	span.SetAttributes(attribute.Int64("valves.release", res.Release))

	return res, nil
}

// Search runs the engine on a graph whose all-pairs distances are already in
// tbl. Valves missing from tbl are never candidates; valves in tbl with no
// route from an agent's position are skipped as unopenable.
func Search(ctx context.Context, g *valve.Graph, tbl *distance.Table, opts ...Option) (Result, error) {
	o, err := resolve(opts)
	if err != nil {
		return Result{}, err
	}
	if g == nil {
		return Result{}, valve.ErrNilGraph
	}
	if tbl == nil {
		return Result{}, ErrNilTable
	}

	return search(ctx, g, tbl, o)
}

// search is the shared body of Solve and Search with options resolved.
func search(ctx context.Context, g *valve.Graph, tbl *distance.Table, o Options) (Result, error) {
	startKey := o.Start
	if startKey == "" {
		startKey = g.Start()
	}
	start, ok := tbl.Index(startKey)
	if !ok {
		return Result{}, fmt.Errorf("search: %w: %q", valve.ErrStartNotFound, startKey)
	}

	ctx, span := tracer().Start(ctx, "valves.Search")
	defer span.End()

	e := &engine{
		agents:   o.Agents,
		useBound: o.Bound == SimpleBound,
		tbl:      tbl,
		flow:     make([]int64, tbl.Len()),
		ctx:      ctx,
	}
	for i := 0; i < tbl.Len(); i++ {
		e.flow[i] = g.Flow(tbl.Key(i))
		if i != start && e.flow[i] > 0 {
			e.candidates = append(e.candidates, i)
		}
	}

	began := time.Now()
	root := e.root(start, o.Budget)

	if o.Lookahead > 0 {
		best, err := e.lookahead(root, o.Lookahead, o.Workers, o.OnImprove)
		if err != nil {
			return Result{}, err
		}

		return e.finish(best, span, o.Logger, began), nil
	}

	e.inc = newIncumbent(root, o.OnImprove)
	if err := e.explore(root, o.Workers); err != nil {
		return Result{}, err
	}
	e.stats.Improvements = e.inc.improvements

	return e.finish(e.inc.best, span, o.Logger, began), nil
}

// finish packs best into a Result and reports it.
func (e *engine) finish(best *state, span trace.Span, log *zap.Logger, began time.Time) Result {
	res := Result{
		Release: best.released,
		Paths:   e.paths(best),
		Stats:   e.stats,
	}
	span.SetAttributes(
		attribute.Int64("valves.release", res.Release),
		attribute.Int64("valves.nodes", res.Stats.Nodes),
		attribute.Int64("valves.pruned", res.Stats.Pruned),
	)
	log.Debug("search finished",
		zap.Int64("release", res.Release),
		zap.Int("agents", e.agents),
		zap.Int64("nodes", res.Stats.Nodes),
		zap.Int64("pruned", res.Stats.Pruned),
		zap.Int64("terminals", res.Stats.Terminals),
		zap.Int64("improvements", res.Stats.Improvements),
		zap.Int("rounds", res.Stats.Rounds),
		zap.Duration("elapsed", time.Since(began)))

	return res
}
