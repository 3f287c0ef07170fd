package search_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/valves/builder"
	"github.com/katalvlaran/valves/distance"
	"github.com/katalvlaran/valves/reduce"
	"github.com/katalvlaran/valves/search"
	"github.com/katalvlaran/valves/valve"
)

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

func TestSolve_Validation(t *testing.T) {
	ctx := context.Background()
	g := sample()

	_, err := search.Solve(ctx, nil)
	assert.ErrorIs(t, err, valve.ErrNilGraph)

	_, err = search.Solve(ctx, g, search.WithBudget(-1))
	assert.ErrorIs(t, err, search.ErrBadBudget)

	for _, n := range []int{0, 3} {
		_, err = search.Solve(ctx, g, search.WithAgents(n))
		assert.ErrorIs(t, err, search.ErrBadAgents, "agents=%d", n)
	}

	_, err = search.Solve(ctx, g, search.WithLookahead(-2))
	assert.ErrorIs(t, err, search.ErrBadLookahead)

	_, err = search.Solve(ctx, g, search.WithWorkers(-1))
	assert.ErrorIs(t, err, search.ErrBadWorkers)

	_, err = search.Solve(ctx, g, search.WithStart("ZZ"))
	assert.ErrorIs(t, err, valve.ErrStartNotFound)

	_, err = search.Search(ctx, g, nil)
	assert.ErrorIs(t, err, search.ErrNilTable)
}

func TestSearch_StartNotInTable(t *testing.T) {
	g := sample()
	r, _, err := reduce.Reduce(g)
	require.NoError(t, err)
	tbl, err := distance.Estimate(r)
	require.NoError(t, err)

	// II is eliminated by the reducer, so the table does not cover it.
	_, err = search.Search(context.Background(), r, tbl, search.WithStart("II"))
	assert.ErrorIs(t, err, valve.ErrStartNotFound)
}

// ------------------------------------------------------------------------
// 2. Canonical scenarios
// ------------------------------------------------------------------------

func TestSolve_SampleSingleAgent(t *testing.T) {
	g := sample()
	res, err := search.Solve(context.Background(), g, search.WithBudget(30))
	require.NoError(t, err)

	assert.Equal(t, int64(1651), res.Release)
	require.Len(t, res.Paths, 1)
	assert.Equal(t, res.Release, search.Score(g, res.Paths...))
	assert.Len(t, res.Paths[0], 6)
}

func TestSolve_SampleDualAgent(t *testing.T) {
	g := sample()
	res, err := search.Solve(context.Background(), g,
		search.WithAgents(2), search.WithBudget(search.DualBudget))
	require.NoError(t, err)

	assert.Equal(t, int64(1707), res.Release)
	require.Len(t, res.Paths, 2)
	assert.True(t, disjoint(res.Paths))
	assert.Equal(t, res.Release, search.Score(g, res.Paths...))
	assert.NotEmpty(t, res.Paths[0])
	assert.NotEmpty(t, res.Paths[1])
}

func TestSolve_DegenerateGraph(t *testing.T) {
	only := builder.MustBuild("AA", nil, builder.Valves(builder.Spec{Key: "AA"}))
	dry := builder.MustBuild("AA", nil, builder.Valves(
		builder.Spec{Key: "AA", To: []string{"BB"}},
		builder.Spec{Key: "BB", To: []string{"AA", "CC"}},
		builder.Spec{Key: "CC", To: []string{"BB"}},
	))

	for name, g := range map[string]*valve.Graph{"start-only": only, "zero-flow": dry} {
		for _, budget := range []int64{0, 1, 30, 1000} {
			for _, agents := range []int{1, 2} {
				res, err := search.Solve(context.Background(), g,
					search.WithBudget(budget), search.WithAgents(agents))
				require.NoError(t, err, name)
				assert.Equal(t, int64(0), res.Release, "%s budget=%d agents=%d", name, budget, agents)
				require.Len(t, res.Paths, agents)
				for _, p := range res.Paths {
					assert.Empty(t, p)
				}
			}
		}
	}
}

func TestSolve_SingleReachableValve(t *testing.T) {
	const (
		y int64 = 7
		d int64 = 3
	)
	g := builder.MustBuild("AA", nil,
		builder.Valves(builder.Spec{Key: "AA"}, builder.Spec{Key: "BB", Flow: y}),
		builder.Tunnel("AA", "BB", d),
	)

	cases := []struct {
		budget int64
		want   int64
	}{
		{budget: 30, want: y * (30 - d - 1)},
		{budget: d + 2, want: y},
		{budget: d + 1, want: 0},
		{budget: d, want: 0},
		{budget: 1, want: 0},
	}
	for _, tc := range cases {
		for _, agents := range []int{1, 2} {
			res, err := search.Solve(context.Background(), g,
				search.WithBudget(tc.budget), search.WithAgents(agents))
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Release, "budget=%d agents=%d", tc.budget, agents)
		}
	}
}

func TestSolve_UnreachableValveIsIgnored(t *testing.T) {
	g := builder.MustBuild("AA", nil,
		builder.Valves(
			builder.Spec{Key: "AA"},
			builder.Spec{Key: "BB", Flow: 5},
			builder.Spec{Key: "CC", Flow: 1000},
		),
		builder.Tunnel("AA", "BB", 1),
	)

	res, err := search.Solve(context.Background(), g, search.WithBudget(10))
	require.NoError(t, err)
	assert.Equal(t, int64(5*8), res.Release)
}

func TestSolve_StartIsNeverOpened(t *testing.T) {
	g := builder.MustBuild("AA", nil,
		builder.Valves(
			builder.Spec{Key: "AA", Flow: 50},
			builder.Spec{Key: "BB", Flow: 2},
		),
		builder.Tunnel("AA", "BB", 1),
	)

	res, err := search.Solve(context.Background(), g, search.WithBudget(10))
	require.NoError(t, err)
	assert.Equal(t, int64(2*8), res.Release)
}

func TestSolve_WithStartOverride(t *testing.T) {
	g := sample()
	res, err := search.Solve(context.Background(), g, search.WithStart("JJ"), search.WithBudget(3))
	require.NoError(t, err)

	// From JJ the closest positive valves (BB, DD) are three ticks away;
	// with the opening tick that exhausts a three-tick budget.
	assert.Equal(t, int64(0), res.Release)
	assert.Equal(t, "AA", g.Start(), "the caller's graph keeps its start")
}

// ------------------------------------------------------------------------
// 3. Properties
// ------------------------------------------------------------------------

func TestSolve_MonotonicImprovement(t *testing.T) {
	g := sample()
	for _, agents := range []int{1, 2} {
		var seen []int64
		res, err := search.Solve(context.Background(), g,
			search.WithAgents(agents),
			search.WithBudget(search.DualBudget),
			search.WithOnImprove(func(r int64) { seen = append(seen, r) }),
		)
		require.NoError(t, err)
		require.NotEmpty(t, seen)

		for i := 1; i < len(seen); i++ {
			assert.Greater(t, seen[i], seen[i-1])
		}
		assert.Equal(t, res.Release, seen[len(seen)-1])
		assert.LessOrEqual(t, res.Release, int64(agents)*g.MaxRelease(search.DualBudget))
		assert.Equal(t, int64(len(seen)), res.Stats.Improvements)
	}
}

func TestSolve_BoundPoliciesAgree(t *testing.T) {
	graphs := map[string]*valve.Graph{"sample": sample()}
	for seed := int64(1); seed <= 4; seed++ {
		opts := []builder.Option{builder.WithSeed(seed), builder.WithMaxCost(3), builder.WithMaxFlow(20)}
		graphs[fmt.Sprintf("random-%d", seed)] = builder.MustBuild("AA", opts, builder.Random(7, 0.25))
	}

	for name, g := range graphs {
		for _, agents := range []int{1, 2} {
			budget := search.DefaultBudget
			if agents == 2 {
				budget = search.DualBudget
			}
			plain, err := search.Solve(context.Background(), g,
				search.WithAgents(agents), search.WithBudget(budget), search.WithBound(search.NoBound))
			require.NoError(t, err)
			bounded, err := search.Solve(context.Background(), g,
				search.WithAgents(agents), search.WithBudget(budget), search.WithBound(search.SimpleBound))
			require.NoError(t, err)

			assert.Equal(t, plain.Release, bounded.Release, "%s agents=%d", name, agents)
			assert.Zero(t, plain.Stats.Pruned)
			assert.LessOrEqual(t, bounded.Stats.Nodes, plain.Stats.Nodes)
		}
	}
}

// TestSolve_MatchesBruteForce compares the engine against exhaustive
// enumeration of opening orders on small random networks.
func TestSolve_MatchesBruteForce(t *testing.T) {
	graphs := []*valve.Graph{sample()}
	for seed := int64(1); seed <= 12; seed++ {
		opts := []builder.Option{
			builder.WithSeed(seed),
			builder.WithMaxCost(4),
			builder.WithMaxFlow(25),
			builder.WithZeroPercent(30),
		}
		graphs = append(graphs, builder.MustBuild("AA", opts, builder.Random(8, 0.3)))
	}
	for seed := int64(1); seed <= 6; seed++ {
		opts := []builder.Option{
			builder.WithSeed(seed),
			builder.WithMaxCost(3),
			builder.WithZeroPercent(30),
			builder.WithOneWayPercent(60),
		}
		graphs = append(graphs, builder.MustBuild("AA", opts, builder.Random(8, 0.4)))
	}

	for i, g := range graphs {
		wantSingle, wantDual := bruteForce(g, 30, 26)

		single, err := search.Solve(context.Background(), g, search.WithBudget(30))
		require.NoError(t, err)
		dual, err := search.Solve(context.Background(), g, search.WithAgents(2), search.WithBudget(26))
		require.NoError(t, err)

		assert.Equal(t, wantSingle, single.Release, "graph %d single", i)
		assert.Equal(t, wantDual, dual.Release, "graph %d dual", i)
		assert.Equal(t, single.Release, search.Score(g, single.Paths...))
		assert.Equal(t, dual.Release, search.Score(g, dual.Paths...))
		assert.True(t, disjoint(dual.Paths))
	}
}

func TestSolve_Cancelled(t *testing.T) {
	g := builder.MustBuild("AA",
		[]builder.Option{builder.WithSeed(3), builder.WithZeroPercent(0)},
		builder.Random(16, 0.3))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := search.Solve(ctx, g,
		search.WithAgents(2), search.WithBudget(26), search.WithBound(search.NoBound))
	assert.ErrorIs(t, err, context.Canceled)
}
