package search_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/valves/builder"
	"github.com/katalvlaran/valves/search"
)

func benchSolve(b *testing.B, opts ...search.Option) {
	g := builder.MustBuild("AA",
		[]builder.Option{builder.WithSeed(42), builder.WithMaxCost(3), builder.WithZeroPercent(50)},
		builder.Random(24, 0.15))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := search.Solve(context.Background(), g, opts...); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolve_Single(b *testing.B) { benchSolve(b) }

func BenchmarkSolve_Dual(b *testing.B) {
	benchSolve(b, search.WithAgents(2), search.WithBudget(search.DualBudget))
}

func BenchmarkSolve_DualWorkers(b *testing.B) {
	benchSolve(b, search.WithAgents(2), search.WithBudget(search.DualBudget), search.WithWorkers(4))
}

func BenchmarkSolve_DualLookahead(b *testing.B) {
	benchSolve(b, search.WithAgents(2), search.WithBudget(search.DualBudget), search.WithLookahead(4))
}
