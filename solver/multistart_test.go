package solver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cbls/model"
	"github.com/katalvlaran/cbls/problems"
	"github.com/katalvlaran/cbls/solver"
)

func TestMultiStart(t *testing.T) {
	b, err := problems.Golomb(4, 8, true)
	require.NoError(t, err)
	p, err := model.Specialize[int](b)
	require.NoError(t, err)

	opts := []solver.Option{
		solver.WithMaxIteration(2000),
		solver.WithSeed(21),
		solver.WithTabuTenure(2),
		solver.WithRestartAfter(100),
		solver.WithWorkers(3),
	}
	best, err := solver.MultiStart(context.Background(), p, 6, opts...)
	require.NoError(t, err)
	require.Equal(t, solver.Exhausted, best.Status())

	marks, ok := best.Best()
	require.True(t, ok)
	require.True(t, problems.IsGolombRuler(byID(marks)))

	again, err := solver.MultiStart(context.Background(), p, 6, opts...)
	require.NoError(t, err)
	require.Equal(t, best.State(), again.State(), "same seed, same winner")

	// the winner is at least as good as any single run with a derived seed
	single, err := solver.MultiStart(context.Background(), p, 1, opts...)
	require.NoError(t, err)
	obj, _ := best.BestObjective()
	one, ok := single.BestObjective()
	require.True(t, ok)
	require.LessOrEqual(t, obj, one)
}

func TestMultiStart_Rejections(t *testing.T) {
	p, err := model.Specialize[int](infeasible(t))
	require.NoError(t, err)

	_, err = solver.MultiStart(context.Background(), p, 0)
	require.ErrorIs(t, err, solver.ErrInvalidOptions)

	_, err = solver.MultiStart(context.Background(), p, 2, solver.WithMaxIteration(solver.Unbounded))
	require.ErrorIs(t, err, solver.ErrUnboundedRun)
}
