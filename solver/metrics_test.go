package solver

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cbls/constraint"
	"github.com/katalvlaran/cbls/domain"
	"github.com/katalvlaran/cbls/model"
)

// builder returns n variables over [0, hi] with fn over all of them.
func builder(t *testing.T, n, hi int, fn constraint.Func[int]) *model.Builder {
	t.Helper()
	d, err := domain.Interval(0, hi)
	require.NoError(t, err)
	b := model.NewBuilder()
	ids := make([]int, n)
	for i := range ids {
		ids[i], err = b.AddVariable(d)
		require.NoError(t, err)
	}
	if fn != nil {
		_, err = model.Constrain(b, fn, ids...)
		require.NoError(t, err)
	}

	return b
}

func TestMetricsRecordRuns(t *testing.T) {
	solved := testutil.ToFloat64(runsTotal.WithLabelValues(SolvedStr))
	exhausted := testutil.ToFloat64(runsTotal.WithLabelValues(ExhaustedStr))
	iterations := testutil.ToFloat64(iterationsTotal)
	evaluations := testutil.ToFloat64(evaluationsTotal)
	restarts := testutil.ToFloat64(restartsTotal)

	s, err := New[int](builder(t, 1, 0, nil), nil)
	require.NoError(t, err)
	status, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, Solved, status)
	require.Equal(t, solved+1, testutil.ToFloat64(runsTotal.WithLabelValues(SolvedStr)))

	// three variables over {0,1} can never all differ
	s, err = New[int](builder(t, 3, 1, constraint.AllDifferent[int]), nil,
		WithMaxIteration(40), WithRestartAfter(5))
	require.NoError(t, err)
	status, err = s.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, Exhausted, status)

	require.Equal(t, exhausted+1, testutil.ToFloat64(runsTotal.WithLabelValues(ExhaustedStr)))
	require.Equal(t, iterations+40, testutil.ToFloat64(iterationsTotal))
	require.Equal(t, evaluations+float64(40*s.perIter), testutil.ToFloat64(evaluationsTotal))
	require.Equal(t, restarts+float64(s.State().Restarts), testutil.ToFloat64(restartsTotal))
	require.Positive(t, s.State().Restarts)
	require.Positive(t, testutil.CollectAndCount(runDuration))
}

func TestMetricsRecordEvaluationErrors(t *testing.T) {
	failures := testutil.ToFloat64(evaluationErrorsTotal)
	stopped := testutil.ToFloat64(runsTotal.WithLabelValues(StoppedStr))

	b := builder(t, 1, 3, func(x []int) float64 {
		if x[0] == 2 {
			panic("two")
		}
		return 1
	})
	s, err := New[int](b, map[int]int{0: 0})
	require.NoError(t, err)
	_, err = s.Solve(context.Background())
	require.ErrorIs(t, err, ErrEvaluation)

	require.Equal(t, failures+1, testutil.ToFloat64(evaluationErrorsTotal))
	require.Equal(t, stopped+1, testutil.ToFloat64(runsTotal.WithLabelValues(StoppedStr)))
}
