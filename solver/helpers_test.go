package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cbls/constraint"
	"github.com/katalvlaran/cbls/domain"
	"github.com/katalvlaran/cbls/model"
)

// interval adds n variables over [lo, hi] to a new builder.
func interval(t *testing.T, n, lo, hi int) *model.Builder {
	t.Helper()
	d, err := domain.Interval(lo, hi)
	require.NoError(t, err)
	b := model.NewBuilder()
	for i := 0; i < n; i++ {
		_, err = b.AddVariable(d)
		require.NoError(t, err)
	}

	return b
}

// constrain adds fn over ids and fails the test on error.
func constrain(t *testing.T, b *model.Builder, fn constraint.Func[int], ids ...int) {
	t.Helper()
	_, err := model.Constrain(b, fn, ids...)
	require.NoError(t, err)
}

// infeasible returns three variables over {0,1} that must all differ.
func infeasible(t *testing.T) *model.Builder {
	t.Helper()
	b := interval(t, 3, 0, 1)
	constrain(t, b, constraint.AllDifferent[int], 0, 1, 2)

	return b
}

// allDistinct returns the 4-variable scenario: domain 0..9, all distinct,
// first variable equal to 0.
func allDistinct(t *testing.T) *model.Builder {
	t.Helper()
	b := interval(t, 4, 0, 9)
	constrain(t, b, constraint.AllDifferent[int], 0, 1, 2, 3)
	constrain(t, b, constraint.AllEqualParam(0), 0)

	return b
}

func byID(values map[int]int) []int {
	out := make([]int, len(values))
	for id, v := range values {
		out[id] = v
	}

	return out
}
