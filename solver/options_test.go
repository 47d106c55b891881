package solver_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cbls/solver"
)

func TestParseOptions(t *testing.T) {
	o, err := solver.ParseOptions([]byte(`
max_iteration: 20000
seed: 7
time_limit: 1500ms
workers: 4
tabu_tenure: 2
restart_after: 200
target_objective: 6
`))
	require.NoError(t, err)
	require.Equal(t, 20000, o.MaxIteration)
	require.Equal(t, int64(7), o.Seed)
	require.Equal(t, 1500*time.Millisecond, o.TimeLimit)
	require.Equal(t, 4, o.Workers)
	require.Equal(t, 2, o.TabuTenure)
	require.Equal(t, 200, o.RestartAfter)
	require.NotNil(t, o.TargetObjective)
	require.Equal(t, 6.0, *o.TargetObjective)
	require.Equal(t, solver.DefaultResyncEvery, o.ResyncEvery, "unset keys keep defaults")
	require.Equal(t, solver.DefaultEps, o.Eps)
}

func TestParseOptions_EmptyIsDefault(t *testing.T) {
	o, err := solver.ParseOptions(nil)
	require.NoError(t, err)
	require.Equal(t, solver.DefaultOptions(), o)
}

func TestParseOptions_Rejections(t *testing.T) {
	_, err := solver.ParseOptions([]byte("max_iterations: 5\n"))
	require.Error(t, err, "unknown key")

	_, err = solver.ParseOptions([]byte("max_iteration: -2\n"))
	require.ErrorIs(t, err, solver.ErrInvalidOptions)

	_, err = solver.ParseOptions([]byte("eps: -1\n"))
	require.ErrorIs(t, err, solver.ErrInvalidOptions)

	_, err = solver.ParseOptions([]byte("seed: [1, 2]\n"))
	require.Error(t, err)
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_iteration: -1\ntime_limit: 2s\n"), 0o600))

	o, err := solver.LoadOptions(path)
	require.NoError(t, err)
	require.Equal(t, solver.Unbounded, o.MaxIteration)
	require.Equal(t, 2*time.Second, o.TimeLimit)

	_, err = solver.LoadOptions(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOptionSetters(t *testing.T) {
	b := interval(t, 2, 0, 3)

	_, err := solver.New[int](b, nil, solver.WithWorkers(-1))
	require.ErrorIs(t, err, solver.ErrInvalidOptions)
	_, err = solver.New[int](b, nil, solver.WithMaxIteration(-5))
	require.ErrorIs(t, err, solver.ErrInvalidOptions)

	base := solver.DefaultOptions()
	base.Seed = 99
	sv, err := solver.New[int](b, nil, solver.WithOptions(base), solver.WithTabuTenure(3), solver.WithEps(1e-6))
	require.NoError(t, err)
	o := sv.Options()
	require.Equal(t, int64(99), o.Seed)
	require.Equal(t, 3, o.TabuTenure)
	require.Equal(t, 1e-6, o.Eps)
	require.Equal(t, solver.DefaultMaxIteration, o.MaxIteration)
}
