package solver_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/cbls/solver"
)

func TestStatusNames(t *testing.T) {
	all := []solver.Status{
		solver.Unspecialized, solver.Specialized, solver.Running,
		solver.Solved, solver.Exhausted, solver.Stopped,
	}
	for _, st := range all {
		require.True(t, st.Valid())
		got, err := solver.ParseStatus(st.String())
		require.NoError(t, err)
		require.Equal(t, st, got)
	}

	got, err := solver.ParseStatus("Exhausted")
	require.NoError(t, err)
	require.Equal(t, solver.Exhausted, got)

	_, err = solver.ParseStatus("done")
	require.ErrorIs(t, err, solver.ErrUnknownStatus)

	require.Equal(t, "unknown", solver.Status(42).String())
	require.False(t, solver.Status(42).Valid())
	require.False(t, solver.Running.Terminal())
	require.True(t, solver.Stopped.Terminal())
}

func TestStatusEncoding(t *testing.T) {
	type report struct {
		Status solver.Status `json:"status" yaml:"status"`
	}

	data, err := json.Marshal(report{Status: solver.Solved})
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"solved"}`, string(data))

	var r report
	require.NoError(t, json.Unmarshal([]byte(`{"status":"Stopped"}`), &r))
	require.Equal(t, solver.Stopped, r.Status)
	require.ErrorIs(t, json.Unmarshal([]byte(`{"status":"bogus"}`), &r), solver.ErrUnknownStatus)

	out, err := yaml.Marshal(report{Status: solver.Exhausted})
	require.NoError(t, err)
	require.Equal(t, "status: exhausted\n", string(out))
	require.NoError(t, yaml.Unmarshal([]byte("status: running\n"), &r))
	require.Equal(t, solver.Running, r.Status)

	_, err = json.Marshal(report{Status: solver.Status(-1)})
	require.Error(t, err)
}
