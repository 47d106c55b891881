package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunGolomb(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "solver.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("max_iteration: 20000\ntabu_tenure: 2\nrestart_after: 200\ntarget_objective: 6\n"), 0o600))

	var out, errOut bytes.Buffer
	err := run(context.Background(), []string{"-problem", "golomb", "-n", "4", "-length", "6", "-opt", "-config", cfg}, &out, &errOut)
	require.NoError(t, err)
	require.Contains(t, out.String(), "Problem (optimization, int): 4 variables")
	require.Contains(t, out.String(), "status: solved")
	require.Contains(t, out.String(), "length: 6")
	require.Contains(t, errOut.String(), "msg=done")
}

func TestRunSudoku(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run(context.Background(), []string{"-problem", "sudoku", "-puzzle", "1234 340. 2.43 .321"}, &out, &errOut)
	require.NoError(t, err)
	require.Contains(t, out.String(), "status: solved")
	require.Contains(t, out.String(), "3 4 1 2\n2 1 4 3\n4 3 2 1\n")
}

func TestRunUsage(t *testing.T) {
	var out, errOut bytes.Buffer
	require.ErrorIs(t, run(context.Background(), []string{"-problem", "tsp"}, &out, &errOut), errUsage)
	require.ErrorIs(t, run(context.Background(), []string{"-problem", "sudoku", "-puzzle", "123"}, &out, &errOut), errUsage)
	require.ErrorIs(t, run(context.Background(), []string{"-bogus"}, &out, &errOut), errUsage)
}

func TestParsePuzzle(t *testing.T) {
	grid, err := parsePuzzle("1.3.\n.2..\n....\n...4")
	require.NoError(t, err)
	require.Equal(t, [][]int{{1, 0, 3, 0}, {0, 2, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 4}}, grid)

	_, err = parsePuzzle("12x4")
	require.ErrorIs(t, err, errUsage)
}
