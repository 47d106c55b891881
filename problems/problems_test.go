package problems_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cbls/model"
	"github.com/katalvlaran/cbls/problems"
)

func TestGolomb_Shape(t *testing.T) {
	b, err := problems.Golomb(4, 6, false)
	require.NoError(t, err)
	require.Equal(t, 4, b.NumVariables())
	// x0=0, all-different, ordered, C(6,2)=15 distance constraints
	require.Equal(t, 3+15, b.NumConstraints())
	require.True(t, b.IsSatisfaction())

	opt, err := problems.Golomb(4, 6, true)
	require.NoError(t, err)
	require.True(t, opt.IsOptimization())

	p, err := model.Specialize[int](opt)
	require.NoError(t, err)
	require.Equal(t, 7, p.Domain(3).Size())
	require.Equal(t, []int{0, 1, 2, 3}, p.ObjectiveScope(0))
}

func TestGolomb_Rejections(t *testing.T) {
	_, err := problems.Golomb(1, 6, false)
	require.ErrorIs(t, err, problems.ErrTooFewMarks)
	require.Contains(t, err.Error(), "Golomb")

	_, err = problems.Golomb(4, 2, false)
	require.ErrorIs(t, err, problems.ErrBadSize)
}

func TestIsGolombRuler(t *testing.T) {
	require.True(t, problems.IsGolombRuler([]int{0, 1, 4, 6}))
	require.True(t, problems.IsGolombRuler([]int{6, 0, 4, 1}))
	require.False(t, problems.IsGolombRuler([]int{0, 1, 2, 4}))
	require.False(t, problems.IsGolombRuler([]int{0, 3, 3}))
}

func TestSudoku_Shape(t *testing.T) {
	grid := [][]int{
		{1, 0, 0, 0},
		{0, 0, 3, 0},
		{0, 4, 0, 0},
		{0, 0, 0, 2},
	}
	b, err := problems.Sudoku(grid)
	require.NoError(t, err)
	require.Equal(t, 16, b.NumVariables())
	require.Equal(t, 12, b.NumConstraints())

	p, err := model.Specialize[int](b)
	require.NoError(t, err)
	require.Equal(t, []int{1}, p.Domain(0).Values())
	require.Equal(t, []int{1, 2, 3, 4}, p.Domain(1).Values())
	// cell (1,2) sits in row 1, column 2 and block 1
	require.Equal(t, []int{1, 6, 9}, p.ConstraintsOf(6))
	require.Equal(t, []int{0, 1, 4, 5}, p.ConstraintScope(8))
}

func TestSudoku_Rejections(t *testing.T) {
	_, err := problems.Sudoku([][]int{{0, 0}, {0, 0}})
	require.ErrorIs(t, err, problems.ErrBadSize)

	_, err = problems.Sudoku([][]int{{0, 0, 0, 0}, {0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}})
	require.ErrorIs(t, err, problems.ErrBadSize)

	_, err = problems.Sudoku([][]int{{5, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}})
	require.ErrorIs(t, err, problems.ErrBadGiven)
}

func TestSudokuGrid(t *testing.T) {
	got := problems.SudokuGrid(map[int]int{0: 1, 3: 4, 15: 2}, 4)
	require.Equal(t, [][]int{{1, 0, 0, 4}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 2}}, got)
}
