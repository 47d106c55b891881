// SPDX-License-Identifier: MIT
//
// File: sudoku.go
// Role: n×n Sudoku model.
//
// Contract:
//   - grid is n×n with n = k², k ≥ 1 (else ErrBadSize); clues in [0, n],
//     0 meaning blank (else ErrBadGiven).
//   - Variable r*n+c is cell (r, c); a clue pins it to a single value,
//     a blank ranges over [1, n].
//   - Constraints, in order: rows, columns, blocks, each all different.
//
// Complexity: O(n²) variables, 3n constraints of arity n.

package problems

import (
	"fmt"

	"github.com/katalvlaran/cbls/constraint"
	"github.com/katalvlaran/cbls/domain"
	"github.com/katalvlaran/cbls/model"
)

const methodSudoku = "Sudoku"

// Sudoku returns the Sudoku problem for grid.
func Sudoku(grid [][]int) (*model.Builder, error) {
	n := len(grid)
	k := blockSide(n)
	if k == 0 {
		return nil, fmt.Errorf("%s: size %d is not a positive perfect square: %w", methodSudoku, n, ErrBadSize)
	}

	blank, err := domain.Interval(1, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodSudoku, err)
	}
	b := model.NewBuilder()
	for r := 0; r < n; r++ {
		if len(grid[r]) != n {
			return nil, fmt.Errorf("%s: row %d has %d cells, want %d: %w", methodSudoku, r, len(grid[r]), n, ErrBadSize)
		}
		for c := 0; c < n; c++ {
			g := grid[r][c]
			var d domain.Erased = blank
			switch {
			case g < 0 || g > n:
				return nil, fmt.Errorf("%s: cell (%d,%d)=%d: %w", methodSudoku, r, c, g, ErrBadGiven)
			case g > 0:
				if d, err = domain.New([]int{g}); err != nil {
					return nil, fmt.Errorf("%s: cell (%d,%d): %w", methodSudoku, r, c, err)
				}
			}
			if _, err = b.AddVariable(d); err != nil {
				return nil, fmt.Errorf("%s: AddVariable(%d,%d): %w", methodSudoku, r, c, err)
			}
		}
	}

	for _, group := range sudokuGroups(n, k) {
		if _, err = model.Constrain(b, constraint.AllDifferent[int], group...); err != nil {
			return nil, fmt.Errorf("%s: constraint over %v: %w", methodSudoku, group, err)
		}
	}

	return b, nil
}

// SudokuGrid lays values (by variable id) out as an n×n grid; missing ids
// are left 0.
func SudokuGrid(values map[int]int, n int) [][]int {
	grid := make([][]int, n)
	for r := range grid {
		grid[r] = make([]int, n)
		for c := range grid[r] {
			grid[r][c] = values[r*n+c]
		}
	}

	return grid
}

// sudokuGroups returns the rows, then the columns, then the blocks as lists
// of variable ids.
func sudokuGroups(n, k int) [][]int {
	groups := make([][]int, 0, 3*n)
	for r := 0; r < n; r++ {
		row := make([]int, n)
		for c := range row {
			row[c] = r*n + c
		}
		groups = append(groups, row)
	}
	for c := 0; c < n; c++ {
		col := make([]int, n)
		for r := range col {
			col[r] = r*n + c
		}
		groups = append(groups, col)
	}
	for br := 0; br < k; br++ {
		for bc := 0; bc < k; bc++ {
			block := make([]int, 0, n)
			for r := br * k; r < (br+1)*k; r++ {
				for c := bc * k; c < (bc+1)*k; c++ {
					block = append(block, r*n+c)
				}
			}
			groups = append(groups, block)
		}
	}

	return groups
}

// blockSide returns k with k*k == n, or 0.
func blockSide(n int) int {
	for k := 1; k*k <= n; k++ {
		if k*k == n {
			return k
		}
	}

	return 0
}
