// SPDX-License-Identifier: MIT

// Package problems builds classic constraint problems as model.Builders,
// ready for solver.New.
//
//	Golomb(marks, length, optimize) - Golomb ruler: marks distinct positions
//	                                  in [0, length], first at 0, increasing,
//	                                  all pairwise distances distinct;
//	                                  optimize adds the ruler length objective.
//	Sudoku(grid)                    - n×n Sudoku (n a perfect square), 0 for
//	                                  blanks; givens become single-value domains.
//
// Constructors validate their parameters and return sentinel errors wrapped
// with the constructor name.
package problems
