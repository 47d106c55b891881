// SPDX-License-Identifier: MIT

package problems

import "errors"

var (
	// ErrTooFewMarks indicates a Golomb ruler with fewer than two marks.
	ErrTooFewMarks = errors.New("problems: too few marks")

	// ErrBadSize indicates a length or grid size that cannot hold the problem.
	ErrBadSize = errors.New("problems: invalid size")

	// ErrBadGiven indicates a Sudoku clue outside [0, n].
	ErrBadGiven = errors.New("problems: invalid given")
)
