// SPDX-License-Identifier: MIT

// Command cbls builds one of the bundled problems, runs the local-search
// solver on it and prints the result.
//
//	cbls -problem golomb -n 4 -length 6 -opt -config solver.yaml
//	cbls -problem sudoku -puzzle 1234340.20.43.321
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/katalvlaran/cbls/model"
	"github.com/katalvlaran/cbls/problems"
	"github.com/katalvlaran/cbls/solver"
)

var errUsage = errors.New("cbls: usage")

type config struct {
	problem string
	marks   int
	length  int
	opt     bool
	puzzle  string
	path    string
	starts  int
	verbose bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var c config
	fs := flag.NewFlagSet("cbls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&c.problem, "problem", "golomb", "problem to solve: golomb or sudoku")
	fs.IntVar(&c.marks, "n", 4, "golomb: number of marks")
	fs.IntVar(&c.length, "length", 6, "golomb: ruler length")
	fs.BoolVar(&c.opt, "opt", false, "golomb: minimize the ruler length")
	fs.StringVar(&c.puzzle, "puzzle", "", "sudoku: cells row by row, 0 or . for blanks")
	fs.StringVar(&c.path, "config", "", "YAML solver options")
	fs.IntVar(&c.starts, "starts", 1, "independent runs; the best one is printed")
	fs.BoolVar(&c.verbose, "v", false, "log every iteration")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	opts := solver.DefaultOptions()
	if c.path != "" {
		loaded, err := solver.LoadOptions(c.path)
		if err != nil {
			return err
		}
		opts = loaded
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	options := []solver.Option{solver.WithOptions(opts), solver.WithLogger(logger)}
	if c.verbose {
		options = append(options, solver.WithVerbose(true))
	}

	b, err := build(c)
	if err != nil {
		return err
	}
	p, err := model.Specialize[int](b)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, p.Describe())

	s, err := solver.MultiStart(ctx, p, c.starts, options...)
	if err != nil {
		return err
	}
	logger.Info("done", slog.String("run_id", s.RunID()), slog.String("status", s.Status().String()),
		slog.Int("iterations", s.Iteration()))

	return report(stdout, c, s)
}

func build(c config) (*model.Builder, error) {
	switch c.problem {
	case "golomb":
		return problems.Golomb(c.marks, c.length, c.opt)
	case "sudoku":
		grid, err := parsePuzzle(c.puzzle)
		if err != nil {
			return nil, err
		}
		return problems.Sudoku(grid)
	default:
		return nil, fmt.Errorf("%w: unknown problem %q", errUsage, c.problem)
	}
}

// parsePuzzle reads a square grid written row by row: digits 1-9 are
// clues, 0 and . are blanks. Whitespace is ignored.
func parsePuzzle(s string) ([][]int, error) {
	cells := make([]int, 0, len(s))
	for _, r := range s {
		switch {
		case r == '.' || r == '0':
			cells = append(cells, 0)
		case r >= '1' && r <= '9':
			cells = append(cells, int(r-'0'))
		case r == ' ' || r == '\n' || r == '\t':
		default:
			return nil, fmt.Errorf("%w: bad puzzle character %q", errUsage, r)
		}
	}
	n := 0
	for n*n < len(cells) {
		n++
	}
	if n == 0 || n*n != len(cells) {
		return nil, fmt.Errorf("%w: %d cells do not form a square grid", errUsage, len(cells))
	}
	grid := make([][]int, n)
	for r := range grid {
		grid[r] = cells[r*n : (r+1)*n]
	}

	return grid, nil
}

func report(w io.Writer, c config, s *solver.Solver[int]) error {
	values, ok := s.Best()
	if !ok {
		fmt.Fprintf(w, "status: %s, no feasible assignment (violation %g)\n", s.Status(), s.Violation())
		return nil
	}
	fmt.Fprintf(w, "status: %s after %d iterations\n", s.Status(), s.Iteration())

	switch c.problem {
	case "sudoku":
		n := len(values)
		side := 0
		for side*side < n {
			side++
		}
		for _, row := range problems.SudokuGrid(values, side) {
			fmt.Fprintln(w, strings.Trim(fmt.Sprint(row), "[]"))
		}
	default:
		marks := make([]int, 0, len(values))
		for _, v := range values {
			marks = append(marks, v)
		}
		slices.Sort(marks)
		fmt.Fprintf(w, "marks: %v\n", marks)
		if obj, ok := s.BestObjective(); ok {
			fmt.Fprintf(w, "length: %g\n", obj)
		}
	}

	return nil
}
