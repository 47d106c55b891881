// SPDX-License-Identifier: MIT
//
// File: options.go
// Role: Options, DefaultOptions and the functional Option setters.

package solver

import (
	"fmt"
	"log/slog"
	"math"
	"time"
)

// Unbounded is the MaxIteration value for a run limited only by the
// context, the TimeLimit or feasibility.
const Unbounded = -1

const (
	// DefaultMaxIteration is the iteration budget of DefaultOptions.
	DefaultMaxIteration = 10000
	// DefaultResyncEvery is how often cached aggregates are rebuilt.
	DefaultResyncEvery = 1024
	// DefaultEps is the tolerance for comparing candidate scores.
	DefaultEps = 1e-9
	// DefaultRestartAfter is the stagnation limit of DefaultOptions. Without
	// restarts a pure min-conflicts walk can cycle forever in a basin.
	DefaultRestartAfter = 200
)

// Progress is passed to the Observer after every iteration.
type Progress struct {
	Iteration   int
	Variable    int // moved variable, -1 after a restart or an idle iteration
	Violation   float64
	Unsatisfied int
	Objective   float64
	Best        float64 // best objective, valid when HasBest
	HasBest     bool
	Restarted   bool
}

// Options configures a Solver. Durations are read from YAML as Go duration
// strings ("250ms", "2s").
type Options struct {
	// MaxIteration bounds the number of iterations; Unbounded (-1) for none.
	MaxIteration int `yaml:"max_iteration"`

	// Seed selects the random stream; 0 means a fixed default stream.
	Seed int64 `yaml:"seed"`

	// Verbose logs one record per iteration at Info level.
	Verbose bool `yaml:"verbose"`

	// TimeLimit stops the run once elapsed; 0 disables it.
	TimeLimit time.Duration `yaml:"time_limit"`

	// Workers > 1 evaluates candidate moves on a worker pool.
	Workers int `yaml:"workers"`

	// TabuTenure forbids moving a variable again for this many iterations;
	// 0 disables the tabu list.
	TabuTenure int `yaml:"tabu_tenure"`

	// RestartAfter redraws the assignment after this many iterations
	// without improvement; 0 disables restarts.
	RestartAfter int `yaml:"restart_after"`

	// ResyncEvery rebuilds the aggregate violation and objective from the
	// per-factor caches every so many iterations; 0 only on feasibility.
	ResyncEvery int `yaml:"resync_every"`

	// Eps is the tolerance under which two scores tie.
	Eps float64 `yaml:"eps"`

	// TargetObjective ends an optimization run as Solved once the best
	// objective is ≤ *TargetObjective.
	TargetObjective *float64 `yaml:"target_objective"`

	// Logger receives diagnostics; nil means silent unless Verbose, which
	// falls back to slog.Default().
	Logger *slog.Logger `yaml:"-"`

	// Observer, if set, is called after every iteration, outside any lock.
	Observer func(Progress) `yaml:"-"`
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		MaxIteration: DefaultMaxIteration,
		Workers:      1,
		RestartAfter: DefaultRestartAfter,
		ResyncEvery:  DefaultResyncEvery,
		Eps:          DefaultEps,
	}
}

// Validate reports the first out-of-range field.
func (o Options) Validate() error {
	switch {
	case o.MaxIteration < Unbounded:
		return fmt.Errorf("%w: MaxIteration=%d", ErrInvalidOptions, o.MaxIteration)
	case o.TimeLimit < 0:
		return fmt.Errorf("%w: TimeLimit=%v", ErrInvalidOptions, o.TimeLimit)
	case o.Workers < 0:
		return fmt.Errorf("%w: Workers=%d", ErrInvalidOptions, o.Workers)
	case o.TabuTenure < 0:
		return fmt.Errorf("%w: TabuTenure=%d", ErrInvalidOptions, o.TabuTenure)
	case o.RestartAfter < 0:
		return fmt.Errorf("%w: RestartAfter=%d", ErrInvalidOptions, o.RestartAfter)
	case o.ResyncEvery < 0:
		return fmt.Errorf("%w: ResyncEvery=%d", ErrInvalidOptions, o.ResyncEvery)
	case o.Eps < 0 || math.IsNaN(o.Eps) || math.IsInf(o.Eps, 0):
		return fmt.Errorf("%w: Eps=%v", ErrInvalidOptions, o.Eps)
	case o.TargetObjective != nil && math.IsNaN(*o.TargetObjective):
		return fmt.Errorf("%w: TargetObjective=NaN", ErrInvalidOptions)
	}

	return nil
}

// WithOptions replaces the whole configuration, typically one loaded with
// LoadOptions. Options given after it still apply.
func WithOptions(o Options) Option {
	return func(dst *Options) { *dst = o }
}

// WithMaxIteration sets the iteration budget; Unbounded for none.
func WithMaxIteration(n int) Option {
	return func(o *Options) { o.MaxIteration = n }
}

// WithSeed sets the random seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithVerbose toggles per-iteration logging.
func WithVerbose(v bool) Option {
	return func(o *Options) { o.Verbose = v }
}

// WithLogger sets a structured logger for solver diagnostics.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	s, err := solver.New[int](b, nil, solver.WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithTimeLimit stops the run after d.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) { o.TimeLimit = d }
}

// WithWorkers sets the size of the evaluation pool.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithTabuTenure sets the tabu tenure.
func WithTabuTenure(n int) Option {
	return func(o *Options) { o.TabuTenure = n }
}

// WithRestartAfter sets the stagnation limit before a restart.
func WithRestartAfter(n int) Option {
	return func(o *Options) { o.RestartAfter = n }
}

// WithResyncEvery sets the full-rescan period.
func WithResyncEvery(n int) Option {
	return func(o *Options) { o.ResyncEvery = n }
}

// WithEps sets the tie tolerance.
func WithEps(eps float64) Option {
	return func(o *Options) { o.Eps = eps }
}

// WithTargetObjective ends an optimization run once the best objective is ≤ v.
func WithTargetObjective(v float64) Option {
	return func(o *Options) { o.TargetObjective = &v }
}

// WithObserver registers fn to be called after every iteration.
func WithObserver(fn func(Progress)) Option {
	return func(o *Options) { o.Observer = fn }
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	var fn Option
	for _, fn = range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
