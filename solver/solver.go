// SPDX-License-Identifier: MIT
//
// File: solver.go
// Role: Solver construction, specialization, the Solve loop and inspection.
// Concurrency:
//   - One goroutine drives a Solver (Solve or Step). Inspection methods may
//     be called from other goroutines while it runs; they read under mu.
//   - The Problem is never mutated and may be shared by many Solvers.

package solver

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/cbls/domain"
	"github.com/katalvlaran/cbls/internal/parallel"
	"github.com/katalvlaran/cbls/model"
)

const tracerName = "github.com/katalvlaran/cbls/solver"

// Solver runs constraint-based local search over one problem. It owns its
// search state exclusively.
type Solver[T domain.Number] struct {
	mu sync.RWMutex

	b *model.Builder
	p *model.Problem[T]

	initial map[int]T
	opts    Options
	status  Status
	err     error // sticky evaluation failure

	st    *state[T]
	rng   *rand.Rand
	log   *slog.Logger
	runID string

	// evaluation scratch, sized once by prepare
	domVals  [][]T
	movable  []int
	scores   [][]score
	evalErrs []error
	buf      []T
	maxArity int
	perIter  int // evaluations per full scoring pass
	pool     *parallel.WorkerPool
}

// New returns a Solver over b, which is specialized to T on the first Solve.
// values optionally fixes initial values by variable id; variables left out
// start at a random value of their domain.
//
// Errors: ErrInvalidOptions, *model.UnknownVariableError,
// ErrValueNotInDomain, domain.ErrNotRepresentable.
func New[T domain.Number](b *model.Builder, values map[int]T, opts ...Option) (*Solver[T], error) {
	if b == nil {
		return nil, &NotSpecializedError{Err: model.ErrNilEntry}
	}
	s, err := newSolver[T](values, opts)
	if err != nil {
		return nil, err
	}
	s.b = b
	s.status = Unspecialized

	var (
		id int
		v  T
	)
	for id, v = range s.initial {
		d, derr := b.Domain(id)
		if derr != nil {
			return nil, &model.UnknownVariableError{Where: "initial values", ID: id}
		}
		td, derr := domain.Convert[T](d)
		if derr != nil {
			return nil, fmt.Errorf("solver: variable %d: %w", id, derr)
		}
		if !td.Contains(v) {
			return nil, fmt.Errorf("%w: variable %d = %v, domain %s", ErrValueNotInDomain, id, v, td)
		}
	}

	return s, nil
}

// FromProblem returns a Solver over an already specialized problem. The
// initial state is drawn and evaluated immediately.
//
// Errors: as New, plus *EvaluationError when a function fails on the
// initial assignment.
func FromProblem[T domain.Number](p *model.Problem[T], values map[int]T, opts ...Option) (*Solver[T], error) {
	if p == nil {
		return nil, &NotSpecializedError{Err: model.ErrNilEntry}
	}
	s, err := newSolver[T](values, opts)
	if err != nil {
		return nil, err
	}
	s.p = p
	s.status = Specialized
	if err = s.prepare(); err != nil {
		return nil, err
	}

	return s, nil
}

func newSolver[T domain.Number](values map[int]T, opts []Option) (*Solver[T], error) {
	o := buildOptions(opts)
	if err := o.Validate(); err != nil {
		return nil, err
	}

	initial := make(map[int]T, len(values))
	var (
		id int
		v  T
	)
	for id, v = range values {
		initial[id] = v
	}

	s := &Solver[T]{
		initial: initial,
		opts:    o,
		rng:     rngFromSeed(o.Seed),
		runID:   uuid.New().String(),
	}
	s.log = newLogger(o).With(
		slog.String("component", "solver"),
		slog.String("run_id", s.runID),
	)

	return s, nil
}

// Specialize freezes the builder into a Problem[T] if that has not happened
// yet.
//
// Errors: *NotSpecializedError.
func (s *Solver[T]) Specialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.specialize()
}

func (s *Solver[T]) specialize() error {
	if s.p != nil {
		return nil
	}
	p, err := model.Specialize[T](s.b)
	if err != nil {
		return &NotSpecializedError{Err: err}
	}
	s.p = p
	s.status = Specialized
	s.log.Debug("specialized", slog.String("value_type", p.ValueType()),
		slog.Int("variables", p.NumVariables()),
		slog.Int("constraints", p.NumConstraints()),
		slog.Int("objectives", p.NumObjectives()))

	return nil
}

// Solve runs the search until a terminal status. Checks happen at every
// iteration boundary: a feasible state in satisfaction mode (or a met
// TargetObjective) gives Solved, an exhausted MaxIteration gives Exhausted,
// and a done ctx or elapsed TimeLimit gives Stopped. A move is never left
// half-applied.
//
// Solve on a Solver that already reached a terminal status returns that
// status again.
//
// Errors: *NotSpecializedError, ErrUnboundedRun, *EvaluationError (the run
// is aborted and the status is Stopped).
func (s *Solver[T]) Solve(ctx context.Context) (Status, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if s.err != nil || s.status.Terminal() {
		defer s.mu.Unlock()
		return s.status, s.err
	}
	if err := s.prepare(); err != nil {
		defer s.mu.Unlock()
		return s.status, err
	}
	if s.opts.MaxIteration == Unbounded && ctx.Done() == nil && s.opts.TimeLimit <= 0 && !s.solved() {
		defer s.mu.Unlock()
		return s.status, ErrUnboundedRun
	}

	mode := modeName(s.p.IsOptimization())
	ctx, span := otel.Tracer(tracerName).Start(ctx, "solver.Solve",
		trace.WithAttributes(
			attribute.String("run_id", s.runID),
			attribute.String("mode", mode),
			attribute.Int("variables", s.p.NumVariables()),
			attribute.Int("constraints", s.p.NumConstraints()),
			attribute.Int("max_iteration", s.opts.MaxIteration),
		),
	)
	defer span.End()

	if s.opts.Workers > 1 && len(s.movable) > 1 {
		s.pool = parallel.NewWorkerPool(s.opts.Workers)
		defer func() {
			s.pool.Shutdown()
			s.pool = nil
		}()
	}
	s.status = Running
	startIter := s.st.iteration
	s.mu.Unlock()

	start := time.Now()
	s.log.Debug("solve started", slog.String("mode", mode), slog.Int("iteration", startIter))

	status, err := s.run(ctx, start)

	s.mu.Lock()
	s.status = status
	if err != nil {
		s.err = err
	}
	done := s.st.iteration - startIter
	snap := s.progress(-1, false)
	s.mu.Unlock()

	elapsed := time.Since(start)
	iterationsTotal.Add(float64(done))
	evaluationsTotal.Add(float64(done * s.perIter))
	runsTotal.WithLabelValues(status.String()).Inc()
	runDuration.WithLabelValues(mode).Observe(elapsed.Seconds())

	span.SetAttributes(
		attribute.String("status", status.String()),
		attribute.Int("iterations", done),
		attribute.Float64("violation", snap.Violation),
	)
	if err != nil {
		evaluationErrorsTotal.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")
		s.log.Error("solve aborted", slog.String("error", err.Error()))
		return status, err
	}

	attrs := []any{
		slog.String("status", status.String()),
		slog.Int("iterations", done),
		slog.Float64("violation", snap.Violation),
		slog.Duration("duration", elapsed),
	}
	if snap.HasBest {
		attrs = append(attrs, slog.Float64("best_objective", snap.Best))
	}
	s.log.Debug("solve finished", attrs...)

	return status, nil
}

// run is the search loop. It takes mu per iteration so that inspection can
// interleave.
func (s *Solver[T]) run(ctx context.Context, start time.Time) (Status, error) {
	var deadline time.Time
	if s.opts.TimeLimit > 0 {
		deadline = start.Add(s.opts.TimeLimit)
	}
	done := ctx.Done()

	s.mu.Lock()
	solved := s.solved()
	s.mu.Unlock()
	if solved {
		return Solved, nil
	}

	for {
		select {
		case <-done:
			return Stopped, nil
		default:
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return Stopped, nil
		}

		s.mu.Lock()
		if s.opts.MaxIteration != Unbounded && s.st.iteration >= s.opts.MaxIteration {
			s.mu.Unlock()
			return Exhausted, nil
		}
		moved, restarted, err := s.iterate()
		prog := s.progress(moved, restarted)
		solved = err == nil && s.solved()
		s.mu.Unlock()

		if err != nil {
			return Stopped, err
		}
		s.report(prog)
		if solved {
			return Solved, nil
		}
	}
}

// Step performs exactly one iteration outside Solve, ignoring the budget
// and the status. Useful to observe the search move by move.
//
// Errors: *NotSpecializedError, *EvaluationError.
func (s *Solver[T]) Step() error {
	s.mu.Lock()
	if s.err != nil {
		defer s.mu.Unlock()
		return s.err
	}
	if err := s.prepare(); err != nil {
		defer s.mu.Unlock()
		return err
	}
	moved, restarted, err := s.iterate()
	if err != nil {
		s.err = err
		s.status = Stopped
	}
	prog := s.progress(moved, restarted)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.report(prog)

	return nil
}

// solved applies the Solved conditions. Caller holds mu.
func (s *Solver[T]) solved() bool {
	if s.p.IsSatisfaction() {
		return s.st.unsat == 0
	}
	t := s.opts.TargetObjective

	return t != nil && s.st.hasBest && s.st.bestObjective <= *t+s.opts.Eps
}

// progress snapshots the scalar state. Caller holds mu.
func (s *Solver[T]) progress(moved int, restarted bool) Progress {
	return Progress{
		Iteration:   s.st.iteration,
		Variable:    moved,
		Violation:   s.st.violation,
		Unsatisfied: s.st.unsat,
		Objective:   s.st.objective,
		Best:        s.st.bestObjective,
		HasBest:     s.st.hasBest && s.p.IsOptimization(),
		Restarted:   restarted,
	}
}

// report logs and forwards one iteration's progress. Called without mu.
func (s *Solver[T]) report(p Progress) {
	if s.opts.Verbose {
		attrs := []any{
			slog.Int("iteration", p.Iteration),
			slog.Int("variable", p.Variable),
			slog.Float64("violation", p.Violation),
			slog.Int("unsatisfied", p.Unsatisfied),
		}
		if s.p.IsOptimization() {
			attrs = append(attrs, slog.Float64("objective", p.Objective))
		}
		if p.Restarted {
			attrs = append(attrs, slog.Bool("restart", true))
		}
		s.log.Info("iteration", attrs...)
	}
	if s.opts.Observer != nil {
		s.opts.Observer(p)
	}
}

// Status returns the current status.
func (s *Solver[T]) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.status
}

// Err returns the error that aborted the run, if any.
func (s *Solver[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.err
}

// RunID identifies this solver in logs and traces.
func (s *Solver[T]) RunID() string { return s.runID }

// Options returns the effective configuration.
func (s *Solver[T]) Options() Options { return s.opts }

// Problem returns the specialized problem, or nil before specialization.
func (s *Solver[T]) Problem() *model.Problem[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.p
}

// Values returns the current assignment by variable id, or nil before the
// first Solve or Step of a Solver built with New.
func (s *Solver[T]) Values() map[int]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.st == nil {
		return nil
	}

	return toMap(s.st.values)
}

// Best returns the best feasible assignment found: the first feasible one in
// satisfaction mode, the one with the lowest objective in optimization mode.
func (s *Solver[T]) Best() (map[int]T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.st == nil || !s.st.hasBest {
		return nil, false
	}

	return toMap(s.st.best), true
}

// BestObjective returns the objective of Best. It is absent in satisfaction
// mode and until a feasible state was found.
func (s *Solver[T]) BestObjective() (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.st == nil || !s.st.hasBest || s.p.IsSatisfaction() {
		return 0, false
	}

	return s.st.bestObjective, true
}

// Violation returns the current aggregate violation.
func (s *Solver[T]) Violation() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.st == nil {
		return 0
	}

	return s.st.violation
}

// Unsatisfied returns how many constraints are currently violated.
func (s *Solver[T]) Unsatisfied() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.st == nil {
		return 0
	}

	return s.st.unsat
}

// Objective returns the current objective value (0 in satisfaction mode).
func (s *Solver[T]) Objective() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.st == nil {
		return 0
	}

	return s.st.objective
}

// Iteration returns the number of iterations performed.
func (s *Solver[T]) Iteration() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.st == nil {
		return 0
	}

	return s.st.iteration
}

// State returns a copy of the search state; the zero State before the first
// Solve or Step of a Solver built with New.
func (s *Solver[T]) State() State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.st == nil {
		return State[T]{}
	}

	return s.st.snapshot()
}

// Describe renders the problem followed by the solver's state.
func (s *Solver[T]) Describe() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sb := &strings.Builder{}
	if s.p != nil {
		sb.WriteString(s.p.Describe())
	} else {
		sb.WriteString(s.b.Describe())
	}
	fmt.Fprintf(sb, "Solver %s: status=%s", s.runID, s.status)
	if s.st != nil {
		fmt.Fprintf(sb, " iteration=%d violation=%g unsatisfied=%d", s.st.iteration, s.st.violation, s.st.unsat)
		if s.p.IsOptimization() {
			fmt.Fprintf(sb, " objective=%g", s.st.objective)
			if s.st.hasBest {
				fmt.Fprintf(sb, " best=%g", s.st.bestObjective)
			}
		}
	}
	sb.WriteString("\n")

	return sb.String()
}

func modeName(optimization bool) string {
	if optimization {
		return "optimization"
	}

	return "satisfaction"
}

// newLogger picks the configured logger, slog.Default() for Verbose runs
// without one, and a silent logger otherwise.
func newLogger(o Options) *slog.Logger {
	switch {
	case o.Logger != nil:
		return o.Logger
	case o.Verbose:
		return slog.Default()
	default:
		return slog.New(discardHandler{})
	}
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
