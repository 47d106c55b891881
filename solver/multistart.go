// SPDX-License-Identifier: MIT

package solver

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/cbls/domain"
	"github.com/katalvlaran/cbls/internal/parallel"
	"github.com/katalvlaran/cbls/model"
)

// MultiStart runs starts independent solvers over the shared problem p and
// returns the best one. Run i uses the seed derived from (Seed, i), so the
// outcome is reproducible. Workers sets how many runs proceed at once; each
// run scores its moves sequentially. The Observer, if any, is called from
// several goroutines.
//
// Ranking: a run with a feasible best beats one without; among feasible
// runs the lower best objective wins (optimization mode); otherwise the
// lower best violation wins; remaining ties go to the lower run index.
//
// Errors: ErrInvalidOptions, ErrUnboundedRun, the first *EvaluationError
// by run index.
func MultiStart[T domain.Number](ctx context.Context, p *model.Problem[T], starts int, opts ...Option) (*Solver[T], error) {
	if ctx == nil {
		ctx = context.Background()
	}
	base := buildOptions(opts)
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if starts < 1 {
		return nil, fmt.Errorf("%w: starts=%d", ErrInvalidOptions, starts)
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "solver.MultiStart",
		trace.WithAttributes(
			attribute.Int("starts", starts),
			attribute.Int("workers", base.Workers),
		),
	)
	defer span.End()

	runs := make([]*Solver[T], starts)
	var (
		i   int
		err error
	)
	for i = range runs {
		o := base
		o.Seed = deriveSeed(base.Seed, uint64(i))
		o.Workers = 1
		if runs[i], err = FromProblem(p, nil, WithOptions(o)); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "start failed")
			return nil, err
		}
	}

	pool := parallel.NewWorkerPool(min(max(base.Workers, 1), starts))
	defer pool.Shutdown()

	errs := make([]error, starts)
	_ = pool.ForEach(context.Background(), starts, func(i int) {
		_, errs[i] = runs[i].Solve(ctx)
	})
	for i, err = range errs {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "run failed")
			return nil, fmt.Errorf("solver: start %d: %w", i, err)
		}
	}

	best := runs[0]
	for _, r := range runs[1:] {
		if r.outranks(best) {
			best = r
		}
	}
	span.SetAttributes(attribute.String("best_run_id", best.runID))
	best.log.Debug("multi-start finished", slog.Int("starts", starts), slog.String("status", best.Status().String()))

	return best, nil
}

// outranks reports whether s found a strictly better result than o.
func (s *Solver[T]) outranks(o *Solver[T]) bool {
	a, b := s.State(), o.State()
	if a.HasBest != b.HasBest {
		return a.HasBest
	}
	if a.HasBest {
		return s.p.IsOptimization() && a.BestObjective < b.BestObjective
	}

	return s.bestViolation() < o.bestViolation()
}

func (s *Solver[T]) bestViolation() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.st.bestViolation
}
