// SPDX-License-Identifier: MIT
//
// File: search.go
// Role: One local-search iteration: score every (variable, other value)
//       pair, pick the best with a uniform tie-break, apply it and update
//       the caches incrementally. Also the initial draw, restarts and Verify.
// Determinism:
//   - Scores are written into per-variable slots and merged in variable
//     order, so the pick depends only on the seed, not on Workers.
// Complexity (one iteration):
//   - Scoring: Σ_x (|D_x|−1)·Σ_{f∋x} cost(f); apply: Σ_{f∋x} cost(f).

package solver

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/katalvlaran/cbls/constraint"
	"github.com/katalvlaran/cbls/domain"
	"github.com/katalvlaran/cbls/model"
)

// driftTolerance is the relative error per summed term that Verify accepts
// between an incrementally maintained aggregate and a fresh sum.
const driftTolerance = 1e-12

// score is the outcome of one hypothetical move.
type score struct {
	violation float64
	objective float64
	unsat     int
	valid     bool
}

// prepare specializes if needed, sizes the scratch space, draws the initial
// assignment and evaluates every function once. Idempotent. Caller holds mu.
func (s *Solver[T]) prepare() error {
	if s.st != nil {
		return nil
	}
	if err := s.specialize(); err != nil {
		return err
	}

	p := s.p
	n := p.NumVariables()
	s.domVals = make([][]T, n)
	s.movable = s.movable[:0]
	var (
		x, i int
		cost int
	)
	for x = 0; x < n; x++ {
		s.domVals[x] = p.Domain(x).Values()
		if len(s.domVals[x]) > 1 {
			s.movable = append(s.movable, x)
			cost += (len(s.domVals[x]) - 1) * (len(p.ConstraintsOf(x)) + len(p.ObjectivesOf(x)))
		}
	}
	s.perIter = cost
	s.scores = make([][]score, len(s.movable))
	s.evalErrs = make([]error, len(s.movable))
	for i, x = range s.movable {
		s.scores[i] = make([]score, len(s.domVals[x]))
	}
	for i = 0; i < p.NumConstraints(); i++ {
		s.maxArity = max(s.maxArity, p.Constraint(i).Arity())
	}
	for i = 0; i < p.NumObjectives(); i++ {
		s.maxArity = max(s.maxArity, p.Objective(i).Arity())
	}
	s.buf = make([]T, s.maxArity)

	for x = range s.initial {
		if x < 0 || x >= n {
			return &model.UnknownVariableError{Where: "initial values", ID: x}
		}
	}
	st := newState[T](n, p.NumConstraints(), p.NumObjectives())
	for x = 0; x < n; x++ {
		v, ok := s.initial[x]
		switch {
		case ok:
			k, found := p.Domain(x).Index(v)
			if !found {
				return fmt.Errorf("%w: variable %d = %v, domain %s", ErrValueNotInDomain, x, v, p.Domain(x))
			}
			st.index[x] = k
		case len(s.domVals[x]) > 1:
			st.index[x] = s.rng.Intn(len(s.domVals[x]))
		}
		st.values[x] = s.domVals[x][st.index[x]]
	}
	s.st = st

	if err := s.evaluateAll(); err != nil {
		s.err = err
		s.status = Stopped
		return err
	}
	st.bestViolation = st.violation
	if st.unsat == 0 {
		st.record()
	}

	return nil
}

// evaluateAll refreshes every cache from scratch.
func (s *Solver[T]) evaluateAll() error {
	st := s.st
	var (
		i   int
		v   float64
		err error
	)
	for i = range st.cv {
		if v, err = s.evalConstraint(i, -1, 0, s.buf); err != nil {
			return err
		}
		st.cv[i] = v
	}
	for i = range st.ov {
		if v, err = s.evalObjective(i, -1, 0, s.buf); err != nil {
			return err
		}
		st.ov[i] = v
	}
	st.resync()

	return nil
}

// iterate performs one iteration: a restart when the search stagnated,
// otherwise the best move. Caller holds mu.
func (s *Solver[T]) iterate() (moved int, restarted bool, err error) {
	st := s.st
	if s.opts.RestartAfter > 0 && st.stale >= s.opts.RestartAfter && len(s.movable) > 0 {
		if err = s.restart(); err != nil {
			return -1, true, err
		}
		st.iteration++
		s.settle(true)

		return -1, true, nil
	}

	moved = -1
	if err = s.score(); err != nil {
		return -1, false, err
	}
	if j, k, ok := s.pick(); ok {
		moved = s.movable[j]
		if err = s.apply(moved, k); err != nil {
			return moved, false, err
		}
	}
	st.iteration++
	s.settle(false)

	return moved, false, nil
}

// score fills s.scores for every movable variable, on the pool when one is
// running. Evaluation is never interrupted midway.
func (s *Solver[T]) score() error {
	var j int
	if s.pool == nil {
		for j = range s.movable {
			if err := s.scoreVariable(j, s.buf); err != nil {
				return err
			}
		}

		return nil
	}

	_ = s.pool.ForEach(context.Background(), len(s.movable), func(j int) {
		s.evalErrs[j] = s.scoreVariable(j, make([]T, s.maxArity))
	})
	var err error
	for j, err = range s.evalErrs {
		if err != nil {
			return err
		}
	}

	return nil
}

// scoreVariable scores moving movable[j] to each of its other values. It
// only reads shared state and writes s.scores[j].
func (s *Solver[T]) scoreVariable(j int, buf []T) error {
	var (
		st   = s.st
		x    = s.movable[j]
		cur  = st.index[x]
		row  = s.scores[j]
		cons = s.p.ConstraintsOf(x)
		objs = s.p.ObjectivesOf(x)
	)
	var (
		k, c     int
		v        T
		nv, old  float64
		dv, dobj float64
		du       int
		err      error
	)
	for k, v = range s.domVals[x] {
		if k == cur {
			row[k].valid = false
			continue
		}
		dv, dobj, du = 0, 0, 0
		for _, c = range cons {
			if nv, err = s.evalConstraint(c, x, v, buf); err != nil {
				return err
			}
			old = st.cv[c]
			dv += nv - old
			if old == 0 && nv > 0 {
				du++
			} else if old > 0 && nv == 0 {
				du--
			}
		}
		for _, c = range objs {
			if nv, err = s.evalObjective(c, x, v, buf); err != nil {
				return err
			}
			dobj += nv - st.ov[c]
		}
		row[k] = score{
			violation: st.violation + dv,
			objective: st.objective + dobj,
			unsat:     st.unsat + du,
			valid:     true,
		}
	}

	return nil
}

// pick returns the best admissible (variable slot, value index), breaking
// ties uniformly at random. A tabu variable is admissible only when its move
// beats the best violation seen (aspiration); if that leaves nothing, the
// tabu list is ignored for this iteration.
func (s *Solver[T]) pick() (slot, index int, ok bool) {
	filter := s.admissible
	best, found := s.bestScore(filter)
	if !found && s.opts.TabuTenure > 0 {
		filter = validScore
		best, found = s.bestScore(filter)
	}
	if !found {
		return 0, 0, false
	}

	var (
		r    reservoir
		j, k int
		sc   score
	)
	for j = range s.scores {
		for k, sc = range s.scores[j] {
			if !filter(j, sc) || s.better(best, sc) {
				continue
			}
			if r.offer(s.rng) {
				slot, index = j, k
			}
		}
	}

	return slot, index, true
}

// bestScore returns the minimum over the scores accepted by filter.
func (s *Solver[T]) bestScore(filter func(int, score) bool) (best score, found bool) {
	var (
		j  int
		sc score
	)
	for j = range s.scores {
		for _, sc = range s.scores[j] {
			if filter(j, sc) && (!found || s.better(sc, best)) {
				best, found = sc, true
			}
		}
	}

	return best, found
}

func (s *Solver[T]) admissible(j int, sc score) bool {
	if !sc.valid {
		return false
	}
	if s.opts.TabuTenure == 0 || s.st.tabu[s.movable[j]] <= s.st.iteration {
		return true
	}

	return sc.violation < s.st.bestViolation-s.opts.Eps
}

func validScore(_ int, sc score) bool { return sc.valid }

// better orders scores by violation, then, in optimization mode, by
// objective; differences within Eps tie.
func (s *Solver[T]) better(a, b score) bool {
	eps := s.opts.Eps
	if a.violation < b.violation-eps {
		return true
	}
	if a.violation > b.violation+eps || s.p.IsSatisfaction() {
		return false
	}

	return a.objective < b.objective-eps
}

// apply moves x to value index k and refreshes the caches of the factors
// reading x. Caller holds mu.
func (s *Solver[T]) apply(x, k int) error {
	st := s.st
	v := s.domVals[x][k]
	st.index[x] = k
	st.values[x] = v

	var (
		c       int
		nv, old float64
		err     error
	)
	for _, c = range s.p.ConstraintsOf(x) {
		if nv, err = s.evalConstraint(c, -1, v, s.buf); err != nil {
			return err
		}
		old = st.cv[c]
		if old == 0 && nv > 0 {
			st.unsat++
		} else if old > 0 && nv == 0 {
			st.unsat--
		}
		st.violation += nv - old
		st.cv[c] = nv
	}
	for _, c = range s.p.ObjectivesOf(x) {
		if nv, err = s.evalObjective(c, -1, v, s.buf); err != nil {
			return err
		}
		st.objective += nv - st.ov[c]
		st.ov[c] = nv
	}
	if s.opts.TabuTenure > 0 {
		st.tabu[x] = st.iteration + 1 + s.opts.TabuTenure
	}

	return nil
}

// restart redraws every movable variable and re-evaluates everything.
func (s *Solver[T]) restart() error {
	st := s.st
	var x int
	for _, x = range s.movable {
		st.index[x] = s.rng.Intn(len(s.domVals[x]))
		st.values[x] = s.domVals[x][st.index[x]]
	}
	clear(st.tabu)
	st.restarts++
	restartsTotal.Inc()
	s.log.Debug("restart", slog.Int("iteration", st.iteration), slog.Int("stale", st.stale))

	return s.evaluateAll()
}

// settle runs after every iteration: periodic resync, best-state bookkeeping
// and the stagnation counter.
func (s *Solver[T]) settle(restarted bool) {
	st := s.st
	if st.unsat == 0 || s.opts.ResyncEvery > 0 && st.iteration%s.opts.ResyncEvery == 0 {
		st.resync()
	}

	improved := false
	if st.violation < st.bestViolation-s.opts.Eps {
		st.bestViolation = st.violation
		improved = true
	}
	if st.unsat == 0 {
		switch {
		case !st.hasBest:
			st.record()
			improved = true
		case s.p.IsOptimization() && st.objective < st.bestObjective:
			st.record()
			improved = true
		}
	}
	if improved || restarted {
		st.stale = 0
	} else {
		st.stale++
	}
}

// evaluator is satisfied by *constraint.Constraint[T] and
// *constraint.Objective[T].
type evaluator[T domain.Number] interface {
	Eval(values []T) float64
}

// evalConstraint evaluates constraint c on the current values, with
// variable x (if ≥ 0) replaced by v.
func (s *Solver[T]) evalConstraint(c, x int, v T, buf []T) (float64, error) {
	return s.guard(constraint.RoleConstraint, c, s.p.ConstraintScope(c), s.p.Constraint(c), x, v, buf)
}

// evalObjective is evalConstraint for objectives.
func (s *Solver[T]) evalObjective(o, x int, v T, buf []T) (float64, error) {
	return s.guard(constraint.RoleObjective, o, s.p.ObjectiveScope(o), s.p.Objective(o), x, v, buf)
}

// guard gathers the scope's values into buf, calls f and turns a panic or
// a malformed result into an *EvaluationError.
func (s *Solver[T]) guard(role constraint.Role, id int, scope []int, f evaluator[T], x int, v T, buf []T) (res float64, err error) {
	vals := buf[:len(scope)]
	var k, y int
	for k, y = range scope {
		if y == x {
			vals[k] = v
		} else {
			vals[k] = s.st.values[y]
		}
	}

	defer func() {
		if r := recover(); r != nil {
			res, err = 0, &EvaluationError{Role: role, ID: id, Scope: slices.Clone(scope), Reason: fmt.Sprintf("function panicked: %v", r)}
		}
	}()
	res = f.Eval(vals)
	if reason := constraint.Check(role, res); reason != "" {
		return 0, &EvaluationError{Role: role, ID: id, Scope: slices.Clone(scope), Reason: reason}
	}

	return res, nil
}

// Verify re-evaluates every constraint and objective on the current
// assignment and compares the results with the caches.
//
// Errors: ErrInconsistentState (wrapped with the first mismatch),
// *EvaluationError.
func (s *Solver[T]) Verify() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.st == nil {
		return nil
	}
	st := s.st
	var (
		i         int
		v, sum    float64
		osum      float64
		unsat     int
		err       error
		tolerance = driftTolerance * float64(1+len(st.cv)+len(st.ov))
	)
	for i = range st.cv {
		if v, err = s.evalConstraint(i, -1, 0, s.buf); err != nil {
			return err
		}
		if v != st.cv[i] {
			return fmt.Errorf("%w: constraint %d cached %v, evaluates to %v", ErrInconsistentState, i, st.cv[i], v)
		}
		sum += v
		if v > 0 {
			unsat++
		}
	}
	if unsat != st.unsat {
		return fmt.Errorf("%w: %d unsatisfied, counted %d", ErrInconsistentState, unsat, st.unsat)
	}
	if math.Abs(sum-st.violation) > tolerance*(1+math.Abs(sum)) {
		return fmt.Errorf("%w: violation %v, sum of caches %v", ErrInconsistentState, st.violation, sum)
	}
	for i = range st.ov {
		if v, err = s.evalObjective(i, -1, 0, s.buf); err != nil {
			return err
		}
		if v != st.ov[i] {
			return fmt.Errorf("%w: objective %d cached %v, evaluates to %v", ErrInconsistentState, i, st.ov[i], v)
		}
		osum += v
	}
	if math.Abs(osum-st.objective) > tolerance*(1+math.Abs(osum)) {
		return fmt.Errorf("%w: objective %v, sum of caches %v", ErrInconsistentState, st.objective, osum)
	}

	return nil
}
