// Package optim: the Conditional Gradient (Frank–Wolfe) solver.
//
// Each iteration linearizes the regularized objective at the current plan,
// asks the exact OT oracle for the polytope vertex minimizing that
// linearization, and line-searches along the segment toward it. Every
// iterate is a convex combination of feasible plans, so polytope
// membership is maintained by construction and never re-projected.
package optim

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/otkit/emd"
	"gonum.org/v1/gonum/mat"
)

// CG minimizes ⟨G,M⟩ + reg·f(G) over the transport polytope of (a, b)
// by the conditional-gradient method, where f is the supplied Term.
//
// A nil opts means DefaultOptions(). With reg = 0 the problem is the plain
// linear program and the solver reduces to a single oracle call, matching
// emd.EMD. The returned Trace records the objective after every accepted
// step.
//
// Returns:
//
//   - the converged plan on success;
//   - the best plan found together with ErrNotConverged when the iteration
//     cap is hit or the line search stalls away from stationarity; the
//     plan is always feasible and usable;
//   - nil plan only on validation failure (ErrInfeasibleInput, ErrNilTerm).
func CG(a, b []float64, M *mat.Dense, reg float64, term Term, opts *Options) (*mat.Dense, *Trace, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	o.normalize()

	if err := validate(a, b, M); err != nil {
		return nil, nil, err
	}
	if reg < 0 {
		return nil, nil, fmt.Errorf("%w: negative regularization weight %g", ErrInfeasibleInput, reg)
	}
	if reg > 0 && term == nil {
		return nil, nil, ErrNilTerm
	}

	objective := func(G *mat.Dense) float64 {
		v := frobDot(G, M)
		if reg > 0 {
			v += reg * term.Value(G)
		}

		return v
	}

	return cgLoop(a, b, M, o, objective, func(G, grad *mat.Dense) (*mat.Dense, error) {
		// Linearization: grad = M + reg·∇f(G); the oracle is exact OT on
		// the gradient used as a cost matrix.
		if reg > 0 {
			term.Gradient(G, grad)
			grad.Scale(reg, grad)
			grad.Add(grad, M)
		} else {
			grad.Copy(M)
		}
		emdOpts := emd.DefaultOptions()
		Gc, err := emd.EMD(a, b, grad, &emdOpts)
		if err != nil && !errors.Is(err, emd.ErrNotConverged) {
			// ErrNotConverged still yields a feasible vertex, usable as a
			// direction; anything else is fatal.
			return nil, fmt.Errorf("optim: linear oracle: %w", err)
		}

		return Gc, nil
	}, func(G, D *mat.Dense) (float64, bool) {
		// Closed-form step for quadratic terms; signal fallback otherwise.
		qt, ok := term.(QuadraticTerm)
		if reg == 0 {
			return 1, true // pure linear objective: the vertex is optimal
		}
		if !ok {
			return 0, false
		}
		lb, lc := qt.LineCoeffs(G, D)
		linear := frobDot(M, D) + reg*lb
		curv := reg * lc
		if curv <= 0 {
			if linear < 0 {
				return 1, true
			}

			return 0, true
		}

		return clamp01(-linear / (2 * curv)), true
	}, "cg")
}

// cgLoop is the outer conditional-gradient iteration shared by CG and GCG:
// oracle direction, line search, update, convergence bookkeeping.
//
// oracle computes the candidate plan for the current iterate (writing the
// linearized gradient into its scratch argument); exactStep returns a
// closed-form step size when one exists.
func cgLoop(
	a, b []float64,
	M *mat.Dense,
	o Options,
	objective func(*mat.Dense) float64,
	oracle func(G, grad *mat.Dense) (*mat.Dense, error),
	exactStep func(G, D *mat.Dense) (float64, bool),
	name string,
) (*mat.Dense, *Trace, error) {
	n, m := len(a), len(b)
	G := outerProduct(a, b)
	fval := objective(G)
	trace := &Trace{Objective: []float64{fval}}

	grad := mat.NewDense(n, m, nil)
	D := mat.NewDense(n, m, nil)
	trial := mat.NewDense(n, m, nil)

	for it := 1; it <= o.MaxIter; it++ {
		Gc, err := oracle(G, grad)
		if err != nil {
			return G, trace, err
		}
		D.Sub(Gc, G)

		// Frank–Wolfe gap ⟨grad, G-Gc⟩; ≈0 means stationary. For CG the
		// oracle minimizes ⟨grad,·⟩ exactly, so this is the true duality
		// gap and non-negative. For GCG grad omits the entropic part
		// (handled inside the oracle), so the value is a heuristic
		// stationarity signal that can dip below zero away from the
		// fixed point.
		gap := -frobDot(grad, D)

		t, haveExact := exactStep(G, D)
		if !haveExact {
			t, _ = goldenSection(func(s float64) float64 {
				addScaled(trial, G, D, s)

				return objective(trial)
			}, o.LineSearchIters)
		}

		addScaled(trial, G, D, t)
		fnew := objective(trial)
		// A rounding-level increase can slip through either step rule;
		// halve toward the current iterate until the step decreases.
		for k := 0; k < 8 && t > 0 && fnew > fval; k++ {
			t /= 2
			addScaled(trial, G, D, t)
			fnew = objective(trial)
		}

		if t == 0 || fnew >= fval {
			// No decreasing step along this direction. At a stationary
			// point that IS convergence; otherwise report the stall but
			// keep the best plan.
			if gap <= o.TolObjective*(1+math.Abs(fval)) {
				trace.Converged = true

				return G, trace, nil
			}

			return G, trace, fmt.Errorf("optim: %s line search stalled: %w", name, ErrNotConverged)
		}

		relPlan := relChange(t*mat.Norm(D, 2), mat.Norm(trial, 2))
		relObj := relChange(fval-fnew, fnew)
		G.Copy(trial)
		fval = fnew
		trace.Objective = append(trace.Objective, fval)
		trace.Iterations = it

		if o.Verbose {
			fmt.Printf("optim: %s it %3d, objective %.9g, t %.4g, rel Δobj %.3e, rel Δplan %.3e\n",
				name, it, fval, t, relObj, relPlan)
		}

		if relObj < o.TolObjective && relPlan < o.TolPlan {
			trace.Converged = true

			return G, trace, nil
		}
	}

	return G, trace, ErrNotConverged
}
