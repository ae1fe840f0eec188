// Package optim: the Generalized Conditional Gradient solver.
//
// GCG splits the regularization: the entropic part is handled exactly by
// an inner Sinkhorn solve (never linearized), the smooth secondary part by
// outer linearization as in CG. The candidate each iteration is therefore
// the entropic-OT plan for the partially linearized cost, not a polytope
// vertex, so iterates inherit the entropic smoothing and stay strictly
// positive for positive marginals.
package optim

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/otkit/sinkhorn"
	"gonum.org/v1/gonum/mat"
)

// GCG minimizes
//
//	⟨G,M⟩ + reg1·Σ G·log G + reg2·f(G)
//
// over the transport polytope of (a, b), handling the entropic term with
// weight reg1 by an inner Sinkhorn solve and the secondary term f with
// weight reg2 by outer linearization.
//
// A nil opts means DefaultOptions(); Options.InnerMaxIter and
// Options.InnerTol configure the inner solve. With reg1 = 0 the entropic
// part vanishes and the call is delegated to CG; with reg2 = 0 the term
// may be nil and the solver converges to the plain entropic-OT plan.
//
// A diverged inner solve that still produced a finite fallback iterate is
// absorbed: the fallback serves as the step direction. Only a divergence
// with no usable iterate escalates as ErrInnerDiverged.
//
// Returns mirror CG: the plan is nil only on validation failure; on
// ErrNotConverged the best feasible plan found accompanies the error.
func GCG(a, b []float64, M *mat.Dense, reg1, reg2 float64, term Term, opts *Options) (*mat.Dense, *Trace, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	o.normalize()

	if err := validate(a, b, M); err != nil {
		return nil, nil, err
	}
	if reg1 < 0 || reg2 < 0 {
		return nil, nil, fmt.Errorf("%w: negative regularization weight (reg1=%g, reg2=%g)",
			ErrInfeasibleInput, reg1, reg2)
	}
	if reg1 == 0 {
		// No entropic part: GCG degenerates to plain CG on the secondary term.
		return CG(a, b, M, reg2, term, opts)
	}
	if reg2 > 0 && term == nil {
		return nil, nil, ErrNilTerm
	}

	entropy := Entropy{}
	objective := func(G *mat.Dense) float64 {
		v := frobDot(G, M) + reg1*entropy.Value(G)
		if reg2 > 0 {
			v += reg2 * term.Value(G)
		}

		return v
	}

	return cgLoop(a, b, M, o, objective, func(G, grad *mat.Dense) (*mat.Dense, error) {
		// Partial linearization: only the secondary term enters the cost;
		// the entropic part is solved exactly by the inner scaling.
		if reg2 > 0 {
			term.Gradient(G, grad)
			grad.Scale(reg2, grad)
			grad.Add(grad, M)
		} else {
			grad.Copy(M)
		}
		sOpts := sinkhorn.DefaultOptions()
		sOpts.MaxIter = o.InnerMaxIter
		sOpts.Tol = o.InnerTol
		Gc, err := sinkhorn.Sinkhorn(a, b, grad, reg1, &sOpts)
		switch {
		case err == nil:
		case errors.Is(err, sinkhorn.ErrNotConverged):
			// The iterate is close to feasible; still a valid direction.
		case errors.Is(err, sinkhorn.ErrDiverged):
			if Gc == nil || !planFinite(Gc) {
				return nil, fmt.Errorf("%w: %v", ErrInnerDiverged, err)
			}
			// Recovered: the last finite inner iterate serves as direction.
		default:
			return nil, fmt.Errorf("optim: inner solver: %w", err)
		}

		return Gc, nil
	}, func(G, D *mat.Dense) (float64, bool) {
		return 0, false // entropy is never quadratic: numeric line search
	}, "gcg")
}

// planFinite reports whether every entry of G is finite.
func planFinite(G *mat.Dense) bool {
	n, _ := G.Dims()
	for i := 0; i < n; i++ {
		for _, x := range G.RawRowView(i) {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return false
			}
		}
	}

	return true
}
