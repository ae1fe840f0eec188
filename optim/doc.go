// Package optim solves regularized optimal-transport problems with
// conditional-gradient methods over pluggable regularization terms.
//
// 🚀 What is regularized OT?
//
//	The exact transport plan (otkit/emd) is sparse and sits on a vertex of
//	the transport polytope. Adding a regularization term
//
//	    min_G  Σᵢⱼ G(i,j)·M(i,j) + reg·f(G)
//	    s.t.   G in the transport polytope of (a, b)
//
//	trades a little transport cost for smoothness, robustness, or
//	structure. The term f is supplied through the Term interface, so any
//	differentiable functional of the plan can be plugged in; Frobenius
//	and Entropy ship with the package.
//
// Solvers:
//
//   - CG — Conditional Gradient (Frank–Wolfe). Each iteration linearizes
//     the objective at the current plan, calls the exact OT oracle
//     (otkit/emd) on the gradient to obtain a feasible vertex, and
//     line-searches toward it. Handles a single smooth term.
//
//   - GCG — Generalized Conditional Gradient. Splits the regularization in
//     two: an entropic part with weight reg1, handled exactly by an inner
//     entropic solve (otkit/sinkhorn) instead of linearization, and a
//     smooth secondary part with weight reg2, linearized as in CG. The
//     candidate plan each iteration is the entropic-OT solution for the
//     partially linearized cost, so iterates stay strictly positive and
//     inherit the entropic smoothing.
//
// Both solvers start from the product-marginal plan a·bᵀ/Σb (always
// feasible), keep every iterate inside the polytope (each update is a
// convex combination of feasible plans), and return an iteration Trace
// recording the objective after every accepted step.
//
// Line search:
//
//	The 1-D problem min_{t∈[0,1]} F(G + t·(Gc-G)) is solved in closed form
//	when the term implements QuadraticTerm (exact step for the Frobenius
//	case), and by derivative-free golden-section search otherwise
//	(Options.LineSearchIters interval reductions).
//
// Errors (sentinel):
//
//	– ErrInfeasibleInput   — malformed marginals/cost or negative weights;
//	  fatal, nothing is computed.
//	– ErrNilTerm           — a positive weight with no term to weigh.
//	– ErrNotConverged      — iteration cap reached, or the line search
//	  stalled away from stationarity; the best plan found is returned
//	  alongside the error, never discarded.
//	– ErrInnerDiverged     — GCG only: the entropic inner solve diverged
//	  and left no usable fallback iterate. (A diverged inner solve WITH a
//	  finite fallback is absorbed: the outer loop keeps going.)
//
// ⚙️ Usage:
//
//	// Frobenius-regularized OT, closed-form line search:
//	G, trace, err := optim.CG(a, b, M, 0.1, optim.Frobenius{}, nil)
//
//	// Entropic CG (the term handled by linearization):
//	G, trace, err = optim.CG(a, b, M, 1e-3, optim.Entropy{}, nil)
//
//	// Entropic + Frobenius via GCG (entropy handled by the inner solve):
//	G, trace, err = optim.GCG(a, b, M, 1e-3, 1e-1, optim.Frobenius{}, nil)
//
// See example_test.go for complete runs and docs for each solver's exact
// convergence criteria.
package optim
