// Package sinkhorn solves entropic-regularized discrete optimal transport
// by iterative matrix scaling, carried out in the log domain for numerical
// stability.
//
// 🚀 What is entropic OT?
//
//	Adding a negative-entropy penalty to the transport objective,
//
//	    min_G  Σᵢⱼ G(i,j)·M(i,j) + reg·Σᵢⱼ G(i,j)·log G(i,j)
//	    s.t.   G ≥ 0,  rows(G) = a,  cols(G) = b,
//
//	turns the linear program into a strictly convex problem whose solution
//	has the form G = diag(e^f) · K · diag(e^g) with
//	K = e^{-M/reg}. The scaling vectors are found by alternately matching
//	the row and column marginals, the Sinkhorn fixed-point iteration.
//
// Algorithm Outline (log-domain):
//  1. Precompute L(i,j) = -M(i,j)/reg and the log-marginals log a, log b.
//  2. Repeat up to Options.MaxIter times:
//     a. g(j) ← log b(j) − logsumexpᵢ( L(i,j) + f(i) )
//     b. f(i) ← log a(i) − logsumexpⱼ( L(i,j) + g(j) )
//     c. every Options.CheckEvery sweeps, build the plan
//     G(i,j) = exp( f(i) + L(i,j) + g(j) ) and measure the L1 violation
//     of both marginals; stop when it drops below Options.Tol.
//  3. Return the plan.
//
// The logsumexp reductions subtract the running maximum, so even very
// small reg cannot overflow, where the classical u/Kv scaling diverges.
// Zero-mass bins are legal: log 0 = -Inf propagates to an exactly zero
// row or column, never to NaN.
//
// Complexity:
//
//	– Time:  O(n·m) per sweep.
//	– Space: O(n·m) for the kernel exponents, O(n+m) for the potentials.
//
// Errors (sentinel):
//
//	– ErrInfeasibleInput for malformed marginals/cost (as in otkit/emd)
//	  or a non-positive reg.
//	– ErrNotConverged when the sweep cap is reached first; the returned
//	  plan is the current iterate and is usually close to feasible.
//	– ErrDiverged when an update produced non-finite potentials; the plan
//	  built from the last finite iterate is returned alongside it.
//
// ⚙️ Usage:
//
//	G, err := sinkhorn.Sinkhorn(a, b, M, 0.05, nil) // nil ⇒ DefaultOptions()
//
// See example_test.go for a complete run.
package sinkhorn
