// Package distrib builds discrete probability distributions and pairwise
// cost matrices for optimal-transport experiments.
//
// 🚀 What is distrib?
//
//	The plumbing around a transport problem: the two marginal histograms
//	and the cost matrix between their supports. Every solver in otkit
//	consumes exactly these three objects, and this package produces them:
//	  • Gauss1D  — a Gaussian-shaped histogram over integer bins 0..n-1
//	  • Uniform  — the uniform histogram
//	  • Bins     — the support points 0..n-1 as float64
//	  • SquaredDistance — the (xᵢ-yⱼ)² cost matrix between two supports
//	  • Normalize — rescale a cost matrix so its largest entry is 1
//
// ⚙️ Usage:
//
//	a, _ := distrib.Gauss1D(100, 20, 5)  // source: mean 20, spread 5
//	b, _ := distrib.Gauss1D(100, 60, 10) // target: mean 60, spread 10
//	x := distrib.Bins(100)
//	M, _ := distrib.SquaredDistance(x, x)
//	distrib.Normalize(M)
//
// Errors (sentinel):
//
//	– ErrBadSupport  if a requested histogram length is not positive.
//	– ErrBadSpread   if a Gaussian spread is not positive.
//	– ErrDegenerate  if a histogram underflows to zero total mass
//	  (mean placed far outside the support).
//	– ErrEmptySupport if a support slice for SquaredDistance is empty.
//
// Performance:
//
//   - Time:   O(n) per histogram, O(n·m) per cost matrix
//   - Memory: O(n) / O(n·m) respectively
package distrib
