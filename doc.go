// Package otkit is your in-memory toolbox for computing discrete
// optimal-transport plans: from the exact linear program to entropic and
// generically regularized couplings.
//
// 🚀 What is otkit?
//
//	A small, focused library that brings together:
//		• Exact OT: the classical transportation problem (earth-mover distance),
//		  solved by the transportation simplex
//		• Entropic OT: log-domain stabilized Sinkhorn matrix scaling
//		• Regularized OT: Conditional Gradient (Frank–Wolfe) and Generalized
//		  Conditional Gradient solvers over pluggable regularization terms
//		• Helpers: 1-D Gaussian histograms and pairwise-distance cost matrices
//		  for quick experiments
//
// ✨ Why choose otkit?
//
//   - Beginner-friendly – minimal API, clear, intuitive naming
//   - Deterministic – identical inputs produce identical plans
//   - Transparent – the regularized solvers return an iteration trace alongside the plan
//   - Extensible – plug in your own regularization via the optim.Term interface
//
// Under the hood, everything is organized under four subpackages:
//
//	emd/      — exact optimal transport (the linear-program oracle)
//	sinkhorn/ — entropic-regularized optimal transport via matrix scaling
//	optim/    — CG and GCG solvers for cost + regularization objectives
//	distrib/  — discrete distributions and cost-matrix construction
//
// Quick sketch of the objects involved:
//
//	    a (len n)          b (len m)
//	      │                   │
//	      └──► G (n×m plan) ◄─┘      rows(G) = a, cols(G) = b, G ≥ 0
//	              ▲
//	        M (n×m cost)
//
// Dive into the per-package doc.go files for algorithms, complexity notes
// and worked examples.
//
//	go get github.com/katalvlaran/otkit
package otkit
