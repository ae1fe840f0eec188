// Package emd solves the exact discrete optimal-transport problem, i.e.
// the classical transportation problem, whose optimum is the earth-mover
// distance between two histograms.
//
// 🚀 What is EMD?
//
//	Given a source histogram a (length n), a target histogram b (length m)
//	with the same total mass, and an n×m cost matrix M, EMD finds the
//	transport plan G minimizing
//
//	    Σᵢⱼ G(i,j)·M(i,j)
//
//	subject to the transport-polytope constraints
//
//	    G ≥ 0,   Σⱼ G(i,j) = a(i),   Σᵢ G(i,j) = b(j).
//
//	This is a linear program with a network structure, so it is solved by
//	the transportation simplex (the network form of the simplex method).
//
// Algorithm Outline:
//  1. Validate inputs: matching dimensions, finite entries, non-negative
//     marginals, and equal total mass within Options.MassTol.
//  2. Build an initial basic feasible solution with the northwest-corner
//     rule, keeping exactly n+m-1 basic cells (degenerate cells carry
//     zero mass but stay in the basis so it remains a spanning tree).
//  3. Repeat until optimal or Options.MaxIter pivots:
//     a. Solve for the dual potentials u, v by propagating
//     M(i,j) = u(i)+v(j) over the basis tree.
//     b. Scan non-basic cells for the most negative reduced cost
//     M(i,j)-u(i)-v(j); if none is below -Options.Epsilon, stop: optimal.
//     c. Adding the entering cell to the basis tree closes a unique cycle;
//     alternate +/- signs around it, shift the largest feasible mass θ,
//     and drop the first minus-cell that reaches zero (deterministic
//     tie-break, so identical inputs always pivot identically).
//  4. Assemble the plan matrix from the final basis.
//
// Complexity:
//
//	– Time:  O(n·m) per pivot (dual solve, pricing scan, cycle walk);
//	  the number of pivots is finite and small in practice.
//	– Space: O(n·m) for the plan, O(n+m) for the basis tree.
//
// Errors (sentinel):
//
//	– ErrInfeasibleInput if dimensions disagree, a marginal is negative,
//	  an input is NaN/Inf, or total masses differ beyond MassTol.
//	– ErrNotConverged if the pivot cap is reached first; the returned plan
//	  is still feasible (it satisfies the polytope constraints), just not
//	  proven optimal.
//
// ⚙️ Usage:
//
//	a := []float64{0.5, 0.5}
//	b := []float64{0.5, 0.5}
//	M := mat.NewDense(2, 2, []float64{0, 1, 1, 0})
//	G, err := emd.EMD(a, b, M, nil) // nil options ⇒ DefaultOptions()
//
// Costs may be negative: the solvers in otkit/optim call EMD with
// linearized gradients as cost matrices, and those have no sign
// restriction. Only NaN and ±Inf costs are rejected.
//
// See example_test.go for worked examples.
package emd
