// Package emd implements the transportation simplex for exact discrete
// optimal transport.
//
// The solver maintains a basic feasible solution: a set of exactly n+m-1
// cells of the plan (the "basis") forming a spanning tree on the bipartite
// graph of rows and columns. Each pivot prices the non-basic cells against
// the dual potentials, pushes mass around the unique cycle closed by the
// entering cell, and drops the blocking basic cell. Feasibility is
// preserved at every pivot, so even an early stop returns a valid plan.
package emd

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// basicCell is one basis entry: plan coordinates plus the mass it carries.
type basicCell struct {
	i, j int
	mass float64
}

// EMD solves the exact optimal-transport problem for marginals a (length n)
// and b (length m) under the n×m cost matrix M, returning the optimal
// transport plan.
//
// A nil opts means DefaultOptions(). Cost entries may be negative; NaN and
// ±Inf are rejected.
//
// Returns:
//
//   - the optimal plan on success;
//   - a feasible but possibly suboptimal plan together with
//     ErrNotConverged when the pivot cap is reached;
//   - nil and ErrInfeasibleInput (wrapped with context) on malformed input.
func EMD(a, b []float64, M *mat.Dense, opts *Options) (*mat.Dense, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	o.normalize()

	n, m := len(a), len(b)
	if err := validate(a, b, M, o.MassTol); err != nil {
		return nil, err
	}

	sa, sb := floats.Sum(a), floats.Sum(b)
	if sa == 0 || sb == 0 {
		// Zero total mass (the mass-balance check already passed, so both
		// sides are ≈ 0): the only feasible plan is the zero plan.
		return mat.NewDense(n, m, nil), nil
	}

	// Residual marginals for the northwest-corner phase. The target side is
	// rescaled so both sides carry bit-equal total mass up to rounding.
	ra := append([]float64(nil), a...)
	rb := append([]float64(nil), b...)
	floats.Scale(sa/sb, rb)

	// Phase 1: northwest-corner initial basis, exactly n+m-1 cells.
	// Degenerate cells keep zero mass so the basis stays a spanning tree.
	basics := make([]basicCell, 0, n+m-1)
	inBasis := make([]bool, n*m)
	for i, j := 0, 0; ; {
		q := math.Min(ra[i], rb[j])
		if q < 0 {
			q = 0
		}
		basics = append(basics, basicCell{i: i, j: j, mass: q})
		inBasis[i*m+j] = true
		ra[i] -= q
		rb[j] -= q
		if i == n-1 && j == m-1 {
			break
		}
		if i < n-1 && (ra[i] <= rb[j] || j == m-1) {
			i++
		} else {
			j++
		}
	}

	// Phase 2: simplex pivots.
	u := make([]float64, n)
	v := make([]float64, m)
	var err error
	for it := 0; ; it++ {
		if it >= o.MaxIter {
			err = ErrNotConverged
			break
		}

		solveDuals(basics, M, u, v, n, m)

		// Pricing: most negative reduced cost below -Epsilon enters.
		// Strict < keeps the first (lowest-index) candidate on ties,
		// which makes repeated runs pivot identically.
		best := -o.Epsilon
		ei, ej := -1, -1
		for i := 0; i < n; i++ {
			row := M.RawRowView(i)
			for j := 0; j < m; j++ {
				if inBasis[i*m+j] {
					continue
				}
				if rc := row[j] - u[i] - v[j]; rc < best {
					best = rc
					ei, ej = i, j
				}
			}
		}
		if ei < 0 {
			break // optimal
		}

		if o.Verbose {
			fmt.Printf("emd: pivot %d, entering (%d,%d), reduced cost %.6g\n", it, ei, ej, best)
		}

		pivot(&basics, inBasis, n, m, ei, ej)
	}

	// Assemble the plan from the final basis, clamping the tiny negative
	// residue floating-point subtraction can leave on degenerate cells.
	G := mat.NewDense(n, m, nil)
	for _, c := range basics {
		x := c.mass
		if x < 0 {
			x = 0
		}
		G.Set(c.i, c.j, x)
	}

	return G, err
}

// EMD2 solves the same problem as EMD but returns the optimal transport
// cost Σ G·M instead of the plan. On ErrNotConverged it returns the cost of
// the best feasible plan found; on infeasible input it returns NaN.
func EMD2(a, b []float64, M *mat.Dense, opts *Options) (float64, error) {
	G, err := EMD(a, b, M, opts)
	if G == nil {
		return math.NaN(), err
	}

	n := len(a)
	cost := 0.0
	for i := 0; i < n; i++ {
		cost += floats.Dot(G.RawRowView(i), M.RawRowView(i))
	}

	return cost, err
}

// validate checks dimensions, finiteness, marginal signs and mass balance.
// All failures wrap ErrInfeasibleInput.
func validate(a, b []float64, M *mat.Dense, massTol float64) error {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return fmt.Errorf("%w: empty marginal", ErrInfeasibleInput)
	}
	if M == nil {
		return fmt.Errorf("%w: nil cost matrix", ErrInfeasibleInput)
	}
	if r, c := M.Dims(); r != n || c != m {
		return fmt.Errorf("%w: cost matrix is %dx%d, marginals are %d and %d",
			ErrInfeasibleInput, r, c, n, m)
	}
	for i, x := range a {
		if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: source marginal entry %d is %g", ErrInfeasibleInput, i, x)
		}
	}
	for j, x := range b {
		if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: target marginal entry %d is %g", ErrInfeasibleInput, j, x)
		}
	}
	for i := 0; i < n; i++ {
		for j, x := range M.RawRowView(i) {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return fmt.Errorf("%w: cost entry (%d,%d) is %g", ErrInfeasibleInput, i, j, x)
			}
		}
	}
	if sa, sb := floats.Sum(a), floats.Sum(b); math.Abs(sa-sb) > massTol {
		return fmt.Errorf("%w: total masses differ (%g vs %g)", ErrInfeasibleInput, sa, sb)
	}

	return nil
}

// solveDuals computes potentials u, v with M(i,j) = u(i)+v(j) on every
// basic cell, anchoring u[0] = 0 and propagating over the basis tree.
// Nodes 0..n-1 are rows, n..n+m-1 are columns.
func solveDuals(basics []basicCell, M *mat.Dense, u, v []float64, n, m int) {
	adj := buildAdjacency(basics, n, m)

	seen := make([]bool, n+m)
	queue := make([]int, 0, n+m)
	u[0] = 0
	seen[0] = true
	queue = append(queue, 0)
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, ci := range adj[node] {
			c := basics[ci]
			if node < n {
				if other := n + c.j; !seen[other] {
					v[c.j] = M.At(c.i, c.j) - u[c.i]
					seen[other] = true
					queue = append(queue, other)
				}
			} else {
				if !seen[c.i] {
					u[c.i] = M.At(c.i, c.j) - v[c.j]
					seen[c.i] = true
					queue = append(queue, c.i)
				}
			}
		}
	}
}

// buildAdjacency lists, per tree node, the indices of incident basic cells.
func buildAdjacency(basics []basicCell, n, m int) [][]int {
	adj := make([][]int, n+m)
	for ci, c := range basics {
		adj[c.i] = append(adj[c.i], ci)
		adj[n+c.j] = append(adj[n+c.j], ci)
	}

	return adj
}

// pivot brings cell (ei,ej) into the basis: it finds the unique cycle the
// entering cell closes over the basis tree, shifts the blocking mass θ
// around it with alternating signs, and drops the first minus-cell that
// reaches θ (first along the cycle walk, for determinism).
func pivot(basics *[]basicCell, inBasis []bool, n, m, ei, ej int) {
	cells := *basics
	adj := buildAdjacency(cells, n, m)

	// BFS over the tree from the entering row node to its column node.
	parentNode := make([]int, n+m)
	parentCell := make([]int, n+m)
	for i := range parentNode {
		parentNode[i] = -1
		parentCell[i] = -1
	}
	target := n + ej
	queue := []int{ei}
	visited := make([]bool, n+m)
	visited[ei] = true
	for len(queue) > 0 && !visited[target] {
		node := queue[0]
		queue = queue[1:]
		for _, ci := range adj[node] {
			c := cells[ci]
			other := c.i
			if node < n {
				other = n + c.j
			}
			if !visited[other] {
				visited[other] = true
				parentNode[other] = node
				parentCell[other] = ci
				queue = append(queue, other)
			}
		}
	}

	// Walk back from the column node: path[0] is adjacent to the entering
	// column, so signs alternate -,+,-,... along it (the entering cell
	// itself is the + that starts the cycle).
	var path []int
	for node := target; node != ei; node = parentNode[node] {
		path = append(path, parentCell[node])
	}

	// Blocking step: smallest mass among minus-cells.
	theta := math.Inf(1)
	leaving := -1
	for p := 0; p < len(path); p += 2 {
		if x := cells[path[p]].mass; x < theta {
			theta = x
			leaving = path[p]
		}
	}

	// Shift mass around the cycle.
	for p, ci := range path {
		if p%2 == 0 {
			cells[ci].mass -= theta
		} else {
			cells[ci].mass += theta
		}
	}

	// Swap the leaving cell for the entering one.
	lc := cells[leaving]
	inBasis[lc.i*m+lc.j] = false
	cells[leaving] = basicCell{i: ei, j: ej, mass: theta}
	inBasis[ei*m+ej] = true
	*basics = cells
}
