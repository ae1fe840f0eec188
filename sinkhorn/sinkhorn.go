// Package sinkhorn implements log-domain stabilized Sinkhorn matrix
// scaling for entropic-regularized optimal transport.
//
// The iteration state is the pair of log-domain potentials (f, g); the
// plan is materialized as exp(f(i) + L(i,j) + g(j)) only when convergence
// is checked and on return. -Inf potentials are legal (they encode
// zero-mass bins); NaN and +Inf are divergence.
package sinkhorn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Sinkhorn solves entropic-regularized optimal transport for marginals a
// (length n) and b (length m) under the n×m cost matrix M with entropic
// weight reg > 0, returning the (strictly positive, for positive
// marginals) optimal plan.
//
// A nil opts means DefaultOptions().
//
// Returns:
//
//   - the converged plan on success;
//   - the current iterate together with ErrNotConverged when the sweep cap
//     is reached first;
//   - the last finite iterate together with ErrDiverged when an update
//     produced non-finite potentials (nil plan only if no finite iterate
//     was ever completed);
//   - nil and ErrInfeasibleInput (wrapped with context) on malformed input.
func Sinkhorn(a, b []float64, M *mat.Dense, reg float64, opts *Options) (*mat.Dense, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	o.normalize()

	n, m := len(a), len(b)
	if err := validate(a, b, M, reg, o.MassTol); err != nil {
		return nil, err
	}
	if floats.Sum(a) == 0 || floats.Sum(b) == 0 {
		// Zero total mass on both sides (mass balance already checked).
		return mat.NewDense(n, m, nil), nil
	}

	// Kernel exponents L = -M/reg and log-marginals. log 0 = -Inf is the
	// intended encoding for zero-mass bins.
	L := mat.NewDense(n, m, nil)
	L.Scale(-1/reg, M)
	loga := make([]float64, n)
	for i, x := range a {
		loga[i] = math.Log(x)
	}
	logb := make([]float64, m)
	for j, x := range b {
		logb[j] = math.Log(x)
	}

	f := make([]float64, n)
	g := make([]float64, m)
	lastF := make([]float64, n)
	lastG := make([]float64, m)
	haveFinite := false

	colBuf := make([]float64, n)
	rowBuf := make([]float64, m)

	var plan *mat.Dense
	for it := 1; it <= o.MaxIter; it++ {
		// Column sweep: match the target marginal.
		for j := 0; j < m; j++ {
			for i := 0; i < n; i++ {
				colBuf[i] = L.At(i, j) + f[i]
			}
			g[j] = logb[j] - floats.LogSumExp(colBuf)
		}
		// Row sweep: match the source marginal.
		for i := 0; i < n; i++ {
			floats.AddTo(rowBuf, L.RawRowView(i), g)
			f[i] = loga[i] - floats.LogSumExp(rowBuf)
		}

		if !potentialsFinite(f) || !potentialsFinite(g) {
			if !haveFinite {
				return nil, fmt.Errorf("sinkhorn: diverged on the first sweep: %w", ErrDiverged)
			}
			plan = buildPlan(lastF, lastG, L)

			return plan, ErrDiverged
		}
		copy(lastF, f)
		copy(lastG, g)
		haveFinite = true

		if it%o.CheckEvery == 0 || it == o.MaxIter {
			plan = buildPlan(f, g, L)
			viol := marginalViolation(plan, a, b)
			if o.Verbose {
				fmt.Printf("sinkhorn: sweep %d, marginal violation %.3e\n", it, viol)
			}
			if viol < o.Tol {
				return plan, nil
			}
		}
	}

	return plan, ErrNotConverged
}

// validate checks dimensions, finiteness, marginal signs, mass balance and
// the regularization weight. All failures wrap ErrInfeasibleInput.
func validate(a, b []float64, M *mat.Dense, reg, massTol float64) error {
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
	if reg <= 0 || math.IsNaN(reg) || math.IsInf(reg, 0) {
		return fmt.Errorf("%w: entropic weight must be positive, got %g", ErrInfeasibleInput, reg)
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

// potentialsFinite reports whether every potential is either finite or
// -Inf. NaN and +Inf mean the scaling ran away.
func potentialsFinite(p []float64) bool {
	for _, x := range p {
		if math.IsNaN(x) || math.IsInf(x, 1) {
			return false
		}
	}

	return true
}

// buildPlan materializes G(i,j) = exp(f(i) + L(i,j) + g(j)).
func buildPlan(f, g []float64, L *mat.Dense) *mat.Dense {
	n, m := L.Dims()
	G := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		src := L.RawRowView(i)
		dst := G.RawRowView(i)
		for j := 0; j < m; j++ {
			dst[j] = math.Exp(f[i] + src[j] + g[j])
		}
	}

	return G
}

// marginalViolation returns the L1 distance between the plan's row/column
// sums and the prescribed marginals.
func marginalViolation(G *mat.Dense, a, b []float64) float64 {
	n, m := G.Dims()
	viol := 0.0
	colSums := make([]float64, m)
	for i := 0; i < n; i++ {
		row := G.RawRowView(i)
		viol += math.Abs(floats.Sum(row) - a[i])
		floats.Add(colSums, row)
	}
	for j := 0; j < m; j++ {
		viol += math.Abs(colSums[j] - b[j])
	}

	return viol
}
