package optim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// validate checks the shared (a, b, M) preconditions of both solvers.
// All failures wrap ErrInfeasibleInput.
func validate(a, b []float64, M *mat.Dense) error {
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

	return nil
}

// outerProduct returns the product-marginal plan a·bᵀ/Σb, the canonical
// feasible starting point of both solvers. Works for any common total mass;
// with zero total mass the zero plan is the only feasible point.
func outerProduct(a, b []float64) *mat.Dense {
	G := mat.NewDense(len(a), len(b), nil)
	scale := floats.Sum(b)
	if scale > 0 {
		G.Outer(1/scale, mat.NewVecDense(len(a), a), mat.NewVecDense(len(b), b))
	}

	return G
}

// frobDot returns the Frobenius inner product ⟨A,B⟩ = Σᵢⱼ A(i,j)·B(i,j).
func frobDot(A, B *mat.Dense) float64 {
	n, _ := A.Dims()
	s := 0.0
	for i := 0; i < n; i++ {
		s += floats.Dot(A.RawRowView(i), B.RawRowView(i))
	}

	return s
}

// addScaled writes dst = G + t·D row by row.
func addScaled(dst, G, D *mat.Dense, t float64) {
	n, _ := G.Dims()
	for i := 0; i < n; i++ {
		floats.AddScaledTo(dst.RawRowView(i), G.RawRowView(i), t, D.RawRowView(i))
	}
}

// relChange returns |delta| relative to the magnitude of ref, guarded
// against vanishing references.
func relChange(delta, ref float64) float64 {
	denom := math.Abs(ref)
	if denom < 1e-16 {
		denom = 1e-16
	}

	return math.Abs(delta) / denom
}
