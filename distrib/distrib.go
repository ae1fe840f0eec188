package distrib

import (
	"errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sentinel errors returned by distribution and cost-matrix constructors.
var (
	// ErrBadSupport indicates a non-positive histogram length was requested.
	ErrBadSupport = errors.New("distrib: support size must be positive")

	// ErrBadSpread indicates a non-positive Gaussian spread was requested.
	ErrBadSpread = errors.New("distrib: spread must be positive")

	// ErrDegenerate indicates the requested histogram has zero total mass,
	// typically because the mean lies far outside the support and every bin
	// underflowed to zero.
	ErrDegenerate = errors.New("distrib: histogram has zero total mass")

	// ErrEmptySupport indicates an empty support slice was passed to
	// SquaredDistance.
	ErrEmptySupport = errors.New("distrib: support points must be non-empty")
)

// Gauss1D returns a Gaussian-shaped probability histogram of length n over
// the integer bins 0..n-1: bin i carries the normal density at i for the
// given mean and spread, renormalized to sum to 1.
//
// Errors: ErrBadSupport (n ≤ 0), ErrBadSpread (std ≤ 0), ErrDegenerate
// (all bins underflowed to zero).
func Gauss1D(n int, mean, std float64) ([]float64, error) {
	if n <= 0 {
		return nil, ErrBadSupport
	}
	if std <= 0 {
		return nil, ErrBadSpread
	}

	norm := distuv.Normal{Mu: mean, Sigma: std}
	h := make([]float64, n)
	for i := range h {
		h[i] = norm.Prob(float64(i))
	}

	total := floats.Sum(h)
	if total == 0 {
		return nil, ErrDegenerate
	}
	floats.Scale(1/total, h)

	return h, nil
}

// Uniform returns the uniform probability histogram of length n
// (every bin carries mass 1/n).
//
// Errors: ErrBadSupport (n ≤ 0).
func Uniform(n int) ([]float64, error) {
	if n <= 0 {
		return nil, ErrBadSupport
	}

	h := make([]float64, n)
	for i := range h {
		h[i] = 1 / float64(n)
	}

	return h, nil
}

// Bins returns the support points 0, 1, ..., n-1 as float64 values,
// the natural x-axis for histograms produced by Gauss1D and Uniform.
// A non-positive n yields an empty slice.
func Bins(n int) []float64 {
	if n <= 0 {
		return nil
	}

	x := make([]float64, n)
	if n > 1 {
		floats.Span(x, 0, float64(n-1))
	}

	return x
}

// SquaredDistance returns the len(x)×len(y) cost matrix M with
// M(i,j) = (x[i] - y[j])².
//
// Errors: ErrEmptySupport if either support is empty.
func SquaredDistance(x, y []float64) (*mat.Dense, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, ErrEmptySupport
	}

	M := mat.NewDense(len(x), len(y), nil)
	for i, xi := range x {
		row := M.RawRowView(i)
		for j, yj := range y {
			d := xi - yj
			row[j] = d * d
		}
	}

	return M, nil
}

// Normalize rescales M in place so that its largest entry equals 1 and
// returns M for chaining. A zero or empty matrix is left unchanged.
func Normalize(M *mat.Dense) *mat.Dense {
	if M == nil {
		return nil
	}

	r, _ := M.Dims()
	maxVal := 0.0
	for i := 0; i < r; i++ {
		if rowMax := floats.Max(M.RawRowView(i)); rowMax > maxVal {
			maxVal = rowMax
		}
	}
	if maxVal > 0 {
		M.Scale(1/maxVal, M)
	}

	return M
}
