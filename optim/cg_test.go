package optim_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/otkit/distrib"
	"github.com/katalvlaran/otkit/emd"
	"github.com/katalvlaran/otkit/optim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// gaussProblem builds the stock test problem: two 1-D Gaussian histograms
// over n shared bins and the normalized squared-distance cost matrix.
func gaussProblem(t *testing.T, n int, meanA, stdA, meanB, stdB float64) (a, b []float64, M *mat.Dense) {
	t.Helper()

	a, err := distrib.Gauss1D(n, meanA, stdA)
	require.NoError(t, err)
	b, err = distrib.Gauss1D(n, meanB, stdB)
	require.NoError(t, err)

	x := distrib.Bins(n)
	M, err = distrib.SquaredDistance(x, x)
	require.NoError(t, err)
	distrib.Normalize(M)

	return a, b, M
}

// checkMarginals asserts row sums = a and column sums = b within tol.
func checkMarginals(t *testing.T, G *mat.Dense, a, b []float64, tol float64) {
	t.Helper()

	n, m := G.Dims()
	colSums := make([]float64, m)
	for i := 0; i < n; i++ {
		rowSum := 0.0
		for j := 0; j < m; j++ {
			rowSum += G.At(i, j)
			colSums[j] += G.At(i, j)
		}
		assert.InDelta(t, a[i], rowSum, tol, "row sum %d", i)
	}
	for j := 0; j < m; j++ {
		assert.InDelta(t, b[j], colSums[j], tol, "column sum %d", j)
	}
}

// checkDescent asserts the recorded objective never increases.
func checkDescent(t *testing.T, trace *optim.Trace) {
	t.Helper()

	require.NotNil(t, trace)
	require.NotEmpty(t, trace.Objective)
	for k := 1; k < len(trace.Objective); k++ {
		assert.LessOrEqual(t, trace.Objective[k], trace.Objective[k-1],
			"objective increased at step %d", k)
	}
}

// TestCG_Validation covers the fatal input errors.
func TestCG_Validation(t *testing.T) {
	a := []float64{0.5, 0.5}
	M := mat.NewDense(2, 2, []float64{0, 1, 1, 0})

	_, _, err := optim.CG(a, []float64{1}, M, 0.1, optim.Frobenius{}, nil)
	assert.ErrorIs(t, err, optim.ErrInfeasibleInput, "dimension mismatch must be fatal")

	_, _, err = optim.CG(a, a, M, -0.1, optim.Frobenius{}, nil)
	assert.ErrorIs(t, err, optim.ErrInfeasibleInput, "negative weight must be fatal")

	_, _, err = optim.CG(a, a, M, 0.1, nil, nil)
	assert.ErrorIs(t, err, optim.ErrNilTerm, "positive weight needs a term")

	_, _, err = optim.CG([]float64{-0.5, 1.5}, a, M, 0.1, optim.Frobenius{}, nil)
	assert.ErrorIs(t, err, optim.ErrInfeasibleInput, "negative marginal must be fatal")
}

// TestCG_ZeroRegMatchesEMD verifies the degeneracy invariant: with a zero
// weight the regularization vanishes and CG lands exactly on the exact-OT
// plan.
func TestCG_ZeroRegMatchesEMD(t *testing.T) {
	a, b, M := gaussProblem(t, 40, 10, 3, 28, 5)

	exact, err := emd.EMD(a, b, M, nil)
	require.NoError(t, err)

	G, trace, err := optim.CG(a, b, M, 0, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, trace)
	assert.True(t, trace.Converged)
	assert.True(t, mat.Equal(exact, G), "reg=0 must reproduce the exact-OT plan")
}

// TestCG_FrobeniusGaussians is the reference scenario: 100-bin Gaussians
// (means 20 and 60, spreads 5 and 10) under the normalized squared
// bin-distance cost, Frobenius weight 0.1. The plan must stay in the
// polytope to 1e-6 and the objective must be non-increasing throughout.
func TestCG_FrobeniusGaussians(t *testing.T) {
	a, b, M := gaussProblem(t, 100, 20, 5, 60, 10)

	G, trace, err := optim.CG(a, b, M, 0.1, optim.Frobenius{}, nil)
	if err != nil {
		// The iteration cap is a legal stop: the plan must still be usable.
		require.ErrorIs(t, err, optim.ErrNotConverged)
	}
	require.NotNil(t, G)
	require.LessOrEqual(t, trace.Iterations, 200)

	checkMarginals(t, G, a, b, 1e-6)
	checkDescent(t, trace)

	// Regularization spreads mass: the plan must be strictly denser than
	// the exact vertex solution.
	exact, err := emd.EMD(a, b, M, nil)
	require.NoError(t, err)
	assert.Greater(t, positives(G), positives(exact),
		"Frobenius smoothing must densify the plan")
}

// TestCG_EntropicDensifies runs the entropic scenario (weight 1e-3): the
// smoothing removes the sparsity of exact OT, so the plan is strictly
// positive everywhere while keeping the marginals. Positivity holds in
// exact arithmetic and in float64: every iterate is a convex combination
// starting from the strictly positive product plan, so entries are
// bounded below by the product of the retained fractions Π(1-tₖ) and
// min(aᵢ·bⱼ), far above the underflow threshold.
func TestCG_EntropicDensifies(t *testing.T) {
	a, b, M := gaussProblem(t, 100, 20, 5, 60, 10)

	G, trace, err := optim.CG(a, b, M, 1e-3, optim.Entropy{}, nil)
	if err != nil {
		require.ErrorIs(t, err, optim.ErrNotConverged)
	}
	require.NotNil(t, G)

	checkMarginals(t, G, a, b, 1e-6)
	checkDescent(t, trace)

	for i := 0; i < 100; i++ {
		for j := 0; j < 100; j++ {
			assert.Greater(t, G.At(i, j), 0.0, "entry (%d,%d)", i, j)
		}
	}

	exact, err := emd.EMD(a, b, M, nil)
	require.NoError(t, err)
	assert.Greater(t, positives(G), positives(exact),
		"entropic smoothing must densify the plan")
}

// TestCG_ClosedFormAgreesWithNumeric cross-checks the two line-search
// paths on the same Frobenius problem: forcing the numeric search must
// reach (numerically) the same objective value as the closed-form step.
func TestCG_ClosedFormAgreesWithNumeric(t *testing.T) {
	a, b, M := gaussProblem(t, 30, 8, 3, 20, 4)
	const reg = 0.5

	objective := func(G *mat.Dense) float64 {
		total := reg * optim.Frobenius{}.Value(G)
		n, m := G.Dims()
		for i := 0; i < n; i++ {
			for j := 0; j < m; j++ {
				total += G.At(i, j) * M.At(i, j)
			}
		}

		return total
	}

	closed, _, err := optim.CG(a, b, M, reg, optim.Frobenius{}, nil)
	if err != nil {
		require.ErrorIs(t, err, optim.ErrNotConverged)
	}

	numeric, _, err := optim.CG(a, b, M, reg, hideQuadratic{optim.Frobenius{}}, nil)
	if err != nil {
		require.ErrorIs(t, err, optim.ErrNotConverged)
	}

	assert.InDelta(t, objective(closed), objective(numeric), 1e-4,
		"both line searches must reach the same objective level")
}

// TestCG_Deterministic verifies bit-identical output across repeated runs.
func TestCG_Deterministic(t *testing.T) {
	a, b, M := gaussProblem(t, 50, 12, 4, 35, 6)

	G1, _, err1 := optim.CG(a, b, M, 0.1, optim.Frobenius{}, nil)
	G2, _, err2 := optim.CG(a, b, M, 0.1, optim.Frobenius{}, nil)
	assert.Equal(t, errors.Is(err1, optim.ErrNotConverged), errors.Is(err2, optim.ErrNotConverged))
	assert.True(t, mat.Equal(G1, G2), "identical inputs must produce bit-identical plans")
}

// TestCG_IterationCap verifies the recoverable-stop contract: a one-step
// budget returns ErrNotConverged together with a feasible plan.
func TestCG_IterationCap(t *testing.T) {
	a, b, M := gaussProblem(t, 40, 10, 3, 28, 5)

	opts := optim.DefaultOptions()
	opts.MaxIter = 1
	G, trace, err := optim.CG(a, b, M, 0.1, optim.Frobenius{}, &opts)
	assert.ErrorIs(t, err, optim.ErrNotConverged)
	require.NotNil(t, G)
	assert.Equal(t, 1, trace.Iterations)
	checkMarginals(t, G, a, b, 1e-6)
}

// positives counts strictly positive plan entries.
func positives(G *mat.Dense) int {
	n, m := G.Dims()
	count := 0
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			if G.At(i, j) > 0 {
				count++
			}
		}
	}

	return count
}

// hideQuadratic wraps a term so the solver cannot see its QuadraticTerm
// capability, forcing the numeric line search.
type hideQuadratic struct {
	inner optim.Term
}

func (h hideQuadratic) Value(G *mat.Dense) float64 { return h.inner.Value(G) }

func (h hideQuadratic) Gradient(G, dst *mat.Dense) { h.inner.Gradient(G, dst) }
