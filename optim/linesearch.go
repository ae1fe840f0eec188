package optim

import "math"

// invPhi is 1/φ, the golden-section interval reduction ratio.
const invPhi = 0.6180339887498949

// goldenSection minimizes phi over [0,1] with a fixed number of
// derivative-free interval reductions, assuming phi is unimodal there
// (true for convex objectives restricted to a segment). It returns the
// best point among the bracket midpoint and both endpoints, so a
// boundary minimum is never missed.
func goldenSection(phi func(float64) float64, iters int) (t, ft float64) {
	lo, hi := 0.0, 1.0
	x1 := hi - invPhi*(hi-lo)
	x2 := lo + invPhi*(hi-lo)
	f1, f2 := phi(x1), phi(x2)

	for k := 0; k < iters; k++ {
		if f1 <= f2 {
			hi = x2
			x2, f2 = x1, f1
			x1 = hi - invPhi*(hi-lo)
			f1 = phi(x1)
		} else {
			lo = x1
			x1, f1 = x2, f2
			x2 = lo + invPhi*(hi-lo)
			f2 = phi(x2)
		}
	}

	t = 0.5 * (lo + hi)
	ft = phi(t)

	// Endpoint sweep: golden section never samples 0 or 1 exactly.
	if f0 := phi(0); f0 < ft {
		t, ft = 0, f0
	}
	if f1 := phi(1); f1 < ft {
		t, ft = 1, f1
	}

	return t, ft
}

// clamp01 restricts a closed-form step to the feasible interval.
func clamp01(t float64) float64 {
	switch {
	case math.IsNaN(t), t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
