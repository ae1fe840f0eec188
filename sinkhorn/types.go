package sinkhorn

import "errors"

// Sentinel errors returned by the entropic OT solver.
var (
	// ErrInfeasibleInput indicates malformed marginals or cost matrix, or a
	// non-positive regularization weight.
	ErrInfeasibleInput = errors.New("sinkhorn: infeasible input")

	// ErrNotConverged indicates the sweep cap was reached before the
	// marginal violation dropped below Options.Tol. The plan returned
	// alongside it is the current iterate.
	ErrNotConverged = errors.New("sinkhorn: sweep cap reached before convergence")

	// ErrDiverged indicates the scaling produced non-finite potentials.
	// The plan built from the last finite iterate is returned alongside it;
	// only when no finite iterate exists is the plan nil.
	ErrDiverged = errors.New("sinkhorn: scaling diverged to non-finite values")
)

// Default option values.
const (
	// DefaultMaxIter caps the number of row+column scaling sweeps.
	DefaultMaxIter = 1000

	// DefaultTol is the L1 marginal-violation threshold for convergence.
	DefaultTol = 1e-9

	// DefaultCheckEvery spaces out the convergence checks: building the
	// plan to measure the violation costs a full sweep, so it is not done
	// on every iteration.
	DefaultCheckEvery = 10

	// DefaultMassTol is the tolerance on |Σa - Σb| for the feasibility check.
	DefaultMassTol = 1e-9
)

// Options configures the Sinkhorn iteration.
//   - MaxIter:    scaling-sweep cap; reaching it yields ErrNotConverged.
//   - Tol:        L1 marginal-violation convergence threshold.
//   - CheckEvery: sweeps between convergence checks.
//   - MassTol:    tolerance on the total-mass match between a and b.
//   - Verbose:    print the violation at each check via fmt.Printf.
type Options struct {
	MaxIter    int
	Tol        float64
	CheckEvery int
	MassTol    float64
	Verbose    bool
}

// DefaultOptions returns production-safe defaults.
func DefaultOptions() Options {
	return Options{
		MaxIter:    DefaultMaxIter,
		Tol:        DefaultTol,
		CheckEvery: DefaultCheckEvery,
		MassTol:    DefaultMassTol,
	}
}

// normalize fills zero values with defaults so a partially populated
// Options struct behaves sensibly.
func (o *Options) normalize() {
	if o.MaxIter <= 0 {
		o.MaxIter = DefaultMaxIter
	}
	if o.Tol <= 0 {
		o.Tol = DefaultTol
	}
	if o.CheckEvery <= 0 {
		o.CheckEvery = DefaultCheckEvery
	}
	if o.MassTol <= 0 {
		o.MassTol = DefaultMassTol
	}
}
