package optim

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Term is a differentiable regularization functional of a transport plan.
// Implementations must be pure: no retained state, identical outputs for
// identical plans, no mutation of the input plan.
type Term interface {
	// Value evaluates the functional at G.
	Value(G *mat.Dense) float64

	// Gradient writes the gradient at G into dst (same shape as G).
	Gradient(G, dst *mat.Dense)
}

// QuadraticTerm is an optional capability: a Term whose restriction to any
// line through the polytope is an exact quadratic, enabling a closed-form
// line-search step instead of a numeric one.
type QuadraticTerm interface {
	Term

	// LineCoeffs returns b and c such that
	//   f(G + t·D) = f(G) + b·t + c·t²   for all t.
	LineCoeffs(G, D *mat.Dense) (b, c float64)
}

// Sentinel errors returned by the CG/GCG solvers.
var (
	// ErrInfeasibleInput indicates malformed marginals/cost matrix or a
	// negative regularization weight.
	ErrInfeasibleInput = errors.New("optim: infeasible input")

	// ErrNilTerm indicates a positive regularization weight was given
	// without a Term to apply it to.
	ErrNilTerm = errors.New("optim: regularization term is nil")

	// ErrNotConverged indicates the iteration cap was reached, or the line
	// search could not find a decreasing step away from stationarity. The
	// best plan found is returned alongside the error.
	ErrNotConverged = errors.New("optim: stopped before convergence")

	// ErrInnerDiverged indicates the entropic inner solve of GCG diverged
	// without leaving a usable fallback iterate.
	ErrInnerDiverged = errors.New("optim: entropic inner solver diverged")
)

// Default option values.
const (
	// DefaultMaxIter caps the outer conditional-gradient iterations.
	DefaultMaxIter = 200

	// DefaultTolObjective is the relative objective-change threshold.
	DefaultTolObjective = 1e-9

	// DefaultTolPlan is the relative plan-change threshold.
	DefaultTolPlan = 1e-9

	// DefaultLineSearchIters is the number of golden-section interval
	// reductions for the numeric line search (interval shrinks by
	// ~0.618 per reduction, so 24 reductions resolve t to ~1e-5).
	DefaultLineSearchIters = 24

	// DefaultInnerMaxIter caps the entropic inner solve of GCG.
	DefaultInnerMaxIter = 200

	// DefaultInnerTol is the marginal-violation threshold of GCG's
	// entropic inner solve.
	DefaultInnerTol = 1e-9
)

// Options configures the CG and GCG solvers. The Inner* fields apply to
// GCG only and are ignored by CG.
//   - MaxIter:         outer iteration cap.
//   - TolObjective:    stop when the relative objective change and ...
//   - TolPlan:         ... the relative plan change both drop below these.
//   - LineSearchIters: golden-section reductions for the numeric search.
//   - InnerMaxIter:    sweep cap for GCG's entropic inner solve.
//   - InnerTol:        convergence threshold for the inner solve.
//   - Verbose:         print per-iteration objective via fmt.Printf.
type Options struct {
	MaxIter         int
	TolObjective    float64
	TolPlan         float64
	LineSearchIters int
	InnerMaxIter    int
	InnerTol        float64
	Verbose         bool
}

// DefaultOptions returns production-safe defaults.
func DefaultOptions() Options {
	return Options{
		MaxIter:         DefaultMaxIter,
		TolObjective:    DefaultTolObjective,
		TolPlan:         DefaultTolPlan,
		LineSearchIters: DefaultLineSearchIters,
		InnerMaxIter:    DefaultInnerMaxIter,
		InnerTol:        DefaultInnerTol,
	}
}

// normalize fills zero values with defaults so a partially populated
// Options struct behaves sensibly.
func (o *Options) normalize() {
	if o.MaxIter <= 0 {
		o.MaxIter = DefaultMaxIter
	}
	if o.TolObjective <= 0 {
		o.TolObjective = DefaultTolObjective
	}
	if o.TolPlan <= 0 {
		o.TolPlan = DefaultTolPlan
	}
	if o.LineSearchIters <= 0 {
		o.LineSearchIters = DefaultLineSearchIters
	}
	if o.InnerMaxIter <= 0 {
		o.InnerMaxIter = DefaultInnerMaxIter
	}
	if o.InnerTol <= 0 {
		o.InnerTol = DefaultInnerTol
	}
}

// Trace records the progress of a solver run. Objective holds F(G) after
// every accepted step, starting with the initial plan, so its length is
// Iterations+1 and it is non-increasing for a healthy run.
type Trace struct {
	Objective  []float64
	Iterations int
	Converged  bool
}
