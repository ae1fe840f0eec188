package optim

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// entropyFloor is the positivity guard for the entropic gradient: entries
// below it are treated as the floor, keeping log finite when a plan touches
// the boundary of the polytope.
const entropyFloor = 1e-16

// Frobenius is the squared-norm regularization f(G) = 0.5·Σᵢⱼ G(i,j)².
// It is an exact quadratic, so CG uses a closed-form line-search step.
type Frobenius struct{}

// Value returns 0.5·Σ G².
func (Frobenius) Value(G *mat.Dense) float64 {
	n, _ := G.Dims()
	s := 0.0
	for i := 0; i < n; i++ {
		row := G.RawRowView(i)
		s += floats.Dot(row, row)
	}

	return 0.5 * s
}

// Gradient writes ∇f(G) = G into dst.
func (Frobenius) Gradient(G, dst *mat.Dense) {
	dst.Copy(G)
}

// LineCoeffs expands f(G + t·D) = f(G) + ⟨G,D⟩·t + 0.5·⟨D,D⟩·t².
func (Frobenius) LineCoeffs(G, D *mat.Dense) (b, c float64) {
	n, _ := G.Dims()
	for i := 0; i < n; i++ {
		g, d := G.RawRowView(i), D.RawRowView(i)
		b += floats.Dot(g, d)
		c += 0.5 * floats.Dot(d, d)
	}

	return b, c
}

// Entropy is the negative-entropy regularization
// f(G) = Σᵢⱼ G(i,j)·log G(i,j), with the 0·log 0 = 0 convention.
type Entropy struct{}

// Value returns Σ G·log G, counting zero entries as zero.
func (Entropy) Value(G *mat.Dense) float64 {
	n, _ := G.Dims()
	s := 0.0
	for i := 0; i < n; i++ {
		for _, x := range G.RawRowView(i) {
			if x > 0 {
				s += x * math.Log(x)
			}
		}
	}

	return s
}

// Gradient writes ∇f(G) = log G + 1 into dst, flooring entries at
// entropyFloor so boundary plans produce a large-but-finite gradient
// instead of -Inf.
func (Entropy) Gradient(G, dst *mat.Dense) {
	n, m := G.Dims()
	for i := 0; i < n; i++ {
		src := G.RawRowView(i)
		out := dst.RawRowView(i)
		for j := 0; j < m; j++ {
			x := src[j]
			if x < entropyFloor {
				x = entropyFloor
			}
			out[j] = math.Log(x) + 1
		}
	}
}
