package sinkhorn_test

import (
	"testing"

	"github.com/katalvlaran/otkit/distrib"
	"github.com/katalvlaran/otkit/sinkhorn"
)

// benchmarkSinkhorn is a helper that solves an n-bin Gaussian problem at the
// given regularization. It resets the timer before entering the loop and
// fails on unexpected errors.
func benchmarkSinkhorn(b *testing.B, n int, reg float64) {
	a, err := distrib.Gauss1D(n, float64(n)/5, float64(n)/20)
	if err != nil {
		b.Fatalf("Gauss1D failed: %v", err)
	}
	bb, err := distrib.Gauss1D(n, 3*float64(n)/5, float64(n)/10)
	if err != nil {
		b.Fatalf("Gauss1D failed: %v", err)
	}
	x := distrib.Bins(n)
	M, err := distrib.SquaredDistance(x, x)
	if err != nil {
		b.Fatalf("SquaredDistance failed: %v", err)
	}
	distrib.Normalize(M)

	opts := sinkhorn.DefaultOptions()
	opts.MaxIter = 20000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sinkhorn.Sinkhorn(a, bb, M, reg, &opts); err != nil {
			b.Fatalf("Sinkhorn failed: %v", err)
		}
	}
}

// BenchmarkSinkhorn_LooseReg benchmarks fast, heavily blurred transport.
func BenchmarkSinkhorn_LooseReg(b *testing.B) {
	benchmarkSinkhorn(b, 100, 0.5)
}

// BenchmarkSinkhorn_MediumReg benchmarks the typical regime.
func BenchmarkSinkhorn_MediumReg(b *testing.B) {
	benchmarkSinkhorn(b, 100, 0.1)
}

// BenchmarkSinkhorn_TightReg benchmarks the slow, near-exact regime where
// many more sweeps are needed.
func BenchmarkSinkhorn_TightReg(b *testing.B) {
	benchmarkSinkhorn(b, 100, 0.02)
}

// BenchmarkSinkhorn_Large benchmarks a 500-bin problem at medium blur.
func BenchmarkSinkhorn_Large(b *testing.B) {
	benchmarkSinkhorn(b, 500, 0.1)
}
