package sinkhorn_test

import (
	"fmt"

	"github.com/katalvlaran/otkit/distrib"
	"github.com/katalvlaran/otkit/sinkhorn"
)

// ExampleSinkhorn transports one Gaussian histogram onto another and
// verifies the defining properties of an entropic plan: the marginals are
// matched and every entry is strictly positive.
func ExampleSinkhorn() {
	a, _ := distrib.Gauss1D(50, 15, 4)
	b, _ := distrib.Gauss1D(50, 35, 6)
	x := distrib.Bins(50)
	M, _ := distrib.SquaredDistance(x, x)
	distrib.Normalize(M)

	opts := sinkhorn.DefaultOptions()
	opts.MaxIter = 20000
	G, err := sinkhorn.Sinkhorn(a, b, M, 0.05, &opts)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	marginalsOK := true
	positive := true
	for i := 0; i < 50; i++ {
		rowSum := 0.0
		for j := 0; j < 50; j++ {
			rowSum += G.At(i, j)
			if G.At(i, j) <= 0 {
				positive = false
			}
		}
		if diff := rowSum - a[i]; diff > 1e-6 || diff < -1e-6 {
			marginalsOK = false
		}
	}
	fmt.Println("marginals matched:", marginalsOK)
	fmt.Println("strictly positive:", positive)
	// Output:
	// marginals matched: true
	// strictly positive: true
}
