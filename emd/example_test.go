package emd_test

import (
	"fmt"

	"github.com/katalvlaran/otkit/emd"
	"gonum.org/v1/gonum/mat"
)

// ExampleEMD solves a tiny 2×2 transport problem where the diagonal is
// free: all mass ships straight across and the optimal cost is zero.
func ExampleEMD() {
	a := []float64{0.5, 0.5}
	b := []float64{0.5, 0.5}
	M := mat.NewDense(2, 2, []float64{
		0, 1,
		1, 0,
	})

	G, err := emd.EMD(a, b, M, nil)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("plan:\n%.2f\n", mat.Formatted(G))

	cost, _ := emd.EMD2(a, b, M, nil)
	fmt.Printf("cost: %.2f\n", cost)
	// Output:
	// plan:
	// ⎡0.50  0.00⎤
	// ⎣0.00  0.50⎦
	// cost: 0.00
}
