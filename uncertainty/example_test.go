package uncertainty_test

import (
	"fmt"

	"github.com/katalvlaran/gridverify/convergence"
	"github.com/katalvlaran/gridverify/deviation"
	"github.com/katalvlaran/gridverify/mesh"
	"github.com/katalvlaran/gridverify/uncertainty"
)

// ExampleGridConvergenceIndex chains the four stages by hand.
func ExampleGridConvergenceIndex() {
	s, _ := mesh.Normalize(mesh.Sizes{4, 2, 1}, mesh.Values{17, 5, 2})
	res, _ := convergence.NewRichardson().Fit(s)
	errs, _ := deviation.NewRelative().Compute(s, res)

	tab, err := uncertainty.NewGridConvergenceIndex().Compute(s, res, errs)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	u, _ := tab.Values(mesh.DefaultResponseKey)
	fmt.Printf("Fs=%.2f u=%.4f\n", tab.Factor(mesh.DefaultResponseKey), u)
	// Output:
	// Fs=1.25 u=[6.6667 1.6667 0.4167]
}
