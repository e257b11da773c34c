package convergence_test

import (
	"fmt"

	"github.com/katalvlaran/gridverify/convergence"
	"github.com/katalvlaran/gridverify/mesh"
)

// ExampleRichardson fits f = 1 + h² sampled on a uniformly refined mesh.
func ExampleRichardson() {
	s, err := mesh.Normalize(mesh.Sizes{4, 2, 1}, mesh.Values{17, 5, 2})
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	res, err := convergence.NewRichardson().Fit(s)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	fit, _ := res.Key(mesh.DefaultResponseKey)
	fmt.Printf("p=%.4f f0=%.4f r=%.1f\n", fit.Order, fit.Extrapolated, fit.Ratio)
	// Output:
	// p=2.0000 f0=1.0000 r=2.0
}

// ExampleRichardson_nonUniform solves the generalized order equation for
// refinement ratios that differ between level pairs.
func ExampleRichardson_nonUniform() {
	s, err := mesh.Normalize(
		mesh.Sizes{0.00573555, 0.00414913, 0.00292402},
		mesh.Columns{{Key: "pressure", Values: []float64{95, 98, 100}}},
	)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	res, _ := convergence.NewRichardson().Fit(s)
	p, _ := res.Order("pressure")
	f0, _ := res.Extrapolated("pressure")
	fmt.Printf("p=%.4f f0=%.4f\n", p, f0)
	// Output:
	// p=1.4387 f0=103.0560
}

// ExampleAverageValue reports the mean of oscillatory data.
func ExampleAverageValue() {
	s, _ := mesh.Normalize(mesh.Sizes{3, 2, 1}, mesh.Values{1, 3, 2})

	res, _ := convergence.AverageValue().Fit(s)
	fit, _ := res.Key(mesh.DefaultResponseKey)
	fmt.Println(res.Kind(), fit.Extrapolated, fit.Spread)
	// Output:
	// average_value 2 1
}
