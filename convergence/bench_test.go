package convergence_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/katalvlaran/gridverify/convergence"
	"github.com/katalvlaran/gridverify/mesh"
)

// sink to defeat dead-code elimination
var sinkR *convergence.Result

// benchSeries builds n levels of f = 2 + 3·h^1.5 with ratio √2.
func benchSeries(b *testing.B, n int) *mesh.Series {
	b.Helper()
	hs := make([]float64, n)
	f := make([]float64, n)
	for i := range hs {
		hs[i] = math.Pow(math.Sqrt2, float64(n-1-i))
		f[i] = 2 + 3*math.Pow(hs[i], 1.5)
	}
	s, err := mesh.Normalize(mesh.Sizes(hs), mesh.Values(f))
	if err != nil {
		b.Fatal(err)
	}

	return s
}

func BenchmarkFit(b *testing.B) {
	models := []convergence.Model{
		convergence.NewRichardson(),
		convergence.NewPowerLaw(),
		convergence.NewPolynomial(),
	}
	for _, m := range models {
		for _, n := range []int{3, 6} {
			b.Run(fmt.Sprintf("%s/n=%d", m.Kind(), n), func(b *testing.B) {
				s := benchSeries(b, n)
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					res, err := m.Fit(s)
					if err != nil {
						b.Fatal(err)
					}
					sinkR = res
				}
			})
		}
	}
}
