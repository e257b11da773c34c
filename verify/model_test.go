package verify_test

import (
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/gridverify/convergence"
	"github.com/katalvlaran/gridverify/deviation"
	"github.com/katalvlaran/gridverify/logger"
	"github.com/katalvlaran/gridverify/mesh"
	"github.com/katalvlaran/gridverify/uncertainty"
	"github.com/katalvlaran/gridverify/verify"
)

// pressureSizes and pressure are a monotone three-level study in metres and kPa.
var (
	pressureSizes = mesh.Sizes{0.00292402, 0.00414913, 0.00573555}
	pressure      = []float64{100, 98, 95}
)

// snapshot captures every accessor of a model for whole-model comparisons.
type snapshot struct {
	Sizes        []float64
	Ratios       []float64
	Keys         []string
	Order        map[string]float64
	Extrapolated map[string]float64
	Relative     map[string][]float64
	Uncertainty  map[string][]float64
}

func snap(t *testing.T, m *verify.Model) snapshot {
	t.Helper()
	s := snapshot{
		Sizes:        m.MeshSizes(),
		Ratios:       m.RefinementRatios(),
		Keys:         m.ResponseKeys(),
		Order:        map[string]float64{},
		Extrapolated: map[string]float64{},
		Relative:     map[string][]float64{},
		Uncertainty:  map[string][]float64{},
	}
	for _, key := range s.Keys {
		if p, ok := m.Order(key); ok {
			s.Order[key] = p
		}
		f0, err := m.Extrapolated(key)
		require.NoError(t, err)
		s.Extrapolated[key] = f0
		rel, err := m.RelativeError(key)
		require.NoError(t, err)
		s.Relative[key] = rel
		if u, err := m.Uncertainty(key); err == nil {
			s.Uncertainty[key] = u
		}
	}

	return s
}

func TestBuild_Defaults(t *testing.T) {
	m, err := verify.Build(pressureSizes, mesh.Values(pressure))
	require.NoError(t, err)

	c, e, u := m.Strategies()
	assert.Equal(t, convergence.KindRichardson, c)
	assert.Equal(t, deviation.KindRelative, e)
	assert.Equal(t, uncertainty.KindGridConvergenceIndex, u)
	assert.Equal(t, mesh.DefaultMeshKey, m.MeshKey())
	assert.Equal(t, []string{mesh.DefaultResponseKey}, m.ResponseKeys())
	assert.NoError(t, m.Err())
}

// TestBuild_LevelCount verifies that every per-level accessor has N entries.
func TestBuild_LevelCount(t *testing.T) {
	m, err := verify.Build(mesh.Sizes{8, 4, 2, 1}, mesh.Columns{
		{Key: "lift", Values: []float64{2 + 3*8, 2 + 3*4, 2 + 3*2, 2 + 3*1}},
		{Key: "drag", Values: []float64{1 + 64, 1 + 16, 1 + 4, 1 + 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, m.LevelCount())
	assert.Len(t, m.MeshSizes(), 4)
	assert.Len(t, m.RefinementRatios(), 3)
	for _, key := range m.ResponseKeys() {
		rel, err := m.RelativeError(key)
		require.NoError(t, err)
		assert.Len(t, rel, 4, key)
		abs, err := m.AbsRelativeError(key)
		require.NoError(t, err)
		assert.Len(t, abs, 4, key)
		u, err := m.Uncertainty(key)
		require.NoError(t, err)
		assert.Len(t, u, 4, key)
	}

	p, ok := m.Order("lift")
	assert.True(t, ok)
	assert.InDelta(t, 1.0, p, 1e-9)
	f0, _ := m.Extrapolated("drag")
	assert.InDelta(t, 1.0, f0, 1e-9)
}

// TestBuild_ReorderInvariance verifies that permuting the input levels
// (applying the same permutation to every column) gives the same model.
func TestBuild_ReorderInvariance(t *testing.T) {
	temps := []float64{300, 305, 312}
	a, err := verify.Build(pressureSizes, mesh.Columns{
		{Key: "pressure", Values: pressure},
		{Key: "temperature", Values: temps},
	})
	require.NoError(t, err)

	perm := []int{2, 0, 1}
	pick := func(v []float64) []float64 {
		out := make([]float64, len(perm))
		for i, j := range perm {
			out[i] = v[j]
		}

		return out
	}
	b, err := verify.Build(mesh.Sizes(pick(pressureSizes)), mesh.Columns{
		{Key: "pressure", Values: pick(pressure)},
		{Key: "temperature", Values: pick(temps)},
	})
	require.NoError(t, err)

	if diff := cmp.Diff(snap(t, a), snap(t, b), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("reordered input changed the model (-want +got):\n%s", diff)
	}
}

// TestBuild_MonotoneFixture verifies a defined, finite order and an
// extrapolated value continuing the trend past the finest level.
func TestBuild_MonotoneFixture(t *testing.T) {
	m, err := verify.Build(pressureSizes, mesh.Columns{{Key: "pressure", Values: pressure}})
	require.NoError(t, err)

	p, ok := m.Order("pressure")
	require.True(t, ok)
	assert.False(t, math.IsNaN(p) || math.IsInf(p, 0))
	assert.Greater(t, p, 0.0)
	assert.InDelta(t, 1.4387459197704735, p, 1e-8)

	f0, err := m.Extrapolated("pressure")
	require.NoError(t, err)
	assert.False(t, math.IsNaN(f0) || math.IsInf(f0, 0))
	assert.Greater(t, f0, 100.0)
	assert.Less(t, f0, 110.0)
	assert.False(t, m.IsFallback("pressure"))
	assert.NoError(t, m.Status("pressure"))

	assert.Equal(t, []float64{0.00573555, 0.00414913, 0.00292402}, m.MeshSizes())
}

// TestBuild_TwoLevels verifies the explicit finest-value fallback.
func TestBuild_TwoLevels(t *testing.T) {
	lg, logs := logger.TestObserved(t, zapcore.WarnLevel)
	m, err := verify.Build(mesh.Sizes{0.1, 0.2}, mesh.Values{3.1, 3.5}, verify.WithLogger(lg))
	require.NoError(t, err)

	key := mesh.DefaultResponseKey
	_, ok := m.Order(key)
	assert.False(t, ok)
	f0, err := m.Extrapolated(key)
	require.NoError(t, err)
	assert.Equal(t, 3.1, f0)
	assert.True(t, m.IsFallback(key))

	_, err = m.Uncertainty(key)
	assert.ErrorIs(t, err, uncertainty.ErrUndefinedOrder)
	assert.ErrorIs(t, m.Status(key), uncertainty.ErrUndefinedOrder)
	assert.ErrorIs(t, m.Err(), uncertainty.ErrUndefinedOrder)

	assert.Equal(t, 1, logs.FilterMessage("order undefined, using finest value").Len())
	diag := logs.FilterMessage("diagnostic").All()
	require.Len(t, diag, 1)
	assert.Equal(t, key, diag[0].ContextMap()["key"])

	// the factor-of-safety policy still gives a band
	m, err = verify.Build(mesh.Sizes{0.1, 0.2}, mesh.Values{3.1, 3.5},
		verify.WithUncertainty(uncertainty.NewFactorOfSafety()))
	require.NoError(t, err)
	u, err := m.Uncertainty(key)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{3 * 0.4 / 3.1, 0}, u, 1e-12)
	assert.NoError(t, m.Err())
}

func TestBuild_DuplicateMeshSize(t *testing.T) {
	_, err := verify.Build(mesh.Sizes{0.01, 0.01, 0.02}, mesh.Values{1, 2, 3})
	assert.ErrorIs(t, err, mesh.ErrDuplicateMeshSize)
}

// TestBuild_IncompatibleStrategySet verifies that the check runs before the
// input is even looked at.
func TestBuild_IncompatibleStrategySet(t *testing.T) {
	_, err := verify.Build(nil, nil,
		verify.WithConvergence(convergence.FinestValue()),
		verify.WithUncertainty(uncertainty.NewGridConvergenceIndex()),
	)
	assert.ErrorIs(t, err, verify.ErrIncompatibleStrategySet)
	assert.NotErrorIs(t, err, mesh.ErrNilInput)

	_, err = verify.Build(pressureSizes, mesh.Values(pressure),
		verify.WithConvergence(convergence.NewPolynomial()))
	assert.ErrorIs(t, err, verify.ErrIncompatibleStrategySet)

	for _, m := range []convergence.Model{convergence.FinestValue(), convergence.AverageValue(), convergence.NewPolynomial()} {
		assert.NoError(t, verify.Compatible(m, deviation.NewAbsRelative(), uncertainty.NewFactorOfSafety()), m.Kind().String())
		assert.NoError(t, verify.Compatible(m, deviation.NewAbsolute(), uncertainty.NewStudentT()), m.Kind().String())
	}
	assert.ErrorIs(t, verify.Compatible(nil, deviation.NewRelative(), uncertainty.NewStudentT()), verify.ErrIncompatibleStrategySet)

	_, err = verify.New(nil, verify.WithConvergence(convergence.FinestValue()))
	assert.ErrorIs(t, err, verify.ErrIncompatibleStrategySet)
}

// TestModel_Idempotent verifies bit-identical repeated reads and copy semantics.
func TestModel_Idempotent(t *testing.T) {
	m, err := verify.Build(pressureSizes, mesh.Values(pressure))
	require.NoError(t, err)
	key := mesh.DefaultResponseKey

	first := snap(t, m)
	rel, _ := m.RelativeError(key)
	rel[0] = 42
	sizes := m.MeshSizes()
	sizes[0] = 42
	assert.Equal(t, first, snap(t, m))
}

// TestModel_AbsRelativeError verifies |RelativeError| for every key and level.
func TestModel_AbsRelativeError(t *testing.T) {
	m, err := verify.Build(mesh.Sizes{4, 2, 1}, mesh.Columns{
		{Key: "above", Values: []float64{17, 5, 2}},
		{Key: "below", Values: []float64{-15, -3, 0}},
		{Key: "wavy", Values: []float64{1, 3, 2}},
	})
	require.NoError(t, err)

	for _, key := range m.ResponseKeys() {
		rel, err := m.RelativeError(key)
		require.NoError(t, err)
		abs, err := m.AbsRelativeError(key)
		require.NoError(t, err)
		for i := range rel {
			assert.Equal(t, math.Abs(rel[i]), abs[i], "%s level %d", key, i)
		}
	}
}

// TestModel_Diagnostics verifies per-key degradation and strict mode.
func TestModel_Diagnostics(t *testing.T) {
	cols := mesh.Columns{
		{Key: "good", Values: []float64{17, 5, 2}},
		{Key: "wavy", Values: []float64{1, 3, 2}},
	}

	m, err := verify.Build(mesh.Sizes{4, 2, 1}, cols)
	require.NoError(t, err)
	assert.NoError(t, m.Status("good"))
	assert.ErrorIs(t, m.Status("wavy"), convergence.ErrNonMonotoneConvergence)
	assert.ErrorIs(t, m.Status("wavy"), uncertainty.ErrUndefinedOrder)
	assert.ErrorIs(t, m.Err(), convergence.ErrNonMonotoneConvergence)
	f0, _ := m.Extrapolated("wavy")
	assert.Equal(t, 2.0, f0)
	_, ok := m.Order("good")
	assert.True(t, ok)

	_, err = verify.Build(mesh.Sizes{4, 2, 1}, cols, verify.WithStrictConvergence())
	assert.ErrorIs(t, err, verify.ErrStrictConvergence)
	assert.ErrorIs(t, err, convergence.ErrNonMonotoneConvergence)

	_, err = verify.Build(mesh.Sizes{4, 2, 1}, cols[:1], verify.WithStrictConvergence())
	assert.NoError(t, err)
}

// TestModel_Substituted verifies that a near-zero extrapolated value is
// reported by the model.
func TestModel_Substituted(t *testing.T) {
	m, err := verify.Build(mesh.Sizes{2, 1}, mesh.Columns{{Key: "lift", Values: []float64{0.5, 0}}},
		verify.WithConvergence(convergence.FinestValue()),
		verify.WithUncertainty(uncertainty.NewFactorOfSafety()),
	)
	require.NoError(t, err)

	assert.True(t, m.Substituted("lift"))
	assert.ErrorIs(t, m.Status("lift"), deviation.ErrDivisionByExtrapolatedZero)
	rel, _ := m.RelativeError("lift")
	assert.Equal(t, []float64{0.5, 0}, rel)
}

// TestModel_ConfiguredEstimator verifies that Error follows the configured
// estimator while RelativeError stays relative.
func TestModel_ConfiguredEstimator(t *testing.T) {
	// f = 2 + 2h², so f0 = 2 and relative errors are half the absolute ones
	m, err := verify.Build(mesh.Sizes{4, 2, 1}, mesh.Values{34, 10, 4},
		verify.WithErrorEstimator(deviation.NewAbsolute()))
	require.NoError(t, err)
	key := mesh.DefaultResponseKey

	e, err := m.Error(key)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{32, 8, 2}, e, 1e-9)
	rel, _ := m.RelativeError(key)
	assert.InDeltaSlice(t, []float64{16, 4, 1}, rel, 1e-9)

	_, kind, _ := m.Strategies()
	assert.Equal(t, deviation.KindAbsolute, kind)
	assert.Equal(t, uncertainty.DefaultGCIFactor, m.UncertaintyFactor(key))
}

// TestModel_AbsRelativeKeepsOptions verifies that the relative accessors share
// the reference magnitude of a configured abs-relative estimator.
func TestModel_AbsRelativeKeepsOptions(t *testing.T) {
	m, err := verify.Build(mesh.Sizes{2, 1}, mesh.Values{0.5, 0},
		verify.WithConvergence(convergence.FinestValue()),
		verify.WithErrorEstimator(deviation.NewAbsRelative(deviation.WithReferenceMagnitude(10))),
		verify.WithUncertainty(uncertainty.NewStudentT()),
	)
	require.NoError(t, err)
	key := mesh.DefaultResponseKey

	e, err := m.Error(key)
	require.NoError(t, err)
	abs, err := m.AbsRelativeError(key)
	require.NoError(t, err)
	rel, err := m.RelativeError(key)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.05, 0}, e, 1e-15)
	assert.Equal(t, e, abs)
	assert.Equal(t, e, rel)
	assert.True(t, m.Substituted(key))
	assert.Len(t, multierr.Errors(m.Status(key)), 1)
	assert.ErrorIs(t, m.Status(key), deviation.ErrDivisionByExtrapolatedZero)
}

func TestModel_UnknownKey(t *testing.T) {
	m, err := verify.Build(pressureSizes, mesh.Values(pressure))
	require.NoError(t, err)

	_, err = m.Extrapolated("drag")
	assert.ErrorIs(t, err, verify.ErrUnknownKey)
	_, err = m.RelativeError("drag")
	assert.ErrorIs(t, err, verify.ErrUnknownKey)
	_, err = m.AbsRelativeError("drag")
	assert.ErrorIs(t, err, verify.ErrUnknownKey)
	_, err = m.Error("drag")
	assert.ErrorIs(t, err, verify.ErrUnknownKey)
	_, err = m.Uncertainty("drag")
	assert.ErrorIs(t, err, verify.ErrUnknownKey)
	_, err = m.Fit("drag")
	assert.ErrorIs(t, err, verify.ErrUnknownKey)
	_, ok := m.Order("drag")
	assert.False(t, ok)
	assert.False(t, m.IsFallback("drag"))
	assert.NoError(t, m.Status("drag"))
}

func TestNew(t *testing.T) {
	s, err := mesh.Normalize(mesh.Table{
		{Key: "cells", Values: []float64{1600, 400, 100}},
		{Key: "lift", Values: []float64{2, 5, 17}},
	}, nil, mesh.WithMeshKey("cells"), mesh.WithDimension(2))
	require.NoError(t, err)

	m, err := verify.New(s)
	require.NoError(t, err)
	assert.Same(t, s, m.Series())
	assert.Equal(t, "cells", m.MeshKey())
	assert.Equal(t, []float64{100, 400, 1600}, m.MeshSizes())
	p, ok := m.Order("lift")
	assert.True(t, ok)
	assert.InDelta(t, 2.0, p, 1e-9)

	_, err = verify.New(nil)
	assert.ErrorIs(t, err, verify.ErrNilSeries)
}

// TestModel_ConcurrentReads exercises the accessors from several goroutines.
func TestModel_ConcurrentReads(t *testing.T) {
	m, err := verify.Build(pressureSizes, mesh.Values(pressure))
	require.NoError(t, err)
	key := mesh.DefaultResponseKey
	want := snap(t, m)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				rel, err := m.RelativeError(key)
				u, uerr := m.Uncertainty(key)
				if err != nil || uerr != nil || !cmp.Equal(want.Relative[key], rel) || !cmp.Equal(want.Uncertainty[key], u) {
					t.Error("concurrent read diverged")

					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	assert.Panics(t, func() { verify.WithConvergence(nil) })
	assert.Panics(t, func() { verify.WithErrorEstimator(nil) })
	assert.Panics(t, func() { verify.WithUncertainty(nil) })
	assert.Panics(t, func() { verify.WithLogger(nil) })
	assert.Panics(t, func() { verify.WithMeshKey("") })
	assert.Panics(t, func() { verify.WithDimension(4) })
}
