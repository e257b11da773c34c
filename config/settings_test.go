package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridverify/config"
	"github.com/katalvlaran/gridverify/convergence"
	"github.com/katalvlaran/gridverify/deviation"
	"github.com/katalvlaran/gridverify/mesh"
	"github.com/katalvlaran/gridverify/uncertainty"
	"github.com/katalvlaran/gridverify/verify"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridverify.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	s, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, mesh.DefaultMeshKey, s.Mesh.Key)
	assert.Equal(t, mesh.DefaultDimension, s.Mesh.Dimension)
	assert.Equal(t, "richardson", s.Convergence.Model)
	assert.Equal(t, convergence.DefaultRatioTolerance, s.Convergence.RatioTolerance)
	assert.Equal(t, convergence.DefaultMaxIterations, s.Convergence.MaxIterations)
	assert.Equal(t, "relative", s.Error.Estimator)
	assert.Equal(t, "gci", s.Uncertainty.Estimator)
	assert.Equal(t, uncertainty.DefaultSignificance, s.Uncertainty.Significance)
	assert.False(t, s.Convergence.Strict)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
mesh:
  key: cells
  dimension: 2
convergence:
  model: power_law
  order_max: 6
uncertainty:
  estimator: factor_of_safety
  factor: 1.5
`)
	t.Setenv("GRIDVERIFY_CONVERGENCE__RATIO_TOLERANCE", "0.05")
	t.Setenv("GRIDVERIFY_ERROR__ESTIMATOR", "abs_relative")
	t.Setenv("GRIDVERIFY_MESH__KEY", "elements")

	s, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "elements", s.Mesh.Key)
	assert.Equal(t, 2, s.Mesh.Dimension)
	assert.Equal(t, "power_law", s.Convergence.Model)
	assert.Equal(t, 6.0, s.Convergence.OrderMax)
	assert.Equal(t, convergence.DefaultOrderMin, s.Convergence.OrderMin)
	assert.Equal(t, 0.05, s.Convergence.RatioTolerance)
	assert.Equal(t, "abs_relative", s.Error.Estimator)
	assert.Equal(t, "factor_of_safety", s.Uncertainty.Estimator)
	assert.Equal(t, 1.5, s.Uncertainty.Factor)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"bad level", "log: {level: loud}", config.ErrInvalidSettings},
		{"bad dimension", "mesh: {dimension: 4}", config.ErrInvalidSettings},
		{"bad orientation", "mesh: {orientation: sideways}", config.ErrInvalidSettings},
		{"inverted order limits", "convergence: {order_min: 3, order_max: 2}", config.ErrInvalidSettings},
		{"bad significance", "uncertainty: {significance: 1.5}", config.ErrInvalidSettings},
		{"zero threshold", "error: {zero_threshold: 0}", config.ErrInvalidSettings},
		{"unknown preset", "preset: fancy", config.ErrInvalidSettings},
		{"unknown model", "convergence: {model: spline}", config.ErrUnknownStrategy},
		{"unknown estimator", "error: {estimator: squared}", config.ErrUnknownStrategy},
		{"unknown uncertainty", "uncertainty: {estimator: bootstrap}", config.ErrUnknownStrategy},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tc.body))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// TestSettings_Options verifies that the settings drive the pipeline.
func TestSettings_Options(t *testing.T) {
	path := writeConfig(t, `
mesh:
  key: h
  orientation: size
convergence:
  model: richardson
  strict: true
error:
  estimator: absolute
uncertainty:
  estimator: student_t
`)
	s, err := config.Load(path)
	require.NoError(t, err)
	opts, err := s.Options()
	require.NoError(t, err)

	m, err := verify.Build(mesh.Table{
		{Key: "h", Values: []float64{4, 2, 1}},
		{Key: "drag", Values: []float64{17, 5, 2}},
	}, nil, opts...)
	require.NoError(t, err)

	c, e, u := m.Strategies()
	assert.Equal(t, convergence.KindRichardson, c)
	assert.Equal(t, deviation.KindAbsolute, e)
	assert.Equal(t, uncertainty.KindStudentT, u)
	assert.Equal(t, "h", m.MeshKey())

	_, err = verify.Build(mesh.Table{
		{Key: "h", Values: []float64{4, 2, 1}},
		{Key: "drag", Values: []float64{1, 3, 2}},
	}, nil, opts...)
	assert.ErrorIs(t, err, verify.ErrStrictConvergence)
}

func TestSettings_OptionsEveryStrategy(t *testing.T) {
	for _, ck := range convergence.Kinds() {
		for _, ek := range deviation.Kinds() {
			s, err := config.Load("")
			require.NoError(t, err)
			s.Convergence.Model = ck.String()
			s.Error.Estimator = ek.String()
			s.Uncertainty.Estimator = uncertainty.KindFactorOfSafety.String()

			opts, err := s.Options()
			require.NoError(t, err)
			m, err := verify.Build(mesh.Sizes{4, 2, 1}, mesh.Values{17, 5, 2}, opts...)
			require.NoError(t, err, "%s/%s", ck, ek)
			c, e, _ := m.Strategies()
			assert.Equal(t, ck, c)
			assert.Equal(t, ek, e)
		}
	}
}

// TestSettings_Preset verifies that a preset replaces the strategy names.
func TestSettings_Preset(t *testing.T) {
	s, err := config.Load(writeConfig(t, "preset: average\nconvergence: {model: polynomial}\n"))
	require.NoError(t, err)
	assert.Equal(t, config.Presets["average"], s.Strategy())

	opts, err := s.Options()
	require.NoError(t, err)
	m, err := verify.Build(mesh.Sizes{4, 2, 1}, mesh.Values{34, 10, 4}, opts...)
	require.NoError(t, err)
	c, e, u := m.Strategies()
	assert.Equal(t, convergence.KindAverageValue, c)
	assert.Equal(t, deviation.KindAbsolute, e)
	assert.Equal(t, uncertainty.KindStudentT, u)

	s.Preset = "classic"
	opts, err = s.Options()
	require.NoError(t, err)
	m, err = verify.Build(mesh.Sizes{4, 2, 1}, mesh.Values{34, 10, 4}, opts...)
	require.NoError(t, err)
	c, e, u = m.Strategies()
	assert.Equal(t, convergence.KindPowerLaw, c)
	assert.Equal(t, deviation.KindAbsolute, e)
	assert.Equal(t, uncertainty.KindGridConvergenceIndex, u)

	s.Preset = ""
	assert.Equal(t, "polynomial", s.Strategy().Model)
}

func TestSettings_NormalizedGCI(t *testing.T) {
	s, err := config.Load(writeConfig(t, "uncertainty: {normalize: true}\n"))
	require.NoError(t, err)
	assert.True(t, s.Uncertainty.Normalize)

	opts, err := s.Options()
	require.NoError(t, err)
	m, err := verify.Build(mesh.Sizes{4, 2, 1}, mesh.Values{17, 5, 2}, opts...)
	require.NoError(t, err)
	band, err := m.Uncertainty(mesh.DefaultResponseKey)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.25 * 16 / 3 / 17, 1.25 * 4 / 3 / 5, 1.25 / 3 / 2}, band, 1e-9)
}

func TestSettings_OptionsRejectsInvalid(t *testing.T) {
	s, err := config.Load("")
	require.NoError(t, err)
	s.Mesh.Dimension = 0

	_, err = s.Options()
	assert.ErrorIs(t, err, config.ErrInvalidSettings)
}

func TestSettings_Logger(t *testing.T) {
	s, err := config.Load("")
	require.NoError(t, err)

	lg, err := s.Logger()
	require.NoError(t, err)
	assert.NotNil(t, lg)
}

func TestParse(t *testing.T) {
	k, err := config.ParseConvergence("average_value")
	require.NoError(t, err)
	assert.Equal(t, convergence.KindAverageValue, k)

	_, err = config.ParseError("nope")
	assert.ErrorIs(t, err, config.ErrUnknownStrategy)

	u, err := config.ParseUncertainty("student_t")
	require.NoError(t, err)
	assert.Equal(t, uncertainty.KindStudentT, u)
}
