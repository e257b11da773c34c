// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"github.com/katalvlaran/gridverify/convergence"
	"github.com/katalvlaran/gridverify/deviation"
	"github.com/katalvlaran/gridverify/logger"
	"github.com/katalvlaran/gridverify/mesh"
	"github.com/katalvlaran/gridverify/uncertainty"
	"github.com/katalvlaran/gridverify/verify"
)

// ParseConvergence resolves a convergence model name such as "richardson".
func ParseConvergence(name string) (convergence.Kind, error) {
	for _, k := range convergence.Kinds() {
		if k.String() == name {
			return k, nil
		}
	}

	return 0, fmt.Errorf("convergence model %q: %w", name, ErrUnknownStrategy)
}

// ParseError resolves an error estimator name such as "abs_relative".
func ParseError(name string) (deviation.Kind, error) {
	for _, k := range deviation.Kinds() {
		if k.String() == name {
			return k, nil
		}
	}

	return 0, fmt.Errorf("error estimator %q: %w", name, ErrUnknownStrategy)
}

// ParseUncertainty resolves an uncertainty estimator name such as "gci".
func ParseUncertainty(name string) (uncertainty.Kind, error) {
	for _, k := range uncertainty.Kinds() {
		if k.String() == name {
			return k, nil
		}
	}

	return 0, fmt.Errorf("uncertainty estimator %q: %w", name, ErrUnknownStrategy)
}

// Strategy names one convergence model, error estimator and uncertainty
// estimator.
type Strategy struct {
	Model       string
	Error       string
	Uncertainty string
}

// Presets are the named strategy bundles accepted by Settings.Preset. They
// match verify.Classic and verify.Average.
var Presets = map[string]Strategy{
	"classic": {
		Model:       convergence.KindPowerLaw.String(),
		Error:       deviation.KindAbsolute.String(),
		Uncertainty: uncertainty.KindGridConvergenceIndex.String(),
	},
	"average": {
		Model:       convergence.KindAverageValue.String(),
		Error:       deviation.KindAbsolute.String(),
		Uncertainty: uncertainty.KindStudentT.String(),
	},
}

// Strategy returns the strategy names in effect: the preset when one is set,
// otherwise the individual settings.
func (s *Settings) Strategy() Strategy {
	if p, ok := Presets[s.Preset]; ok {
		return p
	}

	return Strategy{
		Model:       s.Convergence.Model,
		Error:       s.Error.Estimator,
		Uncertainty: s.Uncertainty.Estimator,
	}
}

// Options validates s and converts it into verify options.
func (s *Settings) Options() ([]verify.Option, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	st := s.Strategy()
	model, err := s.model(st.Model)
	if err != nil {
		return nil, err
	}
	errEst, err := s.errorEstimator(st.Error)
	if err != nil {
		return nil, err
	}
	unc, err := s.uncertaintyEstimator(st.Uncertainty)
	if err != nil {
		return nil, err
	}

	opts := []verify.Option{
		verify.WithMeshKey(s.Mesh.Key),
		verify.WithDimension(s.Mesh.Dimension),
		verify.WithDuplicateTolerance(s.Mesh.DuplicateTolerance),
		verify.WithConvergence(model),
		verify.WithErrorEstimator(errEst),
		verify.WithUncertainty(unc),
	}
	switch s.Mesh.Orientation {
	case "size":
		opts = append(opts, verify.WithOrientation(mesh.Size))
	case "density":
		opts = append(opts, verify.WithOrientation(mesh.Density))
	}
	if s.Convergence.Strict {
		opts = append(opts, verify.WithStrictConvergence())
	}

	return opts, nil
}

// Logger builds the zap logger selected by Log.Level.
func (s *Settings) Logger() (logger.Logger, error) {
	lvl, err := logger.ParseLevel(s.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log level: %v", ErrInvalidSettings, err)
	}

	return logger.Config{Level: lvl}.New()
}

func (s *Settings) model(name string) (convergence.Model, error) {
	kind, err := ParseConvergence(name)
	if err != nil {
		return nil, err
	}
	c := s.Convergence
	opts := []convergence.Option{
		convergence.WithRatioTolerance(c.RatioTolerance),
		convergence.WithMaxIterations(c.MaxIterations),
		convergence.WithSolveTolerance(c.SolveTolerance),
		convergence.WithOrderLimits(c.OrderMin, c.OrderMax),
	}
	if c.UniformOnly {
		opts = append(opts, convergence.WithUniformRefinement())
	}

	switch kind {
	case convergence.KindRichardson:
		return convergence.NewRichardson(opts...), nil
	case convergence.KindPowerLaw:
		return convergence.NewPowerLaw(opts...), nil
	case convergence.KindPolynomial:
		return convergence.NewPolynomial(), nil
	case convergence.KindFinestValue:
		return convergence.FinestValue(), nil
	case convergence.KindAverageValue:
		return convergence.AverageValue(), nil
	case convergence.KindMaximumValue:
		return convergence.MaximumValue(), nil
	default:
		return convergence.MinimumValue(), nil
	}
}

func (s *Settings) errorEstimator(name string) (deviation.Estimator, error) {
	kind, err := ParseError(name)
	if err != nil {
		return nil, err
	}
	opts := []deviation.Option{
		deviation.WithZeroThreshold(s.Error.ZeroThreshold),
		deviation.WithReferenceMagnitude(s.Error.ReferenceMagnitude),
	}

	switch kind {
	case deviation.KindAbsRelative:
		return deviation.NewAbsRelative(opts...), nil
	case deviation.KindAbsolute:
		return deviation.NewAbsolute(), nil
	default:
		return deviation.NewRelative(opts...), nil
	}
}

func (s *Settings) uncertaintyEstimator(name string) (uncertainty.Estimator, error) {
	kind, err := ParseUncertainty(name)
	if err != nil {
		return nil, err
	}
	u := s.Uncertainty
	opts := []uncertainty.Option{
		uncertainty.WithFactors(u.WellBehavedFactor, u.MarginalFactor),
		uncertainty.WithTheoreticalOrder(u.TheoreticalOrder),
		uncertainty.WithOrderBand(u.OrderBand),
		uncertainty.WithSignificance(u.Significance),
	}
	if u.Factor > 0 {
		opts = append(opts, uncertainty.WithFactor(u.Factor))
	}
	if u.Normalize {
		opts = append(opts, uncertainty.WithNormalize())
	}

	switch kind {
	case uncertainty.KindFactorOfSafety:
		return uncertainty.NewFactorOfSafety(opts...), nil
	case uncertainty.KindStudentT:
		return uncertainty.NewStudentT(opts...), nil
	default:
		return uncertainty.NewGridConvergenceIndex(opts...), nil
	}
}
