// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/katalvlaran/gridverify/convergence"
	"github.com/katalvlaran/gridverify/deviation"
	"github.com/katalvlaran/gridverify/mesh"
	"github.com/katalvlaran/gridverify/uncertainty"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "GRIDVERIFY_"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Settings is the complete binary configuration.
type Settings struct {
	// Preset, when set, replaces the three strategy names; see Presets.
	Preset      string              `koanf:"preset" yaml:"preset" validate:"omitempty,oneof=classic average"`
	Log         LogSettings         `koanf:"log" yaml:"log"`
	Mesh        MeshSettings        `koanf:"mesh" yaml:"mesh"`
	Convergence ConvergenceSettings `koanf:"convergence" yaml:"convergence"`
	Error       ErrorSettings       `koanf:"error" yaml:"error"`
	Uncertainty UncertaintySettings `koanf:"uncertainty" yaml:"uncertainty"`
}

// LogSettings configures the zap logger of binaries.
type LogSettings struct {
	Level string `koanf:"level" yaml:"level" validate:"oneof=debug info warn error"`
}

// MeshSettings configures normalization. An empty orientation is inferred
// from the mesh key.
type MeshSettings struct {
	Key                string  `koanf:"key" yaml:"key" validate:"required"`
	Orientation        string  `koanf:"orientation" yaml:"orientation" validate:"omitempty,oneof=size density"`
	Dimension          int     `koanf:"dimension" yaml:"dimension" validate:"min=1,max=3"`
	DuplicateTolerance float64 `koanf:"duplicate_tolerance" yaml:"duplicate_tolerance" validate:"min=0"`
}

// ConvergenceSettings selects and tunes the convergence model.
type ConvergenceSettings struct {
	Model          string  `koanf:"model" yaml:"model" validate:"required"`
	RatioTolerance float64 `koanf:"ratio_tolerance" yaml:"ratio_tolerance" validate:"min=0"`
	UniformOnly    bool    `koanf:"uniform_only" yaml:"uniform_only"`
	MaxIterations  int     `koanf:"max_iterations" yaml:"max_iterations" validate:"min=1"`
	SolveTolerance float64 `koanf:"solve_tolerance" yaml:"solve_tolerance" validate:"gt=0"`
	OrderMin       float64 `koanf:"order_min" yaml:"order_min" validate:"gt=0"`
	OrderMax       float64 `koanf:"order_max" yaml:"order_max" validate:"gtfield=OrderMin"`
	Strict         bool    `koanf:"strict" yaml:"strict"`
}

// ErrorSettings selects and tunes the error estimator.
type ErrorSettings struct {
	Estimator          string  `koanf:"estimator" yaml:"estimator" validate:"required"`
	ZeroThreshold      float64 `koanf:"zero_threshold" yaml:"zero_threshold" validate:"gt=0"`
	ReferenceMagnitude float64 `koanf:"reference_magnitude" yaml:"reference_magnitude" validate:"gt=0"`
}

// UncertaintySettings selects and tunes the uncertainty estimator. A zero
// Factor keeps the estimator's own default (the policy for factor_of_safety).
type UncertaintySettings struct {
	Estimator         string  `koanf:"estimator" yaml:"estimator" validate:"required"`
	Factor            float64 `koanf:"factor" yaml:"factor" validate:"min=0"`
	WellBehavedFactor float64 `koanf:"well_behaved_factor" yaml:"well_behaved_factor" validate:"gt=0"`
	MarginalFactor    float64 `koanf:"marginal_factor" yaml:"marginal_factor" validate:"gt=0"`
	TheoreticalOrder  float64 `koanf:"theoretical_order" yaml:"theoretical_order" validate:"gt=0"`
	OrderBand         float64 `koanf:"order_band" yaml:"order_band" validate:"min=0"`
	Significance      float64 `koanf:"significance" yaml:"significance" validate:"gt=0,lt=1"`
	Normalize         bool    `koanf:"normalize" yaml:"normalize"`
}

// Defaults returns the flattened default settings.
func Defaults() map[string]any {
	return map[string]any{
		"preset":    "",
		"log.level": "info",

		"mesh.key":                 mesh.DefaultMeshKey,
		"mesh.orientation":         "",
		"mesh.dimension":           mesh.DefaultDimension,
		"mesh.duplicate_tolerance": mesh.DefaultDuplicateTolerance,

		"convergence.model":           convergence.KindRichardson.String(),
		"convergence.ratio_tolerance": convergence.DefaultRatioTolerance,
		"convergence.uniform_only":    false,
		"convergence.max_iterations":  convergence.DefaultMaxIterations,
		"convergence.solve_tolerance": convergence.DefaultSolveTolerance,
		"convergence.order_min":       convergence.DefaultOrderMin,
		"convergence.order_max":       convergence.DefaultOrderMax,
		"convergence.strict":          false,

		"error.estimator":           deviation.KindRelative.String(),
		"error.zero_threshold":      deviation.DefaultZeroThreshold,
		"error.reference_magnitude": deviation.DefaultReferenceMagnitude,

		"uncertainty.estimator":           uncertainty.KindGridConvergenceIndex.String(),
		"uncertainty.factor":              0.0,
		"uncertainty.well_behaved_factor": uncertainty.DefaultWellBehavedFactor,
		"uncertainty.marginal_factor":     uncertainty.DefaultMarginalFactor,
		"uncertainty.theoretical_order":   uncertainty.DefaultTheoreticalOrder,
		"uncertainty.order_band":          uncertainty.DefaultOrderBand,
		"uncertainty.significance":        uncertainty.DefaultSignificance,
		"uncertainty.normalize":           false,
	}
}

// Load merges defaults, the YAML file at path (skipped when empty) and the
// environment, then validates the result.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")
	for key, value := range Defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate checks the struct tags and the strategy names.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}

			return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(msgs, "; "))
		}

		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if _, err := ParseConvergence(s.Convergence.Model); err != nil {
		return err
	}
	if _, err := ParseError(s.Error.Estimator); err != nil {
		return err
	}
	if _, err := ParseUncertainty(s.Uncertainty.Estimator); err != nil {
		return err
	}

	return nil
}

// envTransform maps GRIDVERIFY_SECTION__FIELD_NAME to section.field_name.
func envTransform(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}
