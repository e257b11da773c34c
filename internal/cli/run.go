// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridverify/config"
	"github.com/katalvlaran/gridverify/internal/study"
	"github.com/katalvlaran/gridverify/verify"
)

type runFlags struct {
	preset      string
	model       string
	estimator   string
	uncertainty string
	strict      bool
	markdown    bool
}

func newRunCmd(root *rootFlags) *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run <study.yaml>",
		Short: "Verify a mesh refinement study",
		Example: `  # Richardson extrapolation with the grid convergence index
  gridverify run study.yaml

  # Power-law fit with a factor-of-safety band, as Markdown
  gridverify run study.yaml --model power_law --uncertainty factor_of_safety --markdown

  # Mean of all levels with a Student-t band
  gridverify run study.yaml --preset average`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Load(root.configPath)
			if err != nil {
				return err
			}
			applyRunFlags(cmd, flags, s)

			lg, err := s.Logger()
			if err != nil {
				return err
			}
			defer func() { _ = lg.Sync() }()

			opts, err := s.Options()
			if err != nil {
				return err
			}
			st, err := study.Load(args[0])
			if err != nil {
				return err
			}
			opts = append(opts, st.Options()...)
			opts = append(opts, verify.WithLogger(lg))

			m, err := verify.Build(st.Columns, nil, opts...)
			if err != nil {
				lg.Errorw("verification failed", "study", args[0], "err", err)

				return err
			}

			return render(cmd.OutOrStdout(), m, flags.markdown)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.preset, "preset", "", "strategy bundle (classic, average); replaces --model, --error and --uncertainty")
	f.StringVar(&flags.model, "model", "", "convergence model (richardson, power_law, polynomial, finest_value, ...)")
	f.StringVar(&flags.estimator, "error", "", "error estimator (relative, abs_relative, absolute)")
	f.StringVar(&flags.uncertainty, "uncertainty", "", "uncertainty estimator (gci, factor_of_safety, student_t)")
	f.BoolVar(&flags.strict, "strict", false, "fail on any convergence diagnostic")
	f.BoolVar(&flags.markdown, "markdown", false, "render Markdown tables")

	return cmd
}

// applyRunFlags overrides settings with the flags the user actually set.
func applyRunFlags(cmd *cobra.Command, flags *runFlags, s *config.Settings) {
	if cmd.Flags().Changed("preset") {
		s.Preset = flags.preset
	}
	if cmd.Flags().Changed("model") {
		s.Convergence.Model = flags.model
	}
	if cmd.Flags().Changed("error") {
		s.Error.Estimator = flags.estimator
	}
	if cmd.Flags().Changed("uncertainty") {
		s.Uncertainty.Estimator = flags.uncertainty
	}
	if cmd.Flags().Changed("strict") {
		s.Convergence.Strict = flags.strict
	}
}
