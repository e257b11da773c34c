// SPDX-License-Identifier: MIT

// Package cli implements the gridverify command line. It reads studies and
// settings, builds a verify.Model and prints its public accessors.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	noColor    bool
}

// NewRootCmd returns the gridverify command tree.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "gridverify",
		Short: "Discretization error and numerical uncertainty of mesh refinement studies",
		Long: `gridverify estimates the observed order of convergence, the extrapolated
mesh-independent value, per-level errors and an uncertainty band from a
mesh refinement study.

Settings are loaded with the following priority (highest to lowest):
  1. Command flags
  2. Environment variables (GRIDVERIFY_SECTION__FIELD)
  3. The file given with --config
  4. Built-in defaults`,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if flags.noColor {
				color.NoColor = true
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "YAML settings file")
	cmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(newRunCmd(flags), newConfigCmd(flags))

	return cmd
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}
