// SPDX-License-Identifier: MIT

// Command gridverify verifies mesh refinement studies; see internal/cli.
package main

import (
	"os"

	"github.com/katalvlaran/gridverify/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
