// SPDX-License-Identifier: MIT

package verify

import (
	"github.com/katalvlaran/gridverify/convergence"
	"github.com/katalvlaran/gridverify/deviation"
	"github.com/katalvlaran/gridverify/uncertainty"
)

// Classic selects the power-law fit, absolute errors f_i − f0 and the grid
// convergence index. With three levels the fit equals generalized Richardson.
// Options that follow it override single strategies.
func Classic() Option {
	return func(o *Options) {
		o.model = convergence.NewPowerLaw()
		o.errEst = deviation.NewAbsolute()
		o.unc = uncertainty.NewGridConvergenceIndex()
	}
}

// Average selects the mean over all levels, absolute errors and the
// Student-t band. It needs no observed order.
func Average() Option {
	return func(o *Options) {
		o.model = convergence.AverageValue()
		o.errEst = deviation.NewAbsolute()
		o.unc = uncertainty.NewStudentT()
	}
}
