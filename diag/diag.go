// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag formats the diagnostics produced by ComputeContactForces for
// human consumption, the way gofem's out package turns raw simulation
// results into printed tables and plots. Unlike out, diag defines no
// mutable global state of its own: Table and Summary are pure formatting
// steps over values the caller already has, and PlotConvergence draws
// through gosl/plt and writes a PNG file. None of them is called by
// ComputeContactForces, so the solver itself stays side-effect free.
package diag

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
)

// Table renders one line per contact point's world-frame wrench, in the
// teacher's io.Pf-based reporting style.
func Table(wrenches [][6]float64) string {
	s := io.Sf("%6s%14s%14s%14s%14s%14s%14s\n", "point", "fx", "fy", "fz", "mx", "my", "mz")
	for i, w := range wrenches {
		s += io.Sf("%6d%14.6e%14.6e%14.6e%14.6e%14.6e%14.6e\n", i, w[0], w[1], w[2], w[3], w[4], w[5])
	}
	return s
}

// Summary renders the solver's convergence diagnostics.
func Summary(diagnostics map[string]any) string {
	iters, _ := diagnostics["iterations"].(int)
	gnorm, _ := diagnostics["gradient_norm"].(float64)
	return io.Sf("iterations=%d  ||grad||=%.3e\n", iters, gnorm)
}

// PlotConvergence saves a semi-log plot of the gradient norm against
// iteration count to pngPath, in the teacher's plt-based plotting idiom
// (msolid/plotter.go). history is typically
// diagnostics["gradient_norm_history"] as returned by
// ComputeContactForces.
func PlotConvergence(history []float64, pngPath string) error {
	if len(history) == 0 {
		return chk.Err("diag: empty convergence history")
	}
	iters := make([]float64, len(history))
	logNorm := make([]float64, len(history))
	for i, v := range history {
		iters[i] = float64(i)
		if v <= 0 {
			v = 1e-300
		}
		logNorm[i] = math.Log10(v)
	}
	plt.Plot(iters, logNorm, "'b.-'")
	plt.Gll("iteration", "log10(||grad f||)", "")
	return plt.Save(pngPath)
}
