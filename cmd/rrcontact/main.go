// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command rrcontact loads a scenario snapshot from a JSON file and runs one
// contact-force solve against a flat terrain at a given elevation, printing the
// resulting wrenches and convergence diagnostics.
package main

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/rrcontact"
	"github.com/cpmech/rrcontact/diag"
	"github.com/cpmech/rrcontact/lbfgs"
	"github.com/cpmech/rrcontact/scenario"
	"github.com/cpmech/rrcontact/terrain"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".json", true)
	mu := io.ArgToFloat(1, 0.5)
	elevation := io.ArgToFloat(2, 0.0)
	verbose := io.ArgToBool(3, true)
	plotPath := io.ArgToString(4, "")

	if verbose {
		io.PfWhite("\nrrcontact -- relaxed-rigid contact force solver\n\n")
		io.Pf("%v\n", io.ArgsTable(
			"scenario file", "fnamepath", fnamepath,
			"friction coefficient", "mu", mu,
			"flat terrain elevation", "elevation", elevation,
			"show messages", "verbose", verbose,
			"convergence plot path", "plotPath", plotPath,
		))
	}

	snap, err := scenario.Load(fnamepath)
	if err != nil {
		chk.Panic("failed to load scenario:\n%v", err)
	}

	params, err := rrcontact.NewContactParams(rrcontact.WithFriction(mu))
	if err != nil {
		chk.Panic("invalid contact parameters:\n%v", err)
	}

	enabled := make([]int, len(snap.Positions))
	for i := range enabled {
		enabled[i] = i
	}

	probe := terrain.Flat{Elevation: elevation}
	wrenches, diagnostics, err := rrcontact.ComputeContactForces(
		snap, probe, params, enabled, nil, nil, lbfgs.DefaultOptions())
	if err != nil {
		chk.Panic("contact solve failed:\n%v", err)
	}

	if verbose {
		io.Pf("\n%v\n", diag.Table(wrenches))
		io.Pf("%v\n", diag.Summary(diagnostics))
	}

	if plotPath != "" {
		history, _ := diagnostics["gradient_norm_history"].([]float64)
		if err := diag.PlotConvergence(history, plotPath); err != nil {
			chk.Panic("failed to save convergence plot:\n%v", err)
		}
	}
}
