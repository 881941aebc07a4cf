// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ana provides closed-form reference predictions for the simplest
// contact configurations, the way gofem's own ana package provides
// closed-form stress/displacement solutions (e.g. pressurised_cylinder.go)
// that its tests compare the finite-element solution against via
// chk.AnaNum. Here the reference is the linear Hunt/Crossley prediction for
// a single active point, used by the contact solver's single-active-point
// and mixed two-point property tests.
package ana

import "github.com/cpmech/rrcontact/regularizer"

// HuntCrossleyForceZ returns the closed-form vertical contact force
// K_f * ξ * |δ| + D_f * (-vz) for a single active point with penetration
// δ < 0 and vertical velocity vz, under the given regularizer parameters.
// This equals the z-component of the reference acceleration a_ref of
// regularizer.Regularize. It is not the L-BFGS warm start, which is
// K_f * δ + D_f * vz (no ξ factor, opposite sign). For a single,
// decoupled point with unit mass the solver converges to this value
// divided by (1 + R_z), which is what the solver's property tests check.
func HuntCrossleyForceZ(delta, vz float64, p regularizer.Params) float64 {
	x := -delta / p.Width
	xi := regularizer.Impedance(x, p)
	kf, df := regularizer.EffectiveStiffnessDamping(p)
	return kf*xi*(-delta) - df*vz
}
