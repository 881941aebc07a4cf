// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package regularizer implements the state-dependent impedance/
// regularization law of the relaxed-rigid contact model: given a point's
// penetration and velocity, the owning link's translational inertia, and
// the ten-knob parameter set, it produces a reference acceleration, a
// diagonal regularization block, and the effective stiffness/damping. The
// shape mirrors gofem's material-model packages (msolid): an Init-style
// parameter struct and a Calc-style function computing secant coefficients
// from a strain-like input, here penetration in place of strain.
package regularizer

import "math"

// epsilon guards the ξ+ε denominator in the regularization block; it is
// not meant to be tuned and is not exposed on Params.
const epsilon = 1e-12

// Params mirrors the scalar fields of rrcontact.ContactParams that the
// impedance law needs. It is a separate type (rather than importing the
// root package) so this package has no dependency on the orchestrator and
// can be tested and reused standalone.
type Params struct {
	TimeConstant       float64
	DampingCoefficient float64
	DMin               float64
	DMax               float64
	Width              float64
	Midpoint           float64
	Power              float64
	Stiffness          float64
	Damping            float64
	Mu                 float64
}

// Result is the per-point output of Regularize.
type Result struct {
	ARef [3]float64 // reference acceleration
	R    [3]float64 // diagonal regularization block, added to A's diagonal
	K    float64    // effective stiffness
	D    float64    // effective damping
}

// Impedance computes ξ(x) for x = |δ|/width, per the piecewise sigmoid of
// the relaxed-rigid contacts model. It is exported so callers (and tests)
// can predict the solver's analytic output without duplicating the
// formula.
func Impedance(x float64, p Params) float64 {
	mid := p.Midpoint
	pw := p.Power
	a := math.Pow(x, pw) / math.Pow(mid, pw-1)
	b := 1 - math.Pow(1-x, pw)/math.Pow(1-mid, pw-1)
	var y float64
	if x < mid {
		y = a
	} else {
		y = b
	}
	raw := p.DMin + y*(p.DMax-p.DMin)
	if raw < p.DMin {
		raw = p.DMin
	}
	if raw > p.DMax {
		raw = p.DMax
	}
	if x > 1 {
		return p.DMax
	}
	return raw
}

// EffectiveStiffnessDamping computes (K_f, D_f) from the override-or-derive
// branches of §4.4 step 2; exported for the same reason as Impedance.
func EffectiveStiffnessDamping(p Params) (kf, df float64) {
	if p.Stiffness < 0 {
		kf = -p.Stiffness / (p.DMax * p.DMax)
	} else {
		kf = 1 / math.Pow(p.DMax*p.TimeConstant*p.DampingCoefficient, 2)
	}
	if p.Damping < 0 {
		df = -p.Damping / p.DMax
	} else {
		df = 2 / (p.DMax * p.TimeConstant)
	}
	return
}

// Regularize implements §4.4 steps 1-5 for a single enabled point.
// inertiaDiag holds the three diagonal entries of the owning link's 3x3
// translational inertia block (M_L[:3,:3]); only the diagonal is used.
//
// Step 1's x = |position|/width is componentwise over position = (0, 0,
// δ): x_x = x_y = 0 and only x_z depends on the penetration δ, so ξ_x =
// ξ_y = ξ(0) = ξ_min while ξ_z = ξ(|δ|/width) is the one that actually
// responds to penetration depth. Collapsing this to a single scalar ξ
// would apply the normal-direction impedance to the tangential
// regularization entries R[0]/R[1] as well, which is not what §4.4
// specifies.
func Regularize(penetration float64, velocity [3]float64, inertiaDiag [3]float64, p Params) Result {
	position := [3]float64{0, 0, penetration}
	kf, df := EffectiveStiffnessDamping(p)

	var xi [3]float64
	for i := 0; i < 3; i++ {
		x := math.Abs(position[i]) / p.Width
		xi[i] = Impedance(x, p)
	}

	var aRef [3]float64
	for i := 0; i < 3; i++ {
		aRef[i] = -(df*velocity[i] + kf*xi[i]*position[i])
	}

	var r [3]float64
	for i := 0; i < 3; i++ {
		scale := (2 * p.Mu * p.Mu * (1 - xi[i]) / (xi[i] + epsilon)) * (1 + p.Mu*p.Mu)
		r[i] = scale / inertiaDiag[i]
	}

	if penetration >= 0 {
		aRef = [3]float64{}
		r = [3]float64{}
		kf, df = 0, 0
	}

	return Result{ARef: aRef, R: r, K: kf, D: df}
}
