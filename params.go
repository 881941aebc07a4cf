// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rrcontact implements the relaxed-rigid contact solver: given the
// instantaneous kinematic/dynamic state of a floating-base articulated body
// and a set of candidate contact points with a terrain, it produces 3-D
// contact forces enforcing unilateral non-penetration, Coulomb friction and
// a tunable constraint-stabilization law, by minimizing a regularized
// quadratic form with an L-BFGS optimizer.
package rrcontact

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// ContactParams holds the ten scalar knobs of the impedance/friction law.
// It is immutable once constructed and is meant to be configured once per
// simulation and reused across steps.
type ContactParams struct {
	TimeConstant       float64 // Ω, constraint-stabilization time scale
	DampingCoefficient float64 // ζ, dimensionless damping ratio
	DMin               float64 // ξ_min, impedance clamp lower bound
	DMax               float64 // ξ_max, impedance clamp upper bound
	Width              float64 // width of the impedance sigmoid
	Midpoint           float64 // midpoint of the impedance sigmoid, in (0,1)
	Power              float64 // p, shape of the impedance sigmoid
	Stiffness          float64 // K_cfg; negative => explicit spring
	Damping            float64 // D_cfg; negative => explicit damper
	Mu                 float64 // μ, Coulomb friction coefficient
}

// DefaultContactParams returns the reference defaults from the relaxed
// rigid contacts model.
func DefaultContactParams() ContactParams {
	return ContactParams{
		TimeConstant:       0.01,
		DampingCoefficient: 1.0,
		DMin:               0.9,
		DMax:               0.95,
		Width:              1e-4,
		Midpoint:           0.1,
		Power:              1.0,
		Stiffness:          0,
		Damping:            0,
		Mu:                 0.5,
	}
}

// Option mutates a ContactParams away from its defaults. NewContactParams
// applies options over DefaultContactParams and validates the result.
type Option func(*ContactParams)

// WithTimeConstant sets Ω.
func WithTimeConstant(v float64) Option { return func(p *ContactParams) { p.TimeConstant = v } }

// WithDampingCoefficient sets ζ.
func WithDampingCoefficient(v float64) Option {
	return func(p *ContactParams) { p.DampingCoefficient = v }
}

// WithImpedanceRange sets ξ_min and ξ_max.
func WithImpedanceRange(min, max float64) Option {
	return func(p *ContactParams) { p.DMin, p.DMax = min, max }
}

// WithSigmoidShape sets width, midpoint and power of the impedance profile.
func WithSigmoidShape(width, midpoint, power float64) Option {
	return func(p *ContactParams) { p.Width, p.Midpoint, p.Power = width, midpoint, power }
}

// WithStiffnessDamping sets the explicit-spring/damper override fields.
func WithStiffnessDamping(stiffness, damping float64) Option {
	return func(p *ContactParams) { p.Stiffness, p.Damping = stiffness, damping }
}

// WithFriction sets μ.
func WithFriction(mu float64) Option { return func(p *ContactParams) { p.Mu = mu } }

// NewContactParams builds a ContactParams from the reference defaults plus
// the given options, and rejects it with a configuration error if it is
// outside the ranges enforced by Validate. Per §7 of the contact solver
// design, this is the only place such an error can originate — the solve
// path itself performs no validation.
func NewContactParams(opts ...Option) (ContactParams, error) {
	p := DefaultContactParams()
	for _, opt := range opts {
		opt(&p)
	}
	if err := p.Validate(); err != nil {
		return ContactParams{}, err
	}
	return p, nil
}

// Validate reports a configuration error if any field is outside its valid
// range. It does not guard against Power < 1, which the underlying
// impedance profile tolerates numerically but may not shape as intended;
// callers should keep Power >= 1.
func (p ContactParams) Validate() error {
	switch {
	case p.TimeConstant < 0:
		return chk.Err("rrcontact: TimeConstant must be >= 0, got %g", p.TimeConstant)
	case p.DampingCoefficient <= 0:
		return chk.Err("rrcontact: DampingCoefficient must be > 0, got %g", p.DampingCoefficient)
	case p.DMin < 0:
		return chk.Err("rrcontact: DMin must be >= 0, got %g", p.DMin)
	case p.DMax > 1:
		return chk.Err("rrcontact: DMax must be <= 1, got %g", p.DMax)
	case p.DMin > p.DMax:
		return chk.Err("rrcontact: DMin (%g) must be <= DMax (%g)", p.DMin, p.DMax)
	case p.Width < 0:
		return chk.Err("rrcontact: Width must be >= 0, got %g", p.Width)
	case p.Midpoint < 0:
		return chk.Err("rrcontact: Midpoint must be >= 0, got %g", p.Midpoint)
	case p.Power < 0:
		return chk.Err("rrcontact: Power must be >= 0, got %g", p.Power)
	case p.Mu < 0:
		return chk.Err("rrcontact: Mu must be >= 0, got %g", p.Mu)
	}
	return nil
}

// Key returns a value comparable with ==, suitable for use as a map key by
// an outer caching layer, built from the bit patterns of the ten scalar
// fields rather than from any derived hash.
func (p ContactParams) Key() [10]uint64 {
	return [10]uint64{
		math.Float64bits(p.TimeConstant),
		math.Float64bits(p.DampingCoefficient),
		math.Float64bits(p.DMin),
		math.Float64bits(p.DMax),
		math.Float64bits(p.Width),
		math.Float64bits(p.Midpoint),
		math.Float64bits(p.Power),
		math.Float64bits(p.Stiffness),
		math.Float64bits(p.Damping),
		math.Float64bits(p.Mu),
	}
}
