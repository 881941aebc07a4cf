// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rrcontact

// ContactPoint is the per-step, ephemeral state of one enabled collidable
// point: its kinematics, its penetration against the terrain, and the
// Jacobian rows coupling it to the generalized coordinates. It is built,
// consumed and discarded within a single ComputeContactForces call.
type ContactPoint struct {
	// Index in the caller-supplied enabled set (position within enabled,
	// not the raw collidable-point index known to the kinematics provider).
	Index int

	// Position and linear velocity, mixed representation: world-aligned
	// axes, origin at the point.
	Position [3]float64
	Velocity [3]float64

	// Penetration; negative means in contact, >= 0 means inactive.
	Penetration float64

	// OwnerLink is the index of the link this point is rigidly attached
	// to, used to look up the link's 3x3 translational inertia block.
	OwnerLink int

	// J and JDot are the 3x(6+n) translational Jacobian and its time
	// derivative, in mixed representation. Both are zeroed by the caller
	// whenever Penetration >= 0.
	J    [][]float64
	JDot [][]float64

	// WorldTransform is the 4x4 world transform of the point's mixed
	// frame (world-aligned axes, origin at the point).
	WorldTransform [4][4]float64
}

// Active reports whether the point is in contact this step.
func (c ContactPoint) Active() bool {
	return c.Penetration < 0
}

// DynamicsSnapshot is the per-step, ephemeral dynamic state of the
// articulated body: generalized velocity, free generalized acceleration,
// and the mass matrix.
type DynamicsSnapshot struct {
	// GeneralizedVelocity, length 6+n.
	GeneralizedVelocity []float64

	// FreeGeneralizedAcceleration (ν̇_free), length 6+n, including gravity
	// and applied link/joint forces.
	FreeGeneralizedAcceleration []float64

	// MassMatrix, (6+n)x(6+n), symmetric positive definite.
	MassMatrix [][]float64
}

// NDof returns the number of generalized coordinates (6+n).
func (d DynamicsSnapshot) NDof() int {
	return len(d.GeneralizedVelocity)
}
