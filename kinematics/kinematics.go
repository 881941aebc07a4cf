// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kinematics defines the read-only capability set the contact
// solver requires from an external rigid-body library. The solver never
// hardwires a concrete implementation; it is parameterized over this
// interface the way gofem's fem package is parameterized over the Element
// interface rather than a concrete element type.
package kinematics

// Provider exposes, for a caller-chosen set of enabled collidable points,
// everything the relaxed-rigid contact solver needs to read from the
// kinematic/dynamic state of a floating-base articulated body. All
// per-point return values are indexed in the caller-supplied enabled-set
// order; Provider itself does not know about "enabled" vs "disabled"
// points, only about the order it was asked to report.
type Provider interface {
	// NumLinks returns the number of links in the model.
	NumLinks() int

	// NumJoints returns the number of joints (degrees of freedom beyond
	// the 6 floating-base coordinates).
	NumJoints() int

	// PointPositionsVelocities returns, for the requested points, world
	// position P and linear velocity V in mixed representation.
	PointPositionsVelocities(points []int) (P, V [][3]float64)

	// PointWorldTransforms returns the 4x4 world transform of each
	// requested point's mixed frame.
	PointWorldTransforms(points []int) [][4][4]float64

	// PointTranslationalJacobians returns, for each requested point, its
	// 3x(6+n) translational Jacobian in mixed representation.
	PointTranslationalJacobians(points []int) [][][]float64

	// PointTranslationalJacobianDerivatives returns the time derivative of
	// PointTranslationalJacobians.
	PointTranslationalJacobianDerivatives(points []int) [][][]float64

	// MassMatrix returns the (6+n)x(6+n) symmetric positive definite mass
	// matrix of the model at the current state.
	MassMatrix() [][]float64

	// GeneralizedVelocity returns ν, length 6+n, in mixed representation.
	GeneralizedVelocity() []float64

	// FreeGeneralizedAcceleration returns ν̇_free, length 6+n, in mixed
	// representation: the generalized acceleration under gravity plus the
	// given applied link and joint forces, in the absence of contact.
	// linkForces is NumLinks() x 6 (mixed representation); jointForces has
	// length NumJoints(). Either may be nil, meaning all-zero.
	FreeGeneralizedAcceleration(linkForces [][6]float64, jointForces []float64) []float64

	// LinkSpatialInertia returns the 6x6 spatial inertia of the given
	// link; only its upper-left 3x3 translational block is used by the
	// contact solver.
	LinkSpatialInertia(link int) [6][6]float64

	// PointOwnerLink returns the link index that rigidly carries the given
	// collidable point.
	PointOwnerLink(point int) int
}
