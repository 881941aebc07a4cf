// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wrench converts a 6-D wrench from the mixed representation (axes
// aligned with world, origin at a point) to the world (inertial-fixed)
// representation. This is the one representation-conversion primitive the
// contact solver needs that spec.md names as "reused from the external
// library"; it is implemented directly here because it is a pure cross
// product, not something specific to any rigid-body backend.
package wrench

// MixedToInertial lifts the 6-D wrench f (3 linear components followed by
// 3 moment components, expressed in a frame whose axes are world-aligned
// and whose origin is the contact point) to the world-frame wrench about
// the world origin, given the point's 4x4 world transform worldHPoint
// (only its translation column is used).
func MixedToInertial(f [6]float64, worldHPoint [4][4]float64) [6]float64 {
	p := [3]float64{worldHPoint[0][3], worldHPoint[1][3], worldHPoint[2][3]}
	force := [3]float64{f[0], f[1], f[2]}
	moment := cross(p, force)
	return [6]float64{
		force[0], force[1], force[2],
		f[3] + moment[0], f[4] + moment[1], f[5] + moment[2],
	}
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
