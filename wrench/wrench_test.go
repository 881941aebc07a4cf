// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wrench

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func identityTransformAt(x, y, z float64) [4][4]float64 {
	return [4][4]float64{
		{1, 0, 0, x},
		{0, 1, 0, y},
		{0, 0, 1, z},
		{0, 0, 0, 1},
	}
}

func TestMixedToInertialAtOriginIsUnchanged(tst *testing.T) {
	chk.PrintTitle("MixedToInertialAtOriginIsUnchanged")
	f := [6]float64{1, 2, 3, 0.1, 0.2, 0.3}
	w := MixedToInertial(f, identityTransformAt(0, 0, 0))
	chk.Vector(tst, "wrench", 1e-14, w[:], f[:])
}

func TestMixedToInertialAddsMomentArm(tst *testing.T) {
	chk.PrintTitle("MixedToInertialAddsMomentArm")
	// a pure force along z applied at (1, 0, 0) produces a moment about y
	// equal to p x f = (1,0,0) x (0,0,1) = (0*1-0*0, 0*0-1*1, 1*0-0*0) = (0,-1,0)
	f := [6]float64{0, 0, 1, 0, 0, 0}
	w := MixedToInertial(f, identityTransformAt(1, 0, 0))
	chk.Vector(tst, "force", 1e-14, w[:3], []float64{0, 0, 1})
	chk.Vector(tst, "moment", 1e-14, w[3:], []float64{0, -1, 0})
}

func TestMixedToInertialPreservesForce(tst *testing.T) {
	chk.PrintTitle("MixedToInertialPreservesForce")
	f := [6]float64{3, -4, 5, 0, 0, 0}
	w := MixedToInertial(f, identityTransformAt(2, 2, 2))
	chk.Vector(tst, "force", 1e-14, w[:3], f[:3])
}
