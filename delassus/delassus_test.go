// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delassus

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// identityMass returns an n x n identity matrix, the simplest mass matrix
// for which G = J J^T by hand.
func identityMass(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	return m
}

func TestAssembleSinglePointUnitMass(tst *testing.T) {
	chk.PrintTitle("AssembleSinglePointUnitMass")
	// one active point, 3 dof, J = identity so G = I and b = nuDotFree - aRef.
	jStack := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	jDotStack := [][]float64{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	}
	mass := identityMass(3)
	nu := []float64{0, 0, 0}
	nuDotFree := []float64{1, 2, 3}
	rDiag := []float64{0.1, 0.1, 0.1}
	aRef := []float64{0, 0, -5}

	sys, err := Assemble(jStack, jDotStack, mass, nu, nuDotFree, rDiag, aRef)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}

	wantA := [][]float64{
		{1.1, 0, 0},
		{0, 1.1, 0},
		{0, 0, 1.1},
	}
	for i := range wantA {
		chk.Vector(tst, "A row", 1e-10, sys.A[i], wantA[i])
	}
	chk.Vector(tst, "b", 1e-10, sys.B, []float64{1, 2, 8})
}

func TestAssembleZeroedInactiveRowsDoNotCouple(tst *testing.T) {
	chk.PrintTitle("AssembleZeroedInactiveRowsDoNotCouple")
	// two points, the second inactive (its Jacobian rows are zeroed by the
	// caller per the root package's invariant); its block of A and B must
	// come out identically zero and must not perturb the active point's
	// block.
	jStack := [][]float64{
		{1, 0},
		{0, 1},
		{0, 0},
		{0, 0},
	}
	jDotStack := [][]float64{
		{0, 0},
		{0, 0},
		{0, 0},
		{0, 0},
	}
	mass := identityMass(2)
	nu := []float64{0, 0}
	nuDotFree := []float64{1, 1}
	rDiag := []float64{0.5, 0.5, 0, 0}
	aRef := []float64{0, 0, 0, 0}

	sys, err := Assemble(jStack, jDotStack, mass, nu, nuDotFree, rDiag, aRef)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}

	chk.Scalar(tst, "A[2][2]", 1e-12, sys.A[2][2], 0)
	chk.Scalar(tst, "A[3][3]", 1e-12, sys.A[3][3], 0)
	chk.Scalar(tst, "A[0][2]", 1e-12, sys.A[0][2], 0)
	chk.Scalar(tst, "B[2]", 1e-12, sys.B[2], 0)
	chk.Scalar(tst, "B[3]", 1e-12, sys.B[3], 0)
	chk.Scalar(tst, "A[0][0]", 1e-12, sys.A[0][0], 1.5)
}
