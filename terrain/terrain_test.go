// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package terrain

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestFlatProbe(tst *testing.T) {
	chk.PrintTitle("FlatProbe")
	f := Flat{Elevation: 1.5}
	chk.Scalar(tst, "height", 1e-15, f.Height(10, -3), 1.5)
	chk.Vector(tst, "normal", 1e-15, f.Normal(10, -3)[:], []float64{0, 0, 1})
}

func flatGrid(n int, elevation float64) [][]float64 {
	z := make([][]float64, n)
	for i := range z {
		z[i] = make([]float64, n)
		for j := range z[i] {
			z[i][j] = elevation
		}
	}
	return z
}

func TestHeightFieldFlatGridMatchesFlat(tst *testing.T) {
	chk.PrintTitle("HeightFieldFlatGridMatchesFlat")
	h := HeightField{OriginX: 0, OriginY: 0, CellSize: 1, Z: flatGrid(4, 2.0)}
	chk.Scalar(tst, "height at node", 1e-12, h.Height(1, 1), 2.0)
	chk.Scalar(tst, "height interpolated", 1e-12, h.Height(0.5, 0.5), 2.0)
	chk.Vector(tst, "normal on flat grid", 1e-12, h.Normal(1.5, 1.5)[:], []float64{0, 0, 1})
}

func TestHeightFieldSlopedGridNormal(tst *testing.T) {
	chk.PrintTitle("HeightFieldSlopedGridNormal")
	// z increases by 1 per unit x, flat along y: a plane tilted about y.
	n := 4
	z := make([][]float64, n)
	for row := range z {
		z[row] = make([]float64, n)
		for col := range z[row] {
			z[row][col] = float64(col)
		}
	}
	h := HeightField{OriginX: 0, OriginY: 0, CellSize: 1, Z: z}
	normal := h.Normal(1.5, 1.5)
	if normal[0] >= 0 {
		tst.Errorf("expected negative x component tilting the normal against increasing slope, got %v", normal)
	}
	mag := normal[0]*normal[0] + normal[1]*normal[1] + normal[2]*normal[2]
	chk.Scalar(tst, "|normal|^2", 1e-10, mag, 1.0)
}

func TestHeightFieldClampsOutsideGrid(tst *testing.T) {
	chk.PrintTitle("HeightFieldClampsOutsideGrid")
	h := HeightField{OriginX: 0, OriginY: 0, CellSize: 1, Z: flatGrid(3, 5.0)}
	// far outside the grid should clamp to the nearest edge cell rather
	// than panic or extrapolate.
	got := h.Height(100, -100)
	chk.Scalar(tst, "clamped height", 1e-12, got, 5.0)
}
