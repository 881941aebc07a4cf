// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package terrain provides the height/normal query surface the contact
// solver needs from terrain geometry, plus two concrete, total and
// deterministic implementations. Terrain geometry construction itself
// (meshes, heightmaps from sensor data, ...) is out of scope, the same way
// gofem treats mesh generation as the job of an external tool feeding its
// JSON input files.
package terrain

import "math"

// Probe is the capability the contact solver needs from a terrain: height
// and outward unit normal at a given (x, y). Implementations must be total
// (defined for every x, y) and deterministic; there are no error returns.
type Probe interface {
	// Height returns the terrain elevation at (x, y).
	Height(x, y float64) float64

	// Normal returns the outward unit normal at (x, y).
	Normal(x, y float64) [3]float64
}

// Flat is a horizontal plane at a fixed elevation.
type Flat struct {
	Elevation float64
}

// Height implements Probe.
func (f Flat) Height(x, y float64) float64 {
	return f.Elevation
}

// Normal implements Probe.
func (f Flat) Normal(x, y float64) [3]float64 {
	return [3]float64{0, 0, 1}
}

// HeightField is a regular-grid heightmap, queried with bilinear
// interpolation; its normal is estimated from the local gradient of the
// interpolated surface. Outside the grid the nearest edge cell is used, so
// the probe stays total.
type HeightField struct {
	// OriginX, OriginY is the (x, y) of grid cell (0, 0).
	OriginX, OriginY float64
	// CellSize is the grid spacing (square cells) along x and y.
	CellSize float64
	// Z[row][col] holds elevations; row varies with y, col varies with x.
	Z [][]float64
}

func (h HeightField) cell(x, y float64) (col, row int, fx, fy float64) {
	nx := len(h.Z[0])
	ny := len(h.Z)
	gx := (x - h.OriginX) / h.CellSize
	gy := (y - h.OriginY) / h.CellSize
	col = int(math.Floor(gx))
	row = int(math.Floor(gy))
	fx = gx - float64(col)
	fy = gy - float64(row)
	if col < 0 {
		col, fx = 0, 0
	}
	if row < 0 {
		row, fy = 0, 0
	}
	if col > nx-2 {
		col, fx = nx-2, 1
	}
	if row > ny-2 {
		row, fy = ny-2, 1
	}
	return
}

// Height implements Probe via bilinear interpolation.
func (h HeightField) Height(x, y float64) float64 {
	col, row, fx, fy := h.cell(x, y)
	z00 := h.Z[row][col]
	z10 := h.Z[row][col+1]
	z01 := h.Z[row+1][col]
	z11 := h.Z[row+1][col+1]
	z0 := z00*(1-fx) + z10*fx
	z1 := z01*(1-fx) + z11*fx
	return z0*(1-fy) + z1*fy
}

// Normal implements Probe via the gradient of the bilinear patch.
func (h HeightField) Normal(x, y float64) [3]float64 {
	col, row, fx, fy := h.cell(x, y)
	z00 := h.Z[row][col]
	z10 := h.Z[row][col+1]
	z01 := h.Z[row+1][col]
	z11 := h.Z[row+1][col+1]
	dzdx := ((z10-z00)*(1-fy) + (z11-z01)*fy) / h.CellSize
	dzdy := ((z01-z00)*(1-fx) + (z11-z10)*fx) / h.CellSize
	n := [3]float64{-dzdx, -dzdy, 1}
	norm := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	return [3]float64{n[0] / norm, n[1] / norm, n[2] / norm}
}
