// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package delassus assembles the contact-space quadratic form A x + b whose
// minimizer the L-BFGS solver produces: the Delassus operator G = J M⁻¹ Jᵀ
// plus the diagonal regularizer, and the free-acceleration offset b.
package delassus

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// invTol is the Tikhonov regularization tolerance passed to the
// generalized-inverse solve, matching the tolerance used by gofem's own
// la.MatInvG callers (msolid/princstrainsup.go, shp/algos.go) for
// inverting matrices that may be singular or ill-conditioned.
const invTol = 1e-10

// System is the assembled quadratic-form data: A (3n_c x 3n_c) and b
// (length 3n_c), such that the contact forces minimize ||A x + b||^2.
type System struct {
	A [][]float64
	B []float64
}

// Assemble builds the Delassus operator and the free-acceleration offset.
// jStack and jDotStack are the vertical stacks of the per-point 3x(6+n)
// Jacobians and their time derivatives, with inactive rows already zeroed
// by the caller. rDiag is the length-3n_c diagonal regularizer (§4.4 step
// 4) and aRef is the length-3n_c reference acceleration (§4.4 step 3). M is
// the (6+n)x(6+n) mass matrix, nu is the generalized velocity and nuDotFree
// is the free generalized acceleration.
func Assemble(jStack, jDotStack [][]float64, mass [][]float64, nu, nuDotFree, rDiag, aRef []float64) (System, error) {
	n3 := len(jStack)
	ndof := len(nu)

	// G = J M^-1 J^T, computed via a Tikhonov-regularized generalized
	// inverse of M rather than a direct inverse, for robustness when
	// contacts (and therefore rows of J) are redundant or M is
	// ill-conditioned; see gofem's la.MatInvG callers for the same idiom.
	massInv := la.MatAlloc(ndof, ndof)
	if err := la.MatInvG(massInv, mass, invTol); err != nil {
		return System{}, chk.Err("delassus: failed to invert mass matrix: %v", err)
	}

	// X = M^-1 J^T, shape ndof x n3.
	x := la.MatAlloc(ndof, n3)
	for i := 0; i < ndof; i++ {
		for j := 0; j < n3; j++ {
			var sum float64
			for k := 0; k < ndof; k++ {
				sum += massInv[i][k] * jStack[j][k]
			}
			x[i][j] = sum
		}
	}

	// G = J X, shape n3 x n3.
	a := la.MatAlloc(n3, n3)
	for i := 0; i < n3; i++ {
		for j := 0; j < n3; j++ {
			var sum float64
			for k := 0; k < ndof; k++ {
				sum += jStack[i][k] * x[k][j]
			}
			a[i][j] = sum
		}
		a[i][i] += rDiag[i]
	}

	// b = J nuDotFree + Jdot nu - aRef.
	b := make([]float64, n3)
	for i := 0; i < n3; i++ {
		var jv, jdv float64
		for k := 0; k < ndof; k++ {
			jv += jStack[i][k] * nuDotFree[k]
			jdv += jDotStack[i][k] * nu[k]
		}
		b[i] = jv + jdv - aRef[i]
	}

	return System{A: a, B: b}, nil
}
