// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rrcontact

import (
	"runtime"
	"sync"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/rrcontact/delassus"
	"github.com/cpmech/rrcontact/kinematics"
	"github.com/cpmech/rrcontact/lbfgs"
	"github.com/cpmech/rrcontact/regularizer"
	"github.com/cpmech/rrcontact/terrain"
	"github.com/cpmech/rrcontact/wrench"
)

// parallelThreshold is the smallest enabled-point count for which the
// per-point map of §4.3-4.4 is farmed out to a goroutine pool; below it,
// goroutine scheduling overhead would dominate the per-point work.
const parallelThreshold = 8

// DetectPenetration computes, for each enabled point, δ = (p - terrain) . n̂
// as defined by §4.3. An enabled point with δ >= 0 is inactive for this
// step.
func DetectPenetration(positions [][3]float64, probe terrain.Probe) []float64 {
	delta := make([]float64, len(positions))
	forEachPoint(len(positions), func(i int) {
		x, y, z := positions[i][0], positions[i][1], positions[i][2]
		h := [3]float64{0, 0, z - probe.Height(x, y)}
		n := probe.Normal(x, y)
		delta[i] = h[0]*n[0] + h[1]*n[1] + h[2]*n[2]
	})
	return delta
}

// forEachPoint runs f(i) for i in [0, n) in parallel once n meets
// parallelThreshold, and sequentially otherwise. Each call only touches
// index i of any output slices closed over by f, so results never depend
// on scheduling order.
func forEachPoint(n int, f func(i int)) {
	if n < parallelThreshold {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	var wg sync.WaitGroup
	idx := make(chan int, n)
	for i := 0; i < n; i++ {
		idx <- i
	}
	close(idx)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range idx {
				f(i)
			}
		}()
	}
	wg.Wait()
}

// ComputeContactForces is the sole primary operation of the relaxed-rigid
// contact solver (§6): given the kinematic/dynamic state exposed by kin,
// the terrain probe, the contact parameters, an enabled-set of collidable
// points, and optional applied forces, it returns the 3-D contact forces
// lifted to world-frame 6-D wrenches, one row per enabled point in the
// caller's order.
//
// ComputeContactForces is a pure function of its inputs: it has no side
// effects, no shared mutable state, and does not retain kin, probe or any
// argument slice past the call.
func ComputeContactForces(
	kin kinematics.Provider,
	probe terrain.Probe,
	params ContactParams,
	enabled []int,
	linkForces [][6]float64,
	jointForces []float64,
	opts lbfgs.Options,
) ([][6]float64, map[string]any, error) {

	if err := opts.Validate(); err != nil {
		return nil, nil, chk.Err("rrcontact: invalid solver options: %v", err)
	}
	if linkForces != nil && len(linkForces) != kin.NumLinks() {
		return nil, nil, chk.Err("rrcontact: linkForces has %d rows, want %d (NumLinks)", len(linkForces), kin.NumLinks())
	}
	if jointForces != nil && len(jointForces) != kin.NumJoints() {
		return nil, nil, chk.Err("rrcontact: jointForces has length %d, want %d (NumJoints)", len(jointForces), kin.NumJoints())
	}

	nc := len(enabled)
	if nc == 0 {
		return [][6]float64{}, map[string]any{}, nil
	}

	dyn := DynamicsSnapshot{
		GeneralizedVelocity:         kin.GeneralizedVelocity(),
		FreeGeneralizedAcceleration: kin.FreeGeneralizedAcceleration(linkForces, jointForces),
		MassMatrix:                  kin.MassMatrix(),
	}
	nDof := dyn.NDof()

	positions, velocities := kin.PointPositionsVelocities(enabled)
	delta := DetectPenetration(positions, probe)
	transforms := kin.PointWorldTransforms(enabled)
	jacobians := kin.PointTranslationalJacobians(enabled)
	jacobianDots := kin.PointTranslationalJacobianDerivatives(enabled)

	points := make([]ContactPoint, nc)
	for i := 0; i < nc; i++ {
		points[i] = ContactPoint{
			Index:          i,
			Position:       positions[i],
			Velocity:       velocities[i],
			Penetration:    delta[i],
			OwnerLink:      kin.PointOwnerLink(enabled[i]),
			WorldTransform: transforms[i],
		}
		if points[i].Active() {
			points[i].J = jacobians[i]
			points[i].JDot = jacobianDots[i]
		} else {
			points[i].J = make([][]float64, 3)
			points[i].JDot = make([][]float64, 3)
			for r := 0; r < 3; r++ {
				points[i].J[r] = make([]float64, nDof)
				points[i].JDot[r] = make([]float64, nDof)
			}
		}
	}

	regParams := regularizer.Params{
		TimeConstant:       params.TimeConstant,
		DampingCoefficient: params.DampingCoefficient,
		DMin:               params.DMin,
		DMax:               params.DMax,
		Width:              params.Width,
		Midpoint:           params.Midpoint,
		Power:              params.Power,
		Stiffness:          params.Stiffness,
		Damping:            params.Damping,
		Mu:                 params.Mu,
	}

	results := make([]regularizer.Result, nc)
	forEachPoint(nc, func(i int) {
		inertia := kin.LinkSpatialInertia(points[i].OwnerLink)
		inertiaDiag := [3]float64{inertia[0][0], inertia[1][1], inertia[2][2]}
		results[i] = regularizer.Regularize(points[i].Penetration, points[i].Velocity, inertiaDiag, regParams)
	})

	jStack := make([][]float64, 3*nc)
	jDotStack := make([][]float64, 3*nc)
	aRef := make([]float64, 3*nc)
	rDiag := make([]float64, 3*nc)
	x0 := make([]float64, 3*nc)

	for i := 0; i < nc; i++ {
		active := points[i].Active()
		for r := 0; r < 3; r++ {
			jStack[3*i+r] = points[i].J[r]
			jDotStack[3*i+r] = points[i].JDot[r]
			aRef[3*i+r] = results[i].ARef[r]
			rDiag[3*i+r] = results[i].R[r]
		}
		fz := 0.0
		if active {
			fz = results[i].K * points[i].Penetration
		}
		warm := [3]float64{0, 0, fz}
		for r := 0; r < 3; r++ {
			v := 0.0
			if active {
				v = results[i].D * points[i].Velocity[r]
			}
			x0[3*i+r] = warm[r] + v
		}
	}

	sys, err := delassus.Assemble(jStack, jDotStack, dyn.MassMatrix, dyn.GeneralizedVelocity, dyn.FreeGeneralizedAcceleration, rDiag, aRef)
	if err != nil {
		return nil, nil, chk.Err("rrcontact: failed to invert mass matrix: %v", err)
	}

	fg := func(x []float64) (float64, []float64) {
		n := len(x)
		residual := make([]float64, n)
		for i := 0; i < n; i++ {
			var sum float64
			for j := 0; j < n; j++ {
				sum += sys.A[i][j] * x[j]
			}
			residual[i] = sum + sys.B[i]
		}
		var f float64
		for _, r := range residual {
			f += r * r
		}
		grad := make([]float64, n)
		for j := 0; j < n; j++ {
			var sum float64
			for i := 0; i < n; i++ {
				sum += sys.A[i][j] * residual[i]
			}
			grad[j] = 2 * sum
		}
		return f, grad
	}

	xStar, state := lbfgs.Minimize(fg, x0, opts)

	out := make([][6]float64, nc)
	for i := 0; i < nc; i++ {
		f6 := [6]float64{xStar[3*i], xStar[3*i+1], xStar[3*i+2], 0, 0, 0}
		out[i] = wrench.MixedToInertial(f6, points[i].WorldTransform)
	}

	diagnostics := map[string]any{
		"iterations":            state.Iteration,
		"gradient_norm":         state.GradientNorm(),
		"gradient_norm_history": state.History,
	}

	return out, diagnostics, nil
}
