// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lbfgs

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// quadratic returns f(x) = 0.5*x.A.x + b.x and its gradient A.x + b, for a
// diagonal SPD A, mirroring the solver's own ||A x + b||^2-style objective
// on a problem small enough to have a known closed-form minimizer.
func quadratic(diagA, b []float64) ValueGrad {
	return func(x []float64) (float64, []float64) {
		n := len(x)
		g := make([]float64, n)
		var f float64
		for i := 0; i < n; i++ {
			f += 0.5*diagA[i]*x[i]*x[i] + b[i]*x[i]
			g[i] = diagA[i]*x[i] + b[i]
		}
		return f, g
	}
}

func TestMinimizeConvergesOnQuadratic(tst *testing.T) {
	chk.PrintTitle("MinimizeConvergesOnQuadratic")
	diagA := []float64{4, 1, 9}
	b := []float64{-8, 2, -18}
	fg := quadratic(diagA, b)
	opts := DefaultOptions()

	x0 := []float64{0, 0, 0}
	xStar, st := Minimize(fg, x0, opts)

	// minimizer of 0.5*a*x^2+b*x is x = -b/a
	want := []float64{2, -2, 2}
	chk.Vector(tst, "x*", 1e-4, xStar, want)

	if st.GradientNorm() >= opts.Tol && st.Iteration >= opts.MaxIter {
		tst.Errorf("expected convergence within MaxIter, got iter=%d ||g||=%g", st.Iteration, st.GradientNorm())
	}
	if len(st.History) != st.Iteration+1 {
		tst.Errorf("History should have one entry per iteration including iteration 0, got %d entries for %d iterations", len(st.History), st.Iteration)
	}
	for i := 1; i < len(st.History); i++ {
		if st.History[i] > st.History[0]*10 {
			tst.Errorf("gradient norm history grew unexpectedly: %v", st.History)
			break
		}
	}
}

func TestMinimizeStopsImmediatelyAtSolution(tst *testing.T) {
	chk.PrintTitle("MinimizeStopsImmediatelyAtSolution")
	diagA := []float64{2, 3}
	b := []float64{0, 0}
	fg := quadratic(diagA, b)
	opts := DefaultOptions()

	x0 := []float64{0, 0}
	xStar, st := Minimize(fg, x0, opts)

	chk.Vector(tst, "x*", 1e-12, xStar, []float64{0, 0})
	if st.Iteration != 1 {
		tst.Errorf("k==0 disjunct should force exactly one iteration even when x0 is already optimal, got %d", st.Iteration)
	}
}

func TestOptionsValidate(tst *testing.T) {
	chk.PrintTitle("OptionsValidate")
	cases := []struct {
		o  Options
		ok bool
	}{
		{DefaultOptions(), true},
		{Options{Tol: 0, MaxIter: 1, MemorySize: 1, C1: 1e-4, C2: 0.9, MaxLineSearchSteps: 1, InitialStep: 1}, false},
		{Options{Tol: 1e-6, MaxIter: -1, MemorySize: 1, C1: 1e-4, C2: 0.9, MaxLineSearchSteps: 1, InitialStep: 1}, false},
		{Options{Tol: 1e-6, MaxIter: 1, MemorySize: 0, C1: 1e-4, C2: 0.9, MaxLineSearchSteps: 1, InitialStep: 1}, false},
		{Options{Tol: 1e-6, MaxIter: 1, MemorySize: 1, C1: 0.9, C2: 0.5, MaxLineSearchSteps: 1, InitialStep: 1}, false},
		{Options{Tol: 1e-6, MaxIter: 1, MemorySize: 1, C1: 1e-4, C2: 1.5, MaxLineSearchSteps: 1, InitialStep: 1}, false},
		{Options{Tol: 1e-6, MaxIter: 1, MemorySize: 1, C1: 1e-4, C2: 0.9, MaxLineSearchSteps: 0, InitialStep: 1}, false},
		{Options{Tol: 1e-6, MaxIter: 1, MemorySize: 1, C1: 1e-4, C2: 0.9, MaxLineSearchSteps: 1, InitialStep: 0}, false},
	}
	for i, c := range cases {
		err := c.o.Validate()
		if c.ok && err != nil {
			tst.Errorf("case %d: expected valid, got %v", i, err)
		}
		if !c.ok && err == nil {
			tst.Errorf("case %d: expected error, got none", i)
		}
	}
}

func TestOptionsKeyStable(tst *testing.T) {
	chk.PrintTitle("OptionsKeyStable")
	a := DefaultOptions()
	b := DefaultOptions()
	if a.Key() != b.Key() {
		tst.Errorf("two default Options should have equal keys")
	}
	c := DefaultOptions()
	c.MaxIter = 100
	if a.Key() == c.Key() {
		tst.Errorf("differing MaxIter should produce differing keys")
	}
}

func TestNewOptionsRejectsInvalid(tst *testing.T) {
	chk.PrintTitle("NewOptionsRejectsInvalid")
	if _, err := NewOptions(DefaultOptions()); err != nil {
		tst.Errorf("defaults should be valid: %v", err)
	}
	bad := DefaultOptions()
	bad.Tol = -1
	if _, err := NewOptions(bad); err == nil {
		tst.Errorf("expected a configuration error for negative Tol")
	}
}
