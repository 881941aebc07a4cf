// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lbfgs implements a generic, domain-agnostic L-BFGS-with-line-
// search minimizer. Its lifecycle mirrors gofem/gosl's num.NlSolver: a
// small state-object carrying the iteration count, gradient and curvature
// memory, threaded explicitly through each step rather than hidden behind
// a package-level mutable global.
package lbfgs

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Options configures the solver. It is an explicit, enumerated
// configuration struct rather than an open key/value bag, because the
// caller's outer caching layer needs Options values to be hashable; all
// fields here are plain scalars, so an Options value is directly
// comparable with ==.
type Options struct {
	Tol                float64 // gradient-norm convergence tolerance
	MaxIter            int     // maximum number of L-BFGS iterations
	MemorySize         int     // number of (s, y) curvature pairs retained
	C1                 float64 // Armijo sufficient-decrease constant
	C2                 float64 // Wolfe curvature constant
	MaxLineSearchSteps int     // maximum backtracking/Wolfe line-search steps
	InitialStep        float64 // initial step length tried by the line search
}

// DefaultOptions returns the reference solver defaults.
func DefaultOptions() Options {
	return Options{
		Tol:                1e-6,
		MaxIter:            50,
		MemorySize:         10,
		C1:                 1e-4,
		C2:                 0.9,
		MaxLineSearchSteps: 20,
		InitialStep:        1.0,
	}
}

// Validate reports a configuration error if any option is out of range.
// Per the contact solver's error-handling design, this is raised at
// construction time, never from inside Minimize.
func (o Options) Validate() error {
	switch {
	case o.Tol <= 0:
		return chk.Err("lbfgs: Tol must be > 0, got %g", o.Tol)
	case o.MaxIter < 0:
		return chk.Err("lbfgs: MaxIter must be >= 0, got %d", o.MaxIter)
	case o.MemorySize < 1:
		return chk.Err("lbfgs: MemorySize must be >= 1, got %d", o.MemorySize)
	case o.C1 <= 0 || o.C1 >= o.C2:
		return chk.Err("lbfgs: need 0 < C1 < C2, got C1=%g C2=%g", o.C1, o.C2)
	case o.C2 >= 1:
		return chk.Err("lbfgs: C2 must be < 1, got %g", o.C2)
	case o.MaxLineSearchSteps < 1:
		return chk.Err("lbfgs: MaxLineSearchSteps must be >= 1, got %d", o.MaxLineSearchSteps)
	case o.InitialStep <= 0:
		return chk.Err("lbfgs: InitialStep must be > 0, got %g", o.InitialStep)
	}
	return nil
}

// NewOptions builds an Options from the given value and rejects it with a
// configuration error if Validate reports it invalid, mirroring
// rrcontact.NewContactParams: the sibling constructor that lets a caller
// validate solver options once, at construction time, rather than relying
// on Minimize (or ComputeContactForces) to catch a bad value from the
// solve path.
func NewOptions(o Options) (Options, error) {
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// Key returns the bit pattern of Options' fields, suitable as a map key
// for an outer caching layer, mirroring rrcontact.ContactParams.Key.
func (o Options) Key() [7]uint64 {
	return [7]uint64{
		math.Float64bits(o.Tol),
		uint64(o.MaxIter),
		uint64(o.MemorySize),
		math.Float64bits(o.C1),
		math.Float64bits(o.C2),
		uint64(o.MaxLineSearchSteps),
		math.Float64bits(o.InitialStep),
	}
}

// pair is one curvature correction (s, y) = (x_{k+1}-x_k, g_{k+1}-g_k).
type pair struct {
	s, y []float64
	rho  float64 // 1 / (y . s)
}

// State carries the iteration count, current gradient and bounded L-BFGS
// memory across steps. It is a plain value type; Minimize returns the
// final state alongside the minimizer so callers can inspect convergence
// (iteration count, final gradient norm) without that being part of the
// forces contract itself.
type State struct {
	Iteration int
	Gradient  []float64
	History   []float64 // gradient norm at the end of each iteration, including iteration 0
	memory    []pair
}

// GradientNorm returns the Euclidean norm of the last evaluated gradient.
func (s State) GradientNorm() float64 {
	return norm(s.Gradient)
}

// ValueGrad evaluates the objective and its gradient at x.
type ValueGrad func(x []float64) (value float64, gradient []float64)

// Minimize runs the L-BFGS loop until the two-criterion stopping rule
// fires: continue while (iteration == 0) or (iteration < MaxIter and
// ||gradient|| >= Tol). The first disjunct forces at least one iteration
// even when x0 already satisfies the tolerance, so the memory can record a
// curvature pair (a pair with y.s <= 1e-14 is skipped) and the returned
// minimizer can differ from x0. There is no divergence detection beyond
// MaxIter; running out of iterations is a normal return of the last
// iterate, not an error.
func Minimize(fg ValueGrad, x0 []float64, opts Options) ([]float64, State) {
	x := append([]float64(nil), x0...)
	f, g := fg(x)
	st := State{Iteration: 0, Gradient: g, History: []float64{norm(g)}}

	for continuePredicate(st.Iteration, st.Gradient, opts) {
		dir := direction(st.Gradient, st.memory)

		alpha, xNew, fNew, gNew := lineSearch(fg, x, f, g, dir, opts)
		_ = alpha

		s := subtract(xNew, x)
		y := subtract(gNew, g)
		denom := dot(y, s)
		if denom > 1e-14 {
			st.memory = append(st.memory, pair{s: s, y: y, rho: 1 / denom})
			if len(st.memory) > opts.MemorySize {
				st.memory = st.memory[1:]
			}
		}

		x, f, g = xNew, fNew, gNew
		st.Iteration++
		st.Gradient = g
		st.History = append(st.History, norm(g))
	}

	return x, st
}

func continuePredicate(k int, grad []float64, opts Options) bool {
	if k == 0 {
		return true
	}
	return k < opts.MaxIter && norm(grad) >= opts.Tol
}

// direction computes the L-BFGS search direction -H*g via the standard
// two-loop recursion, seeded with an identity Hessian scaled by the most
// recent curvature pair.
func direction(g []float64, memory []pair) []float64 {
	q := append([]float64(nil), g...)
	m := len(memory)
	alpha := make([]float64, m)

	for i := m - 1; i >= 0; i-- {
		p := memory[i]
		alpha[i] = p.rho * dot(p.s, q)
		axpy(q, -alpha[i], p.y)
	}

	gamma := 1.0
	if m > 0 {
		last := memory[m-1]
		ys := dot(last.y, last.s)
		yy := dot(last.y, last.y)
		if yy > 1e-14 {
			gamma = ys / yy
		}
	}
	r := scale(q, gamma)

	for i := 0; i < m; i++ {
		p := memory[i]
		beta := p.rho * dot(p.y, r)
		axpy(r, alpha[i]-beta, p.s)
	}

	return negate(r)
}

// lineSearch searches for a step length satisfying the Armijo condition
// and the (weak) Wolfe curvature condition: the step is halved while
// Armijo fails and doubled while Armijo holds but curvature fails. If no
// step satisfies both within MaxLineSearchSteps, it returns the last trial
// that satisfied Armijo, or else a step of the final length. This is the
// fallback behavior spec.md allows in place of a full strong-Wolfe
// bracketing search.
func lineSearch(fg ValueGrad, x []float64, f float64, g, dir []float64, opts Options) (alpha float64, xNew []float64, fNew float64, gNew []float64) {
	alpha = opts.InitialStep
	slope0 := dot(g, dir)
	if slope0 >= 0 {
		// not a descent direction (can happen after a tiny/ill-conditioned
		// curvature pair); fall back to steepest descent.
		dir = negate(g)
		slope0 = dot(g, dir)
	}

	for i := 0; i < opts.MaxLineSearchSteps; i++ {
		xTrial := axpyNew(x, alpha, dir)
		fTrial, gTrial := fg(xTrial)

		armijo := fTrial <= f+opts.C1*alpha*slope0
		curvature := dot(gTrial, dir) >= opts.C2*slope0

		if armijo && curvature {
			return alpha, xTrial, fTrial, gTrial
		}
		if !armijo {
			alpha *= 0.5
			continue
		}
		// Armijo holds but curvature doesn't: step was too short.
		alpha *= 2
		xNew, fNew, gNew = xTrial, fTrial, gTrial
	}

	if xNew == nil {
		xNew = axpyNew(x, alpha, dir)
		fNew, gNew = fg(xNew)
	}
	return alpha, xNew, fNew, gNew
}

func norm(v []float64) float64 {
	var s float64
	for _, vi := range v {
		s += vi * vi
	}
	return math.Sqrt(s)
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func subtract(a, b []float64) []float64 {
	r := make([]float64, len(a))
	for i := range a {
		r[i] = a[i] - b[i]
	}
	return r
}

func scale(a []float64, s float64) []float64 {
	r := make([]float64, len(a))
	for i := range a {
		r[i] = a[i] * s
	}
	return r
}

func negate(a []float64) []float64 {
	return scale(a, -1)
}

// axpy computes y += alpha*x in place.
func axpy(y []float64, alpha float64, x []float64) {
	for i := range y {
		y[i] += alpha * x[i]
	}
}

// axpyNew returns x + alpha*dir as a new slice.
func axpyNew(x []float64, alpha float64, dir []float64) []float64 {
	r := make([]float64, len(x))
	for i := range x {
		r[i] = x[i] + alpha*dir[i]
	}
	return r
}
