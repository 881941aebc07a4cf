// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scenario provides a JSON-driven, in-memory implementation of
// kinematics.Provider, the way gofem's inp package loads a JSON simulation
// description that fem.FEM then runs without knowing where the JSON came
// from. It exists so the contact solver's CLI and tests can exercise
// kinematics.Provider without wiring a full ABA/CRB rigid-body library,
// which spec.md explicitly treats as an external collaborator.
package scenario

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Snapshot is a plain, in-memory kinematics.Provider over precomputed
// arrays. It is not a rigid-body library: FreeGeneralizedAcceleration maps
// joint forces onto accelerations through the mass matrix, but cannot map
// applied link forces without per-link Jacobians, which this lightweight
// fixture does not retain; that contribution is left at zero. Production
// use is expected to wire a real ABA/CRB/RNEA-backed provider instead.
type Snapshot struct {
	NLinks  int `json:"n_links"`
	NJoints int `json:"n_joints"`

	Positions           [][3]float64    `json:"positions"`
	Velocities          [][3]float64    `json:"velocities"`
	Owners              []int           `json:"owners"`
	Jacobians           [][][]float64   `json:"jacobians"`
	JacobianDerivatives [][][]float64   `json:"jacobian_derivatives"`
	WorldTransforms     [][4][4]float64 `json:"world_transforms"`

	Mass             [][]float64    `json:"mass"`
	Nu               []float64      `json:"nu"`
	BiasAcceleration []float64      `json:"bias_acceleration"`
	LinkInertias     [][6][6]float64 `json:"link_inertias"`
}

// Load reads a Snapshot from a JSON file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("scenario: cannot read %q: %v", path, err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, chk.Err("scenario: cannot parse %q: %v", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Snapshot) validate() error {
	n := len(s.Positions)
	switch {
	case len(s.Velocities) != n:
		return chk.Err("scenario: velocities length %d != positions length %d", len(s.Velocities), n)
	case len(s.Owners) != n:
		return chk.Err("scenario: owners length %d != positions length %d", len(s.Owners), n)
	case len(s.Jacobians) != n:
		return chk.Err("scenario: jacobians length %d != positions length %d", len(s.Jacobians), n)
	case len(s.JacobianDerivatives) != n:
		return chk.Err("scenario: jacobian_derivatives length %d != positions length %d", len(s.JacobianDerivatives), n)
	case len(s.WorldTransforms) != n:
		return chk.Err("scenario: world_transforms length %d != positions length %d", len(s.WorldTransforms), n)
	case len(s.LinkInertias) != s.NLinks:
		return chk.Err("scenario: link_inertias length %d != n_links %d", len(s.LinkInertias), s.NLinks)
	}
	ndof := 6 + s.NJoints
	if len(s.Nu) != ndof {
		return chk.Err("scenario: nu length %d != 6+n_joints (%d)", len(s.Nu), ndof)
	}
	if len(s.Mass) != ndof {
		return chk.Err("scenario: mass has %d rows, want %d", len(s.Mass), ndof)
	}
	for _, row := range s.Mass {
		if len(row) != ndof {
			return chk.Err("scenario: mass row has %d columns, want %d", len(row), ndof)
		}
	}
	if len(s.BiasAcceleration) != ndof {
		return chk.Err("scenario: bias_acceleration length %d != 6+n_joints (%d)", len(s.BiasAcceleration), ndof)
	}
	return nil
}

// NumLinks implements kinematics.Provider.
func (s *Snapshot) NumLinks() int { return s.NLinks }

// NumJoints implements kinematics.Provider.
func (s *Snapshot) NumJoints() int { return s.NJoints }

// PointPositionsVelocities implements kinematics.Provider.
func (s *Snapshot) PointPositionsVelocities(points []int) (P, V [][3]float64) {
	P = make([][3]float64, len(points))
	V = make([][3]float64, len(points))
	for i, p := range points {
		P[i] = s.Positions[p]
		V[i] = s.Velocities[p]
	}
	return
}

// PointWorldTransforms implements kinematics.Provider.
func (s *Snapshot) PointWorldTransforms(points []int) [][4][4]float64 {
	out := make([][4][4]float64, len(points))
	for i, p := range points {
		out[i] = s.WorldTransforms[p]
	}
	return out
}

// PointTranslationalJacobians implements kinematics.Provider.
func (s *Snapshot) PointTranslationalJacobians(points []int) [][][]float64 {
	out := make([][][]float64, len(points))
	for i, p := range points {
		out[i] = s.Jacobians[p]
	}
	return out
}

// PointTranslationalJacobianDerivatives implements kinematics.Provider.
func (s *Snapshot) PointTranslationalJacobianDerivatives(points []int) [][][]float64 {
	out := make([][][]float64, len(points))
	for i, p := range points {
		out[i] = s.JacobianDerivatives[p]
	}
	return out
}

// MassMatrix implements kinematics.Provider.
func (s *Snapshot) MassMatrix() [][]float64 { return s.Mass }

// GeneralizedVelocity implements kinematics.Provider.
func (s *Snapshot) GeneralizedVelocity() []float64 { return s.Nu }

// FreeGeneralizedAcceleration implements kinematics.Provider. See the
// Snapshot doc comment for the limits of this fixture's force mapping.
func (s *Snapshot) FreeGeneralizedAcceleration(linkForces [][6]float64, jointForces []float64) []float64 {
	ndof := len(s.Nu)
	out := append([]float64(nil), s.BiasAcceleration...)
	if jointForces == nil {
		return out
	}
	tau := make([]float64, ndof)
	copy(tau[6:], jointForces)

	massInv := la.MatAlloc(ndof, ndof)
	la.MatInvG(massInv, s.Mass, 1e-10)
	for i := 0; i < ndof; i++ {
		var sum float64
		for k := 0; k < ndof; k++ {
			sum += massInv[i][k] * tau[k]
		}
		out[i] += sum
	}
	return out
}

// LinkSpatialInertia implements kinematics.Provider.
func (s *Snapshot) LinkSpatialInertia(link int) [6][6]float64 { return s.LinkInertias[link] }

// PointOwnerLink implements kinematics.Provider.
func (s *Snapshot) PointOwnerLink(point int) int { return s.Owners[point] }
