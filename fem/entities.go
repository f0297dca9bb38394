// Copyright 2016 The PRISM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the structural stress-deformation solver
package fem

import (
	"github.com/DEBDEEP-BANERJ2E/PRISM-sub004/geo"
)

// Node holds one mesh vertex with its kinematic state
type Node struct {
	ID    string    // caller-assigned identifier
	Pos   geo.Point // position
	U     []float64 // [3] displacement
	Vel   []float64 // [3] velocity
	Acc   []float64 // [3] acceleration
	Elems []string  // ids of elements referencing this node
}

// Element holds one finite element
type Element struct {
	ID       string    // caller-assigned identifier
	Nodes    []string  // ordered node ids
	MatID    string    // material id
	Type     string    // geometric type; e.g. "tetrahedron", "hexahedron"
	Volume   float64   // volume derived from nodal positions
	Centroid geo.Point // centroid of nodal positions
}

// Load holds one applied load of a load case
type Load struct {
	Target    string    // node or element id receiving the load
	Direction geo.Point // unit (or scaled) direction of application
	Magnitude float64   // load magnitude [kN]
}

// Boundary condition types
const (
	BcFixed        = "fixed"        // zero prescribed displacement
	BcDisplacement = "displacement" // nonzero prescribed displacement
	BcForce        = "force"        // nodal force
	BcPressure     = "pressure"     // pressure converted to nodal force
)

// BoundaryCond holds one kinematic or static boundary condition
type BoundaryCond struct {
	NodeID string  // constrained node
	Axis   string  // "x", "y", "z" or "all"
	Type   string  // one of the Bc... constants
	Value  float64 // prescribed displacement or force value
}

// LoadCase groups loads and boundary conditions for one analysis
type LoadCase struct {
	ID           string          // caller-assigned identifier
	Loads        []*Load         // applied loads
	Bcs          []*BoundaryCond // boundary conditions
	AnalysisType string          // e.g. "static"
}

// axisEqs maps an axis selector to local dof indices. Unknown selectors
// return nil so the caller can reject them.
func axisEqs(axis string) []int {
	switch axis {
	case "x":
		return []int{0}
	case "y":
		return []int{1}
	case "z":
		return []int{2}
	case "all":
		return []int{0, 1, 2}
	}
	return nil
}
