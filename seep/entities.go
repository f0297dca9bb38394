// Copyright 2016 The PRISM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package seep implements the groundwater flow solver
package seep

import (
	"github.com/DEBDEEP-BANERJ2E/PRISM-sub004/geo"
)

// GamW is the unit weight of water used for pressures and seepage forces [kN/m³]
const GamW = 9.81

// HydraulicNode mirrors a structural node but carries the hydraulic unknowns
type HydraulicNode struct {
	ID         string    // caller-assigned identifier
	Pos        geo.Point // position
	Head       float64   // hydraulic head [m]
	Pressure   float64   // pressure head converted to [kPa]
	GwEstimate float64   // groundwater-level estimate from the sparse table
	Elems      []string  // ids of elements referencing this node
}

// HydraulicElement holds one flow element with its hydraulic properties.
// Properties live on the element (not a shared material) because permeability
// is routinely zoned per element by the mesh subsystem.
type HydraulicElement struct {
	ID       string    // caller-assigned identifier
	Nodes    []string  // ordered node ids
	Kperm    float64   // permeability [m/s]
	Porosity float64   // porosity
	Ss       float64   // specific storage [1/m]
	Volume   float64   // volume derived from nodal positions
	Centroid geo.Point // centroid of nodal positions
}

// Boundary condition types
const (
	BcHead = "head" // prescribed hydraulic head
	BcFlow = "flow" // prescribed nodal flow
)

// BoundaryCond holds one hydraulic boundary condition
type BoundaryCond struct {
	NodeID string  // target node
	Type   string  // BcHead or BcFlow
	Value  float64 // prescribed head [m] or flow [m³/s]
}

// Analysis types
const (
	AnalysisSteadyState = "steady_state"
	AnalysisTransient   = "transient"
)
