// Copyright 2016 The PRISM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seep

import (
	"github.com/DEBDEEP-BANERJ2E/PRISM-sub004/geo"
)

// ElementFlow holds the Darcy quantities derived for one element
type ElementFlow struct {
	Gradient     float64   // hydraulic gradient magnitude |∇h|
	Velocity     geo.Point // Darcy velocity v = -k·∇h
	SeepVelocity geo.Point // seepage velocity v/porosity
	Flow         float64   // element flow |v|·(V/L)
	SeepForce    geo.Point // γw·|∇h|·V directed along the gradient
}

// AnalysisResult holds the outputs of one steady-state solve (or one
// transient step). Consumers must check Converged before trusting any
// numeric field.
type AnalysisResult struct {
	Converged bool                    // false when assembly or solve failed
	Heads     map[string]float64      // hydraulic head per node id
	Pressures map[string]float64      // pressure per node id [kPa]
	Flows     map[string]*ElementFlow // Darcy quantities per element id
}

// TransientResult holds the sequence of solved time steps. Stepping halts on
// the first failure: Steps then ends at the last good field and Converged is
// false.
type TransientResult struct {
	Converged bool              // false when any step failed
	Times     []float64         // solved times
	Steps     []*AnalysisResult // one result per solved step
}

// newFailedResult returns the zero-valued non-converged result used by the
// soft-failure regime
func newFailedResult() *AnalysisResult {
	return &AnalysisResult{
		Heads:     make(map[string]float64),
		Pressures: make(map[string]float64),
		Flows:     make(map[string]*ElementFlow),
	}
}

// postProcess derives pressures and Darcy quantities from a solved head
// field. The hydraulic gradient uses a two-node finite difference over the
// element's first and last node, whatever the node count; higher-order
// elements are therefore no more accurate here, which is accepted.
func (o *Solver) postProcess(h []float64, idx map[string]int) (res *AnalysisResult) {
	res = newFailedResult()
	res.Converged = true

	for id, i := range idx {
		n := o.nodes[id]
		n.Head = h[i]
		n.Pressure = GamW * (h[i] - n.Pos.Y)
		res.Heads[id] = n.Head
		res.Pressures[id] = n.Pressure
	}

	for id, e := range o.elems {
		first := o.nodes[e.Nodes[0]]
		last := o.nodes[e.Nodes[len(e.Nodes)-1]]
		d := last.Pos.Sub(first.Pos)
		L := d.Norm()
		if L <= 0 {
			continue
		}
		dh := (last.Head - first.Head) / L
		dir := d.Scale(1.0 / L)

		grad := dh
		if grad < 0 {
			grad = -grad
		}
		v := dir.Scale(-e.Kperm * dh)
		f := &ElementFlow{
			Gradient: grad,
			Velocity: v,
			Flow:     v.Norm() * e.Volume / L,
		}
		if e.Porosity > 0 {
			f.SeepVelocity = v.Scale(1.0 / e.Porosity)
		}
		if grad > 0 && v.Norm() > 0 {
			// seepage force acts along the flow direction
			f.SeepForce = v.Scale(1.0 / v.Norm()).Scale(GamW * grad * e.Volume)
		}
		res.Flows[id] = f
	}
	return
}
