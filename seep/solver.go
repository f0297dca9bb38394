// Copyright 2016 The PRISM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seep

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/DEBDEEP-BANERJ2E/PRISM-sub004/geo"
	"github.com/DEBDEEP-BANERJ2E/PRISM-sub004/num"
)

// Solver implements steady-state and transient groundwater flow. One instance
// owns one registry of hydraulic nodes, elements and boundary conditions; it
// is single-threaded and non-reentrant.
type Solver struct {
	nodes        map[string]*HydraulicNode    // node registry
	elems        map[string]*HydraulicElement // element registry
	bcs          []*BoundaryCond              // boundary conditions in registration order
	order        []string                     // node ids in registration order (equation numbering)
	analysisType string                       // steady_state or transient
	water        *geo.WaterTable              // sparse groundwater-level table
	cache        num.Cache                    // conductivity matrix cache
}

// NewSolver allocates a groundwater solver with empty registries
func NewSolver() (o *Solver) {
	o = new(Solver)
	o.nodes = make(map[string]*HydraulicNode)
	o.elems = make(map[string]*HydraulicElement)
	o.analysisType = AnalysisSteadyState
	o.water = geo.NewWaterTable()
	return
}

// AddNode registers a hydraulic node at position pos
func (o *Solver) AddNode(id string, pos geo.Point) (err error) {
	if _, ok := o.nodes[id]; ok {
		return chk.Err("seep: node %q exists already\n", id)
	}
	n := &HydraulicNode{ID: id, Pos: pos}
	if level, ok := o.water.LevelAt(pos.X, pos.Z); ok {
		n.GwEstimate = level
	}
	o.nodes[id] = n
	o.order = append(o.order, id)
	o.cache.Bump()
	return
}

// AddElement registers a flow element. Every referenced node id must exist
// already; otherwise the call fails before any matrix is touched.
func (o *Solver) AddElement(id string, nodeIDs []string, kperm, porosity, ss float64) (err error) {
	if _, ok := o.elems[id]; ok {
		return chk.Err("seep: element %q exists already\n", id)
	}
	if len(nodeIDs) < 2 {
		return chk.Err("seep: element %q must reference at least two nodes\n", id)
	}
	pts := make([]geo.Point, len(nodeIDs))
	for i, nid := range nodeIDs {
		nod, ok := o.nodes[nid]
		if !ok {
			return chk.Err("seep: element %q references unknown node %q\n", id, nid)
		}
		pts[i] = nod.Pos
	}
	e := &HydraulicElement{
		ID:       id,
		Nodes:    append([]string{}, nodeIDs...),
		Kperm:    kperm,
		Porosity: porosity,
		Ss:       ss,
		Volume:   geo.Volume(pts),
		Centroid: geo.Centroid(pts),
	}
	o.elems[id] = e
	for _, nid := range nodeIDs {
		o.nodes[nid].Elems = append(o.nodes[nid].Elems, id)
	}
	o.cache.Bump()
	return
}

// AddBoundaryCondition registers a prescribed-head or prescribed-flow
// condition. The node must exist.
func (o *Solver) AddBoundaryCondition(bc *BoundaryCond) (err error) {
	if _, ok := o.nodes[bc.NodeID]; !ok {
		return chk.Err("seep: boundary condition references unknown node %q\n", bc.NodeID)
	}
	if bc.Type != BcHead && bc.Type != BcFlow {
		return chk.Err("seep: boundary condition type %q is incorrect\n", bc.Type)
	}
	o.bcs = append(o.bcs, bc)
	return
}

// SetAnalysisType selects steady_state or transient
func (o *Solver) SetAnalysisType(t string) (err error) {
	if t != AnalysisSteadyState && t != AnalysisTransient {
		return chk.Err("seep: analysis type %q is incorrect\n", t)
	}
	o.analysisType = t
	return
}

// SetGroundwaterLevel records a measured groundwater elevation and refreshes
// the per-node estimates so nodes registered earlier see the new table too
func (o *Solver) SetGroundwaterLevel(locationID string, level float64) {
	o.water.SetLevel(locationID, level)
	for _, n := range o.nodes {
		if lv, ok := o.water.LevelAt(n.Pos.X, n.Pos.Z); ok {
			n.GwEstimate = lv
		}
	}
}

// NumNodes returns the number of registered hydraulic nodes
func (o *Solver) NumNodes() int { return len(o.nodes) }

// TopologyVersion returns the current topology version of the matrix cache
func (o *Solver) TopologyVersion() int { return o.cache.Version() }

// nodeIndex maps node ids to equation numbers (one head dof per node)
func (o *Solver) nodeIndex() map[string]int {
	idx := make(map[string]int, len(o.order))
	for i, id := range o.order {
		idx[id] = i
	}
	return idx
}

// assembleK builds the global conductivity matrix. Node pairs contribute
//	c = k·V / (npairs·L²)
// in conservative form (+c on diagonals, -c across), so that each row sums to
// zero and mass balance holds exactly for the interior.
func (o *Solver) assembleK() (sys *num.System, err error) {
	if len(o.order) == 0 {
		return nil, chk.Err("seep: cannot assemble conductivity without nodes\n")
	}
	idx := o.nodeIndex()
	sys = num.NewSystem(len(o.order))
	for _, e := range o.elems {
		nv := len(e.Nodes)
		npairs := float64(nv*(nv-1)) / 2.0
		for a := 0; a < nv; a++ {
			for b := a + 1; b < nv; b++ {
				xa := o.nodes[e.Nodes[a]].Pos
				xb := o.nodes[e.Nodes[b]].Pos
				L := xa.Dist(xb)
				if L <= 0 {
					return nil, chk.Err("seep: element %q has coincident nodes %q and %q\n", e.ID, e.Nodes[a], e.Nodes[b])
				}
				c := e.Kperm * e.Volume / (npairs * L * L)
				ia, ib := idx[e.Nodes[a]], idx[e.Nodes[b]]
				sys.AddA(ia, ia, c)
				sys.AddA(ib, ib, c)
				sys.AddA(ia, ib, -c)
				sys.AddA(ib, ia, -c)
			}
		}
	}
	return
}

// lumpedCapacity builds the diagonal capacity vector C from specific storage,
// each element spreading Ss·V equally over its nodes
func (o *Solver) lumpedCapacity(idx map[string]int) (C []float64) {
	C = make([]float64, len(o.order))
	for _, e := range o.elems {
		frac := e.Ss * e.Volume / float64(len(e.Nodes))
		for _, nid := range e.Nodes {
			C[idx[nid]] += frac
		}
	}
	return
}

// applyBcs enforces the registered conditions on the analysis system:
// prescribed flows accumulate into the flow vector, prescribed heads rewrite
// their equations in place.
func (o *Solver) applyBcs(sys *num.System, idx map[string]int) {
	for _, bc := range o.bcs {
		if bc.Type == BcFlow {
			sys.AddB(idx[bc.NodeID], bc.Value)
		}
	}
	for _, bc := range o.bcs {
		if bc.Type == BcHead {
			sys.PrescribeValue(idx[bc.NodeID], bc.Value)
		}
	}
}

// PerformSteadyStateAnalysis solves ∇·(k∇h) = q for nodal heads and derives
// the Darcy quantities. Any assembly or solve failure is converted into a
// zero-valued non-converged result, never an error, so a batch can continue
// past one bad case.
func (o *Solver) PerformSteadyStateAnalysis() (res *AnalysisResult) {
	idx := o.nodeIndex()

	kSys, err := o.cache.Get(o.assembleK)
	if err != nil {
		io.Pf("seep: steady-state analysis did not converge: %v", err)
		return newFailedResult()
	}

	sys := &num.System{N: kSys.N, A: la.MatClone(kSys.A), B: make([]float64, kSys.N)}
	o.applyBcs(sys, idx)

	h, err := sys.Solve()
	if err != nil {
		io.Pf("seep: steady-state analysis did not converge: %v", err)
		return newFailedResult()
	}
	return o.postProcess(h, idx)
}

// PerformTransientAnalysis runs implicit time stepping
//	(C/Δt + K)·h_{n+1} = C/Δt·h_n + Q
// from initialHeads (zero field when nil) until totalTime. On a failed step
// the result keeps the steps solved so far, is marked non-converged and
// stepping halts, so a corrupted head field never propagates forward.
func (o *Solver) PerformTransientAnalysis(timeStep, totalTime float64, initialHeads map[string]float64) (res *TransientResult) {
	res = &TransientResult{Converged: true}
	if timeStep <= 0 || totalTime <= 0 {
		res.Converged = false
		return
	}
	idx := o.nodeIndex()

	kSys, err := o.cache.Get(o.assembleK)
	if err != nil {
		io.Pf("seep: transient analysis did not converge: %v", err)
		res.Converged = false
		return
	}
	C := o.lumpedCapacity(idx)

	// initial field
	h := make([]float64, kSys.N)
	for id, v := range initialHeads {
		if i, ok := idx[id]; ok {
			h[i] = v
		}
	}

	for t := timeStep; t <= totalTime+1e-12; t += timeStep {

		// lhs = C/Δt + K ;  rhs = C/Δt·h_n + Q
		sys := &num.System{N: kSys.N, A: la.MatClone(kSys.A), B: make([]float64, kSys.N)}
		for i := 0; i < sys.N; i++ {
			sys.AddA(i, i, C[i]/timeStep)
			sys.AddB(i, C[i]/timeStep*h[i])
		}
		o.applyBcs(sys, idx)

		hnew, err := sys.Solve()
		if err != nil {
			io.Pf("seep: transient step at t=%g did not converge: %v", t, err)
			res.Converged = false
			return
		}
		h = hnew
		res.Times = append(res.Times, t)
		res.Steps = append(res.Steps, o.postProcess(h, idx))
	}
	return
}
