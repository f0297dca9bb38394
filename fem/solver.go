// Copyright 2016 The PRISM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/DEBDEEP-BANERJ2E/PRISM-sub004/geo"
	"github.com/DEBDEEP-BANERJ2E/PRISM-sub004/mat"
	"github.com/DEBDEEP-BANERJ2E/PRISM-sub004/num"
)

// ndofPerNode is the number of translational dofs per node
const ndofPerNode = 3

// Solver implements the static stress-deformation analysis. One instance owns
// one registry of nodes, elements, materials and load cases; it is
// single-threaded and non-reentrant, so a multi-writer environment must use
// one instance per job or serialize access externally.
type Solver struct {
	nodes     map[string]*Node     // node registry
	elems     map[string]*Element  // element registry
	mats      *mat.Registry        // material registry
	loadcases map[string]*LoadCase // load case registry
	order     []string             // node ids in registration order (equation numbering)
	cache     num.Cache            // stiffness matrix cache, bumped on topology mutation
}

// NewSolver allocates a structural solver with empty registries
func NewSolver() (o *Solver) {
	o = new(Solver)
	o.nodes = make(map[string]*Node)
	o.elems = make(map[string]*Element)
	o.mats = mat.NewRegistry()
	o.loadcases = make(map[string]*LoadCase)
	return
}

// AddNode registers a node at position pos
func (o *Solver) AddNode(id string, pos geo.Point) (err error) {
	if _, ok := o.nodes[id]; ok {
		return chk.Err("fem: node %q exists already\n", id)
	}
	o.nodes[id] = &Node{
		ID:  id,
		Pos: pos,
		U:   make([]float64, ndofPerNode),
		Vel: make([]float64, ndofPerNode),
		Acc: make([]float64, ndofPerNode),
	}
	o.order = append(o.order, id)
	o.cache.Bump()
	return
}

// AddElement registers an element connecting nodeIDs with material matID.
// Every referenced node id must exist already; otherwise the call fails
// before any matrix is touched.
func (o *Solver) AddElement(id string, nodeIDs []string, matID, etype string) (err error) {
	if _, ok := o.elems[id]; ok {
		return chk.Err("fem: element %q exists already\n", id)
	}
	if len(nodeIDs) < 2 {
		return chk.Err("fem: element %q must reference at least two nodes\n", id)
	}
	pts := make([]geo.Point, len(nodeIDs))
	for i, nid := range nodeIDs {
		nod, ok := o.nodes[nid]
		if !ok {
			return chk.Err("fem: element %q references unknown node %q\n", id, nid)
		}
		pts[i] = nod.Pos
	}
	e := &Element{
		ID:       id,
		Nodes:    append([]string{}, nodeIDs...),
		MatID:    matID,
		Type:     etype,
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

// AddMaterial registers a material from a parameter set
func (o *Solver) AddMaterial(id string, prms dbf.Params) (err error) {
	err = o.mats.Add(id, prms)
	if err != nil {
		return
	}
	o.cache.Bump()
	return
}

// AddLoadCase registers a load case
func (o *Solver) AddLoadCase(lc *LoadCase) (err error) {
	if _, ok := o.loadcases[lc.ID]; ok {
		return chk.Err("fem: load case %q exists already\n", lc.ID)
	}
	o.loadcases[lc.ID] = lc
	return
}

// NumNodes returns the number of registered nodes
func (o *Solver) NumNodes() int { return len(o.nodes) }

// NumElements returns the number of registered elements
func (o *Solver) NumElements() int { return len(o.elems) }

// TopologyVersion returns the current topology version of the stiffness cache
func (o *Solver) TopologyVersion() int { return o.cache.Version() }

// eqOf returns the global equation number of dof idof of the node at
// registration position inode
func eqOf(inode, idof int) int {
	return inode*ndofPerNode + idof
}

// nodeIndex maps node ids to registration positions
func (o *Solver) nodeIndex() map[string]int {
	idx := make(map[string]int, len(o.order))
	for i, id := range o.order {
		idx[id] = i
	}
	return idx
}

// assembleK builds the global stiffness system (load vector empty). Each
// element contributes pair stiffness entries derived from the constrained
// modulus of its material scaled by element volume, spread over the three
// translational dofs of each of its nodes.
func (o *Solver) assembleK() (sys *num.System, err error) {
	if len(o.order) == 0 {
		return nil, chk.Err("fem: cannot assemble stiffness without nodes\n")
	}
	idx := o.nodeIndex()
	sys = num.NewSystem(len(o.order) * ndofPerNode)
	for _, e := range o.elems {
		m, err := o.mats.Get(e.MatID)
		if err != nil {
			return nil, err
		}
		err = addElemStiffness(sys, e, m, o.nodes, idx)
		if err != nil {
			return nil, err
		}
	}
	return
}

// addElemStiffness accumulates one element's stiffness into the global system.
// Node pairs act as volumetric springs along their connecting vector:
//   k = M·V / (npairs·L²)   with M the constrained modulus
// projected onto the pair direction by the dyadic d⊗d/L². The pair form keeps
// the contribution symmetric and free of spurious rigid-body stiffness.
func addElemStiffness(sys *num.System, e *Element, m *mat.Properties, nodes map[string]*Node, idx map[string]int) (err error) {
	nv := len(e.Nodes)
	npairs := float64(nv*(nv-1)) / 2.0
	for a := 0; a < nv; a++ {
		for b := a + 1; b < nv; b++ {
			xa := nodes[e.Nodes[a]].Pos
			xb := nodes[e.Nodes[b]].Pos
			d := xb.Sub(xa)
			L := d.Norm()
			if L <= 0 {
				return chk.Err("fem: element %q has coincident nodes %q and %q\n", e.ID, e.Nodes[a], e.Nodes[b])
			}
			k := m.Mcon() * e.Volume / (npairs * L * L)
			dv := []float64{d.X, d.Y, d.Z}
			ia, ib := idx[e.Nodes[a]], idx[e.Nodes[b]]
			for i := 0; i < ndofPerNode; i++ {
				for j := 0; j < ndofPerNode; j++ {
					kij := k * dv[i] * dv[j] / (L * L)
					sys.AddA(eqOf(ia, i), eqOf(ia, j), kij)
					sys.AddA(eqOf(ib, i), eqOf(ib, j), kij)
					sys.AddA(eqOf(ia, i), eqOf(ib, j), -kij)
					sys.AddA(eqOf(ib, i), eqOf(ia, j), -kij)
				}
			}
		}
	}
	return
}

// buildLoadVector fills f with the point forces of a load case. Loads
// targeting an element are split equally over the element's nodes.
func (o *Solver) buildLoadVector(f []float64, lc *LoadCase, idx map[string]int) (err error) {
	addAt := func(nid string, dir geo.Point, mag float64) error {
		i, ok := idx[nid]
		if !ok {
			return chk.Err("fem: load case %q references unknown node %q\n", lc.ID, nid)
		}
		f[eqOf(i, 0)] += dir.X * mag
		f[eqOf(i, 1)] += dir.Y * mag
		f[eqOf(i, 2)] += dir.Z * mag
		return nil
	}
	for _, ld := range lc.Loads {
		if e, ok := o.elems[ld.Target]; ok {
			frac := ld.Magnitude / float64(len(e.Nodes))
			for _, nid := range e.Nodes {
				if err = addAt(nid, ld.Direction, frac); err != nil {
					return
				}
			}
			continue
		}
		if err = addAt(ld.Target, ld.Direction, ld.Magnitude); err != nil {
			return
		}
	}
	return
}

// applyBcs enforces the load case's boundary conditions on the analysis
// system. Static conditions accumulate into the load vector first; kinematic
// conditions then rewrite their equations in place, so a force listed after a
// prescription on the same dof cannot corrupt the prescribed value.
func (o *Solver) applyBcs(sys *num.System, lc *LoadCase, idx map[string]int) (constrained []int, err error) {
	for _, bc := range lc.Bcs {
		i, ok := idx[bc.NodeID]
		if !ok {
			return nil, chk.Err("fem: boundary condition references unknown node %q\n", bc.NodeID)
		}
		eqs := axisEqs(bc.Axis)
		if eqs == nil {
			return nil, chk.Err("fem: boundary condition axis %q is incorrect\n", bc.Axis)
		}
		if bc.Type == BcForce || bc.Type == BcPressure {
			for _, idof := range eqs {
				sys.AddB(eqOf(i, idof), bc.Value)
			}
		}
	}
	for _, bc := range lc.Bcs {
		i := idx[bc.NodeID]
		for _, idof := range axisEqs(bc.Axis) {
			eq := eqOf(i, idof)
			switch bc.Type {
			case BcFixed:
				sys.PrescribeValue(eq, 0)
				constrained = append(constrained, eq)
			case BcDisplacement:
				sys.PrescribeValue(eq, bc.Value)
				constrained = append(constrained, eq)
			case BcForce, BcPressure:
			default:
				return nil, chk.Err("fem: boundary condition type %q is incorrect\n", bc.Type)
			}
		}
	}
	return
}

// PerformStaticAnalysis runs the static analysis for the load case registered
// under loadCaseID. Unknown load case, node or material ids abort the call
// with an error; numerical failures during assembly or solve degrade to a
// result with Converged == false and zeroed fields.
func (o *Solver) PerformStaticAnalysis(loadCaseID string) (res *AnalysisResult, err error) {

	// preconditions: these indicate caller bugs and are hard failures
	lc, ok := o.loadcases[loadCaseID]
	if !ok {
		return nil, chk.Err("fem: cannot find load case %q\n", loadCaseID)
	}
	for _, e := range o.elems {
		if !o.mats.Has(e.MatID) {
			return nil, chk.Err("fem: element %q references unknown material %q\n", e.ID, e.MatID)
		}
	}

	idx := o.nodeIndex()

	// stiffness (cached across analyses until the topology changes)
	kSys, ferr := o.cache.Get(o.assembleK)
	if ferr != nil {
		io.Pf("fem: static analysis of %q did not converge: %v", loadCaseID, ferr)
		return newFailedResult(), nil
	}

	// analysis system: clone the cached stiffness, then add loads and bcs
	sys := &num.System{N: kSys.N, A: la.MatClone(kSys.A), B: make([]float64, kSys.N)}
	ferr = o.buildLoadVector(sys.B, lc, idx)
	if ferr != nil {
		return nil, ferr // unknown node id in load case: caller bug
	}
	applied := la.VecClone(sys.B)
	constrained, ferr := o.applyBcs(sys, lc, idx)
	if ferr != nil {
		return nil, ferr
	}

	// trivial case: nothing loaded, nothing prescribed
	if la.VecNorm(sys.B) == 0 {
		u := make([]float64, sys.N)
		return o.postProcess(u, kSys, applied, constrained, idx), nil
	}

	// solve
	u, ferr := sys.Solve()
	if ferr != nil {
		io.Pf("fem: static analysis of %q did not converge: %v", loadCaseID, ferr)
		return newFailedResult(), nil
	}

	return o.postProcess(u, kSys, applied, constrained, idx), nil
}
