// Copyright 2016 The PRISM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/DEBDEEP-BANERJ2E/PRISM-sub004/geo"
	"github.com/DEBDEEP-BANERJ2E/PRISM-sub004/num"
)

// AnalysisResult holds the outputs of one static analysis. It is a value
// snapshot: the solver keeps no reference to it after returning, and
// consumers must check Converged before trusting any numeric field.
type AnalysisResult struct {
	Converged       bool                 // false when assembly or solve failed
	Displacements   map[string][]float64 // [3] per node id
	Reactions       map[string][]float64 // [3] per node id with constrained dofs
	Strains         map[string][]float64 // [3] normal strains per element id
	Stresses        map[string][]float64 // [3] normal stresses per element id
	VonMises        map[string]float64   // equivalent stress per element id
	SafetyFactors   map[string]float64   // strength/σvm per element id
	MaxDisplacement float64              // largest nodal displacement magnitude
	MaxStress       float64              // largest von Mises stress
	MinSafetyFactor float64              // smallest element safety factor
}

// newFailedResult returns the zero-valued non-converged result used by the
// soft-failure regime
func newFailedResult() *AnalysisResult {
	return &AnalysisResult{
		Displacements: make(map[string][]float64),
		Reactions:     make(map[string][]float64),
		Strains:       make(map[string][]float64),
		Stresses:      make(map[string][]float64),
		VonMises:      make(map[string]float64),
		SafetyFactors: make(map[string]float64),
	}
}

// vonMises computes the equivalent stress from the normal stress components
// (shear components are not resolved by the nodal-averaging recovery)
func vonMises(σ []float64) float64 {
	d01 := σ[0] - σ[1]
	d12 := σ[1] - σ[2]
	d20 := σ[2] - σ[0]
	return math.Sqrt(0.5 * (d01*d01 + d12*d12 + d20*d20))
}

// postProcess converts the solved displacement field into engineering
// outputs. Element strains are recovered by averaging nodal displacements
// over the element and dividing by its characteristic length; stresses follow
// from the isotropic elastic relation.
func (o *Solver) postProcess(u []float64, kSys *num.System, applied []float64, constrained []int, idx map[string]int) (res *AnalysisResult) {

	res = newFailedResult()
	res.Converged = true
	res.MinSafetyFactor = math.Inf(1)

	// nodal displacements
	for id, i := range idx {
		d := []float64{u[eqOf(i, 0)], u[eqOf(i, 1)], u[eqOf(i, 2)]}
		res.Displacements[id] = d
		copy(o.nodes[id].U, d)
		res.MaxDisplacement = utl.Max(res.MaxDisplacement, la.VecNorm(d))
	}

	// reactions at constrained dofs: r = K·u - f_applied
	if len(constrained) > 0 {
		ku := make([]float64, kSys.N)
		la.MatVecMul(ku, 1, kSys.A, u)
		for _, eq := range constrained {
			i := eq / ndofPerNode
			id := o.order[i]
			r, ok := res.Reactions[id]
			if !ok {
				r = make([]float64, ndofPerNode)
				res.Reactions[id] = r
			}
			r[eq%ndofPerNode] = ku[eq] - applied[eq]
		}
	}

	// element stress/strain recovery
	for id, e := range o.elems {
		m, err := o.mats.Get(e.MatID)
		if err != nil {
			continue // validated before analysis; cannot happen
		}
		ū := make([]float64, ndofPerNode)
		for _, nid := range e.Nodes {
			i := idx[nid]
			for k := 0; k < ndofPerNode; k++ {
				ū[k] += u[eqOf(i, k)]
			}
		}
		Lc := geo.CharLength(e.Volume)
		nv := float64(len(e.Nodes))
		ε := make([]float64, 3)
		for k := 0; k < 3; k++ {
			ε[k] = ū[k] / nv / Lc
		}

		// isotropic Hooke: σ_i = λ·tr(ε) + 2G·ε_i
		λ := m.E * m.Nu / ((1.0 + m.Nu) * (1.0 - 2.0*m.Nu))
		G := m.G()
		tr := ε[0] + ε[1] + ε[2]
		σ := make([]float64, 3)
		for k := 0; k < 3; k++ {
			σ[k] = λ*tr + 2.0*G*ε[k]
		}

		σvm := vonMises(σ)
		sf := math.Inf(1)
		if σvm > 0 {
			sf = utl.Min(m.TensStr, m.CompStr) / σvm
		}

		res.Strains[id] = ε
		res.Stresses[id] = σ
		res.VonMises[id] = σvm
		res.SafetyFactors[id] = sf
		res.MaxStress = utl.Max(res.MaxStress, σvm)
		res.MinSafetyFactor = utl.Min(res.MinSafetyFactor, sf)
	}
	return
}
