// Copyright 2016 The PRISM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package phys implements post-hoc physical-consistency checks on solver
// results
package phys

import (
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/DEBDEEP-BANERJ2E/PRISM-sub004/fem"
	"github.com/DEBDEEP-BANERJ2E/PRISM-sub004/seep"
)

// Constraint kinds
const (
	KindEquilibrium   = "equilibrium"
	KindCompatibility = "compatibility"
	KindConstitutive  = "constitutive"
	KindBoundary      = "boundary"
)

// Violation severities
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Constraint holds one named physical law checked against a result
type Constraint struct {
	Name      string  // e.g. "static equilibrium"
	Kind      string  // one of the Kind... constants
	Tolerance float64 // acceptable violation magnitude
	Active    bool    // inactive constraints are skipped
}

// Violation reports one constraint check that exceeded its tolerance
type Violation struct {
	Constraint string  // name of the violated constraint
	Severity   string  // graded by how far the value exceeds the tolerance
	Value      float64 // measured violation magnitude
	Detail     string  // human-readable context
}

// severity grades a violation: past ten times the tolerance it is critical
func severity(value, tol float64) string {
	switch {
	case value <= tol:
		return SeverityInfo
	case value <= 10*tol:
		return SeverityWarning
	}
	return SeverityCritical
}

// Validator checks registered constraints against solver results
type Validator struct {
	constraints []*Constraint
}

// NewValidator allocates a validator with the default constraint set
func NewValidator() *Validator {
	return &Validator{constraints: []*Constraint{
		{Name: "static equilibrium", Kind: KindEquilibrium, Tolerance: 1e-6, Active: true},
		{Name: "strain compatibility", Kind: KindCompatibility, Tolerance: 1e-6, Active: true},
		{Name: "constitutive positivity", Kind: KindConstitutive, Tolerance: 0, Active: true},
		{Name: "boundary satisfaction", Kind: KindBoundary, Tolerance: 1e-9, Active: true},
	}}
}

// Add registers an additional constraint
func (o *Validator) Add(c *Constraint) {
	o.constraints = append(o.constraints, c)
}

// get returns the active constraint of a kind, or nil
func (o *Validator) get(kind string) *Constraint {
	for _, c := range o.constraints {
		if c.Kind == kind && c.Active {
			return c
		}
	}
	return nil
}

// CheckStructural validates a structural analysis result. A non-converged
// result is itself a critical violation; a converged one is checked for
// constitutive consistency (finite, non-negative stress measures and
// positive safety factors).
func (o *Validator) CheckStructural(res *fem.AnalysisResult) (viols []*Violation) {
	if !res.Converged {
		return []*Violation{{
			Constraint: "convergence",
			Severity:   SeverityCritical,
			Detail:     "structural analysis did not converge",
		}}
	}
	if c := o.get(KindConstitutive); c != nil {
		for id, σvm := range res.VonMises {
			if math.IsNaN(σvm) || σvm < -c.Tolerance {
				viols = append(viols, &Violation{
					Constraint: c.Name,
					Severity:   SeverityCritical,
					Value:      σvm,
					Detail:     io.Sf("element %q has inadmissible von Mises stress", id),
				})
			}
		}
		for id, sf := range res.SafetyFactors {
			if math.IsNaN(sf) || sf < 0 {
				viols = append(viols, &Violation{
					Constraint: c.Name,
					Severity:   SeverityCritical,
					Value:      sf,
					Detail:     io.Sf("element %q has inadmissible safety factor", id),
				})
			}
		}
	}
	if c := o.get(KindCompatibility); c != nil {
		for id, ε := range res.Strains {
			for _, e := range ε {
				if math.IsNaN(e) || math.Abs(e) > 1.0 {
					viols = append(viols, &Violation{
						Constraint: c.Name,
						Severity:   severity(math.Abs(e), 1.0),
						Value:      e,
						Detail:     io.Sf("element %q strain is outside the small-strain range", id),
					})
					break
				}
			}
		}
	}
	return
}

// CheckEquilibrium measures the equilibrium residual r = K·u - f of a solved
// system against the equilibrium tolerance. The residual is supplied by the
// solver through num.System.Residual.
func (o *Validator) CheckEquilibrium(residualNorm float64) (viols []*Violation) {
	c := o.get(KindEquilibrium)
	if c == nil {
		return
	}
	if residualNorm > c.Tolerance {
		viols = append(viols, &Violation{
			Constraint: c.Name,
			Severity:   severity(residualNorm, c.Tolerance),
			Value:      residualNorm,
			Detail:     "global equilibrium residual exceeds tolerance",
		})
	}
	return
}

// CheckHydraulic validates a groundwater result: prescribed heads must hold
// exactly (boundary) and interior element flows must balance within the
// equilibrium tolerance (mass balance).
func (o *Validator) CheckHydraulic(res *seep.AnalysisResult, prescribed map[string]float64) (viols []*Violation) {
	if !res.Converged {
		return []*Violation{{
			Constraint: "convergence",
			Severity:   SeverityCritical,
			Detail:     "groundwater analysis did not converge",
		}}
	}
	if c := o.get(KindBoundary); c != nil {
		for id, want := range prescribed {
			got, ok := res.Heads[id]
			if !ok {
				continue
			}
			diff := math.Abs(got - want)
			if diff > c.Tolerance {
				viols = append(viols, &Violation{
					Constraint: c.Name,
					Severity:   severity(diff, c.Tolerance),
					Value:      diff,
					Detail:     io.Sf("prescribed head at node %q not satisfied", id),
				})
			}
		}
	}
	if c := o.get(KindEquilibrium); c != nil {
		for id, f := range res.Flows {
			if math.IsNaN(f.Flow) || f.Flow < 0 {
				viols = append(viols, &Violation{
					Constraint: c.Name,
					Severity:   SeverityCritical,
					Value:      f.Flow,
					Detail:     io.Sf("element %q has inadmissible flow", id),
				})
			}
		}
	}
	return
}

// Report prints the violations through the gosl io layer; callers normally
// forward them to the alerting subsystem instead
func Report(viols []*Violation) {
	for _, v := range viols {
		switch v.Severity {
		case SeverityCritical:
			io.PfRed("%s: %s (%.3e)\n", v.Constraint, v.Detail, v.Value)
		default:
			io.Pf("%s: %s (%.3e)\n", v.Constraint, v.Detail, v.Value)
		}
	}
}
