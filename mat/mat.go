// Copyright 2016 The PRISM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mat implements the catalog of geomaterial properties shared by the
// structural, slope-stability and groundwater solvers
package mat

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Gravity is the gravitational acceleration used to derive unit weights [m/s²]
const Gravity = 9.81

// GamW is the unit weight of water [kN/m³]
const GamW = 9.81

// Properties holds the physical properties of one geomaterial. Instances are
// immutable once registered: solvers reference them by id and never copy or
// mutate them.
type Properties struct {
	Rho      float64 // density [t/m³]
	E        float64 // Young's modulus [kPa]
	Nu       float64 // Poisson's ratio
	C        float64 // cohesion [kPa]
	Phi      float64 // friction angle [deg]
	TensStr  float64 // tensile strength [kPa]
	CompStr  float64 // compressive strength [kPa]
	Kperm    float64 // isotropic permeability [m/s]
	Porosity float64 // porosity
	Ss       float64 // specific storage [1/m]
}

// NewProperties allocates material properties from a parameter set. Follows
// the usual switch-on-name convention; unknown names are rejected since they
// indicate a typo in the caller's material description.
func NewProperties(prms dbf.Params) (o *Properties, err error) {
	o = &Properties{
		Rho:      2.0,
		Nu:       0.3,
		Porosity: 0.3,
	}
	for _, p := range prms {
		switch p.N {
		case "rho":
			o.Rho = p.V
		case "E":
			o.E = p.V
		case "nu":
			o.Nu = p.V
		case "c":
			o.C = p.V
		case "phi":
			o.Phi = p.V
		case "sigt":
			o.TensStr = p.V
		case "sigc":
			o.CompStr = p.V
		case "k":
			o.Kperm = p.V
		case "nf":
			o.Porosity = p.V
		case "Ss":
			o.Ss = p.V
		default:
			return nil, chk.Err("mat: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.E < 0 {
		return nil, chk.Err("mat: Young's modulus must be non-negative. E=%g is incorrect\n", o.E)
	}
	if o.Nu <= -1 || o.Nu >= 0.5 {
		return nil, chk.Err("mat: Poisson's ratio must be inside (-1, 0.5). nu=%g is incorrect\n", o.Nu)
	}
	if o.C < 0 || o.Phi < 0 {
		return nil, chk.Err("mat: strength parameters must be non-negative. c=%g phi=%g\n", o.C, o.Phi)
	}
	return
}

// UnitWeight returns γ = ρ·g [kN/m³]
func (o *Properties) UnitWeight() float64 {
	return o.Rho * Gravity
}

// PhiRad returns the friction angle in radians
func (o *Properties) PhiRad() float64 {
	return o.Phi * math.Pi / 180.0
}

// G returns the shear modulus
func (o *Properties) G() float64 {
	return o.E / (2.0 * (1.0 + o.Nu))
}

// Kbulk returns the bulk modulus
func (o *Properties) Kbulk() float64 {
	return o.E / (3.0 * (1.0 - 2.0*o.Nu))
}

// Mcon returns the constrained (oedometric) modulus
func (o *Properties) Mcon() float64 {
	return o.E * (1.0 - o.Nu) / ((1.0 + o.Nu) * (1.0 - 2.0*o.Nu))
}

// ShearStrength computes the Mohr-Coulomb shear strength for an effective
// normal stress σn [kPa]:  τ = c + σn·tan(φ)
func (o *Properties) ShearStrength(σn float64) float64 {
	if σn < 0 {
		σn = 0
	}
	return o.C + σn*math.Tan(o.PhiRad())
}

// Registry implements a database of materials keyed by caller-assigned ids
type Registry struct {
	mats map[string]*Properties
}

// NewRegistry allocates an empty material registry
func NewRegistry() *Registry {
	return &Registry{mats: make(map[string]*Properties)}
}

// Add registers a new material under id. Duplicate ids are rejected because
// redefining a material silently would invalidate elements referencing it.
func (o *Registry) Add(id string, prms dbf.Params) (err error) {
	if _, ok := o.mats[id]; ok {
		return chk.Err("mat: material %q exists already\n", id)
	}
	m, err := NewProperties(prms)
	if err != nil {
		return
	}
	o.mats[id] = m
	return
}

// Get returns the material registered under id
func (o *Registry) Get(id string) (m *Properties, err error) {
	m, ok := o.mats[id]
	if !ok {
		return nil, chk.Err("mat: cannot find material %q\n", id)
	}
	return
}

// Has tells whether id is registered
func (o *Registry) Has(id string) bool {
	_, ok := o.mats[id]
	return ok
}

// N returns the number of registered materials
func (o *Registry) N() int {
	return len(o.mats)
}
