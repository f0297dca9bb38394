// Copyright 2016 The PRISM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slope

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"

	"github.com/DEBDEEP-BANERJ2E/PRISM-sub004/geo"
	"github.com/DEBDEEP-BANERJ2E/PRISM-sub004/mat"
)

// Search methods. Only SearchCircular and SearchBlock are implemented; the
// remaining selectors degrade to an empty surface set rather than failing.
const (
	SearchCircular    = "circular"
	SearchNonCircular = "non_circular"
	SearchBlock       = "block"
	SearchWedge       = "wedge"
)

// Limit-equilibrium methods
const (
	MethodBishop  = "bishop"
	MethodSpencer = "spencer"
)

// Params holds the configuration of one limit-equilibrium analysis
type Params struct {
	SearchMethod         string  // circular | non_circular | block | wedge
	Method               string  // bishop | spencer; empty selects bishop
	NumberOfSlices       int     // slice count per surface
	ConvergenceTolerance float64 // |ΔF| stopping criterion
	MaxIterations        int     // iteration budget; the sole termination guarantee
}

// withDefaults fills unset parameters
func (o Params) withDefaults() Params {
	if o.SearchMethod == "" {
		o.SearchMethod = SearchCircular
	}
	if o.Method == "" {
		o.Method = MethodBishop
	}
	if o.NumberOfSlices < 1 {
		o.NumberOfSlices = 10
	}
	if o.ConvergenceTolerance <= 0 {
		o.ConvergenceTolerance = 1e-4
	}
	if o.MaxIterations < 1 {
		o.MaxIterations = 100
	}
	return o
}

// Analysis holds the outcome of one limit-equilibrium run. The reported
// safety factor is the minimum positive value across all analyzed surfaces
// and CriticalSurface identifies the surface carrying it.
type Analysis struct {
	SafetyFactor    float64        // minimum positive safety factor
	Converged       bool           // whether the critical surface's iteration converged
	CriticalSurface *SlipSurface   // surface with the minimum positive safety factor
	Surfaces        []*SlipSurface // all generated surfaces, analyzed in order
	Theta           float64        // interslice inclination (Spencer only) [rad]
}

// Solver implements the limit-equilibrium slope-stability analysis. One
// instance owns one material registry and one groundwater table; it is
// single-threaded and non-reentrant.
type Solver struct {
	mats  *mat.Registry
	water *geo.WaterTable
}

// NewSolver allocates a slope-stability solver
func NewSolver() *Solver {
	return &Solver{mats: mat.NewRegistry(), water: geo.NewWaterTable()}
}

// AddMaterial registers a material from a parameter set
func (o *Solver) AddMaterial(id string, prms dbf.Params) error {
	return o.mats.Add(id, prms)
}

// SetGroundwaterLevel records a measured groundwater elevation at a sensor
// location. Levels feed the pore-pressure estimate of every later analysis.
func (o *Solver) SetGroundwaterLevel(locationID string, level float64) {
	o.water.SetLevel(locationID, level)
}

// GenerateSurfaces builds the candidate slip surfaces for a search method
func GenerateSurfaces(boundary []geo.Point, method string) []*SlipSurface {
	switch method {
	case SearchCircular:
		return generateCircular(boundary)
	case SearchBlock:
		return generateBlock(boundary)
	}
	return nil // non_circular and wedge are not implemented
}

// analyzeSurface runs the selected method on one candidate surface, mutating
// it once with its results. Numerical failures zero the surface and return
// normally so the batch can continue.
func (o *Solver) analyzeSurface(srf *SlipSurface, boundary []geo.Point, m *mat.Properties, params Params) (θ float64) {
	srf.Slices = buildSlices(srf, boundary, m, o.water, params.NumberOfSlices)

	var F float64
	var converged bool
	var err error
	switch params.Method {
	case MethodSpencer:
		F, θ, converged, err = spencer(srf.Slices, m, params.ConvergenceTolerance, params.MaxIterations)
	default:
		F, converged, err = bishop(srf.Slices, m, params.ConvergenceTolerance, params.MaxIterations)
	}
	if err != nil {
		io.Pf("slope: surface %q did not converge: %v", srf.ID, err)
		srf.SafetyFactor, srf.Converged = 0, false
		return
	}
	srf.SafetyFactor, srf.Converged = F, converged
	finishSlices(srf, m, F)
	return
}

// PerformLimitEquilibriumAnalysis generates candidate surfaces for the given
// slope boundary and reports the critical one. An unregistered material id is
// a hard failure; a surface whose analysis breaks down is zeroed and skipped
// by the critical-surface selection.
func (o *Solver) PerformLimitEquilibriumAnalysis(boundary []geo.Point, materialID string, params Params) (res *Analysis, err error) {

	// preconditions
	m, err := o.mats.Get(materialID)
	if err != nil {
		return nil, err
	}
	if len(boundary) < 2 {
		return nil, chk.Err("slope: boundary polyline needs at least two points\n")
	}
	params = params.withDefaults()

	// candidate surfaces
	res = &Analysis{Surfaces: GenerateSurfaces(boundary, params.SearchMethod)}
	if len(res.Surfaces) == 0 {
		return // empty surface set: unimplemented search method or degenerate extent
	}

	// analyze every surface, then pick the critical one
	thetas := make([]float64, len(res.Surfaces))
	for k, srf := range res.Surfaces {
		thetas[k] = o.analyzeSurface(srf, boundary, m, params)
	}
	if k := criticalIndex(res.Surfaces); k >= 0 {
		srf := res.Surfaces[k]
		res.SafetyFactor = srf.SafetyFactor
		res.CriticalSurface = srf
		res.Converged = srf.Converged
		res.Theta = thetas[k]
	}

	// degenerate-input fallback: no surface produced a positive factor
	if res.CriticalSurface == nil {
		res.CriticalSurface = res.Surfaces[0]
		res.SafetyFactor = res.Surfaces[0].SafetyFactor
		res.Converged = res.Surfaces[0].Converged
	}
	return
}

// criticalIndex returns the index of the surface with the smallest positive
// safety factor, preferring converged results so a clamped factor from a
// broken iteration cannot displace a genuine one. Returns -1 when no surface
// has a positive factor.
func criticalIndex(surfaces []*SlipSurface) (best int) {
	best = -1
	for k, srf := range surfaces {
		if srf.SafetyFactor <= 0 {
			continue
		}
		if best < 0 {
			best = k
			continue
		}
		b := surfaces[best]
		if srf.Converged != b.Converged {
			if srf.Converged {
				best = k
			}
			continue
		}
		if srf.SafetyFactor < b.SafetyFactor {
			best = k
		}
	}
	return
}

// PerformBishopAnalysis runs Bishop's simplified method on one fixed surface.
// The returned factor is finite: non-finite iterations are clamped to the
// safe default.
func (o *Solver) PerformBishopAnalysis(boundary []geo.Point, srf *SlipSurface, materialID string, params Params) (F float64, err error) {
	m, err := o.mats.Get(materialID)
	if err != nil {
		return 0, err
	}
	params = params.withDefaults()
	srf.Slices = buildSlices(srf, boundary, m, o.water, params.NumberOfSlices)
	F, converged, err := bishop(srf.Slices, m, params.ConvergenceTolerance, params.MaxIterations)
	if err != nil {
		return 0, err
	}
	srf.SafetyFactor, srf.Converged = F, converged
	finishSlices(srf, m, F)
	if math.IsNaN(F) || math.IsInf(F, 0) {
		return safeDefaultF, nil
	}
	return
}

// PerformSpencerAnalysis runs Spencer's method on one fixed surface,
// returning the safety factor and the interslice force inclination
func (o *Solver) PerformSpencerAnalysis(boundary []geo.Point, srf *SlipSurface, materialID string, params Params) (F, θ float64, err error) {
	m, err := o.mats.Get(materialID)
	if err != nil {
		return 0, 0, err
	}
	params = params.withDefaults()
	srf.Slices = buildSlices(srf, boundary, m, o.water, params.NumberOfSlices)
	F, θ, converged, err := spencer(srf.Slices, m, params.ConvergenceTolerance, params.MaxIterations)
	if err != nil {
		return 0, 0, err
	}
	srf.SafetyFactor, srf.Converged = F, converged
	finishSlices(srf, m, F)
	return
}
