// Copyright 2016 The PRISM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package slope implements the limit-equilibrium slope-stability solver
package slope

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/DEBDEEP-BANERJ2E/PRISM-sub004/geo"
	"github.com/DEBDEEP-BANERJ2E/PRISM-sub004/mat"
)

// nArcPoints is the number of stations sampled along one candidate arc
const nArcPoints = 21

// Slice holds the result of one vertical slice of a slip surface
type Slice struct {
	Width          float64 // horizontal width
	Height         float64 // ground minus base elevation at mid station
	Weight         float64 // γ·width·height (unit thickness)
	PorePressure   float64 // hydrostatic pressure at base
	BaseAngle      float64 // inclination α of the base [rad]
	BaseLength     float64 // width/cos(α)
	EffNormal      float64 // effective normal stress at base
	ShearStrength  float64 // available Mohr-Coulomb strength
	MobilizedShear float64 // strength divided by the safety factor
}

// SlipSurface holds one candidate failure surface. Surfaces are created by
// the generation step, mutated exactly once by the analysis step and
// immutable thereafter.
type SlipSurface struct {
	ID             string      // e.g. "circular_3", "block_1"
	Points         []geo.Point // base polyline ordered by increasing x
	Volume         float64     // sliding mass volume (unit thickness)
	Weight         float64     // sliding mass weight
	SafetyFactor   float64     // converged safety factor; 0 before analysis
	DrivingForce   float64     // Σ W·sin(α)
	ResistingForce float64     // Σ τ_available·base length
	Converged      bool        // whether the iteration met its tolerance
	Slices         []*Slice    // per-slice results
}

// baseHeight interpolates the base elevation of the surface at station x
func (o *SlipSurface) baseHeight(x float64) float64 {
	return geo.InterpHeight(o.Points, x)
}

// generateCircular builds the fixed grid of candidate circular arcs above
// the slope. Every arc passes through the toe and is clipped to the
// boundary's horizontal extent; arcs whose base never dips below the ground
// are discarded.
func generateCircular(boundary []geo.Point) (surfaces []*SlipSurface) {
	xmin, xmax := geo.Extent(boundary)
	W := xmax - xmin
	if W <= 0 {
		return
	}
	ytoe := geo.InterpHeight(boundary, xmin)
	ycrest := geo.InterpHeight(boundary, xmax)
	H := utl.Max(ycrest-ytoe, 0.2*W)

	count := 1
	for _, fx := range utl.LinSpace(0.3, 0.7, 3) {
		for _, fy := range utl.LinSpace(0.4, 1.2, 3) {
			xc := xmin + fx*W
			yc := ycrest + fy*H
			R := math.Sqrt((xc-xmin)*(xc-xmin) + (yc-ytoe)*(yc-ytoe)) // through the toe

			// exit station: largest x where the arc is still below the ground
			xlim := utl.Min(xmax, xc+0.999*R)
			x2 := -1.0
			for _, x := range utl.LinSpace(xlim, xmin+0.1*W, 50) {
				yb := yc - math.Sqrt(R*R-(x-xc)*(x-xc))
				if yb <= geo.InterpHeight(boundary, x) {
					x2 = x
					break
				}
			}
			if x2 <= xmin {
				continue
			}

			// sample base polyline
			pts := make([]geo.Point, nArcPoints)
			for i, x := range utl.LinSpace(xmin, x2, nArcPoints) {
				dx := x - xc
				pts[i] = geo.Point{X: x, Y: yc - math.Sqrt(R*R-dx*dx)}
			}
			surfaces = append(surfaces, &SlipSurface{
				ID:     io.Sf("circular_%d", count),
				Points: pts,
			})
			count++
		}
	}
	return
}

// generateBlock builds the single straight toe-to-crest block surface
func generateBlock(boundary []geo.Point) []*SlipSurface {
	xmin, xmax := geo.Extent(boundary)
	if xmax <= xmin {
		return nil
	}
	toe := geo.Point{X: xmin, Y: geo.InterpHeight(boundary, xmin)}
	crest := geo.Point{X: xmax, Y: geo.InterpHeight(boundary, xmax)}
	return []*SlipSurface{{
		ID:     "block_1",
		Points: []geo.Point{toe, crest},
	}}
}

// buildSlices discretizes a surface into n equal-width vertical slices,
// interpolating ground height and hydrostatic pore pressure per slice.
func buildSlices(srf *SlipSurface, boundary []geo.Point, m *mat.Properties, wt *geo.WaterTable, n int) (slices []*Slice) {
	x1 := srf.Points[0].X
	x2 := srf.Points[len(srf.Points)-1].X
	w := (x2 - x1) / float64(n)
	if w <= 0 {
		return
	}
	γ := m.UnitWeight()
	zw, hasWater := 0.0, false
	if wt != nil {
		zw, hasWater = wt.LevelAt(0.5*(x1+x2), 0)
	}
	for i := 0; i < n; i++ {
		xm := x1 + (float64(i)+0.5)*w
		yb := srf.baseHeight(xm)
		yg := geo.InterpHeight(boundary, xm)
		h := utl.Max(yg-yb, 0)

		// base inclination from the local slope of the base polyline
		δ := 0.5 * w
		α := math.Atan2(srf.baseHeight(xm+δ)-srf.baseHeight(xm-δ), 2*δ)
		l := w / math.Cos(α)

		// hydrostatic pore pressure below the interpolated water table
		u := 0.0
		if hasWater && zw > yb {
			u = mat.GamW * (zw - yb)
		}

		slices = append(slices, &Slice{
			Width:        w,
			Height:       h,
			Weight:       γ * w * h,
			PorePressure: u,
			BaseAngle:    α,
			BaseLength:   l,
		})
	}
	return
}

// finishSlices fills the per-slice strength fields once the safety factor is
// known, and accumulates the surface totals.
func finishSlices(srf *SlipSurface, m *mat.Properties, F float64) {
	tanφ := math.Tan(m.PhiRad())
	srf.Volume, srf.Weight = 0, 0
	srf.DrivingForce, srf.ResistingForce = 0, 0
	for _, s := range srf.Slices {
		σn := utl.Max(s.Weight*math.Cos(s.BaseAngle)/s.BaseLength-s.PorePressure, 0)
		s.EffNormal = σn
		s.ShearStrength = m.C + σn*tanφ
		if F > 0 {
			s.MobilizedShear = s.ShearStrength / F
		}
		srf.Volume += s.Width * s.Height
		srf.Weight += s.Weight
		srf.DrivingForce += s.Weight * math.Sin(s.BaseAngle)
		srf.ResistingForce += s.ShearStrength * s.BaseLength
	}
}
