// Copyright 2016 The PRISM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slope

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/DEBDEEP-BANERJ2E/PRISM-sub004/mat"
)

// Spencer iteration bounds. These clamps are deliberate numerical-stability
// behaviour: every update stays inside the physical range so the iteration
// always terminates within its budget, even when the residuals refuse to
// decrease on pathological geometry.
const (
	spencerFmin     = 0.1  // lower bound on the safety factor
	spencerFmax     = 5.0  // upper bound on the safety factor
	spencerThetaMax = 0.5  // bound on |θ| [rad]
	spencerRelax    = 0.25 // relaxation applied to the θ update
)

// spencerTrial evaluates the moment-based and force-based safety factors for
// a trial state (F, θ), with θ the common interslice force inclination
func spencerTrial(slices []*Slice, m *mat.Properties, F, θ float64) (Fm, Ff float64) {
	tanφ := math.Tan(m.PhiRad())
	var rm, dm, rf, df float64
	for _, s := range slices {
		sinα := math.Sin(s.BaseAngle)
		cosα := math.Cos(s.BaseAngle)
		mα := utl.Max(cosα+sinα*tanφ/F, mAlphaMin)
		eff := utl.Max(s.Weight-s.PorePressure*s.Width, 0)

		// moment equilibrium (arm R cancels for one surface)
		rm += (m.C*s.Width + eff*tanφ) / mα
		dm += s.Weight * sinα

		// horizontal force equilibrium with inclined interslice forces
		σn := utl.Max(s.Weight*cosα/s.BaseLength-s.PorePressure, 0)
		rf += (m.C*s.BaseLength + σn*s.BaseLength*tanφ) * math.Cos(s.BaseAngle-θ)
		df += s.Weight * sinα * math.Cos(θ)
	}
	Fm, Ff = rm/dm, rf/df
	return
}

// spencer solves for the safety factor and the interslice force inclination
// θ by driving the force and moment residuals to zero together. Each
// iteration bounds the updates (F within [0.1, 5], θ within [-0.5, 0.5] rad),
// which guarantees termination within maxIt even without strict residual
// decrease.
func spencer(slices []*Slice, m *mat.Properties, tol float64, maxIt int) (F, θ float64, converged bool, err error) {
	if len(slices) == 0 {
		return 0, 0, false, chk.Err("slope: spencer needs at least one slice\n")
	}
	F, θ = 1.0, 0.0
	for it := 0; it < maxIt; it++ {
		Fm, Ff := spencerTrial(slices, m, F, θ)
		if math.IsNaN(Fm) || math.IsInf(Fm, 0) || math.IsNaN(Ff) || math.IsInf(Ff, 0) {
			return safeDefaultF, θ, false, nil
		}
		Fnew := utl.Min(utl.Max(0.5*(Fm+Ff), spencerFmin), spencerFmax)
		θnew := utl.Min(utl.Max(θ+spencerRelax*(Fm-Ff)/utl.Max(F, spencerFmin), -spencerThetaMax), spencerThetaMax)
		if math.Abs(Fnew-F) < tol && math.Abs(Fm-Ff) < tol {
			return Fnew, θnew, true, nil
		}
		F, θ = Fnew, θnew
	}
	return F, θ, false, nil
}
