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

// safeDefaultF is substituted whenever an iteration produces a non-finite
// safety factor (e.g. zero driving moment on a degenerate surface)
const safeDefaultF = 10.0

// mAlphaMin bounds Bishop's correction factor away from zero so that steep
// slices with strongly negative base angles cannot blow up one term
const mAlphaMin = 0.05

// bishop iterates Bishop's simplified method on already-built slices:
//
//	F = Σ [c·b + (W - u·b)·tanφ] / m_α  /  Σ W·sinα
//	m_α = cosα + sinα·tanφ/F
//
// starting from F = 1 and stopping on |ΔF| < tol or maxIt iterations.
func bishop(slices []*Slice, m *mat.Properties, tol float64, maxIt int) (F float64, converged bool, err error) {
	if len(slices) == 0 {
		return 0, false, chk.Err("slope: bishop needs at least one slice\n")
	}
	tanφ := math.Tan(m.PhiRad())
	F = 1.0
	for it := 0; it < maxIt; it++ {
		num, den := 0.0, 0.0
		for _, s := range slices {
			mα := utl.Max(math.Cos(s.BaseAngle)+math.Sin(s.BaseAngle)*tanφ/F, mAlphaMin)
			eff := utl.Max(s.Weight-s.PorePressure*s.Width, 0)
			num += (m.C*s.Width + eff*tanφ) / mα
			den += s.Weight * math.Sin(s.BaseAngle)
		}
		Fnew := num / den
		if math.IsNaN(Fnew) || math.IsInf(Fnew, 0) {
			return safeDefaultF, false, nil
		}
		if math.Abs(Fnew-F) < tol {
			return Fnew, true, nil
		}
		F = Fnew
	}
	return F, false, nil
}
