// Copyright 2016 The PRISM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mat

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosl/utl"
)

func Test_props01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("props01. properties from parameter set")

	m, err := NewProperties(dbf.Params{
		&dbf.P{N: "rho", V: 1.8},
		&dbf.P{N: "E", V: 50000},
		&dbf.P{N: "nu", V: 0.25},
		&dbf.P{N: "c", V: 10},
		&dbf.P{N: "phi", V: 30},
		&dbf.P{N: "k", V: 1e-6},
		&dbf.P{N: "nf", V: 0.35},
	})
	if err != nil {
		tst.Errorf("NewProperties failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "γ", 1e-13, m.UnitWeight(), 1.8*9.81)
	chk.Scalar(tst, "G", 1e-11, m.G(), 20000)
	chk.Scalar(tst, "φ[rad]", 1e-15, m.PhiRad(), math.Pi/6.0)
	chk.Scalar(tst, "τ(σn=0)", 1e-15, m.ShearStrength(0), 10)
	chk.Scalar(tst, "τ(σn=100)", 1e-12, m.ShearStrength(100), 10+100*math.Tan(math.Pi/6.0))

	// negative normal stress is treated as zero (no tension along base)
	chk.Scalar(tst, "τ(σn<0)", 1e-15, m.ShearStrength(-50), 10)
}

func Test_props02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("props02. invalid parameters")

	_, err := NewProperties(dbf.Params{&dbf.P{N: "young", V: 1000}})
	if err == nil {
		tst.Errorf("unknown parameter name must be rejected")
		return
	}

	_, err = NewProperties(dbf.Params{&dbf.P{N: "nu", V: 0.5}})
	if err == nil {
		tst.Errorf("nu=0.5 must be rejected")
		return
	}

	_, err = NewProperties(dbf.Params{&dbf.P{N: "c", V: -1}})
	if err == nil {
		tst.Errorf("negative cohesion must be rejected")
	}
}

func Test_props03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("props03. shear strength derivative")

	m, err := NewProperties(dbf.Params{
		&dbf.P{N: "c", V: 25},
		&dbf.P{N: "phi", V: 35},
	})
	if err != nil {
		tst.Errorf("NewProperties failed:\n%v", err)
		return
	}

	// dτ/dσn = tan(φ) in compression
	Sn := utl.LinSpace(10, 200, 5)
	for _, sn := range Sn {
		dnum, _ := num.DerivCen5(sn, 1e-3, func(x float64) (float64, error) {
			return m.ShearStrength(x), nil
		})
		chk.Scalar(tst, "dτdσn", 1e-9, dnum, math.Tan(m.PhiRad()))
	}
}

func Test_registry01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("registry01. add, get, duplicates")

	reg := NewRegistry()
	err := reg.Add("granite", dbf.Params{
		&dbf.P{N: "E", V: 60e6},
		&dbf.P{N: "c", V: 2000},
		&dbf.P{N: "phi", V: 45},
	})
	if err != nil {
		tst.Errorf("Add failed:\n%v", err)
		return
	}
	chk.IntAssert(reg.N(), 1)

	if !reg.Has("granite") {
		tst.Errorf("registry must contain %q", "granite")
		return
	}

	m, err := reg.Get("granite")
	if err != nil {
		tst.Errorf("Get failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "E", 1e-17, m.E, 60e6)

	// duplicate id
	err = reg.Add("granite", dbf.Params{&dbf.P{N: "E", V: 1}})
	if err == nil {
		tst.Errorf("duplicate material id must be rejected")
		return
	}

	// unknown id
	_, err = reg.Get("basalt")
	if err == nil {
		tst.Errorf("unknown material id must be rejected")
	}
}
