// Copyright 2016 The PRISM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seep

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/DEBDEEP-BANERJ2E/PRISM-sub004/geo"
)

// buildColumn registers a 3-node flow column along x with uniform properties
func buildColumn(tst *testing.T) (o *Solver) {
	o = NewSolver()
	for _, err := range []error{
		o.AddNode("h1", geo.Point{X: 0}),
		o.AddNode("h2", geo.Point{X: 5}),
		o.AddNode("h3", geo.Point{X: 10}),
		o.AddElement("c1", []string{"h1", "h2"}, 1e-5, 0.3, 1e-4),
		o.AddElement("c2", []string{"h2", "h3"}, 1e-5, 0.3, 1e-4),
	} {
		if err != nil {
			tst.Errorf("column setup failed:\n%v", err)
			return nil
		}
	}
	return
}

func Test_seepreg01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("seepreg01. registry preconditions")

	o := NewSolver()
	o.AddNode("h1", geo.Point{})

	err := o.AddElement("c1", []string{"h1", "nope"}, 1e-5, 0.3, 0)
	if err == nil {
		tst.Errorf("element referencing unknown node must be rejected")
		return
	}

	err = o.AddBoundaryCondition(&BoundaryCond{NodeID: "nope", Type: BcHead, Value: 1})
	if err == nil {
		tst.Errorf("boundary condition on unknown node must be rejected")
		return
	}

	err = o.SetAnalysisType("quasi_static")
	if err == nil {
		tst.Errorf("unknown analysis type must be rejected")
	}
}

func Test_gwestimate01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gwestimate01. node estimates follow the water table")

	o := NewSolver()
	o.AddNode("h1", geo.Point{X: 0, Y: 2})
	chk.Scalar(tst, "h1 before", 1e-17, o.nodes["h1"].GwEstimate, 0)

	// a new measurement refreshes nodes registered earlier
	o.SetGroundwaterLevel("p1", 8)
	chk.Scalar(tst, "h1 after p1", 1e-17, o.nodes["h1"].GwEstimate, 8)

	// further measurements shift the averaged table for every node
	o.SetGroundwaterLevel("p2", 4)
	chk.Scalar(tst, "h1 after p2", 1e-15, o.nodes["h1"].GwEstimate, 6)

	// nodes registered afterwards pick up the same estimate
	o.AddNode("h2", geo.Point{X: 5, Y: 2})
	chk.Scalar(tst, "h2", 1e-15, o.nodes["h2"].GwEstimate, 6)
}

func Test_steady01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("steady01. single prescribed-head node, no elements")

	o := NewSolver()
	o.AddNode("h1", geo.Point{X: 0, Y: 2})
	o.AddBoundaryCondition(&BoundaryCond{NodeID: "h1", Type: BcHead, Value: 7.5})

	res := o.PerformSteadyStateAnalysis()
	if !res.Converged {
		tst.Errorf("analysis must converge")
		return
	}
	chk.Scalar(tst, "h(h1)", 1e-14, res.Heads["h1"], 7.5)
}

func Test_steady02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("steady02. linear head drop along a uniform column")

	o := buildColumn(tst)
	if o == nil {
		return
	}
	o.AddBoundaryCondition(&BoundaryCond{NodeID: "h1", Type: BcHead, Value: 10})
	o.AddBoundaryCondition(&BoundaryCond{NodeID: "h3", Type: BcHead, Value: 0})

	res := o.PerformSteadyStateAnalysis()
	if !res.Converged {
		tst.Errorf("analysis must converge")
		return
	}
	io.Pforan("h = %v %v %v\n", res.Heads["h1"], res.Heads["h2"], res.Heads["h3"])

	// uniform conductivity: middle node sits at the average head
	chk.Scalar(tst, "h(h2)", 1e-10, res.Heads["h2"], 5)

	// Darcy velocity points down-gradient (+x) with |v| = k·|∇h|
	f := res.Flows["c1"]
	chk.Scalar(tst, "|∇h|", 1e-10, f.Gradient, 1)
	chk.Scalar(tst, "vx", 1e-14, f.Velocity.X, 1e-5)
	chk.Scalar(tst, "seep vx", 1e-13, f.SeepVelocity.X, 1e-5/0.3)
	if f.SeepForce.X <= 0 {
		tst.Errorf("seepage force must act along the flow direction")
		return
	}

	// mass balance at the interior node: inflow equals outflow
	chk.Scalar(tst, "Q(c1) - Q(c2)", 1e-12, res.Flows["c1"].Flow-res.Flows["c2"].Flow, 0)
}

func Test_steady03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("steady03. numerical failure degrades to non-converged")

	// no boundary conditions at all: singular conductivity matrix
	o := buildColumn(tst)
	if o == nil {
		return
	}
	o.AddBoundaryCondition(&BoundaryCond{NodeID: "h1", Type: BcFlow, Value: 1e-6})

	res := o.PerformSteadyStateAnalysis()
	if res.Converged {
		tst.Errorf("singular system must yield a non-converged result")
		return
	}
	chk.IntAssert(len(res.Heads), 0)
}

func Test_transient01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("transient01. implicit stepping approaches the steady state")

	o := buildColumn(tst)
	if o == nil {
		return
	}
	o.SetAnalysisType(AnalysisTransient)
	o.AddBoundaryCondition(&BoundaryCond{NodeID: "h1", Type: BcHead, Value: 10})
	o.AddBoundaryCondition(&BoundaryCond{NodeID: "h3", Type: BcHead, Value: 0})

	res := o.PerformTransientAnalysis(100, 1000, map[string]float64{"h1": 10, "h2": 0, "h3": 0})
	if !res.Converged {
		tst.Errorf("transient analysis must converge")
		return
	}
	chk.IntAssert(len(res.Steps), 10)

	// the interior head rises monotonically towards the steady value 5
	prev := 0.0
	for k, step := range res.Steps {
		h2 := step.Heads["h2"]
		if h2 < prev-1e-12 {
			tst.Errorf("step %d: interior head decreased: %v < %v", k, h2, prev)
			return
		}
		prev = h2
	}
	last := res.Steps[len(res.Steps)-1].Heads["h2"]
	io.Pforan("h2(final) = %v\n", last)
	if last <= 0 || last > 5+1e-10 {
		tst.Errorf("interior head must approach 5 from below. got %v", last)
	}
}

func Test_transient02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("transient02. invalid stepping parameters")

	o := buildColumn(tst)
	if o == nil {
		return
	}
	res := o.PerformTransientAnalysis(0, 100, nil)
	if res.Converged {
		tst.Errorf("zero time step must yield a non-converged result")
		return
	}
	chk.IntAssert(len(res.Steps), 0)
}

func Test_transient03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("transient03. failed step halts before recording anything")

	// zero storage and no boundary conditions: (C/Δt + K) is singular, so
	// the very first solve fails and stepping must stop right there
	o := NewSolver()
	for _, err := range []error{
		o.AddNode("h1", geo.Point{X: 0}),
		o.AddNode("h2", geo.Point{X: 5}),
		o.AddNode("h3", geo.Point{X: 10}),
		o.AddElement("c1", []string{"h1", "h2"}, 1e-5, 0.3, 0),
		o.AddElement("c2", []string{"h2", "h3"}, 1e-5, 0.3, 0),
	} {
		if err != nil {
			tst.Errorf("column setup failed:\n%v", err)
			return
		}
	}
	o.SetAnalysisType(AnalysisTransient)

	res := o.PerformTransientAnalysis(100, 1000, map[string]float64{"h1": 10})
	if res.Converged {
		tst.Errorf("singular step must yield a non-converged result")
		return
	}
	chk.IntAssert(len(res.Steps), 0)
	chk.IntAssert(len(res.Times), 0)
}
