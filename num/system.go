// Copyright 2016 The PRISM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package num implements the global linear system shared by the finite
// element and groundwater solvers: assembly, essential boundary condition
// enforcement by row substitution, and the dense solve
package num

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// System holds a global coefficient matrix A and right-hand-side vector B
// with N equations. Elements accumulate their local contributions with AddA
// and AddB; essential conditions rewrite equations in place so that matrix
// dimensions are preserved and no equation renumbering is needed.
type System struct {
	N int         // number of equations
	A [][]float64 // [n][n] global coefficient matrix
	B []float64   // [n] right-hand-side vector
}

// NewSystem allocates an n-equation system filled with zeros
func NewSystem(n int) (o *System) {
	if n < 1 {
		chk.Panic("system must have at least one equation. n=%d is incorrect", n)
	}
	o = new(System)
	o.N = n
	o.A = la.MatAlloc(n, n)
	o.B = make([]float64, n)
	return
}

// Clear zeroes A and B, keeping dimensions
func (o *System) Clear() {
	la.MatFill(o.A, 0)
	la.VecFill(o.B, 0)
}

// AddA accumulates value into A[i][j]
func (o *System) AddA(i, j int, value float64) {
	o.A[i][j] += value
}

// AddB accumulates value into B[i]
func (o *System) AddB(i int, value float64) {
	o.B[i] += value
}

// PrescribeValue enforces an essential (Dirichlet) condition at equation eq:
// the row is zeroed, the diagonal set to one and the right-hand-side entry
// set to the prescribed value, so the solution holds x[eq] == value exactly.
func (o *System) PrescribeValue(eq int, value float64) {
	if eq < 0 || eq >= o.N {
		chk.Panic("equation number %d is outside [0, %d)", eq, o.N)
	}
	la.VecFill(o.A[eq], 0)
	o.A[eq][eq] = 1
	o.B[eq] = value
}

// Solve computes x such that A·x = B. Singular or numerically broken systems
// come back as errors so that callers can degrade to a non-converged result
// instead of aborting a batch.
func (o *System) Solve() (x []float64, err error) {
	Ai := la.MatAlloc(o.N, o.N)
	err = la.MatInvG(Ai, o.A, 1e-10)
	if err != nil {
		return nil, chk.Err("system solve failed: %v", err)
	}
	x = make([]float64, o.N)
	la.MatVecMul(x, 1, Ai, o.B)
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, chk.Err("system solve produced non-finite entries")
		}
	}

	// the generalized inverse silently least-squares a singular system, so an
	// inconsistent right-hand side must be caught through the residual
	if la.VecNorm(o.Residual(x)) > 1e-8*(1.0+la.VecNorm(o.B)) {
		return nil, chk.Err("system is singular or inconsistent")
	}
	return
}

// Residual computes r = A·x - B for an already-solved x. Used by the
// constraint validator to measure how well equilibrium is satisfied.
func (o *System) Residual(x []float64) (r []float64) {
	r = make([]float64, o.N)
	la.MatVecMul(r, 1, o.A, x)
	for i := 0; i < o.N; i++ {
		r[i] -= o.B[i]
	}
	return
}
