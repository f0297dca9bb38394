// Copyright 2016 The PRISM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geo implements geometric primitives shared by the geomechanics solvers
package geo

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Point holds a 3D coordinate
type Point struct {
	X float64 `json:"x"` // x-coordinate
	Y float64 `json:"y"` // y-coordinate (elevation)
	Z float64 `json:"z"` // z-coordinate
}

// Sub returns the vector from q to p
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Dot computes the dot product p·q
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Norm computes the Euclidean norm of p taken as a vector
func (p Point) Norm() float64 {
	return math.Sqrt(p.Dot(p))
}

// Dist computes the distance between p and q
func (p Point) Dist(q Point) float64 {
	return p.Sub(q).Norm()
}

// Scale returns p multiplied by s
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s, p.Z * s}
}

// Centroid computes the centroid of a set of points.
// It panics with an empty set since a centroid of nothing indicates a caller bug.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		chk.Panic("cannot compute centroid of empty point set")
	}
	var c Point
	for _, p := range pts {
		c.X += p.X
		c.Y += p.Y
		c.Z += p.Z
	}
	n := float64(len(pts))
	return Point{c.X / n, c.Y / n, c.Z / n}
}

// PolyLength computes the total arc length of a polyline
func PolyLength(poly []Point) (l float64) {
	for i := 1; i < len(poly); i++ {
		l += poly[i].Dist(poly[i-1])
	}
	return
}

// InterpHeight computes the ground elevation (y) at station x by piecewise
// linear interpolation along a polyline ordered by increasing x. Stations
// outside the polyline extent are clamped to the end elevations.
func InterpHeight(poly []Point, x float64) float64 {
	if len(poly) == 0 {
		return 0
	}
	if x <= poly[0].X {
		return poly[0].Y
	}
	n := len(poly)
	for i := 1; i < n; i++ {
		if x <= poly[i].X {
			dx := poly[i].X - poly[i-1].X
			if dx <= 0 {
				return poly[i].Y
			}
			t := (x - poly[i-1].X) / dx
			return poly[i-1].Y + t*(poly[i].Y-poly[i-1].Y)
		}
	}
	return poly[n-1].Y
}

// Extent returns the horizontal extent [xmin,xmax] of a polyline
func Extent(poly []Point) (xmin, xmax float64) {
	if len(poly) == 0 {
		return
	}
	xmin, xmax = poly[0].X, poly[0].X
	for _, p := range poly {
		xmin = math.Min(xmin, p.X)
		xmax = math.Max(xmax, p.X)
	}
	return
}

// Volume estimates the volume enclosed by a cloud of element nodes. The
// estimate uses the axis-aligned bounding box, degrading gracefully for
// planar or collinear clouds by substituting a unit length per collapsed
// dimension so that downstream stiffness scaling never sees zero volume.
func Volume(pts []Point) float64 {
	if len(pts) < 2 {
		return 1
	}
	xmin, xmax := pts[0].X, pts[0].X
	ymin, ymax := pts[0].Y, pts[0].Y
	zmin, zmax := pts[0].Z, pts[0].Z
	for _, p := range pts {
		xmin, xmax = math.Min(xmin, p.X), math.Max(xmax, p.X)
		ymin, ymax = math.Min(ymin, p.Y), math.Max(ymax, p.Y)
		zmin, zmax = math.Min(zmin, p.Z), math.Max(zmax, p.Z)
	}
	dx, dy, dz := xmax-xmin, ymax-ymin, zmax-zmin
	if dx <= 0 {
		dx = 1
	}
	if dy <= 0 {
		dy = 1
	}
	if dz <= 0 {
		dz = 1
	}
	return dx * dy * dz
}

// CharLength returns the characteristic length of an element volume
func CharLength(volume float64) float64 {
	if volume <= 0 {
		return 1
	}
	return math.Cbrt(volume)
}
