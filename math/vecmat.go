// math/vecmat.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import gomath "math"

///////////////////////////////////////////////////////////////////////////
// point 2d

// Point2 is a point or vector in a local planar frame, in meters unless
// noted otherwise; 0 is x (east) and 1 is y (north).
type Point2 [2]float64

// Various useful functions for arithmetic with 2D points/vectors.
// Names are brief in order to avoid clutter when they're used.

// a+b
func Add2d(a, b Point2) Point2 {
	return Point2{a[0] + b[0], a[1] + b[1]}
}

// a-b
func Sub2d(a, b Point2) Point2 {
	return Point2{a[0] - b[0], a[1] - b[1]}
}

// a*s
func Scale2d(a Point2, s float64) Point2 {
	return Point2{s * a[0], s * a[1]}
}

func Dot2d(a, b Point2) float64 {
	return a[0]*b[0] + a[1]*b[1]
}

// Cross2d returns the z component of the 3D cross product of a and b.
func Cross2d(a, b Point2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// Length of v
func Length2d(v Point2) float64 {
	return gomath.Sqrt(Sqr(v[0]) + Sqr(v[1]))
}

// Distance between two points
func Distance2d(a, b Point2) float64 {
	return Length2d(Sub2d(a, b))
}

// IsOrigin reports whether p is exactly (0,0). No tolerance is applied.
func (p Point2) IsOrigin() bool {
	return p[0] == 0 && p[1] == 0
}

var north = Point2{0, 1}

// VectorHeading returns the bearing of v in degrees, measured clockwise
// from north (+y), in [0,360). The zero vector has heading 0.
func VectorHeading(v Point2) float64 {
	h := Degrees(gomath.Atan2(Cross2d(v, north), Dot2d(v, north)))
	if h < 0 {
		h += 360
	}
	return h
}
