// Package sdf implements the closed-form signed distance functions for the
// supported primitive shapes and the CSG blending algebra that combines them.
//
// Every function here takes a point already transformed into the primitive's
// local frame and returns a signed scalar: negative inside the solid, zero on
// the surface, positive outside. All returned values are true lower bounds on
// the Euclidean distance to the nearest surface point, which is the property
// sphere tracing relies on for safe step sizes.
package sdf

import (
	"math"

	"github.com/mtarnawa/sdfray/pkg/geom"
)

// Far is the sentinel distance returned for degenerate or unknown geometry.
// It is large enough that any ray gives up long before reaching it, so a
// primitive reporting Far is effectively absent from the scene.
const Far = math.MaxFloat64 / 4

// Sphere returns the signed distance from p to a sphere of radius r
// centered at the local origin.
func Sphere(p geom.Vec3, r float64) float64 {
	return p.Length() - r
}

// Box returns the signed distance from p to an axis-aligned box with the
// given half extents, centered at the local origin.
func Box(p, halfExtents geom.Vec3) float64 {
	q := p.Abs().Sub(halfExtents)
	outside := q.Max(geom.Vec3{}).Length()
	inside := math.Min(q.MaxComponent(), 0)
	return outside + inside
}

// RoundedBox returns the signed distance to a box with edges rounded by
// the given radius. Half extents describe the core box before rounding.
func RoundedBox(p, halfExtents geom.Vec3, rounding float64) float64 {
	return Box(p, halfExtents) - rounding
}

// Ellipsoid returns an approximate signed distance to an axis-aligned
// ellipsoid with the given per-axis radii. The bound approximation
// k0*(k0-1)/k1 underestimates the true distance, so it remains a valid
// lower bound for marching. A near-zero denominator (point at the origin
// of a degenerate ellipsoid) yields Far instead of dividing by zero.
func Ellipsoid(p, radii geom.Vec3) float64 {
	if radii.X == 0 || radii.Y == 0 || radii.Z == 0 {
		return Far
	}
	k0 := p.Div(radii).Length()
	k1 := p.Div(radii.Mul(radii)).Length()
	if k1 < 1e-12 {
		return Far
	}
	return k0 * (k0 - 1) / k1
}

// Capsule returns the signed distance to a capsule aligned with the local
// Y axis: a cylinder of the given radius and height capped by hemispheres.
// Height measures the cylindrical section between the two cap centers.
func Capsule(p geom.Vec3, radius, height float64) float64 {
	half := height / 2
	y := math.Max(-half, math.Min(half, p.Y))
	return geom.Vec3{X: p.X, Y: p.Y - y, Z: p.Z}.Length() - radius
}

// Torus returns the signed distance to a torus lying in the local XZ plane:
// a ring of the given major radius swept by a circle of the minor radius.
func Torus(p geom.Vec3, major, minor float64) float64 {
	ring := math.Sqrt(p.X*p.X+p.Z*p.Z) - major
	return math.Sqrt(ring*ring+p.Y*p.Y) - minor
}

// Cylinder returns the signed distance to a finite cylinder aligned with
// the local Y axis, with the given radius and total height.
func Cylinder(p geom.Vec3, radius, height float64) float64 {
	dRadial := math.Sqrt(p.X*p.X+p.Z*p.Z) - radius
	dAxial := math.Abs(p.Y) - height/2
	outside := math.Sqrt(math.Max(dRadial, 0)*math.Max(dRadial, 0) +
		math.Max(dAxial, 0)*math.Max(dAxial, 0))
	inside := math.Min(math.Max(dRadial, dAxial), 0)
	return outside + inside
}
