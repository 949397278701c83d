package scene

import (
	"github.com/mtarnawa/sdfray/pkg/geom"
	"github.com/mtarnawa/sdfray/pkg/sdf"
)

// ShapeParams is the interface for shape-specific primitive parameters.
// Each supported shape has its own params type, so required fields are
// validated once at scene construction instead of probed defensively on
// every evaluation.
type ShapeParams interface {
	// Distance returns the signed distance from a point in the
	// primitive's local frame to the shape surface.
	Distance(p geom.Vec3) float64

	// Bounds returns a conservative local-space axis-aligned bounding
	// box enclosing the shape.
	Bounds() (min, max geom.Vec3)

	shapeParams() // marker method restricting implementations to this package
}

// SphereParams describes a sphere of the given radius.
type SphereParams struct {
	Radius float64 `json:"radius"`
}

func (s SphereParams) Distance(p geom.Vec3) float64 {
	return sdf.Sphere(p, s.Radius)
}

func (s SphereParams) Bounds() (geom.Vec3, geom.Vec3) {
	r := geom.V(s.Radius, s.Radius, s.Radius)
	return r.Neg(), r
}

func (SphereParams) shapeParams() {}

// BoxParams describes an axis-aligned box by its half extents.
type BoxParams struct {
	HalfExtents geom.Vec3 `json:"halfExtents"`
}

func (b BoxParams) Distance(p geom.Vec3) float64 {
	return sdf.Box(p, b.HalfExtents)
}

func (b BoxParams) Bounds() (geom.Vec3, geom.Vec3) {
	return b.HalfExtents.Neg(), b.HalfExtents
}

func (BoxParams) shapeParams() {}

// RoundedBoxParams describes a box with rounded edges. Half extents
// describe the core box; rounding expands it outward.
type RoundedBoxParams struct {
	HalfExtents geom.Vec3 `json:"halfExtents"`
	Rounding    float64   `json:"rounding"`
}

func (b RoundedBoxParams) Distance(p geom.Vec3) float64 {
	return sdf.RoundedBox(p, b.HalfExtents, b.Rounding)
}

func (b RoundedBoxParams) Bounds() (geom.Vec3, geom.Vec3) {
	r := geom.V(b.Rounding, b.Rounding, b.Rounding)
	ext := b.HalfExtents.Add(r)
	return ext.Neg(), ext
}

func (RoundedBoxParams) shapeParams() {}

// EllipsoidParams describes an axis-aligned ellipsoid by per-axis radii.
type EllipsoidParams struct {
	Radii geom.Vec3 `json:"radii"`
}

func (e EllipsoidParams) Distance(p geom.Vec3) float64 {
	return sdf.Ellipsoid(p, e.Radii)
}

func (e EllipsoidParams) Bounds() (geom.Vec3, geom.Vec3) {
	return e.Radii.Neg(), e.Radii
}

func (EllipsoidParams) shapeParams() {}

// CapsuleParams describes a Y-axis capsule. Height measures the straight
// section between the two hemisphere centers.
type CapsuleParams struct {
	Radius float64 `json:"radius"`
	Height float64 `json:"height"`
}

func (c CapsuleParams) Distance(p geom.Vec3) float64 {
	return sdf.Capsule(p, c.Radius, c.Height)
}

func (c CapsuleParams) Bounds() (geom.Vec3, geom.Vec3) {
	ext := geom.V(c.Radius, c.Height/2+c.Radius, c.Radius)
	return ext.Neg(), ext
}

func (CapsuleParams) shapeParams() {}

// TorusParams describes a torus in the local XZ plane.
type TorusParams struct {
	MajorRadius float64 `json:"majorRadius"`
	MinorRadius float64 `json:"minorRadius"`
}

func (t TorusParams) Distance(p geom.Vec3) float64 {
	return sdf.Torus(p, t.MajorRadius, t.MinorRadius)
}

func (t TorusParams) Bounds() (geom.Vec3, geom.Vec3) {
	ext := geom.V(t.MajorRadius+t.MinorRadius, t.MinorRadius, t.MajorRadius+t.MinorRadius)
	return ext.Neg(), ext
}

func (TorusParams) shapeParams() {}

// CylinderParams describes a finite Y-axis cylinder by radius and total
// height.
type CylinderParams struct {
	Radius float64 `json:"radius"`
	Height float64 `json:"height"`
}

func (c CylinderParams) Distance(p geom.Vec3) float64 {
	return sdf.Cylinder(p, c.Radius, c.Height)
}

func (c CylinderParams) Bounds() (geom.Vec3, geom.Vec3) {
	ext := geom.V(c.Radius, c.Height/2, c.Radius)
	return ext.Neg(), ext
}

func (CylinderParams) shapeParams() {}

// Primitive is one solid in an asset's primitive list. Primitives are
// read-only for the duration of a render.
//
// Params is nil for primitives whose asset entry declared a shape type this
// renderer does not recognize; such primitives contribute a far distance and
// are effectively absent from the scene, but loading them is not an error.
type Primitive struct {
	ID        string
	Params    ShapeParams
	Transform Transform
	Material  Material
	Op        CSGOp
}

// localDistance evaluates the primitive's shape in its local frame.
func (pr *Primitive) localDistance(p geom.Vec3) float64 {
	if pr.Params == nil {
		return sdf.Far
	}
	return pr.Params.Distance(p)
}

// Distance returns the signed distance from a world-space point to the
// primitive, accounting for its transform.
func (pr *Primitive) Distance(p geom.Vec3) float64 {
	local, scale := pr.Transform.ToLocal(p)
	return pr.localDistance(local) * scale
}

// WorldBounds returns a conservative world-space bounding box for the
// primitive. Rotation is absorbed by taking the circumscribed extent, which
// keeps the box a superset of the true bounds.
func (pr *Primitive) WorldBounds() (geom.Vec3, geom.Vec3) {
	if pr.Params == nil {
		return pr.Transform.Position, pr.Transform.Position
	}
	lo, hi := pr.Params.Bounds()
	lo = lo.Mul(pr.Transform.scaleOrOne())
	hi = hi.Mul(pr.Transform.scaleOrOne())
	if pr.Transform.hasRotation() {
		r := hi.Sub(lo).Scale(0.5).Length()
		lo = geom.V(-r, -r, -r)
		hi = geom.V(r, r, r)
	}
	return lo.Add(pr.Transform.Position), hi.Add(pr.Transform.Position)
}
