package scene

import (
	"math"

	"github.com/mtarnawa/sdfray/pkg/geom"
)

// Transform places a primitive in world space. Position is always applied;
// Rotation (Euler angles in degrees, applied X then Y then Z) and Scale are
// optional and default to identity.
type Transform struct {
	Position geom.Vec3 `json:"position"`
	Rotation geom.Vec3 `json:"rotation,omitempty"`
	Scale    geom.Vec3 `json:"scale,omitempty"`
}

func (t Transform) hasRotation() bool {
	return t.Rotation != (geom.Vec3{})
}

// scaleOrOne returns the transform's scale with zero components treated as
// identity, so asset files may omit the field entirely.
func (t Transform) scaleOrOne() geom.Vec3 {
	s := t.Scale
	if s.X == 0 {
		s.X = 1
	}
	if s.Y == 0 {
		s.Y = 1
	}
	if s.Z == 0 {
		s.Z = 1
	}
	return s
}

// ToLocal maps a world-space point into the primitive's local frame and
// returns the factor world distances must be multiplied by to remain lower
// bounds. For non-uniform scale the smallest axis factor is used, which
// underestimates the true distance and keeps marching safe.
func (t Transform) ToLocal(p geom.Vec3) (geom.Vec3, float64) {
	q := p.Sub(t.Position)
	if t.hasRotation() {
		// Inverse of Rz*Ry*Rx is Rx(-x)*Ry(-y)*Rz(-z).
		q = rotateZ(q, -t.Rotation.Z*math.Pi/180)
		q = rotateY(q, -t.Rotation.Y*math.Pi/180)
		q = rotateX(q, -t.Rotation.X*math.Pi/180)
	}
	s := t.scaleOrOne()
	if s == geom.V(1, 1, 1) {
		return q, 1
	}
	q = q.Div(s)
	return q, math.Min(s.X, math.Min(s.Y, s.Z))
}

func rotateX(v geom.Vec3, a float64) geom.Vec3 {
	s, c := math.Sin(a), math.Cos(a)
	return geom.Vec3{X: v.X, Y: c*v.Y - s*v.Z, Z: s*v.Y + c*v.Z}
}

func rotateY(v geom.Vec3, a float64) geom.Vec3 {
	s, c := math.Sin(a), math.Cos(a)
	return geom.Vec3{X: c*v.X + s*v.Z, Y: v.Y, Z: -s*v.X + c*v.Z}
}

func rotateZ(v geom.Vec3, a float64) geom.Vec3 {
	s, c := math.Sin(a), math.Cos(a)
	return geom.Vec3{X: c*v.X - s*v.Y, Y: s*v.X + c*v.Y, Z: v.Z}
}
