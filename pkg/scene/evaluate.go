package scene

import (
	"github.com/mtarnawa/sdfray/pkg/geom"
	"github.com/mtarnawa/sdfray/pkg/sdf"
)

// Evaluate reduces the ordered primitive list to a single composite signed
// distance at the world point p, along with the material of the primitive
// that governs the nearest surface there.
//
// The distance result is independent of primitive order for commutative
// operators. Material attribution is not: on exact distance ties the first
// primitive encountered wins, which is why the switch below uses a strict
// less-than. Only union-family operators can donate material; subtraction
// and intersection reshape the composite but leave its material alone.
func (s *Scene) Evaluate(p geom.Vec3) (float64, Material) {
	composite := sdf.Far
	material := DefaultMaterial()
	nearest := sdf.Far

	for i := range s.Primitives {
		pr := &s.Primitives[i]
		d := pr.Distance(p)
		if i == 0 {
			// The first primitive is the composite's base solid; its
			// operator tag only applies to later combinations.
			composite = d
			nearest = d
			material = pr.Material
			continue
		}
		composite = pr.Op.Combine(composite, d)
		if pr.Op.Operator.IsUnionFamily() && d < nearest {
			nearest = d
			material = pr.Material
		}
	}
	return composite, material
}

// Distance returns only the composite signed distance at p. This is the
// raymarcher's hot path; it skips material bookkeeping.
func (s *Scene) Distance(p geom.Vec3) float64 {
	composite := sdf.Far
	for i := range s.Primitives {
		pr := &s.Primitives[i]
		d := pr.Distance(p)
		if i == 0 {
			composite = d
			continue
		}
		composite = pr.Op.Combine(composite, d)
	}
	return composite
}
