package scene

import (
	"math"
	"testing"

	"github.com/mtarnawa/sdfray/pkg/geom"
)

func sphere(id string, radius float64, pos geom.Vec3, mat Material, op CSGOp) Primitive {
	return Primitive{
		ID:        id,
		Params:    SphereParams{Radius: radius},
		Transform: Transform{Position: pos},
		Material:  mat,
		Op:        op,
	}
}

func redMaterial() Material  { return Material{Albedo: geom.V(1, 0, 0), Roughness: 0.5} }
func blueMaterial() Material { return Material{Albedo: geom.V(0, 0, 1), Roughness: 0.5} }

func TestEvaluateSingleSphere(t *testing.T) {
	s := &Scene{Primitives: []Primitive{
		sphere("a", 1, geom.Vec3{}, redMaterial(), CSGOp{}),
	}}

	cases := []struct {
		point geom.Vec3
		want  float64
	}{
		{geom.V(2, 0, 0), 1},
		{geom.V(0, 1, 0), 0},
		{geom.V(0, 0, 0), -1},
		{geom.V(0, -3, 0), 2},
	}
	for _, c := range cases {
		d, mat := s.Evaluate(c.point)
		if math.Abs(d-c.want) > 1e-9 {
			t.Errorf("Evaluate(%v) distance = %v, want %v", c.point, d, c.want)
		}
		if mat.Albedo != geom.V(1, 0, 0) {
			t.Errorf("Evaluate(%v) albedo = %v, want red", c.point, mat.Albedo)
		}
	}
}

func TestEvaluateFirstPrimitiveIsBase(t *testing.T) {
	// The leading primitive anchors the composite even when its entry
	// carries a subtraction tag; there is nothing yet to subtract from.
	s := &Scene{Primitives: []Primitive{
		sphere("a", 1, geom.Vec3{}, redMaterial(), CSGOp{Operator: OpSubtraction}),
	}}
	d, _ := s.Evaluate(geom.V(0, 0, 0))
	if math.Abs(d-(-1)) > 1e-9 {
		t.Fatalf("distance at center = %v, want -1", d)
	}
}

func TestEvaluateUnionPicksNearerMaterial(t *testing.T) {
	s := &Scene{Primitives: []Primitive{
		sphere("red", 1, geom.V(-2, 0, 0), redMaterial(), CSGOp{}),
		sphere("blue", 1, geom.V(2, 0, 0), blueMaterial(), CSGOp{Operator: OpUnion}),
	}}

	_, mat := s.Evaluate(geom.V(2, 0, 1.5))
	if mat.Albedo != geom.V(0, 0, 1) {
		t.Errorf("near blue sphere, albedo = %v, want blue", mat.Albedo)
	}
	_, mat = s.Evaluate(geom.V(-2, 0, 1.5))
	if mat.Albedo != geom.V(1, 0, 0) {
		t.Errorf("near red sphere, albedo = %v, want red", mat.Albedo)
	}
}

func TestEvaluateMaterialTieGoesToFirst(t *testing.T) {
	// Coincident spheres produce identical distances everywhere, so the
	// earlier primitive must keep material ownership.
	s := &Scene{Primitives: []Primitive{
		sphere("red", 1, geom.Vec3{}, redMaterial(), CSGOp{}),
		sphere("blue", 1, geom.Vec3{}, blueMaterial(), CSGOp{Operator: OpUnion}),
	}}
	_, mat := s.Evaluate(geom.V(0, 2, 0))
	if mat.Albedo != geom.V(1, 0, 0) {
		t.Errorf("tie albedo = %v, want first primitive's red", mat.Albedo)
	}
}

func TestEvaluateSubtractionKeepsBaseMaterial(t *testing.T) {
	s := &Scene{Primitives: []Primitive{
		sphere("base", 1, geom.Vec3{}, redMaterial(), CSGOp{}),
		sphere("cut", 0.6, geom.V(1, 0, 0), blueMaterial(), CSGOp{Operator: OpSubtraction}),
	}}

	// Just outside the carved pocket the cutter is the nearest surface,
	// but subtraction never recolors the composite.
	_, mat := s.Evaluate(geom.V(0.5, 0, 0))
	if mat.Albedo != geom.V(1, 0, 0) {
		t.Errorf("carved surface albedo = %v, want base red", mat.Albedo)
	}

	// The pocket itself is outside the composite.
	d, _ := s.Evaluate(geom.V(0.9, 0, 0))
	if d <= 0 {
		t.Errorf("inside cutter, composite distance = %v, want positive", d)
	}
}

func TestEvaluateIntersection(t *testing.T) {
	s := &Scene{Primitives: []Primitive{
		sphere("a", 1, geom.V(-0.5, 0, 0), redMaterial(), CSGOp{}),
		sphere("b", 1, geom.V(0.5, 0, 0), blueMaterial(), CSGOp{Operator: OpIntersection}),
	}}

	// The lens between the spheres is inside; either sphere's far side is
	// outside.
	if d, _ := s.Evaluate(geom.V(0, 0, 0)); d >= 0 {
		t.Errorf("lens center distance = %v, want negative", d)
	}
	if d, _ := s.Evaluate(geom.V(-1.2, 0, 0)); d <= 0 {
		t.Errorf("far side distance = %v, want positive", d)
	}
}

func TestDistanceMatchesEvaluate(t *testing.T) {
	s := &Scene{Primitives: []Primitive{
		sphere("base", 1, geom.Vec3{}, redMaterial(), CSGOp{}),
		sphere("bump", 0.5, geom.V(1, 0, 0), blueMaterial(), CSGOp{Operator: OpSmoothUnion, K: 0.25}),
		sphere("cut", 0.4, geom.V(0, 1, 0), blueMaterial(), CSGOp{Operator: OpSubtraction}),
	}}
	points := []geom.Vec3{
		{X: 2}, {Y: 2}, {Z: -3}, {X: 0.5, Y: 0.5}, {X: -1, Y: -1, Z: -1}, {},
	}
	for _, p := range points {
		want, _ := s.Evaluate(p)
		got := s.Distance(p)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("Distance(%v) = %v, Evaluate gave %v", p, got, want)
		}
	}
}

func TestEvaluateSkipsUnknownShape(t *testing.T) {
	s := &Scene{Primitives: []Primitive{
		sphere("a", 1, geom.Vec3{}, redMaterial(), CSGOp{}),
		{ID: "mystery", Op: CSGOp{Operator: OpUnion}, Material: blueMaterial()},
	}}
	d, mat := s.Evaluate(geom.V(2, 0, 0))
	if math.Abs(d-1) > 1e-9 {
		t.Errorf("distance = %v, want 1 (unknown shape must not contribute)", d)
	}
	if mat.Albedo != geom.V(1, 0, 0) {
		t.Errorf("albedo = %v, want red", mat.Albedo)
	}
}

func TestTransformTranslation(t *testing.T) {
	pr := sphere("a", 1, geom.V(3, 0, 0), redMaterial(), CSGOp{})
	if d := pr.Distance(geom.V(0, 0, 0)); math.Abs(d-2) > 1e-9 {
		t.Errorf("distance = %v, want 2", d)
	}
}

func TestTransformRotation(t *testing.T) {
	// A box long along local X, yawed 90 degrees, lies along world Z.
	pr := Primitive{
		ID:        "slab",
		Params:    BoxParams{HalfExtents: geom.V(1, 0.5, 0.5)},
		Transform: Transform{Rotation: geom.V(0, 90, 0)},
	}
	if d := pr.Distance(geom.V(0, 0, 2)); math.Abs(d-1) > 1e-9 {
		t.Errorf("along rotated long axis: distance = %v, want 1", d)
	}
	if d := pr.Distance(geom.V(2, 0, 0)); math.Abs(d-1.5) > 1e-9 {
		t.Errorf("across rotated short axis: distance = %v, want 1.5", d)
	}
}

func TestTransformScaleKeepsLowerBound(t *testing.T) {
	pr := Primitive{
		ID:        "squash",
		Params:    SphereParams{Radius: 1},
		Transform: Transform{Scale: geom.V(2, 0.5, 1)},
	}

	// Distances must stay a lower bound of the true distance so marching
	// never overshoots, and must still vanish on the surface.
	if d := pr.Distance(geom.V(0, 0.5, 0)); math.Abs(d) > 1e-9 {
		t.Errorf("on squashed pole: distance = %v, want 0", d)
	}
	if d := pr.Distance(geom.V(2, 0, 0)); math.Abs(d) > 1e-9 {
		t.Errorf("on stretched equator: distance = %v, want 0", d)
	}
	trueDist := 3.0 // world point (5,0,0), surface at x=2
	if d := pr.Distance(geom.V(5, 0, 0)); d <= 0 || d > trueDist+1e-9 {
		t.Errorf("outside: distance = %v, want in (0, %v]", d, trueDist)
	}
}

func TestSceneBounds(t *testing.T) {
	s := &Scene{Primitives: []Primitive{
		sphere("a", 1, geom.V(2, 0, 0), redMaterial(), CSGOp{}),
		sphere("b", 0.5, geom.V(-1, 0, 0), redMaterial(), CSGOp{Operator: OpUnion}),
	}}
	lo, hi := s.Bounds()
	if lo.X > -1.5+1e-9 || hi.X < 3-1e-9 {
		t.Errorf("bounds x = [%v, %v], want to cover [-1.5, 3]", lo.X, hi.X)
	}
}

func TestFrameCamera(t *testing.T) {
	s := &Scene{Primitives: []Primitive{
		sphere("a", 1, geom.Vec3{}, redMaterial(), CSGOp{}),
	}}
	cam := s.FrameCamera()
	if cam.FOV != 35 {
		t.Errorf("fov = %v, want 35", cam.FOV)
	}
	if cam.LookAt != (geom.Vec3{}) {
		t.Errorf("lookAt = %v, want origin", cam.LookAt)
	}
	// Bounds are +-1, so the orbit distance is 2.5 * 2.
	if d := cam.Position.Sub(cam.LookAt).Length(); math.Abs(d-5) > 1e-9 {
		t.Errorf("orbit distance = %v, want 5", d)
	}
	if cam.Position.Y <= 0 {
		t.Errorf("camera y = %v, want above the target", cam.Position.Y)
	}
}
