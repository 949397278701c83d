package scene

import (
	"strings"
	"testing"

	"github.com/mtarnawa/sdfray/pkg/geom"
)

func validScene() *Scene {
	return &Scene{
		Primitives: []Primitive{
			sphere("a", 1, geom.Vec3{}, DefaultMaterial(), CSGOp{}),
		},
		Camera:   Camera{Position: geom.V(0, 0, 5), FOV: 35},
		Lighting: DefaultLighting(),
	}
}

func TestValidateCleanScene(t *testing.T) {
	if errs := validScene().Validate(); len(errs) != 0 {
		t.Fatalf("valid scene produced findings: %v", errs)
	}
}

func TestValidatePrimitives(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*Scene)
		severity ValidationSeverity
		substr   string
	}{
		{
			"negative sphere radius",
			func(s *Scene) { s.Primitives[0].Params = SphereParams{Radius: -1} },
			SeverityError, "sphere radius",
		},
		{
			"zero box extent",
			func(s *Scene) { s.Primitives[0].Params = BoxParams{HalfExtents: geom.V(1, 0, 1)} },
			SeverityError, "half extents y",
		},
		{
			"negative rounding",
			func(s *Scene) {
				s.Primitives[0].Params = RoundedBoxParams{HalfExtents: geom.V(1, 1, 1), Rounding: -0.1}
			},
			SeverityError, "rounding",
		},
		{
			"zero torus minor radius",
			func(s *Scene) { s.Primitives[0].Params = TorusParams{MajorRadius: 1} },
			SeverityError, "minor radius",
		},
		{
			"zero cylinder height",
			func(s *Scene) { s.Primitives[0].Params = CylinderParams{Radius: 1} },
			SeverityError, "cylinder height",
		},
		{
			"negative capsule height",
			func(s *Scene) { s.Primitives[0].Params = CapsuleParams{Radius: 0.5, Height: -1} },
			SeverityError, "capsule height",
		},
		{
			"unknown shape",
			func(s *Scene) { s.Primitives[0].Params = nil },
			SeverityWarning, "unrecognized shape",
		},
		{
			"negative blend coefficient",
			func(s *Scene) { s.Primitives[0].Op = CSGOp{Operator: OpSmoothUnion, K: -0.5} },
			SeverityError, "blend coefficient",
		},
		{
			"distance-aware without blend distance",
			func(s *Scene) { s.Primitives[0].Op = CSGOp{Operator: OpDistanceAwareSmoothUnion, K: 0.5} },
			SeverityError, "blend distance",
		},
		{
			"k on hard operator",
			func(s *Scene) { s.Primitives[0].Op = CSGOp{Operator: OpSubtraction, K: 0.5} },
			SeverityWarning, "ignored by hard operator",
		},
		{
			"non-positive scale",
			func(s *Scene) { s.Primitives[0].Transform.Scale = geom.V(1, -2, 1) },
			SeverityError, "scale",
		},
		{
			"zero fov",
			func(s *Scene) { s.Camera.FOV = 0 },
			SeverityError, "camera fov",
		},
		{
			"camera at target",
			func(s *Scene) { s.Camera.Position = s.Camera.LookAt },
			SeverityError, "look-at",
		},
		{
			"zero light direction",
			func(s *Scene) { s.Lighting.Directional.Direction = geom.Vec3{} },
			SeverityError, "zero direction",
		},
		{
			"negative ambient",
			func(s *Scene) { s.Lighting.Ambient = -0.1 },
			SeverityError, "ambient",
		},
	}

	for _, c := range cases {
		s := validScene()
		c.mutate(s)
		errs := s.Validate()
		if len(errs) == 0 {
			t.Errorf("%s: no findings", c.name)
			continue
		}
		found := false
		for _, e := range errs {
			if e.Severity == c.severity && strings.Contains(e.Message, c.substr) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("%s: no %s finding mentioning %q in %v", c.name, c.severity, c.substr, errs)
		}
	}
}

func TestHasBlockingErrors(t *testing.T) {
	warn := []ValidationError{{Severity: SeverityWarning, Message: "meh"}}
	if HasBlockingErrors(warn) {
		t.Error("warnings alone must not block")
	}
	mixed := append(warn, ValidationError{Severity: SeverityError, Message: "bad"})
	if !HasBlockingErrors(mixed) {
		t.Error("error severity must block")
	}
	if HasBlockingErrors(nil) {
		t.Error("empty findings must not block")
	}
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{PrimitiveID: "core", Message: "bad radius", Severity: SeverityError}
	got := e.Error()
	if !strings.Contains(got, "core") || !strings.Contains(got, "error") {
		t.Errorf("Error() = %q, want primitive id and severity", got)
	}
}
