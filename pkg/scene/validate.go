package scene

import (
	"fmt"

	"github.com/mtarnawa/sdfray/pkg/geom"
)

// ValidationSeverity indicates whether a finding blocks rendering or is
// merely advisory.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks rendering
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	PrimitiveID string // which primitive has the problem (empty if scene-level)
	Message     string
	Severity    ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.PrimitiveID == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] primitive %q: %s", e.Severity, e.PrimitiveID, e.Message)
}

// Validate runs all construction-time checks on the scene and returns the
// findings. Shape parameters are checked once here so per-pixel evaluation
// never has to probe for missing or nonsensical values. An empty result
// means the scene is renderable; warnings alone do not block rendering.
func (s *Scene) Validate() []ValidationError {
	var errs []ValidationError
	for i := range s.Primitives {
		errs = append(errs, validatePrimitive(&s.Primitives[i])...)
	}
	errs = append(errs, validateCamera(s.Camera)...)
	errs = append(errs, validateLighting(s.Lighting)...)
	return errs
}

// HasBlockingErrors reports whether any finding has error severity.
func HasBlockingErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

func validatePrimitive(pr *Primitive) []ValidationError {
	var errs []ValidationError
	fail := func(format string, args ...interface{}) {
		errs = append(errs, ValidationError{
			PrimitiveID: pr.ID,
			Message:     fmt.Sprintf(format, args...),
			Severity:    SeverityError,
		})
	}
	warn := func(format string, args ...interface{}) {
		errs = append(errs, ValidationError{
			PrimitiveID: pr.ID,
			Message:     fmt.Sprintf(format, args...),
			Severity:    SeverityWarning,
		})
	}

	switch p := pr.Params.(type) {
	case nil:
		warn("unrecognized shape type, primitive will be excluded from the scene")
	case SphereParams:
		if p.Radius <= 0 {
			fail("sphere radius is %.4f, must be positive", p.Radius)
		}
	case BoxParams:
		errs = append(errs, requirePositiveVec(pr.ID, "box half extents", p.HalfExtents)...)
	case RoundedBoxParams:
		errs = append(errs, requirePositiveVec(pr.ID, "rounded box half extents", p.HalfExtents)...)
		if p.Rounding < 0 {
			fail("rounding radius is %.4f, must not be negative", p.Rounding)
		}
	case EllipsoidParams:
		errs = append(errs, requirePositiveVec(pr.ID, "ellipsoid radii", p.Radii)...)
	case CapsuleParams:
		if p.Radius <= 0 {
			fail("capsule radius is %.4f, must be positive", p.Radius)
		}
		if p.Height < 0 {
			fail("capsule height is %.4f, must not be negative", p.Height)
		}
	case TorusParams:
		if p.MajorRadius <= 0 {
			fail("torus major radius is %.4f, must be positive", p.MajorRadius)
		}
		if p.MinorRadius <= 0 {
			fail("torus minor radius is %.4f, must be positive", p.MinorRadius)
		}
	case CylinderParams:
		if p.Radius <= 0 {
			fail("cylinder radius is %.4f, must be positive", p.Radius)
		}
		if p.Height <= 0 {
			fail("cylinder height is %.4f, must be positive", p.Height)
		}
	}

	if pr.Op.K < 0 {
		fail("blend coefficient k is %.4f, must not be negative", pr.Op.K)
	}
	if pr.Op.Operator == OpDistanceAwareSmoothUnion && pr.Op.K > 0 && pr.Op.BlendDistance <= 0 {
		fail("distance-aware union requires a positive blend distance, got %.4f", pr.Op.BlendDistance)
	}
	if !pr.Op.Operator.IsSmooth() && pr.Op.K != 0 {
		warn("blend coefficient %.4f is ignored by hard operator %s", pr.Op.K, pr.Op.Operator)
	}

	s := pr.Transform.Scale
	if s != (geom.Vec3{}) && (s.X <= 0 || s.Y <= 0 || s.Z <= 0) {
		fail("transform scale %v has a non-positive component", s)
	}

	return errs
}

func requirePositiveVec(id, what string, v geom.Vec3) []ValidationError {
	var errs []ValidationError
	axes := []struct {
		name  string
		value float64
	}{{"x", v.X}, {"y", v.Y}, {"z", v.Z}}
	for _, a := range axes {
		if a.value <= 0 {
			errs = append(errs, ValidationError{
				PrimitiveID: id,
				Message:     fmt.Sprintf("%s %s is %.4f, must be positive", what, a.name, a.value),
				Severity:    SeverityError,
			})
		}
	}
	return errs
}

func validateCamera(c Camera) []ValidationError {
	var errs []ValidationError
	if c.FOV <= 0 || c.FOV >= 180 {
		errs = append(errs, ValidationError{
			Message:  fmt.Sprintf("camera fov is %.2f degrees, must be in (0, 180)", c.FOV),
			Severity: SeverityError,
		})
	}
	if c.Position == c.LookAt {
		errs = append(errs, ValidationError{
			Message:  "camera position equals its look-at target",
			Severity: SeverityError,
		})
	}
	return errs
}

func validateLighting(l Lighting) []ValidationError {
	var errs []ValidationError
	if l.Directional.Direction.Length() == 0 {
		errs = append(errs, ValidationError{
			Message:  "directional light has a zero direction vector",
			Severity: SeverityError,
		})
	}
	if l.Directional.Intensity < 0 {
		errs = append(errs, ValidationError{
			Message:  fmt.Sprintf("directional light intensity is %.4f, must not be negative", l.Directional.Intensity),
			Severity: SeverityError,
		})
	}
	if l.Ambient < 0 {
		errs = append(errs, ValidationError{
			Message:  fmt.Sprintf("ambient coefficient is %.4f, must not be negative", l.Ambient),
			Severity: SeverityError,
		})
	}
	return errs
}
