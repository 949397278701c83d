package render

import (
	"image/color"

	"github.com/mtarnawa/sdfray/pkg/geom"
	"github.com/mtarnawa/sdfray/pkg/scene"
)

// Settings control image size and marching behavior. The zero value is not
// usable; start from DefaultSettings and override what you need.
type Settings struct {
	Width  int
	Height int

	// MaxSteps bounds the marching loop per ray. Thumbnails get away with
	// fewer steps than hero renders.
	MaxSteps int

	// MaxDistance is how far a ray may travel before it counts as a
	// miss.
	MaxDistance float64

	// HitEpsilon is the surface proximity at which marching stops.
	HitEpsilon float64

	// NormalEpsilon is the step used by the finite-difference normal
	// estimate.
	NormalEpsilon float64

	// Workers is the number of goroutines rendering rows. Zero means one
	// per CPU.
	Workers int

	// Background fills pixels whose ray misses every surface. The zero
	// value is fully transparent, which is what icon composition wants.
	Background color.NRGBA
}

// DefaultSettings returns the icon-rendering defaults.
func DefaultSettings() Settings {
	return Settings{
		Width:         512,
		Height:        512,
		MaxSteps:      64,
		MaxDistance:   20,
		HitEpsilon:    1e-3,
		NormalEpsilon: 1e-3,
	}
}

// Hit describes where a marched ray met the composite surface.
type Hit struct {
	Hit      bool
	T        float64
	Point    geom.Vec3
	Normal   geom.Vec3
	Material scene.Material
	Steps    int
}

// march sphere-traces the ray against the scene. Each iteration advances by
// the composite distance, which is safe because every primitive distance is
// kept a lower bound under scaling.
func march(s *scene.Scene, ray geom.Ray, cfg Settings) Hit {
	t := 0.0
	steps := 0
	for i := 0; i < cfg.MaxSteps; i++ {
		steps = i + 1
		p := ray.At(t)
		d := s.Distance(p)
		if d < cfg.HitEpsilon {
			mat := hitMaterial(s, p)
			return Hit{
				Hit:      true,
				T:        t,
				Point:    p,
				Normal:   estimateNormal(s, p, cfg.NormalEpsilon),
				Material: mat,
				Steps:    steps,
			}
		}
		t += d
		if t > cfg.MaxDistance {
			break
		}
	}
	return Hit{T: t, Steps: steps}
}

func hitMaterial(s *scene.Scene, p geom.Vec3) scene.Material {
	_, mat := s.Evaluate(p)
	return mat
}

// estimateNormal approximates the surface gradient with forward differences,
// one extra evaluation per axis on top of the center sample.
func estimateNormal(s *scene.Scene, p geom.Vec3, eps float64) geom.Vec3 {
	center := s.Distance(p)
	return geom.V(
		s.Distance(geom.V(p.X+eps, p.Y, p.Z))-center,
		s.Distance(geom.V(p.X, p.Y+eps, p.Z))-center,
		s.Distance(geom.V(p.X, p.Y, p.Z+eps))-center,
	).Normalize()
}
