// Package scene defines the immutable scene description consumed by the
// renderer: an ordered primitive list with materials and CSG operators, a
// camera and a single directional light. A Scene is built once per render
// request and never mutated afterwards, which keeps per-pixel evaluation
// pure and safe to run from many goroutines.
package scene

import (
	"math"

	"github.com/mtarnawa/sdfray/pkg/geom"
)

// Camera positions the viewpoint. FOV is the vertical field of view in
// degrees.
type Camera struct {
	Position geom.Vec3 `json:"position"`
	LookAt   geom.Vec3 `json:"lookAt"`
	FOV      float64   `json:"fov"`
}

// DirectionalLight is a single infinitely distant light.
type DirectionalLight struct {
	Direction geom.Vec3 `json:"direction"`
	Intensity float64   `json:"intensity"`
}

// Lighting bundles the directional light with a flat ambient coefficient.
type Lighting struct {
	Directional DirectionalLight `json:"directional"`
	Ambient     float64          `json:"ambient"`
}

// DefaultLighting mirrors the reference tool's icon lighting: a white key
// light from the upper left and a modest ambient floor.
func DefaultLighting() Lighting {
	return Lighting{
		Directional: DirectionalLight{
			Direction: geom.V(0.5, -1, 0.5).Normalize(),
			Intensity: 1.2,
		},
		Ambient: 0.2,
	}
}

// Scene is the complete immutable description of one renderable asset.
type Scene struct {
	Name       string
	Primitives []Primitive
	Camera     Camera
	Lighting   Lighting
}

// Bounds returns a conservative world-space bounding box enclosing every
// recognized primitive. An empty scene reports a unit box around the origin
// so downstream framing and meshing always have a finite region to work in.
func (s *Scene) Bounds() (geom.Vec3, geom.Vec3) {
	lo := geom.V(math.Inf(1), math.Inf(1), math.Inf(1))
	hi := geom.V(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	found := false
	for i := range s.Primitives {
		if s.Primitives[i].Params == nil {
			continue
		}
		plo, phi := s.Primitives[i].WorldBounds()
		lo = lo.Min(plo)
		hi = hi.Max(phi)
		found = true
	}
	if !found {
		return geom.V(-0.5, -0.5, -0.5), geom.V(0.5, 0.5, 0.5)
	}
	return lo, hi
}

// FrameCamera returns a camera that frames the scene's bounds the way the
// asset thumbnail tool does: a 45 degree horizontal / 15 degree vertical
// orbit at 2.5 times the largest dimension, with a 35 degree field of view.
// Used when an asset omits its camera block.
func (s *Scene) FrameCamera() Camera {
	lo, hi := s.Bounds()
	center := lo.Add(hi).Scale(0.5)
	size := hi.Sub(lo)
	maxDim := size.MaxComponent()
	if maxDim <= 0 {
		maxDim = 1
	}
	dist := maxDim * 2.5
	angleH := 45 * math.Pi / 180
	angleV := 15 * math.Pi / 180
	pos := center.Add(geom.V(
		dist*math.Cos(angleV)*math.Sin(angleH),
		dist*math.Sin(angleV),
		dist*math.Cos(angleV)*math.Cos(angleH),
	))
	return Camera{Position: pos, LookAt: center, FOV: 35}
}
