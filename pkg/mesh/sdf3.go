package mesh

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/mtarnawa/sdfray/pkg/geom"
	"github.com/mtarnawa/sdfray/pkg/scene"
)

// Compile-time interface check.
var _ sdf.SDF3 = (*sceneSDF)(nil)

// sceneSDF adapts a scene's composite distance field to the sdf.SDF3
// interface so sdfx renderers can sample it directly. Evaluating through the
// scene, rather than rebuilding it from sdfx primitives, keeps the smooth CSG
// operators identical between the image and the mesh.
type sceneSDF struct {
	s  *scene.Scene
	bb sdf.Box3
}

// SDF3 wraps the scene as an sdfx signed distance field. The bounding box is
// the scene's conservative bounds padded by 10 percent so blended surfaces
// bulging past their primitives' boxes still fall inside the sampling grid.
func SDF3(s *scene.Scene) sdf.SDF3 {
	lo, hi := s.Bounds()
	pad := hi.Sub(lo).MaxComponent() * 0.1
	p := geom.V(pad, pad, pad)
	lo = lo.Sub(p)
	hi = hi.Add(p)
	return &sceneSDF{
		s: s,
		bb: sdf.Box3{
			Min: v3.Vec{X: lo.X, Y: lo.Y, Z: lo.Z},
			Max: v3.Vec{X: hi.X, Y: hi.Y, Z: hi.Z},
		},
	}
}

func (w *sceneSDF) Evaluate(p v3.Vec) float64 {
	return w.s.Distance(geom.V(p.X, p.Y, p.Z))
}

func (w *sceneSDF) BoundingBox() sdf.Box3 {
	return w.bb
}
