package render

import (
	"math"

	"github.com/mtarnawa/sdfray/pkg/geom"
	"github.com/mtarnawa/sdfray/pkg/scene"
)

// viewport is the precomputed camera basis used to generate one primary ray
// per pixel.
type viewport struct {
	origin  geom.Vec3
	forward geom.Vec3
	right   geom.Vec3
	up      geom.Vec3
	halfW   float64
	halfH   float64
	width   int
	height  int
}

// newViewport builds an orthonormal basis from the camera's position and
// look-at target. When the view direction is nearly parallel to world up the
// reference up falls back to +Z, then +X, so straight-down shots still get a
// stable frame.
func newViewport(cam scene.Camera, width, height int) viewport {
	forward := cam.LookAt.Sub(cam.Position).Normalize()

	worldUp := geom.V(0, 1, 0)
	if math.Abs(forward.Dot(worldUp)) > 0.999 {
		worldUp = geom.V(0, 0, 1)
		if math.Abs(forward.Dot(worldUp)) > 0.999 {
			worldUp = geom.V(1, 0, 0)
		}
	}

	right := forward.Cross(worldUp).Normalize()
	up := right.Cross(forward)

	halfH := math.Tan(cam.FOV * math.Pi / 360)
	halfW := halfH * float64(width) / float64(height)

	return viewport{
		origin:  cam.Position,
		forward: forward,
		right:   right,
		up:      up,
		halfW:   halfW,
		halfH:   halfH,
		width:   width,
		height:  height,
	}
}

// rayThrough returns the primary ray through the center of pixel (x, y).
// Pixel (0, 0) is the top-left corner of the image.
func (v viewport) rayThrough(x, y int) geom.Ray {
	u := (2*(float64(x)+0.5)/float64(v.width) - 1) * v.halfW
	w := (1 - 2*(float64(y)+0.5)/float64(v.height)) * v.halfH
	dir := v.forward.Add(v.right.Scale(u)).Add(v.up.Scale(w)).Normalize()
	return geom.Ray{Origin: v.origin, Direction: dir}
}
