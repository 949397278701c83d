package render

import (
	"github.com/mtarnawa/sdfray/pkg/geom"
	"github.com/mtarnawa/sdfray/pkg/scene"
)

// shade computes the linear RGB color at a hit point: Lambertian response to
// the directional light on an ambient floor, plus any emissive contribution.
func shade(hit Hit, lighting scene.Lighting) geom.Vec3 {
	ndotl := hit.Normal.Dot(lighting.Directional.Direction.Neg())
	if ndotl < 0 {
		ndotl = 0
	}
	diffuse := lighting.Ambient + lighting.Directional.Intensity*ndotl
	color := hit.Material.Albedo.Scale(diffuse)
	if hit.Material.EmissiveStrength > 0 {
		color = color.Add(hit.Material.Emissive.Scale(hit.Material.EmissiveStrength))
	}
	return color.Clamp01()
}
