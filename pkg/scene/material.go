package scene

import "github.com/mtarnawa/sdfray/pkg/geom"

// Material describes the surface appearance of a primitive. Metallic and
// roughness are carried through from asset files for tooling parity even
// though the reference shader only consumes albedo and the emissive terms.
type Material struct {
	Albedo           geom.Vec3 `json:"albedo"`
	Metallic         float64   `json:"metallic"`
	Roughness        float64   `json:"roughness"`
	Emissive         geom.Vec3 `json:"emissive"`
	EmissiveStrength float64   `json:"emissiveStrength"`
}

// DefaultMaterial is the neutral grey assigned to primitives whose asset
// entry omits a material block.
func DefaultMaterial() Material {
	return Material{
		Albedo:    geom.V(0.8, 0.8, 0.8),
		Roughness: 0.5,
	}
}
