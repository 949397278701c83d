package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mtarnawa/sdfray/pkg/geom"
)

// Save serializes the scene back into an asset document. Output uses the
// serializer's snake_case operation names and explicit halfExtents, so a
// saved document reloads into an equivalent scene regardless of which
// naming style the source asset used.
func Save(s *Scene) ([]byte, error) {
	doc := assetDoc{
		Name: s.Name,
		SDFModel: &modelDoc{
			Camera: &cameraDoc{
				Position: vecSlice(s.Camera.Position),
				LookAt:   vecSlice(s.Camera.LookAt),
				FOV:      s.Camera.FOV,
			},
			Lighting: &lightingDoc{
				Directional: &directionalDoc{
					Direction: vecSlice(s.Lighting.Directional.Direction),
					Intensity: s.Lighting.Directional.Intensity,
				},
				Ambient: s.Lighting.Ambient,
			},
		},
	}
	for i := range s.Primitives {
		pd, err := marshalPrimitive(&s.Primitives[i])
		if err != nil {
			return nil, err
		}
		doc.SDFModel.Primitives = append(doc.SDFModel.Primitives, pd)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// SaveFile writes the serialized scene to path.
func SaveFile(s *Scene, path string) error {
	data, err := Save(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write asset: %w", err)
	}
	return nil
}

func marshalPrimitive(pr *Primitive) (primitiveDoc, error) {
	pd := primitiveDoc{
		ID:        pr.ID,
		CSGOp:     pr.Op.Operator.String(),
		Smooth:    pr.Op.K,
		BlendDist: pr.Op.BlendDistance,
		Material: &materialDoc{
			Albedo:    vecSlice(pr.Material.Albedo),
			Metallic:  pr.Material.Metallic,
			Roughness: pr.Material.Roughness,
		},
	}
	if pr.Material.Emissive != (geom.Vec3{}) || pr.Material.EmissiveStrength != 0 {
		pd.Material.Emissive = vecSlice(pr.Material.Emissive)
		strength := pr.Material.EmissiveStrength
		pd.Material.EmissiveStrength = &strength
	}
	if pr.Transform != (Transform{}) {
		pd.Transform = &transformDoc{
			Position: vecSlice(pr.Transform.Position),
			Rotation: vecSlice(pr.Transform.Rotation),
			Scale:    vecSlice(pr.Transform.Scale),
		}
	}

	switch p := pr.Params.(type) {
	case SphereParams:
		pd.Type = "sphere"
		pd.Params.Radius = p.Radius
	case BoxParams:
		pd.Type = "box"
		pd.Params.HalfExtents = vecSlice(p.HalfExtents)
	case RoundedBoxParams:
		pd.Type = "rounded_box"
		pd.Params.HalfExtents = vecSlice(p.HalfExtents)
		pd.Params.Rounding = p.Rounding
	case EllipsoidParams:
		pd.Type = "ellipsoid"
		pd.Params.Radii = vecSlice(p.Radii)
	case CapsuleParams:
		pd.Type = "capsule"
		pd.Params.Radius = p.Radius
		pd.Params.Height = p.Height
	case TorusParams:
		pd.Type = "torus"
		pd.Params.MajorRadius = p.MajorRadius
		pd.Params.MinorRadius = p.MinorRadius
	case CylinderParams:
		pd.Type = "cylinder"
		pd.Params.Radius = p.Radius
		pd.Params.Height = p.Height
	default:
		return primitiveDoc{}, fmt.Errorf("primitive %q has no serializable shape", pr.ID)
	}
	return pd, nil
}

func vecSlice(v geom.Vec3) []float64 {
	return []float64{v.X, v.Y, v.Z}
}
