package scene

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/mtarnawa/sdfray/pkg/geom"
)

// Asset documents wrap the renderable model in an "sdfModel" block alongside
// gameplay fields (type, stats, behaviors) that this renderer ignores.
//
// Primitive entries accept both the serializer's snake_case operation names
// and the editor's CamelCase ones, and both "halfExtents" and the editor's
// full-extent "size" for boxes.

type assetDoc struct {
	Name     string    `json:"name"`
	SDFModel *modelDoc `json:"sdfModel"`
}

type modelDoc struct {
	Primitives []primitiveDoc `json:"primitives"`
	Camera     *cameraDoc     `json:"camera"`
	Lighting   *lightingDoc   `json:"lighting"`
}

type cameraDoc struct {
	Position []float64 `json:"position"`
	LookAt   []float64 `json:"lookAt"`
	FOV      float64   `json:"fov"`
}

type lightingDoc struct {
	Directional *directionalDoc `json:"directional"`
	Ambient     float64         `json:"ambient"`
}

type directionalDoc struct {
	Direction []float64 `json:"direction"`
	Intensity float64   `json:"intensity"`
}

type primitiveDoc struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	Transform *transformDoc `json:"transform"`
	Params    paramsDoc     `json:"params"`
	Material  *materialDoc  `json:"material"`
	CSGOp     string        `json:"csgOperation"`
	CSGOpAlt  string        `json:"csg_operation"`
	Operation string        `json:"operation"`
	Smooth    float64       `json:"smoothness"`
	BlendDist float64       `json:"blendDistance"`
}

type transformDoc struct {
	Position []float64 `json:"position"`
	Rotation []float64 `json:"rotation"`
	Scale    []float64 `json:"scale"`
}

type paramsDoc struct {
	Radius      float64   `json:"radius"`
	Size        []float64 `json:"size"`
	HalfExtents []float64 `json:"halfExtents"`
	Radii       []float64 `json:"radii"`
	Height      float64   `json:"height"`
	MajorRadius float64   `json:"majorRadius"`
	MinorRadius float64   `json:"minorRadius"`
	Rounding    float64   `json:"rounding"`
}

type materialDoc struct {
	Albedo           []float64 `json:"albedo"`
	Metallic         float64   `json:"metallic"`
	Roughness        float64   `json:"roughness"`
	Emissive         []float64 `json:"emissive"`
	EmissiveStrength *float64  `json:"emissiveStrength"`
}

// Load parses an asset document and builds a validated Scene. A missing or
// empty primitive list is fatal; unrecognized primitive types are logged,
// kept with nil params and excluded from evaluation.
func Load(data []byte) (*Scene, error) {
	var doc assetDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse asset: %w", err)
	}
	if doc.SDFModel == nil {
		return nil, fmt.Errorf("asset %q does not contain an sdfModel", doc.Name)
	}
	if len(doc.SDFModel.Primitives) == 0 {
		return nil, fmt.Errorf("asset %q sdfModel has no primitives", doc.Name)
	}

	s := &Scene{Name: doc.Name}
	for i, pd := range doc.SDFModel.Primitives {
		prim, err := buildPrimitive(i, pd)
		if err != nil {
			return nil, err
		}
		s.Primitives = append(s.Primitives, prim)
	}

	if cd := doc.SDFModel.Camera; cd != nil {
		s.Camera = Camera{
			Position: toVec3(cd.Position),
			LookAt:   toVec3(cd.LookAt),
			FOV:      cd.FOV,
		}
		if s.Camera.FOV == 0 {
			s.Camera.FOV = 35
		}
	} else {
		s.Camera = s.FrameCamera()
	}
	if ld := doc.SDFModel.Lighting; ld != nil {
		s.Lighting = Lighting{Ambient: ld.Ambient}
		if ld.Directional != nil {
			s.Lighting.Directional = DirectionalLight{
				Direction: toVec3(ld.Directional.Direction).Normalize(),
				Intensity: ld.Directional.Intensity,
			}
		} else {
			s.Lighting.Directional = DefaultLighting().Directional
		}
	} else {
		s.Lighting = DefaultLighting()
	}

	if errs := s.Validate(); HasBlockingErrors(errs) {
		return nil, fmt.Errorf("asset %q failed validation: %w", doc.Name, errs[firstBlocking(errs)])
	}
	return s, nil
}

// LoadFile reads and parses an asset document from disk.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read asset: %w", err)
	}
	s, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

func firstBlocking(errs []ValidationError) int {
	for i, e := range errs {
		if e.Severity == SeverityError {
			return i
		}
	}
	return 0
}

func buildPrimitive(index int, pd primitiveDoc) (Primitive, error) {
	id := pd.ID
	if id == "" {
		id = fmt.Sprintf("primitive_%d", index)
	}

	prim := Primitive{
		ID:       id,
		Params:   buildParams(id, pd.Type, pd.Params),
		Material: buildMaterial(pd.Material),
	}

	if pd.Transform != nil {
		prim.Transform = Transform{
			Position: toVec3(pd.Transform.Position),
			Rotation: toVec3(pd.Transform.Rotation),
			Scale:    toVec3(pd.Transform.Scale),
		}
	}

	opName := pd.CSGOp
	if opName == "" {
		opName = pd.CSGOpAlt
	}
	if opName == "" {
		opName = pd.Operation
	}
	op, err := ParseOperator(opName)
	if err != nil {
		return Primitive{}, fmt.Errorf("primitive %q: %w", id, err)
	}
	prim.Op = CSGOp{Operator: op, K: pd.Smooth, BlendDistance: pd.BlendDist}
	return prim, nil
}

func buildParams(id, typ string, p paramsDoc) ShapeParams {
	switch typ {
	case "Sphere", "sphere":
		return SphereParams{Radius: p.Radius}
	case "Box", "box":
		return BoxParams{HalfExtents: boxHalfExtents(p)}
	case "RoundedBox", "rounded_box":
		return RoundedBoxParams{HalfExtents: boxHalfExtents(p), Rounding: p.Rounding}
	case "Ellipsoid", "ellipsoid":
		return EllipsoidParams{Radii: toVec3(p.Radii)}
	case "Capsule", "capsule":
		return CapsuleParams{Radius: p.Radius, Height: p.Height}
	case "Torus", "torus":
		return TorusParams{MajorRadius: p.MajorRadius, MinorRadius: p.MinorRadius}
	case "Cylinder", "cylinder":
		return CylinderParams{Radius: p.Radius, Height: p.Height}
	default:
		log.Printf("scene: primitive %q has unknown type %q, excluding it from evaluation", id, typ)
		return nil
	}
}

// boxHalfExtents prefers an explicit halfExtents field and otherwise halves
// the editor's full-extent size field.
func boxHalfExtents(p paramsDoc) geom.Vec3 {
	if len(p.HalfExtents) == 3 {
		return toVec3(p.HalfExtents)
	}
	return toVec3(p.Size).Scale(0.5)
}

func buildMaterial(md *materialDoc) Material {
	if md == nil {
		return DefaultMaterial()
	}
	m := Material{
		Albedo:    toVec3(md.Albedo),
		Metallic:  md.Metallic,
		Roughness: md.Roughness,
		Emissive:  toVec3(md.Emissive),
	}
	if len(md.Albedo) != 3 {
		m.Albedo = DefaultMaterial().Albedo
	}
	if len(md.Emissive) == 3 {
		// The editor treats a present emissive color with no explicit
		// strength as fully lit.
		m.EmissiveStrength = 1
	}
	if md.EmissiveStrength != nil {
		m.EmissiveStrength = *md.EmissiveStrength
	}
	return m
}

func toVec3(v []float64) geom.Vec3 {
	if len(v) != 3 {
		return geom.Vec3{}
	}
	return geom.V(v[0], v[1], v[2])
}
