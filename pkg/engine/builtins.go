package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/mtarnawa/sdfray/pkg/geom"
	"github.com/mtarnawa/sdfray/pkg/scene"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms scene Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: rounded-box -> rounded_box
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus
		// operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpMaterial wraps a scene.Material so it can be built once and shared by
// several primitives.
type sexpMaterial struct {
	mat scene.Material
}

func (m *sexpMaterial) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(material :albedo (rgb %.2f %.2f %.2f))",
		m.mat.Albedo.X, m.mat.Albedo.Y, m.mat.Albedo.Z)
}
func (m *sexpMaterial) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a geom.Vec3.
type sexpVec3 struct {
	vec geom.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.2f %.2f %.2f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value, treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_union) and plain strings ("union").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toVec3 extracts a geom.Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (geom.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return geom.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toMaterial extracts a scene.Material from a sexpMaterial.
func toMaterial(s zygo.Sexp) (scene.Material, error) {
	if m, ok := s.(*sexpMaterial); ok {
		return m.mat, nil
	}
	return scene.Material{}, fmt.Errorf("expected material, got %T (%s)", s, s.SexpString(nil))
}

// toOperator converts a keyword like :smooth-union into a CSG operator.
func toOperator(s zygo.Sexp) (scene.Operator, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return scene.OpUnion, fmt.Errorf("expected operator keyword: %w", err)
	}
	return scene.ParseOperator(strings.ReplaceAll(name, "-", "_"))
}

// ---------------------------------------------------------------------------
// Scene builder
// ---------------------------------------------------------------------------

// builder accumulates the scene as builtins run. Primitive order is call
// order, which is what makes carving and blending expressions predictable.
type builder struct {
	scene     *scene.Scene
	cameraSet bool
	counter   uint64
}

func newBuilder() *builder {
	return &builder{
		scene: &scene.Scene{
			Name:     "scene",
			Lighting: scene.DefaultLighting(),
		},
	}
}

// finish applies the auto-framed camera when the script never placed one.
func (b *builder) finish() *scene.Scene {
	if !b.cameraSet {
		b.scene.Camera = b.scene.FrameCamera()
	}
	return b.scene
}

func (b *builder) nextID(shape string) string {
	b.counter++
	return fmt.Sprintf("%s_%d", shape, b.counter)
}

// addPrimitive fills in the fields every shape shares (placement, material,
// CSG operator) and appends the primitive to the scene.
func (b *builder) addPrimitive(shape string, params scene.ShapeParams, pa kwArgs) (zygo.Sexp, error) {
	pr := scene.Primitive{
		ID:       b.nextID(shape),
		Params:   params,
		Material: scene.DefaultMaterial(),
	}

	if v, ok := pa.kw["id"]; ok {
		id, err := toString(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: id: %w", shape, err)
		}
		pr.ID = id
	}
	if v, ok := pa.kw["at"]; ok {
		vec, err := toVec3(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: at: %w", shape, err)
		}
		pr.Transform.Position = vec
	}
	if v, ok := pa.kw["rotate"]; ok {
		vec, err := toVec3(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: rotate: %w", shape, err)
		}
		pr.Transform.Rotation = vec
	}
	if v, ok := pa.kw["scale"]; ok {
		vec, err := toVec3(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: scale: %w", shape, err)
		}
		pr.Transform.Scale = vec
	}
	if v, ok := pa.kw["material"]; ok {
		m, err := toMaterial(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: material: %w", shape, err)
		}
		pr.Material = m
	}
	if v, ok := pa.kw["op"]; ok {
		op, err := toOperator(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: op: %w", shape, err)
		}
		pr.Op.Operator = op
	}
	if v, ok := pa.kw["smoothness"]; ok {
		k, err := toFloat64(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: smoothness: %w", shape, err)
		}
		pr.Op.K = k
	}
	if v, ok := pa.kw["blend-distance"]; ok {
		d, err := toFloat64(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: blend-distance: %w", shape, err)
		}
		pr.Op.BlendDistance = d
	}

	b.scene.Primitives = append(b.scene.Primitives, pr)
	return &zygo.SexpStr{S: pr.ID}, nil
}

// kwFloat reads an optional numeric keyword, leaving dst untouched when the
// keyword is absent.
func kwFloat(pa kwArgs, name, shape string, dst *float64) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", shape, name, err)
	}
	*dst = f
	return nil
}

func kwVec3(pa kwArgs, name, shape string, dst *geom.Vec3) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	vec, err := toVec3(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", shape, name, err)
	}
	*dst = vec
	return nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene DSL builtins into a zygomys
// environment. The builtins populate the provided builder during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *builder) {

	// -----------------------------------------------------------------------
	// (model "name")
	// -----------------------------------------------------------------------
	env.AddFunction("model", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("model requires a name argument")
		}
		n, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("model: name: %w", err)
		}
		b.scene.Name = n
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (vec3 1 2 3) and its color alias (rgb 1 0.5 0)
	// -----------------------------------------------------------------------
	vec3Fn := func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("%s requires exactly 3 arguments, got %d", name, len(args))
		}
		var c [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: component %d: %w", name, i, err)
			}
			c[i] = f
		}
		return &sexpVec3{vec: geom.V(c[0], c[1], c[2])}, nil
	}
	env.AddFunction("vec3", vec3Fn)
	env.AddFunction("rgb", vec3Fn)

	// -----------------------------------------------------------------------
	// (material :albedo (rgb 1 0.2 0.2) :metallic 0.1 :roughness 0.4
	//           :emissive (rgb 1 0 0) :emissive-strength 0.8)
	// -----------------------------------------------------------------------
	env.AddFunction("material", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		mat := scene.DefaultMaterial()

		if err := kwVec3(pa, "albedo", "material", &mat.Albedo); err != nil {
			return zygo.SexpNull, err
		}
		if err := kwFloat(pa, "metallic", "material", &mat.Metallic); err != nil {
			return zygo.SexpNull, err
		}
		if err := kwFloat(pa, "roughness", "material", &mat.Roughness); err != nil {
			return zygo.SexpNull, err
		}
		if err := kwVec3(pa, "emissive", "material", &mat.Emissive); err != nil {
			return zygo.SexpNull, err
		}
		if _, ok := pa.kw["emissive"]; ok {
			mat.EmissiveStrength = 1
		}
		if err := kwFloat(pa, "emissive-strength", "material", &mat.EmissiveStrength); err != nil {
			return zygo.SexpNull, err
		}

		return &sexpMaterial{mat: mat}, nil
	})

	// -----------------------------------------------------------------------
	// Shape builtins. All accept :at :rotate :scale :material :op
	// :smoothness :blend-distance :id alongside their own parameters.
	//
	// (sphere :radius 0.5 :at (vec3 0 0.5 0) :material steel)
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p := scene.SphereParams{}
		if err := kwFloat(pa, "radius", "sphere", &p.Radius); err != nil {
			return zygo.SexpNull, err
		}
		return b.addPrimitive("sphere", p, pa)
	})

	// (box :size (vec3 1 2 1)) or (box :half-extents (vec3 0.5 1 0.5))
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p := scene.BoxParams{}
		if err := kwVec3(pa, "half-extents", "box", &p.HalfExtents); err != nil {
			return zygo.SexpNull, err
		}
		var size geom.Vec3
		if err := kwVec3(pa, "size", "box", &size); err != nil {
			return zygo.SexpNull, err
		}
		if size != (geom.Vec3{}) {
			p.HalfExtents = size.Scale(0.5)
		}
		return b.addPrimitive("box", p, pa)
	})

	// (rounded-box :half-extents (vec3 ...) :rounding 0.1)
	env.AddFunction("rounded_box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p := scene.RoundedBoxParams{}
		if err := kwVec3(pa, "half-extents", "rounded-box", &p.HalfExtents); err != nil {
			return zygo.SexpNull, err
		}
		var size geom.Vec3
		if err := kwVec3(pa, "size", "rounded-box", &size); err != nil {
			return zygo.SexpNull, err
		}
		if size != (geom.Vec3{}) {
			p.HalfExtents = size.Scale(0.5)
		}
		if err := kwFloat(pa, "rounding", "rounded-box", &p.Rounding); err != nil {
			return zygo.SexpNull, err
		}
		return b.addPrimitive("rounded_box", p, pa)
	})

	// (ellipsoid :radii (vec3 0.3 0.6 0.3))
	env.AddFunction("ellipsoid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p := scene.EllipsoidParams{}
		if err := kwVec3(pa, "radii", "ellipsoid", &p.Radii); err != nil {
			return zygo.SexpNull, err
		}
		return b.addPrimitive("ellipsoid", p, pa)
	})

	// (capsule :radius 0.2 :height 0.8)
	env.AddFunction("capsule", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p := scene.CapsuleParams{}
		if err := kwFloat(pa, "radius", "capsule", &p.Radius); err != nil {
			return zygo.SexpNull, err
		}
		if err := kwFloat(pa, "height", "capsule", &p.Height); err != nil {
			return zygo.SexpNull, err
		}
		return b.addPrimitive("capsule", p, pa)
	})

	// (torus :major-radius 0.5 :minor-radius 0.15)
	env.AddFunction("torus", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p := scene.TorusParams{}
		if err := kwFloat(pa, "major-radius", "torus", &p.MajorRadius); err != nil {
			return zygo.SexpNull, err
		}
		if err := kwFloat(pa, "minor-radius", "torus", &p.MinorRadius); err != nil {
			return zygo.SexpNull, err
		}
		return b.addPrimitive("torus", p, pa)
	})

	// (cylinder :radius 0.3 :height 1)
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p := scene.CylinderParams{}
		if err := kwFloat(pa, "radius", "cylinder", &p.Radius); err != nil {
			return zygo.SexpNull, err
		}
		if err := kwFloat(pa, "height", "cylinder", &p.Height); err != nil {
			return zygo.SexpNull, err
		}
		return b.addPrimitive("cylinder", p, pa)
	})

	// -----------------------------------------------------------------------
	// (camera :at (vec3 0 1 3) :look-at (vec3 0 0.4 0) :fov 40)
	// -----------------------------------------------------------------------
	env.AddFunction("camera", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		cam := scene.Camera{FOV: 35}
		if err := kwVec3(pa, "at", "camera", &cam.Position); err != nil {
			return zygo.SexpNull, err
		}
		if err := kwVec3(pa, "look-at", "camera", &cam.LookAt); err != nil {
			return zygo.SexpNull, err
		}
		if err := kwFloat(pa, "fov", "camera", &cam.FOV); err != nil {
			return zygo.SexpNull, err
		}
		b.scene.Camera = cam
		b.cameraSet = true
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (sun :direction (vec3 1 -1 0.5) :intensity 1.2 :ambient 0.2)
	// -----------------------------------------------------------------------
	env.AddFunction("sun", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		l := b.scene.Lighting
		if err := kwVec3(pa, "direction", "sun", &l.Directional.Direction); err != nil {
			return zygo.SexpNull, err
		}
		if err := kwFloat(pa, "intensity", "sun", &l.Directional.Intensity); err != nil {
			return zygo.SexpNull, err
		}
		if err := kwFloat(pa, "ambient", "sun", &l.Ambient); err != nil {
			return zygo.SexpNull, err
		}
		l.Directional.Direction = l.Directional.Direction.Normalize()
		b.scene.Lighting = l
		return zygo.SexpNull, nil
	})
}
