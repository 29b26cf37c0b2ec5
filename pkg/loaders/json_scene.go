package loaders

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/tidwall/gjson"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrInvalidScene is returned when a scene document is malformed
var ErrInvalidScene = errors.New("invalid scene")

// defaultFieldOfView is used when a scene file omits the camera's field of view
const defaultFieldOfView = math.Pi / 3

func invalidf(path, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidScene, path, fmt.Sprintf(format, args...))
}

// LoadScene resolves a scene ID to a scene. IDs with the "json:" prefix name
// files discovered in the scenes directory; anything else is a built-in.
func LoadScene(id string, cameraOverrides ...geometry.CameraConfig) (*scene.Scene, error) {
	if _, ok := scene.IsJSONSceneID(id); !ok {
		return scene.NewBuiltin(id, cameraOverrides...)
	}
	info, err := scene.FindJSONScene(id)
	if err != nil {
		return nil, err
	}
	return LoadSceneFile(info.FilePath, cameraOverrides...)
}

// LoadSceneFile loads and parses a JSON scene file
func LoadSceneFile(filename string, cameraOverrides ...geometry.CameraConfig) (*scene.Scene, error) {
	// Validate file path for security
	if err := validateFilePath(filename, ".json"); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	s, err := ParseScene(data, cameraOverrides...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// ParseScene builds a scene from a JSON document of the form
//
//	{
//	  "name": "...",
//	  "camera": {"width": 100, "height": 50, "field_of_view": 1.047,
//	             "from": [0, 1.5, -5], "to": [0, 1, 0], "up": [0, 1, 0]},
//	  "light": {"position": [-10, 10, -10], "intensity": [1, 1, 1]},
//	  "objects": [{"type": "sphere", "transform": [["translate", 0, 1, 0]],
//	               "material": {"color": [1, 0, 0], "diffuse": 0.7}}]
//	}
//
// Transform lists apply their operations in order. Angles are in radians.
// The parsed scene is validated before it is returned.
func ParseScene(data []byte, cameraOverrides ...geometry.CameraConfig) (*scene.Scene, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidScene)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, invalidf("$", "expected an object")
	}

	name := root.Get("name").String()
	if name == "" {
		name = "untitled"
	}

	cameraConfig, err := parseCamera(root.Get("camera"), "camera")
	if err != nil {
		return nil, err
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	world := scene.NewWorld()
	if light := root.Get("light"); light.Exists() {
		if world.Light, err = parseLight(light, "light"); err != nil {
			return nil, err
		}
	}

	objects := root.Get("objects")
	if !objects.IsArray() {
		return nil, invalidf("objects", "expected an array")
	}
	for i, obj := range objects.Array() {
		shape, err := parseShape(obj, fmt.Sprintf("objects[%d]", i))
		if err != nil {
			return nil, err
		}
		world.Add(shape)
	}

	s := scene.NewScene(name, world, cameraConfig)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseCamera(r gjson.Result, path string) (geometry.CameraConfig, error) {
	if !r.IsObject() {
		return geometry.CameraConfig{}, invalidf(path, "expected an object")
	}

	config := geometry.CameraConfig{
		Up:          core.Vector(0, 1, 0),
		FieldOfView: defaultFieldOfView,
	}
	var err error
	if config.Width, err = requiredInt(r, "width", path); err != nil {
		return config, err
	}
	if config.Height, err = requiredInt(r, "height", path); err != nil {
		return config, err
	}
	if config.From, err = requiredPoint(r, "from", path); err != nil {
		return config, err
	}
	if config.To, err = requiredPoint(r, "to", path); err != nil {
		return config, err
	}
	if up := r.Get("up"); up.Exists() {
		if config.Up, err = vector(up, path+".up"); err != nil {
			return config, err
		}
	}
	if fov := r.Get("field_of_view"); fov.Exists() {
		if config.FieldOfView, err = number(fov, path+".field_of_view"); err != nil {
			return config, err
		}
		if config.FieldOfView <= 0 || config.FieldOfView >= math.Pi {
			return config, invalidf(path+".field_of_view", "must be between 0 and pi radians")
		}
	}
	return config, nil
}

func parseLight(r gjson.Result, path string) (*lights.PointLight, error) {
	if !r.IsObject() {
		return nil, invalidf(path, "expected an object")
	}
	position, err := requiredPoint(r, "position", path)
	if err != nil {
		return nil, err
	}
	intensity := core.White
	if v := r.Get("intensity"); v.Exists() {
		if intensity, err = color(v, path+".intensity"); err != nil {
			return nil, err
		}
	}
	return lights.NewPointLight(position, intensity), nil
}

func parseShape(r gjson.Result, path string) (geometry.Shape, error) {
	if !r.IsObject() {
		return nil, invalidf(path, "expected an object")
	}

	var shape geometry.Shape
	switch kind := r.Get("type").String(); kind {
	case "sphere":
		shape = geometry.NewSphere()
	case "glass_sphere":
		shape = geometry.NewGlassSphere()
	case "plane":
		shape = geometry.NewPlane()
	case "cube":
		shape = geometry.NewCube()
	case "cylinder", "cone":
		minimum, maximum, closed, err := parseBounds(r, path)
		if err != nil {
			return nil, err
		}
		if kind == "cylinder" {
			shape = geometry.NewBoundedCylinder(minimum, maximum, closed)
		} else {
			shape = geometry.NewBoundedCone(minimum, maximum, closed)
		}
	case "group":
		group, err := parseGroup(r, path)
		if err != nil {
			return nil, err
		}
		shape = group
	case "":
		return nil, invalidf(path, "missing shape type")
	default:
		return nil, invalidf(path+".type", "unsupported shape type %q", kind)
	}

	if t := r.Get("transform"); t.Exists() {
		m, err := parseTransform(t, path+".transform")
		if err != nil {
			return nil, err
		}
		shape.SetTransform(m)
	}

	if m := r.Get("material"); m.Exists() {
		if _, ok := shape.(*geometry.Group); ok {
			return nil, invalidf(path+".material", "groups have no material")
		}
		mat, err := parseMaterial(m, shape.Material(), path+".material")
		if err != nil {
			return nil, err
		}
		shape.SetMaterial(mat)
	}

	return shape, nil
}

func parseGroup(r gjson.Result, path string) (*geometry.Group, error) {
	group := geometry.NewGroup()
	children := r.Get("children")
	if !children.Exists() {
		return group, nil
	}
	if !children.IsArray() {
		return nil, invalidf(path+".children", "expected an array")
	}
	for i, c := range children.Array() {
		child, err := parseShape(c, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		if err := group.AddChild(child); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return group, nil
}

// parseBounds reads the optional y extent of a cylinder or cone.
// Omitted bounds leave the shape infinite.
func parseBounds(r gjson.Result, path string) (minimum, maximum float64, closed bool, err error) {
	minimum, maximum = math.Inf(-1), math.Inf(1)
	if v := r.Get("minimum"); v.Exists() {
		if minimum, err = number(v, path+".minimum"); err != nil {
			return
		}
	}
	if v := r.Get("maximum"); v.Exists() {
		if maximum, err = number(v, path+".maximum"); err != nil {
			return
		}
	}
	if minimum > maximum {
		err = invalidf(path, "minimum %g exceeds maximum %g", minimum, maximum)
		return
	}
	if v := r.Get("closed"); v.Exists() {
		if !v.IsBool() {
			err = invalidf(path+".closed", "expected a boolean")
			return
		}
		closed = v.Bool()
	}
	return
}

// parseMaterial overlays the fields present in r onto base. The "preset"
// field replaces base with a named material first.
func parseMaterial(r gjson.Result, base material.Material, path string) (material.Material, error) {
	if !r.IsObject() {
		return base, invalidf(path, "expected an object")
	}

	m := base
	if preset := r.Get("preset"); preset.Exists() {
		switch preset.String() {
		case "default":
			m = material.DefaultMaterial()
		case "glass":
			m = material.NewGlass()
		default:
			return m, invalidf(path+".preset", "unknown preset %q", preset.String())
		}
	}

	var err error
	if v := r.Get("color"); v.Exists() {
		if m.Color, err = color(v, path+".color"); err != nil {
			return m, err
		}
	}

	coefficients := []struct {
		key      string
		dest     *float64
		fraction bool // limited to [0,1]
	}{
		{"ambient", &m.Ambient, false},
		{"diffuse", &m.Diffuse, false},
		{"specular", &m.Specular, false},
		{"shininess", &m.Shininess, false},
		{"reflective", &m.Reflective, true},
		{"transparency", &m.Transparency, true},
		{"refractive_index", &m.RefractiveIndex, false},
	}
	for _, c := range coefficients {
		v := r.Get(c.key)
		if !v.Exists() {
			continue
		}
		if *c.dest, err = number(v, path+"."+c.key); err != nil {
			return m, err
		}
		if *c.dest < 0 {
			return m, invalidf(path+"."+c.key, "must not be negative")
		}
		if c.fraction && *c.dest > 1 {
			return m, invalidf(path+"."+c.key, "must be between 0 and 1")
		}
	}

	if p := r.Get("pattern"); p.Exists() {
		if m.Pattern, err = parsePattern(p, path+".pattern"); err != nil {
			return m, err
		}
	}
	return m, nil
}

func parsePattern(r gjson.Result, path string) (*material.Pattern, error) {
	if !r.IsObject() {
		return nil, invalidf(path, "expected an object")
	}
	kind, err := material.ParsePatternKind(r.Get("type").String())
	if err != nil {
		return nil, invalidf(path+".type", "%v", err)
	}

	a, b := core.White, core.Black
	if colors := r.Get("colors"); colors.Exists() {
		list := colors.Array()
		if !colors.IsArray() || len(list) != 2 {
			return nil, invalidf(path+".colors", "expected two colors")
		}
		if a, err = color(list[0], path+".colors[0]"); err != nil {
			return nil, err
		}
		if b, err = color(list[1], path+".colors[1]"); err != nil {
			return nil, err
		}
	} else if kind != material.Test {
		return nil, invalidf(path+".colors", "missing")
	}

	pattern := material.NewPattern(kind, a, b)
	if t := r.Get("transform"); t.Exists() {
		m, err := parseTransform(t, path+".transform")
		if err != nil {
			return nil, err
		}
		pattern.SetTransform(m)
	}
	return pattern, nil
}

// parseTransform reads a list of operations such as ["translate", 1, 2, 3]
// and composes them so the first entry is applied first
func parseTransform(r gjson.Result, path string) (core.Matrix, error) {
	if !r.IsArray() {
		return core.Matrix{}, invalidf(path, "expected an array of operations")
	}

	var steps []core.Matrix
	for i, op := range r.Array() {
		opPath := fmt.Sprintf("%s[%d]", path, i)
		m, err := parseTransformOp(op, opPath)
		if err != nil {
			return core.Matrix{}, err
		}
		steps = append(steps, m)
	}
	return core.Chain(steps...), nil
}

func parseTransformOp(r gjson.Result, path string) (core.Matrix, error) {
	items := r.Array()
	if !r.IsArray() || len(items) == 0 || items[0].Type != gjson.String {
		return core.Matrix{}, invalidf(path, "expected [name, values...]")
	}

	name := items[0].String()
	args := make([]float64, len(items)-1)
	for i, item := range items[1:] {
		v, err := number(item, fmt.Sprintf("%s[%d]", path, i+1))
		if err != nil {
			return core.Matrix{}, err
		}
		args[i] = v
	}

	want := map[string]int{
		"translate": 3,
		"scale":     3,
		"rotate-x":  1,
		"rotate-y":  1,
		"rotate-z":  1,
		"shear":     6,
	}
	n, ok := want[name]
	if !ok {
		return core.Matrix{}, invalidf(path, "unknown transform %q", name)
	}
	if len(args) != n {
		return core.Matrix{}, invalidf(path, "%s takes %d values, got %d", name, n, len(args))
	}

	switch name {
	case "translate":
		return core.Translation(args[0], args[1], args[2]), nil
	case "scale":
		return core.Scaling(args[0], args[1], args[2]), nil
	case "rotate-x":
		return core.RotationX(args[0]), nil
	case "rotate-y":
		return core.RotationY(args[0]), nil
	case "rotate-z":
		return core.RotationZ(args[0]), nil
	default:
		return core.Shearing(args[0], args[1], args[2], args[3], args[4], args[5]), nil
	}
}

func number(r gjson.Result, path string) (float64, error) {
	if r.Type != gjson.Number {
		return 0, invalidf(path, "expected a number")
	}
	return r.Float(), nil
}

func requiredInt(r gjson.Result, key, path string) (int, error) {
	v := r.Get(key)
	if !v.Exists() {
		return 0, invalidf(path+"."+key, "missing")
	}
	f, err := number(v, path+"."+key)
	if err != nil {
		return 0, err
	}
	if f <= 0 || f != math.Trunc(f) {
		return 0, invalidf(path+"."+key, "expected a positive integer")
	}
	return int(f), nil
}

func triple(r gjson.Result, path string) ([3]float64, error) {
	var out [3]float64
	items := r.Array()
	if !r.IsArray() || len(items) != 3 {
		return out, invalidf(path, "expected 3 numbers")
	}
	for i, item := range items {
		v, err := number(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

func requiredPoint(r gjson.Result, key, path string) (core.Tuple, error) {
	v := r.Get(key)
	if !v.Exists() {
		return core.Tuple{}, invalidf(path+"."+key, "missing")
	}
	xyz, err := triple(v, path+"."+key)
	if err != nil {
		return core.Tuple{}, err
	}
	return core.Point(xyz[0], xyz[1], xyz[2]), nil
}

func vector(r gjson.Result, path string) (core.Tuple, error) {
	xyz, err := triple(r, path)
	if err != nil {
		return core.Tuple{}, err
	}
	return core.Vector(xyz[0], xyz[1], xyz[2]), nil
}

func color(r gjson.Result, path string) (core.Color, error) {
	rgb, err := triple(r, path)
	if err != nil {
		return core.Color{}, err
	}
	return core.NewColor(rgb[0], rgb[1], rgb[2]), nil
}
