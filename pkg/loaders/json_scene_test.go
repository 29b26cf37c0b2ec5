package loaders

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

var approx = cmpopts.EquateApprox(0, 1e-5)

const minimalScene = `{
	"name": "Minimal",
	"camera": {"width": 20, "height": 10, "from": [0, 0, -5], "to": [0, 0, 0]},
	"light": {"position": [-10, 10, -10]},
	"objects": [{"type": "sphere"}]
}`

func TestParseScene_Minimal(t *testing.T) {
	s, err := ParseScene([]byte(minimalScene))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if s.Name != "Minimal" {
		t.Errorf("Expected name Minimal, got %q", s.Name)
	}
	if s.Camera.HSize != 20 || s.Camera.VSize != 10 {
		t.Errorf("Expected 20x10 camera, got %dx%d", s.Camera.HSize, s.Camera.VSize)
	}
	if s.CameraConfig.FieldOfView != math.Pi/3 {
		t.Errorf("Expected default field of view, got %f", s.CameraConfig.FieldOfView)
	}
	if s.CameraConfig.Up != core.Vector(0, 1, 0) {
		t.Errorf("Expected default up vector, got %v", s.CameraConfig.Up)
	}
	if s.World.Light == nil || s.World.Light.Intensity != core.White {
		t.Errorf("Expected white point light, got %+v", s.World.Light)
	}
	if len(s.World.Objects) != 1 {
		t.Fatalf("Expected 1 object, got %d", len(s.World.Objects))
	}
	if _, ok := s.World.Objects[0].(*geometry.Sphere); !ok {
		t.Errorf("Expected sphere, got %T", s.World.Objects[0])
	}
	if s.World.Objects[0].Material() != material.DefaultMaterial() {
		t.Errorf("Expected default material, got %+v", s.World.Objects[0].Material())
	}
}

func TestParseScene_NoLight(t *testing.T) {
	doc := `{
		"camera": {"width": 4, "height": 4, "from": [0, 0, -5], "to": [0, 0, 0]},
		"objects": [{"type": "plane"}]
	}`
	s, err := ParseScene([]byte(doc))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.World.Light != nil {
		t.Errorf("Expected no light, got %+v", s.World.Light)
	}
	if s.Name != "untitled" {
		t.Errorf("Expected fallback name, got %q", s.Name)
	}
}

func TestParseScene_CameraOverride(t *testing.T) {
	s, err := ParseScene([]byte(minimalScene), geometry.CameraConfig{Width: 64, Height: 48})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.Camera.HSize != 64 || s.Camera.VSize != 48 {
		t.Errorf("Expected overridden 64x48 camera, got %dx%d", s.Camera.HSize, s.Camera.VSize)
	}
	if s.CameraConfig.From != core.Point(0, 0, -5) {
		t.Errorf("Expected camera position kept, got %v", s.CameraConfig.From)
	}
}

func TestParseScene_ShapeTypes(t *testing.T) {
	doc := `{
		"camera": {"width": 4, "height": 4, "from": [0, 0, -5], "to": [0, 0, 0]},
		"objects": [
			{"type": "sphere"},
			{"type": "glass_sphere"},
			{"type": "plane"},
			{"type": "cube"},
			{"type": "cylinder"},
			{"type": "cylinder", "minimum": 1, "maximum": 2, "closed": true},
			{"type": "cone", "minimum": -1, "maximum": 0},
			{"type": "group", "children": [{"type": "sphere"}]}
		]
	}`
	s, err := ParseScene([]byte(doc))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	objects := s.World.Objects
	if len(objects) != 8 {
		t.Fatalf("Expected 8 objects, got %d", len(objects))
	}

	if !objects[1].Material().IsTransparent() {
		t.Error("Expected glass sphere to be transparent")
	}
	if _, ok := objects[2].(*geometry.Plane); !ok {
		t.Errorf("Expected plane, got %T", objects[2])
	}
	if _, ok := objects[3].(*geometry.Cube); !ok {
		t.Errorf("Expected cube, got %T", objects[3])
	}

	infinite := objects[4].(*geometry.Cylinder)
	if !math.IsInf(infinite.Minimum, -1) || !math.IsInf(infinite.Maximum, 1) || infinite.Closed {
		t.Errorf("Expected infinite open cylinder, got %+v", infinite)
	}
	bounded := objects[5].(*geometry.Cylinder)
	if bounded.Minimum != 1 || bounded.Maximum != 2 || !bounded.Closed {
		t.Errorf("Expected bounded closed cylinder, got %+v", bounded)
	}
	cone := objects[6].(*geometry.Cone)
	if cone.Minimum != -1 || cone.Maximum != 0 || cone.Closed {
		t.Errorf("Expected bounded open cone, got %+v", cone)
	}

	group := objects[7].(*geometry.Group)
	if len(group.Children()) != 1 || group.Children()[0].Parent() != group {
		t.Errorf("Expected one child parented to the group")
	}
}

func TestParseScene_TransformOrder(t *testing.T) {
	doc := `{
		"camera": {"width": 4, "height": 4, "from": [0, 0, -5], "to": [0, 0, 0]},
		"objects": [{"type": "sphere", "transform": [
			["rotate-x", 1.5707963267948966],
			["scale", 5, 5, 5],
			["translate", 10, 5, 7]
		]}]
	}`
	s, err := ParseScene([]byte(doc))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	m := s.World.Objects[0].Transform()
	got := m.MultiplyTuple(core.Point(1, 0, 1))
	if diff := cmp.Diff(core.Point(15, 0, 7), got, approx); diff != "" {
		t.Errorf("Transform applied out of order (-want +got):\n%s", diff)
	}
}

func TestParseScene_Shear(t *testing.T) {
	doc := `{
		"camera": {"width": 4, "height": 4, "from": [0, 0, -5], "to": [0, 0, 0]},
		"objects": [{"type": "cube", "transform": [["shear", 1, 0, 0, 0, 0, 0]]}]
	}`
	s, err := ParseScene([]byte(doc))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.World.Objects[0].Transform() != core.Shearing(1, 0, 0, 0, 0, 0) {
		t.Errorf("Expected shearing transform, got %v", s.World.Objects[0].Transform())
	}
}

func TestParseScene_Material(t *testing.T) {
	doc := `{
		"camera": {"width": 4, "height": 4, "from": [0, 0, -5], "to": [0, 0, 0]},
		"objects": [
			{"type": "sphere", "material": {
				"color": [1, 0.2, 1], "ambient": 0.2, "diffuse": 0.7, "specular": 0.3,
				"shininess": 50, "reflective": 0.5, "transparency": 0.25, "refractive_index": 1.33
			}},
			{"type": "sphere", "material": {"preset": "glass", "reflective": 0.9}},
			{"type": "plane", "material": {"pattern": {
				"type": "stripe",
				"colors": [[1, 1, 1], [0, 0, 0]],
				"transform": [["scale", 0.5, 1, 1]]
			}}}
		]
	}`
	s, err := ParseScene([]byte(doc))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := material.Material{
		Color:           core.NewColor(1, 0.2, 1),
		Ambient:         0.2,
		Diffuse:         0.7,
		Specular:        0.3,
		Shininess:       50,
		Reflective:      0.5,
		Transparency:    0.25,
		RefractiveIndex: 1.33,
	}
	if got := s.World.Objects[0].Material(); got != expected {
		t.Errorf("Expected %+v, got %+v", expected, got)
	}

	glass := s.World.Objects[1].Material()
	if glass.Transparency != 1 || glass.RefractiveIndex != 1.5 || glass.Reflective != 0.9 {
		t.Errorf("Expected glass preset with reflective override, got %+v", glass)
	}

	pattern := s.World.Objects[2].Material().Pattern
	if pattern == nil || pattern.Kind != material.Stripe {
		t.Fatalf("Expected stripe pattern, got %+v", pattern)
	}
	if pattern.Transform() != core.Scaling(0.5, 1, 1) {
		t.Errorf("Expected pattern transform, got %v", pattern.Transform())
	}
	c, err := geometry.SurfaceColor(s.World.Objects[2], core.Point(0.6, 0, 0))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !c.Equals(core.Black) {
		t.Errorf("Expected scaled stripe to be black at x=0.6, got %v", c)
	}
}

func TestParseScene_NestedGroups(t *testing.T) {
	doc := `{
		"camera": {"width": 4, "height": 4, "from": [0, 0, -5], "to": [0, 0, 0]},
		"objects": [{
			"type": "group",
			"transform": [["rotate-y", 1.5707963267948966]],
			"children": [{
				"type": "group",
				"transform": [["scale", 1, 2, 3]],
				"children": [{"type": "sphere", "transform": [["translate", 5, 0, 0]]}]
			}]
		}]
	}`
	s, err := ParseScene([]byte(doc))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	outer := s.World.Objects[0].(*geometry.Group)
	inner := outer.Children()[0].(*geometry.Group)
	sphere := inner.Children()[0]

	n, err := geometry.NormalAt(sphere, core.Point(1.7321, 1.1547, -5.5774))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if diff := cmp.Diff(core.Vector(0.2857, 0.4286, -0.8571), n, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Errorf("Normal mismatch (-want +got):\n%s", diff)
	}
}

func TestParseScene_Invalid(t *testing.T) {
	camera := `"camera": {"width": 4, "height": 4, "from": [0, 0, -5], "to": [0, 0, 0]}`

	tests := []struct {
		name     string
		doc      string
		contains string
	}{
		{"malformed", `{"camera": `, "malformed JSON"},
		{"not an object", `[1, 2]`, "expected an object"},
		{"missing camera", `{"objects": [{"type": "sphere"}]}`, "camera"},
		{"missing width", `{"camera": {"height": 4, "from": [0,0,0], "to": [0,0,1]}, "objects": []}`, "camera.width"},
		{"fractional height", `{"camera": {"width": 4, "height": 4.5, "from": [0,0,0], "to": [0,0,1]}, "objects": []}`, "camera.height"},
		{"short vector", `{"camera": {"width": 4, "height": 4, "from": [0,0], "to": [0,0,1]}, "objects": []}`, "camera.from"},
		{"bad field of view", `{"camera": {"width": 4, "height": 4, "from": [0,0,0], "to": [0,0,1], "field_of_view": 4}, "objects": []}`, "field_of_view"},
		{"missing objects", `{` + camera + `}`, "objects"},
		{"light without position", `{` + camera + `, "light": {}, "objects": [{"type": "sphere"}]}`, "light.position"},
		{"unknown shape", `{` + camera + `, "objects": [{"type": "torus"}]}`, "torus"},
		{"missing shape type", `{` + camera + `, "objects": [{}]}`, "objects[0]"},
		{"unknown transform", `{` + camera + `, "objects": [{"type": "sphere", "transform": [["twist", 1]]}]}`, "twist"},
		{"transform arity", `{` + camera + `, "objects": [{"type": "sphere", "transform": [["translate", 1, 2]]}]}`, "translate takes 3"},
		{"transform value", `{` + camera + `, "objects": [{"type": "sphere", "transform": [["scale", 1, "2", 3]]}]}`, "transform[0][2]"},
		{"inverted bounds", `{` + camera + `, "objects": [{"type": "cylinder", "minimum": 2, "maximum": 1}]}`, "exceeds"},
		{"closed not bool", `{` + camera + `, "objects": [{"type": "cone", "closed": "yes"}]}`, "closed"},
		{"negative coefficient", `{` + camera + `, "objects": [{"type": "sphere", "material": {"diffuse": -1}}]}`, "diffuse"},
		{"reflective above one", `{` + camera + `, "objects": [{"type": "sphere", "material": {"reflective": 1.5}}]}`, "reflective"},
		{"transparency above one", `{` + camera + `, "objects": [{"type": "sphere", "material": {"transparency": 2}}]}`, "between 0 and 1"},
		{"unknown preset", `{` + camera + `, "objects": [{"type": "sphere", "material": {"preset": "chrome"}}]}`, "chrome"},
		{"unknown pattern", `{` + camera + `, "objects": [{"type": "sphere", "material": {"pattern": {"type": "marble", "colors": [[1,1,1],[0,0,0]]}}}]}`, "marble"},
		{"pattern colors", `{` + camera + `, "objects": [{"type": "sphere", "material": {"pattern": {"type": "ring", "colors": [[1,1,1]]}}}]}`, "two colors"},
		{"group material", `{` + camera + `, "objects": [{"type": "group", "material": {"color": [1,0,0]}}]}`, "groups have no material"},
		{"nested child", `{` + camera + `, "objects": [{"type": "group", "children": [{"type": "sphere"}, {"type": "blob"}]}]}`, "objects[0].children[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene([]byte(tt.doc))
			if !errors.Is(err, ErrInvalidScene) {
				t.Fatalf("Expected ErrInvalidScene, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Expected error to mention %q, got %q", tt.contains, err.Error())
			}
		})
	}
}

func TestParseScene_ValidationErrors(t *testing.T) {
	camera := `"camera": {"width": 4, "height": 4, "from": [0, 0, -5], "to": [0, 0, 0]}`

	_, err := ParseScene([]byte(`{` + camera + `, "objects": []}`))
	if !errors.Is(err, scene.ErrNoObjects) {
		t.Errorf("Expected ErrNoObjects, got %v", err)
	}

	_, err = ParseScene([]byte(`{` + camera + `, "objects": [{"type": "sphere", "transform": [["scale", 0, 1, 1]]}]}`))
	if !errors.Is(err, core.ErrSingularMatrix) {
		t.Errorf("Expected ErrSingularMatrix, got %v", err)
	}
}

func TestLoadSceneFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scenes")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "minimal.json")
	if err := os.WriteFile(path, []byte(minimalScene), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSceneFile(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.Name != "Minimal" {
		t.Errorf("Expected Minimal, got %q", s.Name)
	}

	if _, err := LoadSceneFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadSceneFile_BundledScenes(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "scenes", "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Skip("no bundled scene files found")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			s, err := LoadSceneFile(file)
			if err != nil {
				t.Fatalf("Failed to load %s: %v", file, err)
			}
			if len(s.World.Objects) == 0 {
				t.Error("Expected objects in bundled scene")
			}
		})
	}
}

func TestLoadScene_Builtin(t *testing.T) {
	s, err := LoadScene("default", geometry.CameraConfig{Width: 16, Height: 8})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.Camera.HSize != 16 || s.Camera.VSize != 8 {
		t.Errorf("Expected 16x8 camera, got %dx%d", s.Camera.HSize, s.Camera.VSize)
	}

	if _, err := LoadScene("nonexistent"); err == nil {
		t.Error("Expected error for unknown built-in")
	}
}

func TestLoadScene_JSONID(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "scenes"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scenes", "tiny.json"), []byte(minimalScene), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	s, err := LoadScene("json:tiny")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.Name != "Minimal" {
		t.Errorf("Expected Minimal, got %q", s.Name)
	}

	if _, err := LoadScene("json:absent"); err == nil {
		t.Error("Expected error for missing scene file")
	}
}

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"scenes dir", "scenes/room.json", false},
		{"relative scenes dir", "../../scenes/room.json", false},
		{"empty", "", true},
		{"outside scenes", "/etc/passwd.json", true},
		{"traversal out of scenes", "scenes/../../etc/room.json", true},
		{"wrong extension", "scenes/room.pbrt", true},
		{"null byte", "scenes/room\x00.json", true},
		{"too long", "scenes/" + strings.Repeat("a", 520) + ".json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFilePath(tt.path, ".json")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFilePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
