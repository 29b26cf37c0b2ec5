package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Scene pairs a world with the camera that views it
type Scene struct {
	Name         string
	World        *World
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
}

// NewScene builds the camera from config and wraps the world
func NewScene(name string, world *World, cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		World:        world,
		Camera:       geometry.NewCameraFromConfig(cameraConfig),
		CameraConfig: cameraConfig,
	}
}

// Validate checks the world and camera before rendering
func (s *Scene) Validate() error {
	if err := s.World.Validate(); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	if err := s.Camera.Validate(); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return nil
}

// Builder creates a built-in scene. Non-zero fields of the optional camera
// override replace the scene's own camera settings.
type Builder func(cameraOverrides ...geometry.CameraConfig) *Scene

var builtins = map[string]Builder{
	"default":   NewDefaultScene,
	"table":     NewTableScene,
	"glass":     NewGlassScene,
	"cylinders": NewCylinderScene,
	"cones":     NewConeScene,
	"hexagon":   NewHexagonScene,
}

// BuiltinNames returns the names of the built-in scenes in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBuiltin creates a built-in scene by name
func NewBuiltin(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	builder, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", name)
	}
	return builder(cameraOverrides...), nil
}

func mergeCamera(base geometry.CameraConfig, overrides []geometry.CameraConfig) geometry.CameraConfig {
	if len(overrides) > 0 {
		return geometry.MergeCameraConfig(base, overrides[0])
	}
	return base
}
