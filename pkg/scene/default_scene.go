package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// NewDefaultScene views the default two-sphere world from slightly above
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := mergeCamera(geometry.CameraConfig{
		From:        core.Point(0, 1.5, -5),
		To:          core.Point(0, 0, 0),
		Up:          core.Vector(0, 1, 0),
		Width:       400,
		Height:      400,
		FieldOfView: math.Pi / 3,
	}, cameraOverrides)

	return NewScene("default", DefaultWorld(), cameraConfig)
}
