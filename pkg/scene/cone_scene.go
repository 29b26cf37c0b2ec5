package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewConeScene shows a capped cone, an hourglass double cone and a mirrored
// cone on a reflective floor
func NewConeScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := mergeCamera(geometry.CameraConfig{
		From:        core.Point(0, 3, -7),
		To:          core.Point(0, 1, 0),
		Up:          core.Vector(0, 1, 0),
		Width:       400,
		Height:      200,
		FieldOfView: math.Pi / 3,
	}, cameraOverrides)

	world := NewWorld()
	world.Light = lights.NewPointLight(core.Point(-5, 8, -8), core.White)
	world.Add(newFloor())

	// Upright capped cone, apex on top
	upright := geometry.NewBoundedCone(-1, 0, true)
	upright.SetTransform(core.Chain(core.Scaling(0.8, 2, 0.8), core.Translation(-2.2, 2, 0.5)))
	gradient := material.NewGradientPattern(core.NewColor(0.9, 0.7, 0.1), core.NewColor(0.7, 0.1, 0.3))
	gradient.SetTransform(core.Chain(core.Translation(1, 0, 0), core.Scaling(0.5, 1, 1), core.RotationZ(math.Pi/2)))
	uprightMaterial := material.DefaultMaterial()
	uprightMaterial.Pattern = gradient
	upright.SetMaterial(uprightMaterial)

	// Hourglass: both nappes, capped
	hourglass := geometry.NewBoundedCone(-1, 1, true)
	hourglass.SetTransform(core.Chain(core.Scaling(0.6, 1, 0.6), core.Translation(0, 1, 1)))
	radial := material.NewRadialPattern(core.NewColor(0.1, 0.4, 0.8), core.NewColor(0.9, 0.9, 1))
	radial.SetTransform(core.Scaling(0.3, 0.3, 0.3))
	hourglassMaterial := material.DefaultMaterial()
	hourglassMaterial.Pattern = radial
	hourglass.SetMaterial(hourglassMaterial)

	// Inverted mirror cone
	mirror := geometry.NewBoundedCone(0, 1.5, true)
	mirror.SetTransform(core.Chain(core.Scaling(0.7, 1, 0.7), core.Translation(2.2, 0, 0.5)))
	chrome := material.DefaultMaterial()
	chrome.Color = core.NewColor(0.2, 0.2, 0.2)
	chrome.Diffuse = 0.3
	chrome.Specular = 1
	chrome.Shininess = 300
	chrome.Reflective = 0.8
	mirror.SetMaterial(chrome)

	world.Add(upright, hourglass, mirror)
	return NewScene("cones", world, cameraConfig)
}
