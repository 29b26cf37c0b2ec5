package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCylinderScene shows capped, open and glass cylinders on a reflective floor
func NewCylinderScene(cameraOverrides ...geometry.CameraConfig) *Scene {
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

	// Solid capped cylinder
	solid := geometry.NewBoundedCylinder(0, 2, true)
	solid.SetTransform(core.Chain(core.Scaling(0.7, 1, 0.7), core.Translation(-2.2, 0, 0.5)))
	red := material.DefaultMaterial()
	red.Color = core.NewColor(0.8, 0.15, 0.1)
	red.Specular = 0.4
	red.Shininess = 50
	solid.SetMaterial(red)

	// Open tube showing its inner wall
	tube := geometry.NewBoundedCylinder(0, 1.5, false)
	tube.SetTransform(core.Chain(core.Scaling(0.6, 1, 0.6), core.RotationZ(-math.Pi/8), core.Translation(0, 0.2, 1)))
	bands := material.NewStripePattern(core.NewColor(0.2, 0.6, 0.9), core.White)
	bands.SetTransform(core.Chain(core.Scaling(0.15, 1, 1), core.RotationZ(math.Pi/2)))
	tubeMaterial := material.DefaultMaterial()
	tubeMaterial.Pattern = bands
	tube.SetMaterial(tubeMaterial)

	// Glass column
	column := geometry.NewBoundedCylinder(0, 2.5, true)
	column.SetTransform(core.Chain(core.Scaling(0.6, 1, 0.6), core.Translation(2.2, 0, 0.5)))
	glass := material.NewGlass()
	glass.Color = core.NewColor(0.1, 0.1, 0.1)
	glass.Diffuse = 0.1
	glass.Reflective = 0.9
	glass.Transparency = 0.9
	glass.Shininess = 300
	column.SetMaterial(glass)

	world.Add(solid, tube, column)
	return NewScene("cylinders", world, cameraConfig)
}

// newFloor returns a softly reflective checkered ground plane at y=0
func newFloor() *geometry.Plane {
	floor := geometry.NewPlane()
	m := material.DefaultMaterial()
	m.Pattern = material.NewCheckerPattern(core.NewColor(0.35, 0.35, 0.35), core.NewColor(0.65, 0.65, 0.65))
	m.Specular = 0
	m.Reflective = 0.3
	floor.SetMaterial(m)
	return floor
}
