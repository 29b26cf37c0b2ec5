package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewGlassScene creates a hollow glass sphere over a checkered floor
func NewGlassScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := mergeCamera(geometry.CameraConfig{
		From:        core.Point(0, 2.5, -5),
		To:          core.Point(0, 1, 0),
		Up:          core.Vector(0, 1, 0),
		Width:       400,
		Height:      300,
		FieldOfView: math.Pi / 3,
	}, cameraOverrides)

	world := NewWorld()
	world.Light = lights.NewPointLight(core.Point(-10, 10, -10), core.White)

	floor := geometry.NewPlane()
	checks := material.NewCheckerPattern(core.NewColor(0.15, 0.15, 0.15), core.NewColor(0.85, 0.85, 0.85))
	checks.SetTransform(core.Scaling(0.5, 0.5, 0.5))
	floorMaterial := material.DefaultMaterial()
	floorMaterial.Pattern = checks
	floorMaterial.Specular = 0
	floorMaterial.Reflective = 0.1
	floor.SetMaterial(floorMaterial)

	wall := geometry.NewPlane()
	wall.SetTransform(core.Chain(core.RotationX(math.Pi/2), core.Translation(0, 0, 6)))
	rings := material.NewRingPattern(core.NewColor(0.9, 0.4, 0.2), core.NewColor(0.95, 0.85, 0.6))
	rings.SetTransform(core.Scaling(0.3, 0.3, 0.3))
	wallMaterial := material.DefaultMaterial()
	wallMaterial.Pattern = rings
	wallMaterial.Specular = 0
	wall.SetMaterial(wallMaterial)

	glass := material.NewGlass()
	glass.Color = core.Black
	glass.Ambient = 0
	glass.Diffuse = 0.1
	glass.Specular = 1
	glass.Shininess = 300
	glass.Reflective = 0.9
	glass.Transparency = 0.9

	outer := geometry.NewSphere()
	outer.SetTransform(core.Translation(0, 1, 0))
	outer.SetMaterial(glass)

	air := glass
	air.RefractiveIndex = material.IndexAir
	bubble := geometry.NewSphere()
	bubble.SetTransform(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.Translation(0, 1, 0)))
	bubble.SetMaterial(air)

	world.Add(floor, wall, outer, bubble)
	return NewScene("glass", world, cameraConfig)
}
