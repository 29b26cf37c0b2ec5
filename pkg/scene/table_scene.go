package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewTableScene creates a wooden table standing on a reflective checkered floor
func NewTableScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := mergeCamera(geometry.CameraConfig{
		From:        core.Point(0, 5, -10),
		To:          core.Point(2, 3, 1),
		Up:          core.Vector(0, 1, 0),
		Width:       400,
		Height:      200,
		FieldOfView: math.Pi / 3,
	}, cameraOverrides)

	world := NewWorld()
	world.Light = lights.NewPointLight(core.Point(-10, 10, -10), core.White)

	floor := geometry.NewPlane()
	floor.SetTransform(core.Translation(0, 0, -3))
	floorMaterial := material.DefaultMaterial()
	floorMaterial.Pattern = material.NewCheckerPattern(core.White, core.Black)
	floorMaterial.Reflective = 0.9
	floor.SetMaterial(floorMaterial)
	world.Add(floor)

	wood := material.DefaultMaterial()
	wood.Color = core.NewColor(0.8, 0.5, 0.1)

	legScale := core.Scaling(0.2, 3, 0.2)
	legPositions := []core.Tuple{
		core.Point(0, 0, 0),
		core.Point(4, 0, 0),
		core.Point(0, 0, 2),
		core.Point(4, 0, 2),
	}
	for _, p := range legPositions {
		leg := geometry.NewCube()
		leg.SetTransform(core.Chain(legScale, core.Translation(p.X, p.Y, p.Z)))
		leg.SetMaterial(wood)
		world.Add(leg)
	}

	top := geometry.NewCube()
	top.SetTransform(core.Chain(core.Scaling(3, 0.2, 2), core.Translation(2, 3, 1)))
	top.SetMaterial(wood)
	world.Add(top)

	// Striped glass ball resting on the table top with a checkered ball inside it
	ball := geometry.NewSphere()
	ball.SetTransform(core.Translation(2, 4.2, 1))
	stripes := material.NewStripePattern(core.NewColor(1, 0.5, 0), core.NewColor(0, 0.5, 0.5))
	stripes.SetTransform(core.Scaling(0.5, 0.5, 0.5))
	ballMaterial := material.DefaultMaterial()
	ballMaterial.Pattern = stripes
	ballMaterial.Diffuse = 0.7
	ballMaterial.Specular = 0.3
	ballMaterial.Reflective = 0.9
	ballMaterial.Transparency = 0.9
	ballMaterial.RefractiveIndex = material.IndexGlass
	ball.SetMaterial(ballMaterial)
	world.Add(ball)

	inner := geometry.NewSphere()
	inner.SetTransform(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.Translation(2, 4.2, 1)))
	checks := material.NewCheckerPattern(core.NewColor(0, 1, 0.5), core.NewColor(0.5, 0, 0.9))
	checks.SetTransform(core.Chain(core.Scaling(0.2, 0.5, 2), core.RotationZ(math.Pi/4), core.RotationX(math.Pi/4)))
	coreMaterial := material.DefaultMaterial()
	coreMaterial.Color = core.NewColor(0, 0.5, 0.8)
	coreMaterial.Pattern = checks
	coreMaterial.Reflective = 0.9
	coreMaterial.Transparency = 0.2
	inner.SetMaterial(coreMaterial)
	world.Add(inner)

	return NewScene("table", world, cameraConfig)
}
