package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewHexagonScene builds a hexagonal frame from nested groups of spheres
// and cylinders, tilted above a reflective floor
func NewHexagonScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := mergeCamera(geometry.CameraConfig{
		From:        core.Point(0, 3, -5),
		To:          core.Point(0, 1, 0),
		Up:          core.Vector(0, 1, 0),
		Width:       400,
		Height:      300,
		FieldOfView: math.Pi / 3,
	}, cameraOverrides)

	world := NewWorld()
	world.Light = lights.NewPointLight(core.Point(-6, 8, -8), core.White)
	world.Add(newFloor())

	brass := material.DefaultMaterial()
	brass.Color = core.NewColor(0.8, 0.6, 0.2)
	brass.Diffuse = 0.6
	brass.Specular = 0.8
	brass.Shininess = 100
	brass.Reflective = 0.3

	hex := newHexagon(brass)
	hex.SetTransform(core.Chain(core.RotationX(-math.Pi/6), core.Translation(0, 1.2, 0)))
	world.Add(hex)

	return NewScene("hexagon", world, cameraConfig)
}

// newHexagon returns a unit hexagon in the xz plane made of six sides
func newHexagon(m material.Material) *geometry.Group {
	hex := geometry.NewGroup()
	for n := 0; n < 6; n++ {
		side := newHexagonSide(m)
		side.SetTransform(core.RotationY(float64(n) * math.Pi / 3))
		// A freshly created side has no parent, so this cannot fail
		_ = hex.AddChild(side)
	}
	return hex
}

// newHexagonSide returns one corner sphere and one edge cylinder
func newHexagonSide(m material.Material) *geometry.Group {
	corner := geometry.NewSphere()
	corner.SetTransform(core.Chain(core.Scaling(0.25, 0.25, 0.25), core.Translation(0, 0, -1)))
	corner.SetMaterial(m)

	edge := geometry.NewBoundedCylinder(0, 1, false)
	edge.SetTransform(core.Chain(
		core.Scaling(0.25, 1, 0.25),
		core.RotationZ(-math.Pi/2),
		core.RotationY(-math.Pi/6),
		core.Translation(0, 0, -1),
	))
	edge.SetMaterial(m)

	side := geometry.NewGroup()
	_ = side.AddChild(corner)
	_ = side.AddChild(edge)
	return side
}
