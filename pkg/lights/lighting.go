package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Lighting evaluates the Phong reflection model at a surface point. The
// surface color comes from the material's pattern, sampled on object, when
// one is set. A shadowed point receives ambient light only.
func Lighting(m material.Material, object geometry.Shape, light *PointLight, point, eye, normal core.Tuple, inShadow bool) (core.Color, error) {
	color := m.Color
	if m.Pattern != nil {
		var err error
		if color, err = geometry.PatternAtShape(m.Pattern, object, point); err != nil {
			return core.Color{}, err
		}
	}

	effectiveColor := color.MultiplyColor(light.Intensity)
	ambient := effectiveColor.Multiply(m.Ambient)
	if inShadow {
		return ambient, nil
	}

	lightV := light.Position.Subtract(point).Normalize()
	lightDotNormal := lightV.Dot(normal)
	if lightDotNormal < 0 {
		// Light is on the other side of the surface
		return ambient, nil
	}

	diffuse := effectiveColor.Multiply(m.Diffuse * lightDotNormal)

	specular := core.Black
	reflectV := lightV.Negate().Reflect(normal)
	if reflectDotEye := reflectV.Dot(eye); reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = light.Intensity.Multiply(m.Specular * factor)
	}

	return ambient.Add(diffuse).Add(specular), nil
}
