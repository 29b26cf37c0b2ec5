package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Inside       bool                   `json:"inside"`
	Depth        int                    `json:"depth"` // Number of enclosing groups
	Material     map[string]interface{} `json:"material,omitempty"`
	Geometry     map[string]interface{} `json:"geometry,omitempty"`
}

// handleInspect reports the surface seen through one pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req := &RenderRequest{}
	values := r.URL.Query()
	if err := parseCommonSceneParams(values, req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorUpdate{Message: err.Error()})
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorUpdate{Message: err.Error()})
		return
	}

	x, errX := parseIntParam(values, "x", -1, 0, sceneObj.Camera.HSize-1)
	y, errY := parseIntParam(values, "y", -1, 0, sceneObj.Camera.VSize-1)
	if errX != nil || errY != nil || x < 0 || y < 0 {
		writeJSON(w, http.StatusBadRequest, ErrorUpdate{Message: fmt.Sprintf("x and y must be pixel coordinates within %dx%d", sceneObj.Camera.HSize, sceneObj.Camera.VSize)})
		return
	}

	response, err := inspectPixel(sceneObj, x, y)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorUpdate{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// inspectPixel casts the camera ray through a pixel and describes the first surface it hits
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) (InspectResponse, error) {
	ray, err := sceneObj.Camera.RayForPixel(pixelX, pixelY)
	if err != nil {
		return InspectResponse{}, err
	}

	xs, err := sceneObj.World.Intersect(ray)
	if err != nil {
		return InspectResponse{}, err
	}
	hit, ok := xs.Hit()
	if !ok {
		return InspectResponse{Hit: false}, nil
	}

	comps, err := geometry.PrepareComputations(hit, ray, xs)
	if err != nil {
		return InspectResponse{}, err
	}

	geometryType, geometryProps := extractGeometryInfo(hit.Object)
	materialProps, err := extractMaterialInfo(hit.Object, comps.Point)
	if err != nil {
		return InspectResponse{}, err
	}

	depth := 0
	for g := hit.Object.Parent(); g != nil; g = g.Parent() {
		depth++
	}

	return InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        tupleArray(comps.Point),
		Normal:       tupleArray(comps.NormalV),
		Distance:     comps.T,
		Inside:       comps.Inside,
		Depth:        depth,
		Material:     materialProps,
		Geometry:     geometryProps,
	}, nil
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		return "sphere", properties
	case *geometry.Plane:
		return "plane", properties
	case *geometry.Cube:
		return "cube", properties
	case *geometry.Cylinder:
		addBounds(properties, geom.Minimum, geom.Maximum, geom.Closed)
		return "cylinder", properties
	case *geometry.Cone:
		addBounds(properties, geom.Minimum, geom.Maximum, geom.Closed)
		return "cone", properties
	default:
		return fmt.Sprintf("%T", shape), properties
	}
}

// addBounds records the y extent, leaving infinite bounds out since JSON cannot encode them
func addBounds(properties map[string]interface{}, minimum, maximum float64, closed bool) {
	if !math.IsInf(minimum, 0) {
		properties["minimum"] = minimum
	}
	if !math.IsInf(maximum, 0) {
		properties["maximum"] = maximum
	}
	properties["closed"] = closed
}

// extractMaterialInfo describes the material and the surface color at the hit point
func extractMaterialInfo(shape geometry.Shape, point core.Tuple) (map[string]interface{}, error) {
	m := shape.Material()
	surface, err := geometry.SurfaceColor(shape, point)
	if err != nil {
		return nil, err
	}

	properties := map[string]interface{}{
		"color":           hexColor(surface),
		"ambient":         m.Ambient,
		"diffuse":         m.Diffuse,
		"specular":        m.Specular,
		"shininess":       m.Shininess,
		"reflective":      m.Reflective,
		"transparency":    m.Transparency,
		"refractiveIndex": m.RefractiveIndex,
	}
	if m.Pattern != nil {
		properties["pattern"] = m.Pattern.Kind.String()
	}
	properties["type"] = materialType(m)
	return properties, nil
}

// materialType gives a short description of how the surface treats light
func materialType(m material.Material) string {
	switch {
	case m.IsTransparent() && m.IsReflective():
		return "glass"
	case m.IsTransparent():
		return "transparent"
	case m.IsReflective():
		return "reflective"
	default:
		return "matte"
	}
}

func hexColor(c core.Color) string {
	clamped := c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x",
		int(math.Round(clamped.R*255)), int(math.Round(clamped.G*255)), int(math.Round(clamped.B*255)))
}

func tupleArray(t core.Tuple) [3]float64 {
	return [3]float64{t.X, t.Y, t.Z}
}
