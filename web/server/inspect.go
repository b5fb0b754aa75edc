package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
	"github.com/df07/go-phong-raytracer/pkg/shading"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit        bool                   `json:"hit"`
	BodyIndex  int                    `json:"bodyIndex"`
	BodyType   string                 `json:"bodyType,omitempty"`
	Point      [3]float64             `json:"point"`
	Normal     [3]float64             `json:"normal"`
	Distance   float64                `json:"distance"`
	Shadow     float64                `json:"shadow"` // Fraction of the light visible from the point
	Color      string                 `json:"color"`  // Final pixel colour, #rrggbb
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult holds what the kernel sees through one pixel
type InspectResult struct {
	Hit     geometry.Hit
	Surface shading.Surface
	Shadow  float64
	Color   core.Color
}

// inspectPixel casts the primary ray through pixel (pixelX, pixelY) exactly as
// the render kernel does and reports what it hit
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY, samples int) InspectResult {
	ray := renderer.PrimaryRay(pixelX, pixelY, width, height, sceneObj.Camera)
	hit := geometry.Intersect(ray, sceneObj.Bodies)

	result := InspectResult{
		Hit:   hit,
		Color: shading.Shade(ray, hit, sceneObj, samples),
	}
	if !hit.OK() {
		return result
	}

	result.Surface = shading.Resolve(ray, hit, sceneObj.Bodies)
	result.Shadow = 1
	if result.Surface.Type != scene.Light {
		result.Shadow = shading.ShadowFactor(result.Surface.Position, sceneObj.Light, sceneObj.Bodies, samples)
	}
	return result
}

// extractBodyInfo describes a body for the inspector
func extractBodyInfo(body scene.Body) map[string]interface{} {
	properties := map[string]interface{}{
		"position":     [3]float64{body.Position.X, body.Position.Y, body.Position.Z},
		"color":        hexColor(body.Color),
		"reflectivity": body.Reflectivity,
	}

	switch body.Type {
	case scene.Plane:
		properties["infinite"] = body.Size < 0
		if body.Size > 0 {
			properties["side"] = body.Size
		}
	case scene.Sphere, scene.Light:
		properties["radius"] = body.Size
	}
	return properties
}

func hexColor(c core.Color) string {
	return fmt.Sprintf("#%06x", c.Pack())
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := sceneObj.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result := inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY, req.Samples)
	response := InspectResponse{
		Hit:       result.Hit.OK(),
		BodyIndex: result.Hit.Index,
		Color:     hexColor(result.Color),
	}
	if result.Hit.OK() {
		body := sceneObj.Bodies[result.Hit.Index]
		p, n := result.Surface.Position, result.Surface.Normal
		response.BodyType = body.Type.String()
		response.Point = [3]float64{p.X, p.Y, p.Z}
		response.Normal = [3]float64{n.X, n.Y, n.Z}
		response.Distance = result.Hit.Distance
		response.Shadow = result.Shadow
		response.Properties = extractBodyInfo(body)
	}

	writeJSON(w, http.StatusOK, response)
}
