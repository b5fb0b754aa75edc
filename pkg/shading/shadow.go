package shading

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// ShadowFactor returns the unoccluded fraction of the light as seen from point:
// 1 is fully lit, 0 fully shadowed. The light is sampled at samples points on a
// disk of the light's radius facing point. samples must be at least 1.
func ShadowFactor(point core.Vec3, light scene.PointLight, bodies []scene.Body, samples int) float64 {
	axis := light.Position.Subtract(point)

	occluded := 0
	for i := 0; i < samples; i++ {
		target := core.SampleDisk(light.Position, axis, light.Radius, i, samples)
		toTarget := target.Subtract(point)
		dist := toTarget.Length()
		if dist == 0 {
			continue
		}
		ray := core.NewRay(point, toTarget.Multiply(1/dist))
		if geometry.Occluded(ray, bodies, dist) {
			occluded++
		}
	}
	return 1 - float64(occluded)/float64(samples)
}

// Shade returns the colour seen along ray. A miss yields the background; a
// light glyph is drawn in its own colour; anything else gets ambient light plus
// shadow-attenuated diffuse and specular light.
func Shade(ray core.Ray, hit geometry.Hit, s *scene.Scene, samples int) core.Color {
	if !hit.OK() {
		return s.Background
	}

	surf := Resolve(ray, hit, s.Bodies)
	if surf.Type == scene.Light {
		return surf.Color
	}

	direct := Diffuse(surf, s.Light).Add(Specular(surf, s.Light, s.Camera))
	factor := ShadowFactor(surf.Position, s.Light, s.Bodies, samples)
	return Ambient(surf, s.Light).Add(direct.Multiply(factor))
}
