// Package shading computes the Phong colour of a surface point and the soft
// shadow attenuation from the scene's area light.
package shading

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Strengths of the ambient and specular terms
const (
	AmbientStrength  = 0.05
	SpecularStrength = 0.5
)

// Surface is a hit resolved against its body: where it is, which way it faces
// and what it looks like.
type Surface struct {
	Position     core.Vec3
	Normal       core.Vec3
	Color        core.Color
	Reflectivity float64
	Type         scene.BodyType
}

// Resolve derives the surface attributes of a hit along ray
func Resolve(ray core.Ray, hit geometry.Hit, bodies []scene.Body) Surface {
	body := bodies[hit.Index]
	p := ray.At(hit.Distance)
	return Surface{
		Position:     p,
		Normal:       geometry.Normal(body, p),
		Color:        body.Color,
		Reflectivity: body.Reflectivity,
		Type:         body.Type,
	}
}

// Ambient is the constant fill light term
func Ambient(s Surface, light scene.PointLight) core.Color {
	return s.Color.MultiplyColor(light.Color).Multiply(AmbientStrength)
}

// Diffuse is the Lambertian term; surfaces facing away from the light get none
func Diffuse(s Surface, light scene.PointLight) core.Color {
	toLight := light.Position.Subtract(s.Position).Normalize()
	brightness := math.Max(0, s.Normal.Dot(toLight))
	return s.Color.MultiplyColor(light.Color).Multiply(brightness)
}

// Specular is the Phong highlight, tightened by the surface reflectivity
func Specular(s Surface, light scene.PointLight, camera scene.Camera) core.Color {
	view := s.Position.Subtract(camera.Position).Normalize()
	toLight := light.Position.Subtract(s.Position).Normalize()
	reflected := toLight.Reflect(s.Normal)

	factor := math.Max(0, reflected.Dot(view))
	brightness := math.Pow(factor, s.Reflectivity)
	return light.Color.Multiply(brightness * SpecularStrength)
}

// Phong is the unclamped sum of the ambient, diffuse and specular terms
func Phong(s Surface, light scene.PointLight, camera scene.Camera) core.Color {
	return Ambient(s, light).Add(Diffuse(s, light)).Add(Specular(s, light, camera))
}
