package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// IntersectSphere tests a ray against a sphere body of radius body.Size and
// returns the nearest root beyond core.Epsilon. When the ray starts inside the
// sphere only the far root qualifies and is returned.
func IntersectSphere(ray core.Ray, body scene.Body) (float64, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(body.Position)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return 0, false
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - body.Size*body.Size

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= core.Epsilon {
		// Try the farther intersection point
		root = (-halfB + sqrtD) / a
		if root <= core.Epsilon {
			return 0, false
		}
	}

	return root, true
}
