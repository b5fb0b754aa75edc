package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Hit is the nearest intersection of a ray with a body list. Position, normal
// and colour are derived from the body on demand rather than stored.
type Hit struct {
	Distance float64
	Index    int // index into the body list, -1 for no hit
}

// NoHit is returned when a ray misses every body
var NoHit = Hit{Distance: math.Inf(1), Index: -1}

// OK reports whether the ray hit anything
func (h Hit) OK() bool {
	return h.Index >= 0
}

// IntersectBody dispatches to the intersection test for the body's type
func IntersectBody(ray core.Ray, body scene.Body) (float64, bool) {
	switch body.Type {
	case scene.Plane:
		return IntersectPlane(ray, body)
	case scene.Sphere, scene.Light:
		return IntersectSphere(ray, body)
	default:
		return 0, false
	}
}

// Intersect scans every body and returns the nearest hit. Ties keep the lower
// index. A zero-length ray direction hits nothing.
func Intersect(ray core.Ray, bodies []scene.Body) Hit {
	if ray.Direction.LengthSquared() == 0 {
		return NoHit
	}

	closest := NoHit
	for i, body := range bodies {
		if t, ok := IntersectBody(ray, body); ok && t < closest.Distance {
			closest = Hit{Distance: t, Index: i}
		}
	}
	return closest
}

// Occluded reports whether any body other than a light glyph lies on the ray
// strictly closer than maxDistance.
func Occluded(ray core.Ray, bodies []scene.Body, maxDistance float64) bool {
	if ray.Direction.LengthSquared() == 0 {
		return false
	}
	for _, body := range bodies {
		if body.Type == scene.Light {
			continue
		}
		if t, ok := IntersectBody(ray, body); ok && t < maxDistance {
			return true
		}
	}
	return false
}

// Normal returns the outward unit normal of body at a point on its surface
func Normal(body scene.Body, point core.Vec3) core.Vec3 {
	if body.Type == scene.Plane {
		return planeNormal
	}
	return point.Subtract(body.Position).Normalize()
}
