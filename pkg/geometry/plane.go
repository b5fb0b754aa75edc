package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// planeNormal is the normal of every plane body; planes are horizontal
var planeNormal = core.NewVec3(0, 1, 0)

// IntersectPlane tests a ray against a horizontal plane body at height
// body.Position.Y. A negative size makes the plane infinite; a positive size
// bounds it to a square of that side centred on body.Position.
func IntersectPlane(ray core.Ray, body scene.Body) (float64, bool) {
	// Calculate denominator: dot product of ray direction and plane normal
	denominator := ray.Direction.Dot(planeNormal)

	// If denominator is close to zero, ray is parallel to plane (no intersection)
	if math.Abs(denominator) < 1e-8 {
		return 0, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := body.Position.Subtract(ray.Origin).Dot(planeNormal) / denominator
	if t <= core.Epsilon {
		return 0, false
	}

	if body.Size > 0 {
		p := ray.At(t)
		half := body.Size / 2
		if math.Abs(p.X-body.Position.X) > half || math.Abs(p.Z-body.Position.Z) > half {
			return 0, false
		}
	}

	return t, true
}
