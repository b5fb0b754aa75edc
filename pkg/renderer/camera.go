package renderer

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// PrimaryRay returns the camera ray through the centre of pixel (x, y).
// Image rows grow downwards; the unrotated camera looks down +Z with +Y up.
// The vertical field of view is camera.FOV and the horizontal extent follows
// the width/height aspect ratio.
func PrimaryRay(x, y, width, height int, camera scene.Camera) core.Ray {
	aspect := float64(width) / float64(height)
	scale := math.Tan(camera.FOV * math.Pi / 360)

	u := (2*(float64(x)+0.5)/float64(width) - 1) * aspect * scale
	v := (1 - 2*(float64(y)+0.5)/float64(height)) * scale

	dir := core.NewVec3(u, v, 1).Rotate(camera.Yaw, camera.Pitch).Normalize()
	return core.NewRay(camera.Position, dir)
}
