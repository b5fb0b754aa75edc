package scene

import "github.com/df07/go-phong-raytracer/pkg/core"

// NewDefaultScene creates the benchmark scene: a black ground plane and a red,
// green and blue sphere in a row, lit from the upper left.
func NewDefaultScene() *Scene {
	return &Scene{
		Camera: Camera{
			Position: core.NewVec3(0, 0, -4),
			FOV:      60,
		},
		Light: PointLight{
			Position: core.NewVec3(-1, 0.8, -1),
			Radius:   0.3,
			Color:    core.White,
		},
		Background: core.Black,
		Bodies: []Body{
			{Type: Plane, Position: core.NewVec3(0, -1, 0), Size: -1, Color: core.Black, Reflectivity: 8},
			{Type: Sphere, Position: core.NewVec3(-1, 0, 0), Size: 0.3, Color: core.Red, Reflectivity: 8},
			{Type: Sphere, Position: core.NewVec3(0, 0, 0), Size: 0.3, Color: core.Green, Reflectivity: 16},
			{Type: Sphere, Position: core.NewVec3(1, 0, 0), Size: 0.3, Color: core.Blue, Reflectivity: 32},
		},
	}
}

// NewSingleSphereScene creates a scene with one white sphere on the camera's
// forward axis and nothing else.
func NewSingleSphereScene() *Scene {
	return &Scene{
		Camera: Camera{
			Position: core.NewVec3(0, 0, -4),
			FOV:      60,
		},
		Light: PointLight{
			Position: core.NewVec3(0, 2, -4),
			Color:    core.White,
		},
		Background: core.NewColor(0.2, 0.4, 0.6),
		Bodies: []Body{
			{Type: Sphere, Position: core.NewVec3(0, 0, 0), Size: 1, Color: core.White, Reflectivity: 16},
		},
	}
}
