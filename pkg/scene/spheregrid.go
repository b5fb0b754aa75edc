package scene

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * math.Pi / 180.0

	// OKLCH -> OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB -> LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS -> linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewColor(r, g, blue).Clamp(0, 1)
}

// gridReflectivity cycles the specular exponent along the grid diagonals
var gridReflectivity = [...]float64{8, 16, 32}

// NewSphereGridScene creates a gridSize x gridSize field of spheres on a grey
// ground plane. It exists to stress the linear body scan.
func NewSphereGridScene(gridSize int) *Scene {
	if gridSize < 1 {
		gridSize = 1
	}

	s := &Scene{
		Camera: Camera{
			Position: core.NewVec3(0, 4, -10),
			Pitch:    20,
			FOV:      60,
		},
		Light: PointLight{
			Position: core.NewVec3(-4, 8, -6),
			Radius:   0.5,
			Color:    core.NewColor(1, 0.97, 0.9),
		},
		Background: core.NewColor(0.5, 0.7, 1.0),
		Bodies: []Body{
			{Type: Plane, Position: core.NewVec3(0, 0, 0), Size: -1, Color: core.NewColor(0.5, 0.5, 0.5), Reflectivity: 4},
		},
	}

	// Fit the grid into a 9x9 area regardless of size
	const targetArea = 9.0
	spacing := targetArea
	if gridSize > 1 {
		spacing = targetArea / float64(gridSize-1)
	}
	radius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2
			z := float64(j)*spacing - targetArea/2

			// Hue across X, chroma across Z
			hue := float64(i) / float64(max(1, gridSize-1)) * 360
			chroma := 0.05 + float64(j)/float64(max(1, gridSize-1))*0.2
			lightness := 0.65 + 0.1*math.Sin(float64(i+j)*0.5)

			s.Bodies = append(s.Bodies, Body{
				Type:         Sphere,
				Position:     core.NewVec3(x, radius, z),
				Size:         radius,
				Color:        oklchToRGB(lightness, chroma, hue),
				Reflectivity: gridReflectivity[(i+j)%len(gridReflectivity)],
			})
		}
	}

	return s
}
