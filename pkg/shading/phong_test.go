package shading

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

func colorNear(a, b core.Color) bool {
	const tolerance = 1e-9
	return math.Abs(a.R-b.R) <= tolerance && math.Abs(a.G-b.G) <= tolerance && math.Abs(a.B-b.B) <= tolerance
}

func nonNegative(c core.Color) bool {
	return c.R >= 0 && c.G >= 0 && c.B >= 0
}

func upFacing(color core.Color, reflectivity float64) Surface {
	return Surface{
		Position:     core.NewVec3(0, 0, 0),
		Normal:       core.NewVec3(0, 1, 0),
		Color:        color,
		Reflectivity: reflectivity,
		Type:         scene.Sphere,
	}
}

func TestAmbient(t *testing.T) {
	light := scene.PointLight{Position: core.NewVec3(0, 5, 0), Color: core.NewColor(1, 0.5, 1)}
	got := Ambient(upFacing(core.NewColor(1, 1, 0), 8), light)
	want := core.NewColor(0.05, 0.025, 0)
	if !colorNear(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestDiffuse(t *testing.T) {
	tests := []struct {
		name     string
		lightPos core.Vec3
		want     core.Color
	}{
		{"light overhead", core.NewVec3(0, 3, 0), core.NewColor(1, 0, 0)},
		{"light at 60 degrees", core.NewVec3(math.Sqrt(3), 1, 0), core.NewColor(0.5, 0, 0)},
		{"light grazing", core.NewVec3(4, 0, 0), core.NewColor(0, 0, 0)},
		{"light below surface", core.NewVec3(0, -3, 0), core.NewColor(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			light := scene.PointLight{Position: tt.lightPos, Color: core.White}
			got := Diffuse(upFacing(core.Red, 8), light)
			if !colorNear(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSpecular(t *testing.T) {
	light := scene.PointLight{Position: core.NewVec3(0, 2, 0), Color: core.White}

	// Camera at the light: the reflected light direction lines up with the view
	aligned := Specular(upFacing(core.Black, 16), light, scene.Camera{Position: core.NewVec3(0, 2, 0), FOV: 60})
	if !colorNear(aligned, core.NewColor(0.5, 0.5, 0.5)) {
		t.Errorf("Expected full highlight (0.5, 0.5, 0.5), got %v", aligned)
	}

	// Specular is white even on a black surface and fades off-axis
	offAxis := Specular(upFacing(core.Black, 16), light, scene.Camera{Position: core.NewVec3(1, 2, 0), FOV: 60})
	if !(offAxis.R > 0 && offAxis.R < aligned.R) {
		t.Errorf("Expected dimmer highlight off-axis, got %v", offAxis)
	}

	// Higher reflectivity tightens the highlight
	tight := Specular(upFacing(core.Black, 64), light, scene.Camera{Position: core.NewVec3(1, 2, 0), FOV: 60})
	if !(tight.R < offAxis.R) {
		t.Errorf("Expected tighter highlight with higher exponent: %v vs %v", tight, offAxis)
	}

	// Viewing from below the surface gives nothing
	below := Specular(upFacing(core.Black, 16), light, scene.Camera{Position: core.NewVec3(0, -2, 0), FOV: 60})
	if below != core.Black {
		t.Errorf("Expected no highlight, got %v", below)
	}
}

func TestPhong_IsSumOfTerms(t *testing.T) {
	s := upFacing(core.NewColor(0.2, 0.6, 0.9), 12)
	light := scene.PointLight{Position: core.NewVec3(1, 3, -1), Color: core.NewColor(1, 0.9, 0.8)}
	cam := scene.Camera{Position: core.NewVec3(0, 1, -4), FOV: 60}

	want := Ambient(s, light).Add(Diffuse(s, light)).Add(Specular(s, light, cam))
	if got := Phong(s, light, cam); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestShading_NonNegative(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	randVec := func(scale float64) core.Vec3 {
		return core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1).Multiply(scale)
	}
	randColor := func() core.Color {
		return core.NewColor(random.Float64(), random.Float64(), random.Float64())
	}

	for i := 0; i < 2000; i++ {
		normal := randVec(1).Normalize()
		if normal.Length() == 0 {
			continue
		}
		s := Surface{
			Position:     randVec(5),
			Normal:       normal,
			Color:        randColor(),
			Reflectivity: random.Float64() * 64,
		}
		light := scene.PointLight{Position: randVec(10), Color: randColor()}
		cam := scene.Camera{Position: randVec(10), FOV: 60}

		terms := map[string]core.Color{
			"ambient":  Ambient(s, light),
			"diffuse":  Diffuse(s, light),
			"specular": Specular(s, light, cam),
			"phong":    Phong(s, light, cam),
		}
		for name, c := range terms {
			if !nonNegative(c) {
				t.Fatalf("case %d: %s has a negative channel: %v", i, name, c)
			}
		}
	}
}

func TestResolve(t *testing.T) {
	bodies := []scene.Body{
		{Type: scene.Plane, Position: core.NewVec3(0, -1, 0), Size: -1, Color: core.Black, Reflectivity: 8},
		{Type: scene.Sphere, Position: core.NewVec3(0, 0, 0), Size: 1, Color: core.Green, Reflectivity: 16},
	}
	ray := core.NewRay(core.NewVec3(0, 0, -4), core.NewVec3(0, 0, 1))
	hit := geometry.Intersect(ray, bodies)

	s := Resolve(ray, hit, bodies)
	if s.Position.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-9 {
		t.Errorf("Unexpected position %v", s.Position)
	}
	if s.Normal.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-9 {
		t.Errorf("Unexpected normal %v", s.Normal)
	}
	if s.Color != core.Green || s.Reflectivity != 16 || s.Type != scene.Sphere {
		t.Errorf("Unexpected surface %+v", s)
	}
}
