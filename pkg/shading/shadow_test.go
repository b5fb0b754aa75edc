package shading

import (
	"math"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

func blocker(x float64, radius float64) scene.Body {
	return scene.Body{Type: scene.Sphere, Position: core.NewVec3(x, 2, 0), Size: radius, Color: core.Blue, Reflectivity: 8}
}

func TestShadowFactor_Unoccluded(t *testing.T) {
	light := scene.PointLight{Position: core.NewVec3(0, 4, 0), Radius: 1, Color: core.White}
	origin := core.NewVec3(0, 0, 0)

	for _, n := range []int{1, 4, 64} {
		if f := ShadowFactor(origin, light, nil, n); f != 1 {
			t.Errorf("samples=%d: expected 1, got %f", n, f)
		}
		// A blocker off to the side is ignored
		if f := ShadowFactor(origin, light, []scene.Body{blocker(5, 0.3)}, n); f != 1 {
			t.Errorf("samples=%d: expected 1 with distant blocker, got %f", n, f)
		}
	}
}

func TestShadowFactor_FullyOccludedSingleSample(t *testing.T) {
	light := scene.PointLight{Position: core.NewVec3(0, 4, 0), Radius: 0.3, Color: core.White}
	f := ShadowFactor(core.NewVec3(0, 0, 0), light, []scene.Body{blocker(0, 0.5)}, 1)
	if f != 0 {
		t.Errorf("Expected fully shadowed, got %f", f)
	}
}

func TestShadowFactor_BlockerBehindLight(t *testing.T) {
	light := scene.PointLight{Position: core.NewVec3(0, 1, 0), Radius: 0.1, Color: core.White}
	f := ShadowFactor(core.NewVec3(0, 0, 0), light, []scene.Body{blocker(0, 0.5)}, 8)
	if f != 1 {
		t.Errorf("Blocker beyond the light must not shadow, got %f", f)
	}
}

func TestShadowFactor_ZeroRadiusIsHard(t *testing.T) {
	light := scene.PointLight{Position: core.NewVec3(0, 4, 0), Radius: 0, Color: core.White}
	for _, x := range []float64{-0.4, -0.1, 0, 0.1, 0.4} {
		f := ShadowFactor(core.NewVec3(0, 0, 0), light, []scene.Body{blocker(x, 0.3)}, 16)
		if f != 0 && f != 1 {
			t.Errorf("x=%v: expected binary shadow with a point light, got %f", x, f)
		}
	}
}

func TestShadowFactor_ConvergesWithSamples(t *testing.T) {
	light := scene.PointLight{Position: core.NewVec3(0, 4, 0), Radius: 1, Color: core.White}
	origin := core.NewVec3(0, 0, 0)

	errorFor := func(samples int) float64 {
		total := 0.0
		for x := -0.6; x <= 0.6; x += 0.1 {
			bodies := []scene.Body{blocker(x, 0.3)}
			reference := ShadowFactor(origin, light, bodies, 4096)
			total += math.Abs(ShadowFactor(origin, light, bodies, samples) - reference)
		}
		return total
	}

	coarse := errorFor(4)
	fine := errorFor(256)
	if !(fine < coarse) {
		t.Errorf("Expected error to shrink with more samples: 4 -> %f, 256 -> %f", coarse, fine)
	}

	// Penumbra: a partial blocker yields a fractional factor
	partial := ShadowFactor(origin, light, []scene.Body{blocker(0.2, 0.3)}, 256)
	if !(partial > 0 && partial < 1) {
		t.Errorf("Expected partial shadow, got %f", partial)
	}
}

func shadowScene() *scene.Scene {
	return &scene.Scene{
		Camera:     scene.Camera{Position: core.NewVec3(0, 1, -3), FOV: 60},
		Light:      scene.PointLight{Position: core.NewVec3(0, 4, 0), Radius: 0.3, Color: core.White},
		Background: core.NewColor(0.1, 0.2, 0.3),
		Bodies: []scene.Body{
			{Type: scene.Plane, Position: core.NewVec3(0, 0, 0), Size: -1, Color: core.White, Reflectivity: 8},
			blocker(0, 0.5),
		},
	}
}

func TestShade_Background(t *testing.T) {
	s := shadowScene()
	ray := core.NewRay(s.Camera.Position, core.NewVec3(0, 1, 0))
	if got := Shade(ray, geometry.NoHit, s, 1); got != s.Background {
		t.Errorf("Expected background %v, got %v", s.Background, got)
	}
}

func TestShade_FullyShadowedIsAmbientOnly(t *testing.T) {
	s := shadowScene()
	ray := core.NewRay(s.Camera.Position, core.NewVec3(0, 0, 0).Subtract(s.Camera.Position).Normalize())
	hit := geometry.Intersect(ray, s.Bodies)
	if hit.Index != 0 {
		t.Fatalf("Expected to hit the plane, got %+v", hit)
	}

	got := Shade(ray, hit, s, 1)
	want := Ambient(Resolve(ray, hit, s.Bodies), s.Light)
	if got != want {
		t.Errorf("Expected ambient only %v, got %v", want, got)
	}
	if got == core.Black {
		t.Error("Shadowed surfaces keep their ambient light")
	}
}

func TestShade_LitMatchesPhong(t *testing.T) {
	s := shadowScene()
	s.Bodies = s.Bodies[:1] // remove the blocker
	ray := core.NewRay(s.Camera.Position, core.NewVec3(0, 0, 0).Subtract(s.Camera.Position).Normalize())
	hit := geometry.Intersect(ray, s.Bodies)

	got := Shade(ray, hit, s, 4)
	want := Phong(Resolve(ray, hit, s.Bodies), s.Light, s.Camera)
	if !colorNear(got, want) {
		t.Errorf("Expected Phong colour %v, got %v", want, got)
	}
}

func TestShade_LightGlyph(t *testing.T) {
	s := shadowScene().WithLightGlyph()
	ray := core.NewRay(core.NewVec3(0, 4, -3), core.NewVec3(0, 0, 1))
	hit := geometry.Intersect(ray, s.Bodies)
	if !hit.OK() || s.Bodies[hit.Index].Type != scene.Light {
		t.Fatalf("Expected to hit the light glyph, got %+v", hit)
	}
	if got := Shade(ray, hit, s, 1); got != s.Light.Color {
		t.Errorf("Expected light colour, got %v", got)
	}
}
