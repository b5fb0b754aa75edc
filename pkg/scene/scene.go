package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Validation errors
var (
	ErrNoBodies      = errors.New("scene has no bodies")
	ErrInvalidCamera = errors.New("invalid camera")
	ErrInvalidLight  = errors.New("invalid light")
	ErrInvalidBody   = errors.New("invalid body")
)

// BodyType tags the geometry of a body. The numeric values match the flat
// scene arrays the renderer was first written against.
type BodyType int

const (
	Plane  BodyType = 0 // Horizontal plane; negative size means infinite
	Light  BodyType = 1 // Visible light glyph, a sphere drawn unshaded
	Sphere BodyType = 2
)

// String returns the lowercase name of the body type
func (t BodyType) String() string {
	switch t {
	case Plane:
		return "plane"
	case Light:
		return "light"
	case Sphere:
		return "sphere"
	default:
		return fmt.Sprintf("BodyType(%d)", int(t))
	}
}

// ParseBodyType converts a name produced by String back to a BodyType
func ParseBodyType(name string) (BodyType, error) {
	switch name {
	case "plane":
		return Plane, nil
	case "light":
		return Light, nil
	case "sphere":
		return Sphere, nil
	}
	return 0, fmt.Errorf("unknown body type %q", name)
}

// Body is a renderable primitive. Bodies are identified by their index in
// Scene.Bodies and never reference each other.
type Body struct {
	Type         BodyType
	Position     core.Vec3
	Size         float64 // Sphere radius, or plane extent (negative = infinite)
	Color        core.Color
	Reflectivity float64 // Phong specular exponent
}

// Camera is a pinhole camera looking down +Z before rotation
type Camera struct {
	Position core.Vec3
	Yaw      float64 // degrees
	Pitch    float64 // degrees
	FOV      float64 // vertical field of view, degrees
}

// PointLight is the single scene light. Radius is the soft-shadow disk size;
// zero gives a hard point light.
type PointLight struct {
	Position core.Vec3
	Radius   float64
	Color    core.Color
}

// Scene is an immutable snapshot of everything a render reads. A Scene must not
// be modified while a render that uses it is in flight.
type Scene struct {
	Camera     Camera
	Light      PointLight
	Bodies     []Body
	Background core.Color
}

// Validate rejects scenes the renderer cannot draw
func (s *Scene) Validate() error {
	if len(s.Bodies) == 0 {
		return ErrNoBodies
	}
	c := s.Camera
	if !c.Position.IsFinite() || !isFinite(c.Yaw) || !isFinite(c.Pitch) {
		return fmt.Errorf("%w: non-finite position or angles", ErrInvalidCamera)
	}
	if !(c.FOV > 0 && c.FOV < 180) {
		return fmt.Errorf("%w: field of view %v outside (0, 180)", ErrInvalidCamera, c.FOV)
	}
	l := s.Light
	if !l.Position.IsFinite() || !l.Color.IsFinite() || !isFinite(l.Radius) {
		return fmt.Errorf("%w: non-finite values", ErrInvalidLight)
	}
	if l.Radius < 0 {
		return fmt.Errorf("%w: negative radius %v", ErrInvalidLight, l.Radius)
	}
	for i, b := range s.Bodies {
		if err := b.validate(); err != nil {
			return fmt.Errorf("%w %d: %v", ErrInvalidBody, i, err)
		}
	}
	return nil
}

func (b Body) validate() error {
	if !b.Position.IsFinite() || !b.Color.IsFinite() || !isFinite(b.Size) || !isFinite(b.Reflectivity) {
		return errors.New("non-finite values")
	}
	switch b.Type {
	case Plane:
		if b.Size == 0 {
			return errors.New("plane size must be negative (infinite) or positive (bounded)")
		}
	case Sphere, Light:
		if b.Size <= 0 {
			return fmt.Errorf("%s radius must be positive, got %v", b.Type, b.Size)
		}
	default:
		return fmt.Errorf("unknown type %d", int(b.Type))
	}
	if b.Reflectivity < 0 {
		return fmt.Errorf("negative reflectivity %v", b.Reflectivity)
	}
	return nil
}

// WithLightGlyph returns a copy of the scene with a small light-coloured
// sphere drawn at the light position. The receiver is not modified.
func (s *Scene) WithLightGlyph() *Scene {
	radius := s.Light.Radius
	if radius <= 0 {
		radius = 0.05
	}
	out := *s
	out.Bodies = append(append([]Body(nil), s.Bodies...), Body{
		Type:     Light,
		Position: s.Light.Position,
		Size:     radius,
		Color:    s.Light.Color,
	})
	return &out
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
