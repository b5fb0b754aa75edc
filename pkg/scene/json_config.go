package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Triple is a JSON [x, y, z] or [r, g, b] array
type Triple [3]float64

func (t Triple) vec() core.Vec3 { return core.NewVec3(t[0], t[1], t[2]) }

func (t Triple) color() core.Color { return core.NewColor(t[0], t[1], t[2]) }

func tripleOf(v core.Vec3) Triple { return Triple{v.X, v.Y, v.Z} }

func tripleOfColor(c core.Color) Triple { return Triple{c.R, c.G, c.B} }

type CameraCfg struct {
	Position Triple  `json:"position"`
	Yaw      float64 `json:"yaw,omitempty"`
	Pitch    float64 `json:"pitch,omitempty"`
	FOV      float64 `json:"fov,omitempty"` // defaults to 60
}

type LightCfg struct {
	Position Triple  `json:"position"`
	Radius   float64 `json:"radius,omitempty"`
	Color    *Triple `json:"color,omitempty"` // defaults to white
}

type BodyCfg struct {
	Type         string  `json:"type"`
	Position     Triple  `json:"position"`
	Size         float64 `json:"size"`
	Color        Triple  `json:"color"`
	Reflectivity float64 `json:"reflectivity,omitempty"`
}

// Config is the on-disk form of a Scene
type Config struct {
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	Camera      CameraCfg `json:"camera"`
	Light       LightCfg  `json:"light"`
	Background  Triple    `json:"background"`
	Bodies      []BodyCfg `json:"bodies"`
}

// Load reads and validates a JSON scene file
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene %s: %w", path, err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a JSON scene and validates it
func Parse(r io.Reader) (*Scene, error) {
	var cfg Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	s, err := cfg.Scene()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Scene converts the config into a Scene, filling in defaults
func (c Config) Scene() (*Scene, error) {
	fov := c.Camera.FOV
	if fov == 0 {
		fov = 60
	}
	lightColor := core.White
	if c.Light.Color != nil {
		lightColor = c.Light.Color.color()
	}

	s := &Scene{
		Camera: Camera{
			Position: c.Camera.Position.vec(),
			Yaw:      c.Camera.Yaw,
			Pitch:    c.Camera.Pitch,
			FOV:      fov,
		},
		Light: PointLight{
			Position: c.Light.Position.vec(),
			Radius:   c.Light.Radius,
			Color:    lightColor,
		},
		Background: c.Background.color(),
		Bodies:     make([]Body, 0, len(c.Bodies)),
	}

	for i, b := range c.Bodies {
		t, err := ParseBodyType(b.Type)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		s.Bodies = append(s.Bodies, Body{
			Type:         t,
			Position:     b.Position.vec(),
			Size:         b.Size,
			Color:        b.Color.color(),
			Reflectivity: b.Reflectivity,
		})
	}
	return s, nil
}

// ConfigOf converts a Scene back into its on-disk form
func ConfigOf(s *Scene) Config {
	lightColor := tripleOfColor(s.Light.Color)
	cfg := Config{
		Camera: CameraCfg{
			Position: tripleOf(s.Camera.Position),
			Yaw:      s.Camera.Yaw,
			Pitch:    s.Camera.Pitch,
			FOV:      s.Camera.FOV,
		},
		Light: LightCfg{
			Position: tripleOf(s.Light.Position),
			Radius:   s.Light.Radius,
			Color:    &lightColor,
		},
		Background: tripleOfColor(s.Background),
	}
	for _, b := range s.Bodies {
		cfg.Bodies = append(cfg.Bodies, BodyCfg{
			Type:         b.Type.String(),
			Position:     tripleOf(b.Position),
			Size:         b.Size,
			Color:        tripleOfColor(b.Color),
			Reflectivity: b.Reflectivity,
		})
	}
	return cfg
}

// Save writes the scene as indented JSON
func Save(w io.Writer, s *Scene) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ConfigOf(s))
}
