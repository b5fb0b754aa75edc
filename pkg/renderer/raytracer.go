package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// ErrInvalidDimensions is returned for non-positive image sizes
var ErrInvalidDimensions = errors.New("image dimensions must be positive")

// Config contains the per-render settings that are not part of the scene
type Config struct {
	Width         int
	Height        int
	ShadowSamples int // Soft shadow samples per shading point; <= 0 means 1
}

// DefaultConfig returns the benchmark resolution with hard shadows
func DefaultConfig() Config {
	return Config{
		Width:         512,
		Height:        1024,
		ShadowSamples: 1,
	}
}

// Normalize returns a copy with ShadowSamples raised to at least 1
func (c Config) Normalize() Config {
	if c.ShadowSamples < 1 {
		c.ShadowSamples = 1
	}
	return c
}

// Validate rejects configs the renderer cannot use
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	return nil
}

// Render draws the scene into a new frame buffer, visiting pixels with the
// given strategy. A nil strategy renders sequentially.
func Render(s *scene.Scene, config Config, strategy Strategy) (*FrameBuffer, error) {
	fb, err := prepare(s, config)
	if err != nil {
		return nil, err
	}
	if err := RenderInto(fb, s, config, strategy); err != nil {
		return nil, err
	}
	return fb, nil
}

// RenderInto overwrites every pixel of fb. fb must match the config's size.
func RenderInto(fb *FrameBuffer, s *scene.Scene, config Config, strategy Strategy) error {
	config = config.Normalize()
	if fb.Width != config.Width || fb.Height != config.Height {
		return fmt.Errorf("frame buffer is %dx%d, config wants %dx%d", fb.Width, fb.Height, config.Width, config.Height)
	}
	if strategy == nil {
		strategy = NewSequential()
	}

	kernel := NewKernel(s, fb, config.ShadowSamples)
	if err := strategy.Run(config.Width, config.Height, kernel.Store); err != nil {
		return fmt.Errorf("%s render: %w", strategy.Name(), err)
	}
	return nil
}

func prepare(s *scene.Scene, config Config) (*FrameBuffer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	return NewFrameBuffer(config.Width, config.Height), nil
}
