package core

import (
	"image/color"
	"math"
)

// Color is a linear RGB color. Channels are nominally in [0,1] but sums of
// lighting terms may exceed 1 until the final clamp at pixel write time.
type Color struct {
	R, G, B float64
}

// Common colors
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
	Red   = Color{1, 0, 0}
	Green = Color{0, 1, 0}
	Blue  = Color{0, 0, 1}
)

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the channel-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// MultiplyColor returns the channel-wise product of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// Clamp returns a color with channels clamped to [minVal, maxVal]
func (c Color) Clamp(minVal, maxVal float64) Color {
	return Color{
		R: max(minVal, min(maxVal, c.R)),
		G: max(minVal, min(maxVal, c.G)),
		B: max(minVal, min(maxVal, c.B)),
	}
}

// IsFinite reports whether every channel is a finite number
func (c Color) IsFinite() bool {
	return Vec3{c.R, c.G, c.B}.IsFinite()
}

// Pack clamps the color to [0,1] and encodes it as 0xRRGGBB
func (c Color) Pack() uint32 {
	cl := c.Clamp(0, 1)
	return uint32(toByte(cl.R))<<16 | uint32(toByte(cl.G))<<8 | uint32(toByte(cl.B))
}

// Unpack decodes a 0xRRGGBB value produced by Pack
func Unpack(p uint32) Color {
	return Color{
		R: float64(p>>16&0xff) / 255,
		G: float64(p>>8&0xff) / 255,
		B: float64(p&0xff) / 255,
	}
}

// RGBA converts the color to an opaque 8-bit color.RGBA
func (c Color) RGBA() color.RGBA {
	p := c.Pack()
	return color.RGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: 255}
}

func toByte(v float64) uint8 {
	return uint8(math.Round(v * 255))
}
