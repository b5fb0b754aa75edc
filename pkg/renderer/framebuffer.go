package renderer

import (
	"image"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// FrameBuffer holds one packed 0xRRGGBB value per pixel in row-major order
type FrameBuffer struct {
	Width, Height int
	Pixels        []uint32
}

// NewFrameBuffer allocates a zeroed width x height buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}
}

// Index returns the flat index of pixel (x, y)
func (fb *FrameBuffer) Index(x, y int) int {
	return y*fb.Width + x
}

// At returns the colour stored at pixel (x, y)
func (fb *FrameBuffer) At(x, y int) core.Color {
	return core.Unpack(fb.Pixels[fb.Index(x, y)])
}

// Colors unpacks the whole buffer
func (fb *FrameBuffer) Colors() []core.Color {
	out := make([]core.Color, len(fb.Pixels))
	for i, p := range fb.Pixels {
		out[i] = core.Unpack(p)
	}
	return out
}

// Equal reports whether two buffers have the same size and identical pixels
func (fb *FrameBuffer) Equal(other *FrameBuffer) bool {
	if fb.Width != other.Width || fb.Height != other.Height || len(fb.Pixels) != len(other.Pixels) {
		return false
	}
	for i := range fb.Pixels {
		if fb.Pixels[i] != other.Pixels[i] {
			return false
		}
	}
	return true
}

// FirstDifference returns the first pixel where the buffers differ, or
// ok=false when they are equal. Buffers must be the same size.
func (fb *FrameBuffer) FirstDifference(other *FrameBuffer) (x, y int, ok bool) {
	for i := range fb.Pixels {
		if fb.Pixels[i] != other.Pixels[i] {
			return i % fb.Width, i / fb.Width, true
		}
	}
	return 0, 0, false
}

// Image converts the buffer to an opaque RGBA image
func (fb *FrameBuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, p := range fb.Pixels {
		o := i * 4
		img.Pix[o] = uint8(p >> 16)
		img.Pix[o+1] = uint8(p >> 8)
		img.Pix[o+2] = uint8(p)
		img.Pix[o+3] = 255
	}
	return img
}
