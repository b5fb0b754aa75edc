package renderer

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/scene"
	"github.com/df07/go-phong-raytracer/pkg/shading"
)

// PixelFunc computes and stores a single pixel. Strategies call it once for
// every pixel of the image, in any order and from any goroutine.
type PixelFunc func(x, y int)

// Kernel is the per-pixel render computation. Pixel is pure; Store writes only
// the pixel's own slot of the frame buffer, so distinct pixels may be stored
// concurrently without locking.
type Kernel struct {
	scene   *scene.Scene
	width   int
	height  int
	samples int
	fb      *FrameBuffer
}

// NewKernel binds a scene snapshot and output buffer. samples must already be
// normalized to at least 1.
func NewKernel(s *scene.Scene, fb *FrameBuffer, samples int) *Kernel {
	return &Kernel{
		scene:   s,
		width:   fb.Width,
		height:  fb.Height,
		samples: samples,
		fb:      fb,
	}
}

// Pixel returns the unclamped colour of pixel (x, y)
func (k *Kernel) Pixel(x, y int) core.Color {
	ray := PrimaryRay(x, y, k.width, k.height, k.scene.Camera)
	hit := geometry.Intersect(ray, k.scene.Bodies)
	return shading.Shade(ray, hit, k.scene, k.samples)
}

// Store computes pixel (x, y) and writes its clamped, packed colour
func (k *Kernel) Store(x, y int) {
	k.fb.Pixels[y*k.width+x] = k.Pixel(x, y).Pack()
}
