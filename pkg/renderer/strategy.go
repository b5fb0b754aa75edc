package renderer

import "math/rand"

// Strategy decides how the pixels of a width x height image are visited.
// Run must call fn exactly once for every pixel before returning. The kernel
// does not depend on order or concurrency, so every strategy yields the same
// frame buffer.
type Strategy interface {
	Name() string
	Run(width, height int, fn PixelFunc) error
}

// Sequential sweeps the image row by row on the calling goroutine
type Sequential struct{}

// NewSequential creates a sequential strategy
func NewSequential() *Sequential {
	return &Sequential{}
}

// Name returns "sequential"
func (s *Sequential) Name() string { return "sequential" }

// Run visits pixels in row-major order
func (s *Sequential) Run(width, height int, fn PixelFunc) error {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fn(x, y)
		}
	}
	return nil
}

// Reverse visits pixels from the last to the first
type Reverse struct{}

// Name returns "reverse"
func (Reverse) Name() string { return "reverse" }

// Run visits pixels in reverse row-major order
func (Reverse) Run(width, height int, fn PixelFunc) error {
	for i := width*height - 1; i >= 0; i-- {
		fn(i%width, i/width)
	}
	return nil
}

// Shuffled visits pixels in a random order fixed by Seed
type Shuffled struct {
	Seed int64
}

// Name returns "shuffled"
func (s Shuffled) Name() string { return "shuffled" }

// Run visits pixels in a seeded random permutation
func (s Shuffled) Run(width, height int, fn PixelFunc) error {
	order := rand.New(rand.NewSource(s.Seed)).Perm(width * height)
	for _, i := range order {
		fn(i%width, i/width)
	}
	return nil
}
