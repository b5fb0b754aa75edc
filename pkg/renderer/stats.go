package renderer

import (
	"image"
	"time"
)

// RenderStats summarises one strategy's benchmark run
type RenderStats struct {
	Strategy   string        // Strategy name
	Iterations int           // Frames rendered
	Total      time.Duration // Wall time for all frames
	PerFrame   time.Duration // Mean wall time per frame
	Pixels     int           // Pixels per frame
}

// PixelsPerSecond returns the mean pixel throughput
func (rs RenderStats) PixelsPerSecond() float64 {
	if rs.Total <= 0 {
		return 0
	}
	return float64(rs.Pixels*rs.Iterations) / rs.Total.Seconds()
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 0xffff
		}
	}
	return total / float64(bounds.Dx()*bounds.Dy())
}
