// Package output writes rendered frames to disk and to object storage.
package output

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
)

// SavePNG writes img to path, creating the parent directory if needed
func SavePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// EncodePNG returns img encoded as PNG bytes
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := gg.NewContextForImage(img).EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Annotate draws lines of text in the top-left corner of a copy of img.
// Each line gets a dark drop shadow so it stays readable on white.
func Annotate(img image.Image, lines ...string) image.Image {
	dc := gg.NewContextForImage(img)
	const lineHeight = 14
	for i, line := range lines {
		y := float64(lineHeight * (i + 1))
		dc.SetRGB(0, 0, 0)
		dc.DrawString(line, 9, y+1)
		dc.SetRGB(1, 1, 1)
		dc.DrawString(line, 8, y)
	}
	return dc.Image()
}
