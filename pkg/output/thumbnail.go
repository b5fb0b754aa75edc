package output

import (
	"image"

	"github.com/nfnt/resize"
)

// DefaultThumbnailSize bounds the longer edge of a preview image
const DefaultThumbnailSize = 128

// Thumbnail scales img down to fit within maxSize x maxSize, keeping its
// aspect ratio. Images already small enough are returned unchanged.
func Thumbnail(img image.Image, maxSize uint) image.Image {
	if maxSize == 0 {
		maxSize = DefaultThumbnailSize
	}
	return resize.Thumbnail(maxSize, maxSize, img, resize.Bilinear)
}
