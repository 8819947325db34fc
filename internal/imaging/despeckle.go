package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
)

// Despeckle removes isolated scan noise with a median filter of the given radius.
//
// Scanned plans often carry dust and JPEG ringing that would otherwise show up as
// short dark runs. A radius of 1 or 2 pixels is enough for most scans; larger
// values start eroding thin drywall lines. A radius <= 0 returns img unchanged.
func Despeckle(img image.Image, radius float64) image.Image {
	if radius <= 0 {
		return img
	}
	return effect.Median(img, radius)
}
