package imaging

import (
	"errors"
	"image"
)

// DefaultDarkThreshold is the luminance below which a pixel counts as ink.
const DefaultDarkThreshold = 128.0

// ErrEmptyImage is returned when an image has no pixels to analyze.
var ErrEmptyImage = errors.New("image has zero width or height")

// BinaryImage is a black/white rendition of a plan image.
//
// A BinaryImage is immutable once built by Binarize and is safe for concurrent
// reads. Coordinates are 0-based relative to the top-left corner of the source
// image, regardless of the source image's bounds origin.
type BinaryImage struct {
	width  int
	height int
	dark   []bool
}

// Width returns the image width in pixels.
func (b *BinaryImage) Width() int { return b.width }

// Height returns the image height in pixels.
func (b *BinaryImage) Height() int { return b.height }

// IsDark reports whether the pixel at (x, y) is ink.
// Coordinates outside the image are reported as light (paper).
func (b *BinaryImage) IsDark(x, y int) bool {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return false
	}
	return b.dark[y*b.width+x]
}

// DarkCount returns the number of ink pixels in the image.
func (b *BinaryImage) DarkCount() int {
	n := 0
	for _, d := range b.dark {
		if d {
			n++
		}
	}
	return n
}

// Binarize converts a color or grayscale image to black and white.
//
// Each pixel's luminance is computed with ITU-R BT.601 weights on 8-bit
// channels (0.299*R + 0.587*G + 0.114*B). Pixels with luminance strictly below
// threshold become dark. Partially transparent pixels are composited over white
// paper first, so a transparent PNG background never reads as ink.
//
// Returns ErrEmptyImage if the image has zero width or height.
func Binarize(img image.Image, threshold float64) (*BinaryImage, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyImage
	}

	out := &BinaryImage{
		width:  width,
		height: height,
		dark:   make([]bool, width*height),
	}

	// Grayscale scans are common; skip the color conversion for them
	if gray, ok := img.(*image.Gray); ok {
		for y := 0; y < height; y++ {
			row := gray.Pix[y*gray.Stride : y*gray.Stride+width]
			for x, v := range row {
				out.dark[y*width+x] = float64(v) < threshold
			}
		}
		return out, nil
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			lum := luminance(img, x+bounds.Min.X, y+bounds.Min.Y)
			out.dark[y*width+x] = lum < threshold
		}
	}
	return out, nil
}

// luminance returns the BT.601 luma of a pixel on a 0-255 scale, with the pixel
// composited over white.
func luminance(img image.Image, x, y int) float64 {
	r, g, b, a := img.At(x, y).RGBA()
	// RGBA() is alpha-premultiplied; adding the uncovered share of white
	// composites the pixel onto paper.
	paper := 0xffff - a
	r8 := float64((r + paper) >> 8)
	g8 := float64((g + paper) >> 8)
	b8 := float64((b + paper) >> 8)
	return 0.299*r8 + 0.587*g8 + 0.114*b8
}
