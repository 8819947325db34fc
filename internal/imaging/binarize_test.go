package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createInMemoryImage creates an in-memory test image filled with one color
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestBinarize_LuminanceThreshold(t *testing.T) {
	tests := []struct {
		name     string
		c        color.Color
		wantDark bool
	}{
		{"black", color.RGBA{0, 0, 0, 255}, true},
		{"white", color.RGBA{255, 255, 255, 255}, false},
		// 0.299*255 = 76.2
		{"pure red", color.RGBA{255, 0, 0, 255}, true},
		// 0.587*255 = 149.7
		{"pure green", color.RGBA{0, 255, 0, 255}, false},
		// 0.114*255 = 29.1
		{"pure blue", color.RGBA{0, 0, 255, 255}, true},
		{"gray 120", color.RGBA{120, 120, 120, 255}, true},
		{"gray 135", color.RGBA{135, 135, 135, 255}, false},
		{"transparent", color.RGBA{0, 0, 0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(4, 4, tt.c)
			bin, err := Binarize(img, DefaultDarkThreshold)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDark, bin.IsDark(1, 1))
		})
	}
}

func TestBinarize_Dimensions(t *testing.T) {
	img := createPatternImage(30, 20)
	bin, err := Binarize(img, DefaultDarkThreshold)
	require.NoError(t, err)
	require.Equal(t, 30, bin.Width())
	require.Equal(t, 20, bin.Height())

	// Red, blue quadrants dark; green, white light
	assert.True(t, bin.IsDark(2, 2), "red")
	assert.False(t, bin.IsDark(20, 2), "green")
	assert.True(t, bin.IsDark(2, 15), "blue")
	assert.False(t, bin.IsDark(20, 15), "white")
	assert.Equal(t, 15*10*2, bin.DarkCount())
}

func TestBinarize_OutOfBoundsIsLight(t *testing.T) {
	bin, err := Binarize(createInMemoryImage(5, 5, color.Black), DefaultDarkThreshold)
	require.NoError(t, err)
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {5, 0}, {0, 5}} {
		assert.False(t, bin.IsDark(p.X, p.Y), "IsDark(%d,%d) outside image", p.X, p.Y)
	}
}

func TestBinarize_GrayFastPath(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 6, 3))
	for i := range gray.Pix {
		gray.Pix[i] = 255
	}
	gray.SetGray(4, 1, color.Gray{Y: 40})

	bin, err := Binarize(gray, DefaultDarkThreshold)
	require.NoError(t, err)
	assert.True(t, bin.IsDark(4, 1))
	assert.Equal(t, 1, bin.DarkCount())

	// Sub-images are re-based to (0,0)
	sub := gray.SubImage(image.Rect(3, 1, 6, 3))
	bin, err = Binarize(sub, DefaultDarkThreshold)
	require.NoError(t, err)
	assert.True(t, bin.IsDark(1, 0), "sub-image pixel (1,0) should map to source (4,1)")
}

func TestBinarize_EmptyImage(t *testing.T) {
	_, err := Binarize(image.NewRGBA(image.Rect(0, 0, 0, 10)), DefaultDarkThreshold)
	assert.ErrorIs(t, err, ErrEmptyImage)
}
