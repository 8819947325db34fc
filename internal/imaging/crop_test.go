package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCropRegion(t *testing.T) {
	img := createPatternImage(100, 100)

	cropped, err := CropRegion(img, Region{X1: 50, Y1: 0, X2: 100, Y2: 50})
	require.NoError(t, err)

	b := cropped.Bounds()
	assert.Equal(t, image.Point{}, b.Min, "cropped origin")
	assert.Equal(t, 50, b.Dx())
	assert.Equal(t, 50, b.Dy())

	// Top-right quadrant of the pattern is green
	r, g, bl, _ := cropped.At(10, 10).RGBA()
	assert.Equal(t, [3]uint32{0, 255, 0}, [3]uint32{r >> 8, g >> 8, bl >> 8})
}

func TestCropRegion_Invalid(t *testing.T) {
	img := createInMemoryImage(100, 100, color.White)

	tests := []struct {
		name   string
		region Region
	}{
		{"x1 beyond width", Region{X1: 150, Y1: 0, X2: 200, Y2: 50}},
		{"negative origin", Region{X1: -10, Y1: 0, X2: 50, Y2: 50}},
		{"x2 past edge", Region{X1: 0, Y1: 0, X2: 101, Y2: 50}},
		{"inverted x", Region{X1: 50, Y1: 0, X2: 10, Y2: 50}},
		{"empty y", Region{X1: 0, Y1: 20, X2: 50, Y2: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CropRegion(img, tt.region)
			assert.Error(t, err)
		})
	}
}

func TestCropRegion_FullImage(t *testing.T) {
	img := createInMemoryImage(64, 48, color.Black)

	cropped, err := CropRegion(img, Region{X1: 0, Y1: 0, X2: 64, Y2: 48})
	require.NoError(t, err)
	assert.Equal(t, 64, cropped.Bounds().Dx())
	assert.Equal(t, 48, cropped.Bounds().Dy())
}
