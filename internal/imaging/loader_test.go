package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// createTestImage creates a simple test image file and returns its path.
// The file is removed when the test finishes.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	return writeImage(t, "plan.png", createInMemoryImage(width, height, c), func(f *os.File, img image.Image) error {
		return png.Encode(f, img)
	})
}

// writeImage encodes img into a temp file with the given name.
func writeImage(t *testing.T, name string, img image.Image, encode func(*os.File, image.Image) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, encode(f, img))
	return path
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	require.NotNil(t, cache)
	assert.Zero(t, cache.Len())
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 100, 100, color.RGBA{255, 0, 0, 255})

	img1, err := cache.Load(imgPath)
	require.NoError(t, err)
	assert.Equal(t, 100, img1.Bounds().Dx())
	assert.Equal(t, 100, img1.Bounds().Dy())

	// Second load should return cached image
	img2, err := cache.Load(imgPath)
	require.NoError(t, err)
	assert.Same(t, img1, img2)
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	_, err := NewImageCache().Load("/nonexistent/path/to/plan.png")
	assert.Error(t, err)
}

func TestImageCache_Load_InvalidImage(t *testing.T) {
	cache := NewImageCache()

	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o600))

	_, err := cache.Load(path)
	assert.Error(t, err)
	assert.Zero(t, cache.Len(), "failed decode must not be cached")
}

func TestImageCache_ClearAndEvict(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 255, 0, 255})

	_, err := cache.Load(imgPath)
	require.NoError(t, err)
	require.True(t, cache.Contains(imgPath))

	cache.Evict(imgPath)
	assert.False(t, cache.Contains(imgPath))
	assert.Zero(t, cache.Len())

	// Evicting an unknown path is a no-op
	cache.Evict("/nonexistent/path")

	_, err = cache.Load(imgPath)
	require.NoError(t, err)
	cache.Clear()
	assert.Zero(t, cache.Len())
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})

	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(imgPath); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err, "concurrent Load")
	}
	assert.Equal(t, 1, cache.Len())
}

func TestLoadPlanInfo(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 200, 150, color.RGBA{255, 128, 64, 255})

	info, err := LoadPlanInfo(cache, imgPath)
	require.NoError(t, err)

	assert.Equal(t, 200, info.Width)
	assert.Equal(t, 150, info.Height)
	assert.Equal(t, "png", info.Format)
	assert.False(t, info.Grayscale, "RGBA image reported as grayscale")
	assert.Positive(t, info.FileSizeBytes)
	// luminance ~159, paper
	assert.Zero(t, info.InkRatio)
}

func TestLoadPlanInfo_InkRatio(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 100, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 100; x++ {
			v := uint8(255)
			if x < 25 {
				v = 0
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	path := writeImage(t, "quarter.png", img, func(f *os.File, img image.Image) error {
		return png.Encode(f, img)
	})

	info, err := LoadPlanInfo(NewImageCache(), path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, info.InkRatio)
	assert.True(t, info.Grayscale)
}

func TestLoadPlanInfo_ExtendedFormats(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 12, 8))

	tests := []struct {
		name   string
		file   string
		encode func(f *os.File, img image.Image) error
		format string
	}{
		{"tiff", "scan.tif", func(f *os.File, img image.Image) error { return tiff.Encode(f, img, nil) }, "tiff"},
		{"bmp", "scan.bmp", func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }, "bmp"},
		// Format comes from the decoder, not the file name
		{"png misnamed", "scan.xyz", func(f *os.File, img image.Image) error { return png.Encode(f, img) }, "png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeImage(t, tt.file, gray, tt.encode)

			info, err := LoadPlanInfo(NewImageCache(), path)
			require.NoError(t, err)
			assert.Equal(t, tt.format, info.Format)
			assert.Equal(t, 12, info.Width)
			assert.Equal(t, 8, info.Height)
			// an all-zero gray sheet is solid ink
			assert.Equal(t, 1.0, info.InkRatio)
		})
	}
}

func TestLoadPlanInfo_NonExistent(t *testing.T) {
	_, err := LoadPlanInfo(NewImageCache(), "/nonexistent/plan.png")
	assert.Error(t, err)
}
