package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder (common for scanned plans)
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ImageCache provides thread-safe caching of decoded plan images.
//
// The cache stores decoded image.Image objects keyed by their file path together
// with the format name reported by the decoder. Once a plan is loaded, subsequent
// Load() calls for the same path return the cached copy without disk I/O, which
// matters when a client runs scale calibration and wall detection back to back
// on the same sheet.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or Clear().
// Floor plans scanned at high DPI are large; long-running servers should evict
// sheets they are done with. The MCP server does this for batch runs and
// through its plan_unload tool.
type ImageCache struct {
	mu      sync.RWMutex
	entries map[string]cachedImage
}

type cachedImage struct {
	img    image.Image
	format string
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		entries: make(map[string]cachedImage),
	}
}

// Load retrieves an image from the cache or decodes it from disk if not cached.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. Decode failures are
// returned to the caller; the wall detection engine is never invoked on a plan
// that could not be read.
func (c *ImageCache) Load(path string) (image.Image, error) {
	img, _, err := c.load(path)
	return img, err
}

func (c *ImageCache) load(path string) (image.Image, string, error) {
	c.mu.RLock()
	if e, ok := c.entries[path]; ok {
		c.mu.RUnlock()
		return e.img, e.format, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.entries[path] = cachedImage{img: img, format: format}
	c.mu.Unlock()

	return img, format, nil
}

// Contains reports whether path is currently cached.
func (c *ImageCache) Contains(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[path]
	return ok
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cachedImage)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// PlanInfo contains metadata about a loaded plan image.
type PlanInfo struct {
	// Path is the file path as supplied by the caller.
	Path string `json:"path"`

	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder name: "png", "jpeg", "gif", "bmp", "tiff" or "webp".
	Format string `json:"format"`

	// Grayscale is true when the decoded image is single-channel.
	Grayscale bool `json:"grayscale"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// InkRatio is the fraction of pixels darker than DefaultDarkThreshold.
	// Blank or nearly blank sheets report values close to 0.
	InkRatio float64 `json:"ink_ratio"`
}

// LoadPlanInfo loads a plan image into the cache and describes it.
//
// Unlike extension sniffing, the format is the one reported by the registered
// decoder, so a TIFF saved with a ".tif" or ".tiff" suffix reports the same.
func LoadPlanInfo(cache *ImageCache, path string) (*PlanInfo, error) {
	img, format, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	grayscale := false
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		grayscale = true
	}

	bin, err := Binarize(img, DefaultDarkThreshold)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &PlanInfo{
		Path:          path,
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		Grayscale:     grayscale,
		FileSizeBytes: stat.Size(),
		InkRatio:      float64(bin.DarkCount()) / float64(bin.Width()*bin.Height()),
	}, nil
}
