// Package imaging loads plan images and prepares them for wall detection.
//
// This package sits between the file system and the wall detection engine. It
// decodes raster floor plans, optionally crops and denoises them, and reduces
// them to a black/white BinaryImage that the detection package scans.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// A BinaryImage is always re-based to (0,0), even when built from a sub-image.
//
// # Binarization
//
// Luminance uses ITU-R BT.601 weights (0.299*R + 0.587*G + 0.114*B). A pixel is
// ink when its luminance is below the threshold, 128 by default. Transparent
// pixels are treated as white paper.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Binarize, CropRegion and
// Despeckle are stateless and never modify their input.
//
// # Error Handling
//
// Decode failures are returned from ImageCache.Load with the underlying error
// wrapped, so callers can report them before any analysis runs. Binarize returns
// ErrEmptyImage for images with zero width or height.
package imaging
