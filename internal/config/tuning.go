// Package config loads optional tuning overrides for the wall detection engine.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ironsheep/wall-takeoff-mcp/internal/detection"
)

// maxFileSize caps tuning files at 1MB.
const maxFileSize = 1 * 1024 * 1024

// TuningConfig holds overrides for detection.Config.
//
// Every field is optional. A nil field keeps the engine default, so partial
// files are safe. Key names match the JSON names of detection.Config.
type TuningConfig struct {
	DarkThreshold      *float64 `json:"dark_threshold,omitempty"`
	MinThicknessPx     *int     `json:"min_thickness_px,omitempty"`
	MaxThicknessPx     *int     `json:"max_thickness_px,omitempty"`
	MinSegmentLengthPx *int     `json:"min_segment_length_px,omitempty"`
	ScanStepPx         *int     `json:"scan_step_px,omitempty"`

	// Merge and connect
	MergeCrossTolerancePx     *int     `json:"merge_cross_tolerance_px,omitempty"`
	MergeThicknessTolerancePx *float64 `json:"merge_thickness_tolerance_px,omitempty"`
	MergeGapPx                *int     `json:"merge_gap_px,omitempty"`
	ConnectDistancePx         *float64 `json:"connect_distance_px,omitempty"`

	// Classification
	PerimeterMarginPx         *int     `json:"perimeter_margin_px,omitempty"`
	ExteriorMinThicknessPx    *float64 `json:"exterior_min_thickness_px,omitempty"`
	InsulatedMinThicknessPx   *float64 `json:"insulated_min_thickness_px,omitempty"`
	LoadBearingMinThicknessPx *float64 `json:"load_bearing_min_thickness_px,omitempty"`
	DrywallMaxThicknessPx     *float64 `json:"drywall_max_thickness_px,omitempty"`

	// Scale
	ReferenceWallThicknessM *float64               `json:"reference_wall_thickness_m,omitempty"`
	ScaleTable              []detection.ScaleEntry `json:"scale_table,omitempty"` // replaces the whole table
	DefaultScale            *string                `json:"default_scale,omitempty"`
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file must have a .json extension and be at most 1MB. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("tuning file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat tuning file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("tuning file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open tuning file: %w", err)
	}
	defer f.Close()

	cfg := &TuningConfig{}
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tuning JSON: %w", err)
	}
	return cfg, nil
}

// Apply overlays the set fields onto base and validates the result.
// base itself is not modified.
func (t *TuningConfig) Apply(base detection.Config) (detection.Config, error) {
	out := base
	out.ScaleTable = append([]detection.ScaleEntry(nil), base.ScaleTable...)

	setFloat(&out.DarkThreshold, t.DarkThreshold)
	setInt(&out.MinThicknessPx, t.MinThicknessPx)
	setInt(&out.MaxThicknessPx, t.MaxThicknessPx)
	setInt(&out.MinSegmentLengthPx, t.MinSegmentLengthPx)
	setInt(&out.ScanStepPx, t.ScanStepPx)
	setInt(&out.MergeCrossTolerancePx, t.MergeCrossTolerancePx)
	setFloat(&out.MergeThicknessTolerancePx, t.MergeThicknessTolerancePx)
	setInt(&out.MergeGapPx, t.MergeGapPx)
	setFloat(&out.ConnectDistancePx, t.ConnectDistancePx)
	setInt(&out.PerimeterMarginPx, t.PerimeterMarginPx)
	setFloat(&out.ExteriorMinThicknessPx, t.ExteriorMinThicknessPx)
	setFloat(&out.InsulatedMinThicknessPx, t.InsulatedMinThicknessPx)
	setFloat(&out.LoadBearingMinThicknessPx, t.LoadBearingMinThicknessPx)
	setFloat(&out.DrywallMaxThicknessPx, t.DrywallMaxThicknessPx)
	setFloat(&out.ReferenceWallThicknessM, t.ReferenceWallThicknessM)
	if t.ScaleTable != nil {
		out.ScaleTable = append([]detection.ScaleEntry(nil), t.ScaleTable...)
	}
	if t.DefaultScale != nil {
		out.DefaultScale = *t.DefaultScale
	}

	if err := out.Validate(); err != nil {
		return detection.Config{}, fmt.Errorf("invalid tuning: %w", err)
	}
	return out, nil
}

// Load returns the engine configuration for a tuning file path. An empty path
// yields detection.DefaultConfig().
func Load(path string) (detection.Config, error) {
	if path == "" {
		return detection.DefaultConfig(), nil
	}
	t, err := LoadTuningConfig(path)
	if err != nil {
		return detection.Config{}, err
	}
	return t.Apply(detection.DefaultConfig())
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
