package detection

import "fmt"

// ScaleEntry maps a drawing scale label to the pixel density it implies.
type ScaleEntry struct {
	Label          string  `json:"label"`
	PixelsPerMeter float64 `json:"pixels_per_meter"`
}

// Config holds every tunable threshold of the wall detection engine.
//
// The defaults reproduce the behavior tender estimators are used to. All
// classification thresholds are heuristic policy rather than physical law and
// may need adjusting per jurisdiction or drafting standard. A Config is copied
// when handed to NewPipeline, so later changes by the caller have no effect on
// a running pipeline.
type Config struct {
	// DarkThreshold is the luminance (0-255) below which a pixel is ink.
	DarkThreshold float64 `json:"dark_threshold"`

	// MinThicknessPx and MaxThicknessPx bound acceptable wall thickness.
	MinThicknessPx int `json:"min_thickness_px"`
	MaxThicknessPx int `json:"max_thickness_px"`

	// MinSegmentLengthPx is the shortest ink run considered a wall candidate.
	MinSegmentLengthPx int `json:"min_segment_length_px"`

	// ScanStepPx is the spacing between scanned rows and columns.
	ScanStepPx int `json:"scan_step_px"`

	// Merge tolerances for same-orientation segments.
	MergeCrossTolerancePx     int     `json:"merge_cross_tolerance_px"`
	MergeThicknessTolerancePx float64 `json:"merge_thickness_tolerance_px"`
	MergeGapPx                int     `json:"merge_gap_px"`

	// ConnectDistancePx is the endpoint distance that joins segments into one wall.
	ConnectDistancePx float64 `json:"connect_distance_px"`

	// PerimeterMarginPx is how close to the image edge a wall must come to
	// count as a perimeter wall.
	PerimeterMarginPx int `json:"perimeter_margin_px"`

	// Classification thresholds, in pixels of average thickness.
	ExteriorMinThicknessPx    float64 `json:"exterior_min_thickness_px"`
	InsulatedMinThicknessPx   float64 `json:"insulated_min_thickness_px"`
	LoadBearingMinThicknessPx float64 `json:"load_bearing_min_thickness_px"`
	DrywallMaxThicknessPx     float64 `json:"drywall_max_thickness_px"`

	// ReferenceWallThicknessM is the real thickness assumed for an average
	// wall when estimating scale from the drawing itself.
	ReferenceWallThicknessM float64 `json:"reference_wall_thickness_m"`

	// ScaleTable lists the known drawing scales, in preference order for ties.
	ScaleTable []ScaleEntry `json:"scale_table"`

	// DefaultScale is the ScaleTable label used when nothing can be estimated.
	DefaultScale string `json:"default_scale"`
}

// DefaultConfig returns the stock engine configuration.
func DefaultConfig() Config {
	return Config{
		DarkThreshold:             128,
		MinThicknessPx:            5,
		MaxThicknessPx:            100,
		MinSegmentLengthPx:        20,
		ScanStepPx:                2,
		MergeCrossTolerancePx:     5,
		MergeThicknessTolerancePx: 3,
		MergeGapPx:                10,
		ConnectDistancePx:         20,
		PerimeterMarginPx:         50,
		ExteriorMinThicknessPx:    20,
		InsulatedMinThicknessPx:   25,
		LoadBearingMinThicknessPx: 15,
		DrywallMaxThicknessPx:     8,
		ReferenceWallThicknessM:   0.25,
		ScaleTable: []ScaleEntry{
			{Label: "1:50", PixelsPerMeter: 600},
			{Label: "1:100", PixelsPerMeter: 300},
			{Label: "1:200", PixelsPerMeter: 150},
			{Label: "1:500", PixelsPerMeter: 60},
		},
		DefaultScale: "1:100",
	}
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	switch {
	case c.DarkThreshold <= 0 || c.DarkThreshold > 256:
		return &ConfigError{Field: "dark_threshold", Reason: "must be in (0, 256]"}
	case c.MinThicknessPx <= 0:
		return &ConfigError{Field: "min_thickness_px", Reason: "must be positive"}
	case c.MaxThicknessPx < c.MinThicknessPx:
		return &ConfigError{Field: "max_thickness_px", Reason: "must not be below min_thickness_px"}
	case c.MinSegmentLengthPx <= 0:
		return &ConfigError{Field: "min_segment_length_px", Reason: "must be positive"}
	case c.ScanStepPx <= 0:
		return &ConfigError{Field: "scan_step_px", Reason: "must be positive"}
	case c.MergeCrossTolerancePx < 0 || c.MergeThicknessTolerancePx < 0 || c.MergeGapPx < 0:
		return &ConfigError{Field: "merge tolerances", Reason: "must not be negative"}
	case c.ConnectDistancePx < 0:
		return &ConfigError{Field: "connect_distance_px", Reason: "must not be negative"}
	case c.PerimeterMarginPx < 0:
		return &ConfigError{Field: "perimeter_margin_px", Reason: "must not be negative"}
	case c.ReferenceWallThicknessM <= 0:
		return &ConfigError{Field: "reference_wall_thickness_m", Reason: "must be positive"}
	case len(c.ScaleTable) == 0:
		return &ConfigError{Field: "scale_table", Reason: "must not be empty"}
	}

	seen := make(map[string]bool, len(c.ScaleTable))
	for _, e := range c.ScaleTable {
		if e.Label == "" {
			return &ConfigError{Field: "scale_table", Reason: "entry with empty label"}
		}
		if e.PixelsPerMeter <= 0 {
			return &ConfigError{Field: "scale_table", Reason: fmt.Sprintf("%s: pixels_per_meter must be positive", e.Label)}
		}
		if seen[e.Label] {
			return &ConfigError{Field: "scale_table", Reason: fmt.Sprintf("duplicate label %s", e.Label)}
		}
		seen[e.Label] = true
	}
	if !seen[c.DefaultScale] {
		return &ConfigError{Field: "default_scale", Reason: fmt.Sprintf("%q is not in scale_table", c.DefaultScale)}
	}
	return nil
}

// clone returns a copy that shares no memory with c.
func (c Config) clone() Config {
	out := c
	out.ScaleTable = append([]ScaleEntry(nil), c.ScaleTable...)
	return out
}

// lookupScale finds a scale table entry by label.
func (c Config) lookupScale(label string) (ScaleEntry, bool) {
	for _, e := range c.ScaleTable {
		if e.Label == label {
			return e, true
		}
	}
	return ScaleEntry{}, false
}

// acceptsThickness reports whether a probed thickness is plausible for a wall.
func (c Config) acceptsThickness(t int) bool {
	return t >= c.MinThicknessPx && t <= c.MaxThicknessPx
}
