package detection

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Scale sources reported in ScaleInfo.Source.
const (
	ScaleSourceExplicit   = "explicit"
	ScaleSourceCalibrated = "calibrated"
	ScaleSourceDefault    = "default"
)

// estimatedScaleNote is attached to every scale that was not given explicitly.
const estimatedScaleNote = "Scale estimated from typical wall thickness; quantities are approximate. " +
	"Verify against a dimensioned element before using them in tender documents."

// ScaleInfo is the pixel-to-meter conversion used for one analysis.
type ScaleInfo struct {
	RatioLabel     string  `json:"ratio_label"`
	PixelsPerMeter float64 `json:"pixels_per_meter"`

	// Source is "explicit", "calibrated" or "default".
	Source string `json:"source"`

	// Estimated is true unless the scale came from an explicit label.
	Estimated bool `json:"estimated"`

	// Note carries the approximation disclaimer for estimated scales.
	Note string `json:"note,omitempty"`

	// SampleCount is the number of thickness samples used for calibration.
	SampleCount int `json:"sample_count,omitempty"`

	// MeanSampleThicknessPx is the mean of those samples.
	MeanSampleThicknessPx float64 `json:"mean_sample_thickness_px,omitempty"`
}

// Calibrate determines the drawing scale of a plan.
//
// An explicit label found in the scale table is used as is. Any other label,
// including the empty string, falls back to estimation: the horizontal midline
// is sampled for ink runs of plausible wall thickness, their mean is assumed to
// be a wall of ReferenceWallThicknessM, and the closest table entry to the
// implied pixel density wins. With no samples the default scale is returned.
//
// Estimation is a heuristic; the returned ScaleInfo is flagged Estimated.
func Calibrate(buf PixelBuffer, explicit string, cfg Config) ScaleInfo {
	if e, ok := cfg.lookupScale(explicit); ok {
		return ScaleInfo{
			RatioLabel:     e.Label,
			PixelsPerMeter: e.PixelsPerMeter,
			Source:         ScaleSourceExplicit,
		}
	}

	samples := midlineThicknessSamples(buf, cfg)
	if len(samples) == 0 {
		def, _ := cfg.lookupScale(cfg.DefaultScale)
		return ScaleInfo{
			RatioLabel:     def.Label,
			PixelsPerMeter: def.PixelsPerMeter,
			Source:         ScaleSourceDefault,
			Estimated:      true,
			Note:           estimatedScaleNote,
		}
	}

	mean := stat.Mean(samples, nil)
	implied := mean / cfg.ReferenceWallThicknessM

	best := cfg.ScaleTable[0]
	bestDiff := math.Abs(best.PixelsPerMeter - implied)
	for _, e := range cfg.ScaleTable[1:] {
		if d := math.Abs(e.PixelsPerMeter - implied); d < bestDiff {
			best, bestDiff = e, d
		}
	}

	return ScaleInfo{
		RatioLabel:            best.Label,
		PixelsPerMeter:        best.PixelsPerMeter,
		Source:                ScaleSourceCalibrated,
		Estimated:             true,
		Note:                  estimatedScaleNote,
		SampleCount:           len(samples),
		MeanSampleThicknessPx: mean,
	}
}

// midlineThicknessSamples returns the lengths of ink runs on row height/2 that
// fall within the accepted wall thickness range.
func midlineThicknessSamples(buf PixelBuffer, cfg Config) []float64 {
	width, height := buf.Width(), buf.Height()
	if width <= 0 || height <= 0 {
		return nil
	}
	y := height / 2

	var samples []float64
	for _, r := range darkRuns(width, func(x int) bool { return buf.IsDark(x, y) }) {
		if cfg.acceptsThickness(r.length()) {
			samples = append(samples, float64(r.length()))
		}
	}
	return samples
}
