package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero threshold", func(c *Config) { c.DarkThreshold = 0 }, "dark_threshold"},
		{"zero min thickness", func(c *Config) { c.MinThicknessPx = 0 }, "min_thickness_px"},
		{"max below min", func(c *Config) { c.MaxThicknessPx = 4 }, "max_thickness_px"},
		{"zero segment length", func(c *Config) { c.MinSegmentLengthPx = 0 }, "min_segment_length_px"},
		{"zero step", func(c *Config) { c.ScanStepPx = 0 }, "scan_step_px"},
		{"negative gap", func(c *Config) { c.MergeGapPx = -1 }, "merge tolerances"},
		{"negative connect", func(c *Config) { c.ConnectDistancePx = -1 }, "connect_distance_px"},
		{"negative margin", func(c *Config) { c.PerimeterMarginPx = -1 }, "perimeter_margin_px"},
		{"zero reference", func(c *Config) { c.ReferenceWallThicknessM = 0 }, "reference_wall_thickness_m"},
		{"empty table", func(c *Config) { c.ScaleTable = nil }, "scale_table"},
		{"zero density", func(c *Config) { c.ScaleTable[2].PixelsPerMeter = 0 }, "scale_table"},
		{"duplicate label", func(c *Config) { c.ScaleTable[1].Label = "1:50" }, "scale_table"},
		{"unknown default", func(c *Config) { c.DefaultScale = "1:75" }, "default_scale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			var cerr *ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.field, cerr.Field)
		})
	}
}
