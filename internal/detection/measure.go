package detection

// Measure converts a classified wall to meters using the given scale.
//
// Length is the sum of the member segments' pixel extents, thickness is the
// wall's average thickness, both divided by the scale's pixels-per-meter.
// Area is length times thickness. A non-positive scale yields zero quantities
// rather than infinities.
func Measure(wall ClassifiedWall, scale ScaleInfo) MeasuredWall {
	lengthPx := 0
	for _, s := range wall.Segments {
		lengthPx += s.LengthPx()
	}

	m := MeasuredWall{
		ClassifiedWall: wall,
		LengthPx:       lengthPx,
	}
	if scale.PixelsPerMeter <= 0 {
		return m
	}

	m.LengthMeters = float64(lengthPx) / scale.PixelsPerMeter
	m.ThicknessMeters = wall.AvgThicknessPx / scale.PixelsPerMeter
	m.AreaSquareMeters = m.LengthMeters * m.ThicknessMeters
	return m
}
