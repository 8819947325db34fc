package detection

import "gonum.org/v1/gonum/stat"

// Classify assigns a construction type to a connected wall.
//
// The average thickness is the mean of the member segment thicknesses. A wall
// is on the perimeter when any segment coordinate lies within
// PerimeterMarginPx of any image edge. The decision itself is made by
// ClassifyThickness.
func Classify(wall ConnectedWall, width, height int, cfg Config) ClassifiedWall {
	avg := averageThickness(wall.Segments)
	perimeter := onPerimeter(wall.Segments, width, height, cfg.PerimeterMarginPx)
	return ClassifiedWall{
		ConnectedWall:  wall,
		Type:           ClassifyThickness(avg, perimeter, cfg),
		AvgThicknessPx: avg,
		OnPerimeter:    perimeter,
	}
}

// ClassifyThickness maps an average thickness and perimeter flag to a wall type.
// The first matching rule wins:
//
//  1. on the perimeter and at least ExteriorMinThicknessPx: Exterior
//  2. at least InsulatedMinThicknessPx: Insulated
//  3. at least LoadBearingMinThicknessPx: LoadBearing
//  4. at most DrywallMaxThicknessPx: Drywall
//  5. anything else: Partition
func ClassifyThickness(avgThicknessPx float64, onPerimeter bool, cfg Config) WallType {
	switch {
	case onPerimeter && avgThicknessPx >= cfg.ExteriorMinThicknessPx:
		return Exterior
	case avgThicknessPx >= cfg.InsulatedMinThicknessPx:
		return Insulated
	case avgThicknessPx >= cfg.LoadBearingMinThicknessPx:
		return LoadBearing
	case avgThicknessPx <= cfg.DrywallMaxThicknessPx:
		return Drywall
	default:
		return Partition
	}
}

func averageThickness(segs []WallSegment) float64 {
	if len(segs) == 0 {
		return 0
	}
	ts := make([]float64, len(segs))
	for i, s := range segs {
		ts[i] = s.ThicknessPx
	}
	return stat.Mean(ts, nil)
}

// onPerimeter reports whether any segment coordinate is within margin pixels of
// an image edge.
func onPerimeter(segs []WallSegment, width, height, margin int) bool {
	right := width - 1 - margin
	bottom := height - 1 - margin
	for _, s := range segs {
		if s.X1 <= margin || s.Y1 <= margin || s.X2 >= right || s.Y2 >= bottom {
			return true
		}
	}
	return false
}
