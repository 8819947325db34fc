package detection

import "gonum.org/v1/gonum/stat"

// Aggregate rolls measured walls up per wall type.
//
// The result always has an entry for every type in AllWallTypes; types with no
// walls are zeroed. AvgThicknessMeters is the mean over the type's walls. The
// per-type TotalAreaSquareMeters is the plain sum of the member walls' areas.
func Aggregate(walls []MeasuredWall) Statistics {
	thickness := make(map[WallType][]float64, len(AllWallTypes))
	stats := make(Statistics, len(AllWallTypes))
	for _, t := range AllWallTypes {
		stats[t] = WallTypeStatistics{}
	}

	for _, w := range walls {
		s := stats[w.Type]
		s.Count++
		s.TotalLengthMeters += w.LengthMeters
		s.TotalAreaSquareMeters += w.AreaSquareMeters
		stats[w.Type] = s
		thickness[w.Type] = append(thickness[w.Type], w.ThicknessMeters)
	}

	for t, ts := range thickness {
		s := stats[t]
		s.AvgThicknessMeters = stat.Mean(ts, nil)
		stats[t] = s
	}
	return stats
}

// Summarize totals the walls across all types.
func Summarize(walls []MeasuredWall) Summary {
	var sum Summary
	for _, w := range walls {
		sum.WallCount++
		sum.SegmentCount += len(w.Segments)
		sum.TotalLengthMeters += w.LengthMeters
		sum.TotalAreaSquareMeters += w.AreaSquareMeters
	}
	return sum
}
