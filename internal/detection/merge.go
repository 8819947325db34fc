package detection

// Merge coalesces segments of one orientation into longer segments.
//
// Two segments merge when their cross-axis coordinates differ by at most
// MergeCrossTolerancePx, their thicknesses by at most MergeThicknessTolerancePx,
// and their along-axis extents overlap or leave a gap of at most MergeGapPx.
// The merged segment spans the union of both extents, keeps the cross-axis
// coordinate of the earlier segment and averages the two thicknesses.
//
// Segments of the other orientation are ignored. Passes repeat until one
// completes without merging anything, so chains of three or more pieces (a
// wall broken by several door openings) collapse fully. Running Merge on its
// own output returns that output unchanged.
func Merge(segments []WallSegment, orientation Orientation, cfg Config) []WallSegment {
	current := make([]WallSegment, 0, len(segments))
	for _, s := range segments {
		if s.Orientation == orientation {
			current = append(current, s)
		}
	}

	for {
		next, merged := mergePass(current, cfg)
		current = next
		if !merged {
			return current
		}
	}
}

// MergeAll merges each orientation separately and returns the horizontal
// results followed by the vertical ones.
func MergeAll(segments []WallSegment, cfg Config) []WallSegment {
	out := Merge(segments, Horizontal, cfg)
	return append(out, Merge(segments, Vertical, cfg)...)
}

// mergePass folds each segment into the first earlier result it can merge with.
func mergePass(segs []WallSegment, cfg Config) ([]WallSegment, bool) {
	out := make([]WallSegment, 0, len(segs))
	merged := false
	for _, s := range segs {
		absorbed := false
		for i := range out {
			if canMerge(out[i], s, cfg) {
				out[i] = combine(out[i], s)
				absorbed = true
				merged = true
				break
			}
		}
		if !absorbed {
			out = append(out, s)
		}
	}
	return out, merged
}

func canMerge(a, b WallSegment, cfg Config) bool {
	if a.Orientation != b.Orientation {
		return false
	}
	if absInt(a.cross()-b.cross()) > cfg.MergeCrossTolerancePx {
		return false
	}
	dt := a.ThicknessPx - b.ThicknessPx
	if dt < 0 {
		dt = -dt
	}
	if dt > cfg.MergeThicknessTolerancePx {
		return false
	}
	aStart, aEnd := a.span()
	bStart, bEnd := b.span()
	// Negative gap means the extents overlap
	gap := maxInt(aStart, bStart) - minInt(aEnd, bEnd)
	return gap <= cfg.MergeGapPx
}

func combine(a, b WallSegment) WallSegment {
	out := a
	out.ThicknessPx = (a.ThicknessPx + b.ThicknessPx) / 2
	if a.Orientation == Horizontal {
		out.X1 = minInt(a.X1, b.X1)
		out.X2 = maxInt(a.X2, b.X2)
	} else {
		out.Y1 = minInt(a.Y1, b.Y1)
		out.Y2 = maxInt(a.Y2, b.Y2)
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
