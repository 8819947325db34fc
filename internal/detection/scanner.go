package detection

import "sort"

// run is a contiguous stretch of ink along one scan line, inclusive at both ends.
type run struct {
	start, end int
}

func (r run) length() int { return r.end - r.start + 1 }

// darkRuns returns the ink runs along a line of n pixels. A run that reaches
// the end of the line is closed there.
func darkRuns(n int, dark func(i int) bool) []run {
	var runs []run
	start := -1
	for i := 0; i < n; i++ {
		if dark(i) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, run{start: start, end: i - 1})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, run{start: start, end: n - 1})
	}
	return runs
}

// probe counts consecutive ink pixels starting at offset 0, stopping at the
// first light pixel, after limit pixels, or after avail pixels (the buffer edge).
func probe(dark func(i int) bool, avail, limit int) int {
	if avail > limit {
		avail = limit
	}
	n := 0
	for n < avail && dark(n) {
		n++
	}
	return n
}

// candidate is a scanned run that passed the thickness test.
type candidate struct {
	seg    WallSegment
	origin Point // where the thickness probe started
	length int
}

// covers reports whether candidate c is ink already accounted for by the
// accepted segment a.
//
// A parallel candidate is covered when it is another scan line through the
// same wall body. It must fall inside a's thickness band and extent, with
// unbroken ink from a's line to c's probe origin. A perpendicular
// candidate is covered when it is a cross-section of a: it sits along a's
// extent, starts on a's line (within slack pixels) and ends within a's
// thickness.
func covers(buf PixelBuffer, a WallSegment, c candidate, slack int) bool {
	t := int(a.ThicknessPx)
	line := a.cross()
	aStart, aEnd := a.span()
	cStart, cEnd := c.seg.span()

	if c.seg.Orientation == a.Orientation {
		cross := c.seg.cross()
		if cross < line || cross > line+t-1 {
			return false
		}
		if cStart < aStart || cEnd > aEnd {
			return false
		}
		return inkBetween(buf, c, line)
	}

	along := c.seg.cross()
	if along < aStart || along > aEnd {
		return false
	}
	return cStart <= line && cStart >= line-slack && cEnd >= line && cEnd <= line+t-1+slack
}

// inkBetween reports whether every pixel from line to c's probe origin, along
// c's probe direction, is ink.
func inkBetween(buf PixelBuffer, c candidate, line int) bool {
	if c.seg.Orientation == Horizontal {
		for y := line; y <= c.origin.Y; y++ {
			if !buf.IsDark(c.origin.X, y) {
				return false
			}
		}
		return true
	}
	for x := line; x <= c.origin.X; x++ {
		if !buf.IsDark(x, c.origin.Y) {
			return false
		}
	}
	return true
}

// Scan finds candidate wall segments in a binarized plan.
//
// Rows and columns are sampled every ScanStepPx pixels. On each sampled row,
// every ink run at least MinSegmentLengthPx long is probed for thickness by
// counting ink pixels downward from the run's midpoint; columns are the
// transpose, probing rightward. Probes stop at MaxThicknessPx or at the buffer
// edge. Runs whose thickness lies outside [MinThicknessPx, MaxThicknessPx] are
// dropped.
//
// A solid wall is crossed by many scan lines in both directions, so the raw
// candidates overlap heavily. Candidates are therefore accepted longest first,
// and a candidate is discarded when it is only another scan line through an
// accepted wall body or a cross-section of one (see covers). A 30px thick
// vertical wall thus yields one vertical segment instead of a dozen parallel
// copies plus a short horizontal run on every row it spans, while a separate
// wall next to it is kept even when the accepted segment's thickness probe
// overshot into a junction.
//
// The result lists horizontal segments ordered by (Y, X) followed by vertical
// segments ordered by (X, Y).
func Scan(buf PixelBuffer, cfg Config) []WallSegment {
	width, height := buf.Width(), buf.Height()
	if width <= 0 || height <= 0 {
		return []WallSegment{}
	}

	horizontal := scanRows(buf, cfg)
	vertical := scanColumns(buf, cfg)

	cands := make([]candidate, 0, len(horizontal)+len(vertical))
	cands = append(cands, horizontal...)
	cands = append(cands, vertical...)

	// Longest first; ties keep horizontal-before-vertical and scan order
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].length > cands[j].length
	})

	segments := make([]WallSegment, 0)
	for _, c := range cands {
		covered := false
		for _, a := range segments {
			if covers(buf, a, c, cfg.ScanStepPx) {
				covered = true
				break
			}
		}
		if covered {
			continue
		}
		segments = append(segments, c.seg)
	}

	sortSegments(segments)
	return segments
}

// scanRows runs the horizontal pass.
func scanRows(buf PixelBuffer, cfg Config) []candidate {
	width, height := buf.Width(), buf.Height()
	var out []candidate
	for y := 0; y < height; y += cfg.ScanStepPx {
		row := y
		for _, r := range darkRuns(width, func(x int) bool { return buf.IsDark(x, row) }) {
			if r.length() < cfg.MinSegmentLengthPx {
				continue
			}
			mid := (r.start + r.end) / 2
			t := probe(func(i int) bool { return buf.IsDark(mid, row+i) }, height-row, cfg.MaxThicknessPx)
			if !cfg.acceptsThickness(t) {
				continue
			}
			out = append(out, candidate{
				seg: WallSegment{
					Orientation: Horizontal,
					X1:          r.start,
					Y1:          row,
					X2:          r.end,
					Y2:          row,
					ThicknessPx: float64(t),
				},
				origin: Point{X: mid, Y: row},
				length: r.length(),
			})
		}
	}
	return out
}

// scanColumns runs the vertical pass.
func scanColumns(buf PixelBuffer, cfg Config) []candidate {
	width, height := buf.Width(), buf.Height()
	var out []candidate
	for x := 0; x < width; x += cfg.ScanStepPx {
		col := x
		for _, r := range darkRuns(height, func(y int) bool { return buf.IsDark(col, y) }) {
			if r.length() < cfg.MinSegmentLengthPx {
				continue
			}
			mid := (r.start + r.end) / 2
			t := probe(func(i int) bool { return buf.IsDark(col+i, mid) }, width-col, cfg.MaxThicknessPx)
			if !cfg.acceptsThickness(t) {
				continue
			}
			out = append(out, candidate{
				seg: WallSegment{
					Orientation: Vertical,
					X1:          col,
					Y1:          r.start,
					X2:          col,
					Y2:          r.end,
					ThicknessPx: float64(t),
				},
				origin: Point{X: col, Y: mid},
				length: r.length(),
			})
		}
	}
	return out
}

// sortSegments orders horizontal segments by (Y, X) ahead of vertical
// segments ordered by (X, Y).
func sortSegments(segs []WallSegment) {
	sort.SliceStable(segs, func(i, j int) bool {
		a, b := segs[i], segs[j]
		if a.Orientation != b.Orientation {
			return a.Orientation < b.Orientation
		}
		if a.cross() != b.cross() {
			return a.cross() < b.cross()
		}
		as, _ := a.span()
		bs, _ := b.span()
		return as < bs
	})
}
