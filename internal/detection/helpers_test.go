package detection

// rect is an inclusive block of ink.
type rect struct {
	x1, y1, x2, y2 int
}

// rectBuffer is a PixelBuffer made of solid ink rectangles on white paper.
type rectBuffer struct {
	w, h  int
	rects []rect
}

func newRectBuffer(w, h int, rects ...rect) *rectBuffer {
	return &rectBuffer{w: w, h: h, rects: rects}
}

func (b *rectBuffer) Width() int  { return b.w }
func (b *rectBuffer) Height() int { return b.h }

func (b *rectBuffer) IsDark(x, y int) bool {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return false
	}
	for _, r := range b.rects {
		if x >= r.x1 && x <= r.x2 && y >= r.y1 && y <= r.y2 {
			return true
		}
	}
	return false
}

func hseg(x1, y, x2 int, t float64) WallSegment {
	return WallSegment{Orientation: Horizontal, X1: x1, Y1: y, X2: x2, Y2: y, ThicknessPx: t}
}

func vseg(x, y1, y2 int, t float64) WallSegment {
	return WallSegment{Orientation: Vertical, X1: x, Y1: y1, X2: x, Y2: y2, ThicknessPx: t}
}
