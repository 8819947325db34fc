package detection

import (
	"encoding/json"
	"fmt"
)

// PixelBuffer is the read-only view of a binarized plan that the engine scans.
//
// Implementations must report out-of-range coordinates as light. The
// imaging.BinaryImage type satisfies this interface.
type PixelBuffer interface {
	Width() int
	Height() int
	IsDark(x, y int) bool
}

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Orientation is the scan direction a segment was found in.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// MarshalJSON encodes the orientation by name.
func (o Orientation) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON accepts the names produced by MarshalJSON.
func (o *Orientation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "horizontal":
		*o = Horizontal
	case "vertical":
		*o = Vertical
	default:
		return fmt.Errorf("unknown orientation %q", s)
	}
	return nil
}

// WallSegment is one straight run of ink found by the scanner.
//
// For horizontal segments Y1 == Y2 and the wall body extends ThicknessPx
// pixels downward from that row. For vertical segments X1 == X2 and the body
// extends rightward. X1 <= X2 and Y1 <= Y2 always hold.
type WallSegment struct {
	Orientation Orientation `json:"orientation"`
	X1          int         `json:"x1"`
	Y1          int         `json:"y1"`
	X2          int         `json:"x2"`
	Y2          int         `json:"y2"`
	ThicknessPx float64     `json:"thickness_px"`
}

// LengthPx returns the along-axis pixel extent of the segment.
func (s WallSegment) LengthPx() int {
	return (s.X2 - s.X1) + (s.Y2 - s.Y1)
}

// Endpoints returns the two ends of the segment.
func (s WallSegment) Endpoints() [2]Point {
	return [2]Point{{X: s.X1, Y: s.Y1}, {X: s.X2, Y: s.Y2}}
}

// cross returns the coordinate perpendicular to the segment's direction.
func (s WallSegment) cross() int {
	if s.Orientation == Horizontal {
		return s.Y1
	}
	return s.X1
}

// span returns the along-axis start and end coordinates.
func (s WallSegment) span() (int, int) {
	if s.Orientation == Horizontal {
		return s.X1, s.X2
	}
	return s.Y1, s.Y2
}

// ConnectedWall is a set of segments joined by endpoint proximity. Corners and
// T-junctions produce walls that mix both orientations.
type ConnectedWall struct {
	Segments []WallSegment `json:"segments"`
}

// WallType is the construction category assigned to a wall.
type WallType string

const (
	Exterior    WallType = "exterior"
	LoadBearing WallType = "load_bearing"
	Insulated   WallType = "insulated"
	Partition   WallType = "partition"
	Drywall     WallType = "drywall"
)

// AllWallTypes lists every wall type in reporting order.
var AllWallTypes = []WallType{Exterior, LoadBearing, Insulated, Partition, Drywall}

// ClassifiedWall is a connected wall with its construction type.
type ClassifiedWall struct {
	ConnectedWall
	Type           WallType `json:"wall_type"`
	AvgThicknessPx float64  `json:"avg_thickness_px"`
	OnPerimeter    bool     `json:"on_perimeter"`
}

// MeasuredWall is a classified wall converted to real-world units.
type MeasuredWall struct {
	// ID is the 1-based position of the wall in the analysis result.
	ID int `json:"id"`

	ClassifiedWall

	// LengthPx is the summed along-axis extent of all member segments.
	LengthPx         int     `json:"length_px"`
	LengthMeters     float64 `json:"length_m"`
	ThicknessMeters  float64 `json:"thickness_m"`
	AreaSquareMeters float64 `json:"area_m2"`
}

// WallTypeStatistics aggregates the measured walls of one type.
type WallTypeStatistics struct {
	Count                 int     `json:"count"`
	TotalLengthMeters     float64 `json:"total_length_m"`
	TotalAreaSquareMeters float64 `json:"total_area_m2"`
	AvgThicknessMeters    float64 `json:"avg_thickness_m"`
}

// Statistics maps each wall type to its aggregate.
type Statistics map[WallType]WallTypeStatistics

// Summary totals all walls regardless of type.
type Summary struct {
	WallCount             int     `json:"wall_count"`
	SegmentCount          int     `json:"segment_count"`
	TotalLengthMeters     float64 `json:"total_length_m"`
	TotalAreaSquareMeters float64 `json:"total_area_m2"`
}

// Result is the complete output of one pipeline run.
type Result struct {
	ImageWidth  int            `json:"image_width"`
	ImageHeight int            `json:"image_height"`
	Scale       ScaleInfo      `json:"scale"`
	Walls       []MeasuredWall `json:"walls"`
	Statistics  Statistics     `json:"statistics"`
	Summary     Summary        `json:"summary"`
}
