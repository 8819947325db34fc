package detection

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// WallTypeInfo describes how a wall type is labeled and drawn by consumers
// such as overlay renderers and tender reports.
type WallTypeInfo struct {
	Type  WallType `json:"wall_type"`
	Label string   `json:"label"`

	// StrokeColor is the hex color for wall outlines.
	StrokeColor string `json:"stroke_color"`

	// FillColor is a lighter tint of StrokeColor for hatching wall bodies.
	FillColor string `json:"fill_color"`
}

var wallTypeStyles = map[WallType]struct {
	label  string
	stroke string
}{
	Exterior:    {"Exterior wall", "#1F3B73"},
	LoadBearing: {"Load-bearing wall", "#8C2D19"},
	Insulated:   {"Insulated wall", "#2E7D32"},
	Partition:   {"Partition wall", "#616161"},
	Drywall:     {"Drywall", "#B0891C"},
}

// fillTint is how far toward white a fill is blended in Lab space.
const fillTint = 0.65

// Legend returns display information for every wall type in reporting order.
func Legend() ([]WallTypeInfo, error) {
	white := colorful.Color{R: 1, G: 1, B: 1}
	out := make([]WallTypeInfo, 0, len(AllWallTypes))
	for _, t := range AllWallTypes {
		style, ok := wallTypeStyles[t]
		if !ok {
			return nil, fmt.Errorf("no legend style for wall type %s", t)
		}
		stroke, err := colorful.Hex(style.stroke)
		if err != nil {
			return nil, fmt.Errorf("legend color for %s: %w", t, err)
		}
		out = append(out, WallTypeInfo{
			Type:        t,
			Label:       style.label,
			StrokeColor: stroke.Hex(),
			FillColor:   stroke.BlendLab(white, fillTint).Clamped().Hex(),
		})
	}
	return out, nil
}
