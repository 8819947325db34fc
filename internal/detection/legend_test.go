package detection

import (
	"encoding/json"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegend(t *testing.T) {
	legend, err := Legend()
	require.NoError(t, err)
	require.Len(t, legend, len(AllWallTypes))

	for i, info := range legend {
		assert.Equal(t, AllWallTypes[i], info.Type)
		assert.NotEmpty(t, info.Label)

		stroke, err := colorful.Hex(info.StrokeColor)
		require.NoError(t, err)
		fill, err := colorful.Hex(info.FillColor)
		require.NoError(t, err)

		sl, _, _ := stroke.Lab()
		fl, _, _ := fill.Lab()
		assert.Greater(t, fl, sl, "fill for %s should be lighter", info.Type)
	}
}

func TestOrientationJSON(t *testing.T) {
	data, err := json.Marshal(vseg(1, 2, 30, 5))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"orientation":"vertical"`)

	var seg WallSegment
	require.NoError(t, json.Unmarshal([]byte(`{"orientation":"horizontal","x1":1,"x2":9}`), &seg))
	assert.Equal(t, Horizontal, seg.Orientation)

	assert.Error(t, json.Unmarshal([]byte(`{"orientation":"diagonal"}`), &seg))
}
