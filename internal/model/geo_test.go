package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twpayne/go-geom"
)

func TestValidCoord(t *testing.T) {
	assert.True(t, ValidCoord([]float64{27.4597, 114.1735}))
	assert.False(t, ValidCoord(nil))
	assert.False(t, ValidCoord([]float64{27.4597}))
	assert.False(t, ValidCoord([]float64{27.4597, 114.1735, 900}))
	assert.False(t, ValidCoord([]float64{91, 0}))
	assert.False(t, ValidCoord([]float64{0, 181}))
}

func TestRenderPath_SkipsUnlocatedKeepsOrder(t *testing.T) {
	seg := RouteSegment{Timeline: []RouteNode{
		{Name: "起点", Coordinates: geom.Coord{27.44, 114.12}},
		{Name: "无名垭口"},
		{Name: "金顶", Coordinates: geom.Coord{27.4597, 114.1735}},
	}}

	path := seg.RenderPath()
	assert.Equal(t, [][]float64{{27.44, 114.12}, {27.4597, 114.1735}}, path)
}

func TestRenderPath_LegacyPathOnlyWithoutTimeline(t *testing.T) {
	seg := RouteSegment{
		Path:     []geom.Coord{{27.44, 114.12}},
		Timeline: []RouteNode{{Name: "金顶", Coordinates: geom.Coord{27.4597, 114.1735}}},
	}
	// Timeline is the sole source of truth when present.
	assert.Equal(t, [][]float64{{27.4597, 114.1735}}, seg.RenderPath())

	seg.Timeline = nil
	assert.Equal(t, [][]float64{{27.44, 114.12}}, seg.RenderPath())
}

func TestFallbackLandmarks(t *testing.T) {
	tests := []struct {
		name string
		seg  RouteSegment
		want []string
	}{
		{
			"arrow separated",
			RouteSegment{LandmarksSummary: "龙山村→铁蹄峰→金顶"},
			[]string{"龙山村", "铁蹄峰", "金顶"},
		},
		{
			"ascii arrow",
			RouteSegment{LandmarksSummary: "start -> summit"},
			[]string{"start", "summit"},
		},
		{
			"mixed separators with spaces",
			RouteSegment{LandmarksSummary: "龙山村、铁蹄峰, 金顶"},
			[]string{"龙山村", "铁蹄峰", "金顶"},
		},
		{
			"timeline present wins",
			RouteSegment{LandmarksSummary: "a→b", Timeline: []RouteNode{{Name: "x"}}},
			nil,
		},
		{
			"empty summary",
			RouteSegment{},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.seg.FallbackLandmarks())
		})
	}
}
