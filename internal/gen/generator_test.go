package gen

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitlab/trailguide/internal/model"
	"github.com/summitlab/trailguide/pkg/gemini"
)

// fakeClient returns canned payloads keyed by nothing; each test swaps fn.
type fakeClient struct {
	fn func(req gemini.Request) (string, error)
}

func (f *fakeClient) GenerateJSON(_ context.Context, req gemini.Request) (string, error) {
	return f.fn(req)
}

const validBasicJSON = `{
	"name": "武功山",
	"location": "江西萍乡",
	"highlight": "高山草甸与云海日出",
	"difficultyLevel": 3,
	"durationLabel": "2天",
	"lengthLabel": "25km",
	"elevationGainLabel": "1600m",
	"centerCoordinates": {"latitude": 27.4597, "longitude": 114.1735}
}`

const validRoutesJSON = `{
	"routeSegments": [
		{
			"name": "经典两日线",
			"totalDistance": "25km",
			"totalTime": "2天",
			"timeline": [
				{"name": "龙山村", "coordinates": [27.4420, 114.1280]},
				{"name": "金顶", "coordinates": [27.4597, 114.1735]}
			]
		},
		{
			"name": "轻装一日线",
			"totalDistance": "12km",
			"totalTime": "8小时",
			"timeline": [
				{"name": "索道上站"},
				{"name": "金顶", "coordinates": [27.4597, 114.1735]}
			]
		}
	]
}`

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"leading prose", "Here you go:\n{\"a\":1}\nEnjoy!", `{"a":1}`},
		{"whitespace", "  {\"a\":1}  \n", `{"a":1}`},
		{"empty", "", ""},
		{"no object", "sorry, cannot help", "sorry, cannot help"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanJSON(tt.input))
		})
	}
}

func TestFetchBasic_Valid(t *testing.T) {
	g := New(&fakeClient{fn: func(gemini.Request) (string, error) {
		return "```json\n" + validBasicJSON + "\n```", nil
	}})

	basic, err := g.FetchBasic(context.Background(), "武功山")
	require.NoError(t, err)
	assert.Equal(t, "武功山", basic.Name)
	assert.Equal(t, 3, basic.DifficultyLevel)
	require.NotNil(t, basic.CenterCoordinates)
	assert.InDelta(t, 27.4597, basic.CenterCoordinates.Latitude, 1e-6)
}

func TestFetchBasic_DifficultyOutOfRange(t *testing.T) {
	g := New(&fakeClient{fn: func(gemini.Request) (string, error) {
		return `{"name":"x","location":"y","highlight":"z","difficultyLevel":9,
			"durationLabel":"1天","lengthLabel":"5km","elevationGainLabel":"100m"}`, nil
	}})

	_, err := g.FetchBasic(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrBadPayload))
}

func TestFetchBasic_MissingRequiredField(t *testing.T) {
	g := New(&fakeClient{fn: func(gemini.Request) (string, error) {
		return `{"name":"x","location":"y"}`, nil
	}})

	_, err := g.FetchBasic(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrBadPayload))
}

func TestFetchBasic_EmptyResponse(t *testing.T) {
	g := New(&fakeClient{fn: func(gemini.Request) (string, error) {
		return "   ", nil
	}})

	_, err := g.FetchBasic(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrEmptyResponse))
}

func TestFetchBasic_Garbage(t *testing.T) {
	g := New(&fakeClient{fn: func(gemini.Request) (string, error) {
		return `{"name": truncated`, nil
	}})

	_, err := g.FetchBasic(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrBadPayload))
}

func TestFetchMisc_RequiresStory(t *testing.T) {
	g := New(&fakeClient{fn: func(gemini.Request) (string, error) {
		return `{"safetyTips":["带够水"]}`, nil
	}})

	_, err := g.FetchMisc(context.Background(), "x", model.BasicFields{Name: "x"})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrBadPayload))
}

func TestFetchMisc_Valid(t *testing.T) {
	g := New(&fakeClient{fn: func(gemini.Request) (string, error) {
		return `{
			"story": "凌晨四点的山风裹着露气……",
			"gear": {"essential":[{"name":"登山杖","reason":"长下坡护膝"}],"recommended":[]},
			"safetyTips": ["山顶温差大,带防风外套"],
			"bestSeason": "4月至10月"
		}`, nil
	}})

	misc, err := g.FetchMisc(context.Background(), "武功山", model.BasicFields{Name: "武功山", Location: "江西萍乡"})
	require.NoError(t, err)
	assert.NotEmpty(t, misc.Story)
	require.NotNil(t, misc.Gear)
	assert.Len(t, misc.Gear.Essential, 1)
}

func TestFetchRoutes_Valid(t *testing.T) {
	g := New(&fakeClient{fn: func(gemini.Request) (string, error) {
		return validRoutesJSON, nil
	}})

	routes, err := g.FetchRoutes(context.Background(), "武功山", model.BasicFields{Name: "武功山"})
	require.NoError(t, err)
	require.Len(t, routes.RouteSegments, 2)
	assert.NotEmpty(t, routes.RouteSegments[0].Timeline)
	// Unlocated waypoints are legal.
	assert.Nil(t, routes.RouteSegments[1].Timeline[0].Coordinates)
}

func TestFetchRoutes_WrongCount(t *testing.T) {
	g := New(&fakeClient{fn: func(gemini.Request) (string, error) {
		return `{"routeSegments":[{"name":"only one","totalDistance":"5km","totalTime":"3h",
			"timeline":[{"name":"start"}]}]}`, nil
	}})

	_, err := g.FetchRoutes(context.Background(), "x", model.BasicFields{})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrBadPayload))
}

func TestFetchRoutes_EmptyTimeline(t *testing.T) {
	g := New(&fakeClient{fn: func(gemini.Request) (string, error) {
		return `{"routeSegments":[
			{"name":"a","totalDistance":"5km","totalTime":"3h","timeline":[{"name":"s"}]},
			{"name":"b","totalDistance":"8km","totalTime":"5h","timeline":[]}]}`, nil
	}})

	_, err := g.FetchRoutes(context.Background(), "x", model.BasicFields{})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrBadPayload))
}

func TestFetchRoutes_MalformedCoordinates(t *testing.T) {
	g := New(&fakeClient{fn: func(gemini.Request) (string, error) {
		return `{"routeSegments":[
			{"name":"a","totalDistance":"5km","totalTime":"3h","timeline":[{"name":"s","coordinates":[27.4]}]},
			{"name":"b","totalDistance":"8km","totalTime":"5h","timeline":[{"name":"t"}]}]}`, nil
	}})

	_, err := g.FetchRoutes(context.Background(), "x", model.BasicFields{})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrBadPayload))
}

func TestRoutesPrompt_IncludesCenter(t *testing.T) {
	var captured string
	g := New(&fakeClient{fn: func(req gemini.Request) (string, error) {
		captured = req.Prompt
		return validRoutesJSON, nil
	}})

	basic := model.BasicFields{
		Name:              "武功山",
		Location:          "江西萍乡",
		CenterCoordinates: &model.LatLng{Latitude: 27.4597, Longitude: 114.1735},
	}
	_, err := g.FetchRoutes(context.Background(), "武功山", basic)
	require.NoError(t, err)
	assert.Contains(t, captured, "27.4597")
	assert.Contains(t, captured, "两条")
}
