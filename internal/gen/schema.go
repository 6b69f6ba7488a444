package gen

import "google.golang.org/genai"

// Structured-output schemas for each generation stage. The provider is
// asked for JSON conforming to these shapes; anything else is rejected at
// parse time.

var latLngSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"latitude":  {Type: genai.TypeNumber},
		"longitude": {Type: genai.TypeNumber},
	},
	Required: []string{"latitude", "longitude"},
}

var basicSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":               {Type: genai.TypeString},
		"location":           {Type: genai.TypeString},
		"highlight":          {Type: genai.TypeString},
		"difficultyLevel":    {Type: genai.TypeInteger, Description: "1-5"},
		"durationLabel":      {Type: genai.TypeString},
		"lengthLabel":        {Type: genai.TypeString},
		"elevationGainLabel": {Type: genai.TypeString},
		"centerCoordinates":  latLngSchema,
	},
	Required: []string{
		"name", "location", "highlight", "difficultyLevel",
		"durationLabel", "lengthLabel", "elevationGainLabel",
	},
}

var gearItemSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":   {Type: genai.TypeString},
		"reason": {Type: genai.TypeString},
	},
	Required: []string{"name"},
}

var miscSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"description": {Type: genai.TypeString},
		"story":       {Type: genai.TypeString},
		"gear": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"essential":   {Type: genai.TypeArray, Items: gearItemSchema},
				"recommended": {Type: genai.TypeArray, Items: gearItemSchema},
			},
			Required: []string{"essential", "recommended"},
		},
		"safetyTips":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"bestSeason":    {Type: genai.TypeString},
		"communityTips": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"story", "gear", "safetyTips"},
}

var routeNodeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name": {Type: genai.TypeString},
		"coordinates": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeNumber},
			Description: "[latitude, longitude]; omit entirely when the real position is unknown",
		},
		"distanceFromStart": {Type: genai.TypeString},
		"timeFromStart":     {Type: genai.TypeString},
		"description":       {Type: genai.TypeString},
		"highlightNote":     {Type: genai.TypeString},
	},
	Required: []string{"name"},
}

var routesSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"routeSegments": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":             {Type: genai.TypeString},
					"totalDistance":    {Type: genai.TypeString},
					"totalTime":        {Type: genai.TypeString},
					"description":      {Type: genai.TypeString},
					"landmarksSummary": {Type: genai.TypeString},
					"timeline":         {Type: genai.TypeArray, Items: routeNodeSchema},
				},
				Required: []string{"name", "totalDistance", "totalTime", "timeline"},
			},
		},
	},
	Required: []string{"routeSegments"},
}
