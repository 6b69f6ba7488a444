package model

// BasicFields is the output of the basic generation stage: the minimal set
// of attributes needed to render a guide skeleton.
type BasicFields struct {
	Name               string  `json:"name"`
	Location           string  `json:"location"`
	Highlight          string  `json:"highlight"`
	DifficultyLevel    int     `json:"difficultyLevel"`
	DurationLabel      string  `json:"durationLabel"`
	LengthLabel        string  `json:"lengthLabel"`
	ElevationGainLabel string  `json:"elevationGainLabel"`
	CenterCoordinates  *LatLng `json:"centerCoordinates,omitempty"`
}

// MiscFields is the output of the misc generation stage: narrative and
// advisory content.
type MiscFields struct {
	Description   string      `json:"description,omitempty"`
	Story         string      `json:"story"`
	Gear          *GearAdvice `json:"gear,omitempty"`
	SafetyTips    []string    `json:"safetyTips,omitempty"`
	BestSeason    string      `json:"bestSeason,omitempty"`
	CommunityTips []string    `json:"communityTips,omitempty"`
}

// RouteFields is the output of the routes generation stage.
type RouteFields struct {
	RouteSegments []RouteSegment `json:"routeSegments"`
}

// NewRecord builds a trail record carrying only the basic field set. All
// misc and route fields are left absent; the partial record is handed to
// observers at the moment the basic stage resolves.
func NewRecord(b BasicFields) TrailRecord {
	return TrailRecord{
		Name:               b.Name,
		Location:           b.Location,
		Highlight:          b.Highlight,
		DifficultyLevel:    b.DifficultyLevel,
		DurationLabel:      b.DurationLabel,
		LengthLabel:        b.LengthLabel,
		ElevationGainLabel: b.ElevationGainLabel,
		CenterCoordinates:  b.CenterCoordinates,
	}
}

// ApplyTo shallow-merges the misc field set into rec. Zero-valued fields
// never clobber a populated field; a populated field wins over whatever the
// record held before. Field sets of the concurrent stages are disjoint, so
// application order between stages does not matter.
func (m MiscFields) ApplyTo(rec *TrailRecord) {
	if m.Description != "" {
		rec.Description = m.Description
	}
	if m.Story != "" {
		rec.Story = m.Story
	}
	if m.Gear != nil {
		rec.Gear = m.Gear
	}
	if len(m.SafetyTips) > 0 {
		rec.SafetyTips = m.SafetyTips
	}
	if m.BestSeason != "" {
		rec.BestSeason = m.BestSeason
	}
	if len(m.CommunityTips) > 0 {
		rec.CommunityTips = m.CommunityTips
	}
}

// ApplyTo shallow-merges the route field set into rec.
func (f RouteFields) ApplyTo(rec *TrailRecord) {
	if len(f.RouteSegments) > 0 {
		rec.RouteSegments = f.RouteSegments
	}
}
