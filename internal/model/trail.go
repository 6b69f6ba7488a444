// Package model defines the trail guide data model and the field-level
// merge primitives used by the staged acquisition protocol.
package model

import "github.com/twpayne/go-geom"

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GearItem is a single piece of gear with an optional reason.
type GearItem struct {
	Name   string `json:"name"`
	Reason string `json:"reason,omitempty"`
}

// GearAdvice groups gear recommendations by priority.
type GearAdvice struct {
	Essential   []GearItem `json:"essential"`
	Recommended []GearItem `json:"recommended"`
}

// RouteNode is one waypoint on a route timeline. Coordinates may be nil,
// meaning the waypoint could not be located; unlocated nodes stay in the
// ordered sequence but are excluded from path rendering.
type RouteNode struct {
	Name              string     `json:"name"`
	Coordinates       geom.Coord `json:"coordinates,omitempty"` // [latitude, longitude]
	DistanceFromStart string     `json:"distanceFromStart,omitempty"`
	TimeFromStart     string     `json:"timeFromStart,omitempty"`
	Description       string     `json:"description,omitempty"`
	HighlightNote     string     `json:"highlightNote,omitempty"`
	ImageURL          string     `json:"imageUrl,omitempty"`
}

// RouteSegment is one named walking option within a trail.
//
// When Timeline is non-empty it is the sole source of truth for map
// rendering; LandmarksSummary is advisory text. Legacy entries may carry an
// empty Timeline, in which case LandmarksSummary is parsed as a
// delimiter-separated fallback sequence (see FallbackLandmarks).
type RouteSegment struct {
	Name             string       `json:"name"`
	TotalDistance    string       `json:"totalDistance,omitempty"`
	TotalTime        string       `json:"totalTime,omitempty"`
	Description      string       `json:"description,omitempty"`
	LandmarksSummary string       `json:"landmarksSummary,omitempty"`
	Timeline         []RouteNode  `json:"timeline,omitempty"`
	Path             []geom.Coord `json:"path,omitempty"` // legacy raw path, superseded by Timeline
}

// TrailRecord is the central entity. Name is the natural key; the basic
// fields arrive first and unlock the guide, misc and route fields merge in
// asynchronously as their stages resolve.
type TrailRecord struct {
	Name               string  `json:"name"`
	Location           string  `json:"location,omitempty"`
	Highlight          string  `json:"highlight,omitempty"`
	DifficultyLevel    int     `json:"difficultyLevel,omitempty"`
	DurationLabel      string  `json:"durationLabel,omitempty"`
	LengthLabel        string  `json:"lengthLabel,omitempty"`
	ElevationGainLabel string  `json:"elevationGainLabel,omitempty"`
	CenterCoordinates  *LatLng `json:"centerCoordinates,omitempty"`

	Description   string         `json:"description,omitempty"`
	Story         string         `json:"story,omitempty"`
	Gear          *GearAdvice    `json:"gear,omitempty"`
	SafetyTips    []string       `json:"safetyTips,omitempty"`
	BestSeason    string         `json:"bestSeason,omitempty"`
	CommunityTips []string       `json:"communityTips,omitempty"`
	RouteSegments []RouteSegment `json:"routeSegments,omitempty"`
}

// BasicComplete reports whether the record carries the full basic field set.
func (r *TrailRecord) BasicComplete() bool {
	return r.Name != "" &&
		r.Location != "" &&
		r.Highlight != "" &&
		r.DifficultyLevel >= 1 && r.DifficultyLevel <= 5 &&
		r.DurationLabel != "" &&
		r.LengthLabel != "" &&
		r.ElevationGainLabel != ""
}

// FullyResolved reports whether both slow stages have contributed. Story
// stands proxy for the misc stage, RouteSegments for the routes stage; a
// terminally failed stage leaves its proxy permanently absent.
func (r *TrailRecord) FullyResolved() bool {
	return r.Story != "" && len(r.RouteSegments) > 0
}

// Clone returns a deep copy. Snapshots handed to observers and ledger
// entries must not alias the live record.
func (r *TrailRecord) Clone() TrailRecord {
	out := *r
	if r.CenterCoordinates != nil {
		c := *r.CenterCoordinates
		out.CenterCoordinates = &c
	}
	if r.Gear != nil {
		g := GearAdvice{
			Essential:   append([]GearItem(nil), r.Gear.Essential...),
			Recommended: append([]GearItem(nil), r.Gear.Recommended...),
		}
		out.Gear = &g
	}
	out.SafetyTips = append([]string(nil), r.SafetyTips...)
	out.CommunityTips = append([]string(nil), r.CommunityTips...)
	if r.RouteSegments != nil {
		out.RouteSegments = make([]RouteSegment, len(r.RouteSegments))
		for i, seg := range r.RouteSegments {
			out.RouteSegments[i] = seg.clone()
		}
	}
	return out
}

func (s RouteSegment) clone() RouteSegment {
	out := s
	if s.Timeline != nil {
		out.Timeline = make([]RouteNode, len(s.Timeline))
		for i, n := range s.Timeline {
			out.Timeline[i] = n
			if n.Coordinates != nil {
				out.Timeline[i].Coordinates = append(geom.Coord(nil), n.Coordinates...)
			}
		}
	}
	if s.Path != nil {
		out.Path = make([]geom.Coord, len(s.Path))
		for i, c := range s.Path {
			out.Path[i] = append(geom.Coord(nil), c...)
		}
	}
	return out
}
