package model

import "strings"

// ValidCoord reports whether c is a usable 2-element [latitude, longitude]
// pair with the latitude in range. A nil coordinate is simply unlocated and
// handled by exclusion, not rejection.
func ValidCoord(c []float64) bool {
	if len(c) != 2 {
		return false
	}
	return c[0] >= -90 && c[0] <= 90 && c[1] >= -180 && c[1] <= 180
}

// RenderPath returns the ordered coordinates of the segment's located
// waypoints. Unlocated nodes are skipped but never reordered. Only when the
// timeline is empty does the legacy raw Path apply.
func (s RouteSegment) RenderPath() [][]float64 {
	if len(s.Timeline) == 0 {
		out := make([][]float64, 0, len(s.Path))
		for _, c := range s.Path {
			if ValidCoord(c) {
				out = append(out, []float64(c))
			}
		}
		return out
	}
	out := make([][]float64, 0, len(s.Timeline))
	for _, n := range s.Timeline {
		if ValidCoord(n.Coordinates) {
			out = append(out, []float64(n.Coordinates))
		}
	}
	return out
}

// landmarkSeparators are the delimiters seen in legacy landmark summaries.
var landmarkSeparators = []string{"→", "->", "、", ",", ","}

// FallbackLandmarks parses LandmarksSummary as a delimiter-separated name
// sequence. Advisory only: it applies when the timeline is empty and yields
// names without coordinates.
func (s RouteSegment) FallbackLandmarks() []string {
	if len(s.Timeline) > 0 || s.LandmarksSummary == "" {
		return nil
	}
	parts := []string{s.LandmarksSummary}
	for _, sep := range landmarkSeparators {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(p, sep)...)
		}
		parts = next
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
