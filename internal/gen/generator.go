// Package gen runs the three independent generation stages against the
// content provider and validates their structured output.
package gen

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/summitlab/trailguide/internal/model"
	"github.com/summitlab/trailguide/pkg/gemini"
)

// Generation failures. ErrEmptyResponse covers an empty provider payload;
// ErrBadPayload covers anything that parses wrong or violates the stage's
// shape contract.
var (
	ErrEmptyResponse = eris.New("gen: empty provider response")
	ErrBadPayload    = eris.New("gen: payload does not match expected shape")
)

// Token budgets per stage. The routes stage encodes far more reasoning and
// output than the others and gets the larger budget; none of the stages
// enforce their own timeout. They run to completion or fail.
const (
	basicMaxTokens  = 1024
	miscMaxTokens   = 4096
	routesMaxTokens = 8192
)

// Generator runs staged content generation.
type Generator struct {
	client gemini.Client
}

// New creates a generator over the given provider client.
func New(client gemini.Client) *Generator {
	return &Generator{client: client}
}

// FetchBasic requests the minimal guide skeleton for a query. The caller
// awaits this before anything else; its failure is terminal for the whole
// request.
func (g *Generator) FetchBasic(ctx context.Context, query string) (*model.BasicFields, error) {
	text, err := g.client.GenerateJSON(ctx, gemini.Request{
		Prompt:          basicPrompt(query),
		Schema:          basicSchema,
		MaxOutputTokens: basicMaxTokens,
	})
	if err != nil {
		return nil, eris.Wrap(err, "gen: basic stage")
	}

	var out model.BasicFields
	if err := decodeStage(text, &out); err != nil {
		return nil, err
	}
	if err := validateBasic(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchMisc requests narrative and advisory content, contextualized by the
// already-known basic fields.
func (g *Generator) FetchMisc(ctx context.Context, query string, basic model.BasicFields) (*model.MiscFields, error) {
	text, err := g.client.GenerateJSON(ctx, gemini.Request{
		Prompt:          miscPrompt(query, basic),
		Schema:          miscSchema,
		MaxOutputTokens: miscMaxTokens,
	})
	if err != nil {
		return nil, eris.Wrap(err, "gen: misc stage")
	}

	var out model.MiscFields
	if err := decodeStage(text, &out); err != nil {
		return nil, err
	}
	if out.Story == "" {
		return nil, eris.Wrap(ErrBadPayload, "gen: misc stage missing story")
	}
	return &out, nil
}

// FetchRoutes requests exactly two distinct route options, each with a
// non-empty waypoint timeline.
func (g *Generator) FetchRoutes(ctx context.Context, query string, basic model.BasicFields) (*model.RouteFields, error) {
	text, err := g.client.GenerateJSON(ctx, gemini.Request{
		Prompt:          routesPrompt(query, basic),
		Schema:          routesSchema,
		MaxOutputTokens: routesMaxTokens,
	})
	if err != nil {
		return nil, eris.Wrap(err, "gen: routes stage")
	}

	var out model.RouteFields
	if err := decodeStage(text, &out); err != nil {
		return nil, err
	}
	if err := validateRoutes(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// decodeStage strips markdown wrapping and parses a stage payload.
func decodeStage(text string, v any) error {
	cleaned := cleanJSON(text)
	if cleaned == "" {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return eris.Wrap(ErrBadPayload, err.Error())
	}
	return nil
}

func validateBasic(b *model.BasicFields) error {
	switch {
	case b.Name == "":
		return eris.Wrap(ErrBadPayload, "gen: basic stage missing name")
	case b.Location == "" || b.Highlight == "":
		return eris.Wrap(ErrBadPayload, "gen: basic stage missing location or highlight")
	case b.DifficultyLevel < 1 || b.DifficultyLevel > 5:
		return eris.Wrapf(ErrBadPayload, "gen: difficulty %d out of range", b.DifficultyLevel)
	case b.DurationLabel == "" || b.LengthLabel == "" || b.ElevationGainLabel == "":
		return eris.Wrap(ErrBadPayload, "gen: basic stage missing stat labels")
	}
	return nil
}

func validateRoutes(f *model.RouteFields) error {
	if len(f.RouteSegments) != 2 {
		return eris.Wrapf(ErrBadPayload, "gen: expected 2 route segments, got %d", len(f.RouteSegments))
	}
	for _, seg := range f.RouteSegments {
		if seg.Name == "" {
			return eris.Wrap(ErrBadPayload, "gen: route segment missing name")
		}
		if len(seg.Timeline) == 0 {
			return eris.Wrapf(ErrBadPayload, "gen: route %q has empty timeline", seg.Name)
		}
		for _, node := range seg.Timeline {
			if node.Name == "" {
				return eris.Wrapf(ErrBadPayload, "gen: route %q has nameless waypoint", seg.Name)
			}
			if node.Coordinates != nil && !model.ValidCoord(node.Coordinates) {
				return eris.Wrapf(ErrBadPayload, "gen: waypoint %q has malformed coordinates", node.Name)
			}
		}
	}
	return nil
}

// cleanJSON strips markdown fences and extracts the outermost JSON object.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
