// Package scoring turns Likert questionnaire responses into trait, facet and
// slider scores and ranks traits for report templating.
//
// Every function here is total: missing or malformed ratings fall back to the
// scale midpoint instead of producing an error, so incomplete submissions are
// still scored.
package scoring

import "math"

const (
	ScaleMin      = 1
	ScaleMax      = 7
	ScaleMidpoint = 4
)

// ResponseSet maps a question ID to its rating. Ratings are expected in
// [ScaleMin, ScaleMax]; any finite number is accepted as-is.
type ResponseSet map[string]float64

// ScoreResult bundles one scoring run. Facets and Sliders are nil under the
// simple schema.
type ScoreResult struct {
	Schema  Schema             `json:"schema" yaml:"schema"`
	Traits  map[string]float64 `json:"traits" yaml:"traits"`
	Facets  map[string]float64 `json:"facets,omitempty" yaml:"facets,omitempty"`
	Sliders map[string]float64 `json:"sliders,omitempty" yaml:"sliders,omitempty"`
}

// Resolve returns the rating for id, or the midpoint when it is absent or
// not finite.
func Resolve(responses ResponseSet, id string) float64 {
	v, ok := responses[id]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return ScaleMidpoint
	}
	return v
}

// Reverse is the Likert reversal 8-v of the resolved rating.
func Reverse(responses ResponseSet, id string) float64 {
	return ScaleMin + ScaleMax - Resolve(responses, id)
}

// Average is the arithmetic mean rounded half-up to two decimals.
// An empty list averages to zero.
func Average(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return round2(sum / float64(len(values)))
}

// roundEpsilon keeps values like 4.675 (stored as 4.67499...) rounding up.
const roundEpsilon = 1e-9

func round2(v float64) float64 {
	return math.Floor(v*100+0.5+roundEpsilon) / 100
}

// ComputeScores evaluates the assignment table of schema over responses.
// Unknown schemas yield a result with no scores. IDs outside the catalog are
// never read. Facet-derived traits average the already rounded facet scores.
func ComputeScores(schema Schema, responses ResponseSet) ScoreResult {
	result := ScoreResult{
		Schema: schema,
		Traits: make(map[string]float64, len(MajorTraits)),
	}
	table, ok := assignmentFor(schema)
	if !ok {
		return result
	}

	if len(table.Facets) > 0 {
		result.Facets = make(map[string]float64, len(table.Facets))
		for _, g := range table.Facets {
			result.Facets[g.Name] = scoreGroup(responses, g)
		}
	}
	for _, c := range table.FacetTraits {
		values := make([]float64, 0, len(c.Facets))
		for _, name := range c.Facets {
			values = append(values, result.Facets[name])
		}
		result.Traits[c.Name] = Average(values...)
	}
	for _, g := range table.ItemTraits {
		result.Traits[g.Name] = scoreGroup(responses, g)
	}
	if len(table.Sliders) > 0 {
		result.Sliders = make(map[string]float64, len(table.Sliders))
		for _, g := range table.Sliders {
			result.Sliders[g.Name] = scoreGroup(responses, g)
		}
	}
	return result
}

func scoreGroup(responses ResponseSet, g group) float64 {
	values := make([]float64, 0, len(g.Items))
	for _, item := range g.Items {
		if item.Reversed {
			values = append(values, Reverse(responses, item.ID))
			continue
		}
		values = append(values, Resolve(responses, item.ID))
	}
	return Average(values...)
}
