package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// Schema identifies which questionnaire and assignment table is in effect.
// The two schemas are alternate configurations and must not be mixed: the
// same trait name is computed differently under each one.
type Schema string

const (
	SchemaSimple Schema = "simple"
	SchemaFacet  Schema = "facet"
)

var ErrUnknownSchema = errors.New("unknown quiz schema")

// ParseSchema acepta el tag tal como llega por URL o flag.
func ParseSchema(raw string) (Schema, error) {
	switch Schema(strings.ToLower(strings.TrimSpace(raw))) {
	case SchemaSimple:
		return SchemaSimple, nil
	case SchemaFacet:
		return SchemaFacet, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSchema, raw)
}

// SchemaForCatalogSize maps a questionnaire length back to its schema.
func SchemaForCatalogSize(n int) (Schema, bool) {
	switch n {
	case len(simpleCatalog):
		return SchemaSimple, true
	case len(facetCatalog):
		return SchemaFacet, true
	}
	return "", false
}

// Trait, facet and slider names as they appear in results and prompts.
const (
	Extraversion       = "Extraversion"
	Conscientiousness  = "Conscientiousness"
	EmotionalStability = "Emotional Stability"
	Openness           = "Openness"
	Agreeableness      = "Agreeableness"
	Decisiveness       = "Decisiveness"
	RiskOrientation    = "Risk Orientation"
	SelfInsight        = "Self Insight"

	Sociability     = "Sociability"
	Assertiveness   = "Assertiveness"
	Orderliness     = "Orderliness"
	Industriousness = "Industriousness"
	Calmness        = "Calmness"
	Resilience      = "Resilience"
	Curiosity       = "Curiosity"
	Imagination     = "Imagination"
	Compassion      = "Compassion"
	Cooperation     = "Cooperation"

	FocusStyle         = "Focus Style"
	FeedbackPreference = "Feedback Preference"
	SocialRecharge     = "Social Recharge"
)

// BigFive is the declared order of the canonical dimensions. Ranking ties
// resolve in this order.
var BigFive = []string{
	Extraversion,
	Conscientiousness,
	EmotionalStability,
	Openness,
	Agreeableness,
}

// MajorTraits extends BigFive with the auxiliary dimensions used for ranking.
var MajorTraits = []string{
	Extraversion,
	Conscientiousness,
	EmotionalStability,
	Openness,
	Agreeableness,
	Decisiveness,
	RiskOrientation,
	SelfInsight,
}
