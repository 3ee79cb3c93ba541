package scoring

// itemRef points at one catalog item and says whether it enters the
// aggregate reversed.
type itemRef struct {
	ID       string
	Reversed bool
}

func raw(id string) itemRef { return itemRef{ID: id} }
func rev(id string) itemRef { return itemRef{ID: id, Reversed: true} }

// group is a named aggregate computed directly from items.
type group struct {
	Name  string
	Items []itemRef
}

// composite is a named aggregate computed from previously computed facets.
type composite struct {
	Name   string
	Facets []string
}

// assignment is the full scoring table for one schema. Order inside each
// slice is the declared order used for output and prompts.
type assignment struct {
	Facets      []group
	FacetTraits []composite
	ItemTraits  []group
	Sliders     []group
}

var simpleAssignment = assignment{
	ItemTraits: []group{
		{Name: Extraversion, Items: []itemRef{raw("Q01"), raw("Q06"), raw("Q11")}},
		{Name: Conscientiousness, Items: []itemRef{raw("Q02"), rev("Q07"), raw("Q12")}},
		{Name: EmotionalStability, Items: []itemRef{rev("Q03"), raw("Q08"), raw("Q13")}},
		{Name: Openness, Items: []itemRef{raw("Q04"), rev("Q09"), raw("Q14")}},
		{Name: Agreeableness, Items: []itemRef{raw("Q05"), raw("Q10"), raw("Q15")}},
		{Name: Decisiveness, Items: []itemRef{rev("Q16"), raw("Q17")}},
		{Name: RiskOrientation, Items: []itemRef{raw("Q18")}},
		{Name: SelfInsight, Items: []itemRef{raw("Q19"), raw("Q20")}},
	},
}

var facetAssignment = assignment{
	Facets: []group{
		{Name: Sociability, Items: []itemRef{raw("Q01"), rev("Q02"), raw("Q03")}},
		{Name: Assertiveness, Items: []itemRef{raw("Q04"), rev("Q05")}},
		{Name: Orderliness, Items: []itemRef{raw("Q06"), rev("Q07")}},
		{Name: Industriousness, Items: []itemRef{raw("Q08"), raw("Q09")}},
		{Name: Calmness, Items: []itemRef{rev("Q10"), raw("Q11")}},
		{Name: Resilience, Items: []itemRef{raw("Q12"), rev("Q13")}},
		{Name: Curiosity, Items: []itemRef{raw("Q14"), raw("Q15")}},
		{Name: Imagination, Items: []itemRef{raw("Q16"), rev("Q17")}},
		{Name: Compassion, Items: []itemRef{raw("Q18"), raw("Q19")}},
		{Name: Cooperation, Items: []itemRef{rev("Q20"), raw("Q21")}},
	},
	FacetTraits: []composite{
		{Name: Extraversion, Facets: []string{Sociability, Assertiveness}},
		{Name: Conscientiousness, Facets: []string{Orderliness, Industriousness}},
		{Name: EmotionalStability, Facets: []string{Calmness, Resilience}},
		{Name: Openness, Facets: []string{Curiosity, Imagination}},
		{Name: Agreeableness, Facets: []string{Compassion, Cooperation}},
	},
	ItemTraits: []group{
		{Name: Decisiveness, Items: []itemRef{raw("Q22"), rev("Q23"), raw("Q24")}},
		{Name: RiskOrientation, Items: []itemRef{raw("Q25"), rev("Q26")}},
		{Name: SelfInsight, Items: []itemRef{raw("Q27"), raw("Q28")}},
	},
	Sliders: []group{
		{Name: FocusStyle, Items: []itemRef{raw("Q29"), rev("Q30")}},
		{Name: FeedbackPreference, Items: []itemRef{raw("Q31"), raw("Q32")}},
		{Name: SocialRecharge, Items: []itemRef{raw("Q33"), rev("Q34")}},
	},
}

func assignmentFor(schema Schema) (assignment, bool) {
	switch schema {
	case SchemaSimple:
		return simpleAssignment, true
	case SchemaFacet:
		return facetAssignment, true
	}
	return assignment{}, false
}

// FacetNames lists the facets of schema in declared order.
func FacetNames(schema Schema) []string {
	a, _ := assignmentFor(schema)
	return groupNames(a.Facets)
}

// SliderNames lists the report-only sliders of schema in declared order.
func SliderNames(schema Schema) []string {
	a, _ := assignmentFor(schema)
	return groupNames(a.Sliders)
}

// FacetsOf returns the facets that average into trait under schema.
func FacetsOf(schema Schema, trait string) []string {
	a, _ := assignmentFor(schema)
	for _, c := range a.FacetTraits {
		if c.Name == trait {
			return append([]string(nil), c.Facets...)
		}
	}
	return nil
}

func groupNames(groups []group) []string {
	if len(groups) == 0 {
		return nil
	}
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	return names
}
