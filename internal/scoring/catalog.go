package scoring

// Question is one catalog item. Reverse marks items worded against the trait
// they measure.
type Question struct {
	ID      string `json:"id" yaml:"id"`
	Text    string `json:"text" yaml:"text"`
	Reverse bool   `json:"reverse" yaml:"reverse"`
}

var simpleCatalog = []Question{
	{ID: "Q01", Text: "I feel energized after spending time with a group of people."},
	{ID: "Q02", Text: "I finish tasks before I start something new."},
	{ID: "Q03", Text: "Small setbacks can ruin my mood for the whole day.", Reverse: true},
	{ID: "Q04", Text: "I enjoy exploring unconventional or abstract ideas."},
	{ID: "Q05", Text: "I try to understand other people's point of view before I respond."},
	{ID: "Q06", Text: "I start conversations with people I do not know."},
	{ID: "Q07", Text: "I often leave things until the last minute.", Reverse: true},
	{ID: "Q08", Text: "I stay calm when plans change unexpectedly."},
	{ID: "Q09", Text: "I prefer familiar routines over new experiences.", Reverse: true},
	{ID: "Q10", Text: "I go out of my way to help others."},
	{ID: "Q11", Text: "I enjoy being the one who speaks up in a meeting."},
	{ID: "Q12", Text: "I keep my commitments even when they become inconvenient."},
	{ID: "Q13", Text: "I recover quickly when something goes wrong."},
	{ID: "Q14", Text: "I like creative activities such as writing, drawing or building things."},
	{ID: "Q15", Text: "I forgive people easily when they make mistakes."},
	{ID: "Q16", Text: "I keep going back and forth before committing to a choice.", Reverse: true},
	{ID: "Q17", Text: "I can make a firm decision with incomplete information."},
	{ID: "Q18", Text: "I am comfortable taking risks for a bigger reward."},
	{ID: "Q19", Text: "I can explain why I react the way I do."},
	{ID: "Q20", Text: "I notice my own patterns and adjust them over time."},
}

var facetCatalog = []Question{
	{ID: "Q01", Text: "I look for opportunities to spend time with friends."},
	{ID: "Q02", Text: "I prefer to keep to myself at social events.", Reverse: true},
	{ID: "Q03", Text: "I make new friends easily."},
	{ID: "Q04", Text: "I take charge when a group needs direction."},
	{ID: "Q05", Text: "I hold back my opinion to avoid standing out.", Reverse: true},
	{ID: "Q06", Text: "I keep my workspace and schedule organized."},
	{ID: "Q07", Text: "I lose track of where I put things.", Reverse: true},
	{ID: "Q08", Text: "I push through tasks even when they become tedious."},
	{ID: "Q09", Text: "I set demanding goals for myself."},
	{ID: "Q10", Text: "I worry about things that might go wrong.", Reverse: true},
	{ID: "Q11", Text: "I stay composed under pressure."},
	{ID: "Q12", Text: "I bounce back quickly after a disappointment."},
	{ID: "Q13", Text: "Criticism stays with me for days.", Reverse: true},
	{ID: "Q14", Text: "I enjoy learning how things work."},
	{ID: "Q15", Text: "I seek out books, talks or courses on unfamiliar topics."},
	{ID: "Q16", Text: "I often imagine alternative ways things could be."},
	{ID: "Q17", Text: "I find daydreaming a waste of time.", Reverse: true},
	{ID: "Q18", Text: "I feel for people who are going through a hard time."},
	{ID: "Q19", Text: "I make time to listen when someone needs to talk."},
	{ID: "Q20", Text: "I insist on getting my way in a disagreement.", Reverse: true},
	{ID: "Q21", Text: "I look for compromises that work for everyone."},
	{ID: "Q22", Text: "I make decisions quickly once I have the key facts."},
	{ID: "Q23", Text: "I postpone choices hoping the situation will decide for me.", Reverse: true},
	{ID: "Q24", Text: "I stand by my decisions once they are made."},
	{ID: "Q25", Text: "I would leave a stable position for an exciting opportunity."},
	{ID: "Q26", Text: "I avoid situations where the outcome is uncertain.", Reverse: true},
	{ID: "Q27", Text: "I understand what drives my moods."},
	{ID: "Q28", Text: "I can describe my strengths and weaknesses accurately."},
	{ID: "Q29", Text: "I prefer working deeply on one thing at a time."},
	{ID: "Q30", Text: "I like juggling several tasks at once.", Reverse: true},
	{ID: "Q31", Text: "I want feedback to be direct, even if it is blunt."},
	{ID: "Q32", Text: "I would rather hear hard truths early than late."},
	{ID: "Q33", Text: "Time alone is how I recharge."},
	{ID: "Q34", Text: "Being around people restores my energy.", Reverse: true},
}

// Catalog returns a copy of the questionnaire for schema, in declared order.
// Unknown schemas have no catalog.
func Catalog(schema Schema) []Question {
	src := catalogFor(schema)
	if src == nil {
		return nil
	}
	out := make([]Question, len(src))
	copy(out, src)
	return out
}

// IsReverse reports whether id is a reverse-scored item under schema.
// Unknown ids are not reverse-scored.
func IsReverse(schema Schema, id string) bool {
	_, ok := reverseIndex[schema][id]
	return ok
}

func catalogFor(schema Schema) []Question {
	switch schema {
	case SchemaSimple:
		return simpleCatalog
	case SchemaFacet:
		return facetCatalog
	}
	return nil
}

var reverseIndex = map[Schema]map[string]struct{}{
	SchemaSimple: reverseSet(simpleCatalog),
	SchemaFacet:  reverseSet(facetCatalog),
}

func reverseSet(questions []Question) map[string]struct{} {
	set := make(map[string]struct{})
	for _, q := range questions {
		if q.Reverse {
			set[q.ID] = struct{}{}
		}
	}
	return set
}
