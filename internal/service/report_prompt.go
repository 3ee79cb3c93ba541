package service

import (
	"fmt"
	"strings"

	"persona-quiz/internal/domain"
	"persona-quiz/internal/scoring"
)

// BuildReportPrompt arma el prompt del redactor. El orden es siempre el declarado
// en el catálogo, así dos submissions idénticas producen el mismo texto.
func BuildReportPrompt(sub domain.Submission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Personality questionnaire results (%s schema, scale %d-%d, midpoint %d).\n",
		sub.Schema, scoring.ScaleMin, scoring.ScaleMax, scoring.ScaleMidpoint)

	fmt.Fprintf(&b, "Top Big Five dimensions: %s\n", strings.Join(sub.TopBigFive, ", "))
	fmt.Fprintf(&b, "Top major traits: %s\n", strings.Join(sub.TopMajor, ", "))

	b.WriteString("\nMajor traits:\n")
	for _, name := range scoring.MajorTraits {
		v, ok := sub.Scores.Traits[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s: %.2f", name, v)
		if facets := scoring.FacetsOf(sub.Schema, name); len(facets) > 0 {
			parts := make([]string, 0, len(facets))
			for _, f := range facets {
				parts = append(parts, fmt.Sprintf("%s %.2f", f, sub.Scores.Facets[f]))
			}
			fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
		}
		b.WriteByte('\n')
	}

	if sliders := scoring.SliderNames(sub.Schema); len(sliders) > 0 {
		b.WriteString("\nDescriptive sliders (not traits, do not rank them):\n")
		for _, name := range sliders {
			fmt.Fprintf(&b, "- %s: %.2f\n", name, sub.Scores.Sliders[name])
		}
	}

	answered := 0
	var answers strings.Builder
	for _, q := range scoring.Catalog(sub.Schema) {
		v, ok := sub.Responses[q.ID]
		if !ok {
			continue
		}
		answered++
		fmt.Fprintf(&answers, "- [%s] %s => %g\n", q.ID, q.Text, v)
	}
	if answered > 0 {
		b.WriteString("\nAnswers:\n")
		b.WriteString(answers.String())
	}
	if missing := len(scoring.Catalog(sub.Schema)) - answered; missing > 0 {
		fmt.Fprintf(&b, "\n%d questions were left unanswered and scored at the midpoint.\n", missing)
	}

	b.WriteString("\nWrite the report focusing on the top traits. Keep it under 200 words.")
	return b.String()
}
