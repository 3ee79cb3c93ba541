package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"persona-quiz/internal/domain"
	"persona-quiz/internal/llm"
	"persona-quiz/internal/scoring"
)

// lowTraitThreshold marca rasgos que un reporte no debería vender como fortaleza.
const lowTraitThreshold = 2.5

// judgeResponse es la respuesta estructurada del juez evaluador.
type judgeResponse struct {
	Reasoning        string `json:"reasoning"`
	FidelityScore    int    `json:"fidelity_score"`
	SpecificityScore int    `json:"specificity_score"`
}

// heuristics resume chequeos locales que no dependen del juez.
type heuristics struct {
	MentionsTopTrait bool
	LowAsStrength    []string
}

func evaluateReport(ctx context.Context, judge llm.LLMClient, sub domain.Submission, report domain.Report) (judgeResponse, heuristics, error) {
	h := heuristics{
		MentionsTopTrait: mentionsTopTrait(report, sub.TopMajor),
		LowAsStrength:    lowTraitsAsStrengths(report, sub.Scores),
	}

	raw, err := judge.Generate(ctx, buildJudgePrompt(sub, report, h))
	if err != nil {
		return judgeResponse{}, h, err
	}

	jsonStr := extractFirstJSONObject(raw)
	if jsonStr == "" {
		return judgeResponse{}, h, fmt.Errorf("juez devolvió no-json: %q", raw)
	}
	var jr judgeResponse
	if err := json.Unmarshal([]byte(jsonStr), &jr); err != nil {
		return judgeResponse{}, h, fmt.Errorf("error parseando JSON juez: %w (raw=%q)", err, jsonStr)
	}

	jr.FidelityScore = clamp1to5(jr.FidelityScore)
	jr.SpecificityScore = clamp1to5(jr.SpecificityScore)

	// Penalización dura: un rasgo bajo presentado como fortaleza.
	if len(h.LowAsStrength) > 0 && jr.FidelityScore > 2 {
		jr.FidelityScore = 2
	}
	if !h.MentionsTopTrait && jr.SpecificityScore > 3 {
		jr.SpecificityScore = 3
	}
	return jr, h, nil
}

func clamp1to5(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

func reportText(report domain.Report) string {
	parts := []string{report.Headline, report.Summary}
	parts = append(parts, report.Strengths...)
	parts = append(parts, report.GrowthAreas...)
	return strings.ToLower(strings.Join(parts, " "))
}

func mentionsTopTrait(report domain.Report, top []string) bool {
	text := reportText(report)
	for _, name := range top {
		if strings.Contains(text, strings.ToLower(name)) {
			return true
		}
	}
	return false
}

func lowTraitsAsStrengths(report domain.Report, scores scoring.ScoreResult) []string {
	strengths := strings.ToLower(strings.Join(report.Strengths, " "))
	var out []string
	for _, name := range scoring.MajorTraits {
		v, ok := scores.Traits[name]
		if !ok || v > lowTraitThreshold {
			continue
		}
		if strings.Contains(strengths, strings.ToLower(name)) {
			out = append(out, name)
		}
	}
	return out
}

func formatScores(scores scoring.ScoreResult) string {
	var parts []string
	for _, name := range scoring.MajorTraits {
		parts = append(parts, fmt.Sprintf("%s: %.2f/7", name, scores.Traits[name]))
	}
	facets := make([]string, 0, len(scores.Facets))
	for name := range scores.Facets {
		facets = append(facets, name)
	}
	sort.Strings(facets)
	for _, name := range facets {
		parts = append(parts, fmt.Sprintf("%s (faceta): %.2f/7", name, scores.Facets[name]))
	}
	return strings.Join(parts, ", ")
}

func buildJudgePrompt(sub domain.Submission, report domain.Report, h heuristics) string {
	return fmt.Sprintf(
		`Eres un psicólogo evaluador que revisa reportes de personalidad generados automáticamente.

Puntajes (escala 1-7): %s
Rasgos principales: %s
Indicadores heurísticos: menciona_rasgo_principal=%t, rasgos_bajos_como_fortaleza=%q

Reporte:
Titular: %q
Resumen: %q
Fortalezas: %q
Áreas de crecimiento: %q

Evalúa (1-5):
1) Fidelidad: ¿El reporte es consistente con los puntajes? Un rasgo bajo descrito como fortaleza => máximo 2/5.
2) Especificidad: ¿Habla de este perfil concreto o es texto genérico de horóscopo?

Responde SOLO JSON (sin markdown):
{
  "reasoning": "...",
  "fidelity_score": 0,
  "specificity_score": 0
}`,
		formatScores(sub.Scores),
		strings.Join(sub.TopMajor, ", "),
		h.MentionsTopTrait, h.LowAsStrength,
		report.Headline, report.Summary, report.Strengths, report.GrowthAreas,
	)
}

// extractFirstJSONObject devuelve el primer objeto {...} balanceado.
func extractFirstJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
