package service

import (
	"encoding/json"
	"regexp"
	"strings"

	"persona-quiz/internal/domain"
)

var (
	fenceStartRe = regexp.MustCompile("(?is)^\\s*```(?:json)?\\s*")
	fenceEndRe   = regexp.MustCompile("(?is)\\s*```\\s*$")
)

// cleanLLMJSONResponse quita fences ```json ... ``` y BOM, dejando el contenido usable.
func cleanLLMJSONResponse(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = strings.TrimPrefix(s, "\uFEFF")
	s = fenceStartRe.ReplaceAllString(s, "")
	s = fenceEndRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// extractFirstJSONObject devuelve el primer objeto {...} balanceado, respetando strings.
func extractFirstJSONObject(input string) string {
	start := strings.IndexByte(input, '{')
	if start == -1 {
		return ""
	}

	inString := false
	escape := false
	depth := 0

	for i := start; i < len(input); i++ {
		ch := input[i]

		if inString {
			switch {
			case escape:
				escape = false
			case ch == '\\':
				escape = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}
	return ""
}

// parseReport interpreta la respuesta del LLM redactor. Si no hay JSON útil,
// el texto limpio se usa como resumen; ok es false solo cuando no queda nada.
func parseReport(raw string) (domain.Report, bool) {
	cleaned := cleanLLMJSONResponse(raw)
	if cleaned == "" {
		return domain.Report{}, false
	}

	for _, candidate := range []string{extractFirstJSONObject(cleaned), cleaned} {
		if candidate == "" {
			continue
		}
		var tmp struct {
			Headline    string   `json:"headline"`
			Summary     string   `json:"summary"`
			Strengths   []string `json:"strengths"`
			GrowthAreas []string `json:"growth_areas"`
		}
		if err := json.Unmarshal([]byte(candidate), &tmp); err != nil {
			continue
		}
		report := domain.Report{
			Headline:    strings.TrimSpace(tmp.Headline),
			Summary:     strings.TrimSpace(tmp.Summary),
			Strengths:   compactStrings(tmp.Strengths),
			GrowthAreas: compactStrings(tmp.GrowthAreas),
		}
		if report.Summary == "" && report.Headline == "" {
			continue
		}
		return report, true
	}

	if strings.HasPrefix(cleaned, "{") {
		return domain.Report{}, false
	}
	return domain.Report{Summary: cleaned}, true
}

func compactStrings(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
