package domain

import (
	"time"

	"persona-quiz/internal/scoring"
)

// Submission es una corrida de scoring persistida junto con sus respuestas.
type Submission struct {
	ID          string              `json:"id"`
	Schema      scoring.Schema      `json:"schema"`
	Responses   scoring.ResponseSet `json:"responses"`
	Scores      scoring.ScoreResult `json:"scores"`
	TopBigFive  []string            `json:"top_big_five"`
	TopMajor    []string            `json:"top_major"`
	Report      *Report             `json:"report,omitempty"`
	ReportError string              `json:"report_error,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// Report es la salida estructurada esperada del LLM redactor.
type Report struct {
	Headline    string   `json:"headline"`
	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths,omitempty"`
	GrowthAreas []string `json:"growth_areas,omitempty"`
	Model       string   `json:"model,omitempty"`
	Cached      bool     `json:"cached"`
}
