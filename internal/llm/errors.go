package llm

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrEmptyResponse = errors.New("llm empty response")
	// ErrMisconfigured marca errores de configuración; reintentar no los arregla.
	ErrMisconfigured = errors.New("llm client misconfigured")
)

// StatusError is returned when the provider answers with an HTTP error status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("llm http error: status=%d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("llm http error: status=%d", e.StatusCode)
}

// Retryable reports whether the status is worth another attempt
// (rate limits and server-side failures).
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// reportSystemPrompt fija el rol del redactor para todos los proveedores.
const reportSystemPrompt = `You are a careful personality coach. You receive scores from a Likert personality questionnaire (1 = low, 7 = high) and write a short, encouraging, non-clinical report.
Return ONLY a JSON object with this shape:
{"headline": "...", "summary": "...", "strengths": ["..."], "growth_areas": ["..."]}`
