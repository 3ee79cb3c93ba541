package llm

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// ProviderOptions agrupa lo necesario para construir un cliente.
type ProviderOptions struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	MaxAttempts int
	RetryDelay  time.Duration
}

// NewClient elige el proveedor y lo envuelve con reintentos.
func NewClient(opts ProviderOptions, logger *zap.Logger) (*RetryingClient, error) {
	var base LLMClient
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", ProviderOpenAI:
		base = NewHTTPClient(opts.BaseURL, opts.APIKey, opts.Model, logger)
	case ProviderGemini:
		base = NewGeminiClient(opts.APIKey, opts.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", opts.Provider)
	}
	return NewRetryingClient(base, opts.MaxAttempts, opts.RetryDelay, logger), nil
}
