package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	QuizSchema  string `env:"QUIZ_SCHEMA" envDefault:"facet"`

	LLMProvider   string        `env:"LLM_PROVIDER" envDefault:"openai"`
	LLMAPIKey     string        `env:"LLM_API_KEY,required"`
	LLMBaseURL    string        `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel      string        `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMMaxRetries int           `env:"LLM_MAX_RETRIES" envDefault:"3"`
	LLMRetryDelay time.Duration `env:"LLM_RETRY_DELAY" envDefault:"1s"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	ReportCacheTTL   time.Duration `env:"REPORT_CACHE_TTL" envDefault:"24h"`
	ReportRateWindow time.Duration `env:"REPORT_RATE_WINDOW" envDefault:"10m"`
	ReportRateMax    int           `env:"REPORT_RATE_MAX" envDefault:"5"`

	JWTSecret           string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"60"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
