package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"persona-quiz/internal/domain"
	"persona-quiz/internal/llm"
)

var (
	ErrReportRateLimited  = errors.New("report rate limited")
	ErrReportUnparseable  = errors.New("report response unparseable")
	ErrReportNotAvailable = errors.New("report generation not configured")
)

// ReportService pide al LLM un reporte narrativo a partir de los scores.
type ReportService struct {
	llmClient llm.LLMClient
	model     string
	cache     ReportCache
	cacheTTL  time.Duration
	limiter   ReportRateLimiter
	logger    *zap.Logger
}

func NewReportService(
	llmClient llm.LLMClient,
	cache ReportCache,
	cacheTTL time.Duration,
	limiter ReportRateLimiter,
	logger *zap.Logger,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 24 * time.Hour
	}
	var model string
	if m, ok := llmClient.(interface{ Model() string }); ok {
		model = m.Model()
	}
	return &ReportService{
		llmClient: llmClient,
		model:     model,
		cache:     cache,
		cacheTTL:  cacheTTL,
		limiter:   limiter,
		logger:    logger,
	}
}

// Allow consulta el rate limiter; sin limiter configurado todo pasa.
func (s *ReportService) Allow(ctx context.Context, clientKey string) bool {
	if s == nil || s.limiter == nil {
		return true
	}
	return s.limiter.Allow(ctx, clientKey)
}

// Generate devuelve el reporte de la submission, desde cache si ya existe.
func (s *ReportService) Generate(ctx context.Context, sub domain.Submission) (domain.Report, error) {
	if s == nil || s.llmClient == nil {
		return domain.Report{}, ErrReportNotAvailable
	}

	key := ReportCacheKey(sub.Schema, sub.Responses)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("report cache get failed", zap.Error(err))
		} else if ok {
			cached.Cached = true
			return *cached, nil
		}
	}

	raw, err := s.llmClient.Generate(ctx, BuildReportPrompt(sub))
	if err != nil {
		return domain.Report{}, fmt.Errorf("llm generate: %w", err)
	}

	report, ok := parseReport(raw)
	if !ok {
		s.logger.Warn("unparseable report response", zap.String("submission_id", sub.ID))
		return domain.Report{}, ErrReportUnparseable
	}
	report.Model = s.model

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, report, s.cacheTTL); err != nil {
			s.logger.Warn("report cache set failed", zap.Error(err))
		}
	}
	return report, nil
}
