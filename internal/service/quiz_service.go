package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"persona-quiz/internal/domain"
	"persona-quiz/internal/repository"
	"persona-quiz/internal/scoring"
)

// QuizService orquesta catálogo, scoring, persistencia y reportes.
type QuizService struct {
	submissions repository.SubmissionRepository
	reports     *ReportService
	logger      *zap.Logger
	now         func() time.Time
	newID       func() string
}

var (
	ErrQuizServiceNotConfigured = errors.New("quiz service not configured")
	ErrQuizInvalidInput         = errors.New("quiz invalid input")
	ErrReportNotPersisted       = errors.New("report not persisted")
)

func NewQuizService(submissions repository.SubmissionRepository, reports *ReportService, logger *zap.Logger) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{
		submissions: submissions,
		reports:     reports,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

// Questions devuelve el catálogo estático del schema.
func (s *QuizService) Questions(schema scoring.Schema) ([]scoring.Question, error) {
	questions := scoring.Catalog(schema)
	if questions == nil {
		return nil, fmt.Errorf("%w: %w", ErrQuizInvalidInput, scoring.ErrUnknownSchema)
	}
	return questions, nil
}

// Score puntúa las respuestas y persiste la submission. Respuestas faltantes o
// no numéricas se puntúan en el punto medio; solo un body sin respuestas es inválido.
func (s *QuizService) Score(ctx context.Context, schema scoring.Schema, raw map[string]any) (domain.Submission, error) {
	if s == nil || s.submissions == nil {
		return domain.Submission{}, ErrQuizServiceNotConfigured
	}
	if scoring.Catalog(schema) == nil {
		return domain.Submission{}, fmt.Errorf("%w: %w", ErrQuizInvalidInput, scoring.ErrUnknownSchema)
	}
	if raw == nil {
		return domain.Submission{}, fmt.Errorf("%w: responses are required", ErrQuizInvalidInput)
	}

	responses := scoring.NormalizeResponses(raw)
	result := scoring.ComputeScores(schema, responses)
	sub := domain.Submission{
		ID:         s.newID(),
		Schema:     schema,
		Responses:  responses.Finite(),
		Scores:     result,
		TopBigFive: scoring.TopTwoBigFive(result),
		TopMajor:   scoring.TopThreeMajor(result),
		CreatedAt:  s.now(),
	}

	if err := s.submissions.Create(ctx, sub); err != nil {
		return domain.Submission{}, fmt.Errorf("persist submission: %w", err)
	}

	s.logger.Info("quiz scored",
		zap.String("submission_id", sub.ID),
		zap.String("schema", string(schema)),
		zap.Int("answered", len(sub.Responses)),
		zap.Strings("top_major", sub.TopMajor),
	)
	return sub, nil
}

// ScoreAndReport puntúa y además pide el reporte narrativo. Si el LLM falla la
// submission igual queda guardada y se devuelve junto con el error.
func (s *QuizService) ScoreAndReport(ctx context.Context, clientKey string, schema scoring.Schema, raw map[string]any) (domain.Submission, error) {
	if s == nil || s.reports == nil {
		return domain.Submission{}, ErrQuizServiceNotConfigured
	}
	if !s.reports.Allow(ctx, clientKey) {
		return domain.Submission{}, ErrReportRateLimited
	}

	sub, err := s.Score(ctx, schema, raw)
	if err != nil {
		return domain.Submission{}, err
	}

	report, genErr := s.reports.Generate(ctx, sub)
	if genErr != nil {
		sub.ReportError = genErr.Error()
		s.logger.Warn("report generation failed", zap.String("submission_id", sub.ID), zap.Error(genErr))
		if err := s.submissions.UpdateReport(ctx, sub.ID, nil, sub.ReportError); err != nil {
			s.logger.Warn("persist report error failed", zap.String("submission_id", sub.ID), zap.Error(err))
		}
		return sub, fmt.Errorf("generate report: %w", genErr)
	}

	sub.Report = &report
	if err := s.submissions.UpdateReport(ctx, sub.ID, sub.Report, ""); err != nil {
		return sub, fmt.Errorf("%w: %w", ErrReportNotPersisted, err)
	}
	return sub, nil
}

// GetSubmission busca una submission por id.
func (s *QuizService) GetSubmission(ctx context.Context, id string) (domain.Submission, error) {
	if s == nil || s.submissions == nil {
		return domain.Submission{}, ErrQuizServiceNotConfigured
	}
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return domain.Submission{}, repository.ErrSubmissionNotFound
	}
	return s.submissions.GetByID(ctx, id)
}

// ListSubmissions devuelve las submissions más recientes.
func (s *QuizService) ListSubmissions(ctx context.Context, limit int) ([]domain.Submission, error) {
	if s == nil || s.submissions == nil {
		return nil, ErrQuizServiceNotConfigured
	}
	return s.submissions.ListRecent(ctx, limit)
}
