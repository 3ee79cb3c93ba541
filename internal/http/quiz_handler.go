package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-quiz/internal/repository"
	"persona-quiz/internal/scoring"
	"persona-quiz/internal/service"
)

// QuizHandler mantiene dependencias para endpoints del cuestionario.
type QuizHandler struct {
	logger        *zap.Logger
	quiz          *service.QuizService
	defaultSchema scoring.Schema
}

// NewQuizHandler crea una instancia de QuizHandler con dependencias necesarias.
// defaultSchema se usa en GET /questions; si es inválido cae a facet.
func NewQuizHandler(logger *zap.Logger, quiz *service.QuizService, defaultSchema scoring.Schema) *QuizHandler {
	parsed, err := scoring.ParseSchema(string(defaultSchema))
	if err != nil {
		parsed = scoring.SchemaFacet
	}
	defaultSchema = parsed
	return &QuizHandler{
		logger:        logger,
		quiz:          quiz,
		defaultSchema: defaultSchema,
	}
}

type scoreRequest struct {
	Responses map[string]any `json:"responses"`
}

// GetQuestions maneja GET /quiz/:schema/questions y GET /questions.
func (h *QuizHandler) GetQuestions(c *gin.Context) {
	schema, ok := h.schemaParam(c)
	if !ok {
		return
	}
	questions, err := h.quiz.Questions(schema)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown schema"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"schema":    schema,
		"scale":     gin.H{"min": scoring.ScaleMin, "max": scoring.ScaleMax},
		"questions": questions,
	})
}

// Score maneja POST /quiz/:schema/score.
func (h *QuizHandler) Score(c *gin.Context) {
	schema, ok := h.schemaParam(c)
	if !ok {
		return
	}
	req, ok := h.bindScoreRequest(c)
	if !ok {
		return
	}

	sub, err := h.quiz.Score(c.Request.Context(), schema, req.Responses)
	if err != nil {
		h.writeServiceError(c, err, "could not score quiz")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"submission": sub})
}

// ScoreAndReport maneja POST /quiz/:schema/report.
func (h *QuizHandler) ScoreAndReport(c *gin.Context) {
	schema, ok := h.schemaParam(c)
	if !ok {
		return
	}
	req, ok := h.bindScoreRequest(c)
	if !ok {
		return
	}

	sub, err := h.quiz.ScoreAndReport(c.Request.Context(), c.ClientIP(), schema, req.Responses)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"submission": sub})
	case errors.Is(err, service.ErrReportRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many report requests"})
	case errors.Is(err, service.ErrReportNotPersisted):
		// El reporte se generó pero no se pudo guardar: falla nuestra, no del LLM.
		h.logger.Error("persist report failed", zap.String("submission_id", sub.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"submission": sub, "error": "could not store report"})
	case sub.ID != "":
		// El scoring quedó guardado; solo falló el reporte.
		c.JSON(http.StatusBadGateway, gin.H{"submission": sub, "error": "report generation failed"})
	default:
		h.writeServiceError(c, err, "could not score quiz")
	}
}

// GetSubmission maneja GET /submissions/:id.
func (h *QuizHandler) GetSubmission(c *gin.Context) {
	sub, err := h.quiz.GetSubmission(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
			return
		}
		h.logger.Error("get submission failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch submission"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submission": sub})
}

// ListSubmissions maneja GET /submissions?limit=N.
func (h *QuizHandler) ListSubmissions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
		return
	}
	subs, err := h.quiz.ListSubmissions(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("list submissions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list submissions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": subs})
}

func (h *QuizHandler) schemaParam(c *gin.Context) (scoring.Schema, bool) {
	if c.Param("schema") == "" {
		return h.defaultSchema, true
	}
	schema, err := scoring.ParseSchema(c.Param("schema"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown schema"})
		return "", false
	}
	return schema, true
}

func (h *QuizHandler) bindScoreRequest(c *gin.Context) (scoreRequest, bool) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid score request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return scoreRequest{}, false
	}
	if req.Responses == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "responses is required"})
		return scoreRequest{}, false
	}
	return req, true
}

func (h *QuizHandler) writeServiceError(c *gin.Context, err error, msg string) {
	if errors.Is(err, service.ErrQuizInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	h.logger.Error(msg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
