package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"persona-quiz/internal/config"
	"persona-quiz/internal/db"
	apihttp "persona-quiz/internal/http"
	"persona-quiz/internal/llm"
	"persona-quiz/internal/repository"
	"persona-quiz/internal/scoring"
	"persona-quiz/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()
	ctxPing, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := db.Ping(ctxPing, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	cancelPing()
	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("db schema", zap.Error(err))
	}

	llmClient, err := llm.NewClient(llm.ProviderOptions{
		Provider:    cfg.LLMProvider,
		APIKey:      cfg.LLMAPIKey,
		BaseURL:     cfg.LLMBaseURL,
		Model:       cfg.LLMModel,
		MaxAttempts: cfg.LLMMaxRetries,
		RetryDelay:  cfg.LLMRetryDelay,
	}, logger)
	if err != nil {
		logger.Fatal("llm client", zap.Error(err))
	}

	// Sin Redis el cache y el rate limit quedan en memoria del proceso.
	reportCache := service.NewMemoryReportCache()
	reportLimiter := service.NewMemoryReportRateLimiter(cfg.ReportRateWindow, cfg.ReportRateMax)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory report cache", zap.Error(err))
		} else {
			reportCache = service.NewRedisReportCache(redisClient)
			reportLimiter = service.NewRedisReportRateLimiter(redisClient, cfg.ReportRateWindow, cfg.ReportRateMax)
		}
		cancel()
	}

	submissionRepo := repository.NewPgSubmissionRepository(pool)
	reportSvc := service.NewReportService(llmClient, reportCache, cfg.ReportCacheTTL, reportLimiter, logger)
	quizSvc := service.NewQuizService(submissionRepo, reportSvc, logger)

	var jwtSvc *service.JWTService
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured, submission endpoints disabled")
	} else {
		jwtSvc = service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
	}

	defaultSchema, err := scoring.ParseSchema(cfg.QuizSchema)
	if err != nil {
		logger.Warn("invalid QUIZ_SCHEMA, using facet", zap.String("value", cfg.QuizSchema))
		defaultSchema = scoring.SchemaFacet
	}

	quizHandler := apihttp.NewQuizHandler(logger, quizSvc, defaultSchema)
	router := apihttp.NewRouter(logger, quizHandler, jwtSvc)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("llm_provider", cfg.LLMProvider),
		zap.String("default_schema", string(defaultSchema)),
	)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}
