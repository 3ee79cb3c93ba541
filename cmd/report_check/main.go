package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"persona-quiz/internal/config"
	"persona-quiz/internal/domain"
	"persona-quiz/internal/llm"
	"persona-quiz/internal/scoring"
	"persona-quiz/internal/service"
)

const (
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorReset = "\033[0m"
)

// Profile es un set de respuestas de prueba con perfil conocido.
type Profile struct {
	Name      string
	Schema    scoring.Schema
	Responses scoring.ResponseSet
}

func profiles() []Profile {
	return []Profile{
		{
			Name:   "Extravertido impulsivo",
			Schema: scoring.SchemaSimple,
			Responses: scoring.ResponseSet{
				"Q01": 7, "Q06": 7, "Q11": 6,
				"Q02": 2, "Q07": 6, "Q12": 2,
				"Q16": 7, "Q17": 2, "Q18": 7,
			},
		},
		{
			Name:   "Ordenado y ansioso",
			Schema: scoring.SchemaFacet,
			Responses: scoring.ResponseSet{
				"Q06": 7, "Q07": 1, "Q08": 7, "Q09": 6,
				"Q10": 7, "Q11": 2, "Q12": 2, "Q13": 6,
				"Q29": 7, "Q30": 1,
			},
		},
		{
			Name:      "Todo en el punto medio",
			Schema:    scoring.SchemaFacet,
			Responses: scoring.ResponseSet{},
		},
	}
}

func submissionFor(p Profile) domain.Submission {
	result := scoring.ComputeScores(p.Schema, p.Responses)
	return domain.Submission{
		ID:         uuid.NewString(),
		Schema:     p.Schema,
		Responses:  p.Responses,
		Scores:     result,
		TopBigFive: scoring.TopTwoBigFive(result),
		TopMajor:   scoring.TopThreeMajor(result),
		CreatedAt:  time.Now().UTC(),
	}
}

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	llmClient, err := llm.NewClient(llm.ProviderOptions{
		Provider:    cfg.LLMProvider,
		APIKey:      cfg.LLMAPIKey,
		BaseURL:     cfg.LLMBaseURL,
		Model:       cfg.LLMModel,
		MaxAttempts: cfg.LLMMaxRetries,
		RetryDelay:  cfg.LLMRetryDelay,
	}, logger)
	if err != nil {
		log.Fatal(err)
	}
	reports := service.NewReportService(llmClient, nil, 0, nil, logger)

	var totalFid, totalSpec, n int
	for _, p := range profiles() {
		sub := submissionFor(p)
		fmt.Printf("%s[Perfil]%s %s (%s) top=%v\n", colorCyan, colorReset, p.Name, p.Schema, sub.TopMajor)

		report, err := reports.Generate(ctx, sub)
		if err != nil {
			log.Fatalf("report failed: %v", err)
		}
		fmt.Printf("%s[Reporte]%s %s\n%s\n", colorGreen, colorReset, report.Headline, report.Summary)

		jr, h, err := evaluateReport(ctx, llmClient, sub, report)
		if err != nil {
			log.Fatalf("judge failed: %v", err)
		}
		fmt.Printf("%sJuez%s %q\n", colorCyan, colorReset, jr.Reasoning)
		fmt.Printf("Heurísticas: menciona_top=%t bajos_como_fortaleza=%v\n", h.MentionsTopTrait, h.LowAsStrength)
		fmt.Printf("Scores: Fidelidad %d/5 | Especificidad %d/5\n\n", jr.FidelityScore, jr.SpecificityScore)

		totalFid += jr.FidelityScore
		totalSpec += jr.SpecificityScore
		n++
	}

	fmt.Println("==== Promedios ====")
	fmt.Printf("Fidelidad: %.2f/5 | Especificidad: %.2f/5\n",
		float64(totalFid)/float64(n), float64(totalSpec)/float64(n))
}
