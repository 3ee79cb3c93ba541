package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"persona-quiz/internal/scoring"
	"persona-quiz/internal/service"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

var errUnknownFormat = errors.New("format must be json or yaml")

// scoreOutput es lo que imprime `quizctl score`.
type scoreOutput struct {
	Schema     scoring.Schema      `json:"schema" yaml:"schema"`
	Answered   int                 `json:"answered" yaml:"answered"`
	Scores     scoring.ScoreResult `json:"scores" yaml:"scores"`
	TopBigFive []string            `json:"top_big_five" yaml:"top_big_five"`
	TopMajor   []string            `json:"top_major" yaml:"top_major"`
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "quizctl",
		Short: "Offline tools for the persona quiz",
		Long: `quizctl scores questionnaires without the API and issues admin tokens.

Available subcommands:
  questions - Print the question catalog of a schema
  score     - Score a responses file (JSON or YAML)
  token     - Issue a bearer token for the submissions endpoints`,
		SilenceUsage: true,
	}
	root.AddCommand(newQuestionsCmd(), newScoreCmd(), newTokenCmd())
	return root
}

func newQuestionsCmd() *cobra.Command {
	var schemaFlag, format string
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Print the question catalog of a schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := scoring.ParseSchema(schemaFlag)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), format, map[string]any{
				"schema":    schema,
				"questions": scoring.Catalog(schema),
			})
		},
	}
	cmd.Flags().StringVar(&schemaFlag, "schema", string(scoring.SchemaFacet), "quiz schema (simple|facet)")
	cmd.Flags().StringVar(&format, "format", formatJSON, "output format (json|yaml)")
	return cmd
}

func newScoreCmd() *cobra.Command {
	var schemaFlag, file, format string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a responses file (JSON or YAML)",
		Long: `Score reads {"responses": {...}} or a bare map of question IDs to ratings
from --file, or from stdin when no file is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := scoring.ParseSchema(schemaFlag)
			if err != nil {
				return err
			}
			raw, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			parsed, err := decodeResponses(raw)
			if err != nil {
				return err
			}

			responses := scoring.NormalizeResponses(parsed)
			result := scoring.ComputeScores(schema, responses)
			return writeOutput(cmd.OutOrStdout(), format, scoreOutput{
				Schema:     schema,
				Answered:   len(responses.Finite()),
				Scores:     result,
				TopBigFive: scoring.TopTwoBigFive(result),
				TopMajor:   scoring.TopThreeMajor(result),
			})
		},
	}
	cmd.Flags().StringVar(&schemaFlag, "schema", string(scoring.SchemaFacet), "quiz schema (simple|facet)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "responses file (defaults to stdin)")
	cmd.Flags().StringVar(&format, "format", formatJSON, "output format (json|yaml)")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var secret, subject, role string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the submissions endpoints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				secret = os.Getenv("JWT_SECRET")
			}
			if strings.TrimSpace(secret) == "" {
				return errors.New("secret is required (--secret or JWT_SECRET)")
			}
			token, err := service.NewJWTService(secret, ttl).IssueToken(subject, role)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "signing secret (defaults to JWT_SECRET)")
	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().StringVar(&role, "role", service.RoleAdmin, "token role")
	cmd.Flags().DurationVar(&ttl, "ttl", 60*time.Minute, "token lifetime")
	return cmd
}

func readInput(stdin io.Reader, file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(file)
}

// decodeResponses acepta JSON o YAML; yaml.v3 también parsea JSON.
func decodeResponses(raw []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode responses: %w", err)
	}
	if doc == nil {
		return nil, errors.New("decode responses: empty input")
	}
	if nested, ok := doc["responses"]; ok {
		m, ok := nested.(map[string]any)
		if !ok {
			return nil, errors.New("decode responses: responses must be a map")
		}
		return m, nil
	}
	return doc, nil
}

func writeOutput(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}
