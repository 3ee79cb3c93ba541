package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"persona-quiz/internal/domain"
	"persona-quiz/internal/scoring"
)

var ErrSubmissionNotFound = errors.New("submission not found")

// SubmissionRepository define el contrato de persistencia para corridas de scoring.
type SubmissionRepository interface {
	Create(ctx context.Context, sub domain.Submission) error
	UpdateReport(ctx context.Context, id string, report *domain.Report, reportErr string) error
	GetByID(ctx context.Context, id string) (domain.Submission, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Submission, error)
}

// PgSubmissionRepository implementa SubmissionRepository usando pgxpool.
type PgSubmissionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSubmissionRepository(pool *pgxpool.Pool) *PgSubmissionRepository {
	return &PgSubmissionRepository{pool: pool}
}

func (r *PgSubmissionRepository) Create(ctx context.Context, sub domain.Submission) error {
	const query = `
		INSERT INTO quiz_submissions (id, schema_tag, responses, scores, top_big_five, top_major, report, report_error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		sub.ID,
		string(sub.Schema),
		sub.Responses,
		sub.Scores,
		sub.TopBigFive,
		sub.TopMajor,
		sub.Report,
		nullableText(sub.ReportError),
		sub.CreatedAt,
	)
	return err
}

func (r *PgSubmissionRepository) UpdateReport(ctx context.Context, id string, report *domain.Report, reportErr string) error {
	const query = `
		UPDATE quiz_submissions
		SET report = $2, report_error = $3
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, report, nullableText(reportErr))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

func (r *PgSubmissionRepository) GetByID(ctx context.Context, id string) (domain.Submission, error) {
	const query = `
		SELECT id, schema_tag, responses, scores, top_big_five, top_major, report, report_error, created_at
		FROM quiz_submissions
		WHERE id = $1
	`
	sub, err := scanSubmission(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Submission{}, ErrSubmissionNotFound
	}
	return sub, err
}

func (r *PgSubmissionRepository) ListRecent(ctx context.Context, limit int) ([]domain.Submission, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	const query = `
		SELECT id, schema_tag, responses, scores, top_big_five, top_major, report, report_error, created_at
		FROM quiz_submissions
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}

func scanSubmission(row pgx.Row) (domain.Submission, error) {
	var (
		sub       domain.Submission
		schemaTag string
		reportErr sql.NullString
	)
	if err := row.Scan(
		&sub.ID,
		&schemaTag,
		&sub.Responses,
		&sub.Scores,
		&sub.TopBigFive,
		&sub.TopMajor,
		&sub.Report,
		&reportErr,
		&sub.CreatedAt,
	); err != nil {
		return domain.Submission{}, err
	}
	sub.Schema = scoringSchema(schemaTag)
	if reportErr.Valid {
		sub.ReportError = reportErr.String
	}
	return sub, nil
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func scoringSchema(tag string) scoring.Schema {
	if s, err := scoring.ParseSchema(tag); err == nil {
		return s
	}
	return scoring.Schema(tag)
}
