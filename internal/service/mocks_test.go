package service

import (
	"context"
	"errors"

	"persona-quiz/internal/domain"
	"persona-quiz/internal/repository"
)

type mockSubmissionRepo struct {
	created    []domain.Submission
	byID       map[string]domain.Submission
	createErr  error
	updateErr  error
	lastReport *domain.Report
	lastErrMsg string
	updates    int
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{byID: make(map[string]domain.Submission)}
}

func (m *mockSubmissionRepo) Create(_ context.Context, sub domain.Submission) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, sub)
	m.byID[sub.ID] = sub
	return nil
}

func (m *mockSubmissionRepo) UpdateReport(_ context.Context, id string, report *domain.Report, reportErr string) error {
	m.updates++
	m.lastReport = report
	m.lastErrMsg = reportErr
	if m.updateErr != nil {
		return m.updateErr
	}
	sub, ok := m.byID[id]
	if !ok {
		return repository.ErrSubmissionNotFound
	}
	sub.Report = report
	sub.ReportError = reportErr
	m.byID[id] = sub
	return nil
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, id string) (domain.Submission, error) {
	sub, ok := m.byID[id]
	if !ok {
		return domain.Submission{}, repository.ErrSubmissionNotFound
	}
	return sub, nil
}

func (m *mockSubmissionRepo) ListRecent(_ context.Context, limit int) ([]domain.Submission, error) {
	if limit <= 0 {
		return nil, errors.New("bad limit")
	}
	if len(m.created) < limit {
		limit = len(m.created)
	}
	return m.created[:limit], nil
}

type staticLimiter struct {
	allow bool
	keys  []string
}

func (l *staticLimiter) Allow(_ context.Context, key string) bool {
	l.keys = append(l.keys, key)
	return l.allow
}
