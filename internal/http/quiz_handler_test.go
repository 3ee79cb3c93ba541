package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-quiz/internal/domain"
	"persona-quiz/internal/llm"
	"persona-quiz/internal/repository"
	"persona-quiz/internal/scoring"
	"persona-quiz/internal/service"
)

type memorySubmissionRepo struct {
	mu        sync.Mutex
	subs      map[string]domain.Submission
	err       error
	updateErr error
}

func newMemorySubmissionRepo() *memorySubmissionRepo {
	return &memorySubmissionRepo{subs: make(map[string]domain.Submission)}
}

func (m *memorySubmissionRepo) Create(_ context.Context, sub domain.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.subs[sub.ID] = sub
	return nil
}

func (m *memorySubmissionRepo) UpdateReport(_ context.Context, id string, report *domain.Report, reportErr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	sub, ok := m.subs[id]
	if !ok {
		return repository.ErrSubmissionNotFound
	}
	sub.Report = report
	sub.ReportError = reportErr
	m.subs[id] = sub
	return nil
}

func (m *memorySubmissionRepo) GetByID(_ context.Context, id string) (domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subs[id]
	if !ok {
		return domain.Submission{}, repository.ErrSubmissionNotFound
	}
	return sub, nil
}

func (m *memorySubmissionRepo) ListRecent(_ context.Context, limit int) ([]domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Submission
	for _, sub := range m.subs {
		if len(out) == limit {
			break
		}
		out = append(out, sub)
	}
	return out, nil
}

type testServer struct {
	router *gin.Engine
	repo   *memorySubmissionRepo
	llm    *llm.MockClient
	jwt    *service.JWTService
}

func newTestServer(t *testing.T, limiter service.ReportRateLimiter) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := newMemorySubmissionRepo()
	client := &llm.MockClient{Response: `{"headline":"Curious mind","summary":"You enjoy ideas."}`}
	reports := service.NewReportService(client, service.NewMemoryReportCache(), time.Hour, limiter, zap.NewNop())
	quiz := service.NewQuizService(repo, reports, zap.NewNop())
	jwtSvc := service.NewJWTService("secret", time.Hour)
	router := NewRouter(zap.NewNop(), NewQuizHandler(zap.NewNop(), quiz, scoring.SchemaSimple), jwtSvc)
	return &testServer{router: router, repo: repo, llm: client, jwt: jwtSvc}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

type submissionEnvelope struct {
	Submission domain.Submission `json:"submission"`
	Error      string            `json:"error"`
}

func decodeSubmission(t *testing.T, rec *httptest.ResponseRecorder) submissionEnvelope {
	t.Helper()
	var env submissionEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestGetQuestions(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodGet, "/quiz/simple/questions", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Schema    string             `json:"schema"`
		Questions []scoring.Question `json:"questions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Schema != "simple" || len(resp.Questions) != 20 {
		t.Fatalf("unexpected catalog: %s %d", resp.Schema, len(resp.Questions))
	}

	rec = srv.do(t, http.MethodGet, "/questions", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for default catalog, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Schema != "simple" {
		t.Fatalf("expected default schema simple, got %q %v", resp.Schema, err)
	}

	if rec := srv.do(t, http.MethodGet, "/quiz/ocean/questions", nil, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown schema, got %d", rec.Code)
	}
}

func TestScoreEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	body := map[string]any{"responses": map[string]any{
		"Q01": 7, "Q02": 7, "Q03": 1, "Q04": 7, "Q05": 7,
		"Q06": 7, "Q07": 1, "Q08": 7, "Q09": 1, "Q10": 7,
		"Q11": 7, "Q12": 7, "Q13": 7, "Q14": 7, "Q15": 7,
		"Q16": 1, "Q17": 7, "Q18": 7, "Q19": 7, "Q20": "7",
	}}

	rec := srv.do(t, http.MethodPost, "/quiz/simple/score", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	env := decodeSubmission(t, rec)
	for _, name := range scoring.MajorTraits {
		if env.Submission.Scores.Traits[name] != 7 {
			t.Fatalf("%s: expected 7, got %v", name, env.Submission.Scores.Traits[name])
		}
	}
	if len(env.Submission.TopBigFive) != 2 || env.Submission.TopBigFive[0] != scoring.Extraversion {
		t.Fatalf("unexpected top big five %v", env.Submission.TopBigFive)
	}
	if _, err := srv.repo.GetByID(context.Background(), env.Submission.ID); err != nil {
		t.Fatalf("expected submission persisted: %v", err)
	}
	if srv.llm.Calls != 0 {
		t.Fatalf("score endpoint must not call the llm")
	}
}

func TestScoreEndpointValidation(t *testing.T) {
	srv := newTestServer(t, nil)

	if rec := srv.do(t, http.MethodPost, "/quiz/simple/score", map[string]any{}, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without responses, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodPost, "/quiz/ocean/score", map[string]any{"responses": map[string]any{}}, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown schema, got %d", rec.Code)
	}

	srv.repo.err = errors.New("db down")
	if rec := srv.do(t, http.MethodPost, "/quiz/facet/score", map[string]any{"responses": map[string]any{}}, ""); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on persistence failure, got %d", rec.Code)
	}
}

func TestReportEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodPost, "/quiz/facet/report", map[string]any{"responses": map[string]any{"Q14": 7, "Q15": 7}}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	env := decodeSubmission(t, rec)
	if env.Submission.Report == nil || env.Submission.Report.Headline != "Curious mind" {
		t.Fatalf("expected report, got %+v", env.Submission.Report)
	}
	stored, _ := srv.repo.GetByID(context.Background(), env.Submission.ID)
	if stored.Report == nil {
		t.Fatalf("expected report persisted")
	}
}

func TestReportEndpointLLMFailure(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.llm.Err = errors.New("upstream down")

	rec := srv.do(t, http.MethodPost, "/quiz/simple/report", map[string]any{"responses": map[string]any{}}, "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	env := decodeSubmission(t, rec)
	if env.Submission.ID == "" || env.Submission.ReportError == "" {
		t.Fatalf("expected scored submission with report error, got %+v", env.Submission)
	}
}

func TestReportEndpointStorageFailure(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.repo.updateErr = errors.New("db down")

	rec := srv.do(t, http.MethodPost, "/quiz/simple/report", map[string]any{"responses": map[string]any{}}, "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when the report cannot be stored, got %d", rec.Code)
	}
	env := decodeSubmission(t, rec)
	if env.Submission.Report == nil || env.Error != "could not store report" {
		t.Fatalf("expected report in body with storage error, got %+v", env)
	}
}

func TestReportEndpointRateLimited(t *testing.T) {
	srv := newTestServer(t, service.NewMemoryReportRateLimiter(time.Minute, 1))
	body := map[string]any{"responses": map[string]any{}}

	if rec := srv.do(t, http.MethodPost, "/quiz/simple/report", body, ""); rec.Code != http.StatusCreated {
		t.Fatalf("expected first report to pass, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodPost, "/quiz/simple/report", body, ""); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestSubmissionEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := srv.do(t, http.MethodPost, "/quiz/simple/score", map[string]any{"responses": map[string]any{"Q01": 6}}, "")
	id := decodeSubmission(t, rec).Submission.ID

	if rec := srv.do(t, http.MethodGet, "/submissions/"+id, nil, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	token, err := srv.jwt.IssueToken("ops", service.RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec = srv.do(t, http.MethodGet, "/submissions/"+id, nil, token)
	if rec.Code != http.StatusOK || decodeSubmission(t, rec).Submission.ID != id {
		t.Fatalf("expected stored submission, got %d %s", rec.Code, rec.Body.String())
	}

	if rec := srv.do(t, http.MethodGet, "/submissions/8e6c54f2-0d3b-4b7e-9d0a-3c1f7a2b9e44", nil, token); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = srv.do(t, http.MethodGet, "/submissions?limit=5", nil, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing, got %d", rec.Code)
	}
	var list struct {
		Submissions []domain.Submission `json:"submissions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || len(list.Submissions) != 1 {
		t.Fatalf("expected one submission, got %+v %v", list, err)
	}
	if rec := srv.do(t, http.MethodGet, "/submissions?limit=0", nil, token); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)
	if rec := srv.do(t, http.MethodGet, "/healthz", nil, ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
