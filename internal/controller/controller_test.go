package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mindcare-be/internal/entity"
	"mindcare-be/internal/pkg/logger"
	"mindcare-be/internal/pkg/serverutils"
	"mindcare-be/internal/pkg/sessionlock"
	"mindcare-be/internal/repository/memory"
	"mindcare-be/internal/service"
	"mindcare-be/pkg/analysis/analyzer"
	"mindcare-be/pkg/analysis/dispatcher"
	"mindcare-be/pkg/chat/orchestrator"
	"mindcare-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type echoGenerator struct{}

func (echoGenerator) Generate(ctx context.Context, providerID, systemPrompt string, history []llm.Message, userText string) (*llm.Result, string, error) {
	return &llm.Result{Text: "you said: " + userText}, "gemini", nil
}

type okAnalyzer struct{}

func (okAnalyzer) Analyze(ctx context.Context, req analyzer.Request) (*analyzer.Output, error) {
	return &analyzer.Output{RiskLevel: "low", Payload: json.RawMessage(`{"risk_level":"low"}`)}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type harness struct {
	app    *fiber.App
	token  string
	userId uuid.UUID
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()
	log := logger.NewNop()
	store := memory.NewStore()

	user := &entity.User{Id: uuid.New(), Email: "http@example.com"}
	require.NoError(t, store.NewUnitOfWork(ctx).UserRepository().Create(ctx, user))

	reports := service.NewReportService(store, time.Minute, log)
	chat := service.NewChatService(store, orchestrator.New(store, echoGenerator{}, log), sessionlock.NewMemoryGuard(time.Minute), nil, log, time.Second)
	diary := service.NewDiaryService(store, dispatcher.New(store, okAnalyzer{}, log), nil, reports, log, time.Second)

	auth := serverutils.NewJwtMiddleware(testSecret)
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(log))
	api := app.Group("/api")
	NewChatController(chat, auth).RegisterRoutes(api)
	NewDiaryController(diary, auth).RegisterRoutes(api)
	NewReportController(reports, auth).RegisterRoutes(api)
	NewCheckInController(service.NewCheckInService(store, log), auth).RegisterRoutes(api)
	NewHealthController(service.NewHealthService(log), auth).RegisterRoutes(api)

	token, err := serverutils.IssueToken(testSecret, user.Id, time.Hour)
	require.NoError(t, err)

	return &harness{app: app, token: token, userId: user.Id}
}

func (h *harness) do(t *testing.T, method, path, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.token)

	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func TestChatRoutes(t *testing.T) {
	h := newHarness(t)

	status, env := h.do(t, http.MethodPost, "/api/chat/v1/sessions", `{"conversation_type":"CBT"}`)
	require.Equal(t, http.StatusCreated, status)
	var session struct {
		Id uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))

	status, env = h.do(t, http.MethodPost, "/api/chat/v1/sessions/"+session.Id.String()+"/messages", `{"message":"hello"}`)
	require.Equal(t, http.StatusOK, status)
	var reply struct {
		Reply string `json:"reply"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &reply))
	assert.Equal(t, "you said: hello", reply.Reply)

	status, env = h.do(t, http.MethodGet, "/api/chat/v1/sessions/"+session.Id.String()+"/messages?limit=1", "")
	require.Equal(t, http.StatusOK, status)
	var messages []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &messages))
	assert.Len(t, messages, 1)

	status, _ = h.do(t, http.MethodPost, "/api/chat/v1/sessions/not-a-uuid/messages", `{"message":"hello"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = h.do(t, http.MethodPost, "/api/chat/v1/sessions/"+uuid.NewString()+"/messages", `{"message":"hello"}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = h.do(t, http.MethodPost, "/api/chat/v1/sessions", `{"provider":"openai"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = h.do(t, http.MethodDelete, "/api/chat/v1/sessions/"+session.Id.String(), "")
	assert.Equal(t, http.StatusOK, status)
}

func TestDiaryRoutes(t *testing.T) {
	h := newHarness(t)

	status, env := h.do(t, http.MethodGet, "/api/diary/v1/analysis/eligibility", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"eligible":true,"days_remaining":0,"last_analysis_at":null}`, string(env.Data))

	status, _ = h.do(t, http.MethodPost, "/api/diary/v1", `{"content":"slept well","mood":"calm"}`)
	require.Equal(t, http.StatusCreated, status)

	status, _ = h.do(t, http.MethodPost, "/api/diary/v1", `{"content":"x","mood":"meh"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = h.do(t, http.MethodPost, "/api/diary/v1/analysis", `{"mode":"cbt"}`)
	require.Equal(t, http.StatusCreated, status)

	status, env = h.do(t, http.MethodPost, "/api/diary/v1/analysis", `{"mode":"cbt"}`)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.JSONEq(t, `{"days_remaining":30}`, string(env.Data))

	status, _ = h.do(t, http.MethodGet, "/api/diary/v1/analysis/latest", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = h.do(t, http.MethodGet, "/api/diary/v1/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestReportRoute(t *testing.T) {
	h := newHarness(t)

	status, env := h.do(t, http.MethodGet, "/api/analysis/v1/report", "")
	require.Equal(t, http.StatusOK, status)
	var report struct {
		UserID         uuid.UUID `json:"user_id"`
		RiskAssessment struct {
			Level string `json:"level"`
		} `json:"risk_assessment"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, h.userId, report.UserID)
	assert.Equal(t, "low", report.RiskAssessment.Level)
}

func TestRoutesRequireToken(t *testing.T) {
	h := newHarness(t)
	h.token = "garbage"

	for _, path := range []string{"/api/chat/v1/sessions", "/api/diary/v1", "/api/analysis/v1/report"} {
		status, env := h.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.False(t, env.Success)
	}
}

const checkInBody = `{
	"physical": {"description": "good", "value": 80},
	"mood": {"description": "okay", "value": 60},
	"sleep": {"description": "bad", "value": 40},
	"energy": {"description": "okay", "value": 55},
	"appetite": {"description": "great", "value": 95}
}`

func TestCheckInRoutes(t *testing.T) {
	h := newHarness(t)

	status, env := h.do(t, http.MethodPost, "/api/checkin/v1", checkInBody)
	require.Equal(t, http.StatusCreated, status, string(env.Data))

	status, _ = h.do(t, http.MethodPost, "/api/checkin/v1", strings.Replace(checkInBody, `"value": 80`, `"value": 10`, 1))
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = h.do(t, http.MethodGet, "/api/checkin/v1", "")
	require.Equal(t, http.StatusOK, status)
	var checkIns []struct {
		Sleep struct {
			Description string `json:"description"`
			Value       int    `json:"value"`
		} `json:"sleep"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &checkIns))
	require.Len(t, checkIns, 1)
	assert.Equal(t, "bad", checkIns[0].Sleep.Description)
	assert.Equal(t, 40, checkIns[0].Sleep.Value)
}

func TestHealthAdviceRoutes(t *testing.T) {
	h := newHarness(t)

	body := `{
		"range": {"start_date": "2024-08-01", "end_date": "2024-08-07"},
		"metrics": {"sleep_hours": [{"value": 4.5}, {"value": 5}], "hrv": [{"value": 42}], "steps": [{"value": 9000}]}
	}`
	status, env := h.do(t, http.MethodPost, "/api/health/v1/advice", body)
	require.Equal(t, http.StatusOK, status, string(env.Data))
	var advice struct {
		Summary string `json:"summary"`
		Items   []struct {
			Title    string `json:"title"`
			Severity string `json:"severity"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &advice))
	assert.Equal(t, "sleep is short, stress is elevated", advice.Summary)
	require.Len(t, advice.Items, 1)
	assert.Equal(t, "Improve sleep", advice.Items[0].Title)
	assert.Equal(t, "high", advice.Items[0].Severity)

	status, _ = h.do(t, http.MethodPost, "/api/health/v1/advice", `{"metrics": {}}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = h.do(t, http.MethodGet, "/api/health/v1/advice?start_date=2024-08-01&end_date=2024-08-07", "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &advice))
	assert.Equal(t, "no data available yet", advice.Summary)
	assert.Empty(t, advice.Items)

	status, _ = h.do(t, http.MethodGet, "/api/health/v1/advice?start_date=2024-08-07&end_date=2024-08-01", "")
	assert.Equal(t, http.StatusBadRequest, status)
}
