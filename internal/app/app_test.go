package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/edusync-api/internal/repository/memory"
	"github.com/noah-isme/edusync-api/internal/seed"
	"github.com/noah-isme/edusync-api/pkg/config"
	"github.com/noah-isme/edusync-api/pkg/password"
)

const cookieName = "edusync_session"

func testConfig() *config.Config {
	return &config.Config{
		Env:           config.EnvDevelopment,
		APIPrefix:     "/api",
		EnableMetrics: true,
		Auth:          config.AuthConfig{RequireApproval: true},
		Session:       config.SessionConfig{Secret: "test-secret", TTL: time.Hour, CookieName: cookieName},
		Reports:       config.ReportsConfig{CacheTTL: time.Minute},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memory.New()
	hasher := password.NewBcrypt(4)
	_, err := seed.Run(context.Background(), store, hasher, zap.NewNop())
	require.NoError(t, err)

	application, err := New(testConfig(), Dependencies{
		Storage:  store,
		Sessions: memory.NewSessionStore(),
		Hasher:   hasher,
	})
	require.NoError(t, err)
	return application
}

func performRequest(r http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler, email, plain string) *http.Cookie {
	t.Helper()
	w := performRequest(r, http.MethodPost, "/api/auth/login", `{"email":"`+email+`","password":"`+plain+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			assert.True(t, c.HttpOnly)
			return c
		}
	}
	t.Fatalf("login did not set %s", cookieName)
	return nil
}

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *struct{ Code string } `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestRoutesIntegration(t *testing.T) {
	application := newTestApp(t)
	r := application.Engine

	admin := login(t, r, seed.AdminEmail, "admin123")
	teacher := login(t, r, "teacher@edusync.com", "password123")
	student := login(t, r, "james@edusync.com", "password123")

	t.Run("health", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		w = performRequest(r, http.MethodGet, "/ready", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/auth/login", `{"email":"james@edusync.com","password":"nope"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", decode(t, w).Error.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/auth/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("me", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/auth/me", "", student)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"studentId":"ST20230001"`)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("student cannot list users", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/users", "", student)
		assert.Equal(t, http.StatusForbidden, w.Code)
		w = performRequest(r, http.MethodGet, "/api/users", "", teacher)
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 5, decode(t, w).Meta["count"])
	})

	t.Run("admin only structure writes", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/branches", `{"name":"Civil"}`, teacher)
		assert.Equal(t, http.StatusForbidden, w.Code)
		w = performRequest(r, http.MethodPost, "/api/branches", `{"name":"Civil"}`, admin)
		assert.Equal(t, http.StatusCreated, w.Code)
		w = performRequest(r, http.MethodPatch, "/api/branches/999", `{"name":"Ghost"}`, admin)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("class roster", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/classes/1/students", "", student)
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 3, decode(t, w).Meta["count"])
	})

	t.Run("lists that need a filter", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/attendance", "", teacher)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		w = performRequest(r, http.MethodGet, "/api/attendance?date=2023-08-07", "", teacher)
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 3, decode(t, w).Meta["count"])
		w = performRequest(r, http.MethodGet, "/api/attendance?date=07/08/2023", "", teacher)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("timetable by day", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/timetable?day=monday", "", student)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"subject":{"id":1,"name":"Mathematics"`)
	})

	t.Run("students submit but cannot mark", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/submissions", `{"assignmentId":2,"studentId":2,"submissionUrl":"https://example.com/p1"}`, student)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"studentId":1`)
		w = performRequest(r, http.MethodPost, "/api/submissions", `{"assignmentId":1,"studentId":2,"marks":100,"status":"marked"}`, student)
		assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
		w = performRequest(r, http.MethodPatch, "/api/submissions/4", `{"marks":90}`, student)
		assert.Equal(t, http.StatusForbidden, w.Code)
		w = performRequest(r, http.MethodPatch, "/api/submissions/4", `{"marks":90}`, teacher)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"marked"`)
	})

	t.Run("reports", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/reports/assignments/1/stats", "", student)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = performRequest(r, http.MethodGet, "/api/reports/assignments/1/stats", "", teacher)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"totalStudents":3`)
		assert.Contains(t, w.Body.String(), `"marked":3`)

		w = performRequest(r, http.MethodGet, "/api/reports/attendance-stats?subjectAssignmentId=1", "", teacher)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"present":2`)
		assert.Contains(t, w.Body.String(), `"absent":1`)

		w = performRequest(r, http.MethodGet, "/api/reports/classes/1/attendance/export?format=csv", "", teacher)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "class-1-attendance.csv")
		assert.True(t, strings.HasPrefix(w.Body.String(), "Student ID,Name,Present"))

		w = performRequest(r, http.MethodGet, "/api/reports/classes/1/attendance/export?format=doc", "", teacher)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("messages are sent as the caller", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/messages", `{"senderId":1,"receiverId":3,"message":"hello"}`, teacher)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"senderId":2`)

		w = performRequest(r, http.MethodGet, "/api/messages", "", student)
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 1, decode(t, w).Meta["count"])
	})

	t.Run("tutor", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/ai/question", `{"question":"What is gravity?"}`, student)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `What is gravity?`)
		w = performRequest(r, http.MethodPost, "/api/ai/summarize", `{}`, student)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("metrics", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/metrics", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "auth_login_attempts_total")
	})

	t.Run("logout ends the session", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/auth/logout", "", student)
		assert.Equal(t, http.StatusNoContent, w.Code)
		w = performRequest(r, http.MethodGet, "/api/auth/me", "", student)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRegistrationNeedsApproval(t *testing.T) {
	application := newTestApp(t)
	r := application.Engine
	admin := login(t, r, seed.AdminEmail, "admin123")

	w := performRequest(r, http.MethodPost, "/api/auth/register",
		`{"email":"new@edusync.com","password":"secret1","firstName":"New","lastName":"Teacher","role":"teacher","teacherId":"TCH002"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"pendingApproval":true`)

	w = performRequest(r, http.MethodPost, "/api/auth/login", `{"email":"new@edusync.com","password":"secret1"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ACCOUNT_NOT_APPROVED", decode(t, w).Error.Code)

	w = performRequest(r, http.MethodGet, "/api/admin/pending-users", "", admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w).Meta["count"])

	w = performRequest(r, http.MethodPost, "/api/admin/approve-user/6", "", admin)
	require.Equal(t, http.StatusOK, w.Code)

	login(t, r, "new@edusync.com", "secret1")
}

func TestNewRequiresStorage(t *testing.T) {
	_, err := New(testConfig(), Dependencies{})
	assert.Error(t, err)
}
