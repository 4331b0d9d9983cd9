package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edusync-api/internal/models"
	appErrors "github.com/noah-isme/edusync-api/pkg/errors"
)

type resolverStub struct {
	tokens map[string]*models.Principal
	seen   []string
}

func (r *resolverStub) Principal(_ context.Context, token string) (*models.Principal, error) {
	r.seen = append(r.seen, token)
	if p, ok := r.tokens[token]; ok {
		return p, nil
	}
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session")
}

type authorizerStub struct{}

func (authorizerStub) Authorize(p *models.Principal, allowed ...models.UserRole) error {
	if p == nil {
		return appErrors.ErrUnauthorized
	}
	if len(allowed) > 0 && !p.HasRole(allowed...) {
		return appErrors.ErrForbidden
	}
	return nil
}

func newSessionRouter(resolver PrincipalResolver, roles ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/private", Session(resolver, "edusync.sid"), RequireRoles(authorizerStub{}, roles...), func(c *gin.Context) {
		c.String(http.StatusOK, "%d", PrincipalFrom(c).User.ID)
	})
	return router
}

func TestSessionAcceptsCookieAndBearer(t *testing.T) {
	resolver := &resolverStub{tokens: map[string]*models.Principal{
		"cookie-token": {User: models.User{ID: 1, Role: models.RoleAdmin}},
		"bearer-token": {User: models.User{ID: 2, Role: models.RoleStudent}},
	}}
	router := newSessionRouter(resolver)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "edusync.sid", Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer bearer-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "bearer bearer-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Body.String())
}

func TestSessionRejectsMissingOrInvalidTokens(t *testing.T) {
	resolver := &resolverStub{tokens: map[string]*models.Principal{}}
	router := newSessionRouter(resolver)

	cases := map[string]string{
		"missing":   "",
		"malformed": "Token abc",
		"unknown":   "Bearer nope",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
		})
	}
	assert.Equal(t, []string{"nope"}, resolver.seen)
}

func TestRequireRolesForbidsOtherRoles(t *testing.T) {
	resolver := &resolverStub{tokens: map[string]*models.Principal{
		"student": {User: models.User{ID: 3, Role: models.RoleStudent}},
		"teacher": {User: models.User{ID: 4, Role: models.RoleTeacher}},
	}}
	router := newSessionRouter(resolver, models.RoleAdmin, models.RoleTeacher)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer student")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer teacher")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPrincipalFromEmptyContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, PrincipalFrom(c))

	c.Set(ContextPrincipalKey, "not a principal")
	assert.Nil(t, PrincipalFrom(c))
}
