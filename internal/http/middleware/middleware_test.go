package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railway/internal/authz"
	"railway/internal/domain"
)

var testSecret = []byte("test-secret")

type staticPolicy struct {
	allow bool
	seen  *authz.Request
}

func (p *staticPolicy) Allow(ctx context.Context, req authz.Request) (bool, error) {
	p.seen = &req
	return p.allow, nil
}

func newEngine(policy Authorizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Authenticate(testSecret))
	r.GET("/thing", RequireAccess(policy, "station"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": GetIdentity(c).UserID})
	})
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/thing", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAccess_AnonymousIs401(t *testing.T) {
	policy := &staticPolicy{allow: true}
	w := do(newEngine(policy), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, policy.seen, "policy must not be consulted for anonymous callers")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequireAccess_DeniedIs403(t *testing.T) {
	token, err := SignToken(testSecret, domain.Identity{UserID: 7, Role: "user"}, time.Hour)
	require.NoError(t, err)

	policy := &staticPolicy{allow: false}
	w := do(newEngine(policy), token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NotNil(t, policy.seen)
	assert.Equal(t, "station", policy.seen.Resource)
	assert.Equal(t, int64(7), policy.seen.Identity.UserID)
}

func TestRequireAccess_Allowed(t *testing.T) {
	token, err := SignToken(testSecret, domain.Identity{UserID: 1, Role: "Admin"}, time.Hour)
	require.NoError(t, err)

	policy := &staticPolicy{allow: true}
	w := do(newEngine(policy), token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", policy.seen.Identity.Role)
	assert.JSONEq(t, `{"user":1}`, w.Body.String())
}

func TestAuthenticate_RejectsBadTokens(t *testing.T) {
	expired, err := SignToken(testSecret, domain.Identity{UserID: 7}, -time.Minute)
	require.NoError(t, err)
	foreign, err := SignToken([]byte("other"), domain.Identity{UserID: 7}, time.Hour)
	require.NoError(t, err)

	r := newEngine(&staticPolicy{allow: true})
	for _, token := range []string{expired, foreign, "garbage"} {
		assert.Equal(t, http.StatusUnauthorized, do(r, token).Code)
	}
}

func TestAuthenticate_BadTokenReasonOnGatedRoute(t *testing.T) {
	r := newEngine(&staticPolicy{allow: true})

	w := do(r, "garbage")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestAuthenticate_PublicRouteIgnoresBadToken(t *testing.T) {
	r := newEngine(&staticPolicy{allow: true})
	r.GET("/public", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"anonymous": GetIdentity(c) == nil})
	})

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"anonymous":true}`, w.Body.String())
}

func TestRequestID_KeepsCallerValue(t *testing.T) {
	r := newEngine(&staticPolicy{allow: true})
	req := httptest.NewRequest(http.MethodGet, "/thing", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
