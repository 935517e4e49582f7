package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/delishapp/delish-backend/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiddlewareTest(sessions session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authMiddleware := NewAuthMiddleware(sessions)

	router.GET("/protected", authMiddleware.RequireAuth(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	router.GET("/open", authMiddleware.OptionalAuth(), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "authenticated": ok})
	})

	return router
}

func TestAuthMiddleware_RequireAuth_BearerToken(t *testing.T) {
	sessions := session.NewMemoryStore(time.Hour)
	router := setupMiddlewareTest(sessions)

	sess, err := sessions.Create(context.Background(), 42)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}

func TestAuthMiddleware_RequireAuth_Cookie(t *testing.T) {
	sessions := session.NewMemoryStore(time.Hour)
	router := setupMiddlewareTest(sessions)

	sess, err := sessions.Create(context.Background(), 7)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.Token})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

// Missing, malformed, unknown, expired and revoked tokens all get the
// same response.
func TestAuthMiddleware_RequireAuth_Denied(t *testing.T) {
	sessions := session.NewMemoryStore(time.Hour)
	expiredSessions := session.NewMemoryStore(-time.Minute)
	router := setupMiddlewareTest(sessions)

	revoked, err := sessions.Create(context.Background(), 1)
	require.NoError(t, err)
	require.NoError(t, sessions.Delete(context.Background(), revoked.Token))

	expired, err := expiredSessions.Create(context.Background(), 1)
	require.NoError(t, err)

	tests := []struct {
		name    string
		prepare func(req *http.Request)
	}{
		{
			name:    "No token at all",
			prepare: func(req *http.Request) {},
		},
		{
			name: "Malformed Authorization header",
			prepare: func(req *http.Request) {
				req.Header.Set("Authorization", "Token abc123")
			},
		},
		{
			name: "Token the store has never seen",
			prepare: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer forged-token")
			},
		},
		{
			name: "Revoked session",
			prepare: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer "+revoked.Token)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			tt.prepare(req)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), loginRequiredMessage)
		})
	}

	t.Run("Expired session", func(t *testing.T) {
		expiredRouter := setupMiddlewareTest(expiredSessions)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+expired.Token)
		w := httptest.NewRecorder()

		expiredRouter.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), loginRequiredMessage)
	})
}

func TestAuthMiddleware_OptionalAuth(t *testing.T) {
	sessions := session.NewMemoryStore(time.Hour)
	router := setupMiddlewareTest(sessions)

	t.Run("Guest passes through", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/open", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"authenticated":false`)
	})

	t.Run("Live session is resolved", func(t *testing.T) {
		sess, err := sessions.Create(context.Background(), 9)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/open", nil)
		req.Header.Set("Authorization", "Bearer "+sess.Token)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"authenticated":true`)
		assert.Contains(t, w.Body.String(), `"user_id":9`)
	})
}
