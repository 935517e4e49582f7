package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/delishapp/delish-backend/internal/app/repository"
	"github.com/delishapp/delish-backend/internal/app/service"
	"github.com/delishapp/delish-backend/internal/db"
	"github.com/delishapp/delish-backend/internal/mailer"
	"github.com/delishapp/delish-backend/internal/middleware"
	"github.com/delishapp/delish-backend/internal/session"
	"github.com/delishapp/delish-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://localhost:8080"

// recordingMailer captures reset links so tests can follow them.
type recordingMailer struct {
	urls []string
}

func (m *recordingMailer) SendPasswordReset(toEmail, resetURL string) error {
	m.urls = append(m.urls, resetURL)
	return nil
}

var _ mailer.Mailer = (*recordingMailer)(nil)

type authTestEnv struct {
	router *gin.Engine
	mail   *recordingMailer
}

func setupAuthControllerTest(t *testing.T) *authTestEnv {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	sessions := session.NewMemoryStore(time.Hour)
	verifier := util.NewBcryptVerifier()
	mail := &recordingMailer{}

	authService := service.NewAuthService(userRepo, sessions, verifier)
	passwordResetService := service.NewPasswordResetService(userRepo, sessions, verifier, mail, testBaseURL)

	authController := NewAuthController(authService, passwordResetService)
	authMiddleware := middleware.NewAuthMiddleware(sessions)

	router := gin.New()
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authMiddleware.OptionalAuth(), authController.Logout)
		auth.GET("/me", authMiddleware.RequireAuth(), authController.GetMe)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.GET("/reset-password/:token", authController.CheckResetToken)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	return &authTestEnv{router: router, mail: mail}
}

func (env *authTestEnv) doJSON(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *authTestEnv) register(t *testing.T, email, password string) {
	t.Helper()

	w := env.doJSON("POST", "/api/v1/auth/register", gin.H{
		"email":    email,
		"password": password,
		"name":     "Test User",
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

// lastResetToken returns the token from the most recent emailed link.
func (env *authTestEnv) lastResetToken(t *testing.T) string {
	t.Helper()

	require.NotEmpty(t, env.mail.urls)
	url := env.mail.urls[len(env.mail.urls)-1]
	parts := strings.Split(url, "/")
	return parts[len(parts)-1]
}

func TestAuthController_RegisterAndLogin(t *testing.T) {
	env := setupAuthControllerTest(t)

	w := env.doJSON("POST", "/api/v1/auth/register", gin.H{
		"email":    "test@example.com",
		"password": "password123",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Result().Cookies())

	// Duplicate registration is rejected.
	w = env.doJSON("POST", "/api/v1/auth/register", gin.H{
		"email":    "test@example.com",
		"password": "password456",
		"name":     "Someone Else",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.doJSON("POST", "/api/v1/auth/login", gin.H{
		"email":    "test@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Session struct {
			Token string `json:"token"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Session.Token)

	// The returned token opens the gate.
	req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Session.Token)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test@example.com")
}

func TestAuthController_Login_BadCredentials(t *testing.T) {
	env := setupAuthControllerTest(t)
	env.register(t, "test@example.com", "password123")

	tests := []struct {
		name  string
		email string
	}{
		{name: "Wrong password", email: "test@example.com"},
		{name: "Unknown email", email: "nobody@example.com"},
	}

	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.doJSON("POST", "/api/v1/auth/login", gin.H{
				"email":    tt.email,
				"password": "not-the-password",
			})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "AUTH_INVALID_CREDENTIALS")
			bodies = append(bodies, w.Body.String())
		})
	}

	// Identical body for both failure modes.
	require.Len(t, bodies, 2)
	assert.Equal(t, bodies[0], bodies[1])
}

func TestAuthController_Logout(t *testing.T) {
	env := setupAuthControllerTest(t)
	env.register(t, "test@example.com", "password123")

	w := env.doJSON("POST", "/api/v1/auth/login", gin.H{
		"email":    "test@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Session struct {
			Token string `json:"token"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	req := httptest.NewRequest("POST", "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Session.Token)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// The revoked token no longer opens the gate.
	req = httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Session.Token)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Anonymous logout is fine too.
	w = env.doJSON("POST", "/api/v1/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthController_ForgotPassword(t *testing.T) {
	env := setupAuthControllerTest(t)
	env.register(t, "test@example.com", "password123")

	t.Run("Known email", func(t *testing.T) {
		w := env.doJSON("POST", "/api/v1/auth/forgot-password", gin.H{
			"email": "test@example.com",
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, env.mail.urls, 1)
	})

	t.Run("Unknown email gets the same response", func(t *testing.T) {
		w := env.doJSON("POST", "/api/v1/auth/forgot-password", gin.H{
			"email": "ghost@example.com",
		})
		assert.Equal(t, http.StatusOK, w.Code)
		// ...but no mail goes out.
		assert.Len(t, env.mail.urls, 1)
	})

	t.Run("Invalid email is rejected", func(t *testing.T) {
		w := env.doJSON("POST", "/api/v1/auth/forgot-password", gin.H{
			"email": "not-an-email",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthController_CheckResetToken(t *testing.T) {
	env := setupAuthControllerTest(t)
	env.register(t, "test@example.com", "password123")

	w := env.doJSON("POST", "/api/v1/auth/forgot-password", gin.H{
		"email": "test@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := env.lastResetToken(t)

	req := httptest.NewRequest("GET", "/api/v1/auth/reset-password/"+token, nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest("GET", "/api/v1/auth/reset-password/bogus-token", nil)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "RESET_TOKEN_INVALID")
}

func TestAuthController_ResetPassword(t *testing.T) {
	env := setupAuthControllerTest(t)
	env.register(t, "test@example.com", "password123")

	w := env.doJSON("POST", "/api/v1/auth/forgot-password", gin.H{
		"email": "test@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := env.lastResetToken(t)

	t.Run("Mismatched confirmation never reaches the token", func(t *testing.T) {
		w := env.doJSON("POST", "/api/v1/auth/reset-password", gin.H{
			"token":            token,
			"password":         "new-password",
			"password_confirm": "different-password",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "RESET_PASSWORD_MISMATCH")

		// The token is still redeemable afterwards.
		req := httptest.NewRequest("GET", "/api/v1/auth/reset-password/"+token, nil)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Valid reset updates password and logs in", func(t *testing.T) {
		w := env.doJSON("POST", "/api/v1/auth/reset-password", gin.H{
			"token":            token,
			"password":         "new-password",
			"password_confirm": "new-password",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Result().Cookies())

		var resp struct {
			Session struct {
				Token string `json:"token"`
			} `json:"session"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		// Auto-login: the returned session works immediately.
		req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+resp.Session.Token)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		// Old password is dead, new one works.
		w = env.doJSON("POST", "/api/v1/auth/login", gin.H{
			"email":    "test@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = env.doJSON("POST", "/api/v1/auth/login", gin.H{
			"email":    "test@example.com",
			"password": "new-password",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Spent token is rejected", func(t *testing.T) {
		w := env.doJSON("POST", "/api/v1/auth/reset-password", gin.H{
			"token":            token,
			"password":         "another-password",
			"password_confirm": "another-password",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "RESET_TOKEN_INVALID")
	})
}
