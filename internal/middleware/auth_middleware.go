package middleware

import (
	"strings"

	"github.com/delishapp/delish-backend/internal/errors"
	"github.com/delishapp/delish-backend/internal/session"
	"github.com/gin-gonic/gin"
)

// Context keys for request-scoped auth state
const (
	UserIDKey       = "user_id"
	SessionTokenKey = "session_token"
)

// SessionCookieName is the cookie carrying the session token when the
// client does not use the Authorization header.
const SessionCookieName = "delish_session"

// loginRequiredMessage is the single deny message for every unauthenticated
// case. Missing, expired and revoked sessions are deliberately not
// distinguished to the caller.
const loginRequiredMessage = "Oops! You must be logged in to do that"

type AuthMiddleware struct {
	sessions session.Store
}

func NewAuthMiddleware(sessions session.Store) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
	}
}

// extractToken pulls the session token from the Authorization header or,
// failing that, the session cookie.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// RequireAuth gates the request on a live session. The session store is
// consulted on every request; nothing is cached between requests.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token := extractToken(c)
		if token == "" {
			log.Warn("Missing session token", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, loginRequiredMessage)
			c.Abort()
			return
		}

		sess, err := m.sessions.Get(c.Request.Context(), token)
		if err != nil {
			log.Warn("Session lookup failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			errors.Unauthorized(c, loginRequiredMessage)
			c.Abort()
			return
		}

		c.Set(UserIDKey, sess.UserID)
		c.Set(SessionTokenKey, sess.Token)

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id": sess.UserID,
		})

		c.Next()
	}
}

// OptionalAuth resolves the session if one is presented and continues as
// guest otherwise.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		sess, err := m.sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(UserIDKey, sess.UserID)
		c.Set(SessionTokenKey, sess.Token)
		c.Next()
	}
}

// GetUserID extracts the authenticated user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetSessionToken extracts the session token from context
func GetSessionToken(c *gin.Context) (string, bool) {
	token, exists := c.Get(SessionTokenKey)
	if !exists {
		return "", false
	}
	return token.(string), true
}
