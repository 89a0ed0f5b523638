package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"speakofy-backend/internal/session"
	"speakofy-backend/internal/shared/auth"
	"speakofy-backend/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	userNameKey  = "userName"
	sessionIDKey = "sessionId"
	sessionKey   = "session"
)

// Auth validates session tokens and stores the resolved session in context.
// Signup and login are reachable without a token; everything else requires
// a live session.
func Auth(signer *auth.Signer, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		switch path {
		case "/api/v1/auth/signup", "/api/v1/auth/login", "/api/v1/health", "/api/v1/metrics":
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := signer.Verify(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		sess, ok := sessions.Get(claims.SessionID)
		if !ok || sess.UserID != userID {
			respond.Error(c, http.StatusUnauthorized, "session_expired", "session no longer active; log in again", nil)
			return
		}

		c.Set(userIDKey, userID)
		c.Set(userNameKey, sess.Name)
		c.Set(sessionIDKey, sess.ID)
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user id, or zero.
func UserIDFromContext(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

// UserNameFromContext returns the authenticated user's display name.
func UserNameFromContext(c *gin.Context) string {
	return c.GetString(userNameKey)
}

// SessionFromContext returns the active session stored by Auth, or nil.
func SessionFromContext(c *gin.Context) *session.Session {
	val, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := val.(*session.Session)
	return sess
}
