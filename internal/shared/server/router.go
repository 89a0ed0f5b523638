package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"speakofy-backend/internal/documents"
	"speakofy-backend/internal/qa"
	"speakofy-backend/internal/session"
	"speakofy-backend/internal/shared/auth"
	"speakofy-backend/internal/shared/config"
	"speakofy-backend/internal/shared/metrics"
	"speakofy-backend/internal/shared/server/middleware"
	"speakofy-backend/internal/shared/server/respond"
	"speakofy-backend/internal/users"
)

// RouterDeps carries everything NewRouter needs to wire routes.
type RouterDeps struct {
	Config    config.Config
	Signer    *auth.Signer
	Sessions  *session.Manager
	Users     *users.Handler
	Documents *documents.Handler
	QA        *qa.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Signer, deps.Sessions),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/qa" {
					return "ANSWER"
				}
				return ""
			},
			Rules: map[string]middleware.RateLimitRule{
				// Model calls are the expensive path; everything else is unmetered.
				"ANSWER": {Rate: 0.5, Burst: 3},
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	deps.Users.RegisterRoutes(api)
	deps.Documents.RegisterRoutes(api)
	deps.QA.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
