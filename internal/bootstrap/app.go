package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"speakofy-backend/internal/documents"
	"speakofy-backend/internal/llm"
	"speakofy-backend/internal/llm/gemini"
	"speakofy-backend/internal/qa"
	"speakofy-backend/internal/session"
	"speakofy-backend/internal/shared/auth"
	"speakofy-backend/internal/shared/config"
	"speakofy-backend/internal/shared/server"
	"speakofy-backend/internal/shared/storage/db"
	"speakofy-backend/internal/shared/telemetry"
	"speakofy-backend/internal/users"
)

var errDatabaseRequired = errors.New("DATABASE_URL is required")

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	UsersRepo users.Repo
	DocsRepo  documents.Repo
	Sessions  *session.Manager
	Signer    *auth.Signer
	LLM       llm.Client

	UsersService *users.Service
	DocsService  *documents.Service
	QAService    *qa.Service

	UsersHandler *users.Handler
	DocsHandler  *documents.Handler
	QAHandler    *qa.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}

	if sqlDB != nil {
		app.UsersRepo = &users.PGRepo{DB: sqlDB}
		app.DocsRepo = &documents.PGRepo{DB: sqlDB}
	} else {
		memUsers := users.NewMemoryRepo()
		app.UsersRepo = memUsers
		app.DocsRepo = documents.NewMemoryRepo(memUsers)
	}

	app.Sessions, err = session.NewManager(cfg.SessionCapacity)
	if err != nil {
		return nil, err
	}
	app.Signer = auth.NewSigner(cfg.JWTSecret, 24*time.Hour)
	app.LLM = buildLLM(cfg)

	app.UsersService = users.NewService(app.UsersRepo)
	app.DocsService = &documents.Service{Repo: app.DocsRepo}
	app.QAService = &qa.Service{Docs: app.DocsRepo, LLM: app.LLM}

	app.UsersHandler = users.NewHandler(app.UsersService, app.DocsRepo, app.Sessions, app.Signer)
	app.DocsHandler = documents.NewHandler(app.DocsService)
	app.QAHandler = qa.NewHandler(app.QAService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:    cfg,
		Signer:    app.Signer,
		Sessions:  app.Sessions,
		Users:     app.UsersHandler,
		Documents: app.DocsHandler,
		QA:        app.QAHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errDatabaseRequired
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

// buildLLM resolves model credentials once at startup. A missing key is a
// warning, not a crash; question answering then fails per call.
func buildLLM(cfg config.Config) llm.Client {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		telemetry.Warn("GEMINI_API_KEY not set; question answering will fail until configured", nil)
		return llm.Disabled{}
	}
	client, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.LLMModel)
	if err != nil {
		telemetry.Warn("gemini client unavailable; question answering will fail until configured", map[string]any{
			"error": err.Error(),
		})
		return llm.Disabled{}
	}
	return client
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
