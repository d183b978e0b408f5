// Package bootstrap composes configuration, storage, the analyzer registry,
// and HTTP wiring into a runnable application.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"siteaudit-backend/internal/analysis"
	"siteaudit-backend/internal/analyzers"
	"siteaudit-backend/internal/audits"
	"siteaudit-backend/internal/cache"
	"siteaudit-backend/internal/fetch"
	"siteaudit-backend/internal/pipeline"
	"siteaudit-backend/internal/registry"
	"siteaudit-backend/internal/scoring"
	"siteaudit-backend/internal/shared/config"
	"siteaudit-backend/internal/shared/server"
	"siteaudit-backend/internal/shared/storage/db"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	Cache    cache.Port
	Registry *registry.Registry
	Repo     audits.Repo

	AuditsService *audits.Service
	AuditsHandler *audits.Handler
}

// Build prepares shared dependencies and wires routes.
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

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		AuditsHandler: app.AuditsHandler,
	})

	return app, nil
}

// BuildCLI prepares the analyzer stack without database or HTTP wiring. The
// CLI runs audits in-process against an in-memory cache.
func BuildCLI(cfg config.Config) (*App, error) {
	app := &App{Config: cfg}
	if err := buildServices(app); err != nil {
		return nil, err
	}
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
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

	return sqlDB, nil
}

func buildServices(app *App) error {
	cfg := app.Config

	var cachePort cache.Port
	switch {
	case !cfg.CacheEnabled:
		cachePort = cache.Nop{}
	case app.DB != nil:
		cachePort = &cache.PG{DB: app.DB}
	default:
		cachePort = cache.NewMemory()
	}

	policies, err := loadPolicies(cfg.ScoringPolicyFile)
	if err != nil {
		return err
	}

	reg, err := analyzers.NewDefaultRegistry(analyzers.Options{
		Runner:   pipeline.NewRunner(cachePort),
		Policies: policies,
	})
	if err != nil {
		return err
	}

	var repo audits.Repo
	if app.DB != nil {
		repo = &audits.PGRepo{DB: app.DB}
	} else {
		repo = audits.NewMemoryRepo()
	}

	fetcher := fetch.NewClient(&http.Client{Timeout: cfg.FetchTimeout})

	svc := &audits.Service{
		Repo:     repo,
		Registry: reg,
		Fetcher:  fetcher,
		Cache: analysis.CacheConfig{
			Enabled: cfg.CacheEnabled,
			TTL:     cfg.CacheTTL,
		},
	}

	app.Cache = cachePort
	app.Registry = reg
	app.Repo = repo
	app.AuditsService = svc
	app.AuditsHandler = audits.NewHandler(svc)

	return nil
}

func loadPolicies(path string) (map[string]scoring.Policy, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	policies, err := scoring.LoadPolicyFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scoring policies: %w", err)
	}
	return policies, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
