package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/talentlens/talentlens/internal/adapter/github"
	"github.com/talentlens/talentlens/internal/adapter/store"
	"github.com/talentlens/talentlens/internal/domain"
	"github.com/talentlens/talentlens/internal/handler"
	"github.com/talentlens/talentlens/internal/middleware"
	"github.com/talentlens/talentlens/internal/scout"
	"github.com/talentlens/talentlens/internal/service"
	"github.com/talentlens/talentlens/pkg/config"

	_ "github.com/lib/pq"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	slog.Info("🚀 Starting TalentLens",
		"port", cfg.Port,
		"github_api", cfg.GitHubAPIURL,
		"authenticated", cfg.GitHubToken != "",
	)
	if cfg.GitHubToken == "" {
		slog.Warn("GITHUB_TOKEN not set; unauthenticated requests run under a much lower upstream rate ceiling")
	}

	// ── Database ─────────────────────────────────────────────────────────
	pgStore, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pgStore.Close()

	// ── Adapters ─────────────────────────────────────────────────────────
	forge := github.NewClient(cfg.GitHubToken,
		github.WithBaseURL(cfg.GitHubAPIURL),
		github.WithPageCeiling(cfg.PageCeiling),
	)

	// ── Services ─────────────────────────────────────────────────────────
	discovery := service.NewDiscoveryService(forge, cfg.TopContributors, cfg.MaxPullRequests)
	analyzer := service.NewAnalyzerService(forge, cfg.AnalyzeWorkers, cfg.TopK)
	profile := service.NewProfileService(forge)

	// ── Scout runner ─────────────────────────────────────────────────────
	tracker := scout.NewTracker()

	// On completion, hand the result off for persistence. The runner never
	// persists anything itself.
	onComplete := func(jobID string, result []domain.ContributorAnalysis) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		for i := range result {
			if err := pgStore.SaveContributorAnalysis(ctx, jobID, &result[i]); err != nil {
				slog.Error("failed to persist analysis", "job_id", jobID,
					"login", result[i].Contributor.Login, "error", err)
			}
		}
	}

	runner := scout.NewRunner(discovery, analyzer, profile, tracker, onComplete)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
	}))

	// Audit middleware (logs all requests)
	app.Use(middleware.AuditMiddleware(pgStore))

	// Health check
	app.Get("/api/v1/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"app":     cfg.AppName,
			"version": "1.0.0",
		})
	})

	// ── Routes ───────────────────────────────────────────────────────────
	api := app.Group("/api/v1")

	scoutHandler := handler.NewScoutHandler(runner)
	scoutHandler.Register(api)

	jobsHandler := handler.NewJobsHandler(tracker)
	jobsHandler.Register(api)

	analysesHandler := handler.NewAnalysesHandler(pgStore)
	analysesHandler.Register(api)

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("🌐 Fiber listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
