package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bilgisen/ainews/internal/api"
	"github.com/bilgisen/ainews/internal/categorizer"
	"github.com/bilgisen/ainews/internal/config"
	"github.com/bilgisen/ainews/internal/logger"
	"github.com/bilgisen/ainews/internal/middleware"
	"github.com/bilgisen/ainews/internal/scheduler"
	"github.com/bilgisen/ainews/internal/scraper"
	"github.com/bilgisen/ainews/internal/store"
	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: "stdout",
		Pretty: !cfg.IsProduction(),
	}); err != nil {
		panic(err)
	}
	log := logger.Get()
	log.Info().Str("env", cfg.Env).Msg("Starting AI news aggregator")

	db, err := store.New(cfg.RedisURL, cfg.RedisPrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("Connecting to Redis")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Closing Redis client")
		}
	}()

	ctx := context.Background()
	created, err := db.SeedCategories(ctx, categorizer.SeedCategories())
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding categories")
	}
	if created > 0 {
		log.Info().Int("created", created).Msg("Seeded categories")
	}

	cat := categorizer.New()
	sched := scheduler.New([]scraper.Scraper{
		scraper.NewGitHub(db, cat, cfg.GitHubToken),
		scraper.NewArxiv(db, cat),
		scraper.NewReddit(db, cat),
		scraper.NewHackerNews(db, cat),
		scraper.NewRSS(db, cat),
	})
	sched.OnPassComplete(func(ctx context.Context) {
		if err := db.RefreshCategoryCounts(ctx); err != nil {
			log.Warn().Err(err).Msg("Refreshing category counts")
		}
	})
	if cfg.ScrapeOnStart {
		if err := sched.Start(); err != nil {
			log.Fatal().Err(err).Msg("Starting scheduler")
		}
	} else {
		log.Info().Msg("Scheduler disabled by SCRAPE_ON_START")
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.NewErrorHandler(cfg.IsProduction()),
	})

	handlers := api.NewHandlers(db, db, db, cat, sched, api.AuthConfig{
		Secret: cfg.JWTSecret,
		Expire: cfg.JWTExpire,
	})
	api.SetupRoutes(app, handlers, api.RouterConfig{
		RateLimitWindow: cfg.RateLimitWindow,
		RateLimitMax:    cfg.RateLimitMax,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("Server listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down")

	sched.Stop()
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}
	log.Info().Msg("Server stopped")
}
