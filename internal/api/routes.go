package api

import (
	"time"

	"github.com/bilgisen/ainews/internal/localize"
	"github.com/bilgisen/ainews/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RouterConfig tunes the app-wide middleware.
type RouterConfig struct {
	RateLimitWindow time.Duration
	RateLimitMax    int
}

// SetupRoutes wires the middleware stack and every route group.
func SetupRoutes(app *fiber.App, h *Handlers, cfg RouterConfig) {
	app.Use(recover.New())
	app.Use(middleware.NewLogger())
	app.Use(middleware.NewLocalizer(localize.NewTranslator()))

	app.Get("/health", h.HealthCheck)
	app.Get("/api/health", h.HealthCheck)

	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
	}))

	news := api.Group("/news")
	news.Get("/", h.GetNews)
	news.Get("/trending", h.GetTrending)
	news.Get("/recent", h.GetRecent)
	news.Get("/featured", h.GetFeatured)
	news.Get("/stats/overview", h.GetStats)
	news.Get("/category/:category", h.GetNewsByCategory)
	news.Get("/:id", h.GetArticle)

	categories := api.Group("/categories")
	categories.Get("/", h.ListCategories)
	categories.Get("/stats/distribution", h.GetCategoryDistribution)
	categories.Get("/suggest", h.SuggestCategories)
	categories.Get("/:name", h.GetCategory)
	categories.Get("/:name/articles", h.GetCategoryArticles)

	search := api.Group("/search")
	search.Get("/", h.Search)
	search.Get("/suggestions", h.GetSuggestions)
	search.Get("/filters", h.GetSearchFilters)
	search.Get("/trending", h.GetTrendingTerms)

	users := api.Group("/users")
	users.Post("/register", h.Register)
	users.Post("/login", h.Login)

	protected := users.Group("", middleware.Protected(h.auth.Secret))
	protected.Get("/profile", h.GetProfile)
	protected.Put("/profile", h.UpdateProfile)
	protected.Get("/favorites", h.ListFavorites)
	protected.Post("/favorites/:articleId", h.AddFavorite)
	protected.Delete("/favorites/:articleId", h.RemoveFavorite)
	protected.Post("/reading-history/:articleId", h.AddReadingHistory)

	admin := api.Group("/admin", middleware.Protected(h.auth.Secret), middleware.AdminOnly())
	admin.Post("/scrape/:source", h.TriggerScrape)
	admin.Get("/scheduler/status", h.SchedulerStatus)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Endpoint not found",
		})
	})
}
