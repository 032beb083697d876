package api

import (
	"context"
	"time"

	"github.com/bilgisen/ainews/internal/categorizer"
	"github.com/bilgisen/ainews/internal/models"
	"github.com/bilgisen/ainews/internal/scheduler"
	"github.com/bilgisen/ainews/internal/scraper"
	"github.com/bilgisen/ainews/internal/store"
	"github.com/gofiber/fiber/v2"
)

// ArticleStore is the article read surface the handlers consume.
type ArticleStore interface {
	List(ctx context.Context, q store.ListQuery) ([]models.Article, store.Pagination, error)
	GetArticle(ctx context.Context, id string) (*models.Article, error)
	IncrementViews(ctx context.Context, id string) (int, error)
	Trending(ctx context.Context, limit int) ([]models.Article, error)
	Recent(ctx context.Context, limit int) ([]models.Article, error)
	Featured(ctx context.Context, limit int) ([]models.Article, error)
	Search(ctx context.Context, q store.SearchQuery) ([]models.Article, store.Pagination, error)
	Suggestions(ctx context.Context, q string) ([]store.SuggestionItem, error)
	TrendingTerms(ctx context.Context) ([]store.TermCount, error)
	CategoryDistribution(ctx context.Context) (map[string]int, error)
	SourceCounts(ctx context.Context) (map[string]int, error)
	Stats(ctx context.Context) (store.StatsOverview, error)
}

// CategoryStore serves the category taxonomy.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, name string) (*models.Category, error)
}

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

// Runner exposes the scheduler controls used by the admin endpoints.
type Runner interface {
	Trigger(ctx context.Context, source string) (scraper.Result, error)
	Status() scheduler.Status
}

// AuthConfig carries the JWT signing parameters.
type AuthConfig struct {
	Secret string
	Expire time.Duration
}

// Handlers holds the dependencies of every route handler.
type Handlers struct {
	articles   ArticleStore
	categories CategoryStore
	users      UserStore
	cat        *categorizer.Categorizer
	runner     Runner
	auth       AuthConfig
}

func NewHandlers(articles ArticleStore, categories CategoryStore, users UserStore, cat *categorizer.Categorizer, runner Runner, auth AuthConfig) *Handlers {
	return &Handlers{
		articles:   articles,
		categories: categories,
		users:      users,
		cat:        cat,
		runner:     runner,
		auth:       auth,
	}
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
