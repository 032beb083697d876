package api

import (
	"errors"
	"strconv"

	"github.com/bilgisen/ainews/internal/logger"
	"github.com/bilgisen/ainews/internal/store"
	"github.com/gofiber/fiber/v2"
)

func queryInt(c *fiber.Ctx, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return v
}

// GetNews handles GET /api/news.
func (h *Handlers) GetNews(c *fiber.Ctx) error {
	q := store.ListQuery{
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 20),
		Category:  c.Query("category"),
		Source:    c.Query("source"),
		SortBy:    c.Query("sortBy", "publishedAt"),
		SortOrder: c.Query("sortOrder", "desc"),
		TimeRange: c.Query("timeRange"),
	}
	if c.Query("featured") == "true" {
		featured := true
		q.Featured = &featured
	}

	articles, pagination, err := h.articles.List(c.Context(), q)
	if err != nil {
		logger.Error().Err(err).Msg("listing articles")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching articles",
		})
	}

	return c.JSON(fiber.Map{
		"articles":   emptyIfNil(articles),
		"pagination": pagination,
	})
}

// GetTrending handles GET /api/news/trending.
func (h *Handlers) GetTrending(c *fiber.Ctx) error {
	articles, err := h.articles.Trending(c.Context(), queryInt(c, "limit", 10))
	if err != nil {
		logger.Error().Err(err).Msg("listing trending articles")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching trending articles",
		})
	}
	return c.JSON(fiber.Map{"articles": emptyIfNil(articles)})
}

// GetRecent handles GET /api/news/recent.
func (h *Handlers) GetRecent(c *fiber.Ctx) error {
	articles, err := h.articles.Recent(c.Context(), queryInt(c, "limit", 20))
	if err != nil {
		logger.Error().Err(err).Msg("listing recent articles")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching recent articles",
		})
	}
	return c.JSON(fiber.Map{"articles": emptyIfNil(articles)})
}

// GetFeatured handles GET /api/news/featured.
func (h *Handlers) GetFeatured(c *fiber.Ctx) error {
	articles, err := h.articles.Featured(c.Context(), queryInt(c, "limit", 5))
	if err != nil {
		logger.Error().Err(err).Msg("listing featured articles")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching featured articles",
		})
	}
	return c.JSON(fiber.Map{"articles": emptyIfNil(articles)})
}

// GetArticle handles GET /api/news/:id. Every successful read bumps
// the view counter.
func (h *Handlers) GetArticle(c *fiber.Ctx) error {
	id := c.Params("id")

	article, err := h.articles.GetArticle(c.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Article not found",
		})
	}
	if err != nil {
		logger.Error().Err(err).Str("id", id).Msg("loading article")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching article",
		})
	}

	views, err := h.articles.IncrementViews(c.Context(), id)
	if err != nil {
		logger.Warn().Err(err).Str("id", id).Msg("incrementing views")
	} else {
		article.Popularity.Views = views
	}

	return c.JSON(fiber.Map{"article": article})
}

// GetNewsByCategory handles GET /api/news/category/:category.
func (h *Handlers) GetNewsByCategory(c *fiber.Ctx) error {
	return h.categoryArticles(c, c.Params("category"))
}

// GetStats handles GET /api/news/stats/overview.
func (h *Handlers) GetStats(c *fiber.Ctx) error {
	stats, err := h.articles.Stats(c.Context())
	if err != nil {
		logger.Error().Err(err).Msg("computing stats")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching statistics",
		})
	}
	byCategory, err := h.articles.CategoryDistribution(c.Context())
	if err != nil {
		logger.Error().Err(err).Msg("computing category distribution")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching statistics",
		})
	}
	bySource, err := h.articles.SourceCounts(c.Context())
	if err != nil {
		logger.Error().Err(err).Msg("computing source counts")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching statistics",
		})
	}

	return c.JSON(fiber.Map{
		"overview":   stats,
		"categories": byCategory,
		"sources":    bySource,
	})
}

// categoryArticles serves one category page with its metadata.
func (h *Handlers) categoryArticles(c *fiber.Ctx, name string) error {
	category, err := h.categories.GetCategory(c.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Category not found",
		})
	}
	if err != nil {
		logger.Error().Err(err).Str("category", name).Msg("loading category")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching category",
		})
	}

	articles, pagination, err := h.articles.List(c.Context(), store.ListQuery{
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 20),
		Category:  name,
		SortBy:    c.Query("sortBy", "publishedAt"),
		SortOrder: c.Query("sortOrder", "desc"),
	})
	if err != nil {
		logger.Error().Err(err).Str("category", name).Msg("listing category articles")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching category articles",
		})
	}

	return c.JSON(fiber.Map{
		"articles":   emptyIfNil(articles),
		"category":   category,
		"pagination": pagination,
	})
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
