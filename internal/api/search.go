package api

import (
	"strings"
	"time"

	"github.com/bilgisen/ainews/internal/logger"
	"github.com/bilgisen/ainews/internal/store"
	"github.com/gofiber/fiber/v2"
)

// queryDate reads a date query param, accepting RFC 3339 or plain
// YYYY-MM-DD. Unparseable values are treated as absent.
func queryDate(c *fiber.Ctx, key string) time.Time {
	v := c.Query(key)
	if v == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t
	}
	return time.Time{}
}

// Search handles GET /api/search. A missing query is a 400.
func (h *Handlers) Search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Search query is required",
		})
	}

	articles, pagination, err := h.articles.Search(c.Context(), store.SearchQuery{
		Q:        q,
		Category: c.Query("category"),
		Source:   c.Query("source"),
		DateFrom: queryDate(c, "dateFrom"),
		DateTo:   queryDate(c, "dateTo"),
		SortBy:   c.Query("sortBy", "relevance"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 20),
	})
	if err != nil {
		logger.Error().Err(err).Str("q", q).Msg("searching articles")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error searching articles",
		})
	}

	return c.JSON(fiber.Map{
		"articles":    emptyIfNil(articles),
		"searchQuery": q,
		"filters": fiber.Map{
			"category": c.Query("category"),
			"source":   c.Query("source"),
			"dateFrom": c.Query("dateFrom"),
			"dateTo":   c.Query("dateTo"),
			"sortBy":   c.Query("sortBy", "relevance"),
		},
		"pagination": pagination,
	})
}

// GetSuggestions handles GET /api/search/suggestions. Queries shorter
// than two characters return an empty list rather than an error.
func (h *Handlers) GetSuggestions(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if len(q) < 2 {
		return c.JSON(fiber.Map{"suggestions": []store.SuggestionItem{}})
	}

	suggestions, err := h.articles.Suggestions(c.Context(), q)
	if err != nil {
		logger.Error().Err(err).Str("q", q).Msg("building suggestions")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error getting suggestions",
		})
	}
	return c.JSON(fiber.Map{"suggestions": emptyIfNil(suggestions)})
}

// GetTrendingTerms handles GET /api/search/trending.
func (h *Handlers) GetTrendingTerms(c *fiber.Ctx) error {
	terms, err := h.articles.TrendingTerms(c.Context())
	if err != nil {
		logger.Error().Err(err).Msg("computing trending terms")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error getting trending terms",
		})
	}
	return c.JSON(fiber.Map{"trending": emptyIfNil(terms)})
}

// GetSearchFilters handles GET /api/search/filters.
func (h *Handlers) GetSearchFilters(c *fiber.Ctx) error {
	categories, err := h.categories.ListCategories(c.Context())
	if err != nil {
		logger.Error().Err(err).Msg("listing categories")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error getting filter options",
		})
	}
	sources, err := h.articles.SourceCounts(c.Context())
	if err != nil {
		logger.Error().Err(err).Msg("counting sources")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error getting filter options",
		})
	}

	type option struct {
		Value string `json:"value"`
		Label string `json:"label"`
		Count int    `json:"count,omitempty"`
	}
	categoryOptions := make([]option, 0, len(categories))
	for _, cat := range categories {
		categoryOptions = append(categoryOptions, option{Value: cat.Name, Label: cat.DisplayName})
	}
	sourceOptions := make([]option, 0, len(sources))
	for value, count := range sources {
		if value == "" {
			continue
		}
		sourceOptions = append(sourceOptions, option{
			Value: value,
			Label: strings.ToUpper(value[:1]) + value[1:],
			Count: count,
		})
	}

	return c.JSON(fiber.Map{
		"categories": categoryOptions,
		"sources":    sourceOptions,
	})
}
