package api

import (
	"errors"

	"github.com/bilgisen/ainews/internal/logger"
	"github.com/bilgisen/ainews/internal/models"
	"github.com/bilgisen/ainews/internal/store"
	"github.com/gofiber/fiber/v2"
)

// categoryNode is a category with its children resolved, used by the
// hierarchy view.
type categoryNode struct {
	models.Category
	Children []models.Category `json:"children"`
}

// ListCategories handles GET /api/categories. With hierarchy=true only
// top-level categories are returned, each carrying its children.
func (h *Handlers) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categories.ListCategories(c.Context())
	if err != nil {
		logger.Error().Err(err).Msg("listing categories")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching categories",
		})
	}

	if c.Query("includeCount", "true") == "true" {
		counts, err := h.articles.CategoryDistribution(c.Context())
		if err != nil {
			logger.Error().Err(err).Msg("counting category articles")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error fetching categories",
			})
		}
		for i := range categories {
			categories[i].ArticleCount = counts[categories[i].Name]
		}
	}

	if c.Query("hierarchy") == "true" {
		byParent := map[string][]models.Category{}
		for _, cat := range categories {
			if cat.ParentCategory != "" {
				byParent[cat.ParentCategory] = append(byParent[cat.ParentCategory], cat)
			}
		}
		roots := make([]categoryNode, 0, len(categories))
		for _, cat := range categories {
			if cat.ParentCategory != "" {
				continue
			}
			children := byParent[cat.Name]
			if children == nil {
				children = []models.Category{}
			}
			roots = append(roots, categoryNode{Category: cat, Children: children})
		}
		return c.JSON(fiber.Map{"categories": roots})
	}

	return c.JSON(fiber.Map{"categories": emptyIfNil(categories)})
}

// GetCategory handles GET /api/categories/:name.
func (h *Handlers) GetCategory(c *fiber.Ctx) error {
	name := c.Params("name")

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

	counts, err := h.articles.CategoryDistribution(c.Context())
	if err == nil {
		category.ArticleCount = counts[category.Name]
	}

	return c.JSON(fiber.Map{"category": category})
}

// GetCategoryArticles handles GET /api/categories/:name/articles.
func (h *Handlers) GetCategoryArticles(c *fiber.Ctx) error {
	return h.categoryArticles(c, c.Params("name"))
}

// GetCategoryDistribution handles GET /api/categories/stats/distribution.
func (h *Handlers) GetCategoryDistribution(c *fiber.Ctx) error {
	counts, err := h.articles.CategoryDistribution(c.Context())
	if err != nil {
		logger.Error().Err(err).Msg("computing category distribution")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching category distribution",
		})
	}

	categories, err := h.categories.ListCategories(c.Context())
	if err != nil {
		logger.Error().Err(err).Msg("listing categories")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching category distribution",
		})
	}

	type entry struct {
		Name        string `json:"name"`
		DisplayName string `json:"displayName"`
		Color       string `json:"color"`
		Count       int    `json:"count"`
	}
	distribution := make([]entry, 0, len(categories))
	for _, cat := range categories {
		if counts[cat.Name] == 0 {
			continue
		}
		distribution = append(distribution, entry{
			Name:        cat.Name,
			DisplayName: cat.DisplayName,
			Color:       cat.Color,
			Count:       counts[cat.Name],
		})
	}

	return c.JSON(fiber.Map{"distribution": distribution})
}

// SuggestCategories handles GET /api/categories/suggest. It scores
// free text against the taxonomy without persisting anything.
func (h *Handlers) SuggestCategories(c *fiber.Ctx) error {
	text := c.Query("text")
	if text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Text is required",
		})
	}
	limit := queryInt(c, "limit", 5)
	return c.JSON(fiber.Map{"suggestions": h.cat.Suggest(text, limit)})
}
