package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/bilgisen/ainews/internal/models"
	"github.com/redis/go-redis/v9"
)

// SeedCategories inserts the default taxonomy. Existing categories are
// left untouched, so reruns on startup are safe.
func (s *Store) SeedCategories(ctx context.Context, categories []models.Category) (int, error) {
	created := 0
	for _, c := range categories {
		now := time.Now()
		c.CreatedAt = now
		c.UpdatedAt = now

		data, err := json.Marshal(c)
		if err != nil {
			return created, fmt.Errorf("marshaling category %s: %w", c.Name, err)
		}
		ok, err := s.rdb.SetNX(ctx, s.key("category", c.Name), data, 0).Result()
		if err != nil {
			return created, fmt.Errorf("seeding category %s: %w", c.Name, err)
		}
		if ok {
			created++
		}
		if err := s.rdb.SAdd(ctx, s.key("categories"), c.Name).Err(); err != nil {
			return created, fmt.Errorf("indexing category %s: %w", c.Name, err)
		}
	}
	return created, nil
}

// ListCategories returns all categories ordered by SortOrder.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	names, err := s.rdb.SMembers(ctx, s.key("categories")).Result()
	if err != nil {
		return nil, fmt.Errorf("listing category names: %w", err)
	}
	if len(names) == 0 {
		return nil, nil
	}

	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = s.key("category", name)
	}
	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}

	categories := make([]models.Category, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var c models.Category
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			continue
		}
		categories = append(categories, c)
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].SortOrder < categories[j].SortOrder
	})
	return categories, nil
}

// GetCategory loads one category by slug.
func (s *Store) GetCategory(ctx context.Context, name string) (*models.Category, error) {
	data, err := s.rdb.Get(ctx, s.key("category", name)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading category %s: %w", name, err)
	}
	var c models.Category
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshaling category %s: %w", name, err)
	}
	return &c, nil
}

// SaveCategory overwrites a category document.
func (s *Store) SaveCategory(ctx context.Context, c *models.Category) error {
	c.UpdatedAt = time.Now()
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling category %s: %w", c.Name, err)
	}
	if err := s.rdb.Set(ctx, s.key("category", c.Name), data, 0).Err(); err != nil {
		return fmt.Errorf("storing category %s: %w", c.Name, err)
	}
	return s.rdb.SAdd(ctx, s.key("categories"), c.Name).Err()
}

// RefreshCategoryCounts recomputes the per-category article counters
// from the stored articles. Called opportunistically after scrape runs;
// a stale counter between runs is acceptable.
func (s *Store) RefreshCategoryCounts(ctx context.Context) error {
	counts, err := s.CategoryDistribution(ctx)
	if err != nil {
		return err
	}
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return err
	}
	for i := range categories {
		c := &categories[i]
		if c.ArticleCount == counts[c.Name] {
			continue
		}
		c.ArticleCount = counts[c.Name]
		if err := s.SaveCategory(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
