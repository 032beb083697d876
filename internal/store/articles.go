package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/bilgisen/ainews/internal/models"
	"github.com/bilgisen/ainews/internal/utils"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SaveNew persists a candidate article unless its canonical URL has
// been seen before. The URL claim is a SETNX, so two fetchers racing
// on the same discovery cannot both insert. Returns false when the
// URL already exists; that is the expected dedup no-op, not an error.
func (s *Store) SaveNew(ctx context.Context, article *models.Article) (bool, error) {
	if article.URL == "" {
		return false, fmt.Errorf("article has no URL")
	}
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	if article.ScrapedAt.IsZero() {
		article.ScrapedAt = time.Now()
	}
	article.IsActive = true

	urlKey := s.key("article", "url", utils.Hash(article.URL))
	claimed, err := s.rdb.SetNX(ctx, urlKey, article.ID, 0).Result()
	if err != nil {
		return false, fmt.Errorf("claiming article url: %w", err)
	}
	if !claimed {
		return false, nil
	}

	data, err := json.Marshal(article)
	if err != nil {
		return false, fmt.Errorf("marshaling article: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, s.key("article", article.ID), data, 0)
	pipe.ZAdd(ctx, s.key("articles", "published"), redis.Z{
		Score:  float64(article.PublishedAt.Unix()),
		Member: article.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("storing article: %w", err)
	}
	return true, nil
}

// GetArticle loads one article by id, merging in the live view counter.
func (s *Store) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	data, err := s.rdb.Get(ctx, s.key("article", id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading article %s: %w", id, err)
	}

	var article models.Article
	if err := json.Unmarshal(data, &article); err != nil {
		return nil, fmt.Errorf("unmarshaling article %s: %w", id, err)
	}

	views, err := s.rdb.Get(ctx, s.key("article", "views", id)).Int()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("loading view count for %s: %w", id, err)
	}
	article.Popularity.Views = views
	return &article, nil
}

// IncrementViews bumps the article's view counter by one.
func (s *Store) IncrementViews(ctx context.Context, id string) (int, error) {
	views, err := s.rdb.Incr(ctx, s.key("article", "views", id)).Result()
	if err != nil {
		return 0, fmt.Errorf("incrementing views for %s: %w", id, err)
	}
	return int(views), nil
}

// AllArticles loads every stored article, newest published first, with
// live view counters merged in so list ordering and responses see the
// same numbers as single-article reads. Query filtering, sorting and
// pagination happen in memory on top of this; the aggregator's working
// set is small enough that the simple approach beats maintaining one
// index per filter combination.
func (s *Store) AllArticles(ctx context.Context) ([]models.Article, error) {
	ids, err := s.rdb.ZRevRange(ctx, s.key("articles", "published"), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing article ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key("article", id)
	}
	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("loading articles: %w", err)
	}

	articles := make([]models.Article, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var article models.Article
		if err := json.Unmarshal([]byte(raw), &article); err != nil {
			continue
		}
		articles = append(articles, article)
	}

	views, err := s.viewCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	mergeViews(articles, views)
	return articles, nil
}

// viewCounts bulk-loads the view counters for the given article ids.
// Missing or malformed counters read as zero.
func (s *Store) viewCounts(ctx context.Context, ids []string) (map[string]int, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key("article", "views", id)
	}
	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("loading view counts: %w", err)
	}

	views := make(map[string]int, len(ids))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(raw); err == nil {
			views[ids[i]] = n
		}
	}
	return views, nil
}

// mergeViews copies live view counters onto their articles.
func mergeViews(articles []models.Article, views map[string]int) {
	for i := range articles {
		if n, ok := views[articles[i].ID]; ok {
			articles[i].Popularity.Views = n
		}
	}
}
