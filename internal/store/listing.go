package store

import (
	"context"
	"time"

	"github.com/bilgisen/ainews/internal/models"
)

// List returns one page of articles matching the query.
func (s *Store) List(ctx context.Context, q ListQuery) ([]models.Article, Pagination, error) {
	articles, err := s.AllArticles(ctx)
	if err != nil {
		return nil, Pagination{}, err
	}
	articles = filterArticles(articles, q, time.Now())
	sortArticles(articles, q.SortBy, q.SortOrder)
	page, pg := paginate(articles, q.Page, q.Limit)
	return page, pg, nil
}

// Trending returns the highest scored articles of the last week.
func (s *Store) Trending(ctx context.Context, limit int) ([]models.Article, error) {
	articles, err := s.AllArticles(ctx)
	if err != nil {
		return nil, err
	}
	articles = filterArticles(articles, ListQuery{TimeRange: "week"}, time.Now())
	sortArticles(articles, "popularity", "desc")
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}

// Recent returns the newest articles across all sources.
func (s *Store) Recent(ctx context.Context, limit int) ([]models.Article, error) {
	articles, err := s.AllArticles(ctx)
	if err != nil {
		return nil, err
	}
	articles = filterArticles(articles, ListQuery{}, time.Now())
	sortArticles(articles, "publishedAt", "desc")
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}

// Featured returns editor-flagged articles, newest first.
func (s *Store) Featured(ctx context.Context, limit int) ([]models.Article, error) {
	featured := true
	articles, err := s.AllArticles(ctx)
	if err != nil {
		return nil, err
	}
	articles = filterArticles(articles, ListQuery{Featured: &featured}, time.Now())
	sortArticles(articles, "publishedAt", "desc")
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}

// Search runs a relevance-ranked text query and paginates the result.
func (s *Store) Search(ctx context.Context, q SearchQuery) ([]models.Article, Pagination, error) {
	articles, err := s.AllArticles(ctx)
	if err != nil {
		return nil, Pagination{}, err
	}
	matches := searchArticles(articles, q)
	page, pg := paginate(matches, q.Page, q.Limit)
	return page, pg, nil
}

// Suggestions returns autocomplete entries for a search prefix.
func (s *Store) Suggestions(ctx context.Context, q string) ([]SuggestionItem, error) {
	articles, err := s.AllArticles(ctx)
	if err != nil {
		return nil, err
	}
	return searchSuggestions(articles, q), nil
}

// Stats returns the aggregate article counters.
func (s *Store) Stats(ctx context.Context) (StatsOverview, error) {
	articles, err := s.AllArticles(ctx)
	if err != nil {
		return StatsOverview{}, err
	}
	return statsOverview(articles, time.Now()), nil
}

// TrendingTerms returns the most frequent tags of the last week.
func (s *Store) TrendingTerms(ctx context.Context) ([]TermCount, error) {
	articles, err := s.AllArticles(ctx)
	if err != nil {
		return nil, err
	}
	return trendingTerms(articles, time.Now()), nil
}

// CategoryDistribution returns the active article count per category.
func (s *Store) CategoryDistribution(ctx context.Context) (map[string]int, error) {
	articles, err := s.AllArticles(ctx)
	if err != nil {
		return nil, err
	}
	return countByCategory(articles), nil
}

// SourceCounts returns the active article count per source type.
func (s *Store) SourceCounts(ctx context.Context) (map[string]int, error) {
	articles, err := s.AllArticles(ctx)
	if err != nil {
		return nil, err
	}
	return countBySource(articles), nil
}
