package store

import (
	"testing"
	"time"

	"github.com/bilgisen/ainews/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArticle(id string, age time.Duration, mod func(*models.Article)) models.Article {
	a := models.Article{
		ID:          id,
		Title:       "Article " + id,
		URL:         "https://example.com/" + id,
		Source:      models.Source{Name: "Example", Type: models.SourceRSS},
		Categories:  []string{"machine-learning"},
		PublishedAt: time.Now().Add(-age),
		IsActive:    true,
	}
	if mod != nil {
		mod(&a)
	}
	return a
}

func TestFilterArticlesDropsInactiveAndApplyFilters(t *testing.T) {
	now := time.Now()
	articles := []models.Article{
		testArticle("a", time.Hour, nil),
		testArticle("b", time.Hour, func(a *models.Article) { a.IsActive = false }),
		testArticle("c", time.Hour, func(a *models.Article) {
			a.Categories = []string{"nlp"}
			a.Source.Type = models.SourceGitHub
		}),
		testArticle("d", 10*24*time.Hour, nil),
	}

	out := filterArticles(articles, ListQuery{}, now)
	assert.Len(t, out, 3) // inactive dropped

	out = filterArticles(articles, ListQuery{Category: "nlp"}, now)
	require.Len(t, out, 1)
	assert.Equal(t, "c", out[0].ID)

	out = filterArticles(articles, ListQuery{Source: "github"}, now)
	require.Len(t, out, 1)
	assert.Equal(t, "c", out[0].ID)

	out = filterArticles(articles, ListQuery{TimeRange: "week"}, now)
	assert.Len(t, out, 2) // d is older than a week
}

func TestFilterArticlesTimeRangeToday(t *testing.T) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	articles := []models.Article{
		testArticle("fresh", 0, nil),
		testArticle("month-old", 30*24*time.Hour, nil),
		// Published just before midnight, so outside today regardless
		// of the wall clock.
		testArticle("yesterday", 0, func(a *models.Article) {
			a.PublishedAt = midnight.Add(-time.Minute)
		}),
	}

	out := filterArticles(articles, ListQuery{TimeRange: "today"}, now)
	require.Len(t, out, 1)
	assert.Equal(t, "fresh", out[0].ID)
}

func TestFilterArticlesFeatured(t *testing.T) {
	articles := []models.Article{
		testArticle("a", time.Hour, func(a *models.Article) { a.IsFeatured = true }),
		testArticle("b", time.Hour, nil),
	}

	featured := true
	out := filterArticles(articles, ListQuery{Featured: &featured}, time.Now())
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
}

func TestSortArticlesByPopularityAndOrder(t *testing.T) {
	articles := []models.Article{
		testArticle("low", time.Hour, func(a *models.Article) { a.Popularity.Score = 10 }),
		testArticle("high", 2*time.Hour, func(a *models.Article) { a.Popularity.Score = 90 }),
		testArticle("mid", 3*time.Hour, func(a *models.Article) { a.Popularity.Score = 50 }),
	}

	sortArticles(articles, "popularity", "desc")
	assert.Equal(t, "high", articles[0].ID)
	assert.Equal(t, "low", articles[2].ID)

	sortArticles(articles, "popularity", "asc")
	assert.Equal(t, "low", articles[0].ID)

	// Unknown sort key falls back to publishedAt descending.
	sortArticles(articles, "bogus", "desc")
	assert.Equal(t, "low", articles[0].ID) // newest
}

func TestPaginate(t *testing.T) {
	articles := make([]models.Article, 45)
	for i := range articles {
		articles[i] = testArticle(string(rune('a'+i%26)), time.Duration(i)*time.Hour, nil)
	}

	page, pg := paginate(articles, 2, 20)
	assert.Len(t, page, 20)
	assert.Equal(t, 2, pg.CurrentPage)
	assert.Equal(t, 3, pg.TotalPages)
	assert.Equal(t, 45, pg.TotalArticles)
	assert.True(t, pg.HasNextPage)
	assert.True(t, pg.HasPrevPage)

	page, pg = paginate(articles, 3, 20)
	assert.Len(t, page, 5)
	assert.False(t, pg.HasNextPage)

	// Out of range pages return an empty slice, not an error.
	page, pg = paginate(articles, 99, 20)
	assert.Empty(t, page)
	assert.Equal(t, 99, pg.CurrentPage)
}

func TestPaginateDefaultsAndCaps(t *testing.T) {
	articles := []models.Article{testArticle("a", time.Hour, nil)}

	_, pg := paginate(articles, 0, 0)
	assert.Equal(t, 1, pg.CurrentPage)
	assert.Equal(t, defaultPageSize, pg.Limit)

	_, pg = paginate(articles, 1, 5000)
	assert.Equal(t, maxPageSize, pg.Limit)
}

func TestPaginateEmpty(t *testing.T) {
	page, pg := paginate(nil, 1, 20)
	assert.Empty(t, page)
	assert.Equal(t, 1, pg.TotalPages)
	assert.Equal(t, 0, pg.TotalArticles)
	assert.False(t, pg.HasNextPage)
	assert.False(t, pg.HasPrevPage)
}

func TestSearchArticlesRelevanceOrder(t *testing.T) {
	articles := []models.Article{
		testArticle("desc-only", time.Hour, func(a *models.Article) {
			a.Title = "Weekly roundup"
			a.Description = "All about transformers this week"
		}),
		testArticle("title-hit", 2*time.Hour, func(a *models.Article) {
			a.Title = "Transformers explained"
		}),
		testArticle("unrelated", time.Hour, func(a *models.Article) {
			a.Title = "Robotics digest"
		}),
	}

	out := searchArticles(articles, SearchQuery{Q: "transformers"})
	require.Len(t, out, 2)
	assert.Equal(t, "title-hit", out[0].ID)
	assert.Equal(t, "desc-only", out[1].ID)
}

func TestSearchArticlesFilters(t *testing.T) {
	articles := []models.Article{
		testArticle("a", time.Hour, func(a *models.Article) {
			a.Title = "diffusion models"
			a.Source.Type = models.SourceArxiv
		}),
		testArticle("b", time.Hour, func(a *models.Article) {
			a.Title = "diffusion models in production"
		}),
	}

	out := searchArticles(articles, SearchQuery{Q: "diffusion", Source: "arxiv"})
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
}

func TestSearchArticlesDateBounds(t *testing.T) {
	articles := []models.Article{
		testArticle("fresh", time.Hour, func(a *models.Article) { a.Title = "agents survey" }),
		testArticle("stale", 30*24*time.Hour, func(a *models.Article) { a.Title = "agents retrospective" }),
	}

	out := searchArticles(articles, SearchQuery{
		Q:        "agents",
		DateFrom: time.Now().AddDate(0, 0, -7),
	})
	require.Len(t, out, 1)
	assert.Equal(t, "fresh", out[0].ID)

	out = searchArticles(articles, SearchQuery{
		Q:      "agents",
		DateTo: time.Now().AddDate(0, 0, -7),
	})
	require.Len(t, out, 1)
	assert.Equal(t, "stale", out[0].ID)
}

func TestSearchArticlesSortBy(t *testing.T) {
	articles := []models.Article{
		testArticle("weak-new", time.Hour, func(a *models.Article) {
			a.Description = "mentions rlhf in passing"
			a.Popularity.Score = 5
		}),
		testArticle("strong-old", 48*time.Hour, func(a *models.Article) {
			a.Title = "RLHF from scratch"
			a.Popularity.Score = 90
		}),
	}

	byRelevance := searchArticles(articles, SearchQuery{Q: "rlhf"})
	assert.Equal(t, "strong-old", byRelevance[0].ID)

	byDate := searchArticles(articles, SearchQuery{Q: "rlhf", SortBy: "date"})
	assert.Equal(t, "weak-new", byDate[0].ID)

	byPopularity := searchArticles(articles, SearchQuery{Q: "rlhf", SortBy: "popularity"})
	assert.Equal(t, "strong-old", byPopularity[0].ID)
}

func TestMergeViewsFeedsViewSort(t *testing.T) {
	articles := []models.Article{
		testArticle("quiet", time.Hour, nil),
		testArticle("popular", 2*time.Hour, nil),
		testArticle("uncounted", 3*time.Hour, nil),
	}

	mergeViews(articles, map[string]int{"quiet": 2, "popular": 40})

	assert.Equal(t, 2, articles[0].Popularity.Views)
	assert.Equal(t, 40, articles[1].Popularity.Views)
	assert.Equal(t, 0, articles[2].Popularity.Views)

	// With counters merged, sortBy=views reflects actual readership
	// instead of collapsing into publication order.
	sortArticles(articles, "views", "desc")
	assert.Equal(t, "popular", articles[0].ID)
	assert.Equal(t, "quiet", articles[1].ID)
	assert.Equal(t, "uncounted", articles[2].ID)
}

func TestTrendingTerms(t *testing.T) {
	now := time.Now()
	articles := []models.Article{
		testArticle("a", time.Hour, func(a *models.Article) { a.Tags = []string{"llm", "pytorch"} }),
		testArticle("b", 2*time.Hour, func(a *models.Article) { a.Tags = []string{"LLM"} }),
		testArticle("c", 3*time.Hour, func(a *models.Article) { a.Tags = []string{"pytorch"} }),
		// Outside the window, its tags must not count.
		testArticle("old", 10*24*time.Hour, func(a *models.Article) { a.Tags = []string{"llm", "rust"} }),
	}

	terms := trendingTerms(articles, now)
	require.Len(t, terms, 2)
	assert.Equal(t, TermCount{Term: "llm", Count: 2}, terms[0])
	assert.Equal(t, TermCount{Term: "pytorch", Count: 2}, terms[1])
}

func TestTrendingTermsDropsSingletonsAndCapsAtTen(t *testing.T) {
	articles := []models.Article{
		testArticle("a", time.Hour, func(a *models.Article) { a.Tags = []string{"once"} }),
	}
	assert.Empty(t, trendingTerms(articles, time.Now()))

	var many []models.Article
	for i := 0; i < 2; i++ {
		many = append(many, testArticle("m", time.Hour, func(a *models.Article) {
			a.Tags = []string{"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8", "t9", "t10", "t11"}
		}))
	}
	assert.Len(t, trendingTerms(many, time.Now()), 10)
}

func TestCountByCategoryAndSource(t *testing.T) {
	articles := []models.Article{
		testArticle("a", time.Hour, nil),
		testArticle("b", time.Hour, func(a *models.Article) {
			a.Categories = []string{"machine-learning", "nlp"}
			a.Source.Type = models.SourceGitHub
		}),
		testArticle("c", time.Hour, func(a *models.Article) { a.IsActive = false }),
	}

	byCat := countByCategory(articles)
	assert.Equal(t, 2, byCat["machine-learning"])
	assert.Equal(t, 1, byCat["nlp"])

	bySrc := countBySource(articles)
	assert.Equal(t, 1, bySrc["rss"])
	assert.Equal(t, 1, bySrc["github"])
}
