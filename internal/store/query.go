package store

import (
	"sort"
	"strings"
	"time"

	"github.com/bilgisen/ainews/internal/models"
)

// ListQuery captures the filter, sort and pagination knobs of the
// article listing endpoints.
type ListQuery struct {
	Page      int
	Limit     int
	Category  string
	Source    string
	SortBy    string // publishedAt, popularity, views
	SortOrder string // asc, desc
	Featured  *bool
	TimeRange string // today, week, month, all
}

// SearchQuery is a full-text query over titles, descriptions, tags and
// author names.
type SearchQuery struct {
	Q        string
	Category string
	Source   string
	DateFrom time.Time // zero means unbounded
	DateTo   time.Time
	SortBy   string // relevance, date, popularity
	Page     int
	Limit    int
}

// Pagination is the page envelope returned next to article lists.
type Pagination struct {
	CurrentPage   int  `json:"currentPage"`
	TotalPages    int  `json:"totalPages"`
	TotalArticles int  `json:"totalArticles"`
	HasNextPage   bool `json:"hasNextPage"`
	HasPrevPage   bool `json:"hasPrevPage"`
	Limit         int  `json:"limit"`
}

// TermCount is one trending tag with its occurrence count.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// SuggestionItem is one search autocomplete entry.
type SuggestionItem struct {
	Type  string `json:"type"` // title or tag
	Text  string `json:"text"`
	Value string `json:"value"`
}

// StatsOverview is the aggregate article count summary.
type StatsOverview struct {
	TotalArticles int `json:"totalArticles"`
	TodayArticles int `json:"todayArticles"`
	WeekArticles  int `json:"weekArticles"`
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func timeRangeCutoff(timeRange string, now time.Time) (time.Time, bool) {
	switch timeRange {
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}

func hasString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

// filterArticles applies the ListQuery filters. Inactive articles are
// always dropped.
func filterArticles(articles []models.Article, q ListQuery, now time.Time) []models.Article {
	cutoff, bounded := timeRangeCutoff(q.TimeRange, now)

	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if !a.IsActive {
			continue
		}
		if q.Category != "" && !hasString(a.Categories, q.Category) {
			continue
		}
		if q.Source != "" && string(a.Source.Type) != q.Source {
			continue
		}
		if q.Featured != nil && a.IsFeatured != *q.Featured {
			continue
		}
		if bounded && a.PublishedAt.Before(cutoff) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// sortArticles orders in place. Unknown sortBy values fall back to
// publishedAt, unknown orders to descending.
func sortArticles(articles []models.Article, sortBy, sortOrder string) {
	asc := sortOrder == "asc"
	less := func(a, b models.Article) bool {
		switch sortBy {
		case "popularity":
			if a.Popularity.Score != b.Popularity.Score {
				return a.Popularity.Score < b.Popularity.Score
			}
		case "views":
			if a.Popularity.Views != b.Popularity.Views {
				return a.Popularity.Views < b.Popularity.Views
			}
		}
		return a.PublishedAt.Before(b.PublishedAt)
	}
	sort.SliceStable(articles, func(i, j int) bool {
		if asc {
			return less(articles[i], articles[j])
		}
		return less(articles[j], articles[i])
	})
}

// paginate slices one page out and builds the envelope.
func paginate(articles []models.Article, page, limit int) ([]models.Article, Pagination) {
	page, limit = normalizePage(page, limit)

	total := len(articles)
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return articles[start:end], Pagination{
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalArticles: total,
		HasNextPage:   page < totalPages,
		HasPrevPage:   page > 1,
		Limit:         limit,
	}
}

// searchScore ranks an article against a lowercased query. Title hits
// weigh most, then tags, then description and author. Zero means no
// match.
func searchScore(a models.Article, q string) int {
	score := 0
	if strings.Contains(strings.ToLower(a.Title), q) {
		score += 3
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			score += 2
			break
		}
	}
	if strings.Contains(strings.ToLower(a.Description), q) {
		score++
	}
	if strings.Contains(strings.ToLower(a.Author.Name), q) {
		score++
	}
	return score
}

// searchArticles filters by the query text plus the optional category,
// source and publication date bounds, ordered by relevance unless the
// query asks for date or popularity order.
func searchArticles(articles []models.Article, q SearchQuery) []models.Article {
	needle := strings.ToLower(strings.TrimSpace(q.Q))

	type scored struct {
		article models.Article
		score   int
	}
	matches := make([]scored, 0, len(articles))
	for _, a := range articles {
		if !a.IsActive {
			continue
		}
		if q.Category != "" && !hasString(a.Categories, q.Category) {
			continue
		}
		if q.Source != "" && string(a.Source.Type) != q.Source {
			continue
		}
		if !q.DateFrom.IsZero() && a.PublishedAt.Before(q.DateFrom) {
			continue
		}
		if !q.DateTo.IsZero() && a.PublishedAt.After(q.DateTo) {
			continue
		}
		s := searchScore(a, needle)
		if s == 0 {
			continue
		}
		matches = append(matches, scored{article: a, score: s})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		switch q.SortBy {
		case "date":
			return matches[i].article.PublishedAt.After(matches[j].article.PublishedAt)
		case "popularity":
			return matches[i].article.Popularity.Score > matches[j].article.Popularity.Score
		}
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].article.PublishedAt.After(matches[j].article.PublishedAt)
	})

	out := make([]models.Article, len(matches))
	for i, m := range matches {
		out[i] = m.article
	}
	return out
}

// trendingTerms collects tags from articles published in the last week
// and keeps the ones seen at least twice, most frequent first, capped
// at ten.
func trendingTerms(articles []models.Article, now time.Time) []TermCount {
	cutoff := now.AddDate(0, 0, -7)
	counts := map[string]int{}
	for _, a := range articles {
		if !a.IsActive || a.PublishedAt.Before(cutoff) {
			continue
		}
		for _, tag := range a.Tags {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag != "" {
				counts[tag]++
			}
		}
	}

	terms := make([]TermCount, 0, len(counts))
	for term, count := range counts {
		if count >= 2 {
			terms = append(terms, TermCount{Term: term, Count: count})
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})
	if len(terms) > 10 {
		terms = terms[:10]
	}
	return terms
}

// searchSuggestions offers up to five title matches and five tag
// matches for an autocomplete prefix, capped at ten entries.
func searchSuggestions(articles []models.Article, q string) []SuggestionItem {
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return nil
	}

	var titles []SuggestionItem
	tagCounts := map[string]int{}
	for _, a := range articles {
		if !a.IsActive {
			continue
		}
		if len(titles) < 5 && strings.Contains(strings.ToLower(a.Title), needle) {
			titles = append(titles, SuggestionItem{Type: "title", Text: a.Title, Value: a.Title})
		}
		for _, tag := range a.Tags {
			if strings.Contains(strings.ToLower(tag), needle) {
				tagCounts[strings.ToLower(tag)]++
			}
		}
	}

	tags := make([]TermCount, 0, len(tagCounts))
	for tag, count := range tagCounts {
		tags = append(tags, TermCount{Term: tag, Count: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Term < tags[j].Term
	})
	if len(tags) > 5 {
		tags = tags[:5]
	}

	suggestions := titles
	for _, tag := range tags {
		suggestions = append(suggestions, SuggestionItem{Type: "tag", Text: tag.Term, Value: tag.Term})
	}
	if len(suggestions) > 10 {
		suggestions = suggestions[:10]
	}
	return suggestions
}

// statsOverview counts active articles overall, since local midnight,
// and over the trailing week.
func statsOverview(articles []models.Article, now time.Time) StatsOverview {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)

	var stats StatsOverview
	for _, a := range articles {
		if !a.IsActive {
			continue
		}
		stats.TotalArticles++
		if !a.PublishedAt.Before(midnight) {
			stats.TodayArticles++
		}
		if !a.PublishedAt.Before(weekAgo) {
			stats.WeekArticles++
		}
	}
	return stats
}

// countByCategory tallies active articles per category slug.
func countByCategory(articles []models.Article) map[string]int {
	counts := map[string]int{}
	for _, a := range articles {
		if !a.IsActive {
			continue
		}
		for _, c := range a.Categories {
			counts[c]++
		}
	}
	return counts
}

// countBySource tallies active articles per source type.
func countBySource(articles []models.Article) map[string]int {
	counts := map[string]int{}
	for _, a := range articles {
		if !a.IsActive {
			continue
		}
		counts[string(a.Source.Type)]++
	}
	return counts
}
