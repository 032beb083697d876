package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bilgisen/ainews/internal/logger"
	"github.com/bilgisen/ainews/internal/models"
	"github.com/go-resty/resty/v2"
)

var hackerNewsKeywordTags = []string{
	"python", "javascript", "react", "tensorflow", "pytorch",
	"github", "open source", "startup", "research", "paper",
	"tutorial", "framework", "library", "api", "cloud",
}

// HackerNews scrapes top and new stories from the Firebase API.
type HackerNews struct {
	client   *resty.Client
	store    Store
	rel      Relevance
	baseURL  string
	delay    time.Duration
	topLimit int
	newLimit int
}

func NewHackerNews(store Store, rel Relevance) *HackerNews {
	return &HackerNews{
		client:   newClient(30 * time.Second),
		store:    store,
		rel:      rel,
		baseURL:  "https://hacker-news.firebaseio.com/v0",
		delay:    100 * time.Millisecond,
		topLimit: 100,
		newLimit: 50,
	}
}

func (h *HackerNews) Name() string { return "hackernews" }

type hackerNewsItem struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	URL         string `json:"url"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
}

// Scrape covers the top stories first, then the new stories, so fresh
// AI items surface even before they accumulate points.
func (h *HackerNews) Scrape(ctx context.Context) (Result, error) {
	res := Result{Source: h.Name()}

	if err := h.scrapeList(ctx, "topstories", h.topLimit, &res); err != nil {
		return res, err
	}
	if err := h.scrapeList(ctx, "newstories", h.newLimit, &res); err != nil {
		return res, err
	}
	return res, nil
}

func (h *HackerNews) scrapeList(ctx context.Context, list string, limit int, res *Result) error {
	var ids []int
	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&ids).
		Get(fmt.Sprintf("%s/%s.json", h.baseURL, list))
	if err != nil {
		logger.Warn().Err(err).Str("list", list).Msg("hackernews list fetch failed")
		return nil
	}
	if resp.StatusCode() != http.StatusOK {
		logger.Warn().Int("status", resp.StatusCode()).Str("list", list).Msg("hackernews list fetch failed")
		return nil
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	for i, id := range ids {
		if i > 0 {
			if err := sleep(ctx, h.delay); err != nil {
				return err
			}
		}

		var story hackerNewsItem
		resp, err := h.client.R().
			SetContext(ctx).
			SetResult(&story).
			Get(fmt.Sprintf("%s/item/%d.json", h.baseURL, id))
		if err != nil || resp.StatusCode() != http.StatusOK {
			logger.Warn().Err(err).Int("id", id).Msg("hackernews item fetch failed")
			continue
		}

		if story.Type != "story" || story.URL == "" {
			continue
		}
		res.Found++
		if !h.rel.IsRelevant(story.Title + " " + story.Text) {
			continue
		}

		article := h.toArticle(story)
		saved, err := h.store.SaveNew(ctx, article)
		if err != nil {
			logger.Error().Err(err).Str("url", article.URL).Msg("saving hackernews article")
			continue
		}
		if saved {
			res.Saved++
		}
	}
	return nil
}

func (h *HackerNews) toArticle(story hackerNewsItem) *models.Article {
	author := story.By
	authorURL := ""
	if author == "" {
		author = "Anonymous"
	} else {
		authorURL = "https://news.ycombinator.com/user?id=" + author
	}

	return &models.Article{
		Title:       story.Title,
		Description: hackerNewsDescription(story),
		URL:         story.URL,
		Source: models.Source{
			Name: "Hacker News",
			URL:  "https://news.ycombinator.com",
			Type: models.SourceHackerNews,
		},
		Author: models.Author{
			Name: author,
			URL:  authorURL,
		},
		Categories:  h.rel.Categorize(story.Title),
		Tags:        hackerNewsTags(story),
		PublishedAt: time.Unix(story.Time, 0),
		Popularity: models.Popularity{
			Score:    story.Score,
			Comments: story.Descendants,
		},
		Metadata: models.Metadata{
			Language: "en",
			// Only the title is known here; assume a short external read.
			ReadingTime: 3,
			Difficulty:  hackerNewsDifficulty(story),
			HasCode:     hasCodeContent(story.Title) || strings.Contains(story.URL, "github.com"),
		},
	}
}

func hackerNewsDescription(story hackerNewsItem) string {
	if story.Text != "" {
		return truncate(cleanText(story.Text), 300)
	}
	if u, err := url.Parse(story.URL); err == nil && u.Hostname() != "" {
		return "Article from " + u.Hostname()
	}
	return story.Title
}

func hackerNewsTags(story hackerNewsItem) []string {
	tags := []string{"hackernews", "tech-news"}
	tags = append(tags, keywordTags(story.Title, hackerNewsKeywordTags)...)

	if u, err := url.Parse(story.URL); err == nil {
		host := u.Hostname()
		switch {
		case strings.Contains(host, "github.com"):
			tags = append(tags, "github", "open-source")
		case strings.Contains(host, "arxiv.org"):
			tags = append(tags, "arxiv", "research")
		case strings.Contains(host, "youtube.com"):
			tags = append(tags, "video")
		case strings.Contains(host, "medium.com"):
			tags = append(tags, "blog")
		}
	}
	return uniqueTags(tags)
}

func hackerNewsDifficulty(story hackerNewsItem) string {
	if strings.Contains(story.URL, "arxiv.org") ||
		strings.Contains(story.URL, "research") ||
		strings.Contains(story.URL, "paper") {
		return models.DifficultyAdvanced
	}
	return estimateDifficulty(story.Title)
}
