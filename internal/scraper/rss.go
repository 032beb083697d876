package scraper

import (
	"context"
	"net/http"
	"time"

	"github.com/bilgisen/ainews/internal/logger"
	"github.com/bilgisen/ainews/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

// FeedConfig is one RSS or Atom feed to poll.
type FeedConfig struct {
	Name   string
	URL    string
	Source string
	Type   models.SourceType
}

// DefaultFeeds is the curated set of AI blogs and publications.
var DefaultFeeds = []FeedConfig{
	{Name: "Google AI Blog", URL: "https://ai.googleblog.com/feeds/posts/default", Source: "Google AI", Type: models.SourceBlog},
	{Name: "OpenAI Blog", URL: "https://openai.com/blog/rss.xml", Source: "OpenAI", Type: models.SourceBlog},
	{Name: "DeepMind Blog", URL: "https://deepmind.com/blog/feed/basic/", Source: "DeepMind", Type: models.SourceBlog},
	{Name: "MIT Technology Review AI", URL: "https://www.technologyreview.com/feed/", Source: "MIT Technology Review", Type: models.SourceBlog},
	{Name: "VentureBeat AI", URL: "https://venturebeat.com/ai/feed/", Source: "VentureBeat", Type: models.SourceBlog},
	{Name: "Towards Data Science", URL: "https://towardsdatascience.com/feed", Source: "Towards Data Science", Type: models.SourceBlog},
	{Name: "The Gradient", URL: "https://thegradient.pub/rss/", Source: "The Gradient", Type: models.SourceBlog},
	{Name: "Distill", URL: "https://distill.pub/rss.xml", Source: "Distill", Type: models.SourceBlog},
	{Name: "AI News", URL: "https://artificialintelligence-news.com/feed/", Source: "AI News", Type: models.SourceBlog},
	{Name: "Machine Learning Mastery", URL: "https://machinelearningmastery.com/feed/", Source: "Machine Learning Mastery", Type: models.SourceBlog},
}

// sourceBoosts raise the base score for high-signal publishers.
var sourceBoosts = map[string]int{
	"Google AI":             20,
	"OpenAI":                20,
	"DeepMind":              20,
	"MIT Technology Review": 15,
	"Towards Data Science":  10,
}

var rssKeywordTags = []string{
	"tutorial", "research", "paper", "guide", "introduction",
	"advanced", "beginner", "framework", "library", "tool",
	"python", "javascript", "tensorflow", "pytorch",
}

const rssItemsPerFeed = 20

// RSS polls a fixed list of blogs and publications.
type RSS struct {
	client *resty.Client
	store  Store
	rel    Relevance
	parser *gofeed.Parser
	feeds  []FeedConfig
	delay  time.Duration
}

func NewRSS(store Store, rel Relevance) *RSS {
	return &RSS{
		client: newClient(30 * time.Second),
		store:  store,
		rel:    rel,
		parser: gofeed.NewParser(),
		feeds:  DefaultFeeds,
		delay:  2 * time.Second,
	}
}

func (r *RSS) Name() string { return "rss" }

// Scrape walks the feed list. A broken feed is logged and skipped.
func (r *RSS) Scrape(ctx context.Context) (Result, error) {
	res := Result{Source: r.Name()}

	for i, feedCfg := range r.feeds {
		if i > 0 {
			if err := sleep(ctx, r.delay); err != nil {
				return res, err
			}
		}

		resp, err := r.client.R().
			SetContext(ctx).
			Get(feedCfg.URL)
		if err != nil {
			logger.Warn().Err(err).Str("feed", feedCfg.Name).Msg("feed fetch failed")
			continue
		}
		if resp.StatusCode() != http.StatusOK {
			logger.Warn().Int("status", resp.StatusCode()).Str("feed", feedCfg.Name).Msg("feed fetch failed")
			continue
		}

		feed, err := r.parser.ParseString(string(resp.Body()))
		if err != nil {
			logger.Warn().Err(err).Str("feed", feedCfg.Name).Msg("parsing feed")
			continue
		}

		items := feed.Items
		if len(items) > rssItemsPerFeed {
			items = items[:rssItemsPerFeed]
		}

		for _, item := range items {
			if item.Link == "" {
				continue
			}
			res.Found++
			if !r.rel.IsRelevant(item.Title + " " + item.Description) {
				continue
			}

			article := r.toArticle(item, feedCfg)
			saved, err := r.store.SaveNew(ctx, article)
			if err != nil {
				logger.Error().Err(err).Str("url", article.URL).Msg("saving feed article")
				continue
			}
			if saved {
				res.Saved++
			}
		}
	}
	return res, nil
}

func (r *RSS) toArticle(item *gofeed.Item, feedCfg FeedConfig) *models.Article {
	title := cleanText(item.Title)
	if title == "" {
		title = "Untitled"
	}
	description := cleanText(item.Description)
	content := cleanText(item.Content)
	if content == "" {
		content = description
	}

	published := time.Now()
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	}

	return &models.Article{
		Title:       title,
		Description: truncate(description, 500),
		Content:     content,
		URL:         item.Link,
		ImageURL:    feedImageURL(item),
		Source: models.Source{
			Name: feedCfg.Source,
			URL:  feedCfg.URL,
			Type: feedCfg.Type,
		},
		Author: models.Author{
			Name: feedAuthor(item),
		},
		Categories:  r.rel.Categorize(title + " " + description),
		Tags:        feedTags(item, feedCfg),
		PublishedAt: published,
		Popularity: models.Popularity{
			Score: feedScore(published, feedCfg),
		},
		Metadata: models.Metadata{
			Language:    "en",
			ReadingTime: readingTimeOr(content, title),
			Difficulty:  estimateDifficulty(title + " " + description),
			HasCode:     hasCodeContent(content),
		},
	}
}

func feedAuthor(item *gofeed.Item) string {
	for _, author := range item.Authors {
		if author != nil && author.Name != "" {
			return author.Name
		}
	}
	return "Unknown"
}

func feedImageURL(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && len(enc.Type) >= 6 && enc.Type[:6] == "image/" {
			return enc.URL
		}
	}
	return extractImageURL(item.Content)
}

func feedTags(item *gofeed.Item, feedCfg FeedConfig) []string {
	tags := []string{"rss", "blog", slugify(feedCfg.Source)}
	for _, c := range item.Categories {
		tags = append(tags, slugify(c))
	}
	tags = append(tags, keywordTags(item.Title+" "+item.Description, rssKeywordTags)...)
	return uniqueTags(tags)
}

// feedScore starts at 10 and rises with publisher reputation and
// recency.
func feedScore(published time.Time, feedCfg FeedConfig) int {
	score := 10 + sourceBoosts[feedCfg.Source]

	daysSincePublished := time.Since(published).Hours() / 24
	switch {
	case daysSincePublished < 1:
		score += 15
	case daysSincePublished < 7:
		score += 10
	case daysSincePublished < 30:
		score += 5
	}
	return score
}
