package models

import "time"

// SourceType identifies where an article was scraped from.
type SourceType string

const (
	SourceGitHub     SourceType = "github"
	SourceArxiv      SourceType = "arxiv"
	SourceReddit     SourceType = "reddit"
	SourceHackerNews SourceType = "hackernews"
	SourceRSS        SourceType = "rss"
	SourceBlog       SourceType = "blog"
	SourceOther      SourceType = "other"
)

// Difficulty tiers assigned at ingestion time.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
	DifficultyExpert       = "expert"
)

// Source describes the origin of an article.
type Source struct {
	Name string     `json:"name"`
	URL  string     `json:"url,omitempty"`
	Type SourceType `json:"type"`
}

// Author is the attributed writer or owner of the content.
type Author struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Popularity holds source-specific engagement counters. Each source
// populates a subset; Score is the only field every fetcher fills.
type Popularity struct {
	Score    int `json:"score"`
	Views    int `json:"views"`
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Stars    int `json:"stars"`
}

// Metadata carries derived attributes of an article.
type Metadata struct {
	Language     string `json:"language"`
	ReadingTime  int    `json:"readingTime"` // minutes
	Difficulty   string `json:"difficulty"`
	IsOpenSource bool   `json:"isOpenSource"`
	HasCode      bool   `json:"hasCode"`
	IsPaper      bool   `json:"isPaper"`
}

// Article is one aggregated content item. The URL is the canonical
// deduplication key: re-ingesting an already seen URL is a no-op.
type Article struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Content     string     `json:"content,omitempty"`
	URL         string     `json:"url"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Source      Source     `json:"source"`
	Author      Author     `json:"author"`
	Categories  []string   `json:"categories"`
	Tags        []string   `json:"tags"`
	PublishedAt time.Time  `json:"publishedAt"`
	ScrapedAt   time.Time  `json:"scrapedAt"`
	Popularity  Popularity `json:"popularity"`
	Metadata    Metadata   `json:"metadata"`
	IsActive    bool       `json:"isActive"`
	IsFeatured  bool       `json:"isFeatured"`
}
