package scraper

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bilgisen/ainews/internal/logger"
	"github.com/bilgisen/ainews/internal/models"
	"github.com/go-resty/resty/v2"
)

var redditSubreddits = []string{
	"MachineLearning",
	"artificial",
	"deeplearning",
	"computervision",
	"LanguageTechnology",
	"robotics",
	"reinforcementlearning",
	"datascience",
	"MLQuestions",
	"ArtificialIntelligence",
}

var redditKeywordTags = []string{
	"research", "paper", "tutorial", "discussion", "question",
	"project", "dataset", "model", "framework", "library",
	"beginner", "advanced", "open source", "github",
}

// Reddit scrapes hot posts from AI subreddits via the public JSON API.
type Reddit struct {
	client  *resty.Client
	store   Store
	rel     Relevance
	baseURL string
	delay   time.Duration
}

func NewReddit(store Store, rel Relevance) *Reddit {
	return &Reddit{
		client:  newClient(30 * time.Second),
		store:   store,
		rel:     rel,
		baseURL: "https://www.reddit.com",
		delay:   2 * time.Second,
	}
}

func (r *Reddit) Name() string { return "reddit" }

type redditPost struct {
	Title         string  `json:"title"`
	Selftext      string  `json:"selftext"`
	URL           string  `json:"url"`
	Permalink     string  `json:"permalink"`
	Author        string  `json:"author"`
	CreatedUTC    float64 `json:"created_utc"`
	Score         int     `json:"score"`
	Ups           int     `json:"ups"`
	NumComments   int     `json:"num_comments"`
	Stickied      bool    `json:"stickied"`
	IsSelf        bool    `json:"is_self"`
	Domain        string  `json:"domain"`
	LinkFlairText string  `json:"link_flair_text"`
	Thumbnail     string  `json:"thumbnail"`
	Preview       struct {
		Images []struct {
			Source struct {
				URL string `json:"url"`
			} `json:"source"`
		} `json:"images"`
	} `json:"preview"`
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Scrape walks the subreddit list, keeping non-stickied posts that
// pass the relevance gate.
func (r *Reddit) Scrape(ctx context.Context) (Result, error) {
	res := Result{Source: r.Name()}

	for i, subreddit := range redditSubreddits {
		if i > 0 {
			if err := sleep(ctx, r.delay); err != nil {
				return res, err
			}
		}

		var listing redditListing
		resp, err := r.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"limit": "25",
				"t":     "week",
			}).
			SetResult(&listing).
			Get(r.baseURL + "/r/" + subreddit + "/hot.json")
		if err != nil {
			logger.Warn().Err(err).Str("subreddit", subreddit).Msg("reddit fetch failed")
			continue
		}
		if resp.StatusCode() != http.StatusOK {
			logger.Warn().Int("status", resp.StatusCode()).Str("subreddit", subreddit).Msg("reddit fetch failed")
			continue
		}

		for _, child := range listing.Data.Children {
			post := child.Data
			if post.Stickied {
				continue
			}
			if !post.IsSelf && post.URL == "" {
				continue
			}
			res.Found++
			if !r.rel.IsRelevant(post.Title + " " + post.Selftext) {
				continue
			}

			article := r.toArticle(post, subreddit)
			saved, err := r.store.SaveNew(ctx, article)
			if err != nil {
				logger.Error().Err(err).Str("url", article.URL).Msg("saving reddit article")
				continue
			}
			if saved {
				res.Saved++
			}
		}
	}
	return res, nil
}

func (r *Reddit) toArticle(post redditPost, subreddit string) *models.Article {
	url := post.URL
	if post.IsSelf {
		url = "https://reddit.com" + post.Permalink
	}

	return &models.Article{
		Title:       post.Title,
		Description: redditDescription(post),
		Content:     post.Selftext,
		URL:         url,
		ImageURL:    redditImageURL(post),
		Source: models.Source{
			Name: "Reddit - r/" + subreddit,
			URL:  "https://reddit.com/r/" + subreddit,
			Type: models.SourceReddit,
		},
		Author: models.Author{
			Name: post.Author,
			URL:  "https://reddit.com/u/" + post.Author,
		},
		Categories:  r.rel.Categorize(post.Title + " " + post.Selftext),
		Tags:        redditTags(post, subreddit),
		PublishedAt: time.Unix(int64(post.CreatedUTC), 0),
		Popularity: models.Popularity{
			Score:    post.Score,
			Likes:    post.Ups,
			Comments: post.NumComments,
		},
		Metadata: models.Metadata{
			Language:    "en",
			ReadingTime: readingTimeOr(post.Selftext, post.Title),
			Difficulty:  estimateDifficulty(post.Title + " " + post.Selftext),
			HasCode:     hasCodeContent(post.Selftext),
		},
	}
}

func redditDescription(post redditPost) string {
	if post.Selftext != "" {
		return truncate(post.Selftext, 300)
	}
	if post.URL != "" && post.URL != post.Title {
		return "Discussion about: " + post.URL
	}
	return post.Title
}

func redditTags(post redditPost, subreddit string) []string {
	tags := []string{"reddit", strings.ToLower(subreddit)}
	if post.LinkFlairText != "" {
		tags = append(tags, slugify(post.LinkFlairText))
	}
	tags = append(tags, keywordTags(post.Title+" "+post.Selftext, redditKeywordTags)...)

	switch {
	case strings.Contains(post.Domain, "github.com"):
		tags = append(tags, "github", "open-source")
	case strings.Contains(post.Domain, "arxiv.org"):
		tags = append(tags, "arxiv", "research")
	case strings.Contains(post.Domain, "youtube.com"):
		tags = append(tags, "video", "tutorial")
	}
	return uniqueTags(tags)
}

func redditImageURL(post redditPost) string {
	if post.Thumbnail != "" && post.Thumbnail != "self" && post.Thumbnail != "default" {
		return post.Thumbnail
	}
	if len(post.Preview.Images) > 0 {
		return strings.ReplaceAll(post.Preview.Images[0].Source.URL, "&amp;", "&")
	}
	return ""
}

func readingTimeOr(text, fallback string) int {
	if text == "" {
		text = fallback
	}
	return readingTime(text)
}
