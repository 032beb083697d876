package scraper

import (
	"context"
	"math"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/bilgisen/ainews/internal/logger"
	"github.com/bilgisen/ainews/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

// arXiv subject classes covering AI research.
var arxivCategories = []string{
	"cs.AI",
	"cs.LG",
	"cs.CV",
	"cs.CL",
	"cs.NE",
	"cs.RO",
	"stat.ML",
}

var arxivCategoryTags = map[string][]string{
	"cs.AI":   {"artificial-intelligence", "ai"},
	"cs.LG":   {"machine-learning", "ml"},
	"cs.CV":   {"computer-vision", "cv"},
	"cs.CL":   {"natural-language-processing", "nlp"},
	"cs.NE":   {"neural-networks", "evolutionary-computing"},
	"cs.RO":   {"robotics"},
	"stat.ML": {"statistics", "machine-learning"},
}

var arxivKeywordTags = []string{
	"deep learning", "neural network", "transformer", "attention",
	"reinforcement learning", "supervised learning", "unsupervised learning",
	"gan", "cnn", "rnn", "lstm", "bert", "gpt", "diffusion",
	"classification", "regression", "clustering", "optimization",
}

var arxivIDRe = regexp.MustCompile(`arxiv\.org/abs/(.+)$`)

// Arxiv scrapes recent AI papers from the arXiv Atom API.
type Arxiv struct {
	client  *resty.Client
	store   Store
	rel     Relevance
	parser  *gofeed.Parser
	baseURL string
	delay   time.Duration
}

func NewArxiv(store Store, rel Relevance) *Arxiv {
	return &Arxiv{
		client:  newClient(30 * time.Second),
		store:   store,
		rel:     rel,
		parser:  gofeed.NewParser(),
		baseURL: "http://export.arxiv.org/api/query",
		delay:   time.Second,
	}
}

func (a *Arxiv) Name() string { return "arxiv" }

// Scrape pulls the newest submissions per subject class. Every paper
// is kept as advanced content; the relevance gate is skipped because
// the subject classes are AI by definition.
func (a *Arxiv) Scrape(ctx context.Context) (Result, error) {
	res := Result{Source: a.Name()}

	for i, category := range arxivCategories {
		if i > 0 {
			if err := sleep(ctx, a.delay); err != nil {
				return res, err
			}
		}

		resp, err := a.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"search_query": "cat:" + category,
				"start":        "0",
				"max_results":  "20",
				"sortBy":       "submittedDate",
				"sortOrder":    "descending",
			}).
			Get(a.baseURL)
		if err != nil {
			logger.Warn().Err(err).Str("category", category).Msg("arxiv query failed")
			continue
		}
		if resp.StatusCode() != http.StatusOK {
			logger.Warn().Int("status", resp.StatusCode()).Str("category", category).Msg("arxiv query failed")
			continue
		}

		feed, err := a.parser.ParseString(string(resp.Body()))
		if err != nil {
			logger.Warn().Err(err).Str("category", category).Msg("parsing arxiv feed")
			continue
		}

		for _, item := range feed.Items {
			res.Found++
			article := a.toArticle(item, category)
			if article == nil {
				continue
			}
			saved, err := a.store.SaveNew(ctx, article)
			if err != nil {
				logger.Error().Err(err).Str("url", article.URL).Msg("saving arxiv article")
				continue
			}
			if saved {
				res.Saved++
			}
		}
	}
	return res, nil
}

func (a *Arxiv) toArticle(item *gofeed.Item, category string) *models.Article {
	id := extractArxivID(item.Link)
	if id == "" {
		return nil
	}
	url := "https://arxiv.org/abs/" + id

	title := cleanText(item.Title)
	summary := cleanText(item.Description)

	published := time.Now()
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	}
	var updated time.Time
	if item.UpdatedParsed != nil {
		updated = *item.UpdatedParsed
	}

	return &models.Article{
		Title:       title,
		Description: truncate(summary, 500),
		Content:     summary,
		URL:         url,
		Source: models.Source{
			Name: "arXiv",
			URL:  "https://arxiv.org",
			Type: models.SourceArxiv,
		},
		Author: models.Author{
			Name: strings.Join(arxivAuthors(item), ", "),
		},
		Categories:  a.rel.Categorize(title + " " + summary),
		Tags:        arxivTags(title+" "+summary, category),
		PublishedAt: published,
		Popularity: models.Popularity{
			Score: paperScore(published, updated),
		},
		Metadata: models.Metadata{
			Language:    "en",
			ReadingTime: readingTime(summary),
			Difficulty:  models.DifficultyAdvanced,
			IsPaper:     true,
			HasCode:     hasCodeContent(summary),
		},
	}
}

func extractArxivID(link string) string {
	if m := arxivIDRe.FindStringSubmatch(link); m != nil {
		return m[1]
	}
	return ""
}

// arxivAuthors returns up to five author names.
func arxivAuthors(item *gofeed.Item) []string {
	names := make([]string, 0, len(item.Authors))
	for _, author := range item.Authors {
		if author == nil || author.Name == "" {
			continue
		}
		names = append(names, author.Name)
		if len(names) == 5 {
			break
		}
	}
	if len(names) == 0 {
		return []string{"Unknown"}
	}
	return names
}

func arxivTags(text, category string) []string {
	tags := []string{"research", "paper", "arxiv"}
	tags = append(tags, arxivCategoryTags[category]...)
	tags = append(tags, keywordTags(text, arxivKeywordTags)...)
	return uniqueTags(tags)
}

// paperScore rewards recency, with a small bonus for revised papers.
func paperScore(published, updated time.Time) int {
	daysSincePublished := time.Since(published).Hours() / 24
	score := math.Max(0, 100-daysSincePublished)
	if !updated.IsZero() && !updated.Equal(published) {
		score += 10
	}
	return int(math.Round(score))
}
