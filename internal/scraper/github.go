package scraper

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/bilgisen/ainews/internal/logger"
	"github.com/bilgisen/ainews/internal/models"
	"github.com/go-resty/resty/v2"
)

var githubTopics = []string{
	"machine-learning",
	"artificial-intelligence",
	"deep-learning",
	"computer-vision",
	"natural-language-processing",
	"tensorflow",
	"pytorch",
	"neural-network",
	"data-science",
	"reinforcement-learning",
}

// GitHub scrapes trending AI repositories from the GitHub search API.
type GitHub struct {
	client  *resty.Client
	store   Store
	rel     Relevance
	baseURL string
	delay   time.Duration
}

func NewGitHub(store Store, rel Relevance, token string) *GitHub {
	client := newClient(30 * time.Second).
		SetHeader("Accept", "application/vnd.github.v3+json")
	if token != "" {
		client.SetHeader("Authorization", "token "+token)
	}
	return &GitHub{
		client:  client,
		store:   store,
		rel:     rel,
		baseURL: "https://api.github.com",
		delay:   time.Second,
	}
}

func (g *GitHub) Name() string { return "github" }

type githubRepo struct {
	Name            string   `json:"name"`
	FullName        string   `json:"full_name"`
	Description     string   `json:"description"`
	HTMLURL         string   `json:"html_url"`
	Language        string   `json:"language"`
	Topics          []string `json:"topics"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	WatchersCount   int      `json:"watchers_count"`
	OpenIssuesCount int      `json:"open_issues_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Owner           struct {
		Login     string `json:"login"`
		HTMLURL   string `json:"html_url"`
		AvatarURL string `json:"avatar_url"`
	} `json:"owner"`
}

type githubSearchResponse struct {
	Items []githubRepo `json:"items"`
}

// Scrape searches each AI topic for active, well-starred repositories
// and stores the ones not seen before.
func (g *GitHub) Scrape(ctx context.Context) (Result, error) {
	res := Result{Source: g.Name()}
	since := time.Now().AddDate(-1, 0, 0).Format("2006-01-02")

	for i, topic := range githubTopics {
		if i > 0 {
			if err := sleep(ctx, g.delay); err != nil {
				return res, err
			}
		}

		var out githubSearchResponse
		resp, err := g.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"q":        fmt.Sprintf("topic:%s stars:>100 pushed:>%s", topic, since),
				"sort":     "updated",
				"order":    "desc",
				"per_page": "10",
			}).
			SetResult(&out).
			Get(g.baseURL + "/search/repositories")
		if err != nil {
			logger.Warn().Err(err).Str("topic", topic).Msg("github search failed")
			continue
		}
		if resp.StatusCode() != http.StatusOK {
			logger.Warn().Int("status", resp.StatusCode()).Str("topic", topic).Msg("github search failed")
			continue
		}

		for _, repo := range out.Items {
			res.Found++
			article := g.toArticle(repo)
			saved, err := g.store.SaveNew(ctx, article)
			if err != nil {
				logger.Error().Err(err).Str("url", article.URL).Msg("saving github article")
				continue
			}
			if saved {
				res.Saved++
			}
		}
	}
	return res, nil
}

func (g *GitHub) toArticle(repo githubRepo) *models.Article {
	description := repo.Description
	if description == "" {
		description = "No description available"
	}
	text := fmt.Sprintf("%s %s %s", repo.Name, repo.Description, strings.Join(repo.Topics, " "))

	tags := append([]string{}, repo.Topics...)
	if repo.Language != "" {
		tags = append(tags, repo.Language)
	}
	tags = append(tags, "open-source", "github")

	return &models.Article{
		Title:       repo.Name,
		Description: description,
		URL:         repo.HTMLURL,
		ImageURL:    repo.Owner.AvatarURL,
		Source: models.Source{
			Name: "GitHub",
			URL:  "https://github.com",
			Type: models.SourceGitHub,
		},
		Author: models.Author{
			Name: repo.Owner.Login,
			URL:  repo.Owner.HTMLURL,
		},
		Categories:  g.rel.Categorize(text),
		Tags:        uniqueTags(tags),
		PublishedAt: repo.CreatedAt,
		Popularity: models.Popularity{
			Stars: repo.StargazersCount,
			Score: repoScore(repo),
		},
		Metadata: models.Metadata{
			Language:     repo.Language,
			Difficulty:   estimateDifficulty(repo.Description + " " + strings.Join(repo.Topics, " ")),
			IsOpenSource: true,
			HasCode:      true,
		},
	}
}

// repoScore weighs stars most, then forks and watchers, with a bonus
// for recent pushes and a penalty for the open issue backlog.
func repoScore(repo githubRepo) int {
	daysSinceUpdate := time.Since(repo.UpdatedAt).Hours() / 24
	recentActivityBonus := math.Max(0, 100-daysSinceUpdate)

	return int(math.Round(
		float64(repo.StargazersCount)*1.0 +
			float64(repo.ForksCount)*0.5 +
			float64(repo.WatchersCount)*0.3 +
			recentActivityBonus*0.1 -
			float64(repo.OpenIssuesCount)*0.1,
	))
}
