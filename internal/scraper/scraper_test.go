package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/bilgisen/ainews/internal/categorizer"
	"github.com/bilgisen/ainews/internal/logger"
	"github.com/bilgisen/ainews/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Config{Level: "error"})
	os.Exit(m.Run())
}

// memStore records saved articles and enforces URL uniqueness the way
// the real store does.
type memStore struct {
	mu       sync.Mutex
	articles []*models.Article
	seen     map[string]bool
}

func newMemStore() *memStore {
	return &memStore{seen: map[string]bool{}}
}

func (m *memStore) SaveNew(_ context.Context, article *models.Article) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen[article.URL] {
		return false, nil
	}
	m.seen[article.URL] = true
	m.articles = append(m.articles, article)
	return true, nil
}

const githubSearchBody = `{
  "items": [
    {
      "name": "vision-seg",
      "full_name": "acme/vision-seg",
      "description": "An image segmentation toolkit with pretrained models",
      "html_url": "https://github.com/acme/vision-seg",
      "language": "Python",
      "topics": ["computer-vision", "deep-learning"],
      "stargazers_count": 1200,
      "forks_count": 200,
      "watchers_count": 1200,
      "open_issues_count": 40,
      "created_at": "2025-03-01T00:00:00Z",
      "updated_at": "2025-08-30T00:00:00Z",
      "owner": {
        "login": "acme",
        "html_url": "https://github.com/acme",
        "avatar_url": "https://avatars.example.com/acme.png"
      }
    }
  ]
}`

func newGitHubForTest(store Store, baseURL string) *GitHub {
	g := NewGitHub(store, categorizer.New(), "")
	g.baseURL = baseURL
	g.delay = 0
	return g
}

func TestGitHubScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/repositories", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(githubSearchBody))
	}))
	defer srv.Close()

	store := newMemStore()
	g := newGitHubForTest(store, srv.URL)

	res, err := g.Scrape(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "github", res.Source)
	// Ten topics return the same repo; only the first insert counts.
	assert.Equal(t, 10, res.Found)
	assert.Equal(t, 1, res.Saved)

	require.Len(t, store.articles, 1)
	a := store.articles[0]
	assert.Equal(t, "vision-seg", a.Title)
	assert.Equal(t, models.SourceGitHub, a.Source.Type)
	assert.True(t, a.Metadata.HasCode)
	assert.True(t, a.Metadata.IsOpenSource)
	assert.Contains(t, a.Categories, "computer-vision")
	assert.Contains(t, a.Tags, "open-source")
	assert.Equal(t, 1200, a.Popularity.Stars)
	assert.Greater(t, a.Popularity.Score, 1000)
}

func TestGitHubScrapeSkipsFailedTopics(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	store := newMemStore()
	g := newGitHubForTest(store, srv.URL)

	res, err := g.Scrape(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Found)
	assert.Equal(t, len(githubTopics), calls)
}

func arxivFeedBody() string {
	published := time.Now().Add(-48 * time.Hour).UTC().Format(time.RFC3339)
	updated := time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339)
	return `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query Results</title>
  <entry>
    <id>http://arxiv.org/abs/2508.12345v1</id>
    <title>Scaling  Transformer
      Inference</title>
    <summary>We present a transformer inference method with code and implementation details.</summary>
    <published>` + published + `</published>
    <updated>` + updated + `</updated>
    <author><name>A. Researcher</name></author>
    <author><name>B. Scholar</name></author>
    <link href="http://arxiv.org/abs/2508.12345v1" rel="alternate" type="text/html"/>
  </entry>
</feed>`
}

func TestArxivScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "submittedDate", r.URL.Query().Get("sortBy"))
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(arxivFeedBody()))
	}))
	defer srv.Close()

	store := newMemStore()
	a := NewArxiv(store, categorizer.New())
	a.baseURL = srv.URL
	a.delay = 0

	res, err := a.Scrape(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(arxivCategories), res.Found)
	assert.Equal(t, 1, res.Saved)

	require.Len(t, store.articles, 1)
	paper := store.articles[0]
	assert.Equal(t, "https://arxiv.org/abs/2508.12345v1", paper.URL)
	assert.Equal(t, "Scaling Transformer Inference", paper.Title)
	assert.Equal(t, models.DifficultyAdvanced, paper.Metadata.Difficulty)
	assert.True(t, paper.Metadata.IsPaper)
	assert.True(t, paper.Metadata.HasCode)
	assert.Contains(t, paper.Author.Name, "A. Researcher")
	assert.Contains(t, paper.Tags, "research")
	// Two days old plus the revision bonus.
	assert.Greater(t, paper.Popularity.Score, 90)
}

const redditListingBody = `{
  "data": {
    "children": [
      {"data": {
        "title": "Pinned: subreddit rules",
        "selftext": "rules",
        "stickied": true,
        "is_self": true,
        "permalink": "/r/MachineLearning/rules",
        "author": "mod",
        "created_utc": 1756300000
      }},
      {"data": {
        "title": "New transformer architecture discussion",
        "selftext": "We trained a deep learning model, code at github.com/x/y",
        "stickied": false,
        "is_self": true,
        "permalink": "/r/MachineLearning/comments/abc/new_transformer",
        "author": "researcher",
        "created_utc": 1756300000,
        "score": 321,
        "ups": 330,
        "num_comments": 45,
        "link_flair_text": "Research",
        "domain": "self.MachineLearning"
      }},
      {"data": {
        "title": "My sourdough starter journal",
        "selftext": "bread things",
        "stickied": false,
        "is_self": true,
        "permalink": "/r/MachineLearning/comments/def/bread",
        "author": "baker",
        "created_utc": 1756300000
      }}
    ]
  }
}`

func TestRedditScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(redditListingBody))
	}))
	defer srv.Close()

	store := newMemStore()
	rd := NewReddit(store, categorizer.New())
	rd.baseURL = srv.URL
	rd.delay = 0

	res, err := rd.Scrape(context.Background())
	require.NoError(t, err)
	// Stickied posts never count; the off-topic one is found but gated.
	assert.Equal(t, 2*len(redditSubreddits), res.Found)
	assert.Equal(t, 1, res.Saved)

	require.Len(t, store.articles, 1)
	post := store.articles[0]
	assert.Equal(t, "https://reddit.com/r/MachineLearning/comments/abc/new_transformer", post.URL)
	assert.Equal(t, models.SourceReddit, post.Source.Type)
	assert.Equal(t, 321, post.Popularity.Score)
	assert.Equal(t, 330, post.Popularity.Likes)
	assert.Equal(t, 45, post.Popularity.Comments)
	assert.Contains(t, post.Tags, "machinelearning")
	assert.True(t, post.Metadata.HasCode)
}

func TestHackerNewsScrape(t *testing.T) {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `[1, 2, 3]`)
	})
	mux.HandleFunc("/newstories.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `[]`)
	})
	mux.HandleFunc("/item/1.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"id":1,"type":"story","title":"Show HN: An open source LLM inference engine","url":"https://github.com/acme/infer","by":"acme","time":1756300000,"score":240,"descendants":80}`)
	})
	mux.HandleFunc("/item/2.json", func(w http.ResponseWriter, r *http.Request) {
		// Job posting, must be skipped before the relevance gate.
		writeJSON(w, `{"id":2,"type":"job","title":"Hiring engineers","url":"https://example.com/jobs"}`)
	})
	mux.HandleFunc("/item/3.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"id":3,"type":"story","title":"A new ferry schedule for the bay","url":"https://example.com/ferry","by":"sailor","time":1756300000}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := newMemStore()
	hn := NewHackerNews(store, categorizer.New())
	hn.baseURL = srv.URL
	hn.delay = 0

	res, err := hn.Scrape(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Found)
	assert.Equal(t, 1, res.Saved)

	require.Len(t, store.articles, 1)
	story := store.articles[0]
	assert.Equal(t, "https://github.com/acme/infer", story.URL)
	assert.Equal(t, models.SourceHackerNews, story.Source.Type)
	assert.Equal(t, 240, story.Popularity.Score)
	assert.Equal(t, 80, story.Popularity.Comments)
	assert.Equal(t, 3, story.Metadata.ReadingTime)
	assert.True(t, story.Metadata.HasCode)
	assert.Contains(t, story.Tags, "open-source")
}

const rssFeedBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <item>
      <title>Introducing our new &lt;b&gt;diffusion&lt;/b&gt; model</title>
      <link>https://blog.example.com/diffusion</link>
      <description>A generative model tutorial with code examples.</description>
      <pubDate>Mon, 25 Aug 2025 10:00:00 GMT</pubDate>
      <category>Generative AI</category>
    </item>
    <item>
      <title>Office plants for summer</title>
      <link>https://blog.example.com/plants</link>
      <description>Succulents and more.</description>
      <pubDate>Mon, 25 Aug 2025 11:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func TestRSSScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssFeedBody))
	}))
	defer srv.Close()

	store := newMemStore()
	r := NewRSS(store, categorizer.New())
	r.feeds = []FeedConfig{{Name: "Test", URL: srv.URL, Source: "OpenAI", Type: models.SourceBlog}}
	r.delay = 0

	res, err := r.Scrape(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Found)
	assert.Equal(t, 1, res.Saved)

	require.Len(t, store.articles, 1)
	post := store.articles[0]
	assert.Equal(t, "https://blog.example.com/diffusion", post.URL)
	assert.Equal(t, "Introducing our new diffusion model", post.Title)
	assert.Contains(t, post.Tags, "generative-ai")
	// Base 10 + OpenAI boost 20; the recency bonus depends on the clock.
	assert.GreaterOrEqual(t, post.Popularity.Score, 30)
}

func TestRSSScrapeDedup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssFeedBody))
	}))
	defer srv.Close()

	store := newMemStore()
	r := NewRSS(store, categorizer.New())
	r.feeds = []FeedConfig{{Name: "Test", URL: srv.URL, Source: "Test", Type: models.SourceBlog}}
	r.delay = 0

	_, err := r.Scrape(context.Background())
	require.NoError(t, err)

	// Second pass sees the same items and inserts nothing new.
	res, err := r.Scrape(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Saved)
	assert.Len(t, store.articles, 1)
}

func TestSleepRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := sleep(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}
