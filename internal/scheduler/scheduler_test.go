package scheduler

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/bilgisen/ainews/internal/logger"
	"github.com/bilgisen/ainews/internal/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Config{Level: "error"})
	os.Exit(m.Run())
}

type fakeScraper struct {
	name string
	mu   sync.Mutex
	runs []time.Time
	err  error
}

func (f *fakeScraper) Name() string { return f.name }

func (f *fakeScraper) Scrape(context.Context) (scraper.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, time.Now())
	return scraper.Result{Source: f.name, Found: 1, Saved: 1}, f.err
}

func (f *fakeScraper) runCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.runs)
}

// blockingScraper parks in Scrape until released, recording the state
// of its context on the way out.
type blockingScraper struct {
	name     string
	started  chan struct{}
	release  chan struct{}
	finished chan struct{}

	mu     sync.Mutex
	ctxErr error
}

func (b *blockingScraper) Name() string { return b.name }

func (b *blockingScraper) Scrape(ctx context.Context) (scraper.Result, error) {
	close(b.started)
	<-b.release
	b.mu.Lock()
	b.ctxErr = ctx.Err()
	b.mu.Unlock()
	close(b.finished)
	return scraper.Result{Source: b.name, Found: 1, Saved: 1}, nil
}

func (b *blockingScraper) scrapeCtxErr() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ctxErr
}

func newTestScheduler(names ...string) (*Scheduler, []*fakeScraper) {
	fakes := make([]*fakeScraper, len(names))
	scrapers := make([]scraper.Scraper, len(names))
	for i, name := range names {
		fakes[i] = &fakeScraper{name: name}
		scrapers[i] = fakes[i]
	}
	s := New(scrapers)
	s.initialDelay = 10 * time.Millisecond
	s.stagger = time.Millisecond
	s.pause = time.Millisecond
	s.shortPause = time.Millisecond
	return s, fakes
}

func TestStartIsIdempotent(t *testing.T) {
	s, _ := newTestScheduler("github", "rss")
	require.NoError(t, s.Start())
	defer s.Stop()

	require.NoError(t, s.Start())
	assert.True(t, s.Status().IsRunning)
}

func TestStopWhenStoppedIsNoOp(t *testing.T) {
	s, _ := newTestScheduler("github")
	s.Stop()
	assert.False(t, s.Status().IsRunning)

	require.NoError(t, s.Start())
	s.Stop()
	s.Stop()
	assert.False(t, s.Status().IsRunning)
}

func TestInitialPassRunsEverySource(t *testing.T) {
	s, fakes := newTestScheduler("github", "arxiv", "reddit")
	require.NoError(t, s.Start())
	defer s.Stop()

	deadline := time.After(2 * time.Second)
	for {
		done := true
		for _, f := range fakes {
			if f.runCount() == 0 {
				done = false
			}
		}
		if done {
			return
		}
		select {
		case <-deadline:
			t.Fatal("initial scrape pass did not reach every source")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestStopCancelsPendingInitialPass(t *testing.T) {
	s, fakes := newTestScheduler("github")
	s.initialDelay = time.Hour
	require.NoError(t, s.Start())

	s.Stop()
	assert.Equal(t, 0, fakes[0].runCount())
}

func TestStopDoesNotAbortInFlightScrape(t *testing.T) {
	b := &blockingScraper{
		name:     "github",
		started:  make(chan struct{}),
		release:  make(chan struct{}),
		finished: make(chan struct{}),
	}
	s := New([]scraper.Scraper{b})
	s.initialDelay = time.Millisecond
	s.stagger = time.Millisecond
	require.NoError(t, s.Start())

	select {
	case <-b.started:
	case <-time.After(2 * time.Second):
		t.Fatal("initial scrape never started")
	}

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on an in-flight scrape")
	}

	close(b.release)
	select {
	case <-b.finished:
	case <-time.After(time.Second):
		t.Fatal("in-flight scrape never completed")
	}
	assert.NoError(t, b.scrapeCtxErr())
}

func TestComprehensiveUpdateRunsSequentially(t *testing.T) {
	s, fakes := newTestScheduler("github", "arxiv", "rss")

	s.runComprehensive(context.Background())

	for _, f := range fakes {
		require.Equal(t, 1, f.runCount(), f.name)
	}
	// Declaration order with pauses in between.
	assert.True(t, fakes[0].runs[0].Before(fakes[1].runs[0]))
	assert.True(t, fakes[1].runs[0].Before(fakes[2].runs[0]))
}

func TestPassCompleteHookRuns(t *testing.T) {
	s, _ := newTestScheduler("github", "rss")

	var mu sync.Mutex
	calls := 0
	s.OnPassComplete(func(context.Context) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	s.runComprehensive(context.Background())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestTrigger(t *testing.T) {
	s, fakes := newTestScheduler("github", "rss")

	res, err := s.Trigger(context.Background(), "rss")
	require.NoError(t, err)
	assert.Equal(t, "rss", res.Source)
	assert.Equal(t, 1, fakes[1].runCount())

	_, err = s.Trigger(context.Background(), "mastodon")
	assert.Error(t, err)
}

func TestTriggerPropagatesError(t *testing.T) {
	s, fakes := newTestScheduler("github")
	fakes[0].err = assert.AnError

	_, err := s.Trigger(context.Background(), "github")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestStatusListsTasks(t *testing.T) {
	s, _ := newTestScheduler("github", "arxiv", "reddit", "hackernews", "rss")

	// Stopped schedulers own no tasks.
	st := s.Status()
	assert.False(t, st.IsRunning)
	assert.Equal(t, 0, st.ActiveTasks)
	assert.Empty(t, st.Tasks)

	require.NoError(t, s.Start())
	st = s.Status()
	assert.True(t, st.IsRunning)
	assert.Equal(t, 6, st.ActiveTasks) // five sources plus comprehensive

	names := make([]string, len(st.Tasks))
	for i, task := range st.Tasks {
		names[i] = task.Name
	}
	assert.Equal(t, []string{"github", "arxiv", "reddit", "hackernews", "rss", "comprehensive"}, names)

	s.Stop()
	st = s.Status()
	assert.False(t, st.IsRunning)
	assert.Equal(t, 0, st.ActiveTasks)
	assert.Empty(t, st.Tasks)
}
