package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bilgisen/ainews/internal/logger"
	"github.com/bilgisen/ainews/internal/scraper"
	"github.com/robfig/cron/v3"
)

// schedules maps each source to its cron expression.
var schedules = map[string]string{
	"github":     "0 */2 * * *",
	"arxiv":      "0 */6 * * *",
	"reddit":     "0 */4 * * *",
	"hackernews": "0 */3 * * *",
	"rss":        "0 * * * *",
}

const comprehensiveSchedule = "0 */12 * * *"

// Scheduler drives the scrapers on fixed cron schedules plus a
// staggered initial pass shortly after startup.
type Scheduler struct {
	mu        sync.Mutex
	cron      *cron.Cron
	scrapers  map[string]scraper.Scraper
	order     []string
	running   bool
	cancel    context.CancelFunc
	afterPass func(context.Context)

	initialDelay time.Duration
	stagger      time.Duration
	pause        time.Duration
	shortPause   time.Duration
}

// New builds a scheduler over the given scrapers. The slice order
// defines the stagger order of the initial pass and the sequence of
// the comprehensive update.
func New(scrapers []scraper.Scraper) *Scheduler {
	byName := make(map[string]scraper.Scraper, len(scrapers))
	order := make([]string, 0, len(scrapers))
	for _, s := range scrapers {
		byName[s.Name()] = s
		order = append(order, s.Name())
	}
	return &Scheduler{
		scrapers:     byName,
		order:        order,
		initialDelay: 5 * time.Second,
		stagger:      2 * time.Second,
		pause:        5 * time.Second,
		shortPause:   3 * time.Second,
	}
}

// OnPassComplete registers a hook invoked after the initial and
// comprehensive passes finish, once every source has been scraped.
func (s *Scheduler) OnPassComplete(fn func(context.Context)) {
	s.afterPass = fn
}

// Start registers the cron entries and kicks off the delayed initial
// scrape. Calling Start on a running scheduler is a no-op.
//
// The cancellable context guards only the delays of the not-yet-started
// initial pass; actual scrape invocations run on an independent context
// so stopping the scheduler never aborts work already started.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		logger.Warn().Msg("scheduler already running")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.cron = cron.New()

	for name, spec := range schedules {
		src, ok := s.scrapers[name]
		if !ok {
			continue
		}
		if _, err := s.cron.AddFunc(spec, func() { s.runOne(context.Background(), src) }); err != nil {
			cancel()
			return fmt.Errorf("scheduling %s: %w", name, err)
		}
	}
	if _, err := s.cron.AddFunc(comprehensiveSchedule, func() { s.runComprehensive(context.Background()) }); err != nil {
		cancel()
		return fmt.Errorf("scheduling comprehensive update: %w", err)
	}

	s.cron.Start()
	s.running = true
	logger.Info().Int("sources", len(s.scrapers)).Msg("scheduler started")

	go func() {
		if err := sleepCtx(ctx, s.initialDelay); err != nil {
			return
		}
		s.runInitial(ctx)
	}()
	return nil
}

// Stop prevents future scheduled runs and cancels the parts of the
// initial pass that have not started yet. Work already in flight keeps
// running to completion in the background; Stop does not wait for it.
// Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		logger.Warn().Msg("scheduler not running")
		return
	}
	s.running = false
	s.cancel()
	s.cron.Stop()
	logger.Info().Msg("scheduler stopped")
}

// TaskStatus describes one scheduled source.
type TaskStatus struct {
	Name     string `json:"name"`
	Schedule string `json:"schedule"`
}

// Status reports whether the scheduler runs and which tasks it owns.
type Status struct {
	IsRunning   bool         `json:"isRunning"`
	ActiveTasks int          `json:"activeTasks"`
	Tasks       []TaskStatus `json:"tasks"`
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return Status{Tasks: []TaskStatus{}}
	}

	tasks := make([]TaskStatus, 0, len(s.order)+1)
	for _, name := range s.order {
		if spec, ok := schedules[name]; ok {
			tasks = append(tasks, TaskStatus{Name: name, Schedule: spec})
		}
	}
	tasks = append(tasks, TaskStatus{Name: "comprehensive", Schedule: comprehensiveSchedule})

	return Status{
		IsRunning:   s.running,
		ActiveTasks: len(tasks),
		Tasks:       tasks,
	}
}

// Trigger runs one source immediately, outside its schedule. Unlike
// the cron paths, the error is returned so the caller can report it.
func (s *Scheduler) Trigger(ctx context.Context, source string) (scraper.Result, error) {
	src, ok := s.scrapers[source]
	if !ok {
		return scraper.Result{}, fmt.Errorf("unknown source %q", source)
	}
	logger.Info().Str("source", source).Msg("manual scrape triggered")
	res, err := src.Scrape(ctx)
	if err != nil {
		logger.Error().Err(err).Str("source", source).Msg("manual scrape failed")
		return res, err
	}
	return res, nil
}

// runInitial fires all sources in parallel, each offset by its stagger
// slot so the upstreams are not hit at the same instant. The passed
// context covers only the stagger delays: a scrape whose slot has come
// up runs on its own context and is not aborted by Stop.
func (s *Scheduler) runInitial(ctx context.Context) {
	logger.Info().Msg("running initial content scrape")

	var wg sync.WaitGroup
	for i, name := range s.order {
		src := s.scrapers[name]
		offset := time.Duration(i) * s.stagger
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sleepCtx(ctx, offset); err != nil {
				return
			}
			s.runOne(context.Background(), src)
		}()
	}
	wg.Wait()
	logger.Info().Msg("initial content scrape completed")

	if s.afterPass != nil {
		s.afterPass(context.Background())
	}
}

// runComprehensive walks every source sequentially with pauses in
// between, trading latency for gentler upstream load.
func (s *Scheduler) runComprehensive(ctx context.Context) {
	logger.Info().Msg("running comprehensive content update")

	pause := s.pause
	for i, name := range s.order {
		if i > 0 {
			if err := sleepCtx(ctx, pause); err != nil {
				return
			}
		}
		if name == "hackernews" {
			pause = s.shortPause
		}
		s.runOne(ctx, s.scrapers[name])
	}
	logger.Info().Msg("comprehensive content update completed")

	if s.afterPass != nil {
		s.afterPass(ctx)
	}
}

// runOne executes a single scrape, logging instead of propagating
// failures so a bad run never kills the schedule.
func (s *Scheduler) runOne(ctx context.Context, src scraper.Scraper) {
	start := time.Now()
	res, err := src.Scrape(ctx)
	if err != nil {
		logger.Error().Err(err).Str("source", src.Name()).Msg("scheduled scrape failed")
		return
	}
	logger.Info().
		Str("source", res.Source).
		Int("found", res.Found).
		Int("saved", res.Saved).
		Dur("took", time.Since(start)).
		Msg("scrape completed")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
