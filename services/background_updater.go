package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"nfl-pickem-go/logging"
	"nfl-pickem-go/metrics"
)

// DefaultRefreshSchedule runs every 15 minutes (cron with seconds)
const DefaultRefreshSchedule = "0 */15 * * * *"

// ResultRefresher pulls final scores for a week and grades its picks
type ResultRefresher interface {
	RefreshWeek(ctx context.Context, season, week int) (int, int, error)
}

// BackgroundUpdater refreshes the current week's results on a cron schedule
type BackgroundUpdater struct {
	refresher   ResultRefresher
	currentWeek func() int
	season      int
	schedule    string
	timeout     time.Duration
	metrics     *metrics.Metrics
	logger      *logging.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// NewBackgroundUpdater creates a new background updater. currentWeek reports the week to refresh.
func NewBackgroundUpdater(refresher ResultRefresher, currentWeek func() int, season int, schedule string, m *metrics.Metrics) *BackgroundUpdater {
	if schedule == "" {
		schedule = DefaultRefreshSchedule
	}
	return &BackgroundUpdater{
		refresher:   refresher,
		currentWeek: currentWeek,
		season:      season,
		schedule:    schedule,
		timeout:     2 * time.Minute,
		metrics:     m,
		logger:      logging.WithPrefix("BackgroundUpdater"),
	}
}

// Start schedules the refresh job. A run still in progress when the next one is due is skipped.
func (bu *BackgroundUpdater) Start() error {
	bu.mu.Lock()
	defer bu.mu.Unlock()

	if bu.running {
		bu.logger.Warn("Already running")
		return nil
	}

	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	if _, err := c.AddFunc(bu.schedule, bu.runScheduled); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", bu.schedule, err)
	}

	c.Start()
	bu.cron = c
	bu.running = true
	bu.logger.Infof("Started with schedule %q for season %d", bu.schedule, bu.season)
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish
func (bu *BackgroundUpdater) Stop() {
	bu.mu.Lock()
	c := bu.cron
	running := bu.running
	bu.running = false
	bu.cron = nil
	bu.mu.Unlock()

	if !running || c == nil {
		return
	}
	bu.logger.Info("Stopping...")
	<-c.Stop().Done()
}

// IsRunning reports whether the schedule is active
func (bu *BackgroundUpdater) IsRunning() bool {
	bu.mu.Lock()
	defer bu.mu.Unlock()
	return bu.running
}

func (bu *BackgroundUpdater) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), bu.timeout)
	defer cancel()
	if err := bu.RunOnce(ctx); err != nil {
		bu.logger.Errorf("Refresh failed: %v", err)
	}
}

// RunOnce refreshes the current week immediately
func (bu *BackgroundUpdater) RunOnce(ctx context.Context) error {
	week := bu.currentWeek()
	start := time.Now()

	stored, updated, err := bu.refresher.RefreshWeek(ctx, bu.season, week)
	bu.metrics.RefreshRun(err)
	if err != nil {
		return fmt.Errorf("week %d: %w", week, err)
	}

	bu.logger.Infof("Week %d: %d game results stored, %d pick results written in %v",
		week, stored, updated, time.Since(start).Round(time.Millisecond))
	return nil
}
