// Package retention purges counter rows, ownership rows and cooldowns that
// fell out of the retention window.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/affinity/internal/core/storage"
	"github.com/robfig/cron/v3"
)

const stopTimeout = 30 * time.Second

// Sweeper runs a purge on a cron schedule (six fields, seconds first).
type Sweeper struct {
	schedule string
	keepDays int
	store    storage.RetentionStore
	loc      *time.Location
	nowFn    func() time.Time
}

func NewSweeper(store storage.RetentionStore, schedule string, keepDays int, loc *time.Location) *Sweeper {
	if loc == nil {
		loc = time.Local
	}
	return &Sweeper{
		schedule: schedule,
		keepDays: keepDays,
		store:    store,
		loc:      loc,
		nowFn:    time.Now,
	}
}

// Cutoff returns local midnight keepDays before now. Rows older than the
// cutoff are purged; today and the keepDays before it survive.
func (s *Sweeper) Cutoff(now time.Time) time.Time {
	local := now.In(s.loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	return midnight.AddDate(0, 0, -s.keepDays)
}

// RunOnce performs one purge.
func (s *Sweeper) RunOnce(ctx context.Context) (storage.PurgeResult, error) {
	cutoff := s.Cutoff(s.nowFn())

	result, err := s.store.Purge(ctx, cutoff)
	if err != nil {
		return storage.PurgeResult{}, fmt.Errorf("retention purge before %s: %w", cutoff.Format(storage.DayLayout), err)
	}

	slog.Info("[Retention] Purge complete",
		"cutoff", cutoff.Format(storage.DayLayout),
		"daily_rows", result.DailyRows,
		"owner_rows", result.OwnerRows,
		"cooldown_rows", result.CooldownRows,
	)
	return result, nil
}

// Start schedules the sweep and blocks until ctx is cancelled. A run still in
// progress at shutdown is given stopTimeout to finish.
func (s *Sweeper) Start(ctx context.Context) error {
	if s.keepDays <= 0 {
		return fmt.Errorf("retention keep_days must be positive")
	}

	c := cron.New(cron.WithSeconds(), cron.WithLocation(s.loc))
	if _, err := c.AddFunc(s.schedule, func() {
		if _, err := s.RunOnce(ctx); err != nil {
			slog.Error("[Retention] Purge failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid retention schedule %q: %w", s.schedule, err)
	}

	c.Start()
	slog.Info("[Retention] Sweeper started", "schedule", s.schedule, "keep_days", s.keepDays)

	<-ctx.Done()

	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(stopTimeout):
		slog.Warn("[Retention] Stop timed out waiting for a running purge")
	}
	slog.Info("[Retention] Sweeper stopped")
	return nil
}
