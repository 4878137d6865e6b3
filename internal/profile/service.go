package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/affinity/internal/archetype"
	"github.com/aevon-lab/affinity/internal/core/storage"
	"github.com/aevon-lab/affinity/internal/scoring"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ErrInsufficientData marks profiles below the minimum message count.
var ErrInsufficientData = errors.New("insufficient data")

// CooldownError is returned while a member's profile query is throttled.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("profile cooldown active, retry in %s", e.Remaining.Round(time.Second))
}

// RetryAfterSeconds rounds Remaining up to whole seconds.
func (e *CooldownError) RetryAfterSeconds() int {
	secs := int((e.Remaining + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

// Options tunes the profile service.
type Options struct {
	Cooldown    time.Duration
	MinMessages int64
	Location    *time.Location
}

// Profile is one member's scored day.
type Profile struct {
	GroupID        string              `json:"group_id"`
	UserID         string              `json:"user_id"`
	Day            string              `json:"day"`
	Counters       storage.Delta       `json:"counters"`
	Scores         scoring.Result      `json:"scores"`
	CarryOver      *int                `json:"carry_over,omitempty"`
	Archetype      archetype.Archetype `json:"archetype"`
	ArchetypeLabel string              `json:"archetype_label"`
}

// Service serves the read path: it loads today's and yesterday's records,
// scores today with yesterday's composite as carry-over and classifies.
type Service struct {
	store       storage.CounterStore
	cooldowns   storage.CooldownStore
	cooldown    time.Duration
	minMessages int64
	loc         *time.Location
	nowFn       func() time.Time

	computeGroup singleflight.Group
}

func NewService(store storage.CounterStore, cooldowns storage.CooldownStore, opts Options) *Service {
	if store == nil {
		panic("profile: store must not be nil")
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Service{
		store:       store,
		cooldowns:   cooldowns,
		cooldown:    opts.Cooldown,
		minMessages: opts.MinMessages,
		loc:         opts.Location,
		nowFn:       time.Now,
	}
}

// Profile scores a member's day. The cooldown is claimed only once the
// record exists and passes the min_messages gate, so a 404 or 422 never
// throttles the member.
func (s *Service) Profile(ctx context.Context, groupID, userID string) (*Profile, error) {
	now := s.nowFn()

	today := storage.NewKey(now, s.loc, groupID, userID)
	v, err, shared := s.computeGroup.Do(today.Day+"|"+groupID+"|"+userID, func() (interface{}, error) {
		return s.compute(context.WithoutCancel(ctx), now, groupID, userID)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("[Profile] Shared in-flight computation", "group_id", groupID, "user_id", userID)
	}

	if s.cooldowns != nil && s.cooldown > 0 {
		acquired, remaining, err := s.cooldowns.AcquireCooldown(ctx, groupID, userID, now, s.cooldown)
		if err != nil {
			return nil, fmt.Errorf("failed to check cooldown: %w", err)
		}
		if !acquired {
			return nil, &CooldownError{Remaining: remaining}
		}
	}

	p := *v.(*Profile)
	return &p, nil
}

func (s *Service) compute(ctx context.Context, now time.Time, groupID, userID string) (*Profile, error) {
	todayKey := storage.NewKey(now, s.loc, groupID, userID)
	yesterdayKey := storage.NewKey(now.In(s.loc).AddDate(0, 0, -1), s.loc, groupID, userID)

	var today, yesterday *storage.DailyMetricRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rec, err := s.store.GetDaily(gctx, todayKey)
		if err != nil {
			return err
		}
		today = rec
		return nil
	})
	g.Go(func() error {
		rec, err := s.store.GetDaily(gctx, yesterdayKey)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load yesterday: %w", err)
		}
		yesterday = rec
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if today.Counters.MessagesSent < s.minMessages {
		return nil, fmt.Errorf("%w: %d messages today, need %d",
			ErrInsufficientData, today.Counters.MessagesSent, s.minMessages)
	}

	var carryOver *int
	if yesterday != nil {
		c := scoring.Score(yesterday.Counters, nil).Composite
		carryOver = &c
	}

	scores := scoring.Score(today.Counters, carryOver)
	kind := archetype.Classify(scores.Simp, scores.Vibe, scores.Ick)

	return &Profile{
		GroupID:        groupID,
		UserID:         userID,
		Day:            todayKey.Day,
		Counters:       today.Counters,
		Scores:         scores,
		CarryOver:      carryOver,
		Archetype:      kind,
		ArchetypeLabel: kind.Label(),
	}, nil
}

// Today returns the member's raw record for the current day.
func (s *Service) Today(ctx context.Context, groupID, userID string) (*storage.DailyMetricRecord, error) {
	return s.store.GetDaily(ctx, storage.NewKey(s.nowFn(), s.loc, groupID, userID))
}
