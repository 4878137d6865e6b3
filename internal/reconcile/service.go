// Package reconcile merges bulk historical message pools into the counter
// store without double counting messages that were already ingested live.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	v1 "github.com/aevon-lab/affinity/internal/api/v1"
	"github.com/aevon-lab/affinity/internal/collect"
	"github.com/aevon-lab/affinity/internal/core/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	// ErrPoolTooLarge is returned when a pool exceeds the configured maximum size.
	ErrPoolTooLarge = errors.New("history pool too large")

	// ErrInvalidGroup is returned for an empty group id.
	ErrInvalidGroup = errors.New("group id is required")
)

// Summary reports what one reconciliation run did.
type Summary struct {
	RunID    uuid.UUID `json:"run_id"`
	GroupID  string    `json:"group_id"`
	Day      string    `json:"day"`
	Received int       `json:"received"`

	// Processed counts messages whose contribution was applied by this run.
	Processed int `json:"processed"`
	Images    int `json:"images"`
	Topics    int `json:"topics"`
	Repeats   int `json:"repeats"`
	Replies   int `json:"replies"`
	Mentions  int `json:"mentions"`

	// Skipped counts every received message that contributed nothing. The
	// fields below break it down.
	Skipped        int `json:"skipped"`
	Invalid        int `json:"invalid"`
	Duplicates     int `json:"duplicates"`
	AlreadyIndexed int `json:"already_indexed"`
	OutsideDay     int `json:"outside_day"`
}

type Options struct {
	TopicThreshold time.Duration
	Location       *time.Location
	MaxPoolSize    int
}

// Service is the history reconciliator.
type Service struct {
	store       storage.CounterStore
	cache       *collect.SequenceCache
	collectors  collect.Collectors
	loc         *time.Location
	maxPoolSize int
	now         func() time.Time
}

func NewService(store storage.CounterStore, cache *collect.SequenceCache, opts Options) *Service {
	if store == nil {
		panic("reconcile: store must not be nil")
	}
	if cache == nil {
		panic("reconcile: sequence cache must not be nil")
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Service{
		store:       store,
		cache:       cache,
		collectors:  collect.New(opts.TopicThreshold),
		loc:         opts.Location,
		maxPoolSize: opts.MaxPoolSize,
		now:         time.Now,
	}
}

// RegisterRoutes registers the reconciliation routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/groups/:group_id/history", s.HistoryHandler)
}

type pending struct {
	msg   *v1.Message
	col   collect.Collection
	stats messageStats
}

type messageStats struct {
	images, replies, mentions int
	topic, repeat             bool
}

// Reconcile replays a pool of historical messages for one group and applies
// the contribution of every message that is dated today and not yet indexed.
// All writes happen in one store transaction.
func (s *Service) Reconcile(ctx context.Context, groupID string, pool v1.HistoryPool) (Summary, error) {
	summary := Summary{
		RunID:    uuid.New(),
		GroupID:  groupID,
		Day:      s.now().In(s.loc).Format(storage.DayLayout),
		Received: len(pool.Messages),
	}
	if groupID == "" {
		return summary, ErrInvalidGroup
	}
	if s.maxPoolSize > 0 && len(pool.Messages) > s.maxPoolSize {
		return summary, fmt.Errorf("%w: %d messages (max %d)", ErrPoolTooLarge, len(pool.Messages), s.maxPoolSize)
	}

	all, msgs := s.prepare(groupID, pool.Messages, &summary)

	// Every valid pool message can resolve a reply, even one outside the day.
	inPool := make(map[string]storage.MessageOwner, len(all))
	for _, m := range all {
		inPool[m.ID] = storage.MessageOwner{MessageID: m.ID, GroupID: m.GroupID, UserID: m.SenderID, SentAt: m.SentAt}
	}
	ids := make([]string, len(msgs))
	for i, m := range msgs {
		ids[i] = m.ID
	}

	existing, err := s.store.ExistingMessageIDs(ctx, ids)
	if err != nil {
		return summary, fmt.Errorf("reconcile %s: %w", groupID, err)
	}

	// Replay in time order with state seeded from the pool only. Skipped
	// messages still move the clock and the sender's last text.
	local := collect.NewLocalSequence()
	var todo []pending
	for _, m := range msgs {
		prior := local.Advance(m.SenderID, m.SentAt, collect.PlainText(m))
		if _, ok := existing[m.ID]; ok {
			summary.AlreadyIndexed++
			continue
		}
		col := s.collectors.Collect(m, prior)
		todo = append(todo, pending{msg: m, col: col})
	}

	owners, err := s.resolveOwners(ctx, todo, inPool)
	if err != nil {
		return summary, fmt.Errorf("reconcile %s: %w", groupID, err)
	}
	resolve := func(id string) (storage.MessageOwner, bool) {
		o, ok := owners[id]
		return o, ok
	}

	entries := make([]storage.BatchEntry, 0, len(todo))
	stats := make(map[string]messageStats, len(todo))
	for _, p := range todo {
		res := p.col.Resolve(groupID, resolve)
		entries = append(entries, storage.BatchEntry{
			Owner:  inPool[p.msg.ID],
			Deltas: collect.Deltas(summary.Day, groupID, p.col.Increments, res.Increments),
		})
		stats[p.msg.ID] = messageStats{
			images:   p.col.Images,
			replies:  res.Replies,
			mentions: len(p.col.Mentions),
			topic:    p.col.Topic,
			repeat:   p.col.Repeat,
		}
	}

	result, err := s.store.ApplyBatch(ctx, entries)
	if err != nil {
		return summary, fmt.Errorf("reconcile %s: %w", groupID, err)
	}

	// Messages ingested live between the existence check and the commit
	// contributed nothing.
	for _, id := range result.Skipped {
		delete(stats, id)
		summary.AlreadyIndexed++
	}
	for _, st := range stats {
		summary.Processed++
		summary.Images += st.images
		summary.Replies += st.replies
		summary.Mentions += st.mentions
		if st.topic {
			summary.Topics++
		}
		if st.repeat {
			summary.Repeats++
		}
	}
	summary.Skipped = summary.Invalid + summary.Duplicates + summary.AlreadyIndexed + summary.OutsideDay

	s.cache.Merge(groupID, local.LastAt, local.Texts)

	slog.Info("[Reconcile] History pool applied",
		"run_id", summary.RunID,
		"group_id", groupID,
		"day", summary.Day,
		"received", summary.Received,
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"topics", summary.Topics,
		"repeats", summary.Repeats,
		"replies", summary.Replies)
	return summary, nil
}

// prepare validates, orders and self-deduplicates the pool. It returns every
// unique valid message and, separately, those dated on the run's day.
func (s *Service) prepare(groupID string, raw []v1.Message, summary *Summary) (all, today []*v1.Message) {
	msgs := make([]*v1.Message, 0, len(raw))
	for i := range raw {
		m := raw[i]
		if m.GroupID == "" {
			m.GroupID = groupID
		}
		if m.Validate() != nil || m.GroupID != groupID || m.SentAt.IsZero() {
			summary.Invalid++
			continue
		}
		msgs = append(msgs, &m)
	}

	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].SentAt.Before(msgs[j].SentAt) })

	seen := make(map[string]struct{}, len(msgs))
	for _, m := range msgs {
		if _, dup := seen[m.ID]; dup {
			summary.Duplicates++
			continue
		}
		seen[m.ID] = struct{}{}
		all = append(all, m)

		if m.SentAt.In(s.loc).Format(storage.DayLayout) != summary.Day {
			summary.OutsideDay++
			continue
		}
		today = append(today, m)
	}
	return all, today
}

// resolveOwners resolves reply targets from the pool first and looks up the
// rest in one batched query.
func (s *Service) resolveOwners(ctx context.Context, todo []pending, inPool map[string]storage.MessageOwner) (map[string]storage.MessageOwner, error) {
	owners := make(map[string]storage.MessageOwner)
	var missing []string
	for _, p := range todo {
		for _, ref := range p.col.Refs {
			if _, ok := owners[ref.MessageID]; ok {
				continue
			}
			if o, ok := inPool[ref.MessageID]; ok {
				owners[ref.MessageID] = o
				continue
			}
			missing = append(missing, ref.MessageID)
		}
	}
	if len(missing) == 0 {
		return owners, nil
	}

	found, err := s.store.LookupOwners(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, o := range found {
		owners[id] = o
	}
	return owners, nil
}
