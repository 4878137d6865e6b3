package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/affinity/internal/api/v1"
	"github.com/aevon-lab/affinity/internal/collect"
	"github.com/aevon-lab/affinity/internal/core/storage"
	"github.com/gin-gonic/gin"
)

// ErrInvalidEvent wraps envelope validation failures.
var ErrInvalidEvent = errors.New("invalid event")

// Result is the outcome of ingesting one message.
type Result int

const (
	ResultAccepted Result = iota + 1
	ResultDuplicate
)

func (r Result) String() string {
	switch r {
	case ResultAccepted:
		return "accepted"
	case ResultDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Options tunes the ingestion coordinator.
type Options struct {
	TopicThreshold time.Duration
	Location       *time.Location
	MaxBodySizeMB  int
}

// Service is the ingestion coordinator: it deduplicates by message id, runs
// the collectors against the sequence cache and persists everything a
// message contributes in one store transaction.
type Service struct {
	store            storage.CounterStore
	cache            *collect.SequenceCache
	collectors       collect.Collectors
	loc              *time.Location
	now              func() time.Time
	maxBodySizeBytes int
}

func NewService(store storage.CounterStore, cache *collect.SequenceCache, opts Options) *Service {
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if cache == nil {
		panic("ingestion: sequence cache must not be nil")
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.MaxBodySizeMB <= 0 {
		opts.MaxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		store:            store,
		cache:            cache,
		collectors:       collect.New(opts.TopicThreshold),
		loc:              opts.Location,
		now:              time.Now,
		maxBodySizeBytes: opts.MaxBodySizeMB * 1024 * 1024,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/messages", s.MessageHandler)
	r.POST("/v1/notices", s.NoticeHandler)
}

// Dispatch routes an event to Ingest or HandleNotice.
func (s *Service) Dispatch(ctx context.Context, ev v1.Event) error {
	switch e := ev.(type) {
	case *v1.Message:
		_, err := s.Ingest(ctx, e)
		return err
	case *v1.Notice:
		return s.HandleNotice(ctx, e)
	default:
		return fmt.Errorf("%w: unsupported event %T", ErrInvalidEvent, ev)
	}
}

// Ingest processes one live message. Ingesting the same message id twice
// returns ResultDuplicate and changes nothing the second time.
func (s *Service) Ingest(ctx context.Context, m *v1.Message) (Result, error) {
	if err := m.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	_, err := s.store.LookupOwner(ctx, m.ID)
	switch {
	case err == nil:
		slog.Debug("[Ingestion] Duplicate message skipped", "message_id", m.ID, "group_id", m.GroupID)
		return ResultDuplicate, nil
	case !errors.Is(err, storage.ErrNotFound):
		return 0, fmt.Errorf("dedup lookup for %s: %w", m.ID, err)
	}

	msg := *m
	if msg.SentAt.IsZero() {
		msg.SentAt = s.now()
	}

	prior := s.cache.Swap(msg.GroupID, msg.SenderID, msg.ID, msg.SentAt, collect.PlainText(&msg))
	col := s.collectors.Collect(&msg, prior)

	owners, err := s.resolveRefs(ctx, col.Refs)
	if err != nil {
		return 0, err
	}
	res := col.Resolve(msg.GroupID, lookupIn(owners))

	day := msg.SentAt.In(s.loc).Format(storage.DayLayout)
	deltas := collect.Deltas(day, msg.GroupID, col.Increments, res.Increments)

	owner := storage.MessageOwner{
		MessageID: msg.ID,
		GroupID:   msg.GroupID,
		UserID:    msg.SenderID,
		SentAt:    msg.SentAt,
	}
	if err := s.store.IngestMessage(ctx, owner, deltas); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			slog.Debug("[Ingestion] Lost insert race, message already ingested", "message_id", m.ID)
			return ResultDuplicate, nil
		}
		return 0, fmt.Errorf("persist message %s: %w", m.ID, err)
	}

	slog.Debug("[Ingestion] Message ingested",
		"message_id", msg.ID,
		"group_id", msg.GroupID,
		"sender_id", msg.SenderID,
		"day", day,
		"topic", col.Topic,
		"repeat", col.Repeat,
		"images", col.Images,
		"replies", res.Replies,
		"mentions", len(col.Mentions))
	return ResultAccepted, nil
}

// HandleNotice applies a poke, reaction or recall notice. Notices carry no
// idempotency key and are applied every time they are delivered.
func (s *Service) HandleNotice(ctx context.Context, n *v1.Notice) error {
	if err := n.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	at := n.OccurredAt
	if at.IsZero() {
		at = s.now()
	}

	col := s.collectors.Collect(n, collect.Prior{})
	owners, err := s.resolveRefs(ctx, col.Refs)
	if err != nil {
		return err
	}
	res := col.Resolve(n.GroupID, lookupIn(owners))

	day := at.In(s.loc).Format(storage.DayLayout)
	deltas := collect.Deltas(day, n.GroupID, col.Increments, res.Increments)
	if len(deltas) == 0 {
		slog.Debug("[Ingestion] Notice contributed nothing", "kind", n.Kind, "group_id", n.GroupID)
		return nil
	}

	if err := s.store.ApplyDeltas(ctx, deltas); err != nil {
		return fmt.Errorf("persist %s notice: %w", n.Kind, err)
	}

	slog.Debug("[Ingestion] Notice applied", "kind", n.Kind, "group_id", n.GroupID, "keys", len(deltas))
	return nil
}

// resolveRefs looks up the owners of referenced messages. Unknown messages
// are simply absent from the result.
func (s *Service) resolveRefs(ctx context.Context, refs []collect.Ref) (map[string]storage.MessageOwner, error) {
	owners := make(map[string]storage.MessageOwner, len(refs))
	for _, ref := range refs {
		if _, seen := owners[ref.MessageID]; seen {
			continue
		}
		owner, err := s.store.LookupOwner(ctx, ref.MessageID)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve message %s: %w", ref.MessageID, err)
		}
		owners[ref.MessageID] = owner
	}
	return owners, nil
}

func lookupIn(owners map[string]storage.MessageOwner) collect.Resolver {
	return func(id string) (storage.MessageOwner, bool) {
		o, ok := owners[id]
		return o, ok
	}
}
