package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a message id is already present in the ownership index.
	ErrDuplicate = errors.New("message already ingested")

	// ErrIncrementContention is returned when the update/insert/update cycle of an
	// increment did not converge within the bounded number of attempts.
	ErrIncrementContention = errors.New("increment did not converge")
)

// CounterStore is the durable authority for daily metric records and the
// message ownership index. Every mutating call is a single transaction.
type CounterStore interface {
	// Increment adds delta to the record for key, creating the record lazily.
	Increment(ctx context.Context, key Key, delta Delta) error

	// GetDaily returns the record for key or ErrNotFound.
	GetDaily(ctx context.Context, key Key) (*DailyMetricRecord, error)

	// LookupOwner resolves a message id through the ownership index or returns ErrNotFound.
	LookupOwner(ctx context.Context, messageID string) (MessageOwner, error)

	// LookupOwners resolves many message ids at once. Unknown ids are absent from the result.
	LookupOwners(ctx context.Context, messageIDs []string) (map[string]MessageOwner, error)

	// ExistingMessageIDs reports which of the given ids are already indexed.
	ExistingMessageIDs(ctx context.Context, messageIDs []string) (map[string]struct{}, error)

	// IngestMessage writes the ownership row and applies all deltas atomically.
	// A message id that is already indexed yields ErrDuplicate and no side effects.
	IngestMessage(ctx context.Context, owner MessageOwner, deltas map[Key]Delta) error

	// ApplyDeltas applies deltas that are not tied to a new message (notices).
	ApplyDeltas(ctx context.Context, deltas map[Key]Delta) error

	// ApplyBatch inserts every ownership row and applies the deltas of the rows
	// that were actually inserted, all in one transaction.
	ApplyBatch(ctx context.Context, entries []BatchEntry) (BatchResult, error)
}

// CooldownStore throttles profile queries per (group, user).
type CooldownStore interface {
	// AcquireCooldown records now as the last action time when the previous
	// action is at least cooldown old. Otherwise it returns the remaining wait.
	AcquireCooldown(ctx context.Context, groupID, userID string, now time.Time, cooldown time.Duration) (acquired bool, remaining time.Duration, err error)
}

// RetentionStore removes data older than a cutoff. It is never used by the
// ingestion path.
type RetentionStore interface {
	Purge(ctx context.Context, before time.Time) (PurgeResult, error)
}

// BatchEntry is one backfilled message together with the deltas it produces.
type BatchEntry struct {
	Owner  MessageOwner
	Deltas map[Key]Delta
}

// BatchResult reports the outcome of ApplyBatch.
type BatchResult struct {
	Inserted int
	// Skipped holds the ids whose ownership row already existed at commit time.
	Skipped []string
}

// PurgeResult reports how many rows a retention sweep removed.
type PurgeResult struct {
	DailyRows    int64
	OwnerRows    int64
	CooldownRows int64
}
