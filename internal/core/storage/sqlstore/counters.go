package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/aevon-lab/affinity/internal/core/storage"
)

// maxIncrementAttempts bounds the update -> insert -> update cycle of one
// increment. Two attempts always suffice unless rows are deleted concurrently.
const maxIncrementAttempts = 3

// Increment adds delta to the record for key in its own transaction.
func (a *Adapter) Increment(ctx context.Context, key storage.Key, delta storage.Delta) error {
	if delta.IsZero() {
		return nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := a.incrementTx(ctx, tx, key, delta, toMillis(a.now())); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit increment: %w", err)
	}
	return nil
}

// GetDaily returns the record for key or storage.ErrNotFound.
func (a *Adapter) GetDaily(ctx context.Context, key storage.Key) (*storage.DailyMetricRecord, error) {
	var (
		rec       storage.DailyMetricRecord
		c         = &rec.Counters
		updatedMs int64
	)

	err := a.db.QueryRowContext(ctx, a.bind(queryGetDaily), key.Day, key.GroupID, key.UserID).Scan(
		&rec.Day, &rec.GroupID, &rec.UserID,
		&c.MessagesSent, &c.TextLength, &c.ImagesSent,
		&c.RepliesSent, &c.RepliesReceived,
		&c.PokesSent, &c.PokesReceived,
		&c.ReactionsSent, &c.ReactionsReceived,
		&c.Recalls, &c.Topics, &c.Repeats,
		&updatedMs,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read daily metrics: %w", err)
	}

	rec.Key = storage.Key{Day: rec.Day, GroupID: rec.GroupID, UserID: rec.UserID}
	rec.UpdatedAt = fromMillis(updatedMs)
	return &rec, nil
}

// IngestMessage indexes the message and applies its deltas in one transaction.
// If the ownership insert affects no row the message was ingested concurrently
// and the transaction is rolled back with storage.ErrDuplicate.
func (a *Adapter) IngestMessage(ctx context.Context, owner storage.MessageOwner, deltas map[storage.Key]storage.Delta) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	inserted, err := a.insertOwner(ctx, tx, owner)
	if err != nil {
		return err
	}
	if !inserted {
		return storage.ErrDuplicate
	}

	if err := a.applyTx(ctx, tx, deltas); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit message %s: %w", owner.MessageID, err)
	}

	slog.Debug("[CounterStore] Ingested message",
		"message_id", owner.MessageID,
		"group_id", owner.GroupID,
		"keys", len(deltas))
	return nil
}

// ApplyDeltas applies deltas that have no ownership row attached.
func (a *Adapter) ApplyDeltas(ctx context.Context, deltas map[storage.Key]storage.Delta) error {
	if len(deltas) == 0 {
		return nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := a.applyTx(ctx, tx, deltas); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deltas: %w", err)
	}
	return nil
}

// ApplyBatch indexes every entry and applies the deltas of the entries whose
// ownership row was actually inserted. Entries already indexed at commit time
// contribute nothing.
func (a *Adapter) ApplyBatch(ctx context.Context, entries []storage.BatchEntry) (storage.BatchResult, error) {
	var result storage.BatchResult
	if len(entries) == 0 {
		return result, nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	merged := storage.Deltas{}
	for _, entry := range entries {
		inserted, err := a.insertOwner(ctx, tx, entry.Owner)
		if err != nil {
			return storage.BatchResult{}, err
		}
		if !inserted {
			result.Skipped = append(result.Skipped, entry.Owner.MessageID)
			continue
		}
		result.Inserted++
		merged.Merge(entry.Deltas)
	}

	if err := a.applyTx(ctx, tx, merged); err != nil {
		return storage.BatchResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return storage.BatchResult{}, fmt.Errorf("failed to commit batch: %w", err)
	}

	slog.Info("[CounterStore] Applied batch",
		"entries", len(entries),
		"inserted", result.Inserted,
		"skipped", len(result.Skipped),
		"keys", len(merged))
	return result, nil
}

func (a *Adapter) insertOwner(ctx context.Context, tx *sql.Tx, owner storage.MessageOwner) (bool, error) {
	res, err := tx.ExecContext(ctx, a.bind(queryInsertOwner),
		owner.MessageID, owner.GroupID, owner.UserID, toMillis(owner.SentAt))
	if err != nil {
		return false, fmt.Errorf("failed to index message %s: %w", owner.MessageID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to index message %s: %w", owner.MessageID, err)
	}
	return n > 0, nil
}

// applyTx applies deltas in key order so concurrent transactions lock rows in
// the same order.
func (a *Adapter) applyTx(ctx context.Context, tx *sql.Tx, deltas map[storage.Key]storage.Delta) error {
	keys := make([]storage.Key, 0, len(deltas))
	for k, d := range deltas {
		if !d.IsZero() {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	nowMs := toMillis(a.now())
	for _, k := range keys {
		if err := a.incrementTx(ctx, tx, k, deltas[k], nowMs); err != nil {
			return err
		}
	}
	return nil
}

func (a *Adapter) incrementTx(ctx context.Context, tx *sql.Tx, key storage.Key, delta storage.Delta, nowMs int64) error {
	update, args := buildIncrement(key, delta, nowMs)
	update = a.bind(update)

	for attempt := 1; ; attempt++ {
		res, err := tx.ExecContext(ctx, update, args...)
		if err != nil {
			return fmt.Errorf("failed to increment %s/%s/%s: %w", key.Day, key.GroupID, key.UserID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to increment %s/%s/%s: %w", key.Day, key.GroupID, key.UserID, err)
		}
		if n > 0 {
			return nil
		}

		if attempt >= maxIncrementAttempts {
			slog.Warn("[CounterStore] Increment did not converge",
				"day", key.Day, "group_id", key.GroupID, "user_id", key.UserID, "attempts", attempt)
			return fmt.Errorf("increment %s/%s/%s: %w", key.Day, key.GroupID, key.UserID, storage.ErrIncrementContention)
		}

		if _, err := tx.ExecContext(ctx, a.bind(queryInsertZeroRow), key.Day, key.GroupID, key.UserID, nowMs); err != nil {
			return fmt.Errorf("failed to create daily record %s/%s/%s: %w", key.Day, key.GroupID, key.UserID, err)
		}
	}
}

// buildIncrement renders the UPDATE for the non-zero columns of delta. Column
// names come from storage.Delta.Columns, never from input.
func buildIncrement(key storage.Key, delta storage.Delta, nowMs int64) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, 16)

	b.WriteString("UPDATE daily_metrics SET ")
	for _, cd := range delta.Columns() {
		if cd.Amount == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s = %s + ?, ", cd.Column, cd.Column)
		args = append(args, cd.Amount)
	}
	b.WriteString("updated_at_ms = ? WHERE day = ? AND group_id = ? AND user_id = ?")
	args = append(args, nowMs, key.Day, key.GroupID, key.UserID)

	return b.String(), args
}
