package sqlstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/affinity/internal/core/storage"
)

// Purge deletes daily records dated before the cutoff day, ownership rows for
// messages sent before it and cooldowns last touched before it.
func (a *Adapter) Purge(ctx context.Context, before time.Time) (storage.PurgeResult, error) {
	var result storage.PurgeResult

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	steps := []struct {
		name  string
		query string
		arg   any
		dst   *int64
	}{
		{"daily_metrics", queryPurgeDaily, before.Format(storage.DayLayout), &result.DailyRows},
		{"message_owner_index", queryPurgeOwners, toMillis(before), &result.OwnerRows},
		{"user_cooldown", queryPurgeCooldown, toMillis(before), &result.CooldownRows},
	}

	for _, step := range steps {
		res, err := tx.ExecContext(ctx, a.bind(step.query), step.arg)
		if err != nil {
			return storage.PurgeResult{}, fmt.Errorf("failed to purge %s: %w", step.name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return storage.PurgeResult{}, fmt.Errorf("failed to purge %s: %w", step.name, err)
		}
		*step.dst = n
	}

	if err := tx.Commit(); err != nil {
		return storage.PurgeResult{}, fmt.Errorf("failed to commit purge: %w", err)
	}

	slog.Info("[CounterStore] Purged old rows",
		"before", before.Format(storage.DayLayout),
		"daily_rows", result.DailyRows,
		"owner_rows", result.OwnerRows,
		"cooldown_rows", result.CooldownRows)
	return result, nil
}
