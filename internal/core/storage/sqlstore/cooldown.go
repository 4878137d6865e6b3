package sqlstore

import (
	"context"
	"fmt"
	"time"
)

// AcquireCooldown claims the (group, user) cooldown slot when it is free. The
// conditional upsert makes the check and the write one statement, so two
// concurrent callers cannot both acquire it.
func (a *Adapter) AcquireCooldown(ctx context.Context, groupID, userID string, now time.Time, cooldown time.Duration) (bool, time.Duration, error) {
	nowMs := toMillis(now)
	threshold := nowMs - cooldown.Milliseconds()

	res, err := a.db.ExecContext(ctx, a.bind(queryAcquireCooldown), userID, groupID, nowMs, threshold)
	if err != nil {
		return false, 0, fmt.Errorf("failed to acquire cooldown: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("failed to acquire cooldown: %w", err)
	}
	if n > 0 {
		return true, 0, nil
	}

	var lastMs int64
	if err := a.db.QueryRowContext(ctx, a.bind(queryReadCooldown), userID, groupID).Scan(&lastMs); err != nil {
		return false, 0, fmt.Errorf("failed to read cooldown: %w", err)
	}

	remaining := time.Duration(lastMs+cooldown.Milliseconds()-nowMs) * time.Millisecond
	if remaining < 0 {
		remaining = 0
	}
	return false, remaining, nil
}
