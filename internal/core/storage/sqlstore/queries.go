package sqlstore

// Queries use `?` placeholders; Adapter.bind rewrites them for PostgreSQL.
// Timestamps are stored as unix milliseconds and days as YYYY-MM-DD text so
// that both dialects share one schema.

const (
	queryPostgresTableExists = `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_name = ?
	`

	querySQLiteTableExists = `
		SELECT COUNT(*)
		FROM sqlite_master
		WHERE type = 'table' AND name = ?
	`

	// queryInsertZeroRow lazily creates a record. Losing the race to a
	// concurrent writer is fine: the caller retries its update.
	queryInsertZeroRow = `
		INSERT INTO daily_metrics (day, group_id, user_id, updated_at_ms)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (day, group_id, user_id) DO NOTHING
	`

	queryGetDaily = `
		SELECT
			day, group_id, user_id,
			messages_sent, text_length, images_sent,
			replies_sent, replies_received,
			pokes_sent, pokes_received,
			reactions_sent, reactions_received,
			recalls, topics, repeats,
			updated_at_ms
		FROM daily_metrics
		WHERE day = ? AND group_id = ? AND user_id = ?
	`

	// queryInsertOwner affects zero rows when the message id is already indexed.
	queryInsertOwner = `
		INSERT INTO message_owner_index (message_id, group_id, user_id, sent_at_ms)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (message_id) DO NOTHING
	`

	queryLookupOwner = `
		SELECT message_id, group_id, user_id, sent_at_ms
		FROM message_owner_index
		WHERE message_id = ?
	`

	// Prefixes for chunked IN (...) lookups.
	queryLookupOwnersPrefix = `SELECT message_id, group_id, user_id, sent_at_ms FROM message_owner_index WHERE message_id IN (`
	queryExistingIDsPrefix  = `SELECT message_id FROM message_owner_index WHERE message_id IN (`

	// queryAcquireCooldown only overwrites a record whose last action is at or
	// before the threshold, so the affected row count tells whether the caller
	// may proceed.
	queryAcquireCooldown = `
		INSERT INTO user_cooldown (user_id, group_id, last_action_ms)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, group_id) DO UPDATE
		SET last_action_ms = excluded.last_action_ms
		WHERE user_cooldown.last_action_ms <= ?
	`

	queryReadCooldown = `
		SELECT last_action_ms
		FROM user_cooldown
		WHERE user_id = ? AND group_id = ?
	`

	queryPurgeDaily    = `DELETE FROM daily_metrics WHERE day < ?`
	queryPurgeOwners   = `DELETE FROM message_owner_index WHERE sent_at_ms < ?`
	queryPurgeCooldown = `DELETE FROM user_cooldown WHERE last_action_ms < ?`
)
