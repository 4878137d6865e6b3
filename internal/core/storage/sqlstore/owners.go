package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aevon-lab/affinity/internal/core/storage"
)

// ownerLookupChunk keeps IN (...) lists below SQLite's host parameter limit.
const ownerLookupChunk = 500

// LookupOwner resolves one message id or returns storage.ErrNotFound.
func (a *Adapter) LookupOwner(ctx context.Context, messageID string) (storage.MessageOwner, error) {
	var (
		owner  storage.MessageOwner
		sentMs int64
	)
	err := a.db.QueryRowContext(ctx, a.bind(queryLookupOwner), messageID).
		Scan(&owner.MessageID, &owner.GroupID, &owner.UserID, &sentMs)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.MessageOwner{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.MessageOwner{}, fmt.Errorf("failed to look up message owner: %w", err)
	}
	owner.SentAt = fromMillis(sentMs)
	return owner, nil
}

// LookupOwners resolves the given ids in chunks. Unknown ids are omitted.
func (a *Adapter) LookupOwners(ctx context.Context, messageIDs []string) (map[string]storage.MessageOwner, error) {
	out := make(map[string]storage.MessageOwner, len(messageIDs))

	err := a.forEachChunk(ctx, queryLookupOwnersPrefix, messageIDs, func(rows *sql.Rows) error {
		var (
			owner  storage.MessageOwner
			sentMs int64
		)
		if err := rows.Scan(&owner.MessageID, &owner.GroupID, &owner.UserID, &sentMs); err != nil {
			return err
		}
		owner.SentAt = fromMillis(sentMs)
		out[owner.MessageID] = owner
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to look up message owners: %w", err)
	}
	return out, nil
}

// ExistingMessageIDs returns the subset of ids already in the ownership index.
func (a *Adapter) ExistingMessageIDs(ctx context.Context, messageIDs []string) (map[string]struct{}, error) {
	out := make(map[string]struct{})

	err := a.forEachChunk(ctx, queryExistingIDsPrefix, messageIDs, func(rows *sql.Rows) error {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		out[id] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check existing messages: %w", err)
	}
	return out, nil
}

func (a *Adapter) forEachChunk(ctx context.Context, prefix string, ids []string, scan func(*sql.Rows) error) error {
	for start := 0; start < len(ids); start += ownerLookupChunk {
		end := start + ownerLookupChunk
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]

		args := make([]any, len(chunk))
		for i, id := range chunk {
			args[i] = id
		}

		rows, err := a.db.QueryContext(ctx, a.bind(prefix+placeholders(len(chunk))+")"), args...)
		if err != nil {
			return err
		}
		for rows.Next() {
			if err := scan(rows); err != nil {
				rows.Close()
				return err
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()
	}
	return nil
}
