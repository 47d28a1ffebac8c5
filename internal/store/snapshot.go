package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// snapshotRepo implements SnapshotRepo on the snapshots table.
type snapshotRepo struct {
	db *sql.DB
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	updated := snap.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `INSERT INTO snapshots
		(session_id, user_id, skill_id, completed, updated_at, data)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET
			user_id = excluded.user_id,
			skill_id = excluded.skill_id,
			completed = excluded.completed,
			updated_at = excluded.updated_at,
			data = excluded.data`,
		snap.SessionID, snap.UserID, snap.SkillID, snap.Completed, updated.UnixMilli(), snap.Data,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Load(ctx context.Context, sessionID string) (*Snapshot, error) {
	return r.one(ctx, `SELECT session_id, user_id, skill_id, completed, updated_at, data
		FROM snapshots WHERE session_id = ?`, sessionID)
}

func (r *snapshotRepo) Latest(ctx context.Context, userID string) (*Snapshot, error) {
	return r.one(ctx, `SELECT session_id, user_id, skill_id, completed, updated_at, data
		FROM snapshots WHERE user_id = ? AND completed = 0
		ORDER BY updated_at DESC LIMIT 1`, userID)
}

func (r *snapshotRepo) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Prune(ctx context.Context, userID string, keep int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM snapshots
		WHERE user_id = ? AND completed = 1 AND session_id NOT IN (
			SELECT session_id FROM snapshots
			WHERE user_id = ? AND completed = 1
			ORDER BY updated_at DESC LIMIT ?)`, userID, userID, keep)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

func (r *snapshotRepo) one(ctx context.Context, query string, args ...any) (*Snapshot, error) {
	var (
		s       Snapshot
		updated int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&s.SessionID, &s.UserID, &s.SkillID, &s.Completed, &updated, &s.Data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	s.UpdatedAt = time.UnixMilli(updated)
	return &s, nil
}
