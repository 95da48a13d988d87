package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

func (d *DB) SetSessionValue(ctx context.Context, key, value string) error {
	_, err := d.Pool.ExecContext(ctx, `
INSERT INTO session_cache (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("set session value %q: %w", key, err)
	}
	return nil
}

func (d *DB) SessionValue(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := d.Pool.QueryRowContext(ctx, `SELECT value FROM session_cache WHERE key = ? LIMIT 1;`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// ClearSession forgets everything cached for the signed-in user, including
// list snapshots.
func (d *DB) ClearSession(ctx context.Context) error {
	if _, err := d.Pool.ExecContext(ctx, `DELETE FROM session_cache;`); err != nil {
		return fmt.Errorf("clear session cache: %w", err)
	}
	if _, err := d.Pool.ExecContext(ctx, `DELETE FROM page_snapshots;`); err != nil {
		return fmt.Errorf("clear page snapshots: %w", err)
	}
	return nil
}
