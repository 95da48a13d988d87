package store

import "context"

const schemaVersion = 1

func (d *DB) Migrate(ctx context.Context) error {
	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRowContext(ctx, `PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= schemaVersion {
		return tx.Commit()
	}

	// ---- Schema v1 ----

	if _, err := tx.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS session_cache (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS page_snapshots (
  page_size INTEGER NOT NULL,
  page INTEGER NOT NULL,
  total INTEGER NOT NULL,
  total_pages INTEGER NOT NULL,
  leads TEXT NOT NULL DEFAULT '[]',
  fetched_at TEXT NOT NULL,
  PRIMARY KEY (page_size, page)
);
`); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
CREATE INDEX IF NOT EXISTS idx_page_snapshots_fetched_at
ON page_snapshots(fetched_at);
`); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}
