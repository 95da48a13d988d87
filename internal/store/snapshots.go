package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"leadconsole/internal/domain"
)

func (d *DB) SavePage(ctx context.Context, pageSize int, p domain.LeadPage) error {
	leads, err := json.Marshal(p.Leads)
	if err != nil {
		return err
	}
	_, err = d.Pool.ExecContext(ctx, `
INSERT INTO page_snapshots (page_size, page, total, total_pages, leads, fetched_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(page_size, page) DO UPDATE SET
  total = excluded.total,
  total_pages = excluded.total_pages,
  leads = excluded.leads,
  fetched_at = excluded.fetched_at;`,
		pageSize, p.Page, p.Total, p.TotalPages, string(leads), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save page snapshot: %w", err)
	}
	return nil
}

func (d *DB) LoadPage(ctx context.Context, pageSize, page int) (domain.LeadPage, bool, error) {
	var p domain.LeadPage
	var leads string
	err := d.Pool.QueryRowContext(ctx, `
SELECT page, total, total_pages, leads
FROM page_snapshots
WHERE page_size = ? AND page = ?
LIMIT 1;`, pageSize, page).Scan(&p.Page, &p.Total, &p.TotalPages, &leads)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.LeadPage{}, false, nil
	}
	if err != nil {
		return domain.LeadPage{}, false, err
	}
	if err := json.Unmarshal([]byte(leads), &p.Leads); err != nil {
		return domain.LeadPage{}, false, fmt.Errorf("decode page snapshot: %w", err)
	}
	return p, true, nil
}

// PruneSnapshots drops snapshots fetched before cutoff.
func (d *DB) PruneSnapshots(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := d.Pool.ExecContext(ctx, `DELETE FROM page_snapshots WHERE fetched_at < ?;`,
		cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("prune page snapshots: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
