package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadconsole/internal/domain"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "console.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIsRepeatable(t *testing.T) {
	db := openTemp(t)
	require.NoError(t, db.Migrate(context.Background()))
}

func TestSessionCache(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)

	_, ok, err := db.SessionValue(ctx, "fullName")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.SetSessionValue(ctx, "fullName", "Ada"))
	require.NoError(t, db.SetSessionValue(ctx, "fullName", "Ada Lovelace"))

	v, ok, err := db.SessionValue(ctx, "fullName")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Ada Lovelace", v)

	require.NoError(t, db.SavePage(ctx, 20, domain.LeadPage{Page: 1, Total: 1, TotalPages: 1}))
	require.NoError(t, db.ClearSession(ctx))

	_, ok, err = db.SessionValue(ctx, "fullName")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = db.LoadPage(ctx, 20, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPageSnapshots(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)

	p := domain.LeadPage{
		Leads:      []domain.Lead{{ID: "a", FirstName: "Ada", Source: domain.SourceWebsite, Status: domain.StatusWon}},
		Page:       1,
		Total:      41,
		TotalPages: 3,
	}
	require.NoError(t, db.SavePage(ctx, 20, p))

	got, ok, err := db.LoadPage(ctx, 20, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p, got)

	_, ok, err = db.LoadPage(ctx, 50, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := db.PruneSnapshots(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = db.PruneSnapshots(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
