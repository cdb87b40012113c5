package mysqlstore

// Round-trip tests run against a throwaway sqlite database; the store only
// speaks gorm, so the dialect is interchangeable.

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/store"
)

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "records.db")), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	s, err := New(db)
	require.NoError(t, err)
	return s, db
}

func TestCreateFindRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	tbl := s.Table("Products")

	created, err := tbl.Create(context.Background(), map[string]any{
		"name":  "Widget",
		"price": 9.99,
	})
	require.NoError(t, err)
	assert.Regexp(t, `^rec`, created.ID)

	found, err := tbl.Find(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", found.Fields["name"])
	assert.Equal(t, 9.99, found.Fields["price"])
	assert.False(t, found.CreatedTime.IsZero())
}

func TestSelectScopedToTableAndFormula(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	orders := s.Table("Orders")
	products := s.Table("Products")

	_, err := products.Create(ctx, map[string]any{"name": "Widget"})
	require.NoError(t, err)
	_, err = orders.Create(ctx, map[string]any{"buyerEmail": "jo@example.com"})
	require.NoError(t, err)
	_, err = orders.Create(ctx, map[string]any{"buyerEmail": "jo@example.com"})
	require.NoError(t, err)
	_, err = orders.Create(ctx, map[string]any{"buyerEmail": "other@example.com"})
	require.NoError(t, err)

	all, err := orders.Select(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3) // the product row never bleeds in

	matched, err := orders.Select(ctx, store.FieldEquals("buyerEmail", "jo@example.com"))
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	none, err := orders.Select(ctx, store.FieldEquals("buyerEmail", "nobody@example.com"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateMergesIntoStoredFields(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	tbl := s.Table("Orders")

	created, err := tbl.Create(ctx, map[string]any{
		"buyerEmail": "jo@example.com",
		"status":     "pending",
	})
	require.NoError(t, err)

	updated, err := tbl.Update(ctx, created.ID, map[string]any{"status": "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", updated.Fields["status"])
	assert.Equal(t, "jo@example.com", updated.Fields["buyerEmail"])

	found, err := tbl.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", found.Fields["status"])
	assert.Equal(t, "jo@example.com", found.Fields["buyerEmail"])
}

func TestUpdateMissingRecord(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Table("Orders").Update(context.Background(), "recMissing", map[string]any{"status": "cancelled"})
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestUpdateOfRecordDeletedMidFlight(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	tbl := s.Table("Orders")

	created, err := tbl.Create(ctx, map[string]any{"status": "pending"})
	require.NoError(t, err)

	// Yank the row between the update's read and its write.
	err = db.Callback().Update().Before("gorm:update").Register("delete_mid_update", func(tx *gorm.DB) {
		tx.Session(&gorm.Session{NewDB: true}).Exec("DELETE FROM records WHERE id = ?", created.ID)
	})
	require.NoError(t, err)

	_, err = tbl.Update(ctx, created.ID, map[string]any{"status": "cancelled"})
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestDestroy(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	tbl := s.Table("Products")

	created, err := tbl.Create(ctx, map[string]any{"name": "Widget"})
	require.NoError(t, err)

	require.NoError(t, tbl.Destroy(ctx, created.ID))
	_, err = tbl.Find(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	assert.ErrorIs(t, tbl.Destroy(ctx, created.ID), store.ErrRecordNotFound)
}
