package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndList(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	first, err := db.Record(Run{SourcePath: "a.txt", SHA256: Checksum("a"), Records: 3, Messages: 3, Words: 9, AnalyzedAt: base})
	require.NoError(t, err)
	assert.Len(t, first.ID, 26)

	_, err = db.Record(Run{SourcePath: "b.zip", SHA256: Checksum("b"), Records: 5, Dropped: 1, Media: 2, Links: 1, AnalyzedAt: base.Add(time.Minute)})
	require.NoError(t, err)

	runs, err := db.List(0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b.zip", runs[0].SourcePath)
	assert.Equal(t, 1, runs[0].Dropped)
	assert.Equal(t, first, runs[1])

	limited, err := db.List(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	n, err := db.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestList_OrdersSubSecondTimes(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2024, 5, 1, 12, 0, 5, 0, time.UTC)

	_, err := db.Record(Run{SourcePath: "whole", AnalyzedAt: base})
	require.NoError(t, err)
	_, err = db.Record(Run{SourcePath: "later", AnalyzedAt: base.Add(500 * time.Millisecond)})
	require.NoError(t, err)

	runs, err := db.List(0)
	require.NoError(t, err)
	assert.Equal(t, "later", runs[0].SourcePath)
}

func TestPreviousFor(t *testing.T) {
	db := openTestDB(t)
	sum := Checksum("same export")

	for i := range 3 {
		_, err := db.Record(Run{SourcePath: "chat.txt", SHA256: sum, Records: i})
		require.NoError(t, err)
	}
	_, err := db.Record(Run{SourcePath: "other.txt", SHA256: Checksum("other")})
	require.NoError(t, err)

	prev, err := db.PreviousFor(sum)
	require.NoError(t, err)
	assert.Len(t, prev, 3)

	none, err := db.PreviousFor(Checksum("never"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGet(t *testing.T) {
	db := openTestDB(t)
	r, err := db.Record(Run{SourcePath: "a.txt"})
	require.NoError(t, err)

	got, err := db.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	got, err = db.Get(r.ID[:20])
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	_, err = db.Get("ZZZZ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPrune(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	_, err := db.Record(Run{SourcePath: "old", AnalyzedAt: now.Add(-48 * time.Hour)})
	require.NoError(t, err)
	_, err = db.Record(Run{SourcePath: "new", AnalyzedAt: now})
	require.NoError(t, err)

	n, err := db.Prune(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	runs, err := db.List(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "new", runs[0].SourcePath)
}

func TestSchemaVersion(t *testing.T) {
	db := openTestDB(t)
	v, err := db.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, v)
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Checksum(""))
	assert.NotEqual(t, Checksum("a"), Checksum("b"))
}
