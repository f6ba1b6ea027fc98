package library

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeClock pins "now" so due-date and fine arithmetic is deterministic.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) advanceDays(n int) { f.now = f.now.AddDate(0, 0, n) }

func tempDB(t *testing.T) *Database {
	t.Helper()
	dir := t.TempDir()
	db, err := NewDatabase(filepath.Join(dir, "test.db"), zap.NewNop())
	require.NoError(t, err, "new db")
	t.Cleanup(func() { db.Close() })
	return db
}

func tempDBAt(t *testing.T, now time.Time) (*Database, *fakeClock) {
	t.Helper()
	db := tempDB(t)
	fc := &fakeClock{now: now}
	db.clock = fc
	return db, fc
}

// addTestMember and addTestBook cut the boilerplate out of ledger tests.
func addTestMember(t *testing.T, db *Database) int64 {
	t.Helper()
	id, err := db.AddMember("Alice Sharma", "alice@example.com")
	require.NoError(t, err)
	return id
}

func addTestBook(t *testing.T, db *Database, isbn string, copies int) int64 {
	t.Helper()
	id, err := db.AddBook("Clean Code", "Robert C. Martin", "Software", isbn, copies)
	require.NoError(t, err)
	return id
}
