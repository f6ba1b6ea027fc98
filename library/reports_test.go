package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveLoansMostRecentFirst(t *testing.T) {
	db, _ := tempDBAt(t, testNow)
	memberID := addTestMember(t, db)
	b1 := addTestBook(t, db, "9780132350884", 1)
	b2, err := db.AddBook("Atomic Habits", "James Clear", "Self-help", "9780735211292", 1)
	require.NoError(t, err)

	tx1, err := db.Borrow(memberID, b1, 7)
	require.NoError(t, err)
	tx2, err := db.Borrow(memberID, b2, 7)
	require.NoError(t, err)

	loans, err := db.ActiveLoans()
	require.NoError(t, err)
	require.Len(t, loans, 2)
	assert.Equal(t, tx2, loans[0].ID)
	assert.Equal(t, tx1, loans[1].ID)
	assert.Equal(t, "Alice Sharma", loans[0].MemberName)
	assert.Equal(t, "Atomic Habits", loans[0].BookTitle)
}

func TestHistoryIncludesClosedLoans(t *testing.T) {
	db, _ := tempDBAt(t, testNow)
	memberID := addTestMember(t, db)
	bookID := addTestBook(t, db, "9780132350884", 1)

	tx1, err := db.Borrow(memberID, bookID, 7)
	require.NoError(t, err)
	_, err = db.Return(tx1, 5)
	require.NoError(t, err)

	tx2, err := db.Borrow(memberID, bookID, 7)
	require.NoError(t, err)

	active, err := db.ActiveLoans()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, tx2, active[0].ID)

	history, err := db.History()
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, tx2, history[0].ID)
	assert.Equal(t, tx1, history[1].ID)
	assert.False(t, history[1].Open())
}

func TestOverdueReport(t *testing.T) {
	db, fc := tempDBAt(t, testNow)
	memberID := addTestMember(t, db)
	late := addTestBook(t, db, "9780132350884", 1)
	fresh, err := db.AddBook("Atomic Habits", "James Clear", "Self-help", "9780735211292", 1)
	require.NoError(t, err)

	// Due three days before the observation point.
	_, err = db.Borrow(memberID, late, 4)
	require.NoError(t, err)
	fc.advanceDays(7)

	// Due tomorrow; must not appear.
	_, err = db.Borrow(memberID, fresh, 1)
	require.NoError(t, err)

	overdue, err := db.Overdue()
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "Clean Code", overdue[0].BookTitle)
	assert.Equal(t, "Alice Sharma", overdue[0].MemberName)
	assert.Equal(t, 3, overdue[0].DaysOverdue)
}

func TestOverdueExcludesDueToday(t *testing.T) {
	db, fc := tempDBAt(t, testNow)
	memberID := addTestMember(t, db)
	bookID := addTestBook(t, db, "9780132350884", 1)

	_, err := db.Borrow(memberID, bookID, 5)
	require.NoError(t, err)

	// Exactly on the due date: strictly-before means not overdue yet.
	fc.advanceDays(5)
	overdue, err := db.Overdue()
	require.NoError(t, err)
	assert.Empty(t, overdue)

	fc.advanceDays(1)
	overdue, err = db.Overdue()
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, 1, overdue[0].DaysOverdue)
}
