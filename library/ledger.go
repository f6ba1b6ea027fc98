package library

import (
	"database/sql"
	"errors"

	"go.uber.org/zap"
)

// Borrow lends one copy of a book to a member for the given number of days
// and returns the new transaction id.
//
// The availability check, the decrement and the transaction insert run in
// one SQL transaction: a concurrent borrow of the same book can never drive
// available below zero, and a failure leaves no partial state.
func (d *Database) Borrow(memberID, bookID int64, days int) (int64, error) {
	if days <= 0 {
		return 0, validationErr("days", "loan period must be positive")
	}

	tx, err := d.db.Beginx()
	if err != nil {
		return 0, storageErr("borrow", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM members WHERE member_id=?)`, memberID); err != nil {
		return 0, storageErr("borrow", err)
	}
	if !exists {
		return 0, ErrNotFound
	}

	var available int
	err = tx.Get(&available, `SELECT available FROM books WHERE book_id=?`, bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUnavailable
	}
	if err != nil {
		return 0, storageErr("borrow", err)
	}
	if available <= 0 {
		return 0, ErrUnavailable
	}

	if _, err := tx.Exec(`UPDATE books SET available=available-1 WHERE book_id=?`, bookID); err != nil {
		return 0, storageErr("borrow", err)
	}

	now := d.clock.Now()
	due := dateOf(now.AddDate(0, 0, days))
	res, err := tx.Exec(
		`INSERT INTO transactions(member_id,book_id,borrow_date,due_date) VALUES(?,?,?,?)`,
		memberID, bookID, now, due)
	if err != nil {
		return 0, storageErr("borrow", err)
	}
	txID, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("borrow", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, storageErr("borrow", err)
	}

	d.logger.Info("book borrowed",
		zap.Int64("tx_id", txID),
		zap.Int64("member_id", memberID),
		zap.Int64("book_id", bookID),
		zap.String("due_date", due.Format("2006-01-02")))
	return txID, nil
}

// Return closes an open transaction, computes the fine and puts the copy
// back in circulation. It returns the fine charged.
//
// Days overdue are counted at date granularity, clamped at zero, and
// multiplied by finePerDay. The close is terminal: a second return of the
// same transaction fails with ErrInvalidTransaction and changes nothing.
func (d *Database) Return(txID int64, finePerDay int64) (int64, error) {
	if finePerDay < 0 {
		return 0, validationErr("fine_per_day", "must not be negative")
	}

	tx, err := d.db.Beginx()
	if err != nil {
		return 0, storageErr("return", err)
	}
	defer tx.Rollback()

	var loan Transaction
	err = tx.Get(&loan,
		`SELECT tx_id, member_id, book_id, borrow_date, due_date, return_date, fine
         FROM transactions WHERE tx_id=?`, txID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrInvalidTransaction
	}
	if err != nil {
		return 0, storageErr("return", err)
	}
	if !loan.Open() {
		return 0, ErrInvalidTransaction
	}

	today := dateOf(d.clock.Now())
	overdueDays := daysBetween(dateOf(loan.DueDate), today)
	if overdueDays < 0 {
		overdueDays = 0
	}
	fine := int64(overdueDays) * finePerDay

	if _, err := tx.Exec(`UPDATE transactions SET return_date=?, fine=? WHERE tx_id=?`, today, fine, txID); err != nil {
		return 0, storageErr("return", err)
	}
	if _, err := tx.Exec(`UPDATE books SET available=available+1 WHERE book_id=?`, loan.BookID); err != nil {
		return 0, storageErr("return", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, storageErr("return", err)
	}

	d.logger.Info("book returned",
		zap.Int64("tx_id", txID),
		zap.Int64("book_id", loan.BookID),
		zap.Int("overdue_days", overdueDays),
		zap.Int64("fine", fine))
	return fine, nil
}
