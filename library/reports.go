package library

import (
	"database/sql"
	"errors"
)

const loanColumns = `t.tx_id, t.member_id, t.book_id, t.borrow_date, t.due_date,
       t.return_date, t.fine, m.name AS member_name, b.title AS book_title`

// ActiveLoans returns all open transactions joined with member name and
// book title, most recently created first.
func (d *Database) ActiveLoans() ([]*LoanRecord, error) {
	var loans []*LoanRecord
	err := d.db.Select(&loans, `
        SELECT `+loanColumns+`
        FROM transactions t
        JOIN members m ON m.member_id = t.member_id
        JOIN books b ON b.book_id = t.book_id
        WHERE t.return_date IS NULL
        ORDER BY t.tx_id DESC`)
	if err != nil {
		return nil, storageErr("active loans", err)
	}
	return loans, nil
}

// History returns every transaction, open or closed, most recent first.
func (d *Database) History() ([]*LoanRecord, error) {
	var loans []*LoanRecord
	err := d.db.Select(&loans, `
        SELECT `+loanColumns+`
        FROM transactions t
        JOIN members m ON m.member_id = t.member_id
        JOIN books b ON b.book_id = t.book_id
        ORDER BY t.tx_id DESC`)
	if err != nil {
		return nil, storageErr("history", err)
	}
	return loans, nil
}

// LoanByTx fetches one joined transaction row; the invoice path uses it
// after a return.
func (d *Database) LoanByTx(txID int64) (*LoanRecord, error) {
	var loan LoanRecord
	err := d.db.Get(&loan, `
        SELECT `+loanColumns+`
        FROM transactions t
        JOIN members m ON m.member_id = t.member_id
        JOIN books b ON b.book_id = t.book_id
        WHERE t.tx_id=?`, txID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("loan by tx", err)
	}
	return &loan, nil
}

// Overdue derives the overdue report from the active loans: only loans
// whose due date is strictly before today appear, with the lateness in
// whole days.
func (d *Database) Overdue() ([]*OverdueRecord, error) {
	loans, err := d.ActiveLoans()
	if err != nil {
		return nil, err
	}

	today := dateOf(d.clock.Now())
	var out []*OverdueRecord
	for _, loan := range loans {
		due := dateOf(loan.DueDate)
		if !due.Before(today) {
			continue
		}
		out = append(out, &OverdueRecord{
			MemberName:  loan.MemberName,
			BookTitle:   loan.BookTitle,
			DaysOverdue: daysBetween(due, today),
		})
	}
	return out, nil
}
