package library

import (
	"database/sql"
	"fmt"
	"time"
)

// Member is a registered library member. Members are catalog records, not
// login principals; staff authentication lives in the Authenticator.
type Member struct {
	ID    int64  `db:"member_id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}

// Contact formats the member for display.
func (m *Member) Contact() string {
	return fmt.Sprintf("Member #%d: %s <%s>", m.ID, m.Name, m.Email)
}

// Book is a catalog entry. Available counts the copies currently not on
// loan; the total number of copies is fixed when the book is registered.
type Book struct {
	ID        int64  `db:"book_id" json:"id"`
	Title     string `db:"title" json:"title"`
	Author    string `db:"author" json:"author"`
	Genre     string `db:"genre" json:"genre"`
	ISBN      string `db:"isbn" json:"isbn"`
	Available int    `db:"available" json:"available"`
}

// Label formats the book for display, optionally with its ISBN.
func (b *Book) Label(includeISBN bool) string {
	s := fmt.Sprintf("%s by %s", b.Title, b.Author)
	if includeISBN {
		return fmt.Sprintf("%s (ISBN: %s)", s, b.ISBN)
	}
	return s
}

// Transaction is one loan of one book copy. A transaction is open while
// ReturnDate is null and closed, permanently, once the return sets it.
type Transaction struct {
	ID         int64        `db:"tx_id" json:"tx_id"`
	MemberID   int64        `db:"member_id" json:"member_id"`
	BookID     int64        `db:"book_id" json:"book_id"`
	BorrowDate time.Time    `db:"borrow_date" json:"borrow_date"`
	DueDate    time.Time    `db:"due_date" json:"due_date"`
	ReturnDate sql.NullTime `db:"return_date" json:"return_date"`
	Fine       int64        `db:"fine" json:"fine"`
}

// Open reports whether the loan is still outstanding.
func (t *Transaction) Open() bool { return !t.ReturnDate.Valid }

// LoanRecord is a transaction joined with the member name and book title,
// the row shape the report views and the invoice builder consume.
type LoanRecord struct {
	Transaction
	MemberName string `db:"member_name" json:"member_name"`
	BookTitle  string `db:"book_title" json:"book_title"`
}

// OverdueRecord is one line of the overdue report.
type OverdueRecord struct {
	MemberName  string `json:"member_name"`
	BookTitle   string `json:"book_title"`
	DaysOverdue int    `json:"days_overdue"`
}
