package library

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// ---------------------------------------------------------------------------
// Members
// ---------------------------------------------------------------------------

// AddMember validates and persists a new member, returning the generated id.
func (d *Database) AddMember(name, email string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, validationErr("name", "must not be empty")
	}
	if err := validateEmail(email); err != nil {
		return 0, err
	}

	res, err := d.addMemberStmt.Exec(name, email)
	if err != nil {
		return 0, storageErr("add member", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("add member", err)
	}
	d.logger.Info("member added", zap.Int64("member_id", id))
	return id, nil
}

// UpdateMember overwrites a member's name and email. Updating an id that
// does not exist returns ErrNotFound.
func (d *Database) UpdateMember(id int64, name, email string) error {
	if strings.TrimSpace(name) == "" {
		return validationErr("name", "must not be empty")
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	res, err := d.db.Exec(`UPDATE members SET name=?, email=? WHERE member_id=?`, name, email, id)
	if err != nil {
		return storageErr("update member", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("update member", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	d.logger.Info("member updated", zap.Int64("member_id", id))
	return nil
}

// GetMember fetches a single member.
func (d *Database) GetMember(id int64) (*Member, error) {
	var m Member
	err := d.db.Get(&m, `SELECT member_id, name, email FROM members WHERE member_id=?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("get member", err)
	}
	return &m, nil
}

// ListMembers returns all members, oldest first. A non-empty pattern is
// matched case-insensitively against name and email after the fetch; the
// filter is presentation-oriented, a full scan is fine at this scale.
func (d *Database) ListMembers(pattern string) ([]*Member, error) {
	rgx, err := compileFilter(pattern)
	if err != nil {
		return nil, err
	}

	var members []*Member
	if err := d.db.Select(&members, `SELECT member_id, name, email FROM members ORDER BY member_id`); err != nil {
		return nil, storageErr("list members", err)
	}
	if rgx == nil {
		return members, nil
	}

	var out []*Member
	for _, m := range members {
		if rgx.MatchString(m.Name) || rgx.MatchString(m.Email) {
			out = append(out, m)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Books
// ---------------------------------------------------------------------------

// AddBook validates and persists a new book, returning the generated id.
// The available count fixes the total number of copies for this book.
func (d *Database) AddBook(title, author, genre, isbn string, available int) (int64, error) {
	if strings.TrimSpace(title) == "" {
		return 0, validationErr("title", "must not be empty")
	}
	if available < 0 {
		return 0, validationErr("available", "must not be negative")
	}
	if err := validateISBN(isbn); err != nil {
		return 0, err
	}

	res, err := d.addBookStmt.Exec(title, author, genre, isbn, available)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateISBN
		}
		return 0, storageErr("add book", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("add book", err)
	}
	d.logger.Info("book added", zap.Int64("book_id", id), zap.String("isbn", isbn))
	return id, nil
}

// UpdateBook overwrites all fields of a book, including available. Callers
// must not use it to break the availability reconciliation; it exists for
// catalog corrections. Updating an absent id returns ErrNotFound.
func (d *Database) UpdateBook(id int64, title, author, genre, isbn string, available int) error {
	if strings.TrimSpace(title) == "" {
		return validationErr("title", "must not be empty")
	}
	if available < 0 {
		return validationErr("available", "must not be negative")
	}
	if err := validateISBN(isbn); err != nil {
		return err
	}

	res, err := d.db.Exec(
		`UPDATE books SET title=?, author=?, genre=?, isbn=?, available=? WHERE book_id=?`,
		title, author, genre, isbn, available, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateISBN
		}
		return storageErr("update book", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("update book", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	d.logger.Info("book updated", zap.Int64("book_id", id))
	return nil
}

// GetBook fetches a single book.
func (d *Database) GetBook(id int64) (*Book, error) {
	var b Book
	err := d.db.Get(&b, `SELECT book_id, title, author, genre, isbn, available FROM books WHERE book_id=?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("get book", err)
	}
	return &b, nil
}

// ListBooks returns all books, oldest first, optionally filtered the same
// way as ListMembers across title, author, genre and ISBN.
func (d *Database) ListBooks(pattern string) ([]*Book, error) {
	rgx, err := compileFilter(pattern)
	if err != nil {
		return nil, err
	}

	var books []*Book
	if err := d.db.Select(&books, `SELECT book_id, title, author, genre, isbn, available FROM books ORDER BY book_id`); err != nil {
		return nil, storageErr("list books", err)
	}
	if rgx == nil {
		return books, nil
	}

	var out []*Book
	for _, b := range books {
		if rgx.MatchString(b.Title) || rgx.MatchString(b.Author) ||
			rgx.MatchString(b.Genre) || rgx.MatchString(b.ISBN) {
			out = append(out, b)
		}
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique
}
