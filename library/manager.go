package library

import (
	"go.uber.org/zap"
)

// LibraryManager is a thin façade over the Database, keeping CLI code
// simple. It resolves configured defaults (loan days, fine per day, tax
// rate), gates catalog mutations by role, and drives invoice generation on
// return.
type LibraryManager struct {
	db       *Database
	auth     Authenticator
	invoices *InvoiceWriter
	cfg      Config
	logger   *zap.Logger
}

// NewLibraryManager opens (or creates) the SQLite database named by the
// config and wires the default authenticator and invoice writer.
func NewLibraryManager(cfg Config, logger *zap.Logger) (*LibraryManager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := NewDatabase(cfg.DBPath, logger)
	if err != nil {
		return nil, err
	}
	auth, err := DefaultAuthenticator()
	if err != nil {
		db.Close()
		return nil, err
	}
	return &LibraryManager{
		db:       db,
		auth:     auth,
		invoices: NewInvoiceWriter(cfg.InvoiceDir, db.clock),
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Close closes the underlying database.
func (lm *LibraryManager) Close() error { return lm.db.Close() }

// Login verifies staff credentials and returns the role.
func (lm *LibraryManager) Login(username, password string) (string, error) {
	role, err := lm.auth.Authenticate(username, password)
	if err != nil {
		lm.logger.Warn("login rejected", zap.String("username", username))
		return "", err
	}
	lm.logger.Info("login accepted", zap.String("username", username), zap.String("role", role))
	return role, nil
}

// ------------------ Member helpers (unrestricted) ------------------

func (lm *LibraryManager) AddMember(name, email string) (int64, error) {
	return lm.db.AddMember(name, email)
}

func (lm *LibraryManager) UpdateMember(id int64, name, email string) error {
	return lm.db.UpdateMember(id, name, email)
}

func (lm *LibraryManager) GetMember(id int64) (*Member, error) { return lm.db.GetMember(id) }

func (lm *LibraryManager) ListMembers(pattern string) ([]*Member, error) {
	return lm.db.ListMembers(pattern)
}

// ------------------ Book helpers (catalog mutations gated) ------------------

// AddBook registers a book. Only admins may mutate the catalog.
func (lm *LibraryManager) AddBook(role, title, author, genre, isbn string, available int) (int64, error) {
	if !canManageCatalog(role) {
		return 0, ErrForbidden
	}
	return lm.db.AddBook(title, author, genre, isbn, available)
}

// UpdateBook edits a book. Only admins may mutate the catalog.
func (lm *LibraryManager) UpdateBook(role string, id int64, title, author, genre, isbn string, available int) error {
	if !canManageCatalog(role) {
		return ErrForbidden
	}
	return lm.db.UpdateBook(id, title, author, genre, isbn, available)
}

func (lm *LibraryManager) GetBook(id int64) (*Book, error) { return lm.db.GetBook(id) }

func (lm *LibraryManager) ListBooks(pattern string) ([]*Book, error) {
	return lm.db.ListBooks(pattern)
}

// ------------------ Circulation ------------------

// Borrow lends a book for days; days <= 0 means the configured default.
func (lm *LibraryManager) Borrow(memberID, bookID int64, days int) (int64, error) {
	if days <= 0 {
		days = lm.cfg.LoanDays
	}
	return lm.db.Borrow(memberID, bookID, days)
}

// Return closes the loan at the configured fine rate and returns the fine.
func (lm *LibraryManager) Return(txID int64) (int64, error) {
	return lm.db.Return(txID, lm.cfg.FinePerDay)
}

// ReturnWithInvoice closes the loan and renders the invoice document,
// returning the fine and the invoice file path.
func (lm *LibraryManager) ReturnWithInvoice(txID int64, asCSV bool) (int64, string, error) {
	fine, err := lm.db.Return(txID, lm.cfg.FinePerDay)
	if err != nil {
		return 0, "", err
	}

	loan, err := lm.db.LoanByTx(txID)
	if err != nil {
		return fine, "", err
	}
	inv := BuildInvoice(loan, lm.cfg.TaxRate)

	var path string
	if asCSV {
		path, err = lm.invoices.WriteCSV(inv)
	} else {
		path, err = lm.invoices.WriteText(inv)
	}
	if err != nil {
		return fine, "", err
	}
	lm.logger.Info("invoice written", zap.Int64("tx_id", txID), zap.String("path", path))
	return fine, path, nil
}

// ------------------ Reports ------------------

func (lm *LibraryManager) ActiveLoans() ([]*LoanRecord, error) { return lm.db.ActiveLoans() }

func (lm *LibraryManager) History() ([]*LoanRecord, error) { return lm.db.History() }

func (lm *LibraryManager) Overdue() ([]*OverdueRecord, error) { return lm.db.Overdue() }

func (lm *LibraryManager) LoanByTx(id int64) (*LoanRecord, error) { return lm.db.LoanByTx(id) }

// SeedIfEmpty inserts the stock demo members and books on first run.
func (lm *LibraryManager) SeedIfEmpty() error { return SeedIfEmpty(lm.db) }
