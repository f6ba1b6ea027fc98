package library

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

// Invoice is the payload handed to the invoice renderer for a closed
// transaction. Field order matches the rendered column order.
type Invoice struct {
	TxID       int64   `json:"tx_id"`
	MemberName string  `json:"member_name"`
	BookTitle  string  `json:"book_title"`
	Fine       int64   `json:"fine"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
}

// BuildInvoice maps a closed loan to its invoice payload. Tax is the fine
// times the configured rate, rounded to two decimals. No side effects.
func BuildInvoice(loan *LoanRecord, taxRate float64) Invoice {
	tax := math.Round(float64(loan.Fine)*taxRate*100) / 100
	return Invoice{
		TxID:       loan.ID,
		MemberName: loan.MemberName,
		BookTitle:  loan.BookTitle,
		Fine:       loan.Fine,
		Tax:        tax,
		Total:      float64(loan.Fine) + tax,
	}
}

// InvoiceWriter renders invoice payloads to files under a fixed directory,
// named invoice_tx<ID>_<timestamp> with an extension per format.
type InvoiceWriter struct {
	dir   string
	clock Clocker
}

// NewInvoiceWriter returns a writer that saves invoices under dir.
func NewInvoiceWriter(dir string, clock Clocker) *InvoiceWriter {
	if clock == nil {
		clock = NewClock(false)
	}
	return &InvoiceWriter{dir: dir, clock: clock}
}

// WriteText saves the invoice as a flat text document and returns its path.
func (w *InvoiceWriter) WriteText(inv Invoice) (string, error) {
	path, err := w.targetPath(inv, "txt")
	if err != nil {
		return "", err
	}

	body := fmt.Sprintf(
		"LibraDesk Invoice\nTransaction: %d\nMember: %s\nBook: %s\nFine: %d\nTax: %.2f\nTotal: %.2f\n",
		inv.TxID, inv.MemberName, inv.BookTitle, inv.Fine, inv.Tax, inv.Total)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write invoice: %w", err)
	}
	return path, nil
}

// WriteCSV saves the invoice as a one-row delimited document and returns
// its path.
func (w *InvoiceWriter) WriteCSV(inv Invoice) (string, error) {
	path, err := w.targetPath(inv, "csv")
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("write invoice: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	records := [][]string{
		{"TX_ID", "Member", "Book", "Fine", "Tax", "Total"},
		{
			strconv.FormatInt(inv.TxID, 10),
			inv.MemberName,
			inv.BookTitle,
			strconv.FormatInt(inv.Fine, 10),
			strconv.FormatFloat(inv.Tax, 'f', 2, 64),
			strconv.FormatFloat(inv.Total, 'f', 2, 64),
		},
	}
	if err := cw.WriteAll(records); err != nil {
		return "", fmt.Errorf("write invoice: %w", err)
	}
	cw.Flush()
	return path, cw.Error()
}

func (w *InvoiceWriter) targetPath(inv Invoice, ext string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create invoice dir: %w", err)
	}
	stamp := w.clock.Now().Format("20060102_150405")
	return filepath.Join(w.dir, fmt.Sprintf("invoice_tx%d_%s.%s", inv.TxID, stamp, ext)), nil
}
