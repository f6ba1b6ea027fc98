package library

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLoan(fine int64) *LoanRecord {
	return &LoanRecord{
		Transaction: Transaction{ID: 9, Fine: fine},
		MemberName:  "Alice Sharma",
		BookTitle:   "Clean Code",
	}
}

func TestBuildInvoice(t *testing.T) {
	inv := BuildInvoice(sampleLoan(100), 0.18)
	assert.Equal(t, int64(9), inv.TxID)
	assert.Equal(t, int64(100), inv.Fine)
	assert.Equal(t, 18.0, inv.Tax)
	assert.Equal(t, 118.0, inv.Total)
}

func TestBuildInvoiceZeroRate(t *testing.T) {
	inv := BuildInvoice(sampleLoan(35), 0)
	assert.Equal(t, 0.0, inv.Tax)
	assert.Equal(t, 35.0, inv.Total)
}

func TestBuildInvoiceRoundsTax(t *testing.T) {
	// 7 * 0.0333 = 0.2331, rounds to 0.23.
	inv := BuildInvoice(sampleLoan(7), 0.0333)
	assert.Equal(t, 0.23, inv.Tax)
	assert.Equal(t, 7.23, inv.Total)
}

func TestWriteTextInvoice(t *testing.T) {
	dir := t.TempDir()
	w := NewInvoiceWriter(dir, &fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)})

	path, err := w.WriteText(BuildInvoice(sampleLoan(15), 0))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "invoice_tx9_20250310_090000.txt"), path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Transaction: 9")
	assert.Contains(t, string(body), "Member: Alice Sharma")
	assert.Contains(t, string(body), "Book: Clean Code")
	assert.Contains(t, string(body), "Fine: 15")
	assert.Contains(t, string(body), "Total: 15.00")
}

func TestWriteCSVInvoice(t *testing.T) {
	dir := t.TempDir()
	w := NewInvoiceWriter(dir, &fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)})

	path, err := w.WriteCSV(BuildInvoice(sampleLoan(15), 0.1))
	require.NoError(t, err)
	assert.Equal(t, ".csv", filepath.Ext(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"TX_ID", "Member", "Book", "Fine", "Tax", "Total"}, rows[0])
	assert.Equal(t, []string{"9", "Alice Sharma", "Clean Code", "15", "1.50", "16.50"}, rows[1])
}

func TestWriteInvoiceCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "invoices")
	w := NewInvoiceWriter(dir, nil)

	_, err := w.WriteText(BuildInvoice(sampleLoan(0), 0))
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
