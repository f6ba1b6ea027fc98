package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	// An explicitly named file must exist.
	assert.Error(t, err)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "libradesk.db", cfg.DBPath)
	assert.Equal(t, 7, cfg.LoanDays)
	assert.Equal(t, int64(5), cfg.FinePerDay)
	assert.Equal(t, 0.0, cfg.TaxRate)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libradesk.yml")
	body := "db_path: /tmp/other.db\nloan_days: 14\ntax_rate: 0.18\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
	assert.Equal(t, 14, cfg.LoanDays)
	assert.Equal(t, 0.18, cfg.TaxRate)
	// Untouched keys keep their defaults.
	assert.Equal(t, int64(5), cfg.FinePerDay)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("LIBRADESK_FINE_PER_DAY", "10")
	t.Setenv("LIBRADESK_LOAN_DAYS", "3")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, int64(10), cfg.FinePerDay)
	assert.Equal(t, 3, cfg.LoanDays)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("LIBRADESK_LOAN_DAYS", "0")
	_, err := LoadConfig("")
	assert.Error(t, err)
}
