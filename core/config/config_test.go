package config

import (
	"os"
	"path/filepath"
	"testing"

	"termsheet-reconciler/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 0.001, cfg.Recon.NumericTolerance)
	assert.Equal(t, 0, cfg.Recon.DateToleranceDays)
	assert.Equal(t, "outputs", cfg.Recon.OutputDir)
	assert.Equal(t, "booking_records", cfg.Recon.BookingTable)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, 120, cfg.OpenAI.TimeoutSeconds)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RECON_NUMERIC_TOLERANCE", "0.05")
	t.Setenv("RECON_OUTPUT_DIR", "/tmp/reports")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 0.05, cfg.Recon.NumericTolerance)
	assert.Equal(t, "/tmp/reports", cfg.Recon.OutputDir)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DATABASE_NAME=bookings\nSTORAGE_BUCKET=docs\n"), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "bookings", cfg.Database.Name)
	assert.Equal(t, "docs", cfg.Storage.Bucket)
}

func TestLoadMappings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mappings.yaml")
	content := `field_order:
  - isin
  - coupon_rate
synonyms:
  coupon_rate:
    - FixedRate
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadMappings(path, reconcile.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"isin", "coupon_rate"}, cfg.FieldOrder)
	assert.Equal(t, []string{"FixedRate"}, cfg.Synonyms["coupon_rate"])
	// Untouched fields keep their built-in synonyms.
	assert.Contains(t, cfg.Synonyms["isin"], "ISIN")
}

func TestLoadMappingsMissingFile(t *testing.T) {
	_, err := LoadMappings(filepath.Join(t.TempDir(), "nope.yaml"), reconcile.DefaultConfig())
	assert.Error(t, err)
}
