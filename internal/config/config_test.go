package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "./stocks.csv", cfg.StockFile)
	assert.Equal(t, ProviderYahoo, cfg.DataSource.Provider)
	assert.Equal(t, 30*time.Second, cfg.DataSource.FetchTimeout)
	assert.Equal(t, "0 30 22 * * 1-5", cfg.Schedule.Cron)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
stock_file: portfolio.csv
data_source:
  provider: vstrader
  base_url: http://localhost:9000
  fetch_timeout: 5s
database:
  sqlite_path: history.db
`)
	t.Setenv("SQLITE_PATH", "override.db")
	t.Setenv("FETCH_TIMEOUT", "2s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "portfolio.csv", cfg.StockFile)
	assert.Equal(t, ProviderVsTrader, cfg.DataSource.Provider)
	assert.Equal(t, "http://localhost:9000", cfg.DataSource.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.DataSource.FetchTimeout)
	assert.Equal(t, "override.db", cfg.Database.SQLitePath)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "data_source: [unterminated"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	cfg.DataSource.Provider = "bloomberg"
	assert.Error(t, cfg.Validate())

	cfg.DataSource.Provider = ProviderVsTrader
	cfg.DataSource.BaseURL = ""
	assert.Error(t, cfg.Validate())

	cfg.DataSource.Provider = ProviderMock
	cfg.Telegram.BotToken = "token"
	assert.Error(t, cfg.Validate())
	cfg.Telegram.ChatID = "42"
	assert.NoError(t, cfg.Validate())
}
