package main_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/pressdoc"
	main "github.com/fwojciec/pressdoc/cmd/pressdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))

		require.NoError(t, err)
		assert.Equal(t, main.DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, "https://www.airport.kr", cfg.Crawler.BaseURL)
		assert.Equal(t, "/bbs/co_ko/84/", cfg.Crawler.Path)
		assert.Equal(t, time.Second, cfg.Crawler.Delay)
		assert.Equal(t, main.BrowserOff, cfg.Crawler.Browser)
		assert.Equal(t, "news-reports", cfg.Minio.Bucket)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
logging:
  level: warning
  format: json
database:
  driver: postgres
  host: db.internal
  name: press
crawler:
  base_url: https://press.example.com
  list_url: https://press.example.com/list.do
  board_path: /bbs/press/1/
  delay: 2s
  concurrency: 8
  browser: auto
body:
  header_policy: strict
  dedup: text
`)

		cfg, err := main.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "warning", cfg.Logging.Level)
		assert.Equal(t, main.DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "db.internal", cfg.PostgresConfig().Host)
		assert.Equal(t, "press", cfg.PostgresConfig().Database)
		assert.Equal(t, 5432, cfg.PostgresConfig().Port)
		assert.Equal(t, pressdoc.Board{
			BaseURL: "https://press.example.com",
			ListURL: "https://press.example.com/list.do",
			Path:    "/bbs/press/1/",
		}, cfg.Crawler.Board)
		assert.Equal(t, 2*time.Second, cfg.Crawler.Delay)
		assert.Equal(t, 8, cfg.Crawler.Concurrency)
		assert.Equal(t, main.BrowserAuto, cfg.Crawler.Browser)

		opts, err := cfg.Body.ClassifierOptions()
		require.NoError(t, err)
		assert.Len(t, opts, 2)
	})

	t.Run("invalid YAML", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(writeConfig(t, "database: [unterminated"))

		assert.Equal(t, pressdoc.EINVALID, pressdoc.ErrorCode(err))
	})

	for name, content := range map[string]string{
		"unknown driver":        "database:\n  driver: mysql\n",
		"unknown browser mode":  "crawler:\n  browser: sometimes\n",
		"unknown log level":     "logging:\n  level: loud\n",
		"unknown header policy": "body:\n  header_policy: centered\n",
		"unknown dedup mode":    "body:\n  dedup: hash\n",
		"negative concurrency":  "crawler:\n  concurrency: -1\n",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := main.LoadConfig(writeConfig(t, content))

			assert.Equal(t, pressdoc.EINVALID, pressdoc.ErrorCode(err))
		})
	}
}

// Not parallel: modifies the environment.
func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv(main.EnvDB, "/tmp/press.db")
	t.Setenv(main.EnvDBPassword, "s3cret")
	t.Setenv(main.EnvMinioSecretKey, "minio-secret")
	t.Setenv(main.EnvGeminiAPIKey, "gemini-key")

	cfg, err := main.LoadConfig(writeConfig(t, "database:\n  password: from-file\n"))

	require.NoError(t, err)
	assert.Equal(t, "/tmp/press.db", cfg.Database.Path)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "minio-secret", cfg.ObjectStoreConfig().SecretKey)
	assert.Equal(t, "gemini-key", cfg.Gemini.APIKey)
}

// Not parallel: modifies the environment.
func TestDefaultConfigPath(t *testing.T) {
	t.Setenv(main.EnvConfig, "/etc/pressdoc.yaml")

	assert.Equal(t, "/etc/pressdoc.yaml", main.DefaultConfigPath())
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON records at or above the level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger, closer, err := main.NewLogger(main.LoggingConfig{Level: "warning", Format: "json"}, &buf)
		require.NoError(t, err)
		defer closer.Close()

		logger.Info("hidden")
		logger.Warn("shown", "page", 3)

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), `"msg":"shown"`)
		assert.Contains(t, buf.String(), `"page":3`)
	})

	t.Run("appends to a log file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "logs", "pressdoc.log")
		var buf bytes.Buffer
		logger, closer, err := main.NewLogger(main.LoggingConfig{Level: "info", File: path}, &buf)
		require.NoError(t, err)

		logger.Info("crawl started")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "crawl started")
		assert.Empty(t, buf.String())
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		t.Parallel()

		_, _, err := main.NewLogger(main.LoggingConfig{Level: "info", Format: "xml"}, &bytes.Buffer{})

		assert.Equal(t, pressdoc.EINVALID, pressdoc.ErrorCode(err))
	})
}
