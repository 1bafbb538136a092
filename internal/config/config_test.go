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

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		// Given: a config file that only sets the port
		path := writeConfig(t, "http-port: \"8080\"\n")

		// When: it is loaded
		conf, err := Load(path)

		// Then: everything else falls back to defaults
		require.NoError(t, err)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, TableSourceFile, conf.Table.Source)
		assert.Equal(t, SessionStoreRedis, conf.SessionStore)
		assert.Equal(t, 24*time.Hour, conf.SessionTTL)
		assert.Equal(t, "X", conf.Game.AgentMark)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.True(t, conf.NeedsRedis())
	})

	t.Run("Nested values", func(t *testing.T) {
		// Given: a config file with every section set
		path := writeConfig(t, `
session-store: memory
table:
  source: sqlite
  path: /tmp/table.db
policy:
  seed: 42
game:
  agent-mark: O
  agent-first: true
`)

		// When: it is loaded
		conf, err := Load(path)

		// Then: the values are read
		require.NoError(t, err)
		assert.Equal(t, TableSourceSQLite, conf.Table.Source)
		assert.Equal(t, "/tmp/table.db", conf.Table.Path)
		assert.Equal(t, int64(42), conf.Policy.Seed)
		assert.Equal(t, "O", conf.Game.AgentMark)
		assert.True(t, conf.Game.AgentFirst)
		assert.False(t, conf.NeedsRedis())
	})

	tests := []struct {
		name string
		body string
	}{
		{name: "unknown table source", body: "table:\n  source: pickle\n"},
		{name: "unknown session store", body: "session-store: disk\n"},
		{name: "bad agent mark", body: "game:\n  agent-mark: Z\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When: an invalid config is loaded
			_, err := Load(writeConfig(t, tt.body))

			// Then: it is rejected
			require.Error(t, err)
		})
	}

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
	})
}
