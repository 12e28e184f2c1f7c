package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("minimal config gets defaults", func(t *testing.T) {
		path := writeConfig(t, `
[database]
dbname = "conflicts"
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.HTTPPort)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "conflicts", cfg.Database.DBName)
		assert.Equal(t, "stderr", cfg.Logs.File)
		assert.Equal(t, "info", cfg.Logs.Level)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
		assert.Equal(t, 10, cfg.Conflicts.GroupTimeout)
		assert.Equal(t, 10, cfg.Conflicts.StudentTimeout)
		assert.Equal(t, 300, cfg.Redis.PolicyTTLSec)
		assert.False(t, cfg.Redis.Enabled)
	})

	t.Run("explicit values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
[server]
http_port = 9000

[database]
host = "db.internal"
dbname = "conflicts"

[conflicts]
group_timeout = 5
student_timeout = 20
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 9000, cfg.Server.HTTPPort)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 5, cfg.Conflicts.GroupTimeout)
		assert.Equal(t, 20, cfg.Conflicts.StudentTimeout)
	})

	t.Run("missing dbname is rejected", func(t *testing.T) {
		path := writeConfig(t, `
[server]
http_port = 8080
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dbname")
	})

	t.Run("non-positive engine timeout is rejected", func(t *testing.T) {
		path := writeConfig(t, `
[database]
dbname = "conflicts"

[conflicts]
group_timeout = 0
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("out-of-range port is rejected", func(t *testing.T) {
		path := writeConfig(t, `
[server]
http_port = 70000

[database]
dbname = "conflicts"
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: 5432,
		User: "svc", Password: "secret",
		DBName: "conflicts", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=svc password=secret dbname=conflicts sslmode=disable",
		d.DSN())
}
