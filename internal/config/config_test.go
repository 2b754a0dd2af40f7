package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BartekS5/gamsync/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
gam:
  path: /usr/local/bin/gam
  filters:
    - "accounts:is_suspended==False"
    - "accounts:is_2sv_enrolled==True"
  mappings:
    email: email
    "accounts:is_admin": is_admin
    date: report_date
  data_formatting:
    is_admin: bool
    report_date: date_simple
    last_login: date_UTC
  primary_key: email
  timeout: 5m
database:
  username: sync
  password: secret
  instance: dbhost:1521/ORCL
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "googleSync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, sampleYAML)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	tool := cfg.Sync.Tool
	assert.Equal(t, "/usr/local/bin/gam", tool.Path)
	assert.Len(t, tool.Filters, 2)
	assert.Equal(t, "is_admin", tool.Mappings["accounts:is_admin"])
	assert.Equal(t, "email", tool.PrimaryKey)
	assert.Equal(t, 5*time.Minute, tool.Timeout)
	assert.Equal(t, models.FormatDateUTC, tool.DataFormatting["last_login"])

	assert.Equal(t, "oracle", cfg.Sync.Database.Driver)
	assert.Equal(t, DefaultTable, cfg.Sync.Database.Table)
	assert.Equal(t, filepath.Join(filepath.Dir(path), DefaultReportFile), cfg.ReportPath)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("MONGO_CONNECTION_STRING", "mongodb://localhost:27017")

	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Sync.Database.Password)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoConnString)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestParseSyncConfig_UnknownField(t *testing.T) {
	_, err := ParseSyncConfig([]byte("gam:\n  path: x\n  colour: blue\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *models.SyncConfig {
		sc, err := ParseSyncConfig([]byte(sampleYAML))
		require.NoError(t, err)
		return sc
	}

	t.Run("ok", func(t *testing.T) {
		assert.NoError(t, Validate(base()))
	})

	t.Run("missing tool path", func(t *testing.T) {
		sc := base()
		sc.Tool.Path = ""
		assert.ErrorContains(t, Validate(sc), "Path")
	})

	t.Run("unknown driver", func(t *testing.T) {
		sc := base()
		sc.Database.Driver = "mysql"
		assert.ErrorContains(t, Validate(sc), "oneof")
	})

	t.Run("unknown format kind", func(t *testing.T) {
		sc := base()
		sc.Tool.DataFormatting["is_admin"] = "yesno"
		assert.ErrorContains(t, Validate(sc), "is_admin")
	})

	t.Run("unsafe mapping target", func(t *testing.T) {
		sc := base()
		sc.Tool.Mappings["email"] = "email; --"
		assert.ErrorContains(t, Validate(sc), "not a valid column name")
	})

	t.Run("unsafe table", func(t *testing.T) {
		sc := base()
		sc.Database.Table = "accounts a"
		assert.ErrorContains(t, Validate(sc), "database.table")
	})

	t.Run("missing primary key is left to the statement builder", func(t *testing.T) {
		sc := base()
		sc.Tool.PrimaryKey = ""
		assert.NoError(t, Validate(sc))
	})
}
