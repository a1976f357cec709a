package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "pagebinder.db", cfg.DBPath)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("BACKUP_KEEP", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 10, cfg.BackupKeep)
}

func TestValidate_RejectsUnknownDriver(t *testing.T) {
	cfg := Load()
	cfg.DBDriver = "oracle"
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.DBDriver = "sqlite"
	cfg.DBPath = ""
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.BackupKeep = -1
	assert.Error(t, cfg.Validate())
}
