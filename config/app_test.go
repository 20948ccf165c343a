package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCorsOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, ParseCorsOrigins(""))
	assert.Equal(t, []string{"*"}, ParseCorsOrigins(" , "))
	assert.Equal(t, []string{"http://a", "http://b"}, ParseCorsOrigins("http://a, http://b,"))
}

func TestLoadAppConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "SYSTEM_USER_ID", "DEFAULT_CURRENCY", "DB_AUTO_MIGRATE", "DB_SEED"} {
		t.Setenv(k, "")
	}
	cfg := LoadAppConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, uint(1), cfg.SystemUserID)
	assert.Equal(t, "VND", cfg.DefaultCurrency)
	assert.True(t, cfg.AutoMigrate)
	assert.True(t, cfg.Seed)
}

func TestLoadAppConfigOverrides(t *testing.T) {
	t.Setenv("SYSTEM_USER_ID", "7")
	t.Setenv("DEFAULT_CURRENCY", "usd")
	t.Setenv("DB_SEED", "false")
	cfg := LoadAppConfig()
	assert.Equal(t, uint(7), cfg.SystemUserID)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
	assert.False(t, cfg.Seed)
}

func TestResolveMySQLDSNFromURL(t *testing.T) {
	t.Setenv("MYSQL_URL", "mysql://u:p@db.local/hotel")
	t.Setenv("DATABASE_URL", "")
	dsn, name, err := ResolveMySQLDSN()
	require.NoError(t, err)
	assert.Equal(t, "hotel", name)
	assert.Contains(t, dsn, "u:p@tcp(db.local:3306)/hotel?")
	assert.Contains(t, dsn, "parseTime=True")
}

func TestResolveMySQLDSNMissingDatabase(t *testing.T) {
	t.Setenv("MYSQL_URL", "mysql://u:p@db.local/")
	_, _, err := ResolveMySQLDSN()
	assert.Error(t, err)
}
