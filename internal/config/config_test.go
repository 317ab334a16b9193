package config_test

import (
	"testing"

	"catalog/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViperDefaults(t *testing.T) {
	cfg, err := config.FromViper(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, config.DriverMongo, cfg.DBDriver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "catalog", cfg.MongoDatabase)
	assert.Equal(t, "frontend/dist", cfg.StaticDir)
	assert.False(t, cfg.Production())
	assert.False(t, cfg.AuthRequired)
}

func TestFromViperOverrides(t *testing.T) {
	cfg, err := config.FromViper(newViper(map[string]any{
		"PORT":          ":8081",
		"NODE_ENV":      "production",
		"DB_DRIVER":     "SQLite",
		"DATABASE_DSN":  "file:catalog.db",
		"JWT_SECRET":    "s3cret",
		"AUTH_REQUIRED": "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.Addr())
	assert.True(t, cfg.Production())
	assert.Equal(t, config.DriverSQLite, cfg.DBDriver)
	assert.True(t, cfg.AuthRequired)
}

func TestFromViperRejectsInvalid(t *testing.T) {
	cases := map[string]map[string]any{
		"unknown driver":        {"DB_DRIVER": "oracle"},
		"sql without dsn":       {"DB_DRIVER": "postgres"},
		"mongo without uri":     {"MONGO_URI": ""},
		"auth without a secret": {"DB_DRIVER": "memory", "AUTH_REQUIRED": true},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.FromViper(newViper(values))
			assert.Error(t, err)
		})
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("DB_DRIVER", "memory")

	cfg, err := config.Load("testdata/does-not-exist.env")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr())
	assert.Equal(t, config.DriverMemory, cfg.DBDriver)
}
