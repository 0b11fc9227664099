package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=corebank sslmode=disable", cfg.ConnString())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_NAME", "corebank_test")

	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Contains(t, cfg.ConnString(), "dbname=corebank_test")
}

func TestConnString_PrefersDatabaseURL(t *testing.T) {
	cfg := Config{DatabaseURL: "postgres://u:p@db:5432/corebank?sslmode=disable"}

	assert.Equal(t, "postgres://u:p@db:5432/corebank?sslmode=disable", cfg.ConnString())
}
