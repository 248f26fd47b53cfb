package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.HTTP.RequestTimeout())
	assert.Equal(t, 5*time.Second, cfg.DB.LockTimeout())
	assert.Equal(t, "USD", cfg.Documents.Currency)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "3")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("ALERTS_INTERVAL_SECONDS", "60")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.HTTP.RequestTimeout())
	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.Equal(t, time.Minute, cfg.Alerts.Interval())
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/inv?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
