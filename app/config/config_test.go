package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name        string
		environment map[string]string
		expectErr   bool
		check       func(t *testing.T, cfg Config)
	}{
		{
			name:        "Defaults",
			environment: map[string]string{},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "local", cfg.Env)
				assert.False(t, cfg.IsProduction())
				assert.Equal(t, ":8000", cfg.HTTP.Addr)
				assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
				assert.Equal(t, DriverSQLite, cfg.Database.Driver)
				assert.Equal(t, "tienda.db", cfg.Database.DSN)
				assert.Equal(t, 25, cfg.Database.MaxOpenConns)
				assert.Equal(t, 10, cfg.Database.MaxIdleConns)
				assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
				assert.False(t, cfg.Database.LogSQL)
				assert.False(t, cfg.Database.AutoMigrate)
			},
		},
		{
			name: "Driver picks its default DSN",
			environment: map[string]string{
				"DB_DRIVER": "SQLServer",
			},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, DriverSQLServer, cfg.Database.Driver)
				assert.Contains(t, cfg.Database.DSN, "sqlserver://")
				assert.Contains(t, cfg.Database.DSN, "encrypt=true")
			},
		},
		{
			name: "Explicit DSN wins",
			environment: map[string]string{
				"APP_ENV":      "production",
				"DB_DRIVER":    "postgres",
				"DATABASE_DSN": "postgres://u:p@db:5432/shop",
				"DB_LOG_SQL":   "true",
				"HTTP_ADDR":    ":9090",
			},
			check: func(t *testing.T, cfg Config) {
				assert.True(t, cfg.IsProduction())
				assert.Equal(t, "postgres://u:p@db:5432/shop", cfg.Database.DSN)
				assert.True(t, cfg.Database.LogSQL)
				assert.Equal(t, ":9090", cfg.HTTP.Addr)
			},
		},
		{
			name: "Unsupported driver",
			environment: map[string]string{
				"DB_DRIVER": "oracle",
			},
			expectErr: true,
		},
		{
			name: "Malformed duration",
			environment: map[string]string{
				"DB_CONN_MAX_LIFETIME": "forever",
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Parse(env.Options{Environment: tc.environment})

			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}
