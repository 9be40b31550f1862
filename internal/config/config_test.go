package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dom/league-roulette/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, config.StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, "league-roulette.db", cfg.SQLitePath)
	assert.Equal(t, 100*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 10, cfg.RedisPoolSize)
	assert.Equal(t, "en_US", cfg.DataDragonLocale)
	assert.Empty(t, cfg.AdminJWTSecret)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Env(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
		check   func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "duration strings",
			env:  map[string]string{"TICK_INTERVAL": "150ms", "FETCH_TIMEOUT": "5s"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 150*time.Millisecond, cfg.TickInterval)
				assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
			},
		},
		{
			name: "bare milliseconds",
			env:  map[string]string{"TICK_INTERVAL": "250"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
			},
		},
		{
			name: "postgres with url",
			env:  map[string]string{"STORE_DRIVER": "postgres", "DATABASE_URL": "postgres://localhost/roulette"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.StorePostgres, cfg.StoreDriver)
			},
		},
		{
			name:    "postgres without url",
			env:     map[string]string{"STORE_DRIVER": "postgres"},
			wantErr: "DATABASE_URL",
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"STORE_DRIVER": "mongo"},
			wantErr: "STORE_DRIVER",
		},
		{
			name:    "tick too fast",
			env:     map[string]string{"TICK_INTERVAL": "5ms"},
			wantErr: "TICK_INTERVAL",
		},
		{
			name:    "tick too slow",
			env:     map[string]string{"TICK_INTERVAL": "3s"},
			wantErr: "TICK_INTERVAL",
		},
		{
			name:    "malformed duration",
			env:     map[string]string{"FETCH_TIMEOUT": "soon"},
			wantErr: "FETCH_TIMEOUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := config.Load()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
