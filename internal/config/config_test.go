package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATABASE_URL",
		"HTTP_PORT",
		"REVIEWBOARD_HTTP_PORT",
		"REVIEWBOARD_DATABASE_DRIVER",
		"REVIEWBOARD_DATABASE_DSN",
		"REVIEWBOARD_DATABASE_LOG_LEVEL",
		"REVIEWBOARD_GIN_MODE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "project.db", cfg.Database.DSN)
	assert.Equal(t, "warn", cfg.Database.LogLevel)
	assert.Equal(t, "release", cfg.Gin.Mode)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("REVIEWBOARD_DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "host=localhost user=postgres dbname=reviews")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REVIEWBOARD_GIN_MODE", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "host=localhost user=postgres dbname=reviews", cfg.Database.DSN)
	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.Gin.Mode)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "reviewboard.yaml")
	content := "http:\n  port: \"7070\"\ndatabase:\n  dsn: reviews.db\n  log_level: info\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.HTTP.Port)
	assert.Equal(t, "reviews.db", cfg.Database.DSN)
	assert.Equal(t, "info", cfg.Database.LogLevel)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "sqlite",
			cfg:  Config{HTTP: HTTPConfig{Port: "8080"}, Database: DatabaseConfig{Driver: "sqlite", DSN: "a.db"}},
		},
		{
			name: "postgres",
			cfg:  Config{HTTP: HTTPConfig{Port: "8080"}, Database: DatabaseConfig{Driver: "postgres", DSN: "host=db"}},
		},
		{
			name:    "unknown driver",
			cfg:     Config{HTTP: HTTPConfig{Port: "8080"}, Database: DatabaseConfig{Driver: "mysql", DSN: "x"}},
			wantErr: true,
		},
		{
			name:    "empty dsn",
			cfg:     Config{HTTP: HTTPConfig{Port: "8080"}, Database: DatabaseConfig{Driver: "sqlite"}},
			wantErr: true,
		},
		{
			name:    "empty port",
			cfg:     Config{Database: DatabaseConfig{Driver: "sqlite", DSN: "a.db"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
