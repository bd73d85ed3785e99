package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("SHAREIT_TEST_DB", "data/shareit.db")

	yamlContent := `
app:
  name: shareit-test
database:
  path: "${SHAREIT_TEST_DB}"
api:
  enabled: true
  auth:
    api_keys:
      - key: gw
        extra: secret
        name: gateway
gateway:
  server_url: "http://localhost:9090/"
  cache_ttl: 30s
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "data/shareit.db", cfg.Database.Path)
	assert.Equal(t, "shareit-test", cfg.App.Name)
	assert.True(t, cfg.API.HTTP.Enabled)
	assert.Equal(t, "http://localhost:9090", cfg.Gateway.ServerURL)
	assert.Equal(t, 30*time.Second, cfg.Gateway.CacheTTL)
	require.Len(t, cfg.API.Auth.APIKeys, 1)
	assert.Equal(t, "gateway", cfg.API.Auth.APIKeys[0].Name)
}

func TestLoadConfig_WithEnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, os.WriteFile(".env", []byte("SHAREIT_ENV_FILE_DB=from-env.db\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("SHAREIT_ENV_FILE_DB") })

	require.NoError(t, os.WriteFile(configPath, []byte("database:\n  path: \"${SHAREIT_ENV_FILE_DB}\"\n"), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.Database.Path)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "server config",
			cfg:     Config{Database: DatabaseConfig{Path: "path"}},
			wantErr: false,
		},
		{
			name:    "gateway config",
			cfg:     Config{Gateway: GatewayConfig{ServerURL: "http://server:9090"}},
			wantErr: false,
		},
		{
			name:    "nothing to run",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name:    "bad server url",
			cfg:     Config{Gateway: GatewayConfig{ServerURL: "server:9090"}},
			wantErr: true,
		},
		{
			name: "tls without cert",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				API:      APIConfig{GRPC: APIGRPCConfig{TLS: APITLSConfig{Enabled: true}}},
			},
			wantErr: true,
		},
		{
			name: "duplicate api key",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				API: APIConfig{Auth: APIAuthConfig{APIKeys: []APIClientKey{
					{Key: "k", Name: "a"},
					{Key: "k", Name: "b"},
				}}},
			},
			wantErr: true,
		},
		{
			name: "empty api key",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				API:      APIConfig{Auth: APIAuthConfig{APIKeys: []APIClientKey{{Name: "a"}}}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, "shareit", cfg.App.Name)
	assert.Equal(t, 9090, cfg.API.HTTP.Port)
	assert.Equal(t, 9091, cfg.API.GRPC.Port)
	assert.Equal(t, "x-api-key", cfg.API.Auth.HeaderAPIKey)
	assert.Equal(t, "x-api-extra", cfg.API.Auth.HeaderExtra)
	assert.Equal(t, 8080, cfg.Gateway.Port)
	assert.Equal(t, 10*time.Second, cfg.Gateway.RequestTimeout)
	assert.Equal(t, 120, cfg.Gateway.UserRateLimit)
	assert.Equal(t, time.Minute, cfg.Gateway.UserRateWindow)
	assert.Zero(t, cfg.Monitoring.PrometheusPort)

	cfg = &Config{Monitoring: MonitoringConfig{PrometheusEnabled: true}}
	cfg.applyDefaults()
	assert.Equal(t, 9100, cfg.Monitoring.PrometheusPort)
}
