package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CondeSun/i5Req/pkg/transport"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Minimal(t *testing.T) {
	path := writeConfig(t, `
endpoint:
  hostname: i5.example.com
  scenario: Processor
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "i5.example.com", cfg.Endpoint.Hostname)
	assert.Equal(t, "Processor", cfg.Endpoint.Scenario)

	// Defaults
	assert.Equal(t, 43001, cfg.Endpoint.Port)
	assert.Equal(t, "Default", cfg.Endpoint.Tenant)
	assert.Equal(t, "1.2", cfg.TLS.MinVersion)
	assert.Equal(t, 30*time.Second, cfg.Client.TimeoutDuration())
	assert.Equal(t, 90*time.Second, cfg.Client.IdleConnTimeoutDuration())
	assert.Equal(t, 24*time.Hour, cfg.Client.RetentionWindowDuration())
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
endpoint:
  hostname: 10.0.0.5
  port: 8443
  scenario: Invoices
  tenant: Tenant01
  plainHTTP: true

tls:
  minVersion: "1.3"
  insecureSkipVerify: true

client:
  timeout: 5s
  retentionWindow: 1h

logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8443, cfg.Endpoint.Port)
	assert.Equal(t, "Tenant01", cfg.Endpoint.Tenant)
	assert.True(t, cfg.Endpoint.PlainHTTP)
	assert.Equal(t, "1.3", cfg.TLS.MinVersion)
	assert.True(t, cfg.TLS.InsecureSkipVerify)
	assert.Equal(t, 5*time.Second, cfg.Client.TimeoutDuration())
	assert.Equal(t, time.Hour, cfg.Client.RetentionWindowDuration())
	assert.Equal(t, slog.LevelDebug, cfg.Logging.SlogLevel())
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("I5_TENANT", "EnvTenant")

	path := writeConfig(t, `
endpoint:
  hostname: i5.example.com
  scenario: Processor
  tenant: ${I5_TENANT}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "EnvTenant", cfg.Endpoint.Tenant)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing hostname",
			content: "endpoint:\n  scenario: Processor\n",
			wantErr: "endpoint.hostname",
		},
		{
			name:    "missing scenario",
			content: "endpoint:\n  hostname: h\n",
			wantErr: "endpoint.scenario",
		},
		{
			name:    "port out of range",
			content: "endpoint:\n  hostname: h\n  scenario: s\n  port: 70000\n",
			wantErr: "endpoint.port",
		},
		{
			name:    "bad tls version",
			content: "endpoint:\n  hostname: h\n  scenario: s\ntls:\n  minVersion: \"1.1\"\n",
			wantErr: "tls.minVersion",
		},
		{
			name:    "bad log level",
			content: "endpoint:\n  hostname: h\n  scenario: s\nlogging:\n  level: loud\n",
			wantErr: "logging.level",
		},
		{
			name:    "bad duration",
			content: "endpoint:\n  hostname: h\n  scenario: s\nclient:\n  timeout: soon\n",
			wantErr: "client.timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClientConfig_DurationFallbacks(t *testing.T) {
	// Hand-built configs bypass Load's validation; unparseable values
	// resolve to the defaults instead of zero.
	c := ClientConfig{Timeout: "soon", IdleConnTimeout: "", RetentionWindow: "later"}

	assert.Equal(t, 30*time.Second, c.TimeoutDuration())
	assert.Equal(t, 90*time.Second, c.IdleConnTimeoutDuration())
	assert.Equal(t, 24*time.Hour, c.RetentionWindowDuration())
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i5.yaml")

	require.NoError(t, Init(path, false))

	// The starter file is loadable as-is.
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Endpoint.Hostname)
	assert.Equal(t, "Processor", cfg.Endpoint.Scenario)
}

func TestInit_RefusesOverwrite(t *testing.T) {
	path := writeConfig(t, "endpoint:\n  hostname: h\n  scenario: s\n")

	err := Init(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, Init(path, true))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Endpoint.Hostname)
}

func TestConfig_I5Endpoint(t *testing.T) {
	path := writeConfig(t, `
endpoint:
  hostname: i5.example.com
  port: 43001
  scenario: Processor
  tenant: Default
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	endpoint := cfg.I5Endpoint()
	assert.Equal(t, "https://i5.example.com:43001/api/v1/Input/Default/Processor/Batches", endpoint.URL())
}

func TestConfig_HTTPSConfig(t *testing.T) {
	path := writeConfig(t, `
endpoint:
  hostname: h
  scenario: s
tls:
  minVersion: "1.3"
client:
  timeout: 12s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	httpsCfg, err := cfg.HTTPSConfig()
	require.NoError(t, err)
	assert.Equal(t, 12*time.Second, httpsCfg.Timeout)
	assert.Equal(t, transport.TLS13, httpsCfg.MinTLSVersion)
}

func TestConfig_HTTPSConfig_MissingCAFile(t *testing.T) {
	path := writeConfig(t, `
endpoint:
  hostname: h
  scenario: s
tls:
  rootCAFile: /nonexistent/ca.pem
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	_, err = cfg.HTTPSConfig()
	assert.Error(t, err)
}
