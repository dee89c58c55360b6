// Package config handles configuration loading for the i5submit tool.
//
// Configuration is loaded from a YAML file with support for environment
// variable expansion (${VAR} or $VAR syntax). This allows values like the
// tenant identifier or the CA bundle path to be injected at runtime.
//
// # Configuration Sections
//
//   - endpoint: target Interface5 instance (hostname, port, scenario, tenant)
//   - tls: transport security (minimum version, CA bundle, verification)
//   - client: timeouts and async submission retention
//   - logging: log level
//
// # Example Configuration
//
//	endpoint:
//	  hostname: i5.example.com
//	  port: 43001
//	  scenario: Processor
//	  tenant: ${I5_TENANT}
//
//	tls:
//	  minVersion: "1.2"
//	  rootCAFile: /etc/ssl/i5-ca.pem
//
//	client:
//	  timeout: 30s
//
// See [Load] for loading configuration from a file.
package config

import (
	"crypto/x509"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/CondeSun/i5Req/pkg/i5"
	"github.com/CondeSun/i5Req/pkg/transport"
)

// Config is the root configuration structure
type Config struct {
	Endpoint EndpointConfig `yaml:"endpoint"`
	TLS      TLSConfig      `yaml:"tls"`
	Client   ClientConfig   `yaml:"client"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// EndpointConfig identifies the target Interface5 instance
type EndpointConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Scenario string `yaml:"scenario"`
	Tenant   string `yaml:"tenant"`
	// PlainHTTP switches to http for local test rigs
	PlainHTTP bool `yaml:"plainHTTP"`
}

// TLSConfig holds transport security settings
type TLSConfig struct {
	// MinVersion is "1.2" or "1.3"
	MinVersion string `yaml:"minVersion"`
	// RootCAFile points at a PEM bundle for private CAs
	RootCAFile string `yaml:"rootCAFile"`
	// InsecureSkipVerify disables certificate verification (test rigs only)
	InsecureSkipVerify bool `yaml:"insecureSkipVerify"`
}

// ClientConfig holds client timeouts and tracking settings. Durations use
// Go duration syntax ("30s", "24h"); yaml.v3 has no native duration
// decoding, so they are kept as strings and parsed during validation.
type ClientConfig struct {
	Timeout         string `yaml:"timeout"`
	IdleConnTimeout string `yaml:"idleConnTimeout"`
	// RetentionWindow bounds how long finished async submissions stay queryable
	RetentionWindow string `yaml:"retentionWindow"`
}

// TimeoutDuration returns the parsed request timeout. Values that do
// not parse fall back to the 30s default; Load rejects them up front,
// so the fallback only applies to hand-built configs.
func (c ClientConfig) TimeoutDuration() time.Duration {
	return parseDuration(c.Timeout, 30*time.Second)
}

// IdleConnTimeoutDuration returns the parsed idle connection timeout,
// falling back to the 90s default for unparseable values.
func (c ClientConfig) IdleConnTimeoutDuration() time.Duration {
	return parseDuration(c.IdleConnTimeout, 90*time.Second)
}

// RetentionWindowDuration returns the parsed retention window, falling
// back to the 24h default for unparseable values.
func (c ClientConfig) RetentionWindowDuration() time.Duration {
	return parseDuration(c.RetentionWindow, 24*time.Hour)
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// LoggingConfig holds log settings
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// SlogLevel maps the configured level onto slog.
func (c LoggingConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults
	cfg.applyDefaults()

	// Validate
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Endpoint.Port == 0 {
		c.Endpoint.Port = 43001
	}
	if c.Endpoint.Tenant == "" {
		c.Endpoint.Tenant = "Default"
	}
	if c.TLS.MinVersion == "" {
		c.TLS.MinVersion = "1.2"
	}
	if c.Client.Timeout == "" {
		c.Client.Timeout = "30s"
	}
	if c.Client.IdleConnTimeout == "" {
		c.Client.IdleConnTimeout = "90s"
	}
	if c.Client.RetentionWindow == "" {
		c.Client.RetentionWindow = "24h"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) validate() error {
	if c.Endpoint.Hostname == "" {
		return fmt.Errorf("endpoint.hostname is required")
	}
	if c.Endpoint.Scenario == "" {
		return fmt.Errorf("endpoint.scenario is required")
	}
	if c.Endpoint.Port < 1 || c.Endpoint.Port > 65535 {
		return fmt.Errorf("endpoint.port must be between 1 and 65535, got %d", c.Endpoint.Port)
	}

	switch c.TLS.MinVersion {
	case "1.2", "1.3":
		// Valid versions
	default:
		return fmt.Errorf("tls.minVersion must be '1.2' or '1.3', got '%s'", c.TLS.MinVersion)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid levels
	default:
		return fmt.Errorf("logging.level must be 'debug', 'info', 'warn', or 'error', got '%s'", c.Logging.Level)
	}

	durations := map[string]string{
		"client.timeout":         c.Client.Timeout,
		"client.idleConnTimeout": c.Client.IdleConnTimeout,
		"client.retentionWindow": c.Client.RetentionWindow,
	}
	for key, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	return nil
}

// I5Endpoint builds the endpoint value the client submits to.
func (c *Config) I5Endpoint() i5.Endpoint {
	var opts []i5.EndpointOption
	if c.Endpoint.PlainHTTP {
		opts = append(opts, i5.WithPlainHTTP())
	}
	return i5.NewEndpoint(c.Endpoint.Hostname, c.Endpoint.Port, c.Endpoint.Scenario, c.Endpoint.Tenant, opts...)
}

// HTTPSConfig builds the transport configuration, loading the CA bundle
// when one is configured.
func (c *Config) HTTPSConfig() (*transport.HTTPSConfig, error) {
	httpsCfg := transport.DefaultHTTPSConfig()
	httpsCfg.Timeout = c.Client.TimeoutDuration()
	httpsCfg.IdleConnTimeout = c.Client.IdleConnTimeoutDuration()
	httpsCfg.InsecureSkipVerify = c.TLS.InsecureSkipVerify

	if c.TLS.MinVersion == "1.3" {
		httpsCfg.MinTLSVersion = transport.TLS13
	}

	if c.TLS.RootCAFile != "" {
		pem, err := os.ReadFile(c.TLS.RootCAFile)
		if err != nil {
			return nil, fmt.Errorf("reading CA bundle: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", c.TLS.RootCAFile)
		}
		httpsCfg.RootCAs = pool
	}

	return httpsCfg, nil
}

const defaultConfigTemplate = `# Interface5 client configuration
endpoint:
  hostname: localhost
  port: 43001
  scenario: Processor
  tenant: Default

tls:
  minVersion: "1.2"
  # rootCAFile: /etc/ssl/i5/ca.pem

client:
  timeout: 30s
  retentionWindow: 24h

logging:
  level: info
`

// Init writes a starter configuration file. It refuses to overwrite an
// existing file unless force is set.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o644); err != nil {
		return fmt.Errorf("writing configuration: %w", err)
	}
	return nil
}
