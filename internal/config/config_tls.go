package config

import (
	"crypto/tls"
	"fmt"
)

// TLSConfig holds TLS configuration for the HTTP server
type TLSConfig struct {
	Mode       string `mapstructure:"mode"` // disabled, server
	CertFile   string `mapstructure:"certFile"`
	KeyFile    string `mapstructure:"keyFile"`
	MinVersion string `mapstructure:"minVersion"` // 1.2, 1.3
}

// ValidateTLSConfig validates the TLS configuration
func (c *Config) ValidateTLSConfig() error {
	tlsCfg := c.Server.TLS

	switch tlsCfg.Mode {
	case "", "disabled":
		return nil
	case "server":
		if tlsCfg.CertFile == "" || tlsCfg.KeyFile == "" {
			return fmt.Errorf("TLS certificate and key files are required for server mode")
		}
	default:
		return fmt.Errorf("invalid TLS mode: %s (must be 'disabled' or 'server')", tlsCfg.Mode)
	}

	switch tlsCfg.MinVersion {
	case "", "1.2", "1.3":
	default:
		return fmt.Errorf("invalid TLS minVersion: %s (must be '1.2' or '1.3')", tlsCfg.MinVersion)
	}

	return nil
}

// Enabled reports whether the server should terminate TLS
func (t TLSConfig) Enabled() bool {
	return t.Mode != "" && t.Mode != "disabled"
}

// BuildTLSConfig builds a crypto/tls configuration from the settings
func (t TLSConfig) BuildTLSConfig() (*tls.Config, error) {
	if !t.Enabled() {
		return nil, nil
	}

	cert, err := tls.LoadX509KeyPair(t.CertFile, t.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS key pair: %w", err)
	}

	minVersion := uint16(tls.VersionTLS12)
	if t.MinVersion == "1.3" {
		minVersion = tls.VersionTLS13
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   minVersion,
	}, nil
}
