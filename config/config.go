// Package config handles klingvault configuration.
//
// Settings come from, in increasing precedence: built-in defaults, the
// key = value config file in the data directory, and command-line flags.
package config

import (
	"os"
	"path/filepath"

	"github.com/Klingon-tech/klingnet-vault/internal/vault"
)

// Config holds runtime configuration for the vault tools.
type Config struct {
	// Core
	DataDir string `conf:"datadir"`

	// Encrypted phrase storage
	Vault VaultConfig

	// Key derivation
	Derive DeriveConfig

	// Logging
	Log LogConfig
}

// VaultConfig holds encrypted vault settings.
type VaultConfig struct {
	Enabled bool   `conf:"vault.enabled"`
	Dir     string `conf:"vault.dir"` // Empty means <datadir>/vault.
	Argon   ArgonConfig
}

// ArgonConfig holds the Argon2id cost used when sealing new vault entries.
// Existing entries carry their own parameters.
type ArgonConfig struct {
	Memory      uint32 `conf:"vault.argon.memory"` // in KiB
	Iterations  uint32 `conf:"vault.argon.iterations"`
	Parallelism uint8  `conf:"vault.argon.parallelism"`
}

// KDFParams converts the configured cost into vault parameters.
func (a ArgonConfig) KDFParams() vault.KDFParams {
	return vault.KDFParams{
		Memory:      a.Memory,
		Iterations:  a.Iterations,
		Parallelism: a.Parallelism,
	}
}

// DeriveConfig holds key derivation settings.
type DeriveConfig struct {
	// SeedKey is the HMAC key that turns a phrase into a seed. Changing it
	// changes every derived key, so it should stay at the default.
	SeedKey string `conf:"derive.seedkey"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// DefaultDataDir returns ~/.klingvault, or .klingvault in the working
// directory when there is no home directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".klingvault"
	}
	return filepath.Join(home, ".klingvault")
}

// VaultDir returns the vault database directory.
func (c *Config) VaultDir() string {
	if c.Vault.Dir != "" {
		return c.Vault.Dir
	}
	return filepath.Join(c.DataDir, "vault")
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "klingvault.conf")
}
