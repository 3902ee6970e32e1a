package config

import (
	"errors"
	"fmt"

	"github.com/Klingon-tech/klingnet-vault/internal/log"
)

// Validate checks the config for operator mistakes that would otherwise
// only surface once a command touches the vault.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if cfg.DataDir == "" {
		return errors.New("datadir must not be empty")
	}
	if cfg.Derive.SeedKey == "" {
		return errors.New("derive.seedkey must not be empty")
	}
	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", cfg.Log.Level)
	}
	if err := cfg.Vault.Argon.KDFParams().Validate(); err != nil {
		return fmt.Errorf("vault.argon: %w", err)
	}
	return nil
}
