package config

import (
	"github.com/Klingon-tech/klingnet-vault/internal/vault"
	"github.com/Klingon-tech/klingnet-vault/internal/wallet"
)

// Default returns the default configuration.
func Default() *Config {
	kdf := vault.DefaultKDFParams()
	return &Config{
		DataDir: DefaultDataDir(),
		Vault: VaultConfig{
			Enabled: true,
			Argon: ArgonConfig{
				Memory:      kdf.Memory,
				Iterations:  kdf.Iterations,
				Parallelism: kdf.Parallelism,
			},
		},
		Derive: DeriveConfig{SeedKey: wallet.DefaultSeedKey},
		Log:    LogConfig{Level: "warn"},
	}
}
