package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Klingon-tech/klingnet-vault/internal/log"
)

// fileKeys maps each config file key onto the field it sets.
var fileKeys = map[string]func(cfg *Config, value string) error{
	"datadir":                 setString(func(c *Config) *string { return &c.DataDir }),
	"vault.enabled":           setBool(func(c *Config) *bool { return &c.Vault.Enabled }),
	"vault.dir":               setString(func(c *Config) *string { return &c.Vault.Dir }),
	"vault.argon.memory":      setUint32(func(c *Config) *uint32 { return &c.Vault.Argon.Memory }),
	"vault.argon.iterations":  setUint32(func(c *Config) *uint32 { return &c.Vault.Argon.Iterations }),
	"vault.argon.parallelism": setUint8(func(c *Config) *uint8 { return &c.Vault.Argon.Parallelism }),
	"derive.seedkey":          setString(func(c *Config) *string { return &c.Derive.SeedKey }),
	"log.level":               setString(func(c *Config) *string { return &c.Log.Level }),
	"log.file":                setString(func(c *Config) *string { return &c.Log.File }),
	"log.json":                setBool(func(c *Config) *bool { return &c.Log.JSON }),
}

// LoadFile reads a key = value config file. Blank lines and lines starting
// with # are skipped; values may be wrapped in single or double quotes.
// A missing file yields no values.
func LoadFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	values := map[string]string{}
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%s:%d: expected key = value", path, n)
		}
		values[strings.TrimSpace(key)] = unquote(strings.TrimSpace(value))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return values, nil
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// ApplyFileConfig sets cfg fields from file values. Unknown keys are
// logged and skipped.
func ApplyFileConfig(cfg *Config, values map[string]string) error {
	for key, value := range values {
		set, ok := fileKeys[key]
		if !ok {
			log.CLI.Warn().Str("key", key).Msg("Ignoring unknown config key")
			continue
		}
		if err := set(cfg, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

func setString(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

func setBool(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		switch strings.ToLower(v) {
		case "true", "1", "yes", "on":
			*field(c) = true
		case "false", "0", "no", "off", "":
			*field(c) = false
		default:
			return fmt.Errorf("not a boolean: %q", v)
		}
		return nil
	}
}

func setUint32(field func(*Config) *uint32) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return err
		}
		*field(c) = uint32(n)
		return nil
	}
}

func setUint8(field func(*Config) *uint8) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return err
		}
		*field(c) = uint8(n)
		return nil
	}
}

const defaultConfigTemplate = `# klingvault configuration: key = value, # starts a comment.
# Command-line flags override these values.

# datadir = ~/.klingvault

# Encrypted phrase storage.
vault.enabled = true
# vault.dir = <datadir>/vault

# Argon2id cost for new vault entries (memory in KiB). Existing entries keep
# the cost they were sealed with.
vault.argon.memory = %d
vault.argon.iterations = %d
vault.argon.parallelism = %d

# HMAC key that turns a phrase into a seed. Every derived key depends on it;
# phrases recovered with another value produce different keys.
# derive.seedkey = %s

# debug, info, warn or error. log.file receives JSON lines.
log.level = %s
# log.file =
log.json = false
`

// WriteDefaultConfig writes a commented config file holding the defaults.
func WriteDefaultConfig(path string) error {
	d := Default()
	content := fmt.Sprintf(defaultConfigTemplate,
		d.Vault.Argon.Memory, d.Vault.Argon.Iterations, d.Vault.Argon.Parallelism,
		d.Derive.SeedKey, d.Log.Level)
	return os.WriteFile(path, []byte(content), 0600)
}
