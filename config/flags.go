package config

import (
	"flag"
	"fmt"
	"io"
	"os"
)

// Flags holds the global flags given before the command name.
type Flags struct {
	Help    bool
	Version bool

	DataDir string
	Config  string

	LogLevel string
	LogFile  string
	LogJSON  bool

	// Args is the command name followed by its own arguments.
	Args []string

	set map[string]bool
}

// IsSet reports whether the flag called name was given explicitly.
func (f *Flags) IsSet(name string) bool {
	return f.set[name]
}

// ParseFlags parses global flags up to the first non-flag argument.
func ParseFlags(args []string) (*Flags, error) {
	f := &Flags{set: map[string]bool{}}

	fs := flag.NewFlagSet("klingvault", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&f.Help, "help", false, "show help")
	fs.BoolVar(&f.Help, "h", false, "show help")
	fs.BoolVar(&f.Version, "version", false, "show version")
	fs.StringVar(&f.DataDir, "datadir", "", "data directory")
	fs.StringVar(&f.Config, "config", "", "config file")
	fs.StringVar(&f.Config, "c", "", "config file")
	fs.StringVar(&f.LogLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&f.LogFile, "log-file", "", "append JSON logs to this file")
	fs.BoolVar(&f.LogJSON, "log-json", false, "log JSON to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	f.Args = fs.Args()
	return f, nil
}

// ApplyFlags overrides cfg with every flag that was given.
func ApplyFlags(cfg *Config, f *Flags) {
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.IsSet("log-json") {
		cfg.Log.JSON = f.LogJSON
	}
}

// Load layers defaults, the config file and flags, then validates the
// result. The data directory and a default config file are created on
// first use.
func Load(f *Flags) (*Config, error) {
	cfg := Default()
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}
	if err := EnsureDataDirs(cfg); err != nil {
		return nil, err
	}

	path := f.Config
	if path == "" {
		path = cfg.ConfigFile()
	}
	values, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := ApplyFileConfig(cfg, values); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	ApplyFlags(cfg, f)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// EnsureDataDirs creates the data and logs directories (mode 0700) and
// writes a default config file if none exists.
func EnsureDataDirs(cfg *Config) error {
	for _, dir := range []string{cfg.DataDir, cfg.LogsDir()} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	path := cfg.ConfigFile()
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := WriteDefaultConfig(path); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}
