// Package log provides structured, colored logging for the vault tools.
//
// Diagnostics always go to stderr so stdout stays clean for phrases and keys.
// Nothing logged here may contain phrase words, seeds or private keys.
package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance.
var Logger zerolog.Logger

// Component loggers, rebuilt whenever Logger changes.
var (
	Wallet  zerolog.Logger
	Vault   zerolog.Logger
	Storage zerolog.Logger
	CLI     zerolog.Logger
)

func init() {
	setLogger(newLogger(consoleWriter(os.Stderr), "warn"))
}

// Init configures the global logger. The console gets colored text, or
// JSON when jsonOutput is set. A non-empty file additionally receives JSON
// lines, appended.
func Init(level string, jsonOutput bool, file string) error {
	var out io.Writer = os.Stderr
	if !jsonOutput {
		out = consoleWriter(os.Stderr)
	}

	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return err
		}
		out = zerolog.MultiLevelWriter(out, f)
	}

	setLogger(newLogger(out, level))
	return nil
}

// SetOutput replaces the global logger with a JSON logger writing to w.
// Intended for tests that inspect log output.
func SetOutput(w io.Writer, level string) {
	setLogger(newLogger(w, level))
}

// ParseLevel converts a string level to zerolog.Level. Unknown levels map to info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ValidLevel reports whether level is one of debug, info, warn or error.
func ValidLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// Timer starts timing op and returns a func that logs the elapsed time at
// debug level on l. Use as: defer log.Timer(log.Vault, "argon2id")().
func Timer(l zerolog.Logger, op string) func() {
	start := time.Now()
	return func() {
		l.Debug().Str("op", op).Dur("took", time.Since(start)).Msg("Timed")
	}
}

func consoleWriter(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

func setLogger(l zerolog.Logger) {
	Logger = l
	Wallet = l.With().Str("component", "wallet").Logger()
	Vault = l.With().Str("component", "vault").Logger()
	Storage = l.With().Str("component", "storage").Logger()
	CLI = l.With().Str("component", "cli").Logger()
}
