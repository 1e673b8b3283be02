package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is the explicit level from --log-level or JSONTAB_LOG_LEVEL.
	Level string

	// Format is console, json or auto (console on a terminal).
	Format string

	Verbose bool
	Quiet   bool
	NoColor bool
}

var validLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// NewLogger creates a logger writing to w.
func NewLogger(cfg *LogConfig, w io.Writer) zerolog.Logger {
	level, warning := determineLogLevel(cfg)

	var out io.Writer = w
	if useConsole(cfg.Format, w) {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.NoColor || !isTerminal(w),
		}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	logger := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	if warning != "" {
		logger.Warn().Msg(warning)
	}
	return logger
}

// determineLogLevel applies the precedence: explicit level, then
// --verbose/--quiet, then info. The second result is a warning to log.
func determineLogLevel(cfg *LogConfig) (string, string) {
	if cfg.Level != "" {
		level := strings.ToLower(cfg.Level)
		if !validLevels[level] {
			return "info", fmt.Sprintf("invalid log level %q, using %q", cfg.Level, "info")
		}
		return level, ""
	}
	if cfg.Verbose && cfg.Quiet {
		return "warn", "both --verbose and --quiet specified, using --quiet"
	}
	if cfg.Verbose {
		return "debug", ""
	}
	if cfg.Quiet {
		return "warn", ""
	}
	return "info", ""
}

func useConsole(format string, w io.Writer) bool {
	switch strings.ToLower(format) {
	case "console", "pretty", "text":
		return true
	case "json":
		return false
	default:
		return isTerminal(w)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
