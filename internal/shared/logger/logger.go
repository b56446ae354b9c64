// Package logger wraps log/slog with a tint console handler for development
// and a JSON handler for production. Components receive logger.Interface by
// injection; the package-level helpers exist for bootstrap code only.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Options controls handler construction. Kept free of the config package so
// the logger can be initialized before configuration is fully loaded.
type Options struct {
	Level      string
	Format     string // "console" or "json"
	OutputPath string // "stdout", "stderr", or a file path
}

var (
	defaultLogger *slog.Logger
	atomicLevel   *slog.LevelVar
)

// Init builds the process-wide logger and installs it as the slog default.
func Init(opts Options) error {
	atomicLevel = new(slog.LevelVar)
	atomicLevel.Set(parseLevel(opts.Level))

	var writer io.Writer
	switch strings.ToLower(opts.OutputPath) {
	case "stdout", "":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	default:
		file, err := os.OpenFile(opts.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		writer = file
	}

	var handler slog.Handler
	if strings.ToLower(opts.Format) == "json" {
		handler = slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: atomicLevel})
	} else {
		handler = tint.NewHandler(writer, &tint.Options{
			Level:      atomicLevel,
			TimeFormat: time.DateTime,
			NoColor:    !isTerminal(writer),
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == "error" && a.Value.Kind() == slog.KindAny {
					if err, ok := a.Value.Any().(error); ok {
						return tint.Err(err)
					}
				}
				return a
			},
		})
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
	return nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SetLevel adjusts the log level at runtime.
func SetLevel(level slog.Level) {
	if atomicLevel != nil {
		atomicLevel.Set(level)
	}
}

// Get returns the process logger, building a console fallback if Init was
// never called (tests, early bootstrap).
func Get() *slog.Logger {
	if defaultLogger == nil {
		handler := tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: time.DateTime,
			NoColor:    !term.IsTerminal(int(os.Stdout.Fd())),
		})
		defaultLogger = slog.New(handler)
	}
	return defaultLogger
}

// Info logs at info level using the process logger.
func Info(msg string, args ...any) { Get().Info(msg, args...) }

// Warn logs at warn level using the process logger.
func Warn(msg string, args ...any) { Get().Warn(msg, args...) }

// Error logs at error level using the process logger.
func Error(msg string, args ...any) { Get().Error(msg, args...) }
