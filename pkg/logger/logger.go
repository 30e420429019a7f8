// Package logger is the process-wide structured logger.
//
// Call sites pass a message followed by alternating key/value pairs:
//
//	logger.Info("server starting", "address", addr)
//	logger.Error("failed to load ratings", err, "user_id", userID)
//
// An error in key position is logged under "error"; slog.Attr values are
// accepted as-is. Output is JSON unless the environment is development.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

func init() {
	log = build("production", os.Stderr, "")
}

// Init configures the global logger for the given environment. LOG_LEVEL
// overrides the environment default.
func Init(env string) {
	mu.Lock()
	defer mu.Unlock()
	log = build(env, os.Stderr, os.Getenv("LOG_LEVEL"))
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer, level string) {
	mu.Lock()
	defer mu.Unlock()
	log = build("production", w, level)
}

func build(env string, out io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.ErrorFieldName = "error"

	if level == "" {
		level = "info"
		if isDevelopment(env) {
			level = "debug"
		}
	}

	w := out
	if isDevelopment(env) {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	return zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
}

func isDevelopment(env string) bool {
	switch strings.ToLower(env) {
	case "development", "dev", "local":
		return true
	}
	return false
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func Debug(msg string, args ...any) { emit(zerolog.DebugLevel, msg, args) }

func Info(msg string, args ...any) { emit(zerolog.InfoLevel, msg, args) }

func Warn(msg string, args ...any) { emit(zerolog.WarnLevel, msg, args) }

func Error(msg string, args ...any) { emit(zerolog.ErrorLevel, msg, args) }

// Fatal logs and exits the process.
func Fatal(msg string, args ...any) {
	emit(zerolog.FatalLevel, msg, args)
	os.Exit(1)
}

func emit(level zerolog.Level, msg string, args []any) {
	mu.RLock()
	l := log
	mu.RUnlock()

	// zerolog's Fatal level calls os.Exit itself; route through WithLevel instead.
	ev := l.WithLevel(level)
	if ev == nil {
		return
	}
	addFields(ev, args)
	ev.Msg(msg)
}

func addFields(ev *zerolog.Event, args []any) {
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case error:
			ev.AnErr(zerolog.ErrorFieldName, v)
		case slog.Attr:
			ev.Interface(v.Key, v.Value.Any())
		case string:
			if i+1 >= len(args) {
				ev.Str(fmt.Sprintf("arg_%d", i), v)
				continue
			}
			addValue(ev, v, args[i+1])
			i++
		default:
			ev.Interface(fmt.Sprintf("arg_%d", i), v)
		}
	}
}

func addValue(ev *zerolog.Event, key string, val any) {
	switch v := val.(type) {
	case error:
		ev.AnErr(key, v)
	case string:
		ev.Str(key, v)
	case int:
		ev.Int(key, v)
	case uint:
		ev.Uint(key, v)
	case float64:
		ev.Float64(key, v)
	case bool:
		ev.Bool(key, v)
	case time.Duration:
		ev.Dur(key, v)
	case fmt.Stringer:
		ev.Stringer(key, v)
	default:
		ev.Interface(key, v)
	}
}
