package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level      string `yaml:"level"`
	Filename   string `yaml:"filename"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	Console    bool   `yaml:"console"`
}

var global zerolog.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

// InitGlobalLogger replaces the default console logger with one built from config.
// Safe to call once at startup before any goroutines log.
func InitGlobalLogger(cfg *Config) {
	var writers []io.Writer

	if cfg.Filename != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		})
	}

	if cfg.Console || len(writers) == 0 {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	global = zerolog.New(io.MultiWriter(writers...)).
		Level(parseLevel(cfg.Level)).
		With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func Debug(msg string, keyValues ...any) {
	emit(global.Debug(), msg, keyValues)
}

func Info(msg string, keyValues ...any) {
	emit(global.Info(), msg, keyValues)
}

func Warn(msg string, keyValues ...any) {
	emit(global.Warn(), msg, keyValues)
}

func Error(msg string, keyValues ...any) {
	emit(global.Error(), msg, keyValues)
}

func emit(e *zerolog.Event, msg string, keyValues []any) {
	for i := 0; i+1 < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, keyValues[i+1])
	}
	e.Msg(msg)
}
