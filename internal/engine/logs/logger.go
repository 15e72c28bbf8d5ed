// Package logs provides a logger setup function that configures the logger from the log config section.
// It uses the standard library's slog package for structured logging and lumberjack for file rotation.
package logs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/akyaiy/godoit/internal/engine/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

var GlobalLevel slog.Level

type levelsStruct struct {
	Available []string
	Fallback  string
}

var Levels = levelsStruct{
	Available: []string{
		"debug", "info", "warn", "error",
	},
	Fallback: "info",
}

// LogFileName is the file written inside log.output when it names a directory.
var LogFileName = "event.log"

type SlogWriter struct {
	Logger *slog.Logger
	Level  slog.Level
}

func (w *SlogWriter) Write(p []byte) (n int, err error) {
	msg := string(bytes.TrimSpace(p))
	w.Logger.Log(context.TODO(), w.Level, msg)
	return len(p), nil
}

// SetupLogger initializes and returns a logger for the given log section.
// Output is "stdout", "stderr" or a directory that receives a rotated event.log.
func SetupLogger(o *config.Log) (*slog.Logger, error) {
	var handlerOpts = slog.HandlerOptions{}
	var writer io.Writer = os.Stderr

	level := Levels.Fallback
	if o.Level != nil {
		level = *o.Level
	}
	switch level {
	case "debug":
		GlobalLevel = slog.LevelDebug
	case "info":
		GlobalLevel = slog.LevelInfo
	case "warn":
		GlobalLevel = slog.LevelWarn
	case "error":
		GlobalLevel = slog.LevelError
	default:
		GlobalLevel = slog.LevelInfo
	}
	handlerOpts.Level = GlobalLevel

	out := "stderr"
	if o.OutPath != nil && *o.OutPath != "" {
		out = *o.OutPath
	}
	switch out {
	case "stdout", "1":
		writer = os.Stdout
	case "stderr", "2":
		writer = os.Stderr
	default:
		if err := os.MkdirAll(out, 0o755); err != nil {
			return nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		writer = &lumberjack.Logger{
			Filename:   filepath.Join(out, LogFileName),
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		}
	}

	if o.JSON != nil && *o.JSON {
		return slog.New(slog.NewJSONHandler(writer, &handlerOpts)), nil
	}
	return slog.New(slog.NewTextHandler(writer, &handlerOpts)), nil
}
