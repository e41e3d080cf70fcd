// Package logging provides a preset-based constructor for zap loggers.
package logging

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger returns a new [zap.Logger] built from the given preset name,
// or, if preset does not match any known preset, from the JSON configuration
// file at that path.
//
// Available presets: console, console-nocolor, console-notime, systemd,
// production, development. The log level only applies to the console and
// systemd presets.
func NewZapLogger(preset string, level zapcore.Level) (*zap.Logger, error) {
	switch preset {
	case "console":
		return newConsoleLogger(level, true, true)
	case "console-nocolor":
		return newConsoleLogger(level, false, true)
	case "console-notime":
		return newConsoleLogger(level, true, false)
	case "systemd":
		return newConsoleLogger(level, false, false)
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return newLoggerFromConfigFile(preset)
	}
}

func newConsoleLogger(level zapcore.Level, color, timestamp bool) (*zap.Logger, error) {
	ec := zap.NewDevelopmentEncoderConfig()
	if color {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	if !timestamp {
		ec.TimeKey = zapcore.OmitKey
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		DisableCaller:     true,
		DisableStacktrace: true,
		Encoding:          "console",
		EncoderConfig:     ec,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	return cfg.Build()
}

func newLoggerFromConfigFile(path string) (*zap.Logger, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read zap config %s: %w", path, err)
	}

	var cfg zap.Config
	if err = json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse zap config %s: %w", path, err)
	}
	return cfg.Build()
}
