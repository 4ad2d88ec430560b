// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package log provides the zap-backed Logger used across the engine,
// directories, and the CLI.
package log

import "go.uber.org/zap"

// Logger is the narrow logging surface every package depends on.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Fatal(msg string)
	Sync() error
}

// zapLogger wraps a *zap.Logger.
type zapLogger struct {
	z *zap.Logger
}

// New creates a production-configured logger at info level.
func New() Logger {
	return NewWithLevel("info")
}

// NewWithLevel creates a logger at the named level
// (debug/info/warn/error/fatal).
func NewWithLevel(level string) Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		cfg.Level = lvl
	}
	z, err := cfg.Build()
	if err != nil {
		return NoOp()
	}
	return &zapLogger{z: z}
}

func (l *zapLogger) Debug(msg string) { l.z.Debug(msg) }
func (l *zapLogger) Info(msg string)  { l.z.Info(msg) }
func (l *zapLogger) Warn(msg string)  { l.z.Warn(msg) }
func (l *zapLogger) Error(msg string) { l.z.Error(msg) }
func (l *zapLogger) Fatal(msg string) { l.z.Fatal(msg) }
func (l *zapLogger) Sync() error      { return l.z.Sync() }

// NoOp returns a logger that discards everything, for tests and
// command-line invocations that don't want log noise.
func NoOp() Logger { return noOpLogger{} }

// NoLog is a convenience no-op logger instance.
var NoLog = NoOp()

type noOpLogger struct{}

func (noOpLogger) Debug(msg string) {}
func (noOpLogger) Info(msg string)  {}
func (noOpLogger) Warn(msg string)  {}
func (noOpLogger) Error(msg string) {}
func (noOpLogger) Fatal(msg string) {}
func (noOpLogger) Sync() error      { return nil }

// String, Int, and Error build zap fields directly. No package in
// this module calls them; the Logger interface takes plain messages.
func String(key, val string) zap.Field { return zap.String(key, val) }
func Int(key string, val int) zap.Field { return zap.Int(key, val) }
func Error(err error) zap.Field         { return zap.Error(err) }
