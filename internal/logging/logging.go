/*
Copyright 2025 The vcrc Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package logging wires the logr API to a zap backend.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels used with logger.V().
const (
	DEBUG = 1
	TRACE = 2
)

// Log is the process-wide logger. It discards until SetLogger is called.
var Log = logr.Discard()

// SetLogger replaces the process-wide logger.
func SetLogger(l logr.Logger) {
	Log = l
}

// ParseLevel maps "info", "debug" and "trace" to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return -zapcore.Level(DEBUG), nil
	case "trace":
		return -zapcore.Level(TRACE), nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// NewLogger builds a zap-backed logr.Logger. Development mode uses the console encoder.
func NewLogger(level string, development bool) (logr.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return logr.Discard(), err
	}
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("building zap logger: %w", err)
	}
	return zapr.NewLogger(zl), nil
}

// NewWriterLogger builds a console logger writing to w with the given verbosity enabled.
// Test suites pass GinkgoWriter or a buffer.
func NewWriterLogger(w io.Writer, verbosity int) logr.Logger {
	zl := zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		-zapcore.Level(verbosity),
	))
	return zapr.NewLogger(zl)
}

// IntoContext stores l in ctx.
func IntoContext(ctx context.Context, l logr.Logger) context.Context {
	return logr.NewContext(ctx, l)
}

// FromContext returns the logger in ctx, falling back to Log.
func FromContext(ctx context.Context) logr.Logger {
	if l, err := logr.FromContext(ctx); err == nil {
		return l
	}
	return Log
}
