/*
Copyright 2019-2021 Intel Corporation

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

// Package log provides the ambient slog handler and command line level
// flag the cabling-allocate CLI uses to control verbosity, plus a counting
// handler the CLI uses to report how many warn/error records a run logged
// alongside the allocator's own structured Warnings/Failures lists.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
)

type levelHandler struct {
	slog.Leveler
	slog.Handler
}

// NewHandler creates a slog handler that uses level but otherwise clones
// the default handler.
func NewHandler(level slog.Leveler) slog.Handler {
	return &levelHandler{
		Leveler: level,
		Handler: slog.Default().Handler(),
	}
}

// Enabled implements the slog.Handler interface.
func (h *levelHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.Level()
}

// LevelFlag implements flag.Value for a -log-level command line flag.
type LevelFlag struct {
	level slog.Level
}

// NewLevelFlag creates a LevelFlag defaulting to level.
func NewLevelFlag(level slog.Level) *LevelFlag {
	return &LevelFlag{level: level}
}

// Set implements flag.Value.
func (l *LevelFlag) Set(s string) error {
	switch strings.ToLower(s) {
	case "debug":
		l.level = slog.LevelDebug
	case "info":
		l.level = slog.LevelInfo
	case "warn":
		l.level = slog.LevelWarn
	case "error":
		l.level = slog.LevelError
	default:
		return fmt.Errorf("must be one of: debug, info, warn, error")
	}
	return nil
}

// String implements flag.Value.
func (l *LevelFlag) String() string {
	switch l.level {
	case slog.LevelDebug:
		return "debug"
	case slog.LevelInfo:
		return "info"
	case slog.LevelWarn:
		return "warn"
	case slog.LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", l.level)
	}
}

// Level returns the flag's current level.
func (l *LevelFlag) Level() slog.Level {
	return l.level
}

// Counter wraps a handler and tallies warn/error records as they pass
// through, independent of the level they're ultimately rendered at. The
// CLI prints this tally after a run so a non-zero count at info level
// still surfaces even when the allocator's own Warnings/Failures lists
// get written straight to result.json without ever being logged.
type Counter struct {
	slog.Handler
	warnings *atomic.Int64
	errors   *atomic.Int64
}

// NewCounter wraps handler with a fresh, zeroed tally.
func NewCounter(handler slog.Handler) *Counter {
	return &Counter{Handler: handler, warnings: new(atomic.Int64), errors: new(atomic.Int64)}
}

// Handle implements slog.Handler, tallying before delegating to the
// wrapped handler.
func (c *Counter) Handle(ctx context.Context, r slog.Record) error {
	switch {
	case r.Level >= slog.LevelError:
		c.errors.Add(1)
	case r.Level >= slog.LevelWarn:
		c.warnings.Add(1)
	}
	return c.Handler.Handle(ctx, r)
}

// WithAttrs implements slog.Handler, keeping the tally shared with the
// logger it was derived from.
func (c *Counter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Counter{Handler: c.Handler.WithAttrs(attrs), warnings: c.warnings, errors: c.errors}
}

// WithGroup implements slog.Handler, keeping the tally shared with the
// logger it was derived from.
func (c *Counter) WithGroup(name string) slog.Handler {
	return &Counter{Handler: c.Handler.WithGroup(name), warnings: c.warnings, errors: c.errors}
}

// Counts returns the number of warn-level and error-level records logged
// so far.
func (c *Counter) Counts() (warnings, errors int64) {
	return c.warnings.Load(), c.errors.Load()
}
