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

package log

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelFlagRoundTrips(t *testing.T) {
	f := NewLevelFlag(slog.LevelInfo)
	require.Equal(t, "info", f.String())

	require.NoError(t, f.Set("WARN"))
	require.Equal(t, slog.LevelWarn, f.Level())
	require.Equal(t, "warn", f.String())

	require.Error(t, f.Set("trace"))
}

func TestCounterTalliesByLevel(t *testing.T) {
	level := NewLevelFlag(slog.LevelDebug)
	counter := NewCounter(NewHandler(level))
	logger := slog.New(counter)

	logger.Info("a plain record")
	logger.Warn("first warning")
	logger.Warn("second warning")
	logger.Error("a failure")

	warnings, errors := counter.Counts()
	require.EqualValues(t, 2, warnings)
	require.EqualValues(t, 1, errors)
}

func TestCounterWithAttrsSharesTally(t *testing.T) {
	counter := NewCounter(NewHandler(NewLevelFlag(slog.LevelDebug)))
	derived := counter.WithAttrs([]slog.Attr{slog.String("component", "allocator")})

	require.NoError(t, derived.Handle(context.Background(), slog.Record{Level: slog.LevelWarn}))

	warnings, _ := counter.Counts()
	require.EqualValues(t, 1, warnings)
}
