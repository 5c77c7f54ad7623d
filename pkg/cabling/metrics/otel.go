/*
Copyright 2019 Intel Corporation

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

package metrics

import (
	"context"

	"go.opentelemetry.io/otel/metric"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/allocator"
)

// Instrumentation records allocator runs as OpenTelemetry instruments, for
// callers that push to an OTLP collector rather than expose a Prometheus
// scrape endpoint. Both can be wired to the same allocator.Result without
// conflict; they read the same value, they don't share state.
type Instrumentation struct {
	runs      metric.Int64Counter
	sessions  metric.Int64Histogram
	overflows metric.Int64Counter
}

// NewInstrumentation creates an Instrumentation registered against meter.
func NewInstrumentation(meter metric.Meter) (*Instrumentation, error) {
	runs, err := meter.Int64Counter("cabling_allocator.runs",
		metric.WithDescription("Number of allocation runs."))
	if err != nil {
		return nil, err
	}
	sessions, err := meter.Int64Histogram("cabling_allocator.sessions",
		metric.WithDescription("session_count of each recorded allocation run."))
	if err != nil {
		return nil, err
	}
	overflows, err := meter.Int64Counter("cabling_allocator.rack_overflows",
		metric.WithDescription("Number of rack_overflow errors observed across allocation runs."))
	if err != nil {
		return nil, err
	}
	return &Instrumentation{runs: runs, sessions: sessions, overflows: overflows}, nil
}

// Record reports one allocator run's outcome.
func (i *Instrumentation) Record(ctx context.Context, result allocator.Result) {
	i.runs.Add(ctx, 1)
	i.sessions.Record(ctx, int64(result.Metrics.SessionCount))
	if overflowed := countRackOverflows(result); overflowed > 0 {
		i.overflows.Add(ctx, int64(overflowed))
	}
}

func countRackOverflows(result allocator.Result) int {
	n := 0
	for _, e := range result.Errors {
		if e.Kind == "rack_overflow" {
			n++
		}
	}
	return n
}
