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
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/allocator"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/model"
)

func TestInstrumentationRecordsRunsSessionsAndOverflows(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	inst, err := NewInstrumentation(provider.Meter("cabling-allocator-test"))
	require.NoError(t, err)

	inst.Record(context.Background(), allocator.Result{
		Metrics: model.Metrics{SessionCount: 14},
	})
	inst.Record(context.Background(), allocator.Result{
		Metrics: model.Metrics{SessionCount: 1},
		Errors:  []model.Failure{{Kind: "rack_overflow", Message: "rack R01 full"}},
	})

	var data metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &data))

	found := map[string]bool{}
	for _, sm := range data.ScopeMetrics {
		for _, m := range sm.Metrics {
			found[m.Name] = true
		}
	}
	require.True(t, found["cabling_allocator.runs"])
	require.True(t, found["cabling_allocator.sessions"])
	require.True(t, found["cabling_allocator.rack_overflows"])
}
