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

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/allocator"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/metrics"
)

func subCmdServe(args []string) error {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	addGlobalFlags(flags)
	configFile := flags.String("config-file", "", "path to a project document")
	port := flags.Int("port", 8080, "port to serve metrics on")
	otelEndpoint := flags.String("otel-endpoint", "", "OTLP collector endpoint (host:port) to push metrics to, or \"stdout\"; unset disables OTel export")
	otelProtocol := flags.String("otel-protocol", "grpc", "OTLP protocol to use with -otel-endpoint: grpc or http")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *configFile == "" {
		return fmt.Errorf("-config-file must be specified")
	}

	project, err := loadProject(*configFile)
	if err != nil {
		return err
	}

	result, err := allocator.Allocate(project, allocator.WithLogger(logger()))
	if err != nil {
		return err
	}

	collector := metrics.NewCollector()
	collector.Record(result)

	prometheusRegistry := prometheus.NewRegistry()
	prometheusRegistry.MustRegister(collector)
	http.Handle("/metrics", promhttp.HandlerFor(prometheusRegistry, promhttp.HandlerOpts{}))

	if *otelEndpoint != "" {
		ctx := context.Background()
		provider, err := newMeterProvider(ctx, *otelEndpoint, *otelProtocol)
		if err != nil {
			return fmt.Errorf("setting up OTel metrics: %w", err)
		}
		defer provider.Shutdown(ctx)

		inst, err := metrics.NewInstrumentation(provider.Meter("cabling-allocator"))
		if err != nil {
			return fmt.Errorf("creating OTel instrumentation: %w", err)
		}
		inst.Record(ctx, result)
		fmt.Printf("pushing OTel metrics to %s (%s)\n", *otelEndpoint, *otelProtocol)
	}

	fmt.Printf("serving prometheus metrics for %d sessions at :%d/metrics\n", result.Metrics.SessionCount, *port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", *port), nil); err != nil {
		return fmt.Errorf("error running HTTP server: %v", err)
	}
	return nil
}
