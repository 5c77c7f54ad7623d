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

// Package metrics instruments allocator runs for both a pull-based
// Prometheus scrape endpoint and a push-based OpenTelemetry metrics
// pipeline, the same two-model split the teacher exposes for RDT (a
// prometheus.Collector sampled from /metrics) and leaves to callers to
// wire into an OTel pipeline of their choice.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/allocator"
)

// Collector is a prometheus.Collector that reports the metrics of the most
// recently recorded allocator run. It holds no history — Record overwrites
// whatever was there before, matching a typical "last scrape wins" gauge
// collector for a process that runs allocations on demand rather than
// continuously.
type Collector struct {
	mu      sync.Mutex
	last    allocator.Result
	hasRun  bool
	runs    uint64
	overall uint64 // total sessions ever produced, across all recorded runs
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record stores result as the most recently completed allocation.
func (c *Collector) Record(result allocator.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = result
	c.hasRun = true
	c.runs++
	c.overall += uint64(result.Metrics.SessionCount)
}

var (
	descRuns = prometheus.NewDesc(
		"cabling_allocator_runs_total", "Total number of allocation runs recorded.", nil, nil)
	descSessionsTotal = prometheus.NewDesc(
		"cabling_allocator_sessions_total", "Total sessions produced across all recorded runs.", nil, nil)
	descLastRackCount = prometheus.NewDesc(
		"cabling_allocator_last_rack_count", "rack_count of the most recently recorded allocation.", nil, nil)
	descLastPanelCount = prometheus.NewDesc(
		"cabling_allocator_last_panel_count", "panel_count of the most recently recorded allocation.", nil, nil)
	descLastModuleCount = prometheus.NewDesc(
		"cabling_allocator_last_module_count", "module_count of the most recently recorded allocation.", nil, nil)
	descLastCableCount = prometheus.NewDesc(
		"cabling_allocator_last_cable_count", "cable_count of the most recently recorded allocation.", nil, nil)
	descLastSessionCount = prometheus.NewDesc(
		"cabling_allocator_last_session_count", "session_count of the most recently recorded allocation.", nil, nil)
	descLastWarnings = prometheus.NewDesc(
		"cabling_allocator_last_warning_count", "Number of warnings in the most recently recorded allocation.", nil, nil)
	descLastErrors = prometheus.NewDesc(
		"cabling_allocator_last_error_count", "Number of errors in the most recently recorded allocation.", nil, nil)
)

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- descRuns
	ch <- descSessionsTotal
	ch <- descLastRackCount
	ch <- descLastPanelCount
	ch <- descLastModuleCount
	ch <- descLastCableCount
	ch <- descLastSessionCount
	ch <- descLastWarnings
	ch <- descLastErrors
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch <- prometheus.MustNewConstMetric(descRuns, prometheus.CounterValue, float64(c.runs))
	ch <- prometheus.MustNewConstMetric(descSessionsTotal, prometheus.CounterValue, float64(c.overall))
	if !c.hasRun {
		return
	}
	m := c.last.Metrics
	ch <- prometheus.MustNewConstMetric(descLastRackCount, prometheus.GaugeValue, float64(m.RackCount))
	ch <- prometheus.MustNewConstMetric(descLastPanelCount, prometheus.GaugeValue, float64(m.PanelCount))
	ch <- prometheus.MustNewConstMetric(descLastModuleCount, prometheus.GaugeValue, float64(m.ModuleCount))
	ch <- prometheus.MustNewConstMetric(descLastCableCount, prometheus.GaugeValue, float64(m.CableCount))
	ch <- prometheus.MustNewConstMetric(descLastSessionCount, prometheus.GaugeValue, float64(m.SessionCount))
	ch <- prometheus.MustNewConstMetric(descLastWarnings, prometheus.GaugeValue, float64(len(c.last.Warnings)))
	ch <- prometheus.MustNewConstMetric(descLastErrors, prometheus.GaugeValue, float64(len(c.last.Errors)))
}
