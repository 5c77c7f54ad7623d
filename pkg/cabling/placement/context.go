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

// Package placement implements the four category-specific slot and cable
// placement engines of §4.4: mpo_e2e, lc_mmf, lc_smf and utp. Every engine
// shares one build-time Context, which owns the panel registry and
// accumulates the modules, cables, sessions and diagnostics a run produces.
package placement

import (
	"log/slog"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/hashid"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/model"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/rackalloc"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/schema"
)

type panelKey struct {
	rack string
	u    int
}

// Context is the mutable build state shared by every category engine
// invoked for one allocation run. It is not safe for concurrent use; the
// dispatcher runs engines one category at a time, in priority order.
type Context struct {
	Pool     *rackalloc.Pool
	Settings schema.Settings
	Logger   *slog.Logger

	panels     map[panelKey]*model.Panel
	panelOrder []panelKey

	Modules     []model.Module
	Cables      []model.Cable
	Sessions    []model.Session
	Warnings    []model.Warning
	Failures    []model.Failure
	PairDetails []model.PairDetail
}

// NewContext creates an empty build Context bound to pool. A nil logger
// falls back to slog.Default(), mirroring the teacher's own packages.
func NewContext(pool *rackalloc.Pool, settings schema.Settings, logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	return &Context{
		Pool:     pool,
		Settings: settings,
		Logger:   logger,
		panels:   make(map[panelKey]*model.Panel),
	}
}

// PanelFor returns the panel at (rack, u), creating it the first time it is
// referenced. Panel creation has no reservation semantics of its own: a
// panel exists because some module's coordinate falls within it.
func (c *Context) PanelFor(rack string, u int) *model.Panel {
	key := panelKey{rack: rack, u: u}
	if p, ok := c.panels[key]; ok {
		return p
	}
	p := &model.Panel{ID: hashid.PanelID(rack, u), RackID: rack, U: u}
	c.panels[key] = p
	c.panelOrder = append(c.panelOrder, key)
	return p
}

// Panels returns every panel created so far, in first-referenced order. The
// allocator re-sorts this by id before it becomes part of a Result.
func (c *Context) Panels() []model.Panel {
	out := make([]model.Panel, 0, len(c.panelOrder))
	for _, key := range c.panelOrder {
		out = append(out, *c.panels[key])
	}
	return out
}

// AddModule appends m to the build state and returns it unchanged, so
// callers can chain construction and registration in one expression.
func (c *Context) AddModule(m model.Module) model.Module {
	c.Modules = append(c.Modules, m)
	return m
}

// AddCable appends cab to the build state and returns it unchanged.
func (c *Context) AddCable(cab model.Cable) model.Cable {
	c.Cables = append(c.Cables, cab)
	return cab
}

// AddSession appends s to the build state and returns it unchanged.
func (c *Context) AddSession(s model.Session) model.Session {
	c.Sessions = append(c.Sessions, s)
	return s
}

// Warn records a non-fatal diagnostic.
func (c *Context) Warn(kind, message string, entities ...string) {
	c.Warnings = append(c.Warnings, model.Warning{Kind: kind, Message: message, Entities: entities})
}

// Fail records a fatal-to-completeness diagnostic; the engine that calls it
// is expected to keep running and surface every occurrence in one pass,
// exactly as rackalloc.Allocator does for overflow.
func (c *Context) Fail(kind, message string, entities ...string) {
	c.Failures = append(c.Failures, model.Failure{Kind: kind, Message: message, Entities: entities})
}

// AddPairDetail records one rack-pair/category usage summary.
func (c *Context) AddPairDetail(d model.PairDetail) {
	c.PairDetails = append(c.PairDetails, d)
}

// chunks splits n items into groups of at most size, size >= 1, always
// returning at least one chunk size for n == 0.
func chunks(n, size int) []int {
	if n <= 0 {
		return nil
	}
	var out []int
	for remaining := n; remaining > 0; remaining -= size {
		if remaining >= size {
			out = append(out, size)
		} else {
			out = append(out, remaining)
		}
	}
	return out
}
