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

// Package model holds the derived entities produced by one allocation run
// (§3): panels, modules, cables, and sessions. Every value here is created
// once by pkg/cabling/allocator and never mutated afterwards — ownership
// is a simple tree rooted at the Result document, entities refer to each
// other by id, not by pointer.
package model

import "strconv"

// Module kinds, the three physical port-module variants the placement
// engines can place.
const (
	ModuleKindMPOPassThrough = "mpo12_pass_through_12port"
	ModuleKindLCBreakout     = "lc_breakout_2xmpo12_to_12xlcduplex"
	ModuleKindUTP            = "utp_6xrj45"
)

// DefaultFace is the only panel/module face this allocator models. The
// spec's physical diff tuple carries a face field (§4.6) for forward
// compatibility with multi-face hardware, but every module this allocator
// places exposes its ports on a single logical face.
const DefaultFace = "front"

// Panel is a 1U container with slots_per_u slots.
type Panel struct {
	ID     string `json:"id"`
	RackID string `json:"rack_id"`
	U      int    `json:"u"`
}

// Module occupies one slot of one panel.
type Module struct {
	ID              string `json:"id"`
	RackID          string `json:"rack_id"`
	U               int    `json:"u"`
	Slot            int    `json:"slot"`
	Kind            string `json:"kind"`
	PolarityVariant string `json:"polarity_variant,omitempty"`
	Dedicated       bool   `json:"dedicated"`
}

// Endpoint is one physical side of a cable.
type Endpoint struct {
	Rack string `json:"rack"`
	Face string `json:"face"`
	U    int    `json:"u"`
	Slot int    `json:"slot"`
	Port int    `json:"port"`
}

// Cable is a trunk connecting two module (or RJ-45) endpoints.
type Cable struct {
	ID         string   `json:"id"`
	Seq        int      `json:"cable_seq"`
	Media      string   `json:"media"`
	Polarity   string   `json:"polarity,omitempty"`
	ChunkIndex int      `json:"chunk_index"`
	TrunkIndex int      `json:"trunk_index"`
	EndpointA  Endpoint `json:"endpoint_a"`
	EndpointB  Endpoint `json:"endpoint_b"`
}

// PortRef names one endpoint of a session.
type PortRef struct {
	Rack string `json:"rack"`
	Face string `json:"face"`
	U    int    `json:"u"`
	Slot int    `json:"slot"`
	Port int    `json:"port"`
}

// Session is a single port-to-port connection satisfying one unit of
// demand.
type Session struct {
	ID          string  `json:"id"`
	Media       string  `json:"media"`
	Src         PortRef `json:"src"`
	Dst         PortRef `json:"dst"`
	CableID     string  `json:"cable_id"`
	AdapterType string  `json:"adapter_type,omitempty"`
	LabelA      string  `json:"label_a"`
	LabelB      string  `json:"label_b"`
	FiberA      int     `json:"fiber_a,omitempty"`
	FiberB      int     `json:"fiber_b,omitempty"`
}

// Label formats the literal {rack}U{u}S{slot}P{port} label used for both
// sessions.csv columns and Session.LabelA/LabelB (§6).
func Label(ref PortRef) string {
	return ref.Rack + "U" + strconv.Itoa(ref.U) + "S" + strconv.Itoa(ref.Slot) + "P" + strconv.Itoa(ref.Port)
}

// Warning is a structured, non-fatal diagnostic (§7).
type Warning struct {
	Kind     string   `json:"kind"`
	Message  string   `json:"message"`
	Entities []string `json:"entities,omitempty"`
}

// Failure is a structured, fatal-to-completeness diagnostic (§7) — the
// allocator keeps running after recording one, but the result is
// considered incomplete.
type Failure struct {
	Kind     string   `json:"kind"`
	Message  string   `json:"message"`
	Entities []string `json:"entities,omitempty"`
}

// Metrics summarizes the size of a completed (or partial) allocation.
type Metrics struct {
	RackCount    int `json:"rack_count"`
	PanelCount   int `json:"panel_count"`
	ModuleCount  int `json:"module_count"`
	CableCount   int `json:"cable_count"`
	SessionCount int `json:"session_count"`
}

// PairDetail is the per rack-pair slot usage summary (§6).
type PairDetail struct {
	RackA        string   `json:"rack_a"`
	RackB        string   `json:"rack_b"`
	Category     string   `json:"category"`
	DemandCount  int      `json:"demand_count"`
	SessionCount int      `json:"session_count"`
	ChunkCount   int      `json:"chunk_count"`
	EngineNotes  []string `json:"engine_notes,omitempty"`
}
