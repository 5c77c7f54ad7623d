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

package placement

import (
	"fmt"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/hashid"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/model"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/normalize"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/schema"
)

const utpPortsPerModule = 6

// utpCursor tracks the module a rack is currently filling with RJ-45 ports,
// so successive demands against the same rack keep packing the same module
// before a new one is reserved.
type utpCursor struct {
	module model.Module
	used   int
	have   bool
}

// RunUTP places §4.4.3 copper UTP demands: one RJ-45 port per session,
// drawn rack-first from a six-port module per rack that is filled to
// capacity across all of that rack's peers before a new module is reserved,
// and one direct patch cable per session.
func RunUTP(ctx *Context, pairs []normalize.Pair) {
	counts := normalize.ForType(pairs, schema.EndpointUTPRJ45)
	media := string(schema.EndpointUTPRJ45)
	cursors := make(map[string]*utpCursor)

	nextPort := func(rack string) (model.PortRef, bool) {
		cur, ok := cursors[rack]
		if !ok {
			cur = &utpCursor{}
			cursors[rack] = cur
		}
		if !cur.have || cur.used >= utpPortsPerModule {
			coord, err := ctx.Pool.For(rack).ReserveOne()
			if err != nil {
				ctx.Fail("rack_overflow", err.Error(), rack)
				return model.PortRef{}, false
			}
			cur.module = ctx.AddModule(model.Module{
				ID:     hashid.ModuleID(rack, coord.U, coord.Slot, model.ModuleKindUTP),
				RackID: rack,
				U:      coord.U,
				Slot:   coord.Slot,
				Kind:   model.ModuleKindUTP,
			})
			ctx.PanelFor(rack, cur.module.U)
			cur.used = 0
			cur.have = true
		}
		cur.used++
		return model.PortRef{Rack: rack, Face: model.DefaultFace, U: cur.module.U, Slot: cur.module.Slot, Port: cur.used}, true
	}

	// drain resolves up to n ports for rack on its own, stopping early
	// only when the rack itself runs out of slot capacity. The two sides
	// of a pair are drained independently so one side's overflow never
	// truncates the other: the only thing that can make their lengths
	// disagree is each side's own rack capacity.
	drain := func(rack string, n int) []model.PortRef {
		ports := make([]model.PortRef, 0, n)
		for i := 0; i < n; i++ {
			p, ok := nextPort(rack)
			if !ok {
				break
			}
			ports = append(ports, p)
		}
		return ports
	}

	for _, pc := range counts {
		rackA, rackB := pc.Key.A, pc.Key.B

		beforeA := len(ctx.Modules)
		srcPorts := drain(rackA, pc.Count)
		newModulesA := ctx.Modules[beforeA:]

		beforeB := len(ctx.Modules)
		dstPorts := drain(rackB, pc.Count)
		newModulesB := ctx.Modules[beforeB:]

		var notes []string
		if len(newModulesA) > 0 {
			notes = append(notes, fmt.Sprintf("rack %s: reserved %d module(s) for %d port(s)", rackA, len(newModulesA), len(srcPorts)))
		}
		if len(newModulesB) > 0 {
			notes = append(notes, fmt.Sprintf("rack %s: reserved %d module(s) for %d port(s)", rackB, len(newModulesB), len(dstPorts)))
		}

		sessionCount := len(srcPorts)
		if len(dstPorts) < sessionCount {
			sessionCount = len(dstPorts)
		}
		if len(srcPorts) != len(dstPorts) {
			ctx.Warn("utp_side_count_mismatch",
				fmt.Sprintf("rack %s resolved %d of %d demanded ports, rack %s resolved %d; pairing %d sessions",
					rackA, len(srcPorts), pc.Count, rackB, len(dstPorts), sessionCount),
				rackA, rackB)
			notes = append(notes, fmt.Sprintf("side count mismatch: %d vs %d, paired %d", len(srcPorts), len(dstPorts), sessionCount))
		}

		for i := 0; i < sessionCount; i++ {
			src, dst := srcPorts[i], dstPorts[i]

			epA := model.Endpoint{Rack: src.Rack, Face: src.Face, U: src.U, Slot: src.Slot, Port: src.Port}
			epB := model.Endpoint{Rack: dst.Rack, Face: dst.Face, U: dst.U, Slot: dst.Slot, Port: dst.Port}
			cableID := hashid.CableID(epA, epB, media, "", 0, 0)
			ctx.AddCable(model.Cable{
				ID:        cableID,
				Media:     media,
				EndpointA: epA,
				EndpointB: epB,
			})

			ctx.AddSession(model.Session{
				ID:      hashid.SessionID(media, src, dst),
				Media:   media,
				Src:     src,
				Dst:     dst,
				CableID: cableID,
				LabelA:  model.Label(src),
				LabelB:  model.Label(dst),
			})
		}

		ctx.AddPairDetail(model.PairDetail{
			RackA:        rackA,
			RackB:        rackB,
			Category:     string(schema.CategoryUTP),
			DemandCount:  pc.Count,
			SessionCount: sessionCount,
			EngineNotes:  notes,
		})
	}
}
