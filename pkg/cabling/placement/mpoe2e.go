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

const mpoChunkSize = 12

// RunMPOE2E places §4.4.1 end-to-end MPO pass-through trunks: one dedicated
// 12-port module per side per chunk of up to 12 demanded fibers, one cable
// per used port, and sessions whose src and dst port numbers are identical.
func RunMPOE2E(ctx *Context, pairs []normalize.Pair) {
	profile := ctx.Settings.FixedProfiles.MPOE2E
	counts := normalize.ForType(pairs, schema.EndpointMPO12)

	for _, pc := range counts {
		rackA, rackB := pc.Key.A, pc.Key.B
		sizes := chunks(pc.Count, mpoChunkSize)
		sessionCount := 0
		notes := make([]string, 0, len(sizes))

		for chunkIndex, size := range sizes {
			coordA, errA := ctx.Pool.For(rackA).ReserveOne()
			coordB, errB := ctx.Pool.For(rackB).ReserveOne()
			if errA != nil {
				ctx.Fail("rack_overflow", errA.Error(), rackA)
			}
			if errB != nil {
				ctx.Fail("rack_overflow", errB.Error(), rackB)
			}
			if errA != nil || errB != nil {
				notes = append(notes, fmt.Sprintf("chunk %d: overflow (rack_a=%v rack_b=%v)", chunkIndex, errA != nil, errB != nil))
				continue
			}
			ctx.Logger.Debug("placement: mpo_e2e chunk", "rack_a", rackA, "rack_b", rackB, "chunk_index", chunkIndex, "ports", size)

			modA := ctx.AddModule(model.Module{
				ID:              hashid.ModuleID(rackA, coordA.U, coordA.Slot, model.ModuleKindMPOPassThrough),
				RackID:          rackA,
				U:               coordA.U,
				Slot:            coordA.Slot,
				Kind:            model.ModuleKindMPOPassThrough,
				PolarityVariant: profile.PassThroughVariant,
				Dedicated:       true,
			})
			modB := ctx.AddModule(model.Module{
				ID:              hashid.ModuleID(rackB, coordB.U, coordB.Slot, model.ModuleKindMPOPassThrough),
				RackID:          rackB,
				U:               coordB.U,
				Slot:            coordB.Slot,
				Kind:            model.ModuleKindMPOPassThrough,
				PolarityVariant: profile.PassThroughVariant,
				Dedicated:       true,
			})
			ctx.PanelFor(rackA, modA.U)
			ctx.PanelFor(rackB, modB.U)

			for port := 1; port <= size; port++ {
				epA := model.Endpoint{Rack: rackA, Face: model.DefaultFace, U: modA.U, Slot: modA.Slot, Port: port}
				epB := model.Endpoint{Rack: rackB, Face: model.DefaultFace, U: modB.U, Slot: modB.Slot, Port: port}
				cableID := hashid.CableID(epA, epB, string(schema.EndpointMPO12), profile.TrunkPolarity, chunkIndex, 0)
				ctx.AddCable(model.Cable{
					ID:         cableID,
					Media:      string(schema.EndpointMPO12),
					Polarity:   profile.TrunkPolarity,
					ChunkIndex: chunkIndex,
					TrunkIndex: 0,
					EndpointA:  epA,
					EndpointB:  epB,
				})

				src := model.PortRef{Rack: rackA, Face: model.DefaultFace, U: modA.U, Slot: modA.Slot, Port: port}
				dst := model.PortRef{Rack: rackB, Face: model.DefaultFace, U: modB.U, Slot: modB.Slot, Port: port}
				ctx.AddSession(model.Session{
					ID:      hashid.SessionID(string(schema.EndpointMPO12), src, dst),
					Media:   string(schema.EndpointMPO12),
					Src:     src,
					Dst:     dst,
					CableID: cableID,
					LabelA:  model.Label(src),
					LabelB:  model.Label(dst),
				})
				sessionCount++
			}
			notes = append(notes, fmt.Sprintf("chunk %d: %d port(s), module %s <-> %s", chunkIndex, size, modA.ID, modB.ID))
		}

		ctx.AddPairDetail(model.PairDetail{
			RackA:        rackA,
			RackB:        rackB,
			Category:     string(schema.CategoryMPOE2E),
			DemandCount:  pc.Count,
			SessionCount: sessionCount,
			ChunkCount:   len(sizes),
			EngineNotes:  notes,
		})
	}
}
