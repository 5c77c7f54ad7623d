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

const lcChunkSize = 12

// lcPortMapping resolves a breakout module's LC duplex port (1-12) to the
// MPO trunk connector (1 or 2) and local MPO fiber pair it rides, per
// §4.4.2: ports 1-6 ride MPO-1, ports 7-12 ride MPO-2, and within each MPO
// the local port p' = ((p-1) mod 6) + 1 lands on fiber pair (2p'-1, 2p').
func lcPortMapping(p int) (trunkIndex, fiberA, fiberB int) {
	local := ((p - 1) % 6) + 1
	if p <= 6 {
		trunkIndex = 1
	} else {
		trunkIndex = 2
	}
	return trunkIndex, 2*local - 1, 2 * local
}

// RunLCBreakout places §4.4.2 LC duplex breakout demands: a breakout module
// per side per chunk of up to 12 duplex sessions, exactly two MPO trunk
// cables per chunk shared by that chunk's sessions, and one LC duplex
// session per demanded fiber.
func RunLCBreakout(ctx *Context, pairs []normalize.Pair, endpointType schema.EndpointType, category schema.SlotCategory) {
	profile := ctx.Settings.FixedProfiles.LCDemands
	counts := normalize.ForType(pairs, endpointType)
	media := string(endpointType)

	for _, pc := range counts {
		rackA, rackB := pc.Key.A, pc.Key.B
		sizes := chunks(pc.Count, lcChunkSize)
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
			ctx.Logger.Debug("placement: lc breakout chunk", "category", category, "rack_a", rackA, "rack_b", rackB, "chunk_index", chunkIndex, "ports", size)

			modA := ctx.AddModule(model.Module{
				ID:              hashid.ModuleID(rackA, coordA.U, coordA.Slot, model.ModuleKindLCBreakout),
				RackID:          rackA,
				U:               coordA.U,
				Slot:            coordA.Slot,
				Kind:            model.ModuleKindLCBreakout,
				PolarityVariant: profile.BreakoutModuleVariant,
			})
			modB := ctx.AddModule(model.Module{
				ID:              hashid.ModuleID(rackB, coordB.U, coordB.Slot, model.ModuleKindLCBreakout),
				RackID:          rackB,
				U:               coordB.U,
				Slot:            coordB.Slot,
				Kind:            model.ModuleKindLCBreakout,
				PolarityVariant: profile.BreakoutModuleVariant,
			})
			ctx.PanelFor(rackA, modA.U)
			ctx.PanelFor(rackB, modB.U)

			trunkCableID := make(map[int]string, 2)
			for _, trunkIndex := range [2]int{1, 2} {
				epA := model.Endpoint{Rack: rackA, Face: model.DefaultFace, U: modA.U, Slot: modA.Slot, Port: trunkIndex}
				epB := model.Endpoint{Rack: rackB, Face: model.DefaultFace, U: modB.U, Slot: modB.Slot, Port: trunkIndex}
				cableID := hashid.CableID(epA, epB, media, profile.TrunkPolarity, chunkIndex, trunkIndex)
				ctx.AddCable(model.Cable{
					ID:         cableID,
					Media:      media,
					Polarity:   profile.TrunkPolarity,
					ChunkIndex: chunkIndex,
					TrunkIndex: trunkIndex,
					EndpointA:  epA,
					EndpointB:  epB,
				})
				trunkCableID[trunkIndex] = cableID
			}

			for port := 1; port <= size; port++ {
				trunkIndex, fiberA, fiberB := lcPortMapping(port)
				src := model.PortRef{Rack: rackA, Face: model.DefaultFace, U: modA.U, Slot: modA.Slot, Port: port}
				dst := model.PortRef{Rack: rackB, Face: model.DefaultFace, U: modB.U, Slot: modB.Slot, Port: port}
				ctx.AddSession(model.Session{
					ID:      hashid.SessionID(media, src, dst),
					Media:   media,
					Src:     src,
					Dst:     dst,
					CableID: trunkCableID[trunkIndex],
					LabelA:  model.Label(src),
					LabelB:  model.Label(dst),
					FiberA:  fiberA,
					FiberB:  fiberB,
				})
				sessionCount++
			}
			notes = append(notes, fmt.Sprintf("chunk %d: %d session(s), 2 trunk(s) on module %s <-> %s", chunkIndex, size, modA.ID, modB.ID))
		}

		ctx.AddPairDetail(model.PairDetail{
			RackA:        rackA,
			RackB:        rackB,
			Category:     string(category),
			DemandCount:  pc.Count,
			SessionCount: sessionCount,
			ChunkCount:   len(sizes),
			EngineNotes:  notes,
		})
	}
}
