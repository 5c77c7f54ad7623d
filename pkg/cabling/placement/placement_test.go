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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/normalize"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/rackalloc"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/schema"
)

func newTestContext(t *testing.T, racks []schema.Rack, settings schema.Settings) *Context {
	t.Helper()
	pool := rackalloc.NewPool(racks, settings.Panel, settings.Ordering.PeerSort)
	return NewContext(pool, settings, nil)
}

func twoRacks() []schema.Rack {
	return []schema.Rack{{ID: "R01", HeightU: 42}, {ID: "R02", HeightU: 42}}
}

func TestRunMPOE2EChunksAndStampsPassThroughModules(t *testing.T) {
	settings := (&schema.Settings{}).ApplyDefaults()
	settings.FixedProfiles.MPOE2E = schema.MPOE2EProfile{TrunkPolarity: "A", PassThroughVariant: "type-a-uniboot"}
	ctx := newTestContext(t, twoRacks(), settings)

	pairs := normalize.Normalize(settings.Ordering.PeerSort, []schema.Demand{
		{ID: "D001", Src: "R01", Dst: "R02", Type: schema.EndpointMPO12, Count: 14},
	})
	RunMPOE2E(ctx, pairs)

	require.Len(t, ctx.Modules, 4)
	require.Len(t, ctx.Cables, 14)
	require.Len(t, ctx.Sessions, 14)
	for _, m := range ctx.Modules {
		require.True(t, m.Dedicated)
		require.Equal(t, "type-a-uniboot", m.PolarityVariant)
	}
	for _, s := range ctx.Sessions {
		require.Equal(t, s.Src.Port, s.Dst.Port)
	}
}

func TestRunLCBreakoutAlwaysPlacesTwoTrunksPerChunk(t *testing.T) {
	settings := (&schema.Settings{}).ApplyDefaults()
	ctx := newTestContext(t, twoRacks(), settings)

	pairs := normalize.Normalize(settings.Ordering.PeerSort, []schema.Demand{
		{ID: "D001", Src: "R01", Dst: "R02", Type: schema.EndpointMMFLCDuplex, Count: 13},
	})
	RunLCBreakout(ctx, pairs, schema.EndpointMMFLCDuplex, schema.CategoryLCMMF)

	require.Len(t, ctx.Cables, 4, "2 chunks * 2 trunks per chunk")
	require.Len(t, ctx.Sessions, 13)

	var atPortSeven *int
	for _, s := range ctx.Sessions {
		if s.Src.Port == 7 {
			atPortSeven = &s.FiberA
		}
	}
	require.NotNil(t, atPortSeven)
	require.Equal(t, 1, *atPortSeven)
}

func TestLCPortMapping(t *testing.T) {
	cases := []struct {
		port                       int
		wantTrunk, wantA, wantB int
	}{
		{1, 1, 1, 2},
		{6, 1, 11, 12},
		{7, 2, 1, 2},
		{12, 2, 11, 12},
	}
	for _, c := range cases {
		trunk, a, b := lcPortMapping(c.port)
		require.Equal(t, c.wantTrunk, trunk, "port %d trunk", c.port)
		require.Equal(t, c.wantA, a, "port %d fiber a", c.port)
		require.Equal(t, c.wantB, b, "port %d fiber b", c.port)
	}
}

func TestRunUTPFillsModulesBeforeReservingNew(t *testing.T) {
	settings := (&schema.Settings{}).ApplyDefaults()
	ctx := newTestContext(t, twoRacks(), settings)

	pairs := normalize.Normalize(settings.Ordering.PeerSort, []schema.Demand{
		{ID: "D001", Src: "R01", Dst: "R02", Type: schema.EndpointUTPRJ45, Count: 8},
	})
	RunUTP(ctx, pairs)

	require.Len(t, ctx.Sessions, 8)
	// 8 ports at 6 per module needs 2 modules per rack.
	moduleCountByRack := map[string]int{}
	for _, m := range ctx.Modules {
		moduleCountByRack[m.RackID]++
	}
	require.Equal(t, 2, moduleCountByRack["R01"])
	require.Equal(t, 2, moduleCountByRack["R02"])
}

func TestRunUTPWarnsAndPairsShorterSideOnCapacityMismatch(t *testing.T) {
	settings := (&schema.Settings{}).ApplyDefaults()
	racks := []schema.Rack{{ID: "R01", HeightU: 42}, {ID: "R02", HeightU: 1}}
	ctx := newTestContext(t, racks, settings)

	pairs := normalize.Normalize(settings.Ordering.PeerSort, []schema.Demand{
		{ID: "D001", Src: "R01", Dst: "R02", Type: schema.EndpointUTPRJ45, Count: 30},
	})
	RunUTP(ctx, pairs)

	// R02 has room for 4 modules of 6 ports each (1U at 4 slots/U) before
	// its allocator overflows, so it can only resolve 24 of the 30
	// demanded ports; R01 resolves all 30.
	require.Len(t, ctx.Sessions, 24)
	require.NotEmpty(t, ctx.Failures, "R02 overflow should be recorded")
	require.Len(t, ctx.Warnings, 1)
	require.Equal(t, "utp_side_count_mismatch", ctx.Warnings[0].Kind)
	require.Equal(t, []string{"R01", "R02"}, ctx.Warnings[0].Entities)
	require.Len(t, ctx.PairDetails, 1)
	require.Equal(t, 24, ctx.PairDetails[0].SessionCount)
}

func TestDispatchWarnsOnSkippedCategoryWithDemand(t *testing.T) {
	settings := (&schema.Settings{}).ApplyDefaults()
	settings.Ordering.SlotCategoryPriority = []schema.SlotCategory{schema.CategoryMPOE2E}
	ctx := newTestContext(t, twoRacks(), settings)

	pairs := normalize.Normalize(settings.Ordering.PeerSort, []schema.Demand{
		{ID: "D001", Src: "R01", Dst: "R02", Type: schema.EndpointUTPRJ45, Count: 3},
	})
	Dispatch(ctx, pairs)

	require.Empty(t, ctx.Sessions)
	require.Len(t, ctx.Warnings, 1)
	require.Equal(t, "category_skipped_with_demand", ctx.Warnings[0].Kind)
}
