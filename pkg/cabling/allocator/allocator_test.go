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

package allocator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/cablingtest"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/diffengine"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/schema"
)

func TestS1TwoRacksSingleMPOPair(t *testing.T) {
	p := cablingtest.FixtureProject(t, "s1")
	result, err := Allocate(p)
	require.NoError(t, err)
	require.True(t, result.Complete())

	require.Equal(t, 2, result.Metrics.PanelCount)
	require.Equal(t, 4, result.Metrics.ModuleCount)
	require.Equal(t, 14, result.Metrics.CableCount)
	require.Equal(t, 14, result.Metrics.SessionCount)
	for _, s := range result.Sessions {
		require.Equal(t, s.Src.Port, s.Dst.Port, "mpo12 session %s must have src_port == dst_port", s.ID)
	}
}

func TestS2TwoRacksLCMMFBreakout(t *testing.T) {
	p := cablingtest.FixtureProject(t, "s2")
	result, err := Allocate(p)
	require.NoError(t, err)
	require.True(t, result.Complete())

	require.Equal(t, 4, result.Metrics.ModuleCount)
	require.Equal(t, 4, result.Metrics.CableCount)
	require.Equal(t, 13, result.Metrics.SessionCount)

	var portSeven *struct{ fiberA, fiberB int }
	for _, s := range result.Sessions {
		if s.Src.Port == 7 {
			portSeven = &struct{ fiberA, fiberB int }{s.FiberA, s.FiberB}
		}
	}
	require.NotNil(t, portSeven, "expected a session at LC port 7")
	require.Equal(t, 1, portSeven.fiberA)
	require.Equal(t, 2, portSeven.fiberB)
}

func TestS3ThreeRacksMixedMedia(t *testing.T) {
	p := cablingtest.FixtureProject(t, "s3")
	result, err := Allocate(p)
	require.NoError(t, err)
	require.True(t, result.Complete())

	require.Equal(t, 3, result.Metrics.RackCount)
	require.Equal(t, 4, result.Metrics.PanelCount)
	require.Equal(t, 12, result.Metrics.ModuleCount)
	require.Equal(t, 26, result.Metrics.CableCount)
	require.Equal(t, 35, result.Metrics.SessionCount)
}

func TestS4PeerSortOrthogonality(t *testing.T) {
	natural := cablingtest.FixtureProject(t, "s4")
	lexicographic := cablingtest.FixtureProject(t, "s4")
	lexicographic.Settings = &schema.Settings{Ordering: schema.OrderingSettings{PeerSort: schema.PeerSortLexicographic}}

	naturalResult, err := Allocate(natural)
	require.NoError(t, err)
	lexicographicResult, err := Allocate(lexicographic)
	require.NoError(t, err)

	require.NotEqual(t, naturalResult.Sessions[0].ID, lexicographicResult.Sessions[0].ID)

	diff := diffengine.Logical(naturalResult.Sessions, lexicographicResult.Sessions)
	require.Empty(t, diff.Modified, "peer-sort orthogonality must not produce modified sessions, only added/removed")
	require.NotEmpty(t, diff.Added)
	require.NotEmpty(t, diff.Removed)
}

func TestS5Overflow(t *testing.T) {
	p := cablingtest.FixtureProject(t, "s5")
	result, err := Allocate(p)
	require.NoError(t, err)
	require.False(t, result.Complete())
	require.Len(t, result.Errors, 1)
	require.Equal(t, "rack_overflow", result.Errors[0].Kind)
	require.Contains(t, result.Errors[0].Entities, "R01")
	require.Less(t, result.Metrics.SessionCount, 15)
}

func TestS6DirectionFlip(t *testing.T) {
	topDown := cablingtest.FixtureProject(t, "s6")
	bottomUp := cablingtest.FixtureProject(t, "s6")
	bottomUp.Settings = &schema.Settings{Panel: schema.PanelSettings{SlotsPerU: 4, AllocationDirection: schema.DirectionBottomUp}}

	topDownResult, err := Allocate(topDown)
	require.NoError(t, err)
	bottomUpResult, err := Allocate(bottomUp)
	require.NoError(t, err)

	require.Equal(t, 1, topDownResult.Panels[0].U)
	require.Equal(t, 42, bottomUpResult.Panels[0].U)

	diff := diffengine.Physical(topDownResult.Sessions, bottomUpResult.Sessions)
	require.Empty(t, diff.Collisions)
	require.Len(t, diff.Added, len(bottomUpResult.Sessions))
	require.Len(t, diff.Removed, len(topDownResult.Sessions))
}

func TestDeterminism(t *testing.T) {
	p := cablingtest.FixtureProject(t, "s3")
	first, err := Allocate(p)
	require.NoError(t, err)
	second, err := Allocate(p)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Allocate(p) is not deterministic:\n%s", diff)
	}
}

func TestConservation(t *testing.T) {
	p := cablingtest.FixtureProject(t, "s3")
	result, err := Allocate(p)
	require.NoError(t, err)
	require.True(t, result.Complete())

	var want int
	for _, d := range p.Demands {
		want += d.Count
	}
	require.Equal(t, want, result.Metrics.SessionCount)
}

func TestUniqueness(t *testing.T) {
	p := cablingtest.FixtureProject(t, "s3")
	result, err := Allocate(p)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, id := range allIDs(result) {
		require.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}

func allIDs(r Result) []string {
	var ids []string
	for _, p := range r.Panels {
		ids = append(ids, p.ID)
	}
	for _, m := range r.Modules {
		ids = append(ids, m.ID)
	}
	for _, c := range r.Cables {
		ids = append(ids, c.ID)
	}
	for _, s := range r.Sessions {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestSlotDisjointness(t *testing.T) {
	p := cablingtest.FixtureProject(t, "s3")
	result, err := Allocate(p)
	require.NoError(t, err)

	type coord struct {
		rack string
		u    int
		slot int
	}
	seen := make(map[coord]bool)
	for _, m := range result.Modules {
		c := coord{m.RackID, m.U, m.Slot}
		require.False(t, seen[c], "duplicate (u, slot) on rack %s: U%d S%d", m.RackID, m.U, m.Slot)
		seen[c] = true
	}
}

func TestDiffRoundTrip(t *testing.T) {
	p := cablingtest.FixtureProject(t, "s3")
	result, err := Allocate(p)
	require.NoError(t, err)

	logical := diffengine.Logical(result.Sessions, result.Sessions)
	require.Empty(t, logical.Added)
	require.Empty(t, logical.Removed)
	require.Empty(t, logical.Modified)

	physical := diffengine.Physical(result.Sessions, result.Sessions)
	require.Empty(t, physical.Added)
	require.Empty(t, physical.Removed)
	require.Empty(t, physical.Collisions)
}

func TestValidationAbortsBeforeAllocation(t *testing.T) {
	p := &schema.Project{
		Version: 1,
		Racks:   []schema.Rack{{ID: "R01"}},
		Demands: []schema.Demand{
			{ID: "D001", Src: "R01", Dst: "R01", Type: schema.EndpointMPO12, Count: 1},
			{ID: "D001", Src: "R01", Dst: "R99", Type: "bogus", Count: -1},
		},
	}
	_, err := Allocate(p)
	cablingtest.VerifyError(t, err, 5, "duplicate demand id", "src and dst must differ", "references undefined rack", "invalid endpoint type", "must be positive")
}

func TestCategorySkippedWithDemandWarns(t *testing.T) {
	p := cablingtest.FixtureProject(t, "s2")
	p.Settings = &schema.Settings{Ordering: schema.OrderingSettings{SlotCategoryPriority: []schema.SlotCategory{schema.CategoryMPOE2E}}}

	result, err := Allocate(p)
	require.NoError(t, err)
	require.Equal(t, 0, result.Metrics.SessionCount)
	require.NotEmpty(t, result.Warnings)
	require.Equal(t, "category_skipped_with_demand", result.Warnings[0].Kind)
}
