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

package normalize

import (
	"testing"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/schema"
)

func TestNormalizeFoldsBothOrientationsIntoOnePair(t *testing.T) {
	demands := []schema.Demand{
		{ID: "D001", Src: "R01", Dst: "R02", Type: schema.EndpointMPO12, Count: 5},
		{ID: "D002", Src: "R02", Dst: "R01", Type: schema.EndpointMPO12, Count: 3},
	}
	pairs := Normalize(schema.PeerSortNaturalTrailingDigits, demands)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 folded pair, got %d: %+v", len(pairs), pairs)
	}
	if pairs[0].Key != (PairKey{A: "R01", B: "R02"}) {
		t.Fatalf("expected canonical key (R01, R02), got %+v", pairs[0].Key)
	}
	if got := pairs[0].Counts[schema.EndpointMPO12]; got != 8 {
		t.Fatalf("expected folded count 8, got %d", got)
	}
}

func TestNormalizeOrdersPairsByPeerSort(t *testing.T) {
	demands := []schema.Demand{
		{ID: "D001", Src: "R10", Dst: "R2", Type: schema.EndpointUTPRJ45, Count: 1},
		{ID: "D002", Src: "R1", Dst: "R3", Type: schema.EndpointUTPRJ45, Count: 1},
	}
	pairs := Normalize(schema.PeerSortNaturalTrailingDigits, demands)
	if pairs[0].Key.A != "R1" {
		t.Fatalf("expected R1 first under natural sort, got %+v", pairs)
	}
	if pairs[1].Key.A != "R2" {
		t.Fatalf("expected R2 second (as the A side of the R2/R10 pair), got %+v", pairs)
	}
}

func TestPeersByRack(t *testing.T) {
	demands := []schema.Demand{
		{ID: "D001", Src: "R01", Dst: "R02", Type: schema.EndpointUTPRJ45, Count: 1},
		{ID: "D002", Src: "R01", Dst: "R03", Type: schema.EndpointUTPRJ45, Count: 1},
	}
	pairs := Normalize(schema.PeerSortNaturalTrailingDigits, demands)
	peers := PeersByRack(schema.PeerSortNaturalTrailingDigits, pairs, schema.EndpointUTPRJ45)

	if got := peers["R01"]; len(got) != 2 || got[0] != "R02" || got[1] != "R03" {
		t.Fatalf("expected R01's peers to be [R02 R03], got %v", got)
	}
	if got := peers["R02"]; len(got) != 1 || got[0] != "R01" {
		t.Fatalf("expected R02's peers to be [R01], got %v", got)
	}
}

func TestCountFor(t *testing.T) {
	demands := []schema.Demand{{ID: "D001", Src: "R01", Dst: "R02", Type: schema.EndpointMPO12, Count: 7}}
	pairs := Normalize(schema.PeerSortNaturalTrailingDigits, demands)

	if got := CountFor(pairs, schema.EndpointMPO12, "R01", "R02"); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
	if got := CountFor(pairs, schema.EndpointMPO12, "R02", "R01"); got != 7 {
		t.Errorf("expected symmetric lookup to also return 7, got %d", got)
	}
	if got := CountFor(pairs, schema.EndpointMPO12, "R01", "R03"); got != 0 {
		t.Errorf("expected 0 for an unrelated pair, got %d", got)
	}
}
