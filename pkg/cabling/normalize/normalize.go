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

// Package normalize folds demands into unordered rack-pair buckets, per
// §4.2. A pair's "A" side (the side sorted first under the configured
// peer-sort strategy) is always used as the src side when a placement
// engine later builds sessions for that pair, so the orientation of any
// individual demand that contributed to the bucket is not retained past
// this point — consistency comes from always attaching to the same side.
package normalize

import (
	"sort"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/natural"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/schema"
)

// PairKey is an unordered rack pair, canonicalized so A precedes B under
// the active peer-sort strategy.
type PairKey struct {
	A string
	B string
}

// Pair is one rack-pair bucket with its accumulated per-category counts.
type Pair struct {
	Key    PairKey
	Counts map[schema.EndpointType]int
}

// PairCount is one pair's demand count for a single endpoint type.
type PairCount struct {
	Key   PairKey
	Count int
}

// Normalize folds demands into pair buckets and returns them sorted by
// peer-sort strategy, first on the A side then on the B side.
func Normalize(peerSort schema.PeerSort, demands []schema.Demand) []Pair {
	index := make(map[PairKey]*Pair)
	var order []PairKey

	for _, d := range demands {
		key := canonicalKey(peerSort, d.Src, d.Dst)
		p, ok := index[key]
		if !ok {
			p = &Pair{Key: key, Counts: make(map[schema.EndpointType]int)}
			index[key] = p
			order = append(order, key)
		}
		p.Counts[d.Type] += d.Count
	}

	sort.Slice(order, func(i, j int) bool {
		if c := natural.Compare(peerSort, order[i].A, order[j].A); c != 0 {
			return c < 0
		}
		return natural.Compare(peerSort, order[i].B, order[j].B) < 0
	})

	pairs := make([]Pair, 0, len(order))
	for _, k := range order {
		pairs = append(pairs, *index[k])
	}
	return pairs
}

// canonicalKey sorts the two rack ids of a demand under peerSort so the
// same unordered pair always produces the same key regardless of which
// demand's src/dst happened to name it first.
func canonicalKey(peerSort schema.PeerSort, src, dst string) PairKey {
	if natural.Less(peerSort, dst, src) {
		return PairKey{A: dst, B: src}
	}
	return PairKey{A: src, B: dst}
}

// ForType filters pairs down to those with a non-zero count for t, in the
// same order Normalize produced them, dropping every other category's
// counts.
func ForType(pairs []Pair, t schema.EndpointType) []PairCount {
	var out []PairCount
	for _, p := range pairs {
		if n := p.Counts[t]; n > 0 {
			out = append(out, PairCount{Key: p.Key, Count: n})
		}
	}
	return out
}

// PeersByRack builds, for every rack that appears in pairs with a non-zero
// count for t, the sorted list of its peer racks under peerSort — the
// per-rack peer ordering the UTP engine needs (§4.2 "needed by the UTP
// engine").
func PeersByRack(peerSort schema.PeerSort, pairs []Pair, t schema.EndpointType) map[string][]string {
	peers := make(map[string]map[string]bool)
	addPeer := func(rack, peer string) {
		if peers[rack] == nil {
			peers[rack] = make(map[string]bool)
		}
		peers[rack][peer] = true
	}

	for _, p := range pairs {
		if p.Counts[t] <= 0 {
			continue
		}
		addPeer(p.Key.A, p.Key.B)
		addPeer(p.Key.B, p.Key.A)
	}

	out := make(map[string][]string, len(peers))
	for rack, set := range peers {
		list := make([]string, 0, len(set))
		for peer := range set {
			list = append(list, peer)
		}
		natural.SortStrings(peerSort, list)
		out[rack] = list
	}
	return out
}

// RacksInOrder returns every rack id mentioned by pairs with a non-zero
// count for t, sorted under peerSort.
func RacksInOrder(peerSort schema.PeerSort, pairs []Pair, t schema.EndpointType) []string {
	peers := PeersByRack(peerSort, pairs, t)
	racks := make([]string, 0, len(peers))
	for rack := range peers {
		racks = append(racks, rack)
	}
	natural.SortStrings(peerSort, racks)
	return racks
}

// CountFor returns the demand count between rack and peer for t, 0 if
// there is none.
func CountFor(pairs []Pair, t schema.EndpointType, rack, peer string) int {
	for _, p := range pairs {
		if (p.Key.A == rack && p.Key.B == peer) || (p.Key.A == peer && p.Key.B == rack) {
			return p.Counts[t]
		}
	}
	return 0
}
