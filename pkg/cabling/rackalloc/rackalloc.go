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

// Package rackalloc implements the per-rack slot-reservation state machine
// of §4.3: a small, owned state object handing out (u, slot) coordinates in
// a configured fill direction, one instance per rack, with no cross-rack
// aliasing.
package rackalloc

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/natural"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/schema"
)

// Coord is a reserved (u, slot) position within a rack.
type Coord struct {
	U    int
	Slot int
}

// OverflowError records a single failed reservation attempt: the rack ran
// out of rack units for the configured fill direction and slot width.
type OverflowError struct {
	RackID string
	Index  int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("rackalloc: rack %q overflowed at allocation index %d", e.RackID, e.Index)
}

// Allocator is the per-rack state machine described in §4.3. It is not
// safe for concurrent use; the allocator core never shares one across
// goroutines.
type Allocator struct {
	rackID    string
	maxU      int
	slotsPerU int
	direction schema.Direction
	index     int
	overflows []*OverflowError
}

// New creates an Allocator for one rack.
func New(rackID string, maxU, slotsPerU int, direction schema.Direction) *Allocator {
	return &Allocator{
		rackID:    rackID,
		maxU:      maxU,
		slotsPerU: slotsPerU,
		direction: direction,
	}
}

// ReserveOne hands out the next (u, slot) coordinate and advances the
// allocation index. On overflow it records an OverflowError (retrievable
// via Overflows) and returns that same error so the caller can skip
// placing anything at the failed coordinate; the index still advances so
// later calls probe further coordinates and any further overflow sites
// for this rack are discovered in the same pass.
func (a *Allocator) ReserveOne() (Coord, error) {
	idx := a.index
	a.index++

	slot := (idx % a.slotsPerU) + 1
	uOffset := idx / a.slotsPerU

	var u int
	switch a.direction {
	case schema.DirectionBottomUp:
		u = a.maxU - uOffset
	default:
		u = uOffset + 1
	}

	if u < 1 || u > a.maxU {
		err := &OverflowError{RackID: a.rackID, Index: idx}
		a.overflows = append(a.overflows, err)
		return Coord{}, err
	}
	return Coord{U: u, Slot: slot}, nil
}

// ReserveContiguous reserves n consecutive allocation-index slots on this
// rack, for placement engines that need several slots to land as one
// contiguous run rather than individually. None of the four category
// engines in this spec need more than one slot per chunk per side, but the
// rack allocator exposes it as a first-class operation per §4.3.
func (a *Allocator) ReserveContiguous(n int) ([]Coord, error) {
	coords := make([]Coord, 0, n)
	var merr *multierror.Error
	for i := 0; i < n; i++ {
		c, err := a.ReserveOne()
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		coords = append(coords, c)
	}
	return coords, merr.ErrorOrNil()
}

// Overflows returns every overflow recorded by this allocator so far, in
// the order they occurred.
func (a *Allocator) Overflows() []*OverflowError {
	return a.overflows
}

// Pool owns one Allocator per rack, keyed by rack id.
type Pool struct {
	allocators map[string]*Allocator
	order      []string
	peerSort   schema.PeerSort
}

// NewPool builds a Pool with one Allocator per rack, using the panel
// geometry and fill direction from settings.
func NewPool(racks []schema.Rack, panel schema.PanelSettings, peerSort schema.PeerSort) *Pool {
	p := &Pool{
		allocators: make(map[string]*Allocator, len(racks)),
		peerSort:   peerSort,
	}
	for _, r := range racks {
		p.allocators[r.ID] = New(r.ID, r.EffectiveHeight(), panel.SlotsPerU, panel.AllocationDirection)
		p.order = append(p.order, r.ID)
	}
	natural.SortStrings(peerSort, p.order)
	return p
}

// For returns the Allocator owning rackID. Panics if rackID was not part
// of the project passed to NewPool, since every caller in this package
// validates rack references before reaching the allocator.
func (p *Pool) For(rackID string) *Allocator {
	a, ok := p.allocators[rackID]
	if !ok {
		panic(fmt.Sprintf("rackalloc: unknown rack %q", rackID))
	}
	return a
}

// Overflows returns every overflow recorded across the whole pool, ordered
// by rack id (per the pool's peer-sort strategy) and then by allocation
// index.
func (p *Pool) Overflows() []*OverflowError {
	var out []*OverflowError
	for _, id := range p.order {
		out = append(out, p.allocators[id].Overflows()...)
	}
	return out
}
