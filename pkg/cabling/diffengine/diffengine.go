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

// Package diffengine compares two result documents along the two
// independent axes of §4.6: logical identity (session_id) and physical
// identity (the termination tuple). The two axes can and do disagree — a
// session can keep its physical location while its logical id changes, or
// vice versa — which is the whole reason both are reported.
package diffengine

import (
	"fmt"
	"sort"

	"github.com/google/go-cmp/cmp"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/model"
)

// LogicalDiff is the session_id-keyed comparison of two result documents.
type LogicalDiff struct {
	Added    []model.Session
	Removed  []model.Session
	Modified []ModifiedSession
}

// ModifiedSession is a session present under the same id in both documents
// with a different payload.
type ModifiedSession struct {
	Old     model.Session
	New     model.Session
	Changes string
}

// PhysicalTuple is the termination identity of a session, independent of
// its session_id (§4.6).
type PhysicalTuple struct {
	Media                              string
	SrcRack, SrcFace                   string
	SrcU, SrcSlot, SrcPort             int
	DstRack, DstFace                   string
	DstU, DstSlot, DstPort             int
}

// Tuple extracts the physical identity of s.
func Tuple(s model.Session) PhysicalTuple {
	return PhysicalTuple{
		Media:   s.Media,
		SrcRack: s.Src.Rack, SrcFace: s.Src.Face, SrcU: s.Src.U, SrcSlot: s.Src.Slot, SrcPort: s.Src.Port,
		DstRack: s.Dst.Rack, DstFace: s.Dst.Face, DstU: s.Dst.U, DstSlot: s.Dst.Slot, DstPort: s.Dst.Port,
	}
}

// PhysicalCollision is a tuple present in both documents but mapped to a
// different session_id in each — the physical location is stable, its
// logical identity is not.
type PhysicalCollision struct {
	Tuple     PhysicalTuple
	OldID     string
	NewID     string
}

// PhysicalDiff is the termination-tuple-keyed comparison of two result
// documents.
type PhysicalDiff struct {
	Added      []model.Session
	Removed    []model.Session
	Collisions []PhysicalCollision
}

func indexByID(sessions []model.Session) map[string]model.Session {
	m := make(map[string]model.Session, len(sessions))
	for _, s := range sessions {
		m[s.ID] = s
	}
	return m
}

func indexByTuple(sessions []model.Session) map[PhysicalTuple]model.Session {
	m := make(map[PhysicalTuple]model.Session, len(sessions))
	for _, s := range sessions {
		m[Tuple(s)] = s
	}
	return m
}

// Logical computes the logical diff between old and new, ordered by
// session_id within each bucket.
func Logical(old, newer []model.Session) LogicalDiff {
	oldByID := indexByID(old)
	newByID := indexByID(newer)

	var diff LogicalDiff
	for id, s := range newByID {
		if _, ok := oldByID[id]; !ok {
			diff.Added = append(diff.Added, s)
		}
	}
	for id, s := range oldByID {
		if _, ok := newByID[id]; !ok {
			diff.Removed = append(diff.Removed, s)
		}
	}
	for id, oldS := range oldByID {
		newS, ok := newByID[id]
		if !ok {
			continue
		}
		if cmp.Equal(oldS, newS) {
			continue
		}
		diff.Modified = append(diff.Modified, ModifiedSession{
			Old:     oldS,
			New:     newS,
			Changes: cmp.Diff(oldS, newS),
		})
	}

	sort.Slice(diff.Added, func(i, j int) bool { return diff.Added[i].ID < diff.Added[j].ID })
	sort.Slice(diff.Removed, func(i, j int) bool { return diff.Removed[i].ID < diff.Removed[j].ID })
	sort.Slice(diff.Modified, func(i, j int) bool { return diff.Modified[i].Old.ID < diff.Modified[j].Old.ID })
	return diff
}

// Physical computes the physical diff between old and new.
func Physical(old, newer []model.Session) PhysicalDiff {
	oldByTuple := indexByTuple(old)
	newByTuple := indexByTuple(newer)

	var diff PhysicalDiff
	for t, s := range newByTuple {
		if _, ok := oldByTuple[t]; !ok {
			diff.Added = append(diff.Added, s)
		}
	}
	for t, s := range oldByTuple {
		if _, ok := newByTuple[t]; !ok {
			diff.Removed = append(diff.Removed, s)
		}
	}
	for t, oldS := range oldByTuple {
		newS, ok := newByTuple[t]
		if !ok || oldS.ID == newS.ID {
			continue
		}
		diff.Collisions = append(diff.Collisions, PhysicalCollision{Tuple: t, OldID: oldS.ID, NewID: newS.ID})
	}

	sort.Slice(diff.Added, func(i, j int) bool { return diff.Added[i].ID < diff.Added[j].ID })
	sort.Slice(diff.Removed, func(i, j int) bool { return diff.Removed[i].ID < diff.Removed[j].ID })
	sort.Slice(diff.Collisions, func(i, j int) bool {
		return fmt.Sprint(diff.Collisions[i].Tuple) < fmt.Sprint(diff.Collisions[j].Tuple)
	})
	return diff
}
