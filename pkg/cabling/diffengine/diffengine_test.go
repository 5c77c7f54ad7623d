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

package diffengine

import (
	"testing"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/model"
)

func session(id, cableID string, port int) model.Session {
	return model.Session{
		ID:      id,
		Media:   "mpo12",
		CableID: cableID,
		Src:     model.PortRef{Rack: "R01", Face: "front", U: 1, Slot: 1, Port: port},
		Dst:     model.PortRef{Rack: "R02", Face: "front", U: 1, Slot: 1, Port: port},
	}
}

func TestLogicalDiffAddedRemovedModified(t *testing.T) {
	old := []model.Session{session("ses_a", "cab_1", 1), session("ses_b", "cab_1", 2)}
	newer := []model.Session{session("ses_a", "cab_2", 1), session("ses_c", "cab_1", 3)}

	diff := Logical(old, newer)
	if len(diff.Added) != 1 || diff.Added[0].ID != "ses_c" {
		t.Fatalf("expected ses_c added, got %+v", diff.Added)
	}
	if len(diff.Removed) != 1 || diff.Removed[0].ID != "ses_b" {
		t.Fatalf("expected ses_b removed, got %+v", diff.Removed)
	}
	if len(diff.Modified) != 1 || diff.Modified[0].Old.ID != "ses_a" {
		t.Fatalf("expected ses_a modified, got %+v", diff.Modified)
	}
	if diff.Modified[0].Changes == "" {
		t.Error("expected a non-empty human-readable changelog for the modified session")
	}
}

func TestPhysicalDiffCollisionOnSharedTupleDifferentID(t *testing.T) {
	old := []model.Session{session("ses_a", "cab_1", 1)}
	newer := []model.Session{session("ses_z", "cab_1", 1)}

	diff := Physical(old, newer)
	if len(diff.Collisions) != 1 {
		t.Fatalf("expected 1 collision, got %d: %+v", len(diff.Collisions), diff.Collisions)
	}
	if diff.Collisions[0].OldID != "ses_a" || diff.Collisions[0].NewID != "ses_z" {
		t.Fatalf("unexpected collision payload: %+v", diff.Collisions[0])
	}
	if len(diff.Added) != 0 || len(diff.Removed) != 0 {
		t.Fatalf("expected no added/removed on a pure collision, got %+v", diff)
	}
}

func TestDiffRoundTripIsEmptyAgainstItself(t *testing.T) {
	sessions := []model.Session{session("ses_a", "cab_1", 1), session("ses_b", "cab_1", 2)}

	logical := Logical(sessions, sessions)
	if len(logical.Added)+len(logical.Removed)+len(logical.Modified) != 0 {
		t.Fatalf("expected empty logical diff against itself, got %+v", logical)
	}

	physical := Physical(sessions, sessions)
	if len(physical.Added)+len(physical.Removed)+len(physical.Collisions) != 0 {
		t.Fatalf("expected empty physical diff against itself, got %+v", physical)
	}
}

func TestDiffSwappingArgumentsSwapsAddedRemoved(t *testing.T) {
	old := []model.Session{session("ses_a", "cab_1", 1)}
	newer := []model.Session{session("ses_b", "cab_1", 2)}

	forward := Logical(old, newer)
	backward := Logical(newer, old)

	if len(forward.Added) != 1 || len(backward.Removed) != 1 || forward.Added[0].ID != backward.Removed[0].ID {
		t.Fatalf("expected swapping arguments to swap added/removed: forward=%+v backward=%+v", forward, backward)
	}
}
