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

package schema

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"sigs.k8s.io/yaml"
)

// ValidationError names the offending path of one rejected input.
type ValidationError struct {
	Path string
	Msg  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

func fail(merr *multierror.Error, path, format string, args ...interface{}) *multierror.Error {
	return multierror.Append(merr, &ValidationError{Path: path, Msg: fmt.Sprintf(format, args...)})
}

// Decode parses a YAML or JSON document into a Project, rejecting any
// field not named in the schema anywhere in the document.
func Decode(data []byte) (*Project, error) {
	var p Project
	if err := yaml.UnmarshalStrict(data, &p); err != nil {
		return nil, fmt.Errorf("schema: decode: %w", err)
	}
	return &p, nil
}

// Validate checks a decoded Project against every rule in the input
// validator and returns every offending path in a single *multierror.Error,
// or nil if the project is well-formed. Validate never mutates p.
func Validate(p *Project) error {
	var merr *multierror.Error

	if p == nil {
		return fail(merr, "$", "project document is nil").ErrorOrNil()
	}

	racks := make(map[string]bool, len(p.Racks))
	for i, r := range p.Racks {
		path := fmt.Sprintf("racks[%d]", i)
		if r.ID == "" {
			merr = fail(merr, path+".id", "must not be empty")
			continue
		}
		if racks[r.ID] {
			merr = fail(merr, path+".id", "duplicate rack id %q", r.ID)
			continue
		}
		racks[r.ID] = true
		if r.HeightU < 0 {
			merr = fail(merr, path+".height_u", "must be positive, got %d", r.HeightU)
		}
	}

	demands := make(map[string]bool, len(p.Demands))
	for i, d := range p.Demands {
		path := fmt.Sprintf("demands[%d]", i)
		if d.ID == "" {
			merr = fail(merr, path+".id", "must not be empty")
		} else if demands[d.ID] {
			merr = fail(merr, path+".id", "duplicate demand id %q", d.ID)
		} else {
			demands[d.ID] = true
		}

		if d.Src == d.Dst {
			merr = fail(merr, path, "src and dst must differ, both are %q", d.Src)
		}
		if d.Src != "" && !racks[d.Src] {
			merr = fail(merr, path+".src", "references undefined rack %q", d.Src)
		}
		if d.Dst != "" && !racks[d.Dst] {
			merr = fail(merr, path+".dst", "references undefined rack %q", d.Dst)
		}
		if !d.Type.Valid() {
			merr = fail(merr, path+".type", "invalid endpoint type %q", d.Type)
		}
		if d.Count <= 0 {
			merr = fail(merr, path+".count", "must be positive, got %d", d.Count)
		}
	}

	if p.Settings != nil {
		merr = validateSettings(merr, p.Settings)
	}

	return merr.ErrorOrNil()
}

func validateSettings(merr *multierror.Error, s *Settings) *multierror.Error {
	if s.Panel.SlotsPerU < 0 {
		merr = fail(merr, "settings.panel.slots_per_u", "must be positive, got %d", s.Panel.SlotsPerU)
	}
	if s.Panel.AllocationDirection != "" && !s.Panel.AllocationDirection.Valid() {
		merr = fail(merr, "settings.panel.allocation_direction", "invalid value %q", s.Panel.AllocationDirection)
	}
	if s.Ordering.PeerSort != "" && !s.Ordering.PeerSort.Valid() {
		merr = fail(merr, "settings.ordering.peer_sort", "invalid value %q", s.Ordering.PeerSort)
	}
	seen := make(map[SlotCategory]bool, len(s.Ordering.SlotCategoryPriority))
	for i, c := range s.Ordering.SlotCategoryPriority {
		path := fmt.Sprintf("settings.ordering.slot_category_priority[%d]", i)
		if !c.Valid() {
			merr = fail(merr, path, "invalid category %q", c)
			continue
		}
		if seen[c] {
			merr = fail(merr, path, "duplicate category %q", c)
		}
		seen[c] = true
	}
	return merr
}
