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

// Package allocator wires the input validator, demand normalizer, rack slot
// allocator, and category placement engines into the single operation §6
// describes: allocate(project) -> result. Nothing outside this package
// assembles those pieces in order; everything else operates on the Result
// it produces.
package allocator

import (
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/model"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/schema"
)

// Result is the external interface document of §6: everything a
// downstream collaborator needs, with no further lookups against the
// allocator required.
type Result struct {
	Project     schema.Project     `json:"project"`
	InputHash   string             `json:"input_hash"`
	Panels      []model.Panel      `json:"panels"`
	Modules     []model.Module     `json:"modules"`
	Cables      []model.Cable      `json:"cables"`
	Sessions    []model.Session    `json:"sessions"`
	Warnings    []model.Warning    `json:"warnings"`
	Errors      []model.Failure    `json:"errors"`
	Metrics     model.Metrics      `json:"metrics"`
	PairDetails []model.PairDetail `json:"pair_details"`
}

// Complete reports whether the allocation ran to completion without any
// rack overflow or other fatal-to-completeness condition. Callers must not
// treat an incomplete result as a usable plan (§7).
func (r Result) Complete() bool {
	return len(r.Errors) == 0
}
