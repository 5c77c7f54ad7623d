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

// Package hashid derives the deterministic, content-addressed identifiers
// described in §4.5: SHA-256 over a canonical string, truncated to the
// first 16 hex characters and prefixed by entity type.
package hashid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/model"
)

const idLen = 16

func digest(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])[:idLen]
}

// endpointLess implements the plain lexical tuple order §4.5 requires for
// cable endpoints — ordinary string/int comparison, not the peer-sort
// strategy used for output ordering elsewhere.
func endpointLess(a, b model.Endpoint) bool {
	if a.Rack != b.Rack {
		return a.Rack < b.Rack
	}
	if a.U != b.U {
		return a.U < b.U
	}
	if a.Slot != b.Slot {
		return a.Slot < b.Slot
	}
	return a.Port < b.Port
}

func endpointCanonical(e model.Endpoint) string {
	return fmt.Sprintf("%s|%d|%d|%d", e.Rack, e.U, e.Slot, e.Port)
}

// PanelID returns the deterministic id of a panel at (rack, u).
func PanelID(rack string, u int) string {
	return "pan_" + digest(fmt.Sprintf("panel|%s|U%d", rack, u))
}

// ModuleID returns the deterministic id of a module.
func ModuleID(rack string, u, slot int, kind string) string {
	return "mod_" + digest(fmt.Sprintf("module|%s|U%d|S%d|%s", rack, u, slot, kind))
}

// CableID returns the deterministic id of a cable. epA/epB are sorted
// internally so the id does not depend on which side the caller names
// first.
func CableID(epA, epB model.Endpoint, media, polarity string, chunkIndex, trunkIndex int) string {
	a, b := epA, epB
	if endpointLess(b, a) {
		a, b = b, a
	}
	canonical := fmt.Sprintf("cable|%s|%s|%s|%s|%d|%d", endpointCanonical(a), endpointCanonical(b), media, polarity, chunkIndex, trunkIndex)
	return "cab_" + digest(canonical)
}

// SessionID returns the deterministic id of a session. Unlike CableID, the
// src/dst order here is significant: it is the orientation established by
// the normalizer's pair canonicalization, and swapping it produces a
// different id by design (§4.6 S4).
func SessionID(media string, src, dst model.PortRef) string {
	canonical := fmt.Sprintf("session|%s|%s|%d|%d|%d|%s|%d|%d|%d",
		media, src.Rack, src.U, src.Slot, src.Port, dst.Rack, dst.U, dst.Slot, dst.Port)
	return "ses_" + digest(canonical)
}

// SortByID sorts ids lexically in place — the fixed output order for
// panels, modules, and sessions once identifiers are known.
func SortByID(ids []string) {
	sort.Strings(ids)
}
