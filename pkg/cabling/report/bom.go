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

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/allocator"
)

var bomHeader = []string{"item_type", "description", "quantity"}

type bomLine struct {
	itemType    string
	description string
	quantity    int
}

// WriteBOMCSV aggregates the placed panels, modules and cables into a
// purchasable bill of materials: one line per distinct (kind, variant)
// combination, quantity summed.
func WriteBOMCSV(w io.Writer, result allocator.Result) error {
	lines := bomLines(result)

	cw := csv.NewWriter(w)
	if err := cw.Write(bomHeader); err != nil {
		return err
	}
	for _, l := range lines {
		if err := cw.Write([]string{l.itemType, l.description, strconv.Itoa(l.quantity)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func bomLines(result allocator.Result) []bomLine {
	var lines []bomLine

	if n := len(result.Panels); n > 0 {
		lines = append(lines, bomLine{"panel", "1U patch panel", n})
	}

	type moduleKey struct{ kind, variant string }
	moduleQty := make(map[moduleKey]int)
	for _, m := range result.Modules {
		moduleQty[moduleKey{m.Kind, m.PolarityVariant}]++
	}
	moduleKeys := make([]moduleKey, 0, len(moduleQty))
	for k := range moduleQty {
		moduleKeys = append(moduleKeys, k)
	}
	sort.Slice(moduleKeys, func(i, j int) bool {
		if moduleKeys[i].kind != moduleKeys[j].kind {
			return moduleKeys[i].kind < moduleKeys[j].kind
		}
		return moduleKeys[i].variant < moduleKeys[j].variant
	})
	for _, k := range moduleKeys {
		desc := k.kind
		if k.variant != "" {
			desc = fmt.Sprintf("%s (%s)", k.kind, k.variant)
		}
		lines = append(lines, bomLine{"module", desc, moduleQty[k]})
	}

	type cableKey struct{ media, polarity string }
	cableQty := make(map[cableKey]int)
	for _, c := range result.Cables {
		cableQty[cableKey{c.Media, c.Polarity}]++
	}
	cableKeys := make([]cableKey, 0, len(cableQty))
	for k := range cableQty {
		cableKeys = append(cableKeys, k)
	}
	sort.Slice(cableKeys, func(i, j int) bool {
		if cableKeys[i].media != cableKeys[j].media {
			return cableKeys[i].media < cableKeys[j].media
		}
		return cableKeys[i].polarity < cableKeys[j].polarity
	})
	for _, k := range cableKeys {
		desc := k.media
		if k.polarity != "" {
			desc = fmt.Sprintf("%s (%s)", k.media, k.polarity)
		}
		lines = append(lines, bomLine{"cable", desc, cableQty[k]})
	}

	return lines
}
