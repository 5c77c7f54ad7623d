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

package placement

import (
	"fmt"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/normalize"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/schema"
)

// categoryEndpointTypes lists every endpoint type serviced by a category,
// the inverse of schema.EndpointCategory.
var categoryEndpointTypes = map[schema.SlotCategory][]schema.EndpointType{
	schema.CategoryMPOE2E: {schema.EndpointMPO12},
	schema.CategoryLCMMF:  {schema.EndpointMMFLCDuplex},
	schema.CategoryLCSMF:  {schema.EndpointSMFLCDuplex},
	schema.CategoryUTP:    {schema.EndpointUTPRJ45},
}

// Dispatch runs every category engine named in the active slot category
// priority, in priority order, and emits a category_skipped_with_demand
// warning (§7, Open Question 3) for any category omitted from the priority
// list that still has non-zero demand.
func Dispatch(ctx *Context, pairs []normalize.Pair) {
	seen := make(map[schema.SlotCategory]bool, len(ctx.Settings.Ordering.SlotCategoryPriority))

	for _, category := range ctx.Settings.Ordering.SlotCategoryPriority {
		seen[category] = true
		switch category {
		case schema.CategoryMPOE2E:
			RunMPOE2E(ctx, pairs)
		case schema.CategoryLCMMF:
			RunLCBreakout(ctx, pairs, schema.EndpointMMFLCDuplex, schema.CategoryLCMMF)
		case schema.CategoryLCSMF:
			RunLCBreakout(ctx, pairs, schema.EndpointSMFLCDuplex, schema.CategoryLCSMF)
		case schema.CategoryUTP:
			RunUTP(ctx, pairs)
		default:
			continue
		}
		ctx.Logger.Info("placement: category pass complete", "category", category,
			"modules", len(ctx.Modules), "cables", len(ctx.Cables), "sessions", len(ctx.Sessions))
	}

	for _, category := range schema.DefaultSlotCategoryPriority() {
		if seen[category] {
			continue
		}
		for _, t := range categoryEndpointTypes[category] {
			for _, pc := range normalize.ForType(pairs, t) {
				ctx.Warn("category_skipped_with_demand",
					fmt.Sprintf("category %q has %d unit(s) of demand between %q and %q but is not in slot_category_priority",
						category, pc.Count, pc.Key.A, pc.Key.B),
					pc.Key.A, pc.Key.B)
			}
		}
	}
}
