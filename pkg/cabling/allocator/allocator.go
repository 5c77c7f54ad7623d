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

package allocator

import (
	"log/slog"
	"sort"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/model"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/natural"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/normalize"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/placement"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/rackalloc"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/schema"
)

// Option configures a call to Allocate.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger directs Allocate's diagnostic Debug/Info lines to logger
// instead of slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Allocate runs the validator, normalizer, rack allocator, and placement
// engines over project, in that order, and returns the assembled result
// document of §6. A non-nil error means validation failed and no
// allocation was attempted; a non-nil Result.Errors means allocation ran
// but is incomplete (§7) and must not be treated as a usable plan.
func Allocate(project *schema.Project, opts ...Option) (Result, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := schema.Validate(project); err != nil {
		return Result{}, err
	}

	inputHash, err := schema.InputHash(project)
	if err != nil {
		return Result{}, err
	}

	settings := project.Settings.ApplyDefaults()
	o.logger.Debug("allocator: validated input", "input_hash", inputHash, "racks", len(project.Racks), "demands", len(project.Demands))

	pairs := normalize.Normalize(settings.Ordering.PeerSort, project.Demands)
	pool := rackalloc.NewPool(project.Racks, settings.Panel, settings.Ordering.PeerSort)

	ctx := placement.NewContext(pool, settings, o.logger)
	placement.Dispatch(ctx, pairs)

	panels := sortedPanels(ctx.Panels(), settings.Ordering.PeerSort)
	modules := sortedModules(ctx.Modules, settings.Ordering.PeerSort)
	cables := sortedCables(ctx.Cables)
	sessions := sortedSessions(ctx.Sessions)
	pairDetails := sortedPairDetails(ctx.PairDetails, settings.Ordering.PeerSort)

	result := Result{
		Project:     *project,
		InputHash:   inputHash,
		Panels:      panels,
		Modules:     modules,
		Cables:      cables,
		Sessions:    sessions,
		Warnings:    ctx.Warnings,
		Errors:      ctx.Failures,
		Metrics: model.Metrics{
			RackCount:    len(project.Racks),
			PanelCount:   len(panels),
			ModuleCount:  len(modules),
			CableCount:   len(cables),
			SessionCount: len(sessions),
		},
		PairDetails: pairDetails,
	}

	o.logger.Info("allocator: run complete", "complete", result.Complete(),
		"panels", len(panels), "modules", len(modules), "cables", len(cables), "sessions", len(sessions))
	return result, nil
}

// sortedPanels orders panels by (peer_sort(rack), u) per §4.5.
func sortedPanels(panels []model.Panel, peerSort schema.PeerSort) []model.Panel {
	out := append([]model.Panel(nil), panels...)
	sort.Slice(out, func(i, j int) bool {
		if c := natural.Compare(peerSort, out[i].RackID, out[j].RackID); c != 0 {
			return c < 0
		}
		return out[i].U < out[j].U
	})
	return out
}

// sortedModules orders modules by (peer_sort(rack), u, slot) per §4.5.
func sortedModules(modules []model.Module, peerSort schema.PeerSort) []model.Module {
	out := append([]model.Module(nil), modules...)
	sort.Slice(out, func(i, j int) bool {
		if c := natural.Compare(peerSort, out[i].RackID, out[j].RackID); c != 0 {
			return c < 0
		}
		if out[i].U != out[j].U {
			return out[i].U < out[j].U
		}
		return out[i].Slot < out[j].Slot
	})
	return out
}

// sortedCables orders cables by cable_id and stamps sequential cable_seq
// starting at 1, per §4.5.
func sortedCables(cables []model.Cable) []model.Cable {
	out := append([]model.Cable(nil), cables...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	for i := range out {
		out[i].Seq = i + 1
	}
	return out
}

// sortedSessions orders sessions by session_id per §4.5.
func sortedSessions(sessions []model.Session) []model.Session {
	out := append([]model.Session(nil), sessions...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// sortedPairDetails orders pair_details by (peer_sort(rack_a), rack_b,
// category) so the summary is deterministic without being part of the
// spec's own ordering contract.
func sortedPairDetails(details []model.PairDetail, peerSort schema.PeerSort) []model.PairDetail {
	out := append([]model.PairDetail(nil), details...)
	sort.Slice(out, func(i, j int) bool {
		if c := natural.Compare(peerSort, out[i].RackA, out[j].RackA); c != 0 {
			return c < 0
		}
		if c := natural.Compare(peerSort, out[i].RackB, out[j].RackB); c != 0 {
			return c < 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}
