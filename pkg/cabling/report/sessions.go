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
	"io"
	"strconv"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/allocator"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/model"
)

var sessionsHeader = []string{
	"project_id", "revision_id", "session_id", "media",
	"cable_id", "cable_seq", "adapter_type", "label_a", "label_b",
	"src_rack", "src_face", "src_u", "src_slot", "src_port",
	"dst_rack", "dst_face", "dst_u", "dst_slot", "dst_port",
	"fiber_a", "fiber_b", "notes",
}

// WriteSessionsCSV writes one row per session, in the order result.Sessions
// already carries (§4.5 sorts by session id before Result is assembled).
func WriteSessionsCSV(w io.Writer, result allocator.Result) error {
	cableSeq := make(map[string]int, len(result.Cables))
	for _, c := range result.Cables {
		cableSeq[c.ID] = c.Seq
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(sessionsHeader); err != nil {
		return err
	}
	for _, s := range result.Sessions {
		if err := cw.Write(sessionRow(result, s, cableSeq[s.CableID])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func sessionRow(result allocator.Result, s model.Session, cableSeq int) []string {
	return []string{
		result.Project.Project.Name,
		result.InputHash,
		s.ID,
		s.Media,
		s.CableID,
		strconv.Itoa(cableSeq),
		s.AdapterType,
		s.LabelA,
		s.LabelB,
		s.Src.Rack, s.Src.Face, strconv.Itoa(s.Src.U), strconv.Itoa(s.Src.Slot), strconv.Itoa(s.Src.Port),
		s.Dst.Rack, s.Dst.Face, strconv.Itoa(s.Dst.U), strconv.Itoa(s.Dst.Slot), strconv.Itoa(s.Dst.Port),
		fiberField(s.FiberA),
		fiberField(s.FiberB),
		"",
	}
}

// fiberField renders an optional fiber index as an empty string rather than
// "0" — a session with no fiber pair (MPO, UTP) must not look like fiber 0.
func fiberField(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
