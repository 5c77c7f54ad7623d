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

package natural

import (
	"testing"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/schema"
)

func TestCompareNaturalOrdersByTrailingDigits(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"R2", "R10", -1},
		{"R10", "R2", 1},
		{"R2", "R2", 0},
		{"R2", "Rack", -1},
		{"Rack", "R2", 1},
		{"Rack", "Rack", 0},
		{"A9", "B1", 1},
	}
	for _, c := range cases {
		if got := CompareNatural(c.a, c.b); sign(got) != sign(c.want) {
			t.Errorf("CompareNatural(%q, %q) = %d, want sign %d", c.a, c.b, got, c.want)
		}
	}
}

func TestCompareLexicographic(t *testing.T) {
	if CompareLexicographic("R10", "R2") >= 0 {
		t.Error("expected R10 to sort before R2 lexicographically")
	}
}

func TestSortStrings(t *testing.T) {
	ids := []string{"R10", "R2", "R1"}
	SortStrings(schema.PeerSortNaturalTrailingDigits, ids)
	want := []string{"R1", "R2", "R10"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("natural sort: got %v, want %v", ids, want)
		}
	}

	ids = []string{"R10", "R2", "R1"}
	SortStrings(schema.PeerSortLexicographic, ids)
	want = []string{"R1", "R10", "R2"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("lexicographic sort: got %v, want %v", ids, want)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
