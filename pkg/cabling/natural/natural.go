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

// Package natural implements the two peer-ordering comparators the
// allocator uses everywhere it must iterate an unordered set
// deterministically: a trailing-digit "natural" sort and plain
// lexicographic order. Nothing here relies on platform collation.
package natural

import (
	"math/big"
	"sort"
	"strings"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/schema"
)

// trailingDigits scans s from the tail, accumulating the longest trailing
// run of decimal digits. It returns the numeric value of that run and
// whether one was found at all.
func trailingDigits(s string) (*big.Int, bool) {
	end := len(s)
	start := end
	for start > 0 && s[start-1] >= '0' && s[start-1] <= '9' {
		start--
	}
	if start == end {
		return nil, false
	}
	v, ok := new(big.Int).SetString(s[start:end], 10)
	if !ok {
		return nil, false
	}
	return v, true
}

// CompareNatural orders a and b by the numeric value of their longest
// trailing run of decimal digits, falling back to full-string comparison
// when either value ties or lacks trailing digits altogether. Strings with
// no trailing digits sort after every string that has them.
func CompareNatural(a, b string) int {
	va, ha := trailingDigits(a)
	vb, hb := trailingDigits(b)
	switch {
	case ha && hb:
		if c := va.Cmp(vb); c != 0 {
			return c
		}
	case ha && !hb:
		return -1
	case !ha && hb:
		return 1
	}
	return strings.Compare(a, b)
}

// CompareLexicographic orders a and b by ordinary codepoint order.
func CompareLexicographic(a, b string) int {
	return strings.Compare(a, b)
}

// Compare dispatches to the comparator named by strategy.
func Compare(strategy schema.PeerSort, a, b string) int {
	if strategy == schema.PeerSortLexicographic {
		return CompareLexicographic(a, b)
	}
	return CompareNatural(a, b)
}

// Less adapts Compare to a less-than predicate, for use with sort.Slice.
func Less(strategy schema.PeerSort, a, b string) bool {
	return Compare(strategy, a, b) < 0
}

// SortStrings sorts ids in place under strategy.
func SortStrings(strategy schema.PeerSort, ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		return Less(strategy, ids[i], ids[j])
	})
}
