// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rewrite

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"

	"github.com/dolthub/mv-rewrite/sql/expr"
)

// isSubsetOf reports whether every element of a semantically equals
// some element of b (spec.md §8: "isSubSetOf(a,b) iff every element of
// a semantically equals some element of b").
func isSubsetOf(a, b []expr.Expression) bool {
	for _, x := range a {
		if !containsSemantic(b, x) {
			return false
		}
	}
	return true
}

func containsSemantic(list []expr.Expression, target expr.Expression) bool {
	for _, e := range list {
		if expr.SemanticEquals(e, target) {
			return true
		}
	}
	return false
}

// extra returns the elements of a that are not semantically present in
// b, preserving a's order. Used to compute "the query's equalities not
// already enforced by the view" and similar residues.
func extra(a, b []expr.Expression) []expr.Expression {
	var out []expr.Expression
	for _, x := range a {
		if !containsSemantic(b, x) {
			out = append(out, x)
		}
	}
	return out
}

// dedupSortedKeys returns the distinct elements of keys in ascending
// order. Grouping range predicates by an expression's string key lands
// them in a map, whose iteration order Go deliberately randomizes;
// sorting the key set before iterating it is what makes rendered
// compensation expressions deterministic across runs (and therefore
// plan-equality tests reproducible).
func dedupSortedKeys[T constraints.Ordered](keys []T) []T {
	if len(keys) == 0 {
		return nil
	}
	cp := append([]T(nil), keys...)
	slices.Sort(cp)
	return slices.Compact(cp)
}
