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
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/dolthub/mv-rewrite/sql/expr"
)

// RangeCondition is the normalized form of a conjunctive predicate
// bounding a single keyed expression (spec.md §3, §4.1): at most one
// lower and one upper Literal bound, with inclusivity flags.
type RangeCondition struct {
	Key       expr.Expression
	Lower     *expr.Literal
	Upper     *expr.Literal
	InclLower bool
	InclUpper bool
}

// classifyRange normalizes a single comparison into a RangeCondition
// per the table in spec.md §4.1, tolerating an optional Cast around the
// literal operand. ok is false if cmp is not a key-vs-literal
// comparison (e.g. both sides are columns, or it's an OR/residual).
func classifyRange(cmp *expr.BinaryComparison) (RangeCondition, bool) {
	if key, lit, ok := keyFirst(cmp.Left, cmp.Right); ok {
		return rangeFromOp(cmp.Op, key, lit, true), true
	}
	if key, lit, ok := keyFirst(cmp.Right, cmp.Left); ok {
		return rangeFromOp(cmp.Op, key, lit, false), true
	}
	return RangeCondition{}, false
}

// keyFirst reports whether a is an attribute and b a literal (modulo a
// cosmetic Cast on either), returning them unwrapped.
func keyFirst(a, b expr.Expression) (expr.Expression, *expr.Literal, bool) {
	ref, aIsAttr := expr.AsAttributeRef(a)
	lit, bIsLit := expr.AsLiteral(b)
	if aIsAttr && bIsLit {
		return ref, lit, true
	}
	return nil, nil, false
}

// rangeFromOp builds the RangeCondition for "key OP literal" when
// keyOnLeft, or "literal OP key" otherwise, per the classification
// table in spec.md §4.1.
func rangeFromOp(op expr.ComparisonOp, key expr.Expression, lit *expr.Literal, keyOnLeft bool) RangeCondition {
	effectiveOp := op
	if !keyOnLeft {
		effectiveOp = op.Flip()
	}
	r := RangeCondition{Key: key}
	switch effectiveOp {
	case expr.Gt:
		r.Lower, r.InclLower = lit, false
	case expr.Gte:
		r.Lower, r.InclLower = lit, true
	case expr.Lt:
		r.Upper, r.InclUpper = lit, false
	case expr.Lte:
		r.Upper, r.InclUpper = lit, true
	}
	return r
}

// compareLiterals orders a and b. Numeric kinds compare by value
// (coerced through github.com/spf13/cast so a Short bound and a Long
// bound in the same range compare correctly); String compares
// lexicographically. Any other kind is a fatal, unsupported-type
// condition per spec.md §7.
func compareLiterals(a, b *expr.Literal) int {
	kind := a.DataType
	if !kind.Numeric() && kind != expr.String {
		kind = b.DataType
	}
	switch {
	case kind.Numeric():
		av, err := cast.ToFloat64E(a.Value)
		if err != nil {
			panic(errors.Wrapf(err, "rewrite: unsupported literal type %v in range comparison", a.DataType))
		}
		bv, err := cast.ToFloat64E(b.Value)
		if err != nil {
			panic(errors.Wrapf(err, "rewrite: unsupported literal type %v in range comparison", b.DataType))
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case kind == expr.String:
		av, err := cast.ToStringE(a.Value)
		if err != nil {
			panic(errors.Wrapf(err, "rewrite: unsupported literal type %v in range comparison", a.DataType))
		}
		bv, err := cast.ToStringE(b.Value)
		if err != nil {
			panic(errors.Wrapf(err, "rewrite: unsupported literal type %v in range comparison", b.DataType))
		}
		return strings.Compare(av, bv)
	default:
		panic(errors.Errorf("rewrite: unsupported literal type %v in range comparison", kind))
	}
}

// merge combines two RangeConditions on the same key into their
// intersection: the tighter of the two lower bounds and the tighter of
// the two upper bounds (spec.md §4.1 "Merge (+)"). It does not detect
// an empty result (lower > upper) — spec.md §9 documents this as an
// accepted, unfixed source ambiguity: "Empty ranges after intersection
// are not detected; behavior is silently the empty set."
func merge(a, b RangeCondition) RangeCondition {
	out := RangeCondition{Key: a.Key}

	switch {
	case a.Lower == nil:
		out.Lower, out.InclLower = b.Lower, b.InclLower
	case b.Lower == nil:
		out.Lower, out.InclLower = a.Lower, a.InclLower
	default:
		switch c := compareLiterals(a.Lower, b.Lower); {
		case c > 0:
			out.Lower, out.InclLower = a.Lower, a.InclLower
		case c < 0:
			out.Lower, out.InclLower = b.Lower, b.InclLower
		default:
			out.Lower = a.Lower
			out.InclLower = a.InclLower && b.InclLower
		}
	}

	switch {
	case a.Upper == nil:
		out.Upper, out.InclUpper = b.Upper, b.InclUpper
	case b.Upper == nil:
		out.Upper, out.InclUpper = a.Upper, a.InclUpper
	default:
		switch c := compareLiterals(a.Upper, b.Upper); {
		case c < 0:
			out.Upper, out.InclUpper = a.Upper, a.InclUpper
		case c > 0:
			out.Upper, out.InclUpper = b.Upper, b.InclUpper
		default:
			out.Upper = a.Upper
			out.InclUpper = a.InclUpper && b.InclUpper
		}
	}

	return out
}

// isSubRange reports whether self is contained in other: same key,
// self's lower bound at least as tight, self's upper bound at least as
// tight. Per spec.md §4.1 and §9, inclusivity is deliberately NOT
// compared numerically here — this is an accepted approximation
// inherited unchanged from the source, not a bug: a range of "a >= 5"
// is treated as a sub-range of "a > 5" even though, strictly, 5 itself
// is excluded by the latter. StrictIsSubRange below is the corrected
// variant for new callers per spec.md §9's guidance.
func isSubRange(self, other RangeCondition) bool {
	if !expr.SemanticEquals(self.Key, other.Key) {
		return false
	}
	if other.Lower != nil {
		if self.Lower == nil || compareLiterals(self.Lower, other.Lower) < 0 {
			return false
		}
	}
	if other.Upper != nil {
		if self.Upper == nil || compareLiterals(self.Upper, other.Upper) > 0 {
			return false
		}
	}
	return true
}

// StrictIsSubRange is isSubRange plus inclusivity comparison: when both
// sides bound on the same literal value, self must be at least as
// restrictive (non-inclusive is tighter than inclusive). New callers
// that are not round-tripping the source's behavior should prefer this.
func StrictIsSubRange(self, other RangeCondition) bool {
	if !isSubRange(self, other) {
		return false
	}
	if other.Lower != nil && self.Lower != nil && compareLiterals(self.Lower, other.Lower) == 0 {
		if self.InclLower && !other.InclLower {
			return false
		}
	}
	if other.Upper != nil && self.Upper != nil && compareLiterals(self.Upper, other.Upper) == 0 {
		if self.InclUpper && !other.InclUpper {
			return false
		}
	}
	return true
}

// toExpressions renders r back into 0, 1 or 2 comparison expressions,
// wrapping each literal bound in a Cast to the key's data type to match
// the shape the (out-of-scope) parser would itself have produced.
func (r RangeCondition) toExpressions() []expr.Expression {
	var out []expr.Expression
	if r.Lower != nil {
		lit := expr.NewCast(r.Lower, r.Key.Type())
		if r.InclLower {
			out = append(out, expr.NewGreaterThanOrEqual(r.Key, lit))
		} else {
			out = append(out, expr.NewGreaterThan(r.Key, lit))
		}
	}
	if r.Upper != nil {
		lit := expr.NewCast(r.Upper, r.Key.Type())
		if r.InclUpper {
			out = append(out, expr.NewLessThanOrEqual(r.Key, lit))
		} else {
			out = append(out, expr.NewLessThan(r.Key, lit))
		}
	}
	return out
}

// groupRangesByKey partitions a conjunct list into range conditions
// (everything classifyRange accepts) and the remainder, then folds the
// ranges sharing a key together via merge so each distinct key ends up
// with exactly one canonical RangeCondition (spec.md §4.1: "After
// grouping the conjunctive range predicates by key and folding with +,
// each key has a single canonical range").
func groupRangesByKey(conjuncts []expr.Expression) (ranges []RangeCondition, rest []expr.Expression) {
	byKey := make(map[string]RangeCondition)
	var keyOrder []string

	for _, c := range conjuncts {
		cmp, ok := c.(*expr.BinaryComparison)
		if !ok {
			rest = append(rest, c)
			continue
		}
		if cmp.Op != expr.Lt && cmp.Op != expr.Lte && cmp.Op != expr.Gt && cmp.Op != expr.Gte {
			rest = append(rest, c)
			continue
		}
		rc, ok := classifyRange(cmp)
		if !ok {
			rest = append(rest, c)
			continue
		}
		k := rc.Key.String()
		if existing, seen := byKey[k]; seen {
			byKey[k] = merge(existing, rc)
		} else {
			byKey[k] = rc
			keyOrder = append(keyOrder, k)
		}
	}

	for _, k := range dedupSortedKeys(keyOrder) {
		ranges = append(ranges, byKey[k])
	}
	return ranges, rest
}
