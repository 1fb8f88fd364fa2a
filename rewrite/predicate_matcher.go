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
	"fmt"

	"github.com/dolthub/mv-rewrite/sql/expr"
)

// PredicateMatcher implements spec.md §4.2: it partitions the query's
// and the view's conjunctive predicates into equalities, ranges and
// residuals, checks that the view's predicates are implied by the
// query's, and returns the extra query predicates that must still be
// applied on top of the view.
func PredicateMatcher(ctx *RewriteContext) (CompensationExpressions, error) {
	c := ctx.Component

	if len(c.ViewConjuncts) > len(c.QueryConjuncts) {
		return CompensationExpressions{}, ErrPredicateUnmatch.New(len(c.ViewConjuncts), len(c.QueryConjuncts))
	}

	queryEq, queryNonEq := partitionEqualities(c.QueryConjuncts)
	viewEq, viewNonEq := partitionEqualities(c.ViewConjuncts)

	if !isSubsetOf(viewEq, queryEq) {
		return CompensationExpressions{}, ErrPredicateEqualsUnmatch.New()
	}
	compEq := extra(queryEq, viewEq)

	queryRanges, queryResidual := groupRangesByKey(queryNonEq)
	viewRanges, viewResidual := groupRangesByKey(viewNonEq)

	if len(viewRanges) > len(queryRanges) {
		return CompensationExpressions{}, ErrPredicateRangeUnmatch.New(fmt.Sprintf(
			"view has more range-keyed predicates (%d) than the query (%d)", len(viewRanges), len(queryRanges)))
	}
	for _, vr := range viewRanges {
		if !anySubRangeOf(queryRanges, vr) {
			return CompensationExpressions{}, ErrPredicateRangeUnmatch.New(fmt.Sprintf(
				"view range predicate on %s is not implied by any query range predicate", vr.Key))
		}
	}
	// Re-emit all query ranges, not just the delta against the view's —
	// spec.md §9 records this as a deliberate (if occasionally
	// redundant) simplification: re-applying a predicate at least as
	// tight as the view's is always semantics-preserving.
	var compRanges []expr.Expression
	for _, qr := range queryRanges {
		compRanges = append(compRanges, qr.toExpressions()...)
	}

	if !isSubsetOf(viewResidual, queryResidual) {
		return CompensationExpressions{}, ErrPredicateResidualUnmatch.New()
	}
	compResidual := extra(queryResidual, viewResidual)

	var all []expr.Expression
	all = append(all, compEq...)
	all = append(all, compRanges...)
	all = append(all, compResidual...)

	if err := checkColumnsInView(ctx, all); err != nil {
		return CompensationExpressions{}, err
	}

	return compensate(all...), nil
}

// partitionEqualities splits conjuncts into EqualTo/EqualNullSafe
// predicates and everything else (spec.md §4.2 step 1: "Equality
// conditions: EqualTo or EqualNullSafe").
func partitionEqualities(conjuncts []expr.Expression) (equalities, rest []expr.Expression) {
	for _, c := range conjuncts {
		if cmp, ok := c.(*expr.BinaryComparison); ok && (cmp.Op == expr.Eq || cmp.Op == expr.NullSafeEq) {
			equalities = append(equalities, c)
			continue
		}
		rest = append(rest, c)
	}
	return equalities, rest
}

func anySubRangeOf(queryRanges []RangeCondition, viewRange RangeCondition) bool {
	for _, qr := range queryRanges {
		if isSubRange(qr, viewRange) {
			return true
		}
	}
	return false
}

// checkColumnsInView enforces spec.md §4.2 step 5: every AttributeRef
// referenced by the compensation must be projected at the first level
// of the view's output.
func checkColumnsInView(ctx *RewriteContext, compensation []expr.Expression) error {
	viewOutput := ctx.viewOutputAttributes()
	for _, c := range compensation {
		for _, ref := range expr.ExtractAttributeRefs(c) {
			if !attributeInSchema(ref, viewOutput) {
				return ErrPredicateColumnsNotInView.New(ref.Name)
			}
		}
	}
	return nil
}

func attributeInSchema(ref *expr.AttributeRef, schema []*expr.AttributeRef) bool {
	for _, out := range schema {
		if out.Name == ref.Name {
			return true
		}
	}
	return false
}
