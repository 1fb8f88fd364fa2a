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

import "github.com/dolthub/mv-rewrite/sql/expr"

// AggMatcher implements spec.md §4.4. It is only ever wired into
// AggregateWithoutJoinRule's pipeline (spec.md §4.8's reserved
// aggregate hooks, built out in full by SPEC_FULL.md §4).
//
// Resolution of an Open Question (spec.md §9, recorded in DESIGN.md):
// the distilled steps 3 and 4 both describe "every aggregate must
// appear in the view", while steps 5 and 6 describe COUNT(*) and AVG
// being rewritten into roll-up expressions that don't literally appear
// in the view. This implementation treats COUNT(*) and AVG as the two
// roll-up special cases and every other SUM/COUNT(column) aggregate as
// requiring an exact (modulo alias) match in the view's aggregate list,
// re-summed across the view's (necessarily finer) grouping — which is
// the only resolution consistent with both spec.md §8 worked examples.
func AggMatcher(ctx *RewriteContext) (CompensationExpressions, error) {
	c := ctx.Component

	if err := checkGroupByContainment(ctx); err != nil {
		return CompensationExpressions{}, err
	}

	viewCountAttr, hasViewCountStar := findViewCountStarAttr(ctx)
	queryHasCountStar := false
	for _, q := range c.QueryAggregates {
		if expr.IsCountStar(q) {
			queryHasCountStar = true
			break
		}
	}
	if queryHasCountStar && !hasViewCountStar {
		return CompensationExpressions{}, ErrAggNumberUnmatch.New()
	}

	comp := make([]expr.Expression, 0, len(c.QueryAggregates))
	for _, q := range c.QueryAggregates {
		outName := expr.AggregateName(q)
		inner := expr.Unalias(q)

		switch agg := inner.(type) {
		case *expr.Count:
			if expr.IsCountStar(agg) {
				comp = append(comp, expr.NewAlias(outName, expr.NewSum(viewCountAttr)))
				continue
			}
			viewAttr, ok := matchViewAggregate(ctx, agg.Arg, func(v expr.Expression) (expr.Expression, bool) {
				vc, ok := v.(*expr.Count)
				if !ok || expr.IsCountStar(vc) {
					return nil, false
				}
				return vc.Arg, true
			})
			if !ok {
				return CompensationExpressions{}, ErrAggColumnsUnmatch.New(q.String())
			}
			comp = append(comp, expr.NewAlias(outName, expr.NewSum(viewAttr)))
		case *expr.Sum:
			viewAttr, ok := matchViewAggregate(ctx, agg.Arg, func(v expr.Expression) (expr.Expression, bool) {
				vs, ok := v.(*expr.Sum)
				if !ok {
					return nil, false
				}
				return vs.Arg, true
			})
			if !ok {
				return CompensationExpressions{}, ErrAggColumnsUnmatch.New(q.String())
			}
			comp = append(comp, expr.NewAlias(outName, expr.NewSum(viewAttr)))
		case *expr.Average:
			if !hasViewCountStar {
				return CompensationExpressions{}, ErrAggViewMissingCountStar.New(agg.Arg.String())
			}
			viewSumAttr, ok := matchViewAggregate(ctx, agg.Arg, func(v expr.Expression) (expr.Expression, bool) {
				vs, ok := v.(*expr.Sum)
				if !ok {
					return nil, false
				}
				return vs.Arg, true
			})
			if !ok {
				return CompensationExpressions{}, ErrAggColumnsUnmatch.New(q.String())
			}
			comp = append(comp, expr.NewAlias(outName, expr.NewDiv(expr.NewSum(viewSumAttr), expr.NewSum(viewCountAttr))))
		default:
			return CompensationExpressions{}, ErrAggColumnsUnmatch.New(q.String())
		}
	}

	return compensate(comp...), nil
}

// checkGroupByContainment implements the grouping half of spec.md §4.4:
// the query's grouping list must be no finer than the view's (the view
// has already collapsed rows below its own grouping, so a query
// grouping column the view doesn't also group or project by can never
// be recovered), and every query grouping column must be available in
// the view's output.
func checkGroupByContainment(ctx *RewriteContext) error {
	c := ctx.Component
	if len(c.QueryGrouping) > len(c.ViewGrouping) {
		return ErrGroupBySizeUnmatch.New(len(c.QueryGrouping), len(c.ViewGrouping))
	}
	viewOutput := ctx.viewOutputAttributes()
	for _, g := range c.QueryGrouping {
		for _, ref := range expr.ExtractAttributeRefs(g) {
			if !attributeInSchema(ref, viewOutput) {
				return ErrGroupByColumnsNotInView.New(ref.Name)
			}
		}
	}
	return nil
}

// findViewCountStarAttr locates the view's first COUNT(*) aggregate and
// returns an AttributeRef to its output column.
func findViewCountStarAttr(ctx *RewriteContext) (*expr.AttributeRef, bool) {
	for _, v := range ctx.Component.ViewAggregates {
		if expr.IsCountStar(v) {
			return expr.NewAttributeRef(expr.AggregateName(v), v.Type()), true
		}
	}
	return nil, false
}

// matchViewAggregate finds the first view aggregate for which extract
// succeeds and whose extracted argument is semantically equal to arg,
// returning an AttributeRef to that view aggregate's output column.
func matchViewAggregate(ctx *RewriteContext, arg expr.Expression, extract func(expr.Expression) (expr.Expression, bool)) (*expr.AttributeRef, bool) {
	for _, v := range ctx.Component.ViewAggregates {
		vArg, ok := extract(expr.Unalias(v))
		if !ok {
			continue
		}
		if expr.SemanticEquals(vArg, arg) {
			return expr.NewAttributeRef(expr.AggregateName(v), v.Type()), true
		}
	}
	return nil, false
}
