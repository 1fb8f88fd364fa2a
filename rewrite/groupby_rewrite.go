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
	"github.com/dolthub/mv-rewrite/sql/expr"
	"github.com/dolthub/mv-rewrite/sql/plan"
	"github.com/dolthub/mv-rewrite/sql/transform"
)

// GroupByRewrite implements spec.md §4.6's group-by step, wired in by
// AggregateWithoutJoinRule (spec.md §4.8, built out by SPEC_FULL.md §4):
// substitute the query's grouping expressions against the view's output
// the same way ProjectRewrite does, and replace the aggregation with
// Aggregate(newGrouping, AggMatcher's compensation, child).
func GroupByRewrite(ctx *RewriteContext, comp CompensationExpressions, child plan.Node) (plan.Node, error) {
	newGrouping := make([]expr.Expression, len(ctx.Component.QueryGrouping))
	for i, g := range ctx.Component.QueryGrouping {
		substituted, _, err := transform.ExprUp(g, substituteViewAttr(ctx))
		if err != nil {
			return nil, err
		}
		newGrouping[i] = substituted
	}
	return plan.NewAggregate(newGrouping, comp.Exprs, child), nil
}
