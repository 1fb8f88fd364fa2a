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

// ProjectMatcher implements spec.md §4.3: every attribute the query's
// project list references must appear at the first level of the view's
// output. It needs no compensation expressions — the project list
// itself is rebuilt by ProjectRewrite.
//
// For the aggregate rule, a project-list reference to one of the
// query's own aggregate output columns (e.g. "avg_amount") is not a
// view column at all — it names whatever AggMatcher's compensation
// produces for that aggregate, which is validated there, not here. Only
// references to base/grouping columns are checked against the view's
// literal output.
func ProjectMatcher(ctx *RewriteContext) (CompensationExpressions, error) {
	viewOutput := ctx.viewOutputAttributes()
	aggNames := queryAggregateOutputNames(ctx)
	for _, e := range ctx.Component.QueryProject {
		for _, ref := range expr.ExtractAttributeRefs(e) {
			if aggNames[ref.Name] {
				continue
			}
			if !attributeInSchema(ref, viewOutput) {
				return CompensationExpressions{}, ErrProjectUnmatch.New(ref.Name)
			}
		}
	}
	return CompensationExpressions{OK: true}, nil
}

// queryAggregateOutputNames is the set of output column names the
// query's own Aggregate node produces, keyed by AggregateName. Empty
// for a non-aggregating query.
func queryAggregateOutputNames(ctx *RewriteContext) map[string]bool {
	names := make(map[string]bool, len(ctx.Component.QueryAggregates))
	for _, agg := range ctx.Component.QueryAggregates {
		names[expr.AggregateName(agg)] = true
	}
	return names
}
