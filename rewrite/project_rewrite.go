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

// ProjectRewrite implements spec.md §4.6's project step: substitute
// every AttributeRef in the query's project list with the view-output
// attribute of the matching name, recording the substitution in
// ctx.ReplacedAttrs, and emit Project(newExprs, child).
func ProjectRewrite(ctx *RewriteContext, _ CompensationExpressions, child plan.Node) (plan.Node, error) {
	newExprs := make([]expr.Expression, len(ctx.Component.QueryProject))
	for i, e := range ctx.Component.QueryProject {
		substituted, _, err := transform.ExprUp(e, substituteViewAttr(ctx))
		if err != nil {
			return nil, err
		}
		newExprs[i] = substituted
	}
	return plan.NewProject(newExprs, child), nil
}

// substituteViewAttr returns an ExprFunc that replaces any AttributeRef
// with the view-output AttributeRef of the same name, recording the
// substitution in ctx.ReplacedAttrs as it goes.
//
// A reference to one of the query's own aggregate output columns (set
// up by GroupByRewrite, not by the view) is left untouched — it already
// names a column the rewritten Aggregate node produces directly.
func substituteViewAttr(ctx *RewriteContext) transform.ExprFunc {
	aggNames := queryAggregateOutputNames(ctx)
	return func(e expr.Expression) (expr.Expression, transform.TreeIdentity, error) {
		ref, ok := e.(*expr.AttributeRef)
		if !ok {
			return e, transform.SameTree, nil
		}
		if aggNames[ref.Name] {
			return e, transform.SameTree, nil
		}
		for _, viewAttr := range ctx.viewOutputAttributes() {
			if viewAttr.Name == ref.Name {
				replacement := expr.NewAttributeRef(viewAttr.Name, viewAttr.DataType)
				ctx.ReplacedAttrs[ref.Name] = replacement
				if viewAttr.DataType == ref.DataType && viewAttr.Qualifier == ref.Qualifier {
					return e, transform.SameTree, nil
				}
				return replacement, transform.NewTree, nil
			}
		}
		// ProjectMatcher already guaranteed every referenced attribute
		// is projected by the view; reaching here is unreachable absent
		// a bug in that guarantee.
		invariantViolation("column %q passed ProjectMatcher but has no view-output attribute", ref.Name)
		return e, transform.SameTree, nil
	}
}
