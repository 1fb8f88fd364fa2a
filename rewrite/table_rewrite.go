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

import "github.com/dolthub/mv-rewrite/sql/plan"

// TableOrViewRewrite implements spec.md §4.6's final step: substitute
// the view's table plan for the query's matched base-table scan. It is
// the innermost rewrite in the pipeline's plan construction order, so
// the incoming child (always nil) is ignored; the produced leaf is
// wrapped in RewrittenLeaf so an outer transform never recurses back
// into it looking for more to rewrite.
func TableOrViewRewrite(ctx *RewriteContext, _ CompensationExpressions, _ plan.Node) (plan.Node, error) {
	return plan.NewRewrittenLeaf(ctx.ViewTablePlan), nil
}
