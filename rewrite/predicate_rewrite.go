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
)

// PredicateRewrite implements spec.md §4.6's predicate step: wrap child
// in a single Filter over the AND of PredicateMatcher's compensation
// expressions. If there is no compensation, child is returned as-is.
func PredicateRewrite(_ *RewriteContext, comp CompensationExpressions, child plan.Node) (plan.Node, error) {
	if len(comp.Exprs) == 0 {
		return child, nil
	}
	return plan.NewFilter(expr.JoinConjunctivePredicates(comp.Exprs), child), nil
}
